package httputil

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusConflict, "a@b.com is already a member", map[string]interface{}{
		"resource_type": "member",
		"resource_id":   "a@b.com",
		"status":        "ignored",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"type": "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.10",
		"title": "Conflict",
		"status": 409,
		"detail": "a@b.com is already a member",
		"resource_type": "member",
		"resource_id": "a@b.com"
	}`, rec.Body.String())
}

func TestNewProblem(t *testing.T) {
	tests := []struct {
		status   int
		wantType string
	}{
		{http.StatusNotFound, "https://datatracker.ietf.org/doc/html/rfc9110#section-15.5.5"},
		{http.StatusTeapot, "about:blank"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := NewProblem(tt.status, "")
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, http.StatusText(tt.status), p.Title)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]string{"id": "c1"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"c1"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, math.Inf(1))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var p map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "failed to encode response", p["detail"])
}
