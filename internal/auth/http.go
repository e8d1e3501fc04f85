package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rpgmanager/internal/domain"
)

const defaultTimeout = 30 * time.Second

// gotrueRequest describes one call to the GoTrue REST API.
type gotrueRequest struct {
	method string
	path   string
	query  url.Values
	apiKey string
	bearer string
	body   any
}

// doGoTrue sends a request and decodes a JSON response into out (when non-nil).
// Non-2xx responses become *domain.UpstreamError carrying GoTrue's message.
func doGoTrue(ctx context.Context, hc *http.Client, baseURL string, r gotrueRequest, out any) error {
	endpoint := baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", r.path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", r.path, err)
	}
	req.Header.Set("apikey", r.apiKey)
	bearer := r.bearer
	if bearer == "" {
		bearer = r.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return &domain.UpstreamError{Service: "auth", Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", r.path, err)
	}

	if resp.StatusCode >= 400 {
		return &domain.UpstreamError{
			Service: "auth",
			Status:  resp.StatusCode,
			Message: gotrueMessage(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.path, err)
	}
	return nil
}

// gotrueMessage picks the human-readable message out of a GoTrue error body.
func gotrueMessage(body []byte) string {
	var e struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
			if s != "" {
				return s
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty response"
	}
	return msg
}
