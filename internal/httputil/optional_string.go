package httputil

import (
	"bytes"
	"encoding/json"

	"rpgmanager/internal/domain/models"
)

// OptionalString tracks presence and value for JSON PATCH semantics (RFC 7396):
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Domain converts to the transport-agnostic form services accept. An empty
// string clears the field like null does.
func (o OptionalString) Domain() models.OptionalString {
	if o.Value != nil && *o.Value == "" {
		return models.OptionalString{Present: o.Present}
	}
	return models.OptionalString{Present: o.Present, Value: o.Value}
}
