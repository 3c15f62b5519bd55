// Package jsonutil provides the JSON helpers shared by the REST client and the mock API:
// error wrapping on decode and response writing.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v any, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalArrayAllowEmpty unmarshals a JSON array into a slice.
// A JSON null decodes to an empty, non-nil slice.
func UnmarshalArrayAllowEmpty[T any](data []byte, context string) ([]T, error) {
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []T{}
	}
	return entries, nil
}

// DecodeStrict decodes a single JSON value from r into v, rejecting unknown fields
// and trailing data.
func DecodeStrict(r io.Reader, v any, context string) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	if dec.More() {
		return fmt.Errorf("%s: unexpected data after JSON value", context)
	}
	return nil
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// ErrorBody is the JSON error envelope returned by the mock API.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteError writes an ErrorBody with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, ErrorBody{Error: msg})
}
