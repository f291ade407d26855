// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the two JSON helpers every handler uses.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/helpinghands/volunteerhub/internal/app/system/apierr"
)

// maxBodyBytes caps request bodies; payloads here are small records.
const maxBodyBytes = 1 << 20

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads the request body into v, returning a validation error on
// malformed JSON or unknown fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apierr.Validation("invalid request body: %v", err)
	}
	return nil
}
