// internal/app/system/apierr/apierr.go

// Package apierr defines the error taxonomy shared by stores and handlers.
//
// Every semantic failure is one of five kinds; anything else (a Mongo
// timeout, a disconnect) is Internal. Handlers render errors with Render,
// which maps kinds to HTTP status codes and a JSON body carrying a stable
// "kind" discriminator so clients can decide whether to correct input,
// re-fetch state, or give up.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies an Error.
type Kind string

const (
	KindValidation    Kind = "validation"    // malformed/missing input; correct and resubmit
	KindConflict      Kind = "conflict"      // duplicate join request and the like
	KindAuthorization Kind = "authorization" // actor lacks rights over the target
	KindState         Kind = "state"         // illegal transition; re-fetch current state
	KindNotFound      Kind = "not_found"     // dangling reference; re-fetch
	KindInternal      Kind = "internal"      // transient store failure
)

// Error is a typed failure. Msg is safe to show to callers; Err carries
// the underlying cause for logs.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Conflict returns a KindConflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Authorization returns a KindAuthorization error.
func Authorization(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Msg: fmt.Sprintf(format, args...)}
}

// State returns a KindState error.
func State(format string, args ...any) *Error {
	return &Error{Kind: KindState, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure.
func Internal(err error, msg string) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the kind from err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is lets errors.Is match on kind through sentinel comparison:
// errors.Is(err, &Error{Kind: KindConflict}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Msg == "" && t.Kind == e.Kind
}

// statusFor maps an error kind to its HTTP status code. State shares 409
// with Conflict; the JSON "kind" field disambiguates.
func statusFor(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict, KindState:
		return http.StatusConflict
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type body struct {
	Kind  Kind   `json:"kind"`
	Error string `json:"error"`
}

// Render writes err as a JSON response. Internal errors are logged with
// their cause and surfaced with a generic message; semantic kinds pass
// their message through untouched.
func Render(w http.ResponseWriter, log *zap.Logger, err error) {
	kind := KindOf(err)
	msg := "internal error"

	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		msg = e.Msg
	} else if log != nil {
		log.Error("internal error", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(kind))
	_ = json.NewEncoder(w).Encode(body{Kind: kind, Error: msg})
}
