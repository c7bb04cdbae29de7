package storage

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by store errors reporting a missing bucket or key.
var ErrNotFound = errors.New("object not found")

// Error is returned by Store implementations when the backend rejects a call.
// StatusCode is the HTTP status the store answered with, or 0 if the call never got a response.
type Error struct {
	Op         string
	Bucket     string
	Key        string
	StatusCode int
	Code       string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Bucket != "" {
		msg += " " + e.Bucket
		if e.Key != "" {
			msg += "/" + e.Key
		}
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d", e.StatusCode)
		if e.Code != "" {
			msg += " " + e.Code
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports 404 answers as ErrNotFound.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// StatusCode extracts the store's HTTP status from err, or 0 when there is none.
func StatusCode(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
