package object

import (
	"errors"
	"net/http"

	"github.com/radif/gateway/internal/storage"
)

// Kind classifies gateway failures.
type Kind int

const (
	// KindInternal is anything unanticipated. Details are logged, never returned.
	KindInternal Kind = iota
	// KindClientInput is a missing or blank required field, detected before any I/O.
	KindClientInput
	// KindDecode is a malformed multipart body or base64 payload.
	KindDecode
	// KindStore is a rejection reported by the object store.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindClientInput:
		return "client_input"
	case KindDecode:
		return "decode"
	case KindStore:
		return "store"
	}
	return "internal"
}

// Error is the only error type returned across the gateway boundary.
type Error struct {
	Kind Kind
	// Message is safe to show to callers.
	Message string
	// StatusCode is the store's status, when the store answered.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the error kind onto a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindClientInput, KindDecode:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage is the message written to the response body.
func (e *Error) PublicMessage() string {
	if e.Kind == KindInternal || e.Message == "" {
		return msgInternal
	}
	return e.Message
}

// Stable client-facing messages.
const (
	msgBucketRequired     = "bucket name is required"
	msgKeyRequired        = "object key is required"
	msgContentTypeMissing = "content-type header is required"
	msgBoundaryMissing    = "content-type header has no multipart boundary"
	msgInvalidBase64      = "request body is not valid base64"
	msgMalformedMultipart = "malformed multipart body"
	msgBodyTooLarge       = "request body exceeds size limit"
	msgNoFileContent      = "no file content found"
	msgObjectTooLarge     = "object exceeds transfer size limit, request a presigned url instead"
	msgInvalidVerb        = "verb must be GET or PUT"
	msgInvalidTTL         = "ttl is out of range"
	msgStoreFailed        = "object store request failed"
	msgInternal           = "internal server error"
)

func clientError(msg string) *Error {
	return &Error{Kind: KindClientInput, Message: msg}
}

func decodeError(msg string, err error) *Error {
	return &Error{Kind: KindDecode, Message: msg, Err: err}
}

func storeError(err error) *Error {
	return &Error{
		Kind:       KindStore,
		Message:    msgStoreFailed,
		StatusCode: storage.StatusCode(err),
		Err:        err,
	}
}

func internalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, Err: err}
}

// AsError converts err into an *Error, treating unknown errors as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return internalError(err)
}
