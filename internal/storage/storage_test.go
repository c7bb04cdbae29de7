package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerb(t *testing.T) {
	v, err := ParseVerb("get")
	require.NoError(t, err)
	assert.Equal(t, VerbGet, v)

	v, err = ParseVerb(" PUT ")
	require.NoError(t, err)
	assert.Equal(t, VerbPut, v)

	_, err = ParseVerb("DELETE")
	assert.Error(t, err)
}

func TestError_Message(t *testing.T) {
	err := &Error{
		Op:         "put object",
		Bucket:     "media",
		Key:        "a.png",
		StatusCode: http.StatusForbidden,
		Code:       "AccessDenied",
		Err:        errors.New("denied"),
	}
	assert.Equal(t, "put object media/a.png (status 403 AccessDenied): denied", err.Error())

	bare := &Error{Op: "list buckets", Err: errors.New("dial tcp: refused")}
	assert.Equal(t, "list buckets: dial tcp: refused", bare.Error())
}

func TestError_IsNotFound(t *testing.T) {
	missing := fmt.Errorf("download: %w", &Error{Op: "get object", StatusCode: http.StatusNotFound})
	assert.True(t, errors.Is(missing, ErrNotFound))

	denied := &Error{Op: "get object", StatusCode: http.StatusForbidden}
	assert.False(t, errors.Is(denied, ErrNotFound))
}

func TestError_UnwrapsCause(t *testing.T) {
	err := &Error{Op: "get object", Err: context.Canceled}
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStatusCode(t *testing.T) {
	wrapped := fmt.Errorf("upload: %w", &Error{Op: "put object", StatusCode: http.StatusServiceUnavailable})
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(wrapped))
	assert.Equal(t, 0, StatusCode(errors.New("boom")))
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", endpointURL("localhost:9000", false))
	assert.Equal(t, "https://s3.example.com", endpointURL("s3.example.com", true))
	assert.Equal(t, "https://custom:9000", endpointURL("https://custom:9000", false))
}

func TestMinioError_NonMinioCause(t *testing.T) {
	err := minioError("list buckets", "", "", errors.New("boom"))

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list buckets", se.Op)
	assert.Equal(t, 0, se.StatusCode)
}

type statusErr struct{ code int }

func (e statusErr) Error() string                 { return fmt.Sprintf("status %d", e.code) }
func (e statusErr) HTTPStatusCode() int           { return e.code }
func (e statusErr) ErrorCode() string             { return "NoSuchKey" }
func (e statusErr) ErrorMessage() string          { return "missing" }
func (e statusErr) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func TestS3Error_ExtractsStatus(t *testing.T) {
	err := s3Error("get object", "media", "gone.txt", statusErr{code: http.StatusNotFound})

	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Contains(t, err.Error(), "NoSuchKey")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "ftp"})
	assert.Error(t, err)
}
