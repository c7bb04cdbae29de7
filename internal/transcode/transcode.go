// Package transcode moves binary payloads across text-only transports using
// standard, padded base64.
package transcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTooLarge is returned when a stream exceeds the configured byte limit.
var ErrTooLarge = errors.New("payload exceeds size limit")

// encoding rejects non-zero padding bits so every byte sequence has exactly one encoding.
var encoding = base64.StdEncoding.Strict()

// DecodeError reports text that is not valid base64.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid base64 input at byte %d", e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode returns the base64 text form of b.
func Encode(b []byte) string {
	return encoding.EncodeToString(b)
}

// Decode returns the bytes encoded in s.
// Line breaks are not accepted; the input must be a single padded base64 string.
func Decode(s string) ([]byte, error) {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return nil, &DecodeError{Offset: int64(i), Err: base64.CorruptInputError(i)}
	}
	b, err := encoding.DecodeString(s)
	if err != nil {
		var corrupt base64.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, &DecodeError{Offset: int64(corrupt), Err: err}
		}
		return nil, &DecodeError{Err: err}
	}
	return b, nil
}

// EncodeReader reads r to EOF in one pass and returns its base64 text along
// with the number of source bytes. Reading more than limit bytes fails with
// ErrTooLarge; a limit <= 0 disables the check.
func EncodeReader(r io.Reader, limit int64) (string, int64, error) {
	var sb strings.Builder
	if limit > 0 {
		sb.Grow(encoding.EncodedLen(int(min(limit, 1<<20))))
		r = io.LimitReader(r, limit+1)
	}

	enc := base64.NewEncoder(encoding, &sb)
	n, err := io.Copy(enc, r)
	if err != nil {
		return "", n, fmt.Errorf("read payload: %w", err)
	}
	if limit > 0 && n > limit {
		return "", n, ErrTooLarge
	}
	if err := enc.Close(); err != nil {
		return "", n, fmt.Errorf("flush encoder: %w", err)
	}
	return sb.String(), n, nil
}

// EncodedLen returns the length of the text form of n bytes.
func EncodedLen(n int64) int64 {
	return (n + 2) / 3 * 4
}
