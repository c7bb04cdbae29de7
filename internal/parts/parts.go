// Package parts decodes the file sections of a single multipart body.
//
// A Decoder is forward-only: each call to Next invalidates the Part returned
// by the previous call, so a part must be drained before asking for the next.
package parts

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
)

var (
	// ErrTooLarge is returned once more than the configured number of body bytes has been read.
	ErrTooLarge = errors.New("multipart body exceeds size limit")
	// ErrMalformed wraps any other failure to parse the body.
	ErrMalformed = errors.New("malformed multipart body")
	// ErrNoBoundary is returned by Boundary when the content type carries no boundary parameter.
	ErrNoBoundary = errors.New("content type has no multipart boundary")
)

// Part is one file section of the body. It reads the section's content.
type Part struct {
	FileName    string
	FieldName   string
	ContentType string

	r io.Reader
}

// Read reads the part content, reporting size-limit and parse failures as
// ErrTooLarge and ErrMalformed.
func (p *Part) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if err != nil && err != io.EOF {
		err = classify(err)
	}
	return n, err
}

// Decoder yields the file parts of a multipart body in order.
type Decoder struct {
	mr  *multipart.Reader
	err error
}

// NewDecoder returns a Decoder reading a body delimited by boundary.
// Reading more than maxBytes bytes of body fails with ErrTooLarge;
// maxBytes <= 0 disables the limit.
func NewDecoder(body io.Reader, boundary string, maxBytes int64) (*Decoder, error) {
	if boundary == "" {
		return nil, ErrNoBoundary
	}
	if maxBytes > 0 {
		body = &limitedReader{r: body, remaining: maxBytes}
	}
	return &Decoder{mr: multipart.NewReader(body, boundary)}, nil
}

// Next returns the next part that declares a filename. Parts without one,
// such as plain form fields, are skipped. It returns io.EOF when no file
// parts remain, including when the boundary never occurs in the body.
func (d *Decoder) Next() (*Part, error) {
	if d.err != nil {
		return nil, d.err
	}
	for {
		p, err := d.mr.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) && !errors.Is(err, ErrTooLarge) {
				d.err = io.EOF
			} else {
				d.err = classify(err)
			}
			return nil, d.err
		}
		name := p.FileName()
		if name == "" {
			continue
		}
		return &Part{
			FileName:    name,
			FieldName:   p.FormName(),
			ContentType: p.Header.Get("Content-Type"),
			r:           p,
		}, nil
	}
}

// Boundary extracts the boundary parameter from a multipart content type header.
// Boundaries that are not valid MIME tokens are still accepted when they are
// written unquoted, as some clients do.
func Boundary(contentType string) (string, error) {
	if strings.TrimSpace(contentType) == "" {
		return "", ErrNoBoundary
	}
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if b := params["boundary"]; b != "" {
			return b, nil
		}
		return "", ErrNoBoundary
	}

	for _, param := range strings.Split(contentType, ";")[1:] {
		k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "boundary") {
			if b := strings.Trim(strings.TrimSpace(v), `"`); b != "" {
				return b, nil
			}
		}
	}
	return "", ErrNoBoundary
}

func classify(err error) error {
	if errors.Is(err, ErrTooLarge) {
		return ErrTooLarge
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}

// limitedReader fails with ErrTooLarge after remaining bytes, mirroring http.MaxBytesReader.
type limitedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.exceeded {
		return 0, ErrTooLarge
	}
	if len(p) == 0 {
		return 0, nil
	}
	// Read one byte past the limit to tell "exactly at the limit" from "over it".
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	if int64(n) <= l.remaining {
		l.remaining -= int64(n)
		return n, err
	}
	n = int(l.remaining)
	l.remaining = 0
	l.exceeded = true
	return n, ErrTooLarge
}
