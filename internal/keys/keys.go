// Package keys derives storage keys from client-supplied filenames.
//
// Filenames arriving in multipart headers are untrusted: they may be empty,
// carry quoting artifacts or path separators. This package is the only place
// where they influence the resulting object key.
package keys

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// extPattern accepts a single dot followed by a plain alphanumeric suffix.
var extPattern = regexp.MustCompile(`^\.[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Directives are the caller's naming instructions for an upload.
type Directives struct {
	KeepOriginalName bool
	OverrideName     string
}

// preserve reports whether the preserve-name mode applies.
func (d Directives) preserve() bool {
	return d.KeepOriginalName && strings.TrimSpace(d.OverrideName) != ""
}

// Policy maps filenames to keys. The zero value is not usable; call New.
type Policy struct {
	newID func() string
}

// New returns a Policy that names generated keys with random UUIDs.
func New() *Policy {
	return &Policy{newID: uuid.NewString}
}

// NewWithIDs returns a Policy using newID for generated keys.
func NewWithIDs(newID func() string) *Policy {
	return &Policy{newID: newID}
}

// Derive returns the storage key for filename.
//
// With KeepOriginalName set and a non-blank OverrideName the override is
// normalized and used as the key. Otherwise the key is a fresh identifier
// followed by the filename's extension.
func (p *Policy) Derive(filename string, d Directives) string {
	if d.preserve() {
		if key := Normalize(d.OverrideName); key != "" {
			return key
		}
	}
	return p.newID() + Ext(filename)
}

// Ext returns the final ".ext" segment of an untrusted filename, or "" when
// there is none or it does not look like an extension.
func Ext(filename string) string {
	name := strings.Trim(strings.TrimSpace(filename), `"`)
	name = strings.ReplaceAll(name, `\`, "/")
	ext := path.Ext(name)
	if !extPattern.MatchString(ext) {
		return ""
	}
	return ext
}

// Normalize lower-cases name, strips double quotes and control characters,
// collapses whitespace runs to a hyphen and drops empty, "." and ".." path
// segments so the result never escapes the bucket root.
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.Map(func(r rune) rune {
		if r == '"' || (unicode.IsControl(r) && !unicode.IsSpace(r)) {
			return -1
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), "-")
	name = strings.ReplaceAll(name, `\`, "/")

	segments := strings.Split(name, "/")
	kept := segments[:0]
	for _, seg := range segments {
		seg = strings.Trim(seg, "-")
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, "/")
}

// Disambiguate inserts "-n" before the extension of key.
// It is used when one upload would otherwise write the same key twice.
func Disambiguate(key string, n int) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "-" + strconv.Itoa(n) + ext
}
