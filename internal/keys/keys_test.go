package keys_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radif/gateway/internal/keys"
)

func TestDerive_GeneratedKeepsFullExtension(t *testing.T) {
	p := keys.New()

	for _, name := range []string{"report.pdf", "photo.jpeg", "archive.tar.gz", "My Notes.MD"} {
		key := p.Derive(name, keys.Directives{})
		ext := keys.Ext(name)
		require.NotEmpty(t, ext, name)
		assert.True(t, strings.HasSuffix(key, ext), "key %q should end with %q", key, ext)
		assert.Len(t, strings.TrimSuffix(key, ext), 36, "prefix should be a uuid")
	}
}

func TestDerive_GeneratedIsUnique(t *testing.T) {
	p := keys.New()
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		key := p.Derive("a.bin", keys.Directives{})
		_, dup := seen[key]
		require.False(t, dup, "duplicate key %q", key)
		seen[key] = struct{}{}
	}
}

func TestDerive_NoExtension(t *testing.T) {
	p := keys.NewWithIDs(func() string { return "id" })

	assert.Equal(t, "id", p.Derive("README", keys.Directives{}))
	assert.Equal(t, "id", p.Derive("", keys.Directives{}))
	assert.Equal(t, "id", p.Derive("trailing.", keys.Directives{}))
}

func TestDerive_PreserveName(t *testing.T) {
	p := keys.NewWithIDs(func() string { return "id" })

	key := p.Derive("My File.PDF", keys.Directives{KeepOriginalName: true, OverrideName: "My File.PDF"})
	assert.Equal(t, "my-file.pdf", key)
}

func TestDerive_PreserveNeedsBothDirectives(t *testing.T) {
	p := keys.NewWithIDs(func() string { return "id" })

	assert.Equal(t, "id.pdf", p.Derive("a.pdf", keys.Directives{KeepOriginalName: true}))
	assert.Equal(t, "id.pdf", p.Derive("a.pdf", keys.Directives{KeepOriginalName: true, OverrideName: "   "}))
	assert.Equal(t, "id.pdf", p.Derive("a.pdf", keys.Directives{OverrideName: "custom.pdf"}))
}

func TestDerive_PreserveFallsBackWhenNothingSurvives(t *testing.T) {
	p := keys.NewWithIDs(func() string { return "id" })

	assert.Equal(t, "id.txt", p.Derive("x.txt", keys.Directives{KeepOriginalName: true, OverrideName: "../.."}))
}

func TestExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.png", ".png"},
		{`"quoted.jpg"`, ".jpg"},
		{`C:\Users\me\scan.TIFF`, ".TIFF"},
		{"dir.d/noext", ""},
		{"weird.p g", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keys.Ext(tt.name), tt.name)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My File.PDF", "my-file.pdf"},
		{`"Quarterly   Report".xlsx`, "quarterly-report.xlsx"},
		{"  spaced\tout  name.txt ", "spaced-out-name.txt"},
		{"../../etc/passwd", "etc/passwd"},
		{"/absolute/path.txt", "absolute/path.txt"},
		{`..\windows\evil.exe`, "windows/evil.exe"},
		{"a/./b//c.txt", "a/b/c.txt"},
		{"bell\a.txt", "bell.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keys.Normalize(tt.in), tt.in)
	}
}

func TestDisambiguate(t *testing.T) {
	assert.Equal(t, "my-file-1.pdf", keys.Disambiguate("my-file.pdf", 1))
	assert.Equal(t, "notes-2", keys.Disambiguate("notes", 2))
	assert.Equal(t, "v1.0/data-3", keys.Disambiguate("v1.0/data", 3))
}
