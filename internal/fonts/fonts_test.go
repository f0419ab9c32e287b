package fonts

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func fontDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return dir
}

func TestStandard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		family string
		want   string
		wantOK bool
	}{
		{"", Helvetica, true},
		{"Helvetica", Helvetica, true},
		{"Times", TimesRoman, true},
		{"Times-Roman", TimesRoman, true},
		{"Times New Roman", TimesRoman, true},
		{"Courier", Courier, true},
		{"times", "", false},
		{"Arial", "", false},
		{"sans-serif", "", false},
		{"monospace", "", false},
		{"Courier New", "", false},
		{"Go", "", false},
		{"Roboto", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			t.Parallel()

			got, ok := Standard(tt.family)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirResolver_Resolve(t *testing.T) {
	t.Parallel()

	dir := fontDir(t, map[string][]byte{
		"Go.ttf":       goregular.TTF,
		"Go Mono.otf":  gomono.TTF,
		"GoItalic.ttf": goitalic.TTF,
	})
	r := NewDirResolver(dir)

	t.Run("regular", func(t *testing.T) {
		t.Parallel()

		face, err := r.Resolve("Go")
		require.NoError(t, err)

		assert.Equal(t, "Go", face.Family)
		assert.NotEmpty(t, face.PostScriptName)
		assert.Equal(t, filepath.Join(dir, "Go.ttf"), face.Path)
		assert.NotZero(t, face.Flags&FlagNonsymbolic)
		assert.Zero(t, face.Flags&FlagItalic)
		assert.Greater(t, face.Ascent, 0.0)
		assert.Less(t, face.Descent, 0.0)
		assert.Less(t, face.CapHeight, 1000.0)
		assert.Less(t, face.BBox[0], face.BBox[2])
		assert.Less(t, face.BBox[1], face.BBox[3])
		assert.Equal(t, 80.0, face.StemV)
	})

	t.Run("otf extension", func(t *testing.T) {
		t.Parallel()

		face, err := r.Resolve("Go Mono")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Go Mono.otf"), face.Path)
	})

	t.Run("italic", func(t *testing.T) {
		t.Parallel()

		face, err := r.Resolve("GoItalic")
		require.NoError(t, err)
		assert.NotZero(t, face.Flags&FlagItalic)
	})
}

func TestDirResolver_Errors(t *testing.T) {
	t.Parallel()

	dir := fontDir(t, map[string][]byte{
		"Broken.ttf": []byte("not a font"),
	})
	r := NewDirResolver(dir)

	tests := []struct {
		name    string
		family  string
		wantErr error
	}{
		{"missing file", "Roboto", ErrFontNotFound},
		{"unparseable file", "Broken", ErrFontParse},
		{"path separator", "../Broken", ErrFontNotFound},
		{"backslash", `..\Broken`, ErrFontNotFound},
		{"dot dot", "..", ErrFontNotFound},
		{"blank", "  ", ErrFontNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			face, err := r.Resolve(tt.family)
			assert.Nil(t, face)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDirResolver_Cache(t *testing.T) {
	t.Parallel()

	dir := fontDir(t, map[string][]byte{"Go.ttf": goregular.TTF})
	r := NewDirResolver(dir)

	first, err := r.Resolve("Go")
	require.NoError(t, err)
	_, missErr := r.Resolve("Missing")
	require.ErrorIs(t, missErr, ErrFontNotFound)

	require.NoError(t, os.Remove(filepath.Join(dir, "Go.ttf")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Missing.ttf"), goregular.TTF, 0o644))

	again, err := r.Resolve("Go")
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = r.Resolve("Missing")
	assert.ErrorIs(t, err, ErrFontNotFound, "failures are cached too")
}

func TestDirResolver_Concurrent(t *testing.T) {
	t.Parallel()

	r := NewDirResolver(fontDir(t, map[string][]byte{"Go.ttf": goregular.TTF}))

	faces := make([]*Face, 16)
	var wg sync.WaitGroup
	for i := range faces {
		wg.Add(1)
		go func() {
			defer wg.Done()
			faces[i], _ = r.Resolve("Go")
		}()
	}
	wg.Wait()

	require.NotNil(t, faces[0])
	for _, f := range faces[1:] {
		assert.Same(t, faces[0], f)
	}
}

func TestNewDirResolver_DefaultDir(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultDir, NewDirResolver("").Dir)
	assert.Equal(t, "x", NewDirResolver("x").Dir)

	var zero DirResolver
	_, err := zero.Resolve("Nope")
	assert.ErrorIs(t, err, ErrFontNotFound)
}
