package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// checker returns a 2x2 image: red, green / blue, transparent.
func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{})
	return img
}

// opaque returns a 2x2 image without transparency.
func opaque() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 9, G: 9, B: 9, A: 255})
	return img
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func encode(t *testing.T, fn func(*bytes.Buffer) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(&buf))
	return buf.Bytes()
}

func TestFromImage(t *testing.T) {
	t.Parallel()

	got := FromImage(checker())

	assert.Equal(t, 2, got.Width)
	assert.Equal(t, 2, got.Height)
	assert.Equal(t, []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}, got.RGB)
}

func TestFromImage_OffsetBounds(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(5, 5, 6, 7))
	img.Set(5, 5, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(5, 6, color.RGBA{R: 40, G: 50, B: 60, A: 255})

	got := FromImage(img)
	assert.Equal(t, 1, got.Width)
	assert.Equal(t, 2, got.Height)
	assert.Equal(t, []byte{10, 20, 30, 40, 50, 60}, got.RGB)
}

func TestFileDecoder_Formats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := opaque()

	tests := []struct {
		name string
		data []byte
	}{
		{"x.png", encode(t, func(b *bytes.Buffer) error { return png.Encode(b, src) })},
		{"x.gif", encode(t, func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) })},
		{"x.bmp", encode(t, func(b *bytes.Buffer) error { return bmp.Encode(b, src) })},
		{"x.tiff", encode(t, func(b *bytes.Buffer) error { return tiff.Encode(b, src, nil) })},
		{"x.jpg", encode(t, func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) })},
	}

	for _, tt := range tests {
		writeFile(t, dir, tt.name, tt.data)
	}

	d := &FileDecoder{BaseDir: dir}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			img, err := d.Decode(tt.name)
			require.NoError(t, err)
			assert.Equal(t, 2, img.Width)
			assert.Equal(t, 2, img.Height)
			assert.Len(t, img.RGB, 12)
		})
	}
}

func TestFileDecoder_AbsolutePath(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.png", encode(t, func(b *bytes.Buffer) error {
		return png.Encode(b, checker())
	}))

	img, err := (&FileDecoder{BaseDir: "/elsewhere"}).Decode(path)
	require.NoError(t, err)
	assert.Equal(t, byte(255), img.RGB[0])
}

func TestFileDecoder_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bad.png", []byte("not an image"))
	d := &FileDecoder{BaseDir: dir}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing", "nope.png", ErrImageNotFound},
		{"empty path", "", ErrImageNotFound},
		{"remote", "https://example.com/x.png", ErrImageNotFound},
		{"data uri", "data:image/png;base64,AAAA", ErrImageNotFound},
		{"garbage", "bad.png", ErrImageDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			img, err := d.Decode(tt.path)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
