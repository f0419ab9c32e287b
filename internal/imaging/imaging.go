// Package imaging decodes raster images into the 8-bit RGB samples PDF
// image XObjects carry.
package imaging

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Sentinel errors for image decoding.
var (
	ErrImageNotFound = errors.New("image not found")
	ErrImageDecode   = errors.New("image decode failed")
)

// Image is a decoded raster, 3 bytes per pixel, row-major, no padding.
type Image struct {
	Width  int
	Height int
	RGB    []byte
}

// Decoder turns an image reference into RGB samples.
type Decoder interface {
	Decode(path string) (*Image, error)
}

// FileDecoder reads images from the filesystem. Relative paths are joined
// to BaseDir. PNG, JPEG, GIF, BMP, TIFF and WebP are supported; remote
// references are rejected as not found.
type FileDecoder struct {
	BaseDir string
}

var _ Decoder = (*FileDecoder)(nil)

// Decode opens and decodes path. Transparent pixels are composited over
// white.
func (d *FileDecoder) Decode(path string) (*Image, error) {
	if path == "" || fileutil.IsURL(path) {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, path)
	}
	full := fileutil.Resolve(d.BaseDir, path)

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, full)
		}
		return nil, fmt.Errorf("%w: %v", ErrImageNotFound, err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, full, err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("%w: %s: empty %s image", ErrImageDecode, full, format)
	}
	return FromImage(img), nil
}

// FromImage flattens img to RGB over a white background.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, b.Min, draw.Over)

	rgb := make([]byte, 0, w*h*3)
	for y := range h {
		row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			rgb = append(rgb, row[x], row[x+1], row[x+2])
		}
	}
	return &Image{Width: w, Height: h, RGB: rgb}
}
