package renderer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Formats lists the supported output formats
var Formats = []string{"png", "webp", "tga"}

// FormatFromPath infers the output format from a file extension
func FormatFromPath(path string) (string, bool) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, supported := range Formats {
		if format == supported {
			return format, true
		}
	}
	return "", false
}

// Downsample scales img to width x height with Catmull-Rom filtering
func Downsample(img *image.Gray16, width, height int) *image.Gray16 {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}

	dst := image.NewGray16(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, toNRGBA(img), nil)
	case "tga":
		return tga.Encode(w, toNRGBA(img))
	default:
		return fmt.Errorf("renderer: unsupported format %q (supported: %v)", format, Formats)
	}
}

// SaveImage encodes img to the file at path
func SaveImage(path string, img image.Image, format string) (err error) {
	if _, ok := FormatFromPath("." + format); !ok {
		return fmt.Errorf("renderer: unsupported format %q (supported: %v)", format, Formats)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("renderer: create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("renderer: close %s: %w", path, closeErr)
		}
	}()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("renderer: encode %s: %w", path, err)
	}
	return nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}
