package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// patternRGBA builds an opaque image whose pixel at buffer position (x, y)
// is R=x, G=y, B=0. Sizes must stay below 256.
func patternRGBA(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

// newPatternImage wraps patternRGBA in an Image bound to backend b.
func newPatternImage(t *testing.T, width, height int, opts ...Option) *Image {
	t.Helper()
	img, err := FromImage(patternRGBA(width, height), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { img.Close() })
	return img
}

// newTwoColorPaletted builds a 1-bit image with a black/white checkerboard.
func newTwoColorPaletted(width, height int) *image.Paletted {
	p := image.NewPaletted(image.Rect(0, 0, width, height), color.Palette{color.Black, color.White})
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.SetColorIndex(x, y, uint8((x+y)%2))
		}
	}
	return p
}

// writeFile stores data in a temp directory and returns the path.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// at reads the buffer pixel at top-left based (x, y).
func at(img *Image, x, y int) Color {
	b := img.Pixels().Bounds()
	return ColorOf(img.Pixels().At(b.Min.X+x, b.Min.Y+y))
}
