package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

// Pixel access uses a bottom-left origin: (0,0) is the bottom-left pixel
// and Y grows upward. ToRawBits emits rows in the same order, so row y of
// the raw buffer holds the pixels addressed with that y.

// native maps a bottom-left coordinate to a buffer point.
func (img *Image) native(op string, x, y int) (image.Point, error) {
	if err := img.check(op); err != nil {
		return image.Point{}, err
	}
	w, h := img.Width(), img.Height()
	if x < 0 || y < 0 || x >= w || y >= h {
		return image.Point{}, newError(op, ErrInvalidRegion, errors.Errorf("pixel (%d,%d) outside %dx%d image", x, y, w, h))
	}
	origin := img.pix.Bounds().Min
	return image.Pt(origin.X+x, origin.Y+h-1-y), nil
}

// ColorAt returns the color of the pixel at (x, y).
func (img *Image) ColorAt(x, y int) (Color, error) {
	p, err := img.native("color", x, y)
	if err != nil {
		return Color{}, err
	}
	return ColorOf(img.pix.At(p.X, p.Y)), nil
}

// SetColor sets the pixel at (x, y). On palettized images the nearest
// palette entry is stored; images without alpha store c as opaque.
func (img *Image) SetColor(x, y int, c Color) error {
	p, err := img.native("set color", x, y)
	if err != nil {
		return err
	}
	img.store(img.mutable(), p, c)
	return nil
}

func (img *Image) store(dst draw.Image, p image.Point, c Color) {
	if img.bpp == 24 || img.bpp == 48 {
		c.A = 0xff
	}
	dst.Set(p.X, p.Y, c.nrgba())
}

// ColorIndexAt returns the palette index of the pixel at (x, y).
func (img *Image) ColorIndexAt(x, y int) (int, error) {
	p, err := img.native("color index", x, y)
	if err != nil {
		return 0, err
	}
	pal, ok := img.pix.(*image.Paletted)
	if !ok {
		return 0, newError("color index", ErrUnsupportedOperation, errors.Errorf("%d-bit image has no palette", img.bpp))
	}
	return int(pal.ColorIndexAt(p.X, p.Y)), nil
}

// IsTransparentAt reports whether the pixel at (x, y) is fully transparent.
func (img *Image) IsTransparentAt(x, y int) (bool, error) {
	c, err := img.ColorAt(x, y)
	if err != nil {
		return false, err
	}
	return c.A == 0, nil
}

// Transparent reports whether the image carries any transparency, either in
// its palette or in its pixels.
func (img *Image) Transparent() bool {
	if img.Empty() {
		return false
	}
	return hasTransparency(img.pix)
}

// TransparentIndex returns the first fully transparent palette entry, or -1.
func (img *Image) TransparentIndex() int {
	pal, ok := img.Pixels().(*image.Paletted)
	if !ok {
		return -1
	}
	for i, c := range pal.Palette {
		if _, _, _, a := c.RGBA(); a == 0 {
			return i
		}
	}
	return -1
}

// PaletteColor returns palette entry i.
func (img *Image) PaletteColor(i int) (Color, error) {
	if err := img.check("palette"); err != nil {
		return Color{}, err
	}
	pal, ok := img.pix.(*image.Paletted)
	if !ok {
		return Color{}, newError("palette", ErrUnsupportedOperation, errors.Errorf("%d-bit image has no palette", img.bpp))
	}
	if i < 0 || i >= len(pal.Palette) {
		return Color{}, newError("palette", ErrInvalidArgument, errors.Errorf("index %d outside palette of %d", i, len(pal.Palette)))
	}
	return ColorOf(pal.Palette[i]), nil
}

// ReplaceColor replaces every pixel equal to from with to and returns the
// number of pixels changed.
func (img *Image) ReplaceColor(from, to Color) (int, error) {
	return img.ReplaceColors(
		func(c Color) bool { return c == from },
		func(Color) Color { return to },
	)
}

// ReplaceColors applies change to every pixel for which match returns true
// and returns the number of pixels changed.
func (img *Image) ReplaceColors(match func(Color) bool, change func(Color) Color) (int, error) {
	if err := img.check("replace"); err != nil {
		return 0, err
	}
	if match == nil || change == nil {
		return 0, newError("replace", ErrInvalidArgument, errors.New("nil match or change function"))
	}
	b := img.pix.Bounds()
	type hit struct {
		p image.Point
		c Color
	}
	var hits []hit
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := ColorOf(img.pix.At(x, y))
			if match(c) {
				hits = append(hits, hit{image.Pt(x, y), change(c)})
			}
		}
	}
	if len(hits) == 0 {
		return 0, nil
	}
	dst := img.mutable()
	for _, h := range hits {
		img.store(dst, h.p, h.c)
	}
	return len(hits), nil
}

// mutable returns the buffer as a draw.Image, converting read-only buffers
// such as YCbCr to the layout of the current depth.
func (img *Image) mutable() draw.Image {
	if d, ok := img.pix.(draw.Image); ok {
		return d
	}
	d := layoutOf(img.pix, img.bpp).fit(img.pix).(draw.Image)
	img.pix = d
	return d
}

// ToRawBits packs the pixels into a tightly packed buffer with stride
// width*bpp/8. Supported depths: 8 (luminance), 24 (R,G,B) and 32
// (R,G,B,A, non-premultiplied). Row 0 is the bottom row.
func (img *Image) ToRawBits(bpp int) ([]byte, error) {
	if err := img.check("raw bits"); err != nil {
		return nil, err
	}
	if bpp != 8 && bpp != 24 && bpp != 32 {
		return nil, newError("raw bits", ErrUnsupportedOperation, errors.Errorf("%d bits per pixel", bpp))
	}
	w, h := img.Width(), img.Height()
	n := bpp / 8
	stride := w * n
	out := make([]byte, stride*h)
	b := img.pix.Bounds()
	for y := 0; y < h; y++ {
		row := out[y*stride : (y+1)*stride]
		sy := b.Min.Y + h - 1 - y
		for x := 0; x < w; x++ {
			c := img.pix.At(b.Min.X+x, sy)
			px := row[x*n : (x+1)*n]
			if n == 1 {
				px[0] = color.GrayModel.Convert(c).(color.Gray).Y
				continue
			}
			nc := ColorOf(c)
			px[0], px[1], px[2] = nc.R, nc.G, nc.B
			if n == 4 {
				px[3] = nc.A
			}
		}
	}
	return out, nil
}
