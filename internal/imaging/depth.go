package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// depthOf reports the bits per pixel of a decoded buffer.
func depthOf(img image.Image) int {
	switch m := img.(type) {
	case *image.Paletted:
		return paletteDepth(m.Palette)
	case *image.Gray:
		return 8
	case *image.Gray16:
		return 16
	case *image.YCbCr, *image.CMYK:
		return 24
	case *image.RGBA:
		if m.Opaque() {
			return 24
		}
		return 32
	case *image.NRGBA:
		if m.Opaque() {
			return 24
		}
		return 32
	case *image.RGBA64:
		if m.Opaque() {
			return 48
		}
		return 64
	case *image.NRGBA64:
		if m.Opaque() {
			return 48
		}
		return 64
	}
	return 32
}

func paletteDepth(p color.Palette) int {
	switch {
	case len(p) <= 2:
		return 1
	case len(p) <= 16:
		return 4
	}
	return 8
}

// layout is the pixel model a derived buffer is normalized to.
type layout struct {
	depth   int
	palette color.Palette
}

func layoutOf(img image.Image, depth int) layout {
	l := layout{depth: depth}
	if p, ok := img.(*image.Paletted); ok {
		l.palette = append(color.Palette(nil), p.Palette...)
	}
	return l
}

// resampled is the layout of a resize result: palettized and 8-bit gray
// input is promoted to true color, deeper input keeps its depth.
func (l layout) resampled(transparent bool) layout {
	if l.depth >= 16 && l.palette == nil {
		return layout{depth: l.depth}
	}
	if transparent {
		return layout{depth: 32}
	}
	return layout{depth: 24}
}

// blank allocates a zeroed buffer of size w x h in this layout.
func (l layout) blank(w, h int) draw.Image {
	r := image.Rect(0, 0, w, h)
	switch {
	case l.palette != nil:
		return image.NewPaletted(r, append(color.Palette(nil), l.palette...))
	case l.depth == 8:
		return image.NewGray(r)
	case l.depth == 16:
		return image.NewGray16(r)
	case l.depth == 48 || l.depth == 64:
		return image.NewNRGBA64(r)
	}
	return image.NewNRGBA(r)
}

func (l layout) opaque() bool {
	return l.depth == 24 || l.depth == 48
}

// fit copies src into a fresh origin-based buffer of this layout. Opaque
// layouts are composited over black.
func (l layout) fit(src image.Image) image.Image {
	b := src.Bounds()
	dst := l.blank(b.Dx(), b.Dy())
	r := dst.Bounds()
	if l.opaque() {
		draw.Draw(dst, r, image.Black, image.Point{}, draw.Src)
		draw.Draw(dst, r, src, b.Min, draw.Over)
		return dst
	}
	draw.Draw(dst, r, src, b.Min, draw.Src)
	return dst
}

// hasTransparency reports whether any pixel or palette entry is not opaque.
func hasTransparency(img image.Image) bool {
	if p, ok := img.(*image.Paletted); ok {
		for _, c := range p.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}
