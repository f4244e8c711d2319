package imaging

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// Rect is a closed pixel rectangle: both corners are part of the region.
// The origin is the top-left pixel and Y grows downward.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width is the number of columns covered, Right-Left+1.
func (r Rect) Width() int { return r.Right - r.Left + 1 }

// Height is the number of rows covered, Bottom-Top+1.
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

func (r Rect) String() string {
	return fmt.Sprintf("[(%d,%d)..(%d,%d)]", r.Left, r.Top, r.Right, r.Bottom)
}

// bounds converts to the exclusive-max form used by package image.
func (r Rect) bounds(origin image.Point) image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right+1, r.Bottom+1).Add(origin)
}

// Clip returns the pixels inside the closed rectangle r.
//
// r must satisfy 0 <= Left <= Right < Width and 0 <= Top <= Bottom < Height.
// Anything else fails with ErrInvalidRegion; coordinates are never clamped.
// The result keeps the bit depth and palette of img.
func (img *Image) Clip(r Rect) (*Image, error) {
	if err := img.check("clip"); err != nil {
		return nil, err
	}
	w, h := img.Width(), img.Height()
	if r.Left < 0 || r.Top < 0 || r.Left > r.Right || r.Top > r.Bottom || r.Right >= w || r.Bottom >= h {
		return nil, newError("clip", ErrInvalidRegion, errors.Errorf("rectangle %v outside %dx%d image", r, w, h))
	}
	out := img.Backend().Clip(img.pix, r.bounds(img.pix.Bounds().Min))
	return img.keep(out), nil
}

// Resize scales the image to width x height with the given filter.
func (img *Image) Resize(width, height int, f Filter) (*Image, error) {
	if err := img.check("resize"); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, newError("resize", ErrInvalidArgument, errors.Errorf("target size %dx%d", width, height))
	}
	out := img.Backend().Resize(img.pix, width, height, f)
	return img.resampled(out), nil
}

// Thumbnail scales the image so it fits a side x side square, preserving
// the aspect ratio. Images that already fit are cloned, never enlarged.
func (img *Image) Thumbnail(side int) (*Image, error) {
	if err := img.check("thumbnail"); err != nil {
		return nil, err
	}
	if side <= 0 {
		return nil, newError("thumbnail", ErrInvalidArgument, errors.Errorf("side %d", side))
	}
	if img.Width() <= side && img.Height() <= side {
		return img.Clone()
	}
	out := img.Backend().Thumbnail(img.pix, side)
	return img.resampled(out), nil
}

// Rotate turns the image counter-clockwise by degrees. The bounds grow to
// hold the rotated content; uncovered pixels are transparent, or black for
// images without an alpha channel.
func (img *Image) Rotate(degrees float64) (*Image, error) {
	if err := img.check("rotate"); err != nil {
		return nil, err
	}
	return img.keep(img.Backend().Rotate(img.pix, degrees)), nil
}

// FlipH mirrors the image left to right.
func (img *Image) FlipH() (*Image, error) {
	if err := img.check("flip"); err != nil {
		return nil, err
	}
	return img.keep(img.Backend().FlipH(img.pix)), nil
}

// FlipV mirrors the image top to bottom.
func (img *Image) FlipV() (*Image, error) {
	if err := img.check("flip"); err != nil {
		return nil, err
	}
	return img.keep(img.Backend().FlipV(img.pix)), nil
}

// Clone duplicates the buffer.
func (img *Image) Clone() (*Image, error) {
	if err := img.check("clone"); err != nil {
		return nil, err
	}
	return img.keep(img.Backend().Clone(img.pix)), nil
}

// To32 converts the image to 32-bit RGBA.
func (img *Image) To32() (*Image, error) {
	if err := img.check("to32"); err != nil {
		return nil, err
	}
	l := layout{depth: 32}
	return img.derive(l.fit(img.pix), 32), nil
}

// Conform wraps pix, typically a drawing made from img's pixels, in a new
// Image with the bit depth, palette, format and backend of img. Pixels
// are composited over black for opaque depths and mapped to the nearest
// palette entry for palettized ones.
func (img *Image) Conform(pix image.Image) (*Image, error) {
	if err := img.check("conform"); err != nil {
		return nil, err
	}
	if pix == nil {
		return nil, newError("conform", ErrEmptyImage, nil)
	}
	return img.keep(pix), nil
}

// keep normalizes a pixel-copy result to the layout of img.
func (img *Image) keep(out image.Image) *Image {
	l := layoutOf(img.pix, img.bpp)
	return img.derive(l.fit(out), img.bpp)
}

// resampled normalizes a resampling result. Palettized and gray input
// is promoted to true color.
func (img *Image) resampled(out image.Image) *Image {
	l := layoutOf(img.pix, img.bpp).resampled(hasTransparency(img.pix))
	return img.derive(l.fit(out), l.depth)
}
