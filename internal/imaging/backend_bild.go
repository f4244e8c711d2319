package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/nfnt/resize"
)

// bildBackend delegates to github.com/anthonynsimon/bild. bild has no
// aspect-preserving fit, so thumbnails go through github.com/nfnt/resize.
type bildBackend struct{}

// bild has no B-spline kernel; Gaussian is the closest smoothing filter.
var bildFilters = map[Filter]transform.ResampleFilter{
	Box:        transform.Box,
	Bilinear:   transform.Linear,
	BSpline:    transform.Gaussian,
	Bicubic:    transform.MitchellNetravali,
	CatmullRom: transform.CatmullRom,
	Lanczos3:   transform.Lanczos,
}

func (bildBackend) Name() string { return "bild" }

func (bildBackend) Clip(src image.Image, r image.Rectangle) image.Image {
	return transform.Crop(src, r)
}

func (bildBackend) Resize(src image.Image, width, height int, f Filter) image.Image {
	filter, ok := bildFilters[f]
	if !ok {
		filter = transform.Box
	}
	return transform.Resize(src, width, height, filter)
}

// Rotate negates the angle: bild turns clockwise.
func (bildBackend) Rotate(src image.Image, degrees float64) image.Image {
	return transform.Rotate(src, -degrees, &transform.RotationOptions{ResizeBounds: true})
}

func (bildBackend) FlipH(src image.Image) image.Image { return transform.FlipH(src) }

func (bildBackend) FlipV(src image.Image) image.Image { return transform.FlipV(src) }

func (bildBackend) Thumbnail(src image.Image, side int) image.Image {
	return resize.Thumbnail(uint(side), uint(side), src, resize.Bicubic)
}

func (bildBackend) Clone(src image.Image) image.Image { return clone.AsRGBA(src) }
