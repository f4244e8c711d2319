package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// imagingBackend delegates to github.com/disintegration/imaging.
type imagingBackend struct{}

var imagingFilters = map[Filter]imaging.ResampleFilter{
	Box:        imaging.Box,
	Bilinear:   imaging.Linear,
	BSpline:    imaging.BSpline,
	Bicubic:    imaging.MitchellNetravali,
	CatmullRom: imaging.CatmullRom,
	Lanczos3:   imaging.Lanczos,
}

func (imagingBackend) Name() string { return "imaging" }

func (imagingBackend) Clip(src image.Image, r image.Rectangle) image.Image {
	return imaging.Crop(src, r)
}

func (imagingBackend) Resize(src image.Image, width, height int, f Filter) image.Image {
	filter, ok := imagingFilters[f]
	if !ok {
		filter = imaging.Box
	}
	return imaging.Resize(src, width, height, filter)
}

func (imagingBackend) Rotate(src image.Image, degrees float64) image.Image {
	return imaging.Rotate(src, degrees, color.Transparent)
}

func (imagingBackend) FlipH(src image.Image) image.Image { return imaging.FlipH(src) }

func (imagingBackend) FlipV(src image.Image) image.Image { return imaging.FlipV(src) }

func (imagingBackend) Thumbnail(src image.Image, side int) image.Image {
	return imaging.Fit(src, side, side, imaging.MitchellNetravali)
}

func (imagingBackend) Clone(src image.Image) image.Image { return imaging.Clone(src) }
