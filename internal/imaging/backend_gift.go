package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/gift"
)

// giftBackend delegates to github.com/disintegration/gift. Filters run on
// the calling goroutine only.
type giftBackend struct{}

var giftFilters = map[Filter]gift.Resampling{
	Box:        gift.BoxResampling,
	Bilinear:   gift.LinearResampling,
	BSpline:    gift.CubicResampling,
	Bicubic:    gift.CubicResampling,
	CatmullRom: gift.CubicResampling,
	Lanczos3:   gift.LanczosResampling,
}

func (giftBackend) apply(src image.Image, filters ...gift.Filter) image.Image {
	g := gift.New(filters...)
	g.SetParallelization(false)
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

func (giftBackend) Name() string { return "gift" }

func (b giftBackend) Clip(src image.Image, r image.Rectangle) image.Image {
	return b.apply(src, gift.Crop(r))
}

func (b giftBackend) Resize(src image.Image, width, height int, f Filter) image.Image {
	resampling, ok := giftFilters[f]
	if !ok {
		resampling = gift.BoxResampling
	}
	return b.apply(src, gift.Resize(width, height, resampling))
}

func (b giftBackend) Rotate(src image.Image, degrees float64) image.Image {
	return b.apply(src, gift.Rotate(float32(degrees), color.Transparent, gift.CubicInterpolation))
}

func (b giftBackend) FlipH(src image.Image) image.Image { return b.apply(src, gift.FlipHorizontal()) }

func (b giftBackend) FlipV(src image.Image) image.Image { return b.apply(src, gift.FlipVertical()) }

func (b giftBackend) Thumbnail(src image.Image, side int) image.Image {
	return b.apply(src, gift.ResizeToFit(side, side, gift.CubicResampling))
}

func (b giftBackend) Clone(src image.Image) image.Image { return b.apply(src) }
