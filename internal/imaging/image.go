package imaging

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// noCopy makes go vet's copylocks check report copies of Image values.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Image owns one decoded raster buffer.
//
// The zero Image is empty: Width, Height and BPP report 0 and every other
// operation fails with ErrEmptyImage. Images are handled through pointers
// and never copied; Move transfers the buffer to a new Image and Clone
// duplicates it. Close releases the buffer and returns the Image to the
// empty state.
//
// Transform methods return a new Image and leave the receiver untouched.
type Image struct {
	_ noCopy

	pix     image.Image
	bpp     int
	format  Format
	backend Backend

	// release runs once when the buffer is dropped.
	release func(image.Image)
}

// Option configures an Image at construction.
type Option func(*Image)

// WithBackend selects the transform backend for the image and every image
// derived from it.
func WithBackend(b Backend) Option {
	return func(img *Image) {
		if b != nil {
			img.backend = b
		}
	}
}

// WithRelease registers a hook that runs exactly once when the buffer is
// released, whether through Close or Move's hand-off chain ending in Close.
func WithRelease(fn func(image.Image)) Option {
	return func(img *Image) {
		img.release = fn
	}
}

func newImage(pix image.Image, bpp int, format Format, opts ...Option) *Image {
	img := &Image{pix: pix, bpp: bpp, format: format}
	for _, opt := range opts {
		opt(img)
	}
	if img.backend == nil {
		img.backend = DefaultBackend()
	}
	return img
}

// derive wraps a transform result for the same backend and format.
func (img *Image) derive(pix image.Image, bpp int) *Image {
	return &Image{pix: pix, bpp: bpp, format: img.format, backend: img.backend}
}

// New allocates a blank image. Supported depths are 1, 4 and 8 (palettized
// grayscale), 16 (gray), 24 (opaque black RGB), 32 (transparent RGBA),
// 48 and 64 (16 bits per channel).
func New(width, height, bpp int, opts ...Option) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, newError("new", ErrInvalidArgument, errors.Errorf("negative size %dx%d", width, height))
	}
	var l layout
	switch bpp {
	case 1, 4, 8:
		l = layout{depth: bpp, palette: grayPalette(1 << bpp)}
	case 16, 24, 32, 48, 64:
		l = layout{depth: bpp}
	default:
		return nil, newError("new", ErrInvalidArgument, errors.Errorf("unsupported bit depth %d", bpp))
	}
	return newImage(l.fit(l.blank(width, height)), bpp, FormatUnknown, opts...), nil
}

func grayPalette(n int) color.Palette {
	p := make(color.Palette, n)
	for i := range p {
		v := uint8(i * 255 / (n - 1))
		p[i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	return p
}

// FromImage takes ownership of an existing buffer. The bit depth is derived
// from its concrete type.
func FromImage(pix image.Image, opts ...Option) (*Image, error) {
	if pix == nil {
		return nil, newError("wrap", ErrEmptyImage, nil)
	}
	return newImage(pix, depthOf(pix), FormatUnknown, opts...), nil
}

// Empty reports whether the image holds no buffer.
func (img *Image) Empty() bool { return img == nil || img.pix == nil }

// Width is 0 for an empty image.
func (img *Image) Width() int {
	if img.Empty() {
		return 0
	}
	return img.pix.Bounds().Dx()
}

// Height is 0 for an empty image.
func (img *Image) Height() int {
	if img.Empty() {
		return 0
	}
	return img.pix.Bounds().Dy()
}

// BPP reports bits per pixel, 0 for an empty image.
func (img *Image) BPP() int {
	if img.Empty() {
		return 0
	}
	return img.bpp
}

// Format is the format the image was decoded from, FormatUnknown for
// allocated images.
func (img *Image) Format() Format {
	if img.Empty() {
		return FormatUnknown
	}
	return img.format
}

// Backend returns the transform backend bound to the image.
func (img *Image) Backend() Backend {
	if img == nil || img.backend == nil {
		return DefaultBackend()
	}
	return img.backend
}

// Pixels exposes the underlying buffer for read-only use by image/draw
// consumers. The buffer stays owned by img.
func (img *Image) Pixels() image.Image {
	if img.Empty() {
		return nil
	}
	return img.pix
}

// Move transfers the buffer to a new Image and leaves img empty.
func (img *Image) Move() *Image {
	moved := &Image{}
	if img == nil {
		return moved
	}
	moved.pix, moved.bpp, moved.format, moved.backend, moved.release =
		img.pix, img.bpp, img.format, img.backend, img.release
	img.pix, img.bpp, img.format, img.release = nil, 0, FormatUnknown, nil
	return moved
}

// Close releases the buffer. Closing an empty image is a no-op.
func (img *Image) Close() error {
	if img.Empty() {
		return nil
	}
	pix, release := img.pix, img.release
	img.pix, img.bpp, img.format, img.release = nil, 0, FormatUnknown, nil
	if release != nil {
		release(pix)
	}
	return nil
}

func (img *Image) check(op string) error {
	if img.Empty() {
		return newError(op, ErrEmptyImage, nil)
	}
	return nil
}

// Info summarizes image metadata.
type Info struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BPP         int    `json:"bpp"`
	Format      string `json:"format"`
	Transparent bool   `json:"transparent"`
	Palette     int    `json:"palette_size,omitempty"`
	Backend     string `json:"backend"`
}

// Info returns the image metadata.
func (img *Image) Info() (*Info, error) {
	if err := img.check("info"); err != nil {
		return nil, err
	}
	info := &Info{
		Width:       img.Width(),
		Height:      img.Height(),
		BPP:         img.bpp,
		Format:      img.format.String(),
		Transparent: img.Transparent(),
		Backend:     img.Backend().Name(),
	}
	if p, ok := img.pix.(*image.Paletted); ok {
		info.Palette = len(p.Palette)
	}
	return info, nil
}
