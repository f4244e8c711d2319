package imaging

import (
	"image"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Filter selects the resampling kernel used by Resize.
type Filter int

// Resampling kernels. Values outside this set resample with Box.
const (
	Box Filter = iota
	Bilinear
	BSpline
	Bicubic
	CatmullRom
	Lanczos3
)

var filterNames = map[string]Filter{
	"box":        Box,
	"bilinear":   Bilinear,
	"bspline":    BSpline,
	"bicubic":    Bicubic,
	"catmullrom": CatmullRom,
	"lanczos3":   Lanczos3,
}

// ParseFilter maps a filter name ("box", "bilinear", "bspline", "bicubic",
// "catmullrom", "lanczos3") to a Filter.
func ParseFilter(name string) (Filter, error) {
	if f, ok := filterNames[strings.ToLower(name)]; ok {
		return f, nil
	}
	return Box, newError("filter", ErrInvalidArgument, errors.Errorf("unknown filter %q", name))
}

func (f Filter) String() string {
	for name, v := range filterNames {
		if v == f {
			return name
		}
	}
	return "box"
}

// Backend is the transform capability surface of a raster library.
//
// Implementations receive origin-based buffers and coordinates already
// validated by Image. They may return buffers of any type and bounds; Image
// normalizes every result into its own pixel layout. Decoding and encoding
// are shared by all backends and do not appear here.
type Backend interface {
	// Name identifies the backend in configuration, e.g. "imaging".
	Name() string

	// Clip returns the pixels of r, an exclusive-max rectangle within src.
	Clip(src image.Image, r image.Rectangle) image.Image

	// Resize scales src to exactly width x height.
	Resize(src image.Image, width, height int, f Filter) image.Image

	// Rotate turns src counter-clockwise by degrees, growing the bounds to
	// fit and filling uncovered pixels with transparency.
	Rotate(src image.Image, degrees float64) image.Image

	FlipH(src image.Image) image.Image
	FlipV(src image.Image) image.Image

	// Thumbnail scales src so its longest side equals side, preserving the
	// aspect ratio. Callers never pass an image that already fits.
	Thumbnail(src image.Image, side int) image.Image

	Clone(src image.Image) image.Image
}

// EnvBackend names the environment variable that selects the default backend.
const EnvBackend = "IMAGE_TILER_BACKEND"

var backends = map[string]Backend{
	"imaging": imagingBackend{},
	"bild":    bildBackend{},
	"gift":    giftBackend{},
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BackendByName returns the backend registered under name.
func BackendByName(name string) (Backend, error) {
	if b, ok := backends[strings.ToLower(name)]; ok {
		return b, nil
	}
	return nil, newError("backend", ErrInvalidArgument,
		errors.Errorf("unknown backend %q (have %s)", name, strings.Join(Backends(), ", ")))
}

// BackendFromEnv returns the backend named by IMAGE_TILER_BACKEND. An unset
// variable selects the disintegration/imaging backend; an unknown name is
// reported with ErrInvalidArgument.
func BackendFromEnv() (Backend, error) {
	name := os.Getenv(EnvBackend)
	if name == "" {
		return imagingBackend{}, nil
	}
	b, err := BackendByName(name)
	if err != nil {
		return nil, errors.Wrap(err, EnvBackend)
	}
	return b, nil
}

// DefaultBackend is BackendFromEnv without the error: an unknown name
// falls back to the disintegration/imaging backend. Commands should call
// BackendFromEnv so a misspelled name is reported.
func DefaultBackend() Backend {
	if b, err := BackendFromEnv(); err == nil {
		return b
	}
	return imagingBackend{}
}
