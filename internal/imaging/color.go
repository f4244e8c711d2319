package imaging

import (
	"fmt"
	"image/color"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Color is a non-premultiplied 8-bit RGBA value.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.nrgba().RGBA()
}

func (c Color) nrgba() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (c Color) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// Hex formats the color as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Near reports whether c and o are within tolerance of each other in CIE
// Lab space and have the same alpha. A tolerance of 0 means exact equality.
func (c Color) Near(o Color, tolerance float64) bool {
	if c.A != o.A {
		return false
	}
	if tolerance <= 0 {
		return c == o
	}
	return c.colorful().DistanceLab(o.colorful()) <= tolerance
}

// ColorOf converts any color.Color to a Color.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseColor parses "#RRGGBB" or "#RRGGBBAA". Alpha defaults to opaque.
func ParseColor(s string) (Color, error) {
	if (len(s) != 7 && len(s) != 9) || s[0] != '#' {
		return Color{}, newError("color", ErrInvalidArgument, errors.Errorf("color %q is not #rrggbb or #rrggbbaa", s))
	}
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, newError("color", ErrInvalidArgument, errors.Wrapf(err, "alpha in %q", s))
		}
		alpha = uint8(a)
		s = s[:7]
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, newError("color", ErrInvalidArgument, errors.Wrapf(err, "parse %q", s))
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}
