package tiles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-tiler/internal/imaging"
)

// Point is a pixel position or a width/height pair.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%dx%d", p.X, p.Y)
}

// ParsePoint parses "<int>x<int>". Both components must be non-negative.
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(s, "x")
	if !ok {
		return Point{}, invalid("point", errors.Errorf("missing x when parsing point %q", s))
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, invalid("point", errors.Wrapf(err, "parse x of %q", s))
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, invalid("point", errors.Wrapf(err, "parse y of %q", s))
	}
	if x < 0 || y < 0 {
		return Point{}, invalid("point", errors.Errorf("invalid negative values in point %q", s))
	}
	return Point{X: x, Y: y}, nil
}

func invalid(op string, err error) error {
	return &imaging.Error{Op: op, Kind: imaging.ErrInvalidArgument, Err: err}
}
