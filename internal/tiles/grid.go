package tiles

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/image-tiler/internal/imaging"
)

// Span selects how a tile size maps onto a closed clip rectangle.
type Span int

const (
	// SpanClosed places the far corner at Start+Size. Each tile is one pixel
	// wider and taller than Size, and tiles stepped by Size overlap by one
	// pixel. This is the historical behavior of the extractor.
	SpanClosed Span = iota

	// SpanExact places the far corner at Start+Size-1, so a tile is exactly
	// Size pixels and tiles stepped by Size touch without overlapping.
	SpanExact
)

// Grid describes the tiles to cut from a source image.
type Grid struct {
	// Start is the top-left corner of the first tile.
	Start Point

	// Size is the tile extent; see Span.
	Size Point

	// StepX moves the window between tiles of a row; StepY moves it between
	// rows. Zero and negative steps are allowed.
	StepX, StepY int

	// PerRow is the number of tiles per row. Zero or negative means a single
	// unbounded row.
	PerRow int

	// Count is the total number of tiles, at least 1.
	Count int

	Span Span
}

// NewGrid returns a grid whose steps equal the tile size plus the extra
// offsets, the layout used by the extractor command.
func NewGrid(start, size Point, offsetX, offsetY, perRow, count int) Grid {
	return Grid{
		Start:  start,
		Size:   size,
		StepX:  size.X + offsetX,
		StepY:  size.Y + offsetY,
		PerRow: perRow,
		Count:  count,
	}
}

// Validate checks the parameters that can be checked without the source
// image. Whether tiles stay inside the source is left to the clip.
func (g Grid) Validate() error {
	switch {
	case g.Count < 1:
		return invalid("grid", errors.Errorf("invalid tile count %d", g.Count))
	case g.Start.X < 0 || g.Start.Y < 0:
		return invalid("grid", errors.Errorf("invalid negative starting point %v", g.Start))
	case g.Size.X < 0 || g.Size.Y < 0:
		return invalid("grid", errors.Errorf("invalid negative tile size %v", g.Size))
	case g.Span == SpanExact && (g.Size.X == 0 || g.Size.Y == 0):
		return invalid("grid", errors.Errorf("invalid empty tile size %v", g.Size))
	}
	return nil
}

// First returns the clip rectangle of tile 1.
func (g Grid) First() imaging.Rect {
	w, h := g.Size.X, g.Size.Y
	if g.Span == SpanExact {
		w, h = w-1, h-1
	}
	return imaging.Rect{
		Left:   g.Start.X,
		Top:    g.Start.Y,
		Right:  g.Start.X + w,
		Bottom: g.Start.Y + h,
	}
}

// Next returns the rectangle that follows tile i (1-based) whose rectangle
// is r.
func (g Grid) Next(i int, r imaging.Rect) imaging.Rect {
	if g.PerRow > 0 && i%g.PerRow == 0 {
		return r.Translate(g.Start.X-r.Left, g.StepY)
	}
	return r.Translate(g.StepX, 0)
}

// Rects returns the clip rectangles of all Count tiles in extraction order.
func (g Grid) Rects() []imaging.Rect {
	if g.Count < 1 {
		return nil
	}
	rects := make([]imaging.Rect, 0, g.Count)
	r := g.First()
	for i := 1; i <= g.Count; i++ {
		rects = append(rects, r)
		r = g.Next(i, r)
	}
	return rects
}
