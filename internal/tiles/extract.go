package tiles

import (
	"fmt"
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-tiler/internal/imaging"
)

// Source is the image tiles are clipped from.
type Source interface {
	Clip(r imaging.Rect) (*imaging.Image, error)
}

// Extractor cuts tiles and writes them to disk.
type Extractor struct {
	// Out receives one "writing <file>" line per tile. Nil discards them.
	Out io.Writer

	// Logger receives debug output. Nil disables it.
	Logger *log.Logger
}

// Extract clips every tile of g from src and saves it under the name built
// for its sequence number. It stops at the first failure; the returned error
// names the failing tile.
func (e *Extractor) Extract(src Source, g Grid, names *FilenameBuilder) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if names == nil {
		return invalid("extract", errors.New("no filename builder"))
	}
	out := e.Out
	if out == nil {
		out = io.Discard
	}

	r := g.First()
	for i := 1; i <= g.Count; i++ {
		name := names.Build(i)
		if e.Logger != nil {
			e.Logger.Printf("tile %d/%d %v -> %s", i, g.Count, r, name)
		}
		tile, err := src.Clip(r)
		if err != nil {
			return errors.Wrapf(err, "tile %d", i)
		}
		fmt.Fprintf(out, "writing %s\n", name)
		err = tile.Save(name)
		tile.Close()
		if err != nil {
			return errors.Wrapf(err, "tile %d", i)
		}
		r = g.Next(i, r)
	}
	return nil
}
