// Command image-extractor cuts a grid of tiles out of an image and writes
// each tile to a numbered file.
//
//	image-extractor -target_image_size 32x32 -target_images 16 -images_per_line 4 sheet.png tile.png
//
// writes tile01.png through tile16.png.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-tiler/internal/imaging"
	"github.com/ironsheep/image-tiler/internal/tiles"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// EnvLogLevel enables debug logging when set to "debug".
const EnvLogLevel = "IMAGE_TILER_LOG_LEVEL"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// pointValue is a flag.Value for "<int>x<int>" arguments.
type pointValue struct {
	p   tiles.Point
	set bool
}

func (v *pointValue) String() string { return v.p.String() }

func (v *pointValue) Set(s string) error {
	p, err := tiles.ParsePoint(s)
	if err != nil {
		return err
	}
	v.p, v.set = p, true
	return nil
}

type options struct {
	source, target string
	targetImages   int
	startingPoint  pointValue
	targetSize     pointValue
	offsetX        int
	offsetY        int
	imagesPerLine  int
	exactSize      bool
	backend        string
	preview        string
	previewColor   string
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("image-extractor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&opts.targetImages, "target_images", 1, "total number of tiles to extract")
	fs.Var(&opts.startingPoint, "starting_point", "top-left corner of the first tile, XxY")
	fs.Var(&opts.targetSize, "target_image_size", "tile size, XxY (required)")
	fs.IntVar(&opts.offsetX, "offset_x", 0, "extra horizontal distance between tiles")
	fs.IntVar(&opts.offsetY, "offset_y", 0, "extra vertical distance between rows")
	fs.IntVar(&opts.imagesPerLine, "images_per_line", -1, "tiles per row, -1 for a single row")
	fs.BoolVar(&opts.exactSize, "exact_size", false, "make tiles exactly target_image_size instead of one pixel larger")
	fs.StringVar(&opts.backend, "backend", "", "transform backend: imaging, bild or gift")
	fs.StringVar(&opts.preview, "preview", "", "write the grid drawn over the source to this file instead of extracting tiles")
	fs.StringVar(&opts.previewColor, "preview_color", "#ff0000", "outline color for -preview, #rrggbb or #rrggbbaa")
	return fs
}

// parseArgs lets flags and positional arguments appear in any order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func parseOptions(args []string) (*options, error) {
	opts := &options{}
	fs := newFlagSet(opts)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if len(positional) < 2 {
		return nil, errors.New("no source and target files specified")
	}
	opts.source, opts.target = positional[0], positional[1]
	if opts.targetImages < 1 {
		return nil, errors.New("invalid target_images flag")
	}
	if !opts.targetSize.set {
		return nil, errors.New("missing target_image_size flag")
	}
	if opts.imagesPerLine < -1 || opts.imagesPerLine == 0 {
		return nil, errors.New("invalid images_per_line flag")
	}
	return opts, nil
}

func (o *options) grid() tiles.Grid {
	perRow := o.imagesPerLine
	if perRow == -1 {
		perRow = 0
	}
	g := tiles.NewGrid(o.startingPoint.p, o.targetSize.p, o.offsetX, o.offsetY, perRow, o.targetImages)
	if o.exactSize {
		g.Span = tiles.SpanExact
	}
	return g
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "image-extractor - cut a grid of tiles out of an image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: image-extractor [flags] <source-file> <target-file-with-extension>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs := newFlagSet(&options{})
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Enable debug logging\n", EnvLogLevel)
	fmt.Fprintf(w, "  %s=name       Default transform backend\n", imaging.EnvBackend)
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "image-extractor %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			usage(stdout)
			return 0
		}
	}

	logger := log.New(stderr, "", 0)

	var debug *log.Logger
	if os.Getenv(EnvLogLevel) == "debug" {
		debug = log.New(stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
		debug.Printf("image-extractor v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	opts, err := parseOptions(args)
	if err != nil {
		logger.Println(err)
		return 1
	}
	if err := extract(opts, stdout, debug); err != nil {
		logger.Println(err)
		return 1
	}
	return 0
}

func extract(opts *options, stdout io.Writer, debug *log.Logger) error {
	grid := opts.grid()
	if err := grid.Validate(); err != nil {
		return err
	}

	// only the extraction path names files after the target
	var names *tiles.FilenameBuilder
	var outline imaging.Color
	var err error
	if opts.preview != "" {
		if outline, err = imaging.ParseColor(opts.previewColor); err != nil {
			return err
		}
	} else if names, err = tiles.NewFilenameBuilder(opts.target, opts.targetImages); err != nil {
		return err
	}

	backend, err := selectBackend(opts.backend)
	if err != nil {
		return err
	}

	imaging.Initialize()
	defer imaging.Shutdown()

	src, err := imaging.Load(opts.source, imaging.WithBackend(backend))
	if err != nil {
		return err
	}
	defer src.Close()

	if debug != nil {
		debug.Printf("source %s: %dx%d, %d bpp, backend %s", opts.source, src.Width(), src.Height(), src.BPP(), backend.Name())
		debug.Printf("grid: %+v", grid)
	}

	if opts.preview != "" {
		return preview(src, grid, outline, opts.preview, stdout)
	}

	ex := &tiles.Extractor{Out: stdout, Logger: debug}
	return ex.Extract(src, grid, names)
}

// selectBackend prefers the -backend flag over IMAGE_TILER_BACKEND.
func selectBackend(name string) (imaging.Backend, error) {
	if name == "" {
		return imaging.BackendFromEnv()
	}
	return imaging.BackendByName(name)
}

func preview(src *imaging.Image, grid tiles.Grid, outline imaging.Color, path string, stdout io.Writer) error {
	out, err := tiles.Preview(src, grid, outline)
	if err != nil {
		return err
	}
	defer out.Close()
	fmt.Fprintf(stdout, "writing %s\n", path)
	return out.Save(path)
}
