// Command image-tool runs single image operations: metadata, thumbnails,
// format conversion and geometric transforms.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-tiler/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// command is one image-tool subcommand. args are the positional arguments
// left after flag parsing.
type command struct {
	usage string
	nargs int
	flags func(fs *flag.FlagSet) func(e *env, args []string) error
}

// env is what every subcommand receives.
type env struct {
	stdout  io.Writer
	backend imaging.Backend
}

func (e *env) load(path string) (*imaging.Image, error) {
	return imaging.Load(path, imaging.WithBackend(e.backend))
}

// transform loads src, applies fn and saves the result to dst.
func (e *env) transform(src, dst string, fn func(*imaging.Image) (*imaging.Image, error)) error {
	img, err := e.load(src)
	if err != nil {
		return err
	}
	defer img.Close()
	out, err := fn(img)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.Save(dst); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "writing %s (%dx%d, %d bpp)\n", dst, out.Width(), out.Height(), out.BPP())
	return nil
}

var commands = map[string]command{
	"info": {
		usage: "info <file>",
		nargs: 1,
		flags: func(fs *flag.FlagSet) func(*env, []string) error {
			return func(e *env, args []string) error {
				img, err := e.load(args[0])
				if err != nil {
					return err
				}
				defer img.Close()
				info, err := img.Info()
				if err != nil {
					return err
				}
				enc := json.NewEncoder(e.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
		},
	},
	"thumbnail": {
		usage: "thumbnail [-size N] <src> <dst>",
		nargs: 2,
		flags: func(fs *flag.FlagSet) func(*env, []string) error {
			size := fs.Int("size", 200, "longest side of the thumbnail")
			return func(e *env, args []string) error {
				return e.transform(args[0], args[1], func(img *imaging.Image) (*imaging.Image, error) {
					return img.Thumbnail(*size)
				})
			}
		},
	},
	"convert": {
		usage: "convert <src> <dst>",
		nargs: 2,
		flags: func(fs *flag.FlagSet) func(*env, []string) error {
			return func(e *env, args []string) error {
				return e.transform(args[0], args[1], (*imaging.Image).Clone)
			}
		},
	},
	"resize": {
		usage: "resize -width W -height H [-filter name] <src> <dst>",
		nargs: 2,
		flags: func(fs *flag.FlagSet) func(*env, []string) error {
			width := fs.Int("width", 0, "target width")
			height := fs.Int("height", 0, "target height")
			filter := fs.String("filter", "bicubic", "box, bilinear, bspline, bicubic, catmullrom or lanczos3")
			return func(e *env, args []string) error {
				f, err := imaging.ParseFilter(*filter)
				if err != nil {
					return err
				}
				return e.transform(args[0], args[1], func(img *imaging.Image) (*imaging.Image, error) {
					return img.Resize(*width, *height, f)
				})
			}
		},
	},
	"rotate": {
		usage: "rotate -degrees D <src> <dst>",
		nargs: 2,
		flags: func(fs *flag.FlagSet) func(*env, []string) error {
			degrees := fs.Float64("degrees", 90, "counter-clockwise rotation")
			return func(e *env, args []string) error {
				return e.transform(args[0], args[1], func(img *imaging.Image) (*imaging.Image, error) {
					return img.Rotate(*degrees)
				})
			}
		},
	},
	"flip": {
		usage: "flip [-axis h|v] <src> <dst>",
		nargs: 2,
		flags: func(fs *flag.FlagSet) func(*env, []string) error {
			axis := fs.String("axis", "h", "h mirrors left-right, v mirrors top-bottom")
			return func(e *env, args []string) error {
				var fn func(*imaging.Image) (*imaging.Image, error)
				switch *axis {
				case "h":
					fn = (*imaging.Image).FlipH
				case "v":
					fn = (*imaging.Image).FlipV
				default:
					return errors.Errorf("invalid axis %q", *axis)
				}
				return e.transform(args[0], args[1], fn)
			}
		},
	},
	"replace": {
		usage: "replace -from #rrggbb -to #rrggbb [-tolerance T] <src> <dst>",
		nargs: 2,
		flags: func(fs *flag.FlagSet) func(*env, []string) error {
			from := fs.String("from", "", "color to replace")
			to := fs.String("to", "", "replacement color")
			tolerance := fs.Float64("tolerance", 0, "CIE Lab distance still counted as a match")
			return func(e *env, args []string) error {
				fc, err := imaging.ParseColor(*from)
				if err != nil {
					return err
				}
				tc, err := imaging.ParseColor(*to)
				if err != nil {
					return err
				}
				return e.transform(args[0], args[1], func(img *imaging.Image) (*imaging.Image, error) {
					out, err := img.Clone()
					if err != nil {
						return nil, err
					}
					n, err := out.ReplaceColors(
						func(c imaging.Color) bool { return c.Near(fc, *tolerance) },
						func(imaging.Color) imaging.Color { return tc },
					)
					if err != nil {
						out.Close()
						return nil, err
					}
					fmt.Fprintf(e.stdout, "replaced %d pixels\n", n)
					return out, nil
				})
			}
		},
	},
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "image-tool - single image operations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: image-tool <command> [flags] args")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Every command accepts -backend (%s).\n", strings.Join(imaging.Backends(), ", "))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", 0)
	if len(args) == 0 {
		usage(stderr)
		return 1
	}
	switch args[0] {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "image-tool %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	case "--help", "-h", "help":
		usage(stdout)
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		logger.Printf("unknown command %q", args[0])
		return 1
	}
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	backendName := fs.String("backend", "", "transform backend")
	exec := cmd.flags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		logger.Println(err)
		return 1
	}
	if fs.NArg() != cmd.nargs {
		logger.Printf("usage: image-tool %s", cmd.usage)
		return 1
	}

	var backend imaging.Backend
	var err error
	if *backendName != "" {
		backend, err = imaging.BackendByName(*backendName)
	} else {
		backend, err = imaging.BackendFromEnv()
	}
	if err != nil {
		logger.Println(err)
		return 1
	}
	e := &env{stdout: stdout, backend: backend}

	imaging.Initialize()
	defer imaging.Shutdown()

	if err := exec(e, fs.Args()); err != nil {
		logger.Println(err)
		return 1
	}
	return 0
}
