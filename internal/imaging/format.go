package imaging

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Format is a raster container format.
type Format int

// Supported formats. WEBP can be decoded but not encoded.
const (
	FormatUnknown Format = iota
	BMP
	GIF
	JPEG
	PNG
	TIFF
	WEBP
)

func (f Format) String() string {
	if c, ok := codecs()[f]; ok {
		return c.name
	}
	return "unknown"
}

// codec describes what this package can do with one format.
type codec struct {
	name   string
	exts   []string
	decode func(io.Reader) (image.Image, error)

	// encodeAs is the disintegration/imaging encoder for the format;
	// encodable is false for decode-only formats.
	encodeAs  imaging.Format
	encodable bool

	// depths lists the bit depths the encoder can export. Empty means all.
	depths []int
}

func (c codec) exports(bpp int) bool {
	if !c.encodable {
		return false
	}
	if len(c.depths) == 0 {
		return true
	}
	for _, d := range c.depths {
		if d == bpp {
			return true
		}
	}
	return false
}

// lifecycle guards the codec table. The table is built by the first
// Initialize and torn down by the matching last Shutdown.
var lifecycle struct {
	mu     sync.Mutex
	refs   int
	builds int
	table  map[Format]codec
}

// Initialize prepares the codec table. Calls nest: only the first call
// builds the table and each call must be paired with Shutdown.
func Initialize() {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()
	if lifecycle.refs == 0 && lifecycle.table == nil {
		lifecycle.table = buildCodecs()
		lifecycle.builds++
	}
	lifecycle.refs++
}

// Shutdown releases one Initialize reference. The codec table is dropped
// when the last reference goes away.
func Shutdown() {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()
	if lifecycle.refs == 0 {
		return
	}
	lifecycle.refs--
	if lifecycle.refs == 0 {
		lifecycle.table = nil
	}
}

// codecs returns the codec table, building it without taking a reference
// when the caller skipped Initialize.
func codecs() map[Format]codec {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()
	if lifecycle.table == nil {
		lifecycle.table = buildCodecs()
		lifecycle.builds++
	}
	return lifecycle.table
}

func buildCodecs() map[Format]codec {
	return map[Format]codec{
		BMP: {
			name:      "bmp",
			exts:      []string{".bmp"},
			decode:    bmp.Decode,
			encodeAs:  imaging.BMP,
			encodable: true,
			depths:    []int{1, 4, 8, 24, 32},
		},
		GIF: {
			name:      "gif",
			exts:      []string{".gif"},
			decode:    gif.Decode,
			encodeAs:  imaging.GIF,
			encodable: true,
			depths:    []int{1, 4, 8},
		},
		JPEG: {
			name:      "jpeg",
			exts:      []string{".jpg", ".jpeg", ".jpe", ".jif"},
			decode:    jpeg.Decode,
			encodeAs:  imaging.JPEG,
			encodable: true,
			depths:    []int{8, 24},
		},
		PNG: {
			name:      "png",
			exts:      []string{".png"},
			decode:    png.Decode,
			encodeAs:  imaging.PNG,
			encodable: true,
		},
		TIFF: {
			name:      "tiff",
			exts:      []string{".tif", ".tiff"},
			decode:    tiff.Decode,
			encodeAs:  imaging.TIFF,
			encodable: true,
		},
		WEBP: {
			name:   "webp",
			exts:   []string{".webp"},
			decode: webp.Decode,
		},
	}
}

// FormatFromName maps a decoder name as reported by image.DecodeConfig
// ("png", "jpeg", ...) to a Format.
func FormatFromName(name string) Format {
	name = strings.ToLower(name)
	for f, c := range codecs() {
		if c.name == name {
			return f
		}
	}
	return FormatUnknown
}

// FormatFromPath guesses a format from the extension of path.
//
// Encodable formats are resolved through disintegration/imaging so both
// sides agree on extension spelling; decode-only formats come from the
// local table.
func FormatFromPath(path string) Format {
	if f, err := imaging.FormatFromFilename(path); err == nil {
		for format, c := range codecs() {
			if c.encodable && c.encodeAs == f {
				return format
			}
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	for f, c := range codecs() {
		for _, e := range c.exts {
			if e == ext {
				return f
			}
		}
	}
	return FormatUnknown
}
