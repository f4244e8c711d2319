package imaging

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Load decodes the image file at path.
//
// The format is detected from the content signature first. When no
// registered decoder recognizes the signature, the extension of path is
// used instead.
//
// # Errors
//
//   - ErrIO if the file cannot be read or its content fails to decode
//   - ErrFormatUnrecognized if neither signature nor extension identify a format
//   - ErrUnsupportedOperation if the detected format cannot be decoded
func Load(path string, opts ...Option) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError("load", ErrIO, errors.Wrap(err, "read image"))
	}
	img, err := decodeBytes("load", data, FormatFromPath(path), opts...)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return img, nil
}

// Decode reads an image from r. The content signature takes precedence;
// hint is only used when the signature is not recognized.
func Decode(r io.Reader, hint Format, opts ...Option) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError("decode", ErrIO, errors.Wrap(err, "read stream"))
	}
	return decodeBytes("decode", data, hint, opts...)
}

func decodeBytes(op string, data []byte, fallback Format, opts ...Option) (*Image, error) {
	format := sniff(data)
	if format == FormatUnknown {
		format = fallback
	}
	c, ok := codecs()[format]
	if !ok {
		return nil, newError(op, ErrFormatUnrecognized, errors.New("can't autodetect image format"))
	}
	if c.decode == nil {
		return nil, newError(op, ErrUnsupportedOperation, errors.Errorf("%s can't be decoded", c.name))
	}
	pix, err := c.decode(bytes.NewReader(data))
	if err != nil {
		return nil, newError(op, ErrIO, errors.Wrapf(err, "decode %s", c.name))
	}
	return newImage(pix, depthOf(pix), format, opts...), nil
}

// sniff identifies the format from the content signature.
func sniff(data []byte) Format {
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return FormatUnknown
	}
	return FormatFromName(name)
}

// Save encodes the image to path. The format comes from the extension.
// Nothing is written unless encoding succeeds.
//
// # Errors
//
//   - ErrEmptyImage if img holds no buffer
//   - ErrFormatUnrecognized if the extension is unknown
//   - ErrUnsupportedOperation if the format cannot encode or cannot export
//     the image's bit depth
//   - ErrIO if the file cannot be written
func (img *Image) Save(path string) error {
	if err := img.check("save"); err != nil {
		return err
	}
	format := FormatFromPath(path)
	if format == FormatUnknown {
		return newError("save", ErrFormatUnrecognized, errors.Errorf("image filename %q not supported", path))
	}
	var buf bytes.Buffer
	if err := img.encode("save", &buf, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return newError("save", ErrIO, errors.Wrap(err, "write image"))
	}
	return nil
}

// Encode writes the image to w. A stream carries no extension, so format
// must be given explicitly; FormatUnknown fails with ErrFormatUnspecified.
func (img *Image) Encode(w io.Writer, format Format) error {
	if err := img.check("encode"); err != nil {
		return err
	}
	if format == FormatUnknown {
		return newError("encode", ErrFormatUnspecified, nil)
	}
	return img.encode("encode", w, format)
}

func (img *Image) encode(op string, w io.Writer, format Format) error {
	c, ok := codecs()[format]
	if !ok {
		return newError(op, ErrFormatUnrecognized, errors.Errorf("format %d", int(format)))
	}
	if !c.encodable {
		return newError(op, ErrUnsupportedOperation, errors.Errorf("%s can't be encoded", c.name))
	}
	if !c.exports(img.bpp) {
		return newError(op, ErrUnsupportedOperation,
			errors.Errorf("%s does not support %d bits per pixel", c.name, img.bpp))
	}
	if err := imaging.Encode(w, img.pix, c.encodeAs); err != nil {
		return newError(op, ErrIO, errors.Wrapf(err, "encode %s", c.name))
	}
	return nil
}
