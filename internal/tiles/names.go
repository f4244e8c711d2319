package tiles

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FilenameBuilder numbers output files: "out.png" with 100 tiles yields
// "out001.png" through "out100.png".
type FilenameBuilder struct {
	base   string
	ext    string
	digits int
}

// NewFilenameBuilder splits target at its extension. The sequence number is
// padded to the number of decimal digits in count.
func NewFilenameBuilder(target string, count int) (*FilenameBuilder, error) {
	ext := filepath.Ext(target)
	if ext == "" || ext == "." {
		return nil, invalid("filename", errors.Errorf("missing extension in the filename %q", target))
	}
	if count < 1 {
		return nil, invalid("filename", errors.Errorf("invalid tile count %d", count))
	}
	return &FilenameBuilder{
		base:   strings.TrimSuffix(target, ext),
		ext:    ext,
		digits: len(strconv.Itoa(count)),
	}, nil
}

// Digits is the padding width.
func (b *FilenameBuilder) Digits() int { return b.digits }

// Build returns the filename for sequence number n.
func (b *FilenameBuilder) Build(n int) string {
	return fmt.Sprintf("%s%0*d%s", b.base, b.digits, n, b.ext)
}
