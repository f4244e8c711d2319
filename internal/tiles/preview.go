package tiles

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/ironsheep/image-tiler/internal/imaging"
)

// Preview draws the outline of every tile of g over a copy of src and
// labels each tile with its sequence number. Tiles reaching past the
// source are drawn clipped, so a layout can be checked before Extract
// rejects it. Everything is blended over the source pixels and the result
// keeps the bit depth of src, so an opaque source gives an opaque preview.
func Preview(src *imaging.Image, g Grid, outline imaging.Color) (*imaging.Image, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	pix := src.Pixels()
	if pix == nil {
		return nil, &imaging.Error{Op: "preview", Kind: imaging.ErrEmptyImage}
	}
	b := pix.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), pix, b.Min, draw.Src)

	c := color.NRGBA{R: outline.R, G: outline.G, B: outline.B, A: outline.A}
	for i, r := range g.Rects() {
		drawOutline(dst, r, c)
		drawLabel(dst, r.Left+2, r.Top+2, strconv.Itoa(i+1), color.NRGBA{R: 255, G: 255, B: 255, A: 255}, color.NRGBA{A: 180})
	}
	return src.Conform(dst)
}

// fill blends c over r. draw.Draw clips r to the image.
func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// drawOutline strokes the border pixels of the closed rectangle r, each
// pixel once.
func drawOutline(img *image.NRGBA, r imaging.Rect, c color.NRGBA) {
	fill(img, image.Rect(r.Left, r.Top, r.Right+1, r.Top+1), c)
	if r.Bottom > r.Top {
		fill(img, image.Rect(r.Left, r.Bottom, r.Right+1, r.Bottom+1), c)
	}
	fill(img, image.Rect(r.Left, r.Top+1, r.Left+1, r.Bottom), c)
	if r.Right > r.Left {
		fill(img, image.Rect(r.Right, r.Top+1, r.Right+1, r.Bottom), c)
	}
}

// 3x5 pixel digits
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

// drawLabel writes text at (x, y) on a background box blended over img.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	const charWidth, labelHeight = 4, 7
	fill(img, image.Rect(x-1, y-1, x+len(text)*charWidth, y+labelHeight-1), bg)

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, bit := range line {
				if bit == '1' {
					fill(img, image.Rect(cx+col, y+row, cx+col+1, y+row+1), fg)
				}
			}
		}
		cx += charWidth
	}
}
