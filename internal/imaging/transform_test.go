package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRect(t *testing.T) {
	r := Rect{Left: 10, Top: 0, Right: 19, Bottom: 9}

	assert.Equal(t, 10, r.Width())
	assert.Equal(t, 10, r.Height())
	assert.Equal(t, "[(10,0)..(19,9)]", r.String())
	assert.Equal(t, Rect{Left: 0, Top: 10, Right: 9, Bottom: 19}, r.Translate(-10, 10))
	assert.Equal(t, image.Rect(11, 2, 21, 12), r.bounds(image.Pt(1, 2)))
}

func TestClip(t *testing.T) {
	img := newPatternImage(t, 40, 30)

	tile, err := img.Clip(Rect{Left: 5, Top: 7, Right: 14, Bottom: 16})
	require.NoError(t, err)
	defer tile.Close()

	assert.Equal(t, 10, tile.Width())
	assert.Equal(t, 10, tile.Height())
	assert.Equal(t, 24, tile.BPP())
	assert.Equal(t, Color{R: 5, G: 7, A: 255}, at(tile, 0, 0))
	assert.Equal(t, Color{R: 14, G: 16, A: 255}, at(tile, 9, 9))
	assert.Equal(t, image.Point{}, tile.Pixels().Bounds().Min)

	// the source is untouched
	assert.Equal(t, 40, img.Width())
}

func TestClip_SinglePixel(t *testing.T) {
	img := newPatternImage(t, 8, 8)

	tile, err := img.Clip(Rect{Left: 3, Top: 4, Right: 3, Bottom: 4})
	require.NoError(t, err)
	defer tile.Close()

	assert.Equal(t, 1, tile.Width())
	assert.Equal(t, 1, tile.Height())
	assert.Equal(t, Color{R: 3, G: 4, A: 255}, at(tile, 0, 0))
}

func TestClip_InvalidRegion(t *testing.T) {
	img := newPatternImage(t, 20, 10)

	tests := []struct {
		name string
		r    Rect
	}{
		{"negative left", Rect{Left: -1, Top: 0, Right: 5, Bottom: 5}},
		{"negative top", Rect{Left: 0, Top: -1, Right: 5, Bottom: 5}},
		{"right past width", Rect{Left: 10, Top: 0, Right: 20, Bottom: 9}},
		{"bottom past height", Rect{Left: 0, Top: 0, Right: 9, Bottom: 10}},
		{"inverted x", Rect{Left: 6, Top: 0, Right: 5, Bottom: 5}},
		{"inverted y", Rect{Left: 0, Top: 6, Right: 5, Bottom: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile, err := img.Clip(tt.r)
			require.Error(t, err)
			assert.Nil(t, tile)
			assert.True(t, errors.Is(err, ErrInvalidRegion), "got %v", err)
		})
	}
}

func TestClip_KeepsPalette(t *testing.T) {
	img, err := FromImage(newTwoColorPaletted(16, 16))
	require.NoError(t, err)
	defer img.Close()
	require.Equal(t, 1, img.BPP())

	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			b, err := BackendByName(name)
			require.NoError(t, err)
			src, err := FromImage(newTwoColorPaletted(16, 16), WithBackend(b))
			require.NoError(t, err)
			defer src.Close()

			tile, err := src.Clip(Rect{Left: 1, Top: 0, Right: 4, Bottom: 3})
			require.NoError(t, err)
			defer tile.Close()

			assert.Equal(t, 1, tile.BPP())
			pal, ok := tile.Pixels().(*image.Paletted)
			require.True(t, ok, "got %T", tile.Pixels())
			assert.Len(t, pal.Palette, 2)
			// (1,0) is white on the checkerboard
			assert.Equal(t, uint8(1), pal.ColorIndexAt(0, 0))
			assert.Equal(t, uint8(0), pal.ColorIndexAt(1, 0))
		})
	}
}

func TestEmptyImage(t *testing.T) {
	var img Image

	assert.True(t, img.Empty())
	assert.Equal(t, 0, img.Width())
	assert.Equal(t, 0, img.Height())
	assert.Equal(t, 0, img.BPP())
	assert.Equal(t, FormatUnknown, img.Format())
	assert.Nil(t, img.Pixels())
	assert.NoError(t, img.Close())

	_, err := img.Clip(Rect{Right: 1, Bottom: 1})
	assert.True(t, errors.Is(err, ErrEmptyImage))
	_, err = img.Resize(10, 10, Box)
	assert.True(t, errors.Is(err, ErrEmptyImage))
	_, err = img.Clone()
	assert.True(t, errors.Is(err, ErrEmptyImage))
	assert.True(t, errors.Is(img.Save("out.png"), ErrEmptyImage))

	var nilImg *Image
	assert.True(t, nilImg.Empty())
	assert.Equal(t, 0, nilImg.Width())
}

func TestMoveAndClose(t *testing.T) {
	released := 0
	img, err := FromImage(patternRGBA(4, 3), WithRelease(func(image.Image) { released++ }))
	require.NoError(t, err)

	moved := img.Move()
	assert.True(t, img.Empty())
	assert.Equal(t, 4, moved.Width())
	assert.Equal(t, 24, moved.BPP())

	// closing the moved-from image does not release the buffer
	require.NoError(t, img.Close())
	assert.Equal(t, 0, released)

	require.NoError(t, moved.Close())
	assert.Equal(t, 1, released)
	assert.True(t, moved.Empty())

	require.NoError(t, moved.Close())
	assert.Equal(t, 1, released)
}

func TestClone_IsIndependent(t *testing.T) {
	img := newPatternImage(t, 6, 6)

	dup, err := img.Clone()
	require.NoError(t, err)
	defer dup.Close()

	require.NoError(t, dup.SetColor(0, 5, Color{R: 200, G: 100, B: 50, A: 255}))
	assert.Equal(t, Color{R: 200, G: 100, B: 50, A: 255}, at(dup, 0, 0))
	assert.Equal(t, Color{R: 0, G: 0, A: 255}, at(img, 0, 0))
}

func TestNew(t *testing.T) {
	tests := []struct {
		bpp   int
		model color.Model
	}{
		{1, nil},
		{4, nil},
		{8, nil},
		{16, color.Gray16Model},
		{24, color.NRGBAModel},
		{32, color.NRGBAModel},
		{48, color.NRGBA64Model},
		{64, color.NRGBA64Model},
	}
	for _, tt := range tests {
		img, err := New(5, 4, tt.bpp)
		require.NoError(t, err, "bpp %d", tt.bpp)

		assert.Equal(t, tt.bpp, img.BPP())
		assert.Equal(t, 5, img.Width())
		assert.Equal(t, 4, img.Height())
		if tt.model != nil {
			assert.Equal(t, tt.model, img.Pixels().ColorModel(), "bpp %d", tt.bpp)
		} else {
			_, ok := img.Pixels().(*image.Paletted)
			assert.True(t, ok, "bpp %d", tt.bpp)
		}
		img.Close()
	}

	_, err := New(5, 4, 12)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = New(-1, 4, 24)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNew_24BitIsOpaqueBlack(t *testing.T) {
	img, err := New(2, 2, 24)
	require.NoError(t, err)
	defer img.Close()

	assert.Equal(t, Color{A: 255}, at(img, 1, 1))
	assert.False(t, img.Transparent())
}

func TestResize(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			b, err := BackendByName(name)
			require.NoError(t, err)
			img := newPatternImage(t, 40, 20, WithBackend(b))

			out, err := img.Resize(10, 30, Bilinear)
			require.NoError(t, err)
			defer out.Close()

			assert.Equal(t, 10, out.Width())
			assert.Equal(t, 30, out.Height())
			assert.Equal(t, 24, out.BPP())
			assert.Equal(t, name, out.Backend().Name())
		})
	}
}

func TestResize_PromotesPalette(t *testing.T) {
	img, err := FromImage(newTwoColorPaletted(8, 8))
	require.NoError(t, err)
	defer img.Close()

	out, err := img.Resize(4, 4, Lanczos3)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 24, out.BPP())
}

func TestResize_InvalidSize(t *testing.T) {
	img := newPatternImage(t, 4, 4)

	_, err := img.Resize(0, 4, Box)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = img.Resize(4, -2, Box)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestThumbnail(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			b, err := BackendByName(name)
			require.NoError(t, err)
			img := newPatternImage(t, 100, 50, WithBackend(b))

			thumb, err := img.Thumbnail(20)
			require.NoError(t, err)
			defer thumb.Close()

			assert.Equal(t, 20, thumb.Width())
			assert.Equal(t, 10, thumb.Height())
		})
	}
}

func TestThumbnail_NeverEnlarges(t *testing.T) {
	img := newPatternImage(t, 12, 8)

	thumb, err := img.Thumbnail(64)
	require.NoError(t, err)
	defer thumb.Close()

	assert.Equal(t, 12, thumb.Width())
	assert.Equal(t, 8, thumb.Height())

	_, err = img.Thumbnail(0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestRotate_QuarterTurn(t *testing.T) {
	b, err := BackendByName("imaging")
	require.NoError(t, err)
	img := newPatternImage(t, 6, 4, WithBackend(b))

	out, err := img.Rotate(90)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 4, out.Width())
	assert.Equal(t, 6, out.Height())
	assert.Equal(t, 24, out.BPP())
	// counter-clockwise: the top-right pixel ends up top-left
	assert.Equal(t, Color{R: 5, G: 0, A: 255}, at(out, 0, 0))
}

func TestRotate_GrowsBounds(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			b, err := BackendByName(name)
			require.NoError(t, err)
			img := newPatternImage(t, 20, 20, WithBackend(b))

			out, err := img.Rotate(45)
			require.NoError(t, err)
			defer out.Close()

			assert.Greater(t, out.Width(), 20)
			assert.Greater(t, out.Height(), 20)
			assert.Equal(t, 24, out.BPP())
			// corners are uncovered and composited over black
			assert.Equal(t, Color{A: 255}, at(out, 0, 0))
		})
	}
}

func TestFlip(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			b, err := BackendByName(name)
			require.NoError(t, err)
			img := newPatternImage(t, 5, 3, WithBackend(b))

			h, err := img.FlipH()
			require.NoError(t, err)
			defer h.Close()
			assert.Equal(t, Color{R: 4, G: 0, A: 255}, at(h, 0, 0))
			assert.Equal(t, Color{R: 0, G: 2, A: 255}, at(h, 4, 2))

			v, err := img.FlipV()
			require.NoError(t, err)
			defer v.Close()
			assert.Equal(t, Color{R: 0, G: 2, A: 255}, at(v, 0, 0))
			assert.Equal(t, 5, v.Width())
			assert.Equal(t, 3, v.Height())
		})
	}
}

func TestBackends_ClipParity(t *testing.T) {
	r := Rect{Left: 2, Top: 3, Right: 11, Bottom: 8}
	var want *Image
	for _, name := range Backends() {
		b, err := BackendByName(name)
		require.NoError(t, err)
		img := newPatternImage(t, 16, 16, WithBackend(b))

		tile, err := img.Clip(r)
		require.NoError(t, err, name)
		t.Cleanup(func() { tile.Close() })

		if want == nil {
			want = tile
			continue
		}
		require.Equal(t, want.Width(), tile.Width(), name)
		require.Equal(t, want.Height(), tile.Height(), name)
		for y := 0; y < tile.Height(); y++ {
			for x := 0; x < tile.Width(); x++ {
				assert.Equal(t, at(want, x, y), at(tile, x, y), "%s at (%d,%d)", name, x, y)
			}
		}
	}
}

func TestTo32(t *testing.T) {
	img := newPatternImage(t, 3, 3)

	out, err := img.To32()
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 32, out.BPP())
	assert.Equal(t, Color{R: 2, G: 1, A: 255}, at(out, 2, 1))
}

func TestConform(t *testing.T) {
	src, err := New(4, 4, 24)
	require.NoError(t, err)
	defer src.Close()

	overlay := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	overlay.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	overlay.SetNRGBA(2, 2, color.NRGBA{G: 255, A: 128})

	out, err := src.Conform(overlay)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 24, out.BPP())
	assert.False(t, out.Transparent())
	assert.Equal(t, Color{R: 255, A: 255}, at(out, 1, 1))
	assert.Equal(t, Color{A: 255}, at(out, 0, 0), "transparent pixels land on black")

	pal, err := FromImage(newTwoColorPaletted(4, 4))
	require.NoError(t, err)
	defer pal.Close()
	onPalette, err := pal.Conform(overlay)
	require.NoError(t, err)
	defer onPalette.Close()
	assert.Equal(t, 1, onPalette.BPP())

	_, err = src.Conform(nil)
	assert.True(t, errors.Is(err, ErrEmptyImage))
	_, err = (&Image{}).Conform(overlay)
	assert.True(t, errors.Is(err, ErrEmptyImage))
}

func TestBackendByName(t *testing.T) {
	assert.Equal(t, []string{"bild", "gift", "imaging"}, Backends())

	b, err := BackendByName("GIFT")
	require.NoError(t, err)
	assert.Equal(t, "gift", b.Name())

	_, err = BackendByName("opencv")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDefaultBackend_Env(t *testing.T) {
	t.Setenv(EnvBackend, "bild")
	assert.Equal(t, "bild", DefaultBackend().Name())

	img := newPatternImage(t, 2, 2)
	assert.Equal(t, "bild", img.Backend().Name())

	t.Setenv(EnvBackend, "nonsense")
	assert.Equal(t, "imaging", DefaultBackend().Name())
	_, err := BackendFromEnv()
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), EnvBackend)

	t.Setenv(EnvBackend, "")
	b, err := BackendFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "imaging", b.Name())
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("Lanczos3")
	require.NoError(t, err)
	assert.Equal(t, Lanczos3, f)
	assert.Equal(t, "lanczos3", f.String())

	_, err = ParseFilter("sinc")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	assert.Equal(t, "box", Filter(99).String())
}
