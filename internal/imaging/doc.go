// Package imaging wraps third-party raster libraries behind an owning Image
// type.
//
// An Image holds exactly one pixel buffer. It is created by Load, Decode or
// New, handled through a pointer, and released with Close. Images are never
// duplicated implicitly: Move hands the buffer to a new Image and Clone
// copies it. The zero Image is empty and every operation on it except the
// metadata accessors fails with ErrEmptyImage.
//
// # Backends
//
// Geometric transforms are delegated to a Backend. Three are registered:
//   - "imaging": github.com/disintegration/imaging (the default)
//   - "bild": github.com/anthonynsimon/bild, thumbnails via github.com/nfnt/resize
//   - "gift": github.com/disintegration/gift
//
// The default can be changed with the IMAGE_TILER_BACKEND environment
// variable or per image with WithBackend. Decoding and encoding go through a
// shared codec table (PNG, JPEG, GIF, BMP, TIFF, and decode-only WebP).
//
// # Coordinate Systems
//
// Clip rectangles are closed and use a top-left origin:
//   - Rect{Left: 0, Top: 0, Right: 9, Bottom: 9} selects a 10x10 block
//   - Coordinates outside the image fail with ErrInvalidRegion, never clamp
//
// Pixel access (ColorAt, SetColor, ColorIndexAt, IsTransparentAt) and
// ToRawBits use a bottom-left origin with Y growing upward.
//
// # Bit Depth
//
// BPP follows the classic bitmap depths: 1, 4 and 8 for palettized images,
// 8 and 16 for gray, 24 and 48 for opaque color, 32 and 64 for color with
// alpha. Encoders refuse depths their format cannot store, for example
// 32-bit JPEG or 24-bit GIF.
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind. Test for a kind with errors.Is:
//
//	tile, err := img.Clip(r)
//	if errors.Is(err, imaging.ErrInvalidRegion) {
//	    // r left the source image
//	}
//
// # Lifecycle
//
// Initialize and Shutdown bracket process-wide use of the codec table.
// Calls nest and only the first Initialize builds the table. Library users
// that skip Initialize get a lazily built table.
package imaging
