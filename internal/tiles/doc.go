// Package tiles extracts a grid of sub-images from a source image and saves
// each one to a numbered file.
//
// A Grid describes the first tile (Start, Size), how far the window moves
// between tiles (StepX, StepY) and how many tiles form a row (PerRow). The
// window starts at Start and, for tiles 1..Count, is clipped from the
// source, saved, then moved: right by StepX, or back to Start.X and down by
// StepY after every PerRow tiles. An unbounded PerRow keeps all tiles on one
// row.
//
// Tile rectangles are closed. With the default SpanClosed a tile covers
// Size.X+1 by Size.Y+1 pixels, so tiles stepped by exactly Size share one
// column or row with their neighbour. SpanExact covers Size.X by Size.Y.
//
// Extraction is strictly sequential and stops at the first failure. Files
// written before the failure are left in place.
//
// Preview draws the tile outlines of a Grid over the source instead of
// cutting it, which helps tune offsets for a sprite sheet.
package tiles
