package tile

import (
	"fmt"
	"image"
	"math"
)

// Grid is the row-major tile layout of an image
type Grid struct {
	Image Size
	Tile  Size
	Cols  int
	Rows  int
}

// NewGrid lays tile over image. The tile size must divide the image size.
func NewGrid(imageSize, tileSize Size) (Grid, error) {
	if tileSize.Width <= 0 || tileSize.Height <= 0 {
		return Grid{}, fmt.Errorf("tile size %s must be positive", tileSize)
	}
	if imageSize.Width%tileSize.Width != 0 || imageSize.Height%tileSize.Height != 0 {
		return Grid{}, fmt.Errorf("tile size %s does not divide image size %s", tileSize, imageSize)
	}

	if imageSize.Width <= 0 || imageSize.Height <= 0 {
		return Grid{}, fmt.Errorf("image size %s must be positive", imageSize)
	}

	cols := imageSize.Width / tileSize.Width
	rows := imageSize.Height / tileSize.Height
	if cols > math.MaxInt/rows {
		return Grid{}, fmt.Errorf("image size %s holds too many tiles of %s", imageSize, tileSize)
	}

	return Grid{
		Image: imageSize,
		Tile:  tileSize,
		Cols:  cols,
		Rows:  rows,
	}, nil
}

// Count returns the number of tiles
func (g Grid) Count() int {
	return g.Cols * g.Rows
}

// Cell converts a linear tile index to its (column, row)
func (g Grid) Cell(t int) (int, int) {
	return t % g.Cols, t / g.Cols
}

// Origin returns the top-left pixel of tile t relative to the image origin
func (g Grid) Origin(t int) image.Point {
	col, row := g.Cell(t)
	return image.Point{
		X: col * g.Tile.Width,
		Y: row * g.Tile.Height,
	}
}

// Rect returns the pixel rectangle of tile t relative to the image origin
func (g Grid) Rect(t int) image.Rectangle {
	min := g.Origin(t)
	return image.Rectangle{
		Min: min,
		Max: min.Add(image.Pt(g.Tile.Width, g.Tile.Height)),
	}
}
