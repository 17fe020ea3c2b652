package world

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension is returned when a grid is requested with a
// non-positive width or height.
var ErrInvalidDimension = errors.New("invalid grid dimension")

// Grid holds a fixed-size rectangle of tiles in row-major order.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// New creates a width×height grid filled with plains.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	// Plains is the zero Tile, so the fresh buffer is already initialized.
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// AvgDim returns the integer mean of width and height. Stage budgets and
// seed probabilities scale with it.
func (g *Grid) AvgDim() int { return (g.width + g.height) / 2 }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("world: cell (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// TileAt returns the tile at (x, y). It panics when (x, y) is off the grid.
func (g *Grid) TileAt(x, y int) Tile {
	return g.tiles[g.index(x, y)]
}

// Set writes t at (x, y). It panics when (x, y) is off the grid.
func (g *Grid) Set(x, y int, t Tile) {
	g.tiles[g.index(x, y)] = t
}

// At returns the tile at p.
func (g *Grid) At(p Point) Tile {
	return g.TileAt(p.X, p.Y)
}

// Put writes t at p.
func (g *Grid) Put(p Point, t Tile) {
	g.Set(p.X, p.Y, t)
}

// Fill overwrites every cell with t.
func (g *Grid) Fill(t Tile) {
	for i := range g.tiles {
		g.tiles[i] = t
	}
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, v := range g.tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Counts returns the number of cells per tile.
func (g *Grid) Counts() map[Tile]int {
	counts := make(map[Tile]int)
	for _, v := range g.tiles {
		counts[v]++
	}
	return counts
}

// Equal reports whether two grids have the same dimensions and tiles.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != o.tiles[i] {
			return false
		}
	}
	return true
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.width, g.height)
}
