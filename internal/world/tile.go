// Package world provides the tile grid and the biome generation pipeline.
// Coordinates are (x, y) with x growing east and y growing south.
package world

import "fmt"

// Tile is the biome held by one grid cell.
type Tile uint8

const (
	Plains     Tile = iota // Default ground; every grid starts as plains
	Forest                 // Grown from scattered seeds
	Water                  // River, lakes and spring rivulets
	DesertSand             // Flooded from a corner beside the mountain range
	Rock                   // Mountain range and scattered boulders
	Beach                  // Shore next to water
	Snow                   // Ice caps on enclosed rock
	Scratch                // Transient marker used inside a stage, never in a finished map
)

// Biomes lists every tile that may appear in a finished map.
func Biomes() []Tile {
	return []Tile{Plains, Forest, Water, DesertSand, Rock, Beach, Snow}
}

// TileName returns a human-readable name for a tile.
func TileName(t Tile) string {
	switch t {
	case Plains:
		return "Plains"
	case Forest:
		return "Forest"
	case Water:
		return "Water"
	case DesertSand:
		return "Desert"
	case Rock:
		return "Rock"
	case Beach:
		return "Beach"
	case Snow:
		return "Snow"
	case Scratch:
		return "Scratch"
	default:
		return "Unknown"
	}
}

// String implements fmt.Stringer.
func (t Tile) String() string {
	return TileName(t)
}

// Point is a cell coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
