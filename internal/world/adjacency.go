package world

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the cardinal directions clockwise from north.
var Directions = [4]Direction{North, East, South, West}

// Offset returns the unit step for d.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	panic("world: unknown direction")
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Corner is one of the four diagonal directions.
type Corner uint8

const (
	NorthEast Corner = iota
	SouthEast
	SouthWest
	NorthWest
)

// Corners lists the diagonal directions clockwise from north-east.
var Corners = [4]Corner{NorthEast, SouthEast, SouthWest, NorthWest}

// Offset returns the diagonal step for c.
func (c Corner) Offset() (dx, dy int) {
	switch c {
	case NorthEast:
		return 1, -1
	case SouthEast:
		return 1, 1
	case SouthWest:
		return -1, 1
	case NorthWest:
		return -1, -1
	}
	panic("world: unknown corner")
}

// Step returns the cell one step from p in direction d and whether it is on
// the grid.
func (g *Grid) Step(p Point, d Direction) (Point, bool) {
	dx, dy := d.Offset()
	n := Point{X: p.X + dx, Y: p.Y + dy}
	return n, g.InBounds(n.X, n.Y)
}

// Neighbor returns the tile next to p in direction d. When the step would
// leave the grid the tile at p itself is returned.
func (g *Grid) Neighbor(p Point, d Direction) Tile {
	if n, ok := g.Step(p, d); ok {
		return g.At(n)
	}
	return g.At(p)
}

// CornerTile returns the tile diagonally next to p toward c, clamped to p
// itself at the edges like Neighbor.
func (g *Grid) CornerTile(p Point, c Corner) Tile {
	dx, dy := c.Offset()
	if g.InBounds(p.X+dx, p.Y+dy) {
		return g.TileAt(p.X+dx, p.Y+dy)
	}
	return g.At(p)
}

// Touches reports whether any cardinal neighbor of p is t. Edge cells see
// their own tile past the border.
func (g *Grid) Touches(p Point, t Tile) bool {
	for _, d := range Directions {
		if g.Neighbor(p, d) == t {
			return true
		}
	}
	return false
}

func isHighGround(t Tile) bool {
	return t == Rock || t == Snow
}

// Enclosed reports whether all eight surrounding cells of p are rock or snow.
// Off-grid neighbors count as p's own tile. A cell with no neighbor on the
// grid at all (a 1×1 grid) is never enclosed.
func (g *Grid) Enclosed(p Point) bool {
	if g.width == 1 && g.height == 1 {
		return false
	}
	for _, d := range Directions {
		if !isHighGround(g.Neighbor(p, d)) {
			return false
		}
	}
	for _, c := range Corners {
		if !isHighGround(g.CornerTile(p, c)) {
			return false
		}
	}
	return true
}
