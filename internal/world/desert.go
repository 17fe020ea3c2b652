package world

// DesertCorner returns the corner the desert floods from: on the spine's
// starting edge, on the side it leans toward.
func DesertCorner(g *Grid, r Range) Point {
	p := Point{}
	if r.East {
		p.X = g.width - 1
	}
	if r.Side == South {
		p.Y = g.height - 1
	}
	return p
}

// FloodDesert turns every cell reachable from the desert corner into desert
// sand without crossing rock or the Scratch spine. It is a plain flood fill;
// nothing is left to chance. Returns the number of cells converted.
func FloodDesert(g *Grid, r Range) int {
	return floodFill(g, DesertCorner(g, r), DesertSand, func(t Tile) bool {
		return t != Rock && t != Scratch && t != DesertSand
	})
}

// floodFill paints target over the 4-connected region of cells accepted by
// open, starting at start. Cells are marked when pushed so each is queued at
// most once.
func floodFill(g *Grid, start Point, target Tile, open func(Tile) bool) int {
	if !open(g.At(start)) {
		return 0
	}
	g.Put(start, target)
	filled := 1
	stack := []Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range Directions {
			n, ok := g.Step(p, d)
			if !ok || !open(g.At(n)) {
				continue
			}
			g.Put(n, target)
			filled++
			stack = append(stack, n)
		}
	}
	return filled
}
