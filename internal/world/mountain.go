package world

import "github.com/talgya/biome-map/internal/entropy"

// Range records where the mountain spine was laid. The desert and river
// stages orient themselves by it.
type Range struct {
	Side  Direction // North or South: the edge the spine started from
	East  bool      // Whether the spine leans toward the east half
	Cells int       // Number of spine cells laid
}

// LaySpine walks the mountain range's backbone from the north or south edge
// toward the interior, marking every visited cell as Scratch. The walk ends
// when it leaves the grid; RaiseMountains later turns the Scratch cells into
// rock.
func LaySpine(g *Grid, rng entropy.Source) Range {
	r := Range{Side: South}
	if rng.Float() < 0.5 {
		r.Side = North
	}
	r.East = rng.Float() > 0.5

	w := float64(g.width)
	xOffset := int(rng.Float()*0.15*w + 0.25*w)
	x := xOffset
	if r.East {
		x = g.width - (xOffset + 1)
	}
	y, dy := 0, 1
	if r.Side == South {
		y, dy = g.height-1, -1
	}

	for g.InBounds(x, y) {
		if g.TileAt(x, y) != Scratch {
			r.Cells++
		}
		g.Set(x, y, Scratch)
		roll := rng.Float()
		if roll < 0.65 {
			y += dy
			continue
		}
		// The same roll splits the horizontal branch: below 0.92 the spine
		// keeps leaning, above it it doubles back.
		if r.East == (roll < 0.92) {
			x++
		} else {
			x--
		}
	}
	return r
}

// RaiseMountains spreads rock from every spine cell over plains and desert.
// Budgets scale with the grid: [avg/16, avg/8) roughly.
func RaiseMountains(g *Grid, rng entropy.Source) int {
	avg := g.AvgDim()
	eligible := tileIs(Plains, DesertSand)
	changed := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.TileAt(x, y) != Scratch {
				continue
			}
			budget := int(rng.Float()*float64(avg)/16 + float64(avg/16))
			changed += Spread(g, rng, Point{X: x, Y: y}, eligible, Rock, budget)
		}
	}
	return changed
}
