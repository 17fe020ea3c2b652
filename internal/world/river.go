package world

import "github.com/talgya/biome-map/internal/entropy"

// CarveRiver lays a single river of water across the map. Most rivers start
// on the vertical edge opposite the mountain lean, near a corner; the rest
// start on the north or south edge. The river runs mostly north/south and
// bends back on itself once it has crossed the middle band of the map.
// A single-cell grid has no room for a river and is left untouched.
func CarveRiver(g *Grid, rng entropy.Source, r Range) int {
	if g.width == 1 && g.height == 1 {
		return 0
	}
	w, h := float64(g.width), float64(g.height)

	var x, y int
	if rng.Float() < 0.3 {
		y = g.height - 1
		if rng.Float() < 0.5 {
			y = 0
		}
		xOffset := int(rng.Float() * 0.4 * w)
		x = g.width - (xOffset + 1)
		if r.East {
			x = xOffset
		}
	} else {
		x = g.width - 1
		if r.East {
			x = 0
		}
		yOffset := int(rng.Float() * 0.3 * h)
		y = g.height - (yOffset + 1)
		if rng.Float() < 0.5 {
			y = yOffset
		}
	}

	xSign := x > g.width/2 // started in the east half
	ySign := y > g.height/2
	dy := 1
	if ySign {
		dy = -1
	}

	turned := false
	changed := 0
	for g.InBounds(x, y) {
		if g.TileAt(x, y) != Water {
			changed++
		}
		g.Set(x, y, Water)
		if (xSign && float64(x) < w*0.6) || (!xSign && float64(x) > w*0.4) {
			turned = true
		}
		if rng.Float() < 0.6 {
			y += dy
		} else if xSign == turned {
			x++
		} else {
			x--
		}
	}
	return changed
}
