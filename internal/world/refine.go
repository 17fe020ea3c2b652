package world

import "github.com/talgya/biome-map/internal/entropy"

const (
	rockScatterChance = 0.03
	beachChance       = 0.6
	oasisChance       = 0.7
	oasisPlainsChance = 0.4
	snowChance        = 0.5
	springScale       = 0.3
)

// TapSprings starts short rivers from enclosed high ground. Each spring
// flows until it reaches existing water or leaves the map.
func TapSprings(g *Grid, rng entropy.Source) int {
	if g.width == 1 && g.height == 1 {
		return 0
	}
	chance := springScale / float64(g.AvgDim())
	changed := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			if !isHighGround(g.At(p)) || !g.Enclosed(p) || rng.Float() >= chance {
				continue
			}
			changed += carveSpring(g, rng, p)
		}
	}
	return changed
}

// carveSpring walks a rivulet from p. The path is marked Scratch while it is
// walked so that running into its own trail is not mistaken for reaching a
// lake or river; the whole path becomes water once the walk is over.
func carveSpring(g *Grid, rng entropy.Source, p Point) int {
	flip := rng.Float() < 0.2
	dx := 1
	if (p.X > g.width/2) != flip {
		dx = -1
	}

	var path []Point
	x, y := p.X, p.Y
	for g.InBounds(x, y) && g.TileAt(x, y) != Water {
		if g.TileAt(x, y) != Scratch {
			path = append(path, Point{X: x, Y: y})
		}
		g.Set(x, y, Scratch)
		if rng.Float() < 0.4 {
			if rng.Float() < 0.25 {
				y--
			} else {
				y++
			}
		} else {
			x += dx
		}
	}

	for _, c := range path {
		g.Put(c, Water)
	}
	return len(path)
}

// ScatterRocks drops lone boulders on any dry tile.
func ScatterRocks(g *Grid, rng entropy.Source) int {
	changed := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			t := g.TileAt(x, y)
			if t == Water || rng.Float() >= rockScatterChance {
				continue
			}
			if t != Rock {
				changed++
			}
			g.Set(x, y, Rock)
		}
	}
	return changed
}

// PlaceBeaches turns plains and forest along water into beach.
func PlaceBeaches(g *Grid, rng entropy.Source) int {
	changed := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			t := g.At(p)
			if (t != Plains && t != Forest) || !g.Touches(p, Water) || rng.Float() >= beachChance {
				continue
			}
			g.Put(p, Beach)
			changed++
		}
	}
	return changed
}

// PlaceOases greens desert sand that borders water.
func PlaceOases(g *Grid, rng entropy.Source) int {
	changed := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			if g.At(p) != DesertSand || !g.Touches(p, Water) || rng.Float() >= oasisChance {
				continue
			}
			if rng.Float() < oasisPlainsChance {
				g.Put(p, Plains)
			} else {
				g.Put(p, Forest)
			}
			changed++
		}
	}
	return changed
}

// CapPeaks puts snow on rock that is surrounded by rock or snow on all
// eight sides.
func CapPeaks(g *Grid, rng entropy.Source) int {
	changed := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{X: x, Y: y}
			if g.At(p) != Rock || !g.Enclosed(p) || rng.Float() >= snowChance {
				continue
			}
			g.Put(p, Snow)
			changed++
		}
	}
	return changed
}
