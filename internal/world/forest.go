package world

import (
	"math"

	"github.com/talgya/biome-map/internal/entropy"
)

const forestSeedChance = 0.025

// GrowForests scatters forest seeds over plains and grows each into a patch.
func GrowForests(g *Grid, rng entropy.Source) int {
	reach := math.Pow(float64(g.AvgDim()), 0.4)
	eligible := tileIs(Plains)
	changed := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.TileAt(x, y) != Plains || rng.Float() >= forestSeedChance {
				continue
			}
			budget := int(rng.Float()*reach) + 1
			changed += Spread(g, rng, Point{X: x, Y: y}, eligible, Forest, budget)
		}
	}
	return changed
}
