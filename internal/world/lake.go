package world

import (
	"math"

	"github.com/talgya/biome-map/internal/entropy"
)

// PlaceLakes seeds small lakes over plains, forest and desert. Desert lakes
// are smaller. Lakes never flood rock or existing water.
func PlaceLakes(g *Grid, rng entropy.Source) int {
	avg := float64(g.AvgDim())
	chance := 3 * math.Pow(avg, -1.6)
	greenReach := math.Pow(avg, 0.3)
	desertReach := math.Pow(avg, 0.2)
	eligible := func(t Tile) bool { return t != Rock && t != Water }

	changed := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			t := g.TileAt(x, y)
			var reach float64
			switch {
			case (t == Plains || t == Forest) && rng.Float() < chance:
				reach = greenReach
			case t == DesertSand && rng.Float() < chance:
				reach = desertReach
			default:
				continue
			}
			budget := int(rng.Float()*reach) + 1
			changed += Spread(g, rng, Point{X: x, Y: y}, eligible, Water, budget)
		}
	}
	return changed
}
