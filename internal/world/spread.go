package world

import "github.com/talgya/biome-map/internal/entropy"

// spreadOrder is the order in which a spread tries a cell's neighbors.
var spreadOrder = [4]Direction{North, West, South, East}

// spreadCell is a painted cell waiting to push into its neighbors.
type spreadCell struct {
	at     Point
	budget int
}

// Spread paints target at origin and grows it outward through cells that
// satisfy eligible. A neighbor is entered when a draw falls below
// budget*0.75, so growth is certain near the origin and tapers as the budget
// shrinks. Each step costs 1 (p=0.65), 2 or 0 budget; cells reached with a
// negative budget are left alone. Returns the number of cells painted.
//
// The frontier is a FIFO queue, so every cell is first reached along a
// shortest path and memory is bounded by the painted area.
func Spread(g *Grid, rng entropy.Source, origin Point, eligible func(Tile) bool, target Tile, budget int) int {
	if budget < 0 {
		return 0
	}
	g.Put(origin, target)

	queue := []spreadCell{{at: origin, budget: budget}}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, d := range spreadOrder {
			n, ok := g.Step(cur.at, d)
			if !ok || !eligible(g.At(n)) {
				continue
			}
			if rng.Float() >= float64(cur.budget)*0.75 {
				continue
			}
			child := cur.budget - spreadDecay(rng)
			if child < 0 {
				continue
			}
			g.Put(n, target)
			queue = append(queue, spreadCell{at: n, budget: child})
		}
	}
	return len(queue)
}

// spreadDecay draws the budget cost of one spread step.
func spreadDecay(rng entropy.Source) int {
	if rng.Float() < 0.65 {
		return 1
	}
	if rng.Float() < 0.6 {
		return 2
	}
	return 0
}

func tileIs(tiles ...Tile) func(Tile) bool {
	return func(t Tile) bool {
		for _, want := range tiles {
			if t == want {
				return true
			}
		}
		return false
	}
}
