package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/biome-map/internal/entropy"
)

func newGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := New(w, h)
	require.NoError(t, err)
	return g
}

func TestLaySpineLowDrawsRunStraight(t *testing.T) {
	g := newGrid(t, 5, 5)

	r := LaySpine(g, entropy.Fixed(0.05))

	assert.Equal(t, North, r.Side)
	assert.False(t, r.East)
	assert.Equal(t, 5, r.Cells)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 1 {
				assert.Equal(t, Scratch, g.TileAt(x, y), "spine cell (%d,%d)", x, y)
			} else {
				assert.Equal(t, Plains, g.TileAt(x, y), "off-spine cell (%d,%d)", x, y)
			}
		}
	}
}

func TestLaySpineFromSouthEast(t *testing.T) {
	g := newGrid(t, 20, 10)

	// Side 0.7 -> south, lean 0.7 -> east, offset 0.0 -> 0.25W, then always
	// step north.
	r := LaySpine(g, entropy.NewSequence(0.7, 0.7, 0.0, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1))

	assert.Equal(t, South, r.Side)
	assert.True(t, r.East)
	assert.Equal(t, 10, g.Count(Scratch))
	for y := 0; y < 10; y++ {
		assert.Equal(t, Scratch, g.TileAt(20-6, y))
	}
}

func TestRaiseMountainsResolvesSpine(t *testing.T) {
	g := newGrid(t, 5, 5)
	rng := entropy.Fixed(0.05)
	LaySpine(g, rng)

	changed := RaiseMountains(g, rng)

	assert.Equal(t, 5, changed)
	assert.Zero(t, g.Count(Scratch))
	assert.Equal(t, 5, g.Count(Rock))
}

func TestRaiseMountainsSpreadsOverDesert(t *testing.T) {
	g := newGrid(t, 64, 64)
	g.Fill(DesertSand)
	g.Set(32, 32, Scratch)

	RaiseMountains(g, entropy.Fixed(0.05))

	// avg 64 gives a budget of 4; low draws paint the full diamond.
	assert.Equal(t, 41, g.Count(Rock))
	assert.Zero(t, g.Count(Scratch))
}

func TestFloodDesertWithoutBoundaryCoversGrid(t *testing.T) {
	g := newGrid(t, 20, 20)

	filled := FloodDesert(g, Range{Side: North})

	assert.Equal(t, 400, filled)
	assert.Equal(t, 400, g.Count(DesertSand))
}

func TestFloodDesertStopsAtSpine(t *testing.T) {
	g := newGrid(t, 5, 5)
	r := LaySpine(g, entropy.Fixed(0.05))

	filled := FloodDesert(g, r)

	assert.Equal(t, 5, filled)
	for y := 0; y < 5; y++ {
		assert.Equal(t, DesertSand, g.TileAt(0, y))
		assert.Equal(t, Scratch, g.TileAt(1, y))
		for x := 2; x < 5; x++ {
			assert.Equal(t, Plains, g.TileAt(x, y))
		}
	}
}

func TestFloodDesertBlockedCornerIsNoop(t *testing.T) {
	g := newGrid(t, 4, 4)
	g.Set(3, 3, Rock)

	assert.Zero(t, FloodDesert(g, Range{Side: South, East: true}))
	assert.Zero(t, g.Count(DesertSand))
}

func TestDesertCorner(t *testing.T) {
	g := newGrid(t, 8, 6)
	assert.Equal(t, Point{X: 0, Y: 0}, DesertCorner(g, Range{Side: North}))
	assert.Equal(t, Point{X: 7, Y: 0}, DesertCorner(g, Range{Side: North, East: true}))
	assert.Equal(t, Point{X: 0, Y: 5}, DesertCorner(g, Range{Side: South}))
	assert.Equal(t, Point{X: 7, Y: 5}, DesertCorner(g, Range{Side: South, East: true}))
}

func TestDesertNeverLeaksPastSpine(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := newGrid(t, 40, 30)
		rng := entropy.NewSeeded(seed)
		r := LaySpine(g, rng)
		FloodDesert(g, r)

		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				p := Point{X: x, Y: y}
				if g.At(p) != DesertSand {
					continue
				}
				for _, d := range Directions {
					n, ok := g.Step(p, d)
					if ok {
						require.NotEqual(t, Plains, g.At(n), "seed %d: desert %v borders plains at %v", seed, p, n)
					}
				}
			}
		}
	}
}

func TestGrowForestsOnlyCoversPlains(t *testing.T) {
	g := newGrid(t, 30, 30)
	for y := 0; y < 30; y++ {
		g.Set(15, y, Rock)
	}

	changed := GrowForests(g, entropy.NewSeeded(9))

	assert.Equal(t, changed, g.Count(Forest))
	assert.Equal(t, 30, g.Count(Rock))
}

// repeatDraw appends n copies of v to draws.
func repeatDraw(draws []float64, v float64, n int) []float64 {
	for i := 0; i < n; i++ {
		draws = append(draws, v)
	}
	return draws
}

// stripGrid is a 30x10 grid (average dimension 20) of rock with row 0 set
// to top.
func stripGrid(t *testing.T, top Tile) *Grid {
	t.Helper()
	g := newGrid(t, 30, 10)
	g.Fill(Rock)
	for x := 0; x < 30; x++ {
		g.Set(x, 0, top)
	}
	return g
}

func TestGrowForestsBudgetScalesWithGrid(t *testing.T) {
	g := stripGrid(t, Plains)

	// Seed at (0,0); budget int(0.95 * 20^0.4) + 1 = 4. Zero draws then walk
	// the strip eastward one cell per budget point (8 draws), and the last
	// cell's attempt fails (1 draw). The 25 remaining plains cells decline.
	draws := []float64{0.0, 0.95}
	draws = repeatDraw(draws, 0.0, 9)
	draws = repeatDraw(draws, 0.9, 25)

	changed := GrowForests(g, entropy.NewSequence(draws...))

	assert.Equal(t, 5, changed)
	assert.Equal(t, 5, g.Count(Forest))
	for x := 0; x < 5; x++ {
		assert.Equal(t, Forest, g.TileAt(x, 0))
	}
	assert.Equal(t, Plains, g.TileAt(5, 0))
}

func TestCarveRiverLowDrawsRunDownEdge(t *testing.T) {
	g := newGrid(t, 10, 10)

	changed := CarveRiver(g, entropy.Fixed(0.05), Range{})

	assert.Equal(t, 10, changed)
	for y := 0; y < 10; y++ {
		assert.Equal(t, Water, g.TileAt(9, y))
	}

	g = newGrid(t, 10, 10)
	CarveRiver(g, entropy.Fixed(0.05), Range{East: true})
	for y := 0; y < 10; y++ {
		assert.Equal(t, Water, g.TileAt(0, y))
	}
}

func TestCarveRiverTurnsBack(t *testing.T) {
	g := newGrid(t, 10, 10)

	// West edge start in the top row, then only sideways steps: the river
	// heads east until it passes 0.4W, turns, and runs back out the west edge.
	draws := []float64{0.5, 0.0, 0.2}
	for i := 0; i < 11; i++ {
		draws = append(draws, 0.9)
	}
	changed := CarveRiver(g, entropy.NewSequence(draws...), Range{East: true})

	assert.Equal(t, 6, changed)
	for x := 0; x <= 5; x++ {
		assert.Equal(t, Water, g.TileAt(x, 0))
	}
	assert.Equal(t, Plains, g.TileAt(6, 0))
}

func TestCarveRiverSkipsLoneCell(t *testing.T) {
	g := newGrid(t, 1, 1)
	assert.Zero(t, CarveRiver(g, entropy.Fixed(0.05), Range{}))
	assert.Equal(t, Plains, g.TileAt(0, 0))
}

func TestPlaceLakesAvoidsRock(t *testing.T) {
	g := newGrid(t, 20, 20)
	for x := 0; x < 20; x++ {
		g.Set(x, 10, Rock)
	}

	// Draws below the seed chance start a lake on every eligible cell.
	changed := PlaceLakes(g, entropy.Fixed(0.01))

	assert.Equal(t, 20, g.Count(Rock))
	assert.Equal(t, 380, g.Count(Water))
	assert.Equal(t, 380, changed)
}

func TestPlaceLakesDesertLakesAreSmaller(t *testing.T) {
	// A seeded lake with budget b walks b cells east along the strip:
	// 2b draws to grow, one failed attempt, then one declined seed per
	// remaining cell. At average dimension 20 a 0.95 budget draw gives
	// int(0.95 * 20^0.3) + 1 = 3 on plains and int(0.95 * 20^0.2) + 1 = 2
	// on desert.
	cases := []struct {
		name   string
		top    Tile
		budget int
	}{
		{"plains", Plains, 3},
		{"forest", Forest, 3},
		{"desert", DesertSand, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := stripGrid(t, tc.top)
			lake := tc.budget + 1

			draws := []float64{0.0, 0.95}
			draws = repeatDraw(draws, 0.0, 2*tc.budget+1)
			draws = repeatDraw(draws, 0.9, 30-lake)

			changed := PlaceLakes(g, entropy.NewSequence(draws...))

			assert.Equal(t, lake, changed)
			assert.Equal(t, lake, g.Count(Water))
			assert.Equal(t, Water, g.TileAt(lake-1, 0))
			assert.Equal(t, tc.top, g.TileAt(lake, 0))
		})
	}
}

func TestCarveSpringCommitsPath(t *testing.T) {
	g := newGrid(t, 5, 5)
	g.Fill(Rock)
	for x := 0; x < 5; x++ {
		g.Set(x, 4, Water)
	}

	// No flip, then repeated (vertical, south) steps.
	carved := carveSpring(g, entropy.NewSequence(0.9, 0.1), Point{X: 2, Y: 1})

	assert.Equal(t, 3, carved)
	assert.Zero(t, g.Count(Scratch))
	assert.Equal(t, 8, g.Count(Water))
	for y := 1; y < 4; y++ {
		assert.Equal(t, Water, g.TileAt(2, y))
	}
}

func TestCarveSpringWalksOverOwnTrail(t *testing.T) {
	g := newGrid(t, 5, 5)
	g.Fill(Rock)
	for x := 0; x < 5; x++ {
		g.Set(x, 4, Water)
	}

	// North once, then back south over the trail and on to the water.
	carved := carveSpring(g, entropy.NewSequence(0.9, 0.1, 0.1, 0.1, 0.9, 0.1, 0.9, 0.1, 0.9), Point{X: 2, Y: 2})

	assert.Equal(t, 3, carved)
	assert.Zero(t, g.Count(Scratch))
	for y := 1; y < 4; y++ {
		assert.Equal(t, Water, g.TileAt(2, y))
	}
	assert.Equal(t, Rock, g.TileAt(2, 0))
}

func TestCarveSpringLeavesGrid(t *testing.T) {
	g := newGrid(t, 6, 6)
	g.Fill(Rock)

	// Flip (0.05 < 0.2), then always north.
	carved := carveSpring(g, entropy.Fixed(0.05), Point{X: 3, Y: 3})

	assert.Equal(t, 4, carved)
	assert.Zero(t, g.Count(Scratch))
	for y := 0; y <= 3; y++ {
		assert.Equal(t, Water, g.TileAt(3, y))
	}
}

func TestTapSpringsNeedsEnclosure(t *testing.T) {
	g := newGrid(t, 8, 8)
	g.Fill(Forest)

	assert.Zero(t, TapSprings(g, entropy.Fixed(0.0)))
	assert.Zero(t, g.Count(Water))
}

func TestScatterRocksSparesWater(t *testing.T) {
	g := newGrid(t, 4, 4)
	g.Set(1, 1, Water)
	g.Set(2, 2, Rock)

	changed := ScatterRocks(g, entropy.Fixed(0.01))

	assert.Equal(t, 14, changed)
	assert.Equal(t, 15, g.Count(Rock))
	assert.Equal(t, Water, g.TileAt(1, 1))
}

func TestPlaceBeaches(t *testing.T) {
	g := newGrid(t, 3, 3)
	g.Set(1, 1, Water)

	changed := PlaceBeaches(g, entropy.Fixed(0.05))

	assert.Equal(t, 4, changed)
	for _, p := range []Point{{1, 0}, {0, 1}, {2, 1}, {1, 2}} {
		assert.Equal(t, Beach, g.At(p))
	}
	for _, p := range []Point{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
		assert.Equal(t, Plains, g.At(p))
	}
}

func TestPlaceBeachesHighDrawsKeepShore(t *testing.T) {
	g := newGrid(t, 3, 3)
	g.Set(1, 1, Water)
	assert.Zero(t, PlaceBeaches(g, entropy.Fixed(0.6)))
}

func TestPlaceOases(t *testing.T) {
	g := newGrid(t, 3, 3)
	g.Fill(DesertSand)
	g.Set(1, 1, Water)

	assert.Equal(t, 4, PlaceOases(g, entropy.Fixed(0.05)))
	assert.Equal(t, 4, g.Count(Plains))

	g.Fill(DesertSand)
	g.Set(1, 1, Water)
	assert.Equal(t, 4, PlaceOases(g, entropy.Fixed(0.5)))
	assert.Equal(t, 4, g.Count(Forest))

	g.Fill(DesertSand)
	g.Set(1, 1, Water)
	assert.Zero(t, PlaceOases(g, entropy.Fixed(0.7)))
}

func TestCapPeaksUsesEdgeClamp(t *testing.T) {
	g := newGrid(t, 3, 3)
	g.Fill(Rock)

	assert.Equal(t, 9, CapPeaks(g, entropy.Fixed(0.05)))
	assert.Equal(t, 9, g.Count(Snow))
}

func TestCapPeaksSkipsExposedRock(t *testing.T) {
	g := newGrid(t, 3, 3)
	g.Fill(Rock)
	g.Set(2, 2, Plains)

	assert.Equal(t, 5, CapPeaks(g, entropy.Fixed(0.05)))
	for _, p := range []Point{{1, 1}, {2, 1}, {1, 2}} {
		assert.Equal(t, Rock, g.At(p))
	}
}
