package world

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/biome-map/internal/entropy"
)

var testSizes = [][2]int{{1, 1}, {1, 7}, {7, 1}, {2, 2}, {5, 5}, {16, 9}, {48, 32}, {96, 64}}

func generated(t *testing.T, w, h int, seed int64) (*Grid, Report) {
	t.Helper()
	g, err := New(w, h)
	require.NoError(t, err)
	report := g.Generate(entropy.NewSeeded(seed))
	return g, report
}

func TestGenerateLeavesNoScratch(t *testing.T) {
	for _, size := range testSizes {
		for seed := int64(1); seed <= 8; seed++ {
			g, report := generated(t, size[0], size[1], seed)
			require.Zero(t, g.Count(Scratch), "size %v seed %d", size, seed)
			require.Zero(t, report.Counts[Scratch])
		}
	}
}

func TestGenerateKeepsDimensions(t *testing.T) {
	for _, size := range testSizes {
		g, report := generated(t, size[0], size[1], 3)
		assert.Equal(t, size[0], g.Width())
		assert.Equal(t, size[1], g.Height())
		assert.Equal(t, size[0], report.Width)
		assert.Equal(t, size[1], report.Height)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, seed := range []int64{1, 42, 9001} {
		a, ra := generated(t, 64, 40, seed)
		b, rb := generated(t, 64, 40, seed)
		require.True(t, a.Equal(b), "seed %d", seed)
		assert.Equal(t, ra.Counts, rb.Counts)
		assert.Equal(t, ra.Draws, rb.Draws)
		assert.Equal(t, ra.Range, rb.Range)
	}

	a, _ := generated(t, 64, 40, 1)
	b, _ := generated(t, 64, 40, 2)
	assert.False(t, a.Equal(b), "different seeds should differ")
}

func TestBeachesTouchWater(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g, _ := generated(t, 80, 60, seed)
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				p := Point{X: x, Y: y}
				if g.At(p) == Beach {
					require.True(t, g.Touches(p, Water), "seed %d beach at %v", seed, p)
				}
			}
		}
	}
}

func TestSnowIsEnclosed(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g, _ := generated(t, 80, 60, seed)
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				p := Point{X: x, Y: y}
				if g.At(p) == Snow {
					require.True(t, g.Enclosed(p), "seed %d snow at %v", seed, p)
				}
			}
		}
	}
}

func TestLoneCellBecomesRock(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g, _ := generated(t, 1, 1, seed)
		assert.Equal(t, Rock, g.TileAt(0, 0), "seed %d", seed)
	}
}

func TestGenerateWithConstantDraws(t *testing.T) {
	for _, r := range []float64{0.0, 0.05, 0.5, 0.99} {
		t.Run(fmt.Sprintf("r=%.2f", r), func(t *testing.T) {
			g, err := New(5, 5)
			require.NoError(t, err)
			assert.NotPanics(t, func() { g.Generate(entropy.Fixed(r)) })
			assert.Zero(t, g.Count(Scratch))
		})
	}
}

func TestReportListsStagesInOrder(t *testing.T) {
	_, report := generated(t, 32, 24, 5)

	var names []string
	for _, st := range report.Stages {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{
		"spine", "desert", "mountains", "forests", "river", "lakes",
		"springs", "rocks", "beaches", "oases", "ice_caps",
	}, names)
	assert.Positive(t, report.Draws)

	total := 0
	for _, n := range report.Counts {
		total += n
	}
	assert.Equal(t, 32*24, total)
}

func TestBuild(t *testing.T) {
	cfg := SmallTestConfig()
	g, report, seed, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Seed, seed)
	assert.Equal(t, cfg.Width, g.Width())
	assert.NotEmpty(t, report.Stages)

	again, _, _, err := Build(cfg)
	require.NoError(t, err)
	assert.True(t, g.Equal(again))

	cfg.Seed = 0
	_, _, seed, err = Build(cfg)
	require.NoError(t, err)
	assert.NotZero(t, seed)

	_, _, _, err = Build(GenConfig{Width: 0, Height: 4})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestGeneratedMapHasEveryMajorBiome(t *testing.T) {
	g, _ := generated(t, 256, 128, 42)
	counts := g.Counts()
	for _, tile := range []Tile{Plains, Forest, Water, Rock} {
		assert.Positive(t, counts[tile], TileName(tile))
	}
}
