// Biome generation pipeline.
// Stages run in a fixed order against one grid and one random source; later
// stages use earlier biome placement as boundaries and eligibility.
package world

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/biome-map/internal/entropy"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width  int   // Grid columns
	Height int   // Grid rows
	Seed   int64 // Random seed (0 = random)
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:  256,
		Height: 128,
		Seed:   0,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Width:  48,
		Height: 32,
		Seed:   42,
	}
}

// Stage is one named step of the pipeline. Run returns how many cells it
// changed.
type Stage struct {
	Name string
	Run  func(*Pass) int
}

// Pass is the state shared by the stages of one generation call.
type Pass struct {
	Grid  *Grid
	Rand  entropy.Source
	Range Range // Set by the spine stage
}

// Stages returns the pipeline in execution order. The desert floods between
// laying the spine and raising the mountains, so the spine alone bounds it.
func Stages() []Stage {
	return []Stage{
		{Name: "spine", Run: func(p *Pass) int {
			p.Range = LaySpine(p.Grid, p.Rand)
			return p.Range.Cells
		}},
		{Name: "desert", Run: func(p *Pass) int { return FloodDesert(p.Grid, p.Range) }},
		{Name: "mountains", Run: func(p *Pass) int { return RaiseMountains(p.Grid, p.Rand) }},
		{Name: "forests", Run: func(p *Pass) int { return GrowForests(p.Grid, p.Rand) }},
		{Name: "river", Run: func(p *Pass) int { return CarveRiver(p.Grid, p.Rand, p.Range) }},
		{Name: "lakes", Run: func(p *Pass) int { return PlaceLakes(p.Grid, p.Rand) }},
		{Name: "springs", Run: func(p *Pass) int { return TapSprings(p.Grid, p.Rand) }},
		{Name: "rocks", Run: func(p *Pass) int { return ScatterRocks(p.Grid, p.Rand) }},
		{Name: "beaches", Run: func(p *Pass) int { return PlaceBeaches(p.Grid, p.Rand) }},
		{Name: "oases", Run: func(p *Pass) int { return PlaceOases(p.Grid, p.Rand) }},
		{Name: "ice_caps", Run: func(p *Pass) int { return CapPeaks(p.Grid, p.Rand) }},
	}
}

// StageResult summarizes one stage of a generation call.
type StageResult struct {
	Name    string        `json:"name"`
	Changed int           `json:"changed"`
	Elapsed time.Duration `json:"elapsed"`
}

// Report summarizes a generation call.
type Report struct {
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Range   Range         `json:"range"`
	Stages  []StageResult `json:"stages"`
	Counts  map[Tile]int  `json:"counts"`
	Draws   uint64        `json:"draws"`
	Elapsed time.Duration `json:"elapsed"`
}

// Generate runs the full pipeline over g, drawing every decision from rng.
// It panics if a Scratch tile survives, since that means a stage is broken.
func (g *Grid) Generate(rng entropy.Source) Report {
	counter := &entropy.Counter{Source: rng}
	pass := &Pass{Grid: g, Rand: counter}
	report := Report{Width: g.width, Height: g.height}

	start := time.Now()
	for _, st := range Stages() {
		t0 := time.Now()
		changed := st.Run(pass)
		elapsed := time.Since(t0)
		report.Stages = append(report.Stages, StageResult{Name: st.Name, Changed: changed, Elapsed: elapsed})
		slog.Debug("stage complete", "stage", st.Name, "changed", changed, "elapsed", elapsed)
	}
	report.Elapsed = time.Since(start)

	if n := g.Count(Scratch); n > 0 {
		panic(fmt.Sprintf("world: %d scratch tiles survived generation", n))
	}

	report.Range = pass.Range
	report.Counts = g.Counts()
	report.Draws = counter.Draws
	return report
}

// Build creates a grid from cfg and generates it. A zero seed is replaced by
// a random one; the seed actually used is returned so the map can be
// reproduced.
func Build(cfg GenConfig) (*Grid, Report, int64, error) {
	g, err := New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, Report{}, 0, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = entropy.RandomSeed()
	}
	report := g.Generate(entropy.NewSeeded(seed))
	return g, report, seed, nil
}
