// Command mapgen generates one biome map, logs its composition, records the
// run in the ledger and writes any requested previews.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/biome-map/internal/config"
	"github.com/talgya/biome-map/internal/persistence"
	"github.com/talgya/biome-map/internal/render"
	"github.com/talgya/biome-map/internal/world"
)

func main() {
	configPath := flag.String("config", envOrDefault("MAPGEN_CONFIG", ""), "YAML config file")
	width := flag.Int("width", 0, "map width in tiles (overrides config)")
	height := flag.Int("height", 0, "map height in tiles (overrides config)")
	seed := flag.Int64("seed", 0, "random seed, 0 for random (overrides config)")
	pngPath := flag.String("png", "", "write a PNG preview to this path")
	ascii := flag.Bool("ascii", false, "print the map as text")
	dbPath := flag.String("db", "", "run ledger database (overrides config)")
	history := flag.Int("history", 0, "list the N most recent runs and exit")
	writeDefault := flag.String("write-default", "", "write the default config to this path and exit")
	flag.Parse()

	if *writeDefault != "" {
		if err := config.WriteDefault(*writeDefault); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Default config written to %s\n", *writeDefault)
		return
	}

	// ── Configuration ─────────────────────────────────────────────────
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = *loaded
	}
	cfg.Width = envIntOrDefault("MAPGEN_WIDTH", cfg.Width)
	cfg.Height = envIntOrDefault("MAPGEN_HEIGHT", cfg.Height)
	cfg.Seed = envInt64OrDefault("MAPGEN_SEED", cfg.Seed)
	cfg.Database = envOrDefault("MAPGEN_DB", cfg.Database)
	cfg.LogLevel = envOrDefault("MAPGEN_LOG_LEVEL", cfg.LogLevel)
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *dbPath != "" {
		cfg.Database = *dbPath
	}
	if *pngPath != "" {
		cfg.Preview.Path = *pngPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// ── Run Ledger ────────────────────────────────────────────────────
	var db *persistence.DB
	if cfg.Database != "" {
		var err error
		db, err = persistence.Open(cfg.Database)
		if err != nil {
			slog.Error("failed to open run ledger", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("run ledger opened", "path", cfg.Database)
	}

	if *history > 0 {
		if db == nil {
			slog.Error("-history needs a run ledger (-db or database in config)")
			os.Exit(1)
		}
		printHistory(db, *history)
		return
	}

	// ── Generation ────────────────────────────────────────────────────
	slog.Info("generating map...", "width", cfg.Width, "height", cfg.Height)
	grid, report, usedSeed, err := world.Build(cfg.GenConfig())
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("map generated",
		"seed", usedSeed,
		"spine_side", report.Range.Side,
		"spine_east", report.Range.East,
		"draws", humanize.Comma(int64(report.Draws)),
		"elapsed", report.Elapsed,
	)
	for _, st := range report.Stages {
		slog.Debug("stage", "name", st.Name, "changed", humanize.Comma(int64(st.Changed)), "elapsed", st.Elapsed)
	}
	logTerrain(report.Counts, grid.Width()*grid.Height())

	if db != nil {
		run := persistence.NewRun(usedSeed, report)
		if err := db.SaveRun(run); err != nil {
			slog.Error("failed to record run", "error", err)
		} else {
			slog.Info("run recorded", "id", run.ID)
		}
		if err := db.SaveMeta("last_seed", strconv.FormatInt(usedSeed, 10)); err != nil {
			slog.Error("failed to save last seed", "error", err)
		}
	}

	// ── Previews ──────────────────────────────────────────────────────
	if cfg.Preview.Path != "" {
		opts := render.Options{
			TileSize: cfg.Preview.TileSize,
			Shading:  cfg.Preview.Shading,
			Seed:     usedSeed,
		}
		if err := render.WritePNG(cfg.Preview.Path, grid, opts); err != nil {
			slog.Error("failed to write preview", "error", err)
			os.Exit(1)
		}
		slog.Info("preview written", "path", cfg.Preview.Path)
	}
	if *ascii {
		fmt.Print(render.Text(grid))
	}

	fmt.Printf("\nGenerated a %dx%d map from seed %d.\n", grid.Width(), grid.Height(), usedSeed)
}

// logTerrain logs each biome's share of the map, largest first.
func logTerrain(counts map[world.Tile]int, total int) {
	tiles := world.Biomes()
	sort.SliceStable(tiles, func(i, j int) bool { return counts[tiles[i]] > counts[tiles[j]] })
	for _, t := range tiles {
		n := counts[t]
		slog.Info("terrain",
			"type", world.TileName(t),
			"count", humanize.Comma(int64(n)),
			"share", fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total)),
		)
	}
}

func printHistory(db *persistence.DB, limit int) {
	runs, err := db.RecentRuns(limit)
	if err != nil {
		slog.Error("failed to list runs", "error", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return
	}
	for _, r := range runs {
		fmt.Printf("%s  seed=%-20d %4dx%-4d %s  (%s)\n",
			r.ID, r.Seed, r.Width, r.Height,
			time.Duration(r.ElapsedUS)*time.Microsecond,
			humanize.Time(r.CreatedAt),
		)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envInt64OrDefault(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}
