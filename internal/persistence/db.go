// Package persistence provides a SQLite ledger of generation runs.
// Only run summaries are stored (seed, size, tile counts, stage stats); a
// map is reproduced from its seed, never loaded from disk.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/biome-map/internal/world"
)

// DB wraps a SQLite connection for the run ledger.
type DB struct {
	conn *sqlx.DB
}

// Run is the stored summary of one generation call.
type Run struct {
	ID        string         `db:"id" json:"id"`
	Seed      int64          `db:"seed" json:"seed"`
	Width     int            `db:"width" json:"width"`
	Height    int            `db:"height" json:"height"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	ElapsedUS int64          `db:"elapsed_us" json:"elapsed_us"`
	Draws     int64          `db:"draws" json:"draws"`
	Counts    map[string]int `db:"-" json:"counts"` // Tile name → cells
	Stages    []StageRow     `db:"-" json:"stages"`
}

// StageRow is the stored summary of one pipeline stage.
type StageRow struct {
	RunID     string `db:"run_id" json:"-"`
	Position  int    `db:"position" json:"position"`
	Name      string `db:"name" json:"name"`
	Changed   int    `db:"changed" json:"changed"`
	ElapsedUS int64  `db:"elapsed_us" json:"elapsed_us"`
}

// runRow is the runs table row; counts are kept as JSON.
type runRow struct {
	Run
	CountsJSON string `db:"counts_json"`
}

// NewRun builds a ledger entry from a generation report.
func NewRun(seed int64, report world.Report) Run {
	run := Run{
		ID:        uuid.NewString(),
		Seed:      seed,
		Width:     report.Width,
		Height:    report.Height,
		CreatedAt: time.Now().UTC(),
		ElapsedUS: report.Elapsed.Microseconds(),
		Draws:     int64(report.Draws),
		Counts:    make(map[string]int),
	}
	for tile, n := range report.Counts {
		run.Counts[world.TileName(tile)] = n
	}
	for i, st := range report.Stages {
		run.Stages = append(run.Stages, StageRow{
			RunID:     run.ID,
			Position:  i,
			Name:      st.Name,
			Changed:   st.Changed,
			ElapsedUS: st.Elapsed.Microseconds(),
		})
	}
	return run
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		elapsed_us INTEGER NOT NULL,
		draws INTEGER NOT NULL,
		counts_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_stages (
		run_id TEXT NOT NULL REFERENCES runs(id),
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		changed INTEGER NOT NULL,
		elapsed_us INTEGER NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE TABLE IF NOT EXISTS ledger_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes a run and its stage rows in one transaction.
func (db *DB) SaveRun(run Run) error {
	countsJSON, err := json.Marshal(run.Counts)
	if err != nil {
		return fmt.Errorf("marshal counts: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, seed, width, height, created_at, elapsed_us, draws, counts_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.Width, run.Height, run.CreatedAt,
		run.ElapsedUS, run.Draws, string(countsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO run_stages
		(run_id, position, name, changed, elapsed_us)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, st := range run.Stages {
		if _, err := stmt.Exec(run.ID, st.Position, st.Name, st.Changed, st.ElapsedUS); err != nil {
			return fmt.Errorf("insert stage %s/%s: %w", run.ID, st.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("run saved", "id", run.ID, "seed", run.Seed, "stages", len(run.Stages))
	return nil
}

// GetRun loads a run and its stages by id.
func (db *DB) GetRun(id string) (Run, error) {
	var row runRow
	err := db.conn.Get(&row, `SELECT id, seed, width, height, created_at, elapsed_us, draws, counts_json
		FROM runs WHERE id = ?`, id)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	run, err := row.decode()
	if err != nil {
		return Run{}, err
	}

	err = db.conn.Select(&run.Stages, `SELECT run_id, position, name, changed, elapsed_us
		FROM run_stages WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return Run{}, fmt.Errorf("get stages %s: %w", id, err)
	}
	return run, nil
}

// RecentRuns returns the most recent runs, newest first. Stage rows are not
// loaded.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var rows []runRow
	err := db.conn.Select(&rows, `SELECT id, seed, width, height, created_at, elapsed_us, draws, counts_json
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}

	runs := make([]Run, 0, len(rows))
	for _, row := range rows {
		run, err := row.decode()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// RunsForSeed returns every run generated from seed, oldest first.
func (db *DB) RunsForSeed(seed int64) ([]Run, error) {
	var rows []runRow
	err := db.conn.Select(&rows, `SELECT id, seed, width, height, created_at, elapsed_us, draws, counts_json
		FROM runs WHERE seed = ? ORDER BY created_at, rowid`, seed)
	if err != nil {
		return nil, fmt.Errorf("runs for seed %d: %w", seed, err)
	}
	runs := make([]Run, 0, len(rows))
	for _, row := range rows {
		run, err := row.decode()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r runRow) decode() (Run, error) {
	run := r.Run
	if err := json.Unmarshal([]byte(r.CountsJSON), &run.Counts); err != nil {
		return Run{}, fmt.Errorf("decode counts for run %s: %w", r.ID, err)
	}
	return run, nil
}

// SaveMeta stores a key-value pair in ledger metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO ledger_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM ledger_meta WHERE key = ?", key)
	return value, err
}
