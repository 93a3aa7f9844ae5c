// Package storage provides SQLite-based persistence for run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/evosim/internal/sim"
)

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("storage: run not found")

// CustomPreset labels runs whose setup did not come from a registered preset.
const CustomPreset = "custom"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID              int64
	Preset          string
	Seed            int64
	Rows            int
	CyclesRequested int
	CyclesRun       int
	Occupied        int
	NutrientsLeft   int
	Mutations       int
	InitialGrowth   float64
	FinalGrowth     float64
	Reason          sim.Reason
	CreatedAt       time.Time
}

// NewRunRecord summarizes a finished run for storage.
func NewRunRecord(preset string, seed int64, cfg sim.Config, res sim.RunResult) RunRecord {
	if preset == "" {
		preset = CustomPreset
	}
	return RunRecord{
		Preset:          preset,
		Seed:            seed,
		Rows:            cfg.Rows,
		CyclesRequested: cfg.Cycles,
		CyclesRun:       res.CyclesRun,
		Occupied:        len(res.Occupied),
		NutrientsLeft:   len(res.Nutrients),
		Mutations:       res.MutationCount,
		InitialGrowth:   res.InitialGrowth,
		FinalGrowth:     res.FinalGrowth,
		Reason:          res.Reason,
	}
}

// PresetStats aggregates the runs of one preset.
type PresetStats struct {
	Preset       string
	Runs         int
	BestOccupied int
	AvgOccupied  float64
	AvgCycles    float64
	TotalMutated int64
	LastRun      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			preset TEXT NOT NULL,
			seed INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			cycles_requested INTEGER NOT NULL,
			cycles_run INTEGER NOT NULL,
			occupied INTEGER NOT NULL,
			nutrients_left INTEGER NOT NULL,
			mutations INTEGER NOT NULL,
			initial_growth REAL NOT NULL,
			final_growth REAL NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_preset ON runs(preset);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(preset, occupied DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (preset, seed, rows, cycles_requested, cycles_run, occupied,
			nutrients_left, mutations, initial_growth, final_growth, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Preset, r.Seed, r.Rows, r.CyclesRequested, r.CyclesRun, r.Occupied,
		r.NutrientsLeft, r.Mutations, r.InitialGrowth, r.FinalGrowth, r.Reason.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, preset, seed, rows, cycles_requested, cycles_run, occupied,
	nutrients_left, mutations, initial_growth, final_growth, reason, created_at`

// RecentRuns returns the newest runs across all presets.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// TopRuns returns the runs of a preset with the largest final occupied area.
// Ties go to the run that needed fewer cycles.
func (s *Store) TopRuns(preset string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE preset = ?
		 ORDER BY occupied DESC, cycles_run ASC, id ASC
		 LIMIT ?`,
		preset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunByID returns a single run.
func (s *Store) RunByID(id int64) (*RunRecord, error) {
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return &runs[0], nil
}

// ClearRuns deletes the runs of a preset, or every run when preset is empty.
func (s *Store) ClearRuns(preset string) error {
	var err error
	if preset == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE preset = ?", preset)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// PresetStats retrieves aggregated statistics for a specific preset.
func (s *Store) PresetStats(preset string) (*PresetStats, error) {
	stats := &PresetStats{Preset: preset}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(occupied), 0), COALESCE(AVG(occupied), 0),
			COALESCE(AVG(cycles_run), 0), COALESCE(SUM(mutations), 0), MAX(created_at)
		 FROM runs WHERE preset = ?`,
		preset,
	).Scan(&stats.Runs, &stats.BestOccupied, &stats.AvgOccupied, &stats.AvgCycles, &stats.TotalMutated, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get preset stats: %w", err)
	}
	stats.LastRun = parseTimestamp(lastRun)

	return stats, nil
}

// AllPresetStats retrieves statistics for every preset that has runs.
func (s *Store) AllPresetStats() (map[string]*PresetStats, error) {
	rows, err := s.db.Query(
		`SELECT preset, COUNT(*), MAX(occupied), AVG(occupied), AVG(cycles_run),
			SUM(mutations), MAX(created_at)
		 FROM runs
		 GROUP BY preset`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get preset stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PresetStats)
	for rows.Next() {
		var ps PresetStats
		var lastRun any
		if err := rows.Scan(&ps.Preset, &ps.Runs, &ps.BestOccupied, &ps.AvgOccupied, &ps.AvgCycles,
			&ps.TotalMutated, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastRun = parseTimestamp(lastRun)
		stats[ps.Preset] = &ps
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// scanRuns reads and closes a run result set.
func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var reason string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Preset, &r.Seed, &r.Rows, &r.CyclesRequested, &r.CyclesRun,
			&r.Occupied, &r.NutrientsLeft, &r.Mutations, &r.InitialGrowth, &r.FinalGrowth,
			&reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Reason = sim.ParseReason(reason)
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTimestamp handles both time.Time and string datetime values.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
