// Package results records finished simulation runs in a SQLite database.
// Only final counters are stored; nothing is written while a run is in progress.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/xid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Run is one finished simulation.
type Run struct {
	ID             string // assigned by Record when empty
	Name           string
	Relief         string
	Rounds         int
	Inspections    []uint64 // unit order
	MonkeyBusiness uint64
	CreatedAt      time.Time // set by Record when zero
}

// Store is a SQLite-backed run store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path. ":memory:" opens a
// private in-memory database.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			relief TEXT NOT NULL,
			rounds INTEGER NOT NULL,
			units INTEGER NOT NULL,
			inspections_json TEXT NOT NULL,
			monkey_business TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a finished run and returns its ID.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = xid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	inspections, err := json.Marshal(run.Inspections)
	if err != nil {
		return "", fmt.Errorf("encoding inspections: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, relief, rounds, units, inspections_json, monkey_business, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.Relief, run.Rounds, len(run.Inspections), string(inspections),
		strconv.FormatUint(run.MonkeyBusiness, 10), run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return run.ID, nil
}

const selectRun = `SELECT id, name, relief, rounds, inspections_json, monkey_business, created_at FROM runs`

// Get returns the run with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

// List returns every stored run, oldest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run         Run
		inspections string
		score       string
		createdAt   string
	)
	if err := sc.Scan(&run.ID, &run.Name, &run.Relief, &run.Rounds, &inspections, &score, &createdAt); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(inspections), &run.Inspections); err != nil {
		return Run{}, fmt.Errorf("decoding inspections of run %s: %w", run.ID, err)
	}
	var err error
	if run.MonkeyBusiness, err = strconv.ParseUint(score, 10, 64); err != nil {
		return Run{}, fmt.Errorf("decoding score of run %s: %w", run.ID, err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Run{}, fmt.Errorf("decoding created_at of run %s: %w", run.ID, err)
	}
	return run, nil
}
