// Package sqlite keeps the history of generate runs in a SQLite database
// and exchanges it with JSONL files.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/puzzler/pkg/types"
)

// Store errors.
var (
	ErrStoreClosed = errors.New("history store is closed")
	ErrNotFound    = errors.New("run not found")
)

// Summary aggregates the recorded runs.
type Summary struct {
	Runs          int     `json:"runs"`
	Complete      int     `json:"complete"`
	AverageMS     float64 `json:"average_ms"`
	TotalAttempts int64   `json:"total_attempts"`
}

// Store is the run history backed by history.db in a data directory.
// It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open creates dataDir if needed and opens (or creates) its history.db.
func Open(dataDir, fileName string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(dataDir, fileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// A single connection keeps writes serialized on the one file.
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SchemaVersion returns the applied schema migration version.
func (s *Store) SchemaVersion() (uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return 0, ErrStoreClosed
	}
	version, dirty, err := schemaVersion(s.db)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}

// Close releases the database. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores run. An empty RunID is replaced by a new UUID v7 and a zero
// CreatedAt by the current time; both are written back into run.
func (s *Store) Record(run *types.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrStoreClosed
	}

	if run.RunID == "" {
		run.RunID = generateUUID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	if _, err := insertRun(s.db, "INSERT", run); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Get returns the run with the given ID, or ErrNotFound.
func (s *Store) Get(id string) (*types.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", id)
	run, err := hydrateRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}
	return run, nil
}

// List returns the most recently recorded runs first. A limit of zero or
// less returns every run.
func (s *Store) List(limit int) ([]types.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrStoreClosed
	}

	query := "SELECT " + runColumns + " FROM runs ORDER BY rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return queryRuns(s.db, query, args...)
}

// Summary returns aggregate figures over all recorded runs.
func (s *Store) Summary() (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return Summary{}, ErrStoreClosed
	}

	var sum Summary
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN state = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(elapsed_ms), 0),
		        COALESCE(SUM(attempts), 0)
		   FROM runs`,
		types.RunStateComplete,
	).Scan(&sum.Runs, &sum.Complete, &sum.AverageMS, &sum.TotalAttempts)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing runs: %w", err)
	}
	return sum, nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// insertRun writes run using verb ("INSERT" or "INSERT OR IGNORE") and
// reports whether a row was added.
func insertRun(e execer, verb string, run *types.Run) (bool, error) {
	words, err := json.Marshal(run.Words)
	if err != nil {
		return false, fmt.Errorf("marshaling words: %w", err)
	}
	res, err := e.Exec(
		verb+" INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.RunID,
		int64(run.Seed),
		run.Dictionary,
		string(words),
		run.Attempts,
		run.State,
		run.Board,
		run.ElapsedMS,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateRun converts a single SQLite row into a *types.Run.
func hydrateRun(row rowScanner) (*types.Run, error) {
	var (
		r         types.Run
		seed      int64
		words     string
		createdAt string
	)
	if err := row.Scan(&r.RunID, &seed, &r.Dictionary, &words, &r.Attempts, &r.State, &r.Board, &r.ElapsedMS, &createdAt); err != nil {
		return nil, err
	}
	r.Seed = uint64(seed)
	if err := json.Unmarshal([]byte(words), &r.Words); err != nil {
		return nil, fmt.Errorf("parsing words: %w", err)
	}
	var err error
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &r, nil
}

func queryRuns(db *sql.DB, query string, args ...any) ([]types.Run, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		r, err := hydrateRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// generateUUID generates a new UUID v7 for run IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
