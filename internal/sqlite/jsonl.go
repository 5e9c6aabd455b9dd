package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/puzzler/pkg/types"
)

// ExportJSONL writes every run, oldest first, to path as one JSON object
// per line. The file is replaced atomically. It returns the number of runs
// written.
func (s *Store) ExportJSONL(path string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return 0, ErrStoreClosed
	}

	runs, err := queryRuns(s.db, "SELECT "+runColumns+" FROM runs ORDER BY rowid ASC")
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(runs))
	for _, r := range runs {
		data, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("marshaling run %s: %w", r.RunID, err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ImportJSONL loads runs from a file written by ExportJSONL. Malformed
// lines and invalid runs are skipped, and runs whose ID is already present
// are left untouched. Loading is transactional. It returns the number of
// runs added.
func (s *Store) ImportJSONL(path string) (int, error) {
	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return 0, ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, rec := range records {
		var r types.Run
		if err := json.Unmarshal(rec, &r); err != nil {
			continue
		}
		if r.RunID == "" || r.Validate() != nil {
			continue
		}
		ok, err := insertRun(tx, "INSERT OR IGNORE", &r)
		if err != nil {
			return 0, fmt.Errorf("importing run %s: %w", r.RunID, err)
		}
		if ok {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return added, nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
