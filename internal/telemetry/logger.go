package telemetry

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrInvalidRecord indicates a persisted line that does not decode as a
// RunRecord.
var ErrInvalidRecord = errors.New("invalid run record")

// Sink receives completed run records.
//
// Implementations must treat each Write as append-only: one record per
// call, no in-place rewrite of earlier records.
type Sink interface {
	Write(record *RunRecord) error
}

// RunLogger persists run records as line-delimited JSON under a
// directory. It implements Sink.
//
// Appends are serialized with a mutex so concurrent runs can share one
// logger.
type RunLogger struct {
	path string
	mu   sync.Mutex
}

// NewRunLogger creates the log directory if needed and returns a logger
// writing to <dir>/runs.jsonl.
func NewRunLogger(dir string) (*RunLogger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}
	return &RunLogger{path: filepath.Join(dir, "runs.jsonl")}, nil
}

// Path returns the path of the underlying JSONL file.
func (l *RunLogger) Path() string {
	return l.path
}

// Write appends one record as a single JSON line.
func (l *RunLogger) Write(record *RunRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing run record: %w", err)
	}
	return nil
}

// Load reads all persisted run records. A missing log file yields an
// empty slice, not an error. Blank lines are skipped.
func (l *RunLogger) Load() ([]*RunRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	var records []*RunRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record RunRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, line, err)
		}
		records = append(records, &record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading run log: %w", err)
	}
	return records, nil
}
