// Package history records one entry per harness run in a JSON Lines file so
// regressions can be traced back to the run that introduced them.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abordage/schemas/internal/runner"
)

// Status classifies a run.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	// StatusError marks a run that aborted before producing results.
	StatusError Status = "error"
)

// Entry is a single history record.
type Entry struct {
	Timestamp       time.Time `json:"timestamp"`
	Status          Status    `json:"status"`
	SchemaRoot      string    `json:"schemaRoot"`
	Schemas         int       `json:"schemas"`
	CompileFailures int       `json:"compileFailures"`
	Fixtures        int       `json:"fixtures"`
	FixturesFailed  int       `json:"fixturesFailed"`
	DurationMS      int64     `json:"durationMs"`
	Failing         []string  `json:"failing,omitempty"`
	Details         string    `json:"details,omitempty"`
}

// EntryFor summarizes a run result.
func EntryFor(res *runner.Result) Entry {
	e := Entry{
		Timestamp:       res.Started,
		Status:          StatusPassed,
		SchemaRoot:      res.SchemaRoot,
		Schemas:         res.Summary.Schemas,
		CompileFailures: res.Summary.CompileFailures,
		Fixtures:        res.Summary.Fixtures,
		FixturesFailed:  res.Summary.FixturesFailed,
		DurationMS:      res.Duration.Milliseconds(),
	}
	if res.Failed() {
		e.Status = StatusFailed
	}
	for _, s := range res.FailedSchemas() {
		e.Failing = append(e.Failing, s.Path)
	}
	return e
}

// Log appends and reads entries in a single JSONL file.
type Log struct {
	path string
}

// NewLog creates a history log stored at path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the history file location.
func (l *Log) Path() string {
	return l.path
}

// Append writes an entry to the end of the log.
func (l *Log) Append(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	return nil
}

// Record appends the summary of a finished run.
func (l *Log) Record(res *runner.Result) error {
	return l.Append(EntryFor(res))
}

// RecordError appends an entry for a run that aborted with err.
func (l *Log) RecordError(schemaRoot string, err error) error {
	return l.Append(Entry{
		Timestamp:  time.Now(),
		Status:     StatusError,
		SchemaRoot: schemaRoot,
		Details:    err.Error(),
	})
}

// Entries reads all entries in chronological order. A missing file yields
// no entries.
func (l *Log) Entries() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue // Skip malformed lines
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("error reading history: %w", err)
	}

	return entries, nil
}

// Last returns the n most recent entries, oldest first. n <= 0 returns all.
func (l *Log) Last(n int) ([]Entry, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Clear deletes the history file.
func (l *Log) Clear() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
