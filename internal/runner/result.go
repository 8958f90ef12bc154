package runner

import (
	"time"

	"github.com/abordage/schemas/internal/check"
	"github.com/abordage/schemas/internal/errors"
)

// SchemaResult is everything learned about one schema.
type SchemaResult struct {
	Path string
	// Name is the schema's logical identity, its parent directory name.
	Name string

	Compiled     bool
	CompileError string

	// ExamplesError is set when the fixture directory could not be listed
	// or classified.
	ExamplesError string

	// Fixtures holds positive outcomes first, then negative ones, each in
	// discovery order. Empty when the schema did not compile.
	Fixtures []check.Outcome
}

// Passed reports whether the schema compiled and every fixture passed.
func (r SchemaResult) Passed() bool {
	return r.Summary().Failures() == 0
}

// Summary counts this schema's outcomes.
func (r SchemaResult) Summary() Summary {
	s := Summary{Schemas: 1}
	if !r.Compiled {
		s.CompileFailures = 1
	}
	if r.ExamplesError != "" {
		s.ExampleFailures = 1
	}
	for _, o := range r.Fixtures {
		s.Fixtures++
		if o.Passed() {
			s.FixturesPassed++
		} else {
			s.FixturesFailed++
		}
	}
	return s
}

// Summary aggregates outcome counts over a run.
type Summary struct {
	Schemas         int `json:"schemas"`
	CompileFailures int `json:"compileFailures"`
	ExampleFailures int `json:"exampleFailures"`
	Fixtures        int `json:"fixtures"`
	FixturesPassed  int `json:"fixturesPassed"`
	FixturesFailed  int `json:"fixturesFailed"`
}

// Merge adds o's counts to s.
func (s *Summary) Merge(o Summary) {
	s.Schemas += o.Schemas
	s.CompileFailures += o.CompileFailures
	s.ExampleFailures += o.ExampleFailures
	s.Fixtures += o.Fixtures
	s.FixturesPassed += o.FixturesPassed
	s.FixturesFailed += o.FixturesFailed
}

// Failures is the number of failing schemas and fixtures.
func (s Summary) Failures() int {
	return s.CompileFailures + s.ExampleFailures + s.FixturesFailed
}

// Failed reports whether any failure was seen.
func (s Summary) Failed() bool {
	return s.Failures() > 0
}

// Result is the outcome of one run.
type Result struct {
	SchemaRoot string
	Schemas    []SchemaResult
	Summary    Summary
	Started    time.Time
	Duration   time.Duration
}

// Failed reports whether the run found any failure. A run without schemas
// passes.
func (r *Result) Failed() bool {
	return r.Summary.Failed()
}

// Err returns nil for a passing run and a ChecksFailed error otherwise.
func (r *Result) Err() error {
	if !r.Failed() {
		return nil
	}
	return errors.ChecksFailed(r.Summary.Failures())
}

// FailedSchemas returns the results that did not pass, in run order.
func (r *Result) FailedSchemas() []SchemaResult {
	var out []SchemaResult
	for _, s := range r.Schemas {
		if !s.Passed() {
			out = append(out, s)
		}
	}
	return out
}
