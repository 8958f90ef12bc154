// Package runner drives the check pipeline over a schema corpus: find the
// schemas, compile each one, find and check its fixtures, and total up the
// outcomes.
package runner

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abordage/schemas/internal/check"
	"github.com/abordage/schemas/internal/discovery"
	"github.com/abordage/schemas/internal/engine"
	"github.com/abordage/schemas/internal/errors"
	"github.com/abordage/schemas/internal/logging"
)

// Compiler turns a schema document into a validator.
type Compiler interface {
	Compile(location string, data []byte) (*engine.Validator, error)
}

// ExampleFinder lists the fixtures of a schema.
type ExampleFinder interface {
	FindExamples(schemaPath string) (discovery.Examples, error)
}

// Runner checks every schema under a root. It keeps no state between runs.
type Runner struct {
	compiler Compiler
	loader   check.Loader
	finder   ExampleFinder
	suffixes []string
	jobs     int
	observer func(SchemaResult)
	mu       sync.Mutex
}

// Option configures a Runner.
type Option func(*Runner)

// WithJobs sets how many schemas are checked at once. Values below 1 mean 1.
func WithJobs(n int) Option {
	return func(r *Runner) {
		r.jobs = n
	}
}

// WithObserver registers a callback invoked once per finished schema. Calls
// are serialized; with more than one job they arrive in completion order.
func WithObserver(fn func(SchemaResult)) Option {
	return func(r *Runner) {
		r.observer = fn
	}
}

// WithSuffixes sets the file name suffixes that mark schema documents.
func WithSuffixes(suffixes ...string) Option {
	return func(r *Runner) {
		r.suffixes = suffixes
	}
}

// New returns a Runner.
func New(c Compiler, l check.Loader, f ExampleFinder, opts ...Option) *Runner {
	r := &Runner{
		compiler: c,
		loader:   l,
		finder:   f,
		suffixes: []string{".json"},
		jobs:     1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.jobs < 1 {
		r.jobs = 1
	}
	return r
}

// Run checks every schema under schemaRoot whose path or name matches one of
// filter (all schemas when filter is empty). Failures of individual schemas
// and fixtures are recorded in the Result; an error is returned only when the
// root itself cannot be scanned or ctx is cancelled.
func (r *Runner) Run(ctx context.Context, schemaRoot string, filter []string) (*Result, error) {
	started := time.Now()

	paths, err := discovery.FindSchemas(schemaRoot, r.suffixes)
	if err != nil {
		return nil, errors.RootError("scanning schema root", err)
	}
	paths, err = discovery.Filter(paths, filter)
	if err != nil {
		return nil, errors.ValidationError(err.Error())
	}
	logging.Debug("schemas discovered", "root", schemaRoot, "count", len(paths), "jobs", r.jobs)

	// one slot per schema keeps report order independent of scheduling
	results := make([]SchemaResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.runSchema(p)
			r.notify(results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		SchemaRoot: schemaRoot,
		Schemas:    results,
		Started:    started,
		Duration:   time.Since(started),
	}
	for _, sr := range results {
		res.Summary.Merge(sr.Summary())
	}

	logging.Debug("run finished", "schemas", res.Summary.Schemas,
		"failures", res.Summary.Failures(), "duration", res.Duration)
	return res, nil
}

func (r *Runner) runSchema(path string) SchemaResult {
	log := logging.With("schema", path)
	res := SchemaResult{Path: path, Name: discovery.SchemaName(path)}

	log.Debug("compiling")
	data, err := os.ReadFile(path)
	if err != nil {
		res.CompileError = err.Error()
		log.Debug("schema unreadable", "error", err)
		return res
	}

	v, err := r.compiler.Compile(path, data)
	if err != nil {
		res.CompileError = compileMessage(err)
		log.Debug("compile failed, skipping fixtures", "error", err)
		return res
	}
	res.Compiled = true

	examples, err := r.finder.FindExamples(path)
	if err != nil {
		res.ExamplesError = err.Error()
		log.Debug("fixture lookup failed", "error", err)
		return res
	}

	for _, f := range examples.Fixtures() {
		out := check.CheckFile(v, r.loader, f)
		res.Fixtures = append(res.Fixtures, out)
		log.Debug("fixture checked", "fixture", f.Path, "polarity", f.Polarity.String(), "outcome", out.Kind.String())
	}
	return res
}

func (r *Runner) notify(res SchemaResult) {
	if r.observer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer(res)
}

// compileMessage drops the location and category prefix, which the report
// already shows.
func compileMessage(err error) string {
	var he *errors.HarnessError
	if errors.As(err, &he) && he.Cause != nil {
		return strings.TrimPrefix(he.Cause.Error(), errors.ErrSchemaCompile.Error()+": ")
	}
	return err.Error()
}
