package app

import (
	"context"
	"fmt"

	"github.com/abordage/schemas/internal/config"
	"github.com/abordage/schemas/internal/discovery"
	"github.com/abordage/schemas/internal/engine"
	"github.com/abordage/schemas/internal/errors"
	"github.com/abordage/schemas/internal/history"
	"github.com/abordage/schemas/internal/loader"
	"github.com/abordage/schemas/internal/logging"
	"github.com/abordage/schemas/internal/runner"
	"github.com/abordage/schemas/internal/strict"
)

// App holds the services a command needs. It is built once per invocation
// and passed down explicitly.
type App struct {
	// Config is the effective configuration
	Config *config.Config

	// Loader reads fixture files
	Loader *loader.Loader

	// Engine compiles schemas
	Engine *engine.Engine

	// Locator finds the fixtures of a schema
	Locator *discovery.Locator

	// History records runs; nil when history_file is not set
	History *history.Log
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets the configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithLoader sets a custom loader
func WithLoader(l *loader.Loader) Option {
	return func(a *App) {
		a.Loader = l
	}
}

// WithEngine sets a custom engine
func WithEngine(e *engine.Engine) Option {
	return func(a *App) {
		a.Engine = e
	}
}

// WithLocator sets a custom fixture locator
func WithLocator(l *discovery.Locator) Option {
	return func(a *App) {
		a.Locator = l
	}
}

// WithHistory sets a custom history log
func WithHistory(h *history.Log) Option {
	return func(a *App) {
		a.History = h
	}
}

// New creates an App with the given options. Services not provided are
// built from the configuration, which defaults to config.Default().
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.Config == nil {
		a.Config = config.Default()
	}
	if err := a.Config.Validate(); err != nil {
		return nil, errors.ConfigError("invalid configuration", err)
	}

	if a.Loader == nil {
		a.Loader = loader.New()
	}
	for _, ext := range a.Config.FixtureExtensions {
		if !a.Loader.Supports("fixture" + ext) {
			return nil, errors.ConfigError(fmt.Sprintf("no decoder for fixture extension %q", ext), nil)
		}
	}

	if a.Engine == nil {
		e, err := NewEngine(a.Config)
		if err != nil {
			return nil, err
		}
		a.Engine = e
	}

	if a.Locator == nil {
		a.Locator = &discovery.Locator{
			ExamplesRoot: a.Config.ExamplesDir,
			Classifier:   NewClassifier(a.Config),
		}
	}

	if a.History == nil && a.Config.HistoryFile != "" {
		a.History = history.NewLog(a.Config.HistoryFile)
	}

	return a, nil
}

// NewEngine builds the schema engine described by cfg.
func NewEngine(cfg *config.Config) (*engine.Engine, error) {
	draft, err := strict.ParseDraft(cfg.Draft)
	if err != nil {
		return nil, errors.ConfigError("invalid draft", err)
	}
	opts := []engine.Option{
		engine.WithDraft(draft),
		engine.WithStrict(strict.Options{
			AllowUnionTypes: cfg.AllowUnionTypes,
			AllowedKeywords: cfg.AllowedKeywords,
			ExtraFormats:    cfg.ExtraFormats,
		}),
	}
	if !cfg.Strict {
		logging.Debug("strict mode disabled by configuration")
		opts = append(opts, engine.WithoutStrict())
	}
	return engine.New(opts...), nil
}

// NewClassifier builds the fixture classifier described by cfg.
func NewClassifier(cfg *config.Config) discovery.Classifier {
	markers := &discovery.MarkerClassifier{
		Markers:    cfg.NegativeMarkers,
		Extensions: cfg.FixtureExtensions,
	}
	if cfg.Classifier == config.ClassifierManifest {
		return &discovery.ManifestClassifier{Fallback: markers}
	}
	return markers
}

// Runner returns a runner wired to the App's services.
func (a *App) Runner(opts ...runner.Option) *runner.Runner {
	base := []runner.Option{
		runner.WithJobs(a.Config.Jobs),
		runner.WithSuffixes(a.Config.SchemaSuffixes...),
		runner.WithObserver(progress),
	}
	return runner.New(a.Engine, a.Loader, a.Locator, append(base, opts...)...)
}

// Check runs the full pipeline over the configured schema root and records
// the run in the history when one is configured. A history write failure is
// logged, not returned.
func (a *App) Check(ctx context.Context, filter []string, opts ...runner.Option) (*runner.Result, error) {
	logging.Info("check started", "schemas", a.Config.SchemaDir, "examples", a.Config.ExamplesDir, "jobs", a.Config.Jobs)

	res, err := a.Runner(opts...).Run(ctx, a.Config.SchemaDir, filter)
	if err == nil {
		logging.Info("check finished", "schemas", res.Summary.Schemas, "fixtures", res.Summary.Fixtures,
			"failures", res.Summary.Failures(), "duration", res.Duration)
	}

	if a.History != nil {
		var herr error
		if err != nil {
			herr = a.History.RecordError(a.Config.SchemaDir, err)
		} else {
			herr = a.History.Record(res)
		}
		if herr != nil {
			logging.Warn("failed to record run history", "file", a.History.Path(), "error", herr)
		}
	}

	return res, err
}

// progress logs each schema as it finishes.
func progress(sr runner.SchemaResult) {
	s := sr.Summary()
	logging.Info("schema checked", "schema", sr.Path, "passed", sr.Passed(),
		"fixtures", s.Fixtures, "failed", s.FixturesFailed+s.CompileFailures+s.ExampleFailures)
}
