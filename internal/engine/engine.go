// Package engine compiles schema documents under strict rules and applies
// them to data.
package engine

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/abordage/schemas/internal/errors"
	"github.com/abordage/schemas/internal/loader"
	"github.com/abordage/schemas/internal/logging"
	"github.com/abordage/schemas/internal/strict"
)

// Engine compiles schemas. It holds configuration only, so a single Engine
// is shared by every compile in a run, including concurrent ones.
type Engine struct {
	draft        strict.Draft
	strict       bool
	strictOpts   strict.Options
}

// Option configures an Engine.
type Option func(*Engine)

// WithDraft sets the dialect used for documents without a $schema.
func WithDraft(d strict.Draft) Option {
	return func(e *Engine) {
		e.draft = d
	}
}

// WithStrict sets the strict-mode options. Draft and KnownFormat are filled
// in by the engine when left empty.
func WithStrict(opts strict.Options) Option {
	return func(e *Engine) {
		e.strict = true
		e.strictOpts = opts
	}
}

// WithoutStrict disables the strict-mode pass. Only meta-schema validation
// remains.
func WithoutStrict() Option {
	return func(e *Engine) {
		e.strict = false
	}
}

// New returns an Engine defaulting to draft-07 and strict mode. Formats are
// always asserted.
func New(opts ...Option) *Engine {
	e := &Engine{
		draft:  strict.Draft7,
		strict: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Draft returns the default dialect.
func (e *Engine) Draft() strict.Draft {
	return e.draft
}

// StrictError lists every strict-mode violation found in one schema.
type StrictError struct {
	Violations []strict.Violation
}

func (e *StrictError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Compile decodes, strict-checks and compiles one schema document. location
// identifies the document in errors and is used to resolve relative $refs.
// Every failure is returned as a SchemaCompileError.
func (e *Engine) Compile(location string, data []byte) (*Validator, error) {
	doc, err := loader.DecodeJSON(data)
	if err != nil {
		return nil, errors.SchemaCompileError(location, err)
	}

	if e.strict {
		opts := e.strictOpts
		if opts.Draft == 0 {
			opts.Draft = e.draft
		}
		if opts.KnownFormat == nil {
			opts.KnownFormat = KnownFormat
		}
		if vs := strict.Check(doc, opts); len(vs) > 0 {
			logging.Debug("strict mode rejected schema", "schema", location, "violations", len(vs))
			return nil, errors.SchemaCompileError(location, &StrictError{Violations: vs})
		}
	}

	url := resourceURL(location)

	// fresh compiler per schema: nothing cached between compiles
	c := jsonschema.NewCompiler()
	c.Draft = engineDraft(e.draft)
	c.AssertFormat = true
	registerFormats(c)

	if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, errors.SchemaCompileError(location, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, errors.SchemaCompileError(location, err)
	}

	logging.Debug("schema compiled", "schema", location, "draft", strict.DraftOf(doc, e.draft).String())
	return &Validator{schema: sch}, nil
}

func resourceURL(location string) string {
	abs, err := filepath.Abs(location)
	if err != nil {
		abs = location
	}
	return "file://" + filepath.ToSlash(abs)
}

func engineDraft(d strict.Draft) *jsonschema.Draft {
	switch d {
	case strict.Draft4:
		return jsonschema.Draft4
	case strict.Draft6:
		return jsonschema.Draft6
	case strict.Draft2019:
		return jsonschema.Draft2019
	case strict.Draft2020:
		return jsonschema.Draft2020
	}
	return jsonschema.Draft7
}

// Violation is one reason a value failed validation.
type Violation struct {
	// InstanceLocation is a JSON pointer into the value ("" is the root).
	InstanceLocation string `json:"instanceLocation"`
	// KeywordLocation is a JSON pointer into the schema.
	KeywordLocation string `json:"keywordLocation"`
	Message         string `json:"message"`
}

func (v Violation) String() string {
	loc := v.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s (%s)", loc, v.Message, v.KeywordLocation)
}

// Validator is a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// Validate checks value and returns every violation, or nil when value is
// valid. value must be a decoded JSON tree as produced by the loader.
// Violations are ordered by instance location, then keyword location.
func (v *Validator) Validate(value any) []Violation {
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Violation{{Message: err.Error()}}
	}
	out := leaves(ve, nil)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].InstanceLocation != out[j].InstanceLocation {
			return out[i].InstanceLocation < out[j].InstanceLocation
		}
		if out[i].KeywordLocation != out[j].KeywordLocation {
			return out[i].KeywordLocation < out[j].KeywordLocation
		}
		return out[i].Message < out[j].Message
	})
	return out
}

// leaves flattens the error tree; inner nodes only summarize their causes.
func leaves(ve *jsonschema.ValidationError, out []Violation) []Violation {
	if len(ve.Causes) == 0 {
		return append(out, Violation{
			InstanceLocation: ve.InstanceLocation,
			KeywordLocation:  ve.KeywordLocation,
			Message:          ve.Message,
		})
	}
	for _, c := range ve.Causes {
		out = leaves(c, out)
	}
	return out
}
