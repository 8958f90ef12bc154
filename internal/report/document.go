package report

import (
	"encoding/json"
	"io"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/abordage/schemas/internal/engine"
	"github.com/abordage/schemas/internal/runner"
)

// Document is the machine-readable form of a run.
type Document struct {
	Passed     bool           `json:"passed"`
	SchemaRoot string         `json:"schemaRoot"`
	Started    time.Time      `json:"started"`
	Duration   string         `json:"duration"`
	Summary    runner.Summary `json:"summary"`
	Schemas    []SchemaDoc    `json:"schemas"`
}

// SchemaDoc describes one schema.
type SchemaDoc struct {
	Path          string       `json:"path"`
	Name          string       `json:"name"`
	Compiled      bool         `json:"compiled"`
	CompileError  string       `json:"compileError,omitempty"`
	ExamplesError string       `json:"examplesError,omitempty"`
	Fixtures      []FixtureDoc `json:"fixtures"`
}

// FixtureDoc describes one fixture outcome.
type FixtureDoc struct {
	Path       string             `json:"path"`
	Polarity   string             `json:"polarity"`
	Outcome    string             `json:"outcome"`
	Passed     bool               `json:"passed"`
	Message    string             `json:"message,omitempty"`
	Violations []engine.Violation `json:"violations,omitempty"`
}

// NewDocument converts a run result.
func NewDocument(res *runner.Result) Document {
	doc := Document{
		Passed:     !res.Failed(),
		SchemaRoot: res.SchemaRoot,
		Started:    res.Started,
		Duration:   res.Duration.String(),
		Summary:    res.Summary,
		Schemas:    make([]SchemaDoc, 0, len(res.Schemas)),
	}
	for _, sr := range res.Schemas {
		sd := SchemaDoc{
			Path:          sr.Path,
			Name:          sr.Name,
			Compiled:      sr.Compiled,
			CompileError:  sr.CompileError,
			ExamplesError: sr.ExamplesError,
			Fixtures:      make([]FixtureDoc, 0, len(sr.Fixtures)),
		}
		for _, o := range sr.Fixtures {
			sd.Fixtures = append(sd.Fixtures, FixtureDoc{
				Path:       o.Fixture.Path,
				Polarity:   o.Fixture.Polarity.String(),
				Outcome:    o.Kind.String(),
				Passed:     o.Passed(),
				Message:    o.Message,
				Violations: o.Violations,
			})
		}
		doc.Schemas = append(doc.Schemas, sd)
	}
	return doc
}

// JSON writes the result as indented JSON.
func JSON(w io.Writer, res *runner.Result) error {
	data, err := json.MarshalIndent(NewDocument(res), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// YAML writes the result as YAML.
func YAML(w io.Writer, res *runner.Result) error {
	data, err := yaml.Marshal(NewDocument(res))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
