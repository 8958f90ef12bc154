// Package testutil provides test utilities for corpus-level tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WidgetSchema is the schema used throughout the tests.
const WidgetSchema = `{
  "type": "object",
  "required": ["id"],
  "properties": {"id": {"type": "string"}},
  "additionalProperties": false
}`

// Corpus is a temporary schema corpus: a schemas/ and an examples/ root
// side by side.
type Corpus struct {
	T           *testing.T
	Root        string
	SchemaDir   string
	ExamplesDir string
}

// NewCorpus creates an empty corpus. The roots themselves are not created
// until something is added.
func NewCorpus(t *testing.T) *Corpus {
	t.Helper()

	root := t.TempDir()
	return &Corpus{
		T:           t,
		Root:        root,
		SchemaDir:   filepath.Join(root, "schemas"),
		ExamplesDir: filepath.Join(root, "examples"),
	}
}

// AddSchema writes schemas/<name>/<file> and returns its path.
func (c *Corpus) AddSchema(name, file, content string) string {
	c.T.Helper()
	return c.write(filepath.Join(c.SchemaDir, name, file), content)
}

// AddFixture writes examples/<name>/<file> and returns its path.
func (c *Corpus) AddFixture(name, file, content string) string {
	c.T.Helper()
	return c.write(filepath.Join(c.ExamplesDir, name, file), content)
}

// WriteConfig writes schemacheck.toml at the corpus root and returns its path.
func (c *Corpus) WriteConfig(content string) string {
	c.T.Helper()
	return c.write(filepath.Join(c.Root, "schemacheck.toml"), content)
}

// Widget adds the widget schema with one positive and one negative fixture.
func (c *Corpus) Widget() *Corpus {
	c.T.Helper()

	c.AddSchema("widget", "widget.schema.json", WidgetSchema)
	c.AddFixture("widget", "ok.json", `{"id": "abc"}`)
	c.AddFixture("widget", "invalid-missing-id.json", `{}`)
	return c
}

func (c *Corpus) write(path, content string) string {
	c.T.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		c.T.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		c.T.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
