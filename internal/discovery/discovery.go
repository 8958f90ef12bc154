package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/abordage/schemas/internal/logging"
)

// Polarity is the expected outcome of checking a fixture.
type Polarity int

const (
	// Positive fixtures must satisfy their schema.
	Positive Polarity = iota
	// Negative fixtures must fail their schema.
	Negative
)

func (p Polarity) String() string {
	if p == Negative {
		return "negative"
	}
	return "positive"
}

// Fixture is one example data file and its expected polarity.
type Fixture struct {
	Path     string
	Polarity Polarity
}

// Examples holds the fixtures found for one schema, in discovery order.
type Examples struct {
	Positive []string
	Negative []string
}

// Fixtures returns positive fixtures followed by negative fixtures.
func (e Examples) Fixtures() []Fixture {
	out := make([]Fixture, 0, len(e.Positive)+len(e.Negative))
	for _, p := range e.Positive {
		out = append(out, Fixture{Path: p, Polarity: Positive})
	}
	for _, p := range e.Negative {
		out = append(out, Fixture{Path: p, Polarity: Negative})
	}
	return out
}

// Len returns the total number of fixtures.
func (e Examples) Len() int {
	return len(e.Positive) + len(e.Negative)
}

// FindSchemas walks root depth-first and returns every file whose name ends
// with one of suffixes. Entries are visited in lexical order, so the result
// is stable. A missing root yields no schemas and no error.
func FindSchemas(root string, suffixes []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("schema root does not exist", "root", root)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat schema root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("schema root %s is not a directory", root)
	}

	var schemas []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if hasSuffix(d.Name(), suffixes) {
			schemas = append(schemas, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan schema root: %w", err)
	}

	return schemas, nil
}

func hasSuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// SchemaName returns the logical identity of a schema: the name of the
// directory that contains it.
func SchemaName(schemaPath string) string {
	return filepath.Base(filepath.Dir(schemaPath))
}

// Filter keeps the schema paths matching any of patterns. A pattern is
// matched against the slash-separated path and against the logical name.
// No patterns keeps everything.
func Filter(paths []string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return paths, nil
	}
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	var kept []string
	for _, sp := range paths {
		slashed := filepath.ToSlash(sp)
		for _, p := range patterns {
			byPath, _ := path.Match(p, slashed)
			byName, _ := path.Match(p, SchemaName(sp))
			if byPath || byName || p == slashed {
				kept = append(kept, sp)
				break
			}
		}
	}
	return kept, nil
}

// Locator finds the fixtures belonging to a schema.
type Locator struct {
	ExamplesRoot string
	Classifier   Classifier
}

// FixtureDir returns the examples directory for a schema. The logical name
// is joined with securejoin so it can never resolve outside ExamplesRoot.
func (l *Locator) FixtureDir(schemaPath string) (string, error) {
	dir, err := securejoin.SecureJoin(l.ExamplesRoot, SchemaName(schemaPath))
	if err != nil {
		return "", fmt.Errorf("failed to resolve examples directory: %w", err)
	}
	return dir, nil
}

// FindExamples lists and classifies the fixture files for schemaPath.
// A missing fixture directory is not an error: the schema simply has no examples.
func (l *Locator) FindExamples(schemaPath string) (Examples, error) {
	dir, err := l.FixtureDir(schemaPath)
	if err != nil {
		return Examples{}, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Examples{}, nil
		}
		return Examples{}, fmt.Errorf("failed to read examples directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	examples, err := l.Classifier.Classify(dir, names)
	if err != nil {
		return Examples{}, err
	}

	logging.Debug("fixtures classified", "schema", schemaPath, "dir", dir,
		"positive", len(examples.Positive), "negative", len(examples.Negative))
	return examples, nil
}
