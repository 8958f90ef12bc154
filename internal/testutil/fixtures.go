package testutil

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

//go:embed fixtures
var fixturesFS embed.FS

// Sample corpus sizes, for assertions.
const (
	SampleSchemas  = 2
	SampleFixtures = 7
)

// LoadFixture reads an embedded file by its path under fixtures/.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// CopySampleCorpus writes the embedded sample corpus into a new temporary
// corpus.
func CopySampleCorpus(t *testing.T) *Corpus {
	t.Helper()

	c := NewCorpus(t)
	err := fs.WalkDir(fixturesFS, "fixtures", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("fixtures", filepath.FromSlash(p))
		if err != nil {
			return err
		}
		dst := filepath.Join(c.Root, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0755)
		}
		data, err := fixturesFS.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0644)
	})
	if err != nil {
		t.Fatalf("Failed to copy sample corpus: %v", err)
	}
	return c
}
