package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Classifier decides the polarity of the files found in a fixture directory.
// names are the directory's regular entries in lexical order; the returned
// paths are joined with dir.
type Classifier interface {
	Classify(dir string, names []string) (Examples, error)
}

// MarkerClassifier marks a fixture Negative when its name contains one of
// Markers and Positive otherwise. Files whose extension is not in Extensions
// are not examples and are left out of both lists.
type MarkerClassifier struct {
	Markers    []string
	Extensions []string
}

// DefaultMarkerClassifier uses the "invalid"/"negative" naming convention.
func DefaultMarkerClassifier() *MarkerClassifier {
	return &MarkerClassifier{
		Markers:    []string{"invalid", "negative"},
		Extensions: []string{".json", ".yaml", ".yml"},
	}
}

// Classify implements Classifier.
func (c *MarkerClassifier) Classify(dir string, names []string) (Examples, error) {
	var ex Examples
	for _, name := range names {
		p, ok := c.Polarity(name)
		if !ok {
			continue
		}
		full := filepath.Join(dir, name)
		if p == Negative {
			ex.Negative = append(ex.Negative, full)
		} else {
			ex.Positive = append(ex.Positive, full)
		}
	}
	return ex, nil
}

// Polarity classifies a single file name. ok is false when the name is not
// an example file at all.
func (c *MarkerClassifier) Polarity(name string) (Polarity, bool) {
	if !c.recognized(name) {
		return Positive, false
	}
	for _, m := range c.Markers {
		if strings.Contains(name, m) {
			return Negative, true
		}
	}
	return Positive, true
}

func (c *MarkerClassifier) recognized(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range c.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// ManifestFile is the name of the per-directory fixture manifest.
const ManifestFile = "fixtures.toml"

// manifest lists fixtures explicitly:
//
//	positive = ["ok.json", "full.yaml"]
//	negative = ["missing-id.json"]
type manifest struct {
	Positive []string `toml:"positive"`
	Negative []string `toml:"negative"`
}

// ManifestClassifier reads polarity from a fixtures.toml in the fixture
// directory. Directories without a manifest are handed to Fallback.
type ManifestClassifier struct {
	Fallback Classifier
}

// Classify implements Classifier.
func (c *ManifestClassifier) Classify(dir string, names []string) (Examples, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) && c.Fallback != nil {
			return c.Fallback.Classify(dir, names)
		}
		if os.IsNotExist(err) {
			return Examples{}, nil
		}
		return Examples{}, fmt.Errorf("failed to read fixture manifest: %w", err)
	}

	var m manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return Examples{}, fmt.Errorf("failed to parse %s: %w", filepath.Join(dir, ManifestFile), err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Examples{}, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), filepath.Join(dir, ManifestFile))
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	seen := make(map[string]bool)
	resolve := func(list []string) ([]string, error) {
		var out []string
		for _, name := range list {
			if filepath.Base(name) != name {
				return nil, fmt.Errorf("manifest entry %q must be a file name in %s", name, dir)
			}
			if !present[name] {
				return nil, fmt.Errorf("manifest entry %q not found in %s", name, dir)
			}
			if seen[name] {
				return nil, fmt.Errorf("manifest entry %q listed more than once", name)
			}
			seen[name] = true
			out = append(out, filepath.Join(dir, name))
		}
		return out, nil
	}

	var ex Examples
	if ex.Positive, err = resolve(m.Positive); err != nil {
		return Examples{}, err
	}
	if ex.Negative, err = resolve(m.Negative); err != nil {
		return Examples{}, err
	}
	return ex, nil
}
