package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultConfigFile  = "schemacheck.toml"
	DefaultSchemaDir   = "schemas"
	DefaultExamplesDir = "examples"
	DefaultDraft       = "draft7"

	ClassifierMarkers  = "markers"
	ClassifierManifest = "manifest"
)

// Drafts lists the accepted values for the draft setting.
var Drafts = []string{"draft4", "draft6", "draft7", "2019-09", "2020-12"}

// Config is the harness configuration, read from schemacheck.toml.
type Config struct {
	SchemaDir         string   `toml:"schema_dir"`
	ExamplesDir       string   `toml:"examples_dir"`
	Draft             string   `toml:"draft"`
	SchemaSuffixes    []string `toml:"schema_suffixes"`
	FixtureExtensions []string `toml:"fixture_extensions"`
	NegativeMarkers   []string `toml:"negative_markers"`
	Classifier        string   `toml:"classifier"`
	Strict            bool     `toml:"strict"`
	AllowUnionTypes   bool     `toml:"allow_union_types"`
	AllowedKeywords   []string `toml:"allowed_keywords"`
	ExtraFormats      []string `toml:"extra_formats"`
	Jobs              int      `toml:"jobs"`
	HistoryFile       string   `toml:"history_file"`
}

// Default returns the configuration used when no file is present.
// It mirrors the layout of a schema corpus repository: schemas/ and examples/.
func Default() *Config {
	return &Config{
		SchemaDir:         DefaultSchemaDir,
		ExamplesDir:       DefaultExamplesDir,
		Draft:             DefaultDraft,
		SchemaSuffixes:    []string{".schema.json", ".json"},
		FixtureExtensions: []string{".json", ".yaml", ".yml"},
		NegativeMarkers:   []string{"invalid", "negative"},
		Classifier:        ClassifierMarkers,
		Strict:            true,
		Jobs:              1,
	}
}

// Load reads the configuration file at path on top of the defaults.
// A missing file is not an error; Default() is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	// Relative roots are resolved against the config file's directory
	base := filepath.Dir(path)
	cfg.SchemaDir = resolve(base, cfg.SchemaDir)
	cfg.ExamplesDir = resolve(base, cfg.ExamplesDir)
	if cfg.HistoryFile != "" {
		cfg.HistoryFile = resolve(base, cfg.HistoryFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Validate checks that the Config is valid.
func (c *Config) Validate() error {
	if c.SchemaDir == "" {
		return fmt.Errorf("schema_dir is required")
	}
	if c.ExamplesDir == "" {
		return fmt.Errorf("examples_dir is required")
	}

	if !isKnownDraft(c.Draft) {
		return fmt.Errorf("invalid draft: %s (must be one of %s)", c.Draft, strings.Join(Drafts, ", "))
	}

	if len(c.SchemaSuffixes) == 0 {
		return fmt.Errorf("at least one schema suffix is required")
	}
	if len(c.FixtureExtensions) == 0 {
		return fmt.Errorf("at least one fixture extension is required")
	}
	for _, ext := range c.FixtureExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("fixture extension %q must start with a dot", ext)
		}
	}
	for _, m := range c.NegativeMarkers {
		if m == "" {
			return fmt.Errorf("negative markers cannot be empty strings")
		}
	}

	switch c.Classifier {
	case ClassifierMarkers, ClassifierManifest, "":
	default:
		return fmt.Errorf("invalid classifier: %s (must be markers or manifest)", c.Classifier)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative (got %d)", c.Jobs)
	}

	return nil
}

func isKnownDraft(d string) bool {
	for _, known := range Drafts {
		if d == known {
			return true
		}
	}
	return false
}
