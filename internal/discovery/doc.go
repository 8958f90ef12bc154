// Package discovery locates schema documents and their example fixtures.
//
// # Schemas
//
// FindSchemas walks the schema root depth-first in lexical order and keeps
// every file whose name ends with one of the configured suffixes:
//
//	paths, err := discovery.FindSchemas("schemas", []string{".schema.json", ".json"})
//
// A schema's logical name is the name of its parent directory, so
// schemas/widget/widget.schema.json is "widget".
//
// # Fixtures
//
// A Locator maps the logical name into the examples root and classifies the
// files it finds there (non-recursively):
//
//	loc := &discovery.Locator{ExamplesRoot: "examples", Classifier: discovery.DefaultMarkerClassifier()}
//	ex, err := loc.FindExamples("schemas/widget/widget.schema.json")
//	// ex.Positive: examples/widget/ok.json
//	// ex.Negative: examples/widget/invalid-missing-id.json
//
// # Classifiers
//
// Polarity is decided by a Classifier so the naming convention can be
// replaced without touching the pipeline:
//   - MarkerClassifier: "invalid"/"negative" in the file name means Negative
//   - ManifestClassifier: an explicit fixtures.toml per directory
package discovery
