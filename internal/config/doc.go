// Package config provides configuration types and loading for schemacheck.
//
// # Configuration File
//
// Settings are read from schemacheck.toml at the corpus root. The file is
// optional; without it the harness checks schemas/ against examples/ under
// draft-07 strict rules:
//
//	schema_dir         = "schemas"
//	examples_dir       = "examples"
//	draft              = "draft7"
//	schema_suffixes    = [".schema.json", ".json"]
//	fixture_extensions = [".json", ".yaml", ".yml"]
//	negative_markers   = ["invalid", "negative"]
//	classifier         = "markers"   # or "manifest"
//	allow_union_types  = false
//	allowed_keywords   = []
//	extra_formats      = []
//	jobs               = 1
//	history_file       = ""
//
// Relative paths are resolved against the directory holding the file.
// Unknown keys are rejected so typos do not silently weaken the gate.
//
// # Validation
//
// Load validates after decoding; Validate can be called again after
// command-line flags have overridden individual fields.
package config
