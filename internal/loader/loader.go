// Package loader reads example data files into generic JSON values.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abordage/schemas/internal/errors"
)

// Decoder turns raw file content into a JSON value tree
// (map[string]any, []any, string, json.Number, bool, nil).
type Decoder func(data []byte) (any, error)

// Loader dispatches on file extension to a registered Decoder.
type Loader struct {
	decoders map[string]Decoder
}

// Option configures a Loader.
type Option func(*Loader)

// WithDecoder registers a decoder for ext (".toml", ".json5", ...).
func WithDecoder(ext string, d Decoder) Option {
	return func(l *Loader) {
		l.decoders[strings.ToLower(ext)] = d
	}
}

// New returns a Loader that understands JSON and YAML.
func New(opts ...Option) *Loader {
	l := &Loader{
		decoders: map[string]Decoder{
			".json": DecodeJSON,
			".yaml": DecodeYAML,
			".yml":  DecodeYAML,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Extensions returns the recognized extensions, sorted.
func (l *Loader) Extensions() []string {
	exts := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether path has a recognized extension.
func (l *Loader) Supports(path string) bool {
	_, ok := l.decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads path and decodes it according to its extension.
func (l *Loader) Load(path string) (any, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := l.decoders[ext]
	if !ok {
		return nil, errors.UnsupportedFormat(path, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	v, err := decode(data)
	if err != nil {
		return nil, errors.ParseError(path, err)
	}
	return v, nil
}

// DecodeJSON decodes exactly one JSON value. Numbers are kept as json.Number
// so integers beyond 2^53 and decimal literals reach the validator unchanged.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty document")
		}
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}
