package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/abordage/schemas/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.json", `{"id": "abc", "count": 3, "tags": ["a"], "extra": null}`)

	got, err := New().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"id":    "abc",
		"count": json.Number("3"),
		"tags":  []any{"a"},
		"extra": nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %#v, want %#v", got, want)
	}
}

func TestLoad_YAMLMatchesJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "ok.json", `{"id": "abc", "count": 3, "ratio": 0.5, "tags": ["a", "b"]}`)
	yamlPath := writeFile(t, dir, "ok.yaml", "id: abc\ncount: 3\nratio: 0.5\ntags:\n  - a\n  - b\n")
	ymlPath := writeFile(t, dir, "ok.yml", "{id: abc, count: 3, ratio: 0.5, tags: [a, b]}\n")

	l := New()
	fromJSON, err := l.Load(jsonPath)
	if err != nil {
		t.Fatalf("Load(json) failed: %v", err)
	}
	for _, p := range []string{yamlPath, ymlPath} {
		fromYAML, err := l.Load(p)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", filepath.Base(p), err)
		}
		if !reflect.DeepEqual(fromJSON, fromYAML) {
			t.Errorf("%s = %#v, want %#v", filepath.Base(p), fromYAML, fromJSON)
		}
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", "hello")

	_, err := New().Load(path)
	if !errors.Is(err, errors.ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_ExtensionIsCaseInsensitive(t *testing.T) {
	path := writeFile(t, t.TempDir(), "OK.JSON", `{}`)

	if _, err := New().Load(path); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"truncated json", "a.json", `{"id": `},
		{"trailing data", "b.json", `{"id": "abc"} {"id": "def"}`},
		{"empty json", "c.json", ""},
		{"single quotes", "d.json", `{'id': 'abc'}`},
		{"bad yaml indentation", "e.yaml", "id: abc\n  name: [unclosed\n"},
		{"tab indented yaml", "f.yml", "id:\n\t- a\n"},
	}

	dir := t.TempDir()
	l := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := l.Load(path)
			if !errors.Is(err, errors.ErrParse) {
				t.Errorf("Load() error = %v, want ErrParse", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New().Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
	if errors.Is(err, errors.ErrParse) || errors.Is(err, errors.ErrUnsupportedFormat) {
		t.Errorf("missing file should be a read error, got %v", err)
	}
}

func TestWithDecoder(t *testing.T) {
	raw := func(data []byte) (any, error) { return string(data), nil }
	l := New(WithDecoder(".TXT", raw))

	if !l.Supports("notes.txt") {
		t.Error("Supports(notes.txt) = false after WithDecoder")
	}

	path := writeFile(t, t.TempDir(), "notes.txt", "hello")
	got, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Load() = %v, want hello", got)
	}
}

func TestExtensions(t *testing.T) {
	got := New().Extensions()
	want := []string{".json", ".yaml", ".yml"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestDecodeYAML_CoreSchema(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"on key stays a string", "on: push\n", map[string]any{"on": "push"}},
		{"yes and no are strings", "a: yes\nb: no\nc: off\n", map[string]any{"a": "yes", "b": "no", "c": "off"}},
		{"booleans", "a: true\nb: False\nc: TRUE\n", map[string]any{"a": true, "b": false, "c": true}},
		{"leading zero is decimal", "mode: 0755\n", map[string]any{"mode": json.Number("755")}},
		{"explicit octal", "mode: 0o755\n", map[string]any{"mode": json.Number("493")}},
		{"hex", "mask: 0xff\n", map[string]any{"mask": json.Number("255")}},
		{"signed int", "n: +5\n", map[string]any{"n": json.Number("5")}},
		{"underscores are text", "n: 1_000\n", map[string]any{"n": "1_000"}},
		{"float keeps json text", "r: 1.50\n", map[string]any{"r": json.Number("1.50")}},
		{"float normalized", "r: .5\n", map[string]any{"r": json.Number("0.5")}},
		{"nulls", "a: ~\nb: null\nc:\n", map[string]any{"a": nil, "b": nil, "c": nil}},
		{"timestamps are strings", "d: 2024-01-02\n", map[string]any{"d": "2024-01-02"}},
		{"quoted scalars are strings", "a: \"true\"\nb: '12'\n", map[string]any{"a": "true", "b": "12"}},
		{"str tag", "a: !!str 12\n", map[string]any{"a": "12"}},
		{"int tag", "a: !!int 12\n", map[string]any{"a": json.Number("12")}},
		{"numeric and null keys", "1: a\n~: b\ntrue: c\n", map[string]any{"1": "a", "": "b", "true": "c"}},
		{"aliases", "base: &b {x: 1}\ncopy: *b\n", map[string]any{
			"base": map[string]any{"x": json.Number("1")},
			"copy": map[string]any{"x": json.Number("1")},
		}},
		{"empty document", "", nil},
		{"comment only", "# nothing\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeYAML([]byte(tt.in))
			if err != nil {
				t.Fatalf("DecodeYAML() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeYAML() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"multiple documents", "a: 1\n---\nb: 2\n"},
		{"duplicate keys", "a: 1\na: 2\n"},
		{"infinity", "a: .inf\n"},
		{"bad int tag", "a: !!int abc\n"},
		{"sequence key", "? [a, b]\n: c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeYAML([]byte(tt.in)); err == nil {
				t.Error("DecodeYAML() should fail")
			}
		})
	}
}

func TestLoad_WorkflowFixture(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ci.yml", "name: ci\non:\n  push:\n    branches: [main]\npermissions: {contents: read}\n")

	got, err := New().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Load() = %T, want map", got)
	}
	if _, ok := m["on"]; !ok {
		t.Errorf("key \"on\" missing: %#v", m)
	}
}
