package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abordage/schemas/internal/errors"
	"github.com/abordage/schemas/internal/loader"
	"github.com/abordage/schemas/internal/strict"
)

const widgetSchema = `{
	"type": "object",
	"required": ["id"],
	"properties": {"id": {"type": "string"}},
	"additionalProperties": false
}`

func value(t *testing.T, src string) any {
	t.Helper()

	v, err := loader.DecodeJSON([]byte(src))
	if err != nil {
		t.Fatalf("DecodeJSON(%s) failed: %v", src, err)
	}
	return v
}

func compile(t *testing.T, e *Engine, src string) *Validator {
	t.Helper()

	v, err := e.Compile(filepath.Join(t.TempDir(), "widget", "widget.schema.json"), []byte(src))
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	return v
}

func TestCompile_Widget(t *testing.T) {
	v := compile(t, New(), widgetSchema)

	if got := v.Validate(value(t, `{"id": "abc"}`)); got != nil {
		t.Errorf("Validate(valid) = %v, want nil", got)
	}

	tests := []struct {
		name     string
		data     string
		keyword  string
		instance string
	}{
		{"missing id", `{}`, "/required", ""},
		{"extra field", `{"id": "abc", "extra": 1}`, "/additionalProperties", ""},
		{"wrong type", `{"id": 7}`, "/properties/id/type", "/id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(value(t, tt.data))
			if len(got) == 0 {
				t.Fatal("Validate() returned no violations")
			}
			found := false
			for _, vi := range got {
				if strings.HasSuffix(vi.KeywordLocation, tt.keyword) && vi.InstanceLocation == tt.instance {
					found = true
				}
				if vi.Message == "" {
					t.Errorf("violation %+v has no message", vi)
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want a violation of %s at %q", got, tt.keyword, tt.instance)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	v := compile(t, New(), `{
		"type": "object",
		"properties": {"a": {"type": "string"}, "b": {"type": "integer"}}
	}`)

	got := v.Validate(value(t, `{"a": 1, "b": "x"}`))
	if len(got) != 2 {
		t.Fatalf("Validate() = %v, want 2 violations", got)
	}
}

func TestCompile_Failures(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		wantMsg string
	}{
		{"not json", `{"type": `, ""},
		{"trailing data", `{} {}`, "unexpected data"},
		{"unknown keyword", `{"type": "object", "requird": ["id"]}`, `unknown keyword: "requird"`},
		{"missing type", `{"properties": {"id": {"type": "string"}}}`, `missing type "object"`},
		{"unknown format", `{"type": "string", "format": "widget-id"}`, `unknown format "widget-id"`},
		{"meta-schema", `{"type": 5}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Compile("widget.schema.json", []byte(tt.schema))
			if err == nil {
				t.Fatal("Compile() should fail")
			}
			if !errors.Is(err, errors.ErrSchemaCompile) {
				t.Errorf("error %v should wrap ErrSchemaCompile", err)
			}
			if errors.GetExitCode(err) != errors.ExitChecksFailed {
				t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitChecksFailed)
			}
			if !strings.Contains(err.Error(), "widget.schema.json") {
				t.Errorf("error %q should name the schema", err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestCompile_StrictErrorListsEveryViolation(t *testing.T) {
	_, err := New().Compile("s.json", []byte(`{"type": "object", "x": 1, "y": 2}`))

	var se *StrictError
	if !errors.As(err, &se) {
		t.Fatalf("error %v should carry a StrictError", err)
	}
	if len(se.Violations) != 2 {
		t.Errorf("len(Violations) = %d, want 2", len(se.Violations))
	}
}

func TestCompile_Options(t *testing.T) {
	t.Run("without strict", func(t *testing.T) {
		e := New(WithoutStrict())
		if _, err := e.Compile("s.json", []byte(`{"properties": {}}`)); err != nil {
			t.Errorf("Compile() failed: %v", err)
		}
	})

	t.Run("allowed keyword", func(t *testing.T) {
		e := New(WithStrict(strict.Options{AllowedKeywords: []string{"x-doc"}}))
		if _, err := e.Compile("s.json", []byte(`{"type": "object", "x-doc": "ok"}`)); err != nil {
			t.Errorf("Compile() failed: %v", err)
		}
	})

	t.Run("default draft", func(t *testing.T) {
		src := []byte(`{"type": "object", "properties": {"a": {}, "b": {}}, "dependentRequired": {"a": ["b"]}}`)
		if _, err := New().Compile("s.json", src); err == nil {
			t.Error("draft-07 should reject dependentRequired")
		}
		if _, err := New(WithDraft(strict.Draft2020)).Compile("s.json", src); err != nil {
			t.Errorf("2020-12 Compile() failed: %v", err)
		}
	})

	t.Run("format assertion", func(t *testing.T) {
		v := compile(t, New(), `{"type": "string", "format": "date"}`)
		if v.Validate(value(t, `"not a date"`)) == nil {
			t.Error("asserted format should reject an invalid date")
		}
	})
}

func TestCompile_Draft7AcceptsAjvVocabulary(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		valid string
		bad   string
	}{
		{
			name:  "deprecated",
			src:   `{"type": "object", "properties": {"a": {"type": "string", "deprecated": true}}}`,
			valid: `{"a": "x"}`,
			bad:   `{"a": 1}`,
		},
		{
			name:  "$defs reference",
			src:   `{"$defs": {"s": {"type": "string"}}, "$ref": "#/$defs/s"}`,
			valid: `"x"`,
			bad:   `5`,
		},
		{
			name:  "contentSchema",
			src:   `{"type": "string", "contentMediaType": "application/json", "contentSchema": {"type": "object"}}`,
			valid: `"{}"`,
			bad:   `7`,
		},
		{
			name:  "$vocabulary",
			src:   `{"$vocabulary": {"https://json-schema.org/draft/2019-09/vocab/core": true}, "type": "integer"}`,
			valid: `3`,
			bad:   `"3"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := compile(t, New(), tt.src)
			if got := v.Validate(value(t, tt.valid)); got != nil {
				t.Errorf("Validate(%s) = %v, want valid", tt.valid, got)
			}
			if v.Validate(value(t, tt.bad)) == nil {
				t.Errorf("Validate(%s) = valid, want violations", tt.bad)
			}
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	e := New()
	bad := []byte(`{"type": "object", "b": 1, "a": 2}`)

	_, first := e.Compile("s.json", bad)
	for i := 0; i < 5; i++ {
		_, err := e.Compile("s.json", bad)
		if err == nil || err.Error() != first.Error() {
			t.Fatalf("compile %d = %v, want %v", i, err, first)
		}
	}

	for i := 0; i < 5; i++ {
		if _, err := e.Compile("w.json", []byte(widgetSchema)); err != nil {
			t.Fatalf("compile %d failed: %v", i, err)
		}
	}
}

func TestCompile_RelativeRef(t *testing.T) {
	dir := t.TempDir()
	common := `{"definitions": {"id": {"type": "string", "minLength": 1}}}`
	if err := os.WriteFile(filepath.Join(dir, "common.json"), []byte(common), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := New().Compile(filepath.Join(dir, "item.schema.json"),
		[]byte(`{"type": "object", "properties": {"id": {"$ref": "common.json#/definitions/id"}}}`))
	if err != nil {
		t.Fatalf("Compile() failed: %v", err)
	}
	if v.Validate(value(t, `{"id": ""}`)) == nil {
		t.Error("referenced constraint should reject an empty id")
	}
}

func TestKnownFormat(t *testing.T) {
	for _, name := range []string{"date", "date-time", "email", "uri", "ipv4"} {
		if !KnownFormat(name) {
			t.Errorf("KnownFormat(%q) = false", name)
		}
	}
	if KnownFormat("widget-id") {
		t.Error("KnownFormat(widget-id) = true")
	}
}

func TestViolation_String(t *testing.T) {
	v := Violation{KeywordLocation: "/required", Message: "missing properties: 'id'"}
	want := "/: missing properties: 'id' (/required)"
	if v.String() != want {
		t.Errorf("String() = %q, want %q", v.String(), want)
	}
}
