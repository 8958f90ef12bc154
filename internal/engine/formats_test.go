package engine

import (
	"fmt"
	"testing"
)

func TestCompile_AjvFormats(t *testing.T) {
	tests := []struct {
		format string
		typ    string
		valid  []string
		bad    []string
	}{
		{"byte", "string", []string{`"aGVsbG8="`, `""`, `"YWJj"`}, []string{`"not base64!"`, `"YWJ"`}},
		{"int32", "integer", []string{`0`, `2147483647`, `-2147483648`}, []string{`2147483648`, `-2147483649`}},
		{"int32", "number", []string{`12`}, []string{`1.5`}},
		{"int64", "integer", []string{`9007199254740993`, `-1`}, nil},
		{"int64", "number", []string{`3`}, []string{`0.25`}},
		{"float", "number", []string{`1.5`, `2`}, nil},
		{"double", "number", []string{`-0.125`}, nil},
		{"password", "string", []string{`"hunter2"`}, nil},
		{"binary", "string", []string{`"\u0000\u0001"`}, nil},
		{"url", "string",
			[]string{`"https://example.com/a?b=c"`, `"ftp://files.example.org"`, `"http://localhost:8080"`},
			[]string{`"mailto:a@example.com"`, `"http://exa mple.com"`, `"example.com"`}},
		{"iso-time", "string",
			[]string{`"10:20:30"`, `"10:20:30.5Z"`, `"10:20:30+02:00"`, `"23:59:60Z"`},
			[]string{`"25:00:00"`, `"10:61:00"`, `"10:20"`}},
		{"iso-date-time", "string",
			[]string{`"2024-01-02T10:20:30"`, `"2024-01-02 10:20:30Z"`},
			[]string{`"2024-13-02T10:20:30"`, `"2024-01-02"`, `"2024-01-02X10:20:30"`}},
		{"json-pointer-uri-fragment", "string",
			[]string{`"#"`, `"#/a/b%20c"`, `"#/a~1b"`},
			[]string{`"/a/b"`, `"#/a b"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format+"/"+tt.typ, func(t *testing.T) {
			v := compile(t, New(), fmt.Sprintf(`{"type": %q, "format": %q}`, tt.typ, tt.format))

			for _, src := range tt.valid {
				if got := v.Validate(value(t, src)); got != nil {
					t.Errorf("Validate(%s) = %v, want valid", src, got)
				}
			}
			for _, src := range tt.bad {
				if v.Validate(value(t, src)) == nil {
					t.Errorf("Validate(%s) = valid, want a format violation", src)
				}
			}
		})
	}
}

func TestKnownFormat_AjvFormats(t *testing.T) {
	for name := range extraFormats {
		if !KnownFormat(name) {
			t.Errorf("KnownFormat(%q) = false", name)
		}
	}
}
