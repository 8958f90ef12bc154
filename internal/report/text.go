package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kballard/go-shellquote"

	"github.com/abordage/schemas/internal/check"
	"github.com/abordage/schemas/internal/runner"
)

const bannerWidth = 50

// TextOptions configures the text report.
type TextOptions struct {
	// Title is printed inside the banner.
	Title string

	// RerunCommand is the command line that re-runs the check. When set,
	// a hint per failing schema is appended to the report.
	RerunCommand []string
}

type styles struct {
	ok      lipgloss.Style
	fail    lipgloss.Style
	heading lipgloss.Style
	detail  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:      r.NewStyle().Foreground(lipgloss.Color("42")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		heading: r.NewStyle().Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Text writes the human-readable report for res.
func Text(w io.Writer, res *runner.Result, opts TextOptions) error {
	if opts.Title == "" {
		opts.Title = "Schema Validation (Strict Mode)"
	}
	st := newStyles(w)
	p := &printer{w: w}

	banner := strings.Repeat("=", bannerWidth)
	p.line(banner)
	p.line(st.heading.Render(opts.Title))
	p.line(banner)
	p.line("")

	if len(res.Schemas) == 0 {
		p.line("No schemas found.")
		return p.err
	}

	for _, sr := range res.Schemas {
		writeSchema(p, st, sr)
		p.line("")
	}

	s := res.Summary
	p.line(banner)
	p.line(fmt.Sprintf("Schemas: %d (%d failed to compile), fixtures: %d passed, %d failed",
		s.Schemas, s.CompileFailures, s.FixturesPassed, s.FixturesFailed))

	if res.Failed() {
		p.line(st.fail.Render("Validation FAILED"))
		if len(opts.RerunCommand) > 0 {
			p.line("")
			p.line("Rerun a failing schema with:")
			for _, sr := range res.FailedSchemas() {
				p.line("  " + RerunHint(opts.RerunCommand, sr))
			}
		}
	} else {
		p.line(st.ok.Render("All validations PASSED"))
	}
	return p.err
}

func writeSchema(p *printer, st styles, sr runner.SchemaResult) {
	ok := func(msg string) { p.line("   " + st.ok.Render("[OK]") + " " + msg) }
	fail := func(msg string) { p.line("   " + st.fail.Render("[FAIL]") + " " + msg) }
	detail := func(msg string) { p.line("          " + st.detail.Render(msg)) }

	p.line(">> Validating: " + sr.Path)

	if !sr.Compiled {
		fail("Schema compilation error: " + sr.CompileError)
		return
	}
	ok("Schema compiles in strict mode")

	if sr.ExamplesError != "" {
		fail("Examples error: " + sr.ExamplesError)
		return
	}

	for _, o := range sr.Fixtures {
		if o.Passed() {
			ok(o.Describe())
			continue
		}
		fail(o.Describe())
		if o.Kind == check.Mismatch {
			for _, v := range o.Violations {
				detail(v.String())
			}
		}
	}
}

// RerunHint returns a shell-quoted command line that checks only sr.
func RerunHint(command []string, sr runner.SchemaResult) string {
	args := append(append([]string{}, command...), "--only", filepath.ToSlash(sr.Path))
	return shellquote.Join(args...)
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}
