package runner

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/abordage/schemas/internal/check"
	"github.com/abordage/schemas/internal/discovery"
	"github.com/abordage/schemas/internal/engine"
	"github.com/abordage/schemas/internal/errors"
	"github.com/abordage/schemas/internal/loader"
	"github.com/abordage/schemas/internal/testutil"
)

func newRunner(c *testutil.Corpus, opts ...Option) *Runner {
	locator := &discovery.Locator{
		ExamplesRoot: c.ExamplesDir,
		Classifier:   discovery.DefaultMarkerClassifier(),
	}
	return New(engine.New(), loader.New(), locator, opts...)
}

func run(t *testing.T, c *testutil.Corpus, opts ...Option) *Result {
	t.Helper()

	res, err := newRunner(c, opts...).Run(context.Background(), c.SchemaDir, nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return res
}

func kinds(sr SchemaResult) map[string]check.Kind {
	out := make(map[string]check.Kind, len(sr.Fixtures))
	for _, o := range sr.Fixtures {
		out[o.Name()] = o.Kind
	}
	return out
}

func TestRun_WidgetPasses(t *testing.T) {
	c := testutil.NewCorpus(t).Widget()

	res := run(t, c)

	if res.Failed() {
		t.Fatalf("run failed: %+v", res.Summary)
	}
	if err := res.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
	want := Summary{Schemas: 1, Fixtures: 2, FixturesPassed: 2}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}

	sr := res.Schemas[0]
	if sr.Name != "widget" || !sr.Compiled {
		t.Errorf("schema result = %+v", sr)
	}
	// positives come first
	if sr.Fixtures[0].Name() != "ok.json" || sr.Fixtures[1].Name() != "invalid-missing-id.json" {
		t.Errorf("fixture order = %s, %s", sr.Fixtures[0].Name(), sr.Fixtures[1].Name())
	}
}

func TestRun_MisnamedFixtureFails(t *testing.T) {
	c := testutil.NewCorpus(t)
	c.AddSchema("widget", "widget.schema.json", testutil.WidgetSchema)
	c.AddFixture("widget", "invalid-extra-field.json", `{"id": "abc", "extra": 1}`)
	c.AddFixture("widget", "bad.json", `{"extra": 1}`)

	res := run(t, c)

	got := kinds(res.Schemas[0])
	want := map[string]check.Kind{
		"invalid-extra-field.json": check.Match,
		"bad.json":                 check.Mismatch,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outcomes = %v, want %v", got, want)
	}

	if !res.Failed() {
		t.Fatal("run should fail")
	}
	if res.Summary.FixturesFailed != 1 || res.Summary.FixturesPassed != 1 {
		t.Errorf("Summary = %+v", res.Summary)
	}
	if code := errors.GetExitCode(res.Err()); code != errors.ExitChecksFailed {
		t.Errorf("exit code = %d, want %d", code, errors.ExitChecksFailed)
	}

	bad := res.Schemas[0].Fixtures[0]
	if len(bad.Violations) == 0 {
		t.Error("rejected positive fixture should keep its violations")
	}
}

func TestRun_EmptyRoot(t *testing.T) {
	c := testutil.NewCorpus(t)

	res := run(t, c)

	if len(res.Schemas) != 0 || res.Failed() || res.Err() != nil {
		t.Errorf("empty run = %+v, want a pass with no schemas", res)
	}
}

func TestRun_CompileFailureSkipsFixtures(t *testing.T) {
	c := testutil.NewCorpus(t).Widget()
	c.AddSchema("broken", "broken.schema.json", `{"type": "object", "requird": ["id"]}`)
	c.AddFixture("broken", "ok.json", `{}`)

	res := run(t, c)

	if len(res.Schemas) != 2 {
		t.Fatalf("got %d schema results, want 2", len(res.Schemas))
	}
	broken := res.Schemas[0]
	if broken.Name != "broken" {
		t.Fatalf("first schema = %s, want broken", broken.Name)
	}
	if broken.Compiled || broken.CompileError == "" {
		t.Errorf("broken schema = %+v, want a compile failure", broken)
	}
	if len(broken.Fixtures) != 0 {
		t.Errorf("fixtures of a broken schema were checked: %v", broken.Fixtures)
	}

	// the other schema still ran
	if widget := res.Schemas[1]; !widget.Passed() || len(widget.Fixtures) != 2 {
		t.Errorf("widget = %+v, want 2 passing fixtures", widget)
	}

	want := Summary{Schemas: 2, CompileFailures: 1, Fixtures: 2, FixturesPassed: 2}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}
}

func TestRun_UnparsableFixtures(t *testing.T) {
	c := testutil.NewCorpus(t)
	c.AddSchema("widget", "widget.schema.json", testutil.WidgetSchema)
	c.AddFixture("widget", "invalid-syntax.json", `{"id": `)
	c.AddFixture("widget", "broken.yaml", "id: [abc\n")
	c.AddFixture("widget", "notes.txt", "not a fixture")

	res := run(t, c)

	got := kinds(res.Schemas[0])
	want := map[string]check.Kind{
		"invalid-syntax.json": check.UnparsableNegative,
		"broken.yaml":         check.LoadFail,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outcomes = %v, want %v", got, want)
	}
	if res.Summary.FixturesFailed != 1 || res.Summary.FixturesPassed != 1 {
		t.Errorf("Summary = %+v", res.Summary)
	}
}

func TestRun_SampleCorpus(t *testing.T) {
	c := testutil.CopySampleCorpus(t)

	res := run(t, c)

	if res.Failed() {
		for _, s := range res.FailedSchemas() {
			t.Logf("%s: %s %+v", s.Path, s.CompileError, s.Fixtures)
		}
		t.Fatalf("sample corpus failed: %+v", res.Summary)
	}
	if res.Summary.Schemas != testutil.SampleSchemas || res.Summary.Fixtures != testutil.SampleFixtures {
		t.Errorf("Summary = %+v", res.Summary)
	}
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	c := testutil.CopySampleCorpus(t)
	c.AddSchema("broken", "broken.schema.json", `{"properties": {}}`)
	c.AddSchema("widget2", "widget.schema.json", testutil.WidgetSchema)
	c.AddFixture("widget2", "bad.json", `{"id": 1, "extra": true}`)
	c.AddFixture("widget2", "negative.json", `{"id": "x"}`)

	seq := run(t, c, WithJobs(1))
	par := run(t, c, WithJobs(4))

	if !reflect.DeepEqual(seq.Schemas, par.Schemas) {
		t.Errorf("parallel results differ from sequential:\nseq %+v\npar %+v", seq.Schemas, par.Schemas)
	}
	if seq.Summary != par.Summary {
		t.Errorf("Summary: seq %+v, par %+v", seq.Summary, par.Summary)
	}
	if !seq.Failed() {
		t.Error("run should fail")
	}
}

func TestRun_Observer(t *testing.T) {
	c := testutil.CopySampleCorpus(t)

	var seen []string
	run(t, c, WithObserver(func(sr SchemaResult) {
		seen = append(seen, sr.Name)
	}))

	want := []string{"gadget", "widget"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("observed %v, want %v", seen, want)
	}
}

func TestRun_Filter(t *testing.T) {
	c := testutil.CopySampleCorpus(t)
	r := newRunner(c)

	res, err := r.Run(context.Background(), c.SchemaDir, []string{"widget"})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(res.Schemas) != 1 || res.Schemas[0].Name != "widget" {
		t.Errorf("filtered run = %+v", res.Schemas)
	}

	if _, err := r.Run(context.Background(), c.SchemaDir, []string{"["}); err == nil {
		t.Error("Run() should reject a malformed pattern")
	}
}

func TestRun_RootErrors(t *testing.T) {
	c := testutil.NewCorpus(t)
	file := filepath.Join(c.Root, "schemas")
	if err := os.WriteFile(file, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := newRunner(c).Run(context.Background(), file, nil)
	if err == nil {
		t.Fatal("Run() should fail when the root is a file")
	}
	if code := errors.GetExitCode(err); code != errors.ExitRootError {
		t.Errorf("exit code = %d, want %d", code, errors.ExitRootError)
	}
}

func TestRun_Cancelled(t *testing.T) {
	c := testutil.NewCorpus(t).Widget()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newRunner(c).Run(ctx, c.SchemaDir, nil); err == nil {
		t.Error("Run() should fail with a cancelled context")
	}
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Merge(Summary{Schemas: 1, Fixtures: 2, FixturesPassed: 2})
	s.Merge(Summary{Schemas: 1, CompileFailures: 1})
	s.Merge(Summary{Schemas: 1, Fixtures: 1, FixturesFailed: 1, ExampleFailures: 1})

	want := Summary{Schemas: 3, CompileFailures: 1, ExampleFailures: 1, Fixtures: 3, FixturesPassed: 2, FixturesFailed: 1}
	if s != want {
		t.Errorf("Merge() = %+v, want %+v", s, want)
	}
	if s.Failures() != 3 || !s.Failed() {
		t.Errorf("Failures() = %d, Failed() = %v", s.Failures(), s.Failed())
	}
	if (Summary{Schemas: 4}).Failed() {
		t.Error("a summary without failures should pass")
	}
}
