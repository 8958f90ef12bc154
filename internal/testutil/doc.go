// Package testutil provides test fixtures and utilities.
//
// # Sample corpus
//
// A small passing corpus is embedded using go:embed:
//
//	fixtures/schemas/widget/widget.schema.json
//	fixtures/schemas/gadget/gadget.schema.json
//	fixtures/examples/widget/{ok.json,ok.yaml,invalid-missing-id.json,invalid-extra-field.json}
//	fixtures/examples/gadget/{ok.yaml,negative-bad-date.json,invalid-syntax.json}
//
// CopySampleCorpus writes it into a temporary directory:
//
//	c := testutil.CopySampleCorpus(t)
//	res, err := r.Run(ctx, c.SchemaDir, nil)
//
// # Building a corpus
//
// For edge cases, build one file by file:
//
//	c := testutil.NewCorpus(t)
//	c.AddSchema("widget", "widget.schema.json", testutil.WidgetSchema)
//	c.AddFixture("widget", "bad.json", `{"extra": 1}`)
//	c.WriteConfig(`jobs = 4`)
package testutil
