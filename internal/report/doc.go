// Package report renders a run result.
//
// Text is the human-readable report: a banner, one section per schema with
// [OK]/[FAIL] lines, a totals line and the final verdict. Styles are bound
// to the output writer, so colour is only used on a terminal.
//
// JSON and YAML emit the same Document for CI consumption.
package report
