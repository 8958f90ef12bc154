package strict

import (
	"fmt"
	"strings"
)

// Draft identifies a JSON Schema dialect.
type Draft int

const (
	Draft4    Draft = 4
	Draft6    Draft = 6
	Draft7    Draft = 7
	Draft2019 Draft = 2019
	Draft2020 Draft = 2020
)

func (d Draft) String() string {
	switch d {
	case Draft4, Draft6, Draft7:
		return fmt.Sprintf("draft%d", int(d))
	case Draft2019:
		return "2019-09"
	case Draft2020:
		return "2020-12"
	}
	return fmt.Sprintf("Draft(%d)", int(d))
}

// ParseDraft accepts the names used in schemacheck.toml.
func ParseDraft(name string) (Draft, error) {
	switch name {
	case "draft4":
		return Draft4, nil
	case "draft6":
		return Draft6, nil
	case "draft7":
		return Draft7, nil
	case "2019-09":
		return Draft2019, nil
	case "2020-12":
		return Draft2020, nil
	}
	return 0, fmt.Errorf("unknown draft %q", name)
}

// DraftOf returns the dialect named by a document's $schema, or def when the
// document has none or names an unrecognized dialect.
func DraftOf(doc any, def Draft) Draft {
	m, ok := doc.(map[string]any)
	if !ok {
		return def
	}
	uri, ok := m["$schema"].(string)
	if !ok {
		return def
	}
	switch {
	case strings.Contains(uri, "draft-04"):
		return Draft4
	case strings.Contains(uri, "draft-06"):
		return Draft6
	case strings.Contains(uri, "draft-07"):
		return Draft7
	case strings.Contains(uri, "2019-09"):
		return Draft2019
	case strings.Contains(uri, "2020-12"):
		return Draft2020
	}
	return def
}

// span is the inclusive range of drafts that define a keyword. A zero until
// means the keyword is still defined in the latest draft.
type span struct {
	since, until Draft
}

func (s span) has(d Draft) bool {
	return d >= s.since && (s.until == 0 || d <= s.until)
}

var always = span{since: Draft4}

// vocabulary maps each keyword to the drafts that define it. draft-07 also
// accepts $defs, $vocabulary, deprecated and contentSchema, as Ajv does.
var vocabulary = map[string]span{
	// core
	"$schema":          always,
	"$ref":             always,
	"id":               {Draft4, Draft4},
	"$id":              {since: Draft6},
	"$comment":         {since: Draft7},
	"definitions":      always,
	"$defs":            {since: Draft7},
	"$anchor":          {since: Draft2019},
	"$vocabulary":      {since: Draft7},
	"$recursiveRef":    {Draft2019, Draft2019},
	"$recursiveAnchor": {Draft2019, Draft2019},
	"$dynamicRef":      {since: Draft2020},
	"$dynamicAnchor":   {since: Draft2020},

	// annotations
	"title":       always,
	"description": always,
	"default":     always,
	"examples":    {since: Draft6},
	"readOnly":    {since: Draft7},
	"writeOnly":   {since: Draft7},
	"deprecated":  {since: Draft7},

	// any instance
	"type":  always,
	"enum":  always,
	"const": {since: Draft6},

	// numbers
	"multipleOf":       always,
	"maximum":          always,
	"minimum":          always,
	"exclusiveMaximum": always,
	"exclusiveMinimum": always,

	// strings
	"maxLength":        always,
	"minLength":        always,
	"pattern":          always,
	"format":           always,
	"contentEncoding":  {since: Draft7},
	"contentMediaType": {since: Draft7},
	"contentSchema":    {since: Draft7},

	// arrays
	"items":            always,
	"additionalItems":  {Draft4, Draft2019},
	"maxItems":         always,
	"minItems":         always,
	"uniqueItems":      always,
	"contains":         {since: Draft6},
	"minContains":      {since: Draft2019},
	"maxContains":      {since: Draft2019},
	"prefixItems":      {since: Draft2020},
	"unevaluatedItems": {since: Draft2019},

	// objects
	"maxProperties":         always,
	"minProperties":         always,
	"required":              always,
	"properties":            always,
	"patternProperties":     always,
	"additionalProperties":  always,
	"dependencies":          {Draft4, Draft7},
	"dependentRequired":     {since: Draft2019},
	"dependentSchemas":      {since: Draft2019},
	"propertyNames":         {since: Draft6},
	"unevaluatedProperties": {since: Draft2019},

	// applicators
	"allOf": always,
	"anyOf": always,
	"oneOf": always,
	"not":   always,
	"if":    {since: Draft7},
	"then":  {since: Draft7},
	"else":  {since: Draft7},
}

// keywordTypes lists the instance types a type-specific keyword applies to.
var keywordTypes = map[string][]string{
	"maxProperties":         {"object"},
	"minProperties":         {"object"},
	"required":              {"object"},
	"properties":            {"object"},
	"patternProperties":     {"object"},
	"additionalProperties":  {"object"},
	"dependencies":          {"object"},
	"dependentRequired":     {"object"},
	"dependentSchemas":      {"object"},
	"propertyNames":         {"object"},
	"unevaluatedProperties": {"object"},

	"items":            {"array"},
	"additionalItems":  {"array"},
	"maxItems":         {"array"},
	"minItems":         {"array"},
	"uniqueItems":      {"array"},
	"contains":         {"array"},
	"minContains":      {"array"},
	"maxContains":      {"array"},
	"prefixItems":      {"array"},
	"unevaluatedItems": {"array"},

	"maxLength": {"string"},
	"minLength": {"string"},
	"pattern":   {"string"},

	"multipleOf":       {"number"},
	"maximum":          {"number"},
	"minimum":          {"number"},
	"exclusiveMaximum": {"number"},
	"exclusiveMinimum": {"number"},

	"format": {"number", "string"},
}
