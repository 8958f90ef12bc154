package strict

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Rule names the strict-mode rule a violation breaks.
type Rule string

const (
	RuleUnknownKeyword Rule = "unknown-keyword"
	RuleUnknownFormat  Rule = "unknown-format"
	RuleIgnored        Rule = "ignored-keyword"
	RuleTypes          Rule = "strict-types"
	RuleTuples         Rule = "strict-tuples"
	RuleRequired       Rule = "strict-required"
)

// Violation is one strict-mode finding. Path is a JSON pointer into the
// schema document ("#/properties/id").
type Violation struct {
	Path    string
	Rule    Rule
	Message string
}

func (v Violation) Error() string {
	return fmt.Sprintf("strict mode: %s at %q", v.Message, v.Path)
}

// Options configures Check.
type Options struct {
	// Draft is used when the document has no recognizable $schema.
	Draft Draft

	// AllowUnionTypes permits "type" arrays with more than one non-null type.
	AllowUnionTypes bool

	// AllowedKeywords are accepted in addition to the draft vocabulary.
	AllowedKeywords []string

	// KnownFormat reports whether the engine understands a format name.
	// Nil disables the unknown-format rule.
	KnownFormat func(name string) bool

	// ExtraFormats are accepted as annotation-only formats.
	ExtraFormats []string
}

// Check walks doc and returns every strict-mode violation, sorted by schema
// path. A nil result means the document passes.
func Check(doc any, opts Options) []Violation {
	if opts.Draft == 0 {
		opts.Draft = Draft7
	}
	w := &walker{
		draft:   DraftOf(doc, opts.Draft),
		opts:    opts,
		allowed: toSet(opts.AllowedKeywords),
		formats: toSet(opts.ExtraFormats),
	}
	w.walk(doc, "#", scope{})

	sort.SliceStable(w.out, func(i, j int) bool {
		if w.out[i].Path != w.out[j].Path {
			return w.out[i].Path < w.out[j].Path
		}
		return w.out[i].Message < w.out[j].Message
	})
	return w.out
}

// scope carries what is known about the instance a subschema applies to.
// It is inherited only by subschemas that apply to the same instance
// (allOf, anyOf, oneOf, not, if/then/else, dependentSchemas).
type scope struct {
	types   []string
	defined map[string]bool
}

type walker struct {
	draft   Draft
	opts    Options
	allowed map[string]bool
	formats map[string]bool
	out     []Violation
}

func (w *walker) report(path string, rule Rule, format string, args ...any) {
	w.out = append(w.out, Violation{Path: path, Rule: rule, Message: fmt.Sprintf(format, args...)})
}

func (w *walker) walk(node any, path string, ctx scope) {
	m, ok := node.(map[string]any)
	if !ok {
		// boolean schemas carry no keywords; anything else is left to the meta-schema
		return
	}
	keys := sortedKeys(m)

	for _, k := range keys {
		if sp, ok := vocabulary[k]; (!ok || !sp.has(w.draft)) && !w.allowed[k] {
			w.report(path, RuleUnknownKeyword, "unknown keyword: %q", k)
		}
	}

	types := w.checkTypes(m, keys, path, ctx)
	w.checkIgnored(m, path)
	w.checkFormat(m, path)
	w.checkTuples(m, path)

	defined := copySet(ctx.defined)
	if props, ok := m["properties"].(map[string]any); ok {
		for name := range props {
			defined[name] = true
		}
	}
	w.checkRequired(m, path, defined)

	same := scope{types: types, defined: defined}
	fresh := scope{}

	for _, k := range []string{"allOf", "anyOf", "oneOf"} {
		w.walkArray(m[k], join(path, k), same)
	}
	for _, k := range []string{"not", "if", "then", "else"} {
		if sub, ok := m[k]; ok {
			w.walk(sub, join(path, k), same)
		}
	}
	w.walkMap(m["dependentSchemas"], join(path, "dependentSchemas"), same)
	if deps, ok := m["dependencies"].(map[string]any); ok {
		for _, name := range sortedKeys(deps) {
			// array values are property dependencies, not schemas
			if _, isList := deps[name].([]any); !isList {
				w.walk(deps[name], join(join(path, "dependencies"), name), same)
			}
		}
	}

	for _, k := range []string{"properties", "patternProperties", "definitions", "$defs"} {
		w.walkMap(m[k], join(path, k), fresh)
	}
	for _, k := range []string{"additionalProperties", "propertyNames", "unevaluatedProperties",
		"additionalItems", "contains", "unevaluatedItems", "contentSchema"} {
		if sub, ok := m[k]; ok {
			w.walk(sub, join(path, k), fresh)
		}
	}
	w.walkArray(m["prefixItems"], join(path, "prefixItems"), fresh)
	switch items := m["items"].(type) {
	case []any:
		w.walkArray(items, join(path, "items"), fresh)
	case nil:
	default:
		w.walk(items, join(path, "items"), fresh)
	}
}

func (w *walker) walkArray(v any, path string, ctx scope) {
	list, ok := v.([]any)
	if !ok {
		return
	}
	for i, sub := range list {
		w.walk(sub, fmt.Sprintf("%s/%d", path, i), ctx)
	}
}

func (w *walker) walkMap(v any, path string, ctx scope) {
	subs, ok := v.(map[string]any)
	if !ok {
		return
	}
	for _, name := range sortedKeys(subs) {
		w.walk(subs[name], join(path, name), ctx)
	}
}

// checkTypes applies the strictTypes rules and returns the instance types
// known after this schema.
func (w *walker) checkTypes(m map[string]any, keys []string, path string, ctx scope) []string {
	declared := schemaTypes(m["type"])

	if !w.opts.AllowUnionTypes && len(declared) > 1 &&
		!(len(declared) == 2 && contains(declared, "null")) {
		w.report(path, RuleTypes, "use allow_union_types to allow union type keyword")
	}

	known := ctx.types
	switch {
	case len(declared) == 0:
	case len(ctx.types) == 0:
		known = declared
	default:
		for _, t := range declared {
			if !includesType(ctx.types, t) {
				w.report(path, RuleTypes, "type %q not allowed by context %q", t, strings.Join(ctx.types, ","))
			}
		}
		known = narrow(ctx.types, declared)
	}

	for _, k := range keys {
		kt, ok := keywordTypes[k]
		if !ok {
			continue
		}
		if sp, inVocab := vocabulary[k]; !inVocab || !sp.has(w.draft) {
			continue
		}
		applicable := false
		for _, t := range kt {
			if hasApplicableType(known, t) {
				applicable = true
				break
			}
		}
		if !applicable {
			w.report(path, RuleTypes, "missing type %q for keyword %q", strings.Join(kt, ","), k)
		}
	}

	return known
}

func (w *walker) checkIgnored(m map[string]any, path string) {
	if _, ok := m["additionalItems"]; ok && w.draft < Draft2020 {
		if _, isTuple := m["items"].([]any); !isTuple {
			w.report(path, RuleIgnored, `"additionalItems" is ignored when "items" is not an array of schemas`)
		}
	}

	if w.draft >= Draft7 {
		_, hasIf := m["if"]
		_, hasThen := m["then"]
		_, hasElse := m["else"]
		if hasIf && !hasThen && !hasElse {
			w.report(path, RuleIgnored, `"if" without "then" and "else" is ignored`)
		}
		if !hasIf && hasThen {
			w.report(path, RuleIgnored, `"then" without "if" is ignored`)
		}
		if !hasIf && hasElse {
			w.report(path, RuleIgnored, `"else" without "if" is ignored`)
		}
	}

	if w.draft >= Draft2019 {
		if _, ok := m["contains"]; !ok {
			for _, k := range []string{"maxContains", "minContains"} {
				if _, present := m[k]; present {
					w.report(path, RuleIgnored, "%q without \"contains\" is ignored", k)
				}
			}
		}
	}
}

func (w *walker) checkFormat(m map[string]any, path string) {
	if w.opts.KnownFormat == nil {
		return
	}
	name, ok := m["format"].(string)
	if !ok {
		return
	}
	if !w.opts.KnownFormat(name) && !w.formats[name] {
		w.report(path, RuleUnknownFormat, "unknown format %q ignored in schema", name)
	}
}

func (w *walker) checkTuples(m map[string]any, path string) {
	keyword, extra := "items", "additionalItems"
	if w.draft >= Draft2020 {
		keyword, extra = "prefixItems", "items"
	}
	tuple, ok := m[keyword].([]any)
	if !ok {
		return
	}

	n := len(tuple)
	minItems, hasMin := asInt(m["minItems"])
	maxItems, hasMax := asInt(m["maxItems"])
	closed := false
	if b, ok := m[extra].(bool); ok && !b {
		closed = true
	}

	full := hasMin && minItems == n && ((hasMax && maxItems == n) || closed)
	if !full {
		w.report(path, RuleTuples, "%q is %d-tuple, but minItems or maxItems/%s are not specified or different", keyword, n, extra)
	}
}

func (w *walker) checkRequired(m map[string]any, path string, defined map[string]bool) {
	required, ok := m["required"].([]any)
	if !ok {
		return
	}
	for _, r := range required {
		name, ok := r.(string)
		if !ok {
			continue
		}
		if !defined[name] {
			w.report(path, RuleRequired, "required property %q is not defined", name)
		}
	}
}

func schemaTypes(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// includesType: an integer schema fits a number context.
func includesType(ts []string, t string) bool {
	return contains(ts, t) || (t == "integer" && contains(ts, "number"))
}

// hasApplicableType: number keywords apply to integer schemas.
func hasApplicableType(ts []string, kwType string) bool {
	return contains(ts, kwType) || (kwType == "number" && contains(ts, "integer"))
}

func narrow(ctx, declared []string) []string {
	var out []string
	for _, t := range ctx {
		switch {
		case includesType(declared, t):
			out = append(out, t)
		case t == "number" && contains(declared, "integer"):
			out = append(out, "integer")
		}
	}
	return out
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func join(path, token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return path + "/" + token
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, e := range list {
		set[e] = true
	}
	return set
}

func copySet(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k := range in {
		out[k] = true
	}
	return out
}
