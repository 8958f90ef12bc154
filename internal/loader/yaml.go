package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML 1.2 core schema, the resolution rules of the yaml npm package and of
// most YAML 1.2 tooling. yes/no/on/off stay strings, 0755 is the integer 755.
var (
	coreNull  = regexp.MustCompile(`^(?:~|[Nn]ull|NULL)?$`)
	coreBool  = regexp.MustCompile(`^(?:[Tt]rue|TRUE|[Ff]alse|FALSE)$`)
	coreInt   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	coreOct   = regexp.MustCompile(`^0o[0-7]+$`)
	coreHex   = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	coreFloat = regexp.MustCompile(`^[-+]?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)(?:[eE][-+]?[0-9]+)?$`)
	coreInf   = regexp.MustCompile(`^(?:[-+]?\.(?:inf|Inf|INF)|\.nan|\.NaN|\.NAN)$`)

	jsonNumber = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?$`)
)

// DecodeYAML decodes exactly one YAML document into the same value shapes
// DecodeJSON produces. Plain scalars resolve with the YAML 1.2 core schema.
// An empty document is null.
func DecodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	var next yaml.Node
	if err := dec.Decode(&next); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("source contains multiple documents")
	}

	return nodeValue(&doc)
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])

	case yaml.AliasNode:
		return nodeValue(n.Alias)

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := mappingKey(n.Content[i])
			if err != nil {
				return nil, err
			}
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("line %d: map keys must be unique: %q", n.Content[i].Line, key)
			}
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil

	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, fmt.Errorf("line %d: unexpected YAML node", n.Line)
}

// mappingKey stringifies a scalar key the way JSON conversion does:
// null becomes "", numbers and booleans their canonical text.
func mappingKey(n *yaml.Node) (string, error) {
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: only scalar map keys are supported", n.Line)
	}
	v, err := scalarValue(n)
	if err != nil {
		return "", err
	}
	switch k := v.(type) {
	case nil:
		return "", nil
	case string:
		return k, nil
	case json.Number:
		return k.String(), nil
	case bool:
		return strconv.FormatBool(k), nil
	}
	return fmt.Sprint(v), nil
}

func scalarValue(n *yaml.Node) (any, error) {
	if n.Style&yaml.TaggedStyle != 0 {
		return taggedScalar(n)
	}
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return n.Value, nil
	}
	return resolvePlain(n.Value, n.Line)
}

// taggedScalar honours the core-schema tags; unknown tags keep the text.
func taggedScalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	case "!!null", "!!bool", "!!int", "!!float":
		v, err := resolvePlain(n.Value, n.Line)
		if err != nil {
			return nil, err
		}
		if ok := tagMatches(n.Tag, v, n.Value); !ok {
			return nil, fmt.Errorf("line %d: %q is not a valid %s", n.Line, n.Value, n.Tag)
		}
		return v, nil
	}
	return n.Value, nil
}

func tagMatches(tag string, v any, text string) bool {
	switch tag {
	case "!!null":
		return v == nil
	case "!!bool":
		_, ok := v.(bool)
		return ok
	case "!!int":
		_, ok := v.(json.Number)
		return ok && !strings.ContainsAny(text, ".eE")
	case "!!float":
		_, ok := v.(json.Number)
		return ok
	}
	return false
}

func resolvePlain(s string, line int) (any, error) {
	switch {
	case coreNull.MatchString(s):
		return nil, nil
	case coreBool.MatchString(s):
		return s[0] == 't' || s[0] == 'T', nil
	case coreInt.MatchString(s):
		return integer(s, 10)
	case coreOct.MatchString(s):
		return integer(s[2:], 8)
	case coreHex.MatchString(s):
		return integer(s[2:], 16)
	case coreFloat.MatchString(s):
		if jsonNumber.MatchString(s) {
			return json.Number(s), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	case coreInf.MatchString(s):
		return nil, fmt.Errorf("line %d: %s has no JSON representation", line, s)
	}
	return s, nil
}

func integer(digits string, base int) (any, error) {
	if base == 10 && jsonNumber.MatchString(digits) {
		return json.Number(digits), nil
	}
	b, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", digits)
	}
	return json.Number(b.String()), nil
}
