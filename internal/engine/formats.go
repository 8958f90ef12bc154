package engine

import (
	"encoding/json"
	"math"
	"math/big"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// extraFormats are the ajv-formats formats the validation engine does not
// ship. Each compiler gets them in addition to jsonschema.Formats.
var extraFormats = map[string]func(any) bool{
	"byte":                      isByte,
	"int32":                     isInt32,
	"int64":                     isInt64,
	"float":                     anyValue,
	"double":                    anyValue,
	"password":                  anyValue,
	"binary":                    anyValue,
	"url":                       isURL,
	"iso-time":                  isISOTime,
	"iso-date-time":             isISODateTime,
	"json-pointer-uri-fragment": isJSONPointerURIFragment,
}

// KnownFormat reports whether the engine asserts the named format.
func KnownFormat(name string) bool {
	if _, ok := extraFormats[name]; ok {
		return true
	}
	_, ok := jsonschema.Formats[name]
	return ok
}

func registerFormats(c *jsonschema.Compiler) {
	for name, fn := range extraFormats {
		c.Formats[name] = fn
	}
}

var (
	byteRe     = regexp.MustCompile(`^(?i:(?:[a-z0-9+/]{4})*(?:[a-z0-9+/]{2}==|[a-z0-9+/]{3}=)?)$`)
	isoTimeRe  = regexp.MustCompile(`^(?i:(\d\d):(\d\d):(\d\d(?:\.\d+)?)(z|[+-]\d\d(?::?\d\d)?)?)$`)
	fragmentRe = regexp.MustCompile(`^(?i:#(?:/(?:[a-z0-9_\-.!$&'()*+,;:=@]|%[0-9a-f]{2}|~0|~1)*)*)$`)
)

func anyValue(any) bool { return true }

// isByte: base64 encoded data.
func isByte(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return byteRe.MatchString(s)
}

// integral returns the value as a rational when v is a number.
func integral(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case json.Number:
		r, ok := new(big.Rat).SetString(n.String())
		return r, ok
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(n), true
	case int:
		return new(big.Rat).SetInt64(int64(n)), true
	case int64:
		return new(big.Rat).SetInt64(n), true
	}
	return nil, false
}

func isNumber(v any) bool {
	switch v.(type) {
	case json.Number, float64, float32, int, int32, int64:
		return true
	}
	return false
}

var (
	minInt32 = big.NewRat(math.MinInt32, 1)
	maxInt32 = big.NewRat(math.MaxInt32, 1)
)

func isInt32(v any) bool {
	if !isNumber(v) {
		return true
	}
	r, ok := integral(v)
	return ok && r.IsInt() && r.Cmp(minInt32) >= 0 && r.Cmp(maxInt32) <= 0
}

func isInt64(v any) bool {
	if !isNumber(v) {
		return true
	}
	r, ok := integral(v)
	return ok && r.IsInt()
}

// isURL accepts absolute http, https and ftp URLs with a host.
func isURL(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
	default:
		return false
	}
	host := u.Hostname()
	return host != "" && (strings.Contains(host, ".") || host == "localhost")
}

// isISOTime: a time of day with an optional offset.
func isISOTime(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return validISOTime(s)
}

func validISOTime(s string) bool {
	m := isoTimeRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	hr, _ := strconv.Atoi(m[1])
	mn, _ := strconv.Atoi(m[2])
	sec, _ := strconv.ParseFloat(m[3], 64)
	if hr > 23 || mn > 59 || sec >= 61 {
		return false
	}
	// leap second only at the end of a minute
	return sec < 60 || mn == 59
}

// isISODateTime: date and ISO time separated by "T", "t" or whitespace.
func isISODateTime(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	if len(s) < 11 {
		return false
	}
	sep := s[10]
	if sep != 'T' && sep != 't' && sep != ' ' && sep != '\t' {
		return false
	}
	return jsonschema.Formats["date"](s[:10]) && validISOTime(s[11:])
}

func isJSONPointerURIFragment(v any) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return fragmentRe.MatchString(s)
}
