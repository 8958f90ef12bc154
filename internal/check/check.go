// Package check applies a compiled schema to one fixture and decides whether
// the result matches the fixture's expected polarity.
package check

import (
	"fmt"
	"path/filepath"

	"github.com/abordage/schemas/internal/discovery"
	"github.com/abordage/schemas/internal/engine"
)

// Kind classifies the outcome of checking one fixture.
type Kind int

const (
	// Match: the validator agreed with the fixture's polarity.
	Match Kind = iota
	// Mismatch: a positive fixture was rejected or a negative one accepted.
	Mismatch
	// LoadFail: a positive fixture could not be read or parsed.
	LoadFail
	// UnparsableNegative: a negative fixture could not be parsed. Counts as a pass.
	UnparsableNegative
)

func (k Kind) String() string {
	switch k {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	case LoadFail:
		return "load-fail"
	case UnparsableNegative:
		return "unparsable-negative"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Validator is the compiled-schema capability the checker needs.
type Validator interface {
	Validate(value any) []engine.Violation
}

// Loader reads a fixture file into a value.
type Loader interface {
	Load(path string) (any, error)
}

// Outcome is the result of checking one fixture.
type Outcome struct {
	Fixture discovery.Fixture
	Kind    Kind
	// Message is the load error for LoadFail and UnparsableNegative.
	Message string
	// Violations are kept for a rejected positive fixture.
	Violations []engine.Violation
}

// Passed reports whether the outcome counts as a pass.
func (o Outcome) Passed() bool {
	return o.Kind == Match || o.Kind == UnparsableNegative
}

// Name returns the fixture's file name.
func (o Outcome) Name() string {
	return filepath.Base(o.Fixture.Path)
}

// Describe returns the one-line report text for the outcome.
func (o Outcome) Describe() string {
	name := o.Name()
	switch o.Kind {
	case LoadFail:
		return fmt.Sprintf("Error reading %s: %s", o.Fixture.Path, o.Message)
	case UnparsableNegative:
		return "Negative test fails to parse: " + name
	}

	if o.Fixture.Polarity == discovery.Negative {
		if o.Kind == Match {
			return "Negative test correctly fails: " + name
		}
		return "Negative test should fail but passed: " + name
	}
	return "Positive test: " + name
}

// Check validates value and compares the result with the fixture's polarity.
func Check(v Validator, value any, fixture discovery.Fixture) Outcome {
	violations := v.Validate(value)
	accepted := len(violations) == 0

	out := Outcome{Fixture: fixture}
	switch fixture.Polarity {
	case discovery.Negative:
		if accepted {
			out.Kind = Mismatch
		} else {
			out.Kind = Match
		}
	default:
		if accepted {
			out.Kind = Match
		} else {
			out.Kind = Mismatch
			out.Violations = violations
		}
	}
	return out
}

// CheckFile loads the fixture and checks it. A negative fixture that cannot
// be loaded passes; a positive one fails with LoadFail.
func CheckFile(v Validator, l Loader, fixture discovery.Fixture) Outcome {
	value, err := l.Load(fixture.Path)
	if err != nil {
		kind := LoadFail
		if fixture.Polarity == discovery.Negative {
			kind = UnparsableNegative
		}
		return Outcome{Fixture: fixture, Kind: kind, Message: err.Error()}
	}
	return Check(v, value, fixture)
}
