package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abordage/schemas/internal/check"
	"github.com/abordage/schemas/internal/runner"
)

// headerItem is a non-selectable schema separator in the browser list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

// resultItem is one selectable row: a fixture outcome, or a schema-level
// problem when outcome is nil.
type resultItem struct {
	schema  runner.SchemaResult
	outcome *check.Outcome
	problem string
}

func (i resultItem) passed() bool {
	if i.outcome == nil {
		return i.problem == ""
	}
	return i.outcome.Passed()
}

func (i resultItem) Title() string {
	icon := "✓"
	if !i.passed() {
		icon = "✗"
	}
	if i.outcome == nil {
		if !i.schema.Compiled {
			return icon + " schema compilation"
		}
		return icon + " fixture lookup"
	}
	return icon + " " + i.outcome.Name()
}

func (i resultItem) Description() string {
	if i.outcome == nil {
		return truncate(i.problem, 80)
	}
	desc := fmt.Sprintf("%s | %s", i.outcome.Fixture.Polarity, i.outcome.Kind)
	switch {
	case i.outcome.Message != "":
		desc += " | " + truncate(i.outcome.Message, 60)
	case len(i.outcome.Violations) > 0:
		desc += fmt.Sprintf(" | %d violation(s)", len(i.outcome.Violations))
	}
	return desc
}

func (i resultItem) FilterValue() string {
	if i.outcome == nil {
		return i.schema.Name
	}
	return i.schema.Name + " " + i.outcome.Name()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// schemaLabel returns the header text for a schema.
func schemaLabel(sr runner.SchemaResult) string {
	icon := "✓"
	if !sr.Passed() {
		icon = "✗"
	}
	return fmt.Sprintf("%s %s  %s", icon, sr.Name, shortenPath(sr.Path))
}

// buildItems returns one header per schema followed by its rows. With
// failuresOnly, passing schemas and passing fixtures are left out.
func buildItems(res *runner.Result, failuresOnly bool) []list.Item {
	if res == nil || len(res.Schemas) == 0 {
		return nil
	}

	var items []list.Item
	for _, sr := range res.Schemas {
		if failuresOnly && sr.Passed() {
			continue
		}
		items = append(items, headerItem{label: schemaLabel(sr)})

		switch {
		case !sr.Compiled:
			items = append(items, resultItem{schema: sr, problem: sr.CompileError})
			continue
		case sr.ExamplesError != "":
			items = append(items, resultItem{schema: sr, problem: sr.ExamplesError})
			continue
		}

		for idx := range sr.Fixtures {
			o := sr.Fixtures[idx]
			if failuresOnly && o.Passed() {
				continue
			}
			items = append(items, resultItem{schema: sr, outcome: &o})
		}
	}

	return items
}

// headerStyle is the style for schema header items.
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

// groupedDelegate renders both headerItem and resultItem in the list.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

// newGroupedDelegate creates a groupedDelegate wrapping a configured DefaultDelegate.
func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		fmt.Fprint(w, headerStyle.Render(h.label))
		return
	}

	d.inner.Render(w, m, index, item)
}

// skipHeaders adjusts the cursor position to skip headerItem entries.
// direction should be 1 (down) or -1 (up).
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	if len(items) == 0 {
		return
	}

	idx := l.Index()
	if _, ok := items[idx].(headerItem); !ok {
		return
	}

	// Try to move in the given direction first
	next := idx + direction
	if next >= 0 && next < len(items) {
		if _, ok := items[next].(headerItem); !ok {
			l.Select(next)
			return
		}
	}

	// Fall back to the opposite direction
	opposite := idx - direction
	if opposite >= 0 && opposite < len(items) {
		if _, ok := items[opposite].(headerItem); !ok {
			l.Select(opposite)
			return
		}
	}
}

// navigationDirection returns 1 for down/j keys, -1 for up/k keys.
func navigationDirection(msg tea.KeyMsg) int {
	switch msg.String() {
	case "up", "k":
		return -1
	default:
		return 1
	}
}

// shortenPath keeps the last three components of a schema path.
func shortenPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}
