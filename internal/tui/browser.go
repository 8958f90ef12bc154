// Package tui provides the interactive results browser for schemacheck
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abordage/schemas/internal/runner"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// Model is the bubbletea model for the results browser
type Model struct {
	list         list.Model
	res          *runner.Result
	failuresOnly bool
	detail       *resultItem
	quitting     bool
	width        int
	height       int
}

// NewBrowser creates a browser over a finished run. Failing runs open with
// only the failures shown.
func NewBrowser(res *runner.Result) Model {
	failuresOnly := res != nil && res.Failed()
	items := buildItems(res, failuresOnly)

	l := list.New(items, newGroupedDelegate(), 80, 20)
	l.Title = title(res)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	m := Model{
		list:         l,
		res:          res,
		failuresOnly: failuresOnly,
	}
	skipHeaders(&m.list, 1)
	return m
}

func title(res *runner.Result) string {
	if res == nil {
		return "schemacheck"
	}
	s := res.Summary
	return fmt.Sprintf("schemacheck - %d schemas, %d fixtures, %d failure(s)", s.Schemas, s.Fixtures, s.Failures())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.detail != nil {
			switch msg.String() {
			case "q", "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			case "esc", "enter", "backspace":
				m.detail = nil
			}
			return m, nil
		}

		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(resultItem); ok {
				m.detail = &item
			}
			return m, nil

		case "f":
			m.failuresOnly = !m.failuresOnly
			cmd := m.list.SetItems(buildItems(m.res, m.failuresOnly))
			m.list.Select(0)
			skipHeaders(&m.list, 1)
			return m, cmd

		case "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		skipHeaders(&m.list, navigationDirection(msg))
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.detail != nil {
		return m.detailView() + "\n" + helpStyle.Render("[esc] Back  [q] Quit")
	}

	if len(m.list.Items()) == 0 {
		msg := "No schemas found."
		if m.failuresOnly {
			msg = "No failures."
		}
		return titleStyle.Render(m.list.Title) + "\n" + msg + "\n" +
			helpStyle.Render("[f] Toggle failures  [q] Quit")
	}

	help := helpStyle.Render("[enter] Details  [f] Toggle failures  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

func (m Model) detailView() string {
	item := m.detail
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(item.schema.Name) + "\n")
	fmt.Fprintf(&sb, "Schema:   %s\n", item.schema.Path)

	if item.outcome == nil {
		sb.WriteString(failStyle.Render("FAIL") + "\n\n")
		sb.WriteString(item.problem + "\n")
		return sb.String()
	}

	o := item.outcome
	fmt.Fprintf(&sb, "Fixture:  %s\n", o.Fixture.Path)
	fmt.Fprintf(&sb, "Polarity: %s\n", o.Fixture.Polarity)
	fmt.Fprintf(&sb, "Outcome:  %s\n", o.Kind)
	if o.Passed() {
		sb.WriteString(passStyle.Render("PASS") + "\n")
	} else {
		sb.WriteString(failStyle.Render("FAIL") + "\n")
	}
	sb.WriteString("\n" + o.Describe() + "\n")

	if o.Message != "" {
		sb.WriteString("\n" + o.Message + "\n")
	}
	if len(o.Violations) > 0 {
		sb.WriteString("\nViolations:\n")
		for _, v := range o.Violations {
			sb.WriteString("  - " + v.String() + "\n")
		}
	}
	return sb.String()
}

// Detail returns the item shown in the detail view as a title, or "".
func (m Model) Detail() string {
	if m.detail == nil {
		return ""
	}
	return m.detail.Title()
}

// RunBrowser runs the interactive results browser
func RunBrowser(res *runner.Result) error {
	p := tea.NewProgram(NewBrowser(res), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
