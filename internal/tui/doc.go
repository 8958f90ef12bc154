// Package tui provides terminal user interface components for schemacheck.
//
// This package uses the Bubble Tea framework for the results browser opened
// by "schemacheck browse".
//
// # Results Browser
//
// The browser lists every fixture outcome grouped by schema:
//
//	res, err := r.Run(ctx, cfg.SchemaDir, nil)
//	if err != nil {
//	    return err
//	}
//	return tui.RunBrowser(res)
//
// # Browser Features
//
//   - Outcomes grouped under one header per schema, headers auto-skipped
//   - Failing runs open filtered to failures; f toggles the filter
//   - Enter opens a detail view with the violation list
//   - / filters by schema or fixture name, q quits
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
