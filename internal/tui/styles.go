// ABOUTME: Lipgloss styles for the terminal dashboard
// ABOUTME: One palette shared by the level tabs, pickers and result panel
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#8BC34A")
	border  = lipgloss.Color("#2a3850")
	muted   = lipgloss.Color("#6b7280")
	warning = lipgloss.Color("#FFC107")
)

// Styles holds the rendered styles of every dashboard element
type Styles struct {
	Header      lipgloss.Style
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Panel       lipgloss.Style
	ActivePanel lipgloss.Style
	Cursor      lipgloss.Style
	Muted       lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
}

// DefaultStyles returns the dashboard styles
func DefaultStyles() Styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(primary),
		Title:       lipgloss.NewStyle().Bold(true),
		Tab:         lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		ActiveTab:   lipgloss.NewStyle().Foreground(primary).Bold(true).Underline(true).Padding(0, 1),
		Panel:       panel,
		ActivePanel: panel.BorderForeground(primary),
		Cursor:      lipgloss.NewStyle().Foreground(primary).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(muted),
		Warning:     lipgloss.NewStyle().Foreground(warning),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
	}
}
