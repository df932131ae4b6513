// ABOUTME: Bubbletea model for the terminal wage dashboard
// ABOUTME: Level tabs, geography and occupation pickers, and a live result panel
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/harper/wage-explorer/internal/dataset"
	"github.com/harper/wage-explorer/internal/models"
	"github.com/harper/wage-explorer/internal/query"
)

type pane int

const (
	paneLevel pane = iota
	paneGeography
	paneOccupation
)

// Model is the dashboard state. Selections live only in memory.
type Model struct {
	table *dataset.Table
	kinds []models.GeographyKind

	sel    models.Selection
	result models.QueryResult
	err    error

	focus      pane
	geography  picker
	occupation picker

	width  int
	height int
	styles Styles
}

// New builds a dashboard over t with the default selection
func New(t *dataset.Table) Model {
	sel := query.ResolveSelection(t, nil)

	m := Model{
		table:      t,
		kinds:      models.GeographyKinds(),
		sel:        sel,
		focus:      paneLevel,
		geography:  newPicker("Geography", query.GeographyOptions(t, sel.Kind), sel.Geography),
		occupation: newPicker("Occupation", query.Occupations(t), sel.Occupation),
		styles:     DefaultStyles(),
	}
	m.refresh()
	return m
}

// Run starts the dashboard full-screen until the user quits or ctx ends
func Run(ctx context.Context, t *dataset.Table) error {
	p := tea.NewProgram(New(t), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// Selection returns the current selection
func (m Model) Selection() models.Selection {
	return m.sel
}

// Result returns the result for the current selection
func (m Model) Result() models.QueryResult {
	return m.result
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := msg.Height - 12
		if rows < 3 {
			rows = 3
		}
		m.geography.height = rows
		m.occupation.height = rows
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyTab:
			cmd := m.cycleFocus(1)
			return m, cmd
		case tea.KeyShiftTab:
			cmd := m.cycleFocus(-1)
			return m, cmd
		}

		switch m.focus {
		case paneLevel:
			return m.updateLevel(msg)
		case paneGeography:
			var cmd tea.Cmd
			var changed bool
			m.geography, cmd, changed = m.geography.update(msg)
			if changed && m.geography.selected() != "" {
				m.sel.Geography = m.geography.selected()
				m.refresh()
			}
			return m, cmd
		case paneOccupation:
			var cmd tea.Cmd
			var changed bool
			m.occupation, cmd, changed = m.occupation.update(msg)
			if changed && m.occupation.selected() != "" {
				m.sel.Occupation = m.occupation.selected()
				m.refresh()
			}
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) updateLevel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		m.setKind(m.kindIndex() - 1)
	case "right", "l":
		m.setKind(m.kindIndex() + 1)
	case "enter", "down", "j":
		cmd := m.cycleFocus(1)
		return m, cmd
	}
	return m, nil
}

func (m Model) kindIndex() int {
	for i, k := range m.kinds {
		if k == m.sel.Kind {
			return i
		}
	}
	return 0
}

// setKind switches the level, wrapping around, and resets the geography
// to the first value of the new level.
func (m *Model) setKind(i int) {
	n := len(m.kinds)
	kind := m.kinds[((i%n)+n)%n]
	if kind == m.sel.Kind {
		return
	}

	m.sel.Kind = kind
	options := query.GeographyOptions(m.table, kind)
	m.sel.Geography = ""
	if len(options) > 0 {
		m.sel.Geography = options[0]
	}
	m.geography.setValues(options, m.sel.Geography)
	m.refresh()
}

// cycleFocus moves focus forward or back, skipping the geography picker
// for National.
func (m *Model) cycleFocus(delta int) tea.Cmd {
	m.geography.blur()
	m.occupation.blur()

	panes := []pane{paneLevel, paneGeography, paneOccupation}
	if m.sel.Kind == models.National {
		panes = []pane{paneLevel, paneOccupation}
	}

	idx := 0
	for i, p := range panes {
		if p == m.focus {
			idx = i
		}
	}
	m.focus = panes[((idx+delta)%len(panes)+len(panes))%len(panes)]

	switch m.focus {
	case paneGeography:
		return m.geography.focus()
	case paneOccupation:
		return m.occupation.focus()
	}
	return nil
}

func (m *Model) refresh() {
	m.result, m.err = query.Query(m.table, m.sel.Occupation, m.sel.Kind, m.sel.Geography)
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Wage Percentiles Explorer"))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	left := []string{}
	if m.sel.Kind != models.National {
		left = append(left, m.panel(paneGeography, m.geography.view(m.focus == paneGeography, m.styles)))
	}
	left = append(left, m.panel(paneOccupation, m.occupation.view(m.focus == paneOccupation, m.styles)))

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, left...),
		"  ",
		m.renderResult(),
	))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("tab: next pane • ←/→: level • ↑/↓: choose • type to filter • esc: clear/quit • ctrl+c: quit"))

	return sb.String()
}

func (m Model) panel(p pane, content string) string {
	style := m.styles.Panel
	if m.focus == p {
		style = m.styles.ActivePanel
	}
	return style.Render(content)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.kinds))
	for _, k := range m.kinds {
		style := m.styles.Tab
		if k == m.sel.Kind {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(k.String()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return m.panel(paneLevel, row)
}

func (m Model) renderResult() string {
	var sb strings.Builder

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
		return m.styles.Panel.Render(sb.String())
	}

	sb.WriteString(m.styles.Title.Render(m.sel.Title()))
	sb.WriteString("\n\n")

	if !m.result.Found {
		sb.WriteString(m.styles.Warning.Render(models.NoDataMessage))
		return m.styles.Panel.Render(sb.String())
	}

	summary := m.result.Summary

	wages := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers("Percentile", "Hourly", "Annual")
	for _, row := range summary.Percentiles {
		wages.Row(row.Percentile, row.Hourly, row.Annual)
	}

	metrics := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers("Metric", "Value")
	for _, row := range summary.Metrics {
		metrics.Row(row.Metric, row.Value)
	}

	sb.WriteString("Wage Percentiles\n")
	sb.WriteString(wages.String())
	sb.WriteString("\n\nAdditional Information\n")
	sb.WriteString(metrics.String())

	if m.result.Duplicated() {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d rows matched; showing the first in dataset order", summary.Matches)))
	}

	return m.styles.Panel.Render(sb.String())
}
