// ABOUTME: Filterable single-choice list used for geographies and occupations
// ABOUTME: Typing narrows the list; the highlighted value is the current choice
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harper/wage-explorer/internal/query"
)

const defaultPickerHeight = 10

type picker struct {
	title    string
	values   []string
	filtered []string
	cursor   int
	height   int
	input    textinput.Model
}

func newPicker(title string, values []string, selected string) picker {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = "/ "
	input.CharLimit = 80

	p := picker{title: title, height: defaultPickerHeight, input: input}
	p.setValues(values, selected)
	return p
}

// setValues replaces the choices and clears the filter
func (p *picker) setValues(values []string, selected string) {
	p.values = values
	p.input.SetValue("")
	p.filtered = values
	p.cursor = query.IndexOf(p.filtered, selected)
}

func (p *picker) focus() tea.Cmd {
	return p.input.Focus()
}

func (p *picker) blur() {
	p.input.Blur()
}

// selected returns the highlighted value, or "" when the filter matches nothing
func (p picker) selected() string {
	if len(p.filtered) == 0 {
		return ""
	}
	return p.filtered[p.cursor]
}

func (p *picker) applyFilter() {
	current := p.selected()
	p.filtered = query.MatchValues(p.values, p.input.Value(), 0)
	p.cursor = query.IndexOf(p.filtered, current)
}

func (p *picker) move(delta int) {
	if len(p.filtered) == 0 {
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = len(p.filtered) - 1
	}
}

// update handles navigation and filter keys. It reports whether the
// highlighted value changed.
func (p picker) update(msg tea.KeyMsg) (picker, tea.Cmd, bool) {
	before := p.selected()

	switch msg.Type {
	case tea.KeyUp:
		p.move(-1)
	case tea.KeyDown:
		p.move(1)
	case tea.KeyPgUp:
		p.move(-p.height)
	case tea.KeyPgDown:
		p.move(p.height)
	case tea.KeyHome:
		p.move(-len(p.filtered))
	case tea.KeyEnd:
		p.move(len(p.filtered))
	case tea.KeyEsc:
		p.input.SetValue("")
		p.applyFilter()
	default:
		var cmd tea.Cmd
		value := p.input.Value()
		p.input, cmd = p.input.Update(msg)
		if p.input.Value() != value {
			p.applyFilter()
		}
		return p, cmd, p.selected() != before
	}

	return p, nil, p.selected() != before
}

func (p picker) view(focused bool, styles Styles) string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(p.title))
	sb.WriteString("\n")
	if focused {
		sb.WriteString(p.input.View())
		sb.WriteString("\n")
	}

	if len(p.filtered) == 0 {
		sb.WriteString(styles.Muted.Render("no matches"))
		return sb.String()
	}

	start := p.cursor - p.height/2
	if start > len(p.filtered)-p.height {
		start = len(p.filtered) - p.height
	}
	if start < 0 {
		start = 0
	}
	end := start + p.height
	if end > len(p.filtered) {
		end = len(p.filtered)
	}

	for i := start; i < end; i++ {
		line := "  " + p.filtered[i]
		if i == p.cursor {
			line = styles.Cursor.Render("> " + p.filtered[i])
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(p.filtered) > p.height {
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("%d of %d", p.cursor+1, len(p.filtered))))
	}

	return sb.String()
}
