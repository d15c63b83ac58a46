package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field describes one input line of a form.
type Field struct {
	Label       string
	Placeholder string
	Value       string // pre-filled value
	Width       int    // 0 means the default width
	CharLimit   int    // 0 means the default limit
	Numeric     bool   // must parse as a non-negative integer
	Optional    bool   // may be left empty
}

type formModel struct {
	title      string
	fields     []Field
	inputs     []textinput.Model
	focused    int
	err        error
	canceled   bool
	result     []string
	confirming bool
}

func newForm(title string, fields []Field) formModel {
	m := formModel{
		title:  title,
		fields: fields,
		inputs: make([]textinput.Model, len(fields)),
	}

	const defaultWidth = 42

	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.SetValue(f.Value)
		in.Prompt = "│ "
		in.Width = defaultWidth
		if f.Width > 0 {
			in.Width = f.Width
		}
		in.CharLimit = 200
		if f.CharLimit > 0 {
			in.CharLimit = f.CharLimit
		}
		if i == 0 {
			in.Focus()
		}
		m.inputs[i] = in
	}
	return m
}

func (m formModel) Init() tea.Cmd { return textinput.Blink }

func (m formModel) validate() ([]string, error) {
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		v := strings.TrimSpace(in.Value())
		if v == "" && !m.fields[i].Optional {
			return nil, fmt.Errorf("%s is required", m.fields[i].Label)
		}
		if v != "" && m.fields[i].Numeric {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%s must be a non-negative number", m.fields[i].Label)
			}
		}
		values[i] = v
	}
	return values, nil
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit

		case "enter":
			if m.confirming {
				values, err := m.validate()
				if err != nil {
					m.err = err
					m.confirming = false
					return m, nil
				}
				m.result = values
				return m, tea.Quit
			}
			// Enter moves on; on the last field it asks to submit.
			if m.focused < len(m.inputs)-1 {
				return m.focusField(m.focused + 1)
			}
			m.confirming = true
			return m, nil

		case "y", "Y":
			if m.confirming {
				values, err := m.validate()
				if err != nil {
					m.err = err
					m.confirming = false
					return m, nil
				}
				m.result = values
				return m, tea.Quit
			}

		case "n", "N":
			if m.confirming {
				m.canceled = true
				return m, tea.Quit
			}

		case "tab", "down":
			if m.confirming {
				return m, nil
			}
			return m.focusField((m.focused + 1) % len(m.inputs))

		case "shift+tab", "up":
			if m.confirming {
				return m, nil
			}
			return m.focusField((m.focused + len(m.inputs) - 1) % len(m.inputs))
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return m, tea.Batch(cmds...)
}

func (m formModel) focusField(idx int) (tea.Model, tea.Cmd) {
	m.focused = idx
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == idx {
			cmds[i] = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m formModel) View() string {
	outerStyle := lipgloss.NewStyle().Padding(2, 4)

	labelWidth := 10
	for _, f := range m.fields {
		if len(f.Label)+2 > labelWidth {
			labelWidth = len(f.Label) + 2
		}
	}
	formLabel := lipgloss.NewStyle().
		Foreground(ColorGray).
		Width(labelWidth).
		Align(lipgloss.Right).
		PaddingRight(1)
	formLabelActive := lipgloss.NewStyle().
		Foreground(ColorYellow).
		Bold(true).
		Width(labelWidth).
		Align(lipgloss.Right).
		PaddingRight(1)

	const w = 54
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#444444"})
	sep := sepStyle.Render(strings.Repeat("─", w))

	var b strings.Builder

	b.WriteString(StyleHeader.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(sep)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	for i, f := range m.fields {
		if i == m.focused && !m.confirming {
			b.WriteString(formLabelActive.Render("› " + f.Label))
		} else {
			b.WriteString(formLabel.Render(f.Label))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(sep)
	b.WriteString("\n")

	if m.confirming {
		b.WriteString(StyleHighlight.Render("  Save? "))
		b.WriteString(StyleHelp.Render("Y/n"))
	} else {
		b.WriteString(StyleHelp.Render("  tab/↑↓ navigate · enter next/submit · esc cancel"))
	}
	b.WriteString("\n")

	innerPadding := lipgloss.NewStyle().Padding(0, 2, 0, 1)
	return outerStyle.Render(StyleBorder.Render(innerPadding.Render(b.String())))
}

// RunForm launches an interactive form and returns the trimmed field values
// in field order. Backing out returns ErrCanceled.
func RunForm(title string, fields []Field) ([]string, error) {
	p := tea.NewProgram(newForm(title, fields), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running form: %w", err)
	}

	fm, ok := finalModel.(formModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if fm.canceled {
		return nil, ErrCanceled
	}
	if fm.result == nil {
		return nil, ErrCanceled
	}
	return fm.result, nil
}
