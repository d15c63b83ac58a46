package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Option is one selectable record in a picker.
type Option struct {
	ID     int
	Label  string
	Detail string
}

func (o Option) FilterValue() string { return o.Label }

type pickerDelegate struct{}

func (d pickerDelegate) Height() int                         { return 1 }
func (d pickerDelegate) Spacing() int                        { return 0 }
func (d pickerDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d pickerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	opt, ok := item.(Option)
	if !ok {
		return
	}
	idStr := fmt.Sprintf("[%d]", opt.ID)
	detail := ""
	if opt.Detail != "" {
		detail = " " + StyleHelp.Render(opt.Detail)
	}
	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+idStr+" "+opt.Label)+detail)
		return
	}
	_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(idStr)+" "+opt.Label+detail)
}

type pickerModel struct {
	list     list.Model
	selected *Option
	canceled bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, menuKeyMap.quit):
			m.canceled = true
			return m, tea.Quit
		case key.Matches(msg, menuKeyMap.selectItem):
			if opt, ok := m.list.SelectedItem().(Option); ok {
				m.selected = &opt
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string { return m.list.View() }

// RunPicker launches an interactive picker over the given options. Backing
// out returns ErrCanceled.
func RunPicker(title string, options []Option) (Option, error) {
	if len(options) == 0 {
		return Option{}, fmt.Errorf("nothing to pick from")
	}

	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = o
	}

	l := list.New(items, pickerDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{menuKeyMap.selectItem}
	}

	p := tea.NewProgram(pickerModel{list: l}, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return Option{}, fmt.Errorf("running picker: %w", err)
	}

	pm, ok := finalModel.(pickerModel)
	if !ok {
		return Option{}, fmt.Errorf("unexpected model type")
	}
	if pm.canceled || pm.selected == nil {
		return Option{}, ErrCanceled
	}
	return *pm.selected, nil
}
