package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// MenuItem is one action in the menu hub.
type MenuItem struct {
	Key   string
	Title string
	Desc  string
}

func (i MenuItem) FilterValue() string { return i.Title }

type menuKeys struct {
	quit       key.Binding
	selectItem key.Binding
}

var menuKeyMap = menuKeys{
	quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	selectItem: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
}

type menuDelegate struct{}

func (d menuDelegate) Height() int                         { return 1 }
func (d menuDelegate) Spacing() int                        { return 0 }
func (d menuDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d menuDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MenuItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%2d. %s", index+1, mi.Title)
	if index == m.Index() {
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+line))
		if mi.Desc != "" {
			_, _ = fmt.Fprint(w, "  "+StyleHelp.Render(mi.Desc))
		}
		return
	}
	_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(line))
}

type menuModel struct {
	list     list.Model
	choice   string
	canceled bool
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				m.choice = item.Key
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

func (m menuModel) View() string { return m.list.View() }

// RunMenu shows the numbered action menu and returns the chosen item's key.
// Quitting the menu returns ErrCanceled.
func RunMenu(title string, items []MenuItem) (string, error) {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, menuDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = StyleHeader
	l.Styles.HelpStyle = StyleHelp
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{menuKeyMap.selectItem}
	}

	p := tea.NewProgram(menuModel{list: l}, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running menu: %w", err)
	}

	mm, ok := finalModel.(menuModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if mm.canceled || mm.choice == "" {
		return "", ErrCanceled
	}
	return mm.choice, nil
}
