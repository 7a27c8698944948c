package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mdshelf/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("mdshelf Help").
		Subtitle("Markdown document browser")

	v.Section("Files pane")
	v.Raw(helpLine("j / k / ↑ / ↓", "Move up/down"))
	v.Raw(helpLine("h / ←", "Collapse / go to file"))
	v.Raw(helpLine("l / →", "Expand sections"))
	v.Raw(helpLine("Enter", "Toggle sections or show file"))
	v.Raw(helpLine("v", "Show the whole file"))
	v.Raw(helpLine("Ctrl+F / Ctrl+B", "Next / previous page"))
	v.BlankLine()

	v.Section("Content pane")
	v.Raw(helpLine("j / k / PgDn / PgUp", "Scroll"))
	v.Raw(helpLine("y", "Copy the displayed markdown"))
	v.Raw(helpLine("o", "Open the first link in view"))
	v.BlankLine()

	v.Section("General")
	v.Raw(helpLine("/", "Search (esc or enter when done)"))
	v.Raw(helpLine("Tab", "Switch pane"))
	v.Raw(helpLine("?", "Toggle help"))
	v.Raw(helpLine("q / Ctrl+C", "Quit"))
	v.BlankLine()

	v.Help(HelpKeys.Close)
	return v.String()
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 22)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
