package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Accent    = lipgloss.Color("#60A5FA") // Blue
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree node styles
	NodeDocument = lipgloss.NewStyle().
			Bold(true)

	NodeSection = lipgloss.NewStyle().
			Foreground(Accent)

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeActive = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	MatchCount = lipgloss.NewStyle().
			Foreground(Warning)

	// Tree indicators
	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	// Panes
	Sidebar = lipgloss.NewStyle().
		Padding(0, 1, 0, 0)

	Content = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(Muted)

	ContentFocused = Content.
			BorderForeground(Primary)

	// Document rendering
	Heading1 = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Underline(true)

	Heading2 = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	Heading3 = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	ListBullet = lipgloss.NewStyle().
			Foreground(Primary).
			SetString("•")

	Link = lipgloss.NewStyle().
		Foreground(Accent).
		Underline(true)

	Placeholder = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Search
	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// Heading returns the style for a heading level
func Heading(level int) lipgloss.Style {
	switch level {
	case 1:
		return Heading1
	case 2:
		return Heading2
	default:
		return Heading3
	}
}
