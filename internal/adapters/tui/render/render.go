// Package render turns display nodes into terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"mdshelf/internal/adapters/tui/styles"
	"mdshelf/internal/domain"
)

// Styled renders nodes with the theme. Links become OSC 8 hyperlinks so
// terminals that support them make the label clickable. A positive width
// wraps long lines.
func Styled(nodes []domain.DisplayNode, width int) string {
	lines := make([]string, 0, len(nodes))
	for _, node := range nodes {
		lines = append(lines, styledNode(node, width))
	}
	return strings.Join(lines, "\n")
}

func styledNode(node domain.DisplayNode, width int) string {
	text := StyledFragments(node.Fragments)

	var line string
	switch node.Kind {
	case domain.NodeHeading:
		line = styles.Heading(node.Level).Render(text)
	case domain.NodeListItem:
		bullet := styles.ListBullet.String() + " "
		if width > 2 {
			// Hang wrapped lines under the item text
			body := lipgloss.NewStyle().Width(width - 2).Render(text)
			return lipgloss.JoinHorizontal(lipgloss.Top, bullet, body)
		}
		line = bullet + text
	case domain.NodeSpacer:
		return ""
	default:
		line = text
	}

	if width > 0 {
		return lipgloss.NewStyle().Width(width).Render(line)
	}
	return line
}

// StyledFragments renders inline fragments: highlights use the search
// style and links are wrapped in hyperlink escapes
func StyledFragments(fragments []domain.Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		switch f.Kind {
		case domain.FragmentHighlight:
			b.WriteString(styles.SearchMatch.Render(f.Text))
		case domain.FragmentLink:
			b.WriteString(ansi.SetHyperlink(f.URL))
			b.WriteString(styles.Link.Render(f.Text))
			b.WriteString(ansi.ResetHyperlink())
		default:
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// Plain renders nodes without escape sequences: headings and list items keep
// their markers, links are written as "label <url>" and matches as [[match]].
// A positive width wraps long lines at word boundaries.
func Plain(nodes []domain.DisplayNode, width int) string {
	lines := make([]string, 0, len(nodes))
	for _, node := range nodes {
		var line string
		text := PlainFragments(node.Fragments)
		switch node.Kind {
		case domain.NodeHeading:
			line = strings.Repeat("#", node.Level) + " " + text
		case domain.NodeListItem:
			line = "- " + text
		case domain.NodeSpacer:
			line = ""
		default:
			line = text
		}
		if width > 0 {
			line = wordwrap.String(line, width)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// PlainFragments renders inline fragments as plain text
func PlainFragments(fragments []domain.Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		switch f.Kind {
		case domain.FragmentHighlight:
			fmt.Fprintf(&b, "[[%s]]", f.Text)
		case domain.FragmentLink:
			fmt.Fprintf(&b, "%s <%s>", f.Text, f.URL)
		default:
			b.WriteString(f.Text)
		}
	}
	return b.String()
}

// Title renders a sidebar title with query matches highlighted
func Title(title, query string, base lipgloss.Style) string {
	var b strings.Builder
	for _, f := range domain.NewMatcher(query).Split(title) {
		if f.Kind == domain.FragmentHighlight {
			b.WriteString(styles.SearchMatch.Render(f.Text))
			continue
		}
		b.WriteString(base.Render(f.Text))
	}
	return b.String()
}

// Placeholder renders the text shown when nothing is selected
func Placeholder() string {
	return styles.Placeholder.Render(domain.Placeholder)
}
