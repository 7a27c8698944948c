package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"mdshelf/internal/domain"
)

func TestPlain(t *testing.T) {
	text := "# Guide\n\n- see [docs](https://docs.test)\nRun the setup step\n### Notes"
	got := Plain(domain.RenderBlock(text, "setup"), 0)

	want := strings.Join([]string{
		"# Guide",
		"",
		"- see docs <https://docs.test>",
		"Run the [[setup]] step",
		"### Notes",
	}, "\n")
	if got != want {
		t.Errorf("Plain()\n got %q\nwant %q", got, want)
	}
}

func TestPlain_Wraps(t *testing.T) {
	nodes := domain.RenderBlock("one two three four five six", "")
	got := Plain(nodes, 10)

	for _, line := range strings.Split(got, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width 10", line)
		}
	}
	if !strings.Contains(got, "\n") {
		t.Error("expected the paragraph to wrap")
	}
}

func TestStyled(t *testing.T) {
	nodes := domain.RenderBlock("## Usage\n- open [docs](https://docs.test)\n\nplain", "")
	out := Styled(nodes, 0)

	if !strings.Contains(out, ansi.SetHyperlink("https://docs.test")) {
		t.Error("expected an OSC 8 hyperlink for the link fragment")
	}

	lines := strings.Split(ansi.Strip(out), "\n")
	want := []string{"Usage", "• open docs", "", "plain"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), lines)
	}
	for i := range want {
		if strings.TrimRight(lines[i], " ") != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestStyledFragments_KeepsText(t *testing.T) {
	frags := domain.Inline("find the needle, the NEEDLE", "needle")
	if got := ansi.Strip(StyledFragments(frags)); got != "find the needle, the NEEDLE" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestTitle(t *testing.T) {
	got := ansi.Strip(Title("Getting Started", "start", lipgloss.NewStyle()))
	if got != "Getting Started" {
		t.Errorf("expected title text to survive highlighting, got %q", got)
	}
}

func TestPlaceholder(t *testing.T) {
	if got := ansi.Strip(Placeholder()); got != domain.Placeholder {
		t.Errorf("expected %q, got %q", domain.Placeholder, got)
	}
}
