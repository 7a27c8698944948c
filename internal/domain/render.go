package domain

import (
	"regexp"
	"strings"
)

// NodeKind classifies a rendered line
type NodeKind int

const (
	NodeParagraph NodeKind = iota
	NodeHeading
	NodeListItem
	NodeSpacer
)

func (k NodeKind) String() string {
	switch k {
	case NodeHeading:
		return "heading"
	case NodeListItem:
		return "list-item"
	case NodeSpacer:
		return "spacer"
	default:
		return "paragraph"
	}
}

// FragmentKind classifies a unit of inline text
type FragmentKind int

const (
	FragmentPlain FragmentKind = iota
	FragmentHighlight
	FragmentLink
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentHighlight:
		return "highlight"
	case FragmentLink:
		return "link"
	default:
		return "plain"
	}
}

// Fragment is a unit of inline content. For links Text is the label.
type Fragment struct {
	Kind FragmentKind
	Text string
	URL  string
}

// Plain returns a plain-text fragment
func Plain(text string) Fragment {
	return Fragment{Kind: FragmentPlain, Text: text}
}

// Highlighted returns a highlighted search match fragment
func Highlighted(text string) Fragment {
	return Fragment{Kind: FragmentHighlight, Text: text}
}

// Link returns a link fragment
func Link(label, url string) Fragment {
	return Fragment{Kind: FragmentLink, Text: label, URL: url}
}

// DisplayNode is one rendered source line
type DisplayNode struct {
	Kind      NodeKind
	Level     int // heading level 1..3, zero otherwise
	Fragments []Fragment
}

// Text returns the node's visible text with link labels inlined
func (n DisplayNode) Text() string {
	var b strings.Builder
	for _, f := range n.Fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}

// linkPattern matches inline markdown links: [label](url)
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// lineRule maps a line prefix to a node kind. Rules are checked in order.
type lineRule struct {
	prefix string
	kind   NodeKind
	level  int
}

var lineRules = []lineRule{
	{prefix: "# ", kind: NodeHeading, level: 1},
	{prefix: "## ", kind: NodeHeading, level: 2},
	{prefix: "### ", kind: NodeHeading, level: 3},
	{prefix: "- ", kind: NodeListItem},
}

// RenderBlock turns a block of markdown text into one display node per line.
// Only headings up to level 3, "- " list items, blank lines and paragraphs are
// recognised; every line is rendered independently.
func RenderBlock(text, query string) []DisplayNode {
	lines := strings.Split(text, "\n")
	nodes := make([]DisplayNode, 0, len(lines))
	for _, line := range lines {
		nodes = append(nodes, RenderLine(line, query))
	}
	return nodes
}

// RenderLine classifies a single line and runs its inline pipeline
func RenderLine(line, query string) DisplayNode {
	for _, rule := range lineRules {
		if strings.HasPrefix(line, rule.prefix) {
			return DisplayNode{
				Kind:      rule.kind,
				Level:     rule.level,
				Fragments: Inline(line[len(rule.prefix):], query),
			}
		}
	}

	if strings.TrimSpace(line) == "" {
		return DisplayNode{Kind: NodeSpacer}
	}

	return DisplayNode{Kind: NodeParagraph, Fragments: Inline(line, query)}
}

// Inline extracts links from text and highlights query matches in the
// remaining plain runs
func Inline(text, query string) []Fragment {
	return Highlight(ExtractLinks(text), query)
}

// ExtractLinks splits text into plain runs and link fragments, in order.
// Text without links yields a single plain fragment.
func ExtractLinks(text string) []Fragment {
	matches := linkPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Fragment{Plain(text)}
	}

	fragments := make([]Fragment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			fragments = append(fragments, Plain(text[last:m[0]]))
		}
		fragments = append(fragments, Link(text[m[2]:m[3]], text[m[4]:m[5]]))
		last = m[1]
	}
	if last < len(text) {
		fragments = append(fragments, Plain(text[last:]))
	}
	return fragments
}

// Highlight marks case-insensitive literal matches of query inside plain
// fragments. Link fragments pass through untouched, so a match can never
// span a link boundary.
func Highlight(fragments []Fragment, query string) []Fragment {
	matcher := NewMatcher(query)
	if matcher == nil {
		return fragments
	}

	out := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		if f.Kind != FragmentPlain {
			out = append(out, f)
			continue
		}
		out = append(out, matcher.Split(f.Text)...)
	}
	return out
}

// Matcher finds case-insensitive literal occurrences of a query
type Matcher struct {
	re    *regexp.Regexp
	query string // set when the query is not valid UTF-8 and cannot compile
}

// NewMatcher returns a matcher for query, or nil when query is empty.
// The query is always treated as literal text.
func NewMatcher(query string) *Matcher {
	if query == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return &Matcher{query: query}
	}
	return &Matcher{re: re}
}

// find returns the byte ranges of non-overlapping matches in text
func (m *Matcher) find(text string) [][]int {
	if m.re != nil {
		return m.re.FindAllStringIndex(text, -1)
	}

	// Byte scan folding ASCII case only
	var matches [][]int
	n := len(m.query)
	for i := 0; i+n <= len(text); {
		if asciiEqualFold(text[i:i+n], m.query) {
			matches = append(matches, []int{i, i + n})
			i += n
			continue
		}
		i++
	}
	return matches
}

func asciiEqualFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// Count returns the number of non-overlapping matches in text
func (m *Matcher) Count(text string) int {
	if m == nil {
		return 0
	}
	return len(m.find(text))
}

// Contains reports whether text contains at least one match
func (m *Matcher) Contains(text string) bool {
	if m == nil {
		return true
	}
	if m.re != nil {
		return m.re.MatchString(text)
	}
	return len(m.find(text)) > 0
}

// Split cuts text into alternating plain and highlighted fragments.
// Text without matches comes back as a single plain fragment.
func (m *Matcher) Split(text string) []Fragment {
	if m == nil {
		return []Fragment{Plain(text)}
	}

	matches := m.find(text)
	if len(matches) == 0 {
		return []Fragment{Plain(text)}
	}

	fragments := make([]Fragment, 0, 2*len(matches)+1)
	last := 0
	for _, loc := range matches {
		if loc[0] > last {
			fragments = append(fragments, Plain(text[last:loc[0]]))
		}
		fragments = append(fragments, Highlighted(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		fragments = append(fragments, Plain(text[last:]))
	}
	return fragments
}
