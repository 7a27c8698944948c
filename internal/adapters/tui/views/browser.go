package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"mdshelf/internal/adapters/tui/render"
	"mdshelf/internal/adapters/tui/styles"
	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Whole    key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Focus    key.Binding
	Search   key.Binding
	Done     key.Binding
	Copy     key.Binding
	Open     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/select"),
	),
	Whole: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "whole file"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch pane"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Done: key.NewBinding(
		key.WithKeys("esc", "enter"),
		key.WithHelp("esc", "done"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open link"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Rows taken by the sidebar header, search line, spacer and page indicator
const sidebarChrome = 4

// BrowserModel is the two-pane document browser: a filtered navigation tree
// on the left and the rendered selection on the right.
type BrowserModel struct {
	ViewState

	docs     []domain.Document
	opener   ports.LinkOpener
	logger   *zap.Logger
	sel      domain.Selection
	expanded map[int]bool

	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	pager     *Paginator

	search  textinput.Model
	content viewport.Model
	nodes   []domain.DisplayNode
	focus   Focus
}

// NewBrowserModel creates a browser over docs. opener may be nil, in which
// case links cannot be opened from the TUI.
func NewBrowserModel(docs []domain.Document, opener ports.LinkOpener, logger *zap.Logger) *BrowserModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search..."

	m := &BrowserModel{
		docs:     docs,
		opener:   opener,
		logger:   logger,
		sel:      domain.NewSelection(),
		expanded: make(map[int]bool),
		pager:    NewPaginator(10),
		search:   input,
		content:  viewport.New(40, 10),
	}
	m.rebuildTree()
	m.refreshContent(true)
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case statusMsg:
		m.SetMessage(msg.text, msg.err)
		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m, m.updateSearch(msg)
		}
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	if m.focus == FocusContent {
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BrowserModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit
	case key.Matches(msg, BrowserKeys.Done):
		m.search.Blur()
		m.focus = FocusSidebar
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.sel.Query {
		m.applyQuery(q)
	}
	return cmd
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, BrowserKeys.Search):
		m.focus = FocusSearch
		return m.search.Focus()

	case key.Matches(msg, BrowserKeys.Focus):
		if m.focus == FocusContent {
			m.focus = FocusSidebar
		} else {
			m.focus = FocusContent
		}
		return nil

	case key.Matches(msg, BrowserKeys.Copy):
		return m.copyContent()

	case key.Matches(msg, BrowserKeys.Open):
		return m.openFirstLink()
	}

	if m.focus == FocusContent {
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, BrowserKeys.NextPage):
		m.pager.NextPage()

	case key.Matches(msg, BrowserKeys.PrevPage):
		m.pager.PrevPage()

	case key.Matches(msg, BrowserKeys.Left):
		node := m.selectedNode()
		if node == nil {
			return nil
		}
		if node.Type == domain.TreeDocument && node.IsExpanded {
			m.setExpanded(node.File, false)
		} else if node.Type == domain.TreeSection {
			m.moveCursorTo(node.File, domain.NoSelection)
		}

	case key.Matches(msg, BrowserKeys.Right):
		if node := m.selectedNode(); node != nil && node.Type == domain.TreeDocument && node.HasChildren() {
			m.setExpanded(node.File, true)
		}

	case key.Matches(msg, BrowserKeys.Enter):
		if node := m.selectedNode(); node != nil {
			m.activate(node)
		}

	case key.Matches(msg, BrowserKeys.Whole):
		if node := m.selectedNode(); node != nil {
			m.selectWhole(node.File)
		}
	}
	return nil
}

// activate applies the sidebar click rules: a document with sections toggles,
// a document without sections is shown whole, a section is shown alone.
func (m *BrowserModel) activate(node *domain.TreeNode) {
	switch node.Type {
	case domain.TreeDocument:
		if node.HasChildren() {
			m.setExpanded(node.File, !node.IsExpanded)
			return
		}
		m.selectWhole(node.File)
	case domain.TreeSection:
		m.sel = m.sel.SelectSection(node.File, node.Section)
		m.refreshContent(true)
	}
}

func (m *BrowserModel) selectWhole(file int) {
	m.sel = m.sel.SelectDocument(file)
	m.refreshContent(true)
}

func (m *BrowserModel) setExpanded(file int, expanded bool) {
	if expanded {
		m.expanded[file] = true
	} else {
		delete(m.expanded, file)
	}
	m.rebuildTree()
}

func (m *BrowserModel) applyQuery(query string) {
	m.sel = m.sel.WithQuery(query)
	m.rebuildTree()
	m.refreshContent(false)
}

// rebuildTree rebuilds the sidebar for the current query and expansion state,
// keeping the cursor on the same node when it is still visible
func (m *BrowserModel) rebuildTree() {
	file, section := domain.NoSelection, domain.NoSelection
	if node := m.selectedNode(); node != nil {
		file, section = node.File, node.Section
	}

	visible := domain.FilterDocuments(m.docs, m.sel.Query)
	m.root = domain.BuildTree(m.docs, visible, m.expanded, m.sel.Query)
	m.flatNodes = m.root.Flatten()[1:]
	m.pager.SetTotal(len(m.flatNodes))

	if file != domain.NoSelection {
		m.moveCursorTo(file, section)
	}
}

func (m *BrowserModel) moveCursorTo(file, section int) {
	for i, n := range m.flatNodes {
		if n.File == file && n.Section == section {
			m.pager.SetCursor(i)
			return
		}
	}
}

func (m *BrowserModel) refreshContent(resetScroll bool) {
	_, nodes, ok := m.sel.Render(m.docs)
	m.nodes = nodes
	if !ok {
		m.content.SetContent(render.Placeholder())
	} else {
		m.content.SetContent(render.Styled(nodes, m.content.Width))
	}
	if resetScroll {
		m.content.GotoTop()
	}
}

func (m *BrowserModel) selectedNode() *domain.TreeNode {
	cursor := m.pager.Cursor()
	if cursor >= 0 && cursor < len(m.flatNodes) {
		return m.flatNodes[cursor]
	}
	return nil
}

func (m *BrowserModel) copyContent() tea.Cmd {
	view, ok := m.sel.Content(m.docs)
	if !ok {
		m.SetMessage("Nothing selected to copy", true)
		return nil
	}
	text := view.Text
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: "Copy failed: " + err.Error(), err: true}
		}
		return statusMsg{text: fmt.Sprintf("Copied %q", view.Title)}
	}
}

// FirstLink returns the first link in the displayed content
func (m *BrowserModel) FirstLink() (domain.Fragment, bool) {
	for _, node := range m.nodes {
		for _, f := range node.Fragments {
			if f.Kind == domain.FragmentLink {
				return f, true
			}
		}
	}
	return domain.Fragment{}, false
}

func (m *BrowserModel) openFirstLink() tea.Cmd {
	link, ok := m.FirstLink()
	if !ok {
		m.SetMessage("No link in view", true)
		return nil
	}
	if m.opener == nil {
		m.SetMessage(link.URL, false)
		return nil
	}

	opener, logger := m.opener, m.logger
	return func() tea.Msg {
		if err := opener.Open(link.URL); err != nil {
			logger.Warn("open link failed", zap.String("url", link.URL), zap.Error(err))
			return statusMsg{text: err.Error(), err: true}
		}
		return statusMsg{text: "Opened " + link.URL}
	}
}

// SetDocuments replaces the collection after a reload. The selection,
// expansion state and query survive when their documents still exist.
func (m *BrowserModel) SetDocuments(docs []domain.Document) {
	var selected string
	if m.sel.File >= 0 && m.sel.File < len(m.docs) {
		selected = m.docs[m.sel.File].FileName
	}
	expandedNames := make(map[string]bool, len(m.expanded))
	for i := range m.expanded {
		if i < len(m.docs) {
			expandedNames[m.docs[i].FileName] = true
		}
	}

	m.docs = docs
	m.expanded = make(map[int]bool, len(expandedNames))
	sel := domain.NewSelection().WithQuery(m.sel.Query)
	for i, doc := range docs {
		if expandedNames[doc.FileName] {
			m.expanded[i] = true
		}
		if doc.FileName == selected {
			if _, ok := doc.Section(m.sel.Section); ok {
				sel = sel.SelectSection(i, m.sel.Section)
			} else {
				sel = sel.SelectDocument(i)
			}
		}
	}
	m.sel = sel

	m.rebuildTree()
	m.refreshContent(false)
	m.logger.Debug("documents replaced", zap.Int("count", len(docs)))
}

// Selection returns the current view state
func (m *BrowserModel) Selection() domain.Selection {
	return m.sel
}

// Focused returns the pane that receives key input
func (m *BrowserModel) Focused() Focus {
	return m.focus
}

// VisibleNodes returns the sidebar rows, excluding the root
func (m *BrowserModel) VisibleNodes() []*domain.TreeNode {
	return m.flatNodes
}

// Cursor returns the sidebar cursor position
func (m *BrowserModel) Cursor() int {
	return m.pager.Cursor()
}

func (m *BrowserModel) paneWidths() (left, right int) {
	left = m.Width * 40 / 100
	if left < 24 {
		left = 24
	}
	right = m.Width - left - 4
	if right < 20 {
		right = 20
	}
	return left, right
}

// SetSize updates the view dimensions
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)

	left, right := m.paneWidths()
	body := max(height-2, 3)

	m.search.Width = max(left-4, 1)
	m.pager.Resize(body - sidebarChrome)
	m.content.Width = max(right-2, 1)
	m.content.Height = max(body-1, 1)
	m.refreshContent(false)
}

// View renders the browser
func (m *BrowserModel) View() string {
	left, right := m.paneWidths()

	sidebar := styles.Sidebar.Width(left).Render(m.renderSidebar(left - 1))

	paneStyle := styles.Content
	if m.focus == FocusContent {
		paneStyle = styles.ContentFocused
	}
	pane := paneStyle.Width(right).Render(m.renderContentHeader(right) + "\n" + m.content.View())

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane))
	b.WriteString("\n")
	b.WriteString(RenderMessage(m.Message, m.MessageErr))
	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())
	return b.String()
}

func (m *BrowserModel) renderSidebar(width int) string {
	var b strings.Builder

	header := fmt.Sprintf("%s (%d/%d)", m.root.Title, len(m.root.Children), len(m.docs))
	b.WriteString(styles.Title.UnsetMarginBottom().Render(header))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if len(m.flatNodes) == 0 {
		b.WriteString(styles.MutedText.Render("No matching files"))
		b.WriteString("\n")
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderNode(m.flatNodes[i], i == m.pager.Cursor(), width))
		b.WriteString("\n")
	}

	if m.pager.TotalPages() > 1 {
		b.WriteString(styles.MutedText.Render(
			fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), m.pager.TotalPages())))
	}
	return b.String()
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, cursor bool, width int) string {
	indent := strings.Repeat("  ", node.Depth()-1)

	var prefix string
	switch {
	case !node.HasChildren():
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	style := styles.NodeDocument
	if node.Type == domain.TreeSection {
		style = styles.NodeSection
	}
	if m.isActive(node) {
		style = styles.NodeActive
	}

	var title string
	if cursor {
		title = styles.NodeSelected.Render(node.Title)
	} else {
		title = render.Title(node.Title, m.sel.Query, style)
	}
	if m.sel.Query != "" && node.Matches > 0 {
		title += " " + styles.MatchCount.Render(fmt.Sprintf("(%d)", node.Matches))
	}

	line := indent + styles.TreeBranch.Render(prefix) + title
	return ansi.Truncate(line, width, "…")
}

// isActive reports whether node is what the content pane currently shows
func (m *BrowserModel) isActive(node *domain.TreeNode) bool {
	if node.File != m.sel.File {
		return false
	}
	if node.Type == domain.TreeSection {
		return node.Section == m.sel.Section
	}
	_, narrowed := m.docs[node.File].Section(m.sel.Section)
	return !narrowed
}

func (m *BrowserModel) renderContentHeader(width int) string {
	view, ok := m.sel.Content(m.docs)
	if !ok {
		return ""
	}

	title := m.docs[m.sel.File].FileName
	if view.Section {
		title += " › " + view.Title
	}
	header := styles.Subtitle.Render(title)
	if m.content.TotalLineCount() > m.content.Height {
		header += styles.MutedText.Render(fmt.Sprintf("  %3.f%%", m.content.ScrollPercent()*100))
	}
	return ansi.Truncate(header, width, "…")
}

func (m *BrowserModel) renderHelpLine() string {
	if m.focus == FocusSearch {
		return RenderHelpLine(BrowserKeys.Done)
	}
	return RenderHelpLine(
		BrowserKeys.Enter,
		BrowserKeys.Search,
		BrowserKeys.Focus,
		BrowserKeys.Copy,
		BrowserKeys.Open,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	)
}
