package domain

// NoSelection marks an unset file or section index
const NoSelection = -1

// Placeholder is shown when no document is selected
const Placeholder = "Select a file or section to view its content"

// Selection is the browsing state: the active document, an optional section
// within it, and the live search query. Operations return a new value.
type Selection struct {
	File    int
	Section int
	Query   string
}

// NewSelection returns a selection with nothing selected
func NewSelection() Selection {
	return Selection{File: NoSelection, Section: NoSelection}
}

// SelectDocument selects a whole document
func (s Selection) SelectDocument(fileIndex int) Selection {
	s.File = fileIndex
	s.Section = NoSelection
	return s
}

// SelectSection narrows the selection to one section of a document
func (s Selection) SelectSection(fileIndex, sectionIndex int) Selection {
	s.File = fileIndex
	s.Section = sectionIndex
	return s
}

// WithQuery replaces the search query
func (s Selection) WithQuery(query string) Selection {
	s.Query = query
	return s
}

// HasDocument reports whether a document index is set
func (s Selection) HasDocument() bool {
	return s.File != NoSelection
}

// View is the resolved content of a selection
type View struct {
	Title   string
	Text    string
	Section bool // true when narrowed to a single section
}

// Content resolves the selection against docs. A missing or out-of-range
// section falls back to the whole document; a missing document yields false.
func (s Selection) Content(docs []Document) (View, bool) {
	if s.File < 0 || s.File >= len(docs) {
		return View{}, false
	}
	doc := docs[s.File]

	if sec, ok := doc.Section(s.Section); ok {
		return View{Title: sec.Title, Text: sec.Content, Section: true}, true
	}
	return View{Title: doc.Title, Text: doc.FullContent}, true
}

// Render resolves the selection and renders it with the current query
func (s Selection) Render(docs []Document) (View, []DisplayNode, bool) {
	view, ok := s.Content(docs)
	if !ok {
		return View{}, nil, false
	}
	return view, RenderBlock(view.Text, s.Query), true
}

// FilterDocuments returns the indices of documents whose full content
// contains query, ignoring case. An empty query keeps every document.
func FilterDocuments(docs []Document, query string) []int {
	matcher := NewMatcher(query)
	indices := make([]int, 0, len(docs))
	for i, doc := range docs {
		if matcher.Contains(doc.FullContent) {
			indices = append(indices, i)
		}
	}
	return indices
}

// MatchCount counts case-insensitive literal occurrences of query in text
func MatchCount(text, query string) int {
	return NewMatcher(query).Count(text)
}
