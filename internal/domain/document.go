package domain

import "strings"

const (
	titleMarker   = "# "
	sectionMarker = "## "
)

// SectionLevel is the heading depth that delimits sections
const SectionLevel = 2

// Section is a titled span of a document delimited by a level-2 heading
type Section struct {
	Title   string
	Content string // raw lines after the heading, each terminated by "\n"
	Level   int
}

// Document is the parsed form of one markdown file
type Document struct {
	FileName    string
	Title       string
	Sections    []Section
	FullContent string
}

// SourceFile is a raw markdown file as delivered by a DocumentSource
type SourceFile struct {
	Name    string // e.g. "guide.md"
	Path    string // full path to the file
	Content string
}

// Parse splits markdown text into a title and a flat list of level-2 sections.
//
// Matching is literal on the line prefix: "# " sets the title (the last one
// wins), "## " opens a new section and every other line is appended to the
// open section. Lines before the first section only survive in FullContent.
// A trailing newline ends the last line; it does not start an empty one.
func Parse(fileName, content string) Document {
	var (
		title    string
		sections []Section
		current  *Section
	)

	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, titleMarker):
			title = strings.TrimSpace(line[len(titleMarker):])

		case strings.HasPrefix(line, sectionMarker):
			if current != nil {
				sections = append(sections, *current)
			}
			current = &Section{
				Title: strings.TrimSpace(line[len(sectionMarker):]),
				Level: SectionLevel,
			}

		case current != nil:
			current.Content += line + "\n"
		}
	}

	if current != nil {
		sections = append(sections, *current)
	}

	if title == "" {
		title = FallbackTitle(fileName)
	}

	return Document{
		FileName:    fileName,
		Title:       title,
		Sections:    sections,
		FullContent: content,
	}
}

// FallbackTitle derives a display title from a file name by stripping a
// trailing ".md"
func FallbackTitle(fileName string) string {
	return strings.TrimSuffix(fileName, ".md")
}

// HasSections reports whether the document has at least one section
func (d Document) HasSections() bool {
	return len(d.Sections) > 0
}

// Section returns the section at index i, or false when i is out of range
func (d Document) Section(i int) (Section, bool) {
	if i < 0 || i >= len(d.Sections) {
		return Section{}, false
	}
	return d.Sections[i], true
}
