package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDocuments sorts documents by title using locale-aware collation.
// Documents with equal titles keep their original order.
func SortDocuments(docs []Document, locale language.Tag) {
	c := collate.New(locale)
	slices.SortStableFunc(docs, func(a, b Document) int {
		return c.CompareString(a.Title, b.Title)
	})
}

// ParseLocale parses a BCP 47 tag, falling back to the root locale
func ParseLocale(tag string) language.Tag {
	if tag == "" {
		return language.Und
	}
	t, err := language.Parse(tag)
	if err != nil {
		return language.Und
	}
	return t
}

// FindDocument returns the index of the document whose file name or title
// equals ref, ignoring case. File names win over titles.
func FindDocument(docs []Document, ref string) (int, bool) {
	if ref == "" {
		return NoSelection, false
	}
	for i, doc := range docs {
		if strings.EqualFold(doc.FileName, ref) || strings.EqualFold(FallbackTitle(doc.FileName), ref) {
			return i, true
		}
	}
	for i, doc := range docs {
		if strings.EqualFold(doc.Title, ref) {
			return i, true
		}
	}
	return NoSelection, false
}

// FindSection returns the index of the first section titled ref, ignoring case
func FindSection(doc Document, ref string) (int, bool) {
	for i, sec := range doc.Sections {
		if strings.EqualFold(sec.Title, ref) {
			return i, true
		}
	}
	return NoSelection, false
}
