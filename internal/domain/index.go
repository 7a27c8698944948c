package domain

import "time"

// SearchHit is a document matching a search query
type SearchHit struct {
	File     int // position in the title-sorted collection
	FileName string
	Title    string
	Matches  int // occurrences of the query in the full content
}

// LinkRecord is an inline markdown link found in a document
type LinkRecord struct {
	FileName string
	Position int // order of appearance within the document
	Label    string
	URL      string
}

// SyncStats holds statistics from an index sync
type SyncStats struct {
	DocumentsAdded   int
	DocumentsUpdated int
	DocumentsDeleted int
	DocumentsSkipped int
	SectionsIndexed  int
	LinksIndexed     int
	Duration         time.Duration
}

// Links returns every link in the document in order of appearance
func (d Document) Links() []LinkRecord {
	var links []LinkRecord
	for _, node := range RenderBlock(d.FullContent, "") {
		for _, f := range node.Fragments {
			if f.Kind != FragmentLink {
				continue
			}
			links = append(links, LinkRecord{
				FileName: d.FileName,
				Position: len(links),
				Label:    f.Text,
				URL:      f.URL,
			})
		}
	}
	return links
}

// Search returns hits for documents containing query, in collection order
func Search(docs []Document, query string) []SearchHit {
	hits := make([]SearchHit, 0)
	for _, i := range FilterDocuments(docs, query) {
		hits = append(hits, SearchHit{
			File:     i,
			FileName: docs[i].FileName,
			Title:    docs[i].Title,
			Matches:  MatchCount(docs[i].FullContent, query),
		})
	}
	return hits
}
