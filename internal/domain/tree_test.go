package domain

import "testing"

func TestBuildTree(t *testing.T) {
	docs := testDocs()

	t.Run("collapsed documents hide sections", func(t *testing.T) {
		root := BuildTree(docs, []int{0, 1, 2}, nil, "")
		flat := root.Flatten()

		// root + 3 documents
		if len(flat) != 4 {
			t.Fatalf("expected 4 visible nodes, got %d", len(flat))
		}
		if flat[1].Type != TreeDocument || flat[1].Title != "Apple" {
			t.Errorf("unexpected first document node %#v", flat[1])
		}
	})

	t.Run("expanded documents show sections", func(t *testing.T) {
		root := BuildTree(docs, []int{0, 1}, map[int]bool{0: true}, "")
		flat := root.Flatten()

		if len(flat) != 5 {
			t.Fatalf("expected 5 visible nodes, got %d", len(flat))
		}
		sec := flat[2]
		if sec.Type != TreeSection || sec.Title != "Color" || sec.File != 0 || sec.Section != 0 {
			t.Errorf("unexpected section node %#v", sec)
		}
		if sec.Depth() != 2 {
			t.Errorf("expected section depth 2, got %d", sec.Depth())
		}
	})

	t.Run("only visible documents are included", func(t *testing.T) {
		root := BuildTree(docs, FilterDocuments(docs, "red"), nil, "red")
		if len(root.Children) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(root.Children))
		}
		if root.Children[1].File != 2 {
			t.Errorf("expected cherry at index 2, got %d", root.Children[1].File)
		}
		if root.Children[0].Matches != 1 {
			t.Errorf("expected 1 match in Apple, got %d", root.Children[0].Matches)
		}
	})
}
