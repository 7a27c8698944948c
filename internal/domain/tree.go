package domain

// TreeNodeType distinguishes navigation tree levels
type TreeNodeType int

const (
	TreeRoot TreeNodeType = iota
	TreeDocument
	TreeSection
)

func (t TreeNodeType) String() string {
	switch t {
	case TreeDocument:
		return "document"
	case TreeSection:
		return "section"
	default:
		return "root"
	}
}

// TreeNode represents a node in the navigation tree
type TreeNode struct {
	Type       TreeNodeType
	Title      string
	File       int // index into the document list
	Section    int // NoSelection for document and root nodes
	Matches    int // query matches in the node's text
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// BuildTree builds the navigation tree for the documents whose indices are
// listed in visible. Documents whose index is in expanded start expanded.
func BuildTree(docs []Document, visible []int, expanded map[int]bool, query string) *TreeNode {
	root := &TreeNode{
		Type:       TreeRoot,
		Title:      "Files",
		File:       NoSelection,
		Section:    NoSelection,
		IsExpanded: true,
	}

	matcher := NewMatcher(query)
	for _, i := range visible {
		if i < 0 || i >= len(docs) {
			continue
		}
		doc := docs[i]
		docNode := &TreeNode{
			Type:       TreeDocument,
			Title:      doc.Title,
			File:       i,
			Section:    NoSelection,
			Matches:    matcher.Count(doc.FullContent),
			IsExpanded: expanded[i],
			Parent:     root,
		}
		for j, sec := range doc.Sections {
			docNode.Children = append(docNode.Children, &TreeNode{
				Type:    TreeSection,
				Title:   sec.Title,
				File:    i,
				Section: j,
				Matches: matcher.Count(sec.Content),
				Parent:  docNode,
			})
		}
		root.Children = append(root.Children, docNode)
	}

	return root
}

// HasChildren reports whether the node has child nodes
func (n *TreeNode) HasChildren() bool {
	return len(n.Children) > 0
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}
