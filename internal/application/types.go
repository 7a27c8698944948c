package application

import "mdshelf/internal/domain"

// Re-export domain types for use by the command-line adapters
type (
	Document   = domain.Document
	TreeNode   = domain.TreeNode
	SearchHit  = domain.SearchHit
	LinkRecord = domain.LinkRecord
)

// Re-export tree node types
const (
	TreeDocument = domain.TreeDocument
	TreeSection  = domain.TreeSection
)
