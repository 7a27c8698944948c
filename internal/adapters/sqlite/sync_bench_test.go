package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mdshelf/internal/domain"
)

// benchDocuments builds n documents with a few sections and links each
func benchDocuments(n int) []domain.Document {
	docs := make([]domain.Document, 0, n)
	for i := range n {
		var b strings.Builder
		fmt.Fprintf(&b, "# Document %04d\nintro\n", i)
		for s := range 5 {
			fmt.Fprintf(&b, "## Section %d\n- item [link](http://example.test/%d/%d)\nbody text\n\n", s, i, s)
		}
		docs = append(docs, domain.Parse(fmt.Sprintf("doc-%04d.md", i), b.String()))
	}
	return docs
}

// BenchmarkSyncFull benchmarks a sync into an empty index (DB already open)
func BenchmarkSyncFull(b *testing.B) {
	docs := benchDocuments(200)
	ctx := context.Background()

	idx := NewIndex(b.TempDir(), nil)
	if err := idx.Open(b.TempDir()); err != nil {
		b.Fatalf("failed to open index: %v", err)
	}
	defer func() {
		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}
	}()

	b.ResetTimer()
	for b.Loop() {
		idx.rebuild = true
		if _, err := idx.Sync(ctx, docs); err != nil {
			b.Fatalf("sync failed: %v", err)
		}
	}
}

// BenchmarkFullStartup benchmarks cold startup: open + full sync + close (no existing DB)
func BenchmarkFullStartup(b *testing.B) {
	docs := benchDocuments(200)
	ctx := context.Background()
	dataDir := b.TempDir()
	indexDir := b.TempDir()

	b.ResetTimer()
	for b.Loop() {
		idx := NewIndex(indexDir, nil)
		if err := idx.Open(dataDir); err != nil {
			b.Fatalf("failed to open index: %v", err)
		}

		if _, err := idx.Sync(ctx, docs); err != nil {
			b.Fatalf("sync failed: %v", err)
		}

		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}

		// Clean up for next iteration
		matches, _ := filepath.Glob(filepath.Join(indexDir, "*"))
		for _, m := range matches {
			if err := os.RemoveAll(m); err != nil {
				b.Fatalf("failed to clean up: %v", err)
			}
		}
	}
}

// BenchmarkWarmStartup benchmarks warm startup: open + sync with no changes
func BenchmarkWarmStartup(b *testing.B) {
	docs := benchDocuments(200)
	ctx := context.Background()
	dataDir := b.TempDir()
	indexDir := b.TempDir()

	// First, create the DB with a full sync
	idx := NewIndex(indexDir, nil)
	if err := idx.Open(dataDir); err != nil {
		b.Fatalf("failed to open index: %v", err)
	}
	if _, err := idx.Sync(ctx, docs); err != nil {
		b.Fatalf("initial sync failed: %v", err)
	}
	if err := idx.Close(); err != nil {
		b.Fatalf("failed to close index: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		idx := NewIndex(indexDir, nil)
		if err := idx.Open(dataDir); err != nil {
			b.Fatalf("failed to open index: %v", err)
		}

		if _, err := idx.Sync(ctx, docs); err != nil {
			b.Fatalf("sync failed: %v", err)
		}

		if err := idx.Close(); err != nil {
			b.Fatalf("failed to close index: %v", err)
		}
	}
}
