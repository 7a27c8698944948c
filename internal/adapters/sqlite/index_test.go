package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdshelf/internal/domain"
)

func openTestIndex(t *testing.T, dataDir string) *Index {
	t.Helper()

	idx := NewIndex(t.TempDir(), nil)
	require.NoError(t, idx.Open(dataDir))
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testDocuments() []domain.Document {
	docs := []domain.Document{
		domain.Parse("apple.md", "# Apple\nintro\n## Color\nred and green\n## Taste\nsweet, see [wiki](http://wiki.test/apple)\n"),
		domain.Parse("banana.md", "# Banana\nyellow [a](http://a.test) [b](mailto:b@b.test)\n"),
		domain.Parse("cherry.md", "no title, RED red Red\n"),
	}
	return docs
}

func TestIndex_OpenAndRebuild(t *testing.T) {
	dataDir := t.TempDir()
	indexDir := t.TempDir()

	idx := NewIndex(indexDir, nil)
	require.NoError(t, idx.Open(dataDir))
	assert.True(t, idx.NeedsFullRebuild(), "fresh index should need a rebuild")
	assert.True(t, idx.LastSync().IsZero())

	_, err := idx.Sync(context.Background(), testDocuments())
	require.NoError(t, err)
	assert.False(t, idx.NeedsFullRebuild())
	assert.False(t, idx.LastSync().IsZero())
	require.NoError(t, idx.Close())

	reopened := NewIndex(indexDir, nil)
	require.NoError(t, reopened.Open(dataDir))
	defer reopened.Close()
	assert.False(t, reopened.NeedsFullRebuild(), "same schema and data dir should reuse the index")
	assert.Equal(t, idx.Path(), reopened.Path())
}

func TestIndex_SyncStats(t *testing.T) {
	ctx := context.Background()
	idx := openTestIndex(t, t.TempDir())
	docs := testDocuments()

	stats, err := idx.Sync(ctx, docs)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.DocumentsAdded)
	assert.Equal(t, 2, stats.SectionsIndexed)
	assert.Equal(t, 3, stats.LinksIndexed)

	t.Run("unchanged documents are skipped", func(t *testing.T) {
		stats, err := idx.Sync(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.DocumentsSkipped)
		assert.Zero(t, stats.DocumentsAdded+stats.DocumentsUpdated+stats.DocumentsDeleted)
	})

	t.Run("changed documents are replaced", func(t *testing.T) {
		changed := testDocuments()
		changed[1] = domain.Parse("banana.md", "# Banana\nno links now\n")

		stats, err := idx.Sync(ctx, changed)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.DocumentsUpdated)
		assert.Equal(t, 2, stats.DocumentsSkipped)

		links, err := idx.Links(ctx, "banana.md")
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("missing documents are deleted", func(t *testing.T) {
		stats, err := idx.Sync(ctx, docs[:1])
		require.NoError(t, err)
		assert.Equal(t, 2, stats.DocumentsDeleted)

		stored, err := idx.Documents(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "apple.md", stored[0].FileName)
	})
}

func TestIndex_Documents(t *testing.T) {
	ctx := context.Background()
	idx := openTestIndex(t, t.TempDir())
	docs := testDocuments()

	_, err := idx.Sync(ctx, docs)
	require.NoError(t, err)

	stored, err := idx.Documents(ctx)
	require.NoError(t, err)
	assert.Equal(t, docs, stored)

	t.Run("positions follow the latest sync", func(t *testing.T) {
		reordered := []domain.Document{docs[2], docs[0], docs[1]}
		_, err := idx.Sync(ctx, reordered)
		require.NoError(t, err)

		stored, err := idx.Documents(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 3)
		assert.Equal(t, "cherry.md", stored[0].FileName)
		assert.Equal(t, "banana.md", stored[2].FileName)
	})
}

func TestIndex_Search(t *testing.T) {
	ctx := context.Background()
	idx := openTestIndex(t, t.TempDir())
	docs := testDocuments()

	_, err := idx.Sync(ctx, docs)
	require.NoError(t, err)

	hits, err := idx.Search(ctx, "red")
	require.NoError(t, err)
	assert.Equal(t, domain.Search(docs, "red"), hits)
	require.Len(t, hits, 2)
	assert.Equal(t, 3, hits[1].Matches)

	t.Run("query characters are literal", func(t *testing.T) {
		hits, err := idx.Search(ctx, "(http")
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "apple.md", hits[0].FileName)
	})

	t.Run("no match", func(t *testing.T) {
		hits, err := idx.Search(ctx, "durian")
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestIndex_Links(t *testing.T) {
	ctx := context.Background()
	idx := openTestIndex(t, t.TempDir())

	_, err := idx.Sync(ctx, testDocuments())
	require.NoError(t, err)

	links, err := idx.Links(ctx, "banana.md")
	require.NoError(t, err)
	assert.Equal(t, []domain.LinkRecord{
		{FileName: "banana.md", Position: 0, Label: "a", URL: "http://a.test"},
		{FileName: "banana.md", Position: 1, Label: "b", URL: "mailto:b@b.test"},
	}, links)

	none, err := idx.Links(ctx, "unknown.md")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIndex_OpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	idx := openTestIndex(t, "~/notes")
	assert.Equal(t, filepath.Join(home, "notes"), idx.dataDir)

	// only the current user's home is expanded
	other := openTestIndex(t, "~other/notes")
	assert.Equal(t, "~other", filepath.Base(filepath.Dir(other.dataDir)))
}

func TestIndex_ConcurrentSync(t *testing.T) {
	ctx := context.Background()
	idx := openTestIndex(t, t.TempDir())
	docs := testDocuments()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = idx.Sync(ctx, docs)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.False(t, idx.NeedsFullRebuild())

	stored, err := idx.Documents(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestIndex_TxRollback(t *testing.T) {
	ctx := context.Background()
	idx := openTestIndex(t, t.TempDir())
	_, err := idx.Sync(ctx, testDocuments())
	require.NoError(t, err)

	tx, err := idx.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Clear(ctx))
	require.NoError(t, tx.UpsertDocument(domain.Parse("date.md", "# Date\n"), 0, "h"))

	hashes, err := tx.Hashes(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"date.md": "h"}, hashes)
	require.NoError(t, tx.Rollback())

	stored, err := idx.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "apple.md", stored[0].FileName)
}

func TestMatchCount(t *testing.T) {
	assert.Equal(t, 2, matchCount("a.b A.B", "a.b"))
	assert.Equal(t, 0, matchCount("abc", ""))
	assert.Equal(t, 2, matchCount("caf\xe9 CAF\xe9", "af\xe9"))
}
