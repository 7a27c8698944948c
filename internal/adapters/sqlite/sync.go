package sqlite

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mdshelf/internal/domain"
)

// Sync brings the index in line with docs, which must be in collection
// order. Unchanged documents only have their position refreshed, changed
// ones are replaced and documents no longer present are removed. The whole
// sync runs in one transaction; concurrent calls are serialized.
func (idx *Index) Sync(ctx context.Context, docs []domain.Document) (*domain.SyncStats, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	start := time.Now()
	stats := &domain.SyncStats{}

	tx, err := idx.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if idx.rebuild {
		// Clear existing data
		if err := tx.Clear(ctx); err != nil {
			return nil, err
		}
	}

	existing, err := tx.Hashes(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(docs))
	for position, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seen[doc.FileName] = true
		hash := hashContent(doc.FullContent)

		old, ok := existing[doc.FileName]
		switch {
		case ok && old == hash:
			if err := tx.SetPosition(doc.FileName, position); err != nil {
				return nil, fmt.Errorf("reposition %s: %w", doc.FileName, err)
			}
			stats.DocumentsSkipped++
			continue
		case ok:
			stats.DocumentsUpdated++
		default:
			stats.DocumentsAdded++
		}

		if err := tx.UpsertDocument(doc, position, hash); err != nil {
			return nil, fmt.Errorf("index %s: %w", doc.FileName, err)
		}
		stats.SectionsIndexed += len(doc.Sections)
		stats.LinksIndexed += len(doc.Links())
	}

	// Delete documents that no longer exist
	for fileName := range existing {
		if seen[fileName] {
			continue
		}
		if err := tx.DeleteDocument(fileName); err != nil {
			return nil, fmt.Errorf("remove %s: %w", fileName, err)
		}
		stats.DocumentsDeleted++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	idx.rebuild = false

	// Update last sync time
	idx.db.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())

	stats.Duration = time.Since(start)
	idx.logger.Info("index synced",
		zap.Int("added", stats.DocumentsAdded),
		zap.Int("updated", stats.DocumentsUpdated),
		zap.Int("deleted", stats.DocumentsDeleted),
		zap.Int("skipped", stats.DocumentsSkipped),
		zap.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// LastSync returns the time of the last completed sync, or the zero time
func (idx *Index) LastSync() time.Time {
	var unix int64
	if err := idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&unix); err != nil {
		return time.Time{}
	}
	return time.Unix(unix, 0)
}
