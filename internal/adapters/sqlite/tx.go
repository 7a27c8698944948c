package sqlite

import (
	"context"
	"database/sql"

	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertDocument replaces a document row together with its sections and links
func (t *indexTx) UpsertDocument(doc domain.Document, position int, hash string) error {
	if err := t.DeleteDocument(doc.FileName); err != nil {
		return err
	}

	_, err := t.tx.Exec(`
		INSERT INTO documents (file_name, position, title, full_content, hash)
		VALUES (?, ?, ?, ?, ?)
	`, doc.FileName, position, doc.Title, doc.FullContent, hash)
	if err != nil {
		return err
	}

	for i, sec := range doc.Sections {
		if _, err := t.tx.Exec(`
			INSERT INTO sections (file_name, position, title, content, level)
			VALUES (?, ?, ?, ?, ?)
		`, doc.FileName, i, sec.Title, sec.Content, sec.Level); err != nil {
			return err
		}
	}

	for _, link := range doc.Links() {
		if _, err := t.tx.Exec(`
			INSERT INTO links (file_name, position, label, url)
			VALUES (?, ?, ?, ?)
		`, link.FileName, link.Position, link.Label, link.URL); err != nil {
			return err
		}
	}

	return nil
}

// SetPosition moves an unchanged document to its new place in the collection
func (t *indexTx) SetPosition(fileName string, position int) error {
	_, err := t.tx.Exec(`UPDATE documents SET position = ? WHERE file_name = ?`, position, fileName)
	return err
}

// DeleteDocument removes a document and everything indexed from it
func (t *indexTx) DeleteDocument(fileName string) error {
	if _, err := t.tx.Exec(`DELETE FROM links WHERE file_name = ?`, fileName); err != nil {
		return err
	}
	if _, err := t.tx.Exec(`DELETE FROM sections WHERE file_name = ?`, fileName); err != nil {
		return err
	}
	_, err := t.tx.Exec(`DELETE FROM documents WHERE file_name = ?`, fileName)
	return err
}

// Hashes returns the content hash of every indexed document
func (t *indexTx) Hashes(ctx context.Context) (map[string]string, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT file_name, hash FROM documents`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var name, hash string
		if err := rows.Scan(&name, &hash); err != nil {
			return nil, err
		}
		hashes[name] = hash
	}
	return hashes, rows.Err()
}

// Clear removes every indexed row
func (t *indexTx) Clear(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, `
		DELETE FROM links;
		DELETE FROM sections;
		DELETE FROM documents;
	`)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
