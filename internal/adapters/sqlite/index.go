package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"mdshelf/internal/config"
	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

const (
	schemaVersion = "1"
	driverName    = "sqlite3_mdshelf"
)

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("match_count", matchCount, true)
		},
	})
}

// matchCount backs the match_count(text, query) SQL function with the same
// literal, case-insensitive matching the renderer uses
func matchCount(text, query string) int {
	return domain.MatchCount(text, query)
}

// Index implements ports.DocumentIndex using SQLite
type Index struct {
	db       *sql.DB
	dataDir  string
	dbPath   string
	indexDir string
	logger   *zap.Logger

	mu      sync.Mutex // guards rebuild and serializes Sync
	rebuild bool
}

// Ensure Index implements DocumentIndex
var _ ports.DocumentIndex = (*Index)(nil)

// NewIndex creates a new SQLite index. An empty indexDir stores the database
// under $XDG_DATA_HOME/mdshelf.
func NewIndex(indexDir string, logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{indexDir: indexDir, logger: logger}
}

// Open initializes the index for the given data directory
func (idx *Index) Open(dataDir string) error {
	dataDir = config.ExpandHome(dataDir)
	if abs, err := filepath.Abs(dataDir); err == nil {
		dataDir = abs
	}

	idx.dataDir = dataDir
	idx.dbPath = databasePath(idx.indexDir, dataDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open(driverName, "file:"+idx.dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS documents (
			file_name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			full_content TEXT NOT NULL,
			hash TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS sections (
			file_name TEXT NOT NULL REFERENCES documents(file_name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			level INTEGER NOT NULL,
			PRIMARY KEY (file_name, position)
		);
		CREATE TABLE IF NOT EXISTS links (
			file_name TEXT NOT NULL REFERENCES documents(file_name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			url TEXT NOT NULL,
			PRIMARY KEY (file_name, position)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_documents_position ON documents(position);
		CREATE INDEX IF NOT EXISTS idx_links_url ON links(url);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	idx.rebuild = idx.metaMismatch()

	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	idx.logger.Debug("index opened",
		zap.String("db", idx.dbPath),
		zap.Bool("rebuild", idx.rebuild),
	)
	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file location
func (idx *Index) Path() string {
	return idx.dbPath
}

// NeedsFullRebuild returns true if the stored index was written by another
// schema version or for another data directory. The next Sync clears it.
func (idx *Index) NeedsFullRebuild() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.rebuild
}

func (idx *Index) metaMismatch() bool {
	var version, dataHash string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'data_dir_hash'").Scan(&dataHash)

	return version != schemaVersion || dataHash != hashPath(idx.dataDir)
}

// databasePath returns the path for the SQLite database
func databasePath(indexDir, dataDir string) string {
	if indexDir == "" {
		// XDG data directory
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			home, _ := os.UserHomeDir()
			dataHome = filepath.Join(home, ".local", "share")
		}
		indexDir = filepath.Join(dataHome, "mdshelf")
	}

	return filepath.Join(indexDir, hashPath(dataDir)+".db")
}

// hashPath returns a short hash of a directory path
func hashPath(path string) string {
	h := sha256.Sum256([]byte(path))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// hashContent identifies a document version
func hashContent(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}

// updateMeta updates the schema version and data directory hash
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('data_dir_hash', ?);
	`, schemaVersion, hashPath(idx.dataDir))
	return err
}

// Documents rebuilds every indexed document in collection order
func (idx *Index) Documents(ctx context.Context) ([]domain.Document, error) {
	rows, err := idx.db.QueryContext(ctx, `
		SELECT file_name, title, full_content
		FROM documents ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	byName := make(map[string]int)
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.FileName, &doc.Title, &doc.FullContent); err != nil {
			return nil, err
		}
		byName[doc.FileName] = len(docs)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	secRows, err := idx.db.QueryContext(ctx, `
		SELECT file_name, title, content, level
		FROM sections ORDER BY file_name, position
	`)
	if err != nil {
		return nil, err
	}
	defer secRows.Close()

	for secRows.Next() {
		var fileName string
		var sec domain.Section
		if err := secRows.Scan(&fileName, &sec.Title, &sec.Content, &sec.Level); err != nil {
			return nil, err
		}
		if i, ok := byName[fileName]; ok {
			docs[i].Sections = append(docs[i].Sections, sec)
		}
	}

	return docs, secRows.Err()
}

// Search returns documents whose content contains query, in collection order
func (idx *Index) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	rows, err := idx.db.QueryContext(ctx, `
		SELECT position, file_name, title, match_count(full_content, ?1) AS matches
		FROM documents
		WHERE match_count(full_content, ?1) > 0
		ORDER BY position
	`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hits := make([]domain.SearchHit, 0)
	for rows.Next() {
		var h domain.SearchHit
		if err := rows.Scan(&h.File, &h.FileName, &h.Title, &h.Matches); err != nil {
			return nil, err
		}
		hits = append(hits, h)
	}

	return hits, rows.Err()
}

// Links returns the links of one document in order of appearance
func (idx *Index) Links(ctx context.Context, fileName string) ([]domain.LinkRecord, error) {
	rows, err := idx.db.QueryContext(ctx, `
		SELECT file_name, position, label, url
		FROM links WHERE file_name = ? ORDER BY position
	`, fileName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.LinkRecord
	for rows.Next() {
		var l domain.LinkRecord
		if err := rows.Scan(&l.FileName, &l.Position, &l.Label, &l.URL); err != nil {
			return nil, err
		}
		links = append(links, l)
	}

	return links, rows.Err()
}

// BeginTx starts a transaction over the index tables. Callers outside Sync
// must not hold it across a Sync call.
func (idx *Index) BeginTx(ctx context.Context) (ports.IndexTx, error) {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}
