package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"mdshelf/internal/application"
	"mdshelf/internal/config"
	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

const markdownExt = ".md"

// Source implements ports.DocumentSource for a flat directory of markdown files
type Source struct {
	dataDir string
	logger  *zap.Logger
}

// Ensure Source implements DocumentSource
var _ ports.DocumentSource = (*Source)(nil)

// NewSource creates a new filesystem source
func NewSource(dataDir string, logger *zap.Logger) *Source {
	dataDir = config.ExpandHome(dataDir)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{dataDir: dataDir, logger: logger}
}

// Dir returns the data directory
func (s *Source) Dir() string {
	return s.dataDir
}

// ReadAll reads every *.md file directly inside the data directory, in
// lexical order. Subdirectories and hidden files are ignored. The first
// unreadable file aborts the call.
func (s *Source) ReadAll(ctx context.Context) ([]domain.SourceFile, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, &application.LoadError{Path: s.dataDir, Err: err}
	}

	files := make([]domain.SourceFile, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !IsMarkdown(entry.Name()) || entry.IsDir() {
			continue
		}

		path := filepath.Join(s.dataDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, &application.LoadError{Path: path, Err: err}
		}

		files = append(files, domain.SourceFile{
			Name:    entry.Name(),
			Path:    path,
			Content: string(content),
		})
		s.logger.Debug("read document", zap.String("path", path), zap.Int("bytes", len(content)))
	}

	return files, nil
}

// IsMarkdown reports whether name is a visible markdown file name
func IsMarkdown(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, markdownExt) && !strings.HasPrefix(base, ".")
}

// Path returns the absolute path of a document in the data directory
func (s *Source) Path(fileName string) (string, error) {
	path, err := filepath.Abs(filepath.Join(s.dataDir, fileName))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", fileName, err)
	}
	return path, nil
}
