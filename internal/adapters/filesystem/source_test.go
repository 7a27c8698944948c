package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mdshelf/internal/application"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestSource_ReadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "# B\n")
	writeFile(t, dir, "a.md", "# A\n")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, ".hidden.md", "# Hidden\n")
	writeFile(t, dir, "UPPER.MD", "ignored")
	if err := os.MkdirAll(filepath.Join(dir, "sub.md"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "sub.md"), "nested.md", "# Nested\n")

	src := NewSource(dir, nil)
	files, err := src.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Name != "a.md" || files[1].Name != "b.md" {
		t.Errorf("expected lexical order a.md, b.md; got %s, %s", files[0].Name, files[1].Name)
	}
	if files[0].Content != "# A\n" {
		t.Errorf("unexpected content %q", files[0].Content)
	}
	if files[0].Path != filepath.Join(dir, "a.md") {
		t.Errorf("unexpected path %q", files[0].Path)
	}
	if src.Dir() != dir {
		t.Errorf("expected dir %s, got %s", dir, src.Dir())
	}
}

func TestSource_ReadAll_Empty(t *testing.T) {
	files, err := NewSource(t.TempDir(), nil).ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %d", len(files))
	}
}

func TestSource_ReadAll_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, err := NewSource(dir, nil).ReadAll(context.Background())

	var loadErr *application.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Path != dir {
		t.Errorf("expected path %s, got %s", dir, loadErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected the cause to be ErrNotExist")
	}
}

func TestSource_ReadAll_UnreadableFileFailsFast(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# A\n")
	writeFile(t, dir, "b.md", "# B\n")
	if err := os.Chmod(filepath.Join(dir, "b.md"), 0); err != nil {
		t.Fatal(err)
	}

	files, err := NewSource(dir, nil).ReadAll(context.Background())
	if files != nil {
		t.Errorf("expected no partial result, got %d files", len(files))
	}
	var loadErr *application.LoadError
	if !errors.As(err, &loadErr) || filepath.Base(loadErr.Path) != "b.md" {
		t.Errorf("expected LoadError for b.md, got %v", err)
	}
}

func TestNewSource_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/notes", filepath.Join(home, "notes")},
		{"~other/notes", "~other/notes"},
		{"notes", "notes"},
	}
	for _, tt := range tests {
		if got := NewSource(tt.in, nil).Dir(); got != tt.want {
			t.Errorf("NewSource(%q).Dir() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsMarkdown(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"guide.md", true},
		{"/data/guide.md", true},
		{".draft.md", false},
		{"guide.markdown", false},
		{"guide.md.swp", false},
		{"guide.MD", false},
	}

	for _, tt := range tests {
		if got := IsMarkdown(tt.name); got != tt.want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	go w.Run(ctx, func() { changes <- struct{}{} })

	writeFile(t, dir, "ignored.txt", "x")
	writeFile(t, dir, "doc.md", "# Doc\n")

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification for doc.md")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), 0, nil); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
