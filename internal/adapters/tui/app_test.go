package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/text/language"

	"mdshelf/internal/application/commands"
	"mdshelf/internal/domain"
)

type stubSource struct {
	files []domain.SourceFile
	err   error
}

func (s *stubSource) ReadAll(ctx context.Context) ([]domain.SourceFile, error) {
	return s.files, s.err
}

func (s *stubSource) Dir() string { return "data" }

func newTestApp(src *stubSource) *App {
	return NewApp(commands.NewLoadCommand(src, language.English, nil), nil, nil)
}

func TestApp_LoadsIntoBrowser(t *testing.T) {
	src := &stubSource{files: []domain.SourceFile{
		{Name: "guide.md", Content: "# Guide\n## Setup\nrun it\n"},
	}}
	app := newTestApp(src)

	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if app.State() != ViewLoading {
		t.Fatalf("expected loading state, got %v", app.State())
	}
	if !strings.Contains(ansi.Strip(app.View()), "Loading files...") {
		t.Error("expected loading text")
	}

	app.Update(app.load()())
	if app.State() != ViewBrowser {
		t.Fatalf("expected browser state, got %v", app.State())
	}
	if !strings.Contains(ansi.Strip(app.View()), "Guide") {
		t.Error("expected document title in the sidebar")
	}
}

func TestApp_LoadFailure(t *testing.T) {
	src := &stubSource{err: errors.New("permission denied")}
	app := newTestApp(src)

	app.Update(app.load()())
	if app.State() != ViewError {
		t.Fatalf("expected error state, got %v", app.State())
	}
	if !strings.Contains(ansi.Strip(app.View()), "permission denied") {
		t.Error("expected the error on screen")
	}

	// r starts a fresh load
	src.err = nil
	src.files = []domain.SourceFile{{Name: "a.md", Content: "# A\n"}}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil || app.State() != ViewLoading {
		t.Fatalf("expected a reload, got state %v", app.State())
	}

	app.Update(app.loadMsg(t))
	if app.State() != ViewBrowser || app.Err() != nil {
		t.Errorf("expected recovery into the browser, got state %v err %v", app.State(), app.Err())
	}
}

func TestApp_ReloadKeepsBrowser(t *testing.T) {
	src := &stubSource{files: []domain.SourceFile{{Name: "a.md", Content: "# A\n"}}}
	app := newTestApp(src)
	app.Update(app.load()())

	src.files = append(src.files, domain.SourceFile{Name: "b.md", Content: "# B\n"})
	_, cmd := app.Update(ReloadMsg{})
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	app.Update(cmd())

	if app.State() != ViewBrowser {
		t.Errorf("expected to stay in the browser, got %v", app.State())
	}
	if n := len(app.browser.VisibleNodes()); n != 2 {
		t.Errorf("expected 2 documents after reload, got %d", n)
	}
}

func TestApp_ReloadDuringLoadIsQueued(t *testing.T) {
	src := &stubSource{files: []domain.SourceFile{{Name: "a.md", Content: "# Old\n"}}}
	app := newTestApp(src)

	stale := app.load()()

	// the file changes while the first read is in flight
	src.files = []domain.SourceFile{{Name: "a.md", Content: "# New\n"}}
	if _, cmd := app.Update(ReloadMsg{}); cmd != nil {
		t.Fatal("expected no second load while one is running")
	}

	_, cmd := app.Update(stale)
	equalTitle(t, app, "Old")
	if cmd == nil {
		t.Fatal("expected the queued reload to start")
	}

	_, cmd = app.Update(cmd())
	if cmd != nil {
		t.Error("expected no further reload")
	}
	equalTitle(t, app, "New")
}

func equalTitle(t *testing.T, app *App, want string) {
	t.Helper()
	nodes := app.browser.VisibleNodes()
	if len(nodes) != 1 || nodes[0].Title != want {
		t.Errorf("expected a single %q document, got %d nodes", want, len(nodes))
	}
}

func TestApp_HelpRoundTrip(t *testing.T) {
	app := newTestApp(&stubSource{})
	app.Update(app.load()())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	app.Update(cmd())
	if app.State() != ViewHelp {
		t.Fatalf("expected help view, got %v", app.State())
	}

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app.Update(cmd())
	if app.State() != ViewBrowser {
		t.Errorf("expected browser view, got %v", app.State())
	}
}

// loadMsg runs the pending load directly; the retry path batches it with a
// spinner tick
func (a *App) loadMsg(t *testing.T) tea.Msg {
	t.Helper()
	a.loading = false
	return a.load()()
}
