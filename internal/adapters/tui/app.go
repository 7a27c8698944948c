package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"mdshelf/internal/adapters/tui/styles"
	"mdshelf/internal/adapters/tui/views"
	"mdshelf/internal/application/commands"
	"mdshelf/internal/domain"
	"mdshelf/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewError
	ViewBrowser
	ViewHelp
)

// ReloadMsg asks the application to read the collection again
type ReloadMsg struct{}

type documentsLoadedMsg struct {
	docs []domain.Document
}

type loadFailedMsg struct {
	err error
}

var errorKeys = struct {
	Retry key.Binding
	Quit  key.Binding
}{
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// App is the main TUI application model
type App struct {
	loader *commands.LoadCommand
	opener ports.LinkOpener
	logger *zap.Logger

	state   ViewState
	spinner spinner.Model
	browser *views.BrowserModel
	help    *views.HelpModel
	err     error
	loading bool
	// a reload arrived while a load was running
	reloadPending bool

	width  int
	height int
}

// NewApp creates a new TUI application. The collection is loaded once on
// start and again on every ReloadMsg.
func NewApp(loader *commands.LoadCommand, opener ports.LinkOpener, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	return &App{
		loader:  loader,
		opener:  opener,
		logger:  logger,
		state:   ViewLoading,
		spinner: spin,
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.load())
}

func (a *App) load() tea.Cmd {
	if a.loading {
		a.reloadPending = true
		return nil
	}
	a.loading = true

	loader := a.loader
	return func() tea.Msg {
		docs, err := loader.Execute(context.Background())
		if err != nil {
			return loadFailedMsg{err}
		}
		return documentsLoadedMsg{docs}
	}
}

// pendingReload starts the load that was requested while the previous one
// was still reading, since that read may predate the change
func (a *App) pendingReload() tea.Cmd {
	if !a.reloadPending {
		return nil
	}
	a.reloadPending = false
	return a.load()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.browser != nil {
			a.browser.SetSize(msg.Width, msg.Height)
		}
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		if a.state != ViewLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case ReloadMsg:
		return a, a.load()

	case documentsLoadedMsg:
		a.loading = false
		a.err = nil
		if a.browser == nil {
			a.browser = views.NewBrowserModel(msg.docs, a.opener, a.logger)
			a.browser.SetSize(a.width, a.height)
		} else {
			a.browser.SetDocuments(msg.docs)
		}
		if a.state == ViewLoading || a.state == ViewError {
			a.state = ViewBrowser
		}
		return a, a.pendingReload()

	case loadFailedMsg:
		a.loading = false
		a.err = msg.err
		a.state = ViewError
		a.logger.Error("load failed", zap.Error(msg.err))
		return a, a.pendingReload()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewLoading:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case ViewError:
		if k, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(k, errorKeys.Quit):
				return a, tea.Quit
			case key.Matches(k, errorKeys.Retry):
				// A failed load is never shown partially; start over
				a.state = ViewLoading
				return a, tea.Batch(a.spinner.Tick, a.load())
			}
		}
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Err returns the last load error, if any
func (a *App) Err() error {
	return a.err
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewLoading:
		return views.NewViewBuilder().
			Line(a.spinner.View() + " Loading files...").
			String()
	case ViewError:
		return views.NewViewBuilder().
			Title("mdshelf").
			Message("Error: "+a.err.Error(), true).
			Help(errorKeys.Retry, errorKeys.Quit).
			String()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
