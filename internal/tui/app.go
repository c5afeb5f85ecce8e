// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Resolves routes, owns the active page and draws the sidebar/header shell

package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/session"
	"github.com/markalston/jobdash/internal/tui/calendar"
	"github.com/markalston/jobdash/internal/tui/dashboard"
	"github.com/markalston/jobdash/internal/tui/login"
	"github.com/markalston/jobdash/internal/tui/menu"
	"github.com/markalston/jobdash/internal/tui/messages"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/profile"
	"github.com/markalston/jobdash/internal/tui/recentlogins"
	"github.com/markalston/jobdash/internal/tui/register"
	"github.com/markalston/jobdash/internal/tui/router"
	"github.com/markalston/jobdash/internal/tui/settings"
	"github.com/markalston/jobdash/internal/tui/styles"
)

// SignedOutNotice is shown on the login screen after logout
const SignedOutNotice = "Signed out."

// Options wires the app to its collaborators
type Options struct {
	Client  page.Gateway
	Session session.Store
	Theme   *styles.Theme
	Recent  *recentlogins.Recent
	Now     func() time.Time
	// StartPath is the first route, "/" when empty
	StartPath string
}

type globalKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Jump   key.Binding
	Theme  key.Binding
	Logout key.Binding
	Quit   key.Binding
}

var globalKeys = globalKeyMap{
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev page")),
	Jump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "jump")),
	Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Logout: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// App is the root model for the TUI
type App struct {
	opts Options

	route  router.Route
	page   page.Page
	gen    int
	cancel context.CancelFunc

	width  int
	height int

	unread int
	user   *client.User
	help   help.Model
}

// New creates the app. Nothing is loaded until Init navigates to the start path.
func New(opts Options) *App {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(false)
	}
	if opts.Session == nil {
		opts.Session = session.NewMemoryStore("")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StartPath == "" {
		opts.StartPath = router.Root
	}

	a := &App{opts: opts, help: help.New()}
	a.restyleHelp()
	return a
}

// Route returns the active route
func (a *App) Route() router.Route {
	return a.route
}

// Page returns the active page
func (a *App) Page() page.Page {
	return a.page
}

// Generation returns the navigation counter used to tag async results
func (a *App) Generation() int {
	return a.gen
}

// Unread returns the header badge count
func (a *App) Unread() int {
	return a.unread
}

// User returns the user shown in the header, if known
func (a *App) User() *client.User {
	return a.user
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.navigate(a.opts.StartPath, "")
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forward(a.bodySize())

	case page.Loaded:
		if msg.Gen != a.gen {
			slog.Debug("Dropping stale result", "gen", msg.Gen, "current", a.gen)
			return a, nil
		}
		return a, a.forward(msg.Msg)

	case page.NavigateMsg:
		return a, a.navigate(msg.Path, msg.Notice)

	case page.LogoutMsg:
		return a, a.logout()

	case page.UnreadMsg:
		a.unread = msg.Count
		return a, nil

	case page.UserMsg:
		a.user = msg.User
		return a, nil

	case page.ThemeChangedMsg:
		a.restyleHelp()
		return a, a.forward(msg)

	case tea.KeyMsg:
		if key.Matches(msg, globalKeys.Quit) {
			a.stop()
			return a, tea.Quit
		}
		if a.route.Shell && a.page != nil && !a.page.Capturing() {
			if cmd, handled := a.handleGlobalKey(msg); handled {
				return a, cmd
			}
		}
	}

	return a, a.forward(msg)
}

func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, globalKeys.Next):
		return a.navigate(menu.Next(a.route.Path), ""), true
	case key.Matches(msg, globalKeys.Prev):
		return a.navigate(menu.Prev(a.route.Path), ""), true
	case key.Matches(msg, globalKeys.Jump):
		if path, ok := menu.ByKey(msg.String()); ok {
			return a.navigate(path, ""), true
		}
	case key.Matches(msg, globalKeys.Theme):
		a.opts.Theme.Toggle()
		return page.Emit(page.ThemeChangedMsg{}), true
	case key.Matches(msg, globalKeys.Logout):
		return a.logout(), true
	}
	return nil, false
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	if a.page == nil {
		return nil
	}
	next, cmd := a.page.Update(msg)
	a.page = next
	return cmd
}

// navigate swaps in the page for path. The previous page's context is
// canceled and its late results are dropped by generation.
func (a *App) navigate(path, notice string) tea.Cmd {
	route := router.Resolve(path, a.opts.Session.Authenticated())

	a.stop()
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.gen++

	size := a.bodySizeFor(route)
	env := page.Env{
		Client:  a.opts.Client,
		Session: a.opts.Session,
		Theme:   a.opts.Theme,
		Recent:  a.opts.Recent,
		Now:     a.opts.Now,
		Ctx:     ctx,
		Gen:     a.gen,
		Width:   size.Width,
		Height:  size.Height,
		Notice:  notice,
	}

	a.route = route
	a.page = build(route, env)
	slog.Debug("Navigated", "path", route.Path, "requested", path, "gen", a.gen)

	return a.page.Init()
}

func build(route router.Route, env page.Env) page.Page {
	switch route.Path {
	case router.Login:
		return login.New(env)
	case router.Register:
		return register.New(env)
	case router.Dashboard:
		return dashboard.New(env)
	case router.Profile:
		return profile.New(env)
	case router.Messages:
		return messages.New(env)
	case router.Calendar:
		return calendar.New(env)
	case router.Settings:
		return settings.New(env)
	default:
		return newNotFound(env)
	}
}

func (a *App) logout() tea.Cmd {
	if err := a.opts.Session.Clear(); err != nil {
		slog.Warn("Failed to clear session", "error", err)
	}
	a.user = nil
	a.unread = 0
	slog.Info("Logged out")
	return a.navigate(router.Login, SignedOutNotice)
}

func (a *App) stop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *App) restyleHelp() {
	p := a.opts.Theme.Palette()
	a.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(p.Primary)
	a.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(p.Muted)
	a.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(p.Border)
	a.help.Styles.Ellipsis = lipgloss.NewStyle().Foreground(p.Muted)
}

// View implements tea.Model
func (a *App) View() string {
	if a.page == nil {
		return ""
	}
	if !a.route.Shell {
		return a.page.View()
	}
	return a.wrapWithFrame(a.page.View())
}

// Run starts the TUI
func Run(opts Options) error {
	app := New(opts)
	defer app.stop()

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
