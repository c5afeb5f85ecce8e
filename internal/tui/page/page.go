// ABOUTME: Contract between the app shell and the routed pages
// ABOUTME: Pages get an Env per mount; async results are tagged with the mount generation

package page

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/session"
	"github.com/markalston/jobdash/internal/tui/recentlogins"
	"github.com/markalston/jobdash/internal/tui/styles"
)

// Gateway is the backend surface the pages use. *client.Client satisfies it.
type Gateway interface {
	Login(ctx context.Context, creds client.Credentials) (string, error)
	Register(ctx context.Context, reg client.Registration) error
	FetchUser(ctx context.Context) (*client.User, error)
	UpdateUser(ctx context.Context, update client.ProfileUpdate) error
	FetchJobs(ctx context.Context) ([]client.Job, error)
	CreateJob(ctx context.Context, input client.JobInput) (*client.Job, error)
	FetchNotifications(ctx context.Context) ([]client.Message, error)
	SendNotification(ctx context.Context, text string) (*client.Message, error)
	MarkRead(ctx context.Context, id string) error
}

var _ Gateway = (*client.Client)(nil)

// Env is what a page can reach. Ctx is canceled when the page is left.
type Env struct {
	Client  Gateway
	Session session.Store
	Theme   *styles.Theme
	Recent  *recentlogins.Recent
	Now     func() time.Time

	Ctx    context.Context
	Gen    int
	Width  int
	Height int
	Notice string
}

// Page is a routed screen
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string
	// Keys lists the bindings shown in the footer
	Keys() []key.Binding
	// Capturing reports whether the page is taking text input, in which
	// case the shell leaves single-letter keys alone
	Capturing() bool
}

// Loaded wraps the result of an async call with the generation that started it
type Loaded struct {
	Gen int
	Msg tea.Msg
}

// Async runs fn against the page context and tags its result
func (e Env) Async(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	ctx, gen := e.Ctx, e.Gen
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		return Loaded{Gen: gen, Msg: fn(ctx)}
	}
}

// Clock returns the current time from Now, or time.Now when unset
func (e Env) Clock() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// NavigateMsg asks the shell to switch routes. Notice is shown on the new page.
type NavigateMsg struct {
	Path   string
	Notice string
}

// LogoutMsg asks the shell to clear the session and return to login
type LogoutMsg struct{}

// UnreadMsg updates the header unread badge
type UnreadMsg struct {
	Count int
}

// UserMsg updates the header initials
type UserMsg struct {
	User *client.User
}

// ThemeChangedMsg is broadcast after the theme flips so pages can restyle forms
type ThemeChangedMsg struct{}

// Navigate returns a command producing a NavigateMsg
func Navigate(path string) tea.Cmd {
	return NavigateWithNotice(path, "")
}

// NavigateWithNotice is Navigate with a one-off notice for the target page
func NavigateWithNotice(path, notice string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path, Notice: notice}
	}
}

// Emit wraps a message in a command
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
