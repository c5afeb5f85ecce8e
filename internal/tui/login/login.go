// ABOUTME: Sign-in screen with email/password form and demo credentials hint
// ABOUTME: A successful login stores the token and navigates to the dashboard

package login

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/tui/icons"
	"github.com/markalston/jobdash/internal/tui/modal"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/router"
	"github.com/markalston/jobdash/internal/tui/styles"
)

// DemoHint is shown under the form
const DemoHint = "Demo credentials: demo@example.com / password"

type resultMsg struct {
	token string
	err   error
}

type keyMap struct {
	Submit   key.Binding
	Register key.Binding
}

var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/sign in")),
	Register: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "create account")),
}

// Model is the login page
type Model struct {
	env  page.Env
	form *huh.Form
	flow modal.Workflow

	email    string
	password string
}

// New creates the login page, prefilling the last email used
func New(env page.Env) *Model {
	m := &Model{env: env}
	if env.Recent != nil {
		m.email = env.Recent.Last()
	}
	m.form = m.build()
	return m
}

func (m *Model) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.email).
				Validate(modal.Required("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password).
				Validate(modal.Required("Password")),
		),
	).WithShowHelp(false).WithTheme(m.env.Theme.Form())
}

// Fill replaces the form values
func (m *Model) Fill(creds client.Credentials) {
	m.email = creds.Email
	m.password = creds.Password
}

// Status returns the submit state
func (m *Model) Status() modal.Status {
	return m.flow.Status()
}

// Init implements page.Page
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements page.Page
func (m *Model) Update(msg tea.Msg) (page.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return m.finish(msg)

	case tea.WindowSizeMsg:
		m.env.Width, m.env.Height = msg.Width, msg.Height

	case page.ThemeChangedMsg:
		m.form.WithTheme(m.env.Theme.Form())
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Register) {
			return m, page.Navigate(router.Register)
		}
		if m.flow.Busy() {
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.Submit()
	}
	return m, cmd
}

// Submit sends the current credentials. Ignored while a login is in flight.
func (m *Model) Submit() tea.Cmd {
	if err := m.flow.Begin(); err != nil {
		return nil
	}
	creds := client.Credentials{Email: strings.TrimSpace(m.email), Password: m.password}
	gw := m.env.Client
	return m.env.Async(func(ctx context.Context) tea.Msg {
		token, err := gw.Login(ctx, creds)
		return resultMsg{token: token, err: err}
	})
}

func (m *Model) finish(msg resultMsg) (page.Page, tea.Cmd) {
	err := msg.err
	if err == nil {
		if storeErr := m.env.Session.SetToken(msg.token); storeErr != nil {
			err = fmt.Errorf("failed to save session: %w", storeErr)
		}
	}
	m.flow.Finish(err)

	if err != nil {
		slog.Warn("Login failed", "email", m.email, "error", err)
		m.form = m.build()
		return m, m.form.Init()
	}

	email := strings.TrimSpace(m.email)
	if m.env.Recent != nil {
		if err := m.env.Recent.Add(email); err != nil {
			slog.Warn("Failed to remember login email", "error", err)
		}
	}
	slog.Info("Login succeeded", "email", email)
	return m, page.Navigate(router.Dashboard)
}

// View implements page.Page
func (m *Model) View() string {
	theme := m.env.Theme

	var sb strings.Builder
	sb.WriteString(theme.Title().Render(icons.App.String() + " Sign in to jobdash"))
	sb.WriteString("\n")
	if m.env.Notice != "" {
		sb.WriteString(styles.StatusOK.Render(m.env.Notice))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.form.View())
	sb.WriteString("\n")

	switch m.flow.Status() {
	case modal.Submitting:
		sb.WriteString(theme.Subtitle().Render("Signing in..."))
		sb.WriteString("\n")
	case modal.Failed:
		sb.WriteString(styles.StatusCritical.Render(m.flow.Err().Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(theme.Subtitle().Render(DemoHint))
	sb.WriteString("\n")
	sb.WriteString(theme.Help().Render("No account? " + theme.Key().Render("ctrl+r") + " to register"))

	panel := theme.ActivePanel().Width(52).Render(sb.String())
	if m.env.Width > 0 && m.env.Height > 0 {
		return lipgloss.Place(m.env.Width, m.env.Height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}

// Keys implements page.Page
func (m *Model) Keys() []key.Binding {
	return []key.Binding{keys.Submit, keys.Register}
}

// Capturing implements page.Page
func (m *Model) Capturing() bool {
	return true
}
