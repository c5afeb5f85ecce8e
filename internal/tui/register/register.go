// ABOUTME: Account registration screen
// ABOUTME: Success returns to the login screen with a notice

package register

import (
	"context"
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

// CreatedNotice is shown on the login page after registering
const CreatedNotice = "Account created. Please sign in."

type resultMsg struct {
	err error
}

var (
	submitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/register"))
	backKey   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to sign in"))
)

// Model is the registration page
type Model struct {
	env  page.Env
	form *huh.Form
	flow modal.Workflow
	reg  client.Registration
}

// New creates the registration page
func New(env page.Env) *Model {
	m := &Model{env: env}
	m.form = m.build()
	return m
}

func (m *Model) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&m.reg.FirstName).
				Validate(modal.Required("First name")),
			huh.NewInput().
				Title("Last name").
				Value(&m.reg.LastName),
			huh.NewInput().
				Title("Email").
				Value(&m.reg.Email).
				Validate(modal.Required("Email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.reg.Password).
				Validate(modal.Required("Password")),
		),
	).WithShowHelp(false).WithTheme(m.env.Theme.Form())
}

// Fill replaces the form values
func (m *Model) Fill(reg client.Registration) {
	m.reg = reg
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
		m.flow.Finish(msg.err)
		if msg.err != nil {
			slog.Warn("Registration failed", "email", m.reg.Email, "error", msg.err)
			m.form = m.build()
			return m, m.form.Init()
		}
		slog.Info("Registered account", "email", m.reg.Email)
		return m, page.NavigateWithNotice(router.Login, CreatedNotice)

	case tea.WindowSizeMsg:
		m.env.Width, m.env.Height = msg.Width, msg.Height

	case page.ThemeChangedMsg:
		m.form.WithTheme(m.env.Theme.Form())
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, backKey) {
			return m, page.Navigate(router.Login)
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

// Submit posts the registration. Ignored while one is in flight.
func (m *Model) Submit() tea.Cmd {
	if err := m.flow.Begin(); err != nil {
		return nil
	}
	reg := client.Registration{
		FirstName: strings.TrimSpace(m.reg.FirstName),
		LastName:  strings.TrimSpace(m.reg.LastName),
		Email:     strings.TrimSpace(m.reg.Email),
		Password:  m.reg.Password,
	}
	gw := m.env.Client
	return m.env.Async(func(ctx context.Context) tea.Msg {
		return resultMsg{err: gw.Register(ctx, reg)}
	})
}

// View implements page.Page
func (m *Model) View() string {
	theme := m.env.Theme

	var sb strings.Builder
	sb.WriteString(theme.Title().Render(icons.App.String() + " Create your account"))
	sb.WriteString("\n")
	sb.WriteString(m.form.View())
	sb.WriteString("\n")

	switch m.flow.Status() {
	case modal.Submitting:
		sb.WriteString(theme.Subtitle().Render("Creating account..."))
		sb.WriteString("\n")
	case modal.Failed:
		sb.WriteString(styles.StatusCritical.Render(m.flow.Err().Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(theme.Help().Render(theme.Key().Render("esc") + " back to sign in"))

	panel := theme.ActivePanel().Width(52).Render(sb.String())
	if m.env.Width > 0 && m.env.Height > 0 {
		return lipgloss.Place(m.env.Width, m.env.Height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}

// Keys implements page.Page
func (m *Model) Keys() []key.Binding {
	return []key.Binding{submitKey, backKey}
}

// Capturing implements page.Page
func (m *Model) Capturing() bool {
	return true
}
