// ABOUTME: Profile page that loads the current user and edits name and password
// ABOUTME: Saves with PUT /auth/me; an empty password leaves it unchanged

package profile

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/datasync"
	"github.com/markalston/jobdash/internal/tui/icons"
	"github.com/markalston/jobdash/internal/tui/modal"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/styles"
)

const (
	// LoadFailedText replaces the form when the user cannot be loaded
	LoadFailedText = "Failed to load user info"
	// SavedText is shown after a successful update
	SavedText = "Profile updated!"
)

type userMsg struct {
	user *client.User
	err  error
}

type savedMsg struct {
	update client.ProfileUpdate
	err    error
}

var (
	editKey   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	saveKey   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/save"))
	cancelKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	retryKey  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry"))
)

// Model is the profile page
type Model struct {
	env     page.Env
	spinner spinner.Model
	user    datasync.Result[*client.User]
	form    *huh.Form
	flow    modal.Workflow
	editing bool
	saved   bool

	firstName string
	lastName  string
	password  string
}

// New creates the profile page. The user loads on Init.
func New(env page.Env) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(env.Theme.Palette().Primary)

	return &Model{
		env:     env,
		spinner: s,
		user:    datasync.Start[*client.User](),
	}
}

// User returns the load result
func (m *Model) User() datasync.Result[*client.User] {
	return m.user
}

// Status returns the save workflow state
func (m *Model) Status() modal.Status {
	return m.flow.Status()
}

// Editing reports whether the form is shown
func (m *Model) Editing() bool {
	return m.editing
}

// Edit opens the form with the loaded values
func (m *Model) Edit() tea.Cmd {
	if !m.user.Ok() {
		return nil
	}
	m.editing = true
	m.saved = false
	m.flow.Close()
	m.resetFields()
	m.form = m.build()
	return m.form.Init()
}

func (m *Model) resetFields() {
	m.firstName = m.user.Data.FirstName
	m.lastName = m.user.Data.LastName
	m.password = ""
}

// Fill replaces the form values
func (m *Model) Fill(update client.ProfileUpdate) {
	m.firstName = update.FirstName
	m.lastName = update.LastName
	m.password = update.Password
}

// Init implements page.Page
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *Model) load() tea.Cmd {
	m.user = datasync.Start[*client.User]()
	gw := m.env.Client
	return m.env.Async(func(ctx context.Context) tea.Msg {
		user, err := gw.FetchUser(ctx)
		return userMsg{user: user, err: err}
	})
}

func (m *Model) build() *huh.Form {
	email := ""
	if m.user.Data != nil {
		email = m.user.Data.Email
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Email").
				Description(email),
			huh.NewInput().
				Title("First Name").
				Value(&m.firstName).
				Validate(modal.Required("First name")),
			huh.NewInput().
				Title("Last Name").
				Value(&m.lastName),
			huh.NewInput().
				Title("New Password").
				Placeholder("leave blank to keep current").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),
		),
	).WithShowHelp(false).WithTheme(m.env.Theme.Form())
}

// Update implements page.Page
func (m *Model) Update(msg tea.Msg) (page.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case userMsg:
		if msg.err != nil {
			slog.Error("Loading profile failed", "error", msg.err)
			m.user = datasync.Fail[*client.User](msg.err)
			return m, nil
		}
		m.user = datasync.Done(msg.user)
		m.resetFields()
		return m, page.Emit(page.UserMsg{User: msg.user})

	case savedMsg:
		return m, m.finish(msg)

	case spinner.TickMsg:
		if !m.user.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.env.Width, m.env.Height = msg.Width, msg.Height
		return m, nil

	case page.ThemeChangedMsg:
		m.spinner.Style = lipgloss.NewStyle().Foreground(m.env.Theme.Palette().Primary)
		if m.form != nil {
			m.form.WithTheme(m.env.Theme.Form())
		}
		return m, nil

	case tea.KeyMsg:
		if m.user.Failed() {
			if key.Matches(msg, retryKey) {
				return m, tea.Batch(m.spinner.Tick, m.load())
			}
			return m, nil
		}
		if !m.editing {
			if key.Matches(msg, editKey) {
				return m, m.Edit()
			}
			return m, nil
		}
		if m.flow.Busy() {
			return m, nil
		}
		if key.Matches(msg, cancelKey) {
			m.editing = false
			m.flow.Close()
			return m, nil
		}
	}

	if !m.editing || m.form == nil {
		return m, nil
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

// Submit sends the profile update. Ignored until the user has loaded and
// while a save is in flight.
func (m *Model) Submit() tea.Cmd {
	if !m.user.Ok() {
		return nil
	}
	if err := m.flow.Begin(); err != nil {
		return nil
	}
	m.saved = false

	update := client.ProfileUpdate{
		FirstName: strings.TrimSpace(m.firstName),
		LastName:  strings.TrimSpace(m.lastName),
		Password:  m.password,
	}
	gw := m.env.Client
	return m.env.Async(func(ctx context.Context) tea.Msg {
		return savedMsg{update: update, err: gw.UpdateUser(ctx, update)}
	})
}

func (m *Model) finish(msg savedMsg) tea.Cmd {
	m.flow.Finish(msg.err)
	m.password = ""

	if msg.err != nil {
		slog.Warn("Profile update failed", "error", msg.err)
		m.form = m.build()
		return m.form.Init()
	}

	m.saved = true
	m.editing = false
	user := *m.user.Data
	user.FirstName = msg.update.FirstName
	user.LastName = msg.update.LastName
	m.user = datasync.Done(&user)
	slog.Info("Profile updated", "email", user.Email)

	return page.Emit(page.UserMsg{User: &user})
}

// View implements page.Page
func (m *Model) View() string {
	theme := m.env.Theme
	var sb strings.Builder

	sb.WriteString(theme.Title().Render(icons.Profile.String() + " Profile"))
	sb.WriteString("\n\n")

	switch {
	case m.user.Loading():
		sb.WriteString(m.spinner.View() + " Loading...")
		return sb.String()
	case m.user.Failed():
		sb.WriteString(styles.StatusCritical.Render(LoadFailedText))
		sb.WriteString("\n")
		sb.WriteString(theme.Help().Render("Press r to retry"))
		return sb.String()
	}

	if m.editing && m.form != nil {
		sb.WriteString(m.form.View())
	} else {
		sb.WriteString(m.renderDetails())
	}
	sb.WriteString("\n")

	switch m.flow.Status() {
	case modal.Submitting:
		sb.WriteString(theme.Subtitle().Render("Saving..."))
	case modal.Failed:
		sb.WriteString(styles.StatusCritical.Render(m.flow.Err().Error()))
	case modal.Succeeded:
		if m.saved {
			sb.WriteString(styles.StatusOK.Render(SavedText))
		}
	}
	return sb.String()
}

func (m *Model) renderDetails() string {
	theme := m.env.Theme
	u := m.user.Data
	rows := [][2]string{
		{"Name", strings.TrimSpace(u.FirstName + " " + u.LastName)},
		{"Email", u.Email},
	}
	if u.Role != "" {
		rows = append(rows, [2]string{"Role", u.Role})
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(theme.Subtitle().Width(8).Render(row[0]))
		sb.WriteString(theme.Value().Render(row[1]))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(theme.Help().Render("Press e to edit"))
	return sb.String()
}

// Keys implements page.Page
func (m *Model) Keys() []key.Binding {
	switch {
	case m.user.Failed():
		return []key.Binding{retryKey}
	case m.editing:
		return []key.Binding{saveKey, cancelKey}
	default:
		return []key.Binding{editKey}
	}
}

// Capturing implements page.Page
func (m *Model) Capturing() bool {
	return m.editing
}
