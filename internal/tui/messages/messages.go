// ABOUTME: Messages page listing notifications with unread markers
// ABOUTME: Mark-read calls the backend, then flips the one message locally

package messages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/datasync"
	"github.com/markalston/jobdash/internal/tracker"
	"github.com/markalston/jobdash/internal/tui/icons"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/styles"
)

type fetchedMsg struct {
	messages []client.Message
	err      error
}

type markedMsg struct {
	id  string
	err error
}

var (
	upKey      = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	downKey    = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	readKey    = key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "mark as read"))
	refreshKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
)

// Model is the messages page
type Model struct {
	env     page.Env
	spinner spinner.Model
	state   datasync.State
	err     error
	inbox   *tracker.Inbox
	cursor  int
	pending map[string]bool
	notice  string
}

// New creates the messages page. The list loads on Init.
func New(env page.Env) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(env.Theme.Palette().Primary)

	return &Model{
		env:     env,
		spinner: s,
		state:   datasync.Loading,
		inbox:   tracker.NewInbox(nil),
		pending: map[string]bool{},
	}
}

// Inbox returns the local message list
func (m *Model) Inbox() *tracker.Inbox {
	return m.inbox
}

// State returns the list load state
func (m *Model) State() datasync.State {
	return m.state
}

// Init implements page.Page
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m *Model) fetch() tea.Cmd {
	m.state = datasync.Loading
	gw := m.env.Client
	return m.env.Async(func(ctx context.Context) tea.Msg {
		msgs, err := gw.FetchNotifications(ctx)
		return fetchedMsg{messages: msgs, err: err}
	})
}

// MarkSelected marks the message under the cursor as read
func (m *Model) MarkSelected() tea.Cmd {
	msg, ok := m.inbox.At(m.cursor)
	if !ok || msg.IsRead || m.pending[msg.ID] {
		return nil
	}
	m.pending[msg.ID] = true
	m.notice = ""

	id := msg.ID
	gw := m.env.Client
	return m.env.Async(func(ctx context.Context) tea.Msg {
		return markedMsg{id: id, err: gw.MarkRead(ctx, id)}
	})
}

// Update implements page.Page
func (m *Model) Update(msg tea.Msg) (page.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if msg.err != nil {
			slog.Error("Fetching messages failed", "error", msg.err)
			m.state = datasync.Failure
			m.err = msg.err
			return m, nil
		}
		m.state = datasync.Success
		m.err = nil
		m.inbox.Replace(msg.messages)
		if m.cursor >= m.inbox.Len() {
			m.cursor = max(0, m.inbox.Len()-1)
		}
		return m, page.Emit(page.UnreadMsg{Count: m.inbox.Unread()})

	case markedMsg:
		delete(m.pending, msg.id)
		if msg.err != nil {
			slog.Warn("Mark as read failed", "id", msg.id, "error", msg.err)
			m.notice = msg.err.Error()
			return m, nil
		}
		m.inbox.MarkRead(msg.id)
		return m, page.Emit(page.UnreadMsg{Count: m.inbox.Unread()})

	case spinner.TickMsg:
		if m.state != datasync.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.env.Width, m.env.Height = msg.Width, msg.Height

	case page.ThemeChangedMsg:
		m.spinner.Style = lipgloss.NewStyle().Foreground(m.env.Theme.Palette().Primary)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, upKey):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, downKey):
			if m.cursor < m.inbox.Len()-1 {
				m.cursor++
			}
		case key.Matches(msg, readKey):
			return m, m.MarkSelected()
		case key.Matches(msg, refreshKey):
			if m.state != datasync.Loading {
				return m, tea.Batch(m.spinner.Tick, m.fetch())
			}
		}
	}
	return m, nil
}

// View implements page.Page
func (m *Model) View() string {
	theme := m.env.Theme
	var sb strings.Builder

	sb.WriteString(theme.Title().Render(icons.Messages.String() + " Messages"))
	sb.WriteString("\n")

	if m.notice != "" {
		sb.WriteString(styles.StatusCritical.Render(m.notice))
		sb.WriteString("\n\n")
	}

	switch m.state {
	case datasync.Loading:
		sb.WriteString(m.spinner.View() + " Loading...")
		return sb.String()
	case datasync.Failure:
		sb.WriteString(styles.StatusCritical.Render(m.err.Error()))
		return sb.String()
	}

	if m.inbox.Len() == 0 {
		sb.WriteString(theme.Subtitle().Render("No messages."))
		return sb.String()
	}

	sb.WriteString(theme.Subtitle().Render(pluralUnread(m.inbox.Unread())))
	sb.WriteString("\n\n")

	for i, msg := range m.inbox.Messages() {
		marker := icons.Read.String()
		if !msg.IsRead {
			marker = styles.StatusOK.Render(icons.Unread.String())
		}
		line := marker + " " + msg.Message
		if i == m.cursor {
			line = theme.Selected().Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line)
		if created := tracker.FormatCreated(msg.CreatedAt); created != "" {
			sb.WriteString("\n    " + theme.Subtitle().Render(created))
		}
		if m.pending[msg.ID] {
			sb.WriteString(" " + theme.Subtitle().Render("marking..."))
		}
		if i < m.inbox.Len()-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func pluralUnread(n int) string {
	switch n {
	case 0:
		return "All caught up"
	case 1:
		return "1 unread message"
	default:
		return fmt.Sprintf("%d unread messages", n)
	}
}

// Keys implements page.Page
func (m *Model) Keys() []key.Binding {
	return []key.Binding{upKey, downKey, readKey, refreshKey}
}

// Capturing implements page.Page
func (m *Model) Capturing() bool {
	return false
}
