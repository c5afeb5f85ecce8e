// ABOUTME: Calendar page with its own client-local meeting list
// ABOUTME: Meetings are added through the schedule modal and deleted in place

package calendar

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/jobdash/internal/tracker"
	"github.com/markalston/jobdash/internal/tui/icons"
	"github.com/markalston/jobdash/internal/tui/modal"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/styles"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Delete key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:    key.NewBinding(key.WithKeys("a", "s"), key.WithHelp("a", "schedule meeting")),
	Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
}

// Model is the calendar page
type Model struct {
	env    page.Env
	book   *tracker.MeetingBook
	modal  *modal.Modal
	cursor int
	notice string
}

// New creates the calendar page with an empty meeting book
func New(env page.Env) *Model {
	return &Model{
		env:   env,
		book:  tracker.NewMeetingBook(env.Now),
		modal: modal.New(modal.ScheduleMeeting, env.Theme),
	}
}

// Book returns the page's meetings
func (m *Model) Book() *tracker.MeetingBook {
	return m.book
}

// Modal returns the schedule-meeting modal
func (m *Model) Modal() *modal.Modal {
	return m.modal
}

// Notice returns the last action notice
func (m *Model) Notice() string {
	return m.notice
}

// Init implements page.Page
func (m *Model) Init() tea.Cmd {
	return nil
}

// Selected returns the meeting under the cursor in date order
func (m *Model) Selected() (tracker.Meeting, bool) {
	sorted := m.book.Sorted()
	if m.cursor < 0 || m.cursor >= len(sorted) {
		return tracker.Meeting{}, false
	}
	return sorted[m.cursor], true
}

// DeleteSelected removes the meeting under the cursor
func (m *Model) DeleteSelected() bool {
	meeting, ok := m.Selected()
	if !ok {
		return false
	}
	m.book.Delete(meeting.ID)
	if m.cursor >= m.book.Len() {
		m.cursor = max(0, m.book.Len()-1)
	}
	m.notice = fmt.Sprintf("Deleted %q", meeting.Title)
	return true
}

// Update implements page.Page
func (m *Model) Update(msg tea.Msg) (page.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case modal.SubmitMsg:
		meeting, err := m.book.Add(m.modal.Meeting())
		cmd := m.modal.Finish(err)
		if err == nil {
			slog.Debug("Meeting scheduled", "id", meeting.ID, "date", meeting.Date)
			m.notice = modal.ScheduleMeeting.SuccessText()
		}
		return m, cmd

	case modal.ClosedMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.env.Width, m.env.Height = msg.Width, msg.Height
		return m, nil

	case page.ThemeChangedMsg:
		m.modal.Restyle()
		return m, nil

	case tea.KeyMsg:
		if !m.modal.IsOpen() {
			return m, m.handleKey(msg)
		}
	}

	if m.modal.IsOpen() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < m.book.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Add):
		m.notice = ""
		return m.modal.Open()
	case key.Matches(msg, keys.Delete):
		m.DeleteSelected()
	}
	return nil
}

// View implements page.Page
func (m *Model) View() string {
	if m.modal.IsOpen() {
		body := m.modal.View()
		if m.env.Width > 0 && m.env.Height > 0 {
			return lipgloss.Place(m.env.Width, m.env.Height, lipgloss.Center, lipgloss.Center, body)
		}
		return body
	}

	theme := m.env.Theme
	var sb strings.Builder

	sb.WriteString(theme.Title().Render(icons.Calendar.String() + " Calendar"))
	sb.WriteString("\n")
	sb.WriteString(theme.Subtitle().Render(fmt.Sprintf("%d scheduled", m.book.Len())))
	sb.WriteString("\n\n")

	if m.notice != "" {
		sb.WriteString(styles.StatusOK.Render(m.notice))
		sb.WriteString("\n\n")
	}

	if m.book.Len() == 0 {
		sb.WriteString(theme.Subtitle().Render("No meetings scheduled."))
		sb.WriteString("\n")
		sb.WriteString(theme.Help().Render("Press a to schedule one"))
		return sb.String()
	}

	now := m.book.Now()
	for i, meeting := range m.book.Sorted() {
		prefix := "  "
		if i == m.cursor {
			prefix = theme.Selected().Render("> ")
		}
		sb.WriteString(prefix)
		sb.WriteString(timingMarker(tracker.TimingAt(meeting.Date, now)))
		sb.WriteString(" ")
		sb.WriteString(theme.Text().Render(meeting.Title))
		sb.WriteString("  ")
		sb.WriteString(theme.Subtitle().Render(tracker.FormatWhen(meeting.Date, now)))
		if meeting.Notes != "" {
			sb.WriteString("\n    ")
			sb.WriteString(theme.Help().Render(meeting.Notes))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func timingMarker(t tracker.Timing) string {
	switch t {
	case tracker.TimingPast:
		return styles.StatusWarning.Render("past")
	case tracker.TimingNow:
		return styles.StatusOK.Render("now ")
	default:
		return styles.StatusOK.Render("next")
	}
}

// Keys implements page.Page
func (m *Model) Keys() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.Add, keys.Delete}
}

// Capturing implements page.Page
func (m *Model) Capturing() bool {
	return m.modal.IsOpen()
}
