// ABOUTME: Quick-action modal forms as bubbletea components
// ABOUTME: Wraps a huh form in the submit workflow; the owning page performs the call

package modal

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/tracker"
	"github.com/markalston/jobdash/internal/tui/styles"
)

// Kind selects which form a modal shows
type Kind int

const (
	CreateProject Kind = iota
	SendMessage
	ScheduleMeeting
)

// Title is the modal heading
func (k Kind) Title() string {
	switch k {
	case CreateProject:
		return "Create New Project"
	case SendMessage:
		return "Send Message"
	case ScheduleMeeting:
		return "Schedule Meeting"
	default:
		return ""
	}
}

// SuccessText is the notice shown after a successful submit
func (k Kind) SuccessText() string {
	switch k {
	case CreateProject:
		return "Project created successfully!"
	case SendMessage:
		return "Message sent successfully!"
	case ScheduleMeeting:
		return "Meeting scheduled!"
	default:
		return ""
	}
}

func (k Kind) pendingText() string {
	switch k {
	case CreateProject:
		return "Creating..."
	case SendMessage:
		return "Sending..."
	default:
		return "Scheduling..."
	}
}

// SubmitMsg is sent when the form completes and the workflow is Submitting
type SubmitMsg struct {
	Kind Kind
}

// ClosedMsg is sent when the user dismisses the modal
type ClosedMsg struct {
	Kind Kind
}

// Required-field errors
var (
	ErrProjectIncomplete = errors.New("Company name and job title are required")
	ErrMessageEmpty      = errors.New("Message is required")
)

// Modal is one quick-action form
type Modal struct {
	kind  Kind
	theme *styles.Theme
	form  *huh.Form
	flow  Workflow
	open  bool

	project client.JobInput
	message string
	meeting tracker.MeetingInput
}

// New creates a closed modal with an empty form buffer
func New(kind Kind, theme *styles.Theme) *Modal {
	m := &Modal{kind: kind, theme: theme}
	m.reset()
	return m
}

// Kind returns which form this modal shows
func (m *Modal) Kind() Kind {
	return m.kind
}

// IsOpen reports whether the modal is visible
func (m *Modal) IsOpen() bool {
	return m.open
}

// Status returns the workflow state
func (m *Modal) Status() Status {
	return m.flow.Status()
}

// Err returns the last submit error
func (m *Modal) Err() error {
	return m.flow.Err()
}

// Open shows the modal. The form buffer keeps whatever it held when last closed.
func (m *Modal) Open() tea.Cmd {
	m.open = true
	m.flow.Close()
	m.form = m.build()
	return m.form.Init()
}

// Close hides the modal and resets the workflow to Idle
func (m *Modal) Close() {
	m.open = false
	m.flow.Close()
}

// Project returns the create-project buffer
func (m *Modal) Project() client.JobInput {
	return client.JobInput{
		CompanyName: strings.TrimSpace(m.project.CompanyName),
		JobTitle:    strings.TrimSpace(m.project.JobTitle),
		Status:      strings.TrimSpace(m.project.Status),
		Notes:       m.project.Notes,
	}
}

// Message returns the send-message buffer
func (m *Modal) Message() string {
	return strings.TrimSpace(m.message)
}

// Meeting returns the schedule-meeting buffer
func (m *Modal) Meeting() tracker.MeetingInput {
	return m.meeting
}

// SetProject replaces the create-project buffer
func (m *Modal) SetProject(in client.JobInput) {
	m.project = in
}

// SetMessage replaces the send-message buffer
func (m *Modal) SetMessage(text string) {
	m.message = text
}

// SetMeeting replaces the schedule-meeting buffer
func (m *Modal) SetMeeting(in tracker.MeetingInput) {
	m.meeting = in
}

// Restyle applies the current theme to an open form
func (m *Modal) Restyle() {
	if m.form != nil {
		m.form.WithTheme(m.theme.Form())
	}
}

// Update forwards input to the form and starts a submission when it completes
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if !m.open {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Input, esc included, waits for the in-flight call to Finish
		if m.flow.Busy() {
			return m, nil
		}
		if keyMsg.String() == "esc" {
			m.Close()
			kind := m.kind
			return m, func() tea.Msg { return ClosedMsg{Kind: kind} }
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

// Submit moves to Submitting and asks the owner to perform the call. A
// second Submit while one is in flight is dropped.
func (m *Modal) Submit() tea.Cmd {
	if !m.open {
		return nil
	}
	if err := m.flow.Begin(); err != nil {
		return nil
	}
	if err := m.validate(); err != nil {
		m.flow.Finish(err)
		m.form = m.build()
		return m.form.Init()
	}
	kind := m.kind
	return func() tea.Msg { return SubmitMsg{Kind: kind} }
}

// Finish records the owner's call result. Success clears the buffer and
// closes the modal; failure keeps it open with the error shown.
func (m *Modal) Finish(err error) tea.Cmd {
	if !m.flow.Busy() {
		return nil
	}
	m.flow.Finish(err)
	if err != nil {
		m.form = m.build()
		return m.form.Init()
	}
	m.reset()
	m.Close()
	return nil
}

func (m *Modal) validate() error {
	switch m.kind {
	case CreateProject:
		p := m.Project()
		if p.CompanyName == "" || p.JobTitle == "" {
			return ErrProjectIncomplete
		}
	case SendMessage:
		if m.Message() == "" {
			return ErrMessageEmpty
		}
	case ScheduleMeeting:
		if strings.TrimSpace(m.meeting.Title) == "" || strings.TrimSpace(m.meeting.Date) == "" {
			return tracker.ErrMeetingIncomplete
		}
		return tracker.ValidateMeetingDate(m.meeting.Date)
	}
	return nil
}

func (m *Modal) reset() {
	m.project = client.JobInput{Status: client.DefaultJobStatus}
	m.message = ""
	m.meeting.Reset()
}

func (m *Modal) build() *huh.Form {
	var group *huh.Group
	switch m.kind {
	case CreateProject:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Company Name").
				Value(&m.project.CompanyName).
				Validate(Required("Company name")),
			huh.NewInput().
				Title("Job Title").
				Value(&m.project.JobTitle).
				Validate(Required("Job title")),
			huh.NewInput().
				Title("Status").
				Placeholder("Applied, Interview, Offer, etc").
				Value(&m.project.Status),
			huh.NewText().
				Title("Notes").
				Lines(3).
				Value(&m.project.Notes),
		)
	case SendMessage:
		group = huh.NewGroup(
			huh.NewText().
				Title("Your message").
				Lines(4).
				Value(&m.message).
				Validate(Required("Message")),
		)
	default:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Meeting Title").
				Value(&m.meeting.Title).
				Validate(Required("Title")),
			huh.NewInput().
				Title("Date").
				Placeholder(tracker.MeetingDateLayout).
				Value(&m.meeting.Date).
				Validate(tracker.ValidateMeetingDate),
			huh.NewText().
				Title("Notes").
				Lines(3).
				Value(&m.meeting.Notes),
		)
	}

	return huh.NewForm(group.Title(m.kind.Title())).
		WithShowHelp(false).
		WithTheme(m.theme.Form())
}

// Required is a huh validator rejecting blank input
func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// View renders the modal panel, or nothing when closed
func (m *Modal) View() string {
	if !m.open {
		return ""
	}

	var sb strings.Builder
	if m.form != nil {
		sb.WriteString(m.form.View())
	}
	switch m.flow.Status() {
	case Submitting:
		sb.WriteString("\n")
		sb.WriteString(m.theme.Subtitle().Render(m.kind.pendingText()))
	case Failed:
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render(m.flow.Err().Error()))
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.Help().Render("enter next/submit • esc cancel"))

	return m.theme.ActivePanel().Render(sb.String())
}
