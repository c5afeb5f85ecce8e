// ABOUTME: Dashboard page with stats, task progress, quick actions and meetings
// ABOUTME: Loads jobs, notifications and user together; any failure shows the error branch only

package dashboard

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
	"github.com/markalston/jobdash/internal/tui/modal"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/styles"
	"github.com/markalston/jobdash/internal/tui/widgets"
)

type loadedMsg struct {
	snap datasync.Snapshot
	err  error
}

type jobsMsg struct {
	jobs []client.Job
	err  error
}

type createdMsg struct{ err error }

type sentMsg struct{ err error }

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Project key.Binding
	Message key.Binding
	Meeting key.Binding
	Refresh key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle task")),
	Project: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
	Message: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "send message")),
	Meeting: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "schedule meeting")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
}

// Model is the dashboard page
type Model struct {
	env     page.Env
	spinner spinner.Model

	data     datasync.Result[datasync.Snapshot]
	tasks    *tracker.TaskList
	meetings *tracker.MeetingBook
	cursor   int

	modals map[modal.Kind]*modal.Modal
	active *modal.Modal

	notice    string
	noticeErr bool
}

// New creates the dashboard page. Data loads on Init.
func New(env page.Env) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(env.Theme.Palette().Primary)

	return &Model{
		env:      env,
		spinner:  s,
		data:     datasync.Start[datasync.Snapshot](),
		tasks:    tracker.NewTaskList(nil),
		meetings: tracker.NewMeetingBook(env.Now),
		modals: map[modal.Kind]*modal.Modal{
			modal.CreateProject:   modal.New(modal.CreateProject, env.Theme),
			modal.SendMessage:     modal.New(modal.SendMessage, env.Theme),
			modal.ScheduleMeeting: modal.New(modal.ScheduleMeeting, env.Theme),
		},
	}
}

// Init implements page.Page
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *Model) load() tea.Cmd {
	m.data = datasync.Start[datasync.Snapshot]()
	gw := m.env.Client
	return m.env.Async(func(ctx context.Context) tea.Msg {
		snap, err := datasync.LoadDashboard(ctx, gw)
		return loadedMsg{snap: snap, err: err}
	})
}

func (m *Model) fetchJobs() tea.Cmd {
	gw := m.env.Client
	return m.env.Async(func(ctx context.Context) tea.Msg {
		jobs, err := gw.FetchJobs(ctx)
		return jobsMsg{jobs: jobs, err: err}
	})
}

// Modal returns the modal for kind
func (m *Model) Modal(kind modal.Kind) *modal.Modal {
	return m.modals[kind]
}

// Data returns the current load result
func (m *Model) Data() datasync.Result[datasync.Snapshot] {
	return m.data
}

// Tasks returns the local task list
func (m *Model) Tasks() *tracker.TaskList {
	return m.tasks
}

// Meetings returns the dashboard's meeting book
func (m *Model) Meetings() *tracker.MeetingBook {
	return m.meetings
}

// Notice returns the last action notice
func (m *Model) Notice() string {
	return m.notice
}

// OpenModal shows the quick-action form for kind
func (m *Model) OpenModal(kind modal.Kind) tea.Cmd {
	m.active = m.modals[kind]
	m.notice = ""
	return m.active.Open()
}

func (m *Model) modalOpen() bool {
	return m.active != nil && m.active.IsOpen()
}

// Update implements page.Page
func (m *Model) Update(msg tea.Msg) (page.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return m, m.handleLoaded(msg)

	case jobsMsg:
		if msg.err != nil {
			slog.Warn("Job refresh failed", "error", msg.err)
			m.setNotice(msg.err.Error(), true)
			return m, nil
		}
		m.replaceJobs(msg.jobs)
		return m, nil

	case modal.SubmitMsg:
		return m, m.submit(msg.Kind)

	case createdMsg:
		cmd := m.Modal(modal.CreateProject).Finish(msg.err)
		if msg.err != nil {
			return m, cmd
		}
		m.setNotice(modal.CreateProject.SuccessText(), false)
		return m, m.fetchJobs()

	case sentMsg:
		cmd := m.Modal(modal.SendMessage).Finish(msg.err)
		if msg.err == nil {
			m.setNotice(modal.SendMessage.SuccessText(), false)
		}
		return m, cmd

	case modal.ClosedMsg:
		m.active = nil
		return m, nil

	case spinner.TickMsg:
		if !m.data.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.env.Width, m.env.Height = msg.Width, msg.Height

	case page.ThemeChangedMsg:
		m.spinner.Style = lipgloss.NewStyle().Foreground(m.env.Theme.Palette().Primary)
		for _, md := range m.modals {
			md.Restyle()
		}
		return m, nil

	case tea.KeyMsg:
		if !m.modalOpen() {
			return m, m.handleKey(msg)
		}
	}

	if m.modalOpen() {
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	if msg.err != nil {
		slog.Error("Dashboard load failed", "error", msg.err)
		m.data = datasync.Fail[datasync.Snapshot](msg.err)
		m.tasks.Replace(nil)
		m.cursor = 0
		return nil
	}

	m.data = datasync.Done(msg.snap)
	m.tasks.Replace(msg.snap.Jobs)
	m.clampCursor()
	slog.Debug("Dashboard loaded", "jobs", len(msg.snap.Jobs), "messages", len(msg.snap.Messages))

	return tea.Batch(
		page.Emit(page.UnreadMsg{Count: msg.snap.Unread()}),
		page.Emit(page.UserMsg{User: msg.snap.User}),
	)
}

func (m *Model) replaceJobs(jobs []client.Job) {
	m.tasks.Replace(jobs)
	m.clampCursor()
	if m.data.Ok() {
		snap := m.data.Data
		snap.Jobs = jobs
		snap.Stats = tracker.ComputeStats(jobs)
		m.data = datasync.Done(snap)
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= m.tasks.Len() {
		m.cursor = max(0, m.tasks.Len()-1)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < m.tasks.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if job, ok := m.tasks.At(m.cursor); ok {
			m.tasks.Toggle(job.ID)
		}
	case key.Matches(msg, keys.Project):
		return m.OpenModal(modal.CreateProject)
	case key.Matches(msg, keys.Message):
		return m.OpenModal(modal.SendMessage)
	case key.Matches(msg, keys.Meeting):
		return m.OpenModal(modal.ScheduleMeeting)
	case key.Matches(msg, keys.Refresh):
		if !m.data.Loading() {
			return tea.Batch(m.spinner.Tick, m.load())
		}
	}
	return nil
}

func (m *Model) submit(kind modal.Kind) tea.Cmd {
	md := m.Modal(kind)
	gw := m.env.Client

	switch kind {
	case modal.CreateProject:
		input := md.Project()
		return m.env.Async(func(ctx context.Context) tea.Msg {
			_, err := gw.CreateJob(ctx, input)
			return createdMsg{err: err}
		})

	case modal.SendMessage:
		text := md.Message()
		return m.env.Async(func(ctx context.Context) tea.Msg {
			_, err := gw.SendNotification(ctx, text)
			return sentMsg{err: err}
		})

	case modal.ScheduleMeeting:
		_, err := m.meetings.Add(md.Meeting())
		cmd := md.Finish(err)
		if err == nil {
			m.setNotice(kind.SuccessText(), false)
		}
		return cmd
	}
	return nil
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// Welcome returns the greeting line
func (m *Model) Welcome() string {
	if m.data.Ok() && m.data.Data.User != nil {
		return fmt.Sprintf("Welcome back, %s!", m.data.Data.User.DisplayName())
	}
	return "Welcome!"
}

// View implements page.Page
func (m *Model) View() string {
	if m.modalOpen() {
		body := m.active.View()
		if m.env.Width > 0 && m.env.Height > 0 {
			return lipgloss.Place(m.env.Width, m.env.Height, lipgloss.Center, lipgloss.Center, body)
		}
		return body
	}

	theme := m.env.Theme
	var sb strings.Builder

	sb.WriteString(theme.Title().Render(m.Welcome()))
	sb.WriteString("\n")
	sb.WriteString(theme.Subtitle().Render("Here's what's happening with your projects today."))
	sb.WriteString("\n\n")

	if m.notice != "" {
		if m.noticeErr {
			sb.WriteString(styles.StatusCritical.Render(m.notice))
		} else {
			sb.WriteString(styles.StatusOK.Render(m.notice))
		}
		sb.WriteString("\n\n")
	}

	switch {
	case m.data.Loading():
		sb.WriteString(m.spinner.View() + " Loading dashboard...")
	case m.data.Failed():
		sb.WriteString(styles.StatusCritical.Render(m.data.Message()))
		sb.WriteString("\n")
		sb.WriteString(theme.Help().Render("Press r to retry"))
	default:
		sb.WriteString(m.renderStats())
		sb.WriteString("\n\n")
		sb.WriteString(m.renderTasks())
		sb.WriteString("\n\n")
		sb.WriteString(m.renderActions())
		if m.meetings.Len() > 0 {
			sb.WriteString("\n\n")
			sb.WriteString(m.renderMeetings())
		}
	}

	style := lipgloss.NewStyle()
	if m.env.Width > 0 {
		style = style.Width(m.env.Width)
	}
	return style.Render(sb.String())
}

func (m *Model) blockConfig() widgets.MetricBlockConfig {
	p := m.env.Theme.Palette()
	cfg := widgets.DefaultMetricBlockConfig()
	cfg.BorderColor = p.Border
	cfg.TitleColor = p.Primary
	cfg.ValueColor = p.Text
	cfg.MutedColor = p.Muted
	return cfg
}

func (m *Model) renderStats() string {
	stats := m.data.Data.Stats
	cfg := m.blockConfig()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.CountBlock(icons.Briefcase, "Total Jobs", stats.TotalJobs, "tracked", cfg),
		" ",
		widgets.CountBlock(icons.Active, "Active Projects", stats.ActiveProjects, "applied or interview", cfg),
		" ",
		widgets.CountBlock(icons.Done, "Tasks Done", stats.TasksDone, "accepted or completed", cfg),
	)
}

func (m *Model) renderTasks() string {
	theme := m.env.Theme
	var sb strings.Builder

	sb.WriteString(theme.Value().Render("Task Progress"))
	sb.WriteString("\n")
	cfg := widgets.DefaultProgressBarConfig()
	cfg.EmptyColor = theme.Palette().Surface
	sb.WriteString(widgets.ProgressBarWithLabel(m.tasks.Progress(), cfg))
	sb.WriteString(fmt.Sprintf("  %d of %d tasks completed\n\n", m.tasks.Completed(), m.tasks.Len()))

	if m.tasks.Len() == 0 {
		sb.WriteString(theme.Subtitle().Render("No tasks yet. Press n to create a project."))
		return sb.String()
	}

	for i, job := range m.tasks.Jobs() {
		check := "[ ]"
		if job.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, job.DisplayTitle())
		if i == m.cursor {
			line = theme.Selected().Render("> " + line)
		} else {
			line = theme.Text().Render("  " + line)
		}
		sb.WriteString(line + " " + widgets.JobStatusBadge(job.Status))
		if i < m.tasks.Len()-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m *Model) renderActions() string {
	theme := m.env.Theme
	action := func(k string, icon icons.Icon, label string) string {
		return theme.Key().Render(k) + " " + icon.String() + " " + label
	}
	return theme.Value().Render("Quick Actions") + "\n" + strings.Join([]string{
		action("n", icons.Add, "New Project"),
		action("m", icons.Messages, "Send Message"),
		action("s", icons.Calendar, "Schedule Meeting"),
	}, "   ")
}

func (m *Model) renderMeetings() string {
	theme := m.env.Theme
	now := m.meetings.Now()

	var sb strings.Builder
	sb.WriteString(theme.Value().Render("Scheduled Meetings"))
	for _, mt := range m.meetings.Sorted() {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s %s  %s", icons.Calendar.String(), mt.Title, theme.Subtitle().Render(tracker.FormatWhen(mt.Date, now))))
		if mt.Notes != "" {
			sb.WriteString("\n    " + theme.Subtitle().Render(mt.Notes))
		}
	}
	return sb.String()
}

// Keys implements page.Page
func (m *Model) Keys() []key.Binding {
	if m.modalOpen() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/submit")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	return []key.Binding{keys.Toggle, keys.Project, keys.Message, keys.Meeting, keys.Refresh}
}

// Capturing implements page.Page
func (m *Model) Capturing() bool {
	return m.modalOpen()
}
