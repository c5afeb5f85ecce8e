// ABOUTME: Tests for the submit workflow and quick-action modals
// ABOUTME: Drives the state machine directly and checks buffer handling on success and failure

package modal

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/tracker"
	"github.com/markalston/jobdash/internal/tui/styles"
)

func TestWorkflow_Transitions(t *testing.T) {
	var w Workflow
	if w.Status() != Idle {
		t.Fatalf("expected idle, got %s", w.Status())
	}

	if err := w.Begin(); err != nil {
		t.Fatalf("Begin from idle failed: %v", err)
	}
	if err := w.Begin(); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy on second Begin, got %v", err)
	}

	w.Finish(errors.New("Failed to create job"))
	if w.Status() != Failed || w.Err().Error() != "Failed to create job" {
		t.Errorf("expected failed with error, got %s %v", w.Status(), w.Err())
	}

	// Retry from Failed is allowed
	if err := w.Begin(); err != nil {
		t.Fatalf("Begin from failed: %v", err)
	}
	if w.Err() != nil {
		t.Error("expected error cleared on Begin")
	}
	w.Finish(nil)
	if w.Status() != Succeeded {
		t.Errorf("expected succeeded, got %s", w.Status())
	}

	w.Close()
	if w.Status() != Idle {
		t.Errorf("expected idle after Close, got %s", w.Status())
	}
}

func TestWorkflow_FinishWithoutBegin(t *testing.T) {
	var w Workflow
	w.Finish(errors.New("late"))
	if w.Status() != Idle {
		t.Errorf("expected Finish to be ignored when idle, got %s", w.Status())
	}
}

func TestWorkflow_CloseFromAnyState(t *testing.T) {
	for _, setup := range []func(*Workflow){
		func(w *Workflow) {},
		func(w *Workflow) { w.Begin() },
		func(w *Workflow) { w.Begin(); w.Finish(nil) },
		func(w *Workflow) { w.Begin(); w.Finish(errors.New("x")) },
	} {
		var w Workflow
		setup(&w)
		w.Close()
		if w.Status() != Idle || w.Err() != nil {
			t.Errorf("expected clean idle after Close, got %s %v", w.Status(), w.Err())
		}
	}
}

func newProject(t *testing.T) *Modal {
	t.Helper()
	m := New(CreateProject, styles.NewTheme(true))
	m.Open()
	return m
}

func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestModal_DefaultStatus(t *testing.T) {
	m := New(CreateProject, styles.NewTheme(true))
	if m.Project().Status != client.DefaultJobStatus {
		t.Errorf("expected default status %q, got %q", client.DefaultJobStatus, m.Project().Status)
	}
	if m.IsOpen() {
		t.Error("expected new modal to be closed")
	}
}

func TestModal_SubmitEmitsAndRejectsDouble(t *testing.T) {
	m := newProject(t)
	m.SetProject(client.JobInput{CompanyName: " Acme ", JobTitle: "Engineer", Status: "Applied"})

	msg := runCmd(m.Submit())
	submit, ok := msg.(SubmitMsg)
	if !ok || submit.Kind != CreateProject {
		t.Fatalf("expected SubmitMsg for CreateProject, got %#v", msg)
	}
	if m.Status() != Submitting {
		t.Fatalf("expected submitting, got %s", m.Status())
	}
	if m.Project().CompanyName != "Acme" {
		t.Errorf("expected trimmed company name, got %q", m.Project().CompanyName)
	}

	if cmd := m.Submit(); cmd != nil {
		t.Error("expected second Submit while submitting to be dropped")
	}
}

func TestModal_SuccessClearsAndCloses(t *testing.T) {
	m := newProject(t)
	m.SetProject(client.JobInput{CompanyName: "Acme", JobTitle: "Engineer", Status: "Interview", Notes: "n"})
	m.Submit()

	m.Finish(nil)

	if m.IsOpen() {
		t.Error("expected modal closed after success")
	}
	if m.Status() != Idle {
		t.Errorf("expected idle after success, got %s", m.Status())
	}
	p := m.Project()
	if p.CompanyName != "" || p.JobTitle != "" || p.Notes != "" {
		t.Errorf("expected cleared buffer, got %+v", p)
	}
	if p.Status != client.DefaultJobStatus {
		t.Errorf("expected status reset to default, got %q", p.Status)
	}
}

func TestModal_FailureKeepsOpenWithError(t *testing.T) {
	m := newProject(t)
	m.SetProject(client.JobInput{CompanyName: "Acme", JobTitle: "Engineer"})
	m.Submit()

	m.Finish(errors.New("Failed to create job"))

	if !m.IsOpen() {
		t.Fatal("expected modal to stay open on failure")
	}
	if m.Status() != Failed {
		t.Errorf("expected failed, got %s", m.Status())
	}
	if m.Project().CompanyName != "Acme" {
		t.Error("expected buffer kept on failure")
	}
	if !strings.Contains(m.View(), "Failed to create job") {
		t.Errorf("expected error in view, got:\n%s", m.View())
	}
}

func TestModal_RequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		fill     func(*Modal)
		expected error
	}{
		{"project missing title", CreateProject, func(m *Modal) { m.SetProject(client.JobInput{CompanyName: "Acme"}) }, ErrProjectIncomplete},
		{"blank message", SendMessage, func(m *Modal) { m.SetMessage("   ") }, ErrMessageEmpty},
		{"meeting missing date", ScheduleMeeting, func(m *Modal) { m.SetMeeting(tracker.MeetingInput{Title: "Sync"}) }, tracker.ErrMeetingIncomplete},
		{"meeting bad date", ScheduleMeeting, func(m *Modal) { m.SetMeeting(tracker.MeetingInput{Title: "Sync", Date: "soon"}) }, tracker.ErrInvalidDate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New(tc.kind, styles.NewTheme(false))
			m.Open()
			tc.fill(m)

			msg := runCmd(m.Submit())
			if _, ok := msg.(SubmitMsg); ok {
				t.Fatal("expected no SubmitMsg for invalid input")
			}
			if m.Status() != Failed {
				t.Errorf("expected failed, got %s", m.Status())
			}
			if !errors.Is(m.Err(), tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, m.Err())
			}
		})
	}
}

func TestModal_EscCloses(t *testing.T) {
	m := newProject(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.IsOpen() || m.Status() != Idle {
		t.Errorf("expected closed idle modal, got open=%v status=%s", m.IsOpen(), m.Status())
	}
	if _, ok := runCmd(cmd).(ClosedMsg); !ok {
		t.Error("expected ClosedMsg")
	}
}

func TestModal_EscIgnoredWhileSubmitting(t *testing.T) {
	m := newProject(t)
	m.SetProject(client.JobInput{CompanyName: "Acme", JobTitle: "Engineer"})
	m.Submit()

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Error("expected no ClosedMsg while submitting")
	}
	if !m.IsOpen() || m.Status() != Submitting {
		t.Fatalf("expected open submitting modal, got open=%v status=%s", m.IsOpen(), m.Status())
	}

	// The late success still clears the buffer
	m.Finish(nil)
	if m.IsOpen() || m.Project().CompanyName != "" {
		t.Errorf("expected closed modal with cleared buffer, got open=%v %+v", m.IsOpen(), m.Project())
	}
}

func TestModal_EscAfterFailureCloses(t *testing.T) {
	m := newProject(t)
	m.SetProject(client.JobInput{CompanyName: "Acme", JobTitle: "Engineer"})
	m.Submit()
	m.Finish(errors.New("Failed to create job"))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.IsOpen() || m.Status() != Idle {
		t.Errorf("expected closed idle modal, got open=%v status=%s", m.IsOpen(), m.Status())
	}
}

func TestModal_ClosedIgnoresInput(t *testing.T) {
	m := New(SendMessage, styles.NewTheme(true))
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected closed modal to ignore input")
	}
	if m.Submit() != nil {
		t.Error("expected Submit on closed modal to do nothing")
	}
	if m.View() != "" {
		t.Error("expected empty view when closed")
	}
}

func TestKindTexts(t *testing.T) {
	tests := map[Kind]string{
		CreateProject:   "Project created successfully!",
		SendMessage:     "Message sent successfully!",
		ScheduleMeeting: "Meeting scheduled!",
	}
	for kind, expected := range tests {
		if got := kind.SuccessText(); got != expected {
			t.Errorf("expected %q, got %q", expected, got)
		}
	}
}
