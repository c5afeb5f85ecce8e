// ABOUTME: Tests for the profile page
// ABOUTME: Covers loading into the form, save success and failure, and the load error text

package profile

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/tui/modal"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/pagetest"
)

func feed(m *Model, cmd tea.Cmd) []tea.Msg {
	var follow []tea.Msg
	for _, msg := range pagetest.Collect(cmd) {
		if l, ok := msg.(page.Loaded); ok {
			_, next := m.Update(l.Msg)
			follow = append(follow, feed(m, next)...)
			continue
		}
		follow = append(follow, msg)
	}
	return follow
}

// deliver runs the form's startup commands so the fields render
func deliver(m *Model, cmd tea.Cmd) {
	for _, msg := range pagetest.Collect(cmd) {
		m.Update(msg)
	}
}

func userGateway() *pagetest.Gateway {
	return &pagetest.Gateway{
		FetchUserFn: func() (*client.User, error) {
			return &client.User{FirstName: "Demo", LastName: "User", Email: "demo@example.com", Role: "user"}, nil
		},
	}
}

func TestProfile_LoadsUser(t *testing.T) {
	m := New(pagetest.NewEnv(userGateway()))
	follow := feed(m, m.Init())

	if !m.User().Ok() {
		t.Fatalf("expected user loaded, got %s", m.User().State)
	}
	if user, ok := pagetest.Find[page.UserMsg](follow); !ok || user.User.Email != "demo@example.com" {
		t.Errorf("expected user broadcast, got %+v", user)
	}
	view := m.View()
	for _, expected := range []string{"Profile", "Demo User", "demo@example.com", "Press e to edit"} {
		if !strings.Contains(view, expected) {
			t.Errorf("expected view to contain %q\n%s", expected, view)
		}
	}
	if m.Capturing() {
		t.Error("expected details view not to capture keys")
	}
}

func TestProfile_EditAndCancel(t *testing.T) {
	m := New(pagetest.NewEnv(userGateway()))
	feed(m, m.Init())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	deliver(m, cmd)
	if !m.Editing() || !m.Capturing() {
		t.Fatal("expected e to open the form")
	}
	if view := m.View(); !strings.Contains(view, "First Name") || !strings.Contains(view, "New Password") {
		t.Errorf("expected form fields\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Editing() {
		t.Error("expected esc to close the form")
	}
}

func TestProfile_SaveSuccess(t *testing.T) {
	gw := userGateway()
	var sent client.ProfileUpdate
	gw.UpdateUserFn = func(u client.ProfileUpdate) error {
		sent = u
		return nil
	}
	m := New(pagetest.NewEnv(gw))
	feed(m, m.Init())

	m.Edit()
	m.Fill(client.ProfileUpdate{FirstName: " Dana ", LastName: "Q", Password: "newpass"})
	follow := feed(m, m.Submit())

	if sent.FirstName != "Dana" || sent.LastName != "Q" || sent.Password != "newpass" {
		t.Errorf("unexpected update body %+v", sent)
	}
	if m.Status() != modal.Succeeded {
		t.Errorf("expected succeeded, got %s", m.Status())
	}
	if !strings.Contains(m.View(), "Profile updated!") {
		t.Errorf("expected success text\n%s", m.View())
	}
	if user, ok := pagetest.Find[page.UserMsg](follow); !ok || user.User.FirstName != "Dana" {
		t.Errorf("expected updated user broadcast, got %+v", user)
	}
	if m.User().Data.Email != "demo@example.com" {
		t.Error("expected email untouched by update")
	}
	if m.Editing() {
		t.Error("expected form closed after save")
	}
}

func TestProfile_SaveFailure(t *testing.T) {
	gw := userGateway()
	gw.UpdateUserFn = func(client.ProfileUpdate) error {
		return &client.Error{Message: "Update failed", StatusCode: 500}
	}
	m := New(pagetest.NewEnv(gw))
	feed(m, m.Init())

	feed(m, m.Submit())

	if m.Status() != modal.Failed {
		t.Errorf("expected failed, got %s", m.Status())
	}
	view := m.View()
	if !strings.Contains(view, "Update failed") || strings.Contains(view, "Profile updated!") {
		t.Errorf("expected only the error text\n%s", view)
	}
}

func TestProfile_DoubleSubmitIgnored(t *testing.T) {
	m := New(pagetest.NewEnv(userGateway()))
	feed(m, m.Init())

	if m.Submit() == nil {
		t.Fatal("expected first submit to start")
	}
	if m.Submit() != nil {
		t.Error("expected second submit to be dropped")
	}
}

func TestProfile_EscWaitsForSave(t *testing.T) {
	m := New(pagetest.NewEnv(userGateway()))
	feed(m, m.Init())

	m.Edit()
	m.Fill(client.ProfileUpdate{FirstName: "Dana"})
	save := m.Submit()

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Editing() || m.Status() != modal.Submitting {
		t.Fatalf("expected esc ignored while saving, got editing=%v status=%s", m.Editing(), m.Status())
	}

	feed(m, save)
	if m.Status() != modal.Succeeded || m.Editing() {
		t.Errorf("expected save to complete, got editing=%v status=%s", m.Editing(), m.Status())
	}
	if m.User().Data.FirstName != "Dana" {
		t.Errorf("expected cached user updated, got %q", m.User().Data.FirstName)
	}
}

func TestProfile_LoadFailure(t *testing.T) {
	gw := &pagetest.Gateway{
		FetchUserFn: func() (*client.User, error) { return nil, errors.New("boom") },
	}
	m := New(pagetest.NewEnv(gw))
	feed(m, m.Init())

	if !strings.Contains(m.View(), LoadFailedText) {
		t.Errorf("expected load failure text\n%s", m.View())
	}
	if m.Submit() != nil {
		t.Error("expected submit to be unavailable without a user")
	}

	gw.FetchUserFn = userGateway().FetchUserFn
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	feed(m, cmd)
	if !m.User().Ok() {
		t.Errorf("expected retry to load the user, got %s", m.User().State)
	}
}
