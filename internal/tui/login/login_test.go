// ABOUTME: Tests for the login page
// ABOUTME: Covers token storage, navigation, error display and email prefill

package login

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/jobdash/internal/client"
	"github.com/markalston/jobdash/internal/tui/modal"
	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/pagetest"
	"github.com/markalston/jobdash/internal/tui/recentlogins"
	"github.com/markalston/jobdash/internal/tui/router"
)

// submit runs Submit and feeds the results back, returning the follow-up messages
func submit(t *testing.T, m *Model) []tea.Msg {
	t.Helper()
	var follow []tea.Msg
	for _, l := range pagetest.Loaded(pagetest.Collect(m.Submit())) {
		_, cmd := m.Update(l.Msg)
		follow = append(follow, pagetest.Collect(cmd)...)
	}
	return follow
}

func TestLogin_SuccessStoresTokenAndNavigates(t *testing.T) {
	gw := &pagetest.Gateway{
		LoginFn: func(c client.Credentials) (string, error) {
			if c.Email != "demo@example.com" || c.Password != "password" {
				t.Errorf("unexpected credentials %+v", c)
			}
			return "abc", nil
		},
	}
	env := pagetest.NewEnv(gw)
	m := New(env)
	m.Fill(client.Credentials{Email: " demo@example.com ", Password: "password"})

	follow := submit(t, m)

	if got := env.Session.Token(); got != "abc" {
		t.Errorf("expected stored token abc, got %q", got)
	}
	nav, ok := pagetest.Find[page.NavigateMsg](follow)
	if !ok || nav.Path != router.Dashboard {
		t.Errorf("expected navigation to dashboard, got %+v", follow)
	}
	if env.Recent.Last() != "demo@example.com" {
		t.Errorf("expected email remembered, got %q", env.Recent.Last())
	}
}

func TestLogin_FailureShowsBackendMessage(t *testing.T) {
	gw := &pagetest.Gateway{
		LoginFn: func(client.Credentials) (string, error) {
			return "", &client.Error{Message: "Invalid credentials", StatusCode: 401}
		},
	}
	env := pagetest.NewEnv(gw)
	m := New(env)
	m.Fill(client.Credentials{Email: "demo@example.com", Password: "wrong"})

	follow := submit(t, m)

	if _, ok := pagetest.Find[page.NavigateMsg](follow); ok {
		t.Error("expected no navigation on failure")
	}
	if env.Session.Authenticated() {
		t.Error("expected no token stored on failure")
	}
	if m.Status() != modal.Failed {
		t.Errorf("expected failed status, got %s", m.Status())
	}
	if !strings.Contains(m.View(), "Invalid credentials") {
		t.Errorf("expected error text in view\n%s", m.View())
	}
}

func TestLogin_DoubleSubmitIgnored(t *testing.T) {
	gw := &pagetest.Gateway{}
	m := New(pagetest.NewEnv(gw))

	first := m.Submit()
	if first == nil {
		t.Fatal("expected first submit to produce a command")
	}
	if m.Submit() != nil {
		t.Error("expected second submit while in flight to be ignored")
	}
}

func TestLogin_ViewShowsDemoHintAndNotice(t *testing.T) {
	env := pagetest.NewEnv(&pagetest.Gateway{})
	env.Notice = "Account created. Please sign in."
	view := New(env).View()

	if !strings.Contains(view, DemoHint) {
		t.Errorf("expected demo hint\n%s", view)
	}
	if !strings.Contains(view, "Account created") {
		t.Errorf("expected notice\n%s", view)
	}
}

func TestLogin_PrefillsRecentEmail(t *testing.T) {
	env := pagetest.NewEnv(&pagetest.Gateway{})
	env.Recent = recentlogins.New(t.TempDir())
	env.Recent.Add("last@example.com")

	m := New(env)
	if m.email != "last@example.com" {
		t.Errorf("expected prefilled email, got %q", m.email)
	}
}

func TestLogin_RegisterKey(t *testing.T) {
	m := New(pagetest.NewEnv(&pagetest.Gateway{}))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	nav, ok := pagetest.Find[page.NavigateMsg](pagetest.Collect(cmd))
	if !ok || nav.Path != router.Register {
		t.Errorf("expected navigation to register, got %+v", nav)
	}
}

func TestLogin_SessionWriteFailure(t *testing.T) {
	env := pagetest.NewEnv(&pagetest.Gateway{})
	env.Session = failingStore{}
	m := New(env)

	follow := submit(t, m)

	if _, ok := pagetest.Find[page.NavigateMsg](follow); ok {
		t.Error("expected no navigation when the token cannot be stored")
	}
	if m.Status() != modal.Failed {
		t.Errorf("expected failed status, got %s", m.Status())
	}
}

type failingStore struct{}

func (failingStore) Token() string         { return "" }
func (failingStore) SetToken(string) error { return errors.New("disk full") }
func (failingStore) Clear() error          { return nil }
func (failingStore) Authenticated() bool   { return false }
