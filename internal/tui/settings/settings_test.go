// ABOUTME: Tests for the settings page
// ABOUTME: Verifies the dark mode switch writes to the theme store

package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/pagetest"
)

func TestSettings_ToggleDarkMode(t *testing.T) {
	env := pagetest.NewEnv(&pagetest.Gateway{})
	m := New(env)

	if !strings.Contains(m.View(), "[x] Dark mode") {
		t.Errorf("expected dark mode checked\n%s", m.View())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})

	if env.Theme.Dark() {
		t.Error("expected theme store switched to light")
	}
	if _, ok := pagetest.Find[page.ThemeChangedMsg](pagetest.Collect(cmd)); !ok {
		t.Error("expected ThemeChangedMsg")
	}
	if !strings.Contains(m.View(), "[ ] Dark mode") {
		t.Errorf("expected dark mode unchecked\n%s", m.View())
	}
}

func TestSettings_ComingSoon(t *testing.T) {
	m := New(pagetest.NewEnv(&pagetest.Gateway{}))
	if !strings.Contains(m.View(), ComingSoon) {
		t.Errorf("expected placeholder text\n%s", m.View())
	}
	if m.Capturing() {
		t.Error("expected settings not to capture keys")
	}
}
