// ABOUTME: Settings page with the dark mode switch
// ABOUTME: The switch writes straight to the shared theme store

package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/jobdash/internal/tui/icons"
	"github.com/markalston/jobdash/internal/tui/page"
)

// ComingSoon is shown below the theme switch
const ComingSoon = "More settings coming soon..."

var toggleKey = key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle dark mode"))

// Model is the settings page
type Model struct {
	env page.Env
}

// New creates the settings page
func New(env page.Env) *Model {
	return &Model{env: env}
}

// Init implements page.Page
func (m *Model) Init() tea.Cmd {
	return nil
}

// Toggle flips dark mode and tells every view to restyle
func (m *Model) Toggle() tea.Cmd {
	m.env.Theme.Toggle()
	return page.Emit(page.ThemeChangedMsg{})
}

// Update implements page.Page
func (m *Model) Update(msg tea.Msg) (page.Page, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.env.Width, m.env.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, toggleKey) {
			return m, m.Toggle()
		}
	}
	return m, nil
}

// View implements page.Page
func (m *Model) View() string {
	theme := m.env.Theme
	var sb strings.Builder

	sb.WriteString(theme.Title().Render(icons.Settings.String() + " Settings"))
	sb.WriteString("\n\n")

	box := "[ ]"
	icon := icons.Sun
	if theme.Dark() {
		box = "[x]"
		icon = icons.Moon
	}
	sb.WriteString(theme.Selected().Render("> " + box + " Dark mode"))
	sb.WriteString(" ")
	sb.WriteString(theme.Subtitle().Render(icon.String() + " " + theme.Name()))
	sb.WriteString("\n\n")
	sb.WriteString(theme.Subtitle().Render(ComingSoon))
	return sb.String()
}

// Keys implements page.Page
func (m *Model) Keys() []key.Binding {
	return []key.Binding{toggleKey}
}

// Capturing implements page.Page
func (m *Model) Capturing() bool {
	return false
}
