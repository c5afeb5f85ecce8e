// ABOUTME: Placeholder page for paths that match no route
// ABOUTME: Points the user back to the sidebar

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markalston/jobdash/internal/tui/page"
	"github.com/markalston/jobdash/internal/tui/router"
	"github.com/markalston/jobdash/internal/tui/styles"
)

var homeKey = key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "go to dashboard"))

type notFound struct {
	env page.Env
}

func newNotFound(env page.Env) *notFound {
	return &notFound{env: env}
}

func (n *notFound) Init() tea.Cmd { return nil }

func (n *notFound) Update(msg tea.Msg) (page.Page, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, homeKey) {
		return n, page.Navigate(router.Dashboard)
	}
	return n, nil
}

func (n *notFound) View() string {
	var sb strings.Builder
	sb.WriteString(n.env.Theme.Title().Render("Page not found"))
	sb.WriteString("\n\n")
	sb.WriteString(styles.StatusWarning.Render("Nothing lives at this path."))
	sb.WriteString("\n")
	sb.WriteString(n.env.Theme.Help().Render("Pick a page from the sidebar or press enter"))
	return sb.String()
}

func (n *notFound) Keys() []key.Binding { return []key.Binding{homeKey} }

func (n *notFound) Capturing() bool { return false }
