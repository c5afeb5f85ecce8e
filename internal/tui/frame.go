// ABOUTME: Header, sidebar and footer framing for authenticated screens
// ABOUTME: Header carries the unread badge, theme indicator and user initials

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/jobdash/internal/tui/icons"
	"github.com/markalston/jobdash/internal/tui/menu"
	"github.com/markalston/jobdash/internal/tui/router"
	"github.com/markalston/jobdash/internal/tui/widgets"
)

// Layout constants
const (
	minTerminalWidth = 80 // Frame never renders narrower than this
	frameRows        = 2  // Header and footer lines
)

// frameWidth leaves one column free to prevent wrapping on some terminals
func (a *App) frameWidth() int {
	width := a.width - 1
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width
}

func (a *App) bodySize() tea.WindowSizeMsg {
	return a.bodySizeFor(a.route)
}

// bodySizeFor is the space a page gets under route
func (a *App) bodySizeFor(route router.Route) tea.WindowSizeMsg {
	if !route.Shell {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
	return tea.WindowSizeMsg{
		Width:  max(0, a.frameWidth()-menu.Width-1),
		Height: max(0, a.height-frameRows),
	}
}

// renderHeader creates the top line with title, unread count, theme and user
func (a *App) renderHeader() string {
	width := a.frameWidth()
	p := a.opts.Theme.Palette()

	borderStyle := lipgloss.NewStyle().Foreground(p.Border)
	titleStyle := lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(p.Muted)
	userStyle := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)

	left := " " + icons.App.String() + " " + titleStyle.Render("jobdash") +
		contextStyle.Render(" · "+a.route.Title) + " "

	themeIcon := icons.Sun
	if a.opts.Theme.Dark() {
		themeIcon = icons.Moon
	}
	right := " " + widgets.UnreadBadge(a.unread) + " " + contextStyle.Render(themeIcon.String())
	if initials := a.user.Initials(); initials != "" {
		right += " " + userStyle.Render(initials)
	}
	right += " "

	fillWidth := width - 4 - lipgloss.Width(left) - lipgloss.Width(right) // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─") + left +
		borderStyle.Render(strings.Repeat("─", fillWidth)) +
		right + borderStyle.Render("─╮")
}

// footerKeys lists shell keys first so truncation only drops page keys.
// While the page captures input only its keys and quit are shown.
func (a *App) footerKeys() []key.Binding {
	if a.page != nil && a.page.Capturing() {
		return append(append([]key.Binding{}, a.page.Keys()...), globalKeys.Quit)
	}
	bindings := []key.Binding{globalKeys.Next, globalKeys.Jump, globalKeys.Theme, globalKeys.Logout, globalKeys.Quit}
	if a.page != nil {
		bindings = append(bindings, a.page.Keys()...)
	}
	return bindings
}

// renderFooter creates the bottom line with key help and the current time
func (a *App) renderFooter() string {
	width := a.frameWidth()
	p := a.opts.Theme.Palette()

	borderStyle := lipgloss.NewStyle().Foreground(p.Border)
	statusStyle := lipgloss.NewStyle().Foreground(p.Muted)

	right := " " + statusStyle.Render(a.opts.Now().Format("Mon Jan 2 15:04")) + " "

	a.help.Width = max(0, width-4-lipgloss.Width(right)-2)
	left := " " + a.help.ShortHelpView(a.footerKeys()) + " "

	fillWidth := width - 4 - lipgloss.Width(left) - lipgloss.Width(right) // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╰─") + left +
		borderStyle.Render(strings.Repeat("─", fillWidth)) +
		right + borderStyle.Render("─╯")
}

// wrapWithFrame places the sidebar beside content between header and footer
func (a *App) wrapWithFrame(content string) string {
	size := a.bodySize()

	body := lipgloss.NewStyle().Width(size.Width)
	if size.Height > 0 {
		body = body.MaxHeight(size.Height)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		menu.View(a.route.Path, a.opts.Theme, size.Height),
		" ",
		body.Render(content),
	)

	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(main)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}
