// ABOUTME: Sidebar navigation for the authenticated screens
// ABOUTME: Fixed item order, number-key shortcuts and wraparound cycling

package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/jobdash/internal/tui/icons"
	"github.com/markalston/jobdash/internal/tui/router"
	"github.com/markalston/jobdash/internal/tui/styles"
)

// Item is one sidebar entry
type Item struct {
	Label string
	Path  string
	Icon  icons.Icon
}

var items = []Item{
	{Label: "Dashboard", Path: router.Dashboard, Icon: icons.Dashboard},
	{Label: "Profile", Path: router.Profile, Icon: icons.Profile},
	{Label: "Calendar", Path: router.Calendar, Icon: icons.Calendar},
	{Label: "Messages", Path: router.Messages, Icon: icons.Messages},
	{Label: "Settings", Path: router.Settings, Icon: icons.Settings},
}

// Width is the rendered sidebar width including its border
const Width = 18

// Items returns the sidebar entries in display order
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// index returns the position of path, or -1
func index(path string) int {
	for i, it := range items {
		if it.Path == path {
			return i
		}
	}
	return -1
}

// Next returns the entry after path, wrapping around. Unknown paths start at the top.
func Next(path string) string {
	i := index(path)
	return items[(i+1)%len(items)].Path
}

// Prev returns the entry before path, wrapping around
func Prev(path string) string {
	i := index(path)
	if i <= 0 {
		return items[len(items)-1].Path
	}
	return items[i-1].Path
}

// ByKey maps "1".."5" to a path
func ByKey(k string) (string, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return "", false
	}
	i := int(k[0] - '1')
	if i >= len(items) {
		return "", false
	}
	return items[i].Path, true
}

// View renders the sidebar with the active entry highlighted
func View(active string, theme *styles.Theme, height int) string {
	var sb strings.Builder
	for i, it := range items {
		label := fmt.Sprintf(" %d %s %s", i+1, it.Icon.String(), it.Label)
		if it.Path == active {
			sb.WriteString(theme.Selected().Width(Width - 4).Render(label))
		} else {
			sb.WriteString(theme.Text().Width(Width - 4).Render(label))
		}
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Palette().Border).
		Padding(0, 1).
		Width(Width - 2)
	if height > 2 {
		style = style.Height(height - 2)
	}
	return style.Render(sb.String())
}
