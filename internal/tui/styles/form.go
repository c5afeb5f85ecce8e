// ABOUTME: huh form theme derived from the current palette
// ABOUTME: Forms are restyled by calling Form again after a theme change

package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Form returns a huh theme for the current mode
func (t *Theme) Form() *huh.Theme {
	p := t.Palette()
	ft := huh.ThemeBase()

	// Group styles (section headers)
	ft.Group.Title = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)
	ft.Group.Description = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginBottom(1)

	// Focused field styles
	ft.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(p.Primary)
	ft.Focused.Title = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)
	ft.Focused.Description = lipgloss.NewStyle().
		Foreground(p.Muted)
	ft.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(Danger).
		SetString(" *")
	ft.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(Danger)

	// Select field styles
	ft.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(p.Primary).
		SetString("> ")
	ft.Focused.Option = lipgloss.NewStyle().
		Foreground(p.Text)
	ft.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	ft.Focused.NextIndicator = lipgloss.NewStyle().
		Foreground(p.Primary).
		MarginLeft(1).
		SetString("→")
	ft.Focused.PrevIndicator = lipgloss.NewStyle().
		Foreground(p.Primary).
		MarginRight(1).
		SetString("←")

	// Text input styles
	ft.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(p.Primary)
	ft.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(p.Muted)
	ft.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(p.Primary)
	ft.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(p.Text)

	// Button styles
	ft.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(p.Primary).
		Padding(0, 2).
		MarginRight(1)
	ft.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(p.Surface).
		Padding(0, 2).
		MarginRight(1)

	// Blurred fields reuse focused styles with muted colors
	ft.Blurred = ft.Focused
	ft.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	ft.Blurred.Title = lipgloss.NewStyle().
		Foreground(p.Muted)
	ft.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(p.Muted).
		SetString("  ")
	ft.Blurred.Option = lipgloss.NewStyle().
		Foreground(p.Muted)

	return ft
}
