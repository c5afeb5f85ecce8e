// ABOUTME: Theme store and lipgloss styles for consistent TUI appearance
// ABOUTME: One Theme is created at startup and read by every view during render

package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Status colors are shared by both palettes
var (
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Info      = lipgloss.Color("#3B82F6") // Blue
)

// Palette is the set of colors for one theme
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
}

var (
	// DarkPalette mirrors the original purple-on-charcoal look
	DarkPalette = Palette{
		Primary: lipgloss.Color("#7C3AED"),
		Accent:  lipgloss.Color("#8B5CF6"),
		Text:    lipgloss.Color("#F9FAFB"),
		Muted:   lipgloss.Color("#6B7280"),
		Surface: lipgloss.Color("#374151"),
		Border:  lipgloss.Color("#4B5563"),
	}

	LightPalette = Palette{
		Primary: lipgloss.Color("#6D28D9"),
		Accent:  lipgloss.Color("#7C3AED"),
		Text:    lipgloss.Color("#111827"),
		Muted:   lipgloss.Color("#6B7280"),
		Surface: lipgloss.Color("#E5E7EB"),
		Border:  lipgloss.Color("#D1D5DB"),
	}
)

// Theme holds the light/dark flag. Views receive it explicitly.
type Theme struct {
	mu   sync.RWMutex
	dark bool
}

// NewTheme creates a theme store with the given initial mode
func NewTheme(dark bool) *Theme {
	return &Theme{dark: dark}
}

// Dark reports whether dark mode is on
func (t *Theme) Dark() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dark
}

// Toggle flips the mode
func (t *Theme) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dark = !t.dark
}

// Set forces the mode
func (t *Theme) Set(dark bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dark = dark
}

// Name returns "dark" or "light"
func (t *Theme) Name() string {
	if t.Dark() {
		return "dark"
	}
	return "light"
}

// Palette returns the colors for the current mode
func (t *Theme) Palette() Palette {
	if t.Dark() {
		return DarkPalette
	}
	return LightPalette
}

// Title is the bold page heading
func (t *Theme) Title() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Palette().Primary).
		MarginBottom(1)
}

func (t *Theme) Subtitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette().Muted)
}

func (t *Theme) Text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette().Text)
}

// Panel is a rounded bordered box
func (t *Theme) Panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Palette().Border).
		Padding(1, 2)
}

func (t *Theme) ActivePanel() lipgloss.Style {
	return t.Panel().BorderForeground(t.Palette().Primary)
}

// Help text
func (t *Theme) Help() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette().Muted).MarginTop(1)
}

// Key style for keyboard shortcuts
func (t *Theme) Key() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette().Accent).Bold(true)
}

// Value style for emphasized data
func (t *Theme) Value() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Palette().Text).Bold(true)
}

// Selected highlights the active row or sidebar item
func (t *Theme) Selected() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Palette().Text).
		Background(t.Palette().Primary).
		Bold(true)
}

// Status indicators
var (
	StatusOK       = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	StatusWarning  = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	StatusCritical = lipgloss.NewStyle().Foreground(Danger).Bold(true)
)
