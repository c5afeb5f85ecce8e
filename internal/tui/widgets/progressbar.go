// ABOUTME: Progress bar widgets for completion displays
// ABOUTME: Percent is clamped to 0-100 and rendered with block characters

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBarConfig holds configuration for the progress bar
type ProgressBarConfig struct {
	Width       int
	FilledColor lipgloss.Color
	EmptyColor  lipgloss.Color
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:       30,
		FilledColor: lipgloss.Color("#10B981"), // Green
		EmptyColor:  lipgloss.Color("#374151"), // Dark gray
	}
}

// ProgressBar renders a bracketed bar
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 30
	}
	percent = clamp(percent)
	filled := int(percent / 100.0 * float64(config.Width))

	filledStyle := lipgloss.NewStyle().Foreground(config.FilledColor)
	emptyStyle := lipgloss.NewStyle().Foreground(config.EmptyColor)

	return "[" +
		filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", config.Width-filled)) +
		"]"
}

// ProgressBarWithLabel renders the bar followed by a rounded percentage
func ProgressBarWithLabel(percent float64, config ProgressBarConfig) string {
	label := lipgloss.NewStyle().
		Foreground(config.FilledColor).
		Bold(true).
		Render(fmt.Sprintf("%3.0f%%", clamp(percent)))
	return ProgressBar(percent, config) + " " + label
}

// CompactProgressBar renders a minimal progress bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	filled := int(clamp(percent) / 100.0 * float64(width))

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width-filled))
}

func clamp(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
