// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("JOBDASH_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Navigation
	Dashboard = Icon{"󰕮", "▦"} // nf-md-view_dashboard
	Profile   = Icon{"󰀄", "☺"} // nf-md-account
	Calendar  = Icon{"󰃭", "▤"} // nf-md-calendar
	Messages  = Icon{"󰍡", "✉"} // nf-md-message
	Settings  = Icon{"󰒓", "⚙"} // nf-md-cog

	// Stats
	Briefcase = Icon{"󰃖", "■"} // nf-md-briefcase
	Active    = Icon{"󰐊", "▶"} // nf-md-play
	Done      = Icon{"󰄬", "✓"} // nf-md-check

	// Status indicators
	CheckOK  = Icon{"", "✓"}
	Warning  = Icon{"", "⚠"}
	Critical = Icon{"", "✗"}
	Info     = Icon{"", "ℹ"}
	Unread   = Icon{"󰇮", "●"}
	Read     = Icon{"󰇯", "○"}

	// Theme
	Moon = Icon{"󰖔", "☾"}
	Sun  = Icon{"󰖨", "☀"}

	// Actions
	Refresh = Icon{"󰑓", "↻"}
	Add     = Icon{"󰐕", "+"}
	Logout  = Icon{"󰗼", "×"}
	App     = Icon{"󰃖", "◈"}
)
