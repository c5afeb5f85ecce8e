// ABOUTME: Tests for the theme store
// ABOUTME: Verifies toggling and palette selection

package styles

import "testing"

func TestTheme_Toggle(t *testing.T) {
	th := NewTheme(false)
	if th.Dark() || th.Name() != "light" {
		t.Fatalf("expected light theme, got %s", th.Name())
	}

	th.Toggle()
	if !th.Dark() || th.Name() != "dark" {
		t.Errorf("expected dark after toggle, got %s", th.Name())
	}

	th.Toggle()
	if th.Dark() {
		t.Error("expected light after second toggle")
	}
}

func TestTheme_Set(t *testing.T) {
	th := NewTheme(false)
	th.Set(true)
	if !th.Dark() {
		t.Error("expected dark after Set(true)")
	}
	th.Set(true)
	if !th.Dark() {
		t.Error("expected Set to be idempotent")
	}
}

func TestTheme_Palette(t *testing.T) {
	th := NewTheme(true)
	if th.Palette() != DarkPalette {
		t.Error("expected dark palette")
	}
	th.Set(false)
	if th.Palette() != LightPalette {
		t.Error("expected light palette")
	}
}

func TestTheme_StylesFollowMode(t *testing.T) {
	th := NewTheme(true)
	dark := th.Title().GetForeground()
	th.Toggle()
	light := th.Title().GetForeground()
	if dark == light {
		t.Error("expected title color to change with theme")
	}
}
