package ui

import (
	"testing"

	"github.com/alecthomas/chroma/v2/styles"
)

func TestThemes_Complete(t *testing.T) {
	for _, name := range ThemeNames() {
		t.Run(string(name), func(t *testing.T) {
			th := GetTheme(name)
			if th.Name == "" {
				t.Error("theme should have a display name")
			}
			for field, v := range map[string]string{
				"Primary": th.Primary, "Text": th.Text, "User": th.User,
				"Assistant": th.Assistant, "Error": th.Error, "Success": th.Success,
			} {
				if len(v) != 7 || v[0] != '#' {
					t.Errorf("%s = %q, want #RRGGBB", field, v)
				}
			}
			if styles.Get(th.CodeStyle) == styles.Fallback {
				t.Errorf("code style %q is not a registered chroma style", th.CodeStyle)
			}
		})
	}
}

func TestSetTheme(t *testing.T) {
	original := CurrentThemeName()
	defer SetTheme(original)

	SetTheme(ThemeNord)
	if CurrentThemeName() != ThemeNord {
		t.Errorf("CurrentThemeName() = %q, want nord", CurrentThemeName())
	}
	if CurrentTheme().CodeStyle != "nord" {
		t.Errorf("CodeStyle = %q, want nord", CurrentTheme().CodeStyle)
	}

	SetTheme(ThemeName("no-such-theme"))
	if CurrentThemeName() != DefaultTheme {
		t.Errorf("unknown theme should fall back to default, got %q", CurrentThemeName())
	}
}

func TestThemeOptions(t *testing.T) {
	names, display := ThemeOptions()
	if len(names) != len(display) || len(names) != len(ThemeNames()) {
		t.Fatalf("ThemeOptions lengths mismatch: %d names, %d display", len(names), len(display))
	}
}
