package ui

import (
	"strings"
	"testing"
	"time"
)

func TestNewFooter(t *testing.T) {
	footer := NewFooter()
	if footer.HasFlash() {
		t.Error("new footer should have no flash")
	}
	if !footer.sidebarFocused {
		t.Error("footer should start in sidebar context")
	}
}

func TestFooter_Bindings(t *testing.T) {
	tests := []struct {
		name           string
		sidebarFocused bool
		sending        bool
		wantKeys       []string
		wantAbsent     []string
	}{
		{
			name:           "sidebar",
			sidebarFocused: true,
			wantKeys:       []string{"ctrl+n", "ctrl+l", "ctrl+r", "q"},
			wantAbsent:     []string{"ctrl+y"},
		},
		{
			name:       "chat idle",
			wantKeys:   []string{"enter", "ctrl+y", "tab"},
			wantAbsent: []string{"q"},
		},
		{
			name:       "chat sending",
			sending:    true,
			wantKeys:   []string{"tab"},
			wantAbsent: []string{"enter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetContext(tt.sidebarFocused, tt.sending)

			got := map[string]bool{}
			for _, b := range footer.Bindings() {
				got[b.Key] = true
			}
			for _, k := range tt.wantKeys {
				if !got[k] {
					t.Errorf("missing binding %q", k)
				}
			}
			for _, k := range tt.wantAbsent {
				if got[k] {
					t.Errorf("unexpected binding %q", k)
				}
			}
		})
	}
}

func TestFooter_ViewShowsBindings(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(200)

	plain := stripANSI(footer.View())
	if !strings.Contains(plain, "ctrl+n") || !strings.Contains(plain, "new chat") {
		t.Errorf("footer should list sidebar bindings, got %q", plain)
	}
}

func TestFooter_ViewSending(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(200)
	footer.SetContext(false, true)

	if plain := stripANSI(footer.View()); !strings.Contains(plain, "waiting for reply") {
		t.Errorf("footer should show the sending indicator, got %q", plain)
	}
}

func TestFooter_Flash(t *testing.T) {
	tests := []struct {
		name      string
		flashType FlashType
		icon      string
	}{
		{"info", FlashInfo, "•"},
		{"success", FlashSuccess, "✓"},
		{"warning", FlashWarning, "!"},
		{"error", FlashError, "✗"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			footer := NewFooter()
			footer.SetWidth(100)
			footer.SetFlash("Copied reply", tt.flashType)

			if !footer.HasFlash() {
				t.Fatal("expected flash to be set")
			}
			plain := stripANSI(footer.View())
			if !strings.Contains(plain, tt.icon+" Copied reply") {
				t.Errorf("flash view = %q, want icon %q and text", plain, tt.icon)
			}
			if strings.Contains(plain, "new chat") {
				t.Error("flash should replace the bindings")
			}
		})
	}
}

func TestFooter_ClearFlash(t *testing.T) {
	footer := NewFooter()
	footer.SetFlash("hello", FlashInfo)
	footer.ClearFlash()
	if footer.HasFlash() {
		t.Error("flash should be cleared")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter()

	if footer.ClearIfExpired() {
		t.Error("nothing to clear without a flash")
	}

	footer.SetFlashWithDuration("long", FlashInfo, time.Hour)
	if footer.ClearIfExpired() {
		t.Error("fresh flash should not expire")
	}
	if !footer.HasFlash() {
		t.Error("fresh flash should remain")
	}

	footer.SetFlashWithDuration("short", FlashInfo, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if !footer.ClearIfExpired() {
		t.Error("expired flash should be cleared")
	}
	if footer.HasFlash() {
		t.Error("flash should be gone after expiry")
	}
}

func TestFlashMessage_IsExpired(t *testing.T) {
	f := &FlashMessage{CreatedAt: time.Now().Add(-time.Minute), Duration: time.Second}
	if !f.IsExpired() {
		t.Error("old flash should be expired")
	}
	f = &FlashMessage{CreatedAt: time.Now(), Duration: time.Minute}
	if f.IsExpired() {
		t.Error("new flash should not be expired")
	}
}

func TestFlashTick(t *testing.T) {
	if FlashTick() == nil {
		t.Error("FlashTick should return a command")
	}
}

func TestFooter_NarrowTruncates(t *testing.T) {
	footer := NewFooter()
	footer.SetWidth(20)
	plain := stripANSI(footer.View())
	for _, line := range strings.Split(plain, "\n") {
		if len([]rune(line)) > 20 {
			t.Errorf("footer line exceeds width: %q", line)
		}
	}
}
