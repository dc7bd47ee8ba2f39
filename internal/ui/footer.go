package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType categorizes a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashMessage is a transient footer notice
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg is sent to check whether the flash should be dismissed
type FlashTickMsg time.Time

// FlashTick returns a command that fires once the default flash duration elapses
func FlashTick() tea.Cmd {
	return tea.Tick(DefaultFlashDuration, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width          int
	sidebarFocused bool // Whether sidebar has focus
	sending        bool // Whether a dispatch is outstanding
	flashMessage   *FlashMessage
}

var (
	sidebarBindings = []KeyBinding{
		{Key: "↑/↓", Desc: "select"},
		{Key: "enter", Desc: "open"},
		{Key: "ctrl+n", Desc: "new chat"},
		{Key: "ctrl+l", Desc: "clear"},
		{Key: "ctrl+r", Desc: "recheck"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}

	chatBindings = []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "tab", Desc: "switch pane"},
		{Key: "ctrl+y", Desc: "copy reply"},
		{Key: "pgup/dn", Desc: "scroll"},
		{Key: "ctrl+c", Desc: "quit"},
	}

	sendingBindings = []KeyBinding{
		{Key: "tab", Desc: "switch pane"},
		{Key: "pgup/dn", Desc: "scroll"},
		{Key: "ctrl+c", Desc: "quit"},
	}
)

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{sidebarFocused: true}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(sidebarFocused, sending bool) {
	f.sidebarFocused = sidebarFocused
	f.sending = sending
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the bindings for the current context
func (f *Footer) Bindings() []KeyBinding {
	switch {
	case f.sidebarFocused:
		return sidebarBindings
	case f.sending:
		return sendingBindings
	default:
		return chatBindings
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.renderFlash()
	}

	var parts []string
	if f.sending && !f.sidebarFocused {
		parts = append(parts, StatusLoadingStyle.Render("waiting for reply"))
	}
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(f.fit(content))
}

func (f *Footer) renderFlash() string {
	var icon string
	var fg = ColorInfo
	switch f.flashMessage.Type {
	case FlashSuccess:
		icon, fg = "✓ ", ColorSuccess
	case FlashWarning:
		icon, fg = "! ", ColorWarning
	case FlashError:
		icon, fg = "✗ ", ColorError
	default:
		icon = "• "
	}
	text := lipgloss.NewStyle().Foreground(fg).Bold(true).Render(icon + f.flashMessage.Text)
	return FooterStyle.Width(f.width).Render(f.fit(text))
}

// fit truncates styled content to the width left inside FooterStyle padding
func (f *Footer) fit(content string) string {
	if f.width <= 0 {
		return content
	}
	avail := f.width - FooterStyle.GetHorizontalPadding()
	if avail < 1 {
		return ""
	}
	return ansi.Truncate(content, avail, "…")
}
