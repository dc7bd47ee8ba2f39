package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/tripchat/internal/health"
)

const appTitle = " tripchat"

// maxHeaderTitleWidth bounds the chat title shown in the header
const maxHeaderTitleWidth = 40

// Header represents the top header bar
type Header struct {
	width     int
	chatTitle string
	status    health.Status
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{status: health.StatusChecking}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetChatTitle sets the active chat title to display
func (h *Header) SetChatTitle(title string) {
	h.chatTitle = title
}

// SetStatus sets the backend status shown in the badge
func (h *Header) SetStatus(s health.Status) {
	h.status = s
}

// StatusLabel returns the badge text for a backend status
func StatusLabel(s health.Status) string {
	switch s {
	case health.StatusReady:
		return "● ready"
	case health.StatusError:
		return "● offline"
	default:
		return "● checking"
	}
}

// StatusColor returns the badge color for a backend status
func StatusColor(s health.Status) color.Color {
	switch s {
	case health.StatusReady:
		return ColorSuccess
	case health.StatusError:
		return ColorError
	default:
		return ColorWarning
	}
}

// View renders the header
func (h *Header) View() string {
	badge := StatusLabel(h.status) + " "

	var title string
	if h.chatTitle != "" {
		title = runewidth.Truncate(h.chatTitle, maxHeaderTitleWidth, "…") + "  "
	}
	rightText := title + badge

	paddingLen := h.width - runewidth.StringWidth(appTitle) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	fullContent := appTitle + strings.Repeat(" ", paddingLen) + rightText
	badgeStart := len([]rune(fullContent)) - len([]rune(badge))

	return h.renderGradient(fullContent, badgeStart)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content over a theme-aware gradient background.
// Runes from badgeStart on are drawn in the status color.
func (h *Header) renderGradient(content string, badgeStart int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)

	textColor := lipgloss.Color(theme.Text)
	badgeColor := StatusColor(h.status)
	titleLen := len([]rune(appTitle))

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleLen || i >= badgeStart)

		if i >= badgeStart {
			style = style.Foreground(badgeColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
