package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/tripchat/internal/chat"
	"github.com/zhubert/tripchat/internal/health"
	"github.com/zhubert/tripchat/internal/keys"
)

// sidebarItem is one rendered row of the chat list
type sidebarItem struct {
	ID       string
	Title    string
	Messages int
}

// Sidebar represents the left panel with the chat list
type Sidebar struct {
	items        []sidebarItem
	activeID     string
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int
	status       health.Status
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{status: health.StatusChecking}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetStatus sets the backend status shown at the bottom of the panel
func (s *Sidebar) SetStatus(status health.Status) {
	s.status = status
}

// SetChats replaces the chat list. The cursor follows the chat it was on
// when that chat is still present, otherwise it lands on the active chat.
func (s *Sidebar) SetChats(chats []chat.Chat, activeID string) {
	prev := s.SelectedID()

	s.items = make([]sidebarItem, 0, len(chats))
	for _, c := range chats {
		s.items = append(s.items, sidebarItem{
			ID:       c.ID,
			Title:    c.DisplayTitle(),
			Messages: len(c.Messages),
		})
	}

	changedActive := activeID != s.activeID
	s.activeID = activeID

	target := prev
	if target == "" || changedActive {
		target = activeID
	}
	s.selectedIdx = 0
	for i, it := range s.items {
		if it.ID == target {
			s.selectedIdx = i
			break
		}
	}
}

// SelectedID returns the chat id under the cursor, or "" when empty
func (s *Sidebar) SelectedID() string {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.items) {
		return ""
	}
	return s.items[s.selectedIdx].ID
}

// Len returns the number of chats listed
func (s *Sidebar) Len() int {
	return len(s.items)
}

// Update handles cursor movement
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return s, nil
	}

	switch keyMsg.String() {
	case keys.Up, "k":
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case keys.Down, "j":
		if s.selectedIdx < len(s.items)-1 {
			s.selectedIdx++
		}
	case keys.Home, "g":
		s.selectedIdx = 0
	case keys.End, "G":
		if len(s.items) > 0 {
			s.selectedIdx = len(s.items) - 1
		}
	}
	return s, nil
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)

	title := PanelTitleStyle.Render("Chats")
	statusLine := lipgloss.NewStyle().Foreground(StatusColor(s.status)).Render(StatusLabel(s.status))
	hint := SidebarMetaStyle.Render("ctrl+l clear")
	bottom := s.fit(statusLine+"  "+hint, innerWidth)

	// Title and bottom line take one row each
	listHeight := innerHeight - 2
	if listHeight < 0 {
		listHeight = 0
	}

	var lines []string
	if len(s.items) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No chats."))
	} else {
		for i, it := range s.items {
			lines = append(lines, s.renderItem(it, i == s.selectedIdx, innerWidth))
		}
	}

	// Keep the cursor row on screen
	if s.selectedIdx < s.scrollOffset {
		s.scrollOffset = s.selectedIdx
	} else if listHeight > 0 && s.selectedIdx >= s.scrollOffset+listHeight {
		s.scrollOffset = s.selectedIdx - listHeight + 1
	}
	maxScroll := len(lines) - listHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scrollOffset > maxScroll {
		s.scrollOffset = maxScroll
	}
	if s.scrollOffset > 0 {
		lines = lines[s.scrollOffset:]
	}
	if len(lines) > listHeight {
		lines = lines[:listHeight]
	}
	for len(lines) < listHeight {
		lines = append(lines, "")
	}

	content := title + "\n" + strings.Join(lines, "\n") + "\n" + bottom

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(content)
}

func (s *Sidebar) renderItem(it sidebarItem, selected bool, width int) string {
	marker := "  "
	if it.ID == s.activeID {
		marker = "● "
	}
	if selected {
		marker = "> "
	}

	count := fmt.Sprintf(" (%d)", it.Messages)
	nameWidth := width - SidebarItemStyle.GetHorizontalPadding() - ansi.StringWidth(marker) - ansi.StringWidth(count)
	name := it.Title
	if nameWidth > 0 {
		name = ansi.Truncate(name, nameWidth, "…")
	} else {
		name = ""
	}

	if selected {
		return SidebarSelectedStyle.Width(width).Render(marker + name + count)
	}
	itemStyle := SidebarItemStyle
	if it.ID == s.activeID {
		itemStyle = itemStyle.Foreground(ColorPrimary).Bold(true)
	}
	return itemStyle.Render(marker + name + SidebarMetaStyle.Render(count))
}

func (s *Sidebar) fit(content string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(content, width, "…")
}
