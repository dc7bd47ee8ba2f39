package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tripchat/internal/health"
	"github.com/zhubert/tripchat/internal/keys"
	"github.com/zhubert/tripchat/internal/logger"
	"github.com/zhubert/tripchat/internal/ui"
)

// Shortcut is a keyboard shortcut with its help metadata and handler.
// The registry below feeds both key handling and the help modal.
type Shortcut struct {
	Key             string                              // The key binding (e.g., "ctrl+n")
	DisplayKey      string                              // Display name in help; defaults to Key
	Description     string                              // Human-readable description
	Category        string                              // Section for help modal grouping
	RequiresSidebar bool                                // Only when the sidebar has focus
	Handler         func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition       func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "Navigation"
	CategoryChats      = "Chats"
	CategoryReplies    = "Replies"
	CategoryService    = "Chat Service"
	CategoryGeneral    = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryChats,
	CategoryReplies,
	CategoryService,
	CategoryGeneral,
}

// ShortcutRegistry lists every shortcut that is not tied to text entry.
// Enter in the composer sends and is handled before the registry.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.Tab,
		Description: "Switch between sidebar and chat",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:         keys.ShiftTab,
		Description: "Switch between sidebar and chat",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:             keys.Enter,
		Description:     "Open selected chat",
		Category:        CategoryNavigation,
		RequiresSidebar: true,
		Handler:         shortcutOpenChat,
	},

	// Chats
	{
		Key:         keys.CtrlN,
		Description: "Start a new chat",
		Category:    CategoryChats,
		Handler:     shortcutNewChat,
	},
	{
		Key:         keys.CtrlL,
		Description: "Clear the active chat",
		Category:    CategoryChats,
		Handler:     shortcutClearChat,
	},

	// Replies
	{
		Key:         keys.CtrlY,
		Description: "Copy the last reply",
		Category:    CategoryReplies,
		Handler:     shortcutCopyReply,
	},
	{
		Key:         keys.PgUp,
		Description: "Scroll messages up",
		Category:    CategoryReplies,
		Handler:     shortcutScrollUp,
	},
	{
		Key:         keys.PgDown,
		Description: "Scroll messages down",
		Category:    CategoryReplies,
		Handler:     shortcutScrollDown,
	},

	// Chat service
	{
		Key:         keys.CtrlR,
		Description: "Re-check the chat service",
		Category:    CategoryService,
		Handler:     shortcutRecheckHealth,
	},

	// General
	{
		Key:             ",",
		Description:     "Settings",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutSettings,
	},
	{
		Key:             "?",
		Description:     "Show this help",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		// Handler is bound in init: shortcutHelp reads ShortcutRegistry
	},
	{
		Key:             "q",
		Description:     "Quit",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutQuit,
	},
	{
		Key:         keys.CtrlC,
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// displayKey returns the key as shown in the help modal
func (s Shortcut) displayKey() string {
	if s.DisplayKey != "" {
		return s.DisplayKey
	}
	return s.Key
}

// ExecuteShortcut runs the registered shortcut for key when its
// requirements are met. The bool reports whether one ran.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if s.RequiresSidebar && m.focus != FocusSidebar {
			continue
		}
		if s.Condition != nil && !s.Condition(m) {
			continue
		}
		logger.WithComponent("App").Debug("executing shortcut", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// helpSections builds the help modal content from the registry, skipping
// duplicate key descriptions such as tab / shift+tab
func helpSections() []ui.HelpSection {
	byCategory := make(map[string][]ui.HelpShortcut)
	seen := make(map[string]bool)
	for _, s := range ShortcutRegistry {
		if seen[s.Category+s.Description] {
			continue
		}
		seen[s.Category+s.Description] = true
		byCategory[s.Category] = append(byCategory[s.Category], ui.HelpShortcut{
			Key:  s.displayKey(),
			Desc: s.Description,
		})
	}

	sections := make([]ui.HelpSection, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		if len(byCategory[cat]) == 0 {
			continue
		}
		sections = append(sections, ui.HelpSection{Title: cat, Shortcuts: byCategory[cat]})
	}
	return sections
}

// shortcutForDisplayKey maps a help modal entry back to its binding
func shortcutForDisplayKey(display string) (Shortcut, bool) {
	for _, s := range ShortcutRegistry {
		if s.displayKey() == display {
			return s, true
		}
	}
	return Shortcut{}, false
}

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, m.refresh()
}

func shortcutOpenChat(m *Model) (tea.Model, tea.Cmd) {
	return m.selectChat()
}

func shortcutNewChat(m *Model) (tea.Model, tea.Cmd) {
	return m.newChat()
}

func shortcutClearChat(m *Model) (tea.Model, tea.Cmd) {
	active, ok := m.store.Active()
	if !ok {
		return m, nil
	}
	if len(active.Messages) == 0 {
		return m, m.ShowFlashInfo("Nothing to clear")
	}
	m.modal.Show(ui.NewConfirmClearState(active.ID, active.DisplayTitle(), len(active.Messages)))
	return m, nil
}

func shortcutCopyReply(m *Model) (tea.Model, tea.Cmd) {
	return m.copyLastReply()
}

func shortcutScrollUp(m *Model) (tea.Model, tea.Cmd) {
	m.chat.ScrollUp()
	return m, nil
}

func shortcutScrollDown(m *Model) (tea.Model, tea.Cmd) {
	m.chat.ScrollDown()
	return m, nil
}

func shortcutRecheckHealth(m *Model) (tea.Model, tea.Cmd) {
	if m.monitor.Status() == health.StatusChecking {
		return m, m.ShowFlashInfo("Already checking the chat service")
	}
	m.manualCheck = true
	return m, m.checkHealth()
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	names, displayNames := ui.ThemeOptions()
	m.modal.Show(ui.NewSettingsState(
		names,
		displayNames,
		string(ui.CurrentThemeName()),
		m.config.GetNotificationsEnabled(),
	))
	return m, nil
}

// init binds the help handler, which can't be set in the registry literal
// because shortcutHelp references ShortcutRegistry (initialization cycle).
func init() {
	for i := range ShortcutRegistry {
		if ShortcutRegistry[i].Key == "?" {
			ShortcutRegistry[i].Handler = shortcutHelp
		}
	}
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(ui.NewHelpState(helpSections()))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}
