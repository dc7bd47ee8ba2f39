package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tripchat/internal/keys"
	"github.com/zhubert/tripchat/internal/logger"
	"github.com/zhubert/tripchat/internal/ui"
)

// handleModalKey routes a key press to the handler of the visible modal
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *ui.ConfirmClearState:
		return m.handleConfirmClearModal(key, msg, s)
	case *ui.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *ui.HelpState:
		return m.handleHelpModal(key, msg, s)
	}

	if key == keys.Escape {
		m.modal.Hide()
	}
	return m, nil
}

// handleConfirmClearModal handles key events for the Clear Chat modal.
// y/n answer immediately; Enter applies the highlighted choice.
func (m *Model) handleConfirmClearModal(key string, msg tea.KeyPressMsg, state *ui.ConfirmClearState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		return m.applyClear(state)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	if state.Answered() {
		result, clearCmd := m.applyClear(state)
		return result, tea.Batch(cmd, clearCmd)
	}
	return m, cmd
}

// applyClear closes the Clear Chat modal and empties the chat when confirmed
func (m *Model) applyClear(state *ui.ConfirmClearState) (tea.Model, tea.Cmd) {
	m.modal.Hide()
	if !state.Confirmed() {
		return m, nil
	}

	log := logger.WithChat(state.ChatID)
	if err := m.store.ClearMessages(state.ChatID); err != nil {
		log.Error("failed to clear chat", "error", err)
		return m, m.ShowFlashError("Failed to clear chat")
	}
	log.Info("chat cleared", "messages", state.MessageCount)
	return m, tea.Batch(m.refresh(), m.ShowFlashSuccess("Chat cleared"))
}

// handleSettingsModal handles key events for the Settings modal
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *ui.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.config.SetNotificationsEnabled(state.GetNotificationsEnabled())
		if state.ThemeChanged() {
			ui.SetThemeByName(state.GetSelectedTheme())
			m.config.SetTheme(state.GetSelectedTheme())
			// Re-render cached message content with the new palette
			m.updateSizes()
		}
		if err := m.config.Save(); err != nil {
			logger.WithComponent("App").Error("failed to save settings", "error", err)
			m.modal.SetError("Failed to save: " + err.Error())
			return m, nil
		}
		m.modal.Hide()
		return m, m.ShowFlashSuccess("Settings saved")
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpModal handles key events for the Help modal
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *ui.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut := state.GetSelectedShortcut()
		if shortcut == nil {
			return m, nil
		}
		m.modal.Hide()
		display := shortcut.Key
		return m, func() tea.Msg {
			return HelpShortcutTriggeredMsg{Key: display}
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpShortcutTrigger runs a shortcut chosen in the help modal
func (m *Model) handleHelpShortcutTrigger(display string) (tea.Model, tea.Cmd) {
	s, ok := shortcutForDisplayKey(display)
	if !ok {
		return m, nil
	}
	result, cmd, _ := m.ExecuteShortcut(s.Key)
	return result, cmd
}
