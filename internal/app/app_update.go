package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tripchat/internal/chat"
	"github.com/zhubert/tripchat/internal/keys"
	"github.com/zhubert/tripchat/internal/logger"
	"github.com/zhubert/tripchat/internal/notification"
	"github.com/zhubert/tripchat/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		logger.WithComponent("App").Debug("window focused")
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		logger.WithComponent("App").Debug("window blurred")
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled here, let it fall through to the focused panel

	case HealthCheckedMsg:
		return m.handleHealthChecked(msg)

	case ReplyReceivedMsg:
		return m.handleReplyReceived(msg)

	case HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)

	case ui.FlashTickMsg:
		return m, m.handleFlashTick()

	case ui.StopwatchTickMsg:
		chatPanel, cmd := m.chat.Update(msg)
		m.chat = chatPanel
		return m, cmd
	}

	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		// huh completes a form on a follow-up message after y/n
		if state, ok := m.modal.State.(*ui.ConfirmClearState); ok && state.Answered() {
			_, clearCmd := m.applyClear(state)
			return m, tea.Batch(cmd, clearCmd)
		}
		return m, cmd
	}

	// Update focused panel for everything else
	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		return m, cmd
	}
	chatPanel, cmd := m.chat.Update(msg)
	m.chat = chatPanel
	return m, cmd
}

// handleKeyPress handles keys at the app level. A nil model means the key
// should go to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	logger.WithComponent("App").Debug("key press", "key", key, "focus", m.focus.String(), "modalVisible", m.modal.IsVisible())

	// ctrl+c always quits, even with a modal open
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if m.focus == FocusChat && key == keys.Enter {
		return m.sendMessage()
	}

	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	return nil, nil
}

// handleHealthChecked records a probe result
func (m *Model) handleHealthChecked(msg HealthCheckedMsg) (tea.Model, tea.Cmd) {
	m.monitor.Apply(msg.Status)
	cmd := m.refresh()

	if m.manualCheck {
		m.manualCheck = false
		return m, tea.Batch(cmd, m.flashHealth(msg.Status))
	}
	return m, cmd
}

// handleReplyReceived completes the outstanding dispatch. The reply, or an
// error notice, lands in the chat the dispatch started in.
func (m *Model) handleReplyReceived(msg ReplyReceivedMsg) (tea.Model, tea.Cmd) {
	r := msg.Result
	m.dispatcher.Complete(r)
	m.pendingChatID = ""

	cmds := []tea.Cmd{m.refresh()}

	if !r.OK() {
		cmds = append(cmds, m.ShowFlashError(r.Reason()))
		return m, tea.Batch(cmds...)
	}

	// Desktop notification if the terminal is in the background
	if !m.windowFocused && m.config.GetNotificationsEnabled() {
		title := chat.DefaultTitle
		if c, err := m.store.Get(r.ChatID); err == nil {
			title = c.DisplayTitle()
		}
		go notification.ReplyReady(title, r.Reply)
	}

	return m, tea.Batch(cmds...)
}
