package modals

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// ConfirmClearState - State for the Clear Chat confirmation modal
// =============================================================================

// ConfirmClearState asks before wiping the messages of a chat
type ConfirmClearState struct {
	ChatID       string
	ChatTitle    string
	MessageCount int

	confirmed bool
	form      *huh.Form
}

func (*ConfirmClearState) modalState() {}

func (s *ConfirmClearState) Title() string { return "Clear Chat?" }

func (s *ConfirmClearState) Help() string {
	return "←/→ choose  y/n  Enter: apply  Esc: cancel"
}

func (s *ConfirmClearState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *ConfirmClearState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether the user chose to clear
func (s *ConfirmClearState) Confirmed() bool {
	return s.confirmed
}

// Answered reports whether the form was completed with y or n
func (s *ConfirmClearState) Answered() bool {
	return s.form.State == huh.StateCompleted
}

// NewConfirmClearState creates a confirmation for clearing the given chat.
// The answer defaults to "Cancel".
func NewConfirmClearState(chatID, chatTitle string, messageCount int) *ConfirmClearState {
	s := &ConfirmClearState{
		ChatID:       chatID,
		ChatTitle:    chatTitle,
		MessageCount: messageCount,
	}

	noun := "messages"
	if messageCount == 1 {
		noun = "message"
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear %q?", chatTitle)).
				Description(fmt.Sprintf("%d %s will be removed. This cannot be undone.", messageCount, noun)).
				Affirmative("Clear").
				Negative("Cancel").
				Value(&s.confirmed),
		),
	).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(contentWidth())

	initHuhForm(s.form)
	return s
}
