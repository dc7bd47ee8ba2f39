package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/tripchat/internal/ui/modals"
)

// Aliases so callers only need the ui package
type (
	ModalState        = modals.ModalState
	HelpState         = modals.HelpState
	HelpSection       = modals.HelpSection
	HelpShortcut      = modals.HelpShortcut
	ConfirmClearState = modals.ConfirmClearState
	SettingsState     = modals.SettingsState
)

var (
	NewHelpState         = modals.NewHelpState
	NewConfirmClearState = modals.NewConfirmClearState
	NewSettingsState     = modals.NewSettingsState
)

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// Overlay renders the modal centered on top of base, leaving the rest of
// base visible around it.
func (m *Modal) Overlay(base string, screenWidth, screenHeight int) string {
	box := m.box(screenHeight)
	if box == "" {
		return base
	}

	x := max(0, (screenWidth-lipgloss.Width(box))/2)
	y := max(0, (screenHeight-lipgloss.Height(box))/2)

	canvas := lipgloss.NewCompositor(
		lipgloss.NewLayer(base).Z(0),
		lipgloss.NewLayer(box).X(x).Y(y).Z(1),
	)
	return canvas.Render()
}

// box renders the framed modal content
func (m *Modal) box(screenHeight int) string {
	if m.State == nil {
		return ""
	}

	if sized, ok := m.State.(modals.ModalWithSize); ok {
		sized.SetSize(ModalWidth-ModalStyle.GetHorizontalFrameSize(), screenHeight-ModalStyle.GetVerticalFrameSize())
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}
	return ModalStyle.Render(content)
}
