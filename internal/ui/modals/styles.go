package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Style variables - these will be set by the parent ui package via SetStyles
var (
	ModalTitleStyle  lipgloss.Style
	ModalHelpStyle   lipgloss.Style
	StatusErrorStyle lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color

	ModalWidth int
)

// HelpModalMaxVisible is the number of list rows shown in the help modal
const HelpModalMaxVisible = 14

// SetStyles sets the style variables from the parent ui package.
// This must be called before rendering any modals.
func SetStyles(
	modalTitle, modalHelp, statusError lipgloss.Style,
	primary, secondary, text, textMuted, textInverse, warning color.Color,
	modalWidth int,
) {
	ModalTitleStyle = modalTitle
	ModalHelpStyle = modalHelp
	StatusErrorStyle = statusError

	ColorPrimary = primary
	ColorSecondary = secondary
	ColorText = text
	ColorTextMuted = textMuted
	ColorTextInverse = textInverse
	ColorWarning = warning

	ModalWidth = modalWidth
}

// contentWidth is the form width inside the modal border and padding
func contentWidth() int {
	if ModalWidth > 8 {
		return ModalWidth - 8
	}
	return ModalWidth
}
