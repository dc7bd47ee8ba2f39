package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, set from the current theme by regenerateStyles
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorMuted       color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorUser        color.Color
	ColorAssistant   color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Sidebar styles
var (
	SidebarItemStyle     lipgloss.Style
	SidebarSelectedStyle lipgloss.Style
	SidebarMetaStyle     lipgloss.Style
)

// Chat styles
var (
	ChatUserStyle         lipgloss.Style
	ChatAssistantStyle    lipgloss.Style
	ChatMessageStyle      lipgloss.Style
	ChatErrorStyle        lipgloss.Style
	ChatTimestampStyle    lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

// Markdown rendering styles
var (
	MarkdownH1Style         lipgloss.Style
	MarkdownH2Style         lipgloss.Style
	MarkdownH3Style         lipgloss.Style
	MarkdownBoldStyle       lipgloss.Style
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownListBulletStyle lipgloss.Style
	MarkdownLinkStyle       lipgloss.Style
	MarkdownHRStyle         lipgloss.Style
)
