package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/zhubert/tripchat/internal/ui/modals"
)

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for assistant messages, info)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	User      string // User message labels
	Assistant string // Assistant message labels
	Warning   string // Warnings, "checking" badge
	Error     string // Error messages, "offline" badge
	Success   string // "ready" badge, success flashes
	Info      string // Information

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Markdown colors
	MarkdownH1       string
	MarkdownH2       string
	MarkdownH3       string
	MarkdownCode     string // Inline code
	MarkdownCodeBg   string // Code background
	MarkdownLink     string
	MarkdownListItem string

	// CodeStyle is the chroma style used for fenced code blocks
	CodeStyle string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:             "Dark Purple",
		Primary:          "#7C3AED",
		Secondary:        "#06B6D4",
		Bg:               "#1F2937",
		Text:             "#F9FAFB",
		TextMuted:        "#9CA3AF",
		TextInverse:      "#1F2937",
		User:             "#A78BFA",
		Assistant:        "#22D3EE",
		Warning:          "#F59E0B",
		Error:            "#EF4444",
		Success:          "#10B981",
		Info:             "#06B6D4",
		Border:           "#374151",
		MarkdownH1:       "#A78BFA",
		MarkdownH2:       "#C4B5FD",
		MarkdownH3:       "#22D3EE",
		MarkdownCode:     "#67E8F9",
		MarkdownCodeBg:   "#1E1E2E",
		MarkdownLink:     "#67E8F9",
		MarkdownListItem: "#06B6D4",
		CodeStyle:        "monokai",
	},
	ThemeNord: {
		Name:             "Nord",
		Primary:          "#88C0D0",
		Secondary:        "#81A1C1",
		Bg:               "#2E3440",
		Text:             "#ECEFF4",
		TextMuted:        "#D8DEE9",
		TextInverse:      "#2E3440",
		User:             "#A3BE8C",
		Assistant:        "#88C0D0",
		Warning:          "#EBCB8B",
		Error:            "#BF616A",
		Success:          "#A3BE8C",
		Info:             "#81A1C1",
		Border:           "#4C566A",
		MarkdownH1:       "#88C0D0",
		MarkdownH2:       "#81A1C1",
		MarkdownH3:       "#5E81AC",
		MarkdownCode:     "#A3BE8C",
		MarkdownCodeBg:   "#242933",
		MarkdownLink:     "#88C0D0",
		MarkdownListItem: "#81A1C1",
		CodeStyle:        "nord",
	},
	ThemeDracula: {
		Name:             "Dracula",
		Primary:          "#BD93F9",
		Secondary:        "#8BE9FD",
		Bg:               "#282A36",
		Text:             "#F8F8F2",
		TextMuted:        "#6272A4",
		TextInverse:      "#282A36",
		User:             "#FF79C6",
		Assistant:        "#8BE9FD",
		Warning:          "#FFB86C",
		Error:            "#FF5555",
		Success:          "#50FA7B",
		Info:             "#8BE9FD",
		Border:           "#44475A",
		MarkdownH1:       "#BD93F9",
		MarkdownH2:       "#FF79C6",
		MarkdownH3:       "#8BE9FD",
		MarkdownCode:     "#50FA7B",
		MarkdownCodeBg:   "#21222C",
		MarkdownLink:     "#8BE9FD",
		MarkdownListItem: "#BD93F9",
		CodeStyle:        "dracula",
	},
	ThemeLight: {
		Name:             "Light",
		Primary:          "#6366F1",
		Secondary:        "#0891B2",
		Bg:               "#FFFFFF",
		BgSelected:       "#E0E7FF",
		Text:             "#1F2937",
		TextMuted:        "#6B7280",
		TextInverse:      "#FFFFFF",
		User:             "#7C3AED",
		Assistant:        "#0891B2",
		Warning:          "#D97706",
		Error:            "#DC2626",
		Success:          "#16A34A",
		Info:             "#0891B2",
		Border:           "#D1D5DB",
		BorderFocus:      "#6366F1",
		MarkdownH1:       "#6366F1",
		MarkdownH2:       "#7C3AED",
		MarkdownH3:       "#0891B2",
		MarkdownCode:     "#059669",
		MarkdownCodeBg:   "#F3F4F6",
		MarkdownLink:     "#0891B2",
		MarkdownListItem: "#6366F1",
		CodeStyle:        "github",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// currentThemeName is tracked separately since display names aren't keys
var currentThemeName = DefaultTheme

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles.
// Unknown names fall back to DefaultTheme.
func SetTheme(name ThemeName) {
	if _, ok := BuiltinThemes[name]; !ok {
		name = DefaultTheme
	}
	currentTheme = BuiltinThemes[name]
	currentThemeName = name
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	return currentThemeName
}

// ThemeOptions returns theme keys and display names in display order, for
// the settings modal.
func ThemeOptions() (names []string, displayNames []string) {
	for _, n := range ThemeNames() {
		names = append(names, string(n))
		displayNames = append(displayNames, BuiltinThemes[n].Name)
	}
	return names, displayNames
}

func init() {
	regenerateStyles()
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)
	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	SidebarItemStyle = lipgloss.NewStyle().
		Padding(0, 1)
	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)
	SidebarMetaStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)
	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)
	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)
	ChatErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	ChatTimestampStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	MarkdownH1Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH1))
	MarkdownH2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH2))
	MarkdownH3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH3))
	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)
	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))
	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownListItem))
	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownLink)).
		Underline(true)
	MarkdownHRStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorWarning,
		ModalWidth,
	)
}
