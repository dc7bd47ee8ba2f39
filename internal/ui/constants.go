package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// MinSidebarWidth keeps chat titles readable on narrow terminals
	MinSidebarWidth = 20

	// TextareaHeight is the number of lines for the composer textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1))
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the width used for wrapping before the first resize
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp layout math
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Composer limits
const (
	// ComposerCharLimit caps a single message
	ComposerCharLimit = 4000
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 56
)

// Timing
const (
	// DefaultFlashDuration is how long a footer flash stays visible
	DefaultFlashDuration = 4 * time.Second

	// StopwatchInterval is the refresh rate of the "Thinking..." indicator
	StopwatchInterval = 100 * time.Millisecond
)
