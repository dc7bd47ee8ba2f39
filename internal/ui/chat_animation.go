package ui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// StopwatchTickMsg is sent to update the animated waiting display
type StopwatchTickMsg time.Time

// thinkingLabel is shown while a reply is outstanding
const thinkingLabel = "Thinking"

// spinnerFrames are the characters used for the shimmering spinner animation
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// spinnerFrameHoldTimes defines how long each frame is held (in ticks).
// First and last frames hold longer for a "breathing" effect.
var spinnerFrameHoldTimes = []int{3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 3}

// spinnerState tracks the waiting animation
type spinnerState struct {
	Idx   int // Current frame
	Tick  int // Ticks spent on the current frame
	Start time.Time
}

// StopwatchTick returns a command that sends a tick message after a delay
func StopwatchTick() tea.Cmd {
	return tea.Tick(StopwatchInterval, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

// renderWaitingStatus renders the status line shown while waiting.
// Format: ✺ Thinking... (3s)
func renderWaitingStatus(frameIdx int, elapsed time.Duration) string {
	frame := spinnerFrames[frameIdx%len(spinnerFrames)]

	spinnerStyle := lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)
	verbStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Italic(true)
	metaStyle := lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	return spinnerStyle.Render(frame) + " " +
		verbStyle.Render(thinkingLabel+"...") + " " +
		metaStyle.Render("("+formatElapsed(elapsed)+")")
}

// formatElapsed formats a duration for display (e.g., "12s", "1m30s")
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%ds", secs/60, secs%60)
}

// SetWaiting sets the waiting state. Starting to wait resets the stopwatch.
func (c *Chat) SetWaiting(waiting bool) {
	if waiting && !c.waiting {
		c.spinner = spinnerState{Start: time.Now()}
	}
	c.waiting = waiting
	c.updateContent()
}

// IsWaiting returns whether we're waiting for a reply
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// handleStopwatchTick advances the spinner; ticking stops once the wait ends
func (c *Chat) handleStopwatchTick() tea.Cmd {
	if !c.waiting {
		return nil
	}

	c.spinner.Tick++
	holdTime := spinnerFrameHoldTimes[c.spinner.Idx%len(spinnerFrameHoldTimes)]
	if c.spinner.Tick >= holdTime {
		c.spinner.Tick = 0
		c.spinner.Idx = (c.spinner.Idx + 1) % len(spinnerFrames)
	}
	c.updateContent()
	return StopwatchTick()
}
