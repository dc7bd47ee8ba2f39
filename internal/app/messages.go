package app

import (
	"github.com/zhubert/tripchat/internal/dispatch"
	"github.com/zhubert/tripchat/internal/health"
)

// HealthCheckedMsg carries the outcome of a single readiness probe
type HealthCheckedMsg struct {
	Status health.Status
}

// ReplyReceivedMsg carries the outcome of a chat request started by
// sendMessage
type ReplyReceivedMsg struct {
	Result dispatch.Result
}

// HelpShortcutTriggeredMsg is sent when a shortcut is chosen in the help modal
type HelpShortcutTriggeredMsg struct {
	Key string
}
