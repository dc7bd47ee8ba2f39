// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/tripchat/internal/logger"
)

// AppName is the title of every notification
const AppName = "tripchat"

// maxBodyRunes bounds the reply excerpt shown in a notification
const maxBodyRunes = 120

// notifyFunc matches beeep.Notify
type notifyFunc func(title, message string, icon any) error

var (
	mu       sync.Mutex
	notifier notifyFunc = beeep.Notify
)

// SetNotifier replaces the notification backend. Used by tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores beeep as the notification backend.
func ResetNotifier() {
	mu.Lock()
	defer mu.Unlock()
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("Notification")

	mu.Lock()
	fn := notifier
	mu.Unlock()

	// Empty icon lets beeep use the platform default
	err := fn(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "title", title, "error", err)
		return err
	}
	log.Debug("notification sent", "title", title)
	return nil
}

// ReplyReady announces that the chat service answered in the given chat.
func ReplyReady(chatTitle, reply string) error {
	return Send(AppName, chatTitle+": "+excerpt(reply))
}

// excerpt keeps the first line of text, cut to maxBodyRunes
func excerpt(text string) string {
	for i, r := range text {
		if r == '\n' {
			text = text[:i]
			break
		}
	}
	runes := []rune(text)
	if len(runes) > maxBodyRunes {
		return string(runes[:maxBodyRunes-1]) + "…"
	}
	return text
}
