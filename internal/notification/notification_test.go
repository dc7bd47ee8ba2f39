package notification

import (
	"errors"
	"strings"
	"testing"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
	}{title, message})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{"successful notification", "Test Title", "Test Message", nil, false},
		{"notification error", "Test Title", "Test Message", errors.New("notification failed"), true},
		{"empty message", "Title", "", nil, false},
		{"unicode content", "通知", "🎉 Notification with emoji", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != tt.title || mock.calls[0].message != tt.message {
				t.Errorf("got (%q, %q), want (%q, %q)", mock.calls[0].title, mock.calls[0].message, tt.title, tt.message)
			}
		})
	}
}

func TestReplyReady(t *testing.T) {
	tests := []struct {
		name        string
		chatTitle   string
		reply       string
		wantMessage string
	}{
		{"short reply", "Lisbon", "Take tram 28.", "Lisbon: Take tram 28."},
		{"first line only", "Kyoto", "Visit Fushimi Inari.\nGo early.", "Kyoto: Visit Fushimi Inari."},
		{"empty reply", "Oslo", "", "Oslo: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			if err := ReplyReady(tt.chatTitle, tt.reply); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != AppName {
				t.Errorf("title = %q, want %q", mock.calls[0].title, AppName)
			}
			if mock.calls[0].message != tt.wantMessage {
				t.Errorf("message = %q, want %q", mock.calls[0].message, tt.wantMessage)
			}
		})
	}
}

func TestReplyReady_LongReplyTruncated(t *testing.T) {
	mock := &mockNotification{}
	SetNotifier(mock.notify)
	defer ResetNotifier()

	_ = ReplyReady("Rome", strings.Repeat("a", 500))

	msg := mock.calls[0].message
	if !strings.HasSuffix(msg, "…") {
		t.Errorf("long reply should end with an ellipsis: %q", msg)
	}
	if n := len([]rune(strings.TrimPrefix(msg, "Rome: "))); n != maxBodyRunes {
		t.Errorf("excerpt length = %d, want %d", n, maxBodyRunes)
	}
}

func TestReplyReady_Error(t *testing.T) {
	mock := &mockNotification{err: errors.New("no dbus")}
	SetNotifier(mock.notify)
	defer ResetNotifier()

	if err := ReplyReady("Rome", "hi"); err == nil {
		t.Error("expected notifier error to propagate")
	}
}
