package chat

import (
	"strings"
	"testing"

	"github.com/rivo/uniseg"
)

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		chat Chat
		want string
	}{
		{
			name: "explicit title",
			chat: Chat{Title: "Tokyo trip", Messages: []Message{{Text: "ignored", Sender: SenderUser}}},
			want: "Tokyo trip",
		},
		{
			name: "no messages",
			chat: Chat{},
			want: DefaultTitle,
		},
		{
			name: "bot message only",
			chat: Chat{Messages: []Message{{Text: "Welcome", Sender: SenderBot}}},
			want: DefaultTitle,
		},
		{
			name: "first user message",
			chat: Chat{Messages: []Message{
				{Text: "greeting", Sender: SenderBot},
				{Text: "Plan  a\nweekend in Porto", Sender: SenderUser},
				{Text: "second", Sender: SenderUser},
			}},
			want: "Plan a weekend in Porto",
		},
		{
			name: "whitespace title falls back",
			chat: Chat{Title: "   ", Messages: []Message{{Text: "hello", Sender: SenderUser}}},
			want: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chat.DisplayTitle(); got != tt.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayTitle_TruncatesOnGraphemes(t *testing.T) {
	// Family emoji is a single grapheme made of several code points.
	long := strings.Repeat("👨‍👩‍👧", 40)
	c := Chat{Messages: []Message{{Text: long, Sender: SenderUser}}}

	got := c.DisplayTitle()
	if !strings.HasSuffix(got, "…") {
		t.Errorf("long preview should end with an ellipsis: %q", got)
	}
	if n := uniseg.GraphemeClusterCount(got); n != maxPreviewGraphemes {
		t.Errorf("preview has %d graphemes, want %d", n, maxPreviewGraphemes)
	}
	trimmed := strings.TrimSuffix(got, "…")
	if strings.Count(trimmed, "👨‍👩‍👧") != maxPreviewGraphemes-1 {
		t.Errorf("preview split a grapheme cluster: %q", got)
	}
}

func TestMessage_IsError(t *testing.T) {
	tests := []struct {
		msg  Message
		want bool
	}{
		{Message{Text: ErrorPrefix + "Request failed", Sender: SenderBot}, true},
		{Message{Text: ErrorPrefix + "typed by user", Sender: SenderUser}, false},
		{Message{Text: "All good", Sender: SenderBot}, false},
	}

	for _, tt := range tests {
		if got := tt.msg.IsError(); got != tt.want {
			t.Errorf("IsError(%q, %s) = %v, want %v", tt.msg.Text, tt.msg.Sender, got, tt.want)
		}
	}
}

func TestReplyID(t *testing.T) {
	if got := ReplyID("abc"); got != "abc-reply" {
		t.Errorf("ReplyID() = %q, want abc-reply", got)
	}
}

func TestLastReply(t *testing.T) {
	c := Chat{Messages: []Message{
		{ID: "1", Text: "q1", Sender: SenderUser},
		{ID: "1-reply", Text: "answer one", Sender: SenderBot},
		{ID: "2", Text: "q2", Sender: SenderUser},
		{ID: "2-reply", Text: ErrorPrefix + "Request failed", Sender: SenderBot},
	}}

	got, ok := c.LastReply()
	if !ok {
		t.Fatal("expected a reply")
	}
	if got.ID != "1-reply" {
		t.Errorf("LastReply() = %q, want 1-reply (errors are skipped)", got.ID)
	}

	if _, ok := (Chat{}).LastReply(); ok {
		t.Error("empty chat should have no reply")
	}
}
