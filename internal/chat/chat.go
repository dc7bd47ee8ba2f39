package chat

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ReplySuffix is appended to a user message id to form the id of its reply.
const ReplySuffix = "-reply"

// ErrorPrefix marks a bot message that reports a failed dispatch.
const ErrorPrefix = "⚠ Error: "

// DefaultTitle is shown for chats with neither a title nor a user message.
const DefaultTitle = "New chat"

// maxPreviewGraphemes bounds the title preview derived from the first message.
const maxPreviewGraphemes = 32

// Message is a single entry in a chat log. Messages are never edited.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// IsError reports whether the message is a bot-authored failure notice.
func (m Message) IsError() bool {
	return m.Sender == SenderBot && strings.HasPrefix(m.Text, ErrorPrefix)
}

// ReplyID returns the id a bot reply to userMessageID carries.
func ReplyID(userMessageID string) string {
	return userMessageID + ReplySuffix
}

// Chat is a titled, ordered message log.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

// clone returns a deep copy of the chat.
func (c *Chat) clone() Chat {
	cp := *c
	cp.Messages = make([]Message, len(c.Messages))
	copy(cp.Messages, c.Messages)
	return cp
}

// DisplayTitle returns the title, or a preview of the first user message,
// or DefaultTitle.
func (c Chat) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	for _, m := range c.Messages {
		if m.Sender == SenderUser {
			return preview(m.Text, maxPreviewGraphemes)
		}
	}
	return DefaultTitle
}

// LastReply returns the newest bot message that is not an error.
func (c Chat) LastReply() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		m := c.Messages[i]
		if m.Sender == SenderBot && !m.IsError() {
			return m, true
		}
	}
	return Message{}, false
}

// preview collapses whitespace and cuts text after max grapheme clusters,
// so emoji and combining sequences are never split.
func preview(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if uniseg.GraphemeClusterCount(text) <= max {
		return text
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(text)
	for n := 0; n < max-1 && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return strings.TrimRight(b.String(), " ") + "…"
}
