// Package dispatch sends composer text to the chat service and records the
// exchange in the chat store.
//
// A dispatch has three phases so the network call can run off the UI loop:
//
//	pending, ok := d.Begin(text)   // optimistic user message, isSending = true
//	result := pending.Run(ctx, s)  // network only, any goroutine
//	d.Complete(result)             // reply or error message, isSending = false
//
// At most one dispatch is outstanding. The reply always lands in the chat
// that was active when Begin ran, even if the user switched chats meanwhile.
package dispatch

import (
	"context"
	"strings"
	"sync"

	"github.com/zhubert/tripchat/internal/backend"
	"github.com/zhubert/tripchat/internal/chat"
	"github.com/zhubert/tripchat/internal/errors"
	"github.com/zhubert/tripchat/internal/logger"
)

// Failure reasons shown to the user.
const (
	ReasonRequestFailed   = "Request failed"
	ReasonNetwork         = "Network error: could not reach the chat service"
	ReasonInvalidResponse = "Invalid response from the chat service"
)

// Sender performs the chat request. *backend.Client satisfies it.
type Sender interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Pending is a dispatch that has been started but not completed.
type Pending struct {
	// ChatID is the chat that was active when the dispatch began.
	ChatID string
	// Message is the user message already appended to that chat.
	Message chat.Message
}

// Result is the outcome of Pending.Run.
type Result struct {
	ChatID        string
	UserMessageID string
	Reply         string
	Err           error
}

// OK reports whether the request succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Reason returns the user-facing failure reason, or "" on success.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return FailureReason(r.Err)
}

// Run performs the network call. It never touches the store.
func (p *Pending) Run(ctx context.Context, s Sender) Result {
	reply, err := s.Chat(ctx, p.Message.Text)
	return Result{
		ChatID:        p.ChatID,
		UserMessageID: p.Message.ID,
		Reply:         reply,
		Err:           err,
	}
}

// FailureReason maps a Sender error to the text shown in the chat.
func FailureReason(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return ReasonRequestFailed
	}
	switch errors.GetKind(err) {
	case errors.KindNetwork, errors.KindTimeout:
		return ReasonNetwork
	case errors.KindDecode:
		return ReasonInvalidResponse
	default:
		return ReasonRequestFailed
	}
}

// Dispatcher owns the sending flag and the last error.
type Dispatcher struct {
	mu        sync.RWMutex
	store     *chat.Store
	sender    Sender
	sending   bool
	lastError string
}

// New returns a dispatcher that records exchanges in store and uses sender
// for Send.
func New(store *chat.Store, sender Sender) *Dispatcher {
	return &Dispatcher{store: store, sender: sender}
}

// IsSending reports whether a dispatch is outstanding.
func (d *Dispatcher) IsSending() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sending
}

// LastError returns the reason of the most recent failed dispatch, cleared
// when the next dispatch begins.
func (d *Dispatcher) LastError() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastError
}

// Sender returns the sender used by Send.
func (d *Dispatcher) Sender() Sender {
	return d.sender
}

// Begin validates raw and starts a dispatch. It returns (nil, false) without
// changing any state when the trimmed text is empty, a dispatch is already
// outstanding, or there is no active chat.
func (d *Dispatcher) Begin(raw string) (*Pending, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sending {
		return nil, false
	}
	chatID := d.store.ActiveID()
	if chatID == "" {
		return nil, false
	}

	msg := chat.Message{
		ID:        d.store.NewMessageID(),
		Text:      text,
		Sender:    chat.SenderUser,
		Timestamp: d.store.Now(),
	}
	if err := d.store.AppendMessage(chatID, msg); err != nil {
		logger.WithComponent("Dispatch").Error("failed to append user message", "chatID", chatID, "error", err)
		return nil, false
	}

	d.sending = true
	d.lastError = ""

	logger.WithComponent("Dispatch").Debug("dispatch started", "chatID", chatID, "messageID", msg.ID)
	return &Pending{ChatID: chatID, Message: msg}, true
}

// Complete appends the reply, or an error notice, to the chat the dispatch
// started in and clears the sending flag. It returns the appended message.
func (d *Dispatcher) Complete(r Result) chat.Message {
	d.mu.Lock()
	defer d.mu.Unlock()

	log := logger.WithComponent("Dispatch")

	msg := chat.Message{
		ID:        chat.ReplyID(r.UserMessageID),
		Sender:    chat.SenderBot,
		Timestamp: d.store.Now(),
	}
	if r.Err != nil {
		reason := FailureReason(r.Err)
		msg.Text = chat.ErrorPrefix + reason
		d.lastError = reason
		log.Warn("dispatch failed", "chatID", r.ChatID, "reason", reason, "error", r.Err)
	} else {
		msg.Text = r.Reply
		log.Debug("dispatch completed", "chatID", r.ChatID, "replyBytes", len(r.Reply))
	}

	if err := d.store.AppendMessage(r.ChatID, msg); err != nil {
		log.Error("failed to append reply", "chatID", r.ChatID, "error", err)
	}
	d.sending = false
	return msg
}

// Send runs Begin, Run and Complete synchronously.
func (d *Dispatcher) Send(ctx context.Context, raw string) (Result, bool) {
	p, ok := d.Begin(raw)
	if !ok {
		return Result{}, false
	}
	r := p.Run(ctx, d.sender)
	d.Complete(r)
	return r, true
}
