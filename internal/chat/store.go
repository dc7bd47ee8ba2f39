package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/tripchat/internal/errors"
	"github.com/zhubert/tripchat/internal/logger"
)

// IDGenerator produces unique ids for chats and messages.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// NewID is the default IDGenerator.
func NewID() string {
	return uuid.New().String()
}

// Store owns every chat and the active chat pointer.
// All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	chats    map[string]*Chat
	order    []string
	activeID string

	newID IDGenerator
	now   Clock
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) { s.newID = gen }
}

// WithClock replaces time.Now.
func WithClock(clock Clock) Option {
	return func(s *Store) { s.now = clock }
}

// NewStore returns an empty store. Call EnsureDefaultChat before use.
func NewStore(opts ...Option) *Store {
	s := &Store{
		chats: make(map[string]*Chat),
		newID: NewID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewMessageID returns a fresh id from the store's generator.
func (s *Store) NewMessageID() string {
	return s.newID()
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// EnsureDefaultChat creates and activates an untitled chat if the store is
// empty. It returns the active chat id.
func (s *Store) EnsureDefaultChat() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		c := s.createLocked("")
		s.activeID = c.ID
		logger.WithComponent("Chat").Debug("created default chat", "chatID", c.ID)
	}
	return s.activeID
}

// NewChat creates a chat with the given title and makes it active.
func (s *Store) NewChat(title string) Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.createLocked(title)
	s.activeID = c.ID
	logger.WithComponent("Chat").Debug("created chat", "chatID", c.ID, "count", len(s.order))
	return c.clone()
}

func (s *Store) createLocked(title string) *Chat {
	c := &Chat{
		ID:        s.newID(),
		Title:     title,
		Messages:  []Message{},
		CreatedAt: s.now(),
	}
	s.chats[c.ID] = c
	s.order = append(s.order, c.ID)
	return c
}

// AppendMessage adds msg to the end of the chat's log.
func (s *Store) AppendMessage(chatID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[chatID]
	if !ok {
		return errors.ChatNotFound(chatID)
	}
	c.Messages = append(c.Messages, msg)
	return nil
}

// ClearMessages empties the chat's log, keeping its id, title and creation time.
func (s *Store) ClearMessages(chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chats[chatID]
	if !ok {
		return errors.ChatNotFound(chatID)
	}
	c.Messages = []Message{}
	return nil
}

// SetActive makes chatID the active chat. Unknown ids leave the store
// unchanged and return false.
func (s *Store) SetActive(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chats[chatID]; !ok {
		return false
	}
	s.activeID = chatID
	return true
}

// ActiveID returns the active chat id, or "" when the store is empty.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns a snapshot of the active chat.
func (s *Store) Active() (Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chats[s.activeID]
	if !ok {
		return Chat{}, false
	}
	return c.clone(), true
}

// Get returns a snapshot of the chat with the given id.
func (s *Store) Get(chatID string) (Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chats[chatID]
	if !ok {
		return Chat{}, errors.ChatNotFound(chatID)
	}
	return c.clone(), nil
}

// Chats returns snapshots of every chat in creation order.
func (s *Store) Chats() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Chat, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.chats[id].clone())
	}
	return out
}

// Len returns the number of chats.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
