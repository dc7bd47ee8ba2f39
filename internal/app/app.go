package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/tripchat/internal/chat"
	"github.com/zhubert/tripchat/internal/clipboard"
	"github.com/zhubert/tripchat/internal/config"
	"github.com/zhubert/tripchat/internal/dispatch"
	"github.com/zhubert/tripchat/internal/health"
	"github.com/zhubert/tripchat/internal/logger"
	"github.com/zhubert/tripchat/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusSidebar:
		return "Sidebar"
	case FocusChat:
		return "Chat"
	default:
		return "Unknown"
	}
}

// Backend is the remote chat service. *backend.Client satisfies it.
type Backend interface {
	dispatch.Sender
	health.Prober
}

// Model is the main Bubble Tea model. It owns the chat store, the
// dispatcher and the health monitor; UI components only see snapshots.
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)

	store      *chat.Store
	dispatcher *dispatch.Dispatcher
	monitor    *health.Monitor
	clipboard  clipboard.Writer

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	focus         Focus
	width         int
	height        int
	windowFocused bool

	// pendingChatID is the chat the outstanding dispatch will reply to
	pendingChatID string

	// manualCheck is set while a user-requested health check runs
	manualCheck bool

	// ctx bounds background requests; cancelled when the program exits
	ctx context.Context
}

// Option configures a Model
type Option func(*Model)

// WithStore uses the given chat store instead of a fresh one
func WithStore(store *chat.Store) Option {
	return func(m *Model) {
		m.store = store
	}
}

// WithClipboard replaces the system clipboard
func WithClipboard(w clipboard.Writer) Option {
	return func(m *Model) {
		m.clipboard = w
	}
}

// WithContext sets the context used for background requests
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// New creates a new app model talking to svc
func New(cfg *config.Config, svc Backend, version string, opts ...Option) *Model {
	m := &Model{
		config:        cfg,
		version:       version,
		clipboard:     clipboard.System{},
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		sidebar:       ui.NewSidebar(),
		chat:          ui.NewChat(),
		modal:         ui.NewModal(),
		focus:         FocusChat,
		windowFocused: true,
		ctx:           context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = chat.NewStore()
	}
	m.dispatcher = dispatch.New(m.store, svc)
	m.monitor = health.NewMonitor(svc)

	if theme := cfg.GetTheme(); theme != "" {
		ui.SetThemeByName(theme)
	}

	m.store.EnsureDefaultChat()
	m.sidebar.SetFocused(false)
	m.chat.SetFocused(true)
	m.refresh()

	logger.WithComponent("App").Info("app created", "version", version, "apiURL", cfg.GetAPIURL())
	return m
}

// Init starts the startup health probe
func (m *Model) Init() tea.Cmd {
	return m.checkHealth()
}

// Store returns the chat store
func (m *Model) Store() *chat.Store {
	return m.store
}

// Dispatcher returns the message dispatcher
func (m *Model) Dispatcher() *dispatch.Dispatcher {
	return m.dispatcher
}

// BackendStatus returns the last known backend status
func (m *Model) BackendStatus() health.Status {
	return m.monitor.Status()
}

// Focus returns the focused panel
func (m *Model) Focus() Focus {
	return m.focus
}

// checkHealth marks the backend as checking and returns a command that
// performs exactly one probe.
func (m *Model) checkHealth() tea.Cmd {
	m.monitor.Begin()
	m.refresh()

	ctx := m.ctx
	prober := m.monitor.Prober()
	return func() tea.Msg {
		return HealthCheckedMsg{Status: health.Probe(ctx, prober)}
	}
}

// sendMessage starts a dispatch with the composer text. Invalid input,
// an outstanding dispatch or a missing active chat leave everything as is.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	pending, ok := m.dispatcher.Begin(m.chat.GetInput())
	if !ok {
		return m, nil
	}

	m.chat.ClearInput()
	m.pendingChatID = pending.ChatID

	logger.WithChat(pending.ChatID).Debug("sending message", "messageID", pending.Message.ID)

	ctx := m.ctx
	sender := m.dispatcher.Sender()
	request := func() tea.Msg {
		return ReplyReceivedMsg{Result: pending.Run(ctx, sender)}
	}
	return m, tea.Batch(request, m.refresh())
}

// selectChat makes the chat under the sidebar cursor active and moves focus
// to the composer
func (m *Model) selectChat() (tea.Model, tea.Cmd) {
	id := m.sidebar.SelectedID()
	if id == "" || !m.store.SetActive(id) {
		return m, nil
	}
	m.setFocus(FocusChat)
	return m, m.refresh()
}

// newChat creates a chat, activates it and focuses the composer
func (m *Model) newChat() (tea.Model, tea.Cmd) {
	c := m.store.NewChat("")
	m.setFocus(FocusChat)
	logger.WithChat(c.ID).Info("chat created")
	return m, m.refresh()
}

// copyLastReply copies the newest assistant reply of the active chat
func (m *Model) copyLastReply() (tea.Model, tea.Cmd) {
	active, ok := m.store.Active()
	if !ok {
		return m, nil
	}
	reply, ok := active.LastReply()
	if !ok {
		return m, m.ShowFlashInfo("No reply to copy")
	}
	if err := m.clipboard.WriteText(clipboard.Normalize(reply.Text)); err != nil {
		logger.WithComponent("App").Warn("clipboard write failed", "error", err)
		return m, m.ShowFlashError("Failed to copy to clipboard")
	}
	return m, m.ShowFlashSuccess("Copied reply to clipboard")
}

// setFocus moves focus to the given panel
func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.sidebar.SetFocused(f == FocusSidebar)
	m.chat.SetFocused(f == FocusChat)
}

// toggleFocus switches focus between sidebar and chat
func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		m.setFocus(FocusChat)
	} else {
		m.setFocus(FocusSidebar)
	}
}

// refresh pushes fresh snapshots of the store, dispatcher and monitor into
// the UI components. It returns a command when the waiting animation has
// to start ticking.
func (m *Model) refresh() tea.Cmd {
	status := m.monitor.Status()
	m.header.SetStatus(status)
	m.sidebar.SetStatus(status)
	m.sidebar.SetChats(m.store.Chats(), m.store.ActiveID())

	sending := m.dispatcher.IsSending()
	m.footer.SetContext(m.focus == FocusSidebar, sending)

	active, ok := m.store.Active()
	if !ok {
		return nil
	}
	m.header.SetChatTitle(active.DisplayTitle())
	m.chat.SetChat(active)

	wait := sending && m.pendingChatID == active.ID
	if wait == m.chat.IsWaiting() {
		return nil
	}
	m.chat.SetWaiting(wait)
	if wait {
		return ui.StopwatchTick()
	}
	return nil
}
