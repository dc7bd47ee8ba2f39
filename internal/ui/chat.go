package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/tripchat/internal/chat"
	"github.com/zhubert/tripchat/internal/keys"
)

// Chat represents the right panel with the conversation view and composer
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	chatID   string
	messages []chat.Message

	waiting bool // Waiting for the chat service to reply
	spinner spinnerState
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask about your trip..."
	ti.CharLimit = ComposerCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	// Chat panel height (excluding input area which is separate)
	chatPanelHeight := height - InputTotalHeight

	viewportHeight := ctx.InnerHeight(chatPanelHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border AND padding
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	c.updateContent()
	c.viewport.GotoBottom()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetChat shows a chat snapshot. Switching chats or receiving new messages
// scrolls the log to the newest message.
func (c *Chat) SetChat(snapshot chat.Chat) {
	changed := snapshot.ID != c.chatID || len(snapshot.Messages) != len(c.messages)
	if !changed && len(c.messages) > 0 {
		changed = snapshot.Messages[len(snapshot.Messages)-1].ID != c.messages[len(c.messages)-1].ID
	}

	c.chatID = snapshot.ID
	c.messages = snapshot.Messages
	c.updateContent()
	if changed {
		c.viewport.GotoBottom()
	}
}

// ChatID returns the id of the chat being shown
func (c *Chat) ChatID() string {
	return c.chatID
}

// MessageCount returns the number of messages being shown
func (c *Chat) MessageCount() int {
	return len(c.messages)
}

// GetInput returns the current input text with surrounding whitespace trimmed
func (c *Chat) GetInput() string {
	return strings.TrimSpace(c.input.Value())
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// AtBottom reports whether the log is scrolled to the newest message
func (c *Chat) AtBottom() bool {
	return c.viewport.AtBottom()
}

// ScrollUp scrolls the log up by one page
func (c *Chat) ScrollUp() {
	c.viewport.PageUp()
}

// ScrollDown scrolls the log down by one page
func (c *Chat) ScrollDown() {
	c.viewport.PageDown()
}

func (c *Chat) renderMessage(sb *strings.Builder, msg chat.Message, wrapWidth int) {
	var label string
	var labelStyle lipgloss.Style
	if msg.Sender == chat.SenderUser {
		label, labelStyle = "You:", ChatUserStyle
	} else {
		label, labelStyle = "Assistant:", ChatAssistantStyle
	}

	sb.WriteString(labelStyle.Render(label))
	if !msg.Timestamp.IsZero() {
		sb.WriteString(" ")
		sb.WriteString(ChatTimestampStyle.Render(msg.Timestamp.Local().Format("15:04")))
	}
	sb.WriteString("\n")

	text := strings.TrimSpace(msg.Text)
	switch {
	case msg.IsError():
		sb.WriteString(ChatErrorStyle.Render(wrapText(text, wrapWidth)))
	case msg.Sender == chat.SenderBot:
		sb.WriteString(renderMarkdown(text, wrapWidth))
	default:
		sb.WriteString(ChatMessageStyle.Render(wrapText(text, wrapWidth)))
	}
}

func (c *Chat) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}
	stick := c.viewport.AtBottom()

	var sb strings.Builder
	if len(c.messages) == 0 && !c.waiting {
		sb.WriteString(renderEmptyChat())
	} else {
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			c.renderMessage(&sb, msg, wrapWidth)
		}

		if c.waiting {
			if len(c.messages) > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(renderWaitingStatus(c.spinner.Idx, time.Since(c.spinner.Start)))
		}
	}

	c.viewport.SetContent(sb.String())
	if stick {
		c.viewport.GotoBottom()
	}
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if _, ok := msg.(StopwatchTickMsg); ok {
		return c, c.handleStopwatchTick()
	}

	var cmds []tea.Cmd

	if c.focused {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			// Scroll keys go to the viewport, everything else to the composer
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown:
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				return c, cmd
			}

			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Mouse wheel and other non-key events
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
