// Package ui provides the visual components of the tripchat TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: title, active chat, backend status          │
//	├─────────────┬───────────────────────────────────────┤
//	│             │                                       │
//	│  Sidebar    │  Chat panel (message log)             │
//	│  (1/4)      │                                       │
//	│             ├───────────────────────────────────────┤
//	│             │  Composer                             │
//	├─────────────┴───────────────────────────────────────┤
//	│ Footer: key bindings or a flash message             │
//	└─────────────────────────────────────────────────────┘
//
// ViewContext owns the layout math. Components never compute sizes on
// their own; the app resizes them from the context on tea.WindowSizeMsg.
//
// # Components
//
// Header renders the app title, the active chat title and a status badge
// over a gradient. Sidebar lists chats in creation order with a cursor and
// an active marker. Chat shows a snapshot of one chat: messages are
// rendered as markdown with chroma-highlighted code fences, error replies
// use the error style, and a "Thinking..." stopwatch runs while a reply is
// outstanding. Footer shows bindings for the focused pane and transient
// flash messages.
//
// Components are display only. They receive deep-copied chat snapshots
// and never mutate application state.
//
// # Modals
//
// Modal wraps one modals.ModalState at a time. The huh-based modals leave
// Enter and Esc to the app layer, which applies or dismisses them.
//
// # Themes
//
// Styles are package variables regenerated from the current Theme by
// SetTheme. Read them at render time, never cache them.
package ui
