// Package chat holds the in-memory chat sessions of a tripchat process.
//
// # Overview
//
// A Store keeps every chat created during the process lifetime, in creation
// order, together with the id of the active chat. Nothing is persisted.
//
// Whenever the store holds at least one chat, exactly one of them is active
// and the active id always refers to a chat in the store. EnsureDefaultChat
// creates the first chat so the collection is never empty once the
// application has started.
//
// # Mutation
//
// Chats are never deleted. Their message logs only grow through
// AppendMessage or are emptied through ClearMessages, which keeps the chat's
// id, title and creation time.
//
// # Snapshots
//
// Active, Get and Chats return deep copies. Callers can hold on to a
// snapshot while the store keeps changing underneath.
//
// # Testing
//
// Ids and timestamps come from an IDGenerator and a Clock so tests can make
// them deterministic:
//
//	store := chat.NewStore(chat.WithIDGenerator(seq), chat.WithClock(fixed))
package chat
