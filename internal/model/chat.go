// Package model holds the session-side collections observed by the sidebar:
// chats, chat lists and chat folders.
package model

import (
	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
	"github.com/google/uuid"
)

// Chat is a single conversation.
type Chat struct {
	ID       int64
	Title    string
	Unread   int
	Archived bool
}

// ItemsChanged describes a splice on a list: at Position, Removed items were
// replaced by Added items.
type ItemsChanged struct {
	Position int
	Removed  int
	Added    int
}

// ChatList is an ordered, observable collection of chats.
type ChatList struct {
	id           uuid.UUID
	name         string
	chats        []*Chat
	itemsChanged reactive.Signal[ItemsChanged]
}

// NewChatList creates an empty list.
func NewChatList(name string) *ChatList {
	return &ChatList{id: uuid.New(), name: name}
}

// ID returns the list identifier.
func (l *ChatList) ID() uuid.UUID { return l.id }

// Name returns the list display name.
func (l *ChatList) Name() string { return l.name }

// Len returns the number of chats in the list.
func (l *ChatList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.chats)
}

// HasItems reports whether the list is non-empty.
func (l *ChatList) HasItems() bool {
	return l.Len() > 0
}

// At returns the chat at index i, or nil when out of range.
func (l *ChatList) At(i int) *Chat {
	if i < 0 || i >= len(l.chats) {
		return nil
	}
	return l.chats[i]
}

// Chats returns a copy of the chats in order.
func (l *ChatList) Chats() []*Chat {
	dup := make([]*Chat, len(l.chats))
	copy(dup, l.chats)
	return dup
}

// IndexOf returns the position of the chat with the given ID, or -1.
func (l *ChatList) IndexOf(id int64) int {
	for i, c := range l.chats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Append adds chats at the end of the list and emits one items-changed event.
func (l *ChatList) Append(chats ...*Chat) {
	if len(chats) == 0 {
		return
	}
	pos := len(l.chats)
	l.chats = append(l.chats, chats...)
	l.itemsChanged.Emit(ItemsChanged{Position: pos, Added: len(chats)})
}

// Remove drops the chat with the given ID and returns it.
func (l *ChatList) Remove(id int64) (*Chat, bool) {
	idx := l.IndexOf(id)
	if idx < 0 {
		return nil, false
	}
	chat := l.chats[idx]
	l.chats = append(l.chats[:idx], l.chats[idx+1:]...)
	l.itemsChanged.Emit(ItemsChanged{Position: idx, Removed: 1})
	return chat, true
}

// Clear removes every chat.
func (l *ChatList) Clear() {
	n := len(l.chats)
	if n == 0 {
		return
	}
	l.chats = nil
	l.itemsChanged.Emit(ItemsChanged{Position: 0, Removed: n})
}

// OnItemsChanged connects fn to the items-changed signal.
func (l *ChatList) OnItemsChanged(fn func(*ChatList, ItemsChanged)) reactive.Subscription {
	return l.itemsChanged.Connect(func(ev ItemsChanged) { fn(l, ev) })
}

// Notify implements reactive.Notifier over the items-changed signal.
func (l *ChatList) Notify(fn func()) reactive.Subscription {
	return l.itemsChanged.Notify(fn)
}

// Observers returns the number of connected items-changed handlers.
func (l *ChatList) Observers() int {
	return l.itemsChanged.Len()
}
