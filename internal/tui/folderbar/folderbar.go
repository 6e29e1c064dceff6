// Package folderbar implements the chat folder selector shown above the
// chat list. Its first entry is the session's main chat list followed by
// one entry per folder.
package folderbar

import (
	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
)

// Entry is one selectable chat list.
type Entry struct {
	Title string
	List  *model.ChatList
}

// Bar tracks the selected chat list of the bound session.
type Bar struct {
	session    *model.Session
	entries    []Entry
	index      int
	folderSub  reactive.Subscription
	selChanged reactive.Signal[*model.ChatList]
}

// New creates a bar with no session and no selection.
func New() *Bar {
	return &Bar{index: -1}
}

// SetSession rebuilds the entries for session and selects its main list.
// A nil session clears the selection.
func (b *Bar) SetSession(session *model.Session) {
	if b.session == session {
		return
	}
	prev := b.SelectedChatList()
	b.folderSub.Disconnect()
	b.session = session
	b.entries = nil
	b.index = -1
	if session != nil {
		b.rebuild()
		b.folderSub = session.FolderList().Notify(b.onFoldersChanged)
		b.index = 0
	}
	// Compare against the old session's selection; entries were replaced.
	if next := b.SelectedChatList(); next != prev {
		b.selChanged.Emit(next)
	}
}

func (b *Bar) rebuild() {
	entries := []Entry{{Title: "All Chats", List: b.session.MainChatList()}}
	for _, f := range b.session.FolderList().Folders() {
		entries = append(entries, Entry{Title: f.Title, List: f.ChatList()})
	}
	b.entries = entries
}

// onFoldersChanged keeps the selected list if it still exists and falls
// back to the main list otherwise.
func (b *Bar) onFoldersChanged() {
	selected := b.SelectedChatList()
	b.rebuild()
	for i, e := range b.entries {
		if e.List == selected {
			b.index = i
			return
		}
	}
	b.index = 0
	b.selChanged.Emit(b.SelectedChatList())
}

// Entries returns the selectable lists in display order.
func (b *Bar) Entries() []Entry {
	dup := make([]Entry, len(b.entries))
	copy(dup, b.entries)
	return dup
}

// Index returns the selected position, or -1 without a selection.
func (b *Bar) Index() int {
	return b.index
}

// Select selects the entry at i. Out of range positions are ignored.
func (b *Bar) Select(i int) {
	if i < 0 || i >= len(b.entries) {
		return
	}
	b.selectIndex(i)
}

// Next selects the following entry, wrapping around.
func (b *Bar) Next() {
	if len(b.entries) == 0 {
		return
	}
	b.selectIndex((b.index + 1) % len(b.entries))
}

// Prev selects the preceding entry, wrapping around.
func (b *Bar) Prev() {
	if len(b.entries) == 0 {
		return
	}
	b.selectIndex((b.index - 1 + len(b.entries)) % len(b.entries))
}

// ClearSelection leaves the bar without a selected list.
func (b *Bar) ClearSelection() {
	b.selectIndex(-1)
}

func (b *Bar) selectIndex(i int) {
	prev := b.SelectedChatList()
	b.index = i
	if next := b.SelectedChatList(); next != prev {
		b.selChanged.Emit(next)
	}
}

// SelectedChatList returns the selected list, or nil.
func (b *Bar) SelectedChatList() *model.ChatList {
	if b.index < 0 || b.index >= len(b.entries) {
		return nil
	}
	return b.entries[b.index].List
}

// OnSelectionChanged connects fn to selection changes.
func (b *Bar) OnSelectionChanged(fn func(*model.ChatList)) reactive.Subscription {
	return b.selChanged.Connect(fn)
}

// Notify implements reactive.Notifier over selection changes.
func (b *Bar) Notify(fn func()) reactive.Subscription {
	return b.selChanged.Notify(fn)
}
