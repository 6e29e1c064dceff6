package model

import "github.com/cristianoliveira/chat-sidebar/internal/reactive"

// ChatFolder is a user-defined folder with its own filtered chat list.
type ChatFolder struct {
	ID    int64
	Title string
	list  *ChatList
}

// NewChatFolder creates a folder with an empty chat list.
func NewChatFolder(id int64, title string) *ChatFolder {
	return &ChatFolder{ID: id, Title: title, list: NewChatList(title)}
}

// ChatList returns the folder's chats.
func (f *ChatFolder) ChatList() *ChatList { return f.list }

// ChatFolderList is the ordered, observable set of a session's folders.
type ChatFolderList struct {
	folders      []*ChatFolder
	itemsChanged reactive.Signal[ItemsChanged]
}

// NewChatFolderList creates an empty folder list.
func NewChatFolderList() *ChatFolderList {
	return &ChatFolderList{}
}

// Len returns the number of folders.
func (l *ChatFolderList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.folders)
}

// HasFolders reports whether at least one folder exists.
func (l *ChatFolderList) HasFolders() bool {
	return l.Len() > 0
}

// Folders returns a copy of the folders in order.
func (l *ChatFolderList) Folders() []*ChatFolder {
	dup := make([]*ChatFolder, len(l.folders))
	copy(dup, l.folders)
	return dup
}

// Find returns the folder with the given ID.
func (l *ChatFolderList) Find(id int64) (*ChatFolder, bool) {
	for _, f := range l.folders {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Append adds folders at the end.
func (l *ChatFolderList) Append(folders ...*ChatFolder) {
	if len(folders) == 0 {
		return
	}
	pos := len(l.folders)
	l.folders = append(l.folders, folders...)
	l.itemsChanged.Emit(ItemsChanged{Position: pos, Added: len(folders)})
}

// Remove drops the folder with the given ID.
func (l *ChatFolderList) Remove(id int64) bool {
	for i, f := range l.folders {
		if f.ID == id {
			l.folders = append(l.folders[:i], l.folders[i+1:]...)
			l.itemsChanged.Emit(ItemsChanged{Position: i, Removed: 1})
			return true
		}
	}
	return false
}

// Notify implements reactive.Notifier over the items-changed signal.
func (l *ChatFolderList) Notify(fn func()) reactive.Subscription {
	return l.itemsChanged.Notify(fn)
}

// Observers returns the number of connected handlers.
func (l *ChatFolderList) Observers() int {
	return l.itemsChanged.Len()
}
