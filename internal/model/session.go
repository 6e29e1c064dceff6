package model

import "fmt"

// Session is one logged-in account with its chat collections.
// The sidebar observes a session but never owns it.
type Session struct {
	ID      string
	Name    string
	main    *ChatList
	archive *ChatList
	folders *ChatFolderList
	// folders an archived chat was removed from, restored on unarchive
	parked map[int64][]*ChatFolder
}

// NewSession creates a session with empty collections.
func NewSession(id, name string) *Session {
	return &Session{
		ID:      id,
		Name:    name,
		main:    NewChatList("Chats"),
		archive: NewChatList("Archived Chats"),
		folders: NewChatFolderList(),
		parked:  make(map[int64][]*ChatFolder),
	}
}

// MainChatList returns the list of non-archived chats.
func (s *Session) MainChatList() *ChatList { return s.main }

// ArchiveChatList returns the list of archived chats.
func (s *Session) ArchiveChatList() *ChatList { return s.archive }

// FolderList returns the session's chat folders.
func (s *Session) FolderList() *ChatFolderList { return s.folders }

// AddChat places a chat in the main or archive list according to its flag.
func (s *Session) AddChat(chat *Chat) {
	if chat.Archived {
		s.archive.Append(chat)
		return
	}
	s.main.Append(chat)
}

// AddToFolder files chat under folder. Archived chats are kept out of
// folder lists until they are unarchived.
func (s *Session) AddToFolder(folder *ChatFolder, chat *Chat) {
	if chat.Archived {
		s.parked[chat.ID] = append(s.parked[chat.ID], folder)
		return
	}
	folder.ChatList().Append(chat)
}

// Archive moves a chat from the main list into the archive list and takes
// it out of its folders.
func (s *Session) Archive(chatID int64) error {
	chat, ok := s.main.Remove(chatID)
	if !ok {
		return fmt.Errorf("archive chat %d: not in main list", chatID)
	}
	for _, f := range s.folders.Folders() {
		if _, removed := f.ChatList().Remove(chatID); removed {
			s.parked[chatID] = append(s.parked[chatID], f)
		}
	}
	chat.Archived = true
	s.archive.Append(chat)
	return nil
}

// Unarchive moves a chat from the archive list back into the main list
// and into the folders it was filed under.
func (s *Session) Unarchive(chatID int64) error {
	chat, ok := s.archive.Remove(chatID)
	if !ok {
		return fmt.Errorf("unarchive chat %d: not in archive list", chatID)
	}
	chat.Archived = false
	s.main.Append(chat)
	for _, f := range s.parked[chatID] {
		if _, still := s.folders.Find(f.ID); still {
			f.ChatList().Append(chat)
		}
	}
	delete(s.parked, chatID)
	return nil
}

// String implements fmt.Stringer for logging.
func (s *Session) String() string {
	if s == nil {
		return "<none>"
	}
	return s.Name + " (" + s.ID + ")"
}
