package sidebar

import (
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/actions"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/navigation"
)

func (s *Sidebar) installActions() error {
	handlers := []struct {
		name string
		run  actions.Handler
	}{
		{actions.ShowSessions, s.ShowSessions},
		{actions.StartSearch, s.BeginChatsSearch},
		{actions.ShowArchivedChats, s.ShowArchivedChats},
		{actions.MenuShowArchivedChats, s.ShowArchivedChats},
		{actions.MoveArchiveRowToChatList, s.MoveArchiveRow},
	}
	for _, h := range handlers {
		if err := s.actions.Install(h.name, h.run); err != nil {
			return err
		}
	}
	return nil
}

// ShowSessions opens the session switcher.
func (s *Sidebar) ShowSessions() error {
	return s.nav.Push(navigation.Sessions)
}

// BeginChatsSearch clears and focuses the search pane, then opens it.
func (s *Sidebar) BeginChatsSearch() error {
	if s.search != nil {
		s.search.Reset()
		s.search.Focus()
	}
	return s.nav.Push(navigation.Search)
}

// ShowArchivedChats opens the archived chats pane.
func (s *Sidebar) ShowArchivedChats() error {
	return s.nav.Push(navigation.ArchivedChats)
}

// CloseSearch returns to the chat list when the search pane is done.
func (s *Sidebar) CloseSearch() error {
	return s.nav.PopTo(navigation.Chats)
}

// MoveArchiveRow puts the archive row back into the chat list. Enablement
// follows from the settings change notification.
func (s *Sidebar) MoveArchiveRow() error {
	return s.settings.SetBool(settings.KeyArchiveRowInMainMenu, false)
}
