package sidebar

import (
	"weak"

	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/navigation"
)

// Session returns the bound session, or nil when none is bound or the
// owner already dropped it.
func (s *Sidebar) Session() *model.Session {
	return s.session.Value()
}

// SetSession binds session. Binding the current session again does
// nothing. The previous session's archive listener is disconnected before
// the new one is attached.
func (s *Sidebar) SetSession(session *model.Session) {
	if s.Session() == session {
		return
	}

	s.archiveSub.Disconnect()

	if session != nil {
		s.updateArchivedChatsActions(session)

		ref := weak.Make(session)
		s.archiveSub = session.ArchiveChatList().OnItemsChanged(func(list *model.ChatList, _ model.ItemsChanged) {
			s.onArchiveChanged(ref, list)
		})
	}

	s.session = weak.Make(session)
	s.logger.Debug("session bound", "session", session.String())

	s.bindVisibility(session)
	s.sessionChanged.Emit(session)
}

// onArchiveChanged leaves the archived chats pane once it has nothing to
// show, then refreshes the archive actions of the session the listener was
// attached to.
func (s *Sidebar) onArchiveChanged(ref weak.Pointer[model.Session], list *model.ChatList) {
	if list.Len() == 0 {
		if err := s.nav.PopTo(navigation.Chats); err != nil {
			s.logger.Error("pop to chats failed", "error", err)
		}
	}
	session := ref.Value()
	if session == nil {
		return
	}
	s.updateArchivedChatsActions(session)
}

// OnSessionChanged connects fn to session changes.
func (s *Sidebar) OnSessionChanged(fn func(*model.Session)) reactive.Subscription {
	return s.sessionChanged.Connect(fn)
}
