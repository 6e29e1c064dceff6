package sidebar

import (
	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/actions"
)

// Enablement is the enabled state of the archive related actions.
type Enablement struct {
	ShowArchivedFromMenu bool
	MoveArchiveRow       bool
}

// ArchivedChatsEnablement derives the archive action state from the
// archive-row-in-main-menu flag and the bound session. Without a session
// both actions are disabled.
func ArchivedChatsEnablement(archiveRowInMainMenu bool, session *model.Session) Enablement {
	if session == nil {
		return Enablement{}
	}
	return Enablement{
		ShowArchivedFromMenu: archiveRowInMainMenu && session.ArchiveChatList().Len() > 0,
		MoveArchiveRow:       archiveRowInMainMenu,
	}
}

func (s *Sidebar) updateArchivedChatsActions(session *model.Session) {
	flag, err := s.settings.Bool(settings.KeyArchiveRowInMainMenu)
	if err != nil {
		s.logger.Error("read setting failed", "key", settings.KeyArchiveRowInMainMenu, "error", err)
		flag = false
	}

	e := ArchivedChatsEnablement(flag, session)
	s.setEnabled(actions.MenuShowArchivedChats, e.ShowArchivedFromMenu)
	s.setEnabled(actions.MoveArchiveRowToChatList, e.MoveArchiveRow)
	s.logger.Debug("archive actions updated",
		"show_archived_from_menu", e.ShowArchivedFromMenu,
		"move_archive_row", e.MoveArchiveRow)
}

func (s *Sidebar) setEnabled(name string, enabled bool) {
	if err := s.actions.SetEnabled(name, enabled); err != nil {
		s.logger.Error("set action enabled failed", "action", name, "error", err)
	}
}
