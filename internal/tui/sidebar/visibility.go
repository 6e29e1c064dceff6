package sidebar

import (
	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
)

func (s *Sidebar) setupVisibility() {
	s.folderBarVisible = reactive.NewComputed("folder-bar-visible", s.evalFolderBarVisible, s.view.SetFolderBarVisible)
	s.archiveRowVisible = reactive.NewComputed("archive-row-visible", s.evalArchiveRowVisible, s.view.SetArchiveRowVisible)
	s.bindVisibility(nil)
}

// bindVisibility points both expressions at session's collections and
// evaluates them once.
func (s *Sidebar) bindVisibility(session *model.Session) {
	var folders, archive reactive.Notifier
	if session != nil {
		folders = session.FolderList()
		archive = session.ArchiveChatList()
	}

	s.folderBarVisible.Retrack(folders)
	s.archiveRowVisible.Retrack(archive, s.folderSelection())

	s.folderBarVisible.Recompute()
	s.archiveRowVisible.Recompute()
}

func (s *Sidebar) folderSelection() reactive.Notifier {
	if s.folderBar == nil {
		return nil
	}
	return s.folderBar
}

func (s *Sidebar) evalFolderBarVisible() bool {
	session := s.Session()
	if session == nil {
		return false
	}
	return session.FolderList().HasFolders()
}

func (s *Sidebar) evalArchiveRowVisible() bool {
	session := s.Session()
	if session == nil {
		return false
	}
	var selected *model.ChatList
	if s.folderBar != nil {
		selected = s.folderBar.SelectedChatList()
	}
	return ArchiveRowVisible(session.ArchiveChatList().Len(), session.MainChatList(), selected)
}

// ArchiveRowVisible reports whether the archive row belongs in the chat
// list: there is something archived and the main list is the one shown.
// A nil selection hides the row.
func ArchiveRowVisible(archived int, main, selected *model.ChatList) bool {
	return archived > 0 && selected != nil && main == selected
}

// FolderBarVisible returns the last computed folder bar visibility.
func (s *Sidebar) FolderBarVisible() bool {
	return s.folderBarVisible.Value()
}

// ArchiveRowShown returns the last computed archive row visibility.
func (s *Sidebar) ArchiveRowShown() bool {
	return s.archiveRowVisible.Value()
}
