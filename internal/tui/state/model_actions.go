package state

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/navigation"
)

type chatRow struct {
	archive bool
	chat    *model.Chat
}

// chatRows lists the rows of the chat pane: the archive row when it is
// shown in the list, then the chats of the selected folder.
func (m *Model) chatRows() []chatRow {
	var rows []chatRow
	if m.archiveRowInList() {
		rows = append(rows, chatRow{archive: true})
	}
	if list := m.bar.SelectedChatList(); list != nil {
		for _, c := range list.Chats() {
			rows = append(rows, chatRow{chat: c})
		}
	}
	return rows
}

func (m *Model) archiveRowInList() bool {
	inMenu, err := m.settings.Bool(settings.KeyArchiveRowInMainMenu)
	if err != nil {
		return m.archiveRowVisible
	}
	return m.archiveRowVisible && !inMenu
}

func (m *Model) rowAtCursor(rows []chatRow) (chatRow, bool) {
	i := m.cursors[navigation.Chats]
	if i < 0 || i >= len(rows) {
		return chatRow{}, false
	}
	return rows[i], true
}

func chatAt(chats []*model.Chat, i int) *model.Chat {
	if i < 0 || i >= len(chats) {
		return nil
	}
	return chats[i]
}

// searchMatches returns chats of the session matching the query, main list
// first.
func (m *Model) searchMatches() []*model.Chat {
	if m.session == nil {
		return nil
	}
	all := append(m.session.MainChatList().Chats(), m.session.ArchiveChatList().Chats()...)
	return matchChats(all, m.search.Query())
}

func (m *Model) activate(name string) {
	if err := m.sidebar.Actions().Activate(name); err != nil {
		m.logger.Debug("action failed", "action", name, "error", err)
		m.errorHandler.Error(err.Error())
	}
}

func (m *Model) closeSearch() {
	if err := m.sidebar.CloseSearch(); err != nil {
		m.errorHandler.Error(err.Error())
	}
}

func (m *Model) moveArchiveRowToMenu() {
	if err := m.settings.SetBool(settings.KeyArchiveRowInMainMenu, true); err != nil {
		m.errorHandler.Error(err.Error())
		return
	}
	m.clampCursor(navigation.Chats, len(m.chatRows()))
	m.errorHandler.Info("Archived chats moved to the main menu")
}

func (m *Model) toggleCompact() {
	if err := m.settings.SetBool(settings.KeyCompact, !m.sidebar.Compact()); err != nil {
		m.errorHandler.Error(err.Error())
	}
}

// setArchived persists the archive flag first and only then moves the chat
// between the session lists.
func (m *Model) setArchived(chat *model.Chat, archived bool) {
	if m.session == nil || chat == nil {
		return
	}
	if err := m.store.SetArchived(context.Background(), chat.ID, archived); err != nil {
		m.errorHandler.Error(err.Error())
		return
	}

	var err error
	if archived {
		err = m.session.Archive(chat.ID)
	} else {
		err = m.session.Unarchive(chat.ID)
	}
	if err != nil {
		m.errorHandler.Error(err.Error())
		return
	}

	m.clampCursor(navigation.Chats, len(m.chatRows()))
	verb := "Unarchived"
	if archived {
		verb = "Archived"
	}
	m.errorHandler.Success(fmt.Sprintf("%s %s", verb, chat.Title))
}
