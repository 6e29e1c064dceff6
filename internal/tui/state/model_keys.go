package state

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/actions"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/navigation"
)

// handleKeyMsg routes keyboard input to the visible pane.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	switch m.sidebar.Navigation().Top() {
	case navigation.Search:
		return m.handleSearchKey(msg)
	case navigation.Sessions:
		return m.handleSessionsKey(msg)
	case navigation.ArchivedChats:
		return m.handleArchivedKey(msg)
	default:
		return m.handleChatsKey(msg)
	}
}

func (m *Model) handleChatsKey(msg tea.KeyMsg) tea.Cmd {
	rows := m.chatRows()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(navigation.Chats, -1, len(rows))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(navigation.Chats, 1, len(rows))
	case key.Matches(msg, m.keys.NextFolder):
		m.bar.Next()
		m.cursors[navigation.Chats] = 0
	case key.Matches(msg, m.keys.PrevFolder):
		m.bar.Prev()
		m.cursors[navigation.Chats] = 0
	case key.Matches(msg, m.keys.Open):
		if r, ok := m.rowAtCursor(rows); ok {
			if r.archive {
				m.activate(actions.ShowArchivedChats)
			} else {
				m.sidebar.SetSelectedChat(r.chat)
			}
		}
	case key.Matches(msg, m.keys.Sessions):
		if err := m.loadSessions(); err != nil {
			m.errorHandler.Error(err.Error())
		}
		m.activate(actions.ShowSessions)
	case key.Matches(msg, m.keys.Search):
		m.activate(actions.StartSearch)
	case key.Matches(msg, m.keys.MenuArchived):
		m.activate(actions.MenuShowArchivedChats)
	case key.Matches(msg, m.keys.MoveRowToList):
		m.activate(actions.MoveArchiveRowToChatList)
	case key.Matches(msg, m.keys.MoveRowToMenu):
		m.moveArchiveRowToMenu()
	case key.Matches(msg, m.keys.Archive):
		if r, ok := m.rowAtCursor(rows); ok && !r.archive {
			m.setArchived(r.chat, true)
		}
	case key.Matches(msg, m.keys.Compact):
		m.toggleCompact()
	case key.Matches(msg, m.keys.Back):
		if !m.sidebar.Navigation().Pop() {
			return tea.Quit
		}
	}
	return nil
}

func (m *Model) handleArchivedKey(msg tea.KeyMsg) tea.Cmd {
	if m.session == nil {
		m.sidebar.Navigation().Pop()
		return nil
	}
	chats := m.session.ArchiveChatList().Chats()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(navigation.ArchivedChats, -1, len(chats))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(navigation.ArchivedChats, 1, len(chats))
	case key.Matches(msg, m.keys.Open):
		if c := chatAt(chats, m.cursors[navigation.ArchivedChats]); c != nil {
			m.sidebar.SetSelectedChat(c)
		}
	case key.Matches(msg, m.keys.Unarchive):
		if c := chatAt(chats, m.cursors[navigation.ArchivedChats]); c != nil {
			m.setArchived(c, false)
			m.clampCursor(navigation.ArchivedChats, m.session.ArchiveChatList().Len())
		}
	case key.Matches(msg, m.keys.Back):
		m.sidebar.Navigation().Pop()
	}
	return nil
}

func (m *Model) handleSessionsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(navigation.Sessions, -1, len(m.sessions))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(navigation.Sessions, 1, len(m.sessions))
	case key.Matches(msg, m.keys.Open):
		i := m.cursors[navigation.Sessions]
		if i < 0 || i >= len(m.sessions) {
			return nil
		}
		if err := m.switchSession(m.sessions[i].ID); err != nil {
			m.errorHandler.Error(err.Error())
			return nil
		}
		if err := m.sidebar.Navigation().PopTo(navigation.Chats); err != nil {
			m.errorHandler.Error(err.Error())
		}
	case key.Matches(msg, m.keys.Back):
		m.sidebar.Navigation().Pop()
	}
	return nil
}

// handleSearchKey feeds the text input; only esc, enter and the arrow
// keys are interpreted.
func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	matches := m.searchMatches()
	switch msg.Type {
	case tea.KeyEsc:
		m.closeSearch()
		return nil
	case tea.KeyEnter:
		if c := chatAt(matches, m.cursors[navigation.Search]); c != nil {
			m.sidebar.SetSelectedChat(c)
		}
		m.closeSearch()
		return nil
	case tea.KeyUp:
		m.moveCursor(navigation.Search, -1, len(matches))
		return nil
	case tea.KeyDown:
		m.moveCursor(navigation.Search, 1, len(matches))
		return nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	m.cursors[navigation.Search] = 0
	return cmd
}

func (m *Model) moveCursor(d navigation.Destination, delta, n int) {
	m.cursors[d] += delta
	m.clampCursor(d, n)
}

func (m *Model) clampCursor(d navigation.Destination, n int) {
	c := m.cursors[d]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.cursors[d] = c
}
