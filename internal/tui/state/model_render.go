package state

import (
	"strings"

	"github.com/cristianoliveira/chat-sidebar/internal/errors"
	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/actions"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/navigation"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/render"
)

var paneTitles = map[navigation.Destination]string{
	navigation.Chats:         "Chats",
	navigation.Sessions:      "Sessions",
	navigation.Search:        "Search",
	navigation.ArchivedChats: "Archived Chats",
}

// View renders the TUI.
func (m *Model) View() string {
	width := m.width
	if width == 0 {
		width = defaultViewportWidth
	}
	nav := m.sidebar.Navigation()
	top := nav.Top()

	var s strings.Builder
	title := paneTitles[top]
	if m.session != nil && top == navigation.Chats {
		title = m.session.Name
	}
	s.WriteString(render.Header(title, nav.String(), width))
	s.WriteString("\n")

	var body []string
	switch top {
	case navigation.Search:
		s.WriteString(m.search.input.View())
		s.WriteString("\n")
		body = m.renderChats(m.searchMatches(), navigation.Search, width)
	case navigation.Sessions:
		body = m.renderSessions(width)
	case navigation.ArchivedChats:
		if m.session != nil {
			body = m.renderChats(m.session.ArchiveChatList().Chats(), navigation.ArchivedChats, width)
		}
	default:
		if m.folderBarVisible {
			s.WriteString(render.FolderBar(m.folderTabs(), width))
			s.WriteString("\n")
		}
		body = m.renderChatPane(width)
	}

	if len(body) == 0 {
		body = []string{render.Empty("Nothing here")}
	}
	m.viewport.SetContent(strings.Join(body, "\n"))
	m.ensureCursorVisible(m.cursors[top])
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	footer := render.FooterState{Hints: m.hints(top), Width: width}
	if m.hasStatus {
		footer.StatusText = m.status.Type.String() + ": " + m.status.Text
		footer.StatusIsError = m.status.Type == errors.MessageTypeError
	}
	s.WriteString(render.Footer(footer))
	return s.String()
}

func (m *Model) ensureCursorVisible(cursor int) {
	if cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(cursor)
	} else if cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursor - m.viewport.Height + 1)
	}
}

func (m *Model) folderTabs() []render.FolderTab {
	entries := m.bar.Entries()
	tabs := make([]render.FolderTab, len(entries))
	for i, e := range entries {
		tabs[i] = render.FolderTab{Title: e.Title, Selected: i == m.bar.Index()}
	}
	return tabs
}

func (m *Model) renderChatPane(width int) []string {
	rows := m.chatRows()
	cursor := m.cursors[navigation.Chats]
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		if r.archive {
			lines = append(lines, render.ArchiveRow(render.ArchiveRowState{
				Count:    m.session.ArchiveChatList().Len(),
				Selected: i == cursor,
				Width:    width,
			}))
			continue
		}
		lines = append(lines, m.chatLine(r.chat, i == cursor, width))
	}
	return lines
}

func (m *Model) renderChats(chats []*model.Chat, pane navigation.Destination, width int) []string {
	cursor := m.cursors[pane]
	lines := make([]string, 0, len(chats))
	for i, c := range chats {
		lines = append(lines, m.chatLine(c, i == cursor, width))
	}
	return lines
}

func (m *Model) chatLine(c *model.Chat, selected bool, width int) string {
	return render.ChatRow(render.ChatRowState{
		Title:    c.Title,
		Unread:   c.Unread,
		Selected: selected,
		Active:   c == m.sidebar.SelectedChat(),
		Compact:  m.sidebar.Compact(),
		Width:    width,
	})
}

func (m *Model) renderSessions(width int) []string {
	cursor := m.cursors[navigation.Sessions]
	lines := make([]string, 0, len(m.sessions))
	for i, rec := range m.sessions {
		lines = append(lines, render.ChatRow(render.ChatRowState{
			Title:    rec.Name,
			Selected: i == cursor,
			Active:   m.session != nil && rec.ID == m.session.ID,
			Width:    width,
		}))
	}
	return lines
}

func (m *Model) hints(top navigation.Destination) []string {
	switch top {
	case navigation.Search:
		return []string{"esc close", "enter open"}
	case navigation.Sessions:
		return []string{hint(m.keys.Open), hint(m.keys.Back)}
	case navigation.ArchivedChats:
		return []string{hint(m.keys.Unarchive), hint(m.keys.Back)}
	}

	reg := m.sidebar.Actions()
	hints := []string{hint(m.keys.Search), hint(m.keys.Sessions), hint(m.keys.Archive)}
	if m.folderBarVisible {
		hints = append(hints, hint(m.keys.NextFolder))
	}
	if reg.Enabled(actions.MenuShowArchivedChats) {
		hints = append(hints, hint(m.keys.MenuArchived))
	}
	if reg.Enabled(actions.MoveArchiveRowToChatList) {
		hints = append(hints, hint(m.keys.MoveRowToList))
	} else if m.archiveRowInList() {
		hints = append(hints, hint(m.keys.MoveRowToMenu))
	}
	return append(hints, hint(m.keys.Compact), "q quit")
}
