package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/cristianoliveira/chat-sidebar/internal/model"
)

// searchInput adapts a textinput to the sidebar search collaborator.
type searchInput struct {
	input textinput.Model
}

func newSearchInput() *searchInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search chats"
	ti.CharLimit = 128
	return &searchInput{input: ti}
}

func (s *searchInput) Reset() {
	s.input.Reset()
}

func (s *searchInput) Focus() {
	s.input.Focus()
}

func (s *searchInput) Blur() {
	s.input.Blur()
}

func (s *searchInput) Query() string {
	return strings.TrimSpace(s.input.Value())
}

// matchChats returns the chats whose title contains query, ignoring case.
func matchChats(chats []*model.Chat, query string) []*model.Chat {
	if query == "" {
		return chats
	}
	q := strings.ToLower(query)
	var out []*model.Chat
	for _, c := range chats {
		if strings.Contains(strings.ToLower(c.Title), q) {
			out = append(out, c)
		}
	}
	return out
}
