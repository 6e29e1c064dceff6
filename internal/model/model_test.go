package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatListAppendAndRemove(t *testing.T) {
	list := NewChatList("Chats")
	var events []ItemsChanged
	sub := list.OnItemsChanged(func(l *ChatList, ev ItemsChanged) {
		assert.Same(t, list, l)
		events = append(events, ev)
	})
	defer sub.Disconnect()

	list.Append(&Chat{ID: 1}, &Chat{ID: 2})
	require.Equal(t, 2, list.Len())
	assert.True(t, list.HasItems())

	removed, ok := list.Remove(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), removed.ID)

	_, ok = list.Remove(42)
	assert.False(t, ok)

	assert.Equal(t, []ItemsChanged{
		{Position: 0, Added: 2},
		{Position: 0, Removed: 1},
	}, events)
	assert.Equal(t, int64(2), list.At(0).ID)
	assert.Nil(t, list.At(5))
}

func TestChatListClearEmitsOnlyWhenNonEmpty(t *testing.T) {
	list := NewChatList("x")
	calls := 0
	list.Notify(func() { calls++ })

	list.Clear()
	assert.Equal(t, 0, calls)

	list.Append(&Chat{ID: 1})
	list.Clear()
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, list.Len())
}

func TestNilChatListLen(t *testing.T) {
	var list *ChatList
	assert.Equal(t, 0, list.Len())
	assert.False(t, list.HasItems())
}

func TestSessionArchiveRoundTrip(t *testing.T) {
	s := NewSession("s1", "Work")
	s.AddChat(&Chat{ID: 1, Title: "alice"})
	s.AddChat(&Chat{ID: 2, Title: "bob", Archived: true})

	require.Equal(t, 1, s.MainChatList().Len())
	require.Equal(t, 1, s.ArchiveChatList().Len())

	require.NoError(t, s.Archive(1))
	assert.Equal(t, 0, s.MainChatList().Len())
	assert.Equal(t, 2, s.ArchiveChatList().Len())
	assert.True(t, s.ArchiveChatList().At(1).Archived)

	require.NoError(t, s.Unarchive(2))
	assert.False(t, s.MainChatList().At(0).Archived)

	assert.Error(t, s.Archive(99))
	assert.Error(t, s.Unarchive(99))
}

func TestFolderListHasFolders(t *testing.T) {
	folders := NewChatFolderList()
	assert.False(t, folders.HasFolders())

	folders.Append(NewChatFolder(7, "Friends"))
	assert.True(t, folders.HasFolders())

	f, ok := folders.Find(7)
	require.True(t, ok)
	assert.Equal(t, "Friends", f.ChatList().Name())

	assert.True(t, folders.Remove(7))
	assert.False(t, folders.Remove(7))
	assert.False(t, folders.HasFolders())
}

func TestSessionString(t *testing.T) {
	var s *Session
	assert.Equal(t, "<none>", s.String())
	assert.Equal(t, "Home (abc)", NewSession("abc", "Home").String())
}

func TestArchiveParksFolderMembership(t *testing.T) {
	s := NewSession("s1", "Work")
	family := NewChatFolder(1, "Family")
	s.FolderList().Append(family)
	alice := &Chat{ID: 1, Title: "Alice"}
	s.AddChat(alice)
	s.AddToFolder(family, alice)

	require.NoError(t, s.Archive(1))
	assert.Equal(t, 0, family.ChatList().Len())

	require.NoError(t, s.Unarchive(1))
	assert.Equal(t, 1, family.ChatList().Len())

	old := &Chat{ID: 2, Title: "Old", Archived: true}
	s.AddChat(old)
	s.AddToFolder(family, old)
	assert.Equal(t, 1, family.ChatList().Len(), "archived chats wait outside the folder")

	s.FolderList().Remove(1)
	require.NoError(t, s.Unarchive(2))
	assert.Equal(t, 1, family.ChatList().Len(), "removed folders are not refilled")
}
