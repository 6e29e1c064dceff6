package sidebar

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cristianoliveira/chat-sidebar/internal/model"
	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
	"github.com/cristianoliveira/chat-sidebar/internal/settings"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/actions"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/folderbar"
	"github.com/cristianoliveira/chat-sidebar/internal/tui/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type memSettings struct {
	values  map[string]bool
	signals map[string]*reactive.Signal[bool]
	setErr  error
}

func newMemSettings() *memSettings {
	return &memSettings{
		values:  map[string]bool{},
		signals: map[string]*reactive.Signal[bool]{},
	}
}

func (m *memSettings) Bool(key string) (bool, error) {
	if key != settings.KeyArchiveRowInMainMenu {
		return false, settings.ErrUnknownKey
	}
	return m.values[key], nil
}

func (m *memSettings) SetBool(key string, v bool) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.values[key] == v {
		return nil
	}
	m.values[key] = v
	if sig, ok := m.signals[key]; ok {
		sig.Emit(v)
	}
	return nil
}

func (m *memSettings) Subscribe(key string, fn func(bool)) (reactive.Subscription, error) {
	sig, ok := m.signals[key]
	if !ok {
		sig = &reactive.Signal[bool]{}
		m.signals[key] = sig
	}
	return sig.Connect(fn), nil
}

type recordingView struct {
	folderBar  []bool
	archiveRow []bool
	onArchive  func(bool)
}

func (v *recordingView) SetFolderBarVisible(visible bool) {
	v.folderBar = append(v.folderBar, visible)
}

func (v *recordingView) SetArchiveRowVisible(visible bool) {
	v.archiveRow = append(v.archiveRow, visible)
	if v.onArchive != nil {
		v.onArchive(visible)
	}
}

type recordingSearch struct {
	calls []string
}

func (s *recordingSearch) Reset() { s.calls = append(s.calls, "reset") }
func (s *recordingSearch) Focus() { s.calls = append(s.calls, "focus") }

type fixture struct {
	sidebar  *Sidebar
	settings *memSettings
	view     *recordingView
	search   *recordingSearch
	bar      *folderbar.Bar
	nav      *navigation.Stack
	actions  *actions.Registry
}

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

func newFixture(t tb) *fixture {
	t.Helper()
	f := &fixture{
		settings: newMemSettings(),
		view:     &recordingView{},
		search:   &recordingSearch{},
		bar:      folderbar.New(),
		nav:      navigation.NewSidebarStack(),
		actions:  actions.NewRegistry(),
	}
	sb, err := New(Options{
		Settings:   f.settings,
		Navigation: f.nav,
		Actions:    f.actions,
		FolderBar:  f.bar,
		Search:     f.search,
		View:       f.view,
	})
	require.NoError(t, err)
	sb.OnSessionChanged(f.bar.SetSession)
	f.sidebar = sb
	return f
}

func newSession(archived int) *model.Session {
	s := model.NewSession("s1", "Personal")
	s.AddChat(&model.Chat{ID: 1, Title: "Alice"})
	for i := 0; i < archived; i++ {
		s.AddChat(&model.Chat{ID: int64(100 + i), Title: fmt.Sprintf("old %d", i), Archived: true})
	}
	return s
}

func emptyArchive(t tb, s *model.Session) {
	t.Helper()
	for _, c := range s.ArchiveChatList().Chats() {
		require.NoError(t, s.Unarchive(c.ID))
	}
}

func TestNewRequiresSettings(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, ErrNoSettings)
}

func TestNewInstallsActions(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{
		actions.MenuShowArchivedChats,
		actions.MoveArchiveRowToChatList,
		actions.ShowArchivedChats,
		actions.ShowSessions,
		actions.StartSearch,
	}, f.actions.Names())
	assert.True(t, f.actions.Enabled(actions.ShowSessions))
	assert.False(t, f.actions.Enabled(actions.MenuShowArchivedChats))
	assert.False(t, f.actions.Enabled(actions.MoveArchiveRowToChatList))
}

func TestNewWithDefaults(t *testing.T) {
	sb, err := New(Options{Settings: newMemSettings()})
	require.NoError(t, err)

	require.NoError(t, sb.ShowSessions())
	assert.Equal(t, navigation.Sessions, sb.Navigation().Top())
	require.NoError(t, sb.BeginChatsSearch(), "search collaborator is optional")
	assert.False(t, sb.FolderBarVisible())
}

func TestSetSessionTwiceIsIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(rt)
		s := newSession(rapid.IntRange(0, 4).Draw(rt, "archived"))
		notified := 0
		f.sidebar.OnSessionChanged(func(*model.Session) { notified++ })
		enabledEvents := 0
		f.actions.OnEnabledChanged(func(actions.EnabledChanged) { enabledEvents++ })

		f.sidebar.SetSession(s)
		runs := f.sidebar.archiveRowVisible.Runs()
		viewCalls := len(f.view.archiveRow)
		events := enabledEvents
		observers := s.ArchiveChatList().Observers()

		f.sidebar.SetSession(s)

		assert.Equal(rt, 1, notified)
		assert.Equal(rt, runs, f.sidebar.archiveRowVisible.Runs())
		assert.Len(rt, f.view.archiveRow, viewCalls)
		assert.Equal(rt, events, enabledEvents)
		assert.Equal(rt, observers, s.ArchiveChatList().Observers())
		assert.Same(rt, s, f.sidebar.Session())
	})
}

func TestArchiveEmptiedPopsToChats(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(rt)
		s := newSession(rapid.IntRange(1, 5).Draw(rt, "archived"))
		f.sidebar.SetSession(s)
		if rapid.Bool().Draw(rt, "via-sessions") {
			require.NoError(rt, f.sidebar.ShowSessions())
		}
		require.NoError(rt, f.sidebar.ShowArchivedChats())

		chats := s.ArchiveChatList().Chats()
		for i, c := range chats {
			require.NoError(rt, s.Unarchive(c.ID))
			if i < len(chats)-1 {
				assert.Equal(rt, navigation.ArchivedChats, f.nav.Top())
			}
		}

		assert.Equal(rt, navigation.Chats, f.nav.Top())
		assert.Equal(rt, 1, f.nav.Depth())
	})
}

func TestArchiveEmptiedPopsBeforeVisibilityRecompute(t *testing.T) {
	f := newFixture(t)
	s := newSession(1)
	f.sidebar.SetSession(s)
	require.NoError(t, f.sidebar.ShowArchivedChats())

	var topAtRecompute []navigation.Destination
	f.view.onArchive = func(bool) { topAtRecompute = append(topAtRecompute, f.nav.Top()) }

	emptyArchive(t, s)

	assert.Equal(t, []navigation.Destination{navigation.Chats}, topAtRecompute)
}

func TestArchiveRowVisibility(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(rt)
		archived := rapid.IntRange(0, 3).Draw(rt, "archived")
		s := newSession(archived)
		s.FolderList().Append(model.NewChatFolder(1, "Work"))
		f.sidebar.SetSession(s)

		selection := rapid.SampledFrom([]string{"main", "folder", "none"}).Draw(rt, "selection")
		switch selection {
		case "folder":
			f.bar.Next()
		case "none":
			f.bar.ClearSelection()
		}

		want := archived > 0 && selection == "main"
		assert.Equal(rt, want, f.sidebar.ArchiveRowShown())
		require.NotEmpty(rt, f.view.archiveRow)
		assert.Equal(rt, want, f.view.archiveRow[len(f.view.archiveRow)-1])
	})
}

func TestArchiveRowVisibleFunction(t *testing.T) {
	main := model.NewChatList("main")
	other := model.NewChatList("other")

	assert.True(t, ArchiveRowVisible(2, main, main))
	assert.False(t, ArchiveRowVisible(0, main, main))
	assert.False(t, ArchiveRowVisible(2, main, other))
	assert.False(t, ArchiveRowVisible(2, main, nil))
	assert.False(t, ArchiveRowVisible(2, nil, nil))
}

func TestArchiveRowFollowsArchiveSize(t *testing.T) {
	f := newFixture(t)
	s := newSession(0)
	f.sidebar.SetSession(s)
	assert.False(t, f.sidebar.ArchiveRowShown())

	require.NoError(t, s.Archive(1))
	assert.True(t, f.sidebar.ArchiveRowShown())

	require.NoError(t, s.Unarchive(1))
	assert.False(t, f.sidebar.ArchiveRowShown())
}

func TestEnablementProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		flag := rapid.Bool().Draw(rt, "flag")
		archived := rapid.IntRange(0, 4).Draw(rt, "archived")
		f := newFixture(rt)
		f.settings.values[settings.KeyArchiveRowInMainMenu] = flag
		f.sidebar.SetSession(newSession(archived))

		assert.Equal(rt, flag, f.actions.Enabled(actions.MoveArchiveRowToChatList))
		assert.Equal(rt, flag && archived > 0, f.actions.Enabled(actions.MenuShowArchivedChats))

		e := ArchivedChatsEnablement(flag, f.sidebar.Session())
		assert.Equal(rt, Enablement{ShowArchivedFromMenu: flag && archived > 0, MoveArchiveRow: flag}, e)
	})
}

func TestEnablementWithoutSession(t *testing.T) {
	assert.Equal(t, Enablement{}, ArchivedChatsEnablement(true, nil))

	f := newFixture(t)
	require.NoError(t, f.settings.SetBool(settings.KeyArchiveRowInMainMenu, true))

	assert.False(t, f.actions.Enabled(actions.MoveArchiveRowToChatList))
	assert.False(t, f.actions.Enabled(actions.MenuShowArchivedChats))
}

func TestEnablementScenario(t *testing.T) {
	f := newFixture(t)
	f.settings.values[settings.KeyArchiveRowInMainMenu] = true
	s := newSession(3)
	f.sidebar.SetSession(s)

	assert.True(t, f.actions.Enabled(actions.MenuShowArchivedChats))
	assert.True(t, f.actions.Enabled(actions.MoveArchiveRowToChatList))

	emptyArchive(t, s)

	assert.False(t, f.actions.Enabled(actions.MenuShowArchivedChats))
	assert.True(t, f.actions.Enabled(actions.MoveArchiveRowToChatList))
}

func TestSettingsChangeUpdatesEnablement(t *testing.T) {
	f := newFixture(t)
	f.sidebar.SetSession(newSession(2))
	assert.False(t, f.actions.Enabled(actions.MenuShowArchivedChats))

	require.NoError(t, f.settings.SetBool(settings.KeyArchiveRowInMainMenu, true))
	assert.True(t, f.actions.Enabled(actions.MenuShowArchivedChats))
	assert.NoError(t, f.actions.Activate(actions.MenuShowArchivedChats))
	assert.Equal(t, navigation.ArchivedChats, f.nav.Top())

	require.NoError(t, f.actions.Activate(actions.MoveArchiveRowToChatList))
	assert.False(t, f.settings.values[settings.KeyArchiveRowInMainMenu])
	assert.False(t, f.actions.Enabled(actions.MoveArchiveRowToChatList))
	assert.ErrorIs(t, f.actions.Activate(actions.MoveArchiveRowToChatList), actions.ErrActionDisabled)
}

func TestMoveArchiveRowPropagatesWriteError(t *testing.T) {
	f := newFixture(t)
	f.settings.values[settings.KeyArchiveRowInMainMenu] = true
	f.sidebar.SetSession(newSession(1))
	boom := errors.New("read-only file system")
	f.settings.setErr = boom

	assert.ErrorIs(t, f.sidebar.MoveArchiveRow(), boom)
	assert.True(t, f.actions.Enabled(actions.MoveArchiveRowToChatList))
	assert.Equal(t, navigation.Chats, f.nav.Top(), "moving the row never navigates")
}

func TestNavigationScenario(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sidebar.ShowSessions())
	require.NoError(t, f.sidebar.BeginChatsSearch())
	assert.Equal(t, []navigation.Destination{navigation.Chats, navigation.Sessions, navigation.Search}, f.nav.Frames())

	require.NoError(t, f.nav.PopTo(navigation.Chats))
	assert.Equal(t, navigation.Chats, f.nav.Top())
	assert.False(t, f.nav.Contains(navigation.Sessions))
	assert.False(t, f.nav.Contains(navigation.Search))
}

func TestBeginChatsSearchResetsAndFocuses(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.actions.Activate(actions.StartSearch))
	assert.Equal(t, []string{"reset", "focus"}, f.search.calls)
	assert.Equal(t, navigation.Search, f.nav.Top())

	require.NoError(t, f.sidebar.CloseSearch())
	assert.Equal(t, navigation.Chats, f.nav.Top())
	require.NoError(t, f.sidebar.CloseSearch(), "closing twice stays on chats")
}

func TestFolderBarVisibility(t *testing.T) {
	f := newFixture(t)
	s := newSession(2)
	f.sidebar.SetSession(s)

	assert.False(t, f.sidebar.FolderBarVisible(), "no folders hides the bar")

	s.FolderList().Append(model.NewChatFolder(7, "Friends"))
	assert.True(t, f.sidebar.FolderBarVisible())

	s.FolderList().Remove(7)
	assert.False(t, f.sidebar.FolderBarVisible())
	assert.Equal(t, false, f.view.folderBar[len(f.view.folderBar)-1])
}

func TestSessionSwapDisconnectsPreviousSession(t *testing.T) {
	f := newFixture(t)
	first := newSession(1)
	first.FolderList().Append(model.NewChatFolder(1, "Work"))
	second := newSession(0)

	f.sidebar.SetSession(first)
	f.sidebar.SetSession(second)

	assert.Equal(t, 0, first.ArchiveChatList().Observers())
	assert.Equal(t, 0, first.FolderList().Observers())
	assert.False(t, f.sidebar.FolderBarVisible())

	require.NoError(t, second.Archive(1))
	require.NoError(t, f.sidebar.ShowArchivedChats())
	emptyArchive(t, first)
	assert.Equal(t, navigation.ArchivedChats, f.nav.Top(), "stale session events do not navigate")
}

func TestSessionSwapRecomputesVisibility(t *testing.T) {
	f := newFixture(t)
	first := newSession(1)
	second := newSession(2)
	second.FolderList().Append(model.NewChatFolder(1, "Work"))
	empty := newSession(0)

	f.sidebar.SetSession(first)
	require.True(t, f.sidebar.ArchiveRowShown())
	require.False(t, f.sidebar.FolderBarVisible())

	f.sidebar.SetSession(second)
	assert.Same(t, second.MainChatList(), f.bar.SelectedChatList())
	assert.True(t, f.sidebar.ArchiveRowShown(), "archived chats of the new session show the row")
	assert.True(t, f.sidebar.FolderBarVisible())
	assert.True(t, f.view.archiveRow[len(f.view.archiveRow)-1])

	f.sidebar.SetSession(empty)
	assert.False(t, f.sidebar.ArchiveRowShown())
	assert.False(t, f.sidebar.FolderBarVisible())

	f.sidebar.SetSession(first)
	assert.True(t, f.sidebar.ArchiveRowShown())
	assert.False(t, f.view.folderBar[len(f.view.folderBar)-1])
}

func TestSessionSwapVisibilityProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(rt)
		sessions := []*model.Session{newSession(0), newSession(1), newSession(3)}
		steps := rapid.SliceOfN(rapid.IntRange(0, len(sessions)), 1, 12).Draw(rt, "steps")
		for _, i := range steps {
			var s *model.Session
			if i < len(sessions) {
				s = sessions[i]
			}
			f.sidebar.SetSession(s)
			want := s != nil && s.ArchiveChatList().Len() > 0 && f.bar.SelectedChatList() == s.MainChatList()
			if f.sidebar.ArchiveRowShown() != want {
				rt.Fatalf("after binding %v: archive row shown=%v, want %v", s, f.sidebar.ArchiveRowShown(), want)
			}
		}
	})
}

func TestClearingSession(t *testing.T) {
	f := newFixture(t)
	f.settings.values[settings.KeyArchiveRowInMainMenu] = true
	s := newSession(2)
	f.sidebar.SetSession(s)
	require.True(t, f.sidebar.ArchiveRowShown())

	var got []*model.Session
	f.sidebar.OnSessionChanged(func(s *model.Session) { got = append(got, s) })
	f.sidebar.SetSession(nil)

	assert.Equal(t, []*model.Session{nil}, got)
	assert.Nil(t, f.sidebar.Session())
	assert.False(t, f.sidebar.ArchiveRowShown())
	assert.False(t, f.sidebar.FolderBarVisible())
	assert.Equal(t, 0, s.ArchiveChatList().Observers())
	assert.True(t, f.actions.Enabled(actions.MoveArchiveRowToChatList), "enablement is not recomputed without a session")
}

func TestCollectedSessionReadsAsNone(t *testing.T) {
	sb, err := New(Options{Settings: newMemSettings()})
	require.NoError(t, err)
	func() {
		sb.SetSession(newSession(1))
	}()
	for i := 0; i < 10 && sb.Session() != nil; i++ {
		runtime.GC()
	}

	assert.Nil(t, sb.Session())
	assert.False(t, sb.ArchiveRowShown())
}

func TestClose(t *testing.T) {
	f := newFixture(t)
	s := newSession(1)
	f.sidebar.SetSession(s)

	f.sidebar.Close()
	assert.Equal(t, 0, s.ArchiveChatList().Observers())
	assert.Equal(t, 0, f.settings.signals[settings.KeyArchiveRowInMainMenu].Len())
}

func TestCompactAndSelectedChat(t *testing.T) {
	f := newFixture(t)
	var compact []bool
	f.sidebar.OnCompactChanged(func(v bool) { compact = append(compact, v) })
	f.sidebar.SetCompact(true)
	f.sidebar.SetCompact(true)
	assert.True(t, f.sidebar.Compact())
	assert.Equal(t, []bool{true}, compact)

	chat := &model.Chat{ID: 5, Title: "Bob"}
	changes := 0
	f.sidebar.OnSelectedChatChanged(func(*model.Chat) { changes++ })
	f.sidebar.SetSelectedChat(chat)
	f.sidebar.SetSelectedChat(chat)
	assert.Same(t, chat, f.sidebar.SelectedChat())
	f.sidebar.SetSelectedChat(nil)
	assert.Nil(t, f.sidebar.SelectedChat())
	assert.Equal(t, 2, changes)
}

func TestWithPersistedSettingsStore(t *testing.T) {
	store, err := settings.Open(filepath.Join(t.TempDir(), "settings.toml"), nil)
	require.NoError(t, err)
	reg := actions.NewRegistry()
	sb, err := New(Options{Settings: store, Actions: reg})
	require.NoError(t, err)
	sb.SetSession(newSession(1))

	require.NoError(t, store.SetBool(settings.KeyArchiveRowInMainMenu, true))
	assert.True(t, reg.Enabled(actions.MenuShowArchivedChats))

	require.NoError(t, sb.MoveArchiveRow())
	persisted, err := settings.Load(store.Path())
	require.NoError(t, err)
	assert.False(t, persisted.ArchiveRowInMainMenu)
	assert.False(t, reg.Enabled(actions.MoveArchiveRowToChatList))
}
