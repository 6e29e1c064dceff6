package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewSidebarStackStartsAtChats(t *testing.T) {
	s := NewSidebarStack()
	assert.Equal(t, Chats, s.Base())
	assert.Equal(t, Chats, s.Top())
	assert.Equal(t, 1, s.Depth())
	assert.True(t, s.Known(ArchivedChats))
}

func TestPushPushPopToChats(t *testing.T) {
	s := NewSidebarStack()
	var transitions []Transition
	s.OnTransition(func(tr Transition) { transitions = append(transitions, tr) })

	require.NoError(t, s.Push(Sessions))
	require.NoError(t, s.Push(Search))
	require.NoError(t, s.PopTo(Chats))

	assert.Equal(t, Chats, s.Top())
	assert.Equal(t, []Destination{Chats}, s.Frames())
	assert.False(t, s.Contains(Sessions))
	assert.False(t, s.Contains(Search))

	require.Len(t, transitions, 3)
	assert.Equal(t, TransitionPop, transitions[2].Kind)
	assert.Equal(t, Search, transitions[2].From)
	assert.Equal(t, []Destination{Search, Sessions}, transitions[2].Discarded)
}

func TestPopToTopIsNoop(t *testing.T) {
	s := NewSidebarStack()
	calls := 0
	s.Notify(func() { calls++ })

	require.NoError(t, s.PopTo(Chats))
	require.NoError(t, s.Push(ArchivedChats))
	require.NoError(t, s.PopTo(ArchivedChats))

	assert.Equal(t, ArchivedChats, s.Top())
	assert.Equal(t, 1, calls)
}

func TestPushErrors(t *testing.T) {
	s := NewSidebarStack()

	err := s.Push("settings")
	assert.ErrorIs(t, err, ErrUnknownDestination)

	require.NoError(t, s.Push(Sessions))
	require.NoError(t, s.Push(Sessions), "pushing the current top is a no-op")
	assert.Equal(t, 2, s.Depth())

	require.NoError(t, s.Push(Search))
	assert.ErrorIs(t, s.Push(Sessions), ErrAlreadyOnStack)
	assert.ErrorIs(t, s.Push(Chats), ErrAlreadyOnStack)
}

func TestPopToErrors(t *testing.T) {
	s := NewSidebarStack()

	assert.ErrorIs(t, s.PopTo("nowhere"), ErrUnknownDestination)
	assert.ErrorIs(t, s.PopTo(Search), ErrNotOnStack)
	assert.Equal(t, Chats, s.Top())
}

func TestPopStopsAtBase(t *testing.T) {
	s := NewSidebarStack()
	require.NoError(t, s.Push(Sessions))

	assert.True(t, s.Pop())
	assert.False(t, s.Pop())
	assert.Equal(t, Chats, s.Top())
}

func TestString(t *testing.T) {
	s := NewSidebarStack()
	require.NoError(t, s.Push(Sessions))
	assert.Equal(t, "chats > sessions", s.String())
	assert.Equal(t, "push", TransitionPush.String())
	assert.Equal(t, "pop", TransitionPop.String())
}

// PopTo leaves the requested tag on top and keeps every frame below it.
func TestPopToProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewSidebarStack()
		pushable := []Destination{Sessions, Search, ArchivedChats}
		steps := rapid.IntRange(0, 10).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			d := rapid.SampledFrom(pushable).Draw(rt, "push")
			_ = s.Push(d)
		}
		before := s.Frames()
		target := rapid.SampledFrom(before).Draw(rt, "target")

		require.NoError(rt, s.PopTo(target))
		assert.Equal(rt, target, s.Top())

		idx := -1
		for i, f := range before {
			if f == target {
				idx = i
			}
		}
		assert.Equal(rt, before[:idx+1], s.Frames())

		require.NoError(rt, s.PopTo(target))
		assert.Equal(rt, before[:idx+1], s.Frames())
	})
}
