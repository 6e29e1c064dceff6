// Package navigation implements the sidebar's destination stack.
// The bottom frame is always the base destination; the top frame is the
// visible pane.
package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/chat-sidebar/internal/reactive"
)

// Destination is the tag of a sidebar pane.
type Destination string

// Known sidebar destinations.
const (
	Chats         Destination = "chats"
	Sessions      Destination = "sessions"
	Search        Destination = "search"
	ArchivedChats Destination = "archived-chats"
)

// SidebarDestinations lists every pane the sidebar can show.
var SidebarDestinations = []Destination{Chats, Sessions, Search, ArchivedChats}

var (
	// ErrUnknownDestination is returned when a tag is not registered on the stack.
	ErrUnknownDestination = errors.New("unknown destination")
	// ErrNotOnStack is returned when popping to a tag that has no frame.
	ErrNotOnStack = errors.New("destination not on stack")
	// ErrAlreadyOnStack is returned when pushing a tag buried below the top.
	ErrAlreadyOnStack = errors.New("destination already on stack")
)

// TransitionKind tells how the top of the stack changed.
type TransitionKind int

const (
	TransitionPush TransitionKind = iota
	TransitionPop
)

func (k TransitionKind) String() string {
	if k == TransitionPush {
		return "push"
	}
	return "pop"
}

// Transition is emitted after every change of the top frame.
type Transition struct {
	Kind      TransitionKind
	From      Destination
	To        Destination
	Discarded []Destination
}

// Stack is an ordered sequence of destinations over a fixed base.
type Stack struct {
	known   map[Destination]bool
	frames  []Destination
	changed reactive.Signal[Transition]
}

// NewStack creates a stack whose base frame is base. Only base and known
// destinations may ever be pushed.
func NewStack(base Destination, known ...Destination) *Stack {
	s := &Stack{
		known:  map[Destination]bool{base: true},
		frames: []Destination{base},
	}
	for _, d := range known {
		s.known[d] = true
	}
	return s
}

// NewSidebarStack creates the stack used by the sidebar, rooted at Chats.
func NewSidebarStack() *Stack {
	return NewStack(Chats, SidebarDestinations...)
}

// Base returns the bottom destination.
func (s *Stack) Base() Destination {
	return s.frames[0]
}

// Top returns the visible destination.
func (s *Stack) Top() Destination {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of frames including the base.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Frames returns a copy of the frames, bottom first.
func (s *Stack) Frames() []Destination {
	dup := make([]Destination, len(s.frames))
	copy(dup, s.frames)
	return dup
}

// Contains reports whether a frame for d exists.
func (s *Stack) Contains(d Destination) bool {
	return s.indexOf(d) >= 0
}

// Known reports whether d may be pushed.
func (s *Stack) Known(d Destination) bool {
	return s.known[d]
}

// Push makes d the visible destination. Pushing the current top is a no-op.
func (s *Stack) Push(d Destination) error {
	if !s.known[d] {
		return fmt.Errorf("push %q: %w", d, ErrUnknownDestination)
	}
	if s.Top() == d {
		return nil
	}
	if s.Contains(d) {
		return fmt.Errorf("push %q: %w", d, ErrAlreadyOnStack)
	}
	from := s.Top()
	s.frames = append(s.frames, d)
	s.changed.Emit(Transition{Kind: TransitionPush, From: from, To: d})
	return nil
}

// PopTo discards every frame above d, leaving d on top. It is a no-op when d
// is already the top.
func (s *Stack) PopTo(d Destination) error {
	if !s.known[d] {
		return fmt.Errorf("pop to %q: %w", d, ErrUnknownDestination)
	}
	idx := s.indexOf(d)
	if idx < 0 {
		return fmt.Errorf("pop to %q: %w", d, ErrNotOnStack)
	}
	if idx == len(s.frames)-1 {
		return nil
	}
	from := s.Top()
	discarded := make([]Destination, 0, len(s.frames)-idx-1)
	for i := len(s.frames) - 1; i > idx; i-- {
		discarded = append(discarded, s.frames[i])
	}
	s.frames = s.frames[:idx+1]
	s.changed.Emit(Transition{Kind: TransitionPop, From: from, To: d, Discarded: discarded})
	return nil
}

// Pop discards the top frame. It reports false when only the base remains.
func (s *Stack) Pop() bool {
	if len(s.frames) <= 1 {
		return false
	}
	from := s.Top()
	s.frames = s.frames[:len(s.frames)-1]
	s.changed.Emit(Transition{Kind: TransitionPop, From: from, To: s.Top(), Discarded: []Destination{from}})
	return true
}

// OnTransition connects fn to top-of-stack changes.
func (s *Stack) OnTransition(fn func(Transition)) reactive.Subscription {
	return s.changed.Connect(fn)
}

// Notify implements reactive.Notifier.
func (s *Stack) Notify(fn func()) reactive.Subscription {
	return s.changed.Notify(fn)
}

// String renders the stack bottom-first, e.g. "chats > sessions".
func (s *Stack) String() string {
	parts := make([]string, len(s.frames))
	for i, f := range s.frames {
		parts[i] = string(f)
	}
	return strings.Join(parts, " > ")
}

func (s *Stack) indexOf(d Destination) int {
	for i, f := range s.frames {
		if f == d {
			return i
		}
	}
	return -1
}
