// Package history provides a bounded stack of reversible edits. It is a
// plain dependency-injected service: construct one and hand it to every
// component that records edits, instead of reaching for a shared global.
package history

// Entry is one reversible edit. Apply redoes it, Revert undoes it.
type Entry interface {
	Apply()
	Revert()
}

// Stack is a bounded LIFO edit history with redo support. Pushing a new
// edit truncates the redo tail, and the oldest entries fall off once the
// capacity is reached. Not safe for concurrent use; callers that share a
// Stack across goroutines serialize access themselves.
type Stack struct {
	entries  []Entry
	redo     []Entry
	capacity int
}

const defaultCapacity = 100

// NewStack creates a history stack. Non-positive capacities get the
// default bound.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Stack{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Push records an applied edit. Anything previously undone is discarded,
// and the oldest entry is dropped when the stack is full.
func (s *Stack) Push(e Entry) {
	if e == nil {
		return
	}
	if len(s.entries) == s.capacity {
		copy(s.entries, s.entries[1:])
		s.entries = s.entries[:len(s.entries)-1]
	}
	s.entries = append(s.entries, e)
	s.redo = s.redo[:0]
}

// Undo reverts the most recent edit and moves it to the redo tail.
// Returns false when there is nothing to undo.
func (s *Stack) Undo() bool {
	if len(s.entries) == 0 {
		return false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	e.Revert()
	s.redo = append(s.redo, e)
	return true
}

// Redo re-applies the most recently undone edit. Returns false when the
// redo tail is empty.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	e := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	e.Apply()
	s.entries = append(s.entries, e)
	return true
}

// Len returns the number of undoable edits.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Cap returns the stack's bound.
func (s *Stack) Cap() int {
	return s.capacity
}
