package history

import "testing"

// fieldEdit flips a tracked value between old and new.
type fieldEdit struct {
	target   *int
	old, new int
}

func (e *fieldEdit) Apply()  { *e.target = e.new }
func (e *fieldEdit) Revert() { *e.target = e.old }

func TestUndoRedo(t *testing.T) {
	s := NewStack(10)
	bpm := 120

	edit := &fieldEdit{target: &bpm, old: 120, new: 128}
	edit.Apply()
	s.Push(edit)

	if bpm != 128 {
		t.Fatalf("bpm = %d after apply, want 128", bpm)
	}
	if !s.Undo() {
		t.Fatal("Undo returned false with one entry")
	}
	if bpm != 120 {
		t.Fatalf("bpm = %d after undo, want 120", bpm)
	}
	if !s.Redo() {
		t.Fatal("Redo returned false after an undo")
	}
	if bpm != 128 {
		t.Fatalf("bpm = %d after redo, want 128", bpm)
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	s := NewStack(10)

	if s.Undo() {
		t.Error("Undo on an empty stack returned true")
	}
	if s.Redo() {
		t.Error("Redo with an empty redo tail returned true")
	}
}

func TestPushClearsRedoTail(t *testing.T) {
	s := NewStack(10)
	v := 0

	s.Push(&fieldEdit{target: &v, old: 0, new: 1})
	s.Push(&fieldEdit{target: &v, old: 1, new: 2})
	s.Undo()

	// A new edit after an undo forks the history: the undone edit is
	// no longer reachable.
	s.Push(&fieldEdit{target: &v, old: 1, new: 3})

	if s.Redo() {
		t.Error("Redo returned true after a fresh push")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestCapacityDropsOldest(t *testing.T) {
	s := NewStack(3)
	v := 0

	for i := 1; i <= 5; i++ {
		s.Push(&fieldEdit{target: &v, old: i - 1, new: i})
	}

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	// Only the newest three edits survive.
	undos := 0
	for s.Undo() {
		undos++
	}
	if undos != 3 {
		t.Errorf("performed %d undos, want 3", undos)
	}
	if v != 2 {
		t.Errorf("value after full unwind = %d, want 2 (oldest edits dropped)", v)
	}
}

func TestNewStackDefaultsCapacity(t *testing.T) {
	for _, capacity := range []int{0, -5} {
		if got := NewStack(capacity).Cap(); got != 100 {
			t.Errorf("NewStack(%d).Cap() = %d, want 100", capacity, got)
		}
	}
}

func TestPushNil(t *testing.T) {
	s := NewStack(10)
	s.Push(nil)
	if s.Len() != 0 {
		t.Errorf("Len = %d after nil push, want 0", s.Len())
	}
}
