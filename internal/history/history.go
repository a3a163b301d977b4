package history

// Cloner is implemented by snapshots that can be deep copied.
type Cloner[T any] interface {
	Clone() T
}

// History keeps undo and redo stacks of snapshots. Snapshots are cloned when
// they enter and leave the stacks, so callers never share them.
type History[T Cloner[T]] struct {
	undo []T
	redo []T
}

// New creates a history with empty stacks.
func New[T Cloner[T]]() *History[T] {
	return &History[T]{}
}

// Restore creates a history from existing stacks. The last element of each stack is its top.
func Restore[T Cloner[T]](undo, redo []T) *History[T] {
	h := New[T]()
	for _, snapshot := range undo {
		h.undo = append(h.undo, snapshot.Clone())
	}
	for _, snapshot := range redo {
		h.redo = append(h.redo, snapshot.Clone())
	}
	return h
}

// Push records the state before a new move and clears the redo stack.
func (h *History[T]) Push(previous T) {
	h.undo = append(h.undo, previous.Clone())
	h.redo = h.redo[:0]
}

// Undo returns the previous state and records current for redo.
// It returns false if there is nothing to undo.
func (h *History[T]) Undo(current T) (T, bool) {
	if len(h.undo) == 0 {
		var zero T
		return zero, false
	}

	previous := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current.Clone())

	return previous.Clone(), true
}

// Redo returns the state that was undone last and records current for undo.
// It returns false if there is nothing to redo.
func (h *History[T]) Redo(current T) (T, bool) {
	if len(h.redo) == 0 {
		var zero T
		return zero, false
	}

	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current.Clone())

	return next.Clone(), true
}

// Clear empties both stacks.
func (h *History[T]) Clear() {
	h.undo = nil
	h.redo = nil
}

// CanUndo returns whether Undo would succeed.
func (h *History[T]) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns whether Redo would succeed.
func (h *History[T]) CanRedo() bool {
	return len(h.redo) > 0
}

// Stacks returns copies of both stacks, bottom first.
func (h *History[T]) Stacks() (undo, redo []T) {
	undo = make([]T, len(h.undo))
	for i, snapshot := range h.undo {
		undo[i] = snapshot.Clone()
	}

	redo = make([]T, len(h.redo))
	for i, snapshot := range h.redo {
		redo[i] = snapshot.Clone()
	}

	return undo, redo
}
