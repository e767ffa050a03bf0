package actions

import "github.com/xvierd/daybook/internal/session"

// maxUndoDepth bounds the undo stack; the oldest step falls off when a
// new action would exceed it.
const maxUndoDepth = 50

type stackEntry struct {
	action Action
	desc   Description
}

// Executor runs actions and maintains the undo/redo stacks. Executing a
// new action clears the redo stack.
type Executor struct {
	undoStack []stackEntry
	redoStack []stackEntry
}

// NewExecutor returns an empty executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute applies the action, records its inverse for undo and returns
// the status message to show, if the action's visibility calls for one.
func (e *Executor) Execute(action Action, s *session.Session) (string, error) {
	desc := action.Description()
	inverse, err := action.Apply(s)
	if err != nil {
		return "", err
	}

	e.undoStack = append(e.undoStack, stackEntry{action: inverse, desc: desc})
	if len(e.undoStack) > maxUndoDepth {
		e.undoStack = e.undoStack[1:]
	}
	e.redoStack = nil

	if desc.Visibility == Always {
		return desc.Past, nil
	}
	return "", nil
}

// Undo applies the most recent inverse and moves the step to the redo
// stack. The message is phrased from the original action's point of view.
func (e *Executor) Undo(s *session.Session) (string, error) {
	if len(e.undoStack) == 0 {
		return "", nil
	}
	entry := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]

	redoDesc := entry.action.Description()
	inverse, err := entry.action.Apply(s)
	if err != nil {
		return "", err
	}
	e.redoStack = append(e.redoStack, stackEntry{action: inverse, desc: redoDesc})

	if entry.desc.Visibility == Silent {
		return "", nil
	}
	return entry.desc.PastReversed, nil
}

// Redo re-applies the most recently undone action.
func (e *Executor) Redo(s *session.Session) (string, error) {
	if len(e.redoStack) == 0 {
		return "", nil
	}
	entry := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]

	undoDesc := entry.action.Description()
	inverse, err := entry.action.Apply(s)
	if err != nil {
		return "", err
	}
	e.undoStack = append(e.undoStack, stackEntry{action: inverse, desc: undoDesc})

	if entry.desc.Visibility == Silent {
		return "", nil
	}
	return entry.desc.PastReversed, nil
}

// CanUndo reports whether an undo step is available.
func (e *Executor) CanUndo() bool {
	return len(e.undoStack) > 0
}

// CanRedo reports whether a redo step is available.
func (e *Executor) CanRedo() bool {
	return len(e.redoStack) > 0
}

// Clear drops both stacks, for example when switching journals.
func (e *Executor) Clear() {
	e.undoStack = nil
	e.redoStack = nil
}
