// Package action contains the actions the front end binds to keys.
package action

// Action models an operation triggered by user input.
type Action interface {
	// Do performs the action.
	Do()
	// Undo reverts what Do did, if the action is undoable.
	Undo()
	// Undoable reports whether Undo does anything.
	Undoable() bool
	// Explain returns a short human-readable description of Do.
	Explain() string
}

// Simple is an action without inverse, e.g. moving the cursor.
type Simple struct {
	do      func()
	explain func() string
}

// NewSimple returns a simple action calling do.
func NewSimple(explainer func() string, do func()) *Simple {
	return &Simple{do: do, explain: explainer}
}

func (a *Simple) Do()             { a.do() }
func (a *Simple) Undo()           {}
func (a *Simple) Undoable() bool  { return false }
func (a *Simple) Explain() string { return a.explain() }
