package action

// Reversible is an action with a known inverse, e.g. locking a row and
// unlocking it again.
type Reversible struct {
	do      func()
	undo    func()
	explain func() string
}

// Do performs the action.
func (a *Reversible) Do() { a.do() }

// Undo performs the inverse action.
func (a *Reversible) Undo() { a.undo() }

// Undoable always returns true.
func (a *Reversible) Undoable() bool { return true }

// Explain returns the explanation for Do.
func (a *Reversible) Explain() string { return a.explain() }

// NewReversible returns a new reversible action.
func NewReversible(explainer func() string, do, undo func()) *Reversible {
	return &Reversible{
		do:      do,
		undo:    undo,
		explain: explainer,
	}
}
