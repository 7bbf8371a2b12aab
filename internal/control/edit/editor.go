// Package edit implements generic interfaces for editing of grid cells (by the
// user).
package edit

import "github.com/ja-he/rowedit/internal/model"

// Widget is an input-capable stand-in for a grid cell while its row is being
// edited.
type Widget interface {
	// GetName returns the data key of the column this widget edits.
	GetName() string

	GetType() string

	// GetValue returns the current (edited) text of the widget.
	GetValue() string

	// IsEmpty reports whether the widget carries no value.
	IsEmpty() bool

	GetCursorPos() int

	AddRune(r rune)
	BackspaceRune()
	DeleteRune()
	Clear()
	MoveCursorLeft()
	MoveCursorRight()
	MoveCursorToBeginning()
	MoveCursorPastEnd()
}

// CellTemplate turns a cell into an input widget pre-populated with the cell's
// current text, according to the column's declared type.
type CellTemplate interface {
	BuildEditable(col model.Column, text string) Widget
}

// CellTemplateFunc adapts a function to the CellTemplate interface.
type CellTemplateFunc func(col model.Column, text string) Widget

// BuildEditable calls f.
func (f CellTemplateFunc) BuildEditable(col model.Column, text string) Widget {
	return f(col, text)
}
