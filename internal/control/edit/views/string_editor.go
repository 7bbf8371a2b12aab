// Package views holds read-only views of editing state, as needed by the
// renderer.
package views

// WidgetView allows inspection of a cell widget.
type WidgetView interface {
	GetName() string

	// GetCursorPos returns the current cursor position in the displayed text, 0
	// being the first character.
	GetCursorPos() int

	// GetValue returns the current (edited) contents.
	GetValue() string
}

// Displayer is implemented by widgets whose displayed text differs from their
// value (e.g. select widgets show the choice text, not its id).
type Displayer interface {
	String() string
}

// DisplayText returns what a widget should display.
func DisplayText(w WidgetView) string {
	if d, ok := w.(Displayer); ok {
		return d.String()
	}
	return w.GetValue()
}
