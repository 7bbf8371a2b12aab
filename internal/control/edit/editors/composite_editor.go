// Package editors contains the cell widgets for the different column types.
package editors

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/control/edit"
	"github.com/ja-he/rowedit/internal/control/edit/views"
)

// Composite holds the widgets of a row in edit mode, one per editable cell,
// and tracks which of them has focus.
type Composite struct {
	fields           []edit.Widget
	columns          []int
	activeFieldIndex int

	name string
}

// NewComposite returns an empty composite for the named row.
func NewComposite(name string) *Composite {
	return &Composite{name: name}
}

// AddField adds a widget for the cell in the given column.
func (e *Composite) AddField(column int, w edit.Widget) {
	e.fields = append(e.fields, w)
	e.columns = append(e.columns, column)
}

// GetName returns the name of the composite.
func (e *Composite) GetName() string { return e.name }

// GetType asserts that this is a composite editor.
func (e *Composite) GetType() string { return "composite" }

// Len returns the number of widgets.
func (e *Composite) Len() int { return len(e.fields) }

// SwitchToNextField switches to the next field (wrapping around, if necessary).
func (e *Composite) SwitchToNextField() {
	if len(e.fields) == 0 {
		return
	}
	nextIndex := (e.activeFieldIndex + 1) % len(e.fields)
	log.Debug().Msgf("switching fields '%s' -> '%s'", e.fields[e.activeFieldIndex].GetName(), e.fields[nextIndex].GetName())
	e.activeFieldIndex = nextIndex
}

// SwitchToPrevField switches to the previous field (wrapping around, if necessary).
func (e *Composite) SwitchToPrevField() {
	if len(e.fields) == 0 {
		return
	}
	e.activeFieldIndex = (e.activeFieldIndex - 1 + len(e.fields)) % len(e.fields)
}

// FocusColumn focuses the widget of the given column.
// It returns false (and leaves focus unchanged) if that column has no widget.
func (e *Composite) FocusColumn(column int) bool {
	for i, c := range e.columns {
		if c == column {
			e.activeFieldIndex = i
			return true
		}
	}
	return false
}

// GetActiveFieldIndex returns the index of the focused widget.
func (e *Composite) GetActiveFieldIndex() int { return e.activeFieldIndex }

// ActiveColumn returns the column of the focused widget, or -1.
func (e *Composite) ActiveColumn() int {
	if len(e.fields) == 0 {
		return -1
	}
	return e.columns[e.activeFieldIndex]
}

// Active returns the focused widget, or nil if there are none.
func (e *Composite) Active() edit.Widget {
	if len(e.fields) == 0 {
		return nil
	}
	return e.fields[e.activeFieldIndex]
}

// Field returns the widget of the given column.
func (e *Composite) Field(column int) (edit.Widget, bool) {
	for i, c := range e.columns {
		if c == column {
			return e.fields[i], true
		}
	}
	return nil, false
}

// GetFields returns the widgets in column order.
func (e *Composite) GetFields() []edit.Widget {
	return e.fields
}

// IsEmpty reports whether no widget carries a non-empty value.
func (e *Composite) IsEmpty() bool {
	for _, f := range e.fields {
		if !f.IsEmpty() {
			return false
		}
	}
	return true
}

// Values returns the current widget values by column.
func (e *Composite) Values() map[int]string {
	result := make(map[int]string, len(e.fields))
	for i, f := range e.fields {
		result[e.columns[i]] = f.GetValue()
	}
	return result
}

// FieldView returns the view of the widget in the given column.
func (e *Composite) FieldView(column int) (views.WidgetView, bool) {
	f, ok := e.Field(column)
	if !ok {
		return nil, false
	}
	return f, true
}
