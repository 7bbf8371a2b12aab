package views

// CompositeEditorView allows inspection of the editing row's widgets.
type CompositeEditorView interface {
	GetName() string

	// ActiveColumn returns the column of the focused widget, or -1.
	ActiveColumn() int

	// FieldView returns the view of the widget in the given column.
	FieldView(column int) (WidgetView, bool)
}
