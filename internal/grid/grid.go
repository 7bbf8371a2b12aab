// Package grid defines the host grid the row editor is attached to, and
// provides an in-memory implementation of it.
package grid

import (
	"github.com/ja-he/rowedit/internal/model"
)

// Grid is the tabular host the editor works against.
//
// The grid owns row data. Rows are addressed by their current index (which
// shifts when rows are inserted or removed) or by their key, which is stable
// for the lifetime of the row.
type Grid interface {
	// Version is the grid implementation version, checked by the editor.
	Version() string

	// Columns returns the column descriptors in display order.
	Columns() []model.Column

	Len() int
	Row(index int) (Row, bool)
	RowByKey(key string) (Row, bool)
	Rows() []Row

	// Insert adds a row with the given data at the given index (clamped to the
	// valid range) and returns it.
	Insert(at int, data model.Record) Row
	// Add appends a row with the given data and returns it.
	Add(data model.Record) Row

	// Redraw notifies all redraw listeners.
	Redraw()
	// OnRedraw registers a listener called on every redraw.
	OnRedraw(func())

	// Extension returns what was attached to the grid via SetExtension.
	Extension() any
	SetExtension(any)
}

// Row is a single row of a Grid.
type Row interface {
	Key() string
	// Index is the current position of the row, or -1 after removal.
	Index() int

	// Data returns a copy of the row's data.
	Data() model.Record
	// SetData replaces the row's data with a copy of the given record.
	SetData(model.Record)
	// Remove takes the row out of its grid.
	Remove()

	Decoration() model.Decoration
	SetDecoration(model.Decoration)

	RowOverride() model.Override
	SetRowOverride(model.Override)
	CellOverride(column int) model.Override
	SetCellOverride(column int, o model.Override)
}
