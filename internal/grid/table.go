package grid

import (
	"github.com/GianlucaGuarini/go-observable"
	"github.com/google/uuid"

	"github.com/ja-he/rowedit/internal/model"
)

// TableVersion is the version reported by Table.
const TableVersion = "1.10.8"

const redrawEvent = "redraw"

// Table is an in-memory Grid.
// It is not safe for concurrent use; like the rest of the editor it is meant
// to be driven from a single event loop.
type Table struct {
	columns []model.Column
	rows    []*tableRow

	redraws   *observable.Observable
	extension any
}

// NewTable returns a table with the given columns and initial rows.
func NewTable(columns []model.Column, data []model.Record) *Table {
	t := &Table{
		columns: columns,
		redraws: observable.New(),
	}
	for _, rec := range data {
		t.Add(rec)
	}
	return t
}

// Version returns TableVersion.
func (t *Table) Version() string { return TableVersion }

// Columns returns the column descriptors.
func (t *Table) Columns() []model.Column { return t.columns }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the row at the given index.
func (t *Table) Row(index int) (Row, bool) {
	if index < 0 || index >= len(t.rows) {
		return nil, false
	}
	return t.rows[index], true
}

// RowByKey returns the row with the given key.
func (t *Table) RowByKey(key string) (Row, bool) {
	for _, r := range t.rows {
		if r.key == key {
			return r, true
		}
	}
	return nil, false
}

// Rows returns all rows in order.
func (t *Table) Rows() []Row {
	result := make([]Row, len(t.rows))
	for i, r := range t.rows {
		result[i] = r
	}
	return result
}

// Insert inserts a row at the given index, clamped to [0, Len()].
func (t *Table) Insert(at int, data model.Record) Row {
	if at < 0 {
		at = 0
	}
	if at > len(t.rows) {
		at = len(t.rows)
	}
	if data == nil {
		data = model.Record{}
	}
	r := &tableRow{
		table: t,
		key:   uuid.NewString(),
		data:  data.Clone(),
		cells: map[int]model.Override{},
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[at+1:], t.rows[at:])
	t.rows[at] = r
	return r
}

// Add appends a row.
func (t *Table) Add(data model.Record) Row {
	return t.Insert(len(t.rows), data)
}

// Redraw calls all redraw listeners.
func (t *Table) Redraw() {
	t.redraws.Trigger(redrawEvent)
}

// OnRedraw registers a redraw listener.
func (t *Table) OnRedraw(f func()) {
	t.redraws.On(redrawEvent, f)
}

// Extension returns the attached extension.
func (t *Table) Extension() any { return t.extension }

// SetExtension attaches an extension.
func (t *Table) SetExtension(e any) { t.extension = e }

// Records returns copies of all row data in order.
func (t *Table) Records() []model.Record {
	result := make([]model.Record, len(t.rows))
	for i, r := range t.rows {
		result[i] = r.data.Clone()
	}
	return result
}

func (t *Table) indexOf(r *tableRow) int {
	for i, candidate := range t.rows {
		if candidate == r {
			return i
		}
	}
	return -1
}

func (t *Table) remove(r *tableRow) {
	i := t.indexOf(r)
	if i < 0 {
		return
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
}

type tableRow struct {
	table *Table
	key   string
	data  model.Record

	decoration model.Decoration
	override   model.Override
	cells      map[int]model.Override
}

func (r *tableRow) Key() string                      { return r.key }
func (r *tableRow) Index() int                       { return r.table.indexOf(r) }
func (r *tableRow) Data() model.Record               { return r.data.Clone() }
func (r *tableRow) SetData(d model.Record)           { r.data = d.Clone() }
func (r *tableRow) Remove()                          { r.table.remove(r) }
func (r *tableRow) Decoration() model.Decoration     { return r.decoration }
func (r *tableRow) SetDecoration(d model.Decoration) { r.decoration = d }
func (r *tableRow) RowOverride() model.Override      { return r.override }
func (r *tableRow) SetRowOverride(o model.Override)  { r.override = o }

func (r *tableRow) CellOverride(column int) model.Override {
	return r.cells[column]
}

func (r *tableRow) SetCellOverride(column int, o model.Override) {
	if o == model.OverrideNone {
		delete(r.cells, column)
		return
	}
	r.cells[column] = o
}
