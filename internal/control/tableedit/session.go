package tableedit

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/control/edit"
	"github.com/ja-he/rowedit/internal/control/edit/editors"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/model"
)

// EditSession governs which row is in edit mode. At most one row is; requests
// to edit another row while one is active are rejected.
type EditSession struct {
	editor *Editor

	row     grid.Row
	cell    int
	widgets *editors.Composite
	isNew   bool
}

// Active reports whether a row is in edit mode.
func (s *EditSession) Active() bool { return s.row != nil }

// Row returns the row in edit mode, if any.
func (s *EditSession) Row() (grid.Row, bool) {
	if s.row == nil {
		return nil, false
	}
	return s.row, true
}

// Cell returns the column the session was entered at, or -1.
func (s *EditSession) Cell() int {
	if s.row == nil {
		return -1
	}
	return s.cell
}

// IsNew reports whether the editing row was created by NewRow.
func (s *EditSession) IsNew() bool { return s.row != nil && s.isNew }

// Widgets returns the widgets of the editing row, or nil.
func (s *EditSession) Widgets() *editors.Composite { return s.widgets }

// Focused returns the focused widget, or nil.
func (s *EditSession) Focused() edit.Widget {
	if s.widgets == nil {
		return nil
	}
	return s.widgets.Active()
}

// Enter puts the row at the given index into edit mode, focusing the widget of
// the given cell if it has one and the row's first widget otherwise.
//
// It is a no-op (returning false) if another row is being edited, the row does
// not exist, or none of its cells may be edited.
func (s *EditSession) Enter(rowIndex, cell int) bool {
	if s.Active() {
		log.Debug().Msgf("not entering row %d, row %d is already being edited", rowIndex, s.row.Index())
		return false
	}
	row, ok := s.editor.grid.Row(rowIndex)
	if !ok {
		log.Debug().Msgf("not entering row %d, no such row", rowIndex)
		return false
	}

	status := s.editor.status(row)
	data := row.Data()
	widgets := editors.NewComposite(row.Key())
	for i, col := range s.editor.columns {
		if col.Hidden {
			continue
		}
		if !model.CanEdit(col, row.CellOverride(i), row.RowOverride(), status) {
			continue
		}
		widgets.AddField(i, s.editor.template.BuildEditable(col, col.FormatValue(data)))
	}
	if widgets.Len() == 0 {
		log.Debug().Msgf("not entering row %d, no editable cells (status %s)", rowIndex, status)
		return false
	}

	s.begin(row, cell, widgets, false)
	return true
}

// NewRow inserts an empty row at the configured position and puts it into edit
// mode with every visible cell editable.
// It is a no-op (returning false) while another row is being edited.
func (s *EditSession) NewRow() bool {
	if s.Active() {
		log.Debug().Msgf("not adding a row, row %d is already being edited", s.row.Index())
		return false
	}

	at := 0
	if s.editor.position == PositionBottom {
		at = s.editor.grid.Len()
	}
	row := s.editor.grid.Insert(at, model.Record{})

	widgets := editors.NewComposite(row.Key())
	for i, col := range s.editor.columns {
		if col.Hidden {
			continue
		}
		widgets.AddField(i, s.editor.template.BuildEditable(col, ""))
	}
	if widgets.Len() == 0 {
		log.Warn().Msg("new row has no visible columns, discarding it")
		row.Remove()
		return false
	}

	s.begin(row, -1, widgets, true)
	return true
}

// Abandon ends the session for interaction outside the editing row.
// A row whose widgets are all empty is discarded (see Commit); any other row
// is committed.
// It returns false if there was no session or the validator rejected the row,
// in which case the row stays in edit mode.
func (s *EditSession) Abandon() bool {
	if !s.Active() {
		return false
	}
	if s.widgets.IsEmpty() {
		s.discard()
		return true
	}
	return s.Commit()
}

// Commit ends the session by saving the row.
// A row whose widgets are all empty is discarded instead of saved: it is
// removed if it is new or could be deleted, and otherwise left as it was. If
// the validator rejects the row, it stays in edit mode and Commit returns
// false.
func (s *EditSession) Commit() bool {
	if !s.Active() {
		return false
	}
	if s.widgets.IsEmpty() {
		s.discard()
		return true
	}

	rec := s.editor.saver.buildRecord(s.row, s.widgets, s.isNew)
	if s.editor.validator != nil && !s.editor.validator.Valid(rec) {
		log.Debug().Msgf("validation rejected row %d, staying in edit mode", s.row.Index())
		return false
	}
	s.editor.saver.commitRow(s.row, rec)
	return true
}

// FocusNext moves focus to the next widget, wrapping around.
func (s *EditSession) FocusNext() {
	if s.widgets != nil {
		s.widgets.SwitchToNextField()
	}
}

// FocusPrev moves focus to the previous widget, wrapping around.
func (s *EditSession) FocusPrev() {
	if s.widgets != nil {
		s.widgets.SwitchToPrevField()
	}
}

// FocusColumn moves focus to the widget of the given column, if there is one.
func (s *EditSession) FocusColumn(column int) bool {
	if s.widgets == nil {
		return false
	}
	return s.widgets.FocusColumn(column)
}

func (s *EditSession) begin(row grid.Row, cell int, widgets *editors.Composite, isNew bool) {
	// focus stays on the first widget if the cell has none
	widgets.FocusColumn(cell)
	s.row, s.cell, s.widgets, s.isNew = row, cell, widgets, isNew

	d := row.Decoration()
	d.Editing = true
	row.SetDecoration(d)
	log.Debug().Msgf("editing row %d (new: %t)", row.Index(), isNew)
	s.editor.grid.Redraw()
}

// discard ends the session without saving. The row is removed only if it is
// new, unpersisted or a draft.
func (s *EditSession) discard() {
	row := s.row
	status := s.editor.status(row)
	if !s.isNew && status != model.StatusUnpersisted && !model.CanDelete(status) {
		log.Debug().Msgf("leaving empty row %d in place, it is %s", row.Index(), status)
		s.exit()
		s.editor.grid.Redraw()
		return
	}
	log.Debug().Msgf("discarding empty row %d", row.Index())
	s.exit()
	row.Remove()
	s.editor.tracker.Forget(row.Key())
	s.editor.grid.Redraw()
}

// exit returns to idle without touching row data.
func (s *EditSession) exit() {
	if s.row == nil {
		return
	}
	d := s.row.Decoration()
	d.Editing = false
	s.row.SetDecoration(d)
	s.row, s.cell, s.widgets, s.isNew = nil, -1, nil, false
}
