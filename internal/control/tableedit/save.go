package tableedit

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/control/edit/editors"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/model"
)

// saveCoordinator reconciles widget values back into row data and dispatches
// persistence.
//
// Local state (row data, session, dirty set, decorations) is always settled
// before a persistence call is dispatched, and nothing the call returns feeds
// back into it.
type saveCoordinator struct {
	editor *Editor
}

// buildRecord assembles the complete record of a row from its widgets and,
// for cells without widget, its current data. Cells of a new row left empty
// get their column's default. A widget still showing the text of the value it
// was built from leaves that value as it is.
func (c *saveCoordinator) buildRecord(row grid.Row, widgets *editors.Composite, isNew bool) model.Record {
	rec := row.Data()
	values := widgets.Values()
	for i, col := range c.editor.columns {
		text, hasWidget := values[i]
		switch {
		case isNew && col.Default != nil && strings.TrimSpace(text) == "" && !rec.Has(col.Data):
			rec[col.Data] = col.Default
		case !hasWidget:
		case !isNew && text == col.FormatValue(rec):
		default:
			rec[col.Data] = col.ParseValue(text)
		}
	}
	return rec
}

// commitRow writes the record into the row, ends the session, publishes
// RowSaved, re-derives decorations, redraws, and only then dispatches
// persistence.
func (c *saveCoordinator) commitRow(row grid.Row, rec model.Record) {
	row.SetData(rec)
	c.editor.session.exit()

	c.editor.events.Trigger(rowSavedEvent, RowSaved{Index: row.Index(), Key: row.Key(), Data: rec.Clone()})
	c.editor.decorate(row)
	c.editor.grid.Redraw()
	log.Info().Msgf("committed row %d", row.Index())

	c.persist(row.Key(), rec)
}

// deleteRow applies the delete guards to the row at the given index.
func (c *saveCoordinator) deleteRow(rowIndex int) bool {
	row, ok := c.editor.grid.Row(rowIndex)
	if !ok {
		return false
	}

	status := c.editor.status(row)
	switch {
	case status == model.StatusUnpersisted:
		if active, isActive := c.editor.session.Row(); isActive && active.Key() == row.Key() {
			c.editor.session.exit()
		}
		row.Remove()
		c.editor.tracker.Forget(row.Key())
		c.editor.grid.Redraw()
		log.Info().Msgf("removed unpersisted row %d", rowIndex)
		return true

	case !model.CanDelete(status):
		log.Debug().Msgf("not deleting row %d, it is %s", rowIndex, status)
		return false
	}

	if active, isActive := c.editor.session.Row(); isActive && active.Key() == row.Key() {
		c.editor.session.exit()
	}

	rec := row.Data()
	rec[c.editor.fields.Deleted] = int64(1)
	row.SetData(rec)
	c.editor.events.Trigger(rowSavedEvent, RowSaved{Index: rowIndex, Key: row.Key(), Data: rec.Clone()})
	row.Remove()
	c.editor.grid.Redraw()
	log.Info().Msgf("deleted row %d", rowIndex)

	// without an id there is no remote record to mark as deleted
	if _, hasID := rec.ID(c.editor.fields.ID); !hasID {
		log.Debug().Msgf("row %d has no id, not persisting its deletion", rowIndex)
		return true
	}
	c.persist(row.Key(), rec)
	return true
}

// persist dispatches the persistence call on its own goroutine.
func (c *saveCoordinator) persist(key string, rec model.Record) {
	p := c.editor.persistence
	if p == nil {
		return
	}
	onResult := c.editor.onResult
	base := c.editor.ctx
	timeout := c.editor.saveTimeout
	rec = rec.Clone()

	go func() {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()

		res, err := p.Save(ctx, rec)
		onResult(SaveResult{Key: key, Record: rec, Result: res, Err: err})
	}()
}
