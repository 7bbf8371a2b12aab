// Package tableedit implements row editing on top of a grid: row status guards,
// the single-row edit session, dirty tracking against a baseline snapshot, and
// coordination of saves.
//
// An Editor is driven from a single event loop and is not safe for concurrent
// use. The only thing it does off that loop is calling the configured
// persistence, whose results are handed to Options.OnResult.
package tableedit

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GianlucaGuarini/go-observable"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/control/edit"
	"github.com/ja-he/rowedit/internal/control/edit/editors"
	"github.com/ja-he/rowedit/internal/control/validate"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
)

// MinGridVersion is the lowest grid version an editor can be attached to.
const MinGridVersion = "1.10.7"

// DefaultSaveTimeout bounds a single persistence call.
const DefaultSaveTimeout = 30 * time.Second

// Position is where new rows are inserted.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// Options configures an Editor. The zero value is usable.
type Options struct {
	// Fields names the id, status and deleted fields; defaults to
	// model.DefaultFields.
	Fields model.Fields

	// Template builds cell widgets; defaults to editors.Template.
	Template edit.CellTemplate

	// Validator, if set, is consulted before every commit.
	Validator validate.Validator

	// Persistence, if set, is called for every committed or deleted row.
	Persistence storage.Persistence

	// OnResult receives persistence outcomes. It is called on the persistence
	// goroutine. Defaults to logging failures.
	OnResult func(SaveResult)

	// Context is the parent of every persistence call's context.
	Context     context.Context
	SaveTimeout time.Duration

	// NewRowPosition defaults to PositionTop.
	NewRowPosition Position
}

// Editor is the row editor attached to a grid.
type Editor struct {
	grid    grid.Grid
	columns []model.Column
	fields  model.Fields

	template    edit.CellTemplate
	validator   validate.Validator
	persistence storage.Persistence
	onResult    func(SaveResult)
	ctx         context.Context
	saveTimeout time.Duration
	position    Position

	events  *observable.Observable
	tracker *DirtyTracker
	session *EditSession
	saver   *saveCoordinator
}

// New attaches a row editor to the grid.
//
// The grid must be at least MinGridVersion and its column descriptors must be
// valid. A grid carries at most one editor; if it already has one, that
// editor is returned and the options are ignored.
func New(g grid.Grid, opts Options) (*Editor, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if existing := g.Extension(); existing != nil {
		if e, ok := existing.(*Editor); ok {
			log.Debug().Msg("grid already has an editor attached, reusing it")
			return e, nil
		}
		return nil, ErrForeignExtension
	}
	if !model.VersionCheck(g.Version(), MinGridVersion) {
		return nil, fmt.Errorf("%w: have %s, need %s or newer", ErrIncompatibleGrid, g.Version(), MinGridVersion)
	}
	if err := model.ValidateColumns(g.Columns()); err != nil {
		return nil, fmt.Errorf("could not attach editor (%w)", err)
	}

	e := &Editor{
		grid:        g,
		columns:     g.Columns(),
		fields:      opts.Fields,
		template:    opts.Template,
		validator:   opts.Validator,
		persistence: opts.Persistence,
		onResult:    opts.OnResult,
		ctx:         opts.Context,
		saveTimeout: opts.SaveTimeout,
		position:    opts.NewRowPosition,
		events:      observable.New(),
	}
	if e.fields == (model.Fields{}) {
		e.fields = model.DefaultFields()
	}
	if e.template == nil {
		e.template = editors.Template
	}
	if e.onResult == nil {
		e.onResult = logResult
	}
	if e.ctx == nil {
		e.ctx = context.Background()
	}
	if e.saveTimeout <= 0 {
		e.saveTimeout = DefaultSaveTimeout
	}
	if e.position == "" {
		e.position = PositionTop
	}

	e.tracker = newDirtyTracker(g)
	e.session = &EditSession{editor: e, cell: -1}
	e.saver = &saveCoordinator{editor: e}

	e.events.On(rowSavedEvent, func(args ...interface{}) {
		ev, ok := args[0].(RowSaved)
		if !ok {
			return
		}
		if row, exists := g.RowByKey(ev.Key); exists {
			e.tracker.Evaluate(row)
		} else {
			e.tracker.dirty[ev.Key] = ev.Data.Clone()
		}
	})

	g.OnRedraw(e.decorateAll)
	g.SetExtension(e)
	e.decorateAll()

	log.Debug().Msgf("attached editor to grid v%s with %d columns and %d rows", g.Version(), len(e.columns), g.Len())
	return e, nil
}

// For returns the editor attached to the grid, if any.
func For(g grid.Grid) (*Editor, bool) {
	if g == nil {
		return nil, false
	}
	e, ok := g.Extension().(*Editor)
	return e, ok
}

// Grid returns the grid the editor is attached to.
func (e *Editor) Grid() grid.Grid { return e.grid }

// Session returns the editor's edit session.
func (e *Editor) Session() *EditSession { return e.session }

// Tracker returns the editor's dirty tracker.
func (e *Editor) Tracker() *DirtyTracker { return e.tracker }

// Fields returns the id, status and deleted field names in use.
func (e *Editor) Fields() model.Fields { return e.fields }

// Subscribe registers a listener for RowSaved notifications.
// Listeners run synchronously on the event loop and must not subscribe further
// listeners themselves.
func (e *Editor) Subscribe(f func(RowSaved)) {
	e.events.On(rowSavedEvent, func(args ...interface{}) {
		if ev, ok := args[0].(RowSaved); ok {
			f(ev)
		}
	})
}

// Status returns the lifecycle status of the row at the given index.
func (e *Editor) Status(rowIndex int) (model.RowStatus, bool) {
	row, ok := e.grid.Row(rowIndex)
	if !ok {
		return model.StatusDraft, false
	}
	return e.status(row), true
}

// CanEdit reports whether the given cell may currently be edited.
func (e *Editor) CanEdit(rowIndex, column int) bool {
	row, ok := e.grid.Row(rowIndex)
	if !ok || column < 0 || column >= len(e.columns) {
		return false
	}
	return model.CanEdit(e.columns[column], row.CellOverride(column), row.RowOverride(), e.status(row))
}

// Delete deletes the row at the given index, subject to the status guards:
// locked and published rows are left untouched, drafts are flagged deleted,
// saved and removed, never persisted rows are just removed.
func (e *Editor) Delete(rowIndex int) bool {
	return e.saver.deleteRow(rowIndex)
}

// AddRow inserts a new row and puts it into edit mode, like the new-row
// gesture.
func (e *Editor) AddRow() bool {
	return e.session.NewRow()
}

// DirtyData returns the dirty set keyed by row key.
func (e *Editor) DirtyData() map[string]model.Record {
	return e.tracker.Dirty()
}

// DirtyByIndex returns the dirty set keyed by current row index. Dirty rows
// that are no longer in the grid (deleted drafts) are left out.
func (e *Editor) DirtyByIndex() map[int]model.Record {
	result := map[int]model.Record{}
	for key, rec := range e.tracker.Dirty() {
		if row, ok := e.grid.RowByKey(key); ok {
			result[row.Index()] = rec
		}
	}
	return result
}

// DirtyKeys returns the keys of all dirty rows, sorted.
func (e *Editor) DirtyKeys() []string {
	keys := make([]string, 0, len(e.tracker.dirty))
	for k := range e.tracker.dirty {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot re-baselines the dirty tracker on the current grid contents.
func (e *Editor) Snapshot() {
	e.tracker.Snapshot()
	e.grid.Redraw()
}

// Rollback ends any edit session without saving and restores the grid to the
// baseline.
func (e *Editor) Rollback() {
	e.session.exit()
	e.tracker.Rollback()
}

// UpdateRowState re-derives the decorations of the row at the given index and
// re-evaluates whether it is dirty.
func (e *Editor) UpdateRowState(rowIndex int) bool {
	row, ok := e.grid.Row(rowIndex)
	if !ok {
		return false
	}
	e.decorate(row)
	e.tracker.Evaluate(row)
	return true
}

// LockRows sets the given rows to locked.
func (e *Editor) LockRows(rowIndices ...int) int {
	return e.setStatus(model.StatusLocked, rowIndices)
}

// UnlockRows sets the given rows to draft.
func (e *Editor) UnlockRows(rowIndices ...int) int {
	return e.setStatus(model.StatusDraft, rowIndices)
}

// PublishRows sets the given rows to published.
func (e *Editor) PublishRows(rowIndices ...int) int {
	return e.setStatus(model.StatusPublished, rowIndices)
}

// UnpublishRows takes the given rows out of publication. Unpublished rows are
// locked, not drafts.
func (e *Editor) UnpublishRows(rowIndices ...int) int {
	return e.setStatus(model.StatusLocked, rowIndices)
}

// setStatus writes the status into the given rows' data and returns how many
// rows it changed. It neither re-evaluates dirtiness nor persists.
func (e *Editor) setStatus(s model.RowStatus, rowIndices []int) int {
	n := 0
	for _, i := range rowIndices {
		row, ok := e.grid.Row(i)
		if !ok {
			log.Warn().Msgf("cannot set status of row %d, no such row", i)
			continue
		}
		rec := row.Data()
		rec[e.fields.Status] = s.Value()
		row.SetData(rec)
		e.decorate(row)
		n++
	}
	if n > 0 {
		log.Info().Msgf("set %d rows %s", n, s)
		e.grid.Redraw()
	}
	return n
}

func (e *Editor) status(row grid.Row) model.RowStatus {
	return model.Lifecycle(row.Data(), e.fields, e.tracker.HasBaseline(row.Key()))
}

// decorate re-derives the row's status decorations, keeping its editing flag.
func (e *Editor) decorate(row grid.Row) {
	d := model.Decorations(e.status(row))
	active, isActive := e.session.Row()
	d.Editing = isActive && active.Key() == row.Key()
	row.SetDecoration(d)
}

func (e *Editor) decorateAll() {
	for _, row := range e.grid.Rows() {
		e.decorate(row)
	}
}

func logResult(r SaveResult) {
	if r.Err != nil {
		log.Error().Err(r.Err).Str("row", r.Key).Msg("could not persist row")
		return
	}
	log.Debug().Str("row", r.Key).Str("id", r.Result.ID).Bool("created", r.Result.Created).Msg("persisted row")
}
