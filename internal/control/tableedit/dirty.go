package tableedit

import (
	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/model"
)

type baselineEntry struct {
	key  string
	data model.Record
}

// DirtyTracker keeps the baseline snapshot of all rows and the set of rows
// whose current data differs from it.
//
// Rows are identified by their grid key, so entries survive index shifts from
// inserts and removals.
type DirtyTracker struct {
	grid grid.Grid

	baseline []baselineEntry
	byKey    map[string]int
	dirty    map[string]model.Record
}

func newDirtyTracker(g grid.Grid) *DirtyTracker {
	d := &DirtyTracker{grid: g}
	d.Snapshot()
	return d
}

// Snapshot deep-copies all current rows into the baseline and clears the dirty
// set.
func (d *DirtyTracker) Snapshot() {
	rows := d.grid.Rows()
	d.baseline = make([]baselineEntry, len(rows))
	d.byKey = make(map[string]int, len(rows))
	for i, r := range rows {
		d.baseline[i] = baselineEntry{key: r.Key(), data: r.Data()}
		d.byKey[r.Key()] = i
	}
	d.dirty = map[string]model.Record{}
	log.Debug().Msgf("took snapshot of %d rows", len(rows))
}

// Evaluate compares the row's current data to its baseline entry and updates
// the dirty set accordingly. A row without baseline entry is always dirty.
func (d *DirtyTracker) Evaluate(row grid.Row) {
	current := row.Data()
	if base, ok := d.Baseline(row.Key()); ok && model.Equal(current, base) {
		delete(d.dirty, row.Key())
		return
	}
	d.dirty[row.Key()] = current
}

// Dirty returns a copy of the dirty set, keyed by row key.
func (d *DirtyTracker) Dirty() map[string]model.Record {
	result := make(map[string]model.Record, len(d.dirty))
	for k, v := range d.dirty {
		result[k] = v.Clone()
	}
	return result
}

// IsDirty reports whether the row with the given key is in the dirty set.
func (d *DirtyTracker) IsDirty(key string) bool {
	_, ok := d.dirty[key]
	return ok
}

// Baseline returns a copy of the baseline entry of the row with the given key.
func (d *DirtyTracker) Baseline(key string) (model.Record, bool) {
	i, ok := d.byKey[key]
	if !ok {
		return nil, false
	}
	return d.baseline[i].data.Clone(), true
}

// HasBaseline reports whether the row with the given key was present at the
// last snapshot.
func (d *DirtyTracker) HasBaseline(key string) bool {
	_, ok := d.byKey[key]
	return ok
}

// Forget drops the dirty entry of the row with the given key.
func (d *DirtyTracker) Forget(key string) {
	delete(d.dirty, key)
}

// Rollback replaces all rows of the grid with the baseline records, in order,
// clears the dirty set and redraws.
func (d *DirtyTracker) Rollback() {
	for _, r := range d.grid.Rows() {
		r.Remove()
	}
	d.byKey = make(map[string]int, len(d.baseline))
	for i, entry := range d.baseline {
		r := d.grid.Add(entry.data)
		d.baseline[i].key = r.Key()
		d.byKey[r.Key()] = i
	}
	d.dirty = map[string]model.Record{}
	log.Debug().Msgf("rolled back to %d baseline rows", len(d.baseline))
	d.grid.Redraw()
}
