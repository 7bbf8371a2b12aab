package tableedit

import (
	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
)

const rowSavedEvent = "row-saved"

// RowSaved is published after every commit and every delete, once the row's
// data has been written back into the grid.
type RowSaved struct {
	// Index is the row's position at the time of the save.
	Index int
	Key   string
	Data  model.Record
}

// SaveResult is the outcome of a persistence call, delivered to
// Options.OnResult. It arrives on the persistence goroutine.
type SaveResult struct {
	Key    string
	Record model.Record
	Result storage.Result
	Err    error
}
