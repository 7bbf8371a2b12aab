package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/control/tableedit"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/storage"
)

// StatusCommand applies a bulk status operation to rows of a data file and
// persists the rows it changed.
type StatusCommand struct {
	Data   string `short:"d" long:"data" required:"true" description:"Specify the file rows are loaded from (.yaml, .json or .xlsx)" value-name:"<file>"`
	Op     string `short:"o" long:"op" required:"true" choice:"lock" choice:"unlock" choice:"publish" choice:"unpublish" description:"the status operation to apply"`
	Rows   []int  `short:"r" long:"row" description:"index of a row to apply the operation to (repeatable; all rows if omitted)"`
	DryRun bool   `short:"n" long:"dry-run" description:"do not persist the changed rows, only log them"`
}

func (command *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(themeFromFlag(""))
	if err != nil {
		return err
	}
	columns, err := cfg.ModelColumns()
	if err != nil {
		return fmt.Errorf("invalid column configuration (%w)", err)
	}
	fields := cfg.Fields.ToModel()

	source, err := openSource(cfg, command.Data, fields)
	if err != nil {
		return fmt.Errorf("could not open '%s' (%w)", command.Data, err)
	}
	records, err := source.Load(context.Background())
	if err != nil {
		return fmt.Errorf("could not load rows from '%s' (%w)", command.Data, err)
	}

	// without a configured backend, changes go back into the data file
	persistence, err := openPersistence(cfg.Persistence, command.Data, fields, command.DryRun)
	if err != nil {
		return fmt.Errorf("could not set up persistence (%w)", err)
	}
	if persistence == nil {
		persistence = source
	}

	table := grid.NewTable(columns, records)
	editor, err := tableedit.New(table, tableedit.Options{Fields: fields})
	if err != nil {
		return err
	}

	rows := command.Rows
	if len(rows) == 0 {
		for i := 0; i < table.Len(); i++ {
			rows = append(rows, i)
		}
	}

	changed, err := applyStatus(editor, command.Op, rows)
	if err != nil {
		return err
	}
	log.Info().Int("rows", len(changed)).Str("op", command.Op).Msg("applied status operation")

	return saveRows(context.Background(), persistence, editor, changed)
}

// applyStatus applies the named status operation and returns the indices of
// the rows whose data changed.
func applyStatus(editor *tableedit.Editor, op string, rows []int) ([]int, error) {
	ops := map[string]func(rowIndices ...int) int{
		"lock":      editor.LockRows,
		"unlock":    editor.UnlockRows,
		"publish":   editor.PublishRows,
		"unpublish": editor.UnpublishRows,
	}
	apply, ok := ops[op]
	if !ok {
		return nil, fmt.Errorf("unknown status operation '%s'", op)
	}
	apply(rows...)

	changed := []int{}
	for _, i := range rows {
		if editor.UpdateRowState(i) && editor.Tracker().IsDirty(rowKey(editor.Grid(), i)) {
			changed = append(changed, i)
		}
	}
	return changed, nil
}

func rowKey(g grid.Grid, index int) string {
	row, ok := g.Row(index)
	if !ok {
		return ""
	}
	return row.Key()
}

// saveRows persists the given rows one after the other and re-baselines the
// editor on success.
func saveRows(ctx context.Context, p storage.Persistence, editor *tableedit.Editor, rows []int) error {
	for _, i := range rows {
		row, ok := editor.Grid().Row(i)
		if !ok {
			continue
		}
		res, err := p.Save(ctx, row.Data())
		if err != nil {
			return fmt.Errorf("could not save row %d (%w)", i, err)
		}
		log.Info().Int("row", i).Str("id", res.ID).Msg("saved row")
	}
	editor.Snapshot()
	return nil
}
