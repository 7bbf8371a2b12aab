package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/rowedit/internal/control/tableedit"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/model"
)

// DirtyCommand reports which rows of a data file differ from a baseline file.
type DirtyCommand struct {
	Baseline string `short:"b" long:"baseline" required:"true" description:"the file holding the baseline rows" value-name:"<file>"`
	Data     string `short:"d" long:"data" required:"true" description:"the file holding the current rows" value-name:"<file>"`
}

// dirtyEntry is one dirty row as reported.
type dirtyEntry struct {
	Row    int          `yaml:"row"`
	Status string       `yaml:"status"`
	Data   model.Record `yaml:"data"`
}

func (command *DirtyCommand) Execute(args []string) error {
	cfg, err := loadConfig(themeFromFlag(""))
	if err != nil {
		return err
	}
	columns, err := cfg.ModelColumns()
	if err != nil {
		return fmt.Errorf("invalid column configuration (%w)", err)
	}
	fields := cfg.Fields.ToModel()

	load := func(path string) ([]model.Record, error) {
		source, err := openSource(cfg, path, fields)
		if err != nil {
			return nil, fmt.Errorf("could not open '%s' (%w)", path, err)
		}
		return source.Load(context.Background())
	}
	baseline, err := load(command.Baseline)
	if err != nil {
		return err
	}
	current, err := load(command.Data)
	if err != nil {
		return err
	}

	entries, err := diffRecords(columns, fields, baseline, current)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("could not render dirty rows (%w)", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

// diffRecords baselines an editor on the baseline records, replays the
// current records over it, matching rows by id, and returns the dirty rows.
// Current records without a matching baseline row are appended.
func diffRecords(columns []model.Column, fields model.Fields, baseline, current []model.Record) ([]dirtyEntry, error) {
	table := grid.NewTable(columns, baseline)
	editor, err := tableedit.New(table, tableedit.Options{Fields: fields})
	if err != nil {
		return nil, err
	}

	byID := map[string]grid.Row{}
	for _, row := range table.Rows() {
		if id, ok := row.Data().ID(fields.ID); ok {
			byID[id] = row
		}
	}

	for i, rec := range current {
		row, ok := grid.Row(nil), false
		if id, hasID := rec.ID(fields.ID); hasID {
			row, ok = byID[id]
		} else if i < len(baseline) {
			if _, baselineHasID := baseline[i].ID(fields.ID); !baselineHasID {
				row, ok = table.Row(i)
			}
		}
		if !ok {
			row = table.Add(rec)
		} else {
			row.SetData(rec)
		}
		editor.UpdateRowState(row.Index())
	}

	dirty := editor.DirtyByIndex()
	indices := make([]int, 0, len(dirty))
	for i := range dirty {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	entries := make([]dirtyEntry, 0, len(indices))
	for _, i := range indices {
		status, _ := editor.Status(i)
		entries = append(entries, dirtyEntry{Row: i, Status: status.String(), Data: dirty[i]})
	}
	return entries, nil
}
