package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
)

// WorkbookConfig configures the workbook provider.
type WorkbookConfig struct {
	FilePath  string
	SheetName string
}

// Validate checks if the configuration is valid.
func (c *WorkbookConfig) Validate() error {
	if c.FilePath == "" {
		return ErrMissingFilePath
	}
	if c.SheetName == "" {
		return ErrMissingSheetName
	}
	return nil
}

// Workbook stores rows in a spreadsheet sheet. The first row of the sheet is
// the header naming each column's record field.
type Workbook struct {
	mu     sync.Mutex
	config WorkbookConfig
	fields model.Fields
}

// NewWorkbook returns a workbook provider. The file need not exist yet.
func NewWorkbook(config WorkbookConfig, fields model.Fields) (*Workbook, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Workbook{config: config, fields: fields}, nil
}

// Load reads all non-deleted records of the sheet.
func (p *Workbook) Load(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	all, _, err := p.read()
	if err != nil {
		return nil, err
	}
	result := make([]model.Record, 0, len(all))
	for _, rec := range all {
		if storage.IsDeleted(rec, p.fields.Deleted) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

// Save updates the sheet row with the record's id, or appends the record with
// a new id if it has none.
func (p *Workbook) Save(ctx context.Context, rec model.Record) (storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	all, schema, err := p.read()
	if err != nil {
		return storage.Result{}, err
	}

	result := storage.Result{}
	rec = rec.Clone()
	if id, ok := rec.ID(p.fields.ID); ok {
		i := storage.IndexOf(all, p.fields.ID, id)
		if i < 0 {
			return storage.Result{}, fmt.Errorf("could not update record '%s' in sheet '%s' (%w)", id, p.config.SheetName, storage.ErrNotFound)
		}
		all[i] = rec
		result.ID = id
	} else {
		result.ID = storage.NextID(all, p.fields.ID)
		result.Created = true
		rec[p.fields.ID] = storage.IDValue(result.ID)
		all = append(all, rec)
	}

	if err := p.write(all, extendSchema(schema, rec, p.fields.ID)); err != nil {
		return storage.Result{}, err
	}
	result.Data = rec
	return result, nil
}

// read returns all records (deleted ones included) and the header.
func (p *Workbook) read() ([]model.Record, []string, error) {
	f, err := excelize.OpenFile(p.config.FilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Record{}, nil, nil
		}
		return nil, nil, fmt.Errorf("could not open workbook '%s' (%w)", p.config.FilePath, err)
	}
	defer f.Close()

	sheetIndex, err := f.GetSheetIndex(p.config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("could not look up sheet '%s' (%w)", p.config.SheetName, err)
	}
	if sheetIndex == -1 {
		return []model.Record{}, nil, nil
	}

	rows, err := f.GetRows(p.config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read rows of sheet '%s' (%w)", p.config.SheetName, err)
	}
	if len(rows) == 0 {
		return []model.Record{}, nil, nil
	}

	schema := rows[0]
	records := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		rec := model.Record{}
		for j, value := range row {
			if j < len(schema) && schema[j] != "" && value != "" {
				rec[schema[j]] = cellValue(value)
			}
		}
		records = append(records, rec)
	}
	return records, schema, nil
}

func (p *Workbook) write(records []model.Record, schema []string) error {
	if err := os.MkdirAll(filepath.Dir(p.config.FilePath), 0755); err != nil {
		return fmt.Errorf("could not create directory for '%s' (%w)", p.config.FilePath, err)
	}

	var f *excelize.File
	if _, err := os.Stat(p.config.FilePath); err == nil {
		f, err = excelize.OpenFile(p.config.FilePath)
		if err != nil {
			return fmt.Errorf("could not open workbook '%s' (%w)", p.config.FilePath, err)
		}
	} else {
		f = excelize.NewFile()
	}
	defer f.Close()

	sheetIndex, err := f.GetSheetIndex(p.config.SheetName)
	if err != nil {
		return fmt.Errorf("could not look up sheet '%s' (%w)", p.config.SheetName, err)
	}
	if sheetIndex == -1 {
		index, err := f.NewSheet(p.config.SheetName)
		if err != nil {
			return fmt.Errorf("could not create sheet '%s' (%w)", p.config.SheetName, err)
		}
		f.SetActiveSheet(index)
		if defaultSheet := f.GetSheetName(0); defaultSheet != p.config.SheetName {
			_ = f.DeleteSheet(defaultSheet)
		}
	}

	header := make([]any, len(schema))
	for i, col := range schema {
		header[i] = col
	}
	if err := f.SetSheetRow(p.config.SheetName, "A1", &header); err != nil {
		return fmt.Errorf("could not write header (%w)", err)
	}

	// rows are only ever updated or appended, so writing every row in place
	// leaves nothing stale behind
	for i, rec := range records {
		values := make([]any, len(schema))
		for j, col := range schema {
			if v, ok := rec[col]; ok && v != nil {
				values[j] = v
			} else {
				values[j] = ""
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("could not address row %d (%w)", i+2, err)
		}
		if err := f.SetSheetRow(p.config.SheetName, cell, &values); err != nil {
			return fmt.Errorf("could not write row %d (%w)", i+2, err)
		}
	}

	if err := f.SaveAs(p.config.FilePath); err != nil {
		return fmt.Errorf("could not save workbook '%s' (%w)", p.config.FilePath, err)
	}
	return nil
}

// extendSchema appends the record's unknown fields to the header, the id field
// first and the rest sorted.
func extendSchema(schema []string, rec model.Record, idField string) []string {
	known := map[string]bool{}
	for _, col := range schema {
		known[col] = true
	}
	result := append([]string{}, schema...)
	if !known[idField] {
		result = append(result, idField)
		known[idField] = true
	}
	var added []string
	for col := range rec {
		if !known[col] {
			added = append(added, col)
		}
	}
	sort.Strings(added)
	return append(result, added...)
}

func cellValue(value string) any {
	if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
		return intVal
	}
	if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
		return floatVal
	}
	switch value {
	case "true", "TRUE":
		return true
	case "false", "FALSE":
		return false
	}
	return value
}
