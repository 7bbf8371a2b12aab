package providers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
)

// File stores rows as a YAML sequence of mappings in a single file.
type File struct {
	mutex sync.Mutex

	path   string
	fields model.Fields
}

// NewFile returns a file provider for the given path.
// The file need not exist yet.
func NewFile(path string, fields model.Fields) (*File, error) {
	if path == "" {
		return nil, ErrMissingFilePath
	}
	return &File{path: path, fields: fields}, nil
}

// Path returns the path of the backing file.
func (p *File) Path() string { return p.path }

// Load reads all non-deleted records.
func (p *File) Load(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	all, err := p.readFromDisk()
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

// Save updates the record with the same id, or appends the record with a new
// id if it has none.
func (p *File) Save(ctx context.Context, rec model.Record) (storage.Result, error) {
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	all, err := p.readFromDisk()
	if err != nil {
		return storage.Result{}, err
	}

	result := storage.Result{}
	rec = rec.Clone()
	if id, ok := rec.ID(p.fields.ID); ok {
		i := storage.IndexOf(all, p.fields.ID, id)
		if i < 0 {
			return storage.Result{}, fmt.Errorf("could not update record '%s' in '%s' (%w)", id, p.path, storage.ErrNotFound)
		}
		all[i] = rec
		result.ID = id
	} else {
		result.ID = storage.NextID(all, p.fields.ID)
		result.Created = true
		rec[p.fields.ID] = storage.IDValue(result.ID)
		all = append(all, rec)
	}

	if err := p.writeToDisk(all); err != nil {
		return storage.Result{}, err
	}
	result.Data = rec
	return result, nil
}

// Replace overwrites the file with the given records.
func (p *File) Replace(ctx context.Context, records []model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.writeToDisk(records)
}

func (p *File) readFromDisk() ([]model.Record, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("could not read file '%s' from disk (%w)", p.path, err)
	}

	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not parse rows in '%s' (%w)", p.path, err)
	}
	records := make([]model.Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, normalize(model.Record(r)))
	}
	return records, nil
}

func (p *File) writeToDisk(records []model.Record) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("could not create directory for '%s' (%w)", p.path, err)
	}

	raw := make([]map[string]any, len(records))
	for i, r := range records {
		raw[i] = map[string]any(r)
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("could not serialize rows (%w)", err)
	}

	f, err := os.OpenFile(p.path, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("could not open file '%s' (%w)", p.path, err)
	}
	defer f.Close()

	writer := bufio.NewWriter(f)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("could not write file '%s' (%w)", p.path, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("could not write file '%s' (%w)", p.path, err)
	}
	return nil
}

// normalize converts YAML integer values to int64, matching what the editor
// itself writes into records.
func normalize(rec model.Record) model.Record {
	for k, v := range rec {
		switch val := v.(type) {
		case int:
			rec[k] = int64(val)
		case map[string]any:
			rec[k] = map[string]any(normalize(model.Record(val)))
		}
	}
	return rec
}
