package providers

import (
	"context"
	"sync"

	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
)

// Memory keeps records in memory and records every save.
type Memory struct {
	mutex sync.Mutex

	fields  model.Fields
	records []model.Record
	saves   []model.Record

	// Err, if set, is returned by every Save.
	Err error
}

// NewMemory returns a memory provider holding copies of the given records.
func NewMemory(fields model.Fields, records ...model.Record) *Memory {
	m := &Memory{fields: fields}
	for _, rec := range records {
		m.records = append(m.records, rec.Clone())
	}
	return m
}

// Load returns copies of all non-deleted records.
func (m *Memory) Load(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := make([]model.Record, 0, len(m.records))
	for _, rec := range m.records {
		if !storage.IsDeleted(rec, m.fields.Deleted) {
			result = append(result, rec.Clone())
		}
	}
	return result, nil
}

// Save records the record and upserts it.
func (m *Memory) Save(ctx context.Context, rec model.Record) (storage.Result, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.saves = append(m.saves, rec.Clone())
	if m.Err != nil {
		return storage.Result{}, m.Err
	}
	if err := ctx.Err(); err != nil {
		return storage.Result{}, err
	}

	rec = rec.Clone()
	if id, ok := rec.ID(m.fields.ID); ok {
		if i := storage.IndexOf(m.records, m.fields.ID, id); i >= 0 {
			m.records[i] = rec
		} else {
			m.records = append(m.records, rec)
		}
		return storage.Result{ID: id, Data: rec.Clone()}, nil
	}
	id := storage.NextID(m.records, m.fields.ID)
	rec[m.fields.ID] = storage.IDValue(id)
	m.records = append(m.records, rec)
	return storage.Result{ID: id, Created: true, Data: rec.Clone()}, nil
}

// Saves returns copies of every record passed to Save, in order.
func (m *Memory) Saves() []model.Record {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	result := make([]model.Record, len(m.saves))
	for i, rec := range m.saves {
		result[i] = rec.Clone()
	}
	return result
}
