// Package storage defines where row records are persisted to and loaded from.
package storage

import (
	"context"
	"errors"

	"github.com/ja-he/rowedit/internal/model"
)

// ErrNotFound is returned by providers asked to update a record id they do not
// know.
var ErrNotFound = errors.New("record not found")

// Persistence saves single row records.
//
// A record carries its id when it updates an existing row and omits it when it
// creates one. Implementations may be slow and are called off the UI event
// loop; failures are reported, never retried by the caller.
type Persistence interface {
	Save(ctx context.Context, rec model.Record) (Result, error)
}

// Source loads the initial set of row records.
type Source interface {
	Load(ctx context.Context) ([]model.Record, error)
}

// Store is a provider that is both a Source and a Persistence.
type Store interface {
	Source
	Persistence
}

// Result describes the outcome of a successful save.
type Result struct {
	// ID is the id of the saved record; for a create it is the newly assigned
	// one.
	ID string
	// Created reports whether the save created a new record.
	Created bool
	// Data is the record as the backend returned it, if it returned one.
	Data model.Record
}

// PersistenceFunc adapts a function to the Persistence interface.
type PersistenceFunc func(ctx context.Context, rec model.Record) (Result, error)

// Save calls f.
func (f PersistenceFunc) Save(ctx context.Context, rec model.Record) (Result, error) {
	return f(ctx, rec)
}
