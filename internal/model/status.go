package model

import (
	"math"
	"strconv"
	"strings"
)

// RowStatus is the lifecycle state of a row.
type RowStatus int

const (
	StatusDraft     RowStatus = 0
	StatusLocked    RowStatus = 1
	StatusPublished RowStatus = 2

	// StatusUnpersisted applies to rows that have never been saved: no id, no
	// status and no baseline entry.
	StatusUnpersisted RowStatus = -1
)

// String returns a human-readable name for the status.
func (s RowStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusLocked:
		return "locked"
	case StatusPublished:
		return "published"
	case StatusUnpersisted:
		return "unpersisted"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Value is the value stored in a record's status field for this status.
func (s RowStatus) Value() int64 { return int64(s) }

// parseStatus strictly interprets a raw status value.
// The boolean is false for absent, empty or unrecognised values.
func parseStatus(v any) (RowStatus, bool) {
	var n int64
	switch val := v.(type) {
	case int:
		n = int64(val)
	case int32:
		n = int64(val)
	case int64:
		n = val
	case uint:
		n = int64(val)
	case uint64:
		if val > math.MaxInt64 {
			return StatusDraft, false
		}
		n = int64(val)
	case float64:
		if val != math.Trunc(val) {
			return StatusDraft, false
		}
		n = int64(val)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return StatusDraft, false
		}
		n = parsed
	default:
		return StatusDraft, false
	}

	switch RowStatus(n) {
	case StatusDraft, StatusLocked, StatusPublished:
		return RowStatus(n), true
	default:
		return StatusDraft, false
	}
}

// Classify returns the status recorded in the record's status field.
// Anything that is not exactly 0, 1 or 2 is treated as a draft.
func Classify(rec Record, statusField string) RowStatus {
	s, ok := parseStatus(rec[statusField])
	if !ok {
		return StatusDraft
	}
	return s
}

// Lifecycle is Classify extended by the implicit unpersisted state, which
// applies when the record has no id, no recognised status and no baseline.
func Lifecycle(rec Record, fields Fields, hasBaseline bool) RowStatus {
	if s, ok := parseStatus(rec[fields.Status]); ok {
		return s
	}
	if _, hasID := rec.ID(fields.ID); !hasID && !hasBaseline {
		return StatusUnpersisted
	}
	return StatusDraft
}

// CanDelete reports whether a row in the given status may be deleted by the
// user. Only drafts may.
func CanDelete(s RowStatus) bool {
	return s == StatusDraft
}

// Override is an explicit per-row or per-cell editability marker, independent
// of column configuration and row status.
type Override int

const (
	OverrideNone Override = iota
	OverrideEditable
	OverrideReadOnly
)

// CanEdit decides whether a cell may be turned into an input widget.
//
// Explicit read-only markers on the cell or row always win. Locked and
// published rows are read-only unless the cell itself is explicitly marked
// editable. Otherwise the column's capability decides.
func CanEdit(col Column, cell, row Override, s RowStatus) bool {
	if cell == OverrideReadOnly || row == OverrideReadOnly {
		return false
	}
	if (s == StatusLocked || s == StatusPublished) && cell != OverrideEditable {
		return false
	}
	return col.Editable || cell == OverrideEditable
}

// Affordance is the per-row action marker rendered next to a row.
type Affordance int

const (
	AffordanceNone Affordance = iota
	AffordanceTrash
	AffordanceLock
)

// Decoration holds the render flags derived from a row's status and edit
// state.
type Decoration struct {
	Locked     bool
	Published  bool
	Editing    bool
	Affordance Affordance
}

// Decorations derives the status-dependent render flags.
// The Editing flag is not status-derived and is left unset.
func Decorations(s RowStatus) Decoration {
	switch s {
	case StatusLocked:
		return Decoration{Locked: true, Affordance: AffordanceLock}
	case StatusPublished:
		return Decoration{Published: true, Affordance: AffordanceNone}
	default:
		return Decoration{Affordance: AffordanceTrash}
	}
}

// Fields names the record fields the editor itself interprets.
type Fields struct {
	ID      string
	Status  string
	Deleted string
}

// DefaultFields returns the conventional field names.
func DefaultFields() Fields {
	return Fields{
		ID:      DefaultIDField,
		Status:  DefaultStatusField,
		Deleted: DefaultDeletedField,
	}
}
