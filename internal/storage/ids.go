package storage

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/ja-he/rowedit/internal/model"
)

// NextID returns an id for a new record among the given ones.
// If all existing ids are integers it continues their sequence, otherwise it
// returns a fresh uuid.
func NextID(existing []model.Record, idField string) string {
	var highest int64
	for _, rec := range existing {
		id, ok := rec.ID(idField)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return uuid.NewString()
		}
		if n > highest {
			highest = n
		}
	}
	return strconv.FormatInt(highest+1, 10)
}

// IsDeleted reports whether the record carries a truthy deleted flag.
func IsDeleted(rec model.Record, deletedField string) bool {
	switch v := rec[deletedField].(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		s := rec.GetAsString(deletedField, "")
		return s != "" && s != "0" && s != "false"
	}
}

// IndexOf returns the position of the record with the given id, or -1.
func IndexOf(records []model.Record, idField, id string) int {
	for i, rec := range records {
		if recID, ok := rec.ID(idField); ok && recID == id {
			return i
		}
	}
	return -1
}

// IDValue returns the record value for an id produced by NextID: integers for
// sequential ids, the string itself otherwise.
func IDValue(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
