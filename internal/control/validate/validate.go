// Package validate contains form validators consulted before a row is
// committed.
package validate

import (
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/model"
)

// Validator accepts or rejects a row record about to be committed.
type Validator interface {
	Valid(rec model.Record) bool
}

// Func adapts a function to the Validator interface.
type Func func(rec model.Record) bool

// Valid calls f.
func (f Func) Valid(rec model.Record) bool { return f(rec) }

// Required validates records against column descriptors: required columns
// must be non-empty, and non-empty date and number values must parse.
type Required struct {
	Columns []model.Column
}

// Valid reports whether the record satisfies all column constraints.
func (v Required) Valid(rec model.Record) bool {
	for _, col := range v.Columns {
		text := strings.TrimSpace(rec.GetAsString(col.Data, ""))
		if text == "" {
			if col.Required {
				log.Debug().Msgf("required column '%s' is empty", col.Data)
				return false
			}
			continue
		}

		switch col.Type {
		case model.ColumnDate:
			if _, err := time.Parse(col.DateLayout(), text); err != nil {
				log.Debug().Msgf("column '%s' value '%s' is not a date of format '%s' (%s)", col.Data, text, col.DateLayout(), err.Error())
				return false
			}
		case model.ColumnNumber:
			if !isNumber(text) {
				log.Debug().Msgf("column '%s' value '%s' is not a number", col.Data, text)
				return false
			}
		case model.ColumnSelect:
			if !hasChoice(col, text) {
				log.Debug().Msgf("column '%s' value '%s' is not one of its choices", col.Data, text)
				return false
			}
		}
	}
	return true
}

// All combines validators; it is valid iff every one of them is.
func All(validators ...Validator) Validator {
	return Func(func(rec model.Record) bool {
		for _, v := range validators {
			if v != nil && !v.Valid(rec) {
				return false
			}
		}
		return true
	})
}

func isNumber(s string) bool {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	_, err := strconv.ParseFloat(cleaned, 64)
	return err == nil
}

func hasChoice(col model.Column, value string) bool {
	for _, c := range col.Options.Choices {
		if c.ID == value {
			return true
		}
	}
	return false
}
