package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnType is the declared input type of a column.
type ColumnType string

const (
	ColumnText   ColumnType = "text"
	ColumnSelect ColumnType = "select"
	ColumnDate   ColumnType = "date"
	ColumnNumber ColumnType = "number"
)

// ErrInvalidColumn is returned for column descriptors that fail validation.
var ErrInvalidColumn = errors.New("invalid column descriptor")

// Column describes one grid column: where its data lives in a Record, whether
// it may be edited and which kind of widget edits it.
type Column struct {
	Data     string
	Title    string
	Editable bool
	Type     ColumnType
	Options  ColumnOptions
	Default  any
	Hidden   bool
	Required bool
}

// ColumnOptions holds the per-type widget options of a column.
type ColumnOptions struct {
	// Choices for select columns.
	Choices []Choice
	// Format for date columns, e.g. "yyyy/mm/dd".
	Format string
	// Placeholder shown by empty widgets.
	Placeholder string
}

// Choice is a single option of a select column.
type Choice struct {
	ID   string
	Text string
}

// Name returns the column title, falling back to the data key.
func (c Column) Name() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Data
}

// Validate checks a single column descriptor.
func (c Column) Validate() error {
	if c.Data == "" {
		return fmt.Errorf("%w: column '%s' has no data key", ErrInvalidColumn, c.Title)
	}
	switch c.Type {
	case ColumnText, ColumnDate, ColumnNumber:
	case ColumnSelect:
		if len(c.Options.Choices) == 0 {
			return fmt.Errorf("%w: select column '%s' has no choices", ErrInvalidColumn, c.Data)
		}
	default:
		return fmt.Errorf("%w: column '%s' has unknown type '%s'", ErrInvalidColumn, c.Data, c.Type)
	}
	return nil
}

// ValidateColumns checks all descriptors and that their data keys are unique.
func ValidateColumns(columns []Column) error {
	seen := map[string]bool{}
	for _, c := range columns {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Data] {
			return fmt.Errorf("%w: duplicate data key '%s'", ErrInvalidColumn, c.Data)
		}
		seen[c.Data] = true
	}
	return nil
}

// ParseValue converts widget text into a record value for this column.
//
// Empty text becomes the empty string. Number columns keep integers as int64
// and other numbers as float64; text that does not parse stays a string.
func (c Column) ParseValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	switch c.Type {
	case ColumnNumber:
		cleaned := strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
		if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
			return v
		}
		if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
			if v == math.Trunc(v) && math.Abs(v) < math.MaxInt64 {
				return int64(v)
			}
			return v
		}
		return s
	default:
		return s
	}
}

// FormatValue renders a record value as widget/display text.
func (c Column) FormatValue(rec Record) string {
	return rec.GetAsString(c.Data, "")
}

// DisplayValue renders a record value for display. Select columns show the
// text of the chosen option.
func (c Column) DisplayValue(rec Record) string {
	v := c.FormatValue(rec)
	if c.Type == ColumnSelect {
		for _, choice := range c.Options.Choices {
			if choice.ID == v {
				return choice.Text
			}
		}
	}
	return v
}

// DateLayout converts the column's date format (e.g. "yyyy/mm/dd") into a Go
// time layout. An empty format yields the ISO date layout.
func (c Column) DateLayout() string {
	format := c.Options.Format
	if format == "" {
		return "2006-01-02"
	}
	replacer := strings.NewReplacer(
		"yyyy", "2006",
		"yy", "06",
		"mm", "01",
		"dd", "02",
		"m", "1",
		"d", "2",
	)
	return replacer.Replace(strings.ToLower(format))
}
