package styling

import (
	"fmt"

	"github.com/ja-he/rowedit/internal/config"
	"github.com/ja-he/rowedit/internal/model"
)

// Stylesheet represents all styles used by the application for rendering.
type Stylesheet struct {
	Normal    DrawStyling
	Header    DrawStyling
	Cursor    DrawStyling
	Editing   DrawStyling
	Widget    DrawStyling
	Locked    DrawStyling
	Published DrawStyling
	Dirty     DrawStyling

	Status DrawStyling

	LogEntryTypeError DrawStyling
	LogEntryTypeWarn  DrawStyling
	LogEntryTypeInfo  DrawStyling

	Help DrawStyling
}

// NewStylesheetFromConfig constructs a new stylesheet from a given config
// stylesheet.
func NewStylesheetFromConfig(c config.Stylesheet) (*Stylesheet, error) {
	stylesheet := Stylesheet{}

	for _, s := range []struct {
		name   string
		target *DrawStyling
		source config.Styling
	}{
		{"normal", &stylesheet.Normal, c.Normal},
		{"header", &stylesheet.Header, c.Header},
		{"cursor", &stylesheet.Cursor, c.Cursor},
		{"editing", &stylesheet.Editing, c.Editing},
		{"widget", &stylesheet.Widget, c.Widget},
		{"locked", &stylesheet.Locked, c.Locked},
		{"published", &stylesheet.Published, c.Published},
		{"dirty", &stylesheet.Dirty, c.Dirty},
		{"status", &stylesheet.Status, c.Status},
		{"log-error", &stylesheet.LogEntryTypeError, c.LogError},
		{"log-warn", &stylesheet.LogEntryTypeWarn, c.LogWarn},
		{"log-info", &stylesheet.LogEntryTypeInfo, c.LogInfo},
		{"help", &stylesheet.Help, c.Help},
	} {
		styling, err := StyleFromConfig(s.source)
		if err != nil {
			return nil, fmt.Errorf("invalid '%s' style (%w)", s.name, err)
		}
		*s.target = styling
	}

	return &stylesheet, nil
}

// RowStyle returns the styling a row with the given decoration is drawn in.
// Being edited takes precedence over status; dirty rows are italicized.
func (s *Stylesheet) RowStyle(d model.Decoration, dirty bool) DrawStyling {
	var result DrawStyling
	switch {
	case d.Editing:
		result = s.Editing
	case d.Locked:
		result = s.Locked
	case d.Published:
		result = s.Published
	case dirty:
		result = s.Dirty
	default:
		result = s.Normal
	}
	if dirty {
		result = result.Italicized()
	}
	return result
}

// AffordanceMarker returns the per-row action marker for the decoration.
func AffordanceMarker(d model.Decoration) string {
	switch d.Affordance {
	case model.AffordanceTrash:
		return "x"
	case model.AffordanceLock:
		return "#"
	default:
		return " "
	}
}
