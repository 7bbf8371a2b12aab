package editors

import (
	"github.com/ja-he/rowedit/internal/control/edit"
	"github.com/ja-he/rowedit/internal/model"
)

// Template is the default cell template: select columns get a SelectEditor,
// everything else a StringEditor.
var Template edit.CellTemplate = edit.CellTemplateFunc(BuildEditable)

// BuildEditable builds the widget for a cell of the given column.
func BuildEditable(col model.Column, text string) edit.Widget {
	switch col.Type {
	case model.ColumnSelect:
		return NewSelectEditor(col.Data, col.Options.Choices, text)
	default:
		typ := string(col.Type)
		if typ == "" {
			typ = string(model.ColumnText)
		}
		return NewStringEditor(col.Data, typ, text)
	}
}
