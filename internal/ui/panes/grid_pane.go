package panes

import (
	"github.com/mattn/go-runewidth"

	"github.com/ja-he/rowedit/internal/control/edit/views"
	"github.com/ja-he/rowedit/internal/control/tableedit"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/input"
	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/styling"
	"github.com/ja-he/rowedit/internal/ui"
)

const (
	markerWidth    = 2
	minColumnWidth = 3
	maxColumnWidth = 24
	columnGap      = 1
)

// GridPane draws the grid: a header line and one line per row, with the
// editing row's cells replaced by their widgets.
type GridPane struct {
	ui.LeafPane

	editor         *tableedit.Editor
	cursor         func() (row, column int)
	cursorWrangler ui.CursorLocationRequestHandler

	offset int
}

// Draw draws the grid.
func (p *GridPane) Draw() {
	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)

	g := p.editor.Grid()
	columns := g.Columns()
	visible := VisibleColumns(columns)
	rows := g.Rows()
	widths := ColumnWidths(columns, visible, rows)

	editingRow, isEditing := p.editor.Session().Row()
	if isEditing {
		widgets := p.editor.Session().Widgets()
		for _, c := range visible {
			if view, ok := widgets.FieldView(c); ok {
				widths[c] = min(maxColumnWidth, max(widths[c], runewidth.StringWidth(views.DisplayText(view))+1))
			}
		}
	}

	// header
	p.Renderer.DrawBox(x, y, w, 1, p.Stylesheet.Header)
	colX := x + markerWidth
	for _, c := range visible {
		p.Renderer.DrawText(colX, y, widths[c], 1, p.Stylesheet.Header, runewidth.Truncate(columns[c].Name(), widths[c], "…"))
		colX += widths[c] + columnGap
	}

	cursorRow, cursorCol := p.cursor()
	bodyHeight := h - 1
	p.scrollTo(cursorRow, bodyHeight)

	cursorPlaced := false

	for line := 0; line < bodyHeight && p.offset+line < len(rows); line++ {
		row := rows[p.offset+line]
		rowY := y + 1 + line
		rec := row.Data()
		dirty := p.editor.Tracker().IsDirty(row.Key())
		rowStyle := p.Stylesheet.RowStyle(row.Decoration(), dirty)

		p.Renderer.DrawBox(x, rowY, w, 1, rowStyle)
		marker := styling.AffordanceMarker(row.Decoration())
		if dirty {
			marker += "*"
		}
		p.Renderer.DrawText(x, rowY, markerWidth, 1, rowStyle, marker)

		var widgets views.CompositeEditorView
		if isEditing && editingRow.Key() == row.Key() {
			widgets = p.editor.Session().Widgets()
		}

		colX = x + markerWidth
		for _, c := range visible {
			text := columns[c].DisplayValue(rec)
			style := rowStyle
			if widgets != nil {
				if view, hasWidget := widgets.FieldView(c); hasWidget {
					text = views.DisplayText(view)
					style = rowStyle.Underlined()
					if widgets.ActiveColumn() == c {
						style = p.Stylesheet.Widget
						if loc, ok := widgetCursor(view, colX, rowY, widths[c]); ok {
							p.cursorWrangler.Put(loc, "grid")
							cursorPlaced = true
						}
					}
				}
			} else if !isEditing && p.offset+line == cursorRow && c == cursorCol {
				style = p.Stylesheet.Cursor
			}
			p.Renderer.DrawBox(colX, rowY, widths[c], 1, style)
			p.Renderer.DrawText(colX, rowY, widths[c], 1, style, runewidth.Truncate(text, widths[c], "…"))
			colX += widths[c] + columnGap
		}
	}

	if !cursorPlaced {
		p.cursorWrangler.Delete("grid")
	}
}

// scrollTo adjusts the first drawn row so that the given row is visible.
func (p *GridPane) scrollTo(row, height int) {
	if height <= 0 {
		return
	}
	if row < p.offset {
		p.offset = row
	}
	if row >= p.offset+height {
		p.offset = row - height + 1
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// widgetCursor locates the text cursor of a text widget drawn at the given
// position. Widgets that display something other than their value (selects)
// get no text cursor.
func widgetCursor(view views.WidgetView, x, y, width int) (ui.CursorLocation, bool) {
	if _, isDisplayer := view.(views.Displayer); isDisplayer {
		return ui.CursorLocation{}, false
	}
	value := []rune(view.GetValue())
	pos := view.GetCursorPos()
	if pos > len(value) {
		pos = len(value)
	}
	offset := runewidth.StringWidth(string(value[:pos]))
	if offset >= width {
		offset = width - 1
	}
	return ui.CursorLocation{X: x + offset, Y: y}, true
}

// VisibleColumns returns the indices of the columns that are not hidden.
func VisibleColumns(columns []model.Column) []int {
	result := make([]int, 0, len(columns))
	for i, c := range columns {
		if !c.Hidden {
			result = append(result, i)
		}
	}
	return result
}

// ColumnWidths computes the display width of each visible column from its
// title and contents, within [minColumnWidth, maxColumnWidth].
func ColumnWidths(columns []model.Column, visible []int, rows []grid.Row) map[int]int {
	widths := make(map[int]int, len(visible))
	for _, c := range visible {
		widths[c] = max(minColumnWidth, runewidth.StringWidth(columns[c].Name()))
	}
	for _, row := range rows {
		rec := row.Data()
		for _, c := range visible {
			widths[c] = max(widths[c], runewidth.StringWidth(columns[c].DisplayValue(rec)))
		}
	}
	for c := range widths {
		widths[c] = min(widths[c], maxColumnWidth)
	}
	return widths
}

// NewGridPane constructs and returns a new GridPane.
func NewGridPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	editor *tableedit.Editor,
	cursor func() (row, column int),
	cursorWrangler ui.CursorLocationRequestHandler,
	inputProcessor input.SimpleInputProcessor,
) *GridPane {
	return &GridPane{
		LeafPane: ui.LeafPane{
			BasePane: ui.BasePane{
				ID:             ui.GeneratePaneID(),
				InputProcessor: inputProcessor,
			},
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		editor:         editor,
		cursor:         cursor,
		cursorWrangler: cursorWrangler,
	}
}
