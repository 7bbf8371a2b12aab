package panes_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/rowedit/internal/config"
	"github.com/ja-he/rowedit/internal/control/edit"
	"github.com/ja-he/rowedit/internal/control/tableedit"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/input"
	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/potatolog"
	"github.com/ja-he/rowedit/internal/styling"
	"github.com/ja-he/rowedit/internal/ui"
	"github.com/ja-he/rowedit/internal/ui/panes"
)

type text struct {
	x, y int
	s    string
}

type recordingRenderer struct {
	w, h  int
	texts []text
}

func (r *recordingRenderer) Dimensions() (x, y, w, h int) { return 0, 0, r.w, r.h }
func (r *recordingRenderer) DrawBox(x, y, w, h int, _ styling.DrawStyling) {}
func (r *recordingRenderer) DrawText(x, y, w, h int, _ styling.DrawStyling, s string) {
	r.texts = append(r.texts, text{x, y, s})
}

// line returns everything drawn on the given line, in draw order.
func (r *recordingRenderer) line(y int) string {
	parts := []string{}
	for _, t := range r.texts {
		if t.y == y && strings.TrimSpace(t.s) != "" {
			parts = append(parts, strings.TrimSpace(t.s))
		}
	}
	return strings.Join(parts, "|")
}

type fakeCursorController struct{}

func (fakeCursorController) ShowCursor(x, y int) {}
func (fakeCursorController) HideCursor()         {}

func stylesheet(t *testing.T) *styling.Stylesheet {
	t.Helper()
	s, err := styling.NewStylesheetFromConfig(config.Default(config.Light).Stylesheet)
	require.NoError(t, err)
	return s
}

func gridColumns() []model.Column {
	return []model.Column{
		{Data: "name", Title: "Name", Editable: true, Type: model.ColumnText},
		{Data: "position", Title: "Position", Editable: true, Type: model.ColumnSelect, Options: model.ColumnOptions{
			Choices: []model.Choice{{ID: "1", Text: "Accountant"}},
		}},
		{Data: "secret", Title: "Secret", Type: model.ColumnText, Hidden: true},
	}
}

func TestGridPane(t *testing.T) {
	setup := func(t *testing.T, records []model.Record, h int, cursorRow int) (*recordingRenderer, *panes.GridPane, *tableedit.Editor, *ui.CursorWrangler) {
		tbl := grid.NewTable(gridColumns(), records)
		e, err := tableedit.New(tbl, tableedit.Options{})
		require.NoError(t, err)
		r := &recordingRenderer{w: 60, h: h}
		wrangler := ui.NewCursorWrangler(fakeCursorController{})
		p := panes.NewGridPane(r, r.Dimensions, stylesheet(t), e, func() (int, int) { return cursorRow, 0 }, wrangler, input.EmptyTree())
		return r, p, e, wrangler
	}

	t.Run("header and cells", func(t *testing.T) {
		r, p, _, _ := setup(t, []model.Record{{"id": int64(1), "name": "Ann", "position": "1", "secret": "x"}}, 5, 0)
		p.Draw()
		assert.Equal(t, "Name|Position", r.line(0))
		assert.Equal(t, "x|Ann|Accountant", r.line(1))
	})

	t.Run("editing row shows widgets and places the cursor", func(t *testing.T) {
		r, p, e, wrangler := setup(t, []model.Record{{"id": int64(1), "name": "Ann", "position": "1"}}, 5, 0)
		require.True(t, e.Session().Enter(0, 0))
		p.Draw()
		assert.Equal(t, "x|Ann|<Accountant>", r.line(1))

		loc, ok := wrangler.Location()
		require.True(t, ok)
		assert.Equal(t, ui.CursorLocation{X: 2 + len("Ann"), Y: 1}, loc)

		e.Session().FocusNext()
		r.texts = nil
		p.Draw()
		_, ok = wrangler.Location()
		assert.False(t, ok, "select widgets get no text cursor")
	})

	t.Run("scrolls to the cursor row", func(t *testing.T) {
		records := []model.Record{}
		for _, name := range []string{"a0", "a1", "a2", "a3", "a4", "a5"} {
			records = append(records, model.Record{"name": name})
		}
		r, p, _, _ := setup(t, records, 4, 5)
		p.Draw()
		assert.Contains(t, r.line(3), "a5")
		assert.Contains(t, r.line(1), "a3")
	})
}

func TestColumnWidths(t *testing.T) {
	cols := gridColumns()
	tbl := grid.NewTable(cols, []model.Record{
		{"name": strings.Repeat("n", 40), "position": "1"},
	})
	widths := panes.ColumnWidths(cols, panes.VisibleColumns(cols), tbl.Rows())
	assert.Equal(t, map[int]int{0: 24, 1: len("Accountant")}, widths)
}

func TestStatusPane(t *testing.T) {
	r := &recordingRenderer{w: 80, h: 1}
	logs := &potatolog.MemoryLogReaderWriter{}
	_, _ = logs.Write([]byte(`{"level":"info","message":"committed row 0"}`))
	p := panes.NewStatusPane(r, r.Dimensions, stylesheet(t), func() panes.StatusInfo {
		return panes.StatusInfo{Mode: edit.ModeNavigate, Row: 0, Rows: 3, Column: "Name", RowStatus: "draft", DirtyCount: 2}
	}, logs)
	p.Draw()
	assert.Equal(t, "-- NAVIGATE --|1/3 Name [draft] 2 dirty|info: committed row 0", r.line(0))
}

func TestHelpPane(t *testing.T) {
	r := &recordingRenderer{w: 60, h: 10}
	p := panes.NewHelpPane(r, r.Dimensions, stylesheet(t), func() bool { return true }, func() input.Help {
		return input.Help{"q": "quit", "dd": "delete row"}
	}, nil)
	p.Draw()
	assert.Equal(t, "dd|delete row", r.line(1))
	assert.Equal(t, "q|quit", r.line(2))
}
