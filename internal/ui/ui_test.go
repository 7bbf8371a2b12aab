package ui_test

import (
	"testing"

	"github.com/ja-he/rowedit/internal/styling"
	"github.com/ja-he/rowedit/internal/ui"
)

type drawCall struct {
	x, y, w, h int
	text       string
}

type recordingRenderer struct {
	boxes []drawCall
	texts []drawCall
}

func (r *recordingRenderer) DrawBox(x, y, w, h int, _ styling.DrawStyling) {
	r.boxes = append(r.boxes, drawCall{x, y, w, h, ""})
}
func (r *recordingRenderer) DrawText(x, y, w, h int, _ styling.DrawStyling, text string) {
	r.texts = append(r.texts, drawCall{x, y, w, h, text})
}

func TestConstrainedRenderer(t *testing.T) {
	t.Run("inside is unchanged", func(t *testing.T) {
		r := &recordingRenderer{}
		cr := ui.NewConstrainedRenderer(r, func() (int, int, int, int) { return 2, 2, 10, 5 })
		cr.DrawText(3, 3, 4, 1, nil, "abcd")
		if len(r.texts) != 1 || r.texts[0] != (drawCall{3, 3, 4, 1, "abcd"}) {
			t.Errorf("unexpected draw calls %v", r.texts)
		}
	})

	t.Run("right and bottom overflow is cut", func(t *testing.T) {
		r := &recordingRenderer{}
		cr := ui.NewConstrainedRenderer(r, func() (int, int, int, int) { return 0, 0, 10, 5 })
		cr.DrawBox(8, 4, 10, 10, nil)
		if len(r.boxes) != 1 || r.boxes[0] != (drawCall{8, 4, 2, 1, ""}) {
			t.Errorf("unexpected draw calls %v", r.boxes)
		}
	})

	t.Run("left overflow drops leading text", func(t *testing.T) {
		r := &recordingRenderer{}
		cr := ui.NewConstrainedRenderer(r, func() (int, int, int, int) { return 5, 0, 10, 5 })
		cr.DrawText(2, 0, 8, 1, nil, "abcdefgh")
		if len(r.texts) != 1 || r.texts[0] != (drawCall{5, 0, 5, 1, "defgh"}) {
			t.Errorf("unexpected draw calls %v", r.texts)
		}
	})

	t.Run("fully outside draws nothing", func(t *testing.T) {
		r := &recordingRenderer{}
		cr := ui.NewConstrainedRenderer(r, func() (int, int, int, int) { return 0, 0, 10, 5 })
		cr.DrawText(20, 0, 3, 1, nil, "abc")
		cr.DrawBox(0, 10, 3, 1, nil)
		if len(r.texts)+len(r.boxes) != 0 {
			t.Errorf("expected no draw calls, got %v %v", r.texts, r.boxes)
		}
	})
}

type fakeCursorController struct {
	shown   bool
	x, y    int
	hiddens int
}

func (c *fakeCursorController) ShowCursor(x, y int) { c.shown, c.x, c.y = true, x, y }
func (c *fakeCursorController) HideCursor()         { c.shown = false; c.hiddens++ }

func TestCursorWrangler(t *testing.T) {
	cc := &fakeCursorController{}
	w := ui.NewCursorWrangler(cc)

	w.Enact()
	if cc.shown {
		t.Error("cursor shown without request")
	}

	w.Put(ui.CursorLocation{X: 3, Y: 4}, "grid")
	w.Enact()
	if !cc.shown || cc.x != 3 || cc.y != 4 {
		t.Errorf("cursor not placed as requested: %+v", cc)
	}

	w.Delete("someone-else")
	if _, ok := w.Location(); !ok {
		t.Error("foreign delete removed the cursor")
	}

	w.Delete("grid")
	w.Enact()
	if cc.shown {
		t.Error("cursor still shown after delete")
	}
}
