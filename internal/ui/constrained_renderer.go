package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/ja-he/rowedit/internal/styling"
)

// CR is a constrained renderer for a TUI.
// It only allows rendering using the underlying screen handler within the set
// dimension constraint.
//
// Non-conforming rendering requests are corrected to be within the bounds.
type CR struct {
	renderer Renderer

	constraint func() (x, y, w, h int)
}

// NewConstrainedRenderer returns a renderer drawing through the given one,
// but only within the dimensions the constraint returns.
func NewConstrainedRenderer(
	renderer Renderer,
	constraint func() (x, y, w, h int),
) *CR {
	return &CR{
		renderer:   renderer,
		constraint: constraint,
	}
}

// Dimensions returns the current constraint.
func (r *CR) Dimensions() (x, y, w, h int) {
	return r.constraint()
}

// DrawText draws the given text, within the given dimensions, constrained by
// the set constraint, in the given style.
// Text that starts left of the constraint loses the runes that fall outside.
func (r *CR) DrawText(x, y, w, h int, styling styling.DrawStyling, text string) {
	xConstraint, _, _, _ := r.constraint()
	if x < xConstraint {
		text = dropDisplayWidth(text, xConstraint-x)
	}

	cx, cy, cw, ch := r.constrain(x, y, w, h)
	if cw <= 0 || ch <= 0 {
		return
	}

	r.renderer.DrawText(cx, cy, cw, ch, styling, text)
}

// DrawBox draws a box of the given dimensions, constrained by the set
// constraint, in the given style.
func (r *CR) DrawBox(x, y, w, h int, sty styling.DrawStyling) {
	cx, cy, cw, ch := r.constrain(x, y, w, h)
	if cw <= 0 || ch <= 0 {
		return
	}
	r.renderer.DrawBox(cx, cy, cw, ch, sty)
}

func (r *CR) constrain(rawX, rawY, rawW, rawH int) (constrainedX, constrainedY, constrainedW, constrainedH int) {
	xConstraint, yConstraint, wConstraint, hConstraint := r.constraint()

	// ensure x, y in bounds, shorten width,height if x,y needed to be moved
	if rawX < xConstraint {
		constrainedX = xConstraint
		rawW -= xConstraint - rawX
	} else {
		constrainedX = rawX
	}
	if rawY < yConstraint {
		constrainedY = yConstraint
		rawH -= yConstraint - rawY
	} else {
		constrainedY = rawY
	}

	maxAllowableW := wConstraint - (constrainedX - xConstraint)
	maxAllowableH := hConstraint - (constrainedY - yConstraint)

	constrainedW = min(rawW, maxAllowableW)
	constrainedH = min(rawH, maxAllowableH)

	return constrainedX, constrainedY, constrainedW, constrainedH
}

// dropDisplayWidth removes leading runes until at least the given display
// width is gone.
func dropDisplayWidth(text string, width int) string {
	dropped := 0
	for i, r := range text {
		if dropped >= width {
			return text[i:]
		}
		dropped += runewidth.RuneWidth(r)
	}
	return ""
}
