// Package ui holds the pane abstractions of the terminal front end: panes,
// constrained rendering and cursor placement.
package ui

import (
	"fmt"

	"github.com/ja-he/rowedit/internal/input"
	"github.com/ja-he/rowedit/internal/styling"
)

// Pane is a UI pane.
//
// Panes form a tree: any pane can be asked whether it HasFocus, and what it
// Focusses; generally, to answer whether a pane HasFocus, it would consult its
// parent whether the parent HasFocus and which pane it Focusses.
//
// A pane should generally have a parent, which can be set with SetParent; an
// exception would be the root pane of the tree.
type Pane interface {
	Draw()
	IsVisible() bool
	Dimensions() (x, y, w, h int)

	input.SimpleInputProcessor

	PaneQuerier

	SetParent(PaneQuerier)
}

// PaneQuerier are the querying member functions of a pane.
//
// E.g. letting a child access its parent, this allows limiting the childs
// access.
type PaneQuerier interface {
	HasFocus() bool
	Focusses() PaneID
	IsVisible() bool
	Identify() PaneID
}

// PaneID uniquely identifies a pane. No two panes must ever share a PaneID.
type PaneID uint

// NonePaneID represents "no pane" or "invalid pane". Panes are guaranteed to
// be assigned different IDs by GeneratePaneID.
const NonePaneID PaneID = 0

var id = NonePaneID

// GeneratePaneID generates a new unique pane ID.
var GeneratePaneID = func() PaneID {
	id++
	return id
}

// Renderer draws boxes and text.
type Renderer interface {
	// Draw a box of the indicated dimensions at the indicated location but
	// limited to the constraint (bounding box) of the renderer.
	DrawBox(x, y, w, h int, style styling.DrawStyling)
	// Draw text within the box described by the given coordinates and
	// dimensions, but limited to the constraint (bounding box) of the renderer.
	DrawText(x, y, w, h int, style styling.DrawStyling, text string)
}

// ConstrainedRenderer is a renderer that is assumed to be constrained to
// certain dimensions, i.E. it does not draw outside of them.
type ConstrainedRenderer interface {
	Renderer

	// Dimensions returns the dimensions of the renderer.
	Dimensions() (x, y, w, h int)
}

// RenderOrchestratorControl is the set of functions of a renderer (e.g.,
// tcell.Screen) that the root pane needs to use to have full control over a
// render cycle. Other panes should not need this access to the renderer.
type RenderOrchestratorControl interface {
	Clear()
	Show()
}

// TextCursorController offers control of a text cursor, such as for a terminal.
type TextCursorController interface {
	HideCursor()
	ShowCursor(x, y int)
}

// CursorLocation is a position on the screen.
type CursorLocation struct {
	X int
	Y int
}

func (l CursorLocation) String() string {
	return fmt.Sprintf("%d:%d", l.X, l.Y)
}
