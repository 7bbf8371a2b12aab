package ui

import (
	"github.com/ja-he/rowedit/internal/input"
	"github.com/ja-he/rowedit/internal/styling"
)

// BasePane holds what every pane has: an identity, a parent to ask about
// focus, an optional input processor and an optional visibility condition.
// The ID must be assigned on construction (see GeneratePaneID).
type BasePane struct {
	ID             PaneID
	Parent         PaneQuerier
	InputProcessor input.SimpleInputProcessor
	Visible        func() bool
}

// Identify returns the pane's ID. It panics for an unassigned ID.
func (p *BasePane) Identify() PaneID {
	if p.ID == NonePaneID {
		panic("pane has not been assigned an ID")
	}
	return p.ID
}

func (p *BasePane) SetParent(parent PaneQuerier) { p.Parent = parent }

// IsVisible reports the visibility condition; without one, the pane is
// always visible.
func (p *BasePane) IsVisible() bool { return p.Visible == nil || p.Visible() }

// CapturesInput reports whether the pane's input processor captures input.
func (p *BasePane) CapturesInput() bool {
	return p.InputProcessor != nil && p.InputProcessor.CapturesInput()
}

// ProcessInput hands the key to the pane's input processor, if any.
func (p *BasePane) ProcessInput(key input.Key) bool {
	return p.InputProcessor != nil && p.InputProcessor.ProcessInput(key)
}

func (p *BasePane) GetHelp() input.Help {
	if p.InputProcessor == nil {
		return input.Help{}
	}
	return p.InputProcessor.GetHelp()
}

// LeafPane is a pane without subpanes that draws through its renderer; the
// concrete pane supplies Draw.
type LeafPane struct {
	BasePane

	Renderer   ConstrainedRenderer
	Dims       func() (x, y, w, h int)
	Stylesheet *styling.Stylesheet
}

func (p *LeafPane) Dimensions() (x, y, w, h int) { return p.Dims() }

// HasFocus reports whether the parent has focus and focusses this pane.
func (p *LeafPane) HasFocus() bool {
	return p.Parent != nil && p.Parent.HasFocus() && p.Parent.Focusses() == p.Identify()
}

// Focusses returns NonePaneID; leaves have no subpanes.
func (p *LeafPane) Focusses() PaneID { return NonePaneID }
