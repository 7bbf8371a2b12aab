package panes

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/input"
	"github.com/ja-he/rowedit/internal/ui"
)

// RootPane acts as the root UI pane, wrapping all subpanes, managing the
// render cycle, invoking the subpanes' rendering, etc.
type RootPane struct {
	ID ui.PaneID

	renderer       ui.RenderOrchestratorControl
	cursorWrangler *ui.CursorWrangler

	dimensions func() (x, y, w, h int)

	gridPane   ui.Pane
	statusPane ui.Pane
	logPane    ui.Pane
	helpPane   ui.Pane

	inputProcessor input.SimpleInputProcessor

	log zerolog.Logger
}

// Dimensions gives the dimensions (x-axis offset, y-axis offset, width,
// height) for this pane.
func (p *RootPane) Dimensions() (x, y, w, h int) {
	return p.dimensions()
}

// IsVisible returns true; the root pane is always visible.
func (p *RootPane) IsVisible() bool { return true }

// Draw draws this pane.
func (p *RootPane) Draw() {
	p.renderer.Clear()

	for _, pane := range []ui.Pane{p.gridPane, p.statusPane, p.logPane, p.helpPane} {
		if pane.IsVisible() {
			p.log.Trace().Msgf("drawing %d...", pane.Identify())
			pane.Draw()
		}
	}

	// After all drawing draw or hide the cursor, depending on what is requested
	// during the draw of subpanes.
	p.cursorWrangler.Enact()

	p.renderer.Show()
}

// CapturesInput returns whether this processor "captures" input, i.E. whether
// it ought to take priority in processing over other processors.
func (p *RootPane) CapturesInput() bool {
	if p.focussedPane().CapturesInput() {
		return true
	}
	return p.inputProcessor.CapturesInput()
}

// ProcessInput attempts to process the provided input.
// Returns whether the provided input "applied", i.E. the processor performed
// an action based on the input.
// Defers to the panes' input processor or its focussed subpanes.
func (p *RootPane) ProcessInput(key input.Key) bool {
	switch {
	case p.inputProcessor.CapturesInput():
		return p.inputProcessor.ProcessInput(key)
	case p.focussedPane().CapturesInput():
		return p.focussedPane().ProcessInput(key)
	default:
		if p.focussedPane().ProcessInput(key) {
			return true
		}
		return p.inputProcessor.ProcessInput(key)
	}
}

// Identify returns the pane's ID.
func (p *RootPane) Identify() ui.PaneID { return p.ID }

// HasFocus returns true; the root pane always has focus.
func (p *RootPane) HasFocus() bool { return true }

// Focusses returns the ID of the focussed subpane.
func (p *RootPane) Focusses() ui.PaneID { return p.focussedPane().Identify() }

// SetParent panics, the root pane has no parent.
func (p *RootPane) SetParent(ui.PaneQuerier) { panic("root set parent") }

func (p *RootPane) focussedPane() ui.Pane {
	if p.helpPane.IsVisible() {
		return p.helpPane
	}
	return p.gridPane
}

// GetHelp returns the input help map for this processor.
func (p *RootPane) GetHelp() input.Help {
	result := input.Help{}
	for k, v := range p.inputProcessor.GetHelp() {
		result[k] = v
	}
	for k, v := range p.gridPane.GetHelp() {
		result[k] = v
	}
	return result
}

// NewRootPane constructs and returns a new RootPane.
func NewRootPane(
	renderer ui.RenderOrchestratorControl,
	cursorWrangler *ui.CursorWrangler,
	dimensions func() (x, y, w, h int),
	gridPane ui.Pane,
	statusPane ui.Pane,
	logPane ui.Pane,
	helpPane ui.Pane,
	inputProcessor input.SimpleInputProcessor,
) *RootPane {
	rootPane := &RootPane{
		ID:             ui.GeneratePaneID(),
		renderer:       renderer,
		cursorWrangler: cursorWrangler,
		dimensions:     dimensions,
		gridPane:       gridPane,
		statusPane:     statusPane,
		logPane:        logPane,
		helpPane:       helpPane,
		inputProcessor: inputProcessor,
		log:            log.With().Str("component", "root-pane").Logger(),
	}

	for _, pane := range []ui.Pane{gridPane, statusPane, logPane, helpPane} {
		pane.SetParent(rootPane)
	}

	return rootPane
}
