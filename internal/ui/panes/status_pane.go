package panes

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/ja-he/rowedit/internal/control/edit"
	"github.com/ja-he/rowedit/internal/potatolog"
	"github.com/ja-he/rowedit/internal/styling"
	"github.com/ja-he/rowedit/internal/ui"
)

// StatusInfo is what the status bar shows.
type StatusInfo struct {
	Mode       edit.Mode
	Row        int
	Rows       int
	Column     string
	RowStatus  string
	DirtyCount int
	// Pending is a partially typed key sequence.
	Pending string
}

// StatusPane is a status bar that displays the interaction mode, the cursor
// position, the status of the row under the cursor, the number of dirty rows
// and the most recent log message.
type StatusPane struct {
	ui.LeafPane

	info      func() StatusInfo
	logReader potatolog.LogReader
}

// Draw draws this pane.
func (p *StatusPane) Draw() {
	x, y, w, h := p.Dimensions()
	if h <= 0 {
		return
	}

	bgStyle := p.Stylesheet.Status
	bgStyleEmph := bgStyle.DefaultEmphasized()
	p.Renderer.DrawBox(x, y, w, h, bgStyle)

	info := p.info()

	modeStr := fmt.Sprintf("-- %s --", info.Mode)
	p.Renderer.DrawBox(x, y, len(modeStr)+2, 1, bgStyleEmph)
	p.Renderer.DrawText(x+1, y, len(modeStr), 1, bgStyleEmph.Bolded(), modeStr)

	position := fmt.Sprintf("%d/%d %s", info.Row+1, info.Rows, info.Column)
	if info.Rows == 0 {
		position = "0/0"
	}
	if info.RowStatus != "" {
		position += " [" + info.RowStatus + "]"
	}
	if info.DirtyCount > 0 {
		position += fmt.Sprintf(" %d dirty", info.DirtyCount)
	}
	if info.Pending != "" {
		position += " " + info.Pending
	}
	positionX := x + len(modeStr) + 3
	p.Renderer.DrawText(positionX, y, runewidth.StringWidth(position), 1, bgStyle, position)

	tail := p.logReader.Tail(1)
	if len(tail) == 0 {
		return
	}
	messageX := positionX + runewidth.StringWidth(position) + 2
	messageW := x + w - messageX
	if messageW <= 0 {
		return
	}
	message := runewidth.Truncate(potatolog.Message(tail[0]), messageW, "…")
	p.Renderer.DrawText(messageX, y, messageW, 1, logEntryStyle(p.Stylesheet, tail[0]), message)
}

// NewStatusPane constructs and returns a new StatusPane.
func NewStatusPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	info func() StatusInfo,
	logReader potatolog.LogReader,
) *StatusPane {
	return &StatusPane{
		LeafPane: ui.LeafPane{
			BasePane: ui.BasePane{
				ID: ui.GeneratePaneID(),
			},
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		info:      info,
		logReader: logReader,
	}
}
