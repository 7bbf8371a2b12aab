package panes

import (
	"fmt"
	"sort"

	"github.com/ja-he/rowedit/internal/potatolog"
	"github.com/ja-he/rowedit/internal/styling"
	"github.com/ja-he/rowedit/internal/ui"
)

// LogPane shows the log, with the most recent log entries at the top.
type LogPane struct {
	ui.LeafPane

	logReader potatolog.LogReader
}

// Draw draws the log over top of all previously drawn contents, if it is
// currently visible.
func (p *LogPane) Draw() {
	if !p.IsVisible() {
		return
	}

	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Normal)

	title := "LOG"
	p.Renderer.DrawBox(x, y, w, 1, p.Stylesheet.Header)
	p.Renderer.DrawText(x+(w/2-len(title)/2), y, len(title), 1, p.Stylesheet.Header, title)

	const levelLen = len(" error ")
	row := 2
	entries := p.logReader.Get()
	for i := len(entries) - 1; i >= 0 && row < h; i-- {
		entry := entries[i]
		level := stringField(entry, "level")

		p.Renderer.DrawText(x, y+row, levelLen, 1, logEntryStyle(p.Stylesheet, entry), padCenter(level, levelLen))
		p.Renderer.DrawText(x+levelLen+1, y+row, w-levelLen-1, 1, p.Stylesheet.Normal, stringField(entry, "message"))
		row++

		keys := make([]string, 0, len(entry))
		for k := range entry {
			switch k {
			case "caller", "message", "time", "level":
			default:
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			if row >= h {
				break
			}
			p.Renderer.DrawText(x+levelLen+1, y+row, len(k), 1, p.Stylesheet.Normal.DefaultDimmed(), k)
			p.Renderer.DrawText(x+levelLen+len(k)+3, y+row, w, 1, p.Stylesheet.Normal, stringField(entry, k))
			row++
		}
	}
}

func stringField(entry potatolog.LogEntry, key string) string {
	switch v := entry[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	result := make([]byte, width)
	for i := range result {
		result[i] = ' '
	}
	copy(result[left:], s)
	return string(result)
}

func logEntryStyle(stylesheet *styling.Stylesheet, entry potatolog.LogEntry) styling.DrawStyling {
	switch entry["level"] {
	case "error", "fatal", "panic":
		return stylesheet.LogEntryTypeError
	case "warn":
		return stylesheet.LogEntryTypeWarn
	case "info":
		return stylesheet.LogEntryTypeInfo
	default:
		return stylesheet.Status
	}
}

// NewLogPane constructs and returns a new LogPane.
func NewLogPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet *styling.Stylesheet,
	condition func() bool,
	logReader potatolog.LogReader,
) *LogPane {
	return &LogPane{
		LeafPane: ui.LeafPane{
			BasePane: ui.BasePane{
				ID:      ui.GeneratePaneID(),
				Visible: condition,
			},
			Renderer:   renderer,
			Dims:       dimensions,
			Stylesheet: stylesheet,
		},
		logReader: logReader,
	}
}
