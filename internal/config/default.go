package config

import "github.com/ja-he/rowedit/internal/input"

// Default returns the default configuration for the given colorscheme type
// (light or dark).
func Default(colorschemeType ColorschemeType) Config {
	return Config{
		Stylesheet: defaultStylesheet(colorschemeType),
		Columns: []Column{
			{Data: "name", Title: "Name", Editable: true, Type: "text", Required: true},
			{Data: "position", Title: "Position", Editable: true, Type: "select", Options: ColumnOptions{
				Choices: []Choice{
					{ID: "1", Text: "Accountant"},
					{ID: "2", Text: "Developer"},
					{ID: "3", Text: "Sales Assistant"},
					{ID: "4", Text: "Support Engineer"},
				},
			}},
			{Data: "office", Title: "Office", Editable: true, Type: "text", Default: "Edinburgh"},
			{Data: "start_date", Title: "Start date", Editable: true, Type: "date", Options: ColumnOptions{Format: "yyyy/mm/dd"}},
			{Data: "salary", Title: "Salary", Editable: true, Type: "number"},
		},
		Fields:         Fields{ID: "id", Status: "status", Deleted: "deleted"},
		NewRowPosition: "top",
		Persistence:    Persistence{Backend: BackendNone},
		Keymaps:        defaultKeymaps(),
	}
}

func defaultKeymaps() input.InputConfig {
	return input.InputConfig{
		Grid: map[input.Keyspec]input.Actionspec{
			"j":       "cursor-down",
			"<down>":  "cursor-down",
			"k":       "cursor-up",
			"<up>":    "cursor-up",
			"h":       "cursor-left",
			"<left>":  "cursor-left",
			"l":       "cursor-right",
			"<right>": "cursor-right",
			"gg":      "cursor-top",
			"G":       "cursor-bottom",
			"i":       "enter-row",
			"<cr>":    "enter-row",
			"o":       "new-row",
			"dd":      "delete-row",
			"gl":      "lock-row",
			"gu":      "unlock-row",
			"gp":      "publish-row",
			"gP":      "unpublish-row",
			"gs":      "snapshot",
			"gr":      "rollback",
			"w":       "save-dirty",
			"u":       "undo",
			"?":       "toggle-help",
			"q":       "quit",
		},
		Editor: map[input.Keyspec]input.Actionspec{
			"<cr>":      "commit",
			"<esc>":     "abandon",
			"<tab>":     "next-field",
			"<backtab>": "prev-field",
			"<bs>":      "backspace",
			"<del>":     "delete",
			"<left>":    "cursor-left",
			"<right>":   "cursor-right",
			"<home>":    "cursor-beginning",
			"<end>":     "cursor-end",
			"<c-u>":     "clear",
			"<up>":      "abandon-up",
			"<down>":    "abandon-down",
		},
	}
}

func defaultStylesheet(colorschemeType ColorschemeType) Stylesheet {
	if colorschemeType == Dark {
		return Stylesheet{
			Normal:    Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
			Header:    Styling{Fg: "#f0f0f0", Bg: "#202020", Style: &FontStyle{Bold: true}},
			Cursor:    Styling{Fg: "#ffffff", Bg: "#404040", Style: &FontStyle{}},
			Editing:   Styling{Fg: "#ffffff", Bg: "#0b3a5c", Style: &FontStyle{}},
			Widget:    Styling{Fg: "#ffffff", Bg: "#0065a3", Style: &FontStyle{Underlined: true}},
			Locked:    Styling{Fg: "#fff0cc", Bg: "#3d2a00", Style: &FontStyle{}},
			Published: Styling{Fg: "#c2edab", Bg: "#1d3a0d", Style: &FontStyle{}},
			Dirty:     Styling{Fg: "#ffccf7", Bg: "#000000", Style: &FontStyle{Italic: true}},
			Status:    Styling{Fg: "#f0f0f0", Bg: "#202020", Style: &FontStyle{}},
			LogError:  Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
			LogWarn:   Styling{Fg: "#fff0cc", Bg: "#cc8f00", Style: &FontStyle{Bold: true}},
			LogInfo:   Styling{Fg: "#c2edab", Bg: "#3a751a", Style: &FontStyle{}},
			Help:      Styling{Fg: "#ffffff", Bg: "#404040", Style: &FontStyle{}},
		}
	}
	return Stylesheet{
		Normal:    Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
		Header:    Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{Bold: true}},
		Cursor:    Styling{Fg: "#000000", Bg: "#dddddd", Style: &FontStyle{}},
		Editing:   Styling{Fg: "#000000", Bg: "#ccebff", Style: &FontStyle{}},
		Widget:    Styling{Fg: "#000000", Bg: "#88ccff", Style: &FontStyle{Underlined: true}},
		Locked:    Styling{Fg: "#cc8f00", Bg: "#fff0cc", Style: &FontStyle{}},
		Published: Styling{Fg: "#3a751a", Bg: "#c2edab", Style: &FontStyle{}},
		Dirty:     Styling{Fg: "#a3008b", Bg: "#ffffff", Style: &FontStyle{Italic: true}},
		Status:    Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
		LogError:  Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
		LogWarn:   Styling{Fg: "#cc8f00", Bg: "#fff0cc", Style: &FontStyle{Bold: true}},
		LogInfo:   Styling{Fg: "#3a751a", Bg: "#c2edab", Style: &FontStyle{}},
		Help:      Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
	}
}
