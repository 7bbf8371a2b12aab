package editors

import (
	"strings"
	"unicode"

	"github.com/ja-he/rowedit/internal/model"
)

// SelectEditor picks one of a fixed list of choices.
// Its value is the ID of the selected choice. Without a selection it is the
// cell text the editor was built from, if that matched no choice.
type SelectEditor struct {
	Name    string
	Choices []model.Choice

	// Selected is the index into Choices, or -1.
	Selected int

	// Unmatched holds the initial cell text that matched no choice, until a
	// choice is selected or the selection is cleared.
	Unmatched string
}

// NewSelectEditor returns a select editor preselecting the choice whose ID or
// text matches the given cell text.
func NewSelectEditor(name string, choices []model.Choice, text string) *SelectEditor {
	e := &SelectEditor{Name: name, Choices: choices, Selected: -1}
	for i, c := range choices {
		if c.ID == text || c.Text == text {
			e.Selected = i
			return e
		}
	}
	e.Unmatched = text
	return e
}

// GetName returns the data key of the edited column.
func (e *SelectEditor) GetName() string { return e.Name }

// GetType asserts that this is a select editor.
func (e *SelectEditor) GetType() string { return string(model.ColumnSelect) }

// GetValue returns the selected choice's ID.
func (e *SelectEditor) GetValue() string {
	if e.Selected < 0 || e.Selected >= len(e.Choices) {
		return e.Unmatched
	}
	return e.Choices[e.Selected].ID
}

// GetText returns the selected choice's display text.
func (e *SelectEditor) GetText() string {
	if e.Selected < 0 || e.Selected >= len(e.Choices) {
		return e.Unmatched
	}
	return e.Choices[e.Selected].Text
}

// IsEmpty reports whether nothing is selected.
func (e *SelectEditor) IsEmpty() bool { return e.GetValue() == "" }

// GetCursorPos returns the length of the displayed text.
func (e *SelectEditor) GetCursorPos() int { return len([]rune(e.GetText())) }

// AddRune selects the next choice (after the current one, wrapping) whose text
// starts with the given rune, ignoring case.
func (e *SelectEditor) AddRune(r rune) {
	n := len(e.Choices)
	for offset := 1; offset <= n; offset++ {
		i := (e.Selected + offset + n) % n
		if e.Selected < 0 {
			i = offset - 1
		}
		text := []rune(e.Choices[i].Text)
		if len(text) > 0 && unicode.ToLower(text[0]) == unicode.ToLower(r) {
			e.choose(i)
			return
		}
	}
}

// BackspaceRune clears the selection.
func (e *SelectEditor) BackspaceRune() { e.Clear() }

// DeleteRune clears the selection.
func (e *SelectEditor) DeleteRune() { e.Clear() }

// Clear clears the selection.
func (e *SelectEditor) Clear() { e.Selected, e.Unmatched = -1, "" }

func (e *SelectEditor) choose(i int) { e.Selected, e.Unmatched = i, "" }

// MoveCursorLeft selects the previous choice (wrapping around).
func (e *SelectEditor) MoveCursorLeft() {
	if len(e.Choices) == 0 {
		return
	}
	if e.Selected <= 0 {
		e.choose(len(e.Choices) - 1)
		return
	}
	e.choose(e.Selected - 1)
}

// MoveCursorRight selects the next choice (wrapping around).
func (e *SelectEditor) MoveCursorRight() {
	if len(e.Choices) == 0 {
		return
	}
	e.choose((e.Selected + 1) % len(e.Choices))
}

// MoveCursorToBeginning selects the first choice.
func (e *SelectEditor) MoveCursorToBeginning() {
	if len(e.Choices) > 0 {
		e.choose(0)
	}
}

// MoveCursorPastEnd selects the last choice.
func (e *SelectEditor) MoveCursorPastEnd() {
	if len(e.Choices) > 0 {
		e.choose(len(e.Choices) - 1)
	}
}

// String renders the selection for display.
func (e *SelectEditor) String() string {
	text := e.GetText()
	if text == "" {
		return "<" + strings.Repeat("-", 3) + ">"
	}
	return "<" + text + ">"
}
