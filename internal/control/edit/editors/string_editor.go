package editors

import (
	"strconv"
	"strings"
)

// StringEditor is a single-line text widget with a cursor.
// It edits text, date and number cells.
type StringEditor struct {
	Name string
	Type string

	Content   string
	CursorPos int
}

// NewStringEditor returns a string editor with the cursor past the end of the
// given content, so that typing appends.
func NewStringEditor(name, typ, content string) *StringEditor {
	return &StringEditor{
		Name:      name,
		Type:      typ,
		Content:   content,
		CursorPos: len([]rune(content)),
	}
}

// GetName returns the data key of the edited column.
func (e *StringEditor) GetName() string { return e.Name }

// GetType returns the column type this editor was built for.
func (e *StringEditor) GetType() string { return e.Type }

// GetValue returns the current (edited) contents.
func (e *StringEditor) GetValue() string { return e.Content }

// IsEmpty reports whether the contents are blank.
func (e *StringEditor) IsEmpty() bool { return strings.TrimSpace(e.Content) == "" }

// GetCursorPos returns the current cursor position in the string, 0 being
// the first character.
func (e *StringEditor) GetCursorPos() int { return e.CursorPos }

// DeleteRune deletes the rune at the cursor position.
func (e *StringEditor) DeleteRune() {
	tmpStr := []rune(e.Content)
	if e.CursorPos < len(tmpStr) {
		preCursor := tmpStr[:e.CursorPos]
		postCursor := tmpStr[e.CursorPos+1:]

		e.Content = string(append(preCursor, postCursor...))
	}
}

// BackspaceRune deletes the rune before the cursor position.
func (e *StringEditor) BackspaceRune() {
	if e.CursorPos > 0 {
		tmpStr := []rune(e.Content)
		preCursor := tmpStr[:e.CursorPos-1]
		postCursor := tmpStr[e.CursorPos:]

		e.Content = string(append(preCursor, postCursor...))
		e.CursorPos--
	}
}

// BackspaceToBeginning deletes all runes before the cursor position.
func (e *StringEditor) BackspaceToBeginning() {
	afterCursor := []rune(e.Content)[e.CursorPos:]
	e.Content = string(afterCursor)
	e.CursorPos = 0
}

// Clear deletes all runes in the editor.
func (e *StringEditor) Clear() {
	e.Content = ""
	e.CursorPos = 0
}

// MoveCursorToBeginning moves the cursor to the beginning of the string.
func (e *StringEditor) MoveCursorToBeginning() {
	e.CursorPos = 0
}

// MoveCursorPastEnd moves the cursor past the end of the string.
func (e *StringEditor) MoveCursorPastEnd() {
	e.CursorPos = len([]rune(e.Content))
}

// MoveCursorLeft moves the cursor one rune to the left.
func (e *StringEditor) MoveCursorLeft() {
	if e.CursorPos > 0 {
		e.CursorPos--
	}
}

// MoveCursorRight moves the cursor one rune to the right, at most to just past
// the end.
func (e *StringEditor) MoveCursorRight() {
	if e.CursorPos < len([]rune(e.Content)) {
		e.CursorPos++
	}
}

// AddRune inserts a rune at the cursor position.
// Non-printable runes are ignored.
func (e *StringEditor) AddRune(newRune rune) {
	if !strconv.IsPrint(newRune) {
		return
	}
	tmp := []rune(e.Content)
	cursorPos := e.CursorPos
	if len(tmp) == cursorPos {
		tmp = append(tmp, newRune)
	} else {
		tmp = append(tmp[:cursorPos+1], tmp[cursorPos:]...)
		tmp[cursorPos] = newRune
	}
	e.Content = string(tmp)
	e.CursorPos++
}
