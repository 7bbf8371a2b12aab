package edit

// Mode is the interaction mode of a grid front end.
type Mode int

const (
	_ Mode = iota
	// ModeNavigate moves the cursor between cells.
	ModeNavigate
	// ModeEditing routes input into the widgets of the editing row.
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeNavigate:
		return "NAVIGATE"
	case ModeEditing:
		return "EDIT"
	default:
		return "?"
	}
}
