package input

// SimpleInputProcessor turns keys into actions.
//
// A processor that captures input takes priority over the others it is
// combined with, e.g. while it holds a partial key sequence or while it is a
// text overlay that consumes every rune.
type SimpleInputProcessor interface {
	CapturesInput() bool

	// ProcessInput reports whether the key applied.
	ProcessInput(key Key) bool

	GetHelp() Help
}
