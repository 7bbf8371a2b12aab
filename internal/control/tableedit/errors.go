package tableedit

import "errors"

var (
	// ErrNilGrid is returned when an editor is constructed without a grid.
	ErrNilGrid = errors.New("no grid to attach to")

	// ErrIncompatibleGrid is returned when the grid's version is below
	// MinGridVersion.
	ErrIncompatibleGrid = errors.New("incompatible grid version")

	// ErrForeignExtension is returned when the grid already carries an
	// extension that is not an editor.
	ErrForeignExtension = errors.New("grid already carries a different extension")
)
