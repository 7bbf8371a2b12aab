// Package providers contains the storage backends rows can be persisted to.
package providers

import "errors"

var (
	// ErrMissingFilePath is returned when a file-backed provider has no path.
	ErrMissingFilePath = errors.New("file path is required")

	// ErrMissingSheetName is returned when a workbook provider has no sheet.
	ErrMissingSheetName = errors.New("sheet name is required")

	// ErrMissingURL is returned when the HTTP provider has no endpoint.
	ErrMissingURL = errors.New("url is required")

	// ErrRemote is wrapped by errors returned for non-2xx responses.
	ErrRemote = errors.New("remote rejected record")
)
