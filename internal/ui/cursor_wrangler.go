package ui

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// CursorLocationRequestHandler is an interface for a type that can handle
// requests to place a (text/terminal) cursor on the screen.
type CursorLocationRequestHandler interface {
	Put(l CursorLocation, requesterID string)
	Delete(requesterID string)
}

// CursorWrangler handles requests to place a (text/terminal) cursor on the
// screen. The most recent request wins.
type CursorWrangler struct {
	mtx sync.RWMutex

	cc TextCursorController

	desiredLocation *CursorLocation
	requester       string
}

// NewCursorWrangler creates a new CursorWrangler.
func NewCursorWrangler(controller TextCursorController) *CursorWrangler {
	return &CursorWrangler{cc: controller}
}

// Put places the cursor at the given location.
func (w *CursorWrangler) Put(l CursorLocation, requesterID string) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.desiredLocation != nil && w.requester != requesterID {
		log.Warn().Msgf("being asked to put cursor (at %s) while it is already placed by '%s' (at %s); will be overwritten", l.String(), w.requester, w.desiredLocation.String())
	}

	w.desiredLocation = &l
	w.requester = requesterID
}

// Delete removes the cursor, if the requester is the one who placed it.
func (w *CursorWrangler) Delete(requesterID string) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.desiredLocation == nil {
		return
	}
	if w.requester != requesterID {
		log.Debug().Msgf("ignoring '%s's request to delete cursor, as current requester is %s", requesterID, w.requester)
		return
	}

	w.desiredLocation = nil
	w.requester = ""
}

// Location returns the currently requested location, if any.
func (w *CursorWrangler) Location() (CursorLocation, bool) {
	w.mtx.RLock()
	defer w.mtx.RUnlock()
	if w.desiredLocation == nil {
		return CursorLocation{}, false
	}
	return *w.desiredLocation, true
}

// Enact enacts the current cursor location request via the underlying
// cursor controller.
func (w *CursorWrangler) Enact() {
	w.mtx.RLock()
	defer w.mtx.RUnlock()

	if w.desiredLocation != nil {
		w.cc.ShowCursor(w.desiredLocation.X, w.desiredLocation.Y)
	} else {
		w.cc.HideCursor()
	}
}
