// Package processors contains the input processors the front end combines
// into its pane tree.
package processors

import (
	"github.com/ja-he/rowedit/internal/input"
)

// ModalInputProcessor delegates to the topmost of a stack of overlays, or to
// its base processor while the stack is empty.
//
// The grid uses it to switch between navigation mappings (base) and the
// editing row's text input (overlay) without rebuilding either.
type ModalInputProcessor struct {
	base     input.SimpleInputProcessor
	overlays []input.SimpleInputProcessor
}

// NewModalInputProcessor returns a modal processor over the given base.
func NewModalInputProcessor(base input.SimpleInputProcessor) *ModalInputProcessor {
	return &ModalInputProcessor{base: base}
}

func (p *ModalInputProcessor) top() input.SimpleInputProcessor {
	if n := len(p.overlays); n > 0 {
		return p.overlays[n-1]
	}
	return p.base
}

// CapturesInput reports whether the topmost processor captures input.
func (p *ModalInputProcessor) CapturesInput() bool { return p.top().CapturesInput() }

// ProcessInput hands the key to the topmost processor.
func (p *ModalInputProcessor) ProcessInput(key input.Key) bool { return p.top().ProcessInput(key) }

// GetHelp returns the help of the topmost processor.
func (p *ModalInputProcessor) GetHelp() input.Help { return p.top().GetHelp() }

// ApplyModalOverlay pushes an overlay and returns its index, which
// PopModalOverlays takes to remove it and everything above it.
func (p *ModalInputProcessor) ApplyModalOverlay(overlay input.SimpleInputProcessor) (index uint) {
	p.overlays = append(p.overlays, overlay)
	return uint(len(p.overlays) - 1)
}

// PopModalOverlays removes the overlay at the given index and all above it.
// An index past the top is a no-op.
func (p *ModalInputProcessor) PopModalOverlays(index uint) {
	if index < uint(len(p.overlays)) {
		p.overlays = p.overlays[:index]
	}
}

// Depth returns the number of overlays.
func (p *ModalInputProcessor) Depth() int { return len(p.overlays) }
