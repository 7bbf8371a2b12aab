package processors

import (
	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/rowedit/internal/control/action"
	"github.com/ja-he/rowedit/internal/input"
)

// TextInputProcessor feeds runes to a widget. Mapped keys (commit, abandon,
// widget cursor movement) take precedence; every other rune goes to the rune
// callback, other unmapped keys are dropped.
// It always captures input, so nothing behind it sees keys while a row is
// being edited.
type TextInputProcessor struct {
	mappings     map[input.Key]action.Action
	runeCallback func(r rune)
}

// NewTextInputProcessor returns a text processor with the given mappings.
func NewTextInputProcessor(
	mappings map[input.Key]action.Action,
	runeCallback func(r rune),
) *TextInputProcessor {
	return &TextInputProcessor{
		mappings:     mappings,
		runeCallback: runeCallback,
	}
}

// ProcessInput applies a mapping or types the rune.
func (p *TextInputProcessor) ProcessInput(key input.Key) bool {
	if a, ok := p.mappings[key]; ok {
		a.Do()
		return true
	}
	if key.Key != tcell.KeyRune {
		return false
	}
	p.runeCallback(key.Ch)
	return true
}

// CapturesInput is always true.
func (p *TextInputProcessor) CapturesInput() bool { return true }

// GetHelp returns the explanations of the mapped keys.
func (p *TextInputProcessor) GetHelp() input.Help {
	result := make(input.Help, len(p.mappings))
	for k, a := range p.mappings {
		result[input.ToConfigIdentifierString(k)] = a.Explain()
	}
	return result
}
