package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ja-he/rowedit/internal/control/action"
)

// ErrConflictingMapping is returned when one mapped key sequence is a prefix
// of another (or the same sequence is mapped twice), since the shorter one
// would shadow the longer one.
var ErrConflictingMapping = errors.New("conflicting key mappings")

// Help maps key sequences in keyspec notation to explanations of what they do.
type Help = map[string]string

// Tree dispatches key sequences to actions, e.g.
//
//	"gg" -> cursor-top
//	"gl" -> lock-row
//	"j"  -> cursor-down
//
// After "g" the tree is pending and captures input until the sequence either
// completes or breaks off.
type Tree struct {
	root    *node
	current *node
	pending []Key
}

// node either has children or an action, never both.
type node struct {
	children map[Key]*node
	action   action.Action
	keyspec  Keyspec
}

func newNode() *node { return &node{children: map[Key]*node{}} }

// ConstructInputTree constructs a Tree for the given mappings of key sequences
// to actions.
// Invalid keyspecs and conflicting sequences are errors.
func ConstructInputTree(spec map[Keyspec]action.Action) (*Tree, error) {
	root := newNode()

	// sorted for deterministic conflict reports
	keyspecs := make([]Keyspec, 0, len(spec))
	for k := range spec {
		keyspecs = append(keyspecs, k)
	}
	sort.Slice(keyspecs, func(i, j int) bool { return keyspecs[i] < keyspecs[j] })

	for _, keyspec := range keyspecs {
		sequence, err := ConfigKeyspecToKeys(keyspec)
		if err != nil {
			return nil, fmt.Errorf("error converting config keyspec '%s' (%w)", keyspec, err)
		}
		if len(sequence) == 0 {
			return nil, fmt.Errorf("empty keyspec mapped to '%s'", spec[keyspec].Explain())
		}

		current := root
		for i, key := range sequence {
			if current.action != nil {
				return nil, fmt.Errorf("%w: '%s' shadows '%s'", ErrConflictingMapping, current.keyspec, keyspec)
			}
			next, ok := current.children[key]
			last := i == len(sequence)-1
			switch {
			case ok && last:
				if next.action != nil {
					return nil, fmt.Errorf("%w: '%s' and '%s' are the same sequence", ErrConflictingMapping, next.keyspec, keyspec)
				}
				return nil, fmt.Errorf("%w: '%s' shadows longer sequences", ErrConflictingMapping, keyspec)
			case !ok && last:
				next = &node{action: spec[keyspec], keyspec: keyspec}
				current.children[key] = next
			case !ok:
				next = newNode()
				current.children[key] = next
			}
			current = next
		}
	}

	return &Tree{root: root, current: root}, nil
}

// EmptyTree returns a tree without mappings.
func EmptyTree() *Tree {
	root := newNode()
	return &Tree{root: root, current: root}
}

// ProcessInput advances the pending sequence by the given key.
// It returns whether the key continued or completed a sequence; a key that
// does not resets the tree and does not apply.
func (t *Tree) ProcessInput(k Key) (applied bool) {
	next, ok := t.current.children[k]
	switch {
	case !ok:
		t.Reset()
		return false
	case next.action != nil:
		t.Reset()
		next.action.Do()
		return true
	default:
		t.current = next
		t.pending = append(t.pending, k)
		return true
	}
}

// CapturesInput reports whether a sequence is pending.
func (t *Tree) CapturesInput() bool { return t.current != t.root }

// Pending returns the keys of the pending sequence in keyspec notation.
func (t *Tree) Pending() Keyspec {
	var b strings.Builder
	for _, k := range t.pending {
		b.WriteString(ToConfigIdentifierString(k))
	}
	return Keyspec(b.String())
}

// Reset drops any pending sequence.
func (t *Tree) Reset() {
	t.current = t.root
	t.pending = nil
}

// GetHelp returns the explanations of all sequences in the tree.
func (t *Tree) GetHelp() Help {
	result := Help{}
	var collect func(n *node)
	collect = func(n *node) {
		if n.action != nil {
			result[string(n.keyspec)] = n.action.Explain()
			return
		}
		for _, child := range n.children {
			collect(child)
		}
	}
	collect(t.root)
	return result
}
