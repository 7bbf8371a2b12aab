package input_test

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/rowedit/internal/control/action"
	"github.com/ja-he/rowedit/internal/input"
)

func TestConfigKeyspecToKey(t *testing.T) {

	t.Run("valid", func(t *testing.T) {
		expectValid := func(s input.Keyspec) []input.Key {
			keys, err := input.ConfigKeyspecToKeys(s)
			if err != nil {
				t.Error("unexpected error on valid spec:", err.Error())
			}
			if keys == nil {
				t.Error("unexpected nil keyspec on valid spec")
			}
			return keys
		}

		t.Run("empty", func(t *testing.T) {
			keys := expectValid("")
			if len(keys) != 0 {
				t.Error("expected empty seq of keys")
			}
		})

		t.Run("single", func(t *testing.T) {
			keys := expectValid("x")
			if len(keys) != 1 {
				t.Error("expected single key")
			}
			if (keys[0] != input.Key{Key: tcell.KeyRune, Ch: 'x'}) {
				t.Error("expected single key to be 'x'")
			}
		})

		t.Run("special", func(t *testing.T) {
			t.Run("<c-a>", func(t *testing.T) {
				keys := expectValid("<c-a>")
				if len(keys) != 1 {
					t.Error("expected single key")
				}
				if (keys[0] != input.Key{Key: tcell.KeyCtrlA}) {
					t.Error("expected single key to be <c-a>")
				}
			})
			t.Run("<space>", func(t *testing.T) {
				keys := expectValid("<space>")
				if len(keys) != 1 {
					t.Error("expected single key")
				}
				if (keys[0] != input.Key{Key: tcell.KeyRune, Ch: ' '}) {
					t.Error("expected single key to be <space>")
				}
			})
		})

		t.Run("sequence", func(t *testing.T) {
			t.Run("characters", func(t *testing.T) {
				keys := expectValid("xyz")
				if len(keys) != 3 {
					t.Error("expected three keys")
				}
				if (keys[0] != input.Key{Key: tcell.KeyRune, Ch: 'x'}) && (keys[1] != input.Key{Key: tcell.KeyRune, Ch: 'y'}) && (keys[2] != input.Key{Key: tcell.KeyRune, Ch: 'z'}) {
					t.Error("expected sequence [x,y,z], not", keys)
				}
			})
			t.Run("with special", func(t *testing.T) {
				keys := expectValid("x<c-w>z")
				if len(keys) != 3 {
					t.Error("expected three keys")
				}
				if (keys[0] != input.Key{Key: tcell.KeyRune, Ch: 'x'}) && (keys[1] != input.Key{Key: tcell.KeyCtrlW}) && (keys[2] != input.Key{Key: tcell.KeyRune, Ch: 'z'}) {
					t.Error("expected sequence [x,<c-w>,z], not", keys)
				}
			})
		})
	})

	t.Run("valid", func(t *testing.T) {
		expectInvalid := func(s input.Keyspec) error {
			keys, err := input.ConfigKeyspecToKeys(s)
			if err == nil {
				t.Error("unexpectedly no err on invalid spec")
			}
			if keys != nil {
				t.Error("unexpected key seq on invalid spec:", keys)
			}
			return err
		}

		t.Run("unopened special", func(t *testing.T) {
			expectInvalid("c-w>")
		})
		t.Run("unclosed special (EOL)", func(t *testing.T) {
			expectInvalid("<c-w")
		})
		t.Run("unclosed special (double open)", func(t *testing.T) {
			expectInvalid("<c-w<c-a>")
		})
		t.Run("wrong delimiter in special", func(t *testing.T) {
			expectInvalid("<c+a>")
		})
	})

}

func TestTree(t *testing.T) {
	x := input.Key{Key: tcell.KeyRune, Ch: 'x'}
	y := input.Key{Key: tcell.KeyRune, Ch: 'y'}
	z := input.Key{Key: tcell.KeyRune, Ch: 'z'}

	t.Run("empty", func(t *testing.T) {
		tree := input.EmptyTree()
		if tree.CapturesInput() {
			t.Error("empty tree captures input")
		}
		if tree.ProcessInput(x) {
			t.Error("empty tree applies input")
		}
		if len(tree.GetHelp()) != 0 {
			t.Error("empty tree has help")
		}
	})

	t.Run("sequence", func(t *testing.T) {
		done := false
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
			"xyz": &DummyAction{F: func() { done = true }},
		})
		if err != nil {
			t.Fatal(err.Error())
		}

		if tree.ProcessInput(input.Key{}) || tree.CapturesInput() {
			t.Error("tree applies or captures after unmapped input")
		}
		for _, k := range []input.Key{x, y} {
			if !tree.ProcessInput(k) {
				t.Error("tree does not apply mapped input", k)
			}
			if !tree.CapturesInput() {
				t.Error("tree does not capture in the middle of a sequence")
			}
		}
		if tree.Pending() != "xy" {
			t.Errorf("pending sequence is '%s'", tree.Pending())
		}
		if !tree.ProcessInput(z) || !done {
			t.Error("sequence did not complete")
		}
		if tree.CapturesInput() || tree.Pending() != "" {
			t.Error("tree still pending after complete sequence")
		}
	})

	t.Run("broken off sequence resets", func(t *testing.T) {
		ctrlA := false
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
			"xyz":   &DummyAction{F: func() { t.Error("xyz applied") }},
			"<c-a>": &DummyAction{F: func() { ctrlA = true }},
		})
		if err != nil {
			t.Fatal(err.Error())
		}
		tree.ProcessInput(x)
		if tree.ProcessInput(z) {
			t.Error("xz applied")
		}
		if tree.CapturesInput() {
			t.Error("tree still captures after broken off sequence")
		}
		if !tree.ProcessInput(input.Key{Key: tcell.KeyCtrlA}) || !ctrlA {
			t.Error("<c-a> not applied")
		}

		tree.ProcessInput(x)
		tree.Reset()
		if tree.CapturesInput() {
			t.Error("tree captures after reset")
		}
	})

	t.Run("invalid keyspec", func(t *testing.T) {
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{"<asdf": &DummyAction{}})
		if err == nil || tree != nil {
			t.Error("invalid keyspec accepted")
		}
	})

	t.Run("conflicts", func(t *testing.T) {
		for name, spec := range map[string]map[input.Keyspec]action.Action{
			"prefix":   {"g": &DummyAction{}, "gg": &DummyAction{}},
			"same key": {"<tab>": &DummyAction{}, "<c-i>": &DummyAction{}},
			"empty":    {"": &DummyAction{}},
		} {
			if _, err := input.ConstructInputTree(spec); err == nil {
				t.Errorf("%s: conflicting mappings accepted", name)
			}
		}
		_, err := input.ConstructInputTree(map[input.Keyspec]action.Action{"g": &DummyAction{}, "gg": &DummyAction{}})
		if !errors.Is(err, input.ErrConflictingMapping) {
			t.Error("unexpected error:", err)
		}
	})

	t.Run("help", func(t *testing.T) {
		tree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
			"a":    &DummyAction{S: "A"},
			"bc":   &DummyAction{S: "BC"},
			"<cr>": &DummyAction{S: "enter"},
		})
		if err != nil {
			t.Fatal(err.Error())
		}
		help := tree.GetHelp()
		if len(help) != 3 || help["a"] != "A" || help["bc"] != "BC" || help["<cr>"] != "enter" {
			t.Error("help looks unexpected:", help)
		}
	})
}

// to avoid depending on 'action' functions
type DummyAction struct {
	F func()
	S string
}

func (d *DummyAction) Do()             { d.F() }
func (d *DummyAction) Undo()           {}
func (d *DummyAction) Undoable() bool  { return false }
func (d *DummyAction) Explain() string { return d.S }

func TestKeyIdentifiers(t *testing.T) {
	for spec, expected := range map[input.Keyspec]input.Key{
		"<tab>":     {Key: tcell.KeyTab},
		"<backtab>": {Key: tcell.KeyBacktab},
		"<up>":      {Key: tcell.KeyUp},
		"<down>":    {Key: tcell.KeyDown},
		"<C-S>":     {Key: tcell.KeyCtrlS},
	} {
		keys, err := input.ConfigKeyspecToKeys(spec)
		if err != nil {
			t.Errorf("unexpected error for '%s': %s", spec, err.Error())
			continue
		}
		if len(keys) != 1 || keys[0] != expected {
			t.Errorf("'%s' converted to %v", spec, keys)
		}
	}

	t.Run("round trip", func(t *testing.T) {
		for _, spec := range []string{"<tab>", "<cr>", "<c-s>", "<space>", "x", "<pgdn>"} {
			keys, err := input.ConfigKeyspecToKeys(input.Keyspec(spec))
			if err != nil || len(keys) != 1 {
				t.Fatalf("could not convert '%s'", spec)
			}
			if back := input.ToConfigIdentifierString(keys[0]); back != spec {
				t.Errorf("'%s' came back as '%s'", spec, back)
			}
		}
	})
}

func TestSingleKeyMappings(t *testing.T) {
	m, err := input.SingleKeyMappings(map[input.Keyspec]input.Actionspec{
		"<cr>":  "commit",
		"<esc>": "abandon",
	})
	if err != nil {
		t.Fatal("unexpected error:", err.Error())
	}
	if m[input.Key{Key: tcell.KeyEnter}] != "commit" || m[input.Key{Key: tcell.KeyESC}] != "abandon" {
		t.Error("mappings look unexpected:", m)
	}

	if _, err := input.SingleKeyMappings(map[input.Keyspec]input.Actionspec{"dd": "delete-row"}); err == nil {
		t.Error("accepted a two-key sequence")
	}
	if _, err := input.SingleKeyMappings(map[input.Keyspec]input.Actionspec{"<nope>": "x"}); err == nil {
		t.Error("accepted an unknown identifier")
	}
}
