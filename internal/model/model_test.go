package model_test

import (
	"errors"
	"testing"

	"github.com/ja-he/rowedit/internal/model"
)

func TestClassify(t *testing.T) {
	f := model.DefaultFields()

	for _, tc := range []struct {
		name     string
		status   any
		expected model.RowStatus
	}{
		{"int 0", 0, model.StatusDraft},
		{"int 1", 1, model.StatusLocked},
		{"int64 2", int64(2), model.StatusPublished},
		{"float 1", float64(1), model.StatusLocked},
		{"string 2", "2", model.StatusPublished},
		{"string with spaces", " 1 ", model.StatusLocked},
		{"fractional float", 1.5, model.StatusDraft},
		{"out of range", 7, model.StatusDraft},
		{"empty string", "", model.StatusDraft},
		{"nil", nil, model.StatusDraft},
		{"bool", true, model.StatusDraft},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := model.Record{f.Status: tc.status}
			if result := model.Classify(rec, f.Status); result != tc.expected {
				t.Errorf("classified %#v as %s instead of %s", tc.status, result, tc.expected)
			}
		})
	}

	t.Run("absent", func(t *testing.T) {
		if result := model.Classify(model.Record{}, f.Status); result != model.StatusDraft {
			t.Error("absent status not classified as draft but", result)
		}
	})
}

func TestLifecycle(t *testing.T) {
	f := model.DefaultFields()

	t.Run("no id, no status, no baseline", func(t *testing.T) {
		if s := model.Lifecycle(model.Record{"name": "x"}, f, false); s != model.StatusUnpersisted {
			t.Error("expected unpersisted, got", s)
		}
	})
	t.Run("no id, no status, but baseline", func(t *testing.T) {
		if s := model.Lifecycle(model.Record{"name": "x"}, f, true); s != model.StatusDraft {
			t.Error("expected draft, got", s)
		}
	})
	t.Run("id present", func(t *testing.T) {
		if s := model.Lifecycle(model.Record{"id": 3}, f, false); s != model.StatusDraft {
			t.Error("expected draft, got", s)
		}
	})
	t.Run("status wins", func(t *testing.T) {
		if s := model.Lifecycle(model.Record{"status": 1}, f, false); s != model.StatusLocked {
			t.Error("expected locked, got", s)
		}
	})
}

func TestCanDelete(t *testing.T) {
	if !model.CanDelete(model.StatusDraft) {
		t.Error("drafts must be deletable")
	}
	for _, s := range []model.RowStatus{model.StatusLocked, model.StatusPublished, model.StatusUnpersisted} {
		if model.CanDelete(s) {
			t.Error("status", s, "claims to be deletable")
		}
	}
}

func TestCanEdit(t *testing.T) {
	editable := model.Column{Data: "name", Editable: true, Type: model.ColumnText}
	readonly := model.Column{Data: "office", Type: model.ColumnText}

	for _, tc := range []struct {
		name     string
		col      model.Column
		cell     model.Override
		row      model.Override
		status   model.RowStatus
		expected bool
	}{
		{"editable column on draft", editable, model.OverrideNone, model.OverrideNone, model.StatusDraft, true},
		{"plain column on draft", readonly, model.OverrideNone, model.OverrideNone, model.StatusDraft, false},
		{"cell marked editable", readonly, model.OverrideEditable, model.OverrideNone, model.StatusDraft, true},
		{"cell marked read-only", editable, model.OverrideReadOnly, model.OverrideNone, model.StatusDraft, false},
		{"row marked read-only", editable, model.OverrideNone, model.OverrideReadOnly, model.StatusDraft, false},
		{"row read-only beats cell editable", editable, model.OverrideEditable, model.OverrideReadOnly, model.StatusDraft, false},
		{"locked row", editable, model.OverrideNone, model.OverrideNone, model.StatusLocked, false},
		{"published row", editable, model.OverrideNone, model.OverrideNone, model.StatusPublished, false},
		{"locked row, cell editable", editable, model.OverrideEditable, model.OverrideNone, model.StatusLocked, true},
		{"unpersisted row", editable, model.OverrideNone, model.OverrideNone, model.StatusUnpersisted, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if result := model.CanEdit(tc.col, tc.cell, tc.row, tc.status); result != tc.expected {
				t.Errorf("CanEdit gave %t, expected %t", result, tc.expected)
			}
		})
	}
}

func TestDecorations(t *testing.T) {
	if d := model.Decorations(model.StatusDraft); d.Locked || d.Published || d.Affordance != model.AffordanceTrash {
		t.Errorf("unexpected draft decoration %+v", d)
	}
	if d := model.Decorations(model.StatusLocked); !d.Locked || d.Affordance != model.AffordanceLock {
		t.Errorf("unexpected locked decoration %+v", d)
	}
	if d := model.Decorations(model.StatusPublished); !d.Published || d.Affordance != model.AffordanceNone {
		t.Errorf("unexpected published decoration %+v", d)
	}
}

func TestRecordEqual(t *testing.T) {
	t.Run("key order does not matter", func(t *testing.T) {
		a := model.Record{"a": 1, "b": "x"}
		b := model.Record{"b": "x", "a": 1}
		if !model.Equal(a, b) {
			t.Error("maps with same contents are unequal")
		}
	})
	t.Run("sequence order matters", func(t *testing.T) {
		a := model.Record{"tags": []any{"x", "y"}}
		b := model.Record{"tags": []any{"y", "x"}}
		if model.Equal(a, b) {
			t.Error("differently ordered sequences are equal")
		}
	})
	t.Run("numeric kinds serialize alike", func(t *testing.T) {
		if !model.Equal(model.Record{"n": 3}, model.Record{"n": float64(3)}) {
			t.Error("3 and 3.0 differ")
		}
	})
	t.Run("string and number differ", func(t *testing.T) {
		if model.Equal(model.Record{"n": "3"}, model.Record{"n": 3}) {
			t.Error("\"3\" and 3 are equal")
		}
	})
	t.Run("nil vs empty", func(t *testing.T) {
		if model.Equal(nil, model.Record{}) {
			t.Error("nil record equals empty record")
		}
	})
}

func TestRecordClone(t *testing.T) {
	orig := model.Record{
		"name":   "A",
		"nested": map[string]any{"k": "v"},
		"list":   []any{"x"},
	}
	c := orig.Clone()
	c["name"] = "B"
	c["nested"].(map[string]any)["k"] = "w"
	c["list"].([]any)[0] = "y"

	if orig["name"] != "A" || orig["nested"].(map[string]any)["k"] != "v" || orig["list"].([]any)[0] != "x" {
		t.Error("clone shares state with original:", orig)
	}
}

func TestColumnValidate(t *testing.T) {
	valid := []model.Column{
		{Data: "name", Type: model.ColumnText},
		{Data: "position", Type: model.ColumnSelect, Options: model.ColumnOptions{Choices: []model.Choice{{ID: "a", Text: "A"}}}},
	}
	if err := model.ValidateColumns(valid); err != nil {
		t.Error("unexpected error on valid columns:", err.Error())
	}

	for name, cols := range map[string][]model.Column{
		"no data key":       {{Type: model.ColumnText}},
		"unknown type":      {{Data: "x", Type: "slider"}},
		"select no choices": {{Data: "x", Type: model.ColumnSelect}},
		"duplicate":         {{Data: "x", Type: model.ColumnText}, {Data: "x", Type: model.ColumnDate}},
	} {
		t.Run(name, func(t *testing.T) {
			err := model.ValidateColumns(cols)
			if !errors.Is(err, model.ErrInvalidColumn) {
				t.Error("expected ErrInvalidColumn, got", err)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	num := model.Column{Data: "salary", Type: model.ColumnNumber}
	if v := num.ParseValue("42"); v != int64(42) {
		t.Errorf("parsed '42' as %#v", v)
	}
	if v := num.ParseValue("$1,200.50"); v != 1200.5 {
		t.Errorf("parsed '$1,200.50' as %#v", v)
	}
	if v := num.ParseValue("lots"); v != "lots" {
		t.Errorf("parsed 'lots' as %#v", v)
	}
	text := model.Column{Data: "name", Type: model.ColumnText}
	if v := text.ParseValue("  42 "); v != "42" {
		t.Errorf("text column parsed '  42 ' as %#v", v)
	}
}

func TestDateLayout(t *testing.T) {
	for format, expected := range map[string]string{
		"":           "2006-01-02",
		"yyyy/mm/dd": "2006/01/02",
		"dd.mm.yy":   "02.01.06",
	} {
		c := model.Column{Data: "d", Type: model.ColumnDate, Options: model.ColumnOptions{Format: format}}
		if result := c.DateLayout(); result != expected {
			t.Errorf("layout for '%s' is '%s', expected '%s'", format, result, expected)
		}
	}
}

func TestVersionCheck(t *testing.T) {
	for _, tc := range []struct {
		current, target string
		expected        bool
	}{
		{"1.10.7", "1.10.7", true},
		{"1.10.8", "1.10.7", true},
		{"1.9.9", "1.10.7", false},
		{"2", "1.10.7", true},
		{"1.10", "1.10.7", false},
		{"", "1.10.7", false},
	} {
		if result := model.VersionCheck(tc.current, tc.target); result != tc.expected {
			t.Errorf("VersionCheck(%s, %s) = %t", tc.current, tc.target, result)
		}
	}
}

func TestDisplayValue(t *testing.T) {
	sel := model.Column{Data: "pos", Type: model.ColumnSelect, Options: model.ColumnOptions{
		Choices: []model.Choice{{ID: "1", Text: "Accountant"}},
	}}
	if v := sel.DisplayValue(model.Record{"pos": int64(1)}); v != "Accountant" {
		t.Errorf("select shows '%s', expected the choice text", v)
	}
	if v := sel.DisplayValue(model.Record{"pos": "9"}); v != "9" {
		t.Errorf("unknown choice shows '%s', expected the raw value", v)
	}
	txt := model.Column{Data: "name", Type: model.ColumnText}
	if v := txt.DisplayValue(model.Record{"name": "Ann"}); v != "Ann" {
		t.Errorf("text shows '%s'", v)
	}
}
