package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/rowedit/internal/config"
	"github.com/ja-he/rowedit/internal/control/tableedit"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage/providers"
)

func defaultColumns(t *testing.T) []model.Column {
	t.Helper()
	columns, err := config.Default(config.Dark).ModelColumns()
	require.NoError(t, err)
	return columns
}

func TestDiffRecords(t *testing.T) {
	fields := model.DefaultFields()
	baseline := []model.Record{
		{"id": 1, "name": "A", "status": 0},
		{"id": 2, "name": "B", "status": 0},
	}
	current := []model.Record{
		{"id": 2, "name": "B2", "status": 0},
		{"id": 1, "name": "A", "status": 0},
		{"name": "C"},
	}

	entries, err := diffRecords(defaultColumns(t), fields, baseline, current)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Row)
	assert.Equal(t, "draft", entries[0].Status)
	assert.Equal(t, "B2", entries[0].Data["name"])

	assert.Equal(t, 2, entries[1].Row)
	assert.Equal(t, "unpersisted", entries[1].Status)
	assert.Equal(t, "C", entries[1].Data["name"])
}

func TestApplyStatus(t *testing.T) {
	table := grid.NewTable(defaultColumns(t), []model.Record{
		{"id": 1, "name": "A", "status": 0},
		{"id": 2, "name": "B", "status": 1},
	})
	editor, err := tableedit.New(table, tableedit.Options{})
	require.NoError(t, err)

	changed, err := applyStatus(editor, "lock", []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, changed)
	s, _ := editor.Status(0)
	assert.Equal(t, model.StatusLocked, s)

	_, err = applyStatus(editor, "explode", []int{0})
	assert.Error(t, err)
}

func TestSaveRows(t *testing.T) {
	fields := model.DefaultFields()
	table := grid.NewTable(defaultColumns(t), []model.Record{
		{"id": 1, "name": "A", "status": 0},
		{"id": 2, "name": "B", "status": 0},
	})
	editor, err := tableedit.New(table, tableedit.Options{Fields: fields})
	require.NoError(t, err)
	changed, err := applyStatus(editor, "publish", []int{1})
	require.NoError(t, err)

	memory := providers.NewMemory(fields)
	require.NoError(t, saveRows(context.Background(), memory, editor, changed))

	saves := memory.Saves()
	require.Len(t, saves, 1)
	assert.Equal(t, "B", saves[0]["name"])
	assert.Equal(t, model.StatusPublished.Value(), saves[0]["status"])
	assert.Empty(t, editor.DirtyKeys())
}

func TestOpenPersistence(t *testing.T) {
	fields := model.DefaultFields()
	dataPath := filepath.Join(t.TempDir(), "rows.yaml")

	t.Run("none", func(t *testing.T) {
		p, err := openPersistence(config.Persistence{Backend: config.BackendNone}, dataPath, fields, false)
		require.NoError(t, err)
		assert.Nil(t, p)
	})
	t.Run("dry run", func(t *testing.T) {
		p, err := openPersistence(config.Persistence{Backend: config.BackendFile}, dataPath, fields, true)
		require.NoError(t, err)
		assert.IsType(t, &providers.Memory{}, p)
	})
	t.Run("file defaults to data path", func(t *testing.T) {
		p, err := openPersistence(config.Persistence{Backend: config.BackendFile}, dataPath, fields, false)
		require.NoError(t, err)
		require.IsType(t, &providers.File{}, p)
		assert.Equal(t, dataPath, p.(*providers.File).Path())
	})
	t.Run("workbook", func(t *testing.T) {
		p, err := openPersistence(config.Persistence{Backend: config.BackendWorkbook, Path: "rows.xlsx"}, dataPath, fields, false)
		require.NoError(t, err)
		assert.IsType(t, &providers.Workbook{}, p)
	})
	t.Run("http needs a url", func(t *testing.T) {
		_, err := openPersistence(config.Persistence{Backend: config.BackendHTTP}, dataPath, fields, false)
		assert.ErrorIs(t, err, providers.ErrMissingURL)
	})
	t.Run("bad timeout", func(t *testing.T) {
		_, err := openPersistence(config.Persistence{Backend: config.BackendHTTP, URL: "http://x", Timeout: "soon"}, dataPath, fields, false)
		assert.Error(t, err)
	})
	t.Run("unknown", func(t *testing.T) {
		_, err := openPersistence(config.Persistence{Backend: "carrier-pigeon"}, dataPath, fields, false)
		assert.Error(t, err)
	})
}

func TestOpenSource(t *testing.T) {
	fields := model.DefaultFields()
	cfg := config.Default(config.Dark)

	s, err := openSource(cfg, "rows.XLSX", fields)
	require.NoError(t, err)
	assert.IsType(t, &providers.Workbook{}, s)

	s, err = openSource(cfg, "rows.json", fields)
	require.NoError(t, err)
	assert.IsType(t, &providers.File{}, s)
}
