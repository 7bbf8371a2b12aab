package providers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
	"github.com/ja-he/rowedit/internal/storage/providers"
)

func TestFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rows", "data.yaml")

	_, err := providers.NewFile("", model.DefaultFields())
	require.ErrorIs(t, err, providers.ErrMissingFilePath)

	p, err := providers.NewFile(path, model.DefaultFields())
	require.NoError(t, err)

	t.Run("missing file loads empty", func(t *testing.T) {
		records, err := p.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("create assigns sequential ids", func(t *testing.T) {
		res, err := p.Save(ctx, model.Record{"name": "Tiger Nixon"})
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, "1", res.ID)

		res, err = p.Save(ctx, model.Record{"name": "Garrett Winters"})
		require.NoError(t, err)
		assert.Equal(t, "2", res.ID)
	})

	t.Run("update by id", func(t *testing.T) {
		res, err := p.Save(ctx, model.Record{"id": int64(1), "name": "Tiger", "status": int64(1)})
		require.NoError(t, err)
		assert.False(t, res.Created)

		records, err := p.Load(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, model.Record{"id": int64(1), "name": "Tiger", "status": int64(1)}, records[0])
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := p.Save(ctx, model.Record{"id": "99", "name": "nobody"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("deleted rows are not loaded", func(t *testing.T) {
		_, err := p.Save(ctx, model.Record{"id": "2", "name": "Garrett Winters", "deleted": int64(1)})
		require.NoError(t, err)

		records, err := p.Load(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Tiger", records[0]["name"])
	})
}

func TestWorkbook(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "staff.xlsx")

	_, err := providers.NewWorkbook(providers.WorkbookConfig{FilePath: path}, model.DefaultFields())
	require.ErrorIs(t, err, providers.ErrMissingSheetName)

	p, err := providers.NewWorkbook(providers.WorkbookConfig{FilePath: path, SheetName: "staff"}, model.DefaultFields())
	require.NoError(t, err)

	records, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	res, err := p.Save(ctx, model.Record{"name": "Ashton Cox", "salary": int64(86000)})
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "1", res.ID)

	_, err = p.Save(ctx, model.Record{"name": "Cedric Kelly"})
	require.NoError(t, err)

	_, err = p.Save(ctx, model.Record{"id": "1", "name": "Ashton Cox", "salary": int64(90000), "status": int64(2)})
	require.NoError(t, err)

	records, err = p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.Record{"id": int64(1), "name": "Ashton Cox", "salary": int64(90000), "status": int64(2)}, records[0])
	assert.Equal(t, model.Record{"id": int64(2), "name": "Cedric Kelly"}, records[1])

	_, err = p.Save(ctx, model.Record{"id": "2", "deleted": int64(1)})
	require.NoError(t, err)
	records, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestHTTP(t *testing.T) {
	ctx := context.Background()

	_, err := providers.NewHTTP(providers.HTTPConfig{}, model.DefaultFields())
	require.ErrorIs(t, err, providers.ErrMissingURL)

	type request struct {
		path      string
		requestID string
		body      model.Record
	}
	var requests []request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		var rec model.Record
		_ = json.Unmarshal(b, &rec)
		requests = append(requests, request{path: r.URL.Path, requestID: r.Header.Get("X-Request-Id"), body: rec})

		switch r.URL.Path {
		case "/rows":
			rec["id"] = 7
			_ = json.NewEncoder(w).Encode(map[string]any{"data": rec})
		case "/rows/broken":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte("name is required"))
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer server.Close()

	p, err := providers.NewHTTP(providers.HTTPConfig{URL: server.URL + "/rows", MaxRetries: 1}, model.DefaultFields())
	require.NoError(t, err)
	p.WithDoer(server.Client())

	t.Run("endpoint", func(t *testing.T) {
		assert.Equal(t, server.URL+"/rows", p.Endpoint(model.Record{"name": "x"}))
		assert.Equal(t, server.URL+"/rows/12", p.Endpoint(model.Record{"id": int64(12)}))
	})

	t.Run("create", func(t *testing.T) {
		requests = nil
		res, err := p.Save(ctx, model.Record{"name": "Airi Satou"})
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, "7", res.ID)
		assert.Equal(t, "Airi Satou", res.Data["name"])

		require.Len(t, requests, 1)
		assert.Equal(t, "/rows", requests[0].path)
		assert.NotEmpty(t, requests[0].requestID)
		assert.NotContains(t, requests[0].body, "id")
	})

	t.Run("update", func(t *testing.T) {
		requests = nil
		res, err := p.Save(ctx, model.Record{"id": "12", "name": "Airi Satou"})
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, "12", res.ID)
		assert.Nil(t, res.Data)

		require.Len(t, requests, 1)
		assert.Equal(t, "/rows/12", requests[0].path)
		assert.Equal(t, "12", requests[0].body["id"])
	})

	t.Run("remote failure", func(t *testing.T) {
		_, err := p.Save(ctx, model.Record{"id": "broken"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, providers.ErrRemote))
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := providers.NewMemory(model.DefaultFields(), model.Record{"id": int64(3), "name": "a"})

	res, err := m.Save(ctx, model.Record{"name": "b"})
	require.NoError(t, err)
	assert.Equal(t, "4", res.ID)

	_, err = m.Save(ctx, model.Record{"id": int64(3), "deleted": int64(1)})
	require.NoError(t, err)

	records, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{"id": int64(4), "name": "b"}}, records)
	assert.Len(t, m.Saves(), 2)

	m.Err = errors.New("offline")
	_, err = m.Save(ctx, model.Record{"name": "c"})
	assert.EqualError(t, err, "offline")
	assert.Len(t, m.Saves(), 3)
}
