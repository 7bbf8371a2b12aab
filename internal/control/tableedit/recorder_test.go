package tableedit_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
)

// recorder is a persistence that hands every saved record to wait.
type recorder struct {
	mu    sync.Mutex
	saves []model.Record
	ch    chan model.Record
	once  sync.Once
}

func (r *recorder) init() {
	r.once.Do(func() { r.ch = make(chan model.Record, 16) })
}

func (r *recorder) Save(ctx context.Context, rec model.Record) (storage.Result, error) {
	r.init()
	r.mu.Lock()
	r.saves = append(r.saves, rec.Clone())
	r.mu.Unlock()
	r.ch <- rec.Clone()
	return storage.Result{}, nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func (r *recorder) wait(t *testing.T) model.Record {
	t.Helper()
	r.init()
	select {
	case rec := <-r.ch:
		return rec
	case <-time.After(5 * time.Second):
		t.Fatal("no record was saved")
		return nil
	}
}
