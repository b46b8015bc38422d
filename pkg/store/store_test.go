package store_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/store"
	"github.com/goliatone/go-roadmap/pkg/testsupport"
)

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	savedAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	s := openStore(t, store.WithClock(func() time.Time { return savedAt }))

	input := testsupport.ValidInput()
	roadmap := testsupport.SampleRoadmap()
	id, err := s.Save(ctx, input, roadmap)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := store.Record{ID: id, Input: input, Roadmap: roadmap, SavedAt: savedAt}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveNormalizesEmptyLists(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	id, err := s.Save(ctx, testsupport.ValidInput(), model.Roadmap{Title: "X", Timeline: "6-months"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Roadmap.Steps == nil || len(got.Roadmap.Steps) != 0 {
		t.Fatalf("expected empty steps, got %#v", got.Roadmap.Steps)
	}
}

func TestSaveRejectsUntitledRoadmap(t *testing.T) {
	s := openStore(t)
	if _, err := s.Save(context.Background(), testsupport.ValidInput(), model.Roadmap{}); !errors.Is(err, store.ErrEmptyRoadmap) {
		t.Fatalf("expected ErrEmptyRoadmap, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	seq := 0
	s := openStore(t,
		store.WithClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * 1500 * time.Millisecond)
		}),
		store.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("rm-%d", seq)
		}),
	)

	for i := 0; i < 3; i++ {
		roadmap := testsupport.SampleRoadmap()
		roadmap.Title = fmt.Sprintf("Roadmap %d", i+1)
		if _, err := s.Save(ctx, testsupport.ValidInput(), roadmap); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	records, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	if diff := cmp.Diff([]string{"rm-3", "rm-2", "rm-1"}, ids); diff != "" {
		t.Fatalf("list order mismatch (-want +got):\n%s", diff)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 records, got %d", len(limited))
	}
}

func TestGetAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Get, got %v", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from Delete, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	id, err := s.Save(ctx, testsupport.ValidInput(), testsupport.SampleRoadmap())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected record to be gone, got %v", err)
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "roadmaps.db")

	first, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	id, err := first.Save(ctx, testsupport.ValidInput(), testsupport.SampleRoadmap())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := store.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	if _, err := second.Get(ctx, id); err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := store.Open(context.Background(), " "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func openStore(t *testing.T, options ...store.Option) *store.Store {
	t.Helper()

	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "roadmaps.db"), options...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
