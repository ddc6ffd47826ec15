package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/studyforge/backend/internal/domain/dataset"
	"github.com/studyforge/backend/internal/store"
)

func openStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedDataset(t *testing.T, s *store.SQLiteStore, n int) *dataset.Dataset {
	t.Helper()
	ctx := context.Background()

	d, err := s.CreateDataset(ctx, "English Vocabulary")
	if err != nil {
		t.Fatalf("failed to create dataset: %v", err)
	}
	for i := 0; i < n; i++ {
		if _, err := d.AddItem("prompt "+string(rune('A'+i)), "response "+string(rune('A'+i))); err != nil {
			t.Fatalf("failed to add item: %v", err)
		}
	}
	if err := s.SaveItems(ctx, d.ID, d.Items); err != nil {
		t.Fatalf("failed to save items: %v", err)
	}
	return d
}

func TestCreateAndGetDataset(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	d := seedDataset(t, s, 3)

	got, err := s.GetDataset(ctx, d.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "English Vocabulary" {
		t.Errorf("expected name to round-trip, got %q", got.Name)
	}
	if len(got.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got.Items))
	}
	for i, it := range got.Items {
		if it.Seq != i+1 {
			t.Errorf("item %d: expected seq order preserved, got %d", i, it.Seq)
		}
	}
}

func TestCreateDataset_EmptyName(t *testing.T) {
	s := openStore(t)
	if _, err := s.CreateDataset(context.Background(), ""); !errors.Is(err, dataset.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestGetDataset_NotFound(t *testing.T) {
	s := openStore(t)
	if _, err := s.GetDataset(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListDatasets(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	if _, err := s.CreateDataset(ctx, "Kanji"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.CreateDataset(ctx, "Capitals"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	datasets, err := s.ListDatasets(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(datasets))
	}
	if datasets[0].Name != "Capitals" || datasets[1].Name != "Kanji" {
		t.Errorf("expected name ordering, got %q, %q", datasets[0].Name, datasets[1].Name)
	}
}

func TestSaveItems_OverwritesCollection(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	d := seedDataset(t, s, 5)

	// Delete one item and write the whole collection back.
	if err := d.DeleteItem(d.Items[2].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveItems(ctx, d.ID, d.Items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := s.LoadItems(ctx, d.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected overwrite to leave 4 items, got %d", len(items))
	}
	for i, it := range items {
		if it.Seq != i+1 {
			t.Errorf("item %d: expected renumbered seq %d, got %d", i, i+1, it.Seq)
		}
	}
}

func TestSaveItems_PersistsCounters(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	d := seedDataset(t, s, 1)
	d.RecordJudgment(d.Items[0].ID, true)
	d.RecordJudgment(d.Items[0].ID, false)

	if err := s.SaveItems(ctx, d.ID, d.Items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := s.LoadItems(ctx, d.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := items[0]
	if it.CorrectCount != 1 || it.TotalAttempts != 2 || it.Mastery != 0.5 {
		t.Errorf("counters did not round-trip: %+v", it)
	}
}

func TestSaveItems_UnknownDataset(t *testing.T) {
	s := openStore(t)
	err := s.SaveItems(context.Background(), "missing", nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadItems_UnknownDataset(t *testing.T) {
	s := openStore(t)
	if _, err := s.LoadItems(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteDataset(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	d := seedDataset(t, s, 2)

	if err := s.DeleteDataset(ctx, d.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.GetDataset(ctx, d.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected dataset to be gone, got %v", err)
	}
	if err := s.DeleteDataset(ctx, d.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
