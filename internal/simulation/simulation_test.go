package simulation_test

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/studyforge/backend/internal/registry"
	"github.com/studyforge/backend/internal/selection"
	"github.com/studyforge/backend/internal/service"
	"github.com/studyforge/backend/internal/simulation"
	"github.com/studyforge/backend/internal/store"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "sim.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	d, err := st.CreateDataset(ctx, "Simulation Deck")
	if err != nil {
		t.Fatalf("failed to create dataset: %v", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := d.AddItem("prompt "+string(rune('A'+i)), "response "+string(rune('A'+i))); err != nil {
			t.Fatalf("failed to add item: %v", err)
		}
	}
	if err := st.SaveItems(ctx, d.ID, d.Items); err != nil {
		t.Fatalf("failed to save items: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := registry.New(time.Hour, nil)
	progress := service.NewProgressService(st, logger)
	sel := selection.New(rand.New(rand.NewSource(1)))

	cfg := simulation.Config{Sessions: 6, Questions: 4, Workers: 3}
	report, err := simulation.Run(ctx, st, reg, progress, sel, d.ID, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Failed != 0 {
		t.Fatalf("expected no failed sessions, got %d", report.Failed)
	}
	if report.Judged != cfg.Sessions*cfg.Questions {
		t.Errorf("expected %d judgments, got %d", cfg.Sessions*cfg.Questions, report.Judged)
	}
	// Judgments alternate starting correct: indices 0 and 2 of 4.
	if report.Correct != cfg.Sessions*2 {
		t.Errorf("expected %d correct judgments, got %d", cfg.Sessions*2, report.Correct)
	}

	// Every judgment must have landed in the store despite concurrent
	// sessions writing to the same dataset.
	items, err := st.LoadItems(ctx, d.ID)
	if err != nil {
		t.Fatalf("failed to load items: %v", err)
	}
	total := 0
	for _, it := range items {
		total += it.TotalAttempts
	}
	if total != cfg.Sessions*cfg.Questions {
		t.Errorf("lost judgments under concurrency: %d attempts persisted, want %d", total, cfg.Sessions*cfg.Questions)
	}

	if reg.Len() != cfg.Sessions {
		t.Errorf("expected %d live sessions in the registry, got %d", cfg.Sessions, reg.Len())
	}
}
