// Package service holds the write path for dataset items. The store
// has no per-dataset locking of its own, so every read-modify-write
// against a dataset's items goes through ProgressService, which
// serializes them per dataset ID.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/studyforge/backend/internal/domain/dataset"
	"github.com/studyforge/backend/internal/store"
)

// ProgressService applies judgments and item mutations to a dataset
// and persists the result. A failed save leaves memory and storage out
// of sync; the error is surfaced and never swallowed.
type ProgressService struct {
	store  store.Store
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex // datasetID → write lock
}

// NewProgressService creates a ProgressService.
func NewProgressService(s store.Store, logger *slog.Logger) *ProgressService {
	return &ProgressService{
		store:  s,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// datasetLock returns the mutex serializing writes to one dataset.
func (ps *ProgressService) datasetLock(datasetID string) *sync.Mutex {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	lock, ok := ps.locks[datasetID]
	if !ok {
		lock = &sync.Mutex{}
		ps.locks[datasetID] = lock
	}
	return lock
}

// mutate runs fn against the dataset's current items under the
// per-dataset lock and persists the full collection afterwards.
func (ps *ProgressService) mutate(ctx context.Context, datasetID string, fn func(d *dataset.Dataset) error) error {
	lock := ps.datasetLock(datasetID)
	lock.Lock()
	defer lock.Unlock()

	items, err := ps.store.LoadItems(ctx, datasetID)
	if err != nil {
		return err
	}

	d := &dataset.Dataset{ID: datasetID, Items: items}
	if err := fn(d); err != nil {
		return err
	}

	if err := ps.store.SaveItems(ctx, datasetID, d.Items); err != nil {
		return fmt.Errorf("persist dataset %s: %w", datasetID, err)
	}
	return nil
}

// RecordJudgment applies one judged attempt to an item, recomputes its
// mastery and persists the dataset. The item is addressed by its
// stable ID, never by prompt/response text.
func (ps *ProgressService) RecordJudgment(ctx context.Context, datasetID, itemID string, correct bool) (dataset.Item, error) {
	var updated dataset.Item
	err := ps.mutate(ctx, datasetID, func(d *dataset.Dataset) error {
		var err error
		updated, err = d.RecordJudgment(itemID, correct)
		return err
	})
	if err != nil {
		return dataset.Item{}, err
	}

	ps.logger.Debug("recorded judgment",
		"dataset_id", datasetID,
		"item_id", itemID,
		"correct", correct,
		"mastery", updated.Mastery,
	)
	return updated, nil
}

// RecordResults applies a batch of judgments (item ID → correct) in a
// single load/save cycle, as used by manual entry of printed quiz
// results. Unknown item IDs are skipped; the count of applied
// judgments is returned.
func (ps *ProgressService) RecordResults(ctx context.Context, datasetID string, results map[string]bool) (int, error) {
	applied := 0
	err := ps.mutate(ctx, datasetID, func(d *dataset.Dataset) error {
		for itemID, correct := range results {
			if _, err := d.RecordJudgment(itemID, correct); err == nil {
				applied++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	ps.logger.Info("recorded quiz results", "dataset_id", datasetID, "applied", applied)
	return applied, nil
}

// AddItem appends a new item to the dataset and persists it.
func (ps *ProgressService) AddItem(ctx context.Context, datasetID, prompt, response string) (dataset.Item, error) {
	var added dataset.Item
	err := ps.mutate(ctx, datasetID, func(d *dataset.Dataset) error {
		var err error
		added, err = d.AddItem(prompt, response)
		return err
	})
	if err != nil {
		return dataset.Item{}, err
	}
	return added, nil
}

// DeleteItem removes an item, renumbers the rest and persists.
func (ps *ProgressService) DeleteItem(ctx context.Context, datasetID, itemID string) error {
	return ps.mutate(ctx, datasetID, func(d *dataset.Dataset) error {
		return d.DeleteItem(itemID)
	})
}

// ResetItem zeroes one item's counters and persists.
func (ps *ProgressService) ResetItem(ctx context.Context, datasetID, itemID string) (dataset.Item, error) {
	var reset dataset.Item
	err := ps.mutate(ctx, datasetID, func(d *dataset.Dataset) error {
		var err error
		reset, err = d.ResetItem(itemID)
		return err
	})
	if err != nil {
		return dataset.Item{}, err
	}
	return reset, nil
}

// ResetDataset zeroes every item's counters and persists.
func (ps *ProgressService) ResetDataset(ctx context.Context, datasetID string) error {
	return ps.mutate(ctx, datasetID, func(d *dataset.Dataset) error {
		d.ResetAll()
		return nil
	})
}
