package store

import (
	"context"
	"errors"

	"github.com/studyforge/backend/internal/domain/dataset"
)

var ErrNotFound = errors.New("not found")

// Store is the persistence boundary the core talks to. Items are read
// and written per dataset as whole ordered collections; SaveItems has
// full-overwrite semantics, never incremental.
type Store interface {
	CreateDataset(ctx context.Context, name string) (*dataset.Dataset, error)
	GetDataset(ctx context.Context, datasetID string) (*dataset.Dataset, error)
	ListDatasets(ctx context.Context) ([]*dataset.Dataset, error)
	DeleteDataset(ctx context.Context, datasetID string) error

	LoadItems(ctx context.Context, datasetID string) ([]dataset.Item, error)
	SaveItems(ctx context.Context, datasetID string, items []dataset.Item) error

	Close() error
}
