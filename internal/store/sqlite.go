package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/studyforge/backend/internal/domain/dataset"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    dataset_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    prompt TEXT NOT NULL,
    response TEXT NOT NULL,
    correct_count INTEGER NOT NULL DEFAULT 0,
    total_attempts INTEGER NOT NULL DEFAULT 0,
    mastery REAL NOT NULL DEFAULT 0,
    FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_items_dataset ON items(dataset_id, seq);
`

// SQLiteStore persists datasets and their items in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and if needed initializes) the database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer; a single pooled connection avoids
	// "database is locked" errors under concurrent callers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Datasets
// ============================================================================

func (s *SQLiteStore) CreateDataset(ctx context.Context, name string) (*dataset.Dataset, error) {
	d, err := dataset.New(name)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO datasets (id, name, created_at) VALUES (?, ?, ?)",
		d.ID, d.Name, d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) GetDataset(ctx context.Context, datasetID string) (*dataset.Dataset, error) {
	d, err := s.scanDataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, datasetID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return d, nil
}

func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]*dataset.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM datasets ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []*dataset.Dataset
	for rows.Next() {
		d, err := scanDatasetRow(rows)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

func (s *SQLiteStore) DeleteDataset(ctx context.Context, datasetID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE dataset_id = ?", datasetID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM datasets WHERE id = ?", datasetID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// ============================================================================
// Items
// ============================================================================

func (s *SQLiteStore) LoadItems(ctx context.Context, datasetID string) ([]dataset.Item, error) {
	if _, err := s.scanDataset(ctx, datasetID); err != nil {
		return nil, err
	}
	return s.loadItems(ctx, datasetID)
}

// SaveItems replaces the dataset's whole item collection with the
// given ordered sequence.
func (s *SQLiteStore) SaveItems(ctx context.Context, datasetID string, items []dataset.Item) error {
	if _, err := s.scanDataset(ctx, datasetID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE dataset_id = ?", datasetID); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	for _, it := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, dataset_id, seq, prompt, response, correct_count, total_attempts, mastery)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, datasetID, it.Seq, it.Prompt, it.Response, it.CorrectCount, it.TotalAttempts, it.Mastery,
		)
		if err != nil {
			return fmt.Errorf("save item %s: %w", it.ID, err)
		}
	}

	return tx.Commit()
}

// ============================================================================
// helpers
// ============================================================================

func (s *SQLiteStore) scanDataset(ctx context.Context, datasetID string) (*dataset.Dataset, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM datasets WHERE id = ?", datasetID)

	var d dataset.Dataset
	var createdAt string
	err := row.Scan(&d.ID, &d.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &d, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDatasetRow(row rowScanner) (*dataset.Dataset, error) {
	var d dataset.Dataset
	var createdAt string
	if err := row.Scan(&d.ID, &d.Name, &createdAt); err != nil {
		return nil, err
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &d, nil
}

func (s *SQLiteStore) loadItems(ctx context.Context, datasetID string) ([]dataset.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seq, prompt, response, correct_count, total_attempts, mastery
		 FROM items WHERE dataset_id = ? ORDER BY seq`,
		datasetID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []dataset.Item
	for rows.Next() {
		var it dataset.Item
		if err := rows.Scan(&it.ID, &it.Seq, &it.Prompt, &it.Response, &it.CorrectCount, &it.TotalAttempts, &it.Mastery); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

var _ Store = (*SQLiteStore)(nil)
