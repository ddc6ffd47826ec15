// Package dataset is the domain model for a named, ordered collection
// of flashcard items. The dataset owns item ordering and the judgment
// counters; mastery scores are recomputed through the proficiency
// package every time a counter changes and are never set directly.
package dataset

import (
	"errors"
	"strings"
	"time"

	"github.com/studyforge/backend/internal/domain/proficiency"
	"github.com/studyforge/backend/internal/id"
)

var (
	ErrEmptyName     = errors.New("dataset name cannot be empty")
	ErrEmptyPrompt   = errors.New("item prompt cannot be empty")
	ErrEmptyResponse = errors.New("item response cannot be empty")
	ErrItemNotFound  = errors.New("item not found in dataset")
)

// Dataset is an ordered sequence of items identified by name.
// It assumes a single writer at a time; callers that share a dataset
// across goroutines must serialize access (see service.Progress).
type Dataset struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Items     []Item
}

// New creates an empty dataset with a generated ID.
func New(name string) (*Dataset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Dataset{
		ID:        id.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Items:     []Item{},
	}, nil
}

// AddItem appends a new item with zeroed counters at the end of the
// display order.
func (d *Dataset) AddItem(prompt, response string) (Item, error) {
	if strings.TrimSpace(prompt) == "" {
		return Item{}, ErrEmptyPrompt
	}
	if strings.TrimSpace(response) == "" {
		return Item{}, ErrEmptyResponse
	}

	item := Item{
		ID:       id.New(),
		Seq:      len(d.Items) + 1,
		Prompt:   prompt,
		Response: response,
	}
	d.Items = append(d.Items, item)
	return item, nil
}

// ItemByID returns a copy of the item with the given ID.
func (d *Dataset) ItemByID(itemID string) (Item, error) {
	for _, it := range d.Items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

// DeleteItem removes an item and renumbers the remaining items so
// sequence numbers stay dense (1..N).
func (d *Dataset) DeleteItem(itemID string) error {
	for i, it := range d.Items {
		if it.ID == itemID {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			d.renumber()
			return nil
		}
	}
	return ErrItemNotFound
}

// RecordJudgment applies one judged attempt to an item: the attempt
// counter always increments, the correct counter only on a correct
// judgment, and the mastery score is recomputed from the counters.
// Returns a copy of the updated item.
func (d *Dataset) RecordJudgment(itemID string, correct bool) (Item, error) {
	for i := range d.Items {
		if d.Items[i].ID != itemID {
			continue
		}
		d.Items[i].TotalAttempts++
		if correct {
			d.Items[i].CorrectCount++
		}
		d.Items[i].Mastery = proficiency.Mastery(d.Items[i].CorrectCount, d.Items[i].TotalAttempts)
		return d.Items[i], nil
	}
	return Item{}, ErrItemNotFound
}

// ResetItem zeroes one item's counters and score.
func (d *Dataset) ResetItem(itemID string) (Item, error) {
	for i := range d.Items {
		if d.Items[i].ID != itemID {
			continue
		}
		d.Items[i].CorrectCount = 0
		d.Items[i].TotalAttempts = 0
		d.Items[i].Mastery = 0.0
		return d.Items[i], nil
	}
	return Item{}, ErrItemNotFound
}

// ResetAll zeroes the counters and scores of every item.
func (d *Dataset) ResetAll() {
	for i := range d.Items {
		d.Items[i].CorrectCount = 0
		d.Items[i].TotalAttempts = 0
		d.Items[i].Mastery = 0.0
	}
}

func (d *Dataset) renumber() {
	for i := range d.Items {
		d.Items[i].Seq = i + 1
	}
}
