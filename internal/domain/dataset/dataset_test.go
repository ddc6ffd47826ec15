package dataset_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/studyforge/backend/internal/domain/dataset"
)

func buildDataset(t *testing.T, n int) *dataset.Dataset {
	t.Helper()
	d, err := dataset.New("Vocabulary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i <= n; i++ {
		if _, err := d.AddItem(fmt.Sprintf("prompt %d", i), fmt.Sprintf("response %d", i)); err != nil {
			t.Fatalf("failed to add item: %v", err)
		}
	}
	return d
}

func TestNew(t *testing.T) {
	d, err := dataset.New("Kanji N2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Name != "Kanji N2" {
		t.Errorf("expected name %q, got %q", "Kanji N2", d.Name)
	}
	if d.ID == "" {
		t.Error("expected non-empty ID")
	}
	if len(d.Items) != 0 {
		t.Errorf("expected empty dataset, got %d items", len(d.Items))
	}
}

func TestNew_EmptyName(t *testing.T) {
	if _, err := dataset.New("   "); !errors.Is(err, dataset.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestAddItem(t *testing.T) {
	d := buildDataset(t, 3)

	for i, it := range d.Items {
		if it.Seq != i+1 {
			t.Errorf("item %d: expected seq %d, got %d", i, i+1, it.Seq)
		}
		if it.ID == "" {
			t.Errorf("item %d: expected non-empty ID", i)
		}
		if it.CorrectCount != 0 || it.TotalAttempts != 0 || it.Mastery != 0.0 {
			t.Errorf("item %d: expected zeroed counters, got %+v", i, it)
		}
	}
}

func TestAddItem_RequiredFields(t *testing.T) {
	d := buildDataset(t, 0)

	if _, err := d.AddItem("", "answer"); !errors.Is(err, dataset.ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
	if _, err := d.AddItem("question", "  "); !errors.Is(err, dataset.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
	if len(d.Items) != 0 {
		t.Error("expected no items after failed adds")
	}
}

func TestDeleteItem_Renumbers(t *testing.T) {
	d := buildDataset(t, 5)
	deleted := d.Items[2] // display order #3

	if err := d.DeleteItem(deleted.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(d.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(d.Items))
	}
	for i, it := range d.Items {
		if it.Seq != i+1 {
			t.Errorf("item %d: expected dense seq %d, got %d", i, i+1, it.Seq)
		}
		if it.ID == deleted.ID {
			t.Error("deleted item still present")
		}
	}
}

func TestDeleteItem_NotFound(t *testing.T) {
	d := buildDataset(t, 2)
	if err := d.DeleteItem("missing"); !errors.Is(err, dataset.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRecordJudgment(t *testing.T) {
	d := buildDataset(t, 1)
	itemID := d.Items[0].ID

	item, err := d.RecordJudgment(itemID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.CorrectCount != 1 || item.TotalAttempts != 1 || item.Mastery != 1.0 {
		t.Errorf("after correct judgment: %+v", item)
	}

	item, err = d.RecordJudgment(itemID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.CorrectCount != 1 || item.TotalAttempts != 2 || item.Mastery != 0.5 {
		t.Errorf("after incorrect judgment: expected 1/2 mastery 0.5, got %+v", item)
	}
}

func TestRecordJudgment_UnknownItem(t *testing.T) {
	d := buildDataset(t, 1)
	if _, err := d.RecordJudgment("missing", true); !errors.Is(err, dataset.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestResetItem(t *testing.T) {
	d := buildDataset(t, 2)
	itemID := d.Items[0].ID
	d.RecordJudgment(itemID, true)
	d.RecordJudgment(itemID, true)

	item, err := d.ResetItem(itemID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.CorrectCount != 0 || item.TotalAttempts != 0 || item.Mastery != 0.0 {
		t.Errorf("expected zeroed counters after reset, got %+v", item)
	}
}

func TestResetAll(t *testing.T) {
	d := buildDataset(t, 3)
	for _, it := range d.Items {
		d.RecordJudgment(it.ID, true)
	}

	d.ResetAll()

	for i, it := range d.Items {
		if it.CorrectCount != 0 || it.TotalAttempts != 0 || it.Mastery != 0.0 {
			t.Errorf("item %d not reset: %+v", i, it)
		}
	}
}

func TestSummarize(t *testing.T) {
	d := buildDataset(t, 4)

	// item 0: 1/1 = 1.0 (mastered)
	d.RecordJudgment(d.Items[0].ID, true)
	// item 1: 2/3 = 0.667 (learning)
	d.RecordJudgment(d.Items[1].ID, true)
	d.RecordJudgment(d.Items[1].ID, true)
	d.RecordJudgment(d.Items[1].ID, false)
	// item 2: 1/3 = 0.333 (struggling)
	d.RecordJudgment(d.Items[2].ID, true)
	d.RecordJudgment(d.Items[2].ID, false)
	d.RecordJudgment(d.Items[2].ID, false)
	// item 3: untouched

	stats := dataset.Summarize(d.Items)

	if stats.Total != 4 {
		t.Errorf("expected total 4, got %d", stats.Total)
	}
	if stats.Mastered != 1 || stats.Learning != 1 || stats.Struggling != 1 || stats.Untouched != 1 {
		t.Errorf("unexpected level counts: %+v", stats)
	}
	if stats.AverageMastery != 0.5 {
		t.Errorf("expected average mastery 0.5, got %v", stats.AverageMastery)
	}
}

func TestSummarize_Empty(t *testing.T) {
	stats := dataset.Summarize(nil)
	if stats.Total != 0 || stats.AverageMastery != 0.0 {
		t.Errorf("expected zero stats for empty input, got %+v", stats)
	}
}
