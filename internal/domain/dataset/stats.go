package dataset

import (
	"math"

	"github.com/studyforge/backend/internal/domain/proficiency"
)

// Stats aggregates mastery across a dataset's items.
type Stats struct {
	Total          int
	AverageMastery float64
	Mastered       int
	Learning       int
	Struggling     int
	Untouched      int
}

// Summarize computes aggregate mastery statistics for a set of items.
// The average is rounded to three decimals, matching item scores.
func Summarize(items []Item) Stats {
	stats := Stats{Total: len(items)}
	if len(items) == 0 {
		return stats
	}

	sum := 0.0
	for _, it := range items {
		sum += it.Mastery
		switch proficiency.Classify(it.Mastery) {
		case proficiency.LevelMastered:
			stats.Mastered++
		case proficiency.LevelLearning:
			stats.Learning++
		case proficiency.LevelStruggling:
			stats.Struggling++
		default:
			stats.Untouched++
		}
	}
	stats.AverageMastery = math.Round(sum/float64(len(items))*1000) / 1000
	return stats
}
