package selection

import "github.com/studyforge/backend/internal/domain/dataset"

// Relaxation ladder for review pools: try struggling-only first, then
// include learning items, then give up and use everything.
var reviewThresholds = []float64{0.6, 0.8}

// WeakItems returns the items whose mastery score is below threshold,
// preserving display order.
func WeakItems(items []dataset.Item, threshold float64) []dataset.Item {
	var out []dataset.Item
	for _, it := range items {
		if it.Mastery < threshold {
			out = append(out, it)
		}
	}
	return out
}

// ReviewPool builds a pool of weak items at least target long when
// possible, progressively relaxing the mastery threshold. If even the
// loosest threshold comes up short, the whole item set is returned and
// the caller's count clamping applies.
func ReviewPool(items []dataset.Item, target int) []dataset.Item {
	for _, threshold := range reviewThresholds {
		pool := WeakItems(items, threshold)
		if len(pool) >= target {
			return pool
		}
	}
	out := make([]dataset.Item, len(items))
	copy(out, items)
	return out
}
