// Package selection chooses subsets of dataset items for quiz sheets
// and test sessions. All methods operate on snapshots: the returned
// slice holds copies and never aliases the caller's backing array.
package selection

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/studyforge/backend/internal/domain/dataset"
)

// Method names a selection algorithm.
type Method string

const (
	MethodSequential Method = "sequential"
	MethodRandom     Method = "random"
	MethodWeighted   Method = "weighted"
)

// Range restricts selection to a contiguous run of the dataset's
// display order. Bounds are 1-based and inclusive.
type Range struct {
	Start int
	End   int
}

var (
	ErrNoEligibleItems = errors.New("no eligible items")
	ErrInvalidCount    = errors.New("invalid count")
	ErrInvalidRange    = errors.New("invalid range")
	ErrUnknownMethod   = errors.New("unknown selection method")
)

// Floor weight keeps fully mastered items selectable under weighted
// sampling: weight = 1.0 - mastery + floorWeight, so a 1.0-mastery
// item still draws at 0.1 and a 0.0-mastery item at 1.1.
const floorWeight = 0.1

// Selector runs the selection algorithms. The random source is
// injectable so tests can be deterministic. One Selector is shared
// across requests, and *rand.Rand is not safe for concurrent use, so
// all draws go through the mutex.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Selector. A nil rng falls back to a time-seeded source.
func New(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// Select returns count items chosen from items by the given method,
// optionally restricted to a display-order range first. The result
// length is min(count, eligible); count < 1 is a validation error.
func (s *Selector) Select(items []dataset.Item, count int, method Method, bounds *Range) ([]dataset.Item, error) {
	eligible, err := restrict(items, bounds)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleItems
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if count > len(eligible) {
		count = len(eligible)
	}

	switch method {
	case MethodSequential:
		return eligible[:count:count], nil
	case MethodRandom:
		return s.sampleUniform(eligible, count), nil
	case MethodWeighted:
		return s.sampleWeighted(eligible, count), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// restrict validates the range against the item count and returns a
// copy of the bounded sub-sequence. Out-of-bounds or inverted ranges
// are configuration errors, never silently clamped.
func restrict(items []dataset.Item, bounds *Range) ([]dataset.Item, error) {
	if bounds == nil {
		out := make([]dataset.Item, len(items))
		copy(out, items)
		return out, nil
	}
	if bounds.Start < 1 || bounds.Start > len(items) {
		return nil, fmt.Errorf("%w: start %d out of bounds [1, %d]", ErrInvalidRange, bounds.Start, len(items))
	}
	if bounds.End < 1 || bounds.End > len(items) {
		return nil, fmt.Errorf("%w: end %d out of bounds [1, %d]", ErrInvalidRange, bounds.End, len(items))
	}
	if bounds.Start > bounds.End {
		return nil, fmt.Errorf("%w: start %d after end %d", ErrInvalidRange, bounds.Start, bounds.End)
	}
	out := make([]dataset.Item, bounds.End-bounds.Start+1)
	copy(out, items[bounds.Start-1:bounds.End])
	return out, nil
}

// sampleUniform draws count distinct items without replacement; the
// output order is randomized.
func (s *Selector) sampleUniform(pool []dataset.Item, count int) []dataset.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]dataset.Item, 0, count)
	for _, idx := range s.rng.Perm(len(pool))[:count] {
		out = append(out, pool[idx])
	}
	return out
}

// sampleWeighted draws count items without replacement, each draw
// walking the cumulative weights. Linear scan is fine at the dataset
// sizes this tool sees (hundreds of items).
func (s *Selector) sampleWeighted(pool []dataset.Item, count int) []dataset.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make([]dataset.Item, len(pool))
	copy(remaining, pool)

	out := make([]dataset.Item, 0, count)
	for len(out) < count {
		total := 0.0
		for _, it := range remaining {
			total += itemWeight(it)
		}

		var idx int
		if total <= 0 {
			// Degenerate weights: fall back to a uniform pick.
			idx = s.rng.Intn(len(remaining))
		} else {
			r := s.rng.Float64() * total
			cum := 0.0
			idx = len(remaining) - 1
			for i, it := range remaining {
				cum += itemWeight(it)
				if r < cum {
					idx = i
					break
				}
			}
		}

		out = append(out, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return out
}

func itemWeight(it dataset.Item) float64 {
	w := 1.0 - it.Mastery + floorWeight
	if w < floorWeight {
		w = floorWeight
	}
	return w
}
