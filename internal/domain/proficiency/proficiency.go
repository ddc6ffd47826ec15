// Package proficiency converts per-item judgment counters into a
// mastery score and a coarse level classification. All functions are
// pure; callers persist the results.
package proficiency

import "math"

// Level buckets a mastery score for display and weak-item filtering.
type Level string

const (
	LevelMastered   Level = "mastered"
	LevelLearning   Level = "learning"
	LevelStruggling Level = "struggling"
	LevelUntouched  Level = "untouched"
)

// Inclusive lower bounds for the level buckets.
const (
	MasteredThreshold = 0.8
	LearningThreshold = 0.6
)

// Mastery computes the mastery score for an item as the correct ratio
// rounded to three decimals. An item that has never been attempted
// scores 0.0. Counters outside the valid range (correct > attempts,
// negative values) are clamped rather than rejected.
func Mastery(correct, attempts int) float64 {
	if attempts <= 0 {
		return 0.0
	}
	if correct < 0 {
		correct = 0
	}
	if correct > attempts {
		correct = attempts
	}
	return math.Round(float64(correct)/float64(attempts)*1000) / 1000
}

// Classify maps a mastery score to its level. Bounds are inclusive at
// the lower edge: 0.8 is mastered, 0.6 is learning, anything above
// zero is struggling, and exactly zero means untouched.
func Classify(score float64) Level {
	switch {
	case score >= MasteredThreshold:
		return LevelMastered
	case score >= LearningThreshold:
		return LevelLearning
	case score > 0:
		return LevelStruggling
	default:
		return LevelUntouched
	}
}
