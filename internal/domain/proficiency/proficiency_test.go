package proficiency_test

import (
	"testing"

	"github.com/studyforge/backend/internal/domain/proficiency"
)

func TestMastery(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		attempts int
		want     float64
	}{
		{"never attempted", 0, 0, 0.0},
		{"all correct", 5, 5, 1.0},
		{"all incorrect", 0, 4, 0.0},
		{"three of five", 3, 5, 0.6},
		{"one of three rounds to three decimals", 1, 3, 0.333},
		{"two of three rounds up", 2, 3, 0.667},
		{"one of two", 1, 2, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := proficiency.Mastery(tt.correct, tt.attempts)
			if got != tt.want {
				t.Errorf("Mastery(%d, %d) = %v, want %v", tt.correct, tt.attempts, got, tt.want)
			}
		})
	}
}

func TestMastery_ClampsInvalidCounters(t *testing.T) {
	if got := proficiency.Mastery(5, 3); got != 1.0 {
		t.Errorf("expected correct > attempts to clamp to 1.0, got %v", got)
	}
	if got := proficiency.Mastery(-2, 3); got != 0.0 {
		t.Errorf("expected negative correct to clamp to 0.0, got %v", got)
	}
	if got := proficiency.Mastery(1, -1); got != 0.0 {
		t.Errorf("expected negative attempts to score 0.0, got %v", got)
	}
}

func TestMastery_StaysInRange(t *testing.T) {
	for attempts := 0; attempts <= 20; attempts++ {
		for correct := 0; correct <= attempts; correct++ {
			got := proficiency.Mastery(correct, attempts)
			if got < 0.0 || got > 1.0 {
				t.Fatalf("Mastery(%d, %d) = %v, out of [0, 1]", correct, attempts, got)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  proficiency.Level
	}{
		{0.0, proficiency.LevelUntouched},
		{0.001, proficiency.LevelStruggling},
		{0.5, proficiency.LevelStruggling},
		{0.599, proficiency.LevelStruggling},
		{0.6, proficiency.LevelLearning},
		{0.799, proficiency.LevelLearning},
		{0.8, proficiency.LevelMastered},
		{1.0, proficiency.LevelMastered},
	}

	for _, tt := range tests {
		if got := proficiency.Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
