// Package testsession drives one interactive self-graded test run.
//
// Each question walks pending → revealed → judged; the session itself
// is a forward-only cursor over its question snapshot. Completion is a
// derived condition (last question judged), not a stored flag, except
// when Finish forces early termination.
package testsession

import (
	"errors"
	"sync"
	"time"

	"github.com/studyforge/backend/internal/domain/dataset"
)

// State is the per-question lifecycle tag.
type State string

const (
	StatePending  State = "pending"
	StateRevealed State = "revealed"
	StateJudged   State = "judged"
)

// Judgment records the user's self-assessment of one question.
type Judgment string

const (
	JudgmentUnset     Judgment = ""
	JudgmentCorrect   Judgment = "correct"
	JudgmentIncorrect Judgment = "incorrect"
)

var (
	ErrNoQuestions     = errors.New("session needs at least one question")
	ErrAlreadyRevealed = errors.New("question already revealed")
	ErrAlreadyJudged   = errors.New("question already judged")
	ErrNotJudged       = errors.New("current question not judged yet")
	ErrSessionFinished = errors.New("session already finished")
)

// Session is the in-memory state for one test run. Questions are a
// snapshot taken at creation: later edits to the source dataset do not
// reach a running session. Methods are safe for concurrent use; the
// registry hands the same *Session to every request for its token.
type Session struct {
	ID        string
	DatasetID string
	Config    Config
	CreatedAt time.Time

	mu        sync.Mutex
	questions []dataset.Item
	states    []State
	judgments []Judgment
	cursor    int
	score     int
	finished  bool
}

// New creates a session over a snapshot of the given items with every
// question pending and the cursor on the first one.
func New(sessionID, datasetID string, items []dataset.Item, cfg Config, now time.Time) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrNoQuestions
	}
	if cfg.Orientation == "" {
		cfg.Orientation = PromptToResponse
	}

	questions := make([]dataset.Item, len(items))
	copy(questions, items)

	states := make([]State, len(items))
	for i := range states {
		states[i] = StatePending
	}

	return &Session{
		ID:        sessionID,
		DatasetID: datasetID,
		Config:    cfg,
		CreatedAt: now,
		questions: questions,
		states:    states,
		judgments: make([]Judgment, len(items)),
	}, nil
}

// Reveal shows the answer for the current question. Valid only while
// the question is still pending.
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return ErrSessionFinished
	}
	switch s.states[s.cursor] {
	case StateRevealed:
		return ErrAlreadyRevealed
	case StateJudged:
		return ErrAlreadyJudged
	}
	s.states[s.cursor] = StateRevealed
	return nil
}

// Judge records the self-assessment for the current question and moves
// it to the judged state. Valid from pending or revealed. Returns a
// copy of the judged item so the caller can write the attempt back to
// the item store.
func (s *Session) Judge(correct bool) (dataset.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.judgeLocked(correct)
}

func (s *Session) judgeLocked(correct bool) (dataset.Item, error) {
	if s.finished {
		return dataset.Item{}, ErrSessionFinished
	}
	if s.states[s.cursor] == StateJudged {
		return dataset.Item{}, ErrAlreadyJudged
	}

	s.states[s.cursor] = StateJudged
	if correct {
		s.judgments[s.cursor] = JudgmentCorrect
		s.score++
	} else {
		s.judgments[s.cursor] = JudgmentIncorrect
	}
	return s.questions[s.cursor], nil
}

// Skip judges the current question incorrect and advances in one step.
// The returned bool reports whether the session is now complete.
func (s *Session) Skip() (dataset.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.judgeLocked(false)
	if err != nil {
		return dataset.Item{}, false, err
	}
	done, err := s.advanceLocked()
	if err != nil {
		return dataset.Item{}, false, err
	}
	return item, done, nil
}

// Advance moves the cursor to the next question once the current one
// is judged. At the last question it signals completion instead; the
// cursor never moves backward or past the end.
func (s *Session) Advance() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked()
}

func (s *Session) advanceLocked() (bool, error) {
	if s.finished {
		return false, ErrSessionFinished
	}
	if s.states[s.cursor] != StateJudged {
		return false, ErrNotJudged
	}
	if s.cursor == len(s.questions)-1 {
		return true, nil
	}
	s.cursor++
	return false, nil
}

// Finish force-terminates the session regardless of cursor position.
// Idempotent; all other operations error afterwards.
func (s *Session) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
}

// Current returns a copy of the question under the cursor and its index.
func (s *Session) Current() (dataset.Item, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.cursor], s.cursor
}

// Snapshot is a consistent read-only view of session state.
type Snapshot struct {
	ID          string
	DatasetID   string
	Orientation Orientation
	CreatedAt   time.Time
	Questions   []dataset.Item
	States      []State
	Judgments   []Judgment
	Cursor      int
	Score       int
	Completed   bool
	Finished    bool
}

// View captures the whole session state under one lock acquisition.
func (s *Session) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := make([]dataset.Item, len(s.questions))
	copy(questions, s.questions)
	states := make([]State, len(s.states))
	copy(states, s.states)
	judgments := make([]Judgment, len(s.judgments))
	copy(judgments, s.judgments)

	return Snapshot{
		ID:          s.ID,
		DatasetID:   s.DatasetID,
		Orientation: s.Config.Orientation,
		CreatedAt:   s.CreatedAt,
		Questions:   questions,
		States:      states,
		Judgments:   judgments,
		Cursor:      s.cursor,
		Score:       s.score,
		Completed:   s.completedLocked(),
		Finished:    s.finished,
	}
}

// Completed reports whether every question has been walked and judged,
// or the session was finished early.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedLocked()
}

func (s *Session) completedLocked() bool {
	if s.finished {
		return true
	}
	return s.cursor == len(s.questions)-1 && s.states[s.cursor] == StateJudged
}

// Score returns the count of correct judgments so far.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}
