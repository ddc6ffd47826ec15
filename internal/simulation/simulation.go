// Package simulation drives complete self-graded test sessions through
// the real components — store, selection, registry, progress service —
// to exercise the whole pipeline under concurrent load.
package simulation

import (
	"context"
	"fmt"

	"github.com/studyforge/backend/internal/domain/testsession"
	"github.com/studyforge/backend/internal/registry"
	"github.com/studyforge/backend/internal/selection"
	"github.com/studyforge/backend/internal/service"
	"github.com/studyforge/backend/internal/store"
	"github.com/studyforge/backend/internal/worker"
)

// Config sets the shape of one simulation run.
type Config struct {
	Sessions  int // concurrent test sessions to run
	Questions int // questions per session
	Workers   int // worker goroutines driving sessions
}

// SessionOutcome is the result of one simulated session.
type SessionOutcome struct {
	SessionID string
	Judged    int
	Correct   int
	Err       error
}

// Report aggregates a whole run.
type Report struct {
	Sessions int
	Judged   int
	Correct  int
	Failed   int
}

// Run executes cfg.Sessions complete test runs against datasetID.
// Questions alternate correct/incorrect starting with correct, so the
// persisted counters are deterministic for a given configuration.
func Run(ctx context.Context, st store.Store, reg *registry.Registry, progress *service.ProgressService, sel *selection.Selector, datasetID string, cfg Config) (Report, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 2
	}

	pool := worker.NewPool[SessionOutcome](cfg.Workers, cfg.Sessions)
	defer pool.Close()

	for i := 0; i < cfg.Sessions; i++ {
		pool.Submit(fmt.Sprintf("session-%d", i), func() SessionOutcome {
			return runSession(ctx, st, reg, progress, sel, datasetID, cfg.Questions)
		})
	}

	report := Report{Sessions: cfg.Sessions}
	for i := 0; i < cfg.Sessions; i++ {
		result := <-pool.Results()
		outcome := result.Output
		if outcome.Err != nil {
			report.Failed++
			continue
		}
		report.Judged += outcome.Judged
		report.Correct += outcome.Correct
	}
	return report, nil
}

// runSession walks one session front to back: reveal, judge, advance,
// writing every judgment back through the progress service.
func runSession(ctx context.Context, st store.Store, reg *registry.Registry, progress *service.ProgressService, sel *selection.Selector, datasetID string, questions int) SessionOutcome {
	items, err := st.LoadItems(ctx, datasetID)
	if err != nil {
		return SessionOutcome{Err: err}
	}

	selected, err := sel.Select(items, questions, selection.MethodWeighted, nil)
	if err != nil {
		return SessionOutcome{Err: err}
	}

	sess, err := reg.Create(datasetID, selected, testsession.DefaultConfig())
	if err != nil {
		return SessionOutcome{Err: err}
	}

	outcome := SessionOutcome{SessionID: sess.ID}
	for i := 0; ; i++ {
		if err := sess.Reveal(); err != nil {
			return SessionOutcome{SessionID: sess.ID, Err: err}
		}

		correct := i%2 == 0
		item, err := sess.Judge(correct)
		if err != nil {
			return SessionOutcome{SessionID: sess.ID, Err: err}
		}
		if _, err := progress.RecordJudgment(ctx, datasetID, item.ID, correct); err != nil {
			return SessionOutcome{SessionID: sess.ID, Err: err}
		}
		outcome.Judged++
		if correct {
			outcome.Correct++
		}

		done, err := sess.Advance()
		if err != nil {
			return SessionOutcome{SessionID: sess.ID, Err: err}
		}
		if done {
			return outcome
		}
	}
}
