// Package registry keeps the active test sessions in memory, keyed by
// an opaque token, and reclaims them after a retention window. Nothing
// here persists: a process restart loses all running sessions.
package registry

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyforge/backend/internal/domain/dataset"
	"github.com/studyforge/backend/internal/domain/testsession"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry is a shared session map. The map itself is guarded here;
// per-session state is serialized by the session's own lock, so
// different sessions never contend with each other.
type Registry struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*testsession.Session
}

// New creates a registry. Sessions older than ttl become unreachable.
// A nil clock uses time.Now; tests inject their own.
func New(ttl time.Duration, clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		ttl:      ttl,
		now:      clock,
		sessions: make(map[string]*testsession.Session),
	}
}

// Create builds a session over the given item snapshot and registers
// it under a fresh opaque token.
func (r *Registry) Create(datasetID string, items []dataset.Item, cfg testsession.Config) (*testsession.Session, error) {
	sess, err := testsession.New(uuid.NewString(), datasetID, items, cfg, r.now())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()
	return sess, nil
}

// Get returns the session for a token. An expired session is treated
// as gone even if the sweeper has not collected it yet.
func (r *Registry) Get(sessionID string) (*testsession.Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if r.expired(sess) {
		r.mu.Lock()
		delete(r.sessions, sessionID)
		r.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Len reports the number of registered sessions, expired or not.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops every session past the retention window and returns how
// many were collected.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	swept := 0
	for id, sess := range r.sessions {
		if r.expired(sess) {
			delete(r.sessions, id)
			swept++
		}
	}
	return swept
}

// Run sweeps on the given interval until the context is canceled.
func (r *Registry) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if swept := r.Sweep(); swept > 0 {
				logger.Info("swept expired sessions", "count", swept)
			}
		}
	}
}

func (r *Registry) expired(sess *testsession.Session) bool {
	return r.now().Sub(sess.CreatedAt) >= r.ttl
}
