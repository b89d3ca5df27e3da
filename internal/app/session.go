// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quotecraft/quotecraft/internal/domain"
	"github.com/quotecraft/quotecraft/internal/platform/config"
)

// State is the coarse position of a session in the quotation workflow.
type State string

const (
	// StateIdle means no quotation has been generated yet.
	StateIdle State = "idle"

	// StateGenerated means a quotation document exists and can be edited,
	// restyled, exported, or emailed.
	StateGenerated State = "generated"
)

// Session holds the working state of one quotation workflow. The document
// is the single live copy; edits are last-write-wins. Suggestions are
// ephemeral and replaced wholesale on each request.
type Session struct {
	ID          string
	State       State
	Request     domain.QuotationRequest
	Document    domain.QuotationDocument
	Suggestions domain.AddOnSuggestionList

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time

	busyOp string
}

// SessionStore is an in-memory, TTL-bounded session registry. Each session
// admits at most one in-flight operation at a time; a second caller gets a
// conflict instead of queueing.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl           time.Duration
	sweepInterval time.Duration
	logger        *slog.Logger
	clock         func() time.Time
}

// NewSessionStore creates an empty store. Call Run to start the expiry
// janitor.
func NewSessionStore(cfg config.SessionConfig, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		sessions:      make(map[string]*Session),
		ttl:           cfg.TTL,
		sweepInterval: cfg.SweepInterval,
		logger:        logger,
		clock:         time.Now,
	}
}

// Create registers a new idle session and returns a snapshot of it.
func (s *SessionStore) Create() Session {
	now := s.clock()

	sess := &Session{
		ID:        uuid.NewString(),
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess
}

// Get returns a snapshot of the session, or a not-found error if the
// session does not exist or has expired.
func (s *SessionStore) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}

	return *sess, nil
}

// Delete removes the session. Deleting an unknown or expired session
// returns a not-found error.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(id); err != nil {
		return err
	}

	delete(s.sessions, id)

	return nil
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Begin marks the session busy with the named operation and returns a
// snapshot to work from. Fails with a conflict if another operation is
// already in flight for the session. Every successful Begin must be paired
// with End.
func (s *SessionStore) Begin(id, op string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}

	if sess.busyOp != "" {
		return Session{}, domain.NewConflictError("session",
			"another operation ("+sess.busyOp+") is already in progress")
	}

	sess.busyOp = op

	return *sess, nil
}

// End releases the busy marker and, when commit is non-nil, applies it to
// the live session and extends the session's lease. A session deleted
// while an operation was in flight is left deleted.
func (s *SessionStore) End(id string, commit func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return
	}

	sess.busyOp = ""

	if commit != nil {
		commit(sess)

		now := s.clock()
		sess.UpdatedAt = now
		sess.ExpiresAt = now.Add(s.ttl)
	}
}

// Run sweeps expired sessions until the context is cancelled.
func (s *SessionStore) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionStore) sweep(ctx context.Context) {
	now := s.clock()

	s.mu.Lock()

	removed := 0

	for id, sess := range s.sessions {
		// Busy sessions survive the sweep; the in-flight operation's
		// End extends the lease.
		if sess.busyOp == "" && now.After(sess.ExpiresAt) {
			delete(s.sessions, id)

			removed++
		}
	}

	remaining := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.DebugContext(ctx, "expired sessions removed",
			slog.Int("removed", removed),
			slog.Int("remaining", remaining),
		)
	}
}

// lookup must be called with the mutex held. Expired sessions are removed
// eagerly so callers never observe one.
func (s *SessionStore) lookup(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.NewNotFoundError("session", id)
	}

	if sess.busyOp == "" && s.clock().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, domain.NewNotFoundError("session", id)
	}

	return sess, nil
}
