package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hubicito/hubicito-api/internal/domain"
)

var ErrFormNotFound = errors.New("form not found")

// Store keeps open forms in memory. Forms left idle for longer than the TTL
// are dropped by Sweep.
type Store struct {
	mu    sync.RWMutex
	forms map[uuid.UUID]*Controller
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		forms: make(map[uuid.UUID]*Controller),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store) Put(c *Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forms[c.ID()] = c
}

// Get returns the form with id if actor owns it.
func (s *Store) Get(id uuid.UUID, actor domain.Actor) (*Controller, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	s.mu.RLock()
	c, ok := s.forms[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrFormNotFound
	}
	if c.Owner() != actor.ID {
		return nil, domain.ErrForbidden
	}

	return c, nil
}

func (s *Store) Delete(id uuid.UUID, actor domain.Actor) error {
	if _, err := s.Get(id, actor); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.forms, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.forms)
}

// Sweep removes idle forms and returns how many were removed.
func (s *Store) Sweep() int {
	deadline := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, c := range s.forms {
		if c.lastTouched().Before(deadline) {
			delete(s.forms, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				zap.L().Debug("dropped idle forms", zap.Int("count", n))
			}
		}
	}
}
