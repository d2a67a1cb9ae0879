// Package session keeps the identity of the logged-in user. The identity is
// mirrored to a durable slot so a restarted client comes back logged in, and
// every change is published to subscribers.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/client/storage"
	"github.com/dmitrijs2005/brokerdesk/internal/logging"
)

const (
	identityKey = "current_identity"
	savedAtKey  = "saved_at"
)

// Store holds at most one identity. It is safe for concurrent use.
type Store struct {
	repo storage.Repository
	log  logging.Logger
	now  func() time.Time

	mu      sync.RWMutex
	current *models.Identity
	subs    map[int]chan *models.Identity
	nextSub int
}

func NewStore(repo storage.Repository, log logging.Logger) *Store {
	return &Store{
		repo: repo,
		log:  log,
		now:  time.Now,
		subs: make(map[int]chan *models.Identity),
	}
}

// Load restores a previously saved identity. It must run before the first
// guarded navigation. An unreadable slot is wiped and the session starts
// empty.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, identityKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if raw == nil {
		return nil
	}

	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		s.log.Warn(ctx, "discarding unreadable session", "error", err)
		if err := s.repo.Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &id
	s.publishLocked()
	s.log.Debug(ctx, "session restored", "user_id", id.ID, "role", id.Role)
	return nil
}

// Set persists id and makes it current. On a storage failure the previous
// identity stays in place.
func (s *Store) Set(ctx context.Context, id models.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = s.repo.Replace(ctx, map[string][]byte{
		identityKey: raw,
		savedAtKey:  []byte(s.now().UTC().Format(time.RFC3339)),
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &id
	s.publishLocked()
	return nil
}

// Current returns a copy of the identity, or nil when nobody is logged in.
func (s *Store) Current() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Token returns the bearer token of the current identity, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Clear forgets the identity in memory and on disk. Calling it again is a
// no-op. The in-memory identity is dropped even if the slot cannot be wiped.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.publishLocked()
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Subscribe returns a stream of identity changes. The current value is
// delivered first; a slow reader only ever sees the latest value. The
// returned func stops the subscription and closes the channel.
func (s *Store) Subscribe() (<-chan *models.Identity, func()) {
	ch := make(chan *models.Identity, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.current.Clone()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

func (s *Store) publishLocked() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.current.Clone()
	}
}
