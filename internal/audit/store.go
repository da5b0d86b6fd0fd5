package audit

import (
	"context"
	"sync"

	id "policyhub/pkg/domain"
)

// Store is the append-only sink for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByPolicy(ctx context.Context, policyID id.PolicyID) ([]Event, error)
}

// InMemoryStore keeps events in memory; the default sink for development
// and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByPolicy(_ context.Context, policyID id.PolicyID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.PolicyID == policyID {
			out = append(out, e)
		}
	}
	return out, nil
}
