package store

import (
	"context"
	"sort"
	"sync"

	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
	"policyhub/pkg/platform/sentinel"
)

// InMemory keeps snapshots in process memory. It intentionally favors
// clarity over performance and returns copies so callers can never mutate a
// stored snapshot.
type InMemory struct {
	mu       sync.RWMutex
	policies map[id.PolicyID]models.Policy
	members  map[string]models.PolicyMembers
	details  models.PersonalDetails
	tags     map[id.PolicyID]models.PolicyTags
}

func NewInMemory() *InMemory {
	return &InMemory{
		policies: make(map[id.PolicyID]models.Policy),
		members:  make(map[string]models.PolicyMembers),
		details:  make(models.PersonalDetails),
		tags:     make(map[id.PolicyID]models.PolicyTags),
	}
}

func (s *InMemory) ListPolicies(_ context.Context) ([]models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Policy, 0, len(s.policies))
	for _, p := range s.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemory) GetPolicy(_ context.Context, policyID id.PolicyID) (models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.policies[policyID]; ok {
		return p, nil
	}
	return models.Policy{}, sentinel.ErrNotFound
}

func (s *InMemory) MembersByPolicy(_ context.Context) (map[string]models.PolicyMembers, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.PolicyMembers, len(s.members))
	for k, m := range s.members {
		out[k] = cloneMembers(m)
	}
	return out, nil
}

func (s *InMemory) GetMembers(_ context.Context, policyID id.PolicyID) (models.PolicyMembers, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.members[models.MemberKey(policyID)]; ok {
		return cloneMembers(m), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) PersonalDetails(_ context.Context) (models.PersonalDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(models.PersonalDetails, len(s.details))
	for k, d := range s.details {
		out[k] = d
	}
	return out, nil
}

func (s *InMemory) GetTags(_ context.Context, policyID id.PolicyID) (models.PolicyTags, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.tags[policyID]; ok {
		return t, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) ReplacePolicy(_ context.Context, policy models.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[policy.ID] = policy
	return nil
}

func (s *InMemory) ReplaceMembers(_ context.Context, policyID id.PolicyID, members models.PolicyMembers) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[models.MemberKey(policyID)] = cloneMembers(members)
	return nil
}

func (s *InMemory) ReplacePersonalDetails(_ context.Context, details models.PersonalDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(models.PersonalDetails, len(details))
	for k, d := range details {
		out[k] = d
	}
	s.details = out
	return nil
}

func (s *InMemory) ReplaceTags(_ context.Context, policyID id.PolicyID, tags models.PolicyTags) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[policyID] = tags
	return nil
}

func cloneMembers(members models.PolicyMembers) models.PolicyMembers {
	if members == nil {
		return nil
	}
	out := make(models.PolicyMembers, len(members))
	for k, m := range members {
		out[k] = m
	}
	return out
}
