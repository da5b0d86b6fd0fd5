package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
	"policyhub/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) newPolicy(policyID string) models.Policy {
	return models.Policy{
		ID:                         id.PolicyID(policyID),
		Name:                       "Workspace " + policyID,
		Role:                       models.RoleAdmin,
		IsPolicyExpenseChatEnabled: true,
	}
}

func (s *InMemorySuite) TestPolicyLifecycle() {
	s.Run("replace and get", func() {
		p := s.newPolicy("P1")
		s.Require().NoError(s.store.ReplacePolicy(s.ctx, p))

		found, err := s.store.GetPolicy(s.ctx, "P1")
		s.Require().NoError(err)
		s.Equal(p.Name, found.Name)
	})

	s.Run("unknown policy returns ErrNotFound", func() {
		_, err := s.store.GetPolicy(s.ctx, "missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("list is ordered by ID", func() {
		s.Require().NoError(s.store.ReplacePolicy(s.ctx, s.newPolicy("B")))
		s.Require().NoError(s.store.ReplacePolicy(s.ctx, s.newPolicy("A")))

		policies, err := s.store.ListPolicies(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(policies, 3) // P1 from the previous subtest plus A, B
		s.Equal(id.PolicyID("A"), policies[0].ID)
		s.Equal(id.PolicyID("B"), policies[1].ID)
	})
}

func (s *InMemorySuite) TestMemberSnapshots() {
	members := models.PolicyMembers{
		1: {Role: models.RoleAdmin},
		2: {Role: models.RoleUser, Errors: models.Errors{"e1": "invite failed"}},
	}
	s.Require().NoError(s.store.ReplaceMembers(s.ctx, "P1", members))

	s.Run("lookup by policy", func() {
		found, err := s.store.GetMembers(s.ctx, "P1")
		s.Require().NoError(err)
		s.Len(found, 2)
	})

	s.Run("missing member snapshot returns ErrNotFound", func() {
		_, err := s.store.GetMembers(s.ctx, "P2")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("snapshot map is keyed by collection key", func() {
		byKey, err := s.store.MembersByPolicy(s.ctx)
		s.Require().NoError(err)
		s.Contains(byKey, models.MemberKey("P1"))
	})

	s.Run("returned maps are copies", func() {
		found, err := s.store.GetMembers(s.ctx, "P1")
		s.Require().NoError(err)
		delete(found, 1)

		again, err := s.store.GetMembers(s.ctx, "P1")
		s.Require().NoError(err)
		s.Len(again, 2)
	})
}

func (s *InMemorySuite) TestPersonalDetails() {
	s.Run("starts empty, not missing", func() {
		details, err := s.store.PersonalDetails(s.ctx)
		s.Require().NoError(err)
		s.Empty(details)
	})

	s.Run("replace swaps the whole snapshot", func() {
		first := models.PersonalDetails{1: {Login: "a@example.com"}}
		s.Require().NoError(s.store.ReplacePersonalDetails(s.ctx, first))

		second := models.PersonalDetails{2: {Login: "b@example.com"}}
		s.Require().NoError(s.store.ReplacePersonalDetails(s.ctx, second))

		details, err := s.store.PersonalDetails(s.ctx)
		s.Require().NoError(err)
		s.Len(details, 1)
		s.Contains(details, id.AccountID(2))
	})
}

func (s *InMemorySuite) TestTagSnapshots() {
	tags := models.PolicyTags{"t1": {Name: "Meals", Enabled: true}}
	s.Require().NoError(s.store.ReplaceTags(s.ctx, "P1", tags))

	found, err := s.store.GetTags(s.ctx, "P1")
	s.Require().NoError(err)
	s.Equal("Meals", found["t1"].Name)

	_, err = s.store.GetTags(s.ctx, "P2")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
