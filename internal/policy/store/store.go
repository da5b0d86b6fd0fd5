// Package store persists policy snapshots. The upstream reactive store owns
// the records; implementations here hold read-only copies replaced wholesale
// by the ingest surface.
package store

import (
	"context"

	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
)

// Store is the snapshot surface the service reads and the ingest surface
// writes. Missing snapshots surface as sentinel.ErrNotFound.
type Store interface {
	ListPolicies(ctx context.Context) ([]models.Policy, error)
	GetPolicy(ctx context.Context, policyID id.PolicyID) (models.Policy, error)
	MembersByPolicy(ctx context.Context) (map[string]models.PolicyMembers, error)
	GetMembers(ctx context.Context, policyID id.PolicyID) (models.PolicyMembers, error)
	PersonalDetails(ctx context.Context) (models.PersonalDetails, error)
	GetTags(ctx context.Context, policyID id.PolicyID) (models.PolicyTags, error)

	ReplacePolicy(ctx context.Context, policy models.Policy) error
	ReplaceMembers(ctx context.Context, policyID id.PolicyID, members models.PolicyMembers) error
	ReplacePersonalDetails(ctx context.Context, details models.PersonalDetails) error
	ReplaceTags(ctx context.Context, policyID id.PolicyID, tags models.PolicyTags) error
}
