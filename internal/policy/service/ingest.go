package service

import (
	"context"

	"policyhub/internal/audit"
	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
	dErrors "policyhub/pkg/domain-errors"
)

// Snapshot ingest: the admin surface that replaces stored snapshots when
// the upstream store pushes new state. Replacement is wholesale per
// collection key; there is no partial merge.

func (s *Service) IngestPolicy(ctx context.Context, policy models.Policy) error {
	if policy.ID.IsEmpty() {
		return dErrors.New(dErrors.CodeValidation, "policy id is required")
	}
	if policy.Role != models.RoleAdmin && policy.Role != models.RoleUser {
		return dErrors.New(dErrors.CodeValidation, "policy role must be admin or user")
	}
	if err := s.writer.ReplacePolicy(ctx, policy); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store policy snapshot")
	}
	s.emitAudit(ctx, audit.Event{
		PolicyID: policy.ID,
		Action:   string(audit.EventPolicySnapshotIngested),
	})
	s.countIngest("policy")
	return nil
}

func (s *Service) IngestMembers(ctx context.Context, policyID id.PolicyID, members models.PolicyMembers) error {
	if policyID.IsEmpty() {
		return dErrors.New(dErrors.CodeValidation, "policy id is required")
	}
	if err := s.writer.ReplaceMembers(ctx, policyID, members); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store member snapshot")
	}
	s.emitAudit(ctx, audit.Event{
		PolicyID: policyID,
		Action:   string(audit.EventMemberSnapshotIngested),
	})
	s.countIngest("members")
	return nil
}

func (s *Service) IngestPersonalDetails(ctx context.Context, details models.PersonalDetails) error {
	if err := s.writer.ReplacePersonalDetails(ctx, details); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store personal details")
	}
	s.emitAudit(ctx, audit.Event{
		Action: string(audit.EventDetailSnapshotIngested),
	})
	s.countIngest("details")
	return nil
}

func (s *Service) IngestTags(ctx context.Context, policyID id.PolicyID, tags models.PolicyTags) error {
	if policyID.IsEmpty() {
		return dErrors.New(dErrors.CodeValidation, "policy id is required")
	}
	if err := s.writer.ReplaceTags(ctx, policyID, tags); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store tag snapshot")
	}
	s.emitAudit(ctx, audit.Event{
		PolicyID: policyID,
		Action:   string(audit.EventTagSnapshotIngested),
	})
	s.countIngest("tags")
	return nil
}

func (s *Service) countIngest(kind string) {
	if s.metrics != nil {
		s.metrics.IncrementSnapshotsIngested(kind)
	}
}
