package audit

import (
	"time"

	id "policyhub/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	ActorID   id.AccountID
	PolicyID  id.PolicyID
	Action    string
	Reason    string
	RequestID string
}

// AuditEvent names the actions this service records.
type AuditEvent string

const (
	// Snapshot ingest events
	EventPolicySnapshotIngested AuditEvent = "policy_snapshot_ingested"
	EventMemberSnapshotIngested AuditEvent = "member_snapshot_ingested"
	EventDetailSnapshotIngested AuditEvent = "detail_snapshot_ingested"
	EventTagSnapshotIngested    AuditEvent = "tag_snapshot_ingested"

	// Access-relevant derivations
	EventInviteCandidatesComputed AuditEvent = "invite_candidates_computed"
)
