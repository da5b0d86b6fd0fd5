package models

import (
	id "policyhub/pkg/domain"
)

// Role is the caller's role on a policy.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// PendingAction marks a queued, not-yet-confirmed mutation on a record,
// used for optimistic-update UI. Empty means no action is pending.
type PendingAction string

const (
	PendingActionNone   PendingAction = ""
	PendingActionAdd    PendingAction = "add"
	PendingActionUpdate PendingAction = "update"
	PendingActionDelete PendingAction = "delete"
)

// ErrorStatus is the derived error indicator surfaced on a workspace row.
// Empty string is the no-error sentinel.
type ErrorStatus string

const (
	StatusNone  ErrorStatus = ""
	StatusError ErrorStatus = "error"
)

// Errors maps an error ID to its message. An empty (or nil) map means no
// error; absence is the sentinel, never a special value.
type Errors map[string]string

// IsEmpty reports whether the map carries no errors. Nil maps are empty.
func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// CustomUnit is a distance/rate unit configured on a policy. It carries its
// own error map, which feeds the policy's brick-road status.
type CustomUnit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Errors Errors `json:"errors,omitempty"`
}

// Policy is a workspace/organization configuration record. These records
// are owned and mutated by the upstream reactive store; this service only
// reads snapshots, so none of the derivation code mutates a Policy.
type Policy struct {
	ID                         id.PolicyID           `json:"id"`
	Name                       string                `json:"name"`
	Type                       string                `json:"type"`
	Role                       Role                  `json:"role"`
	OwnerAccountID             id.AccountID          `json:"ownerAccountID"`
	IsPolicyExpenseChatEnabled bool                  `json:"isPolicyExpenseChatEnabled"`
	AreChatRoomsEnabled        bool                  `json:"areChatRoomsEnabled"`
	PendingAction              PendingAction         `json:"pendingAction,omitempty"`
	Errors                     Errors                `json:"errors,omitempty"`
	ErrorFields                map[string]Errors     `json:"errorFields,omitempty"`
	CustomUnits                map[string]CustomUnit `json:"customUnits,omitempty"`
}

// memberKeyPrefix mirrors the upstream store's collection naming for
// per-policy member maps.
const memberKeyPrefix = "policyMembers_"

// MemberKey derives the collection key under which a policy's member map is
// stored.
func MemberKey(policyID id.PolicyID) string {
	return memberKeyPrefix + string(policyID)
}
