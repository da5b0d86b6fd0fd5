package models

import (
	id "policyhub/pkg/domain"
)

// PolicyMember is one account's membership record on a policy.
type PolicyMember struct {
	Role          Role          `json:"role"`
	PendingAction PendingAction `json:"pendingAction,omitempty"`
	Errors        Errors        `json:"errors,omitempty"`
}

// PolicyMembers is the per-policy member map, keyed by account ID. One map
// exists per policy under MemberKey(policyID).
type PolicyMembers map[id.AccountID]PolicyMember

// PersonalDetail is the profile record for an account.
type PersonalDetail struct {
	Login       string `json:"login"`
	DisplayName string `json:"displayName,omitempty"`
}

// PersonalDetails maps account IDs to profile records.
type PersonalDetails map[id.AccountID]PersonalDetail
