// Package domain holds the identifier primitives shared across modules.
// Construct them through the Parse helpers at trust boundaries; direct
// casting bypasses validation.
package domain

import (
	"strconv"

	dErrors "policyhub/pkg/domain-errors"
)

// PolicyID identifies a workspace policy record. The upstream store issues
// these as opaque strings (not UUIDs), so the type stays a validated string.
type PolicyID string

// ParsePolicyID constructs a PolicyID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty.
func ParsePolicyID(s string) (PolicyID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "policy id cannot be empty")
	}
	return PolicyID(s), nil
}

// IsEmpty reports whether the ID carries no value.
func (id PolicyID) IsEmpty() bool {
	return id == ""
}

// String returns the string representation of the policy ID.
func (id PolicyID) String() string {
	return string(id)
}

// AccountID identifies a user account. Upstream account identifiers are
// positive integers.
type AccountID int64

// ParseAccountID constructs an AccountID from external input.
//
// Errors: returns CodeInvalidInput when the value is not a positive integer.
func ParseAccountID(s string) (AccountID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "account id must be a positive integer")
	}
	return AccountID(n), nil
}

// String returns the decimal representation of the account ID.
func (id AccountID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
