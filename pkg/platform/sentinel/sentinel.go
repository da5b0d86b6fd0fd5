package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Snapshot stores and caches
// return these (optionally wrapped) so services can translate them into
// domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: snapshot does not exist in the store
// - ErrConflict: concurrent snapshot replacement lost
// - ErrInvalidState: record in wrong state for requested operation
// - ErrUnavailable: store or cache temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
