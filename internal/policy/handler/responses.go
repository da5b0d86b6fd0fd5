package handler

import (
	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
)

// PolicyResponse is the HTTP shape of a policy in list responses. The full
// snapshot (errors, custom units) stays internal; clients get the fields
// the workspace and chat surfaces render.
type PolicyResponse struct {
	ID            id.PolicyID          `json:"id"`
	Name          string               `json:"name"`
	Type          string               `json:"type,omitempty"`
	Role          models.Role          `json:"role"`
	PendingAction models.PendingAction `json:"pendingAction,omitempty"`
}

// FromPolicies converts stored policies to their HTTP response shape.
func FromPolicies(policies []models.Policy) []PolicyResponse {
	out := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, PolicyResponse{
			ID:            p.ID,
			Name:          p.Name,
			Type:          p.Type,
			Role:          p.Role,
			PendingAction: p.PendingAction,
		})
	}
	return out
}
