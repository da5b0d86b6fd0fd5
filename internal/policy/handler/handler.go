// Package handler wires the policy read-model endpoints to the policy
// service. Transport concerns only; derivation rules live below.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"policyhub/internal/platform/middleware"
	"policyhub/internal/policy/models"
	"policyhub/internal/policy/service"
	id "policyhub/pkg/domain"
	dErrors "policyhub/pkg/domain-errors"
	"policyhub/pkg/platform/httputil"
	"policyhub/pkg/requestcontext"
)

// Service defines the policy operations the handler depends on.
type Service interface {
	ActiveWorkspaces(ctx context.Context, isOffline bool) ([]models.Policy, error)
	ChatActivePolicies(ctx context.Context) ([]models.Policy, error)
	BrickRoadMap(ctx context.Context) (map[id.PolicyID]models.ErrorStatus, error)
	InviteCandidates(ctx context.Context, policyID id.PolicyID) (map[string]id.AccountID, error)
	TagSummary(ctx context.Context, policyID id.PolicyID) (service.TagSummary, error)

	IngestPolicy(ctx context.Context, policy models.Policy) error
	IngestMembers(ctx context.Context, policyID id.PolicyID, members models.PolicyMembers) error
	IngestPersonalDetails(ctx context.Context, details models.PersonalDetails) error
	IngestTags(ctx context.Context, policyID id.PolicyID, tags models.PolicyTags) error
}

// Handler exposes the policy endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a policy handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public read endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/policies", h.HandleListWorkspaces)
	r.Get("/policies/chat-active", h.HandleChatActive)
	r.Get("/policies/brickroads", h.HandleBrickRoads)
	r.Get("/policies/{policyID}/invite-candidates", h.HandleInviteCandidates)
	r.Get("/policies/{policyID}/tags", h.HandleTagSummary)
}

// RegisterAdmin mounts the snapshot ingest endpoints. The caller gates the
// group behind authentication.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Put("/admin/policies/{policyID}", h.HandleIngestPolicy)
	r.Put("/admin/policies/{policyID}/members", h.HandleIngestMembers)
	r.Put("/admin/policies/{policyID}/tags", h.HandleIngestTags)
	r.Put("/admin/personal-details", h.HandleIngestPersonalDetails)
}

// HandleListWorkspaces handles GET /policies requests. The offline query
// parameter widens the result to policies whose deletion has not synced yet.
func (h *Handler) HandleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	isOffline := r.URL.Query().Get("offline") == "true"

	policies, err := h.service.ActiveWorkspaces(ctx, isOffline)
	if err != nil {
		h.logger.ErrorContext(ctx, "workspace listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPolicies(policies))
}

// HandleChatActive handles GET /policies/chat-active requests.
func (h *Handler) HandleChatActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	policies, err := h.service.ChatActivePolicies(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "chat-active listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromPolicies(policies))
}

// HandleBrickRoads handles GET /policies/brickroads requests.
func (h *Handler) HandleBrickRoads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	statuses, err := h.service.BrickRoadMap(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "brick-road derivation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "brick roads derived",
		"request_id", requestcontext.RequestID(ctx),
		"policies_with_errors", len(statuses),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, statuses)
}

// HandleInviteCandidates handles GET /policies/{policyID}/invite-candidates.
func (h *Handler) HandleInviteCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID := id.PolicyID(chi.URLParam(r, "policyID"))

	candidates, err := h.service.InviteCandidates(ctx, policyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "invite candidate derivation failed",
			"request_id", requestcontext.RequestID(ctx),
			"policy_id", policyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, candidates)
}

// HandleTagSummary handles GET /policies/{policyID}/tags.
func (h *Handler) HandleTagSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID := id.PolicyID(chi.URLParam(r, "policyID"))

	summary, err := h.service.TagSummary(ctx, policyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "tag summary failed",
			"request_id", requestcontext.RequestID(ctx),
			"policy_id", policyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}

// HandleIngestPolicy handles PUT /admin/policies/{policyID}. The path is
// authoritative for the policy ID; a body carrying a different ID is
// rejected rather than silently rewritten.
func (h *Handler) HandleIngestPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID := id.PolicyID(chi.URLParam(r, "policyID"))

	policy, ok := httputil.DecodeJSON[models.Policy](w, r)
	if !ok {
		return
	}
	if policy.ID.IsEmpty() {
		policy.ID = policyID
	}
	if policy.ID != policyID {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "policy id in body does not match path"))
		return
	}

	if err := h.service.IngestPolicy(ctx, policy); err != nil {
		h.logIngestFailure(ctx, "policy", policyID, err)
		httputil.WriteError(w, err)
		return
	}
	h.logIngest(ctx, "policy", policyID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleIngestMembers handles PUT /admin/policies/{policyID}/members.
func (h *Handler) HandleIngestMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID := id.PolicyID(chi.URLParam(r, "policyID"))

	members, ok := httputil.DecodeJSON[models.PolicyMembers](w, r)
	if !ok {
		return
	}
	if err := h.service.IngestMembers(ctx, policyID, members); err != nil {
		h.logIngestFailure(ctx, "members", policyID, err)
		httputil.WriteError(w, err)
		return
	}
	h.logIngest(ctx, "members", policyID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleIngestTags handles PUT /admin/policies/{policyID}/tags.
func (h *Handler) HandleIngestTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID := id.PolicyID(chi.URLParam(r, "policyID"))

	tags, ok := httputil.DecodeJSON[models.PolicyTags](w, r)
	if !ok {
		return
	}
	if err := h.service.IngestTags(ctx, policyID, tags); err != nil {
		h.logIngestFailure(ctx, "tags", policyID, err)
		httputil.WriteError(w, err)
		return
	}
	h.logIngest(ctx, "tags", policyID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleIngestPersonalDetails handles PUT /admin/personal-details.
func (h *Handler) HandleIngestPersonalDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	details, ok := httputil.DecodeJSON[models.PersonalDetails](w, r)
	if !ok {
		return
	}
	if err := h.service.IngestPersonalDetails(ctx, details); err != nil {
		h.logIngestFailure(ctx, "details", "", err)
		httputil.WriteError(w, err)
		return
	}
	h.logIngest(ctx, "details", "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logIngest(ctx context.Context, kind string, policyID id.PolicyID) {
	h.logger.InfoContext(ctx, "snapshot ingested",
		"request_id", requestcontext.RequestID(ctx),
		"actor_id", middleware.GetAccountID(ctx),
		"actor_login", middleware.GetLogin(ctx),
		"kind", kind,
		"policy_id", policyID,
	)
}

func (h *Handler) logIngestFailure(ctx context.Context, kind string, policyID id.PolicyID, err error) {
	h.logger.ErrorContext(ctx, "snapshot ingest failed",
		"request_id", requestcontext.RequestID(ctx),
		"actor_id", middleware.GetAccountID(ctx),
		"actor_login", middleware.GetLogin(ctx),
		"kind", kind,
		"policy_id", policyID,
		"error", err,
	)
}
