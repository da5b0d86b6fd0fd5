// Package service orchestrates snapshot reads and derivations. Business
// rules live in the derive package; this layer owns store access, error
// translation, audit, and metrics.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"policyhub/internal/audit"
	"policyhub/internal/policy/derive"
	"policyhub/internal/policy/metrics"
	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
	dErrors "policyhub/pkg/domain-errors"
	"policyhub/pkg/platform/sentinel"
	"policyhub/pkg/requestcontext"
)

// brickRoadConcurrency bounds the fan-out when deriving statuses for every
// policy at once.
const brickRoadConcurrency = 8

// SnapshotStore is the read surface the service derives from.
type SnapshotStore interface {
	ListPolicies(ctx context.Context) ([]models.Policy, error)
	GetPolicy(ctx context.Context, policyID id.PolicyID) (models.Policy, error)
	MembersByPolicy(ctx context.Context) (map[string]models.PolicyMembers, error)
	GetMembers(ctx context.Context, policyID id.PolicyID) (models.PolicyMembers, error)
	PersonalDetails(ctx context.Context) (models.PersonalDetails, error)
	GetTags(ctx context.Context, policyID id.PolicyID) (models.PolicyTags, error)
}

// SnapshotWriter is the ingest surface.
type SnapshotWriter interface {
	ReplacePolicy(ctx context.Context, policy models.Policy) error
	ReplaceMembers(ctx context.Context, policyID id.PolicyID, members models.PolicyMembers) error
	ReplacePersonalDetails(ctx context.Context, details models.PersonalDetails) error
	ReplaceTags(ctx context.Context, policyID id.PolicyID, tags models.PolicyTags) error
}

// AuditPublisher records access-relevant events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service exposes the policy read-model operations.
type Service struct {
	store   SnapshotStore
	writer  SnapshotWriter
	logger  *slog.Logger
	auditor AuditPublisher
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store SnapshotStore, writer SnapshotWriter, opts ...Option) *Service {
	s := &Service{store: store, writer: writer, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ActiveWorkspaces lists the policies visible in the workspace switcher for
// the given connectivity state, ordered by name.
func (s *Service) ActiveWorkspaces(ctx context.Context, isOffline bool) ([]models.Policy, error) {
	policies, err := s.store.ListPolicies(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}

	visible := make([]models.Policy, 0, len(policies))
	for _, p := range policies {
		if derive.ShouldShowPolicy(p, isOffline) {
			visible = append(visible, p)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		if visible[i].Name != visible[j].Name {
			return visible[i].Name < visible[j].Name
		}
		return visible[i].ID < visible[j].ID
	})
	return visible, nil
}

// ChatActivePolicies lists policies with a live chat surface, regardless of
// the caller's role.
func (s *Service) ChatActivePolicies(ctx context.Context) ([]models.Policy, error) {
	policies, err := s.store.ListPolicies(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}
	return derive.FilterActive(policies), nil
}

// BrickRoadMap derives the error indicator for every policy. Only policies
// with an error status appear in the result.
func (s *Service) BrickRoadMap(ctx context.Context) (map[id.PolicyID]models.ErrorStatus, error) {
	start := time.Now()

	policies, err := s.store.ListPolicies(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list policies")
	}
	membersByKey, err := s.store.MembersByPolicy(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member snapshots")
	}

	var mu sync.Mutex
	statuses := make(map[id.PolicyID]models.ErrorStatus)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(brickRoadConcurrency)
	for _, p := range policies {
		p := p
		g.Go(func() error {
			if status := derive.BrickRoadStatus(p, membersByKey); status != models.StatusNone {
				mu.Lock()
				statuses[p.ID] = status
				mu.Unlock()
			}
			return nil
		})
	}
	// Derivations are pure and never fail; the group exists for the bound.
	_ = g.Wait()

	if s.metrics != nil {
		s.metrics.IncrementBrickRoadErrors(len(statuses))
		s.metrics.ObserveBrickRoadMap(start)
	}
	return statuses, nil
}

// InviteCandidates resolves the members of a policy who could invite others,
// minus everyone already ineligible: system accounts and current clean
// members.
func (s *Service) InviteCandidates(ctx context.Context, policyID id.PolicyID) (map[string]id.AccountID, error) {
	start := time.Now()

	if policyID.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeValidation, "policy id is required")
	}
	if _, err := s.store.GetPolicy(ctx, policyID); err != nil {
		return nil, wrapSnapshotErr(err, "policy")
	}

	members, err := s.store.GetMembers(ctx, policyID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, wrapSnapshotErr(err, "member snapshot")
	}
	details, err := s.store.PersonalDetails(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load personal details")
	}

	byEmail := derive.MemberAccountIDsByEmail(members, details)
	for login := range derive.IneligibleInvitees(members, details) {
		delete(byEmail, login)
	}

	s.emitAudit(ctx, audit.Event{
		PolicyID: policyID,
		Action:   string(audit.EventInviteCandidatesComputed),
	})
	if s.metrics != nil {
		s.metrics.ObserveInviteList(start)
	}
	return byEmail, nil
}

// TagSummary describes the first tag group of a policy.
type TagSummary struct {
	ListName string   `json:"listName"`
	Tags     []string `json:"tags"`
}

// TagSummary returns the name of the policy's tag list and its enabled
// tags. A policy without a tag snapshot yields an empty summary, matching
// the absence-means-empty semantics of the upstream store.
func (s *Service) TagSummary(ctx context.Context, policyID id.PolicyID) (TagSummary, error) {
	if policyID.IsEmpty() {
		return TagSummary{}, dErrors.New(dErrors.CodeValidation, "policy id is required")
	}
	if _, err := s.store.GetPolicy(ctx, policyID); err != nil {
		return TagSummary{}, wrapSnapshotErr(err, "policy")
	}

	tags, err := s.store.GetTags(ctx, policyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return TagSummary{Tags: []string{}}, nil
		}
		return TagSummary{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tag snapshot")
	}

	names := make([]string, 0)
	for _, tag := range derive.GetTagList(tags, "") {
		if tag.Enabled {
			names = append(names, tag.Name)
		}
	}
	sort.Strings(names)

	return TagSummary{
		ListName: derive.GetTagListName(tags),
		Tags:     names,
	}, nil
}

func wrapSnapshotErr(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+what)
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.ActorID = requestcontext.AccountID(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"policy_id", event.PolicyID,
			"error", err,
		)
	}
}
