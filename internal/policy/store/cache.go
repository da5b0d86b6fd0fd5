package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
)

// Cached layers a Redis read-through cache over an inner Store for the hot
// per-policy lookups. Cache failures never fail a read: misses and errors
// fall through to the inner store, and stale keys are dropped on replace.
type Cached struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{inner: inner, client: client, ttl: ttl, logger: logger}
}

func policyCacheKey(policyID id.PolicyID) string { return "policy_" + policyID.String() }
func tagCacheKey(policyID id.PolicyID) string    { return "policyTags_" + policyID.String() }

// memberCacheKey reuses the upstream collection key, so cache contents stay
// greppable against the reactive store's own naming.
func memberCacheKey(policyID id.PolicyID) string { return models.MemberKey(policyID) }

func (c *Cached) GetPolicy(ctx context.Context, policyID id.PolicyID) (models.Policy, error) {
	var p models.Policy
	if c.readCached(ctx, policyCacheKey(policyID), &p) {
		return p, nil
	}
	p, err := c.inner.GetPolicy(ctx, policyID)
	if err != nil {
		return models.Policy{}, err
	}
	c.writeCached(ctx, policyCacheKey(policyID), p)
	return p, nil
}

func (c *Cached) GetMembers(ctx context.Context, policyID id.PolicyID) (models.PolicyMembers, error) {
	var members models.PolicyMembers
	if c.readCached(ctx, memberCacheKey(policyID), &members) {
		return members, nil
	}
	members, err := c.inner.GetMembers(ctx, policyID)
	if err != nil {
		return nil, err
	}
	c.writeCached(ctx, memberCacheKey(policyID), members)
	return members, nil
}

func (c *Cached) GetTags(ctx context.Context, policyID id.PolicyID) (models.PolicyTags, error) {
	var tags models.PolicyTags
	if c.readCached(ctx, tagCacheKey(policyID), &tags) {
		return tags, nil
	}
	tags, err := c.inner.GetTags(ctx, policyID)
	if err != nil {
		return nil, err
	}
	c.writeCached(ctx, tagCacheKey(policyID), tags)
	return tags, nil
}

// List-shaped reads always hit the inner store; caching them would require
// invalidating on every ingest for marginal benefit.

func (c *Cached) ListPolicies(ctx context.Context) ([]models.Policy, error) {
	return c.inner.ListPolicies(ctx)
}

func (c *Cached) MembersByPolicy(ctx context.Context) (map[string]models.PolicyMembers, error) {
	return c.inner.MembersByPolicy(ctx)
}

func (c *Cached) PersonalDetails(ctx context.Context) (models.PersonalDetails, error) {
	return c.inner.PersonalDetails(ctx)
}

func (c *Cached) ReplacePolicy(ctx context.Context, policy models.Policy) error {
	if err := c.inner.ReplacePolicy(ctx, policy); err != nil {
		return err
	}
	c.drop(ctx, policyCacheKey(policy.ID))
	return nil
}

func (c *Cached) ReplaceMembers(ctx context.Context, policyID id.PolicyID, members models.PolicyMembers) error {
	if err := c.inner.ReplaceMembers(ctx, policyID, members); err != nil {
		return err
	}
	c.drop(ctx, memberCacheKey(policyID))
	return nil
}

func (c *Cached) ReplacePersonalDetails(ctx context.Context, details models.PersonalDetails) error {
	return c.inner.ReplacePersonalDetails(ctx, details)
}

func (c *Cached) ReplaceTags(ctx context.Context, policyID id.PolicyID, tags models.PolicyTags) error {
	if err := c.inner.ReplaceTags(ctx, policyID, tags); err != nil {
		return err
	}
	c.drop(ctx, tagCacheKey(policyID))
	return nil
}

func (c *Cached) readCached(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "snapshot cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.WarnContext(ctx, "snapshot cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cached) writeCached(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "snapshot cache write failed", "key", key, "error", err)
	}
}

func (c *Cached) drop(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.WarnContext(ctx, "snapshot cache invalidation failed", "key", key, "error", err)
	}
}
