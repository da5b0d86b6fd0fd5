package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
	"policyhub/pkg/platform/sentinel"
)

// detailsKey is the row key for the single personal-details snapshot.
const detailsKey = "personalDetails"

// Postgres persists snapshots as JSONB documents, one row per collection
// key. Snapshots are replaced wholesale, so a document column beats a
// normalized schema here.
//
// Expected schema:
//
//	CREATE TABLE policy_snapshots (
//	    policy_id  TEXT PRIMARY KEY,
//	    snapshot   JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE TABLE member_snapshots (
//	    policy_id  TEXT PRIMARY KEY,
//	    snapshot   JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE TABLE detail_snapshots (
//	    snapshot_key TEXT PRIMARY KEY,
//	    snapshot     JSONB NOT NULL,
//	    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE TABLE tag_snapshots (
//	    policy_id  TEXT PRIMARY KEY,
//	    snapshot   JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed snapshot store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) ListPolicies(ctx context.Context) ([]models.Policy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT snapshot FROM policy_snapshots ORDER BY policy_id`)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var out []models.Policy
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan policy snapshot: %w", err)
		}
		var p models.Policy
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode policy snapshot: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	return out, nil
}

func (s *Postgres) GetPolicy(ctx context.Context, policyID id.PolicyID) (models.Policy, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM policy_snapshots WHERE policy_id = $1`,
		policyID.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Policy{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Policy{}, fmt.Errorf("get policy: %w", err)
	}
	var p models.Policy
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Policy{}, fmt.Errorf("decode policy snapshot: %w", err)
	}
	return p, nil
}

func (s *Postgres) MembersByPolicy(ctx context.Context) (map[string]models.PolicyMembers, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT policy_id, snapshot FROM member_snapshots`)
	if err != nil {
		return nil, fmt.Errorf("list member snapshots: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.PolicyMembers)
	for rows.Next() {
		var policyID string
		var raw []byte
		if err := rows.Scan(&policyID, &raw); err != nil {
			return nil, fmt.Errorf("scan member snapshot: %w", err)
		}
		var members models.PolicyMembers
		if err := json.Unmarshal(raw, &members); err != nil {
			return nil, fmt.Errorf("decode member snapshot: %w", err)
		}
		out[models.MemberKey(id.PolicyID(policyID))] = members
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list member snapshots: %w", err)
	}
	return out, nil
}

func (s *Postgres) GetMembers(ctx context.Context, policyID id.PolicyID) (models.PolicyMembers, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM member_snapshots WHERE policy_id = $1`,
		policyID.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get members: %w", err)
	}
	var members models.PolicyMembers
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("decode member snapshot: %w", err)
	}
	return members, nil
}

func (s *Postgres) PersonalDetails(ctx context.Context) (models.PersonalDetails, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM detail_snapshots WHERE snapshot_key = $1`,
		detailsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PersonalDetails{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get personal details: %w", err)
	}
	var details models.PersonalDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, fmt.Errorf("decode personal details: %w", err)
	}
	return details, nil
}

func (s *Postgres) GetTags(ctx context.Context, policyID id.PolicyID) (models.PolicyTags, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM tag_snapshots WHERE policy_id = $1`,
		policyID.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}
	var tags models.PolicyTags
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("decode tag snapshot: %w", err)
	}
	return tags, nil
}

func (s *Postgres) ReplacePolicy(ctx context.Context, policy models.Policy) error {
	raw, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("encode policy snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO policy_snapshots (policy_id, snapshot, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (policy_id) DO UPDATE SET snapshot = $2, updated_at = now()`,
		policy.ID.String(), raw)
	if err != nil {
		return fmt.Errorf("replace policy snapshot: %w", err)
	}
	return nil
}

func (s *Postgres) ReplaceMembers(ctx context.Context, policyID id.PolicyID, members models.PolicyMembers) error {
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("encode member snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO member_snapshots (policy_id, snapshot, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (policy_id) DO UPDATE SET snapshot = $2, updated_at = now()`,
		policyID.String(), raw)
	if err != nil {
		return fmt.Errorf("replace member snapshot: %w", err)
	}
	return nil
}

func (s *Postgres) ReplacePersonalDetails(ctx context.Context, details models.PersonalDetails) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode personal details: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO detail_snapshots (snapshot_key, snapshot, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (snapshot_key) DO UPDATE SET snapshot = $2, updated_at = now()`,
		detailsKey, raw)
	if err != nil {
		return fmt.Errorf("replace personal details: %w", err)
	}
	return nil
}

func (s *Postgres) ReplaceTags(ctx context.Context, policyID id.PolicyID, tags models.PolicyTags) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tag snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tag_snapshots (policy_id, snapshot, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (policy_id) DO UPDATE SET snapshot = $2, updated_at = now()`,
		policyID.String(), raw)
	if err != nil {
		return fmt.Errorf("replace tag snapshot: %w", err)
	}
	return nil
}
