package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
)

func chatPolicy(policyID string) models.Policy {
	return models.Policy{
		ID:                         id.PolicyID(policyID),
		Role:                       models.RoleAdmin,
		IsPolicyExpenseChatEnabled: true,
	}
}

func TestFilterActive(t *testing.T) {
	cases := []struct {
		name     string
		policies []models.Policy
		wantIDs  []string
	}{
		{
			name:     "nil input yields empty",
			policies: nil,
			wantIDs:  []string{},
		},
		{
			name: "keeps chat-enabled policies",
			policies: []models.Policy{
				{ID: "A", IsPolicyExpenseChatEnabled: true},
				{ID: "B", AreChatRoomsEnabled: true},
			},
			wantIDs: []string{"A", "B"},
		},
		{
			name: "drops policies without a chat surface",
			policies: []models.Policy{
				{ID: "A"},
				{ID: "B", AreChatRoomsEnabled: true},
			},
			wantIDs: []string{"B"},
		},
		{
			name: "pending delete is excluded regardless of flags",
			policies: []models.Policy{
				{ID: "A", IsPolicyExpenseChatEnabled: true, AreChatRoomsEnabled: true, PendingAction: models.PendingActionDelete},
			},
			wantIDs: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterActive(tc.policies)
			ids := make([]string, 0, len(got))
			for _, p := range got {
				ids = append(ids, p.ID.String())
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

func TestHasPolicyError(t *testing.T) {
	t.Run("policy-level errors win regardless of error fields", func(t *testing.T) {
		p := models.Policy{Errors: models.Errors{"e1": "boom"}}
		assert.True(t, HasPolicyError(p))
	})

	t.Run("delegates to error fields when policy errors empty", func(t *testing.T) {
		p := models.Policy{ErrorFields: map[string]models.Errors{
			"name": {"e1": "bad name"},
		}}
		assert.True(t, HasPolicyError(p))
	})

	t.Run("empty field maps do not count", func(t *testing.T) {
		p := models.Policy{ErrorFields: map[string]models.Errors{
			"name": {},
			"type": nil,
		}}
		assert.False(t, HasPolicyError(p))
	})

	t.Run("zero policy has no error", func(t *testing.T) {
		assert.False(t, HasPolicyError(models.Policy{}))
	})
}

func TestHasMemberError(t *testing.T) {
	assert.False(t, HasMemberError(nil))
	assert.False(t, HasMemberError(models.PolicyMembers{
		1: {Role: models.RoleUser},
	}))
	assert.True(t, HasMemberError(models.PolicyMembers{
		1: {Role: models.RoleUser},
		2: {Errors: models.Errors{"e1": "failed to add"}},
	}))
}

func TestHasCustomUnitsError(t *testing.T) {
	assert.False(t, HasCustomUnitsError(models.Policy{}))
	assert.False(t, HasCustomUnitsError(models.Policy{CustomUnits: map[string]models.CustomUnit{
		"u1": {Name: "Distance"},
	}}))
	assert.True(t, HasCustomUnitsError(models.Policy{CustomUnits: map[string]models.CustomUnit{
		"u1": {Name: "Distance", Errors: models.Errors{"e1": "bad rate"}},
	}}))
}

func TestBrickRoadStatus(t *testing.T) {
	policy := chatPolicy("P1")

	t.Run("clean policy has no status", func(t *testing.T) {
		assert.Equal(t, models.StatusNone, BrickRoadStatus(policy, nil))
	})

	t.Run("member error raises status", func(t *testing.T) {
		membersByKey := map[string]models.PolicyMembers{
			models.MemberKey("P1"): {7: {Errors: models.Errors{"e1": "invite failed"}}},
		}
		assert.Equal(t, models.StatusError, BrickRoadStatus(policy, membersByKey))
	})

	t.Run("member errors on another policy do not leak", func(t *testing.T) {
		membersByKey := map[string]models.PolicyMembers{
			models.MemberKey("P2"): {7: {Errors: models.Errors{"e1": "invite failed"}}},
		}
		assert.Equal(t, models.StatusNone, BrickRoadStatus(policy, membersByKey))
	})

	t.Run("custom unit error raises status", func(t *testing.T) {
		p := policy
		p.CustomUnits = map[string]models.CustomUnit{"u1": {Errors: models.Errors{"e1": "bad"}}}
		assert.Equal(t, models.StatusError, BrickRoadStatus(p, nil))
	})

	t.Run("field error raises status", func(t *testing.T) {
		p := policy
		p.ErrorFields = map[string]models.Errors{"avatar": {"e1": "upload failed"}}
		assert.Equal(t, models.StatusError, BrickRoadStatus(p, nil))
	})
}

func TestShouldShowPolicy(t *testing.T) {
	base := models.Policy{
		ID:                         "P1",
		Role:                       models.RoleAdmin,
		IsPolicyExpenseChatEnabled: true,
		PendingAction:              models.PendingActionDelete,
	}

	t.Run("offline keeps pending-delete visible", func(t *testing.T) {
		assert.True(t, ShouldShowPolicy(base, true))
	})

	t.Run("online hides pending-delete without errors", func(t *testing.T) {
		assert.False(t, ShouldShowPolicy(base, false))
	})

	t.Run("online keeps pending-delete with errors", func(t *testing.T) {
		p := base
		p.Errors = models.Errors{"e1": "delete failed"}
		assert.True(t, ShouldShowPolicy(p, false))
	})

	t.Run("non-admin never sees the workspace", func(t *testing.T) {
		p := base
		p.Role = models.RoleUser
		p.PendingAction = models.PendingActionNone
		assert.False(t, ShouldShowPolicy(p, true))
	})

	t.Run("expense chat disabled never shows", func(t *testing.T) {
		p := base
		p.IsPolicyExpenseChatEnabled = false
		p.PendingAction = models.PendingActionNone
		assert.False(t, ShouldShowPolicy(p, true))
	})
}

func TestEmailDomainChecks(t *testing.T) {
	assert.True(t, IsExpensifyTeamEmail("jules@expensify.com"))
	assert.True(t, IsExpensifyTeamEmail("Jules@Expensify.com"))
	assert.False(t, IsExpensifyTeamEmail("jules@team.expensify.com"))
	assert.False(t, IsExpensifyTeamEmail("jules@example.com"))
	assert.False(t, IsExpensifyTeamEmail(""))

	assert.True(t, IsExpensifyGuideEmail("guide@team.expensify.com"))
	assert.False(t, IsExpensifyGuideEmail("guide@expensify.com"))
}

func TestMemberAccountIDsByEmail(t *testing.T) {
	details := models.PersonalDetails{
		1: {Login: "Alice@Example.com"},
		2: {Login: "bob@example.com"},
		3: {},
	}

	t.Run("resolves clean members by normalized login", func(t *testing.T) {
		members := models.PolicyMembers{
			1: {Role: models.RoleAdmin},
			2: {Role: models.RoleUser},
		}
		got := MemberAccountIDsByEmail(members, details)
		require.Len(t, got, 2)
		assert.Equal(t, id.AccountID(1), got["alice@example.com"])
		assert.Equal(t, id.AccountID(2), got["bob@example.com"])
	})

	t.Run("error-bearing member never appears even with a valid login", func(t *testing.T) {
		members := models.PolicyMembers{
			1: {Errors: models.Errors{"e1": "invite failed"}},
			2: {},
		}
		got := MemberAccountIDsByEmail(members, details)
		assert.NotContains(t, got, "alice@example.com")
		assert.Contains(t, got, "bob@example.com")
	})

	t.Run("members without resolvable logins are skipped", func(t *testing.T) {
		members := models.PolicyMembers{
			3: {},
			9: {},
		}
		assert.Empty(t, MemberAccountIDsByEmail(members, details))
	})

	t.Run("nil inputs yield empty map", func(t *testing.T) {
		assert.Empty(t, MemberAccountIDsByEmail(nil, nil))
	})
}

func TestIneligibleInvitees(t *testing.T) {
	details := models.PersonalDetails{
		1: {Login: "alice@example.com"},
		2: {Login: "bob@example.com"},
		3: {Login: "carol@example.com"},
	}

	t.Run("always contains the system accounts", func(t *testing.T) {
		got := IneligibleInvitees(nil, nil)
		for e := range SystemEmails() {
			assert.Contains(t, got, e)
		}
	})

	t.Run("current members are ineligible", func(t *testing.T) {
		members := models.PolicyMembers{1: {}, 2: {}}
		got := IneligibleInvitees(members, details)
		assert.Contains(t, got, "alice@example.com")
		assert.Contains(t, got, "bob@example.com")
		assert.NotContains(t, got, "carol@example.com")
	})

	t.Run("pending-delete and error-bearing members stay eligible", func(t *testing.T) {
		members := models.PolicyMembers{
			1: {PendingAction: models.PendingActionDelete},
			2: {Errors: models.Errors{"e1": "invite failed"}},
			3: {},
		}
		got := IneligibleInvitees(members, details)
		assert.NotContains(t, got, "alice@example.com")
		assert.NotContains(t, got, "bob@example.com")
		assert.Contains(t, got, "carol@example.com")
	})
}

func TestTags(t *testing.T) {
	tags := models.PolicyTags{
		"b-states": {Name: "States"},
		"a-meals":  {Name: "Meals", Tags: models.PolicyTags{"lunch": {Name: "Lunch", Enabled: true}}},
	}

	t.Run("GetTag by key", func(t *testing.T) {
		assert.Equal(t, "States", GetTag(tags, "b-states").Name)
	})

	t.Run("GetTag falls back to first key", func(t *testing.T) {
		assert.Equal(t, "Meals", GetTag(tags, "").Name)
	})

	t.Run("GetTag on empty map", func(t *testing.T) {
		assert.Equal(t, models.PolicyTag{}, GetTag(nil, "any"))
	})

	t.Run("GetTagListName empty map yields empty string", func(t *testing.T) {
		assert.Equal(t, "", GetTagListName(nil))
	})

	t.Run("GetTagListName single tag", func(t *testing.T) {
		single := models.PolicyTags{"t1": {Name: "Meals"}}
		assert.Equal(t, "Meals", GetTagListName(single))
	})

	t.Run("GetTagList by key", func(t *testing.T) {
		got := GetTagList(tags, "a-meals")
		require.Contains(t, got, "lunch")
		assert.Equal(t, "Lunch", got["lunch"].Name)
	})

	t.Run("GetTagList missing key falls back to first group", func(t *testing.T) {
		got := GetTagList(tags, "nope")
		assert.Contains(t, got, "lunch")
	})

	t.Run("GetTagList group without nested tags yields empty map", func(t *testing.T) {
		got := GetTagList(tags, "b-states")
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("GetTagList empty input", func(t *testing.T) {
		assert.Empty(t, GetTagList(nil, "any"))
	})
}

func TestIsPendingDelete(t *testing.T) {
	assert.True(t, IsPendingDelete(models.Policy{PendingAction: models.PendingActionDelete}))
	assert.False(t, IsPendingDelete(models.Policy{PendingAction: models.PendingActionUpdate}))
	assert.False(t, IsPendingDelete(models.Policy{}))
}
