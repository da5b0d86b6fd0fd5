// Package derive computes read-model projections over policy snapshots.
//
// Every function here is a pure projection: no I/O, no mutation of inputs,
// no panics. Nil or absent collections degrade to empty results, matching
// the upstream store's absence-means-empty semantics.
package derive

import (
	"sort"

	"policyhub/internal/policy/models"
	id "policyhub/pkg/domain"
	"policyhub/pkg/email"
)

// FilterActive keeps policies with an enabled chat surface (expense chat or
// chat rooms) that are not pending deletion.
func FilterActive(policies []models.Policy) []models.Policy {
	out := make([]models.Policy, 0, len(policies))
	for _, p := range policies {
		if !p.IsPolicyExpenseChatEnabled && !p.AreChatRoomsEnabled {
			continue
		}
		if IsPendingDelete(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// HasMemberError reports whether any member carries a non-empty error map.
func HasMemberError(members models.PolicyMembers) bool {
	for _, m := range members {
		if !m.Errors.IsEmpty() {
			return true
		}
	}
	return false
}

// HasErrorFields reports whether any field-level error map is non-empty.
func HasErrorFields(p models.Policy) bool {
	for _, fieldErrors := range p.ErrorFields {
		if !fieldErrors.IsEmpty() {
			return true
		}
	}
	return false
}

// HasPolicyError reports whether the policy carries errors at the policy
// level, falling back to field-level errors.
func HasPolicyError(p models.Policy) bool {
	if !p.Errors.IsEmpty() {
		return true
	}
	return HasErrorFields(p)
}

// HasCustomUnitsError reports whether any custom unit carries errors.
func HasCustomUnitsError(p models.Policy) bool {
	for _, unit := range p.CustomUnits {
		if !unit.Errors.IsEmpty() {
			return true
		}
	}
	return false
}

// BrickRoadStatus derives the error indicator for a workspace row. The
// policy's member map is looked up in membersByKey under MemberKey(p.ID).
func BrickRoadStatus(p models.Policy, membersByKey map[string]models.PolicyMembers) models.ErrorStatus {
	if HasMemberError(membersByKey[models.MemberKey(p.ID)]) {
		return models.StatusError
	}
	if HasCustomUnitsError(p) || HasErrorFields(p) {
		return models.StatusError
	}
	return models.StatusNone
}

// ShouldShowPolicy decides workspace-list visibility. While offline, a
// pending-delete policy stays visible so the user can see the in-flight
// state; once online it is hidden unless it carries an error the user still
// needs to see.
func ShouldShowPolicy(p models.Policy, isOffline bool) bool {
	if !p.IsPolicyExpenseChatEnabled || !IsPolicyAdmin(p) {
		return false
	}
	return isOffline || !IsPendingDelete(p) || !p.Errors.IsEmpty()
}

// IsExpensifyTeamEmail reports whether the login belongs to the team domain.
func IsExpensifyTeamEmail(login string) bool {
	return email.HasDomainSuffix(login, teamEmailSuffix)
}

// IsExpensifyGuideEmail reports whether the login belongs to the guides
// domain.
func IsExpensifyGuideEmail(login string) bool {
	return email.HasDomainSuffix(login, guideEmailSuffix)
}

// IsPolicyAdmin reports whether the caller administers the policy.
func IsPolicyAdmin(p models.Policy) bool {
	return p.Role == models.RoleAdmin
}

// IsPendingDelete reports whether the record has a queued deletion.
func IsPendingDelete(p models.Policy) bool {
	return p.PendingAction == models.PendingActionDelete
}

// MemberAccountIDsByEmail resolves clean members to their account IDs,
// keyed by normalized login. Members with a non-empty error map are
// excluded: surfacing an error-bearing member as a normal contact would
// implicitly resolve the error before the user sees it. Members whose
// login cannot be resolved are skipped.
func MemberAccountIDsByEmail(members models.PolicyMembers, details models.PersonalDetails) map[string]id.AccountID {
	out := make(map[string]id.AccountID, len(members))
	for accountID, member := range members {
		if !member.Errors.IsEmpty() {
			continue
		}
		login := email.Normalize(details[accountID].Login)
		if login == "" {
			continue
		}
		out[login] = accountID
	}
	return out
}

// IneligibleInvitees collects logins that must not be offered as invite
// candidates: the fixed system accounts plus every current member. Members
// pending deletion or carrying errors stay eligible so they can be
// re-invited or fixed.
func IneligibleInvitees(members models.PolicyMembers, details models.PersonalDetails) map[string]struct{} {
	out := SystemEmails()
	for accountID, member := range members {
		if member.PendingAction == models.PendingActionDelete || !member.Errors.IsEmpty() {
			continue
		}
		login := email.Normalize(details[accountID].Login)
		if login == "" {
			continue
		}
		out[login] = struct{}{}
	}
	return out
}

// GetTag returns the tag stored under key, or the first tag when key is
// empty. Empty input yields a zero tag.
func GetTag(tags models.PolicyTags, key string) models.PolicyTag {
	if len(tags) == 0 {
		return models.PolicyTag{}
	}
	if key == "" {
		key = firstKey(tags)
	}
	return tags[key]
}

// GetTagListName returns the name of the first tag group, or empty string.
func GetTagListName(tags models.PolicyTags) string {
	return GetTag(tags, "").Name
}

// GetTagList returns the nested tag map of the group stored under key,
// falling back to the first group when key is absent. Missing groups yield
// an empty map.
func GetTagList(tags models.PolicyTags, key string) models.PolicyTags {
	if len(tags) == 0 {
		return models.PolicyTags{}
	}
	if _, ok := tags[key]; !ok {
		key = firstKey(tags)
	}
	inner := tags[key].Tags
	if inner == nil {
		return models.PolicyTags{}
	}
	return inner
}

// firstKey picks the lexicographically smallest key. Go maps are unordered,
// so "first" must be deterministic for stable output.
func firstKey(tags models.PolicyTags) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}
