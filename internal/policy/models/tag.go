package models

// PolicyTag is one tag (or tag group) on a policy. Groups nest their member
// tags under Tags.
type PolicyTag struct {
	Name    string     `json:"name"`
	Enabled bool       `json:"enabled"`
	Tags    PolicyTags `json:"tags,omitempty"`
}

// PolicyTags maps tag names to tags. The upstream store keeps one top-level
// map per policy; group entries nest a second level.
type PolicyTags map[string]PolicyTag
