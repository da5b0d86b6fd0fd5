package email

import "testing"

func TestNormalize(t *testing.T) {
	if got := Normalize("  Admin@Example.COM "); got != "admin@example.com" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestHasDomainSuffix(t *testing.T) {
	cases := []struct {
		email  string
		suffix string
		want   bool
	}{
		{"jules@expensify.com", "@expensify.com", true},
		{"Jules@Expensify.com", "@expensify.com", true},
		{"jules@team.expensify.com", "@expensify.com", false},
		{"jules@team.expensify.com", "@team.expensify.com", true},
		{"", "@expensify.com", false},
	}
	for _, tc := range cases {
		if got := HasDomainSuffix(tc.email, tc.suffix); got != tc.want {
			t.Errorf("HasDomainSuffix(%q, %q) = %v, want %v", tc.email, tc.suffix, got, tc.want)
		}
	}
}
