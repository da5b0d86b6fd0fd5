package derive

// Fixed email constants. These are configuration values loaded once at
// process start, never derived from snapshots.
const (
	teamEmailSuffix  = "@expensify.com"
	guideEmailSuffix = "@team.expensify.com"
)

// systemEmails are accounts that must never surface as invite candidates.
var systemEmails = map[string]struct{}{
	"accounting@expensify.com":         {},
	"admin@expensify.com":              {},
	"bills@expensify.com":              {},
	"chronos@expensify.com":            {},
	"concierge@expensify.com":          {},
	"contributors@expensify.com":       {},
	"firstresponders@expensify.com":    {},
	"help@expensify.com":               {},
	"notifications@expensify.com":      {},
	"payroll@expensify.com":            {},
	"qa@expensify.com":                 {},
	"receipts@expensify.com":           {},
	"studentambassadors@expensify.com": {},
}

// SystemEmails returns the fixed system-account set as a fresh copy so
// callers cannot mutate the configuration.
func SystemEmails() map[string]struct{} {
	out := make(map[string]struct{}, len(systemEmails))
	for e := range systemEmails {
		out[e] = struct{}{}
	}
	return out
}
