package reconcile

import "github.com/acltools/aclsync/pkg/identity"

// Policy is the set of switches controlling how records are filtered and
// applied. It is a plain value passed into the reconciler; nothing mutates
// it after construction.
type Policy struct {
	// SkipSIDs skips records whose identity is a raw security identifier.
	// SIDs are machine-specific and rarely portable.
	SkipSIDs bool

	// SkipUserAccounts skips records whose identity classifies as an
	// individual user account.
	SkipUserAccounts bool

	// SkipInherited skips a record when an identical tuple already exists
	// on the target as an inherited entry. Adding it explicitly would
	// create a redundant duplicate.
	SkipInherited bool

	// UseLocalPrincipals rewrites identities to `machine\account` on the
	// target. Well-known principals stay unqualified.
	UseLocalPrincipals bool

	// CreateMissingGroups creates a local group for a group-like identity
	// that does not resolve on the target, then retries resolution once.
	CreateMissingGroups bool

	// DryRun reports every action without mutating anything.
	DryRun bool

	// FallbackClassification is used for identities no classification rule
	// has an opinion on. See identity.Classifier.
	FallbackClassification identity.Classification
}

// DefaultPolicy returns the documented defaults: all skip/rewrite/create
// switches on, dry-run off, unclassifiable identities assumed to be users.
func DefaultPolicy() Policy {
	return Policy{
		SkipSIDs:                true,
		SkipUserAccounts:        true,
		SkipInherited:           true,
		UseLocalPrincipals:      true,
		CreateMissingGroups:     true,
		DryRun:                  false,
		FallbackClassification: identity.User,
	}
}
