// Package identity decides what kind of principal an identity reference
// names: an individual user, a group, a well-known built-in, or a raw
// security identifier. The classification is a deterministic heuristic over
// the name alone; callers treat it as advisory and keep it overridable.
package identity

import (
	"regexp"
	"strings"
)

// Classification is the derived kind of an identity reference.
type Classification int

// Classification values.
const (
	User Classification = iota
	Group
	WellKnownPrincipal
	SecurityIdentifier
)

// String returns the lowercase name of the classification.
func (c Classification) String() string {
	switch c {
	case User:
		return "user"
	case Group:
		return "group"
	case WellKnownPrincipal:
		return "well-known"
	case SecurityIdentifier:
		return "sid"
	default:
		return "unknown"
	}
}

// GroupLike reports whether the classification is applied by default
// (groups and well-known principals, as opposed to users and raw SIDs).
func (c Classification) GroupLike() bool {
	return c == Group || c == WellKnownPrincipal
}

// sidPattern: "S" followed by dash-separated non-negative integers, at least
// two numeric segments (authority plus one or more sub-authorities).
var sidPattern = regexp.MustCompile(`^S-\d+(-\d+)+$`)

// IsSecurityIdentifier reports whether the identity is a raw security
// identifier string. This check runs before any other classification: a SID
// would otherwise be misclassified by the dotted-name heuristic.
func IsSecurityIdentifier(identity string) bool {
	return sidPattern.MatchString(identity)
}

// AccountName strips any scope prefix (everything up to the last backslash)
// and returns the bare account name. Raw SIDs are returned unchanged.
func AccountName(identity string) string {
	if IsSecurityIdentifier(identity) {
		return identity
	}
	if i := strings.LastIndex(identity, `\`); i >= 0 {
		return identity[i+1:]
	}
	return identity
}

// Classifier classifies identity references. The zero value falls back to
// User for names no rule has an opinion on; construct with NewClassifier to
// choose the fallback explicitly.
type Classifier struct {
	// Fallback is the classification for names no rule matches.
	// Only User and Group make sense here.
	Fallback Classification
}

// NewClassifier returns a classifier with the given fallback classification.
func NewClassifier(fallback Classification) *Classifier {
	return &Classifier{Fallback: fallback}
}

// Classify runs the rule chain over the identity. It never fails;
// unrecognized shapes fall through to the configured fallback.
func (c *Classifier) Classify(identity string) Classification {
	if IsSecurityIdentifier(identity) {
		return SecurityIdentifier
	}

	name := AccountName(identity)
	for _, r := range classificationRules {
		switch r.eval(name) {
		case verdictUser:
			return User
		case verdictGroup:
			return Group
		case verdictWellKnown:
			return WellKnownPrincipal
		}
	}
	return c.Fallback
}

// IsLikelyUserAccount reports whether the identity denotes an individual
// user account. Raw SIDs are never user accounts.
func (c *Classifier) IsLikelyUserAccount(identity string) bool {
	return c.Classify(identity) == User
}

// ParseClassification parses "user" or "group" as a fallback setting.
func ParseClassification(s string) (Classification, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return User, true
	case "group":
		return Group, true
	default:
		return User, false
	}
}
