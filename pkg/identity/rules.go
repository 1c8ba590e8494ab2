package identity

import (
	"strings"
	"unicode"
)

// verdict is a single rule's opinion about a name.
type verdict int

const (
	noOpinion verdict = iota
	verdictUser
	verdictGroup
	verdictWellKnown
)

// rule is one named step of the classification chain. Rules are evaluated in
// order until one returns an opinion; the ordering is load-bearing (group
// signals must be exhausted before the dot-based user heuristic runs).
type rule struct {
	name string
	eval func(name string) verdict
}

// minUppercaseCodeLength is the shortest all-uppercase alphanumeric token
// treated as a group code rather than a short login name.
const minUppercaseCodeLength = 6

var classificationRules = []rule{
	{
		name: "well-known-principal",
		eval: func(name string) verdict {
			if IsWellKnown(name) {
				return verdictWellKnown
			}
			return noOpinion
		},
	},
	{
		name: "group-prefix",
		eval: func(name string) verdict {
			upper := strings.ToUpper(name)
			for _, p := range groupPrefixes {
				if strings.HasPrefix(upper, p) {
					return verdictGroup
				}
			}
			return noOpinion
		},
	},
	{
		name: "group-keyword",
		eval: func(name string) verdict {
			lower := strings.ToLower(name)
			for _, kw := range groupKeywords {
				if strings.Contains(lower, kw) {
					return verdictGroup
				}
			}
			return noOpinion
		},
	},
	{
		name: "multi-segment-code",
		eval: func(name string) verdict {
			if strings.Contains(name, ".") {
				return noOpinion
			}
			segments := strings.FieldsFunc(name, func(r rune) bool {
				return r == '_' || r == '-'
			})
			if len(segments) >= 3 {
				return verdictGroup
			}
			return noOpinion
		},
	},
	{
		name: "uppercase-code",
		eval: func(name string) verdict {
			if len(name) < minUppercaseCodeLength {
				return noOpinion
			}
			hasLetter := false
			for _, r := range name {
				switch {
				case unicode.IsUpper(r):
					hasLetter = true
				case unicode.IsDigit(r):
				default:
					return noOpinion
				}
			}
			if hasLetter {
				return verdictGroup
			}
			return noOpinion
		},
	},
	{
		name: "dotted-name",
		eval: func(name string) verdict {
			if strings.Contains(name, ".") {
				return verdictUser
			}
			return noOpinion
		},
	},
}
