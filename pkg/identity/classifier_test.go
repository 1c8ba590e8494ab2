package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSecurityIdentifier(t *testing.T) {
	tests := []struct {
		identity string
		want     bool
	}{
		{"S-1-5-21-111-222-333-1001", true},
		{"S-1-5", true},
		{"S-1-5-32-544", true},
		{"S-1", false}, // only one numeric segment
		{"S-", false},
		{"s-1-5-21", false}, // lowercase s is not a SID
		{"S-1-5-21-", false},
		{"SYSTEM", false},
		{`CORP\alice.smith`, false},
		{"S-1-5-21-a-b", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSecurityIdentifier(tt.identity))
		})
	}
}

func TestAccountName(t *testing.T) {
	tests := []struct {
		identity string
		want     string
	}{
		{`DOMAIN\alice.smith`, "alice.smith"},
		{`NT AUTHORITY\SYSTEM`, "SYSTEM"},
		{`BUILTIN\Administrators`, "Administrators"},
		{"Everyone", "Everyone"},
		{"S-1-5-21-111-222-333-1001", "S-1-5-21-111-222-333-1001"},
		{`a\b\c`, "c"},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			assert.Equal(t, tt.want, AccountName(tt.identity))
		})
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier(User)

	tests := []struct {
		identity string
		want     Classification
	}{
		// SIDs win before anything else.
		{"S-1-5-21-111-222-333-1001", SecurityIdentifier},

		// Well-known principals, qualified or not.
		{"Everyone", WellKnownPrincipal},
		{`NT AUTHORITY\SYSTEM`, WellKnownPrincipal},
		{`BUILTIN\Administrators`, WellKnownPrincipal},
		{"Authenticated Users", WellKnownPrincipal},
		{`CORP\Domain Admins`, WellKnownPrincipal},

		// Group naming conventions.
		{"GRP_Finance", Group},
		{`CORP\G_FileServers`, Group},
		{"Role_Approvers", Group},
		{"SVC_Backup", Group},
		{"DL_Everybody", Group},

		// Keyword anywhere in the name beats the dot heuristic; the ordering
		// is what keeps PD_Users_Technical a group despite containing no dot
		// and dotted group names from leaking into users.
		{"PD_Users_Technical", Group},
		{"finance.access", Group},
		{"NightShiftStaff", Group},

		// Structural heuristics.
		{"PD_FIN_RW", Group},       // multi-segment code, no dot
		{"FSRV01X", Group},         // long all-uppercase alphanumeric token
		{"mary-jane", User},        // two segments only, falls through to fallback
		{"jsmith", User},           // fallback
		{`CORP\alice.smith`, User}, // dotted name
		{"bob.jones", User},
	}

	for _, tt := range tests {
		t.Run(tt.identity, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.identity), "classify %q", tt.identity)
		})
	}
}

func TestClassifyFallback(t *testing.T) {
	// "frontdesk7" matches no rule: lowercase, one segment, no dot, no keyword.
	assert.Equal(t, User, NewClassifier(User).Classify("frontdesk7"))
	assert.Equal(t, Group, NewClassifier(Group).Classify("frontdesk7"))

	// Zero value falls back to User.
	var zero Classifier
	assert.Equal(t, User, zero.Classify("frontdesk7"))
}

func TestIsLikelyUserAccount(t *testing.T) {
	c := NewClassifier(User)

	assert.True(t, c.IsLikelyUserAccount(`DOMAIN\alice.smith`))
	assert.False(t, c.IsLikelyUserAccount("PD_Users_Technical"))
	assert.False(t, c.IsLikelyUserAccount("S-1-5-21-111-222-333-1001"))
	assert.False(t, c.IsLikelyUserAccount("Everyone"))
}

func TestGroupLike(t *testing.T) {
	assert.True(t, Group.GroupLike())
	assert.True(t, WellKnownPrincipal.GroupLike())
	assert.False(t, User.GroupLike())
	assert.False(t, SecurityIdentifier.GroupLike())
}

func TestParseClassification(t *testing.T) {
	got, ok := ParseClassification("group")
	assert.True(t, ok)
	assert.Equal(t, Group, got)

	got, ok = ParseClassification(" User ")
	assert.True(t, ok)
	assert.Equal(t, User, got)

	_, ok = ParseClassification("robot")
	assert.False(t, ok)
}
