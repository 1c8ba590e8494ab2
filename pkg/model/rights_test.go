package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRightsString(t *testing.T) {
	tests := []struct {
		name   string
		rights Rights
		want   string
	}{
		{"none", 0, "None"},
		{"full control", RightsFullControl, "FullControl"},
		{"modify folds into one name", RightsModify, "Modify"},
		{"read and execute", RightsReadAndExecute, "ReadAndExecute"},
		{"composite plus synchronize", RightsModify | RightsSynchronize, "Modify, Synchronize"},
		{"atomic combination", RightsDelete | RightsTakeOwnership, "Delete, TakeOwnership"},
		{"read covers its atoms", RightsListDirectory | RightsReadExtendedAttributes | RightsReadAttributes | RightsReadPermissions, "Read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rights.String())
		})
	}
}

func TestParseRights(t *testing.T) {
	tests := []struct {
		in   string
		want Rights
	}{
		{"FullControl", RightsFullControl},
		{"fullcontrol", RightsFullControl},
		{"Modify, Synchronize", RightsModify | RightsSynchronize},
		{" ReadAndExecute ", RightsReadAndExecute},
		{"None", 0},
		{"", 0},
		{"Delete,TakeOwnership", RightsDelete | RightsTakeOwnership},
		{"0x100000", RightsSynchronize},
		{"268435456", Rights(0x10000000)}, // generic bit without a symbolic name
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRights(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRightsUnknownName(t *testing.T) {
	_, err := ParseRights("Banana")
	assert.Error(t, err)
}

func TestRightsRoundTrip(t *testing.T) {
	values := []Rights{
		RightsFullControl,
		RightsModify,
		RightsReadAndExecute | RightsSynchronize,
		RightsWrite | RightsDelete,
		RightsChangePermissions,
		RightsModify | Rights(0x10000000),
	}
	for _, v := range values {
		got, err := ParseRights(v.String())
		require.NoError(t, err, "parsing %q", v.String())
		assert.Equal(t, v, got, "round trip of %q", v.String())
	}
}
