package principals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResolverLookupIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryResolver("FILESRV01", "GRP_Finance", "alice.jones")

	found, err := r.Lookup(ctx, "grp_finance")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = r.Lookup(ctx, "ALICE.JONES")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = r.Lookup(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryResolverAddAccount(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryResolver("FILESRV01")

	r.AddAccount("GRP_Finance")

	found, err := r.Lookup(ctx, "grp_finance")
	require.NoError(t, err)
	assert.True(t, found)
	// Seeded accounts are pre-existing, not created groups.
	assert.Empty(t, r.CreatedGroups())
}

func TestMemoryResolverCreateGroup(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryResolver("FILESRV01")

	require.NoError(t, r.CreateGroup(ctx, "GRP_NewTeam"))

	found, err := r.Lookup(ctx, "grp_newteam")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"GRP_NewTeam"}, r.CreatedGroups())
	assert.Equal(t, "FILESRV01", r.MachineName())
}
