package acl

import (
	"context"
	"testing"

	"github.com/acltools/aclsync/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allowRule(identity string, rights model.Rights) model.PermissionRecord {
	return model.PermissionRecord{
		Identity:          identity,
		AccessControlType: model.Allow,
		Rights:            rights,
	}
}

func TestMemoryStoreAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rule := allowRule("GRP_Finance", model.RightsModify)
	require.NoError(t, store.AddRule(ctx, `D:\Shares\Finance`, rule))
	require.NoError(t, store.AddRule(ctx, `D:\Shares\Finance`, rule))

	entries, err := store.ReadACL(ctx, `D:\Shares\Finance`)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.False(t, entries[0].IsInherited)
}

func TestMemoryStoreReadUnknownFolderIsEmpty(t *testing.T) {
	store := NewMemoryStore()
	entries, err := store.ReadACL(context.Background(), `D:\Nowhere`)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStorePathNormalization(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.AddRule(ctx, `D:\Shares\Finance`, allowRule("Users", model.RightsRead)))

	entries, err := store.ReadACL(ctx, `d:/shares/finance`)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryStoreRemoveRule(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rule := allowRule("GRP_Finance", model.RightsModify)
	require.NoError(t, store.AddRule(ctx, `D:\Shares\Finance`, rule))

	require.NoError(t, store.RemoveRule(ctx, `D:\Shares\Finance`, rule))
	entries, err := store.ReadACL(ctx, `D:\Shares\Finance`)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, store.RemoveRule(ctx, `D:\Shares\Finance`, rule), ErrRuleNotFound)
}

func TestMemoryStoreInheritedRulesAreProtected(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	inherited := allowRule("Users", model.RightsRead)
	inherited.IsInherited = true
	store.Seed(`D:\Shares\Finance`, inherited)

	err := store.RemoveRule(ctx, `D:\Shares\Finance`, allowRule("Users", model.RightsRead))
	assert.ErrorIs(t, err, ErrInheritedRule)

	entries, err := store.ReadACL(ctx, `D:\Shares\Finance`)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].IsInherited)
}

func TestMemoryStoreRemoveExplicitTwinOfInheritedRule(t *testing.T) {
	// Removing a tuple that exists both inherited and explicit takes out the
	// explicit copy only, regardless of entry order.
	ctx := context.Background()
	store := NewMemoryStore()

	inherited := allowRule("Users", model.RightsRead)
	inherited.IsInherited = true
	store.Seed(`D:\Shares\Finance`, inherited)
	require.NoError(t, store.AddRule(ctx, `D:\Shares\Finance`, allowRule("Users", model.RightsRead)))

	require.NoError(t, store.RemoveRule(ctx, `D:\Shares\Finance`, allowRule("Users", model.RightsRead)))

	entries, err := store.ReadACL(ctx, `D:\Shares\Finance`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsInherited)

	// The survivor is inherited, so a second removal is refused.
	assert.ErrorIs(t, store.RemoveRule(ctx, `D:\Shares\Finance`, allowRule("Users", model.RightsRead)), ErrInheritedRule)
}

func TestMemoryStoreAddAlongsideInheritedDuplicate(t *testing.T) {
	// An inherited entry does not satisfy an explicit add; that decision
	// belongs to the reconciler's policy, not the store.
	ctx := context.Background()
	store := NewMemoryStore()

	inherited := allowRule("Users", model.RightsRead)
	inherited.IsInherited = true
	store.Seed(`D:\Shares\Finance`, inherited)

	require.NoError(t, store.AddRule(ctx, `D:\Shares\Finance`, allowRule("Users", model.RightsRead)))

	entries, err := store.ReadACL(ctx, `D:\Shares\Finance`)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
