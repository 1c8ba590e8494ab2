package cli

import (
	"testing"

	"github.com/acltools/aclsync/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicyTestCmd(flags *policyFlags) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	registerPolicyFlags(cmd, flags)
	return cmd
}

func TestResolvePolicyUsesConfigWhenFlagsUntouched(t *testing.T) {
	var flags policyFlags
	cmd := newPolicyTestCmd(&flags)
	require.NoError(t, cmd.Execute())

	cfg := config.DefaultConfig()
	off := false
	cfg.Policies.SkipUserAccounts = &off

	policy := resolvePolicy(cmd, cfg, &flags)
	assert.False(t, policy.SkipUserAccounts)
	assert.True(t, policy.SkipSIDs)
	assert.False(t, policy.DryRun)
}

func TestResolvePolicyFlagsWinOverConfig(t *testing.T) {
	var flags policyFlags
	cmd := newPolicyTestCmd(&flags)
	cmd.SetArgs([]string{"--skip-users=true", "--dry-run", "--create-missing-groups=false"})
	require.NoError(t, cmd.Execute())

	cfg := config.DefaultConfig()
	off := false
	cfg.Policies.SkipUserAccounts = &off

	policy := resolvePolicy(cmd, cfg, &flags)
	assert.True(t, policy.SkipUserAccounts)
	assert.True(t, policy.DryRun)
	assert.False(t, policy.CreateMissingGroups)
	// Untouched flags still come from config defaults.
	assert.True(t, policy.UseLocalPrincipals)
}
