package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Settings.LogLevel)

	policy := cfg.ToPolicy()
	assert.True(t, policy.SkipSIDs)
	assert.True(t, policy.SkipUserAccounts)
	assert.True(t, policy.SkipInherited)
	assert.True(t, policy.UseLocalPrincipals)
	assert.True(t, policy.CreateMissingGroups)
	assert.False(t, policy.DryRun)
	assert.Equal(t, identity.User, policy.FallbackClassification)
	assert.False(t, cfg.IncludeChildFolders())
}

func TestIncludeChildFoldersMustBeEnabledExplicitly(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("policies:\n  include_child_folders: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.IncludeChildFolders())

	cfg, err = LoadConfigFromReader(strings.NewReader("policies: {}\n"))
	require.NoError(t, err)
	assert.False(t, cfg.IncludeChildFolders())
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfigFromReaderOverridesDefaults(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(`
settings:
  log_level: debug
  machine_name: FILESRV01
policies:
  skip_user_accounts: false
  fallback_classification: group
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "FILESRV01", cfg.Settings.MachineName)

	policy := cfg.ToPolicy()
	assert.False(t, policy.SkipUserAccounts)
	// Unset switches keep their defaults.
	assert.True(t, policy.SkipSIDs)
	assert.Equal(t, identity.Group, policy.FallbackClassification)
}

func TestLoadConfigFromReaderRejectsBadValues(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings:\n  log_level: loud\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)

	_, err = LoadConfigFromReader(strings.NewReader("policies:\n  fallback_classification: machine\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)

	_, err = LoadConfigFromReader(strings.NewReader("not: [valid"))
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestSaveAndReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	require.NoError(t, cfg.SetValue("skip_inherited", "false"))
	require.NoError(t, cfg.SetValue("hooks_dir", "/etc/aclsync/hooks"))
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, loaded.ToPolicy().SkipInherited)
	assert.Equal(t, "/etc/aclsync/hooks", loaded.Settings.HooksDir)
}

func TestSetValueUnknownKey(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.SetValue("nope", "1"))
	assert.Error(t, cfg.SetValue("skip_sids", "maybe"))
}

func TestGetValueReflectsEffectivePolicy(t *testing.T) {
	cfg := DefaultConfig()

	v, err := cfg.GetValue("skip_sids")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	require.NoError(t, cfg.SetValue("skip_sids", "false"))
	v, err = cfg.GetValue("skip_sids")
	require.NoError(t, err)
	assert.Equal(t, "false", v)

	_, err = cfg.GetValue("nope")
	assert.Error(t, err)
}
