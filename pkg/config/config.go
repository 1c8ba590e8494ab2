// Package config loads, validates and persists the application configuration.
// It supports YAML configuration files and provides sensible defaults, so a
// missing config file is never an error.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/identity"
	"github.com/acltools/aclsync/pkg/reconcile"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// YAMLIndent is the number of spaces used for YAML indentation.
const YAMLIndent = 2

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
	Policies Policies `yaml:"policies"`
}

// Settings represents general application settings.
type Settings struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// MachineName overrides the local machine name used when qualifying
	// principals. Empty means auto-detect.
	MachineName string `yaml:"machine_name,omitempty"`

	// HooksDir is where pre/post operation scripts are loaded from.
	HooksDir string `yaml:"hooks_dir,omitempty"`
}

// Policies holds the reconciliation switches. Pointers distinguish "not set"
// from "explicitly false"; unset fields take the documented defaults.
type Policies struct {
	SkipSIDs            *bool `yaml:"skip_sids,omitempty"`
	SkipUserAccounts    *bool `yaml:"skip_user_accounts,omitempty"`
	SkipInherited       *bool `yaml:"skip_inherited,omitempty"`
	UseLocalPrincipals  *bool `yaml:"use_local_principals,omitempty"`
	CreateMissingGroups *bool `yaml:"create_missing_groups,omitempty"`

	// IncludeChildFolders controls whether exports also capture the ACLs
	// of the source folder's immediate children.
	IncludeChildFolders *bool `yaml:"include_child_folders,omitempty"`

	// FallbackClassification decides how identities are treated when no
	// classification rule matches: "user" or "group".
	FallbackClassification string `yaml:"fallback_classification,omitempty" validate:"omitempty,oneof=user group"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			LogLevel: "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves the configuration to a file, atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}
	return os.Chmod(absPath, 0o644)
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
}

// ToPolicy resolves the configured policies against the documented defaults.
func (c *Config) ToPolicy() reconcile.Policy {
	policy := reconcile.DefaultPolicy()
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&policy.SkipSIDs, c.Policies.SkipSIDs)
	apply(&policy.SkipUserAccounts, c.Policies.SkipUserAccounts)
	apply(&policy.SkipInherited, c.Policies.SkipInherited)
	apply(&policy.UseLocalPrincipals, c.Policies.UseLocalPrincipals)
	apply(&policy.CreateMissingGroups, c.Policies.CreateMissingGroups)
	if c.Policies.FallbackClassification != "" {
		if class, ok := identity.ParseClassification(c.Policies.FallbackClassification); ok {
			policy.FallbackClassification = class
		}
	}
	return policy
}

// IncludeChildFolders reports whether exports should also capture the ACLs
// of immediate child folders. Off by default: a plain export covers the one
// folder it was pointed at.
func (c *Config) IncludeChildFolders() bool {
	if c.Policies.IncludeChildFolders == nil {
		return false
	}
	return *c.Policies.IncludeChildFolders
}

// GetDefaultConfigPath returns the platform-appropriate config file location.
func GetDefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "aclsync", "config.yaml")
	}
	return filepath.Join(configDir, "aclsync", "config.yaml")
}
