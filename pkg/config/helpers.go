package config

import (
	"fmt"
	"strconv"
)

// SetValue sets a configuration value by key.
func (c *Config) SetValue(key, value string) error {
	boolField := func(dst **bool) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		*dst = &v
		return nil
	}

	switch key {
	case "log_level":
		c.Settings.LogLevel = value
	case "machine_name":
		c.Settings.MachineName = value
	case "hooks_dir":
		c.Settings.HooksDir = value
	case "skip_sids":
		return boolField(&c.Policies.SkipSIDs)
	case "skip_user_accounts":
		return boolField(&c.Policies.SkipUserAccounts)
	case "skip_inherited":
		return boolField(&c.Policies.SkipInherited)
	case "use_local_principals":
		return boolField(&c.Policies.UseLocalPrincipals)
	case "create_missing_groups":
		return boolField(&c.Policies.CreateMissingGroups)
	case "include_child_folders":
		return boolField(&c.Policies.IncludeChildFolders)
	case "fallback_classification":
		c.Policies.FallbackClassification = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// GetValue returns a configuration value by key, as a string.
func (c *Config) GetValue(key string) (string, error) {
	m := c.ToMap()
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return v, nil
}

// ToMap renders the effective configuration as a flat key/value map, with
// unset policies shown at their defaults. Useful for display.
func (c *Config) ToMap() map[string]string {
	policy := c.ToPolicy()
	return map[string]string{
		"log_level":               c.Settings.LogLevel,
		"machine_name":            c.Settings.MachineName,
		"hooks_dir":               c.Settings.HooksDir,
		"skip_sids":               strconv.FormatBool(policy.SkipSIDs),
		"skip_user_accounts":      strconv.FormatBool(policy.SkipUserAccounts),
		"skip_inherited":          strconv.FormatBool(policy.SkipInherited),
		"use_local_principals":    strconv.FormatBool(policy.UseLocalPrincipals),
		"create_missing_groups":   strconv.FormatBool(policy.CreateMissingGroups),
		"include_child_folders":   strconv.FormatBool(c.IncludeChildFolders()),
		"fallback_classification": policy.FallbackClassification.String(),
	}
}
