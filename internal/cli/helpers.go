package cli

import (
	"fmt"

	"github.com/acltools/aclsync/internal/logger"
	"github.com/acltools/aclsync/pkg/acl"
	"github.com/acltools/aclsync/pkg/config"
	"github.com/acltools/aclsync/pkg/hook"
	"github.com/acltools/aclsync/pkg/principals"
	"github.com/acltools/aclsync/pkg/reconcile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// These variables will be set by the main package.
var (
	ConfigPath *string
	Verbose    *bool
)

// loadConfig loads the configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	logger.InitLogger(cfg.Settings.LogLevel)

	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}
	return config.GetDefaultConfigPath()
}

// runtime bundles the live backends every operation needs.
type runtime struct {
	fs       afero.Fs
	store    acl.Store
	resolver principals.Resolver
	hooks    hook.Manager
}

func newRuntime(cfg *config.Config) (*runtime, error) {
	fs := afero.NewOsFs()

	resolver := principals.NewPlatformResolver()
	resolver = principals.WithMachineName(resolver, cfg.Settings.MachineName)

	hooks := hook.NewManager()
	if cfg.Settings.HooksDir != "" {
		if err := hook.LoadFromDir(fs, hooks, cfg.Settings.HooksDir); err != nil {
			return nil, fmt.Errorf("failed to load hooks: %w", err)
		}
	}

	return &runtime{
		fs:       fs,
		store:    acl.NewPlatformStore(),
		resolver: resolver,
		hooks:    hooks,
	}, nil
}

// progressHooks prints reconciler events in a human-friendly form.
func progressHooks() reconcile.Hooks {
	return reconcile.Hooks{OnEvent: func(e reconcile.Event) {
		switch {
		case e.Phase == reconcile.PhaseDone:
		case e.Identity != "":
			fmt.Printf("%s: %s (%s)\n", e.Phase, e.Msg, e.Identity)
		default:
			fmt.Printf("%s: %s\n", e.Phase, e.Msg)
		}
	}}
}

// policyFlags are the per-command overrides for the configured policies.
type policyFlags struct {
	dryRun              bool
	skipSIDs            bool
	skipUserAccounts    bool
	skipInherited       bool
	useLocalPrincipals  bool
	createMissingGroups bool
}

// registerPolicyFlags declares the shared policy flags on a command. The
// declared defaults are only placeholders; resolvePolicy applies a flag only
// when the user actually set it, so config values win otherwise.
func registerPolicyFlags(cmd *cobra.Command, flags *policyFlags) {
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report every action without changing anything")
	cmd.Flags().BoolVar(&flags.skipSIDs, "skip-sids", true, "Skip records whose identity is a raw SID")
	cmd.Flags().BoolVar(&flags.skipUserAccounts, "skip-users", true, "Skip records for individual user accounts")
	cmd.Flags().BoolVar(&flags.skipInherited, "skip-inherited", true, "Skip records already covered by an inherited entry")
	cmd.Flags().BoolVar(&flags.useLocalPrincipals, "use-local-principals", true, "Rewrite identities to local machine principals")
	cmd.Flags().BoolVar(&flags.createMissingGroups, "create-missing-groups", true, "Create local groups that do not resolve")
}

// resolvePolicy layers explicit command-line flags over the configured
// policies.
func resolvePolicy(cmd *cobra.Command, cfg *config.Config, flags *policyFlags) reconcile.Policy {
	policy := cfg.ToPolicy()

	set := cmd.Flags().Changed
	if set("dry-run") {
		policy.DryRun = flags.dryRun
	}
	if set("skip-sids") {
		policy.SkipSIDs = flags.skipSIDs
	}
	if set("skip-users") {
		policy.SkipUserAccounts = flags.skipUserAccounts
	}
	if set("skip-inherited") {
		policy.SkipInherited = flags.skipInherited
	}
	if set("use-local-principals") {
		policy.UseLocalPrincipals = flags.useLocalPrincipals
	}
	if set("create-missing-groups") {
		policy.CreateMissingGroups = flags.createMissingGroups
	}
	return policy
}

func printSummary(action string, sum reconcile.Summary) {
	fmt.Printf("%s: %d applied, %d removed, %d skipped, %d errors\n",
		action, sum.Applied, sum.Removed, sum.Skipped, sum.Errors)
}
