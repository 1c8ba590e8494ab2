package cli

import (
	"fmt"

	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/hook"
	"github.com/acltools/aclsync/pkg/model"
	"github.com/acltools/aclsync/pkg/reconcile"
	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	var (
		flags   policyFlags
		input   string
		folders []string
	)

	cmd := &cobra.Command{
		Use:   "remove TARGET",
		Short: "Remove permissions not in an allowed set",
		Long: `Remove explicit access rules from the folders under TARGET that are not
present in the allowed set. The allowed set comes from --allowed, a CSV file
or bundle in export format; without it, every eligible explicit rule is
removed. Inherited rules are never touched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0], input, folders, &flags)
		},
	}

	cmd.Flags().StringVar(&input, "allowed", "", "CSV file or bundle with the rules to keep")
	cmd.Flags().StringSliceVar(&folders, "folder", nil, "Folder (by leaf name) to process; repeatable. Defaults to the folders named in the allowed set")
	registerPolicyFlags(cmd, &flags)

	return cmd
}

func runRemove(cmd *cobra.Command, target, input string, folders []string, flags *policyFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}
	policy := resolvePolicy(cmd, cfg, flags)

	ctx := cmd.Context()
	var allowed []model.PermissionRecord
	if input != "" {
		allowed, err = loadRecords(ctx, rt.fs, input)
		if err != nil {
			return err
		}
	}
	if input == "" && len(folders) == 0 {
		return fmt.Errorf("nothing to process: provide --allowed, --folder or both")
	}

	hookCtx := hook.Context{
		Operation:   "remove",
		TargetPath:  target,
		InputPath:   input,
		RecordCount: len(allowed),
		DryRun:      policy.DryRun,
	}
	if err := rt.hooks.Execute(hook.PreImport, hookCtx); err != nil {
		return fmt.Errorf("pre-import hook failed: %w", err)
	}

	reconciler := reconcile.New(rt.store, rt.resolver, rt.fs, policy, progressHooks())
	sum, err := reconciler.Remove(ctx, allowed, target, folders)
	if err != nil {
		return fmt.Errorf("failed to remove permissions: %w", err)
	}

	if err := rt.hooks.Execute(hook.PostImport, hookCtx); err != nil {
		return fmt.Errorf("post-import hook failed: %w", err)
	}

	printSummary("remove", sum)
	if sum.Errors > 0 {
		return errors.Wrapf(errors.ErrPartialFailure, "%d rules failed", sum.Errors)
	}
	return nil
}
