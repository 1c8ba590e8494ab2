package cli

import (
	"context"
	"fmt"

	"github.com/acltools/aclsync/internal/logger"
	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/hook"
	"github.com/acltools/aclsync/pkg/model"
	"github.com/acltools/aclsync/pkg/reconcile"
	"github.com/acltools/aclsync/pkg/store"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	var flags policyFlags

	cmd := &cobra.Command{
		Use:   "import INPUT TARGET",
		Short: "Import folder permissions",
		Long: `Import permission records from a CSV file or bundle onto the folders under
TARGET. Each exported folder is matched to a target folder by its leaf name.
Records already satisfied on the target are skipped, so importing twice is
safe.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], args[1], &flags)
		},
	}

	registerPolicyFlags(cmd, &flags)

	return cmd
}

func runImport(cmd *cobra.Command, input, target string, flags *policyFlags) error {
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
	records, err := loadRecords(ctx, rt.fs, input)
	if err != nil {
		return err
	}

	hookCtx := hook.Context{
		Operation:   "import",
		TargetPath:  target,
		InputPath:   input,
		RecordCount: len(records),
		DryRun:      policy.DryRun,
	}
	if err := rt.hooks.Execute(hook.PreImport, hookCtx); err != nil {
		return fmt.Errorf("pre-import hook failed: %w", err)
	}

	reconciler := reconcile.New(rt.store, rt.resolver, rt.fs, policy, progressHooks())
	sum, err := reconciler.Apply(ctx, records, target)
	if err != nil {
		return fmt.Errorf("failed to import permissions: %w", err)
	}

	if err := rt.hooks.Execute(hook.PostImport, hookCtx); err != nil {
		return fmt.Errorf("post-import hook failed: %w", err)
	}

	printSummary("import", sum)
	if sum.Errors > 0 {
		return errors.Wrapf(errors.ErrPartialFailure, "%d records failed", sum.Errors)
	}
	return nil
}

// loadRecords reads permission records from a bundle or a bare CSV file.
func loadRecords(ctx context.Context, fs afero.Fs, input string) ([]model.PermissionRecord, error) {
	if store.IsBundle(input) {
		manifest, records, err := store.OpenBundle(ctx, fs, input)
		if err != nil {
			return nil, fmt.Errorf("failed to open bundle: %w", err)
		}
		logger.Info("opened bundle", logger.Fields{
			"source_machine": manifest.SourceMachine,
			"source_path":    manifest.SourcePath,
			"created_at":     manifest.CreatedAt,
			"records":        len(records),
		})
		return records, nil
	}
	records, err := store.ReadRecordsFile(fs, input)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}
