package cli

import (
	"fmt"

	"github.com/acltools/aclsync/internal/logger"
	"github.com/acltools/aclsync/pkg/extract"
	"github.com/acltools/aclsync/pkg/hook"
	"github.com/acltools/aclsync/pkg/store"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var (
		children         bool
		includeInherited bool
	)

	cmd := &cobra.Command{
		Use:   "export SOURCE OUTPUT",
		Short: "Export folder permissions",
		Long: `Export the access rules of a folder, and optionally its immediate child
folders, to a CSV file or a portable bundle (.tar.gz).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], args[1], children, includeInherited)
		},
	}

	cmd.Flags().BoolVar(&children, "children", false, "Also export immediate child folders")
	cmd.Flags().BoolVar(&includeInherited, "include-inherited", false, "Include inherited entries as informational rows")

	return cmd
}

func runExport(cmd *cobra.Command, source, output string, children, includeInherited bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rt, err := newRuntime(cfg)
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("children") {
		children = cfg.IncludeChildFolders()
	}

	ctx := cmd.Context()
	hookCtx := hook.Context{
		Operation:  "export",
		SourcePath: source,
		InputPath:  output,
	}
	if err := rt.hooks.Execute(hook.PreExport, hookCtx); err != nil {
		return fmt.Errorf("pre-export hook failed: %w", err)
	}

	extractor := extract.New(rt.store, rt.fs)
	extractor.IncludeInherited = includeInherited

	result, err := extractor.Extract(ctx, source, children)
	if err != nil {
		return fmt.Errorf("failed to export permissions: %w", err)
	}
	for _, failed := range result.Failed {
		logger.Warn("folder could not be read", logger.Fields{
			"folder": failed.Path, "error": failed.Err.Error()})
	}

	if store.IsBundle(output) {
		manifest := store.NewManifest(rt.resolver.MachineName(), source, len(result.Records))
		if err := store.CreateBundle(ctx, rt.fs, output, manifest, result.Records); err != nil {
			return fmt.Errorf("failed to write bundle: %w", err)
		}
	} else {
		if err := store.WriteRecordsFile(rt.fs, output, result.Records); err != nil {
			return fmt.Errorf("failed to write records: %w", err)
		}
	}

	hookCtx.RecordCount = len(result.Records)
	if err := rt.hooks.Execute(hook.PostExport, hookCtx); err != nil {
		return fmt.Errorf("post-export hook failed: %w", err)
	}

	fmt.Printf("exported %d records to %s (%d folders unreadable)\n",
		len(result.Records), output, len(result.Failed))
	return nil
}
