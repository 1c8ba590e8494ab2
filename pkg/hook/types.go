// Package hook runs user-supplied Tengo scripts around export and import
// operations, for site-specific steps like notifying a ticket system or
// validating a share layout before permissions are applied.
package hook

// Type identifies when a hook script runs.
type Type string

// Supported hook types.
const (
	PreExport  Type = "pre-export"
	PostExport Type = "post-export"
	PreImport  Type = "pre-import"
	PostImport Type = "post-import"
)

// Hook is a script bound to a hook type.
type Hook struct {
	Type    Type
	Content string
}

// Context carries operation details into a hook script.
type Context struct {
	// Operation is "export", "import" or "remove".
	Operation string
	// SourcePath is the folder tree being exported from.
	SourcePath string
	// TargetPath is the base folder being imported onto.
	TargetPath string
	// InputPath is the CSV or bundle file involved.
	InputPath string
	// RecordCount is the number of permission records in play.
	RecordCount int
	// DryRun mirrors the run's dry-run switch so scripts can avoid side
	// effects of their own.
	DryRun bool
	// Vars carries extra site-specific variables.
	Vars map[string]interface{}
}

// Manager registers and executes hooks.
type Manager interface {
	// Execute runs the hook of the given type, if one is registered.
	Execute(hookType Type, ctx Context) error

	// AddHook registers a hook, replacing any previous one of its type.
	AddHook(hook Hook) error

	// RemoveHook unregisters the hook of the given type.
	RemoveHook(hookType Type) error

	// HasHook reports whether a hook of the given type is registered.
	HasHook(hookType Type) bool
}
