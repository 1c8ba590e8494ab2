// Package model provides the shared data types aclsync moves between the
// extractor, the configuration store and the reconciler.
package model

import (
	"fmt"
	"strings"
)

// PermissionRecord is one observed or desired access rule on a folder.
// Records are never mutated after creation; the reconciler replays them
// against a target ACL.
type PermissionRecord struct {
	// FolderPath is the absolute path on the origin machine. Only its leaf
	// name is used when remapping onto a target base path.
	FolderPath string

	// Identity is a principal reference: a bare name, a scope-qualified
	// `scope\name`, or a raw security identifier string.
	Identity string

	AccessControlType AccessControlType
	Rights            Rights
	InheritanceFlags  InheritanceFlags
	PropagationFlags  PropagationFlags

	// IsInherited is true when the rule arrived via a parent container.
	// Inherited records are informational: they are never re-added
	// explicitly and never removal candidates.
	IsInherited bool
}

// Key returns the set identity of the rule: identity (case-folded, identities
// are case-insensitive), control type, rights and both flag sets. IsInherited
// and FolderPath are deliberately excluded so an inherited entry and an
// explicit duplicate compare equal.
func (r PermissionRecord) Key() string {
	return fmt.Sprintf("%s|%s|%#x|%d|%d",
		strings.ToLower(r.Identity), r.AccessControlType, uint32(r.Rights),
		r.InheritanceFlags, r.PropagationFlags)
}

// String is a compact human-readable rendering used in logs and events.
func (r PermissionRecord) String() string {
	inherited := ""
	if r.IsInherited {
		inherited = " (inherited)"
	}
	return fmt.Sprintf("%s %s %s%s", r.AccessControlType, r.Identity, r.Rights, inherited)
}
