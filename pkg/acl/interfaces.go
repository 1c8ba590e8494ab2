//go:generate mockgen -destination=./mocks/store.go -package=mocks . Store

// Package acl abstracts the platform access-control-list store. The real
// backend talks to the Windows security APIs; a deterministic in-memory
// implementation backs tests and import rehearsals.
package acl

import (
	"context"

	"github.com/acltools/aclsync/pkg/model"
)

// Store reads and mutates the access-control list of folders. Rule identity
// is the full (identity, rights, type, inheritance, propagation) tuple; see
// model.PermissionRecord.Key.
type Store interface {
	// ReadACL returns every access rule on the folder, explicit and
	// inherited, in a stable order.
	ReadACL(ctx context.Context, folderPath string) ([]model.PermissionRecord, error)

	// AddRule adds an explicit access rule to the folder. Adding a rule
	// whose tuple is already explicitly present is a no-op.
	AddRule(ctx context.Context, folderPath string, record model.PermissionRecord) error

	// RemoveRule removes the explicit rule matching the record's tuple.
	// Inherited entries cannot be removed through this interface.
	RemoveRule(ctx context.Context, folderPath string, record model.PermissionRecord) error
}
