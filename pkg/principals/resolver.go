// Package principals resolves identity references against the target
// machine's account database and creates local groups for identities that
// classify as group-like but do not exist yet.
package principals

import "context"

// Resolver answers whether an account name exists on the target machine and
// can create local groups. Implementations are platform-specific; the memory
// implementation backs tests.
type Resolver interface {
	// MachineName returns the local machine name used to qualify
	// principals (`machine\account`).
	MachineName() string

	// Lookup reports whether the bare account name resolves to a valid
	// principal on this machine. A clean "not found" is (false, nil);
	// errors are reserved for lookup failures.
	Lookup(ctx context.Context, name string) (bool, error)

	// CreateGroup creates a local group with the given name.
	CreateGroup(ctx context.Context, name string) error
}
