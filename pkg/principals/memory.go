package principals

import (
	"context"
	"strings"
	"sync"
)

// MemoryResolver is an in-memory Resolver for tests and rehearsals. Account
// names are case-insensitive, like the platform database it stands in for.
type MemoryResolver struct {
	mu       sync.RWMutex
	machine  string
	accounts map[string]struct{}
	created  []string
}

// NewMemoryResolver creates a resolver for the given machine name with the
// given pre-existing account names (users and groups alike).
func NewMemoryResolver(machineName string, accounts ...string) *MemoryResolver {
	r := &MemoryResolver{
		machine:  machineName,
		accounts: make(map[string]struct{}, len(accounts)),
	}
	for _, a := range accounts {
		r.accounts[strings.ToLower(a)] = struct{}{}
	}
	return r
}

// AddAccount registers an existing account name (user or group) without
// counting it as a created group.
func (r *MemoryResolver) AddAccount(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[strings.ToLower(name)] = struct{}{}
}

// MachineName returns the configured machine name.
func (r *MemoryResolver) MachineName() string {
	return r.machine
}

// Lookup reports whether the account name exists.
func (r *MemoryResolver) Lookup(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.accounts[strings.ToLower(name)]
	return ok, nil
}

// CreateGroup registers a new local group.
func (r *MemoryResolver) CreateGroup(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[strings.ToLower(name)] = struct{}{}
	r.created = append(r.created, name)
	return nil
}

// CreatedGroups returns the names passed to CreateGroup, in order.
func (r *MemoryResolver) CreatedGroups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.created))
	copy(out, r.created)
	return out
}
