package acl

import (
	"context"
	"strings"
	"sync"

	"github.com/acltools/aclsync/pkg/model"
)

// MemoryStore is an in-memory Store with set semantics. It backs tests and
// lets imports be rehearsed without touching a live filesystem.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]model.PermissionRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]model.PermissionRecord)}
}

// Seed installs entries on a folder verbatim, inherited flags included.
// Test setup only; it bypasses the explicit-rules-only discipline of AddRule.
func (s *MemoryStore) Seed(folderPath string, records ...model.PermissionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizePath(folderPath)
	for _, r := range records {
		r.FolderPath = folderPath
		s.entries[key] = append(s.entries[key], r)
	}
}

// ReadACL returns a copy of the folder's entries in insertion order.
// Unknown folders have an empty ACL.
func (s *MemoryStore) ReadACL(_ context.Context, folderPath string) ([]model.PermissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing := s.entries[normalizePath(folderPath)]
	out := make([]model.PermissionRecord, len(existing))
	copy(out, existing)
	return out, nil
}

// AddRule adds an explicit rule; identical explicit tuples are merged.
func (s *MemoryStore) AddRule(_ context.Context, folderPath string, record model.PermissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizePath(folderPath)
	record.FolderPath = folderPath
	record.IsInherited = false

	for _, existing := range s.entries[key] {
		if !existing.IsInherited && existing.Key() == record.Key() {
			return nil
		}
	}
	s.entries[key] = append(s.entries[key], record)
	return nil
}

// RemoveRule removes the explicit rule matching the record's tuple. An
// inherited entry with the same tuple never satisfies the match and never
// blocks removing its explicit twin.
func (s *MemoryStore) RemoveRule(_ context.Context, folderPath string, record model.PermissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizePath(folderPath)
	matchedInherited := false
	for i, existing := range s.entries[key] {
		if existing.Key() != record.Key() {
			continue
		}
		if existing.IsInherited {
			matchedInherited = true
			continue
		}
		s.entries[key] = append(s.entries[key][:i], s.entries[key][i+1:]...)
		return nil
	}
	if matchedInherited {
		return ErrInheritedRule
	}
	return ErrRuleNotFound
}

// normalizePath folds case and separator direction so seeded and queried
// paths compare equal regardless of platform spelling.
func normalizePath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
}
