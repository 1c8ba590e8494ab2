//go:build !windows

package acl

import (
	"context"

	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/model"
)

// stubStore stands in on platforms without the Windows security APIs.
type stubStore struct{}

// NewPlatformStore returns the live ACL store for this platform.
func NewPlatformStore() Store {
	return &stubStore{}
}

func (s *stubStore) ReadACL(context.Context, string) ([]model.PermissionRecord, error) {
	return nil, errors.ErrUnsupportedPlatform
}

func (s *stubStore) AddRule(context.Context, string, model.PermissionRecord) error {
	return errors.ErrUnsupportedPlatform
}

func (s *stubStore) RemoveRule(context.Context, string, model.PermissionRecord) error {
	return errors.ErrUnsupportedPlatform
}
