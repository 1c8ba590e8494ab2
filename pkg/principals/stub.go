//go:build !windows

package principals

import (
	"context"
	"os"

	"github.com/acltools/aclsync/pkg/errors"
)

// stubResolver stands in on platforms without a local account database API.
type stubResolver struct {
	machine string
}

// NewPlatformResolver returns the live principal resolver for this platform.
func NewPlatformResolver() Resolver {
	name, _ := os.Hostname()
	return &stubResolver{machine: name}
}

func (r *stubResolver) MachineName() string {
	return r.machine
}

func (r *stubResolver) Lookup(context.Context, string) (bool, error) {
	return false, errors.ErrUnsupportedPlatform
}

func (r *stubResolver) CreateGroup(context.Context, string) error {
	return errors.ErrUnsupportedPlatform
}
