//go:build windows

package principals

import (
	"context"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	netapi32             = windows.NewLazySystemDLL("netapi32.dll")
	procNetLocalGroupAdd = netapi32.NewProc("NetLocalGroupAdd")
)

// localGroupInfo1 mirrors LOCALGROUP_INFO_1.
type localGroupInfo1 struct {
	name    *uint16
	comment *uint16
}

// windowsResolver implements Resolver on the Win32 account APIs.
type windowsResolver struct {
	machine string
}

// NewPlatformResolver returns the live principal resolver for this platform.
func NewPlatformResolver() Resolver {
	name, err := windows.ComputerName()
	if err != nil {
		name, _ = os.Hostname()
	}
	return &windowsResolver{machine: name}
}

func (r *windowsResolver) MachineName() string {
	return r.machine
}

func (r *windowsResolver) Lookup(_ context.Context, name string) (bool, error) {
	_, _, _, err := windows.LookupSID("", name)
	if err == nil {
		return true, nil
	}
	if err == windows.ERROR_NONE_MAPPED {
		return false, nil
	}
	return false, fmt.Errorf("failed to look up account %q: %w", name, err)
}

func (r *windowsResolver) CreateGroup(_ context.Context, name string) error {
	groupName, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return fmt.Errorf("invalid group name %q: %w", name, err)
	}
	comment, _ := windows.UTF16PtrFromString("Created by aclsync")

	info := localGroupInfo1{name: groupName, comment: comment}
	ret, _, _ := procNetLocalGroupAdd.Call(
		0, // local server
		1, // information level: LOCALGROUP_INFO_1
		uintptr(unsafe.Pointer(&info)),
		0,
	)
	if ret != 0 {
		return fmt.Errorf("NetLocalGroupAdd failed for %q: status %d", name, ret)
	}
	return nil
}
