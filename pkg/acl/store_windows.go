//go:build windows

package acl

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/model"
	"golang.org/x/sys/windows"
)

// ACE type values from the ACE_HEADER; only allow/deny entries carry
// filesystem rights we care about.
const (
	accessAllowedACEType = 0
	accessDeniedACEType  = 1
)

// windowsStore implements Store on the Win32 security APIs.
type windowsStore struct{}

// NewPlatformStore returns the live ACL store for this platform.
func NewPlatformStore() Store {
	return &windowsStore{}
}

func (s *windowsStore) ReadACL(_ context.Context, folderPath string) ([]model.PermissionRecord, error) {
	sd, err := windows.GetNamedSecurityInfo(folderPath, windows.SE_FILE_OBJECT, windows.DACL_SECURITY_INFORMATION)
	if err != nil {
		return nil, errors.Wrapf(ErrReadACL, "%s: %v", folderPath, err)
	}
	dacl, _, err := sd.DACL()
	if err != nil {
		return nil, errors.Wrapf(ErrReadACL, "%s: %v", folderPath, err)
	}
	if dacl == nil {
		// Nil DACL means everyone has full access; there are no entries.
		return nil, nil
	}

	records := make([]model.PermissionRecord, 0, dacl.AceCount)
	for i := uint32(0); i < uint32(dacl.AceCount); i++ {
		var ace *windows.ACCESS_ALLOWED_ACE
		if err := windows.GetAce(dacl, i, &ace); err != nil {
			return nil, errors.Wrapf(ErrReadACL, "%s: ace %d: %v", folderPath, i, err)
		}

		var ctype model.AccessControlType
		switch ace.Header.AceType {
		case accessAllowedACEType:
			ctype = model.Allow
		case accessDeniedACEType:
			ctype = model.Deny
		default:
			continue
		}

		sid := (*windows.SID)(unsafe.Pointer(&ace.SidStart))
		identity := sid.String()
		if account, domain, _, lookupErr := sid.LookupAccount(""); lookupErr == nil {
			if domain != "" {
				identity = domain + `\` + account
			} else {
				identity = account
			}
		}

		records = append(records, model.PermissionRecord{
			FolderPath:        folderPath,
			Identity:          identity,
			AccessControlType: ctype,
			Rights:            model.Rights(ace.Mask),
			InheritanceFlags:  inheritanceFromACEFlags(ace.Header.AceFlags),
			PropagationFlags:  propagationFromACEFlags(ace.Header.AceFlags),
			IsInherited:       ace.Header.AceFlags&windows.INHERITED_ACE != 0,
		})
	}
	return records, nil
}

func (s *windowsStore) AddRule(ctx context.Context, folderPath string, record model.PermissionRecord) error {
	sid, err := sidForIdentity(record.Identity)
	if err != nil {
		return err
	}

	mode := windows.GRANT_ACCESS
	if record.AccessControlType == model.Deny {
		mode = windows.DENY_ACCESS
	}

	entry := windows.EXPLICIT_ACCESS{
		AccessPermissions: windows.ACCESS_MASK(record.Rights),
		AccessMode:        windows.ACCESS_MODE(mode),
		Inheritance:       aceFlagsFromRecord(record),
		Trustee: windows.TRUSTEE{
			TrusteeForm:  windows.TRUSTEE_IS_SID,
			TrusteeType:  windows.TRUSTEE_IS_UNKNOWN,
			TrusteeValue: windows.TrusteeValueFromSID(sid),
		},
	}

	sd, err := windows.GetNamedSecurityInfo(folderPath, windows.SE_FILE_OBJECT, windows.DACL_SECURITY_INFORMATION)
	if err != nil {
		return errors.Wrapf(ErrReadACL, "%s: %v", folderPath, err)
	}
	existing, _, err := sd.DACL()
	if err != nil {
		return errors.Wrapf(ErrReadACL, "%s: %v", folderPath, err)
	}

	// SetEntriesInAcl merges an identical explicit entry instead of
	// duplicating it, which keeps AddRule idempotent.
	merged, err := windows.ACLFromEntries([]windows.EXPLICIT_ACCESS{entry}, existing)
	if err != nil {
		return fmt.Errorf("failed to build DACL for %s: %w", folderPath, err)
	}
	return applyDACL(folderPath, merged)
}

func (s *windowsStore) RemoveRule(ctx context.Context, folderPath string, record model.PermissionRecord) error {
	current, err := s.ReadACL(ctx, folderPath)
	if err != nil {
		return err
	}

	key := record.Key()
	found := false
	matchedInherited := false
	kept := make([]windows.EXPLICIT_ACCESS, 0, len(current))
	for _, existing := range current {
		if existing.IsInherited {
			// Inherited entries flow back from the parent; they are not
			// rewritten into the explicit DACL and never satisfy the match.
			if existing.Key() == key {
				matchedInherited = true
			}
			continue
		}
		if existing.Key() == key {
			found = true
			continue
		}
		entry, err := explicitAccessFromRecord(existing)
		if err != nil {
			return err
		}
		kept = append(kept, entry)
	}
	if !found {
		if matchedInherited {
			// The tuple exists but only through inheritance.
			return ErrInheritedRule
		}
		return ErrRuleNotFound
	}

	rebuilt, err := windows.ACLFromEntries(kept, nil)
	if err != nil {
		return fmt.Errorf("failed to rebuild DACL for %s: %w", folderPath, err)
	}
	return applyDACL(folderPath, rebuilt)
}

func applyDACL(folderPath string, dacl *windows.ACL) error {
	// UNPROTECTED keeps inheritance from the parent flowing in.
	err := windows.SetNamedSecurityInfo(folderPath, windows.SE_FILE_OBJECT,
		windows.DACL_SECURITY_INFORMATION|windows.UNPROTECTED_DACL_SECURITY_INFORMATION,
		nil, nil, dacl, nil)
	if err != nil {
		return fmt.Errorf("failed to write DACL for %s: %w", folderPath, err)
	}
	return nil
}

func explicitAccessFromRecord(record model.PermissionRecord) (windows.EXPLICIT_ACCESS, error) {
	sid, err := sidForIdentity(record.Identity)
	if err != nil {
		return windows.EXPLICIT_ACCESS{}, err
	}
	mode := windows.GRANT_ACCESS
	if record.AccessControlType == model.Deny {
		mode = windows.DENY_ACCESS
	}
	return windows.EXPLICIT_ACCESS{
		AccessPermissions: windows.ACCESS_MASK(record.Rights),
		AccessMode:        windows.ACCESS_MODE(mode),
		Inheritance:       aceFlagsFromRecord(record),
		Trustee: windows.TRUSTEE{
			TrusteeForm:  windows.TRUSTEE_IS_SID,
			TrusteeType:  windows.TRUSTEE_IS_UNKNOWN,
			TrusteeValue: windows.TrusteeValueFromSID(sid),
		},
	}, nil
}

// sidForIdentity resolves an identity reference to a SID: raw SID strings are
// converted directly, names go through account lookup.
func sidForIdentity(identity string) (*windows.SID, error) {
	if len(identity) > 1 && identity[0] == 'S' && identity[1] == '-' {
		if sid, err := windows.StringToSid(identity); err == nil {
			return sid, nil
		}
	}
	sid, _, _, err := windows.LookupSID("", identity)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q to a SID: %w", identity, err)
	}
	return sid, nil
}

func inheritanceFromACEFlags(flags uint8) model.InheritanceFlags {
	var f model.InheritanceFlags
	if flags&windows.CONTAINER_INHERIT_ACE != 0 {
		f |= model.ContainerInherit
	}
	if flags&windows.OBJECT_INHERIT_ACE != 0 {
		f |= model.ObjectInherit
	}
	return f
}

func propagationFromACEFlags(flags uint8) model.PropagationFlags {
	var f model.PropagationFlags
	if flags&windows.NO_PROPAGATE_INHERIT_ACE != 0 {
		f |= model.NoPropagateInherit
	}
	if flags&windows.INHERIT_ONLY_ACE != 0 {
		f |= model.InheritOnly
	}
	return f
}

func aceFlagsFromRecord(record model.PermissionRecord) uint32 {
	var flags uint32
	if record.InheritanceFlags&model.ContainerInherit != 0 {
		flags |= windows.CONTAINER_INHERIT_ACE
	}
	if record.InheritanceFlags&model.ObjectInherit != 0 {
		flags |= windows.OBJECT_INHERIT_ACE
	}
	if record.PropagationFlags&model.NoPropagateInherit != 0 {
		flags |= windows.NO_PROPAGATE_INHERIT_ACE
	}
	if record.PropagationFlags&model.InheritOnly != 0 {
		flags |= windows.INHERIT_ONLY_ACE
	}
	return flags
}
