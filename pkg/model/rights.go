package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Rights is a named bitset of filesystem access rights. The bit values and
// symbolic names match the ones the exported data uses, so a value formatted
// with String parses back to the same bits.
type Rights uint32

// Atomic rights.
const (
	RightsListDirectory                Rights = 0x1
	RightsCreateFiles                  Rights = 0x2
	RightsCreateDirectories            Rights = 0x4
	RightsReadExtendedAttributes       Rights = 0x8
	RightsWriteExtendedAttributes      Rights = 0x10
	RightsExecuteFile                  Rights = 0x20
	RightsDeleteSubdirectoriesAndFiles Rights = 0x40
	RightsReadAttributes               Rights = 0x80
	RightsWriteAttributes              Rights = 0x100
	RightsDelete                       Rights = 0x10000
	RightsReadPermissions              Rights = 0x20000
	RightsChangePermissions            Rights = 0x40000
	RightsTakeOwnership                Rights = 0x80000
	RightsSynchronize                  Rights = 0x100000
)

// Composite rights.
const (
	RightsWrite          = RightsCreateFiles | RightsCreateDirectories | RightsWriteExtendedAttributes | RightsWriteAttributes
	RightsRead           = RightsListDirectory | RightsReadExtendedAttributes | RightsReadAttributes | RightsReadPermissions
	RightsReadAndExecute = RightsRead | RightsExecuteFile
	RightsModify         = RightsReadAndExecute | RightsWrite | RightsDelete
	RightsFullControl    Rights = 0x1F01FF
)

// rightsNames is ordered composites-first so String prefers the widest
// symbolic name covering the remaining bits.
var rightsNames = []struct {
	name  string
	value Rights
}{
	{"FullControl", RightsFullControl},
	{"Modify", RightsModify},
	{"ReadAndExecute", RightsReadAndExecute},
	{"Read", RightsRead},
	{"Write", RightsWrite},
	{"ListDirectory", RightsListDirectory},
	{"CreateFiles", RightsCreateFiles},
	{"CreateDirectories", RightsCreateDirectories},
	{"ReadExtendedAttributes", RightsReadExtendedAttributes},
	{"WriteExtendedAttributes", RightsWriteExtendedAttributes},
	{"ExecuteFile", RightsExecuteFile},
	{"DeleteSubdirectoriesAndFiles", RightsDeleteSubdirectoriesAndFiles},
	{"ReadAttributes", RightsReadAttributes},
	{"WriteAttributes", RightsWriteAttributes},
	{"Delete", RightsDelete},
	{"ReadPermissions", RightsReadPermissions},
	{"ChangePermissions", RightsChangePermissions},
	{"TakeOwnership", RightsTakeOwnership},
	{"Synchronize", RightsSynchronize},
}

var rightsByName = func() map[string]Rights {
	m := make(map[string]Rights, len(rightsNames))
	for _, rn := range rightsNames {
		m[strings.ToLower(rn.name)] = rn.value
	}
	return m
}()

// String renders the rights symbolically, composites first, joined with ", ".
// Bits without a symbolic name are rendered as a decimal remainder.
func (r Rights) String() string {
	if r == 0 {
		return "None"
	}

	var parts []string
	remaining := r
	for _, rn := range rightsNames {
		if remaining&rn.value == rn.value {
			parts = append(parts, rn.name)
			remaining &^= rn.value
		}
	}
	if remaining != 0 {
		parts = append(parts, strconv.FormatUint(uint64(remaining), 10))
	}
	return strings.Join(parts, ", ")
}

// ParseRights parses a symbolic rights string as produced by String. Numeric
// components (decimal or 0x-prefixed hex) are accepted for unnamed bits.
func ParseRights(s string) (Rights, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "None") {
		return 0, nil
	}

	var result Rights
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if v, ok := rightsByName[strings.ToLower(part)]; ok {
			result |= v
			continue
		}
		n, err := strconv.ParseUint(part, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("unknown access right %q", part)
		}
		result |= Rights(n)
	}
	return result, nil
}
