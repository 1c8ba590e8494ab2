package model

import (
	"fmt"
	"strings"
)

// AccessControlType says whether a rule grants or denies its rights.
type AccessControlType string

// Supported access control types.
const (
	Allow AccessControlType = "Allow"
	Deny  AccessControlType = "Deny"
)

// ParseAccessControlType parses "Allow" or "Deny" (case-insensitive).
func ParseAccessControlType(s string) (AccessControlType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "deny":
		return Deny, nil
	default:
		return "", fmt.Errorf("unknown access control type %q", s)
	}
}

// InheritanceFlags controls which kinds of children a rule propagates to.
type InheritanceFlags uint8

// Inheritance flag bits.
const (
	InheritNone      InheritanceFlags = 0
	ContainerInherit InheritanceFlags = 1 << 0
	ObjectInherit    InheritanceFlags = 1 << 1
)

// String renders the flags as "None" or a ", "-joined flag list.
func (f InheritanceFlags) String() string {
	if f == InheritNone {
		return "None"
	}
	var parts []string
	if f&ContainerInherit != 0 {
		parts = append(parts, "ContainerInherit")
	}
	if f&ObjectInherit != 0 {
		parts = append(parts, "ObjectInherit")
	}
	return strings.Join(parts, ", ")
}

// ParseInheritanceFlags parses the output of InheritanceFlags.String.
func ParseInheritanceFlags(s string) (InheritanceFlags, error) {
	var result InheritanceFlags
	for _, part := range splitFlagList(s) {
		switch strings.ToLower(part) {
		case "", "none":
		case "containerinherit":
			result |= ContainerInherit
		case "objectinherit":
			result |= ObjectInherit
		default:
			return 0, fmt.Errorf("unknown inheritance flag %q", part)
		}
	}
	return result, nil
}

// PropagationFlags controls how an inheritable rule propagates.
type PropagationFlags uint8

// Propagation flag bits.
const (
	PropagateNone      PropagationFlags = 0
	NoPropagateInherit PropagationFlags = 1 << 0
	InheritOnly        PropagationFlags = 1 << 1
)

// String renders the flags as "None" or a ", "-joined flag list.
func (f PropagationFlags) String() string {
	if f == PropagateNone {
		return "None"
	}
	var parts []string
	if f&NoPropagateInherit != 0 {
		parts = append(parts, "NoPropagateInherit")
	}
	if f&InheritOnly != 0 {
		parts = append(parts, "InheritOnly")
	}
	return strings.Join(parts, ", ")
}

// ParsePropagationFlags parses the output of PropagationFlags.String.
func ParsePropagationFlags(s string) (PropagationFlags, error) {
	var result PropagationFlags
	for _, part := range splitFlagList(s) {
		switch strings.ToLower(part) {
		case "", "none":
		case "nopropagateinherit":
			result |= NoPropagateInherit
		case "inheritonly":
			result |= InheritOnly
		default:
			return 0, fmt.Errorf("unknown propagation flag %q", part)
		}
	}
	return result, nil
}

func splitFlagList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
