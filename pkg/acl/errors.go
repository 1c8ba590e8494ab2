package acl

import "fmt"

// Common ACL store errors.
var (
	// ErrRuleNotFound is returned when removing a rule that is not
	// explicitly present on the folder.
	ErrRuleNotFound = fmt.Errorf("access rule not found")

	// ErrInheritedRule is returned when attempting to remove an entry that
	// is only present through inheritance.
	ErrInheritedRule = fmt.Errorf("rule is inherited and cannot be removed here")

	// ErrReadACL is returned when a folder's ACL cannot be read.
	ErrReadACL = fmt.Errorf("failed to read folder ACL")
)
