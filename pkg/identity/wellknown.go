package identity

import "strings"

// wellKnownNames lists built-in principals recognized by name on every
// machine. They are applied unqualified and are always treated as group-like.
var wellKnownNames = []string{
	"Everyone",
	"SYSTEM",
	"LOCAL SERVICE",
	"NETWORK SERVICE",
	"SERVICE",
	"CREATOR OWNER",
	"CREATOR GROUP",
	"INTERACTIVE",
	"NETWORK",
	"BATCH",
	"ANONYMOUS LOGON",
	"Authenticated Users",
	"TrustedInstaller",
	"ALL APPLICATION PACKAGES",
	"Administrators",
	"Users",
	"Guests",
	"Power Users",
	"Backup Operators",
	"Replicator",
	"Remote Desktop Users",
	"Network Configuration Operators",
	"Performance Monitor Users",
	"Performance Log Users",
	"Print Operators",
	"Account Operators",
	"Server Operators",
	"IIS_IUSRS",
	// Domain and enterprise variants.
	"Domain Admins",
	"Domain Users",
	"Domain Guests",
	"Domain Computers",
	"Domain Controllers",
	"Enterprise Admins",
	"Schema Admins",
	"Group Policy Creator Owners",
	"Cert Publishers",
}

var wellKnownSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(wellKnownNames))
	for _, n := range wellKnownNames {
		m[strings.ToLower(n)] = struct{}{}
	}
	return m
}()

// IsWellKnown reports whether the bare account name (no scope prefix) is a
// well-known built-in principal.
func IsWellKnown(name string) bool {
	_, ok := wellKnownSet[strings.ToLower(name)]
	return ok
}

// groupPrefixes are organizational naming conventions that mark a name as a
// group regardless of the rest of its shape.
var groupPrefixes = []string{
	"GRP_", "GRP-",
	"G_", "GG_", "SG_",
	"DL_", "DLG_",
	"ROLE_", "TEAM_", "DEPT_",
	"ADMIN_", "SVC_", "APP_",
	"ACL_", "SEC_", "FS_", "SHARE_", "PRJ_",
}

// groupKeywords mark a name as group-like when they appear anywhere in it.
var groupKeywords = []string{
	"users", "group", "admins", "roles", "access",
	"department", "dept", "service", "team", "staff",
	"operators", "share", "global", "distribution",
}
