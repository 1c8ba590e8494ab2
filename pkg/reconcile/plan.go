package reconcile

import "github.com/acltools/aclsync/pkg/model"

// plannedAdd is one rule the reconciler intends to add to a folder.
type plannedAdd struct {
	record model.PermissionRecord

	// createGroup names a local group that must be created before the rule
	// can be applied. Empty when the principal already resolves.
	createGroup string
}

// folderPlan is the ephemeral reconciliation plan for one target folder in
// one run. It is never persisted; under dry-run it is reported and discarded.
type folderPlan struct {
	folder string
	adds   []plannedAdd
}

// aclIndex holds the current state of a folder's ACL keyed by rule tuple,
// split by inheritance, for the plan computations.
type aclIndex struct {
	explicit  map[string]struct{}
	inherited map[string]struct{}
}

func indexACL(entries []model.PermissionRecord) aclIndex {
	idx := aclIndex{
		explicit:  make(map[string]struct{}),
		inherited: make(map[string]struct{}),
	}
	for _, e := range entries {
		if e.IsInherited {
			idx.inherited[e.Key()] = struct{}{}
		} else {
			idx.explicit[e.Key()] = struct{}{}
		}
	}
	return idx
}
