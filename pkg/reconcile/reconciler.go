// Package reconcile applies a desired set of permission records to target
// folders, converging the live ACL without blind append-only accumulation
// and without touching inherited rules.
package reconcile

import (
	"context"
	"strings"

	"github.com/acltools/aclsync/internal/logger"
	"github.com/acltools/aclsync/pkg/acl"
	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/fsutil"
	"github.com/acltools/aclsync/pkg/identity"
	"github.com/acltools/aclsync/pkg/model"
	"github.com/acltools/aclsync/pkg/principals"
	"github.com/spf13/afero"
)

// Phase names the stage an event belongs to.
type Phase string

// Event phases.
const (
	PhasePlanning Phase = "planning"
	PhaseApplying Phase = "applying"
	PhaseRemoving Phase = "removing"
	PhaseSkipped  Phase = "skipped"
	PhaseError    Phase = "error"
	PhaseDone     Phase = "done"
)

// Event is a progress notification emitted while reconciling.
type Event struct {
	Phase    Phase
	Folder   string
	Identity string
	Msg      string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Summary is the per-run outcome count reported to the caller.
type Summary struct {
	Applied int
	Removed int
	Skipped int
	Errors  int
}

// Reconciler merges desired permission records into target folder ACLs.
// All processing is strictly sequential: the platform ACL APIs are not built
// for concurrent mutation of the same object and the record volumes involved
// do not warrant it.
type Reconciler struct {
	store      acl.Store
	resolver   principals.Resolver
	fs         afero.Fs
	policy     Policy
	hooks      Hooks
	classifier *identity.Classifier
}

// New creates a Reconciler. Hooks may be the zero value when no event
// handling is needed.
func New(store acl.Store, resolver principals.Resolver, fs afero.Fs, policy Policy, hooks Hooks) *Reconciler {
	return &Reconciler{
		store:      store,
		resolver:   resolver,
		fs:         fs,
		policy:     policy,
		hooks:      hooks,
		classifier: identity.NewClassifier(policy.FallbackClassification),
	}
}

func (r *Reconciler) emit(e Event) {
	if r.hooks.OnEvent != nil {
		r.hooks.OnEvent(e)
	}
}

// Apply merges the records into the ACLs of their remapped target folders.
// Applying the same records twice against an unchanged target is a no-op on
// the second run. Under dry-run, planned additions are reported (and counted
// as Applied) without mutating anything. Per-record failures are counted and
// never abort the batch; only a missing target base is fatal.
func (r *Reconciler) Apply(ctx context.Context, records []model.PermissionRecord, targetBase string) (Summary, error) {
	var s Summary
	if !fsutil.DirExists(r.fs, targetBase) {
		return s, errors.Wrapf(errors.ErrTargetBaseMissing, "%s", targetBase)
	}

	folders, byFolder := r.groupByTarget(records, targetBase, &s)
	plannedGroups := make(map[string]struct{})

	for _, folder := range folders {
		candidates := byFolder[folder]
		if !fsutil.DirExists(r.fs, folder) {
			logger.Warn("target folder does not exist, skipping its records",
				logger.Fields{"folder": folder, "records": len(candidates)})
			r.emit(Event{Phase: PhaseSkipped, Folder: folder, Msg: "target folder does not exist"})
			s.Skipped += len(candidates)
			continue
		}

		current, err := r.store.ReadACL(ctx, folder)
		if err != nil {
			logger.Error("failed to read target ACL", logger.Fields{"folder": folder, "error": err.Error()})
			r.emit(Event{Phase: PhaseError, Folder: folder, Msg: err.Error()})
			s.Errors++
			continue
		}

		plan := r.planAdditions(ctx, folder, candidates, indexACL(current), plannedGroups, &s)

		if r.policy.DryRun {
			for _, add := range plan.adds {
				msg := "would add rule: " + add.record.String()
				if add.createGroup != "" {
					msg = "would create local group " + add.createGroup + " and add rule: " + add.record.String()
				}
				logger.Info(msg, logger.Fields{"folder": folder})
				r.emit(Event{Phase: PhasePlanning, Folder: folder, Identity: add.record.Identity, Msg: msg})
				s.Applied++
			}
			continue
		}

		r.executeAdds(ctx, plan, &s)
	}

	r.emit(Event{Phase: PhaseDone})
	return s, nil
}

// Remove converges each target folder's ACL down to the allowed set: every
// explicit entry not matching an allowed record is removed, subject to the
// same classify/filter eligibility rules as Apply. Inherited entries are
// never removal candidates. folders names the target folders to process (by
// leaf name under targetBase); when empty they are derived from the allowed
// records.
func (r *Reconciler) Remove(ctx context.Context, allowed []model.PermissionRecord, targetBase string, folders []string) (Summary, error) {
	var s Summary
	if !fsutil.DirExists(r.fs, targetBase) {
		return s, errors.Wrapf(errors.ErrTargetBaseMissing, "%s", targetBase)
	}

	allowedKeys := r.allowedKeySet(allowed, targetBase, &s)

	var targets []string
	if len(folders) > 0 {
		for _, f := range folders {
			targets = append(targets, fsutil.RemapToBase(targetBase, f))
		}
	} else {
		seen := make(map[string]struct{})
		for _, rec := range allowed {
			if rec.FolderPath == "" {
				continue
			}
			folder := fsutil.RemapToBase(targetBase, rec.FolderPath)
			if _, ok := seen[folder]; ok {
				continue
			}
			seen[folder] = struct{}{}
			targets = append(targets, folder)
		}
	}

	for _, folder := range targets {
		if !fsutil.DirExists(r.fs, folder) {
			logger.Warn("target folder does not exist, skipping", logger.Fields{"folder": folder})
			r.emit(Event{Phase: PhaseSkipped, Folder: folder, Msg: "target folder does not exist"})
			s.Skipped++
			continue
		}

		current, err := r.store.ReadACL(ctx, folder)
		if err != nil {
			logger.Error("failed to read target ACL", logger.Fields{"folder": folder, "error": err.Error()})
			r.emit(Event{Phase: PhaseError, Folder: folder, Msg: err.Error()})
			s.Errors++
			continue
		}

		keep := allowedKeys[folder]
		for _, entry := range current {
			if entry.IsInherited {
				logger.Debug("inherited entry is never a removal candidate",
					logger.Fields{"folder": folder, "identity": entry.Identity})
				continue
			}

			class := r.classifier.Classify(entry.Identity)
			if r.policy.SkipSIDs && class == identity.SecurityIdentifier {
				r.skip(folder, entry.Identity, "security identifier", &s)
				continue
			}
			if r.policy.SkipUserAccounts && class == identity.User {
				r.skip(folder, entry.Identity, "user account", &s)
				continue
			}

			if _, ok := keep[entry.Key()]; ok {
				logger.Debug("entry is in the allowed set, keeping",
					logger.Fields{"folder": folder, "identity": entry.Identity})
				continue
			}

			if r.policy.DryRun {
				msg := "would remove rule: " + entry.String()
				logger.Info(msg, logger.Fields{"folder": folder})
				r.emit(Event{Phase: PhasePlanning, Folder: folder, Identity: entry.Identity, Msg: msg})
				s.Removed++
				continue
			}

			if err := r.store.RemoveRule(ctx, folder, entry); err != nil {
				logger.Error("failed to remove rule", logger.Fields{
					"folder": folder, "identity": entry.Identity, "error": err.Error()})
				r.emit(Event{Phase: PhaseError, Folder: folder, Identity: entry.Identity, Msg: err.Error()})
				s.Errors++
				continue
			}
			logger.Info("removed rule", logger.Fields{"folder": folder, "rule": entry.String()})
			r.emit(Event{Phase: PhaseRemoving, Folder: folder, Identity: entry.Identity, Msg: entry.String()})
			s.Removed++
		}
	}

	r.emit(Event{Phase: PhaseDone})
	return s, nil
}

// groupByTarget remaps records onto the target base and groups them per
// folder, preserving first-seen folder order. Records with a blank folder
// path are skipped with a warning.
func (r *Reconciler) groupByTarget(records []model.PermissionRecord, targetBase string, s *Summary) ([]string, map[string][]model.PermissionRecord) {
	var folders []string
	byFolder := make(map[string][]model.PermissionRecord)
	for _, rec := range records {
		if strings.TrimSpace(rec.FolderPath) == "" {
			logger.Warn("record has no folder path, skipping", logger.Fields{"identity": rec.Identity})
			s.Skipped++
			continue
		}
		folder := fsutil.RemapToBase(targetBase, rec.FolderPath)
		if _, ok := byFolder[folder]; !ok {
			folders = append(folders, folder)
		}
		byFolder[folder] = append(byFolder[folder], rec)
	}
	return folders, byFolder
}

// planAdditions computes the reconciliation plan for one folder: which
// candidate records survive the classify/filter pipeline and are not already
// present, explicitly or through inheritance.
func (r *Reconciler) planAdditions(ctx context.Context, folder string, candidates []model.PermissionRecord, idx aclIndex, plannedGroups map[string]struct{}, s *Summary) folderPlan {
	plan := folderPlan{folder: folder}

	for _, rec := range candidates {
		if rec.IsInherited {
			r.skip(folder, rec.Identity, "inherited source entry is informational only", s)
			continue
		}

		class := r.classifier.Classify(rec.Identity)
		if r.policy.SkipSIDs && class == identity.SecurityIdentifier {
			r.skip(folder, rec.Identity, "security identifier", s)
			continue
		}
		if r.policy.SkipUserAccounts && class == identity.User {
			r.skip(folder, rec.Identity, "user account", s)
			continue
		}

		res, err := r.tryResolveIdentity(ctx, rec.Identity, class, plannedGroups)
		if err != nil {
			logger.Error("identity lookup failed", logger.Fields{
				"folder": folder, "identity": rec.Identity, "error": err.Error()})
			r.emit(Event{Phase: PhaseError, Folder: folder, Identity: rec.Identity, Msg: err.Error()})
			s.Errors++
			continue
		}
		if res.state == stateUnresolvable {
			logger.Warn("identity does not resolve on this machine, skipping",
				logger.Fields{"folder": folder, "identity": rec.Identity})
			r.emit(Event{Phase: PhaseSkipped, Folder: folder, Identity: rec.Identity, Msg: "unresolvable identity"})
			s.Skipped++
			continue
		}

		desired := rec
		desired.FolderPath = folder
		desired.Identity = res.principal
		desired.IsInherited = false
		key := desired.Key()

		if r.policy.SkipInherited {
			if _, ok := idx.inherited[key]; ok {
				r.skip(folder, rec.Identity, "identical inherited entry already exists", s)
				continue
			}
		}
		if _, ok := idx.explicit[key]; ok {
			r.skip(folder, rec.Identity, "already present", s)
			continue
		}

		add := plannedAdd{record: desired}
		if res.state == stateNeedsCreation {
			add.createGroup = res.account
			plannedGroups[strings.ToLower(res.account)] = struct{}{}
		}
		plan.adds = append(plan.adds, add)
		// In-batch duplicates of the same tuple dedupe against the plan too.
		idx.explicit[key] = struct{}{}
	}
	return plan
}

func (r *Reconciler) executeAdds(ctx context.Context, plan folderPlan, s *Summary) {
	for _, add := range plan.adds {
		if add.createGroup != "" {
			logger.Info("creating local group", logger.Fields{"group": add.createGroup})
			r.emit(Event{Phase: PhaseApplying, Folder: plan.folder, Identity: add.createGroup, Msg: "creating local group"})
			if err := r.resolver.CreateGroup(ctx, add.createGroup); err != nil {
				logger.Error("failed to create local group", logger.Fields{
					"group": add.createGroup, "error": err.Error()})
				r.emit(Event{Phase: PhaseError, Folder: plan.folder, Identity: add.createGroup, Msg: err.Error()})
				s.Errors++
				continue
			}
			found, err := r.resolver.Lookup(ctx, add.createGroup)
			if err != nil {
				r.emit(Event{Phase: PhaseError, Folder: plan.folder, Identity: add.createGroup, Msg: err.Error()})
				s.Errors++
				continue
			}
			if !found {
				logger.Warn("group still unresolvable after creation, skipping",
					logger.Fields{"group": add.createGroup})
				s.Skipped++
				continue
			}
		}

		if err := r.store.AddRule(ctx, plan.folder, add.record); err != nil {
			logger.Error("failed to add rule", logger.Fields{
				"folder": plan.folder, "rule": add.record.String(), "error": err.Error()})
			r.emit(Event{Phase: PhaseError, Folder: plan.folder, Identity: add.record.Identity, Msg: err.Error()})
			s.Errors++
			continue
		}
		logger.Info("added rule", logger.Fields{"folder": plan.folder, "rule": add.record.String()})
		r.emit(Event{Phase: PhaseApplying, Folder: plan.folder, Identity: add.record.Identity, Msg: add.record.String()})
		s.Applied++
	}
}

// resolutionState tags the outcome of tryResolveIdentity.
type resolutionState int

const (
	stateResolved resolutionState = iota
	stateNeedsCreation
	stateUnresolvable
)

type resolution struct {
	state     resolutionState
	principal string
	account   string
}

// tryResolveIdentity maps an identity reference to the principal to use on
// the target machine and reports whether it resolves, needs a local group
// created first, or cannot be used at all.
func (r *Reconciler) tryResolveIdentity(ctx context.Context, identityRef string, class identity.Classification, plannedGroups map[string]struct{}) (resolution, error) {
	if class == identity.SecurityIdentifier {
		// Raw SIDs pass through untouched; the store resolves them directly.
		return resolution{state: stateResolved, principal: identityRef}, nil
	}

	account := identity.AccountName(identityRef)
	principal := r.principalFor(identityRef, class)

	if class == identity.WellKnownPrincipal {
		// Well-known principals resolve by name on every machine.
		return resolution{state: stateResolved, principal: principal, account: account}, nil
	}
	if _, ok := plannedGroups[strings.ToLower(account)]; ok {
		return resolution{state: stateResolved, principal: principal, account: account}, nil
	}

	found, err := r.resolver.Lookup(ctx, account)
	if err != nil {
		return resolution{}, err
	}
	if found {
		return resolution{state: stateResolved, principal: principal, account: account}, nil
	}
	if r.policy.CreateMissingGroups && class.GroupLike() {
		return resolution{state: stateNeedsCreation, principal: principal, account: account}, nil
	}
	return resolution{state: stateUnresolvable, principal: principal, account: account}, nil
}

// principalFor returns the identity as it should appear on the target:
// well-known principals unqualified, everything else machine-qualified when
// the use-local-principals policy is on.
func (r *Reconciler) principalFor(identityRef string, class identity.Classification) string {
	if class == identity.SecurityIdentifier {
		return identityRef
	}
	account := identity.AccountName(identityRef)
	if class == identity.WellKnownPrincipal {
		return account
	}
	if r.policy.UseLocalPrincipals {
		return r.resolver.MachineName() + `\` + account
	}
	return identityRef
}

// allowedKeySet rewrites the allowed records the same way Apply would and
// indexes their tuples per target folder.
func (r *Reconciler) allowedKeySet(allowed []model.PermissionRecord, targetBase string, s *Summary) map[string]map[string]struct{} {
	keys := make(map[string]map[string]struct{})
	for _, rec := range allowed {
		if strings.TrimSpace(rec.FolderPath) == "" {
			logger.Warn("allowed record has no folder path, ignoring", logger.Fields{"identity": rec.Identity})
			s.Skipped++
			continue
		}
		folder := fsutil.RemapToBase(targetBase, rec.FolderPath)
		class := r.classifier.Classify(rec.Identity)

		rewritten := rec
		rewritten.Identity = r.principalFor(rec.Identity, class)
		rewritten.IsInherited = false

		if keys[folder] == nil {
			keys[folder] = make(map[string]struct{})
		}
		keys[folder][rewritten.Key()] = struct{}{}
	}
	return keys
}

func (r *Reconciler) skip(folder, identityRef, reason string, s *Summary) {
	logger.Skip("record filtered", logger.Fields{
		"folder": folder, "identity": identityRef, "reason": reason})
	r.emit(Event{Phase: PhaseSkipped, Folder: folder, Identity: identityRef, Msg: reason})
	s.Skipped++
}
