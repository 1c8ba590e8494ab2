// Package extract captures the access rules of a folder, and optionally its
// immediate child folders, as a normalized list of permission records.
package extract

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/acltools/aclsync/pkg/acl"
	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/fsutil"
	"github.com/acltools/aclsync/pkg/model"
	"github.com/spf13/afero"
)

// FolderError records a folder whose ACL could not be read. A single
// unreadable folder never aborts the extraction batch.
type FolderError struct {
	Path string
	Err  error
}

// Result is the outcome of one extraction run.
type Result struct {
	Records []model.PermissionRecord
	Failed  []FolderError
}

// Extractor reads folder ACLs through a Store and normalizes them for
// transport.
type Extractor struct {
	Store acl.Store
	Fs    afero.Fs

	// IncludeInherited keeps rules that arrived via a parent container.
	// They are exported as informational rows; the reconciler never
	// replays them.
	IncludeInherited bool
}

// New creates an Extractor over the given store and filesystem.
func New(store acl.Store, fs afero.Fs) *Extractor {
	return &Extractor{Store: store, Fs: fs}
}

// Extract reads the folder's ACL and, when includeChildren is set, the ACLs
// of its immediate child folders. It never walks deeper; recursion is a
// caller concern. Records come back in a stable order: folder path, then
// identity, then rights, then control type.
func (e *Extractor) Extract(ctx context.Context, folderPath string, includeChildren bool) (Result, error) {
	if !fsutil.DirExists(e.Fs, folderPath) {
		return Result{}, errors.Wrapf(errors.ErrNotADirectory, "%s", folderPath)
	}

	var result Result
	e.extractFolder(ctx, folderPath, &result)

	if includeChildren {
		children, err := afero.ReadDir(e.Fs, folderPath)
		if err != nil {
			result.Failed = append(result.Failed, FolderError{Path: folderPath, Err: err})
		} else {
			for _, child := range children {
				if !child.IsDir() {
					continue
				}
				e.extractFolder(ctx, filepath.Join(folderPath, child.Name()), &result)
			}
		}
	}

	sortRecords(result.Records)
	return result, nil
}

func (e *Extractor) extractFolder(ctx context.Context, folderPath string, result *Result) {
	entries, err := e.Store.ReadACL(ctx, folderPath)
	if err != nil {
		result.Failed = append(result.Failed, FolderError{Path: folderPath, Err: err})
		return
	}
	for _, entry := range entries {
		if entry.IsInherited && !e.IncludeInherited {
			continue
		}
		entry.FolderPath = folderPath
		result.Records = append(result.Records, entry)
	}
}

func sortRecords(records []model.PermissionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.FolderPath != b.FolderPath {
			return a.FolderPath < b.FolderPath
		}
		ai, bi := strings.ToLower(a.Identity), strings.ToLower(b.Identity)
		if ai != bi {
			return ai < bi
		}
		if a.Rights != b.Rights {
			return a.Rights < b.Rights
		}
		return a.AccessControlType < b.AccessControlType
	})
}
