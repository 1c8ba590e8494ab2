// Package fsutil holds small path helpers shared by the extractor and the
// reconciler.
package fsutil

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// LeafName returns the last path element of p, treating both separator
// directions as separators. Exported folder paths come from another machine,
// so they cannot be interpreted with the local filepath rules.
func LeafName(p string) string {
	p = strings.TrimRight(p, `\/`)
	if i := strings.LastIndexAny(p, `\/`); i >= 0 {
		return p[i+1:]
	}
	return p
}

// RemapToBase joins the leaf name of sourcePath onto targetBase. The relative
// structure below the export root is deliberately not preserved; two source
// folders sharing a leaf name collide on the target.
func RemapToBase(targetBase, sourcePath string) string {
	return filepath.Join(targetBase, LeafName(sourcePath))
}

// DirExists reports whether path exists and is a directory.
func DirExists(fs afero.Fs, path string) bool {
	ok, err := afero.DirExists(fs, path)
	return err == nil && ok
}
