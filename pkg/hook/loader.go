package hook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// scriptExtension is the only hook file type the loader picks up.
const scriptExtension = ".tengo"

// LoadFromDir registers every recognized hook script found in dir, named
// <hook-type>.tengo. Files with other names or extensions are ignored. A
// missing directory registers nothing.
func LoadFromDir(fs afero.Fs, manager Manager, dir string) error {
	exists, err := afero.DirExists(fs, dir)
	if err != nil || !exists {
		return err
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return fmt.Errorf("reading hooks directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != scriptExtension {
			continue
		}

		hookType := Type(strings.TrimSuffix(entry.Name(), scriptExtension))
		switch hookType {
		case PreExport, PostExport, PreImport, PostImport:
		default:
			continue
		}

		content, err := afero.ReadFile(fs, filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("reading hook file %s: %w", entry.Name(), err)
		}
		if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return fmt.Errorf("registering hook %s: %w", hookType, err)
		}
	}
	return nil
}
