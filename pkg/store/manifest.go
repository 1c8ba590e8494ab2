package store

import (
	"fmt"
	"time"

	"github.com/acltools/aclsync/pkg/errors"
	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// CurrentFormatVersion is written into every new manifest.
const CurrentFormatVersion = "1.0.0"

// ManifestFilename is the manifest's name inside a bundle.
const ManifestFilename = "manifest.yaml"

// RecordsFilename is the record table's name inside a bundle.
const RecordsFilename = "permissions.csv"

// formatConstraint is the version range this build can read.
const formatConstraint = ">= 1.0.0, < 2.0.0"

// Manifest describes one export: where and when it was taken and what it
// contains.
type Manifest struct {
	FormatVersion string    `yaml:"format_version"`
	CreatedAt     time.Time `yaml:"created_at"`
	SourceMachine string    `yaml:"source_machine"`
	SourcePath    string    `yaml:"source_path"`
	RecordCount   int       `yaml:"record_count"`
}

// NewManifest creates a manifest for a fresh export at the current time.
func NewManifest(sourceMachine, sourcePath string, recordCount int) Manifest {
	return Manifest{
		FormatVersion: CurrentFormatVersion,
		CreatedAt:     time.Now().UTC(),
		SourceMachine: sourceMachine,
		SourcePath:    sourcePath,
		RecordCount:   recordCount,
	}
}

// CheckCompatibility verifies the manifest was written in a format version
// this build can read.
func (m Manifest) CheckCompatibility() error {
	v, err := version.NewVersion(m.FormatVersion)
	if err != nil {
		return errors.Wrapf(ErrIncompatibleFormat, "unparseable version %q", m.FormatVersion)
	}
	constraint, err := version.NewConstraint(formatConstraint)
	if err != nil {
		return fmt.Errorf("parsing format constraint: %w", err)
	}
	if !constraint.Check(v) {
		return errors.Wrapf(ErrIncompatibleFormat, "%s (supported: %s)", m.FormatVersion, formatConstraint)
	}
	return nil
}

// MarshalManifest renders the manifest as YAML.
func MarshalManifest(m Manifest) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return data, nil
}

// UnmarshalManifest parses a YAML manifest and checks its format version.
func UnmarshalManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.CheckCompatibility(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// WriteManifestFile writes the manifest next to a record CSV, atomically.
func WriteManifestFile(fs afero.Fs, path string, m Manifest) error {
	data, err := MarshalManifest(m)
	if err != nil {
		return err
	}
	return writeFileAtomic(fs, path, data)
}

// ReadManifestFile loads and validates a manifest from the filesystem.
func ReadManifestFile(fs afero.Fs, path string) (Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return UnmarshalManifest(data)
}
