package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/model"
	"github.com/mholt/archives"
	"github.com/spf13/afero"
)

// BundleExtension marks a permission bundle on disk.
const BundleExtension = ".tar.gz"

// bundleFormat is the one container format bundles use.
var bundleFormat = archives.CompressedArchive{
	Compression: archives.Gz{},
	Archival:    archives.Tar{},
	Extraction:  archives.Tar{},
}

// IsBundle reports whether the path names a permission bundle rather than a
// bare CSV.
func IsBundle(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, BundleExtension) || strings.HasSuffix(lower, ".tgz")
}

// CreateBundle writes the manifest and records as a tar.gz bundle at path.
func CreateBundle(ctx context.Context, afs afero.Fs, path string, m Manifest, records []model.PermissionRecord) error {
	manifestData, err := MarshalManifest(m)
	if err != nil {
		return err
	}
	recordData, err := MarshalRecords(records)
	if err != nil {
		return err
	}

	files := []archives.FileInfo{
		memFileInfo(ManifestFilename, manifestData, m.CreatedAt),
		memFileInfo(RecordsFilename, recordData, m.CreatedAt),
	}

	var buf bytes.Buffer
	if err := bundleFormat.Archive(ctx, &buf, files); err != nil {
		return fmt.Errorf("archiving bundle: %w", err)
	}
	return writeFileAtomic(afs, path, buf.Bytes())
}

// OpenBundle reads a bundle, validates its manifest, and returns its
// contents.
func OpenBundle(ctx context.Context, afs afero.Fs, path string) (Manifest, []model.PermissionRecord, error) {
	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return Manifest{}, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var manifestData, recordData []byte
	handler := func(_ context.Context, f archives.FileInfo) error {
		var readErr error
		switch f.NameInArchive {
		case ManifestFilename:
			manifestData, readErr = readArchiveFile(f)
		case RecordsFilename:
			recordData, readErr = readArchiveFile(f)
		}
		return readErr
	}
	if err := bundleFormat.Extract(ctx, bytes.NewReader(data), handler); err != nil {
		return Manifest{}, nil, errors.Wrapf(ErrNotABundle, "%s: %v", path, err)
	}
	if manifestData == nil || recordData == nil {
		return Manifest{}, nil, errors.Wrapf(ErrNotABundle, "%s: required entries missing", path)
	}

	m, err := UnmarshalManifest(manifestData)
	if err != nil {
		return Manifest{}, nil, err
	}
	records, err := UnmarshalRecords(recordData)
	if err != nil {
		return Manifest{}, nil, err
	}
	return m, records, nil
}

func readArchiveFile(f archives.FileInfo) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.NameInArchive, err)
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}

// memFileInfo wraps an in-memory byte slice as an archivable file.
func memFileInfo(name string, data []byte, modTime time.Time) archives.FileInfo {
	info := bundleEntryInfo{name: name, size: int64(len(data)), modTime: modTime}
	return archives.FileInfo{
		FileInfo:      info,
		NameInArchive: name,
		Open: func() (fs.File, error) {
			return &bundleEntry{Reader: bytes.NewReader(data), info: info}, nil
		},
	}
}

type bundleEntry struct {
	*bytes.Reader
	info bundleEntryInfo
}

func (e *bundleEntry) Stat() (fs.FileInfo, error) { return e.info, nil }
func (e *bundleEntry) Close() error               { return nil }

type bundleEntryInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i bundleEntryInfo) Name() string       { return i.name }
func (i bundleEntryInfo) Size() int64        { return i.size }
func (i bundleEntryInfo) Mode() fs.FileMode  { return 0o644 }
func (i bundleEntryInfo) ModTime() time.Time { return i.modTime }
func (i bundleEntryInfo) IsDir() bool        { return false }
func (i bundleEntryInfo) Sys() any           { return nil }
