package store

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestCompatibility(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.3.7", false},
		{"2.0.0", true},
		{"0.9.0", true},
		{"garbage", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			m := NewManifest("FILESRV01", `E:\Shares`, 3)
			m.FormatVersion = tt.version
			err := m.CheckCompatibility()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncompatibleFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestManifestRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManifest("FILESRV01", `E:\Shares\Finance`, 42)

	require.NoError(t, WriteManifestFile(fs, "/exports/manifest.yaml", m))
	loaded, err := ReadManifestFile(fs, "/exports/manifest.yaml")
	require.NoError(t, err)

	assert.Equal(t, m.FormatVersion, loaded.FormatVersion)
	assert.Equal(t, m.SourceMachine, loaded.SourceMachine)
	assert.Equal(t, m.SourcePath, loaded.SourcePath)
	assert.Equal(t, m.RecordCount, loaded.RecordCount)
	assert.True(t, m.CreatedAt.Equal(loaded.CreatedAt))
}

func TestIsBundle(t *testing.T) {
	assert.True(t, IsBundle("/exports/finance.tar.gz"))
	assert.True(t, IsBundle(`E:\Exports\Finance.TAR.GZ`))
	assert.True(t, IsBundle("/exports/finance.tgz"))
	assert.False(t, IsBundle("/exports/finance.csv"))
}

func TestBundleRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	records := sampleRecords()
	m := NewManifest("FILESRV01", `E:\Shares\Finance`, len(records))

	require.NoError(t, CreateBundle(ctx, fs, "/exports/finance.tar.gz", m, records))

	loaded, parsed, err := OpenBundle(ctx, fs, "/exports/finance.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, m.RecordCount, loaded.RecordCount)
	assert.Equal(t, m.SourceMachine, loaded.SourceMachine)
	assert.Equal(t, records, parsed)
}

func TestOpenBundleRejectsGarbage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/exports/junk.tar.gz", []byte("not an archive"), 0o644))

	_, _, err := OpenBundle(context.Background(), fs, "/exports/junk.tar.gz")
	assert.ErrorIs(t, err, ErrNotABundle)
}

func TestOpenBundleRejectsFutureFormat(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	m := NewManifest("FILESRV01", `E:\Shares`, 0)
	m.FormatVersion = "2.0.0"

	require.NoError(t, CreateBundle(ctx, fs, "/exports/future.tar.gz", m, nil))
	_, _, err := OpenBundle(ctx, fs, "/exports/future.tar.gz")
	assert.ErrorIs(t, err, ErrIncompatibleFormat)
}
