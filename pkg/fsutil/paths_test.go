package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`D:\Shares\Finance`, "Finance"},
		{`D:\Shares\Finance\`, "Finance"},
		{"/srv/shares/finance", "finance"},
		{"/srv/shares/finance/", "finance"},
		{`\\fileserver\exports\Finance`, "Finance"},
		{"Finance", "Finance"},
		{`D:/Mixed\Separators/Leaf`, "Leaf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LeafName(tt.in))
		})
	}
}

func TestRemapToBase(t *testing.T) {
	got := RemapToBase("/data/shares", `D:\Exports\Finance`)
	assert.Equal(t, filepath.Join("/data/shares", "Finance"), got)
}

func TestDirExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data/shares/Finance", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/data/file.txt", []byte("x"), 0o644))

	assert.True(t, DirExists(fs, "/data/shares/Finance"))
	assert.False(t, DirExists(fs, "/data/shares/HR"))
	assert.False(t, DirExists(fs, "/data/file.txt"))
}
