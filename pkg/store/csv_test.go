package store

import (
	"testing"

	"github.com/acltools/aclsync/pkg/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []model.PermissionRecord {
	return []model.PermissionRecord{
		{
			FolderPath:        `E:\Shares\Finance`,
			Identity:          `CORP\GRP_Finance`,
			AccessControlType: model.Allow,
			Rights:            model.RightsModify,
			InheritanceFlags:  model.ContainerInherit | model.ObjectInherit,
			PropagationFlags:  model.PropagateNone,
		},
		{
			FolderPath:        `E:\Shares\Finance\Reports`,
			Identity:          "S-1-5-21-3623811015-3361044348-30300820-1013",
			AccessControlType: model.Deny,
			Rights:            model.RightsDelete,
			InheritanceFlags:  model.InheritNone,
			PropagationFlags:  model.InheritOnly,
			IsInherited:       true,
		},
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	data, err := MarshalRecords(sampleRecords())
	require.NoError(t, err)

	parsed, err := UnmarshalRecords(data)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), parsed)
}

func TestUnmarshalRecordsMissingColumnIsFatal(t *testing.T) {
	data := []byte("FolderPath,IdentityReference,AccessControlType\n" +
		`E:\Shares,CORP\GRP_X,Allow` + "\n")

	_, err := UnmarshalRecords(data)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestUnmarshalRecordsBlankFolderPathIsSkipped(t *testing.T) {
	records := sampleRecords()
	records[0].FolderPath = ""
	data, err := MarshalRecords(records)
	require.NoError(t, err)

	parsed, err := UnmarshalRecords(data)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, `E:\Shares\Finance\Reports`, parsed[0].FolderPath)
}

func TestUnmarshalRecordsBadFieldReportsRow(t *testing.T) {
	data := []byte("FolderPath,IdentityReference,AccessControlType,FileSystemRights,InheritanceFlags,PropagationFlags,IsInherited\n" +
		`E:\Shares,CORP\GRP_X,Grant,Modify,None,None,false` + "\n")

	_, err := UnmarshalRecords(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestWriteRecordsFileIsAtomic(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteRecordsFile(fs, "/exports/finance.csv", sampleRecords()))

	// No temp file survives a successful write.
	exists, err := afero.Exists(fs, "/exports/finance.csv.tmp")
	require.NoError(t, err)
	assert.False(t, exists)

	parsed, err := ReadRecordsFile(fs, "/exports/finance.csv")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), parsed)
}
