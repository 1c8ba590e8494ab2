// Package store persists permission records: a CSV codec for the record
// table, a YAML manifest describing an export, and a tar.gz bundle combining
// both for transport.
package store

import (
	"bytes"
	enccsv "encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/acltools/aclsync/internal/logger"
	"github.com/acltools/aclsync/pkg/errors"
	"github.com/acltools/aclsync/pkg/model"
	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

// requiredColumns is the CSV header contract. Extra columns are ignored;
// a missing one fails the whole read.
var requiredColumns = []string{
	"FolderPath",
	"IdentityReference",
	"AccessControlType",
	"FileSystemRights",
	"InheritanceFlags",
	"PropagationFlags",
	"IsInherited",
}

type csvRow struct {
	FolderPath        string `csv:"FolderPath"`
	IdentityReference string `csv:"IdentityReference"`
	AccessControlType string `csv:"AccessControlType"`
	FileSystemRights  string `csv:"FileSystemRights"`
	InheritanceFlags  string `csv:"InheritanceFlags"`
	PropagationFlags  string `csv:"PropagationFlags"`
	IsInherited       bool   `csv:"IsInherited"`
}

// MarshalRecords renders records as CSV with the canonical header.
func MarshalRecords(records []model.PermissionRecord) ([]byte, error) {
	rows := make([]*csvRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, &csvRow{
			FolderPath:        r.FolderPath,
			IdentityReference: r.Identity,
			AccessControlType: string(r.AccessControlType),
			FileSystemRights:  r.Rights.String(),
			InheritanceFlags:  r.InheritanceFlags.String(),
			PropagationFlags:  r.PropagationFlags.String(),
			IsInherited:       r.IsInherited,
		})
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	return data, nil
}

// UnmarshalRecords parses CSV data. The header must carry every required
// column. Rows with a blank FolderPath are dropped with a warning; any other
// malformed field fails the read with its row number.
func UnmarshalRecords(data []byte) ([]model.PermissionRecord, error) {
	if err := validateHeader(data); err != nil {
		return nil, err
	}

	var rows []*csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}

	records := make([]model.PermissionRecord, 0, len(rows))
	for i, row := range rows {
		// Row 1 is the header.
		rowNum := i + 2
		if strings.TrimSpace(row.FolderPath) == "" {
			logger.Warn("row has no folder path, skipping", logger.Fields{"row": rowNum})
			continue
		}
		rec, err := row.toRecord()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (row *csvRow) toRecord() (model.PermissionRecord, error) {
	controlType, err := model.ParseAccessControlType(row.AccessControlType)
	if err != nil {
		return model.PermissionRecord{}, err
	}
	rights, err := model.ParseRights(row.FileSystemRights)
	if err != nil {
		return model.PermissionRecord{}, err
	}
	inherit, err := model.ParseInheritanceFlags(row.InheritanceFlags)
	if err != nil {
		return model.PermissionRecord{}, err
	}
	prop, err := model.ParsePropagationFlags(row.PropagationFlags)
	if err != nil {
		return model.PermissionRecord{}, err
	}
	return model.PermissionRecord{
		FolderPath:        row.FolderPath,
		Identity:          row.IdentityReference,
		AccessControlType: controlType,
		Rights:            rights,
		InheritanceFlags:  inherit,
		PropagationFlags:  prop,
		IsInherited:       row.IsInherited,
	}, nil
}

func validateHeader(data []byte) error {
	header, err := enccsv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("reading CSV header: %w", err)
	}
	present := make(map[string]struct{}, len(header))
	for _, col := range header {
		present[strings.TrimSpace(col)] = struct{}{}
	}
	for _, col := range requiredColumns {
		if _, ok := present[col]; !ok {
			return errors.Wrapf(ErrMissingColumn, "%s", col)
		}
	}
	return nil
}

// ReadRecordsFile loads a record CSV from the filesystem.
func ReadRecordsFile(fs afero.Fs, path string) ([]model.PermissionRecord, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return UnmarshalRecords(data)
}

// WriteRecordsFile writes records as CSV via a temp file in the target
// directory, then renames it into place. A crashed write never leaves a
// half-written file under the final name.
func WriteRecordsFile(fs afero.Fs, path string, records []model.PermissionRecord) error {
	data, err := MarshalRecords(records)
	if err != nil {
		return err
	}
	return writeFileAtomic(fs, path, data)
}

func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
