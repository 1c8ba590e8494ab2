package store

import "errors"

var (
	// ErrMissingColumn indicates the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrIncompatibleFormat indicates a bundle manifest written by an
	// incompatible tool version.
	ErrIncompatibleFormat = errors.New("incompatible bundle format version")
	// ErrNotABundle indicates the given path is not a permission bundle.
	ErrNotABundle = errors.New("not a permission bundle")
)
