package domain

import "go.trai.ch/zerr"

var (
	// ErrPackageNotFound is returned when a named package does not exist in the DB.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrDuplicateObject is returned by the package loader when two members
	// of one archive resolve to the same dirname/basename.
	ErrDuplicateObject = zerr.New("duplicate object path")
)
