// Package datasink provides DataSinks which persist the output
// Partitions of a DataFrame to directories of part files.
package datasink

import (
	"fmt"
	"os"

	errors "github.com/andreschprr/tabular/errors"
)

// SaveMode controls how a DataSink treats an existing target directory
type SaveMode int

const (
	// SaveModeErrorIfExists fails if the target directory already exists
	SaveModeErrorIfExists SaveMode = iota
	// SaveModeOverwrite removes existing data from the target directory before writing
	SaveModeOverwrite
	// SaveModeAppend adds part files alongside existing data in the target directory
	SaveModeAppend
	// SaveModeIgnore silently skips the write if the target directory already exists
	SaveModeIgnore
)

// ToString returns a string representation of a SaveMode
func (m SaveMode) ToString() string {
	switch m {
	case SaveModeErrorIfExists:
		return "error_if_exists"
	case SaveModeOverwrite:
		return "overwrite"
	case SaveModeAppend:
		return "append"
	case SaveModeIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseSaveMode converts a string representation into a SaveMode
func ParseSaveMode(s string) (SaveMode, error) {
	switch s {
	case "error_if_exists", "error":
		return SaveModeErrorIfExists, nil
	case "overwrite":
		return SaveModeOverwrite, nil
	case "append":
		return SaveModeAppend, nil
	case "ignore":
		return SaveModeIgnore, nil
	default:
		return SaveModeErrorIfExists, fmt.Errorf("unknown save mode %s", s)
	}
}

// PrepareTarget readies a target directory for part files according to
// a SaveMode, returning true iff the write should be skipped entirely
func PrepareTarget(dir string, mode SaveMode) (skip bool, err error) {
	_, serr := os.Stat(dir)
	exists := serr == nil
	if serr != nil && !os.IsNotExist(serr) {
		return false, serr
	}
	switch mode {
	case SaveModeErrorIfExists:
		if exists {
			return false, errors.TargetExistsError{Path: dir}
		}
	case SaveModeOverwrite:
		if exists {
			if err := os.RemoveAll(dir); err != nil {
				return false, err
			}
		}
	case SaveModeIgnore:
		if exists {
			return true, nil
		}
	}
	return false, os.MkdirAll(dir, 0o755)
}

// PartFileName produces the name for the idx'th part file of a target directory
func PartFileName(idx int, ext string) string {
	return fmt.Sprintf("part-%05d.%s", idx, ext)
}

// ExistingPartCount returns the number of entries already present in a
// target directory, so appended part files don't collide with existing ones
func ExistingPartCount(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
