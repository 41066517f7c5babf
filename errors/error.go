// Package errors defines the typed errors produced by the engine
package errors

import "fmt"

// NilValueError occurs when a value in a Row is null
type NilValueError struct{ Name string }

// Error returns a textual representation of this NilValueError
func (e NilValueError) Error() string {
	return fmt.Sprintf("Value for column %s is nil", e.Name)
}

// IncompatibleRowError occurs when a Row's width does not match an expected Schema
type IncompatibleRowError struct{}

// Error returns a textual representation of this IncompatibleRowError
func (e IncompatibleRowError) Error() string {
	return "Row width is not compatible with Schema"
}

// PartitionFullError occurs when a Partition has reached its max size and a new Row insertion is attempted
type PartitionFullError struct{}

// Error returns a textual representation of this PartitionFullError
func (e PartitionFullError) Error() string {
	return "Partition is full"
}

// NoMorePartitionsError occurs when there are no more partitions in a PartitionIterator
type NoMorePartitionsError struct{}

// Error returns a textual representation of this NoMorePartitionsError
func (e NoMorePartitionsError) Error() string {
	return "No more partitions"
}

// TargetExistsError occurs when a DataSink target already exists and the
// save mode forbids replacing it
type TargetExistsError struct{ Path string }

// Error returns a textual representation of this TargetExistsError
func (e TargetExistsError) Error() string {
	return fmt.Sprintf("Target %s already exists", e.Path)
}

// MissingPartitionError occurs when a partition cache does not contain a requested partition
type MissingPartitionError struct{ Key string }

// Error returns a textual representation of this MissingPartitionError
func (e MissingPartitionError) Error() string {
	return fmt.Sprintf("Partition %s is not present in the cache", e.Key)
}
