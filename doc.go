// Package tabular defines the core types for a compact, single-process
// DataFrame engine: schema-bearing, partitioned tabular data together
// with the transformations and actions which may be applied to it.
// Concrete implementations live in the subpackages of this module, and
// cmd/walkthrough demonstrates the full load, reshape and persist
// pipeline built on top of them.
package tabular
