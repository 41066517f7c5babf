package tabular

import "io"

// PartitionLoader is a description of how to load specific Partitions
// of data from a particular DataSource. Loaders are distributed over
// the engine's worker pool, so an assumption is made that each
// PartitionLoader will produce a roughly equal number of Partitions.
type PartitionLoader interface {
	ToString() string                                        // for logging
	Load(parser DataSourceParser) (PartitionIterator, error) // how to actually load data
}

// PartitionMap is an iterator for PartitionLoaders. Returned by
// DataSource.Analyze(), the engine iterates through PartitionLoaders
// and assigns them to workers.
type PartitionMap interface {
	HasNext() bool
	Next() PartitionLoader
}

// DataSource is a source of data which will be manipulated according
// to transformations and actions defined in a DataFrame. It represents
// information about how to load data from the source as Partitions.
type DataSource interface {
	Analyze() (PartitionMap, error)
	IsStreaming() bool
}

// A DataSourceParser is capable of parsing raw data from a
// PartitionLoader to produce Partitions
type DataSourceParser interface {
	PartitionSize() int // the maximum size of Partitions produced by this parser, in rows
	Parse(r io.Reader, source DataSource, schema Schema, onIteratorEnd func()) (PartitionIterator, error)
}

// PartitionIterator is a generic iterator for Partitions
type PartitionIterator interface {
	HasNextPartition() bool
	// NextPartition returns the next Partition if one is available, along
	// with an optional unlock function to be called when the caller is
	// finished with it, or an error
	NextPartition() (Partition, func(), error)
	// OnEnd registers a listener which fires when this iterator runs out of Partitions
	OnEnd(onEnd func())
}
