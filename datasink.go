package tabular

// DataSink is a destination for the output Partitions of a DataFrame,
// typically a directory of part files in some serialization format.
// Init is called exactly once before any partitions are written.
// WritePartition may be called concurrently from multiple workers.
type DataSink interface {
	Init(schema Schema) error                      // Init prepares the target for writing
	WritePartition(part CollectedPartition) error  // WritePartition persists a single output Partition
	Close() error                                  // Close finalizes the target
}
