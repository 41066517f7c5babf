package tabular

// A Partition is a portion of a columnar dataset, consisting of
// multiple Rows. Partitions are not generally interacted with
// directly, instead being manipulated in parallel by DataFrame Tasks.
type Partition interface {
	ID() string            // ID retrieves the ID of this Partition
	GetMaxRows() int       // GetMaxRows retrieves the maximum number of rows in this Partition
	GetNumRows() int       // GetNumRows retrieves the current number of rows in this Partition
	GetRow(rowNum int) Row // GetRow retrieves a specific row from this Partition
}

// A BuildablePartition can accept new Rows. Used in the implementation
// of DataSources and Parsers.
type BuildablePartition interface {
	Partition
	CanInsertRowData(row []byte) error                                                                              // CanInsertRowData checks if a Row can be inserted into this Partition
	AppendEmptyRowData(tempRow Row) (Row, error)                                                                    // AppendEmptyRowData adds an empty Row to the end of this Partition, returning it for population via Row methods
	AppendRowData(row []byte, meta []byte, varData map[string]interface{}, serializedVarData map[string][]byte) error // AppendRowData adds a Row to the end of this Partition, if it isn't full and the Row fits the schema
}

// An OperablePartition can be transformed by Tasks
type OperablePartition interface {
	Partition
	UpdateCurrentSchema(currentSchema Schema)            // UpdateCurrentSchema replaces the current Schema of this Partition
	MapRows(fn MapOperation) (OperablePartition, error)  // MapRows runs a MapOperation on each row, manipulating them in-place where possible
	FilterRows(fn FilterOperation) (OperablePartition, error) // FilterRows filters the Rows in the current Partition, creating a new one
	Repack(newSchema Schema) (OperablePartition, error)  // Repack repacks a Partition according to a new Schema
}

// A CollectedPartition has been gathered by an action, and may only be
// iterated over
type CollectedPartition interface {
	Partition
	ForEachRow(fn MapOperation) error // ForEachRow iterates over Rows in this Partition
}
