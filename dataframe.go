package tabular

// A DataFrame is a tool for constructing a chain of transformations
// and actions applied to columnar data. DataFrames are immutable:
// applying an operation produces a fresh DataFrame bound to its parent.
type DataFrame interface {
	GetSchema() Schema                            // GetSchema returns the Schema of this DataFrame
	GetDataSource() DataSource                    // GetDataSource returns the DataSource of this DataFrame
	GetParser() DataSourceParser                  // GetParser returns the DataSourceParser of this DataFrame, if any
	To(...*DataFrameOperation) (DataFrame, error) // To chains operations onto the current DataFrame
}

// A Task is an action or transformation applied to Partitions of
// columnar data.
type Task interface {
	RunWorker(previous OperablePartition) ([]OperablePartition, error)
}

// DataFrameOperation is a generic DataFrame transformation or action,
// pairing a TaskType with a factory which produces the Task doing the
// work and the (potentially) altered Schema.
type DataFrameOperation struct {
	TaskType TaskType
	Do       func(DataFrame) (*DataFrameOperationResult, error)
}

// DataFrameOperationResult is the result of a DataFrameOperation
type DataFrameOperationResult struct {
	Task       Task
	DataSchema Schema
}
