package tabular

// TaskType describes the type of a Task, used internally to control behaviour
type TaskType string

const (
	// NoOpTaskType indicates that this task does not manipulate data
	NoOpTaskType TaskType = "no_op"
	// ExtractTaskType indicates that this task sources data from a DataSource
	ExtractTaskType TaskType = "extract"
	// MapTaskType indicates that this task triggers a Map
	MapTaskType TaskType = "map"
	// FilterTaskType indicates that this task triggers a Filter
	FilterTaskType TaskType = "filter"
	// RepackTaskType indicates that this task triggers a Repack
	RepackTaskType TaskType = "repack"
	// AccumulateTaskType indicates that this task triggers an Accumulation
	AccumulateTaskType TaskType = "accumulate"
	// CollectTaskType indicates that this task gathers results
	CollectTaskType TaskType = "collect"
	// WriteTaskType indicates that this task streams results to a DataSink
	WriteTaskType TaskType = "write"
)
