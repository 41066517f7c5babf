package util

import (
	"github.com/andreschprr/tabular"
)

type writeTask struct {
	sink tabular.DataSink
}

func (s *writeTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	return []tabular.OperablePartition{previous}, nil
}

func (s *writeTask) GetSink() tabular.DataSink {
	return s.sink
}

// Write streams result Partitions to a DataSink. This also signals the
// end of a DataFrame's tasks.
func Write(sink tabular.DataSink) *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.WriteTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			return &tabular.DataFrameOperationResult{
				Task:       &writeTask{sink: sink},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
