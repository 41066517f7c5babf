package util

import (
	"github.com/andreschprr/tabular"
)

type accumulateTask struct {
	facc tabular.AccumulatorFactory
}

func (s *accumulateTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	return []tabular.OperablePartition{previous}, nil
}

func (s *accumulateTask) GetAccumulatorFactory() tabular.AccumulatorFactory {
	return s.facc
}

// Accumulate combines rows across workers, using a user-provided data structure
func Accumulate(facc tabular.AccumulatorFactory) *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.AccumulateTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			return &tabular.DataFrameOperationResult{
				Task:       &accumulateTask{facc: facc},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
