package transform

import (
	"github.com/andreschprr/tabular"
	iutil "github.com/andreschprr/tabular/internal/util"
)

type filterTask struct {
	fn tabular.FilterOperation
}

func (s *filterTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	next, err := previous.FilterRows(s.fn)
	if err != nil {
		return nil, err
	}
	return []tabular.OperablePartition{next}, nil
}

// Filter retains only the Rows for which fn returns true
func Filter(fn tabular.FilterOperation) *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.FilterTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			return &tabular.DataFrameOperationResult{
				Task:       &filterTask{fn: iutil.SafeFilterOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
