package transform

import (
	"github.com/andreschprr/tabular"
	iutil "github.com/andreschprr/tabular/internal/util"
)

type mapTask struct {
	fn tabular.MapOperation
}

func (s *mapTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	next, err := previous.MapRows(s.fn)
	if err != nil {
		return nil, err
	}
	return []tabular.OperablePartition{next}, nil
}

// Map transforms a Row in-place
func Map(fn tabular.MapOperation) *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.MapTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			return &tabular.DataFrameOperationResult{
				Task:       &mapTask{fn: iutil.SafeMapOperation(fn)},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
