package transform

import "github.com/andreschprr/tabular"

type repackTask struct {
	newSchema tabular.Schema
}

func (s *repackTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	part, err := previous.Repack(s.newSchema)
	if err != nil {
		return nil, err
	}
	return []tabular.OperablePartition{part}, nil
}

// Repack rearranges the memory layout of rows, dropping columns which
// have been marked for removal
func Repack() *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.RepackTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			newSchema := d.GetSchema().Repack()
			return &tabular.DataFrameOperationResult{
				Task:       &repackTask{newSchema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
