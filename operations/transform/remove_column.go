package transform

import "github.com/andreschprr/tabular"

// removeColumnTask is a task that does nothing
type removeColumnTask struct{}

// RunWorker for removeColumnTask does nothing
func (s *removeColumnTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	return []tabular.OperablePartition{previous}, nil
}

// RemoveColumn marks existing columns for removal. The data is not
// dropped until the next Repack.
func RemoveColumn(oldNames ...string) *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.NoOpTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			newSchema := d.GetSchema().Clone()
			for _, oldName := range oldNames {
				newSchema, _ = newSchema.RemoveColumn(oldName)
			}
			return &tabular.DataFrameOperationResult{
				Task:       &removeColumnTask{},
				DataSchema: newSchema,
			}, nil
		},
	}
}
