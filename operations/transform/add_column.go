package transform

import "github.com/andreschprr/tabular"

type addColumnTask struct {
	newSchema tabular.Schema
}

func (s *addColumnTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	part, err := previous.Repack(s.newSchema)
	if err != nil {
		return nil, err
	}
	return []tabular.OperablePartition{part}, nil
}

// AddColumn adds a new column to the data. The new column starts out
// nil for every row, and can be populated with Map.
func AddColumn(colName string, colType tabular.ColumnType) *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.RepackTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().CreateColumn(colName, colType)
			if err != nil {
				return nil, err
			}
			return &tabular.DataFrameOperationResult{
				Task:       &addColumnTask{newSchema: newSchema},
				DataSchema: newSchema,
			}, nil
		},
	}
}
