// Package transform provides DataFrameOperations which reshape
// columnar data.
package transform

import (
	"fmt"

	"github.com/andreschprr/tabular"
)

// partitions which store variable-length values by column name
// implement this interface
type renameableDataPartition interface {
	RenameColumnData(oldName string, newName string)
}

// renameColumnTask rekeys variable-length column data so it follows
// the renamed Schema column
type renameColumnTask struct {
	oldName string
	newName string
}

func (s *renameColumnTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	rp, ok := previous.(renameableDataPartition)
	if !ok {
		return nil, fmt.Errorf("Partition %s does not support column renames", previous.ID())
	}
	rp.RenameColumnData(s.oldName, s.newName)
	return []tabular.OperablePartition{previous}, nil
}

// RenameColumn renames an existing column
func RenameColumn(oldName string, newName string) *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.NoOpTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			newSchema, err := d.GetSchema().Clone().RenameColumn(oldName, newName)
			if err != nil {
				return nil, err
			}
			return &tabular.DataFrameOperationResult{
				Task:       &renameColumnTask{oldName: oldName, newName: newName},
				DataSchema: newSchema,
			}, nil
		},
	}
}
