// Package util provides terminal DataFrameOperations (actions) which
// gather, reduce or persist the results of a DataFrame.
package util

import (
	"fmt"

	"github.com/andreschprr/tabular"
)

type collectTask struct {
	collectionLimit int
}

func (s *collectTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	// do nothing
	return []tabular.OperablePartition{previous}, nil
}

func (s *collectTask) GetCollectionLimit() int {
	return s.collectionLimit
}

// Collect declares that up to collectionLimit result Partitions should
// be gathered for local inspection. This also signals the end of a
// DataFrame's tasks.
func Collect(collectionLimit int) *tabular.DataFrameOperation {
	return &tabular.DataFrameOperation{
		TaskType: tabular.CollectTaskType,
		Do: func(d tabular.DataFrame) (*tabular.DataFrameOperationResult, error) {
			if d.GetDataSource().IsStreaming() {
				return nil, fmt.Errorf("Cannot collect() from a streaming DataSource")
			}
			return &tabular.DataFrameOperationResult{
				Task:       &collectTask{collectionLimit},
				DataSchema: d.GetSchema().Clone(),
			}, nil
		},
	}
}
