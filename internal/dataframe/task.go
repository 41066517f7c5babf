package dataframe

import (
	"github.com/andreschprr/tabular"
)

// noOpTask is a task that does nothing
type noOpTask struct{}

// RunWorker for noOpTask does nothing
func (s *noOpTask) RunWorker(previous tabular.OperablePartition) ([]tabular.OperablePartition, error) {
	return []tabular.OperablePartition{previous}, nil
}
