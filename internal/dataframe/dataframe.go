// Package dataframe implements DataFrames, execution Plans and the
// local plan executor.
package dataframe

import (
	"github.com/andreschprr/tabular"
)

// A dataFrameImpl is a node in a chain of operations over columnar data
type dataFrameImpl struct {
	parent   *dataFrameImpl           // the parent DataFrame. Nil if this is the root.
	task     tabular.Task             // the task represented by this DataFrame, executed to produce the next one
	taskType tabular.TaskType         // a unique name for the type of task this DataFrame represents
	source   tabular.DataSource       // the source of the data
	parser   tabular.DataSourceParser // the parser for the source data
	schema   tabular.Schema           // the schema of the data after this task has run
}

// CreateDataFrame is a factory for DataFrames. This function is not
// intended to be used directly, as root DataFrames are returned by
// DataSource packages.
func CreateDataFrame(source tabular.DataSource, parser tabular.DataSourceParser, schema tabular.Schema) tabular.DataFrame {
	return &dataFrameImpl{
		parent:   nil,
		task:     &noOpTask{},
		taskType: tabular.ExtractTaskType,
		source:   source,
		parser:   parser,
		schema:   schema,
	}
}

// GetSchema returns the Schema of a DataFrame
func (df *dataFrameImpl) GetSchema() tabular.Schema {
	return df.schema
}

// GetDataSource returns the DataSource of a DataFrame
func (df *dataFrameImpl) GetDataSource() tabular.DataSource {
	return df.source
}

// GetParser returns the DataSourceParser of a DataFrame
func (df *dataFrameImpl) GetParser() tabular.DataSourceParser {
	return df.parser
}

// To is a "functional operations" factory method for DataFrames,
// chaining operations onto the current one(s).
func (df *dataFrameImpl) To(ops ...*tabular.DataFrameOperation) (tabular.DataFrame, error) {
	next := df
	for _, op := range ops {
		result, err := op.Do(next)
		if err != nil {
			return nil, err
		}
		next = &dataFrameImpl{
			parent:   next,
			task:     result.Task,
			taskType: op.TaskType,
			source:   df.source,
			parser:   df.parser,
			schema:   result.DataSchema,
		}
	}
	return next, nil
}
