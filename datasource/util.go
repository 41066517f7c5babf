package datasource

import (
	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/internal/dataframe"
	"github.com/andreschprr/tabular/internal/partition"
)

// CreateDataFrame produces a fresh DataFrame (useful for the implementation of DataSources)
func CreateDataFrame(source tabular.DataSource, parser tabular.DataSourceParser, schema tabular.Schema) tabular.DataFrame {
	return dataframe.CreateDataFrame(source, parser, schema)
}

// CreateBuildablePartition produces an empty Partition which rows can
// be appended to (useful for the implementation of DataSourceParsers)
func CreateBuildablePartition(maxRows int, schema tabular.Schema) tabular.BuildablePartition {
	return partition.CreateBuildablePartition(maxRows, schema)
}

// CreateTempRow produces an empty Row struct, which can be populated
// with data by appending it to a BuildablePartition
func CreateTempRow() tabular.Row {
	return partition.CreateTempRow()
}
