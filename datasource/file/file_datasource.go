// Package file provides a DataSource which reads data from a glob of
// files on disk. Files are assigned to workers in their entirety, so it
// is favourable if individual files represent roughly equal-sized
// divisions of data.
package file

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/datasource"
)

// DataSource is a set of files containing data which will be
// manipulated according to a DataFrame
type DataSource struct {
	glob   string
	schema tabular.Schema
}

// CreateDataFrame is a factory for file DataSources
func CreateDataFrame(glob string, parser tabular.DataSourceParser, schema tabular.Schema) tabular.DataFrame {
	source := &DataSource{glob, schema}
	return datasource.CreateDataFrame(source, parser, schema)
}

// Analyze returns a PartitionMap assigning one PartitionLoader to each
// file matched by the glob
func (fs *DataSource) Analyze() (tabular.PartitionMap, error) {
	matches, err := filepath.Glob(fs.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", fs.glob)
	}
	sort.Strings(matches)
	return &PartitionMap{
		files:  matches,
		source: fs,
	}, nil
}

// IsStreaming returns true iff this DataSource provides a continuous stream of data
func (fs *DataSource) IsStreaming() bool {
	return false
}
