// Package parquet provides a DataSource which reads data from a glob
// of Apache Parquet files on disk, using
// https://github.com/parquet-go/parquet-go. No DataSourceParser is
// required, as Parquet files are self-describing.
package parquet

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/datasource"
	"github.com/andreschprr/tabular/schema"
	pqgo "github.com/parquet-go/parquet-go"
)

// DataSourceConf configures a Parquet DataSource
type DataSourceConf struct {
	PartitionSize int            // The maximum number of rows per Partition. Defaults to 128.
	Schema        tabular.Schema // Optional. Derived from the first matched file when nil.
}

// DataSource is a set of Parquet files containing data which will be
// manipulated according to a DataFrame
type DataSource struct {
	glob   string
	schema tabular.Schema
	conf   *DataSourceConf
}

// CreateDataFrame is a factory for Parquet DataSources. The Schema is
// derived from the first file matched by the glob unless one is
// supplied in the conf.
func CreateDataFrame(glob string, conf *DataSourceConf) (tabular.DataFrame, error) {
	if conf == nil {
		conf = &DataSourceConf{}
	}
	if conf.PartitionSize == 0 {
		conf.PartitionSize = 128
	}
	dataSchema := conf.Schema
	if dataSchema == nil {
		matches, err := filepath.Glob(glob)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("glob %s produced 0 files", glob)
		}
		sort.Strings(matches)
		dataSchema, err = schemaFromFile(matches[0])
		if err != nil {
			return nil, err
		}
	}
	source := &DataSource{glob: glob, schema: dataSchema, conf: conf}
	return datasource.CreateDataFrame(source, nil, dataSchema), nil
}

// Analyze returns a PartitionMap assigning one PartitionLoader to each
// file matched by the glob
func (ps *DataSource) Analyze() (tabular.PartitionMap, error) {
	matches, err := filepath.Glob(ps.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", ps.glob)
	}
	sort.Strings(matches)
	return &PartitionMap{files: matches, source: ps}, nil
}

// IsStreaming returns true iff this DataSource provides a continuous stream of data
func (ps *DataSource) IsStreaming() bool {
	return false
}

// schemaFromFile derives a Schema from the row schema of a Parquet file
func schemaFromFile(path string) (tabular.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pqFile, err := pqgo.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file %s: %w", path, err)
	}
	result := schema.CreateSchema()
	for _, field := range pqFile.Schema().Fields() {
		if len(field.Fields()) > 0 {
			return nil, fmt.Errorf("parquet file %s contains nested field %s, which is not supported", path, field.Name())
		}
		colType, err := columnTypeForField(field)
		if err != nil {
			return nil, fmt.Errorf("parquet file %s: %w", path, err)
		}
		result, err = result.CreateColumn(field.Name(), colType)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// columnTypeForField maps a Parquet leaf field to a ColumnType
func columnTypeForField(field pqgo.Field) (tabular.ColumnType, error) {
	logicalType := field.Type().LogicalType()
	if logicalType != nil && logicalType.UTF8 != nil {
		return &tabular.VarStringColumnType{}, nil
	}
	switch field.Type().Kind() {
	case pqgo.Boolean:
		return &tabular.BoolColumnType{}, nil
	case pqgo.Int32:
		return &tabular.Int32ColumnType{}, nil
	case pqgo.Int64:
		return &tabular.Int64ColumnType{}, nil
	case pqgo.Float:
		return &tabular.Float32ColumnType{}, nil
	case pqgo.Double:
		return &tabular.Float64ColumnType{}, nil
	case pqgo.ByteArray, pqgo.FixedLenByteArray:
		return &tabular.VarBytesColumnType{}, nil
	default:
		return nil, fmt.Errorf("unsupported parquet type %s for field %s", field.Type(), field.Name())
	}
}
