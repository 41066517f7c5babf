package parquet

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/datasource"
	pqgo "github.com/parquet-go/parquet-go"
)

type parquetFilePartitionIterator struct {
	source       *DataSource
	reader       *pqgo.Reader
	hasNext      bool
	schema       tabular.Schema
	maxRows      int
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Partitions
func (pqi *parquetFilePartitionIterator) OnEnd(onEnd func()) {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	pqi.endListeners = append(pqi.endListeners, onEnd)
}

// HasNextPartition returns true iff this PartitionIterator can produce another Partition
func (pqi *parquetFilePartitionIterator) HasNextPartition() bool {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	return pqi.hasNext
}

// NextPartition returns the next Partition if one is available, or an error
func (pqi *parquetFilePartitionIterator) NextPartition() (tabular.Partition, func(), error) {
	pqi.lock.Lock()
	defer pqi.lock.Unlock()
	colNames := pqi.schema.ColumnNames()
	colTypes := pqi.schema.ColumnTypes()
	part := datasource.CreateBuildablePartition(pqi.maxRows, pqi.schema)
	tempRow := datasource.CreateTempRow()
	for {
		// If the partition is full, we're done
		if part.GetNumRows() == part.GetMaxRows() {
			return part, nil, nil
		}
		// Otherwise, read another row from the file
		rowData := make(map[string]interface{})
		err := pqi.reader.Read(&rowData)
		if err != nil && errors.Is(err, io.EOF) {
			pqi.hasNext = false
			for _, l := range pqi.endListeners {
				l()
			}
			pqi.endListeners = []func(){}
			return part, nil, nil
		} else if err != nil {
			return nil, nil, err
		}
		row, err := part.AppendEmptyRowData(tempRow)
		if err != nil {
			return nil, nil, err
		}
		for i, name := range colNames {
			if err := setParquetValue(row, name, colTypes[i], rowData[name]); err != nil {
				return nil, nil, err
			}
		}
	}
}

// setParquetValue places a single decoded Parquet value into a Row
func setParquetValue(row tabular.Row, colName string, colType tabular.ColumnType, val interface{}) error {
	if val == nil {
		return row.SetNil(colName)
	}
	switch colType.(type) {
	case *tabular.BoolColumnType:
		bval, ok := val.(bool)
		if !ok {
			return fmt.Errorf("Column %s was not a boolean. Was: %#v", colName, val)
		}
		return row.SetBool(colName, bval)
	case *tabular.Int32ColumnType:
		ival, err := asInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetInt32(colName, int32(ival))
	case *tabular.Int64ColumnType:
		ival, err := asInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetInt64(colName, ival)
	case *tabular.Float32ColumnType:
		fval, err := asFloat64(colName, val)
		if err != nil {
			return err
		}
		return row.SetFloat32(colName, float32(fval))
	case *tabular.Float64ColumnType:
		fval, err := asFloat64(colName, val)
		if err != nil {
			return err
		}
		return row.SetFloat64(colName, fval)
	case *tabular.TimeColumnType:
		tval, ok := val.(time.Time)
		if !ok {
			return fmt.Errorf("Column %s was not a timestamp. Was: %#v", colName, val)
		}
		return row.SetTime(colName, tval)
	case *tabular.StringColumnType:
		sval, err := asString(colName, val)
		if err != nil {
			return err
		}
		return row.SetString(colName, sval)
	case *tabular.VarStringColumnType:
		sval, err := asString(colName, val)
		if err != nil {
			return err
		}
		return row.SetVarString(colName, sval)
	case *tabular.VarBytesColumnType:
		switch v := val.(type) {
		case []byte:
			return row.SetVarBytes(colName, v)
		case string:
			return row.SetVarBytes(colName, []byte(v))
		default:
			return fmt.Errorf("Column %s was not a byte array. Was: %#v", colName, val)
		}
	default:
		return fmt.Errorf("Parquet parsing does not support column type %T", colType)
	}
}

func asInt64(colName string, val interface{}) (int64, error) {
	switch v := val.(type) {
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("Column %s was not an integer. Was: %#v", colName, val)
	}
}

func asFloat64(colName string, val interface{}) (float64, error) {
	switch v := val.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("Column %s was not a number. Was: %#v", colName, val)
	}
}

func asString(colName string, val interface{}) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("Column %s was not a string. Was: %#v", colName, val)
	}
}
