// Package dsv provides a DataSink which persists Partitions as a
// directory of delimiter-separated part files.
package dsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/datasink"
)

// SinkConf configures a DSV Sink
type SinkConf struct {
	Dir       string            // The target directory for part files
	Mode      datasink.SaveMode // How to treat an existing target directory. Defaults to erroring.
	Delimiter rune              // The delimiter separating columns in each part file. Defaults to ,
	Header    bool              // Begin each part file with a line of column names
	NilValue  string            // A special string which represents nil values. Defaults to "" (the empty string).
}

// Sink writes Partitions to a directory of DSV part files, one file
// per Partition
type Sink struct {
	conf     *SinkConf
	schema   tabular.Schema
	skip     bool
	nextPart int64
}

// CreateSink returns a new DSV Sink
func CreateSink(conf *SinkConf) *Sink {
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Sink{conf: conf}
}

// Init prepares the target directory according to the SaveMode
func (s *Sink) Init(schema tabular.Schema) error {
	s.schema = schema
	skip, err := datasink.PrepareTarget(s.conf.Dir, s.conf.Mode)
	if err != nil {
		return err
	}
	s.skip = skip
	if !skip && s.conf.Mode == datasink.SaveModeAppend {
		existing, err := datasink.ExistingPartCount(s.conf.Dir)
		if err != nil {
			return err
		}
		s.nextPart = int64(existing)
	}
	return nil
}

// WritePartition writes a single Partition to its own part file. Safe
// for concurrent use by multiple workers.
func (s *Sink) WritePartition(part tabular.CollectedPartition) error {
	if s.skip || part.GetNumRows() == 0 {
		return nil
	}
	idx := int(atomic.AddInt64(&s.nextPart, 1) - 1)
	f, err := os.Create(path.Join(s.conf.Dir, datasink.PartFileName(idx, "csv")))
	if err != nil {
		return err
	}

	writer := csv.NewWriter(f)
	writer.Comma = s.conf.Delimiter
	colNames := s.schema.ColumnNames()
	colTypes := s.schema.ColumnTypes()
	if s.conf.Header {
		if err := writer.Write(colNames); err != nil {
			f.Close()
			return err
		}
	}
	record := make([]string, len(colNames))
	err = part.ForEachRow(func(row tabular.Row) error {
		for i, name := range colNames {
			if row.IsNil(name) {
				record[i] = s.conf.NilValue
				continue
			}
			val, err := row.Get(name)
			if err != nil {
				return err
			}
			record[i], err = formatValue(name, colTypes[i], val)
			if err != nil {
				return err
			}
		}
		return writer.Write(record)
	})
	if err != nil {
		f.Close()
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush part file: %w", err)
	}
	return f.Close()
}

// Close finalizes the target directory
func (s *Sink) Close() error {
	return nil
}

// formatValue converts a single column value to its DSV representation
func formatValue(colName string, colType tabular.ColumnType, val interface{}) (string, error) {
	if tcol, ok := colType.(*tabular.TimeColumnType); ok {
		tval, ok := val.(time.Time)
		if !ok {
			return "", fmt.Errorf("Column %s was not a time value. Was: %#v", colName, val)
		}
		return tval.Format(tcol.Format), nil
	}
	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("DSV writing does not support value %#v in column %s", val, colName)
	}
}
