// Package parquet provides a DataSink which persists Partitions as a
// directory of Apache Parquet part files, using
// https://github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"path"
	"sync/atomic"
	"time"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/datasink"
	pqgo "github.com/parquet-go/parquet-go"
)

// SinkConf configures a Parquet Sink
type SinkConf struct {
	Dir  string            // The target directory for part files
	Mode datasink.SaveMode // How to treat an existing target directory. Defaults to erroring.
}

// Sink writes Partitions to a directory of Parquet part files, one
// file per Partition
type Sink struct {
	conf     *SinkConf
	schema   tabular.Schema
	pqSchema *pqgo.Schema
	skip     bool
	nextPart int64
}

// CreateSink returns a new Parquet Sink
func CreateSink(conf *SinkConf) *Sink {
	return &Sink{conf: conf}
}

// Init prepares the target directory according to the SaveMode and
// derives the Parquet row schema
func (s *Sink) Init(schema tabular.Schema) error {
	s.schema = schema
	pqSchema, err := parquetSchema(schema)
	if err != nil {
		return err
	}
	s.pqSchema = pqSchema
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
	f, err := os.Create(path.Join(s.conf.Dir, datasink.PartFileName(idx, "parquet")))
	if err != nil {
		return err
	}

	writer := pqgo.NewGenericWriter[map[string]interface{}](f, s.pqSchema)
	colNames := s.schema.ColumnNames()
	batch := make([]map[string]interface{}, 0, part.GetNumRows())
	err = part.ForEachRow(func(row tabular.Row) error {
		rowData := make(map[string]interface{}, len(colNames))
		for _, name := range colNames {
			if row.IsNil(name) {
				continue
			}
			val, err := row.Get(name)
			if err != nil {
				return err
			}
			if tval, ok := val.(time.Time); ok {
				val = tval.UnixNano()
			}
			rowData[name] = val
		}
		batch = append(batch, rowData)
		return nil
	})
	if err != nil {
		f.Close()
		return err
	}
	if _, err := writer.Write(batch); err != nil {
		f.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close finalizes the target directory
func (s *Sink) Close() error {
	return nil
}

// parquetSchema maps a Schema to a Parquet row schema. Every field is
// optional, since any column value may be nil.
func parquetSchema(schema tabular.Schema) (*pqgo.Schema, error) {
	group := pqgo.Group{}
	err := schema.ForEachColumn(func(name string, col tabular.Column) error {
		var node pqgo.Node
		switch col.Type().(type) {
		case *tabular.BoolColumnType:
			node = pqgo.Leaf(pqgo.BooleanType)
		case *tabular.Uint8ColumnType, *tabular.Uint16ColumnType, *tabular.Uint32ColumnType:
			node = pqgo.Uint(32)
		case *tabular.Uint64ColumnType:
			node = pqgo.Uint(64)
		case *tabular.Int8ColumnType, *tabular.Int16ColumnType, *tabular.Int32ColumnType:
			node = pqgo.Int(32)
		case *tabular.Int64ColumnType:
			node = pqgo.Int(64)
		case *tabular.Float32ColumnType:
			node = pqgo.Leaf(pqgo.FloatType)
		case *tabular.Float64ColumnType:
			node = pqgo.Leaf(pqgo.DoubleType)
		case *tabular.TimeColumnType:
			node = pqgo.Timestamp(pqgo.Nanosecond)
		case *tabular.StringColumnType, *tabular.VarStringColumnType:
			node = pqgo.String()
		case *tabular.VarBytesColumnType:
			node = pqgo.Leaf(pqgo.ByteArrayType)
		default:
			return fmt.Errorf("Parquet writing does not support column type %T", col.Type())
		}
		group[name] = pqgo.Optional(node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pqgo.NewSchema("", group), nil
}
