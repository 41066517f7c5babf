package accumulators

import (
	"fmt"

	"github.com/andreschprr/tabular"
)

// Adder returns a factory for Sum Accumulators over the given column
func Adder(colName string) tabular.AccumulatorFactory {
	return func() tabular.Accumulator {
		return &Sum{colName: colName}
	}
}

// Sum sums the values of a numeric column. Nil values count as zero.
type Sum struct {
	colName string
	sum     float64
}

// GetSum returns the column total from this Accumulator
func (a *Sum) GetSum() float64 {
	return a.sum
}

// Accumulate adds a row to this Accumulator
func (a *Sum) Accumulate(row tabular.Row) error {
	if row.IsNil(a.colName) {
		return nil
	}
	col, err := row.Schema().GetOffset(a.colName)
	if err != nil {
		return err
	}
	switch col.Type().(type) {
	case *tabular.Uint8ColumnType:
		v, err := row.GetUint8(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Uint16ColumnType:
		v, err := row.GetUint16(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Uint32ColumnType:
		v, err := row.GetUint32(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Uint64ColumnType:
		v, err := row.GetUint64(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Int8ColumnType:
		v, err := row.GetInt8(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Int16ColumnType:
		v, err := row.GetInt16(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Int32ColumnType:
		v, err := row.GetInt32(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Int64ColumnType:
		v, err := row.GetInt64(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Float32ColumnType:
		v, err := row.GetFloat32(a.colName)
		if err != nil {
			return err
		}
		a.sum += float64(v)
	case *tabular.Float64ColumnType:
		v, err := row.GetFloat64(a.colName)
		if err != nil {
			return err
		}
		a.sum += v
	default:
		return fmt.Errorf("Column %s is not a numeric column", a.colName)
	}
	return nil
}

// Merge merges another Accumulator into this one
func (a *Sum) Merge(o tabular.Accumulator) error {
	ca, ok := o.(*Sum)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Sum Accumulator")
	}
	a.sum += ca.sum
	return nil
}
