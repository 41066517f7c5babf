package transform

import (
	"fmt"
	"strconv"
	"time"

	"github.com/andreschprr/tabular"
)

// Cast converts the values of an existing column to a new type,
// preserving nil values. It is a composite operation, so its results
// should be spread into DataFrame.To:
//
//	df, err = df.To(transform.Cast("price", &tabular.Float64ColumnType{})...)
//
// Values which cannot be represented in the new type produce row
// errors, which are aggregated per Partition and fail the run.
func Cast(colName string, newType tabular.ColumnType) []*tabular.DataFrameOperation {
	rawName := colName + "_raw"
	fn := func(row tabular.Row) error {
		if row.IsNil(rawName) {
			return row.SetNil(colName)
		}
		val, err := row.Get(rawName)
		if err != nil {
			return err
		}
		return setCastValue(row, colName, newType, val)
	}
	return []*tabular.DataFrameOperation{
		RenameColumn(colName, rawName),
		AddColumn(colName, newType),
		Map(fn),
		RemoveColumn(rawName),
		Repack(),
	}
}

// setCastValue coerces a single value into a column of the target type
func setCastValue(row tabular.Row, colName string, newType tabular.ColumnType, val interface{}) error {
	switch t := newType.(type) {
	case *tabular.BoolColumnType:
		bval, err := castToBool(colName, val)
		if err != nil {
			return err
		}
		return row.SetBool(colName, bval)
	case *tabular.Uint8ColumnType:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetUint8(colName, uint8(ival))
	case *tabular.Uint16ColumnType:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetUint16(colName, uint16(ival))
	case *tabular.Uint32ColumnType:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetUint32(colName, uint32(ival))
	case *tabular.Uint64ColumnType:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetUint64(colName, uint64(ival))
	case *tabular.Int8ColumnType:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetInt8(colName, int8(ival))
	case *tabular.Int16ColumnType:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetInt16(colName, int16(ival))
	case *tabular.Int32ColumnType:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetInt32(colName, int32(ival))
	case *tabular.Int64ColumnType:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return err
		}
		return row.SetInt64(colName, ival)
	case *tabular.Float32ColumnType:
		fval, err := castToFloat64(colName, val)
		if err != nil {
			return err
		}
		return row.SetFloat32(colName, float32(fval))
	case *tabular.Float64ColumnType:
		fval, err := castToFloat64(colName, val)
		if err != nil {
			return err
		}
		return row.SetFloat64(colName, fval)
	case *tabular.TimeColumnType:
		sval, err := castToString(colName, val)
		if err != nil {
			return err
		}
		tval, err := time.Parse(t.Format, sval)
		if err != nil {
			return fmt.Errorf("Column %s could not be cast to datetime with format %s. Was: %#v", colName, t.Format, val)
		}
		return row.SetTime(colName, tval)
	case *tabular.StringColumnType:
		sval, err := castToString(colName, val)
		if err != nil {
			return err
		}
		return row.SetString(colName, sval)
	case *tabular.VarStringColumnType:
		sval, err := castToString(colName, val)
		if err != nil {
			return err
		}
		return row.SetVarString(colName, sval)
	case *tabular.VarBytesColumnType:
		sval, err := castToString(colName, val)
		if err != nil {
			return err
		}
		return row.SetVarBytes(colName, []byte(sval))
	default:
		return fmt.Errorf("Cast does not support column type %T", newType)
	}
}

func castToInt64(colName string, val interface{}) (int64, error) {
	switch v := val.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		ival, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("Column %s cannot be cast to an integer. Was: %#v", colName, val)
		}
		return ival, nil
	default:
		return 0, fmt.Errorf("Column %s cannot be cast to an integer. Was: %#v", colName, val)
	}
}

func castToFloat64(colName string, val interface{}) (float64, error) {
	switch v := val.(type) {
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		fval, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("Column %s cannot be cast to a float. Was: %#v", colName, val)
		}
		return fval, nil
	default:
		return 0, fmt.Errorf("Column %s cannot be cast to a float. Was: %#v", colName, val)
	}
}

func castToBool(colName string, val interface{}) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		bval, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("Column %s cannot be cast to a boolean. Was: %#v", colName, val)
		}
		return bval, nil
	default:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return false, fmt.Errorf("Column %s cannot be cast to a boolean. Was: %#v", colName, val)
		}
		return ival != 0, nil
	}
}

func castToString(colName string, val interface{}) (string, error) {
	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		ival, err := castToInt64(colName, val)
		if err != nil {
			return "", fmt.Errorf("Column %s cannot be cast to a string. Was: %#v", colName, val)
		}
		return strconv.FormatInt(ival, 10), nil
	}
}
