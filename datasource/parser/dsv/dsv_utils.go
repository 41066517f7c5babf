package dsv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/andreschprr/tabular"
)

// scanError describes a column value which could not be parsed as its
// column's type
func scanError(colName string, kind string, colVal string) error {
	return fmt.Errorf("Column %s could not be parsed as %s. Was: %#v", colName, kind, colVal)
}

// Parses a slice of strings into a Row, according to a schema
func scanRow(conf *ParserConf, names []string, colTypes []tabular.ColumnType, rowStrings []string, row tabular.Row) error {
	for i := 0; i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if len(colVal) == 0 || colVal == conf.NilValue {
			row.SetNil(names[i])
			continue
		}
		// otherwise, parse type
		switch colTypes[i].(type) {
		case *tabular.BoolColumnType:
			bval, err := strconv.ParseBool(colVal)
			if err != nil {
				return scanError(names[i], "a boolean", colVal)
			}
			row.SetBool(names[i], bval)
		case *tabular.Uint8ColumnType:
			ival, err := strconv.ParseUint(colVal, 10, 8)
			if err != nil {
				return scanError(names[i], "an integer", colVal)
			}
			row.SetUint8(names[i], uint8(ival))
		case *tabular.Uint16ColumnType:
			ival, err := strconv.ParseUint(colVal, 10, 16)
			if err != nil {
				return scanError(names[i], "an integer", colVal)
			}
			row.SetUint16(names[i], uint16(ival))
		case *tabular.Uint32ColumnType:
			ival, err := strconv.ParseUint(colVal, 10, 32)
			if err != nil {
				return scanError(names[i], "an integer", colVal)
			}
			row.SetUint32(names[i], uint32(ival))
		case *tabular.Uint64ColumnType:
			ival, err := strconv.ParseUint(colVal, 10, 64)
			if err != nil {
				return scanError(names[i], "an integer", colVal)
			}
			row.SetUint64(names[i], ival)
		case *tabular.Int8ColumnType:
			ival, err := strconv.ParseInt(colVal, 10, 8)
			if err != nil {
				return scanError(names[i], "an integer", colVal)
			}
			row.SetInt8(names[i], int8(ival))
		case *tabular.Int16ColumnType:
			ival, err := strconv.ParseInt(colVal, 10, 16)
			if err != nil {
				return scanError(names[i], "an integer", colVal)
			}
			row.SetInt16(names[i], int16(ival))
		case *tabular.Int32ColumnType:
			ival, err := strconv.ParseInt(colVal, 10, 32)
			if err != nil {
				return scanError(names[i], "an integer", colVal)
			}
			row.SetInt32(names[i], int32(ival))
		case *tabular.Int64ColumnType:
			ival, err := strconv.ParseInt(colVal, 10, 64)
			if err != nil {
				return scanError(names[i], "an integer", colVal)
			}
			row.SetInt64(names[i], ival)
		case *tabular.Float32ColumnType:
			fval, err := strconv.ParseFloat(colVal, 32)
			if err != nil {
				return scanError(names[i], "a float", colVal)
			}
			row.SetFloat32(names[i], float32(fval))
		case *tabular.Float64ColumnType:
			fval, err := strconv.ParseFloat(colVal, 64)
			if err != nil {
				return scanError(names[i], "a float", colVal)
			}
			row.SetFloat64(names[i], fval)
		case *tabular.StringColumnType:
			row.SetString(names[i], colVal)
		case *tabular.TimeColumnType:
			format := colTypes[i].(*tabular.TimeColumnType).Format
			tval, err := time.Parse(format, colVal)
			if err != nil {
				return scanError(names[i], fmt.Sprintf("datetime with format %s", format), colVal)
			}
			row.SetTime(names[i], tval)
		case *tabular.VarStringColumnType:
			row.SetVarString(names[i], colVal)
		case *tabular.VarBytesColumnType:
			row.SetVarBytes(names[i], []byte(colVal))
		default:
			return fmt.Errorf("DSV parsing does not support column type %T", colTypes[i])
		}
	}
	return nil
}
