package jsonl

import (
	"fmt"
	"time"

	"github.com/andreschprr/tabular"
	"github.com/tidwall/gjson"
)

// ParseJSONRow parses a single line of JSON into a Row, according to a
// schema whose column names are gjson paths. Missing values are nil.
func ParseJSONRow(names []string, colTypes []tabular.ColumnType, jsonData gjson.Result, row tabular.Row) error {
	for idx, path := range names {
		val := jsonData.Get(path)
		if !val.Exists() || val.Type == gjson.Null {
			row.SetNil(path)
			continue
		}
		if err := parseJSONValue(val, path, colTypes[idx], row); err != nil {
			return err
		}
	}
	return nil
}

func parseJSONValue(val gjson.Result, colName string, colType tabular.ColumnType, row tabular.Row) error {
	switch colType.(type) {
	case *tabular.BoolColumnType:
		if !val.IsBool() {
			return fmt.Errorf("Column %s was not a boolean. Was: %#v", colName, val.Value())
		}
		row.SetBool(colName, val.Bool())
	case *tabular.Uint8ColumnType:
		row.SetUint8(colName, uint8(val.Uint()))
	case *tabular.Uint16ColumnType:
		row.SetUint16(colName, uint16(val.Uint()))
	case *tabular.Uint32ColumnType:
		row.SetUint32(colName, uint32(val.Uint()))
	case *tabular.Uint64ColumnType:
		row.SetUint64(colName, val.Uint())
	case *tabular.Int8ColumnType:
		row.SetInt8(colName, int8(val.Int()))
	case *tabular.Int16ColumnType:
		row.SetInt16(colName, int16(val.Int()))
	case *tabular.Int32ColumnType:
		row.SetInt32(colName, int32(val.Int()))
	case *tabular.Int64ColumnType:
		row.SetInt64(colName, val.Int())
	case *tabular.Float32ColumnType:
		row.SetFloat32(colName, float32(val.Float()))
	case *tabular.Float64ColumnType:
		row.SetFloat64(colName, val.Float())
	case *tabular.StringColumnType:
		if val.Type != gjson.String {
			return fmt.Errorf("Column %s was not a string. Was: %#v", colName, val.Value())
		}
		row.SetString(colName, val.String())
	case *tabular.TimeColumnType:
		format := colType.(*tabular.TimeColumnType).Format
		tval, err := time.Parse(format, val.String())
		if err != nil {
			return fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %#v", colName, format, val.Value())
		}
		row.SetTime(colName, tval)
	case *tabular.VarStringColumnType:
		if val.Type != gjson.String {
			return fmt.Errorf("Column %s was not a string. Was: %#v", colName, val.Value())
		}
		row.SetVarString(colName, val.String())
	case *tabular.VarBytesColumnType:
		row.SetVarBytes(colName, []byte(val.String()))
	default:
		return fmt.Errorf("JSONL parsing does not support column type %T", colType)
	}
	return nil
}
