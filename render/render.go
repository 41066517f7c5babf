// Package render formats Schemas and collected results as tables for
// terminal output.
package render

import (
	"io"

	"github.com/andreschprr/tabular"
	"github.com/olekukonko/tablewriter"
)

// TypeName returns a human-readable name for a ColumnType.
func TypeName(colType tabular.ColumnType) string {
	switch colType.(type) {
	case *tabular.BoolColumnType:
		return "bool"
	case *tabular.Uint8ColumnType:
		return "uint8"
	case *tabular.Uint16ColumnType:
		return "uint16"
	case *tabular.Uint32ColumnType:
		return "uint32"
	case *tabular.Uint64ColumnType:
		return "uint64"
	case *tabular.Int8ColumnType:
		return "int8"
	case *tabular.Int16ColumnType:
		return "int16"
	case *tabular.Int32ColumnType:
		return "int32"
	case *tabular.Int64ColumnType:
		return "int64"
	case *tabular.Float32ColumnType:
		return "float32"
	case *tabular.Float64ColumnType:
		return "float64"
	case *tabular.TimeColumnType:
		return "time"
	case *tabular.StringColumnType:
		return "string"
	case *tabular.VarStringColumnType:
		return "varstring"
	case *tabular.VarBytesColumnType:
		return "varbytes"
	default:
		return "unknown"
	}
}

// Schema renders the columns of a Schema, in index order, as a
// two-column table.
func Schema(w io.Writer, schema tabular.Schema) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"column", "type"})
	names := schema.ColumnNames()
	types := schema.ColumnTypes()
	for i := range names {
		table.Append([]string{names[i], TypeName(types[i])})
	}
	table.Render()
}

// Head renders the first n rows of a collected result as a table, with
// one column per Schema column. Nil values render as "<nil>".
func Head(w io.Writer, schema tabular.Schema, parts []tabular.CollectedPartition, n int) error {
	table := tablewriter.NewWriter(w)
	names := schema.ColumnNames()
	types := schema.ColumnTypes()
	table.SetHeader(names)
	rendered := 0
	for _, part := range parts {
		for i := 0; i < part.GetNumRows() && rendered < n; i++ {
			row := part.GetRow(i)
			cells := make([]string, len(names))
			for j, name := range names {
				if row.IsNil(name) {
					cells[j] = "<nil>"
					continue
				}
				val, err := row.Get(name)
				if err != nil {
					return err
				}
				cells[j] = types[j].ToString(val)
			}
			table.Append(cells)
			rendered++
		}
		if rendered >= n {
			break
		}
	}
	table.Render()
	return nil
}
