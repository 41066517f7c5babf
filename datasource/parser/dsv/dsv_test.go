package dsv

import (
	"os"
	"path"
	"strings"
	"testing"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/schema"
	"github.com/stretchr/testify/require"
)

func TestDSVParser(t *testing.T) {
	data := strings.Join([]string{
		"id,name,ratio",
		"1,alice,0.5",
		"2,bob,1.5",
		"3,,2.5",
	}, "\n")
	parseSchema := schema.CreateSchema()
	parseSchema.CreateColumn("id", &tabular.Int64ColumnType{})
	parseSchema.CreateColumn("name", &tabular.VarStringColumnType{})
	parseSchema.CreateColumn("ratio", &tabular.Float64ColumnType{})

	parser := CreateParser(&ParserConf{
		PartitionSize: 2,
		HeaderLines:   1,
	})
	ended := false
	pi, err := parser.Parse(strings.NewReader(data), nil, parseSchema, func() { ended = true })
	require.Nil(t, err)

	totalRows := 0
	ids := make([]int64, 0)
	for pi.HasNextPartition() {
		part, unlock, err := pi.NextPartition()
		require.Nil(t, err)
		require.LessOrEqual(t, part.GetNumRows(), 2)
		for i := 0; i < part.GetNumRows(); i++ {
			row := part.GetRow(i)
			id, err := row.GetInt64("id")
			require.Nil(t, err)
			ids = append(ids, id)
			if id == 3 {
				// empty values parse as nil
				require.True(t, row.IsNil("name"))
			} else {
				name, err := row.GetVarString("name")
				require.Nil(t, err)
				require.NotEmpty(t, name)
			}
			totalRows++
		}
		if unlock != nil {
			unlock()
		}
	}
	require.Equal(t, 3, totalRows)
	require.Equal(t, []int64{1, 2, 3}, ids)
	require.True(t, ended)
}

func TestDSVParserCustomDelimiterAndNilValue(t *testing.T) {
	data := "1|NULL\n2|yes\n"
	parseSchema := schema.CreateSchema()
	parseSchema.CreateColumn("id", &tabular.Int64ColumnType{})
	parseSchema.CreateColumn("flag", &tabular.VarStringColumnType{})

	parser := CreateParser(&ParserConf{
		Delimiter: '|',
		NilValue:  "NULL",
	})
	pi, err := parser.Parse(strings.NewReader(data), nil, parseSchema, nil)
	require.Nil(t, err)
	part, _, err := pi.NextPartition()
	require.Nil(t, err)
	require.Equal(t, 2, part.GetNumRows())
	require.True(t, part.GetRow(0).IsNil("flag"))
	require.False(t, part.GetRow(1).IsNil("flag"))
}

func TestInferSchemaWithHeader(t *testing.T) {
	dir := t.TempDir()
	data := strings.Join([]string{
		"id,label,score,active",
		"1,apple,0.25,true",
		"2,banana,4,false",
		"3,cherry,1.75,true",
	}, "\n")
	require.Nil(t, os.WriteFile(path.Join(dir, "data.csv"), []byte(data), 0o644))

	inferred, err := InferSchema(path.Join(dir, "*.csv"), &ParserConf{HeaderLines: 1}, &InferConf{
		Header:     true,
		InferTypes: true,
	})
	require.Nil(t, err)
	require.Equal(t, []string{"id", "label", "score", "active"}, inferred.ColumnNames())
	types := inferred.ColumnTypes()
	require.IsType(t, &tabular.Int64ColumnType{}, types[0])
	require.IsType(t, &tabular.VarStringColumnType{}, types[1])
	// integer values widen a float column rather than narrowing it
	require.IsType(t, &tabular.Float64ColumnType{}, types[2])
	require.IsType(t, &tabular.BoolColumnType{}, types[3])
}

func TestInferSchemaWithoutHeader(t *testing.T) {
	dir := t.TempDir()
	data := "10,0.5\n20,0.25\n"
	require.Nil(t, os.WriteFile(path.Join(dir, "data.csv"), []byte(data), 0o644))

	// without type detection, every column is a VarString
	inferred, err := InferSchema(path.Join(dir, "*.csv"), &ParserConf{}, &InferConf{})
	require.Nil(t, err)
	require.Equal(t, []string{"_c0", "_c1"}, inferred.ColumnNames())
	for _, colType := range inferred.ColumnTypes() {
		require.IsType(t, &tabular.VarStringColumnType{}, colType)
	}

	// with type detection, the first line is sampled like any other
	inferred, err = InferSchema(path.Join(dir, "*.csv"), &ParserConf{}, &InferConf{InferTypes: true})
	require.Nil(t, err)
	types := inferred.ColumnTypes()
	require.IsType(t, &tabular.Int64ColumnType{}, types[0])
	require.IsType(t, &tabular.Float64ColumnType{}, types[1])
}

func TestDSVParserNamesUnparseableColumn(t *testing.T) {
	data := "1,0.5\n2,abc\n"
	parseSchema := schema.CreateSchema()
	parseSchema.CreateColumn("id", &tabular.Int64ColumnType{})
	parseSchema.CreateColumn("ratio", &tabular.Float64ColumnType{})

	parser := CreateParser(&ParserConf{})
	pi, err := parser.Parse(strings.NewReader(data), nil, parseSchema, nil)
	require.Nil(t, err)
	_, _, err = pi.NextPartition()
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "ratio")
	require.Contains(t, err.Error(), "abc")
}
