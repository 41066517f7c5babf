package render

import (
	"bytes"
	"testing"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/datasource"
	"github.com/andreschprr/tabular/schema"
	"github.com/stretchr/testify/require"
)

func createRenderTestSchema(t *testing.T) tabular.Schema {
	s := schema.CreateSchema()
	_, err := s.CreateColumn("id", &tabular.Int64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("name", &tabular.VarStringColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("score", &tabular.Float64ColumnType{})
	require.Nil(t, err)
	return s
}

func TestRenderSchema(t *testing.T) {
	s := createRenderTestSchema(t)

	var buf bytes.Buffer
	Schema(&buf, s)
	out := buf.String()
	require.Contains(t, out, "id")
	require.Contains(t, out, "int64")
	require.Contains(t, out, "name")
	require.Contains(t, out, "varstring")
	require.Contains(t, out, "score")
	require.Contains(t, out, "float64")
}

func TestRenderHead(t *testing.T) {
	s := createRenderTestSchema(t)

	part := datasource.CreateBuildablePartition(8, s)
	for i := 0; i < 4; i++ {
		row, err := part.AppendEmptyRowData(datasource.CreateTempRow())
		require.Nil(t, err)
		require.Nil(t, row.SetInt64("id", int64(i)))
		if i == 2 {
			require.Nil(t, row.SetNil("name"))
		} else {
			require.Nil(t, row.SetVarString("name", "row"))
		}
		require.Nil(t, row.SetFloat64("score", float64(i)+0.5))
	}
	collected, ok := part.(tabular.CollectedPartition)
	require.True(t, ok)

	var buf bytes.Buffer
	err := Head(&buf, s, []tabular.CollectedPartition{collected}, 3)
	require.Nil(t, err)
	out := buf.String()
	require.Contains(t, out, "0.5")
	require.Contains(t, out, "2.5")
	require.Contains(t, out, "<nil>")
	// the fourth row is beyond the requested limit
	require.NotContains(t, out, "3.5")
}
