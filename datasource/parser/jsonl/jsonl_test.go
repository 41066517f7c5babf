package jsonl

import (
	"strings"
	"testing"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/schema"
	"github.com/stretchr/testify/require"
)

func TestJSONLParser(t *testing.T) {
	parseSchema := schema.CreateSchema()
	parseSchema.CreateColumn("name", &tabular.VarStringColumnType{})
	parseSchema.CreateColumn("meta.index", &tabular.Int64ColumnType{})
	parseSchema.CreateColumn("meta.active", &tabular.BoolColumnType{})

	data := strings.Join([]string{
		`{"name": "alice", "meta": {"index": 1, "active": true}}`,
		`{"name": "bob", "meta": {"index": 2, "active": false}}`,
		`{"name": "carol", "meta": {"index": 3}}`,
	}, "\n")

	parser := CreateParser(&ParserConf{PartitionSize: 128})
	pi, err := parser.Parse(strings.NewReader(data), nil, parseSchema, nil)
	require.Nil(t, err)

	part, _, err := pi.NextPartition()
	require.Nil(t, err)
	require.Equal(t, 3, part.GetNumRows())

	name, err := part.GetRow(0).GetVarString("name")
	require.Nil(t, err)
	require.Equal(t, "alice", name)
	idx, err := part.GetRow(1).GetInt64("meta.index")
	require.Nil(t, err)
	require.Equal(t, int64(2), idx)
	active, err := part.GetRow(0).GetBool("meta.active")
	require.Nil(t, err)
	require.True(t, active)
	// values missing from the JSON are nil
	require.True(t, part.GetRow(2).IsNil("meta.active"))
}

func TestJSONLParserTypeMismatch(t *testing.T) {
	parseSchema := schema.CreateSchema()
	parseSchema.CreateColumn("name", &tabular.VarStringColumnType{})

	parser := CreateParser(&ParserConf{})
	pi, err := parser.Parse(strings.NewReader(`{"name": 42}`), nil, parseSchema, nil)
	require.Nil(t, err)
	_, _, err = pi.NextPartition()
	require.NotNil(t, err)
}
