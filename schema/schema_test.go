package schema

import (
	"testing"

	"github.com/andreschprr/tabular"
	"github.com/stretchr/testify/require"
)

func TestSchemaEqualityBasic(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &tabular.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &tabular.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", &tabular.StringColumnType{Length: 12})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &tabular.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &tabular.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col3", &tabular.StringColumnType{Length: 12})
	require.Nil(t, err)

	require.Nil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityDifferentLength(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &tabular.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &tabular.StringColumnType{Length: 12})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &tabular.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &tabular.StringColumnType{Length: 13})
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaEqualityOrder(t *testing.T) {
	schema1 := CreateSchema()
	_, err := schema1.CreateColumn("col1", &tabular.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col2", &tabular.Uint32ColumnType{})
	require.Nil(t, err)
	_, err = schema1.CreateColumn("col3", &tabular.VarStringColumnType{})
	require.Nil(t, err)

	schema2 := CreateSchema()
	_, err = schema2.CreateColumn("col1", &tabular.Uint64ColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col3", &tabular.VarStringColumnType{})
	require.Nil(t, err)
	_, err = schema2.CreateColumn("col2", &tabular.Uint32ColumnType{})
	require.Nil(t, err)

	require.NotNil(t, schema1.Equals(schema2))
}

func TestSchemaRename(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &tabular.Int64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col2", &tabular.VarStringColumnType{})
	require.Nil(t, err)

	_, err = s.RenameColumn("col1", "renamed")
	require.Nil(t, err)
	require.False(t, s.HasColumn("col1"))
	require.True(t, s.HasColumn("renamed"))
	require.Equal(t, []string{"renamed", "col2"}, s.ColumnNames())

	// renaming onto an existing name is rejected
	_, err = s.RenameColumn("renamed", "col2")
	require.NotNil(t, err)

	// renaming a missing column is rejected
	_, err = s.RenameColumn("nope", "other")
	require.NotNil(t, err)
}

func TestSchemaRemoveAndRepack(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &tabular.Int64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col2", &tabular.Float64ColumnType{})
	require.Nil(t, err)
	_, err = s.CreateColumn("col3", &tabular.VarStringColumnType{})
	require.Nil(t, err)

	_, removed := s.RemoveColumn("col2")
	require.True(t, removed)
	require.True(t, s.IsMarkedForRemoval("col2"))
	require.Equal(t, 1, s.NumRemovedColumns())
	// marking does not shrink the schema
	require.Equal(t, 3, s.NumColumns())

	repacked := s.Repack()
	require.Equal(t, 2, repacked.NumColumns())
	require.False(t, repacked.HasColumn("col2"))
	require.Equal(t, []string{"col1", "col3"}, repacked.ColumnNames())

	// offsets are compacted
	col1, err := repacked.GetOffset("col1")
	require.Nil(t, err)
	require.Equal(t, 0, col1.Start())
	require.Equal(t, 8, repacked.RowWidth())
}

func TestSchemaSizePadding(t *testing.T) {
	s := CreateSchema()
	_, err := s.CreateColumn("col1", &tabular.Int64ColumnType{})
	require.Nil(t, err)
	require.Equal(t, 8, s.RowWidth())
	require.Equal(t, 16, s.Size())
	for i := 0; i < 8; i++ {
		_, err = s.CreateColumn(string(rune('a'+i)), &tabular.Int64ColumnType{})
		require.Nil(t, err)
	}
	require.Equal(t, 72, s.RowWidth())
	require.Equal(t, 128, s.Size())
}
