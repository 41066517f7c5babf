package partition

import (
	"fmt"
	"testing"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/schema"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema() tabular.Schema {
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &tabular.Uint8ColumnType{})
	return schema
}

func TestCreatePartitionImpl(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema)
	require.Equal(t, part.GetMaxRows(), 4)
	require.Equal(t, part.GetNumRows(), 0)
	require.Nil(t, part.CanInsertRowData(make([]byte, 1)))
	require.NotNil(t, part.CanInsertRowData(make([]byte, 18))) // rows are padded to at least 8 bytes
}

func TestAppendRowData(t *testing.T) {
	// make partition
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema)
	require.Equal(t, part.GetNumRows(), 0)
	r := make([]byte, schema.Size())
	r[0] = byte(uint8(1))
	// append and validate row
	err := part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	val, err := part.GetRow(0).GetUint8("col1")
	require.Nil(t, err)
	require.Equal(t, val, uint8(1))
	// append and validate another row
	r[0] = byte(uint8(2))
	err = part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 2)
	val, err = part.GetRow(1).GetUint8("col1")
	require.Nil(t, err)
	require.Equal(t, val, uint8(2))
}

func TestAppendEmptyRowData(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema)
	tempRow := CreateTempRow()
	row, err := part.AppendEmptyRowData(tempRow)
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	// fresh rows start out nil until populated
	require.True(t, row.IsNil("col1"))
	require.Nil(t, row.SetUint8("col1", 42))
	require.False(t, row.IsNil("col1"))
	val, err := part.GetRow(0).GetUint8("col1")
	require.Nil(t, err)
	require.Equal(t, val, uint8(42))
}

func TestPartitionFullError(t *testing.T) {
	// create partition with max 1 row
	schema := createPartitionTestSchema()
	part := createPartitionImpl(1, schema)
	require.Equal(t, part.GetNumRows(), 0)
	// append and validate row
	r := make([]byte, schema.Size())
	r[0] = byte(uint8(1))
	err := part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.Nil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	// second append should fail
	err = part.AppendRowData(r, []byte{0}, make(map[string]interface{}), make(map[string][]byte))
	require.NotNil(t, err)
	require.Equal(t, part.GetNumRows(), 1)
	_, err = part.AppendEmptyRowData(CreateTempRow())
	require.NotNil(t, err)
}

func TestMapRows(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema)
	tempRow := CreateTempRow()
	for i := 0; i < 3; i++ {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint8("col1", uint8(i)))
	}
	mapped, err := part.MapRows(func(row tabular.Row) error {
		val, err := row.GetUint8("col1")
		if err != nil {
			return err
		}
		return row.SetUint8("col1", val*2)
	})
	require.Nil(t, err)
	require.Equal(t, mapped.GetNumRows(), 3)
	for i := 0; i < 3; i++ {
		val, err := mapped.GetRow(i).GetUint8("col1")
		require.Nil(t, err)
		require.Equal(t, val, uint8(i*2))
	}
}

func TestMapRowsDropsErroringRows(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema)
	tempRow := CreateTempRow()
	for i := 0; i < 4; i++ {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint8("col1", uint8(i)))
	}
	// erroring rows are dropped from the result, and the errors are aggregated
	mapped, err := part.MapRows(func(row tabular.Row) error {
		val, gerr := row.GetUint8("col1")
		require.Nil(t, gerr)
		if val%2 == 1 {
			return fmt.Errorf("odd row %d", val)
		}
		return nil
	})
	require.NotNil(t, err)
	require.Equal(t, mapped.GetNumRows(), 2)
	for i := 0; i < 2; i++ {
		val, gerr := mapped.GetRow(i).GetUint8("col1")
		require.Nil(t, gerr)
		require.Equal(t, val, uint8(i*2))
	}
}

func TestFilterRows(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(8, schema)
	tempRow := CreateTempRow()
	for i := 0; i < 8; i++ {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint8("col1", uint8(i)))
	}
	filtered, err := part.FilterRows(func(row tabular.Row) (bool, error) {
		val, err := row.GetUint8("col1")
		if err != nil {
			return false, err
		}
		return val < 4, nil
	})
	require.Nil(t, err)
	require.Equal(t, filtered.GetNumRows(), 4)
	for i := 0; i < 4; i++ {
		val, err := filtered.GetRow(i).GetUint8("col1")
		require.Nil(t, err)
		require.Equal(t, val, uint8(i))
	}
}

func TestRepackPartition(t *testing.T) {
	oldSchema := schema.CreateSchema()
	oldSchema.CreateColumn("col1", &tabular.Uint8ColumnType{})
	oldSchema.CreateColumn("col2", &tabular.Int32ColumnType{})
	oldSchema.CreateColumn("col3", &tabular.VarStringColumnType{})

	part := createPartitionImpl(4, oldSchema)
	tempRow := CreateTempRow()
	for i := 0; i < 3; i++ {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint8("col1", uint8(i)))
		require.Nil(t, row.SetInt32("col2", int32(i*10)))
		require.Nil(t, row.SetVarString("col3", "hello"))
	}

	newSchema, removed := oldSchema.Clone().RemoveColumn("col1")
	require.True(t, removed)
	newSchema = newSchema.Repack()
	require.Equal(t, newSchema.NumColumns(), 2)

	repacked, err := part.Repack(newSchema)
	require.Nil(t, err)
	require.Equal(t, repacked.GetNumRows(), 3)
	for i := 0; i < 3; i++ {
		row := repacked.GetRow(i)
		_, err := row.GetUint8("col1")
		require.NotNil(t, err)
		val, err := row.GetInt32("col2")
		require.Nil(t, err)
		require.Equal(t, val, int32(i*10))
		str, err := row.GetVarString("col3")
		require.Nil(t, err)
		require.Equal(t, str, "hello")
	}
}

func TestForEachRow(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, schema)
	tempRow := CreateTempRow()
	for i := 0; i < 4; i++ {
		row, err := part.AppendEmptyRowData(tempRow)
		require.Nil(t, err)
		require.Nil(t, row.SetUint8("col1", uint8(i)))
	}
	sum := 0
	err := part.ForEachRow(func(row tabular.Row) error {
		val, err := row.GetUint8("col1")
		if err != nil {
			return err
		}
		sum += int(val)
		return nil
	})
	require.Nil(t, err)
	require.Equal(t, sum, 6)
}

func TestRenameColumnData(t *testing.T) {
	oldSchema := schema.CreateSchema()
	oldSchema.CreateColumn("num", &tabular.Uint8ColumnType{})
	oldSchema.CreateColumn("name", &tabular.VarStringColumnType{})
	part := createPartitionImpl(4, oldSchema)
	for i := 0; i < 3; i++ {
		row, err := part.AppendEmptyRowData(CreateTempRow())
		require.Nil(t, err)
		require.Nil(t, row.SetUint8("num", uint8(i)))
		require.Nil(t, row.SetVarString("name", fmt.Sprintf("row-%d", i)))
	}
	// var data which is still in serialized form must move as well
	r := make([]byte, oldSchema.Size())
	r[0] = byte(uint8(3))
	err := part.AppendRowData(r, []byte{0, 0}, make(map[string]interface{}), map[string][]byte{"name": []byte("row-3")})
	require.Nil(t, err)

	newSchema, err := oldSchema.Clone().RenameColumn("name", "label")
	require.Nil(t, err)
	part.RenameColumnData("name", "label")
	part.UpdateCurrentSchema(newSchema)

	for i := 0; i < 4; i++ {
		row := part.GetRow(i)
		require.False(t, row.IsNil("label"))
		val, err := row.GetVarString("label")
		require.Nil(t, err)
		require.Equal(t, fmt.Sprintf("row-%d", i), val)
		_, err = row.GetVarString("name")
		require.NotNil(t, err)
	}
}
