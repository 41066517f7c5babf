package partition

import (
	"github.com/andreschprr/tabular"
	errors "github.com/andreschprr/tabular/errors"
)

// CreateBuildablePartition creates a new Partition containing an empty byte array and a schema
func CreateBuildablePartition(maxRows int, schema tabular.Schema) tabular.BuildablePartition {
	return createPartitionImpl(maxRows, schema)
}

// CanInsertRowData checks if a Row can be inserted into this Partition
func (p *partitionImpl) CanInsertRowData(row []byte) error {
	if len(row) > p.schema.Size() {
		return errors.IncompatibleRowError{}
	} else if p.numRows >= p.maxRows {
		return errors.PartitionFullError{}
	}
	return nil
}

// AppendEmptyRowData is a convenient way to add an empty Row to the end
// of this Partition, returning the Row so that Row methods can be used
// to populate it. Fixed-length columns of the fresh Row start out nil.
func (p *partitionImpl) AppendEmptyRowData(tempRow tabular.Row) (tabular.Row, error) {
	if p.numRows >= p.maxRows {
		return nil, errors.PartitionFullError{}
	}
	p.numRows++
	meta := p.getRowMeta(p.numRows - 1)
	for i := range meta {
		meta[i] = colValueIsNilFlag
	}
	return p.getRow(tempRow.(*rowImpl), p.numRows-1), nil
}

// AppendRowData adds a Row to the end of this Partition, if it isn't
// full and if the Row fits within the schema
func (p *partitionImpl) AppendRowData(row []byte, meta []byte, varData map[string]interface{}, serializedVarRowData map[string][]byte) error {
	if err := p.CanInsertRowData(row); err != nil {
		return err
	}
	copy(p.rows[p.numRows*p.schema.Size():(p.numRows+1)*p.schema.Size()], row)
	copy(p.rowMeta[p.numRows*p.schema.NumColumns():(p.numRows+1)*p.schema.NumColumns()], meta)
	p.varRowData[p.numRows] = varData
	p.serializedVarRowData[p.numRows] = serializedVarRowData
	p.numRows++
	return nil
}
