// Package partition contains the engine's internal implementation of
// Partitions and Rows: fixed-width column data packed into a single
// byte array per partition, nil flags stored in per-row metadata, and
// variable-length values kept in per-row maps.
package partition

import (
	"log"

	"github.com/andreschprr/tabular"
	uuid "github.com/gofrs/uuid"
)

// partitionImpl is the engine's internal implementation of Partition
type partitionImpl struct {
	id                   string
	maxRows              int
	numRows              int
	rows                 []byte
	varRowData           []map[string]interface{}
	serializedVarRowData []map[string][]byte // serialized data from a cache or spill (temporary)
	rowMeta              []byte
	schema               tabular.Schema
}

// createPartitionImpl creates a new Partition containing an empty byte array and a schema
func createPartitionImpl(maxRows int, schema tabular.Schema) *partitionImpl {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Partition: %v", err)
	}
	return &partitionImpl{
		id:                   id.String(),
		maxRows:              maxRows,
		numRows:              0,
		rows:                 make([]byte, maxRows*schema.Size()),
		varRowData:           make([]map[string]interface{}, maxRows),
		serializedVarRowData: make([]map[string][]byte, maxRows),
		rowMeta:              make([]byte, maxRows*schema.NumColumns()),
		schema:               schema,
	}
}

// CreatePartition creates a new Partition containing an empty byte array and a schema
func CreatePartition(maxRows int, schema tabular.Schema) tabular.Partition {
	return createPartitionImpl(maxRows, schema)
}

// ID retrieves the ID of this Partition
func (p *partitionImpl) ID() string {
	return p.id
}

// GetMaxRows retrieves the maximum number of rows in this Partition
func (p *partitionImpl) GetMaxRows() int {
	return p.maxRows
}

// GetNumRows retrieves the number of rows in this Partition
func (p *partitionImpl) GetNumRows() int {
	return p.numRows
}

// getRow populates a reusable row struct with the data for a specific row
func (p *partitionImpl) getRow(row *rowImpl, rowNum int) tabular.Row {
	row.partID = p.id
	row.meta = p.getRowMeta(rowNum)
	row.data = p.getRowData(rowNum)
	row.varData = p.getVarRowData(rowNum)
	row.serializedVarData = p.getSerializedVarRowData(rowNum)
	row.schema = p.schema
	return row
}

// GetRow retrieves a specific row from this Partition
func (p *partitionImpl) GetRow(rowNum int) tabular.Row {
	return &rowImpl{
		partID:            p.id,
		meta:              p.getRowMeta(rowNum),
		data:              p.getRowData(rowNum),
		varData:           p.getVarRowData(rowNum),
		serializedVarData: p.getSerializedVarRowData(rowNum),
		schema:            p.schema,
	}
}

// getRowData retrieves the packed data for a specific row
func (p *partitionImpl) getRowData(rowNum int) []byte {
	return p.rows[rowNum*p.schema.Size() : (rowNum+1)*p.schema.Size()]
}

// getRowMeta retrieves the nil metadata for a specific row
func (p *partitionImpl) getRowMeta(rowNum int) []byte {
	return p.rowMeta[rowNum*p.schema.NumColumns() : (rowNum+1)*p.schema.NumColumns()]
}

// getVarRowData retrieves the variable-length data for a specific row
func (p *partitionImpl) getVarRowData(rowNum int) map[string]interface{} {
	if p.varRowData[rowNum] == nil {
		p.varRowData[rowNum] = make(map[string]interface{})
	}
	return p.varRowData[rowNum]
}

// getSerializedVarRowData retrieves the serialized variable-length data for a specific row
func (p *partitionImpl) getSerializedVarRowData(rowNum int) map[string][]byte {
	if p.serializedVarRowData[rowNum] == nil {
		p.serializedVarRowData[rowNum] = make(map[string][]byte)
	}
	return p.serializedVarRowData[rowNum]
}
