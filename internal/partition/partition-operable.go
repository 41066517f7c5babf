package partition

import (
	"github.com/andreschprr/tabular"
	"github.com/hashicorp/go-multierror"
)

// CreateOperablePartition creates a new Partition containing an empty byte array and a schema
func CreateOperablePartition(maxRows int, schema tabular.Schema) tabular.OperablePartition {
	return createPartitionImpl(maxRows, schema)
}

// UpdateCurrentSchema updates the Schema of this Partition. The new
// Schema must share the layout of the existing one (renames, removal
// marks); layout changes go through Repack instead.
func (p *partitionImpl) UpdateCurrentSchema(currentSchema tabular.Schema) {
	p.schema = currentSchema
}

// RenameColumnData moves variable-length values stored under oldName to
// newName. Fixed-width values are located by Schema offset, so only the
// per-row var data maps track column names.
func (p *partitionImpl) RenameColumnData(oldName string, newName string) {
	for i := 0; i < p.numRows; i++ {
		if m := p.varRowData[i]; m != nil {
			if v, ok := m[oldName]; ok {
				m[newName] = v
				delete(m, oldName)
			}
		}
		if m := p.serializedVarRowData[i]; m != nil {
			if v, ok := m[oldName]; ok {
				m[newName] = v
				delete(m, oldName)
			}
		}
	}
}

// MapRows runs a MapOperation on each row in this Partition,
// manipulating them in-place. Will fall back to creating a fresh
// partition, dropping erroring rows, if row errors occur.
func (p *partitionImpl) MapRows(fn tabular.MapOperation) (tabular.OperablePartition, error) {
	inPlace := true // start by attempting to manipulate rows in-place
	result := p
	var multierr *multierror.Error
	tempRow := &rowImpl{}
	for i := 0; i < p.GetNumRows(); i++ {
		err := fn(p.getRow(tempRow, i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
			// immediately switch into creating a new Partition if we haven't already
			if inPlace {
				inPlace = false
				result = createPartitionImpl(p.maxRows, p.schema)
				// append all rows we've successfully processed so far (up to this one)
				for j := 0; j < i; j++ {
					err := result.AppendRowData(p.getRowData(j), p.getRowMeta(j), p.getVarRowData(j), p.getSerializedVarRowData(j))
					if err != nil {
						return nil, err
					}
				}
			}
		} else if !inPlace { // if we're not in in-place mode, append successful rows to the new Partition
			err := result.AppendRowData(p.getRowData(i), p.getRowMeta(i), p.getVarRowData(i), p.getSerializedVarRowData(i))
			if err != nil {
				return nil, err
			}
		}
	}
	return result, multierr.ErrorOrNil()
}

// FilterRows filters the Rows in the current Partition, creating a new one
func (p *partitionImpl) FilterRows(fn tabular.FilterOperation) (tabular.OperablePartition, error) {
	var multierr *multierror.Error
	result := createPartitionImpl(p.maxRows, p.schema)
	tempRow := &rowImpl{}
	for i := 0; i < p.GetNumRows(); i++ {
		shouldKeep, err := fn(p.getRow(tempRow, i))
		if err != nil {
			multierr = multierror.Append(multierr, err)
		}
		if shouldKeep {
			err := result.AppendRowData(p.getRowData(i), p.getRowMeta(i), p.getVarRowData(i), p.getSerializedVarRowData(i))
			// the result cannot fill up, since it holds at most the
			// same number of rows as the current partition
			if err != nil {
				return nil, err
			}
		}
	}
	return result, multierr.ErrorOrNil()
}

// Repack repacks a Partition according to a new Schema
func (p *partitionImpl) Repack(newSchema tabular.Schema) (tabular.OperablePartition, error) {
	part := createPartitionImpl(p.maxRows, newSchema)
	for i := 0; i < p.GetNumRows(); i++ {
		newRow, err := p.GetRow(i).Repack(newSchema)
		if err != nil {
			return nil, err
		}
		iNewRow := newRow.(*rowImpl)
		err = part.AppendRowData(iNewRow.data, iNewRow.meta, iNewRow.varData, iNewRow.serializedVarData)
		if err != nil {
			return nil, err
		}
	}
	return part, nil
}

// ForEachRow iterates over Rows in this Partition, erroring immediately
// if the callback errors
func (p *partitionImpl) ForEachRow(fn tabular.MapOperation) error {
	row := &rowImpl{}
	for i := 0; i < p.GetNumRows(); i++ {
		err := fn(p.getRow(row, i))
		if err != nil {
			return err
		}
	}
	return nil
}
