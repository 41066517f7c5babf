package partition

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/andreschprr/tabular"
	errors "github.com/andreschprr/tabular/errors"
)

const (
	colValueIsNilFlag = 1 << iota
)

// rowImpl is a representation of a single row of columnar data (a
// slice of a Partition), along with a reference to the Schema for that
// row.
type rowImpl struct {
	partID            string
	meta              []byte
	data              []byte // a slice of a partition array
	varData           map[string]interface{}
	serializedVarData map[string][]byte
	schema            tabular.Schema
}

// CreateRow builds a new row from individual internal components
func CreateRow(partID string, meta []byte, data []byte, varData map[string]interface{}, serializedVarData map[string][]byte, schema tabular.Schema) tabular.Row {
	return &rowImpl{partID: partID, meta: meta, data: data, varData: varData, serializedVarData: serializedVarData, schema: schema}
}

// CreateTempRow builds an empty row struct which cannot be used until
// passed to a function which populates it with data
func CreateTempRow() tabular.Row {
	return &rowImpl{}
}

// Schema returns a read-only copy of the schema for a row
func (r *rowImpl) Schema() tabular.Schema {
	return r.schema.Clone()
}

// ToString returns a string representation of this row
func (r *rowImpl) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "{")
	r.schema.ForEachColumn(func(name string, col tabular.Column) error {
		var val string
		if r.IsNil(name) {
			val = "nil"
		} else {
			v, err := r.Get(name)
			if err != nil {
				return err
			}
			val = col.Type().ToString(v)
		}
		fmt.Fprintf(&res, "\"%s\": %s,", name, val)
		return nil
	})
	fmt.Fprint(&res, "}")
	return res.String()
}

// IsNil returns true iff the given column value is nil in this row.
// If an error occurs, this function will return false.
func (r *rowImpl) IsNil(colName string) bool {
	offset, e := r.schema.GetOffset(colName)
	if e != nil {
		return false
	}
	if !tabular.IsVariableLength(offset.Type()) {
		return r.meta[offset.Index()]&colValueIsNilFlag > 0
	}
	if _, ok := r.serializedVarData[colName]; ok {
		return false
	}
	v, ok := r.varData[colName]
	return !ok || v == nil
}

// SetNil sets the given column value to nil within this row
func (r *rowImpl) SetNil(colName string) error {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return err
	}
	if !tabular.IsVariableLength(offset.Type()) {
		r.meta[offset.Index()] |= colValueIsNilFlag
	} else {
		delete(r.varData, colName)
		delete(r.serializedVarData, colName)
	}
	return nil
}

// checkIsNil converts a nil column value into a NilValueError
func (r *rowImpl) checkIsNil(colName string) error {
	if r.IsNil(colName) {
		return errors.NilValueError{Name: colName}
	}
	return nil
}

// setNotNil clears the nil flag for a fixed-length column
func (r *rowImpl) setNotNil(offset tabular.Column) {
	if !tabular.IsVariableLength(offset.Type()) {
		r.meta[offset.Index()] = r.meta[offset.Index()] &^ colValueIsNilFlag
	}
}

// Get returns the value of any column as an interface{}, if it exists
func (r *rowImpl) Get(colName string) (col interface{}, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	}
	switch offset.Type().(type) {
	case *tabular.VarStringColumnType:
		return r.GetVarString(colName)
	case *tabular.VarBytesColumnType:
		return r.GetVarBytes(colName)
	case *tabular.BoolColumnType:
		return r.GetBool(colName)
	case *tabular.Uint8ColumnType:
		return r.GetUint8(colName)
	case *tabular.Uint16ColumnType:
		return r.GetUint16(colName)
	case *tabular.Uint32ColumnType:
		return r.GetUint32(colName)
	case *tabular.Uint64ColumnType:
		return r.GetUint64(colName)
	case *tabular.Int8ColumnType:
		return r.GetInt8(colName)
	case *tabular.Int16ColumnType:
		return r.GetInt16(colName)
	case *tabular.Int32ColumnType:
		return r.GetInt32(colName)
	case *tabular.Int64ColumnType:
		return r.GetInt64(colName)
	case *tabular.Float32ColumnType:
		return r.GetFloat32(colName)
	case *tabular.Float64ColumnType:
		return r.GetFloat64(colName)
	case *tabular.TimeColumnType:
		return r.GetTime(colName)
	case *tabular.StringColumnType:
		return r.GetString(colName)
	default:
		if tabular.IsVariableLength(offset.Type()) {
			return r.getVarColumnData(colName)
		}
		return nil, fmt.Errorf("Cannot fetch value for unknown column type %T", offset.Type())
	}
}

// getBytes retrieves the raw bytes backing a fixed-width column
func (r *rowImpl) getBytes(colName string) (col []byte, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName)
	if err != nil {
		return
	}
	col = r.data[offset.Start() : offset.Start()+offset.Type().Size()]
	return
}

// GetBool retrieves a single bool from the column with the given name
func (r *rowImpl) GetBool(colName string) (col bool, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName)
	if err != nil {
		return
	}
	col = r.data[offset.Start()] > 0
	return
}

// GetUint8 retrieves a single uint8 from the column with the given name
func (r *rowImpl) GetUint8(colName string) (col uint8, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName)
	if err != nil {
		return
	}
	col = r.data[offset.Start()]
	return
}

// GetUint16 retrieves a single uint16 from the column with the given name
func (r *rowImpl) GetUint16(colName string) (col uint16, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName)
	if err != nil {
		return
	}
	col = binary.LittleEndian.Uint16(r.data[offset.Start():])
	return
}

// GetUint32 retrieves a single uint32 from the column with the given name
func (r *rowImpl) GetUint32(colName string) (col uint32, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName)
	if err != nil {
		return
	}
	col = binary.LittleEndian.Uint32(r.data[offset.Start():])
	return
}

// GetUint64 retrieves a single uint64 from the column with the given name
func (r *rowImpl) GetUint64(colName string) (col uint64, err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	err = r.checkIsNil(colName)
	if err != nil {
		return
	}
	col = binary.LittleEndian.Uint64(r.data[offset.Start():])
	return
}

// GetInt8 retrieves a single int8 from the column with the given name
func (r *rowImpl) GetInt8(colName string) (col int8, err error) {
	result, err := r.GetUint8(colName)
	if err != nil {
		return
	}
	col = int8(result)
	return
}

// GetInt16 retrieves a single int16 from the column with the given name
func (r *rowImpl) GetInt16(colName string) (col int16, err error) {
	result, err := r.GetUint16(colName)
	if err != nil {
		return
	}
	col = int16(result)
	return
}

// GetInt32 retrieves a single int32 from the column with the given name
func (r *rowImpl) GetInt32(colName string) (col int32, err error) {
	result, err := r.GetUint32(colName)
	if err != nil {
		return
	}
	col = int32(result)
	return
}

// GetInt64 retrieves a single int64 from the column with the given name
func (r *rowImpl) GetInt64(colName string) (col int64, err error) {
	result, err := r.GetUint64(colName)
	if err != nil {
		return
	}
	col = int64(result)
	return
}

// GetFloat32 retrieves a single float32 from the column with the given name
func (r *rowImpl) GetFloat32(colName string) (col float32, err error) {
	bits, err := r.GetUint32(colName)
	if err != nil {
		return
	}
	col = math.Float32frombits(bits)
	return
}

// GetFloat64 retrieves a single float64 from the column with the given name
func (r *rowImpl) GetFloat64(colName string) (col float64, err error) {
	bits, err := r.GetUint64(colName)
	if err != nil {
		return
	}
	col = math.Float64frombits(bits)
	return
}

// GetTime retrieves a single Time from the column with the given name
func (r *rowImpl) GetTime(colName string) (col time.Time, err error) {
	bits, err := r.getBytes(colName)
	if err != nil {
		return
	}
	err = col.UnmarshalBinary(bits)
	return
}

// GetString retrieves a single fixed-length string from the column with
// the given name. Trailing padding is stripped.
func (r *rowImpl) GetString(colName string) (string, error) {
	bits, err := r.getBytes(colName)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(bits), "\x00"), nil
}

// getVarColumnData retrieves variable-length data from the column with
// the given name, deserializing it first if necessary
func (r *rowImpl) getVarColumnData(colName string) (interface{}, error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return nil, err
	}
	vcol, ok := offset.Type().(tabular.VarColumnType)
	if !ok {
		return nil, fmt.Errorf("Column %s is not a VarColumnType", colName)
	}
	// deserialize serialized data if present
	if ser, ok := r.serializedVarData[colName]; ok {
		deser, err := vcol.Deserialize(ser)
		if err != nil {
			return nil, fmt.Errorf("Error deserializing variable-length column data for column %s in partition %s: %w", colName, r.partID, err)
		}
		r.varData[colName] = deser
		delete(r.serializedVarData, colName)
		return deser, nil
	}
	err = r.checkIsNil(colName)
	if err != nil {
		return nil, err
	}
	return r.varData[colName], nil
}

// GetVarBytes retrieves a variable-length byte array from the column with the given name
func (r *rowImpl) GetVarBytes(colName string) (col []byte, err error) {
	val, err := r.getVarColumnData(colName)
	if err != nil {
		return nil, err
	}
	return val.([]byte), nil
}

// GetVarString retrieves a variable-length string from the column with the given name
func (r *rowImpl) GetVarString(colName string) (col string, err error) {
	val, err := r.getVarColumnData(colName)
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

// setBytes overwrites the raw bytes backing a fixed-width column
func (r *rowImpl) setBytes(colName string, value []byte) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	if len(value) > offset.Type().Size() {
		return fmt.Errorf("Value is wider than column: %d/%d", len(value), offset.Type().Size())
	}
	r.setNotNil(offset)
	dst := r.data[offset.Start() : offset.Start()+offset.Type().Size()]
	n := copy(dst, value)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return
}

// SetBool modifies a single bool from the column with the given name
func (r *rowImpl) SetBool(colName string, value bool) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	var newVal byte
	if value {
		newVal = 1
	}
	r.setNotNil(offset)
	r.data[offset.Start()] = newVal
	return
}

// SetUint8 modifies a single uint8 from the column with the given name
func (r *rowImpl) SetUint8(colName string, value uint8) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	r.setNotNil(offset)
	r.data[offset.Start()] = value
	return
}

// SetUint16 modifies a single uint16 from the column with the given name
func (r *rowImpl) SetUint16(colName string, value uint16) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	r.setNotNil(offset)
	binary.LittleEndian.PutUint16(r.data[offset.Start():offset.Start()+offset.Type().Size()], value)
	return
}

// SetUint32 modifies a single uint32 from the column with the given name
func (r *rowImpl) SetUint32(colName string, value uint32) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	r.setNotNil(offset)
	binary.LittleEndian.PutUint32(r.data[offset.Start():offset.Start()+offset.Type().Size()], value)
	return
}

// SetUint64 modifies a single uint64 from the column with the given name
func (r *rowImpl) SetUint64(colName string, value uint64) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	r.setNotNil(offset)
	binary.LittleEndian.PutUint64(r.data[offset.Start():offset.Start()+offset.Type().Size()], value)
	return
}

// SetInt8 modifies a single int8 from the column with the given name
func (r *rowImpl) SetInt8(colName string, value int8) (err error) {
	return r.SetUint8(colName, uint8(value))
}

// SetInt16 modifies a single int16 from the column with the given name
func (r *rowImpl) SetInt16(colName string, value int16) (err error) {
	return r.SetUint16(colName, uint16(value))
}

// SetInt32 modifies a single int32 from the column with the given name
func (r *rowImpl) SetInt32(colName string, value int32) (err error) {
	return r.SetUint32(colName, uint32(value))
}

// SetInt64 modifies a single int64 from the column with the given name
func (r *rowImpl) SetInt64(colName string, value int64) (err error) {
	return r.SetUint64(colName, uint64(value))
}

// SetFloat32 modifies a single float32 from the column with the given name
func (r *rowImpl) SetFloat32(colName string, value float32) (err error) {
	return r.SetUint32(colName, math.Float32bits(value))
}

// SetFloat64 modifies a single float64 from the column with the given name
func (r *rowImpl) SetFloat64(colName string, value float64) (err error) {
	return r.SetUint64(colName, math.Float64bits(value))
}

// SetTime modifies a single Time from the column with the given name
func (r *rowImpl) SetTime(colName string, value time.Time) (err error) {
	bits, err := value.MarshalBinary()
	if err != nil {
		return
	}
	return r.setBytes(colName, bits)
}

// SetString modifies a single fixed-length string from the column with the given name
func (r *rowImpl) SetString(colName string, value string) (err error) {
	return r.setBytes(colName, []byte(value))
}

// setVarColumnData stores variable-length data in this Row
func (r *rowImpl) setVarColumnData(colName string, value interface{}) (err error) {
	offset, err := r.schema.GetOffset(colName)
	if err != nil {
		return
	}
	if !tabular.IsVariableLength(offset.Type()) {
		return fmt.Errorf("Column %s is not a VarColumnType", colName)
	}
	delete(r.serializedVarData, colName)
	r.varData[colName] = value
	return nil
}

// SetVarBytes modifies a variable-length byte array from the column with the given name
func (r *rowImpl) SetVarBytes(colName string, value []byte) (err error) {
	return r.setVarColumnData(colName, value)
}

// SetVarString modifies a variable-length string from the column with the given name
func (r *rowImpl) SetVarString(colName string, value string) (err error) {
	return r.setVarColumnData(colName, value)
}

// Repack resizes a row to a new Schema
func (r *rowImpl) Repack(newSchema tabular.Schema) (tabular.Row, error) {
	meta := make([]byte, newSchema.NumColumns())
	buff := make([]byte, newSchema.Size())
	varData := make(map[string]interface{})
	serializedVarData := make(map[string][]byte)
	err := newSchema.ForEachColumn(func(name string, col tabular.Column) error {
		// if we're widening instead of shrinking, there might be new
		// columns, which start out nil
		if !r.schema.HasColumn(name) {
			if !tabular.IsVariableLength(col.Type()) {
				meta[col.Index()] |= colValueIsNilFlag
			}
			return nil
		}
		// otherwise, copy old values
		oldCol, err := r.schema.GetOffset(name)
		if err != nil {
			return err
		}
		if !tabular.IsVariableLength(oldCol.Type()) {
			copy(buff[col.Start():col.Start()+col.Type().Size()], r.data[oldCol.Start():oldCol.Start()+oldCol.Type().Size()])
		} else {
			if v, ok := r.varData[name]; ok {
				varData[name] = v
			}
			if ser, ok := r.serializedVarData[name]; ok {
				serializedVarData[name] = ser
			}
		}
		meta[col.Index()] = r.meta[oldCol.Index()]
		return nil
	})
	if err != nil {
		return nil, err
	}
	// no partID, because this new row belongs to no partition yet
	return &rowImpl{"", meta, buff, varData, serializedVarData, newSchema}, nil
}
