package tabular

import (
	"fmt"
	"time"
)

// ColumnType defines a supported fixed-width column type.
// Variable-length types additionally implement VarColumnType.
type ColumnType interface {
	Size() int                     // size in bytes of a value of this type
	ToString(v interface{}) string // string representation of a value of this type
}

// VarColumnType defines a supported variable-length column type.
// Size() for VarColumnTypes always returns 0.
type VarColumnType interface {
	ColumnType
	Serialize(v interface{}) ([]byte, error) // how values of this type are serialized
	Deserialize([]byte) (interface{}, error) // how values of this type are deserialized
}

// IsVariableLength returns true iff colType is a VarColumnType
func IsVariableLength(colType ColumnType) (isVariableLength bool) {
	_, isVariableLength = colType.(VarColumnType)
	return
}

// BoolColumnType is a column type which stores a boolean value
type BoolColumnType struct{}

// Size in bytes of a BoolColumnType value
func (b *BoolColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a BoolColumnType value
func (b *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}

// Uint8ColumnType is a column type which stores a uint8 value
type Uint8ColumnType struct{}

// Size in bytes of a Uint8ColumnType value
func (b *Uint8ColumnType) Size() int {
	return 1
}

// ToString produces a string representation of a Uint8ColumnType value
func (b *Uint8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint8))
}

// Uint16ColumnType is a column type which stores a uint16 value
type Uint16ColumnType struct{}

// Size in bytes of a Uint16ColumnType value
func (b *Uint16ColumnType) Size() int {
	return 2
}

// ToString produces a string representation of a Uint16ColumnType value
func (b *Uint16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint16))
}

// Uint32ColumnType is a column type which stores a uint32 value
type Uint32ColumnType struct{}

// Size in bytes of a Uint32ColumnType value
func (b *Uint32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a Uint32ColumnType value
func (b *Uint32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint32))
}

// Uint64ColumnType is a column type which stores a uint64 value
type Uint64ColumnType struct{}

// Size in bytes of a Uint64ColumnType value
func (b *Uint64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a Uint64ColumnType value
func (b *Uint64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint64))
}

// Int8ColumnType is a column type which stores an int8 value
type Int8ColumnType struct{}

// Size in bytes of an Int8ColumnType value
func (b *Int8ColumnType) Size() int {
	return 1
}

// ToString produces a string representation of an Int8ColumnType value
func (b *Int8ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int8))
}

// Int16ColumnType is a column type which stores an int16 value
type Int16ColumnType struct{}

// Size in bytes of an Int16ColumnType value
func (b *Int16ColumnType) Size() int {
	return 2
}

// ToString produces a string representation of an Int16ColumnType value
func (b *Int16ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int16))
}

// Int32ColumnType is a column type which stores an int32 value
type Int32ColumnType struct{}

// Size in bytes of an Int32ColumnType value
func (b *Int32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of an Int32ColumnType value
func (b *Int32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int32))
}

// Int64ColumnType is a column type which stores an int64 value
type Int64ColumnType struct{}

// Size in bytes of an Int64ColumnType value
func (b *Int64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of an Int64ColumnType value
func (b *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Float32ColumnType is a column type which stores a float32 value
type Float32ColumnType struct{}

// Size in bytes of a Float32ColumnType value
func (b *Float32ColumnType) Size() int {
	return 4
}

// ToString produces a string representation of a Float32ColumnType value
func (b *Float32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float32))
}

// Float64ColumnType is a column type which stores a float64 value
type Float64ColumnType struct{}

// Size in bytes of a Float64ColumnType value
func (b *Float64ColumnType) Size() int {
	return 8
}

// ToString produces a string representation of a Float64ColumnType value
func (b *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float64))
}

// TimeColumnType is a column type which stores a time.Time value,
// parsed and formatted according to Format.
type TimeColumnType struct {
	Format string
}

// Size in bytes of a TimeColumnType value
func (b *TimeColumnType) Size() int {
	return 15
}

// ToString produces a string representation of a TimeColumnType value
func (b *TimeColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(time.Time).String())
}

// StringColumnType is a column type which stores fixed-length strings.
// Useful for hashes, identifiers and other values of a known width.
type StringColumnType struct {
	Length int
}

// Size in bytes of a StringColumnType value
func (b *StringColumnType) Size() int {
	return b.Length
}

// ToString produces a string representation of a StringColumnType value
func (b *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}
