package tabular

import "fmt"

// VarStringColumnType is a column type which stores strings of arbitrary length
type VarStringColumnType struct{}

// Size of a VarStringColumnType value is always 0
func (b *VarStringColumnType) Size() int {
	return 0
}

// ToString produces a string representation of a VarStringColumnType value
func (b *VarStringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("\"%s\"", v.(string))
}

// Serialize serializes a VarStringColumnType value to bytes
func (b *VarStringColumnType) Serialize(v interface{}) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("value %#v is not a string", v)
	}
	return []byte(s), nil
}

// Deserialize produces a VarStringColumnType value from bytes
func (b *VarStringColumnType) Deserialize(ser []byte) (interface{}, error) {
	return string(ser), nil
}

// VarBytesColumnType is a column type which stores byte arrays of arbitrary length
type VarBytesColumnType struct{}

// Size of a VarBytesColumnType value is always 0
func (b *VarBytesColumnType) Size() int {
	return 0
}

// ToString produces a string representation of a VarBytesColumnType value
func (b *VarBytesColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%x", v.([]byte))
}

// Serialize serializes a VarBytesColumnType value to bytes
func (b *VarBytesColumnType) Serialize(v interface{}) ([]byte, error) {
	bs, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("value %#v is not a byte array", v)
	}
	return bs, nil
}

// Deserialize produces a VarBytesColumnType value from bytes
func (b *VarBytesColumnType) Deserialize(ser []byte) (interface{}, error) {
	out := make([]byte, len(ser))
	copy(out, ser)
	return out, nil
}
