package partition

import (
	"bytes"
	"encoding/binary"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/andreschprr/tabular"
)

// ToBytes serializes a Partition into a self-describing binary blob:
// packed row data, nil metadata and serialized variable-length values,
// terminated by an xxhash64 checksum of the payload.
func ToBytes(part tabular.Partition) ([]byte, error) {
	p, ok := part.(*partitionImpl)
	if !ok {
		return nil, fmt.Errorf("Partition %s was not produced by this engine", part.ID())
	}
	var buff bytes.Buffer
	rowWidth := p.schema.Size()
	numCols := p.schema.NumColumns()
	writeUint32 := func(v uint32) {
		var scratch [4]byte
		binary.LittleEndian.PutUint32(scratch[:], v)
		buff.Write(scratch[:])
	}
	writeBytes := func(b []byte) {
		writeUint32(uint32(len(b)))
		buff.Write(b)
	}
	writeBytes([]byte(p.id))
	writeUint32(uint32(p.maxRows))
	writeUint32(uint32(p.numRows))
	writeUint32(uint32(rowWidth))
	writeUint32(uint32(numCols))
	buff.Write(p.rows[:p.numRows*rowWidth])
	buff.Write(p.rowMeta[:p.numRows*numCols])
	// variable-length data, serialized via each column's type
	for i := 0; i < p.numRows; i++ {
		entries := make(map[string][]byte)
		for name, ser := range p.serializedVarRowData[i] {
			entries[name] = ser
		}
		for name, v := range p.varRowData[i] {
			if v == nil {
				continue
			}
			offset, err := p.schema.GetOffset(name)
			if err != nil {
				return nil, err
			}
			vcol, ok := offset.Type().(tabular.VarColumnType)
			if !ok {
				return nil, fmt.Errorf("Column %s is not a VarColumnType", name)
			}
			ser, err := vcol.Serialize(v)
			if err != nil {
				return nil, err
			}
			entries[name] = ser
		}
		writeUint32(uint32(len(entries)))
		for name, ser := range entries {
			writeBytes([]byte(name))
			writeBytes(ser)
		}
	}
	// checksum guards spilled partitions against torn or stale reads
	var sum [8]byte
	binary.LittleEndian.PutUint64(sum[:], xxhash.Sum64(buff.Bytes()))
	buff.Write(sum[:])
	return buff.Bytes(), nil
}

// FromBytes deserializes a Partition from a binary blob produced by
// ToBytes, validating its checksum. Variable-length values are
// retained in serialized form and deserialized lazily on access.
func FromBytes(data []byte, schema tabular.Schema) (tabular.Partition, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("Partition data is truncated")
	}
	payload, sum := data[:len(data)-8], binary.LittleEndian.Uint64(data[len(data)-8:])
	if xxhash.Sum64(payload) != sum {
		return nil, fmt.Errorf("Partition data failed checksum validation")
	}
	pos := 0
	readUint32 := func() (uint32, error) {
		if pos+4 > len(payload) {
			return 0, fmt.Errorf("Partition data is truncated")
		}
		v := binary.LittleEndian.Uint32(payload[pos:])
		pos += 4
		return v, nil
	}
	readBytes := func() ([]byte, error) {
		n, err := readUint32()
		if err != nil {
			return nil, err
		}
		if pos+int(n) > len(payload) {
			return nil, fmt.Errorf("Partition data is truncated")
		}
		b := payload[pos : pos+int(n)]
		pos += int(n)
		return b, nil
	}
	id, err := readBytes()
	if err != nil {
		return nil, err
	}
	maxRows, err := readUint32()
	if err != nil {
		return nil, err
	}
	numRows, err := readUint32()
	if err != nil {
		return nil, err
	}
	rowWidth, err := readUint32()
	if err != nil {
		return nil, err
	}
	numCols, err := readUint32()
	if err != nil {
		return nil, err
	}
	if int(rowWidth) != schema.Size() || int(numCols) != schema.NumColumns() {
		return nil, fmt.Errorf("Partition data does not match Schema")
	}
	p := createPartitionImpl(int(maxRows), schema)
	p.id = string(id)
	p.numRows = int(numRows)
	if pos+p.numRows*int(rowWidth) > len(payload) {
		return nil, fmt.Errorf("Partition data is truncated")
	}
	copy(p.rows, payload[pos:pos+p.numRows*int(rowWidth)])
	pos += p.numRows * int(rowWidth)
	if pos+p.numRows*int(numCols) > len(payload) {
		return nil, fmt.Errorf("Partition data is truncated")
	}
	copy(p.rowMeta, payload[pos:pos+p.numRows*int(numCols)])
	pos += p.numRows * int(numCols)
	for i := 0; i < p.numRows; i++ {
		numEntries, err := readUint32()
		if err != nil {
			return nil, err
		}
		entries := make(map[string][]byte, numEntries)
		for j := uint32(0); j < numEntries; j++ {
			name, err := readBytes()
			if err != nil {
				return nil, err
			}
			ser, err := readBytes()
			if err != nil {
				return nil, err
			}
			out := make([]byte, len(ser))
			copy(out, ser)
			entries[string(name)] = out
		}
		p.serializedVarRowData[i] = entries
	}
	return p, nil
}
