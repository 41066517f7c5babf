package partition

import (
	"io"

	"github.com/andreschprr/tabular"
	"github.com/pierrec/lz4/v4"
)

// LZ4PartitionCompressor compresses serialized partition data with lz4
// on its way to and from disk
type LZ4PartitionCompressor struct{}

// NewLZ4PartitionCompressor instantiates a new LZ4PartitionCompressor
func NewLZ4PartitionCompressor() *LZ4PartitionCompressor {
	return &LZ4PartitionCompressor{}
}

// Compress serializes and compresses partition data to a write stream
func (lz4pc *LZ4PartitionCompressor) Compress(w io.Writer, part tabular.Partition) error {
	data, err := ToBytes(part)
	if err != nil {
		return err
	}
	compressor := lz4.NewWriter(w)
	if _, err := compressor.Write(data); err != nil {
		return err
	}
	return compressor.Close()
}

// Decompress decompresses and deserializes partition data from a read stream
func (lz4pc *LZ4PartitionCompressor) Decompress(r io.Reader, schema tabular.Schema) (tabular.Partition, error) {
	decompressor := lz4.NewReader(r)
	data, err := io.ReadAll(decompressor)
	if err != nil {
		return nil, err
	}
	return FromBytes(data, schema)
}
