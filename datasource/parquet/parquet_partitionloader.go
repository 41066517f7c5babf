package parquet

import (
	"fmt"
	"log"
	"os"

	"github.com/andreschprr/tabular"
	pqgo "github.com/parquet-go/parquet-go"
)

// PartitionLoader is capable of loading partitions of data from a
// Parquet file
type PartitionLoader struct {
	path   string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Parquet loader filename: %s", pl.path)
}

// Load opens the Parquet file and produces a PartitionIterator over its
// rows. The parser argument is ignored, as Parquet files are
// self-describing.
func (pl *PartitionLoader) Load(parser tabular.DataSourceParser) (tabular.PartitionIterator, error) {
	f, err := os.Open(pl.path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	pqFile, err := pqgo.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open parquet file %s: %w", pl.path, err)
	}
	reader := pqgo.NewReader(pqFile)
	iterator := &parquetFilePartitionIterator{
		source:  pl.source,
		reader:  reader,
		hasNext: true,
		schema:  pl.source.schema,
		maxRows: pl.source.conf.PartitionSize,
	}
	iterator.OnEnd(func() {
		if err := reader.Close(); err != nil {
			log.Printf("WARNING: couldn't close parquet reader %v", err)
		}
		if err := f.Close(); err != nil {
			log.Printf("WARNING: couldn't close file %v", err)
		}
	})
	return iterator, nil
}

// PartitionMap is an iterator producing a sequence of PartitionLoaders
type PartitionMap struct {
	files  []string
	source *DataSource
}

// HasNext returns true iff there is another PartitionLoader remaining
func (pm *PartitionMap) HasNext() bool {
	return len(pm.files) > 0
}

// Next returns the next PartitionLoader for a file
func (pm *PartitionMap) Next() tabular.PartitionLoader {
	result := &PartitionLoader{path: pm.files[0], source: pm.source}
	pm.files = pm.files[1:]
	return result
}
