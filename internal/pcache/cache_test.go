package pcache

import (
	"os"
	"testing"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/internal/partition"
	"github.com/andreschprr/tabular/schema"
	"github.com/stretchr/testify/require"
)

func createCacheTestSchema() tabular.Schema {
	schema := schema.CreateSchema()
	schema.CreateColumn("key", &tabular.Uint32ColumnType{})
	schema.CreateColumn("val", &tabular.Uint32ColumnType{})
	return schema
}

func TestCacheSpillsToDisk(t *testing.T) {
	cacheSchema := createCacheTestSchema()
	cache := NewLRU(&LRUConfig{
		Size:       4,
		DiskPath:   t.TempDir(),
		Compressor: partition.NewLZ4PartitionCompressor(),
		Schema:     cacheSchema,
	})
	defer cache.Destroy()

	iCache, ok := cache.(*lru)
	require.True(t, ok)

	keys := make([]string, 0)
	vals := make(map[string]uint32)
	for i := 0; i < 10; i++ {
		part := partition.CreateBuildablePartition(8, cacheSchema)
		row, err := part.AppendEmptyRowData(partition.CreateTempRow())
		require.Nil(t, err)
		require.Nil(t, row.SetUint32("key", uint32(i)))
		require.Nil(t, row.SetUint32("val", uint32(i*100)))
		require.Nil(t, cache.Add(part.ID(), part))
		keys = append(keys, part.ID())
		vals[part.ID()] = uint32(i * 100)
	}
	// only the most recent partitions stay in memory
	require.Equal(t, 4, len(iCache.pmap))
	require.Equal(t, 6, len(iCache.onDisk))
	require.Equal(t, 10, cache.CurrentSize())
	require.Equal(t, keys, cache.Keys())

	// partitions come back intact regardless of where they live
	for _, key := range keys {
		part, err := cache.Get(key)
		require.Nil(t, err)
		require.Equal(t, 1, part.GetNumRows())
		val, err := part.GetRow(0).GetUint32("val")
		require.Nil(t, err)
		require.Equal(t, vals[key], val)
	}
	require.Equal(t, 0, cache.CurrentSize())

	// a second fetch should fail
	_, err := cache.Get(keys[0])
	require.NotNil(t, err)
}

func TestCacheDestroyCleansDisk(t *testing.T) {
	cacheSchema := createCacheTestSchema()
	diskPath := t.TempDir()
	cache := NewLRU(&LRUConfig{
		Size:       1,
		DiskPath:   diskPath,
		Compressor: partition.NewLZ4PartitionCompressor(),
		Schema:     cacheSchema,
	})
	for i := 0; i < 5; i++ {
		part := partition.CreateBuildablePartition(8, cacheSchema)
		require.Nil(t, cache.Add(part.ID(), part))
	}
	entries, err := os.ReadDir(diskPath)
	require.Nil(t, err)
	require.Equal(t, 4, len(entries))

	cache.Destroy()
	entries, err = os.ReadDir(diskPath)
	require.Nil(t, err)
	require.Equal(t, 0, len(entries))
}
