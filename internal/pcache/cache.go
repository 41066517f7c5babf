// Package pcache buffers Partitions produced during plan execution,
// holding recently-used ones in memory and spilling the rest to disk
// in compressed form.
package pcache

import (
	"container/list"
	"io"
	"os"
	"path"
	"sync"

	"github.com/andreschprr/tabular"
	errors "github.com/andreschprr/tabular/errors"
	"github.com/andreschprr/tabular/logging"
)

// PartitionCompressor serializes and compresses Partition data to and
// from streams
type PartitionCompressor interface {
	Compress(w io.Writer, part tabular.Partition) error
	Decompress(r io.Reader, schema tabular.Schema) (tabular.Partition, error)
}

// PartitionCache is a cache for Partitions
type PartitionCache interface {
	Destroy()
	Add(key string, value tabular.Partition) error
	Get(key string) (value tabular.Partition, err error) // removes the partition from the cache and returns it, if present
	CurrentSize() int
	Keys() []string
}

// LRUConfig configures an LRU PartitionCache
type LRUConfig struct {
	Size       int // maximum number of Partitions held in memory
	DiskPath   string
	Compressor PartitionCompressor
	Schema     tabular.Schema
	Logger     *logging.Logger
}

// lru is an LRU cache for Partitions. The least-recently-added
// Partitions are spilled to DiskPath when the in-memory portion of the
// cache is full.
type lru struct {
	config     *LRUConfig
	lock       sync.Mutex
	pmap       map[string]*list.Element
	recentList *list.List // back is oldest, front is newest
	onDisk     map[string]bool
	order      []string
}

type cachedPartition struct {
	key   string
	value tabular.Partition
}

// NewLRU produces an LRU PartitionCache
func NewLRU(config *LRUConfig) PartitionCache {
	if config.Size < 1 {
		config.Size = 1
	}
	if len(config.DiskPath) == 0 {
		config.DiskPath = os.TempDir()
	}
	return &lru{
		config:     config,
		pmap:       make(map[string]*list.Element),
		recentList: list.New(),
		onDisk:     make(map[string]bool),
	}
}

// Destroy removes any Partition data this cache has spilled to disk
func (c *lru) Destroy() {
	c.lock.Lock()
	defer c.lock.Unlock()
	for key := range c.onDisk {
		err := os.Remove(c.diskPath(key))
		if err != nil && c.config.Logger != nil {
			c.config.Logger.Warnf("Unable to remove swapped partition file %s: %v", c.diskPath(key), err)
		}
	}
	c.onDisk = make(map[string]bool)
	c.pmap = make(map[string]*list.Element)
	c.recentList.Init()
	c.order = nil
}

// Add stores a Partition in the cache, spilling the least-recently-used
// Partition to disk if the in-memory portion is full
func (c *lru) Add(key string, value tabular.Partition) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.order = append(c.order, key)
	c.pmap[key] = c.recentList.PushFront(&cachedPartition{key: key, value: value})
	if c.recentList.Len() > c.config.Size {
		oldest := c.recentList.Back()
		c.recentList.Remove(oldest)
		cached := oldest.Value.(*cachedPartition)
		delete(c.pmap, cached.key)
		if err := c.evictToDisk(cached); err != nil {
			return err
		}
	}
	return nil
}

// Get removes the Partition from the cache and returns it, if present.
// Returns a MissingPartitionError otherwise.
func (c *lru) Get(key string) (value tabular.Partition, err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if ve, ok := c.pmap[key]; ok {
		delete(c.pmap, key)
		c.recentList.Remove(ve)
		return ve.Value.(*cachedPartition).value, nil
	}
	if c.onDisk[key] {
		delete(c.onDisk, key)
		return c.loadFromDisk(key)
	}
	return nil, errors.MissingPartitionError{Key: key}
}

// CurrentSize returns the number of Partitions held by the cache,
// in memory or on disk
func (c *lru) CurrentSize() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.recentList.Len() + len(c.onDisk)
}

// Keys returns the keys of all Partitions ever added to this cache, in
// insertion order
func (c *lru) Keys() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

func (c *lru) diskPath(key string) string {
	return path.Join(c.config.DiskPath, key)
}

func (c *lru) evictToDisk(cached *cachedPartition) error {
	f, err := os.Create(c.diskPath(cached.key))
	if err != nil {
		return err
	}
	if err := c.config.Compressor.Compress(f, cached.value); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if c.config.Logger != nil {
		c.config.Logger.Tracef("Swapped partition %s to disk", cached.key)
	}
	c.onDisk[cached.key] = true
	return nil
}

func (c *lru) loadFromDisk(key string) (tabular.Partition, error) {
	tempFilePath := c.diskPath(key)
	f, err := os.Open(tempFilePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		f.Close()
		err := os.Remove(tempFilePath)
		if err != nil && c.config.Logger != nil {
			c.config.Logger.Warnf("Unable to remove swapped partition file %s: %v", tempFilePath, err)
		}
	}()
	return c.config.Compressor.Decompress(f, c.config.Schema)
}
