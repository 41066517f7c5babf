package dataframe

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/internal/partition"
	"github.com/andreschprr/tabular/internal/pcache"
	"github.com/andreschprr/tabular/logging"
	"golang.org/x/sync/errgroup"
)

// ExecutorConfig configures the local execution of a Plan
type ExecutorConfig struct {
	NumWorkers int              // number of goroutines concurrently processing PartitionLoaders
	TempDir    string           // location for partitions spilled to disk during collection
	CacheSize  int              // maximum number of collected partitions held in memory
	Logger     *logging.Logger
}

// Result is the outcome of executing a Plan which terminates in an
// action. Partitions is populated by collections, Accumulator by
// accumulations. Both are nil for write actions.
type Result struct {
	Partitions  []tabular.CollectedPartition
	Accumulator tabular.Accumulator
}

// tasks which collect Partitions implement this interface
type collectionTask interface {
	GetCollectionLimit() int
}

// tasks which accumulate results implement this interface
type accumulationTask interface {
	GetAccumulatorFactory() tabular.AccumulatorFactory
}

// tasks which persist Partitions implement this interface
type sinkTask interface {
	GetSink() tabular.DataSink
}

// ExecutePlan runs a Plan against its DataSource, spreading
// PartitionLoaders across a pool of worker goroutines
func ExecutePlan(ctx context.Context, plan *Plan, conf *ExecutorConfig) (*Result, error) {
	if plan.Size() == 0 {
		return nil, fmt.Errorf("Plan contains no operations")
	}
	finalTask := plan.frames[len(plan.frames)-1].task

	var cache pcache.PartitionCache
	var collectionLimit int64
	var collected int64
	if ct, ok := finalTask.(collectionTask); ok {
		collectionLimit = int64(ct.GetCollectionLimit())
		cache = pcache.NewLRU(&pcache.LRUConfig{
			Size:       conf.CacheSize,
			DiskPath:   conf.TempDir,
			Compressor: partition.NewLZ4PartitionCompressor(),
			Schema:     plan.finalSchema(),
			Logger:     conf.Logger,
		})
		defer cache.Destroy()
	}

	var accumulatorFactory tabular.AccumulatorFactory
	var rootAccumulator tabular.Accumulator
	var accumulatorLock sync.Mutex
	if at, ok := finalTask.(accumulationTask); ok {
		accumulatorFactory = at.GetAccumulatorFactory()
		rootAccumulator = accumulatorFactory()
	}

	var sink tabular.DataSink
	if st, ok := finalTask.(sinkTask); ok {
		sink = st.GetSink()
		if err := sink.Init(plan.finalSchema()); err != nil {
			return nil, err
		}
	}

	pmap, err := plan.Source().Analyze()
	if err != nil {
		return nil, fmt.Errorf("Unable to analyze DataSource: %w", err)
	}

	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(conf.NumWorkers)
	for pmap.HasNext() {
		loader := pmap.Next()
		wg.Go(func() error {
			if conf.Logger != nil {
				conf.Logger.Debugf("Loading partitions from %s", loader.ToString())
			}
			var workerAccumulator tabular.Accumulator
			if accumulatorFactory != nil {
				workerAccumulator = accumulatorFactory()
			}
			pi, err := loader.Load(plan.Parser())
			if err != nil {
				return err
			}
			for pi.HasNextPartition() {
				if err := ctx.Err(); err != nil {
					return err
				}
				part, unlockPartition, err := pi.NextPartition()
				if err != nil {
					return err
				}
				outgoing, err := runFrames(plan.frames, part)
				if err != nil {
					if unlockPartition != nil {
						unlockPartition()
					}
					return err
				}
				for _, opart := range outgoing {
					if cache != nil {
						if atomic.AddInt64(&collected, 1) > collectionLimit {
							// drop partitions beyond the collection limit
							continue
						}
						if err := cache.Add(opart.ID(), opart); err != nil {
							return err
						}
					}
					if workerAccumulator != nil {
						cpart, ok := opart.(tabular.CollectedPartition)
						if !ok {
							return fmt.Errorf("Partition %s does not support row iteration", opart.ID())
						}
						if err := cpart.ForEachRow(workerAccumulator.Accumulate); err != nil {
							return err
						}
					}
					if sink != nil {
						cpart, ok := opart.(tabular.CollectedPartition)
						if !ok {
							return fmt.Errorf("Partition %s does not support row iteration", opart.ID())
						}
						if err := sink.WritePartition(cpart); err != nil {
							return err
						}
					}
				}
				if unlockPartition != nil {
					unlockPartition()
				}
			}
			if workerAccumulator != nil {
				accumulatorLock.Lock()
				defer accumulatorLock.Unlock()
				return rootAccumulator.Merge(workerAccumulator)
			}
			return nil
		})
	}
	err = wg.Wait()
	if sink != nil {
		cerr := sink.Close()
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Accumulator: rootAccumulator}
	if cache != nil {
		for _, key := range cache.Keys() {
			part, err := cache.Get(key)
			if err != nil {
				return nil, err
			}
			cpart, ok := part.(tabular.CollectedPartition)
			if !ok {
				return nil, fmt.Errorf("Partition %s does not support row iteration", part.ID())
			}
			result.Partitions = append(result.Partitions, cpart)
		}
	}
	return result, nil
}

// runFrames runs each frame's Task over a loaded Partition in order,
// updating the Partition's Schema as it flows through the chain
func runFrames(frames []*dataFrameImpl, part tabular.Partition) ([]tabular.OperablePartition, error) {
	opart, ok := part.(tabular.OperablePartition)
	if !ok {
		return nil, fmt.Errorf("Partition %s does not support operations", part.ID())
	}
	incoming := []tabular.OperablePartition{opart}
	for _, frame := range frames {
		outgoing := make([]tabular.OperablePartition, 0, len(incoming))
		for _, p := range incoming {
			results, err := frame.task.RunWorker(p)
			if err != nil {
				return nil, err
			}
			for _, r := range results {
				r.UpdateCurrentSchema(frame.schema)
				outgoing = append(outgoing, r)
			}
		}
		incoming = outgoing
	}
	return incoming, nil
}
