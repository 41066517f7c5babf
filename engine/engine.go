// Package engine executes DataFrames locally, spreading partition
// loading and processing across a pool of worker goroutines.
package engine

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/internal/dataframe"
	"github.com/andreschprr/tabular/logging"
)

// Options configures a Session
type Options struct {
	NumWorkers int       // Number of goroutines concurrently processing data. Defaults to runtime.NumCPU().
	TempDir    string    // Location for partitions spilled to disk during collection. Defaults to os.TempDir().
	CacheSize  int       // Maximum number of collected Partitions held in memory. Defaults to 32.
	LogLevel   int       // Minimum level of log messages. Defaults to logging.WarnLevel.
	LogOutput  io.Writer // Destination for log messages. Defaults to os.Stderr.
}

// Result is the outcome of running a DataFrame which terminates in an
// action. Partitions is populated by collections, Accumulator by
// accumulations. Both are nil for write actions.
type Result struct {
	Partitions  []tabular.CollectedPartition
	Accumulator tabular.Accumulator
}

// Session executes DataFrames
type Session struct {
	opts   *Options
	logger *logging.Logger
}

// NewSession produces a Session from Options
func NewSession(opts *Options) *Session {
	if opts == nil {
		opts = &Options{}
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if len(opts.TempDir) == 0 {
		opts.TempDir = os.TempDir()
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = 32
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logging.WarnLevel
	}
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	return &Session{
		opts:   opts,
		logger: logging.New(opts.LogLevel, out),
	}
}

// Logger returns the Session's logger
func (s *Session) Logger() *logging.Logger {
	return s.logger
}

// Run executes a DataFrame, which must terminate in an action
// (Collect, Accumulate or Write)
func (s *Session) Run(ctx context.Context, df tabular.DataFrame) (*Result, error) {
	plan, err := dataframe.CreatePlan(df)
	if err != nil {
		return nil, err
	}
	s.logger.Debugf("Executing plan with %d operations across %d workers", plan.Size(), s.opts.NumWorkers)
	result, err := dataframe.ExecutePlan(ctx, plan, &dataframe.ExecutorConfig{
		NumWorkers: s.opts.NumWorkers,
		TempDir:    s.opts.TempDir,
		CacheSize:  s.opts.CacheSize,
		Logger:     s.logger,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Partitions: result.Partitions, Accumulator: result.Accumulator}, nil
}
