package engine

import (
	"context"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/accumulators"
	"github.com/andreschprr/tabular/datasink"
	dsvsink "github.com/andreschprr/tabular/datasink/dsv"
	pqsink "github.com/andreschprr/tabular/datasink/parquet"
	"github.com/andreschprr/tabular/datasource/file"
	pqsource "github.com/andreschprr/tabular/datasource/parquet"
	"github.com/andreschprr/tabular/datasource/parser/dsv"
	"github.com/andreschprr/tabular/operations/transform"
	"github.com/andreschprr/tabular/operations/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeTestCSV(t *testing.T, dir string, name string, lines ...string) {
	t.Helper()
	data := strings.Join(lines, "\n") + "\n"
	require.Nil(t, os.WriteFile(path.Join(dir, name), []byte(data), 0o644))
}

func createTestDataFrame(t *testing.T, partitionSize int) (tabular.DataFrame, string) {
	t.Helper()
	dir := t.TempDir()
	writeTestCSV(t, dir, "batch-0.csv",
		"id,name,score",
		"1,alice,10.5",
		"2,bob,2.5",
		"3,carol,7",
	)
	writeTestCSV(t, dir, "batch-1.csv",
		"id,name,score",
		"4,dan,0.5",
		"5,erin,4.5",
	)
	glob := path.Join(dir, "*.csv")
	conf := &dsv.ParserConf{PartitionSize: partitionSize, HeaderLines: 1}
	dataSchema, err := dsv.InferSchema(glob, conf, &dsv.InferConf{Header: true, InferTypes: true})
	require.Nil(t, err)
	return file.CreateDataFrame(glob, dsv.CreateParser(conf), dataSchema), dir
}

func countRows(result *Result) int {
	total := 0
	for _, part := range result.Partitions {
		total += part.GetNumRows()
	}
	return total
}

func TestSessionCollect(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	df, err := df.To(util.Collect(8))
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 2, TempDir: t.TempDir(), CacheSize: 2})
	result, err := session.Run(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, 5, countRows(result))

	seen := make(map[int64]bool)
	for _, part := range result.Partitions {
		err := part.ForEachRow(func(row tabular.Row) error {
			id, err := row.GetInt64("id")
			if err != nil {
				return err
			}
			seen[id] = true
			return nil
		})
		require.Nil(t, err)
	}
	require.Equal(t, 5, len(seen))
}

func TestSessionCollectLimit(t *testing.T) {
	df, _ := createTestDataFrame(t, 1)
	df, err := df.To(util.Collect(2))
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 1, TempDir: t.TempDir()})
	result, err := session.Run(context.Background(), df)
	require.Nil(t, err)
	// each partition holds a single row, and only 2 are collected
	require.Equal(t, 2, len(result.Partitions))
}

func TestSessionAccumulate(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	df, err := df.To(
		util.Accumulate(accumulators.Compose(accumulators.Counter, accumulators.Adder("score"))),
	)
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 2, TempDir: t.TempDir()})
	result, err := session.Run(context.Background(), df)
	require.Nil(t, err)
	require.Nil(t, result.Partitions)

	composed, ok := result.Accumulator.(*accumulators.Composed)
	require.True(t, ok)
	count, ok := composed.GetResults()[0].(*accumulators.Count)
	require.True(t, ok)
	require.Equal(t, uint64(5), count.GetCount())
	sum, ok := composed.GetResults()[1].(*accumulators.Sum)
	require.True(t, ok)
	require.Equal(t, 25.0, sum.GetSum())
}

func TestSessionTransforms(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	df, err := df.To(transform.RenameColumn("name", "label"))
	require.Nil(t, err)
	require.True(t, df.GetSchema().HasColumn("label"))
	require.False(t, df.GetSchema().HasColumn("name"))

	df, err = df.To(transform.Cast("id", &tabular.VarStringColumnType{})...)
	require.Nil(t, err)

	df, err = df.To(
		transform.Filter(func(row tabular.Row) (bool, error) {
			score, err := row.GetFloat64("score")
			if err != nil {
				return false, err
			}
			return score > 3, nil
		}),
		util.Collect(8),
	)
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 2, TempDir: t.TempDir()})
	result, err := session.Run(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, 3, countRows(result))
	for _, part := range result.Partitions {
		err := part.ForEachRow(func(row tabular.Row) error {
			// ids survived the cast to string
			id, err := row.GetVarString("id")
			if err != nil {
				return err
			}
			require.Contains(t, []string{"1", "3", "5"}, id)
			return nil
		})
		require.Nil(t, err)
	}
}

func TestSessionRenameKeepsValues(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	df, err := df.To(transform.RenameColumn("name", "label"), util.Collect(8))
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 2, TempDir: t.TempDir()})
	result, err := session.Run(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, 5, countRows(result))

	labels := make(map[string]bool)
	for _, part := range result.Partitions {
		err := part.ForEachRow(func(row tabular.Row) error {
			// the renamed column keeps its values
			require.False(t, row.IsNil("label"))
			label, err := row.GetVarString("label")
			if err != nil {
				return err
			}
			labels[label] = true
			return nil
		})
		require.Nil(t, err)
	}
	require.Equal(t, map[string]bool{
		"alice": true, "bob": true, "carol": true, "dan": true, "erin": true,
	}, labels)
}

func TestSessionCastFailureAbortsRun(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	df, err := df.To(transform.Cast("name", &tabular.Int64ColumnType{})...)
	require.Nil(t, err)
	df, err = df.To(util.Collect(8))
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 1, TempDir: t.TempDir()})
	_, err = session.Run(context.Background(), df)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "name")
}

func TestSessionRemoveColumn(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	df, err := df.To(transform.RemoveColumn("name"), transform.Repack(), util.Collect(8))
	require.Nil(t, err)
	require.Equal(t, 2, df.GetSchema().NumColumns())

	session := NewSession(&Options{NumWorkers: 2, TempDir: t.TempDir()})
	result, err := session.Run(context.Background(), df)
	require.Nil(t, err)
	require.Equal(t, 5, countRows(result))
	for _, part := range result.Partitions {
		if part.GetNumRows() == 0 {
			continue
		}
		_, err := part.GetRow(0).GetVarString("name")
		require.NotNil(t, err)
	}
}

func TestSessionRequiresAction(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	df, err := df.To(transform.RenameColumn("name", "label"))
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 1, TempDir: t.TempDir()})
	_, err = session.Run(context.Background(), df)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "must terminate in an action")
}

func TestSessionWriteParquetRoundTrip(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	outDir := path.Join(t.TempDir(), "out")
	df, err := df.To(util.Write(pqsink.CreateSink(&pqsink.SinkConf{
		Dir:  outDir,
		Mode: datasink.SaveModeErrorIfExists,
	})))
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 2, TempDir: t.TempDir()})
	result, err := session.Run(context.Background(), df)
	require.Nil(t, err)
	require.Nil(t, result.Partitions)
	require.Nil(t, result.Accumulator)

	// read the parquet directory back and verify dimensions match
	loaded, err := pqsource.CreateDataFrame(path.Join(outDir, "*.parquet"), nil)
	require.Nil(t, err)
	require.Equal(t, 3, loaded.GetSchema().NumColumns())
	loaded, err = loaded.To(util.Collect(16))
	require.Nil(t, err)
	loadedResult, err := session.Run(context.Background(), loaded)
	require.Nil(t, err)
	require.Equal(t, 5, countRows(loadedResult))
}

func TestSessionWriteDSVRoundTrip(t *testing.T) {
	df, _ := createTestDataFrame(t, 2)
	outDir := path.Join(t.TempDir(), "out")
	df, err := df.To(util.Write(dsvsink.CreateSink(&dsvsink.SinkConf{
		Dir:    outDir,
		Mode:   datasink.SaveModeOverwrite,
		Header: true,
	})))
	require.Nil(t, err)

	session := NewSession(&Options{NumWorkers: 2, TempDir: t.TempDir()})
	_, err = session.Run(context.Background(), df)
	require.Nil(t, err)

	// read the part files back and verify dimensions match
	glob := path.Join(outDir, "*.csv")
	conf := &dsv.ParserConf{HeaderLines: 1}
	loadedSchema, err := dsv.InferSchema(glob, conf, &dsv.InferConf{Header: true, InferTypes: true})
	require.Nil(t, err)
	require.Equal(t, 3, loadedSchema.NumColumns())
	loaded, err := file.CreateDataFrame(glob, dsv.CreateParser(conf), loadedSchema).To(util.Collect(16))
	require.Nil(t, err)
	loadedResult, err := session.Run(context.Background(), loaded)
	require.Nil(t, err)
	require.Equal(t, 5, countRows(loadedResult))
}
