package main

import (
	"context"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/datasink"
	dsvout "github.com/andreschprr/tabular/datasink/dsv"
	parquetout "github.com/andreschprr/tabular/datasink/parquet"
	"github.com/andreschprr/tabular/datasource/file"
	parquetin "github.com/andreschprr/tabular/datasource/parquet"
	"github.com/andreschprr/tabular/datasource/parser/dsv"
	"github.com/andreschprr/tabular/engine"
	"github.com/andreschprr/tabular/operations/transform"
	"github.com/andreschprr/tabular/operations/util"
	"github.com/stretchr/testify/require"
)

func TestParseRenames(t *testing.T) {
	pairs, err := parseRenames("")
	require.Nil(t, err)
	require.Nil(t, pairs)

	pairs, err = parseRenames("dob=birth_date,total=score")
	require.Nil(t, err)
	require.Equal(t, [][2]string{{"dob", "birth_date"}, {"total", "score"}}, pairs)

	_, err = parseRenames("dob")
	require.NotNil(t, err)

	_, err = parseRenames("=name")
	require.NotNil(t, err)
}

func TestColumnTypeByName(t *testing.T) {
	colType, err := columnTypeByName("float64")
	require.Nil(t, err)
	require.IsType(t, &tabular.Float64ColumnType{}, colType)

	colType, err = columnTypeByName("string")
	require.Nil(t, err)
	require.IsType(t, &tabular.VarStringColumnType{}, colType)

	_, err = columnTypeByName("decimal")
	require.NotNil(t, err)
}

func writePipelineCSV(t *testing.T, dir string, name string, lines ...string) {
	t.Helper()
	data := strings.Join(lines, "\n") + "\n"
	require.Nil(t, os.WriteFile(path.Join(dir, name), []byte(data), 0o644))
}

func TestWalkthroughPipeline(t *testing.T) {
	inDir := t.TempDir()
	writePipelineCSV(t, inDir, "people-0.csv",
		"id,dob,score",
		"1,1990-01-02,10.5",
		"2,1985-06-15,2.5",
		"3,2001-11-30,7",
	)
	writePipelineCSV(t, inDir, "people-1.csv",
		"id,dob,score",
		"4,1978-03-08,0.5",
		"5,1999-12-24,4.5",
	)
	glob := path.Join(inDir, "*.csv")
	outDir := t.TempDir()

	ctx := context.Background()
	session := engine.NewSession(&engine.Options{NumWorkers: 2, TempDir: t.TempDir()})

	parserConf := &dsv.ParserConf{HeaderLines: 1}
	dataSchema, err := dsv.InferSchema(glob, parserConf, &dsv.InferConf{Header: true, InferTypes: true})
	require.Nil(t, err)
	frame := file.CreateDataFrame(glob, dsv.CreateParser(parserConf), dataSchema)

	frame, err = frame.To(transform.RenameColumn("dob", "birth_date"))
	require.Nil(t, err)
	frame, err = frame.To(transform.Cast("id", &tabular.VarStringColumnType{})...)
	require.Nil(t, err)

	sourceRows, err := countRows(ctx, session, frame)
	require.Nil(t, err)
	require.Equal(t, uint64(5), sourceRows)
	require.Equal(t, 3, frame.GetSchema().NumColumns())

	parquetDir := path.Join(outDir, "parquet")
	writeFrame, err := frame.To(util.Write(parquetout.CreateSink(&parquetout.SinkConf{
		Dir:  parquetDir,
		Mode: datasink.SaveModeOverwrite,
	})))
	require.Nil(t, err)
	_, err = session.Run(ctx, writeFrame)
	require.Nil(t, err)

	dsvDir := path.Join(outDir, "dsv")
	writeFrame, err = frame.To(util.Write(dsvout.CreateSink(&dsvout.SinkConf{
		Dir:    dsvDir,
		Mode:   datasink.SaveModeOverwrite,
		Header: true,
	})))
	require.Nil(t, err)
	_, err = session.Run(ctx, writeFrame)
	require.Nil(t, err)

	pqFrame, err := parquetin.CreateDataFrame(path.Join(parquetDir, "*.parquet"), &parquetin.DataSourceConf{})
	require.Nil(t, err)
	require.False(t, verify(ctx, session, "parquet", pqFrame, sourceRows, 3))

	readConf := &dsv.ParserConf{HeaderLines: 1}
	readSchema, err := dsv.InferSchema(path.Join(dsvDir, "*.csv"), readConf, &dsv.InferConf{Header: true, InferTypes: true})
	require.Nil(t, err)
	dsvFrame := file.CreateDataFrame(path.Join(dsvDir, "*.csv"), dsv.CreateParser(readConf), readSchema)
	require.False(t, verify(ctx, session, "dsv", dsvFrame, sourceRows, 3))

	// the renamed column's values survive the full round trip
	collected, err := dsvFrame.To(util.Collect(8))
	require.Nil(t, err)
	result, err := session.Run(ctx, collected)
	require.Nil(t, err)
	dates := make(map[string]bool)
	for _, part := range result.Partitions {
		err := part.ForEachRow(func(row tabular.Row) error {
			require.False(t, row.IsNil("birth_date"))
			date, err := row.GetVarString("birth_date")
			if err != nil {
				return err
			}
			dates[date] = true
			return nil
		})
		require.Nil(t, err)
	}
	require.Equal(t, map[string]bool{
		"1990-01-02": true, "1985-06-15": true, "2001-11-30": true,
		"1978-03-08": true, "1999-12-24": true,
	}, dates)
}
