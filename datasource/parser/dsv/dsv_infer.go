package dsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/andreschprr/tabular"
	"github.com/andreschprr/tabular/schema"
)

// InferConf configures InferSchema
type InferConf struct {
	Header     bool // The first line of each file contains column names. Callers should also set ParserConf.HeaderLines so parsing skips it.
	InferTypes bool // Detect column types by sampling rows. All columns are VarString otherwise.
	SampleSize int  // The maximum number of rows examined during type detection. Defaults to 1024.
}

// type detection widens through this lattice until a sampled value fits
const (
	inferredBool = iota
	inferredInt
	inferredFloat
	inferredString
)

// InferSchema derives a Schema from the first file matched by a glob.
// Column names come from the header line when one is present, and are
// numbered _c0, _c1, ... otherwise.
func InferSchema(glob string, conf *ParserConf, inferConf *InferConf) (tabular.Schema, error) {
	conf = CreateParser(conf).conf
	if inferConf.SampleSize == 0 {
		inferConf.SampleSize = 1024
	}
	matches, err := filepath.Glob(glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", glob)
	}
	sort.Strings(matches)
	f, err := os.Open(matches[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = conf.Delimiter
	reader.Comment = conf.Comment

	first, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("Unable to read first line of %s: %w", matches[0], err)
	}
	names := make([]string, len(first))
	if inferConf.Header {
		copy(names, first)
	} else {
		for i := range names {
			names[i] = fmt.Sprintf("_c%d", i)
		}
	}

	inferred := make([]int, len(first))
	sampled := make([]bool, len(first))
	if inferConf.InferTypes {
		if !inferConf.Header {
			widenColumnTypes(conf, inferred, sampled, first)
		}
		for i := 0; i < inferConf.SampleSize; i++ {
			rowStrings, err := reader.Read()
			if err == io.EOF {
				break
			} else if err != nil {
				return nil, err
			}
			widenColumnTypes(conf, inferred, sampled, rowStrings)
		}
	}

	result := schema.CreateSchema()
	for i, name := range names {
		var colType tabular.ColumnType
		if !inferConf.InferTypes || !sampled[i] {
			colType = &tabular.VarStringColumnType{}
		} else {
			switch inferred[i] {
			case inferredBool:
				colType = &tabular.BoolColumnType{}
			case inferredInt:
				colType = &tabular.Int64ColumnType{}
			case inferredFloat:
				colType = &tabular.Float64ColumnType{}
			default:
				colType = &tabular.VarStringColumnType{}
			}
		}
		result, err = result.CreateColumn(name, colType)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// widenColumnTypes widens each column's detected type until the given
// values fit. Nil values carry no type information and are skipped.
func widenColumnTypes(conf *ParserConf, inferred []int, sampled []bool, rowStrings []string) {
	for i := 0; i < len(inferred) && i < len(rowStrings); i++ {
		colVal := rowStrings[i]
		if len(colVal) == 0 || colVal == conf.NilValue {
			continue
		}
		if !sampled[i] {
			sampled[i] = true
		}
		for inferred[i] < inferredString && !fitsInferredType(inferred[i], colVal) {
			inferred[i]++
		}
	}
}

func fitsInferredType(inferred int, colVal string) bool {
	switch inferred {
	case inferredBool:
		_, err := strconv.ParseBool(colVal)
		return err == nil
	case inferredInt:
		_, err := strconv.ParseInt(colVal, 10, 64)
		return err == nil
	case inferredFloat:
		_, err := strconv.ParseFloat(colVal, 64)
		return err == nil
	default:
		return true
	}
}
