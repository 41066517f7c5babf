package dataframe

import (
	"fmt"

	"github.com/andreschprr/tabular"
)

// A Plan is an ordered sequence of frames derived from a DataFrame
// chain, ready for execution
type Plan struct {
	frames []*dataFrameImpl
	source tabular.DataSource
	parser tabular.DataSourceParser
}

// Size returns the number of frames in this Plan
func (p *Plan) Size() int {
	return len(p.frames)
}

// Parser returns this Plan's DataSourceParser
func (p *Plan) Parser() tabular.DataSourceParser {
	return p.parser
}

// Source returns this Plan's DataSource
func (p *Plan) Source() tabular.DataSource {
	return p.source
}

// finalSchema returns the Schema of data leaving the final frame
func (p *Plan) finalSchema() tabular.Schema {
	return p.frames[len(p.frames)-1].schema
}

func isTerminalTaskType(taskType tabular.TaskType) bool {
	switch taskType {
	case tabular.AccumulateTaskType, tabular.CollectTaskType, tabular.WriteTaskType:
		return true
	default:
		return false
	}
}

// CreatePlan walks a DataFrame chain, validating it and producing an
// executable Plan. Terminal actions (collect, accumulate, write) may
// only appear at the end of the chain.
func CreatePlan(frame tabular.DataFrame) (*Plan, error) {
	df, ok := frame.(*dataFrameImpl)
	if !ok {
		return nil, fmt.Errorf("DataFrame was not produced by this engine")
	}
	frames := make([]*dataFrameImpl, 0)
	for cur := df; cur != nil; cur = cur.parent {
		frames = append([]*dataFrameImpl{cur}, frames...)
	}
	for i, f := range frames {
		if isTerminalTaskType(f.taskType) && i != len(frames)-1 {
			return nil, fmt.Errorf("Action %s must be the final operation in a DataFrame", f.taskType)
		}
	}
	if !isTerminalTaskType(frames[len(frames)-1].taskType) {
		return nil, fmt.Errorf("DataFrame must terminate in an action (collect, accumulate or write)")
	}
	return &Plan{frames: frames, source: df.source, parser: df.parser}, nil
}
