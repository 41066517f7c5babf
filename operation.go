package tabular

// MapOperation is a generic function for manipulating Rows in-place
type MapOperation func(row Row) error

// FilterOperation is a generic function for determining whether or not
// a Row should be retained
type FilterOperation func(row Row) (bool, error)

// AccumulatorFactory is a function that produces a fresh Accumulator
type AccumulatorFactory func() Accumulator

// Accumulator is a generic reduction mechanism for Rows, merged
// across workers at the end of a run
type Accumulator interface {
	Accumulate(row Row) error // Accumulate adds a Row to this Accumulator
	Merge(o Accumulator) error // Merge merges another Accumulator into this one
}
