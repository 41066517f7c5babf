package accumulators

import (
	"fmt"

	"github.com/andreschprr/tabular"
)

// Compose returns a factory for Composed Accumulators
func Compose(faccs ...tabular.AccumulatorFactory) tabular.AccumulatorFactory {
	return func() tabular.Accumulator {
		accs := make([]tabular.Accumulator, len(faccs))
		for i, f := range faccs {
			accs[i] = f()
		}
		return &Composed{accs: accs}
	}
}

// Composed composes other Accumulators
type Composed struct {
	accs []tabular.Accumulator
}

// GetResults returns the contained Accumulators, so that their results may be accessed
func (c *Composed) GetResults() []tabular.Accumulator {
	return c.accs
}

// Accumulate adds a row to all contained Accumulators
func (c *Composed) Accumulate(row tabular.Row) error {
	for _, a := range c.accs {
		err := a.Accumulate(row)
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge merges another Composed Accumulator into this one, merging all contained Accumulators
func (c *Composed) Merge(o tabular.Accumulator) error {
	compa, ok := o.(*Composed)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Composed Accumulator")
	}
	if len(compa.accs) != len(c.accs) {
		return fmt.Errorf("Incoming Composed Accumulator contains %d Accumulators, expected %d", len(compa.accs), len(c.accs))
	}
	for i, a := range c.accs {
		err := a.Merge(compa.accs[i])
		if err != nil {
			return err
		}
	}
	return nil
}
