package stack

import (
	"fmt"
	"slices"

	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/internal/options"
)

type config struct {
	workers   int
	chunks    int
	leafShape []int
	fixed     bool
	field     string
}

// Option configures a Stack call.
type Option = options.Option[*config]

func defaultConfig() *config {
	return &config{workers: 1}
}

// WithWorkers resolves leaves on up to n goroutines. n must be positive;
// 1 keeps the walk serial.
func WithWorkers(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.workers = n

		return nil
	})
}

// WithLeafShape fixes the expected leaf shape instead of learning it from the
// first case-tuple.
func WithLeafShape(shape ...int) Option {
	return options.New(func(c *config) error {
		for _, d := range shape {
			if d < 0 {
				return fmt.Errorf("%w: negative leaf dimension %d", errs.ErrInvalidOption, d)
			}
		}
		c.leafShape = slices.Clone(shape)
		c.fixed = true

		return nil
	})
}

// WithField names the variable being stacked in shape mismatch errors.
func WithField(name string) Option {
	return options.NoError(func(c *config) {
		c.field = name
	})
}

// withChunks overrides the number of parallel chunks; tests use it to force
// many small ranges.
func withChunks(n int) Option {
	return options.NoError(func(c *config) {
		c.chunks = n
	})
}
