package assemble

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/internal/options"
)

// DefaultLongNameAttr is the attribute key holding a case longname on its
// coordinate.
const DefaultLongNameAttr = "long_name"

// Aggregation selects how per-case entries are combined.
type Aggregation uint8

const (
	// AggregateStack stacks entries that share their coordinates.
	AggregateStack Aggregation = iota
	// AggregateOuter merges entries with differing coordinate sets. Not
	// implemented.
	AggregateOuter
)

func (a Aggregation) String() string {
	switch a {
	case AggregateStack:
		return "stack"
	case AggregateOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// Option configures an Assembler.
type Option = options.Option[*Assembler]

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(a *Assembler) {
		if l == nil {
			l = zap.NewNop()
		}
		a.logger = l
	})
}

// WithWorkers resolves per-case leaves on up to n goroutines.
func WithWorkers(n int) Option {
	return options.New(func(a *Assembler) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be positive, got %d", errs.ErrInvalidOption, n)
		}
		a.workers = n

		return nil
	})
}

// WithRegisterer records assembly metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return options.NoError(func(a *Assembler) {
		a.registerer = reg
	})
}

// WithAggregation selects the aggregation mode. The default is AggregateStack.
func WithAggregation(mode Aggregation) Option {
	return options.New(func(a *Assembler) error {
		if mode > AggregateOuter {
			return fmt.Errorf("%w: aggregation %d", errs.ErrInvalidOption, mode)
		}
		a.aggregation = mode

		return nil
	})
}

// WithLongNameAttr sets the attribute key used for case longnames.
func WithLongNameAttr(key string) Option {
	return options.New(func(a *Assembler) error {
		if key == "" {
			return fmt.Errorf("%w: empty long-name attribute", errs.ErrInvalidOption)
		}
		a.longNameAttr = key

		return nil
	})
}
