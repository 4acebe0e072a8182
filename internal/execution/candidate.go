package execution

import (
	"context"

	"caserun/internal/domain"
)

// Candidate is the unit under test. Call receives the input records of one
// case as positional arguments and returns either a single value or a Tuple.
type Candidate interface {
	Call(ctx context.Context, args []domain.Record) (any, error)
}

// Tuple is a fixed-size ordered multi-value result. Each component is
// compared against the expected record at the same position.
type Tuple []any

// Func adapts a plain function over records to the Candidate interface
type Func func(ctx context.Context, args []domain.Record) (any, error)

// Call calls f(ctx, args)
func (f Func) Call(ctx context.Context, args []domain.Record) (any, error) {
	return f(ctx, args)
}
