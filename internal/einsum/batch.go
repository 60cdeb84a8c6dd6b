package einsum

import (
	"fmt"

	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/tensor"
)

// Job is one independent contraction.
type Job struct {
	Formula  string
	Operands []*tensor.Tensor
}

// Batch runs independent contractions concurrently and returns their
// results in job order.
//
// Each contraction is still sequential; only separate jobs overlap.
// Operands may be shared between jobs since they are never written.
// If any job fails, the error of the lowest failing job index is
// returned, wrapped with that index, and no results are returned.
func Batch(jobs []Job, cfg parallel.Config) ([]*tensor.Tensor, error) {
	results := make([]*tensor.Tensor, len(jobs))
	errs := make([]error, len(jobs))

	parallel.Each(len(jobs), func(i int) {
		results[i], errs[i] = Einsum(jobs[i].Formula, jobs[i].Operands...)
	}, cfg)

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("job %d (%q): %w", i, jobs[i].Formula, err)
		}
	}
	return results, nil
}

// EvaluateBatch evaluates f once per operand set. Every set costs the same
// when shapes agree, so the sets are split into contiguous chunks.
// Error handling matches Batch.
func (f *Formula) EvaluateBatch(sets [][]*tensor.Tensor, cfg parallel.Config) ([]*tensor.Tensor, error) {
	results := make([]*tensor.Tensor, len(sets))
	errs := make([]error, len(sets))

	parallel.For(len(sets), func(i int) {
		results[i], errs[i] = f.Evaluate(sets[i]...)
	}, cfg)

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("operand set %d: %w", i, err)
		}
	}
	return results, nil
}
