// Package einsum implements Einstein-summation contraction over dense
// float64 tensors.
//
// A contraction enumerates every combination of values of every distinct
// symbol in the formula with a mixed-radix counter, multiplies the
// selected operand entries and accumulates the product into the output
// entry selected by the output symbols. Symbols missing from the output
// are thereby summed over.
//
// Cost is proportional to the product of all distinct symbol sizes; no
// contraction ordering or pairwise planning is attempted.
package einsum

import (
	"fmt"

	"github.com/born-ml/einsum/internal/tensor"
)

// Einsum parses formula and contracts the operands with it.
//
// Examples:
//
//	einsum.Einsum("ij,jk->ik", a, b) // matrix product
//	einsum.Einsum("ij->ji", a)       // transpose
//	einsum.Einsum("ii->", a)         // trace
//	einsum.Einsum("ij->", a)         // sum of all entries, rank-0 result
//
// On failure no output tensor is returned.
func Einsum(formula string, operands ...*tensor.Tensor) (*tensor.Tensor, error) {
	f, err := ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	return f.Evaluate(operands...)
}

// Evaluate contracts the operands with a parsed formula.
// Operands are only read; the result is a newly allocated tensor.
func (f *Formula) Evaluate(operands ...*tensor.Tensor) (*tensor.Tensor, error) {
	shapes := make([]tensor.Shape, len(operands))
	for i, op := range operands {
		if op == nil {
			return nil, fmt.Errorf("%w: operand %d", ErrNilOperand, i)
		}
		shapes[i] = op.Shape()
	}

	b, err := f.Bind(shapes...)
	if err != nil {
		return nil, err
	}

	c := newContraction(f, b, operands, shapes)
	acc := make([]float64, b.OutputShape.NumElements())
	c.run(acc)

	return tensor.FromSlice(acc, b.OutputShape)
}

// contraction holds the precomputed walk over the symbol counter.
//
// strides[i][k] is how far operand i's flat offset moves when counter k
// advances by one: the sum of the row-major strides of every axis of
// operand i labelled with symbol k. Summing covers repeated symbols, so
// "ii" walks the diagonal.
type contraction struct {
	limits     []int
	data       [][]float64
	strides    [][]int
	outStrides []int
}

func newContraction(f *Formula, b *Binding, operands []*tensor.Tensor, shapes []tensor.Shape) *contraction {
	c := &contraction{
		limits:  b.Sizes,
		data:    make([][]float64, len(operands)),
		strides: make([][]int, len(operands)),
	}
	for i, op := range operands {
		c.data[i] = op.Data()
		c.strides[i] = foldStrides(f.operands[i], shapes[i], b)
	}
	c.outStrides = foldStrides(f.output, b.OutputShape, b)
	return c
}

func foldStrides(symbols []rune, shape tensor.Shape, b *Binding) []int {
	folded := make([]int, len(b.Symbols))
	for axis, stride := range shape.ComputeStrides() {
		folded[b.index(symbols[axis])] += stride
	}
	return folded
}

// run visits the full Cartesian product of symbol values exactly once,
// accumulating into acc. The last symbol in enumeration order varies
// fastest; the walk ends once the carry passes the first symbol.
func (c *contraction) run(acc []float64) {
	n := len(c.limits)
	counters := make([]int, n)
	offsets := make([]int, len(c.data))
	outOffset := 0

	for {
		product := 1.0
		for i, data := range c.data {
			product *= data[offsets[i]]
		}
		acc[outOffset] += product

		k := n - 1
		for ; k >= 0; k-- {
			counters[k]++
			if counters[k] < c.limits[k] {
				for i := range offsets {
					offsets[i] += c.strides[i][k]
				}
				outOffset += c.outStrides[k]
				break
			}

			// Wrap to zero and carry into the previous symbol.
			back := c.limits[k] - 1
			for i := range offsets {
				offsets[i] -= c.strides[i][k] * back
			}
			outOffset -= c.outStrides[k] * back
			counters[k] = 0
		}
		if k < 0 {
			return
		}
	}
}
