// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/einsum/internal/einsum"
	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/tensor"
)

// Type aliases for public API

// Tensor is a dense N-dimensional array of float64 values.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
//	_ = x.Set(1, 0, 2)
//	v, _ := x.At(0, 2)
type Tensor = tensor.Tensor

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Entry is one element of a tensor together with its coordinate.
type Entry = tensor.Entry

// Formula is a parsed einsum formula that can be evaluated repeatedly.
type Formula = einsum.Formula

// Binding holds the symbol sizes resolved for one set of operand shapes.
type Binding = einsum.Binding

// Job is one contraction in a Batch.
type Job = einsum.Job

// ParallelConfig controls how Batch spreads jobs over goroutines.
type ParallelConfig = parallel.Config

// Structured error types. All of them unwrap to one of the sentinels below.
type (
	IndexError     = tensor.IndexError
	ShapeError     = tensor.ShapeError
	ArityError     = einsum.ArityError
	OperandError   = einsum.OperandError
	DimensionError = einsum.DimensionError
	SymbolError    = einsum.SymbolError
)

// Error kinds.
var (
	ErrRankMismatch        = tensor.ErrRankMismatch
	ErrOutOfRange          = tensor.ErrOutOfRange
	ErrShapeMismatch       = tensor.ErrShapeMismatch
	ErrInvalidShape        = tensor.ErrInvalidShape
	ErrInvalidFormula      = einsum.ErrInvalidFormula
	ErrArityMismatch       = einsum.ErrArityMismatch
	ErrDimensionConflict   = einsum.ErrDimensionConflict
	ErrUnboundOutputSymbol = einsum.ErrUnboundOutputSymbol
	ErrNilOperand          = einsum.ErrNilOperand
)

// Creation functions

// Zeros creates a tensor filled with zeros.
// Panics if any dimension is not positive.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// Scalar creates a rank-0 tensor.
func Scalar(v float64) *Tensor {
	return tensor.Scalar(v)
}

// FromSlice creates a tensor from a flat row-major slice.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromRows creates a rank-2 tensor from equally long rows.
func FromRows(rows [][]float64) (*Tensor, error) {
	return tensor.FromRows(rows)
}

// FromCubes creates a rank-3 tensor from nested slices indexed [i][j][k].
func FromCubes(cubes [][][]float64) (*Tensor, error) {
	return tensor.FromCubes(cubes)
}

// FromDense copies a gonum matrix into a rank-2 tensor.
func FromDense(m mat.Matrix) *Tensor {
	return tensor.FromDense(m)
}

// Contraction

// Einsum contracts operands according to formula.
//
// Example:
//
//	c, err := tensor.Einsum("ij,jk->ik", a, b)
func Einsum(formula string, operands ...*Tensor) (*Tensor, error) {
	return einsum.Einsum(formula, operands...)
}

// ParseFormula parses a formula once for repeated evaluation.
func ParseFormula(formula string) (*Formula, error) {
	return einsum.ParseFormula(formula)
}

// Batch runs independent contractions concurrently, returning results in job order.
func Batch(jobs []Job, cfg ParallelConfig) ([]*Tensor, error) {
	return einsum.Batch(jobs, cfg)
}

// DefaultParallelConfig uses one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialParallelConfig runs every job on the calling goroutine.
func SequentialParallelConfig() ParallelConfig {
	return parallel.Sequential()
}
