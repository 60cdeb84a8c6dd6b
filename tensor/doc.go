// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense float64 tensors and Einstein-summation contraction.
//
// # Overview
//
// A Tensor is a shape plus a flat row-major buffer (last axis fastest).
// The only compute primitive is Einsum, which covers matrix products,
// transposes, traces, diagonals, outer products, reductions and their
// batched or higher-rank variants.
//
// # Basic Usage
//
//	import "github.com/born-ml/einsum/tensor"
//
//	func main() {
//	    r, err := tensor.FromRows([][]float64{
//	        {0, 1, 0},
//	        {0, 0, 1},
//	        {0, 0, 0},
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Compose the relation with itself: r2[i][k] = Σ_j r[i][j] * r[j][k]
//	    r2, err := tensor.Einsum("ij,jk->ik", r, r)
//	}
//
// # Formulas
//
// A formula lists one group of axis symbols per operand, separated by
// commas, then "->" and the output symbols. Symbols are ASCII letters and
// case-sensitive. Symbols missing from the output are summed over; an
// empty output reduces to a rank-0 tensor.
//
//	"ij,jk->ik"     matrix product
//	"bij,bjk->bik"  batched matrix product
//	"ii->"          trace
//	"ii->i"         diagonal
//	"i,j->ij"       outer product
//	"ij->"          sum of all entries
//
// # Errors
//
// Every failure can be classified with errors.Is against ErrArityMismatch,
// ErrRankMismatch, ErrOutOfRange, ErrDimensionConflict,
// ErrUnboundOutputSymbol, ErrShapeMismatch, ErrInvalidShape or
// ErrInvalidFormula. A failing call never returns a partial result.
//
// # Concurrency
//
// A contraction runs sequentially on the calling goroutine and only reads
// its operands. Independent contractions may run concurrently; Batch does
// exactly that.
package tensor
