// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package export_test

import (
	"os"

	"github.com/born-ml/einsum/export"
	"github.com/born-ml/einsum/tensor"
)

func ExamplePrintNonZero() {
	r := tensor.Zeros(tensor.Shape{3, 3})
	_ = r.Set(1, 0, 1)
	_ = r.Set(1, 1, 2)

	r2, _ := tensor.Einsum("ij,jk->ik", r, r)
	_ = export.PrintNonZero(os.Stdout, r2)
	// Output:
	// Nonzero entries (shape [3 3]):
	//   [0 2] -> 1.00
}

func ExampleWriteRelationCSV() {
	facts, _ := tensor.FromRows([][]float64{{1, 0}, {0, 1}})
	rules, _ := tensor.FromRows([][]float64{{1, 0}, {0, 1}})

	conclusion, _ := tensor.Einsum("sc,cq->sq", facts, rules)
	_ = export.WriteRelationCSV(os.Stdout, conclusion,
		[]string{"Subject", "Quality", "Value"},
		[][]string{{"Socrates", "Zeus"}, {"Mortal", "Immortal"}})
	// Output:
	// Subject,Quality,Value
	// Socrates,Mortal,1
	// Zeus,Immortal,1
}

func ExamplePrintSlices() {
	x, _ := tensor.FromRows([][]float64{{0, 1.5}, {2, 0}})
	_ = export.PrintSlices(os.Stdout, x)
	// Output:
	// Matrix:
	// [   .  1.50  ]
	// [ 2.00   .   ]
}
