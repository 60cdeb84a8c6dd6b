// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package export writes tensors out as CSV relation tables, text dumps,
// heat map images and SafeTensors files.
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/einsum/export"
//	    "github.com/born-ml/einsum/tensor"
//	)
//
//	people := []string{"Alice", "Bob", "Charlie"}
//	err := export.ExportRelationCSV("out/manages.csv", r,
//	    []string{"Subject", "Object", "Value"},
//	    [][]string{people, people})
package export

import (
	"io"

	"github.com/born-ml/einsum/internal/export"
	"github.com/born-ml/einsum/internal/serialization"
	"github.com/born-ml/einsum/tensor"
)

// Epsilon is the magnitude at or below which an entry counts as zero.
const Epsilon = export.Epsilon

// HeatmapOptions controls heat map rendering.
type HeatmapOptions = export.HeatmapOptions

// DefaultHeatmapOptions returns a square 4 inch image with a 12 step heat palette.
func DefaultHeatmapOptions() HeatmapOptions {
	return export.DefaultHeatmapOptions()
}

// ExportRelationCSV writes the nonzero entries of t to path, one row per
// entry: one label per axis followed by the value. header needs rank+1
// names and dimLabels one label list per axis.
func ExportRelationCSV(path string, t *tensor.Tensor, header []string, dimLabels [][]string) error {
	return export.ExportRelationCSV(path, t, header, dimLabels)
}

// WriteRelationCSV is ExportRelationCSV for an arbitrary writer.
func WriteRelationCSV(w io.Writer, t *tensor.Tensor, header []string, dimLabels [][]string) error {
	return export.WriteRelationCSV(w, t, header, dimLabels)
}

// PrintNonZero writes the nonzero entries of t as "[coord] -> value" lines.
func PrintNonZero(w io.Writer, t *tensor.Tensor) error {
	return export.PrintNonZero(w, t)
}

// PrintSlices writes t as a sequence of 2-D matrix slices.
func PrintSlices(w io.Writer, t *tensor.Tensor) error {
	return export.PrintSlices(w, t)
}

// RenderHeatmap saves the 2-D slice of t selected by lead as an image.
func RenderHeatmap(path string, t *tensor.Tensor, lead []int, opts HeatmapOptions) error {
	return export.RenderHeatmap(path, t, lead, opts)
}

// SaveSafeTensors writes named tensors as F64 SafeTensors.
func SaveSafeTensors(path string, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	return serialization.WriteSafeTensors(path, tensors, metadata)
}

// LoadSafeTensors reads every tensor and the metadata of a SafeTensors file.
func LoadSafeTensors(path string) (map[string]*tensor.Tensor, map[string]string, error) {
	return serialization.ReadSafeTensors(path)
}
