// Package export turns tensors into human-facing artifacts: relation
// tables in CSV, textual dumps and heat map images.
//
// Everything here consumes the tensor's public read interface only.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/born-ml/einsum/internal/tensor"
)

// Epsilon is the magnitude at or below which an entry counts as zero.
const Epsilon = 1e-9

// UnknownLabel stands in for an axis index that has no label.
const UnknownLabel = "Unknown"

// ExportRelationCSV writes the nonzero entries of t to path as a relation
// table, creating missing parent directories.
//
// header names every axis plus a trailing value column, so it must have
// rank+1 entries. dimLabels holds one label list per axis; an index past
// the end of its list is written as UnknownLabel.
//
// Fields follow RFC 4180: a header or label containing a comma, a quote,
// a line break or a leading space is written quoted so the table reads
// back with the same columns. Plain labels are written as-is.
//
// Example:
//
//	// R[i][j] = 1 means "i <= j"
//	err := export.ExportRelationCSV("out/order.csv", r,
//	    []string{"LHS", "RHS", "Value"},
//	    [][]string{{"1", "2", "3"}, {"1", "2", "3"}})
func ExportRelationCSV(path string, t *tensor.Tensor, header []string, dimLabels [][]string) error {
	if err := checkLabels(t, header, dimLabels); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	//nolint:gosec // G304: File path comes from the caller, which is expected for exports
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	w := bufio.NewWriter(file)
	if err := WriteRelationCSV(w, t, header, dimLabels); err != nil {
		_ = file.Close() // Best effort close on error
		return err
	}
	if err := w.Flush(); err != nil {
		_ = file.Close() // Best effort close on error
		return fmt.Errorf("failed to flush file: %w", err)
	}
	return file.Close()
}

// WriteRelationCSV writes the relation table of t to w.
// See ExportRelationCSV for the layout.
func WriteRelationCSV(w io.Writer, t *tensor.Tensor, header []string, dimLabels [][]string) error {
	if err := checkLabels(t, header, dimLabels); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(header))
	for _, e := range t.NonZero(Epsilon) {
		for axis, idx := range e.Coord {
			record[axis] = label(dimLabels[axis], idx)
		}
		record[len(record)-1] = FormatValue(e.Value)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %v: %w", e.Coord, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// FormatValue renders integral values without decimals and everything
// else with two.
func FormatValue(v float64) string {
	if math.Abs(v-math.Round(v)) < Epsilon {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func label(labels []string, idx int) string {
	if idx < len(labels) {
		return labels[idx]
	}
	return UnknownLabel
}

func checkLabels(t *tensor.Tensor, header []string, dimLabels [][]string) error {
	if len(dimLabels) != t.Rank() {
		return &tensor.ShapeError{What: "label lists", Expected: t.Rank(), Actual: len(dimLabels)}
	}
	if len(header) != t.Rank()+1 {
		return &tensor.ShapeError{What: "header", Expected: t.Rank() + 1, Actual: len(header)}
	}
	return nil
}
