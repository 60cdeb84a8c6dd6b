package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/born-ml/einsum/internal/tensor"
)

// zeroCell replaces near-zero entries in PrintSlices.
const zeroCell = "  .  "

// PrintNonZero writes every entry of t whose magnitude exceeds Epsilon as
// "[coord] -> value", preceded by a heading naming the shape.
func PrintNonZero(w io.Writer, t *tensor.Tensor) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Nonzero entries (shape %v):\n", []int(t.Shape()))
	for _, e := range t.NonZero(Epsilon) {
		fmt.Fprintf(&sb, "  %v -> %.2f\n", e.Coord, e.Value)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// PrintSlices writes t as a sequence of matrices, one for every
// coordinate of the leading axes, with the last axis along each row.
// Tensors of rank below 2 are written on a single line.
func PrintSlices(w io.Writer, t *tensor.Tensor) error {
	var sb strings.Builder

	shape := t.Shape()
	if len(shape) < 2 {
		fmt.Fprintf(&sb, "Tensor %v: %v\n", []int(shape), t.Data())
		_, err := io.WriteString(w, sb.String())
		return err
	}

	lead := shape[:len(shape)-2]
	for i := 0; i < lead.NumElements(); i++ {
		coord := lead.MultiIndex(i)
		m, err := matrixAt(t, coord)
		if err != nil {
			return err
		}

		if len(lead) > 0 {
			fmt.Fprintf(&sb, "Slice %v:\n", coord)
		} else {
			sb.WriteString("Matrix:\n")
		}
		for r := 0; r < m.rows; r++ {
			sb.WriteString("[ ")
			for c := 0; c < m.cols; c++ {
				sb.WriteString(cell(m.at(r, c)))
			}
			sb.WriteString(" ]\n")
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func cell(v float64) string {
	if math.Abs(v) < Epsilon {
		return zeroCell
	}
	return center(fmt.Sprintf("%.2f", v), len(zeroCell))
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// matrix is a read-only view of one 2-D slice of a tensor.
type matrix struct {
	rows, cols int
	values     []float64 // row-major, len rows*cols
}

func (m matrix) at(r, c int) float64 {
	return m.values[r*m.cols+c]
}

// matrixAt returns the trailing 2-D slice of t selected by a coordinate
// over its leading axes.
func matrixAt(t *tensor.Tensor, lead []int) (matrix, error) {
	shape := t.Shape()
	if len(shape) < 2 {
		return matrix{}, fmt.Errorf("%w: need rank >= 2 for a matrix slice, got shape %v",
			tensor.ErrRankMismatch, []int(shape))
	}

	leadShape := shape[:len(shape)-2]
	index, err := leadShape.FlatIndex(lead)
	if err != nil {
		return matrix{}, err
	}

	rows, cols := shape[len(shape)-2], shape[len(shape)-1]
	start := index * rows * cols
	return matrix{rows: rows, cols: cols, values: t.Data()[start : start+rows*cols]}, nil
}
