package tensor

import "fmt"

// Zeros creates a tensor filled with zeros.
// A rank-0 shape yields a scalar holding a single zero.
//
// Panics if the shape has a non-positive dimension.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4})
func Zeros(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}
}

// Scalar creates a rank-0 tensor holding v.
func Scalar(v float64) *Tensor {
	return &Tensor{shape: Shape{}, data: []float64{v}}
}

// FromSlice creates a tensor from a flat row-major slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, &ShapeError{What: fmt.Sprintf("data for shape %v", shape), Expected: shape.NumElements(), Actual: len(data)}
	}

	t := Zeros(shape)
	copy(t.data, data)
	return t, nil
}

// FromRows creates a rank-2 tensor from a slice of rows.
// Every row must have the same length as the first one.
//
// Example:
//
//	r, err := tensor.FromRows([][]float64{
//	    {0, 1, 0},
//	    {0, 0, 1},
//	})
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: rows must be non-empty", ErrInvalidShape)
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &ShapeError{What: "row", Position: []int{i}, Expected: cols, Actual: len(row)}
		}
		data = append(data, row...)
	}
	return &Tensor{shape: Shape{len(rows), cols}, data: data}, nil
}

// FromCubes creates a rank-3 tensor from nested slices indexed [i][j][k].
// All sequences at the same depth must share the length of the first one.
func FromCubes(cubes [][][]float64) (*Tensor, error) {
	if len(cubes) == 0 || len(cubes[0]) == 0 || len(cubes[0][0]) == 0 {
		return nil, fmt.Errorf("%w: cubes must be non-empty", ErrInvalidShape)
	}

	d0, d1, d2 := len(cubes), len(cubes[0]), len(cubes[0][0])
	data := make([]float64, 0, d0*d1*d2)
	for i, matrix := range cubes {
		if len(matrix) != d1 {
			return nil, &ShapeError{What: "matrix", Position: []int{i}, Expected: d1, Actual: len(matrix)}
		}
		for j, row := range matrix {
			if len(row) != d2 {
				return nil, &ShapeError{What: "row", Position: []int{i, j}, Expected: d2, Actual: len(row)}
			}
			data = append(data, row...)
		}
	}
	return &Tensor{shape: Shape{d0, d1, d2}, data: data}, nil
}
