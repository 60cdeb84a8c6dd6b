package tensor

import (
	"fmt"
	"math"
)

// Tensor is a dense N-dimensional array of float64 values stored
// contiguously in row-major order.
//
// A Tensor exclusively owns its buffer. Rank and shape are fixed at
// construction; individual entries change only through Set.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4})
//	_ = t.Set(1.5, 1, 2)
//	v, _ := t.At(1, 2) // 1.5
type Tensor struct {
	shape Shape
	data  []float64
}

// Entry is one element of a tensor together with its coordinate.
type Entry struct {
	Coord []int
	Value float64
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// Rank returns the number of axes.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the flat row-major buffer.
// The slice aliases the tensor's storage and must be treated as read-only;
// use Set to mutate and Clone to obtain an independent copy.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Item returns the scalar value of a 0-D tensor.
// Panics if the tensor is not a scalar.
func (t *Tensor) Item() float64 {
	if len(t.shape) != 0 {
		panic(fmt.Sprintf("Item() only works for scalar tensors, got shape %v", t.shape))
	}
	return t.data[0]
}

// At returns the element at the given coordinate.
//
// Errors from the index mapper (ErrRankMismatch, ErrOutOfRange) are
// returned unchanged.
func (t *Tensor) At(coord ...int) (float64, error) {
	offset, err := t.shape.FlatIndex(coord)
	if err != nil {
		return 0, err
	}
	return t.data[offset], nil
}

// Set stores value at the given coordinate.
func (t *Tensor) Set(value float64, coord ...int) error {
	offset, err := t.shape.FlatIndex(coord)
	if err != nil {
		return err
	}
	t.data[offset] = value
	return nil
}

// NonZero returns every entry whose absolute value exceeds eps, in
// storage order.
func (t *Tensor) NonZero(eps float64) []Entry {
	var entries []Entry
	for i, v := range t.data {
		if math.Abs(v) > eps {
			entries = append(entries, Entry{Coord: t.shape.MultiIndex(i), Value: v})
		}
	}
	return entries
}

// Equal reports whether both tensors have the same shape and identical entries.
func (t *Tensor) Equal(other *Tensor) bool {
	return t.AllClose(other, 0)
}

// AllClose reports whether both tensors have the same shape and every pair
// of entries differs by at most tol.
func (t *Tensor) AllClose(other *Tensor, tol float64) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if math.Abs(v-other.data[i]) > tol {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor[float64]%v", []int(t.shape))
}
