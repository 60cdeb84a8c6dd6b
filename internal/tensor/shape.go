package tensor

import (
	"fmt"
	"math"
)

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid: all dimensions > 0 and an
// element count that fits in an int.
func (s Shape) Validate() error {
	n := 1
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("%w: dimension at index %d is %d (must be > 0)", ErrInvalidShape, i, dim)
		}
		if n > math.MaxInt/dim {
			return fmt.Errorf("%w: element count of %v overflows int", ErrInvalidShape, []int(s))
		}
		n *= dim
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// FlatIndex maps a coordinate to its offset in row-major storage
// (last axis varies fastest).
//
// Returns an *IndexError wrapping ErrRankMismatch if the coordinate length
// differs from the rank, or ErrOutOfRange if any axis value falls outside
// [0, size).
//
// Example:
//
//	Shape{2, 3}.FlatIndex([]int{1, 2}) // 5
func (s Shape) FlatIndex(coord []int) (int, error) {
	if len(coord) != len(s) {
		return 0, &IndexError{Kind: ErrRankMismatch, Coord: coord, Shape: s}
	}

	offset := 0
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		if coord[i] < 0 || coord[i] >= s[i] {
			return 0, &IndexError{Kind: ErrOutOfRange, Coord: coord, Shape: s, Axis: i}
		}
		offset += coord[i] * stride
		stride *= s[i]
	}
	return offset, nil
}

// MultiIndex is the inverse of FlatIndex.
// The offset must lie in [0, NumElements()); larger offsets wrap silently
// on the leading axis and callers must not rely on the result.
func (s Shape) MultiIndex(offset int) []int {
	coord := make([]int, len(s))
	remaining := offset
	for i := len(s) - 1; i >= 0; i-- {
		coord[i] = remaining % s[i]
		remaining /= s[i]
	}
	return coord
}
