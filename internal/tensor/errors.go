package tensor

import (
	"errors"
	"fmt"
)

// Error kinds reported by the index mapper and the tensor constructors.
var (
	ErrRankMismatch  = errors.New("rank mismatch")
	ErrOutOfRange    = errors.New("index out of range")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrInvalidShape  = errors.New("invalid shape")
)

// IndexError describes a coordinate that cannot be mapped onto a shape.
// It unwraps to ErrRankMismatch or ErrOutOfRange.
type IndexError struct {
	Kind  error // ErrRankMismatch or ErrOutOfRange
	Coord []int
	Shape Shape
	Axis  int // Offending axis (ErrOutOfRange only)
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	if errors.Is(e.Kind, ErrOutOfRange) {
		return fmt.Sprintf("%v: index %d on axis %d (size %d), coordinate %v, shape %v",
			e.Kind, e.Coord[e.Axis], e.Axis, e.Shape[e.Axis], e.Coord, e.Shape)
	}
	return fmt.Sprintf("%v: coordinate %v has %d axes, shape %v has %d",
		e.Kind, e.Coord, len(e.Coord), e.Shape, len(e.Shape))
}

// Unwrap returns the error kind.
func (e *IndexError) Unwrap() error {
	return e.Kind
}

// ShapeError describes nested or labelled input whose lengths disagree.
// It unwraps to ErrShapeMismatch.
type ShapeError struct {
	What     string // What was being measured, e.g. "row", "header"
	Position []int  // Position of the offending sequence, may be empty
	Expected int
	Actual   int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if len(e.Position) > 0 {
		return fmt.Sprintf("%v: %s at %v has length %d, expected %d",
			ErrShapeMismatch, e.What, e.Position, e.Actual, e.Expected)
	}
	return fmt.Sprintf("%v: %s has length %d, expected %d", ErrShapeMismatch, e.What, e.Actual, e.Expected)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
