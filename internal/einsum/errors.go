package einsum

import (
	"errors"
	"fmt"

	"github.com/born-ml/einsum/internal/tensor"
)

// Error kinds reported while parsing and binding a formula.
// Rank disagreements reuse tensor.ErrRankMismatch.
var (
	ErrInvalidFormula      = errors.New("invalid formula")
	ErrArityMismatch       = errors.New("arity mismatch")
	ErrDimensionConflict   = errors.New("dimension conflict")
	ErrUnboundOutputSymbol = errors.New("unbound output symbol")
	ErrNilOperand          = errors.New("nil operand")
)

// ArityError reports a formula whose operand groups disagree with the
// number of supplied tensors.
type ArityError struct {
	Groups   int
	Operands int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	return fmt.Sprintf("%v: formula declares %d operands, got %d tensors", ErrArityMismatch, e.Groups, e.Operands)
}

// Unwrap returns ErrArityMismatch.
func (e *ArityError) Unwrap() error {
	return ErrArityMismatch
}

// OperandError reports an operand whose symbol group length differs
// from its rank.
type OperandError struct {
	Operand int
	Symbols string
	Rank    int
}

// Error implements the error interface.
func (e *OperandError) Error() string {
	return fmt.Sprintf("%v: operand %d has rank %d but formula group %q has %d symbols",
		tensor.ErrRankMismatch, e.Operand, e.Rank, e.Symbols, len([]rune(e.Symbols)))
}

// Unwrap returns tensor.ErrRankMismatch.
func (e *OperandError) Unwrap() error {
	return tensor.ErrRankMismatch
}

// DimensionError reports a symbol bound to two different sizes.
type DimensionError struct {
	Symbol rune

	// Where the size was first established.
	FirstOperand, FirstAxis, Expected int

	// The conflicting occurrence.
	Operand, Axis, Actual int
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: symbol %q has size %d (operand %d axis %d) but size %d (operand %d axis %d)",
		ErrDimensionConflict, e.Symbol, e.Expected, e.FirstOperand, e.FirstAxis, e.Actual, e.Operand, e.Axis)
}

// Unwrap returns ErrDimensionConflict.
func (e *DimensionError) Unwrap() error {
	return ErrDimensionConflict
}

// SymbolError reports an output symbol that no operand defines.
type SymbolError struct {
	Symbol rune
}

// Error implements the error interface.
func (e *SymbolError) Error() string {
	return fmt.Sprintf("%v: output symbol %q does not appear in any operand", ErrUnboundOutputSymbol, e.Symbol)
}

// Unwrap returns ErrUnboundOutputSymbol.
func (e *SymbolError) Unwrap() error {
	return ErrUnboundOutputSymbol
}
