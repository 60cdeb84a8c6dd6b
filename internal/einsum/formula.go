package einsum

import (
	"fmt"
	"strings"

	"github.com/born-ml/einsum/internal/tensor"
)

// Formula is a parsed subscript expression such as "ij,jk->ik".
//
// Each operand group lists one symbol per axis of the matching operand.
// Symbols may repeat inside a group (diagonal access) and in the output
// (generalized trace). Symbols absent from the output are summed over.
type Formula struct {
	operands [][]rune
	output   []rune
	symbols  []rune // distinct input symbols, first appearance order
}

// ParseFormula parses "<in1>,<in2>,...-><out>".
//
// The string must contain exactly one "->" and, apart from the commas
// separating operand groups, only ASCII letters. Symbols are
// case-sensitive. An empty group denotes a rank-0 operand and an empty
// output denotes a full reduction to a scalar.
//
// Shape-dependent checks happen later, in Bind.
func ParseFormula(s string) (*Formula, error) {
	parts := strings.Split(s, "->")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q must contain exactly one \"->\"", ErrInvalidFormula, s)
	}

	groups := strings.Split(parts[0], ",")
	f := &Formula{operands: make([][]rune, len(groups))}
	seen := make(map[rune]bool)
	for i, group := range groups {
		symbols, err := parseSymbols(group)
		if err != nil {
			return nil, fmt.Errorf("%w: operand %d of %q: %v", ErrInvalidFormula, i, s, err)
		}
		f.operands[i] = symbols
		for _, r := range symbols {
			if !seen[r] {
				seen[r] = true
				f.symbols = append(f.symbols, r)
			}
		}
	}

	output, err := parseSymbols(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: output of %q: %v", ErrInvalidFormula, s, err)
	}
	f.output = output

	return f, nil
}

func parseSymbols(group string) ([]rune, error) {
	symbols := make([]rune, 0, len(group))
	for _, r := range group {
		if !isSymbol(r) {
			return nil, fmt.Errorf("symbol %q is not an ASCII letter", r)
		}
		symbols = append(symbols, r)
	}
	return symbols, nil
}

func isSymbol(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// NumOperands returns the number of operand groups.
func (f *Formula) NumOperands() int {
	return len(f.operands)
}

// Operand returns the symbols of operand group i.
func (f *Formula) Operand(i int) string {
	return string(f.operands[i])
}

// Output returns the output symbols.
func (f *Formula) Output() string {
	return string(f.output)
}

// Symbols returns every distinct symbol in enumeration order
// (first appearance, left to right).
func (f *Formula) Symbols() string {
	return string(f.symbols)
}

// String returns the formula in canonical form.
func (f *Formula) String() string {
	groups := make([]string, len(f.operands))
	for i, op := range f.operands {
		groups[i] = string(op)
	}
	return strings.Join(groups, ",") + "->" + string(f.output)
}

// Binding resolves every symbol of a formula to a dimension size for a
// concrete set of operand shapes.
type Binding struct {
	Symbols     []rune       // Enumeration order of the contraction counter
	Sizes       []int        // Sizes[k] is the size bound to Symbols[k]
	OutputShape tensor.Shape // Sizes of the output symbols, in output order
}

// Size returns the size bound to symbol r.
func (b *Binding) Size(r rune) (int, bool) {
	k := b.index(r)
	if k < 0 {
		return 0, false
	}
	return b.Sizes[k], true
}

func (b *Binding) index(r rune) int {
	for k, s := range b.Symbols {
		if s == r {
			return k
		}
	}
	return -1
}

// Bind checks the formula against operand shapes and resolves symbol sizes.
//
// Checks run in this order, stopping at the first failure:
//  1. operand count (ErrArityMismatch)
//  2. each group length against its operand's rank (tensor.ErrRankMismatch)
//  3. every occurrence of a symbol against its first occurrence (ErrDimensionConflict)
//  4. every output symbol is bound by some operand (ErrUnboundOutputSymbol)
func (f *Formula) Bind(shapes ...tensor.Shape) (*Binding, error) {
	if len(shapes) != len(f.operands) {
		return nil, &ArityError{Groups: len(f.operands), Operands: len(shapes)}
	}

	for i, shape := range shapes {
		if len(f.operands[i]) != len(shape) {
			return nil, &OperandError{Operand: i, Symbols: string(f.operands[i]), Rank: len(shape)}
		}
	}

	b := &Binding{
		Symbols: append([]rune(nil), f.symbols...),
		Sizes:   make([]int, len(f.symbols)),
	}
	type origin struct{ operand, axis int }
	first := make([]origin, len(f.symbols))
	bound := make([]bool, len(f.symbols))
	for i, shape := range shapes {
		for axis, r := range f.operands[i] {
			k := b.index(r)
			size := shape[axis]
			if !bound[k] {
				bound[k] = true
				b.Sizes[k] = size
				first[k] = origin{operand: i, axis: axis}
				continue
			}
			if b.Sizes[k] != size {
				return nil, &DimensionError{
					Symbol:       r,
					FirstOperand: first[k].operand,
					FirstAxis:    first[k].axis,
					Expected:     b.Sizes[k],
					Operand:      i,
					Axis:         axis,
					Actual:       size,
				}
			}
		}
	}

	b.OutputShape = make(tensor.Shape, len(f.output))
	for j, r := range f.output {
		size, ok := b.Size(r)
		if !ok {
			return nil, &SymbolError{Symbol: r}
		}
		b.OutputShape[j] = size
	}

	return b, nil
}
