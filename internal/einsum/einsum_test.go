package einsum

import (
	"math/rand"
	"testing"

	"github.com/born-ml/einsum/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func mustRows(t *testing.T, rows [][]float64) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromRows(rows)
	require.NoError(t, err)
	return x
}

func mustSlice(t *testing.T, data []float64, shape tensor.Shape) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return x
}

func randomTensor(rng *rand.Rand, shape tensor.Shape) *tensor.Tensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	x, err := tensor.FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return x
}

func at(t *testing.T, x *tensor.Tensor, coord ...int) float64 {
	t.Helper()
	v, err := x.At(coord...)
	require.NoError(t, err)
	return v
}

func TestEinsumIdentity(t *testing.T) {
	r := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	out, err := Einsum("ij->ij", r)
	require.NoError(t, err)
	assert.True(t, r.Equal(out))

	// The result owns its storage.
	require.NoError(t, out.Set(100, 0, 0))
	assert.Equal(t, 1.0, at(t, r, 0, 0))
}

func TestEinsumMatMulAgainstGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := randomTensor(rng, tensor.Shape{4, 5})
	b := randomTensor(rng, tensor.Shape{5, 3})

	out, err := Einsum("ij,jk->ik", a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 3}, out.Shape())

	da, err := a.ToDense()
	require.NoError(t, err)
	db, err := b.ToDense()
	require.NoError(t, err)
	var want mat.Dense
	want.Mul(da, db)

	assert.True(t, tensor.FromDense(&want).AllClose(out, tol))
}

func TestEinsumMatMulByHand(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{1, 0}, {1, 1}})

	out, err := Einsum("ij,jk->ik", a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 7, 4}, out.Data())
}

func TestEinsumTransitivity(t *testing.T) {
	r := tensor.Zeros(tensor.Shape{3, 3})
	require.NoError(t, r.Set(1, 0, 1))
	require.NoError(t, r.Set(1, 1, 2))

	r2, err := Einsum("ij,jk->ik", r, r)
	require.NoError(t, err)

	entries := r2.NonZero(1e-9)
	require.Len(t, entries, 1)
	assert.Equal(t, []int{0, 2}, entries[0].Coord)
	assert.Equal(t, 1.0, entries[0].Value)
}

func TestEinsumSyllogism(t *testing.T) {
	facts := mustRows(t, [][]float64{{1, 0}, {0, 1}})
	rules := mustRows(t, [][]float64{{1, 0}, {0, 1}})

	conclusion, err := Einsum("sc,cq->sq", facts, rules)
	require.NoError(t, err)
	assert.True(t, conclusion.Equal(facts))
}

func TestEinsumContextPreserved(t *testing.T) {
	data := make([][][]float64, 3)
	for i := range data {
		data[i] = make([][]float64, 3)
		for j := range data[i] {
			data[i][j] = make([]float64, 2)
		}
	}
	data[0][1][0] = 1
	data[1][2][0] = 1
	data[1][2][1] = 1
	r, err := tensor.FromCubes(data)
	require.NoError(t, err)

	r2, err := Einsum("xyc,yzc->xzc", r, r)
	require.NoError(t, err)

	entries := r2.NonZero(1e-9)
	require.Len(t, entries, 1)
	assert.Equal(t, []int{0, 2, 0}, entries[0].Coord)
	assert.Equal(t, 1.0, entries[0].Value)
}

func TestEinsumFullReduction(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	out, err := Einsum("ij->", a)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rank())
	assert.Equal(t, 21.0, out.Item())
}

func TestEinsumReductions(t *testing.T) {
	a := mustRows(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	tests := []struct {
		formula string
		shape   tensor.Shape
		want    []float64
	}{
		{"ij->ji", tensor.Shape{3, 3}, []float64{1, 4, 7, 2, 5, 8, 3, 6, 9}},
		{"ij->i", tensor.Shape{3}, []float64{6, 15, 24}},
		{"ij->j", tensor.Shape{3}, []float64{12, 15, 18}},
		{"ii->", tensor.Shape{}, []float64{15}},
		{"ii->i", tensor.Shape{3}, []float64{1, 5, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			out, err := Einsum(tt.formula, a)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, out.Shape())
			assert.Equal(t, tt.want, out.Data())
		})
	}
}

func TestEinsumVectorProducts(t *testing.T) {
	u := mustSlice(t, []float64{1, 2, 3}, tensor.Shape{3})
	v := mustSlice(t, []float64{4, 5}, tensor.Shape{2})
	w := mustSlice(t, []float64{-1, 0, 2}, tensor.Shape{3})

	dot, err := Einsum("i,i->", u, w)
	require.NoError(t, err)
	assert.Equal(t, 5.0, dot.Item())

	outer, err := Einsum("i,j->ij", u, v)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, outer.Shape())
	assert.Equal(t, []float64{4, 5, 8, 10, 12, 15}, outer.Data())
}

func TestEinsumRepeatedOutputSymbol(t *testing.T) {
	u := mustSlice(t, []float64{1, 2, 3}, tensor.Shape{3})

	diag, err := Einsum("i->ii", u)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 3}, diag.Shape())
	assert.Equal(t, []float64{
		1, 0, 0,
		0, 2, 0,
		0, 0, 3,
	}, diag.Data())
}

func TestEinsumBatchedMatMul(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := randomTensor(rng, tensor.Shape{3, 2, 4})
	b := randomTensor(rng, tensor.Shape{3, 4, 5})

	out, err := Einsum("bij,bjk->bik", a, b)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{3, 2, 5}, out.Shape())

	for batch := 0; batch < 3; batch++ {
		da := mat.NewDense(2, 4, a.Data()[batch*8:(batch+1)*8])
		db := mat.NewDense(4, 5, b.Data()[batch*20:(batch+1)*20])
		var want mat.Dense
		want.Mul(da, db)

		for i := 0; i < 2; i++ {
			for k := 0; k < 5; k++ {
				assert.InDelta(t, want.At(i, k), at(t, out, batch, i, k), tol)
			}
		}
	}
}

func TestEinsumThreeOperands(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomTensor(rng, tensor.Shape{2, 3})
	b := randomTensor(rng, tensor.Shape{3, 4})
	c := randomTensor(rng, tensor.Shape{4, 2})

	out, err := Einsum("ij,jk,kl->il", a, b, c)
	require.NoError(t, err)

	da, _ := a.ToDense()
	db, _ := b.ToDense()
	dc, _ := c.ToDense()
	var ab, want mat.Dense
	ab.Mul(da, db)
	want.Mul(&ab, dc)

	assert.True(t, tensor.FromDense(&want).AllClose(out, tol))
}

func TestEinsumScalarOperands(t *testing.T) {
	out, err := Einsum(",->", tensor.Scalar(3), tensor.Scalar(-2))
	require.NoError(t, err)
	assert.Equal(t, -6.0, out.Item())

	u := mustSlice(t, []float64{1, 2}, tensor.Shape{2})
	scaled, err := Einsum(",i->i", tensor.Scalar(10), u)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, scaled.Data())
}

func TestEinsumOperandOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomTensor(rng, tensor.Shape{3, 4})
	b := randomTensor(rng, tensor.Shape{4, 2})

	ab, err := Einsum("ij,jk->ik", a, b)
	require.NoError(t, err)
	ba, err := Einsum("jk,ij->ik", b, a)
	require.NoError(t, err)

	assert.True(t, ab.AllClose(ba, tol))
}

func TestEinsumDoesNotMutateInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := randomTensor(rng, tensor.Shape{3, 3})
	before := a.Clone()

	_, err := Einsum("ij,jk->ik", a, a)
	require.NoError(t, err)
	_, err = Einsum("ii->", a)
	require.NoError(t, err)

	assert.True(t, before.Equal(a))
}

func TestEinsumErrors(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3})
	b := tensor.Zeros(tensor.Shape{4, 5})

	tests := []struct {
		name     string
		formula  string
		operands []*tensor.Tensor
		want     error
	}{
		{"dimension conflict", "ij,jk->ik", []*tensor.Tensor{a, b}, ErrDimensionConflict},
		{"arity", "ij,jk->ik", []*tensor.Tensor{a}, ErrArityMismatch},
		{"rank", "ijk->i", []*tensor.Tensor{a}, tensor.ErrRankMismatch},
		{"unbound output", "ij->k", []*tensor.Tensor{a}, ErrUnboundOutputSymbol},
		{"malformed", "ij", []*tensor.Tensor{a}, ErrInvalidFormula},
		{"nil operand", "ij->i", []*tensor.Tensor{nil}, ErrNilOperand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Einsum(tt.formula, tt.operands...)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, out, "failed contraction must not return a tensor")
		})
	}
}

func TestFormulaEvaluateReuse(t *testing.T) {
	f, err := ParseFormula("ij->j")
	require.NoError(t, err)

	x := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	y := mustRows(t, [][]float64{{1, 1, 1}})

	sx, err := f.Evaluate(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, sx.Data())

	sy, err := f.Evaluate(y)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, sy.Data())
}

func BenchmarkEinsum(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	x := randomTensor(rng, tensor.Shape{32, 32})
	y := randomTensor(rng, tensor.Shape{32, 32})

	b.Run("MatMul32", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Einsum("ij,jk->ik", x, y)
		}
	})

	b.Run("Trace32", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Einsum("ii->", x)
		}
	})
}
