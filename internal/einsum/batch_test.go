package einsum

import (
	"math/rand"
	"testing"

	"github.com/born-ml/einsum/internal/parallel"
	"github.com/born-ml/einsum/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := randomTensor(rng, tensor.Shape{4, 4})
	b := randomTensor(rng, tensor.Shape{4, 4})

	jobs := []Job{
		{Formula: "ij,jk->ik", Operands: []*tensor.Tensor{a, b}},
		{Formula: "ii->", Operands: []*tensor.Tensor{a}},
		{Formula: "ij->ji", Operands: []*tensor.Tensor{b}},
		{Formula: "ij,ij->", Operands: []*tensor.Tensor{a, a}},
	}

	cfg := parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}
	results, err := Batch(jobs, cfg)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, job := range jobs {
		want, err := Einsum(job.Formula, job.Operands...)
		require.NoError(t, err)
		assert.True(t, want.Equal(results[i]), "job %d (%s)", i, job.Formula)
	}
}

func TestBatchSequentialMatchesParallel(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	jobs := make([]Job, 16)
	for i := range jobs {
		x := randomTensor(rng, tensor.Shape{3, 5})
		y := randomTensor(rng, tensor.Shape{5, 2})
		jobs[i] = Job{Formula: "ij,jk->ik", Operands: []*tensor.Tensor{x, y}}
	}

	seq, err := Batch(jobs, parallel.Sequential())
	require.NoError(t, err)
	par, err := Batch(jobs, parallel.DefaultConfig())
	require.NoError(t, err)

	for i := range jobs {
		assert.True(t, seq[i].Equal(par[i]), "job %d", i)
	}
}

func TestBatchReportsLowestFailingJob(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3})

	jobs := []Job{
		{Formula: "ij->i", Operands: []*tensor.Tensor{a}},
		{Formula: "ij,jk->ik", Operands: []*tensor.Tensor{a, a}},
		{Formula: "ij->", Operands: nil},
	}

	results, err := Batch(jobs, parallel.DefaultConfig())
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrDimensionConflict)
	assert.Contains(t, err.Error(), "job 1")
}

func TestBatchEmpty(t *testing.T) {
	results, err := Batch(nil, parallel.DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEvaluateBatch(t *testing.T) {
	f, err := ParseFormula("bij,bjk->bik")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(4))
	sets := make([][]*tensor.Tensor, 10)
	for i := range sets {
		sets[i] = []*tensor.Tensor{
			randomTensor(rng, tensor.Shape{2, 3, 4}),
			randomTensor(rng, tensor.Shape{2, 4, 2}),
		}
	}

	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2}
	results, err := f.EvaluateBatch(sets, cfg)
	require.NoError(t, err)
	require.Len(t, results, len(sets))

	for i, ops := range sets {
		want, err := f.Evaluate(ops...)
		require.NoError(t, err)
		assert.True(t, want.Equal(results[i]), "set %d", i)
	}
}

func TestEvaluateBatchError(t *testing.T) {
	f, err := ParseFormula("ij,jk->ik")
	require.NoError(t, err)

	a := tensor.Zeros(tensor.Shape{2, 2})
	sets := [][]*tensor.Tensor{{a, a}, {a}}

	results, err := f.EvaluateBatch(sets, parallel.DefaultConfig())
	assert.Nil(t, results)
	assert.ErrorIs(t, err, ErrArityMismatch)
	assert.Contains(t, err.Error(), "operand set 1")
}
