package problems

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Quadratic is the strictly convex problem f(x) = 0.5 x'Ax - b'x with A
// symmetric positive definite. Its unique minimizer solves Ax = b.
type Quadratic struct {
	a *mat.SymDense
	b *mat.VecDense
}

// NewQuadratic builds a quadratic problem from the given SPD matrix a and
// vector b. The caller is responsible for a being positive definite.
func NewQuadratic(a *mat.SymDense, b *mat.VecDense) *Quadratic {
	return &Quadratic{a: a, b: b}
}

// RandomQuadratic builds a random n-dimensional quadratic problem. The
// matrix is M'M + nI for a random M, which is positive definite for any M.
func RandomQuadratic(n int, seed int64) *Quadratic {
	rng := rand.New(rand.NewSource(seed))

	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, rng.NormFloat64())
		}
	}

	var mtm mat.Dense
	mtm.Mul(m.T(), m)

	a := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := mtm.At(i, j)
			if i == j {
				v += float64(n)
			}
			a.SetSym(i, j, v)
		}
	}

	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		b.SetVec(i, rng.NormFloat64())
	}

	return &Quadratic{a: a, b: b}
}

func (q *Quadratic) Name() string { return "quadratic" }

func (q *Quadratic) Dim() int { return q.b.Len() }

func (q *Quadratic) Eval(x []float64) float64 {
	xv := mat.NewVecDense(len(x), x)
	var ax mat.VecDense
	ax.MulVec(q.a, xv)
	return 0.5*mat.Dot(xv, &ax) - mat.Dot(q.b, xv)
}

func (q *Quadratic) Grad(dst, x []float64) {
	xv := mat.NewVecDense(len(x), x)
	av := mat.NewVecDense(len(dst), dst)
	av.MulVec(q.a, xv)
	av.SubVec(av, q.b)
}

// Minimizer solves Ax = b for the exact minimizer.
func (q *Quadratic) Minimizer() ([]float64, error) {
	n := q.b.Len()
	var x mat.VecDense
	if err := x.SolveVec(q.a, q.b); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	copy(out, x.RawVector().Data)
	return out, nil
}
