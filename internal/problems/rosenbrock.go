package problems

import (
	"github.com/copyleftdev/optbench/internal/errors"
)

// Rosenbrock is the classic banana-valley problem. The global minimum is 0
// at the all-ones vector.
type Rosenbrock struct {
	dim int
}

// NewRosenbrock builds a Rosenbrock problem of the given dimensionality,
// which must be at least 2.
func NewRosenbrock(dim int) (*Rosenbrock, error) {
	if dim < 2 {
		return nil, errors.Configf("rosenbrock needs dim >= 2, got %d", dim).
			WithComponent("problems")
	}
	return &Rosenbrock{dim: dim}, nil
}

func (r *Rosenbrock) Name() string { return "rosenbrock" }

func (r *Rosenbrock) Dim() int { return r.dim }

func (r *Rosenbrock) Eval(x []float64) float64 {
	var sum float64
	for i := 0; i < len(x)-1; i++ {
		d := x[i+1] - x[i]*x[i]
		sum += 100*d*d + (1-x[i])*(1-x[i])
	}
	return sum
}

func (r *Rosenbrock) Grad(dst, x []float64) {
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < len(x)-1; i++ {
		d := x[i+1] - x[i]*x[i]
		dst[i] += -400*x[i]*d - 2*(1-x[i])
		dst[i+1] += 200 * d
	}
}
