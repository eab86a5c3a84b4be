package problems

import (
	"math"
)

// Rastrigin is a highly multimodal problem with global minimum 0 at the
// origin. Its gradient is obtained numerically.
type Rastrigin struct {
	dim int
}

func NewRastrigin(dim int) *Rastrigin {
	return &Rastrigin{dim: dim}
}

func (r *Rastrigin) Name() string { return "rastrigin" }

func (r *Rastrigin) Dim() int { return r.dim }

func (r *Rastrigin) Eval(x []float64) float64 {
	sum := 10 * float64(len(x))
	for _, v := range x {
		sum += v*v - 10*math.Cos(2*math.Pi*v)
	}
	return sum
}

func (r *Rastrigin) Grad(dst, x []float64) {
	NumGrad(r.Eval, dst, x)
}
