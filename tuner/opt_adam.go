package tuner

import "math"

type Adam struct {
	M, V  []float64 // First and second moment estimates
	LR    float64
	Beta1 float64 // Typically 0.9
	Beta2 float64 // Typically 0.999
	Eps   float64
	T     int // Timestep (for bias correction)
}

func NewAdam(numParams int, lr float64) *Adam {
	return &Adam{
		M:     make([]float64, numParams),
		V:     make([]float64, numParams),
		LR:    lr,
		Beta1: 0.9,
		Beta2: 0.999,
		Eps:   1e-8,
	}
}

// Step moves params against grads and keeps every coefficient non-negative,
// since the engine rejects negative weights.
func (opt *Adam) Step(params []float64, grads []float64) {
	opt.T++
	bc1 := 1.0 - math.Pow(opt.Beta1, float64(opt.T))
	bc2 := 1.0 - math.Pow(opt.Beta2, float64(opt.T))

	for i := range params {
		g := grads[i]
		if g == 0 {
			continue
		}
		opt.M[i] = opt.Beta1*opt.M[i] + (1-opt.Beta1)*g
		opt.V[i] = opt.Beta2*opt.V[i] + (1-opt.Beta2)*g*g

		mHat := opt.M[i] / bc1
		vHat := opt.V[i] / bc2
		params[i] -= opt.LR * mHat / (math.Sqrt(vHat) + opt.Eps)
		if params[i] < 0 {
			params[i] = 0
		}
	}
}
