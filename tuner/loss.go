package tuner

import "math"

// logistic probability p = 1/(1+exp(-k*E))
func prob(k, eval float64) float64 {
	z := k * eval
	if z > 40 {
		return 1
	}
	if z < -40 {
		return 0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// Eval is the heuristic score of s under params, from black's side.
func Eval(params []float64, s *Sample) float64 {
	var e float64
	for i, f := range s.Features {
		e += params[i] * f
	}
	return e
}

// Loss is the mean squared error between predicted and actual outcome.
func Loss(params []float64, data []Sample, k float64) float64 {
	if len(data) == 0 {
		return 0
	}
	var sum float64
	for i := range data {
		d := prob(k, Eval(params, &data[i])) - data[i].Label
		sum += d * d
	}
	return sum / float64(len(data))
}

// batchGrad accumulates the gradient of the mean loss over data[order[off:end]]
// into grads, adding an L2 penalty. It returns the summed loss and the count.
func batchGrad(params []float64, data []Sample, order []int, off, end int, k, l2 float64, grads []float64) (float64, int) {
	for i := range grads {
		grads[i] = 0
	}
	var loss float64
	n := 0
	for i := off; i < end; i++ {
		s := &data[order[i]]
		p := prob(k, Eval(params, s))
		diff := p - s.Label
		loss += diff * diff
		dLdE := 2.0 * diff * k * p * (1.0 - p)
		for j, f := range s.Features {
			grads[j] += dLdE * f
		}
		n++
	}
	if n == 0 {
		return 0, 0
	}
	for j := range grads {
		grads[j] = grads[j]/float64(n) + 2*l2*params[j]
	}
	return loss, n
}

// refitK does a one-dimensional search for the logistic scale on data.
func refitK(params []float64, data []Sample, k0 float64) float64 {
	bestK, bestLoss := k0, math.MaxFloat64
	for _, k := range []float64{k0 * 0.5, k0 * 0.67, k0 * 0.8, k0 * 0.9, k0, k0 * 1.1, k0 * 1.25, k0 * 1.5, k0 * 2} {
		if l := Loss(params, data, k); l < bestLoss {
			bestLoss, bestK = l, k
		}
	}
	return bestK
}
