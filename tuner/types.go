package tuner

import (
	"reversi-engine/engine"
)

// NumParams is the number of tuned coefficients. The terminal scale is not
// tuned: finished games are scored exactly.
const NumParams = 5

// ParamNames matches the engine weight names, in parameter order.
var ParamNames = [NumParams]string{"mobility", "corners", "frontier", "positional", "stability"}

// Sample is one position seen during self-play.
type Sample struct {
	Features [NumParams]float64 // phase-scaled terms from black's side
	Label    float64            // 1 black won, 0.5 draw, 0 white won
}

type TrainConfig struct {
	Epochs  int
	Batch   int
	LR      float64
	L2      float64
	K       float64 // logistic scale of the evaluation
	AutoK   bool
	Shuffle bool
	Holdout float64 // fraction of samples kept out of training for k refit and validation
	Seed    int64
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:  50,
		Batch:   4096,
		LR:      0.05,
		K:       1,
		AutoK:   true,
		Shuffle: true,
		Holdout: 0.1,
		Seed:    42,
	}
}

// FeaturesOf turns an evaluation breakdown into the feature vector whose dot
// product with the parameters is the heuristic score.
func FeaturesOf(t engine.Terms) [NumParams]float64 {
	early, late := 1-t.Phase, 1+t.Phase
	return [NumParams]float64{
		early * t.Mobility,
		late * t.Corners,
		early * t.Frontier,
		late * t.Positional,
		late * t.Stability,
	}
}

func ParamsOf(w engine.Weights) []float64 {
	return []float64{w.Mobility, w.Corners, w.Frontier, w.Positional, w.Stability}
}

// WithParams copies params into w. Negative values are clamped to zero.
func WithParams(w engine.Weights, params []float64) engine.Weights {
	p := make([]float64, NumParams)
	for i := range p {
		p[i] = max(params[i], 0)
	}
	w.Mobility, w.Corners, w.Frontier, w.Positional, w.Stability = p[0], p[1], p[2], p[3], p[4]
	return w
}
