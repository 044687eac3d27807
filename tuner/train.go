package tuner

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"reversi-engine/engine"
)

// Result is the outcome of a training run.
type Result struct {
	Weights   engine.Weights
	K         float64
	TrainLoss float64
	ValLoss   float64
}

// Train fits the heuristic coefficients of start to data. The tail of data
// (cfg.Holdout of it) is never trained on; it drives the k refit and the
// reported validation loss.
func Train(ctx context.Context, data []Sample, start engine.Weights, cfg TrainConfig, log zerolog.Logger) (Result, error) {
	params := ParamsOf(start)
	grads := make([]float64, len(params))
	opt := NewAdam(len(params), cfg.LR)
	k := cfg.K
	if k <= 0 {
		k = 1
	}

	bs := cfg.Batch
	if bs <= 0 {
		bs = 4096
	}
	holdoutSize := int(float64(len(data)) * cfg.Holdout)
	trainSize := len(data) - holdoutSize
	train, holdout := data[:trainSize], data[trainSize:]

	rng := rand.New(rand.NewSource(cfg.Seed))
	order := make([]int, trainSize)
	for i := range order {
		order[i] = i
	}

	res := Result{Weights: start, K: k}
	for ep := 1; ep <= cfg.Epochs; ep++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		t0 := time.Now()
		if cfg.Shuffle {
			rng.Shuffle(trainSize, func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		totalLoss, totalN := 0.0, 0
		for off := 0; off < trainSize; off += bs {
			end := min(off+bs, trainSize)
			loss, n := batchGrad(params, train, order, off, end, k, cfg.L2, grads)
			totalLoss += loss
			totalN += n
			opt.Step(params, grads)
		}
		if cfg.AutoK && len(holdout) > 0 {
			k = refitK(params, holdout, k)
		}

		res.TrainLoss = totalLoss / float64(max(1, totalN))
		res.ValLoss = Loss(params, holdout, k)
		log.Info().
			Int("epoch", ep).
			Float64("loss", res.TrainLoss).
			Float64("val_loss", res.ValLoss).
			Float64("k", k).
			Int("n", totalN).
			Dur("time", time.Since(t0)).
			Msg("epoch done")
	}
	res.Weights = WithParams(start, params)
	res.K = k
	return res, nil
}
