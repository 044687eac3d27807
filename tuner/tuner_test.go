package tuner

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"reversi-engine/engine"
	"reversi-engine/othello"
)

func TestFeaturesReproduceEvaluation(t *testing.T) {
	ev := engine.NewEvaluator(engine.DefaultWeights())
	params := ParamsOf(engine.DefaultWeights())
	rng := rand.New(rand.NewSource(4))
	for game := 0; game < 10; game++ {
		b, err := othello.NewBoard(8)
		if err != nil {
			t.Fatal(err)
		}
		for ply := 0; ply < 20 && !b.IsGameOver(); ply++ {
			side := b.CurrentPlayer()
			legal := b.LegalMoves(side)
			if err := b.Apply(legal[rng.Intn(len(legal))], side); err != nil {
				t.Fatal(err)
			}
			if b.IsGameOver() {
				break
			}
			s := Sample{Features: FeaturesOf(ev.Breakdown(b, othello.Black))}
			if got, want := Eval(params, &s), ev.Evaluate(b, othello.Black); math.Abs(got-want) > 1e-9 {
				t.Fatalf("feature score %v, evaluator %v", got, want)
			}
		}
	}
}

// synthetic builds samples whose labels follow the logistic model for truth.
func synthetic(n int, truth []float64, k float64) []Sample {
	rng := rand.New(rand.NewSource(1))
	data := make([]Sample, n)
	for i := range data {
		for j := range data[i].Features {
			data[i].Features[j] = rng.Float64()*2 - 1
		}
		data[i].Label = prob(k, Eval(truth, &data[i]))
	}
	return data
}

func TestTrainReducesLoss(t *testing.T) {
	truth := []float64{4, 1, 0.5, 3, 2}
	data := synthetic(4000, truth, 1)
	start := engine.DefaultWeights()

	cfg := DefaultTrainConfig()
	cfg.Epochs = 40
	cfg.Batch = 256
	cfg.AutoK = false
	before := Loss(ParamsOf(start), data, cfg.K)

	res, err := Train(context.Background(), data, start, cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	after := Loss(ParamsOf(res.Weights), data, res.K)
	if after >= before {
		t.Fatalf("loss %v did not improve on %v", after, before)
	}
	if res.Weights.Terminal != start.Terminal {
		t.Fatal("terminal scale changed")
	}
	for _, p := range ParamsOf(res.Weights) {
		if p < 0 {
			t.Fatalf("negative weight in %+v", res.Weights)
		}
	}
}

func TestTrainHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Train(ctx, synthetic(10, []float64{1, 1, 1, 1, 1}, 1), engine.DefaultWeights(), DefaultTrainConfig(), zerolog.Nop()); err == nil {
		t.Fatal("cancelled training reported success")
	}
}

func TestGenerateLabels(t *testing.T) {
	cfg := GenConfig{Games: 3, Depth: 1, Size: 6, Parallel: 2, RandomPlies: 2, Seed: 9, CacheMB: 1, Weights: engine.DefaultWeights()}
	first, err := Generate(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if len(first) == 0 {
		t.Fatal("no samples")
	}
	for _, s := range first {
		if s.Label != 0 && s.Label != 0.5 && s.Label != 1 {
			t.Fatalf("label %v", s.Label)
		}
	}
	second, err := Generate(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("%d samples, then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs between runs", i)
		}
	}
}

func TestWithParamsClampsNegative(t *testing.T) {
	w := WithParams(engine.DefaultWeights(), []float64{-1, 2, 3, 4, 5})
	if w.Mobility != 0 || w.Stability != 5 {
		t.Fatalf("unexpected weights %+v", w)
	}
}
