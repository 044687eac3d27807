package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"reversi-engine/othello"
)

// Options configure a new Engine.
type Options struct {
	CacheMB int
	Weights Weights
	Logger  zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		CacheMB: DefaultTTSize,
		Weights: DefaultWeights(),
		Logger:  zerolog.Nop(),
	}
}

// Engine is the search context. Everything a search mutates lives here, so
// two engines never interfere. An Engine must not be used by two goroutines
// at once.
type Engine struct {
	eval *Evaluator
	tt   *TransTable
	log  zerolog.Logger

	stats Stats
	stop  stopper
}

func New(opts Options) *Engine {
	if opts.CacheMB <= 0 {
		opts.CacheMB = DefaultTTSize
	}
	return &Engine{
		eval: NewEvaluator(opts.Weights),
		tt:   NewTransTable(opts.CacheMB),
		log:  opts.Logger,
	}
}

func (e *Engine) Evaluator() *Evaluator { return e.eval }

func (e *Engine) Cache() *TransTable { return e.tt }

// Stats returns the counters of the last search.
func (e *Engine) Stats() Stats { return e.stats }

// SetWeights swaps the evaluation weights. Cached scores were computed with
// the old weights, so the cache is cleared.
func (e *Engine) SetWeights(w Weights) {
	e.eval = NewEvaluator(w)
	e.tt.Clear()
}

// ResetCache drops every cached evaluation.
func (e *Engine) ResetCache() { e.tt.Clear() }

// SetOption changes a named setting: "hash" is the cache size in MB, any
// other name is an evaluation weight.
func (e *Engine) SetOption(name, value string) error {
	if strings.EqualFold(name, "hash") {
		mb, err := strconv.Atoi(value)
		if err != nil || mb <= 0 {
			return fmt.Errorf("hash: invalid size %q", value)
		}
		e.tt = NewTransTable(mb)
		return nil
	}
	w := e.eval.Weights()
	if err := w.Set(name, value); err != nil {
		return err
	}
	e.SetWeights(w)
	return nil
}

// evaluate returns the cached or freshly computed score of b for player.
// The evaluation is antisymmetric, so an entry stored for the opponent
// answers as well once negated.
func (e *Engine) evaluate(b *othello.Board, player othello.Color) float64 {
	k, size := b.Key(), b.Size()
	if s, ok := e.tt.Probe(k, size, player); ok {
		e.stats.CacheHits++
		return s
	}
	if s, ok := e.tt.Probe(k, size, player.Opponent()); ok {
		e.stats.CacheHits++
		return -s
	}
	e.stats.CacheMisses++
	s := e.eval.Evaluate(b, player)
	e.tt.Store(k, size, player, s)
	return s
}
