package engine

import (
	"context"
	"time"
)

// Limits bound a search. Zero fields mean "no limit"; a zero Depth searches
// until the board is full.
type Limits struct {
	Depth    int
	MoveTime time.Duration
	Nodes    uint64
}

// clock and context are polled every checkInterval nodes, the node budget on
// every node.
const checkInterval = 256

// stopper decides when a running search has to give up.
type stopper struct {
	ctx      context.Context
	deadline time.Time
	maxNodes uint64
	stopped  bool
}

func (s *stopper) start(ctx context.Context, l Limits) {
	s.ctx = ctx
	s.maxNodes = l.Nodes
	s.stopped = false
	s.deadline = time.Time{}
	if l.MoveTime > 0 {
		s.deadline = time.Now().Add(l.MoveTime)
	}
	if d, ok := ctx.Deadline(); ok && (s.deadline.IsZero() || d.Before(s.deadline)) {
		s.deadline = d
	}
}

// check reports whether the search must stop after visiting nodes nodes.
// Once it returns true it keeps returning true until the next start.
func (s *stopper) check(nodes uint64) bool {
	if s.stopped {
		return true
	}
	if s.maxNodes > 0 && nodes > s.maxNodes {
		s.stopped = true
		return true
	}
	if nodes%checkInterval != 0 {
		return false
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.stopped = true
	} else if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.stopped = true
	}
	return s.stopped
}
