package engine

import (
	"unsafe"

	"reversi-engine/othello"
)

const (
	// In MB
	DefaultTTSize = 16
	clusterSize   = 4
)

// TransTable caches leaf evaluations. Entries are matched on the exact
// position key, board size and evaluating player, so a hit is never a false
// positive. When a cluster is full the oldest entry is replaced, which only
// costs a recomputation later.
type TransTable struct {
	entries      []TTEntry
	clusterCount uint64
	clock        uint64

	hits   uint64
	misses uint64
}

type TTEntry struct {
	Key    othello.Key
	Score  float64
	age    uint64
	Size   uint8
	Player othello.Color
}

// NewTransTable allocates a table of roughly sizeMB megabytes.
func NewTransTable(sizeMB int) *TransTable {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	entrySize := uint64(unsafe.Sizeof(TTEntry{}))
	clusterBytes := entrySize * clusterSize
	clusterCount := uint64(sizeMB) * 1024 * 1024 / clusterBytes
	if clusterCount == 0 {
		clusterCount = 1
	}
	return &TransTable{
		entries:      make([]TTEntry, clusterCount*clusterSize),
		clusterCount: clusterCount,
	}
}

func hashKey(k othello.Key, size int, player othello.Color) uint64 {
	h := uint64(size)<<8 | uint64(player)
	h *= 0x9e3779b97f4a7c15
	for _, w := range k {
		h ^= w
		h *= 0xbf58476d1ce4e5b9
		h ^= h >> 31
	}
	return h
}

func (tt *TransTable) cluster(k othello.Key, size int, player othello.Color) int {
	return int(hashKey(k, size, player)%tt.clusterCount) * clusterSize
}

func (e *TTEntry) matches(k othello.Key, size int, player othello.Color) bool {
	return e.Player == player && e.Player != othello.Empty && int(e.Size) == size && e.Key == k
}

// Probe looks up the score stored for (k, size, player).
func (tt *TransTable) Probe(k othello.Key, size int, player othello.Color) (float64, bool) {
	base := tt.cluster(k, size, player)
	for i := 0; i < clusterSize; i++ {
		e := &tt.entries[base+i]
		if e.matches(k, size, player) {
			tt.hits++
			return e.Score, true
		}
	}
	tt.misses++
	return 0, false
}

// Store records score for (k, size, player).
func (tt *TransTable) Store(k othello.Key, size int, player othello.Color, score float64) {
	base := tt.cluster(k, size, player)
	tt.clock++
	targetIdx := -1

	// Prefer updating an existing entry
	for i := 0; i < clusterSize; i++ {
		if tt.entries[base+i].matches(k, size, player) {
			targetIdx = base + i
			break
		}
	}

	// Next look for an empty slot
	if targetIdx == -1 {
		for i := 0; i < clusterSize; i++ {
			if tt.entries[base+i].Player == othello.Empty {
				targetIdx = base + i
				break
			}
		}
	}

	// Otherwise replace the oldest entry in the cluster
	if targetIdx == -1 {
		targetIdx = base
		for i := 1; i < clusterSize; i++ {
			if tt.entries[base+i].age < tt.entries[targetIdx].age {
				targetIdx = base + i
			}
		}
	}

	tt.entries[targetIdx] = TTEntry{
		Key:    k,
		Score:  score,
		age:    tt.clock,
		Size:   uint8(size),
		Player: player,
	}
}

// Clear drops every entry and resets the counters.
func (tt *TransTable) Clear() {
	clear(tt.entries)
	tt.clock = 0
	tt.hits, tt.misses = 0, 0
}

// Len counts the occupied entries.
func (tt *TransTable) Len() int {
	n := 0
	for i := range tt.entries {
		if tt.entries[i].Player != othello.Empty {
			n++
		}
	}
	return n
}

func (tt *TransTable) Capacity() int  { return len(tt.entries) }
func (tt *TransTable) Hits() uint64   { return tt.hits }
func (tt *TransTable) Misses() uint64 { return tt.misses }
