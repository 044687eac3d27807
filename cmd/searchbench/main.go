package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"reversi-engine/engine"
	"reversi-engine/logx"
	"reversi-engine/othello"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 6, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	boardFlag := flag.String("board", "", "position in text form (empty = start position)")
	sizeFlag := flag.Int("size", othello.DefaultSize, "board size for the start position")
	hashFlag := flag.Int("hash", engine.DefaultTTSize, "evaluation cache size in MB")
	verify := flag.Bool("verify", false, "compare every result against the unpruned search")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	logLevel := flag.String("log", "warn", "engine log level")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	level, err := logx.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("log level: %v", err)
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	var board *othello.Board
	if *boardFlag != "" {
		board, err = othello.ParseBoard(*boardFlag)
	} else {
		board, err = othello.NewBoard(*sizeFlag)
	}
	if err != nil {
		log.Fatalf("board: %v", err)
	}
	player := board.CurrentPlayer()

	fmt.Printf("searchbench: size=%d depth=%d repeat=%d\n%s\n", board.Size(), *depthFlag, *repeatFlag, board.Diagram())

	startAll := time.Now()
	var totalNodes uint64
	for i := 0; i < *repeatFlag; i++ {
		// Fresh engine per run so the cache starts cold.
		eng := engine.New(engine.Options{
			CacheMB: *hashFlag,
			Weights: engine.DefaultWeights(),
			Logger:  logx.New(os.Stderr, level),
		})
		res, err := eng.BestMove(board, player, *depthFlag)
		if err != nil {
			log.Fatalf("search: %v", err)
		}
		st := res.Stats
		totalNodes += st.Nodes
		fmt.Printf("iteration %d: bestmove %v score %.4f nodes=%d cutoffs=%d hits=%d misses=%d time=%v nps=%d\n",
			i+1, res.Move, res.Score, st.Nodes, st.BetaCutoffs, st.CacheHits, st.CacheMisses, st.Elapsed, st.NPS())

		if *verify {
			ref, err := engine.New(engine.DefaultOptions()).Minimax(board, player, *depthFlag)
			if err != nil {
				log.Fatalf("minimax: %v", err)
			}
			if ref.Move != res.Move || ref.Score != res.Score {
				log.Fatalf("verify: alpha-beta %v %v, minimax %v %v", res.Move, res.Score, ref.Move, ref.Score)
			}
			fmt.Printf("verify: ok, minimax visited %d nodes\n", ref.Stats.Nodes)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes: %d\n", totalElapsed, totalNodes)

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
