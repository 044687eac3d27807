package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"reversi-engine/othello"
)

func main() {
	size := flag.Int("size", othello.DefaultSize, "board size for the start position")
	boardText := flag.String("board", "", "position in text form, rows split by '/' then the side (empty = start position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-move node counts at the root")
	repeat := flag.Int("repeat", 1, "repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := loadBoard(*boardText, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "board: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		player := board.CurrentPlayer()
		var sum uint64
		// LegalMoves is row-major, so the output is already stable.
		for _, m := range board.LegalMoves(player) {
			st := board.MakeMove(m, player)
			n := othello.Perft(board, *depth-1)
			board.UnmakeMove(st)
			fmt.Printf("%s: %d\n", m, n)
			sum += n
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += othello.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func loadBoard(text string, size int) (*othello.Board, error) {
	if text == "" {
		return othello.NewBoard(size)
	}
	return othello.ParseBoard(text)
}
