package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

func main() {
	// Usage: go run ./cmd/benchrun
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, depth := range []string{"6", "8", "9"} {
		run("go", "run", "./cmd/perft", "-depth", depth, "-label", "Start8")
	}
	run("go", "run", "./cmd/perft", "-size", "6", "-depth", "8", "-label", "Start6")
	_ = run("go", "run", "./cmd/perft",
		"-board", "......../......../..XXXO../..XXOO../..XOXO../...XOO../......../........ O",
		"-depth", "5", "-label", "Midgame")

	fmt.Println("\nSearch:")
	run("go", "run", "./cmd/searchbench", "-depth", "6", "-repeat", "3")
	os.Exit(0)
}
