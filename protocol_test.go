package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"reversi-engine/engine"
)

func runSession(t *testing.T, input string) []string {
	t.Helper()
	var out bytes.Buffer
	opts := engine.DefaultOptions()
	opts.CacheMB = 4
	s, err := newSession(&out, zerolog.Nop(), 8, 3, opts)
	if err != nil {
		t.Fatal(err)
	}
	s.loop(strings.NewReader(input))
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func lastLine(lines []string) string { return lines[len(lines)-1] }

func TestHandshake(t *testing.T) {
	lines := runSession(t, "othello\nisready\n")
	if lines[0] != "id name reversi-engine" {
		t.Fatalf("first line %q", lines[0])
	}
	if lastLine(lines) != "readyok" || lines[len(lines)-2] != "ok" {
		t.Fatalf("unexpected handshake %q", lines)
	}
	if !strings.Contains(strings.Join(lines, "\n"), "option name mobility type float default 2") {
		t.Fatalf("weights not advertised: %q", lines)
	}
}

func TestMoveUndoScore(t *testing.T) {
	lines := runSession(t, strings.Join([]string{
		"moves",
		"move d3",
		"score",
		"undo",
		"score",
		"undo",
	}, "\n"))
	want := []string{
		"moves d3 c4 f5 e6",
		"score black 4 white 1 turn 1 tomove O status in progress",
		"score black 2 white 2 turn 0 tomove X status in progress",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.HasPrefix(lines[3], "info string undo:") {
		t.Fatalf("undo past the start answered %q", lines[3])
	}
}

func TestMalformedInputKeepsLoopAlive(t *testing.T) {
	lines := runSession(t, strings.Join([]string{
		"move z9",
		"move a1",
		"move pass",
		"go depth",
		"go depth x",
		"go sideways 3",
		"frobnicate",
		"setoption name parity value 1",
		"setoption name hash",
		"newgame 7",
		"setboard XXX",
		"isready",
	}, "\n"))
	if len(lines) != 12 {
		t.Fatalf("expected 12 replies, got %d: %q", len(lines), lines)
	}
	for _, l := range lines[:11] {
		if !strings.HasPrefix(l, "info string ") {
			t.Fatalf("expected an info string, got %q", l)
		}
	}
	if lastLine(lines) != "readyok" {
		t.Fatalf("loop died: %q", lines)
	}
}

func TestGoReturnsLegalMove(t *testing.T) {
	lines := runSession(t, "go depth 2\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "info depth 2 ") {
		t.Fatalf("unexpected go output %q", lines)
	}
	fields := strings.Fields(lines[1])
	if fields[0] != "bestmove" || fields[2] != "score" {
		t.Fatalf("bad bestmove line %q", lines[1])
	}
	switch fields[1] {
	case "d3", "c4", "f5", "e6":
	default:
		t.Fatalf("illegal opening move %q", fields[1])
	}
}

func TestSetBoardOnStuckSidePasses(t *testing.T) {
	lines := runSession(t, strings.Join([]string{
		"setboard XXX...../......../XO....../......../......../......../......../........ O",
		"score",
		"moves",
		"move c3",
		"score",
	}, "\n"))
	want := []string{
		"score black 4 white 1 turn 1 tomove X status in progress",
		"moves c3",
		"score black 6 white 0 turn 2 tomove O status no moves left",
	}
	if len(lines) != len(want) {
		t.Fatalf("unexpected output %q", lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestGoAfterLoadedPassAndGameOver(t *testing.T) {
	lines := runSession(t, strings.Join([]string{
		"setboard XXX...../......../XO....../......../......../......../......../........ O",
		"go depth 2",
		"setboard XXXX/XXXX/XXXX/XXXO X",
		"go",
		"score",
	}, "\n"))
	if !strings.HasPrefix(lines[1], "bestmove c3 ") {
		t.Fatalf("position after the pass answered %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "info string go:") {
		t.Fatalf("finished game answered %q", lines[2])
	}
	if lines[3] != "score black 15 white 1 turn 12 tomove X status board full" {
		t.Fatalf("score line %q", lines[3])
	}
}

func TestNewGameSizeAndQuit(t *testing.T) {
	lines := runSession(t, "newgame 6\nmoves\nquit\nmoves\n")
	if len(lines) != 1 || lines[0] != "moves c2 b3 e4 d5" {
		t.Fatalf("unexpected output %q", lines)
	}
}

func TestSetOptionWeight(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	lines := runSession(t, "setoption name corners value 4.5\nsetoption name loglevel value warn\nisready\n")
	if len(lines) != 1 || lines[0] != "readyok" {
		t.Fatalf("setoption produced output %q", lines)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("log level %v, want warn", zerolog.GlobalLevel())
	}
}
