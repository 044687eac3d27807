package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"reversi-engine/engine"
	"reversi-engine/logx"
	"reversi-engine/othello"
)

// session holds the state of one protocol connection: the game being played
// and the engine answering "go".
type session struct {
	game         *othello.Game
	eng          *engine.Engine
	out          io.Writer
	log          zerolog.Logger
	defaultDepth int
}

func newSession(out io.Writer, log zerolog.Logger, size, depth int, opts engine.Options) (*session, error) {
	g, err := othello.NewGame(size)
	if err != nil {
		return nil, err
	}
	opts.Logger = log
	return &session{
		game:         g,
		eng:          engine.New(opts),
		out:          out,
		log:          log,
		defaultDepth: depth,
	}, nil
}

func (s *session) reply(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *session) info(format string, args ...any) {
	s.reply("info string "+format, args...)
}

// loop reads commands until quit or end of input.
func (s *session) loop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !s.handle(scanner.Text()) {
			return
		}
	}
}

// handle executes one command line and reports whether the loop goes on.
func (s *session) handle(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 { // ignore blank lines
		return true
	}
	args := tokens[1:]
	switch strings.ToLower(tokens[0]) {
	case "othello":
		s.reply("id name reversi-engine")
		s.reply("id author reversi-engine developers")
		w := s.eng.Evaluator().Weights()
		for _, name := range engine.WeightNames {
			v, _ := w.Get(name)
			s.reply("option name %s type float default %g", name, v)
		}
		s.reply("option name hash type spin default %d", engine.DefaultTTSize)
		s.reply("option name loglevel type string default info")
		s.reply("ok")
	case "isready":
		s.reply("readyok")
	case "quit":
		return false
	case "newgame":
		s.newGame(args)
	case "setboard":
		s.setBoard(args)
	case "move":
		s.move(args)
	case "undo":
		if err := s.game.Undo(); err != nil {
			s.info("undo: %v", err)
		}
	case "moves":
		s.moves()
	case "score":
		s.score()
	case "show":
		fmt.Fprint(s.out, s.game.Board().Diagram())
	case "eval":
		s.eval()
	case "go":
		s.goCmd(args)
	case "setoption":
		s.setOption(args)
	default:
		s.info("Unknown command: %s", line)
	}
	return true
}

func (s *session) newGame(args []string) {
	size := s.game.Board().Size()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			s.info("Malformed newgame size %q", args[0])
			return
		}
		size = n
	}
	g, err := othello.NewGame(size)
	if err != nil {
		s.info("newgame: %v", err)
		return
	}
	s.game = g
	s.eng.ResetCache()
}

func (s *session) setBoard(args []string) {
	b, err := othello.ParseBoard(strings.Join(args, " "))
	if err != nil {
		s.info("setboard: %v", err)
		return
	}
	s.game = othello.NewGameFrom(b)
}

func (s *session) move(args []string) {
	if len(args) != 1 {
		s.info("Malformed move command")
		return
	}
	m, err := othello.ParseMove(args[0])
	if err != nil {
		s.info("move: %v", err)
		return
	}
	if m.IsPass() {
		s.info("Passes are played automatically")
		return
	}
	if err := s.game.Play(m); err != nil {
		s.info("move %s: %v", m, err)
	}
}

func (s *session) moves() {
	legal := s.game.LegalMoves()
	if s.game.IsGameOver() || len(legal) == 0 {
		s.reply("moves none")
		return
	}
	names := make([]string, len(legal))
	for i, m := range legal {
		names[i] = m.String()
	}
	s.reply("moves %s", strings.Join(names, " "))
}

func (s *session) score() {
	b := s.game.Board()
	sc := b.Score()
	s.reply("score black %d white %d turn %d tomove %c status %s",
		sc.Black, sc.White, b.Turn(), b.CurrentPlayer().Symbol(), b.Outcome())
}

func (s *session) eval() {
	b := s.game.Board()
	t := s.eng.Evaluator().Breakdown(b, b.CurrentPlayer())
	s.reply("eval mobility %.4f corners %.4f frontier %.4f positional %.4f stability %.4f phase %.4f score %.4f",
		t.Mobility, t.Corners, t.Frontier, t.Positional, t.Stability, t.Phase, t.Score)
}

// parseGo reads "go [depth N] [movetime ms] [nodes N]".
func (s *session) parseGo(args []string) (engine.Limits, bool) {
	var limits engine.Limits
	for i := 0; i < len(args); i++ {
		key := strings.ToLower(args[i])
		if i+1 >= len(args) {
			s.info("Malformed go command option %s", key)
			return limits, false
		}
		i++
		v, err := strconv.Atoi(args[i])
		if err != nil || v < 0 {
			s.info("Malformed go command option; could not convert %s", key)
			return limits, false
		}
		switch key {
		case "depth":
			limits.Depth = v
		case "movetime":
			limits.MoveTime = time.Duration(v) * time.Millisecond
		case "nodes":
			limits.Nodes = uint64(v)
		default:
			s.info("Unknown go subcommand %s", key)
			return limits, false
		}
	}
	if limits.Depth == 0 && limits.MoveTime == 0 && limits.Nodes == 0 {
		limits.Depth = s.defaultDepth
	}
	return limits, true
}

func (s *session) goCmd(args []string) {
	limits, ok := s.parseGo(args)
	if !ok {
		return
	}
	b := s.game.Board()
	res, err := s.eng.Search(context.Background(), b, b.CurrentPlayer(), limits)
	if err != nil {
		s.info("go: %v", err)
		return
	}
	st := res.Stats
	s.reply("info depth %d score %.4f nodes %d time %d nps %d cachehits %d",
		res.Depth, res.Score, st.Nodes, st.Elapsed.Milliseconds(), st.NPS(), st.CacheHits)
	s.reply("bestmove %s score %.4f", res.Move, res.Score)
}

// setOption handles "setoption name <n> value <v>".
func (s *session) setOption(args []string) {
	if len(args) != 4 || !strings.EqualFold(args[0], "name") || !strings.EqualFold(args[2], "value") {
		s.info("Malformed setoption command")
		return
	}
	name, value := args[1], args[3]
	if strings.EqualFold(name, "loglevel") {
		level, err := logx.ParseLevel(value)
		if err != nil {
			s.info("setoption loglevel: %v", err)
			return
		}
		zerolog.SetGlobalLevel(level)
		return
	}
	if err := s.eng.SetOption(name, value); err != nil {
		s.info("setoption: %v", err)
	}
}
