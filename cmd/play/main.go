package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"reversi-engine/engine"
	"reversi-engine/logx"
	"reversi-engine/othello"
)

type engineMoveMsg struct {
	res engine.Result
	err error
}

type model struct {
	game   *othello.Game
	eng    *engine.Engine
	human  othello.Color
	depth  int
	row    int
	col    int
	think  bool
	status string
}

func initialModel(g *othello.Game, eng *engine.Engine, human othello.Color, depth int) model {
	mid := g.Board().Size()/2 - 1
	return model{game: g, eng: eng, human: human, depth: depth, row: mid, col: mid}
}

func (m model) engineToMove() bool {
	return !m.game.IsGameOver() && m.game.CurrentPlayer() != m.human
}

// searchCmd runs the engine off the UI goroutine. The board is not touched
// until the result arrives, so the search can read it safely.
func (m model) searchCmd() tea.Cmd {
	b, player, depth, eng := m.game.Board(), m.game.CurrentPlayer(), m.depth, m.eng
	return func() tea.Msg {
		res, err := eng.BestMove(b, player, depth)
		return engineMoveMsg{res: res, err: err}
	}
}

func (m model) Init() tea.Cmd {
	if m.engineToMove() {
		return m.searchCmd()
	}
	return nil
}

func (m model) afterMove() (tea.Model, tea.Cmd) {
	if m.game.IsGameOver() {
		m.think = false
		sc := m.game.Score()
		m.status = fmt.Sprintf("game over: %s (X %d, O %d)", winnerText(m.game.Board().Winner()), sc.Black, sc.White)
		return m, nil
	}
	if m.engineToMove() {
		m.think = true
		return m, m.searchCmd()
	}
	m.think = false
	return m, nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case engineMoveMsg:
		if msg.err != nil {
			m.think = false
			m.status = "engine: " + msg.err.Error()
			return m, nil
		}
		if msg.res.Pass {
			m.status = "engine passes"
			m.think = false
			return m, nil
		}
		if err := m.game.Play(msg.res.Move); err != nil {
			m.think = false
			m.status = "engine: " + err.Error()
			return m, nil
		}
		st := msg.res.Stats
		m.status = fmt.Sprintf("engine played %s (score %.2f, %d nodes, %v)", msg.res.Move, msg.res.Score, st.Nodes, st.Elapsed.Round(time.Millisecond))
		return m.afterMove()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		if m.think {
			return m, nil
		}
		size := m.game.Board().Size()
		switch msg.String() {
		case "up", "k":
			m.row = (m.row + size - 1) % size
		case "down", "j":
			m.row = (m.row + 1) % size
		case "left", "h":
			m.col = (m.col + size - 1) % size
		case "right", "l":
			m.col = (m.col + 1) % size
		case "u":
			m.undo()
			return m.afterMove()
		case "enter", " ":
			mv := othello.Move{Row: m.row, Col: m.col}
			if err := m.game.PlayAs(mv, m.human); err != nil {
				m.status = fmt.Sprintf("%s: %v", mv, err)
				return m, nil
			}
			m.status = "you played " + mv.String()
			return m.afterMove()
		}
	}
	return m, nil
}

// undo takes back moves until it is the human's turn again. Back at the
// start with the engine opening, the engine is left to move.
func (m *model) undo() {
	if err := m.game.Undo(); err != nil {
		m.status = "undo: " + err.Error()
		return
	}
	for m.game.CurrentPlayer() != m.human {
		if err := m.game.Undo(); err != nil {
			break
		}
	}
	m.status = "move taken back"
}

func winnerText(c othello.Color) string {
	if c == othello.Empty {
		return "draw"
	}
	return c.String() + " wins"
}

func (m model) View() string {
	b := m.game.Board()
	var s strings.Builder
	s.WriteString("   ")
	for col := 0; col < b.Size(); col++ {
		fmt.Fprintf(&s, " %c ", 'a'+col)
	}
	s.WriteByte('\n')
	legal := map[othello.Move]bool{}
	if !m.think && !m.game.IsGameOver() {
		for _, mv := range m.game.LegalMoves() {
			legal[mv] = true
		}
	}
	for row := 0; row < b.Size(); row++ {
		fmt.Fprintf(&s, "%2d ", row+1)
		for col := 0; col < b.Size(); col++ {
			ch := b.At(row, col).Symbol()
			if legal[othello.Move{Row: row, Col: col}] {
				ch = '*'
			}
			if row == m.row && col == m.col {
				fmt.Fprintf(&s, "[%c]", ch)
			} else {
				fmt.Fprintf(&s, " %c ", ch)
			}
		}
		s.WriteByte('\n')
	}
	sc := b.Score()
	fmt.Fprintf(&s, "\nX %d  O %d  turn %d  to move %s\n", sc.Black, sc.White, b.Turn(), b.CurrentPlayer())
	if m.think {
		s.WriteString("engine is thinking...\n")
	}
	if m.status != "" {
		s.WriteString(m.status + "\n")
	}
	s.WriteString("\narrows/hjkl move, enter plays, u undoes, q quits.\n")
	return s.String()
}

func main() {
	depth := flag.Int("depth", 5, "engine search depth")
	size := flag.Int("size", othello.DefaultSize, "board size")
	human := flag.String("human", "X", "side you play (X moves first, O second)")
	weights := flag.String("weights", "", "JSON weights file for the engine")
	logFile := flag.String("logfile", "", "write engine logs to this file")
	flag.Parse()

	var side othello.Color
	switch strings.ToUpper(*human) {
	case "X", "B", "BLACK":
		side = othello.Black
	case "O", "W", "WHITE":
		side = othello.White
	default:
		log.Fatalf("unknown side %q", *human)
	}

	opts := engine.DefaultOptions()
	if *weights != "" {
		w, err := engine.LoadWeights(*weights)
		if err != nil {
			log.Fatalf("weights: %v", err)
		}
		opts.Weights = w
	}
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		opts.Logger = logx.New(f, zerolog.DebugLevel)
	}

	g, err := othello.NewGame(*size)
	if err != nil {
		log.Fatalf("new game: %v", err)
	}
	p := tea.NewProgram(initialModel(g, engine.New(opts), side, *depth))
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
