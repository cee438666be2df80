package engine

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"
)

// ErrQuit is returned by UCI.Execute on the quit/exit command, the signal
// for the caller's read loop to stop.
var ErrQuit = fmt.Errorf("quit")

const defaultHashMB = 256

// UCI drives one engine session: the current position, its tables and the
// searcher. Commands are executed one at a time, synchronously, matching
// the protocol's serialized command/response contract.
type UCI struct {
	pos      *Position
	tt       *TranspositionTable
	pawnTT   *PawnTable
	params   EvalParams
	searcher *Searcher
	out      io.Writer
}

// NewUCI returns a session with the default hash size and starting
// position, writing responses to out.
func NewUCI(out io.Writer) *UCI {
	u := &UCI{
		tt:     NewTranspositionTable(defaultHashMB),
		pawnTT: NewPawnTable(),
		params: DefaultParams,
		out:    out,
	}
	u.searcher = NewSearcher(u.tt, u.pawnTT, &u.params)
	u.pos = StartPosition()
	return u
}

func (u *UCI) printf(format string, args ...interface{}) {
	fmt.Fprintf(u.out, format, args...)
}

// Execute dispatches one line of UCI input.
func (u *UCI) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "uci":
		u.cmdUCI()
	case "isready":
		u.printf("readyok\n")
	case "setoption":
		u.cmdSetOption(args)
	case "ucinewgame":
		u.cmdNewGame()
	case "position":
		if err := u.cmdPosition(args); err != nil {
			log.Println("position:", err)
		}
	case "go":
		u.cmdGo(args)
	case "testeval":
		u.cmdTestEval()
	case "quit", "exit":
		return ErrQuit
	default:
		log.Println("unhandled input:", line)
	}
	return nil
}

func (u *UCI) cmdUCI() {
	u.printf("id name corvid\n")
	u.printf("id author corvidchess\n")
	u.printf("option name Hash type spin default %d min 1 max 1024\n", defaultHashMB)
	u.printf("uciok\n")
}

func (u *UCI) cmdSetOption(args []string) {
	// setoption name Hash value N
	if len(args) < 4 || args[0] != "name" || args[1] != "Hash" || args[2] != "value" {
		return
	}
	mb, err := strconv.Atoi(args[3])
	if err != nil || mb <= 0 {
		return
	}
	u.tt = NewTranspositionTable(mb)
	u.searcher.TT = u.tt
}

func (u *UCI) cmdNewGame() {
	u.pos = StartPosition()
	u.tt.Clear()
	u.pawnTT.Clear()
	u.searcher.ResetForNewGame()
}

func (u *UCI) cmdPosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *Position
	var rest []string
	switch args[0] {
	case "startpos":
		pos = StartPosition()
		rest = args[1:]
	case "fen":
		if len(args) < 2 {
			return fmt.Errorf("expected FEN after 'fen'")
		}
		end := 1
		for end < len(args) && args[end] != "moves" {
			end++
		}
		var err error
		pos, err = PositionFromFEN(strings.Join(args[1:end], " "))
		if err != nil {
			return err
		}
		rest = args[end:]
	default:
		return fmt.Errorf("expected 'startpos' or 'fen', got %q", args[0])
	}

	if len(rest) > 0 {
		if rest[0] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", rest[0])
		}
		for _, token := range rest[1:] {
			m, ok := pos.ParseMove(token)
			if !ok {
				log.Println("position: unmatched move token:", token)
				continue
			}
			pos.MakeMove(m)
		}
	}

	u.pos = pos
	return nil
}

func (u *UCI) cmdGo(args []string) {
	limits := map[string]int{"wtime": 0, "btime": 0, "winc": 0, "binc": 0}
	for i := 0; i+1 < len(args); i += 2 {
		if _, ok := limits[args[i]]; ok {
			n, err := strconv.Atoi(args[i+1])
			if err == nil {
				limits[args[i]] = n
			}
		}
	}

	var tc *TimeControl
	if limits["wtime"] == 0 && limits["btime"] == 0 {
		tc = Infinite()
	} else {
		tc = NewTimeControl(u.pos.ToMove, limits["wtime"], limits["btime"], limits["winc"], limits["binc"])
	}

	start := time.Now()
	u.searcher.Info = func(info SearchInfo) {
		elapsed := time.Since(start).Milliseconds()
		u.printf("info depth %d score cp %d nodes %d time %d pv%s\n",
			info.Depth, info.Score, info.Nodes, elapsed, pvString(info.PV))
	}
	best := u.searcher.IterativeDeepening(u.pos, tc)
	u.printf("bestmove %s\n", best.String())
}

func pvString(pv []Move) string {
	var sb strings.Builder
	for _, m := range pv {
		sb.WriteByte(' ')
		sb.WriteString(m.String())
	}
	return sb.String()
}

// cmdTestEval prints the component-wise evaluation breakdown for the
// current position, used to sanity-check the evaluation by hand.
func (u *UCI) cmdTestEval() {
	total := Evaluate(u.pos, &u.params, u.pawnTT)
	mat := materialScore(u.pos, &u.params).Taper(u.pos.TaperedPhase())
	mob := mobilityScore(u.pos, &u.params).Taper(u.pos.TaperedPhase())
	king := kingSafetyScore(u.pos, &u.params).Taper(u.pos.TaperedPhase())
	edge := kingEdgeScore(u.pos, &u.params).Taper(u.pos.TaperedPhase())
	pawns := pawnStructureScore(u.pos, &u.params, u.pawnTT).Taper(u.pos.TaperedPhase())
	u.printf("material %d\nmobility %d\nking safety %d\nking edge %d\npawn structure %d\ntotal %d\n",
		mat, mob, king, edge, pawns, total)
}

// RunLoop reads UCI commands from in until EOF, quit or exit, writing
// responses to out.
func RunLoop(in io.Reader, out io.Writer) {
	u := NewUCI(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() {
		if err := u.Execute(scanner.Text()); err != nil {
			if err == ErrQuit {
				return
			}
			log.Println("error:", err)
		}
	}
}
