package engine

import (
	"bytes"
	"strings"
	"testing"
)

func TestUCIHandshake(t *testing.T) {
	var out bytes.Buffer
	u := NewUCI(&out)
	if err := u.Execute("uci"); err != nil {
		t.Fatalf("Execute(uci): %v", err)
	}
	if err := u.Execute("isready"); err != nil {
		t.Fatalf("Execute(isready): %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "id name corvid") {
		t.Errorf("expected id name line, got %q", s)
	}
	if !strings.Contains(s, "uciok") {
		t.Errorf("expected uciok, got %q", s)
	}
	if !strings.Contains(s, "readyok") {
		t.Errorf("expected readyok, got %q", s)
	}
}

func TestUCIPositionWithMoves(t *testing.T) {
	var out bytes.Buffer
	u := NewUCI(&out)
	if err := u.Execute("position startpos moves e2e4 e7e5 g1f3"); err != nil {
		t.Fatalf("Execute(position): %v", err)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := u.pos.FEN(); got != want {
		t.Errorf("position after moves = %q, want %q", got, want)
	}
}

func TestUCIPositionWithFEN(t *testing.T) {
	var out bytes.Buffer
	u := NewUCI(&out)
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	if err := u.Execute("position fen " + fen); err != nil {
		t.Fatalf("Execute(position fen): %v", err)
	}
	if got := u.pos.FEN(); got != fen {
		t.Errorf("position fen round trip = %q, want %q", got, fen)
	}
}

func TestUCIGoReturnsBestmove(t *testing.T) {
	var out bytes.Buffer
	u := NewUCI(&out)
	if err := u.Execute("go wtime 100 btime 100"); err != nil {
		t.Fatalf("Execute(go): %v", err)
	}
	if !strings.Contains(out.String(), "bestmove ") {
		t.Errorf("expected a bestmove line, got %q", out.String())
	}
}

func TestUCISetOptionResizesHash(t *testing.T) {
	var out bytes.Buffer
	u := NewUCI(&out)
	before := u.tt.Size()
	if err := u.Execute("setoption name Hash value 1"); err != nil {
		t.Fatalf("Execute(setoption): %v", err)
	}
	if u.tt.Size() == before {
		t.Errorf("expected Hash resize to change table size from %d", before)
	}
}

func TestUCITestEval(t *testing.T) {
	var out bytes.Buffer
	u := NewUCI(&out)
	if err := u.Execute("testeval"); err != nil {
		t.Fatalf("Execute(testeval): %v", err)
	}
	if !strings.Contains(out.String(), "total ") {
		t.Errorf("expected a total line, got %q", out.String())
	}
}

func TestUCIQuit(t *testing.T) {
	var out bytes.Buffer
	u := NewUCI(&out)
	if err := u.Execute("quit"); err != ErrQuit {
		t.Errorf("Execute(quit) = %v, want ErrQuit", err)
	}
}
