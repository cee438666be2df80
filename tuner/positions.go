// Package tuner implements a Texel-style coordinate-descent tuner for the
// engine's evaluation weights: load labeled FENs, measure sigmoid-mapped
// MSE against the engine's own evaluation, and nudge each coefficient
// toward lower error.
package tuner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/corvidchess/corvid/engine"
)

// TrainingPosition is one labeled example: a parsed position and its game
// result from White's perspective (1.0 win, 0.5 draw, 0.0 loss).
type TrainingPosition struct {
	Pos    *engine.Position
	Result float64
}

// LoadPositions reads up to max lines of the form "<FEN> [<result>]" from
// path, skipping blank lines, '#' comments, and any line that fails to
// parse (counting only successful loads, per the corpus's tolerant
// tuner-input convention).
func LoadPositions(path string, max int) ([]TrainingPosition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadPositions(f, max)
}

func loadPositions(r io.Reader, max int) ([]TrainingPosition, error) {
	var positions []TrainingPosition
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)
	for scanner.Scan() && len(positions) < max {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		open := strings.IndexByte(line, '[')
		if open < 0 {
			continue
		}
		shut := strings.IndexByte(line[open+1:], ']')
		if shut < 0 {
			continue
		}
		fen := strings.TrimSpace(line[:open])
		resultStr := strings.TrimSpace(line[open+1 : open+1+shut])

		result, err := strconv.ParseFloat(resultStr, 64)
		if err != nil {
			continue
		}
		pos, err := engine.PositionFromFEN(fen)
		if err != nil {
			continue
		}
		positions = append(positions, TrainingPosition{Pos: pos, Result: result})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tuner: reading positions: %w", err)
	}
	return positions, nil
}
