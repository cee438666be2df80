// Command corvid is a UCI-speaking chess engine. With no arguments it
// reads UCI commands from stdin and writes responses to stdout; given the
// "tune" argument it runs the Texel tuner over a corpus of labeled
// positions and exits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/corvidchess/corvid/engine"
	"github.com/corvidchess/corvid/tuner"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	version    = flag.Bool("version", false, "print version and exit")
)

const buildVersion = "(devel)"

const maxTunerPositions = 1_000_000

func main() {
	flag.Parse()
	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")
	log.SetFlags(0)

	if *version {
		fmt.Println("corvid", buildVersion)
		return
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	args := flag.Args()
	if len(args) > 0 && args[0] == "tune" {
		runTune(args[1:])
		return
	}

	engine.RunLoop(os.Stdin, os.Stdout)
}

func runTune(args []string) {
	path := "positions.txt"
	if len(args) > 0 {
		path = args[0]
	}

	positions, err := tuner.LoadPositions(path, maxTunerPositions)
	if err != nil {
		log.Fatalf("tune: %v", err)
	}
	log.Printf("loaded %d training positions from %s", len(positions), path)
	if len(positions) == 0 {
		return
	}

	t := tuner.NewTuner(positions)
	t.Tune(500, func(epoch int, before, after float64) {
		if epoch%10 == 0 {
			log.Printf("epoch %d: error %.6f -> %.6f (improvement %.6f)", epoch, before, after, before-after)
		}
	})

	t.PrintParams(os.Stdout)
}
