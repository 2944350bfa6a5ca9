// Command perft counts leaf nodes of the legal move tree from a given
// position, the standard way to validate (or benchmark) a move generator
// against published reference counts.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/pkg/profile"

	"chesscore/engine"
)

func main() {
	fen := flag.String("fen", engine.InitialPositionFEN, "FEN of the position to run perft from")
	depth := flag.Int("depth", 5, "perft depth")
	divide := flag.Bool("divide", false, "print per-root-move subtree counts instead of just the total")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile for this run (see pkg/profile)")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	engine.InitTables()
	board, err := engine.FromFEN(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *divide {
		counts := board.DividePerft(*depth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		var total uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
			total += counts[m]
		}
		fmt.Printf("\nnodes: %d\n", total)
		return
	}

	fmt.Println(board.Perft(*depth))
}
