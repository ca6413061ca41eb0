// Package main provides the rvcore command-line interface.
// rvcore is a functional multi-core RISC-V simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rvcore/emu"
	"github.com/sarchlab/rvcore/sim"
)

var (
	cores      = flag.Int("cores", 1, "Number of cores to simulate")
	loadAddr   = flag.Uint64("load", 0x2000, "Load address for the boot image")
	batch      = flag.Uint64("batch", 1000, "Instructions per core per scheduling batch")
	maxBatches = flag.Int("max-batches", 1_000_000, "Stop after this many batches")
	trace      = flag.Bool("trace", false, "Trace every instruction and trap")
	verbose    = flag.Bool("v", false, "Verbose output")
	noFPU      = flag.Bool("no-fpu", false, "Disable the floating-point capability")
	noVec      = flag.Bool("no-vec", false, "Disable the vector capability")
	rv32       = flag.Bool("rv32", false, "Disable the 64-bit capability")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rvcore [options] <image.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	imagePath := flag.Arg(0)
	image, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
		os.Exit(1)
	}

	caps := emu.DefaultCaps()
	caps.FPU = !*noFPU
	caps.Vector = !*noVec
	caps.RV64 = !*rv32

	s := sim.New(*cores, sim.WithCaps(caps))
	s.LoadImage(*loadAddr, image)

	if *verbose {
		fmt.Printf("Loaded: %s (%d bytes at 0x%x)\n", imagePath, len(image), *loadAddr)
		fmt.Printf("Cores: %d\n", *cores)
	}

	s.Boot(0)
	finished := s.Run(*maxBatches, *batch, *trace)

	if !finished {
		fmt.Fprintf(os.Stderr, "Simulation stopped after %d batches with cores still running\n",
			*maxBatches)
	}

	if *verbose {
		for i := 0; i < s.CoreCount(); i++ {
			c := s.Core(i)
			fmt.Printf("core %3d: pc 0x%016x, cycle %d, cause %d\n",
				i, c.PC(), c.Cycle(), uint32(c.TrapCause()))
		}
	}

	if finished {
		os.Exit(0)
	}
	os.Exit(1)
}
