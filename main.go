// Package main provides the entry point for rvcore.
// rvcore is a functional multi-core RISC-V simulator.
//
// For the full CLI, use: go run ./cmd/rvcore
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rvcore - functional RISC-V core simulator")
	fmt.Println("")
	fmt.Println("Usage: rvcore [options] <image.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -cores     Number of cores to simulate")
	fmt.Println("  -trace     Trace every instruction and trap")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rvcore' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rvcore' instead.")
	}
}
