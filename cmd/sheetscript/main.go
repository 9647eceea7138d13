// Command sheetscript is a driver for the Forwards/Backwards evaluation
// core: tokenize, parse, run a Backwards script, or recompute an in-memory
// sheet seeded from the command line (spec.md §6; no file format or
// persistence is part of this core, so "sheet" here means exactly what
// -- and only what -- the command line provides).
package main

import (
	"fmt"
	"os"

	"github.com/sheetlang/sheetlang/cmd/sheetscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
