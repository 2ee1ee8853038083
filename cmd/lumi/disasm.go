/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"gitlab.com/stackedboxes/lumi/pkg/compiler"
	"gitlab.com/stackedboxes/lumi/pkg/environment"
)

// disasmCmd compiles a source file without running it and prints the
// resulting chunk's disassembly.
type disasmCmd struct{}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "compile a file and print its bytecode disassembly" }
func (*disasmCmd) Usage() string {
	return `disasm <file>:
  Compile a Lumi source file and print its bytecode, without running it.
`
}

func (*disasmCmd) SetFlags(*flag.FlagSet) {}

func (*disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: lumi disasm <file>\n")
		return subcommands.ExitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %v: %v\n", args[0], err)
		return subcommands.ExitFailure
	}

	chunk, err := compiler.New(string(source), environment.New()).Compile()
	if err != nil {
		return subcommands.ExitStatus(exitCodeCompilationError)
	}

	fmt.Print(chunk.Disassemble(args[0]))
	return subcommands.ExitSuccess
}
