/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

const (
	exitCodeSuccess = iota
	exitCodeCompilationError
	exitCodeInterpretationError
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&disasmCmd{}, "")
	subcommands.Register(&benchCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
