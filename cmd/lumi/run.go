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
	"gitlab.com/stackedboxes/lumi/pkg/environment"
	"gitlab.com/stackedboxes/lumi/pkg/vm"
)

// runCmd compiles and interprets a single source file, once.
type runCmd struct {
	trace bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compile and run a Lumi source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Compile and interpret a Lumi source file, then exit.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "print each executed instruction and the value stack")
}

func (r *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: lumi run <file>\n")
		return subcommands.ExitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %v: %v\n", args[0], err)
		return subcommands.ExitFailure
	}

	theVM := vm.New(environment.New())
	theVM.DebugTraceExecution = r.trace

	switch result, _ := theVM.Interpret(string(source)); result {
	case vm.InterpretCompileError:
		return subcommands.ExitStatus(exitCodeCompilationError)
	case vm.InterpretRuntimeError:
		return subcommands.ExitStatus(exitCodeInterpretationError)
	default:
		return subcommands.ExitStatus(exitCodeSuccess)
	}
}
