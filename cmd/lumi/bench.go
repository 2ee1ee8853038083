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
	"time"

	"github.com/google/subcommands"
	"gitlab.com/stackedboxes/lumi/pkg/environment"
	"gitlab.com/stackedboxes/lumi/pkg/vm"
)

// benchCmd times N repeated compile+interpret cycles over one source file
// and reports wall time. It exists purely as a developer convenience; it
// is not part of the language's core scope.
type benchCmd struct {
	iterations int
}

func (*benchCmd) Name() string     { return "bench" }
func (*benchCmd) Synopsis() string { return "time repeated compile+interpret cycles of a file" }
func (*benchCmd) Usage() string {
	return `bench <file>:
  Compile and interpret a file repeatedly, reporting wall time.
`
}

func (b *benchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&b.iterations, "n", 100, "number of compile+interpret cycles")
}

func (b *benchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: lumi bench [-n iterations] <file>\n")
		return subcommands.ExitUsageError
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %v: %v\n", args[0], err)
		return subcommands.ExitFailure
	}

	if b.iterations < 1 {
		b.iterations = 1
	}

	start := time.Now()
	for i := 0; i < b.iterations; i++ {
		theVM := vm.New(environment.New())
		if result, _ := theVM.Interpret(string(source)); result != vm.InterpretOK {
			fmt.Fprintf(os.Stderr, "bench: iteration %d did not complete successfully\n", i)
			return subcommands.ExitFailure
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("%d iterations in %v (%v/iteration)\n", b.iterations, elapsed, elapsed/time.Duration(b.iterations))
	return subcommands.ExitSuccess
}
