/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"gitlab.com/stackedboxes/lumi/pkg/environment"
	"gitlab.com/stackedboxes/lumi/pkg/vm"
)

// replCmd starts an interactive session. One Environment (globals and the
// string interner) stays alive across lines, so var/let bindings persist
// between entries.
type replCmd struct {
	trace bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start an interactive Lumi session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive Lumi session. Bindings persist across lines.
`
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "print each executed instruction and the value stack")
}

func (r *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New("lumi> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	env := environment.New()
	theVM := vm.New(env)
	theVM.DebugTraceExecution = r.trace

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return subcommands.ExitFailure
		}

		if line == "" {
			continue
		}

		theVM.Interpret(line)
	}
}
