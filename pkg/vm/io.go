/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package vm

import (
	"io"
	"os"
)

// stdout and stderr are package-level so tests can redirect them without
// touching the real process streams.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)
