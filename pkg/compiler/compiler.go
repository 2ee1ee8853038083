/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package compiler

import (
	"fmt"

	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
	"gitlab.com/stackedboxes/lumi/pkg/environment"
	"gitlab.com/stackedboxes/lumi/pkg/scanner"
	"gitlab.com/stackedboxes/lumi/pkg/token"
)

// maxLocals bounds the locals stack: its index doubles as the runtime
// value-stack offset, and OpGetLocal/OpSetLocal take a one-byte operand.
const maxLocals = 256

// CompileError reports a failed compilation. The individual diagnostics
// were already printed to stderr as they were found; this just carries the
// overall verdict back to the caller.
type CompileError struct {
	Count int
}

func (e *CompileError) Error() string {
	if e.Count == 1 {
		return "compilation failed: 1 error"
	}
	return fmt.Sprintf("compilation failed: %d errors", e.Count)
}

// local is a lexically-scoped binding tracked by the compiler. Its index on
// c.locals is also the runtime stack slot it occupies once initialized.
type local struct {
	name    *token.Token
	depth   int
	isFinal bool
}

// Compiler compiles Lumi source into a bytecode.Chunk, one token at a time,
// emitting instructions as soon as each construct is recognized.
type Compiler struct {
	s   *scanner.Scanner
	env *environment.Environment

	current  *token.Token
	previous *token.Token

	hadError  bool
	panicMode bool

	chunk *bytecode.Chunk

	locals     []local
	scopeDepth int

	// pendingFinal is set by a "final" modifier just consumed in a variable
	// declaration, and consumed by the declaration that follows it.
	pendingFinal bool
}

// New creates a Compiler that will compile source, sharing globals and the
// string interner with env (so a REPL can reuse one Environment across
// separate Compile calls).
func New(source string, env *environment.Environment) *Compiler {
	return &Compiler{
		s:      scanner.New(source),
		env:    env,
		chunk:  &bytecode.Chunk{},
		locals: make([]local, 0, maxLocals),
	}
}

// Compile runs the compiler to completion and returns the resulting chunk.
// On a compile error, it returns a nil chunk and a *CompileError; the
// individual diagnostics were already printed to stderr.
func (c *Compiler) Compile() (*bytecode.Chunk, error) {
	c.advance()

	for !c.match(token.KindEOF) {
		c.declaration()
	}

	c.emitReturn()

	if c.hadError {
		return nil, &CompileError{Count: 1}
	}
	return c.chunk, nil
}
