/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package vm

import (
	"fmt"

	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
	"gitlab.com/stackedboxes/lumi/pkg/compiler"
	"gitlab.com/stackedboxes/lumi/pkg/environment"
)

// stackSize is the VM's fixed value-stack capacity. Pushing beyond it is a
// non-recoverable abort: a well-formed chunk, produced by a correct
// compiler, never needs more.
const stackSize = 256

// InterpretResult is the terminal outcome of an Interpret call.
type InterpretResult int

const (
	// InterpretOK means the program ran to completion without error.
	InterpretOK InterpretResult = iota
	// InterpretCompileError means compilation failed; nothing was run.
	InterpretCompileError
	// InterpretRuntimeError means a runtime error stopped execution.
	InterpretRuntimeError
)

// VM is a Lumi Virtual Machine: it owns one bytecode.Chunk for the
// duration of a single Interpret call, plus the fixed value stack used to
// execute it.
type VM struct {
	// DebugTraceExecution, when true, makes the VM print the stack and the
	// disassembled instruction before executing each one.
	DebugTraceExecution bool

	env *environment.Environment

	chunk *bytecode.Chunk
	ip    int

	stack    [stackSize]bytecode.FinalValue
	stackTop int
}

// New returns a VM sharing globals and the string interner with env. Pass
// the same Environment across multiple Interpret calls (e.g. successive
// REPL lines) to make global bindings persist between them.
func New(env *environment.Environment) *VM {
	return &VM{env: env}
}

// Interpret compiles and runs source, returning the terminal outcome and,
// on a compile or runtime error, an error describing it.
func (vm *VM) Interpret(source string) (result InterpretResult, err error) {
	chunk, compileErr := compiler.New(source, vm.env).Compile()
	if compileErr != nil {
		return InterpretCompileError, compileErr
	}

	vm.chunk = chunk
	vm.ip = 0
	vm.stackTop = 0

	defer func() {
		if r := recover(); r != nil {
			vm.stackTop = 0
			result = InterpretRuntimeError
			err = fmt.Errorf("internal VM error: %v", r)
		}
	}()

	return vm.run()
}

// push pushes value onto the stack. Panics on overflow (see stackSize).
func (vm *VM) push(value bytecode.FinalValue) {
	if vm.stackTop >= stackSize {
		panic("stack overflow")
	}
	vm.stack[vm.stackTop] = value
	vm.stackTop++
}

// pop pops and returns the value on top of the stack. Panics on
// underflow.
func (vm *VM) pop() bytecode.FinalValue {
	if vm.stackTop == 0 {
		panic("stack underflow")
	}
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

// peek returns the value distance slots down from the top, without
// popping it (peek(0) is the top). Panics if distance reaches past the
// bottom of the stack.
func (vm *VM) peek(distance int) bytecode.FinalValue {
	index := vm.stackTop - 1 - distance
	if index < 0 {
		panic("stack underflow on peek")
	}
	return vm.stack[index]
}

// resetStack discards every value currently on the stack, used after a
// runtime error.
func (vm *VM) resetStack() {
	vm.stackTop = 0
}
