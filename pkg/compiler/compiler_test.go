/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
	"gitlab.com/stackedboxes/lumi/pkg/environment"
)

func compile(t *testing.T, source string) (*bytecode.Chunk, error) {
	t.Helper()
	return New(source, environment.New()).Compile()
}

// Tests that a simple arithmetic expression statement compiles to the
// expected opcode shape: three constants, a multiply, an add, a print.
func TestCompileArithmeticPrint(t *testing.T) {
	chunk, err := compile(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	require.NotNil(t, chunk)

	ops := opcodesOf(chunk)
	assert.Contains(t, ops, bytecode.OpConstant)
	assert.Contains(t, ops, bytecode.OpMultiply)
	assert.Contains(t, ops, bytecode.OpAdd)
	assert.Contains(t, ops, bytecode.OpPrint)
	assert.Equal(t, bytecode.OpReturn, ops[len(ops)-1])
}

// Tests that global declarations emit OpDefineGlobal, and references to
// them emit OpGetGlobal (no locals are in scope at top level).
func TestCompileGlobalDeclarationAndReference(t *testing.T) {
	chunk, err := compile(t, "var x = 1; print x;")
	require.NoError(t, err)

	ops := opcodesOf(chunk)
	assert.Contains(t, ops, bytecode.OpDefineGlobal)
	assert.Contains(t, ops, bytecode.OpGetGlobal)
	assert.NotContains(t, ops, bytecode.OpGetLocal)
}

// Tests that a final declaration emits OpMarkFinal right before its
// binding instruction.
func TestCompileFinalDeclarationEmitsMarkFinal(t *testing.T) {
	chunk, err := compile(t, "var final x = 1;")
	require.NoError(t, err)

	ops := opcodesOf(chunk)
	markIdx := indexOf(ops, bytecode.OpMarkFinal)
	defineIdx := indexOf(ops, bytecode.OpDefineGlobal)
	require.NotEqual(t, -1, markIdx)
	require.NotEqual(t, -1, defineIdx)
	assert.Less(t, markIdx, defineIdx)
}

// Tests that reading a local variable inside a block compiles to GetLocal,
// and that neither OpDefineGlobal nor OpGetGlobal is emitted.
func TestCompileLocalVariable(t *testing.T) {
	chunk, err := compile(t, "{ var x = 1; print x; }")
	require.NoError(t, err)

	ops := opcodesOf(chunk)
	assert.Contains(t, ops, bytecode.OpGetLocal)
	assert.NotContains(t, ops, bytecode.OpDefineGlobal)
	assert.NotContains(t, ops, bytecode.OpGetGlobal)
}

// Tests that ending a block scope pops every local declared within it.
func TestCompileBlockScopeEmitsPops(t *testing.T) {
	chunk, err := compile(t, "{ var x = 1; var y = 2; }")
	require.NoError(t, err)

	ops := opcodesOf(chunk)
	popCount := 0
	for _, op := range ops {
		if op == bytecode.OpPop {
			popCount++
		}
	}
	assert.Equal(t, 2, popCount)
}

// Tests that if/else emits both a conditional JumpIfFalse and an
// unconditional Jump.
func TestCompileIfElse(t *testing.T) {
	chunk, err := compile(t, `if (true) print "a"; else print "b";`)
	require.NoError(t, err)

	ops := opcodesOf(chunk)
	assert.Contains(t, ops, bytecode.OpJumpIfFalse)
	assert.Contains(t, ops, bytecode.OpJump)
}

// Tests that while compiles a backward Loop instruction.
func TestCompileWhileLoop(t *testing.T) {
	chunk, err := compile(t, "while (true) print 1;")
	require.NoError(t, err)

	ops := opcodesOf(chunk)
	assert.Contains(t, ops, bytecode.OpLoop)
	assert.Contains(t, ops, bytecode.OpJumpIfFalse)
}

// Tests that a syntax error is reported as a CompileError and yields no
// chunk.
func TestCompileSyntaxError(t *testing.T) {
	chunk, err := compile(t, "var = 1;")
	assert.Nil(t, chunk)
	require.Error(t, err)
	var ce *CompileError
	assert.ErrorAs(t, err, &ce)
}

// Tests that redeclaring a name in the same local scope is a compile
// error.
func TestCompileRedeclarationInSameScopeIsError(t *testing.T) {
	_, err := compile(t, "{ var x = 1; var x = 2; }")
	assert.Error(t, err)
}

// Tests that reading a local in its own initializer is a compile error.
func TestCompileSelfReferentialInitializerIsError(t *testing.T) {
	_, err := compile(t, "{ var x = x; }")
	assert.Error(t, err)
}

// Tests that the disassembler does not panic on a realistic chunk and that
// its listing includes the header and the final OpReturn.
func TestDisassembleDoesNotPanic(t *testing.T) {
	chunk, err := compile(t, `
		var total = 0;
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 2) total = total + 10; else total = total + 1;
		}
		print total;
	`)
	require.NoError(t, err)

	listing := chunk.Disassemble("test chunk")
	assert.Contains(t, listing, "== test chunk ==")
	assert.Contains(t, listing, "OpReturn")
}

// opcodesOf extracts the sequence of opcodes from a chunk's code stream,
// skipping over operand bytes using each opcode's known width.
func opcodesOf(chunk *bytecode.Chunk) []bytecode.Opcode {
	var ops []bytecode.Opcode
	for i := 0; i < len(chunk.Code); {
		op := bytecode.Opcode(chunk.Code[i])
		ops = append(ops, op)
		i += instructionWidth(op)
	}
	return ops
}

func instructionWidth(op bytecode.Opcode) int {
	switch op {
	case bytecode.OpConstant, bytecode.OpDefineGlobal, bytecode.OpGetGlobal,
		bytecode.OpSetGlobal, bytecode.OpGetLocal, bytecode.OpSetLocal:
		return 2
	case bytecode.OpJump, bytecode.OpJumpIfFalse, bytecode.OpLoop:
		return 3
	default:
		return 1
	}
}

func indexOf(ops []bytecode.Opcode, target bytecode.Opcode) int {
	for i, op := range ops {
		if op == target {
			return i
		}
	}
	return -1
}
