/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/stackedboxes/lumi/pkg/environment"
)

// runAndCapture interprets source against a fresh VM and Environment,
// returning everything written to stdout.
func runAndCapture(t *testing.T, source string) (string, InterpretResult, error) {
	t.Helper()

	var out bytes.Buffer
	oldStdout := stdout
	stdout = &out
	defer func() { stdout = oldStdout }()

	v := New(environment.New())
	result, err := v.Interpret(source)
	return out.String(), result, err
}

func TestInterpretArithmetic(t *testing.T) {
	out, result, err := runAndCapture(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "7\n", out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, result, err := runAndCapture(t, `var a = "hi"; var b = "!"; print a + b;`)
	require.NoError(t, err)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "hi!\n", out)
}

func TestInterpretFinalReassignmentIsRuntimeError(t *testing.T) {
	_, result, err := runAndCapture(t, "var final x = 10; x = 11;")
	assert.Equal(t, InterpretRuntimeError, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "final")
}

func TestInterpretWhileLoop(t *testing.T) {
	out, result, err := runAndCapture(t, "var i = 0; while (i < 3) { print i; i = i + 1; }")
	require.NoError(t, err)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretOrShortCircuit(t *testing.T) {
	out, result, err := runAndCapture(t, `if (nil or false) print "a"; else print "b";`)
	require.NoError(t, err)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "b\n", out)
}

func TestInterpretBlockScoping(t *testing.T) {
	out, result, err := runAndCapture(t, "{ var x = 1; { var x = 2; print x; } print x; }")
	require.NoError(t, err)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "2\n1\n", out)
}

func TestInterpretForLoop(t *testing.T) {
	out, result, err := runAndCapture(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.NoError(t, err)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretNumberClassification(t *testing.T) {
	out, result, err := runAndCapture(t, "print 3; print 3.0; print 3 + 0.5; print 4 / 2 == 2;")
	require.NoError(t, err)
	assert.Equal(t, InterpretOK, result)
	assert.Equal(t, "3\n3\n3.5\ntrue\n", out)
}

func TestInterpretUndefinedGlobalRead(t *testing.T) {
	_, result, err := runAndCapture(t, "print nope;")
	assert.Equal(t, InterpretRuntimeError, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable")
}

func TestInterpretAssignToUndefinedGlobal(t *testing.T) {
	_, result, err := runAndCapture(t, "nope = 1;")
	assert.Equal(t, InterpretRuntimeError, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable")
}

func TestInterpretOperandTypeMismatch(t *testing.T) {
	_, result, err := runAndCapture(t, `print 1 + "x";`)
	assert.Equal(t, InterpretRuntimeError, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be")
}

func TestInterpretCompileErrorDoesNotRun(t *testing.T) {
	out, result, err := runAndCapture(t, "var = 1;")
	assert.Equal(t, InterpretCompileError, result)
	require.Error(t, err)
	assert.Equal(t, "", out)
}

func TestInterpretGlobalsPersistAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	oldStdout := stdout
	stdout = &out
	defer func() { stdout = oldStdout }()

	env := environment.New()
	v := New(env)

	_, err := v.Interpret("var x = 1;")
	require.NoError(t, err)

	_, err = v.Interpret("print x + 1;")
	require.NoError(t, err)

	assert.Equal(t, "2\n", out.String())
}
