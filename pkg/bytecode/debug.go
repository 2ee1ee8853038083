/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package bytecode

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Disassemble disassembles the whole chunk into a human-readable listing.
// name identifies the chunk in the listing's header (e.g. a function name,
// or "<script>" for top-level code). This is purely a debugging aid: it is
// never invoked during normal Interpret calls.
func (c *Chunk) Disassemble(name string) string {
	var out strings.Builder
	fmt.Fprintf(&out, "== %s ==\n", name)

	for offset := 0; offset < len(c.Code); {
		offset = c.DisassembleInstruction(&out, offset)
	}

	return out.String()
}

// DisassembleInstruction disassembles the single instruction at offset,
// writing it to out, and returns the offset of the instruction that
// follows it.
func (c *Chunk) DisassembleInstruction(out io.Writer, offset int) int { // nolint:gocyclo,funlen
	fmt.Fprintf(out, "%04d ", offset)

	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(out, "   | ")
	} else {
		fmt.Fprintf(out, "%4d ", c.Lines[offset])
	}

	op := Opcode(c.Code[offset])

	switch op {
	case OpConstant, OpDefineGlobal, OpGetGlobal, OpSetGlobal:
		return c.constantInstruction(out, op, offset)
	case OpGetLocal, OpSetLocal:
		return c.byteInstruction(out, op, offset)
	case OpJump, OpJumpIfFalse:
		return c.jumpInstruction(out, op, offset, 1)
	case OpLoop:
		return c.jumpInstruction(out, op, offset, -1)
	case OpNil, OpTrue, OpFalse, OpEqual, OpGreater, OpLess, OpAdd, OpSubtract,
		OpMultiply, OpDivide, OpNot, OpNegate, OpPrint, OpReturn, OpPop, OpMarkFinal:
		return c.simpleInstruction(out, op, offset)
	default:
		fmt.Fprintf(out, "Unknown opcode %d\n", op)
		return offset + 1
	}
}

// simpleInstruction disassembles a one-byte instruction (just the opcode).
func (c *Chunk) simpleInstruction(out io.Writer, op Opcode, offset int) int {
	fmt.Fprintf(out, "%s\n", op)
	return offset + 1
}

// constantInstruction disassembles a two-byte instruction whose operand is
// a one-byte index into Constants.
func (c *Chunk) constantInstruction(out io.Writer, op Opcode, offset int) int {
	index := c.Code[offset+1]
	fmt.Fprintf(out, "%-16s %4d '%v'\n", op, index, c.Constants[index].Value)
	return offset + 2
}

// byteInstruction disassembles a two-byte instruction whose operand is a
// raw stack-slot index, not a constant-pool index.
func (c *Chunk) byteInstruction(out io.Writer, op Opcode, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(out, "%-16s %4d\n", op, slot)
	return offset + 2
}

// jumpInstruction disassembles a three-byte instruction whose operand is a
// two-byte big-endian jump offset. sign is +1 for forward jumps (OpJump,
// OpJumpIfFalse) and -1 for backward jumps (OpLoop).
func (c *Chunk) jumpInstruction(out io.Writer, op Opcode, offset, sign int) int {
	jump := int(binary.BigEndian.Uint16(c.Code[offset+1 : offset+3]))
	target := offset + 3 + sign*jump
	fmt.Fprintf(out, "%-16s %4d -> %d\n", op, offset, target)
	return offset + 3
}
