/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package compiler

import (
	"encoding/binary"
	"math"

	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
)

// currentChunk returns the chunk being compiled into.
func (c *Compiler) currentChunk() *bytecode.Chunk {
	return c.chunk
}

// emitByte writes a single byte to the current chunk at the previous
// token's line.
func (c *Compiler) emitByte(b byte) {
	c.currentChunk().Write(b, c.previous.Line)
}

// emitBytes writes one or more bytes to the current chunk.
func (c *Compiler) emitBytes(bs ...byte) {
	for _, b := range bs {
		c.emitByte(b)
	}
}

// emitOp writes an opcode to the current chunk.
func (c *Compiler) emitOp(op bytecode.Opcode) {
	c.emitByte(byte(op))
}

// emitReturn emits the instruction that ends the chunk.
func (c *Compiler) emitReturn() {
	c.emitOp(bytecode.OpReturn)
}

// emitConstant emits the bytecode to push a constant value, adding it to
// the pool first.
func (c *Compiler) emitConstant(value bytecode.FinalValue) {
	index := c.makeConstant(value)
	c.emitOp(bytecode.OpConstant)
	c.emitByte(byte(index))
}

// makeConstant adds value to the pool, deduping against an existing equal
// constant, and returns its index. Reports a compile error (and returns 0)
// if the pool is full.
func (c *Compiler) makeConstant(value bytecode.FinalValue) int {
	if i := c.currentChunk().SearchConstant(value); i >= 0 {
		return i
	}

	index, err := c.currentChunk().AddConstant(value)
	if err != nil {
		c.error("Too many constants in one chunk.")
		return 0
	}
	if index > math.MaxUint8 {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return index
}

// emitJump emits a jump opcode followed by a placeholder two-byte offset,
// and returns the offset of the first placeholder byte, to be fixed up
// later by patchJump.
func (c *Compiler) emitJump(op bytecode.Opcode) int {
	c.emitOp(op)
	c.emitBytes(0xff, 0xff)
	return len(c.currentChunk().Code) - 2
}

// patchJump backpatches the jump whose placeholder starts at offset, so it
// lands right after the last instruction emitted so far. Reports a compile
// error if the jump distance doesn't fit in 16 bits.
func (c *Compiler) patchJump(offset int) {
	jump := len(c.currentChunk().Code) - offset - 2
	if jump > math.MaxUint16 {
		c.error("Too much code to jump over.")
		return
	}

	binary.BigEndian.PutUint16(c.currentChunk().Code[offset:offset+2], uint16(jump))
}

// emitLoop emits an OpLoop that jumps back to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(bytecode.OpLoop)

	offset := len(c.currentChunk().Code) - loopStart + 2
	if offset > math.MaxUint16 {
		c.error("Loop body too large.")
	}

	c.emitBytes(byte(offset>>8), byte(offset))
}
