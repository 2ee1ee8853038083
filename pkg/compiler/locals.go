/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package compiler

import (
	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
	"gitlab.com/stackedboxes/lumi/pkg/token"
)

// beginScope enters a new lexical scope.
func (c *Compiler) beginScope() {
	c.scopeDepth++
}

// endScope leaves the current lexical scope, popping every local declared
// in it and emitting one OpPop per local so the runtime stack stays in
// sync with the compiler's locals slice.
func (c *Compiler) endScope() {
	c.scopeDepth--

	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emitOp(bytecode.OpPop)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// identifierConstant adds name's lexeme to the constant pool as an interned
// string and returns its index, used as the name operand for
// DefineGlobal/GetGlobal/SetGlobal.
func (c *Compiler) identifierConstant(name *token.Token) int {
	s := c.env.Strings.Intern(name.Lexeme)
	return c.makeConstant(bytecode.NotFinal(bytecode.StringValue(s)))
}

// identifiersEqual reports whether two tokens have the same lexeme.
func identifiersEqual(a, b *token.Token) bool {
	return a.Lexeme == b.Lexeme
}

// declareVariable records a local variable's existence. At global scope
// this is a no-op (globals are resolved by name, not by slot).
func (c *Compiler) declareVariable(name *token.Token) {
	if c.scopeDepth == 0 {
		return
	}

	for i := len(c.locals) - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.depth != -1 && l.depth < c.scopeDepth {
			break
		}
		if identifiersEqual(name, l.name) {
			c.error("Already a variable with this name in this scope.")
		}
	}

	c.addLocal(name)
}

// addLocal pushes a new, not-yet-initialized Local for name.
func (c *Compiler) addLocal(name *token.Token) {
	if len(c.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}

	c.locals = append(c.locals, local{
		name:    name,
		depth:   -1,
		isFinal: c.pendingFinal,
	})
}

// markInitialized sets the most recently declared local's depth to the
// current scope, making it visible to name resolution. A no-op at global
// scope.
func (c *Compiler) markInitialized() {
	if c.scopeDepth == 0 {
		return
	}
	c.locals[len(c.locals)-1].depth = c.scopeDepth
}

// resolveLocal looks for a local named name, scanning from the innermost
// scope outward. Returns its slot index, or -1 if not found (meaning: fall
// back to global access). Reports a compile error if the match is still
// uninitialized (self-referential initializer, e.g. `var x = x;`).
func (c *Compiler) resolveLocal(name *token.Token) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		if identifiersEqual(name, c.locals[i].name) {
			if c.locals[i].depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

// parseVariable consumes an identifier token, declares it (if in a local
// scope), and returns its constant-pool index (meaningful only for globals;
// ignored by the caller when the variable turned out to be a local).
func (c *Compiler) parseVariable(errorMessage string) int {
	c.consume(token.KindIdentifier, errorMessage)

	c.declareVariable(c.previous)
	if c.scopeDepth > 0 {
		return 0
	}

	return c.identifierConstant(c.previous)
}

// defineVariable emits the instruction that binds the most recently parsed
// variable: OpDefineGlobal at global scope, or simply marking the local
// initialized (its value is already sitting in its stack slot).
func (c *Compiler) defineVariable(global int) {
	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}

	c.emitOp(bytecode.OpDefineGlobal)
	c.emitByte(byte(global))
}
