/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package compiler

import (
	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
	"gitlab.com/stackedboxes/lumi/pkg/token"
)

// declaration compiles a single top-level-or-block production: either a
// variable declaration or a plain statement. Recovers via synchronize on a
// syntax error so one bad line doesn't abort the whole compile.
func (c *Compiler) declaration() {
	switch {
	case c.match(token.KindVar), c.match(token.KindLet):
		c.varDeclaration()
	default:
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

// varDeclaration compiles `("var"|"let") "final"? IDENT ("=" expr)? ";"`.
// The leading "var"/"let" token has already been consumed by declaration.
func (c *Compiler) varDeclaration() {
	c.pendingFinal = c.match(token.KindFinal)
	isFinal := c.pendingFinal

	global := c.parseVariable("Expect variable name.")

	if c.match(token.KindEqual) {
		c.expression()
	} else {
		c.emitOp(bytecode.OpNil)
	}

	if isFinal {
		c.emitOp(bytecode.OpMarkFinal)
	}
	c.pendingFinal = false

	c.consume(token.KindSemicolon, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

// statement compiles a single statement production.
func (c *Compiler) statement() {
	switch {
	case c.match(token.KindPrint):
		c.printStatement()
	case c.match(token.KindIf):
		c.ifStatement()
	case c.match(token.KindWhile):
		c.whileStatement()
	case c.match(token.KindFor):
		c.forStatement()
	case c.match(token.KindLeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

// printStatement compiles `"print" expr ";"`. The "print" token has
// already been consumed.
func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.KindSemicolon, "Expect ';' after value.")
	c.emitOp(bytecode.OpPrint)
}

// expressionStatement compiles `expr ";"`, discarding the resulting value.
func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.KindSemicolon, "Expect ';' after expression.")
	c.emitOp(bytecode.OpPop)
}

// block compiles `declaration* "}"`. The opening "{" has already been
// consumed.
func (c *Compiler) block() {
	for !c.check(token.KindRightBrace) && !c.check(token.KindEOF) {
		c.declaration()
	}
	c.consume(token.KindRightBrace, "Expect '}' after block.")
}

// ifStatement compiles `"if" "(" expr ")" stmt ("else" stmt)?`. The "if"
// token has already been consumed.
func (c *Compiler) ifStatement() {
	c.consume(token.KindLeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.KindRightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()

	elseJump := c.emitJump(bytecode.OpJump)

	c.patchJump(thenJump)
	c.emitOp(bytecode.OpPop)

	if c.match(token.KindElse) {
		c.statement()
	}
	c.patchJump(elseJump)
}

// whileStatement compiles `"while" "(" expr ")" stmt`. The "while" token
// has already been consumed.
func (c *Compiler) whileStatement() {
	loopStart := len(c.currentChunk().Code)

	c.consume(token.KindLeftParen, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.KindRightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(bytecode.OpJumpIfFalse)
	c.emitOp(bytecode.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(bytecode.OpPop)
}

// forStatement compiles `"for" "(" (varDecl|exprStmt|";") expr? ";" expr? ")"
// stmt`, desugaring into a while loop built from jumps. The "for" token has
// already been consumed.
func (c *Compiler) forStatement() { // nolint:funlen
	c.beginScope()
	c.consume(token.KindLeftParen, "Expect '(' after 'for'.")

	switch {
	case c.match(token.KindSemicolon):
		// No initializer.
	case c.match(token.KindVar), c.match(token.KindLet):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.currentChunk().Code)

	exitJump := -1
	if !c.match(token.KindSemicolon) {
		c.expression()
		c.consume(token.KindSemicolon, "Expect ';' after loop condition.")

		exitJump = c.emitJump(bytecode.OpJumpIfFalse)
		c.emitOp(bytecode.OpPop)
	}

	if !c.check(token.KindRightParen) {
		bodyJump := c.emitJump(bytecode.OpJump)

		incrementStart := len(c.currentChunk().Code)
		c.expression()
		c.emitOp(bytecode.OpPop)
		c.consume(token.KindRightParen, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.consume(token.KindRightParen, "Expect ')' after for clauses.")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(bytecode.OpPop)
	}

	c.endScope()
}
