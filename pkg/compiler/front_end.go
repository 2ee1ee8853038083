/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package compiler

import (
	"fmt"
	"os"

	"gitlab.com/stackedboxes/lumi/pkg/token"
)

// advance advances the compiler by one token. Error tokens are reported
// immediately and skipped; callers only ever see non-error tokens in
// c.current.
func (c *Compiler) advance() {
	c.previous = c.current

	for {
		c.current = c.s.Token()
		if c.current.Kind != token.KindError {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

// consume consumes the current token (and advances), provided it is of the
// given kind. Otherwise it reports an error with message.
func (c *Compiler) consume(kind token.Kind, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// check reports whether the current token has the given kind, without
// consuming it.
func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

// match consumes the current token and returns true if it has the given
// kind; otherwise leaves it unconsumed and returns false.
func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

// errorAtCurrent reports an error at c.current.
func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

// error reports an error at the token just consumed (c.previous).
func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

// errorAt reports an error at tok. Suppressed while c.panicMode is set, so
// a single syntax error doesn't cascade into a flood of follow-on
// diagnostics.
func (c *Compiler) errorAt(tok *token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true

	fmt.Fprintf(os.Stderr, "[line %d] Error", tok.Line)

	switch tok.Kind {
	case token.KindEOF:
		fmt.Fprint(os.Stderr, " at end")
	case token.KindError:
		// Nothing; the lexeme already is the message.
	default:
		fmt.Fprintf(os.Stderr, " at '%s'", tok.Lexeme)
	}

	fmt.Fprintf(os.Stderr, ": %s\n", message)
	c.hadError = true
}

// synchronize recovers from a syntax error by consuming tokens until it
// reaches a likely statement boundary: past a ';', or just before a
// statement-starting keyword.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != token.KindEOF {
		if c.previous.Kind == token.KindSemicolon {
			return
		}

		switch c.current.Kind {
		case token.KindClass, token.KindFun, token.KindVar, token.KindLet,
			token.KindFor, token.KindIf, token.KindWhile, token.KindPrint,
			token.KindReturn:
			return
		}

		c.advance()
	}
}
