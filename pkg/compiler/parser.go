/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package compiler

import (
	"strconv"

	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
	"gitlab.com/stackedboxes/lumi/pkg/token"
)

// precedence orders expression-parsing strength, lowest first.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

// prefixParseFn parses an expression that starts with the token just
// consumed (c.previous). canAssign is true when this prefix position is
// also a valid assignment target.
type prefixParseFn = func(c *Compiler, canAssign bool)

// infixParseFn parses an expression continuing after an already-parsed
// left-hand side, using the operator token just consumed (c.previous).
type infixParseFn = func(c *Compiler, canAssign bool)

// parseRule encodes one entry of the Pratt parser's dispatch table.
type parseRule struct {
	prefix     prefixParseFn
	infix      infixParseFn
	precedence precedence
}

// rules is the static table of parsing rules, indexed by token.Kind.
var rules []parseRule

func init() {
	initRules()
}

// initRules populates the rules table. Using block comments to convince
// gofmt to keep the columns aligned is ugly, but it reads well.
func initRules() { // nolint:funlen
	rules = make([]parseRule, token.NumberOfKinds)

	//                                   prefix                       infix                     precedence
	//                                  -----------------------     -----------------------    --------------
	rules[token.KindLeftParen] = /*  */ parseRule{grouping /*    */, nil /*                */, precNone}
	rules[token.KindRightParen] = /* */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindLeftBrace] = /*  */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindRightBrace] = /* */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindLeftBracket] = /**/ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindRightBracket] = parseRule{nil /*              */, nil /*                */, precNone}
	rules[token.KindComma] = /*      */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindDot] = /*        */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindMinus] = /*      */ parseRule{unary /*        */, binary /*             */, precTerm}
	rules[token.KindPlus] = /*       */ parseRule{nil /*          */, binary /*             */, precTerm}
	rules[token.KindSemicolon] = /*  */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindSlash] = /*      */ parseRule{nil /*          */, binary /*             */, precFactor}
	rules[token.KindStar] = /*       */ parseRule{nil /*          */, binary /*             */, precFactor}
	rules[token.KindBang] = /*       */ parseRule{unary /*        */, nil /*                */, precNone}
	rules[token.KindBangEqual] = /*  */ parseRule{nil /*          */, binary /*             */, precEquality}
	rules[token.KindEqual] = /*      */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindEqualEqual] = /* */ parseRule{nil /*          */, binary /*             */, precEquality}
	rules[token.KindGreater] = /*    */ parseRule{nil /*          */, binary /*             */, precComparison}
	rules[token.KindGreaterEqual] = parseRule{nil /*              */, binary /*             */, precComparison}
	rules[token.KindLess] = /*       */ parseRule{nil /*          */, binary /*             */, precComparison}
	rules[token.KindLessEqual] = /*  */ parseRule{nil /*          */, binary /*             */, precComparison}
	rules[token.KindIdentifier] = /* */ parseRule{variable /*     */, nil /*                */, precNone}
	rules[token.KindStringLiteral] = parseRule{stringLiteral /*   */, nil /*                */, precNone}
	rules[token.KindNumberLiteral] = parseRule{numberLiteral /*   */, nil /*                */, precNone}
	rules[token.KindAnd] = /*        */ parseRule{nil /*          */, and_ /*               */, precAnd}
	rules[token.KindClass] = /*      */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindElse] = /*       */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindFalse] = /*      */ parseRule{literal /*      */, nil /*                */, precNone}
	rules[token.KindFinal] = /*      */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindFor] = /*        */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindFun] = /*        */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindIf] = /*         */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindLet] = /*        */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindNil] = /*        */ parseRule{literal /*      */, nil /*                */, precNone}
	rules[token.KindOr] = /*         */ parseRule{nil /*          */, or_ /*                */, precOr}
	rules[token.KindPrint] = /*      */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindReturn] = /*     */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindSuper] = /*      */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindThis] = /*       */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindTrue] = /*       */ parseRule{literal /*      */, nil /*                */, precNone}
	rules[token.KindVar] = /*        */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindWhile] = /*      */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindError] = /*      */ parseRule{nil /*          */, nil /*                */, precNone}
	rules[token.KindEOF] = /*        */ parseRule{nil /*          */, nil /*                */, precNone}
}

// getRule returns the parse rule for kind.
func getRule(kind token.Kind) *parseRule {
	return &rules[kind]
}

// expression parses a full expression (the lowest-precedence entry point).
func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// parsePrecedence parses (and emits code for) an expression with binding
// power at least min.
func (c *Compiler) parsePrecedence(min precedence) {
	c.advance()
	prefixRule := getRule(c.previous.Kind).prefix
	if prefixRule == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := min <= precAssignment
	prefixRule(c, canAssign)

	for min <= getRule(c.current.Kind).precedence {
		c.advance()
		infixRule := getRule(c.previous.Kind).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.KindEqual) {
		c.error("Invalid assignment target.")
	}
}

// numberLiteral compiles a number literal. The number token is expected to
// have been just consumed.
func numberLiteral(c *Compiler, _ bool) {
	value, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		panic("scanner produced an invalid number lexeme: " + c.previous.Lexeme)
	}
	c.emitConstant(bytecode.NotFinal(bytecode.NumberValue(bytecode.NewNumber(value))))
}

// stringLiteral compiles a string literal. The string token (including its
// surrounding quotes) is expected to have been just consumed.
func stringLiteral(c *Compiler, _ bool) {
	raw := c.previous.Lexeme
	contents := raw[1 : len(raw)-1]
	s := c.env.Strings.Intern(contents)
	c.emitConstant(bytecode.NotFinal(bytecode.StringValue(s)))
}

// literal compiles a nil/true/false literal keyword.
func literal(c *Compiler, _ bool) {
	switch c.previous.Kind {
	case token.KindNil:
		c.emitOp(bytecode.OpNil)
	case token.KindTrue:
		c.emitOp(bytecode.OpTrue)
	case token.KindFalse:
		c.emitOp(bytecode.OpFalse)
	default:
		panic("unreachable literal kind: " + c.previous.Kind.String())
	}
}

// grouping compiles a parenthesized expression. The left paren is expected
// to have been just consumed.
func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.KindRightParen, "Expect ')' after expression.")
}

// unary compiles a unary `-` or `!` expression. The operator token is
// expected to have been just consumed.
func unary(c *Compiler, _ bool) {
	opKind := c.previous.Kind

	c.parsePrecedence(precUnary)

	switch opKind {
	case token.KindMinus:
		c.emitOp(bytecode.OpNegate)
	case token.KindBang:
		c.emitOp(bytecode.OpNot)
	default:
		panic("unreachable unary operator kind: " + opKind.String())
	}
}

// binary compiles the right-hand side of an infix binary expression. The
// left-hand side is already compiled; the operator token is expected to
// have been just consumed.
func binary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	rule := getRule(opKind)
	c.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case token.KindBangEqual:
		c.emitOp(bytecode.OpEqual)
		c.emitOp(bytecode.OpNot)
	case token.KindEqualEqual:
		c.emitOp(bytecode.OpEqual)
	case token.KindGreater:
		c.emitOp(bytecode.OpGreater)
	case token.KindGreaterEqual:
		c.emitOp(bytecode.OpLess)
		c.emitOp(bytecode.OpNot)
	case token.KindLess:
		c.emitOp(bytecode.OpLess)
	case token.KindLessEqual:
		c.emitOp(bytecode.OpGreater)
		c.emitOp(bytecode.OpNot)
	case token.KindPlus:
		c.emitOp(bytecode.OpAdd)
	case token.KindMinus:
		c.emitOp(bytecode.OpSubtract)
	case token.KindStar:
		c.emitOp(bytecode.OpMultiply)
	case token.KindSlash:
		c.emitOp(bytecode.OpDivide)
	default:
		panic("unreachable binary operator kind: " + opKind.String())
	}
}

// and_ compiles the right-hand side of a short-circuiting `and` expression.
// The left-hand side is already compiled and the `and` token just
// consumed.
func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(bytecode.OpJumpIfFalse)

	c.emitOp(bytecode.OpPop)
	c.parsePrecedence(precAnd)

	c.patchJump(endJump)
}

// or_ compiles the right-hand side of a short-circuiting `or` expression.
// The left-hand side is already compiled and the `or` token just consumed.
func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(bytecode.OpJumpIfFalse)
	endJump := c.emitJump(bytecode.OpJump)

	c.patchJump(elseJump)
	c.emitOp(bytecode.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

// variable compiles an identifier reference, which resolves to a local
// slot if one is in scope, otherwise a global. If canAssign and the next
// token is `=`, compiles an assignment instead of a read.
func variable(c *Compiler, canAssign bool) {
	name := c.previous

	var getOp, setOp bytecode.Opcode
	var arg int

	if slot := c.resolveLocal(name); slot != -1 {
		getOp, setOp = bytecode.OpGetLocal, bytecode.OpSetLocal
		arg = slot
	} else {
		getOp, setOp = bytecode.OpGetGlobal, bytecode.OpSetGlobal
		arg = c.identifierConstant(name)
	}

	if canAssign && c.match(token.KindEqual) {
		c.expression()
		c.emitOp(setOp)
		c.emitByte(byte(arg))
	} else {
		c.emitOp(getOp)
		c.emitByte(byte(arg))
	}
}
