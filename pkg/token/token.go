/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package token

// Kind represents the type of a token. I would call this Type if "type"
// wasn't a reserved word in Go. So, there we have it, "Kind kind".
type Kind int

const (
	// Single-character tokens.
	KindLeftParen    Kind = iota // (
	KindRightParen               // )
	KindLeftBrace                // {
	KindRightBrace               // }
	KindLeftBracket              // [
	KindRightBracket             // ]
	KindComma                    // ,
	KindDot                      // .
	KindMinus                    // -
	KindPlus                     // +
	KindSemicolon                // ;
	KindSlash                    // /
	KindStar                     // *

	// One or two character tokens.
	KindBang         // !
	KindBangEqual    // !=
	KindEqual        // =
	KindEqualEqual   // ==
	KindGreater      // >
	KindGreaterEqual // >=
	KindLess         // <
	KindLessEqual    // <=

	// Literals.
	KindIdentifier
	KindStringLiteral
	KindNumberLiteral

	// Keywords.
	KindAnd
	KindClass
	KindElse
	KindFalse
	KindFinal
	KindFor
	KindFun
	KindIf
	KindLet
	KindNil
	KindOr
	KindPrint
	KindReturn
	KindSuper
	KindThis
	KindTrue
	KindVar
	KindWhile

	// Special tokens.
	KindError
	KindEOF // end-of-file

	// Not really a token kind; used to size arrays indexed by Kind.
	NumberOfKinds
)

// String converts a Kind to its string representation. Returns an empty
// string if an invalid kind value is passed.
func (kind Kind) String() string { // nolint:funlen,gocyclo
	switch kind {
	case KindLeftParen:
		return "KindLeftParen"
	case KindRightParen:
		return "KindRightParen"
	case KindLeftBrace:
		return "KindLeftBrace"
	case KindRightBrace:
		return "KindRightBrace"
	case KindLeftBracket:
		return "KindLeftBracket"
	case KindRightBracket:
		return "KindRightBracket"
	case KindComma:
		return "KindComma"
	case KindDot:
		return "KindDot"
	case KindMinus:
		return "KindMinus"
	case KindPlus:
		return "KindPlus"
	case KindSemicolon:
		return "KindSemicolon"
	case KindSlash:
		return "KindSlash"
	case KindStar:
		return "KindStar"
	case KindBang:
		return "KindBang"
	case KindBangEqual:
		return "KindBangEqual"
	case KindEqual:
		return "KindEqual"
	case KindEqualEqual:
		return "KindEqualEqual"
	case KindGreater:
		return "KindGreater"
	case KindGreaterEqual:
		return "KindGreaterEqual"
	case KindLess:
		return "KindLess"
	case KindLessEqual:
		return "KindLessEqual"
	case KindIdentifier:
		return "KindIdentifier"
	case KindStringLiteral:
		return "KindStringLiteral"
	case KindNumberLiteral:
		return "KindNumberLiteral"
	case KindAnd:
		return "KindAnd"
	case KindClass:
		return "KindClass"
	case KindElse:
		return "KindElse"
	case KindFalse:
		return "KindFalse"
	case KindFinal:
		return "KindFinal"
	case KindFor:
		return "KindFor"
	case KindFun:
		return "KindFun"
	case KindIf:
		return "KindIf"
	case KindLet:
		return "KindLet"
	case KindNil:
		return "KindNil"
	case KindOr:
		return "KindOr"
	case KindPrint:
		return "KindPrint"
	case KindReturn:
		return "KindReturn"
	case KindSuper:
		return "KindSuper"
	case KindThis:
		return "KindThis"
	case KindTrue:
		return "KindTrue"
	case KindVar:
		return "KindVar"
	case KindWhile:
		return "KindWhile"
	case KindError:
		return "KindError"
	case KindEOF:
		return "KindEOF"
	}

	return ""
}

// Keywords maps reserved-word lexemes to their token Kind. Both "var" and
// "let" are recognized (synonyms); "fun", "return", "class", "super" and
// "this" are recognized but not (yet) implemented by the compiler.
var Keywords = map[string]Kind{
	"and":    KindAnd,
	"class":  KindClass,
	"else":   KindElse,
	"false":  KindFalse,
	"final":  KindFinal,
	"for":    KindFor,
	"fun":    KindFun,
	"if":     KindIf,
	"let":    KindLet,
	"nil":    KindNil,
	"or":     KindOr,
	"print":  KindPrint,
	"return": KindReturn,
	"super":  KindSuper,
	"this":   KindThis,
	"true":   KindTrue,
	"var":    KindVar,
	"while":  KindWhile,
}

// A Token is a token. You know, one of these thingies the scanner generates
// and the compiler consumes.
type Token struct {
	// Kind is the kind of the token.
	Kind Kind

	// Lexeme is the text that makes up the token: a slice of the original
	// source. Error tokens use this to carry the diagnostic message instead.
	Lexeme string

	// Line is the source line the token came from.
	Line int
}
