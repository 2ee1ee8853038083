/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/stackedboxes/lumi/pkg/token"
)

// Tests Scanner.Token() with simple, mostly single-token, cases.
func TestScannerTokenSimpleCases(t *testing.T) { // nolint: funlen
	tokens := tokenizeString("")
	assert.Equal(t, []token.Kind{token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []string{""}, tokenLexemes(tokens))
	assert.Equal(t, []int{1}, tokenLines(tokens))

	tokens = tokenizeString("foo")
	assert.Equal(t, []token.Kind{token.KindIdentifier, token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []string{"foo", ""}, tokenLexemes(tokens))
	assert.Equal(t, []int{1, 1}, tokenLines(tokens))

	tokens = tokenizeString("while")
	assert.Equal(t, []token.Kind{token.KindWhile, token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []string{"while", ""}, tokenLexemes(tokens))
	assert.Equal(t, []int{1, 1}, tokenLines(tokens))

	tokens = tokenizeString("final")
	assert.Equal(t, []token.Kind{token.KindFinal, token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []string{"final", ""}, tokenLexemes(tokens))

	tokens = tokenizeString("let")
	assert.Equal(t, []token.Kind{token.KindLet, token.KindEOF}, tokenKinds(tokens))

	tokens = tokenizeString("// a whole line comment\nfoo")
	assert.Equal(t, []token.Kind{token.KindIdentifier, token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []int{2, 2}, tokenLines(tokens))

	tokens = tokenizeString("123.456")
	assert.Equal(t, []token.Kind{token.KindNumberLiteral, token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []string{"123.456", ""}, tokenLexemes(tokens))

	tokens = tokenizeString("42")
	assert.Equal(t, []token.Kind{token.KindNumberLiteral, token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []string{"42", ""}, tokenLexemes(tokens))

	tokens = tokenizeString(`"hello, world"`)
	assert.Equal(t, []token.Kind{token.KindStringLiteral, token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []string{`"hello, world"`, ""}, tokenLexemes(tokens))

	tokens = tokenizeString(">=")
	assert.Equal(t, []token.Kind{token.KindGreaterEqual, token.KindEOF}, tokenKinds(tokens))
	assert.Equal(t, []string{">=", ""}, tokenLexemes(tokens))

	tokens = tokenizeString("!")
	assert.Equal(t, []token.Kind{token.KindBang, token.KindEOF}, tokenKinds(tokens))

	tokens = tokenizeString("!=")
	assert.Equal(t, []token.Kind{token.KindBangEqual, token.KindEOF}, tokenKinds(tokens))

	tokens = tokenizeString("@")
	assert.Equal(t, []token.Kind{token.KindError}, tokenKinds(tokens))
}

// Tests scanning of a string literal that spans multiple lines.
func TestScannerMultilineString(t *testing.T) {
	tokens := tokenizeString("\"foo\nbar\"\nbaz")
	assert.Equal(t, []token.Kind{token.KindStringLiteral, token.KindIdentifier, token.KindEOF},
		tokenKinds(tokens))
	assert.Equal(t, []int{1, 3, 3}, tokenLines(tokens))
}

// Tests that an unterminated string yields an Error token.
func TestScannerUnterminatedString(t *testing.T) {
	tokens := tokenizeString(`"unterminated`)
	assert.Equal(t, []token.Kind{token.KindError}, tokenKinds(tokens))
}

// Tests a longer, more realistic snippet with several token kinds in a row.
func TestScannerMultipleTokens(t *testing.T) {
	tokens := tokenizeString(`var final x = 10; print x + 1; // trailing comment`)
	assert.Equal(t, []token.Kind{
		token.KindVar, token.KindFinal, token.KindIdentifier, token.KindEqual,
		token.KindNumberLiteral, token.KindSemicolon, token.KindPrint,
		token.KindIdentifier, token.KindPlus, token.KindNumberLiteral,
		token.KindSemicolon, token.KindEOF},
		tokenKinds(tokens))
}

// tokenKinds extracts the token kinds from a slice of tokens.
func tokenKinds(tokens []*token.Token) []token.Kind {
	result := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		result = append(result, tok.Kind)
	}
	return result
}

// tokenLexemes extracts the lexemes from a slice of tokens.
func tokenLexemes(tokens []*token.Token) []string {
	result := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		result = append(result, tok.Lexeme)
	}
	return result
}

// tokenLines extracts the line numbers from a slice of tokens.
func tokenLines(tokens []*token.Token) []int {
	result := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		result = append(result, tok.Line)
	}
	return result
}

// tokenizeString creates a Scanner and calls Token() on it until getting an
// EOF or error, returning the resulting slice of Tokens.
func tokenizeString(source string) []*token.Token {
	s := New(source)
	result := make([]*token.Token, 0, 16)

	tok := s.Token()
	result = append(result, tok)
	for tok.Kind != token.KindEOF && tok.Kind != token.KindError {
		tok = s.Token()
		result = append(result, tok)
	}

	return result
}
