// Package lexer splits robot program source into tokens.
//
// Tokens are separated by whitespace. The characters { } ( ) , ; are
// always tokens of their own, so "move(5);" scans as move ( 5 ) ;.
// Every other run of non-space characters is a single word which is then
// classified as a reserved word, a variable name, an integer literal,
// the assignment sign, an ILLEGAL word that looks like a variable or a
// number but is malformed, or an unclassified WORD.
package lexer

import (
	"github.com/coregx/coregex"

	"github.com/kolkov/robolang/internal/token"
)

var (
	// varPattern matches variable names such as $x or $count2.
	varPattern = mustCompile(`^\$[A-Za-z][A-Za-z0-9]*$`)
	// numPattern matches integer literals without leading zeros.
	numPattern = mustCompile(`^(?:-?[1-9][0-9]*|0)$`)
)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("lexer: invalid pattern " + pattern + ": " + err.Error())
	}
	return re
}

// IsVarName reports whether s is a valid variable name.
func IsVarName(s string) bool {
	return varPattern.MatchString(s)
}

// IsInteger reports whether s is a valid integer literal.
func IsInteger(s string) bool {
	return numPattern.MatchString(s)
}

// Lexer tokenizes robot program source.
type Lexer struct {
	src     []byte         // Source code
	offset  int            // Current byte offset
	nextPos token.Position // Position of the byte at offset
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	return &Lexer{
		src:     src,
		nextPos: token.Position{Line: 1, Column: 1},
	}
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token. At end of input it returns
// an EOF token, and keeps returning EOF on further calls.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	pos := l.nextPos
	if l.offset >= len(l.src) {
		return Token{Type: token.EOF, Pos: pos}
	}

	ch := l.src[l.offset]
	if typ, ok := punct[ch]; ok {
		l.advance()
		return Token{Type: typ, Pos: pos, Value: string(ch)}
	}

	start := l.offset
	for l.offset < len(l.src) && !isSpace(l.src[l.offset]) && !isPunct(l.src[l.offset]) {
		l.advance()
	}
	word := string(l.src[start:l.offset])
	return Token{Type: classify(word), Pos: pos, Value: word}
}

// Tokenize scans the whole source. The returned slice always ends with
// an EOF token.
func Tokenize(src []byte) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.Scan()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func classify(word string) token.Token {
	if typ := token.Lookup(word); typ != token.WORD {
		return typ
	}
	switch {
	case word == "=":
		return token.ASSIGN
	case word[0] == '$':
		if IsVarName(word) {
			return token.VAR
		}
		return token.ILLEGAL
	case IsInteger(word):
		return token.NUMBER
	case looksNumeric(word):
		return token.ILLEGAL
	default:
		return token.WORD
	}
}

// looksNumeric reports whether word starts like an integer literal.
func looksNumeric(word string) bool {
	if word[0] == '-' {
		word = word[1:]
	}
	return word != "" && word[0] >= '0' && word[0] <= '9'
}

var punct = map[byte]token.Token{
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	',': token.COMMA,
	';': token.SEMICOLON,
}

func (l *Lexer) skipWhitespace() {
	for l.offset < len(l.src) && isSpace(l.src[l.offset]) {
		l.advance()
	}
}

func (l *Lexer) advance() {
	ch := l.src[l.offset]
	l.offset++
	l.nextPos.Offset = l.offset
	if ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
		return
	}
	l.nextPos.Column++
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isPunct(ch byte) bool {
	_, ok := punct[ch]
	return ok
}
