// Package parser provides a recursive descent parser for robot programs.
package parser

import (
	"fmt"
	"strings"

	"github.com/kolkov/robolang/internal/lexer"
	"github.com/kolkov/robolang/internal/token"
)

// contextTokens is the number of tokens quoted in a syntax error,
// starting at the offending token.
const contextTokens = 5

// SyntaxError represents a grammar violation. Parsing stops at the first
// one; no partial tree is returned.
type SyntaxError struct {
	Pos     token.Position // Position of the offending token
	Message string         // Human-readable error message
	Context []string       // Offending token and the ones after it, at most five
}

// Error returns the message with position and token context.
func (e *SyntaxError) Error() string {
	var sb strings.Builder
	if e.Pos.IsValid() {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if len(e.Context) == 0 {
		sb.WriteString(" @ end of input")
	} else {
		sb.WriteString(" @ ... ")
		sb.WriteString(strings.Join(e.Context, " "))
		sb.WriteString(" ...")
	}
	return sb.String()
}

// context returns the values of up to contextTokens tokens starting at i.
func context(toks []lexer.Token, i int) []string {
	var ctx []string
	for ; i < len(toks) && len(ctx) < contextTokens; i++ {
		if toks[i].Type == token.EOF {
			break
		}
		ctx = append(ctx, toks[i].Value)
	}
	return ctx
}

// errorf creates a SyntaxError at the current token with formatted message.
func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Pos:     p.tok.Pos,
		Message: fmt.Sprintf(format, args...),
		Context: context(p.toks, p.idx),
	}
}

// expectedError creates a SyntaxError for an unexpected token.
func (p *Parser) expectedError(want string) *SyntaxError {
	return p.errorf("expected %s, got %s", want, p.tokenDesc())
}

// malformedError reports an ILLEGAL word, one that looks like a
// variable or a number but is neither.
func (p *Parser) malformedError() *SyntaxError {
	what := "number"
	if strings.HasPrefix(p.tok.Value, "$") {
		what = "variable name"
	}
	return p.errorf("malformed %s '%s'", what, p.tok.Value)
}
