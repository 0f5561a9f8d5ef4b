package parser

import (
	"strconv"

	"github.com/kolkov/robolang/internal/ast"
	"github.com/kolkov/robolang/internal/lexer"
	"github.com/kolkov/robolang/internal/token"
)

// Parser is a recursive descent parser for robot programs.
// Every production is decided by the current token alone.
type Parser struct {
	toks []lexer.Token // Whole token stream, ending with EOF
	idx  int           // Index of the current token
	tok  lexer.Token   // Current token
}

// Parse parses a robot program from source code.
// Empty (or whitespace-only) source yields an empty program and no error.
func Parse(src string) (*ast.Program, error) {
	return ParseBytes([]byte(src))
}

// ParseBytes parses a robot program from a byte slice.
func ParseBytes(src []byte) (*ast.Program, error) {
	p := newParser(src)
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseExpr parses a single integer expression (useful for testing).
func ParseExpr(src string) (ast.Expr, error) {
	p := newParser([]byte(src))
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseCond parses a single condition (useful for testing).
func ParseCond(src string) (ast.Cond, error) {
	p := newParser([]byte(src))
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return cond, nil
}

func newParser(src []byte) *Parser {
	p := &Parser{toks: lexer.Tokenize(src)}
	p.tok = p.toks[0]
	return p
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token. The cursor never moves past EOF.
func (p *Parser) next() {
	if p.idx < len(p.toks)-1 {
		p.idx++
	}
	p.tok = p.toks[p.idx]
}

// expect checks that the current token is tok and advances.
func (p *Parser) expect(tok token.Token) error {
	if p.tok.Type != tok {
		return p.expectedError("'" + tok.String() + "'")
	}
	p.next()
	return nil
}

func (p *Parser) expectEOF() error {
	if p.tok.Type != token.EOF {
		return p.expectedError("end of input")
	}
	return nil
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	if p.tok.Type == token.EOF {
		return "end of input"
	}
	return "'" + p.tok.Value + "'"
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

// parseProgram parses Statement* up to end of input.
func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{StartPos: p.tok.Pos}
	for p.tok.Type != token.EOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.tok.Type {
	case token.LOOP:
		return p.parseLoopStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.VAR:
		return p.parseAssignStmt()
	case token.ILLEGAL:
		return nil, p.malformedError()
	default:
		action, err := p.parseAction()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return action, nil
	}
}

// parseBlock parses '{' Statement+ '}'.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	startPos := p.tok.Pos
	if err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	if p.tok.Type == token.RBRACE {
		return nil, p.errorf("empty block")
	}

	var stmts []ast.Stmt
	for p.tok.Type != token.RBRACE {
		if p.tok.Type == token.EOF {
			return nil, p.expectedError("'}'")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	p.next() // consume '}'

	return &ast.BlockStmt{
		BaseStmt: ast.MakeBaseStmt(startPos),
		Stmts:    stmts,
	}, nil
}

func (p *Parser) parseLoopStmt() (*ast.LoopStmt, error) {
	startPos := p.tok.Pos
	p.next() // consume 'loop'

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.LoopStmt{BaseStmt: ast.MakeBaseStmt(startPos), Body: body}, nil
}

// parseIfStmt parses if, any number of elif branches, and an optional else.
func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	stmt := &ast.IfStmt{BaseStmt: ast.MakeBaseStmt(p.tok.Pos)}
	p.next() // consume 'if'

	for {
		cond, err := p.parseParenCond()
		if err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, ast.CondBlock{Cond: cond, Block: block})

		if p.tok.Type != token.ELIF {
			break
		}
		p.next() // consume 'elif'
	}

	if p.tok.Type == token.ELSE {
		p.next()
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = block
	}
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	startPos := p.tok.Pos
	p.next() // consume 'while'

	cond, err := p.parseParenCond()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{BaseStmt: ast.MakeBaseStmt(startPos), Cond: cond, Body: body}, nil
}

// parseAssignStmt parses VarName '=' Expr ';'.
func (p *Parser) parseAssignStmt() (*ast.AssignStmt, error) {
	startPos := p.tok.Pos
	name := p.tok.Value
	p.next()

	if err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.AssignStmt{BaseStmt: ast.MakeBaseStmt(startPos), Name: name, Value: value}, nil
}

// parseAction parses ActionName ('(' Expr ')')?. Only move and wait
// take the parenthesized count.
func (p *Parser) parseAction() (*ast.ActionStmt, error) {
	if !p.tok.Type.IsAction() {
		// if, loop and while are dispatched before this point
		if p.tok.Type.IsKeyword() {
			return nil, p.errorf("'%s' without 'if'", p.tok.Value)
		}
		return nil, p.expectedError("statement")
	}
	stmt := &ast.ActionStmt{BaseStmt: ast.MakeBaseStmt(p.tok.Pos), Action: p.tok.Type}
	p.next()

	if stmt.Action.TakesCount() && p.tok.Type == token.LPAREN {
		p.next()
		count, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		stmt.Count = count
	}
	return stmt, nil
}

// -----------------------------------------------------------------------------
// Conditions
// -----------------------------------------------------------------------------

// parseParenCond parses '(' Cond ')'.
func (p *Parser) parseParenCond() (ast.Cond, error) {
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) parseCond() (ast.Cond, error) {
	startPos := p.tok.Pos
	op := p.tok.Type

	switch {
	case op == token.NOT:
		p.next()
		cond, err := p.parseParenCond()
		if err != nil {
			return nil, err
		}
		return &ast.NotCond{BaseCond: ast.MakeBaseCond(startPos), Cond: cond}, nil

	case op.IsLogicOp(): // and, or
		p.next()
		left, right, err := p.parseCondPair()
		if err != nil {
			return nil, err
		}
		if op == token.AND {
			return &ast.AndCond{BaseCond: ast.MakeBaseCond(startPos), Left: left, Right: right}, nil
		}
		return &ast.OrCond{BaseCond: ast.MakeBaseCond(startPos), Left: left, Right: right}, nil

	case op.IsRelOp():
		p.next()
		left, right, err := p.parseExprPair()
		if err != nil {
			return nil, err
		}
		return &ast.RelCond{BaseCond: ast.MakeBaseCond(startPos), Op: op, Left: left, Right: right}, nil

	default:
		return nil, p.expectedError("condition")
	}
}

// parseCondPair parses '(' Cond ',' Cond ')'.
func (p *Parser) parseCondPair() (left, right ast.Cond, err error) {
	if err = p.expect(token.LPAREN); err != nil {
		return nil, nil, err
	}
	if left, err = p.parseCond(); err != nil {
		return nil, nil, err
	}
	if err = p.expect(token.COMMA); err != nil {
		return nil, nil, err
	}
	if right, err = p.parseCond(); err != nil {
		return nil, nil, err
	}
	if err = p.expect(token.RPAREN); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (p *Parser) parseExpr() (ast.Expr, error) {
	startPos := p.tok.Pos
	tok := p.tok

	switch {
	case tok.Type == token.NUMBER:
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			return nil, p.errorf("integer %s out of range", tok.Value)
		}
		p.next()
		return &ast.NumLit{BaseExpr: ast.MakeBaseExpr(startPos), Value: n}, nil

	case tok.Type == token.VAR:
		p.next()
		return &ast.VarRef{BaseExpr: ast.MakeBaseExpr(startPos), Name: tok.Value}, nil

	case tok.Type.IsSensor():
		p.next()
		expr := &ast.SensorExpr{BaseExpr: ast.MakeBaseExpr(startPos), Sensor: tok.Type}
		if tok.Type.TakesIndex() && p.tok.Type == token.LPAREN {
			p.next()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			expr.Index = index
		}
		return expr, nil

	case tok.Type == token.ILLEGAL:
		return nil, p.malformedError()

	case tok.Type.IsMathOp():
		p.next()
		left, right, err := p.parseExprPair()
		if err != nil {
			return nil, err
		}
		return &ast.MathExpr{BaseExpr: ast.MakeBaseExpr(startPos), Op: tok.Type, Left: left, Right: right}, nil

	default:
		return nil, p.expectedError("expression")
	}
}

// parseExprPair parses '(' Expr ',' Expr ')'.
func (p *Parser) parseExprPair() (left, right ast.Expr, err error) {
	if err = p.expect(token.LPAREN); err != nil {
		return nil, nil, err
	}
	if left, err = p.parseExpr(); err != nil {
		return nil, nil, err
	}
	if err = p.expect(token.COMMA); err != nil {
		return nil, nil, err
	}
	if right, err = p.parseExpr(); err != nil {
		return nil, nil, err
	}
	if err = p.expect(token.RPAREN); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
