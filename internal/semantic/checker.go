package semantic

import (
	"github.com/kolkov/robolang/internal/ast"
	"github.com/kolkov/robolang/internal/token"
)

// Checker looks for statements and expressions that cannot do what
// they appear to do.
type Checker struct {
	warnings WarningList
}

// Check reports unreachable statements, literal division by zero and
// literal repeat counts that perform nothing.
func Check(prog *ast.Program) WarningList {
	c := &Checker{}
	if prog != nil {
		c.checkStmts(prog.Stmts)
	}
	return c.warnings
}

// Analyze runs Resolve and Check and returns all warnings in source order.
func Analyze(prog *ast.Program, preset ...string) WarningList {
	warnings := Resolve(prog, preset...).Warnings
	warnings = append(warnings, Check(prog)...)
	warnings.Sort()
	return warnings
}

// checkStmts checks one statement sequence. Only the first statement
// after a loop is reported.
func (c *Checker) checkStmts(stmts []ast.Stmt) {
	for i, stmt := range stmts {
		c.checkStmt(stmt)
		if _, ok := stmt.(*ast.LoopStmt); ok && i+1 < len(stmts) {
			c.warnings.Add(stmts[i+1].Pos(), warnUnreachable)
			return
		}
	}
}

func (c *Checker) checkBlock(block *ast.BlockStmt) {
	if block == nil {
		return
	}
	c.checkStmts(block.Stmts)
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		c.checkBlock(s)

	case *ast.LoopStmt:
		c.checkBlock(s.Body)

	case *ast.IfStmt:
		for _, br := range s.Branches {
			c.checkExprs(br.Cond)
			c.checkBlock(br.Block)
		}
		c.checkBlock(s.Else)

	case *ast.WhileStmt:
		c.checkExprs(s.Cond)
		c.checkBlock(s.Body)

	case *ast.AssignStmt:
		c.checkExprs(s.Value)

	case *ast.ActionStmt:
		if s.Count == nil {
			return
		}
		c.checkExprs(s.Count)
		if lit, ok := s.Count.(*ast.NumLit); ok && lit.Value <= 0 {
			c.warnings.Add(s.Count.Pos(), warnEmptyRepeat, s.Action, lit.Value)
		}
	}
}

// checkExprs visits every expression below node.
func (c *Checker) checkExprs(node ast.Node) {
	ast.Walk(node, func(n ast.Node) bool {
		if m, ok := n.(*ast.MathExpr); ok && m.Op == token.DIV {
			if lit, ok := m.Right.(*ast.NumLit); ok && lit.Value == 0 {
				c.warnings.Add(m.Pos(), warnDivZero)
			}
		}
		return true
	})
}
