// Package ast defines the abstract syntax tree for robot programs.
//
// The node set is closed: each family interface carries an unexported
// marker method, so only the types in this package can implement it.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Stmt (interface) - statements executed for their effects
//	│   ├── BlockStmt - { stmt+ }
//	│   ├── LoopStmt, WhileStmt, IfStmt - control flow
//	│   └── AssignStmt, ActionStmt - simple statements
//	├── Cond (interface) - boolean conditions
//	│   ├── AndCond, OrCond, NotCond - logical
//	│   └── RelCond - lt, gt, eq over two expressions
//	├── Expr (interface) - integer expressions
//	│   ├── NumLit, VarRef - literals and references
//	│   ├── SensorExpr - robot sensor reads
//	│   └── MathExpr - add, sub, mul, div
//	└── Program - top-level statement sequence
//
// Nodes are built once by the parser and never mutated afterwards.
package ast

import "github.com/kolkov/robolang/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Pos returns the position of the first token belonging to this node.
	Pos() token.Position
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Cond is the interface for all boolean condition nodes.
type Cond interface {
	Node
	condNode()
}

// Expr is the interface for all integer expression nodes.
type Expr interface {
	Node
	exprNode()
}

// BaseStmt provides the position for statement nodes.
type BaseStmt struct {
	StartPos token.Position
}

func (b *BaseStmt) Pos() token.Position { return b.StartPos }
func (b *BaseStmt) stmtNode()           {}

// BaseCond provides the position for condition nodes.
type BaseCond struct {
	StartPos token.Position
}

func (b *BaseCond) Pos() token.Position { return b.StartPos }
func (b *BaseCond) condNode()           {}

// BaseExpr provides the position for expression nodes.
type BaseExpr struct {
	StartPos token.Position
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) exprNode()           {}

// MakeBaseStmt creates a BaseStmt at pos.
func MakeBaseStmt(pos token.Position) BaseStmt { return BaseStmt{StartPos: pos} }

// MakeBaseCond creates a BaseCond at pos.
func MakeBaseCond(pos token.Position) BaseCond { return BaseCond{StartPos: pos} }

// MakeBaseExpr creates a BaseExpr at pos.
func MakeBaseExpr(pos token.Position) BaseExpr { return BaseExpr{StartPos: pos} }

// Program is the root of a parsed robot program.
type Program struct {
	Stmts    []Stmt
	StartPos token.Position
}

// Pos returns the position of the first token in the program.
func (p *Program) Pos() token.Position { return p.StartPos }

// IsEmpty reports whether the program has no statements. Empty source
// produces an empty program, which runs as a no-op.
func (p *Program) IsEmpty() bool {
	return p == nil || len(p.Stmts) == 0
}
