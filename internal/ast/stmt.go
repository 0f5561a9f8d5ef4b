package ast

import "github.com/kolkov/robolang/internal/token"

// BlockStmt represents a braced, non-empty statement sequence.
// Example: { move; turnL; }
type BlockStmt struct {
	BaseStmt
	Stmts []Stmt
}

// LoopStmt repeats its body forever. Only a fault raised by the robot
// ends it.
// Example: loop { takeFuel; }
type LoopStmt struct {
	BaseStmt
	Body *BlockStmt
}

// CondBlock is one guarded branch of an if statement.
type CondBlock struct {
	Cond  Cond
	Block *BlockStmt
}

// IfStmt represents an if with optional elif branches and else.
// Branches are tried in order and at most one runs.
// Example: if (lt(fuelLeft, 5)) { takeFuel; } elif (eq(oppLR, 0)) { shieldOn; } else { move; }
type IfStmt struct {
	BaseStmt
	Branches []CondBlock // if branch followed by elif branches, never empty
	Else     *BlockStmt  // nil when there is no else
}

// WhileStmt represents a pre-test loop.
// Example: while (gt(wallDist, 0)) { move; }
type WhileStmt struct {
	BaseStmt
	Cond Cond
	Body *BlockStmt
}

// AssignStmt stores the value of an expression in a variable.
// Example: $x = add($x, 1);
type AssignStmt struct {
	BaseStmt
	Name  string // Variable name including the leading $
	Value Expr
}

// ActionStmt invokes a robot action.
// Examples: move; move(3); wait($n); turnL;
type ActionStmt struct {
	BaseStmt
	Action token.Token // One of the action tokens
	Count  Expr        // Repeat count for move and wait; nil means once
}

var (
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*LoopStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*AssignStmt)(nil)
	_ Stmt = (*ActionStmt)(nil)
)
