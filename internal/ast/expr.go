package ast

import "github.com/kolkov/robolang/internal/token"

// -----------------------------------------------------------------------------
// Conditions
// -----------------------------------------------------------------------------

// AndCond is true when both operands are true. Right is not evaluated
// when Left is false.
type AndCond struct {
	BaseCond
	Left, Right Cond
}

// OrCond is true when either operand is true. Right is not evaluated
// when Left is true.
type OrCond struct {
	BaseCond
	Left, Right Cond
}

// NotCond negates its operand.
type NotCond struct {
	BaseCond
	Cond Cond
}

// RelCond compares two integer expressions.
// Example: lt(fuelLeft, 10)
type RelCond struct {
	BaseCond
	Op          token.Token // LT, GT or EQ
	Left, Right Expr
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// NumLit represents an integer literal.
type NumLit struct {
	BaseExpr
	Value int
}

// VarRef reads a variable. Unset variables read as 0.
type VarRef struct {
	BaseExpr
	Name string // Variable name including the leading $
}

// SensorExpr reads a robot sensor.
// Examples: fuelLeft, barrelLR, barrelFB(2)
type SensorExpr struct {
	BaseExpr
	Sensor token.Token // One of the sensor tokens
	Index  Expr        // Barrel index for barrelLR and barrelFB; nil means closest
}

// MathExpr applies an arithmetic operator.
// Example: add($x, 1)
type MathExpr struct {
	BaseExpr
	Op          token.Token // ADD, SUB, MUL or DIV
	Left, Right Expr
}

var (
	_ Cond = (*AndCond)(nil)
	_ Cond = (*OrCond)(nil)
	_ Cond = (*NotCond)(nil)
	_ Cond = (*RelCond)(nil)

	_ Expr = (*NumLit)(nil)
	_ Expr = (*VarRef)(nil)
	_ Expr = (*SensorExpr)(nil)
	_ Expr = (*MathExpr)(nil)
)
