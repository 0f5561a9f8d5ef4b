package ast_test

import (
	"bytes"
	"testing"

	"github.com/kolkov/robolang/internal/ast"
	"github.com/kolkov/robolang/internal/token"
)

func num(n int) *ast.NumLit { return &ast.NumLit{Value: n} }

func block(stmts ...ast.Stmt) *ast.BlockStmt { return &ast.BlockStmt{Stmts: stmts} }

func action(tok token.Token) *ast.ActionStmt { return &ast.ActionStmt{Action: tok} }

// TestNodeInterface verifies all node types report a position.
func TestNodeInterface(t *testing.T) {
	pos := token.Position{Line: 2, Column: 3, Offset: 7}

	tests := []struct {
		name string
		node ast.Node
	}{
		{"BlockStmt", &ast.BlockStmt{BaseStmt: ast.MakeBaseStmt(pos)}},
		{"LoopStmt", &ast.LoopStmt{BaseStmt: ast.MakeBaseStmt(pos)}},
		{"IfStmt", &ast.IfStmt{BaseStmt: ast.MakeBaseStmt(pos)}},
		{"WhileStmt", &ast.WhileStmt{BaseStmt: ast.MakeBaseStmt(pos)}},
		{"AssignStmt", &ast.AssignStmt{BaseStmt: ast.MakeBaseStmt(pos)}},
		{"ActionStmt", &ast.ActionStmt{BaseStmt: ast.MakeBaseStmt(pos)}},
		{"AndCond", &ast.AndCond{BaseCond: ast.MakeBaseCond(pos)}},
		{"OrCond", &ast.OrCond{BaseCond: ast.MakeBaseCond(pos)}},
		{"NotCond", &ast.NotCond{BaseCond: ast.MakeBaseCond(pos)}},
		{"RelCond", &ast.RelCond{BaseCond: ast.MakeBaseCond(pos)}},
		{"NumLit", &ast.NumLit{BaseExpr: ast.MakeBaseExpr(pos)}},
		{"VarRef", &ast.VarRef{BaseExpr: ast.MakeBaseExpr(pos)}},
		{"SensorExpr", &ast.SensorExpr{BaseExpr: ast.MakeBaseExpr(pos)}},
		{"MathExpr", &ast.MathExpr{BaseExpr: ast.MakeBaseExpr(pos)}},
		{"Program", &ast.Program{StartPos: pos}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Pos(); got != pos {
				t.Errorf("Pos() = %v, want %v", got, pos)
			}
		})
	}
}

func TestProgramIsEmpty(t *testing.T) {
	var nilProg *ast.Program
	if !nilProg.IsEmpty() {
		t.Error("nil program should be empty")
	}
	if !(&ast.Program{}).IsEmpty() {
		t.Error("program without statements should be empty")
	}
	if (&ast.Program{Stmts: []ast.Stmt{action(token.MOVE)}}).IsEmpty() {
		t.Error("program with a statement should not be empty")
	}
}

func TestPrintExpr(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"number", num(42), "42"},
		{"negative", num(-7), "-7"},
		{"variable", &ast.VarRef{Name: "$x"}, "$x"},
		{"sensor", &ast.SensorExpr{Sensor: token.FUEL_LEFT}, "fuelLeft"},
		{"indexed sensor", &ast.SensorExpr{Sensor: token.BARREL_FB, Index: num(2)}, "barrelFB(2)"},
		{"math", &ast.MathExpr{Op: token.ADD, Left: num(2), Right: num(3)}, "add(2, 3)"},
		{"nested math", &ast.MathExpr{
			Op:    token.DIV,
			Left:  &ast.MathExpr{Op: token.MUL, Left: &ast.VarRef{Name: "$a"}, Right: num(4)},
			Right: &ast.SensorExpr{Sensor: token.WALL_DIST},
		}, "div(mul($a, 4), wallDist)"},
		{"relop", &ast.RelCond{Op: token.LT, Left: num(5), Right: num(3)}, "lt(5, 3)"},
		{"not", &ast.NotCond{Cond: &ast.RelCond{Op: token.EQ, Left: num(1), Right: num(1)}}, "not(eq(1, 1))"},
		{"and or", &ast.AndCond{
			Left:  &ast.RelCond{Op: token.GT, Left: &ast.SensorExpr{Sensor: token.OPP_LR}, Right: num(0)},
			Right: &ast.OrCond{
				Left:  &ast.RelCond{Op: token.EQ, Left: num(1), Right: num(2)},
				Right: &ast.RelCond{Op: token.LT, Left: num(3), Right: num(4)},
			},
		}, "and(gt(oppLR, 0), or(eq(1, 2), lt(3, 4)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.String(tt.node); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintStmt(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"action", action(token.TURN_L), "turnL;"},
		{"counted action", &ast.ActionStmt{Action: token.MOVE, Count: num(3)}, "move(3);"},
		{"assign", &ast.AssignStmt{Name: "$x", Value: &ast.MathExpr{Op: token.SUB, Left: num(2), Right: num(3)}}, "$x = sub(2, 3);"},
		{"loop", &ast.LoopStmt{Body: block(action(token.TAKE_FUEL))}, "loop {\n    takeFuel;\n}"},
		{"while", &ast.WhileStmt{
			Cond: &ast.RelCond{Op: token.GT, Left: &ast.SensorExpr{Sensor: token.WALL_DIST}, Right: num(0)},
			Body: block(action(token.MOVE)),
		}, "while (gt(wallDist, 0)) {\n    move;\n}"},
		{"if elif else", &ast.IfStmt{
			Branches: []ast.CondBlock{
				{Cond: &ast.RelCond{Op: token.LT, Left: num(1), Right: num(2)}, Block: block(action(token.MOVE))},
				{Cond: &ast.RelCond{Op: token.GT, Left: num(1), Right: num(2)}, Block: block(action(token.TURN_R))},
			},
			Else: block(action(token.WAIT)),
		}, "if (lt(1, 2)) {\n    move;\n} elif (gt(1, 2)) {\n    turnR;\n} else {\n    wait;\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.String(tt.node); got != tt.want {
				t.Errorf("String() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestPrintNestedIndent(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.AssignStmt{Name: "$n", Value: num(0)},
		&ast.LoopStmt{Body: block(
			&ast.IfStmt{
				Branches: []ast.CondBlock{{
					Cond:  &ast.RelCond{Op: token.LT, Left: &ast.VarRef{Name: "$n"}, Right: num(3)},
					Block: block(&ast.ActionStmt{Action: token.MOVE, Count: num(2)}),
				}},
			},
			action(token.TURN_AROUND),
		)},
	}}

	want := "$n = 0;\n" +
		"loop {\n" +
		"    if (lt($n, 3)) {\n" +
		"        move(2);\n" +
		"    }\n" +
		"    turnAround;\n" +
		"}\n"

	var buf bytes.Buffer
	if err := ast.NewPrinter(&buf).Print(prog); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if got := buf.String(); got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}

// TestWalk verifies AST walking visits every node, including optional children.
func TestWalk(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.AssignStmt{Name: "$x", Value: &ast.MathExpr{Op: token.ADD, Left: num(2), Right: num(3)}},
		&ast.IfStmt{
			Branches: []ast.CondBlock{{
				Cond:  &ast.RelCond{Op: token.EQ, Left: &ast.VarRef{Name: "$x"}, Right: num(5)},
				Block: block(action(token.TAKE_FUEL)),
			}},
		},
		&ast.ActionStmt{Action: token.WAIT, Count: &ast.SensorExpr{Sensor: token.BARREL_LR, Index: num(1)}},
	}}

	var stmts, conds, exprs, total int
	ast.Walk(prog, func(n ast.Node) bool {
		total++
		switch n.(type) {
		case ast.Stmt:
			stmts++
		case ast.Cond:
			conds++
		case ast.Expr:
			exprs++
		}
		return true
	})

	// assign, if, block, takeFuel, wait
	if stmts != 5 {
		t.Errorf("statements = %d, want 5", stmts)
	}
	if conds != 1 {
		t.Errorf("conditions = %d, want 1", conds)
	}
	// add, 2, 3, $x, 5, barrelLR, 1
	if exprs != 7 {
		t.Errorf("expressions = %d, want 7", exprs)
	}
	if total != stmts+conds+exprs+1 {
		t.Errorf("total = %d, want %d", total, stmts+conds+exprs+1)
	}
}

func TestWalkSkipChildren(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.LoopStmt{Body: block(action(token.MOVE), action(token.TURN_L))},
	}}

	var actions int
	ast.Walk(prog, func(n ast.Node) bool {
		if _, ok := n.(*ast.ActionStmt); ok {
			actions++
		}
		_, isLoop := n.(*ast.LoopStmt)
		return !isLoop
	})
	if actions != 0 {
		t.Errorf("visited %d actions inside skipped loop", actions)
	}
}
