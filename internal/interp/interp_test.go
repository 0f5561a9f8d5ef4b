package interp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kolkov/robolang/internal/ast"
	"github.com/kolkov/robolang/internal/parser"
	"github.com/kolkov/robolang/internal/token"
)

var errExhausted = errors.New("out of fuel")

// fakeRobot records every capability call. Once failAfter calls have
// been made (when failAfter > 0), the next call fails with errExhausted.
type fakeRobot struct {
	calls     []string
	failAfter int
	sensors   map[string]int
}

func (r *fakeRobot) call(name string) error {
	if r.failAfter > 0 && len(r.calls) >= r.failAfter {
		return errExhausted
	}
	r.calls = append(r.calls, name)
	return nil
}

func (r *fakeRobot) read(name string) (int, error) {
	if err := r.call(name); err != nil {
		return 0, err
	}
	return r.sensors[name], nil
}

func (r *fakeRobot) Move() error       { return r.call("move") }
func (r *fakeRobot) TurnLeft() error   { return r.call("turnLeft") }
func (r *fakeRobot) TurnRight() error  { return r.call("turnRight") }
func (r *fakeRobot) TurnAround() error { return r.call("turnAround") }
func (r *fakeRobot) SetShield(on bool) error {
	return r.call(fmt.Sprintf("setShield(%v)", on))
}
func (r *fakeRobot) TakeFuel() error                 { return r.call("takeFuel") }
func (r *fakeRobot) IdleWait() error                 { return r.call("idleWait") }
func (r *fakeRobot) Fuel() (int, error)              { return r.read("fuel") }
func (r *fakeRobot) OpponentLR() (int, error)        { return r.read("oppLR") }
func (r *fakeRobot) OpponentFB() (int, error)        { return r.read("oppFB") }
func (r *fakeRobot) NumBarrels() (int, error)        { return r.read("numBarrels") }
func (r *fakeRobot) ClosestBarrelLR() (int, error)   { return r.read("barrelLR") }
func (r *fakeRobot) ClosestBarrelFB() (int, error)   { return r.read("barrelFB") }
func (r *fakeRobot) DistanceToWall() (int, error)    { return r.read("wallDist") }
func (r *fakeRobot) BarrelLR(n int) (int, error)     { return r.read(fmt.Sprintf("barrelLR(%d)", n)) }
func (r *fakeRobot) BarrelFB(n int) (int, error)     { return r.read(fmt.Sprintf("barrelFB(%d)", n)) }

// run parses and executes source against robot, returning the store.
func run(t *testing.T, source string, robot *fakeRobot) (*Store, error) {
	t.Helper()

	prog, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	in := New(prog, robot)
	err = in.Run()
	return in.Vars(), err
}

func TestActions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"move once", "move;", []string{"move"}},
		{"move three", "move(3);", []string{"move", "move", "move"}},
		{"move zero", "move(0);", nil},
		{"move negative", "move(-2);", nil},
		{"wait count", "wait(2);", []string{"idleWait", "idleWait"}},
		{"wait once", "wait;", []string{"idleWait"}},
		{"turns", "turnL; turnR; turnAround;", []string{"turnLeft", "turnRight", "turnAround"}},
		{"shield", "shieldOn; shieldOff;", []string{"setShield(true)", "setShield(false)"}},
		{"take fuel", "takeFuel;", []string{"takeFuel"}},
		{"count from expression", "$n = 2; move(add($n, 1));", []string{"move", "move", "move"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			robot := &fakeRobot{}
			if _, err := run(t, tt.source, robot); err != nil {
				t.Fatalf("run error: %v", err)
			}
			if diff := cmp.Diff(tt.want, robot.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestCountEvaluatedOnce checks the repeat count is resolved before the
// first call, so a sensor in the count is read exactly once.
func TestCountEvaluatedOnce(t *testing.T) {
	robot := &fakeRobot{sensors: map[string]int{"wallDist": 2}}
	if _, err := run(t, "move(wallDist);", robot); err != nil {
		t.Fatalf("run error: %v", err)
	}
	want := []string{"wallDist", "move", "move"}
	if diff := cmp.Diff(want, robot.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

// TestNonCountedActionIgnoresCount checks a hand-built count on a turn
// still fires exactly once.
func TestNonCountedActionIgnoresCount(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.ActionStmt{Action: token.TURN_L, Count: &ast.NumLit{Value: 4}},
	}}
	robot := &fakeRobot{}
	if err := New(prog, robot).Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if diff := cmp.Diff([]string{"turnLeft"}, robot.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestIf(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"else branch only", "if(lt(5,3)){move;}else{turnL;}", []string{"turnLeft"}},
		{"then branch only", "if(gt(5,3)){move;}else{turnL;}", []string{"move"}},
		{"no match no else", "if(eq(1,2)){move;}", nil},
		{"first match wins", "if(lt(1,2)){move;}elif(lt(1,3)){turnL;}else{turnR;}", []string{"move"}},
		{"elif match", "if(gt(1,2)){move;}elif(lt(1,3)){turnL;}elif(lt(1,4)){wait;}else{turnR;}", []string{"turnLeft"}},
		{"else after elifs", "if(gt(1,2)){move;}elif(gt(1,3)){turnL;}else{turnR;}", []string{"turnRight"}},
		{"assign then test", "$x = add(2,3); if(eq($x,5)){takeFuel;}", []string{"takeFuel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			robot := &fakeRobot{}
			if _, err := run(t, tt.source, robot); err != nil {
				t.Fatalf("run error: %v", err)
			}
			if diff := cmp.Diff(tt.want, robot.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestIfStopsAtFirstMatch checks later conditions are not evaluated.
func TestIfStopsAtFirstMatch(t *testing.T) {
	robot := &fakeRobot{sensors: map[string]int{"fuel": 1}}
	src := "if(eq(fuelLeft,1)){move;}elif(eq(oppLR,0)){turnL;}"
	if _, err := run(t, src, robot); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if diff := cmp.Diff([]string{"fuel", "move"}, robot.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWhile(t *testing.T) {
	robot := &fakeRobot{}
	vars, err := run(t, "$i = 0; while(lt($i,4)){ move; $i = add($i,1); }", robot)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got := len(robot.calls); got != 4 {
		t.Errorf("moves = %d, want 4", got)
	}
	if got := vars.Get("$i"); got != 4 {
		t.Errorf("$i = %d, want 4", got)
	}

	robot = &fakeRobot{}
	if _, err := run(t, "while(gt(1,2)){move;}", robot); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if len(robot.calls) != 0 {
		t.Errorf("false condition ran body: %v", robot.calls)
	}
}

func TestConditions(t *testing.T) {
	tests := []struct {
		cond string
		want bool
	}{
		{"lt(1,2)", true},
		{"lt(2,1)", false},
		{"lt(2,2)", false},
		{"gt(3,2)", true},
		{"gt(2,2)", false},
		{"eq(-4,-4)", true},
		{"eq(4,-4)", false},
		{"not(eq(1,1))", false},
		{"not(lt(2,1))", true},
		{"and(lt(1,2),gt(2,1))", true},
		{"and(lt(1,2),gt(1,2))", false},
		{"or(gt(1,2),lt(1,2))", true},
		{"or(gt(1,2),lt(2,1))", false},
		{"and(or(eq(1,2),eq(2,2)),not(eq(3,4)))", true},
	}

	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			robot := &fakeRobot{}
			if _, err := run(t, "if("+tt.cond+"){move;}", robot); err != nil {
				t.Fatalf("run error: %v", err)
			}
			if got := len(robot.calls) == 1; got != tt.want {
				t.Errorf("%s = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}

func TestShortCircuit(t *testing.T) {
	robot := &fakeRobot{}
	// The right operands would fault if evaluated.
	src := "if(and(eq(1,2),eq(div(1,0),0))){move;} if(or(eq(1,1),eq(div(1,0),0))){turnL;}"
	if _, err := run(t, src, robot); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if diff := cmp.Diff([]string{"turnLeft"}, robot.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want int
	}{
		{"add(2,3)", 5},
		{"sub(2,3)", -1},
		{"mul(-4,3)", -12},
		{"div(7,2)", 3},
		{"div(-7,2)", -3},
		{"div(7,-2)", -3},
		{"div(-7,-2)", 3},
		{"add(mul(2,3),div(sub(10,1),3))", 9},
		{"$unset", 0},
		{"add($unset,7)", 7},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			vars, err := run(t, "$r = "+tt.expr+";", &fakeRobot{})
			if err != nil {
				t.Fatalf("run error: %v", err)
			}
			if got := vars.Get("$r"); got != tt.want {
				t.Errorf("%s = %d, want %d", tt.expr, got, tt.want)
			}
		})
	}
}

func TestUnsetVariableReadsZero(t *testing.T) {
	vars, err := run(t, "$x = $y;", &fakeRobot{})
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got := vars.Get("$x"); got != 0 {
		t.Errorf("$x = %d, want 0", got)
	}
	if !vars.Has("$y") {
		t.Error("reading $y should create it")
	}
}

func TestFlatScope(t *testing.T) {
	src := "if(eq(1,1)){ $a = 5; } while(lt($b,1)){ $b = add($a,1); } $c = add($a,$b);"
	vars, err := run(t, src, &fakeRobot{})
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	want := []Var{{"$a", 5}, {"$b", 6}, {"$c", 11}}
	if diff := cmp.Diff(want, vars.Snapshot()); diff != "" {
		t.Errorf("vars mismatch (-want +got):\n%s", diff)
	}
}

func TestDivisionByZero(t *testing.T) {
	robot := &fakeRobot{}
	_, err := run(t, "move; $x = div(7,0); move;", robot)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("error = %v, want ErrDivisionByZero", err)
	}
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("error type = %T, want *Fault", err)
	}
	if f.Pos.Column != 12 {
		t.Errorf("fault column = %d, want 12", f.Pos.Column)
	}
	if diff := cmp.Diff([]string{"move"}, robot.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

// TestLoopFaultPropagates checks an unbounded loop ends only through the
// robot fault, which reaches the caller unchanged.
func TestLoopFaultPropagates(t *testing.T) {
	const n = 5
	robot := &fakeRobot{failAfter: n}
	_, err := run(t, "loop { takeFuel; }", robot)
	if !errors.Is(err, errExhausted) {
		t.Fatalf("error = %v, want errExhausted", err)
	}
	if got := len(robot.calls); got != n {
		t.Errorf("successful calls = %d, want %d", got, n)
	}
}

// TestNestedFaultPropagates checks faults pass through every kind of frame.
func TestNestedFaultPropagates(t *testing.T) {
	src := `
		$i = 0;
		loop {
			while (lt($i, 100)) {
				if (gt(fuelLeft, -1)) {
					move(2);
				} else {
					wait;
				}
				$i = add($i, 1);
			}
		}
		turnL;`
	robot := &fakeRobot{failAfter: 7}
	vars, err := run(t, src, robot)
	if !errors.Is(err, errExhausted) {
		t.Fatalf("error = %v, want errExhausted", err)
	}
	// fuel, move, move, fuel, move, move, fuel -> eighth call fails
	if got := vars.Get("$i"); got != 2 {
		t.Errorf("$i = %d, want 2", got)
	}
	for _, c := range robot.calls {
		if c == "turnLeft" {
			t.Error("statement after loop executed")
		}
	}
	if !strings.Contains(err.Error(), "out of fuel") {
		t.Errorf("error text %q does not mention cause", err.Error())
	}
}

func TestSensorFault(t *testing.T) {
	robot := &fakeRobot{failAfter: 1}
	_, err := run(t, "move; $x = barrelFB(2);", robot)
	if !errors.Is(err, errExhausted) {
		t.Fatalf("error = %v, want errExhausted", err)
	}
}

func TestSensors(t *testing.T) {
	robot := &fakeRobot{sensors: map[string]int{
		"fuel": 50, "oppLR": -3, "oppFB": 4, "numBarrels": 2,
		"barrelLR": 1, "barrelFB": 6, "barrelLR(1)": -5, "barrelFB(1)": 7, "wallDist": 9,
	}}
	src := `$f = fuelLeft; $olr = oppLR; $ofb = oppFB; $nb = numBarrels;
		$blr = barrelLR; $bfb = barrelFB; $blr1 = barrelLR(1); $bfb1 = barrelFB(sub(2,1)); $w = wallDist;`
	vars, err := run(t, src, robot)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	want := map[string]int{
		"$f": 50, "$olr": -3, "$ofb": 4, "$nb": 2,
		"$blr": 1, "$bfb": 6, "$blr1": -5, "$bfb1": 7, "$w": 9,
	}
	got := map[string]int{}
	for _, v := range vars.Snapshot() {
		got[v.Name] = v.Value
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vars mismatch (-want +got):\n%s", diff)
	}
}

// TestEveryTokenHandled checks each action, sensor and operator token
// has an evaluation case.
func TestEveryTokenHandled(t *testing.T) {
	robot := &fakeRobot{}
	in := New(&ast.Program{}, robot)

	for _, tok := range token.Actions() {
		if err := in.execStmt(&ast.ActionStmt{Action: tok}); err != nil {
			t.Errorf("action %v: %v", tok, err)
		}
	}
	for _, tok := range token.Sensors() {
		if _, err := in.evalExpr(&ast.SensorExpr{Sensor: tok}); err != nil {
			t.Errorf("sensor %v: %v", tok, err)
		}
	}
	for _, tok := range token.MathOps() {
		e := &ast.MathExpr{Op: tok, Left: &ast.NumLit{Value: 6}, Right: &ast.NumLit{Value: 3}}
		if _, err := in.evalExpr(e); err != nil {
			t.Errorf("math op %v: %v", tok, err)
		}
	}
	for _, tok := range token.RelOps() {
		c := &ast.RelCond{Op: tok, Left: &ast.NumLit{Value: 1}, Right: &ast.NumLit{Value: 2}}
		if _, err := in.evalCond(c); err != nil {
			t.Errorf("relational op %v: %v", tok, err)
		}
	}
}

func TestEmptyProgram(t *testing.T) {
	robot := &fakeRobot{}
	if err := New(&ast.Program{}, robot).Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if len(robot.calls) != 0 {
		t.Errorf("empty program made calls: %v", robot.calls)
	}
}
