// Package interp executes parsed robot programs by walking the AST.
//
// Execution is synchronous and single-threaded. The interpreter has no
// exit logic of its own for `loop`: a run ends when the program runs out
// of statements or when any Robot call or evaluation fails. Such a
// failure is returned through every enclosing statement without being
// handled.
package interp

import (
	"fmt"

	"github.com/kolkov/robolang/internal/ast"
	"github.com/kolkov/robolang/internal/token"
)

// Interpreter runs one program against one robot.
type Interpreter struct {
	prog  *ast.Program
	robot Robot
	vars  *Store
}

// New creates an interpreter for prog with a fresh variable store.
func New(prog *ast.Program, robot Robot) *Interpreter {
	return &Interpreter{
		prog:  prog,
		robot: robot,
		vars:  NewStore(),
	}
}

// SetVar seeds a variable before Run.
func (in *Interpreter) SetVar(name string, value int) {
	in.vars.Set(name, value)
}

// Vars returns the variable store of the run.
func (in *Interpreter) Vars() *Store {
	return in.vars
}

// Run executes the top-level statements in order. An empty program
// does nothing.
func (in *Interpreter) Run() error {
	if in.prog.IsEmpty() {
		return nil
	}
	return in.execStmts(in.prog.Stmts)
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (in *Interpreter) execStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := in.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return in.execStmts(s.Stmts)

	case *ast.LoopStmt:
		for {
			if err := in.execStmts(s.Body.Stmts); err != nil {
				return err
			}
		}

	case *ast.IfStmt:
		for _, br := range s.Branches {
			ok, err := in.evalCond(br.Cond)
			if err != nil {
				return err
			}
			if ok {
				return in.execStmts(br.Block.Stmts)
			}
		}
		if s.Else != nil {
			return in.execStmts(s.Else.Stmts)
		}
		return nil

	case *ast.WhileStmt:
		for {
			ok, err := in.evalCond(s.Cond)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			if err := in.execStmts(s.Body.Stmts); err != nil {
				return err
			}
		}

	case *ast.AssignStmt:
		v, err := in.evalExpr(s.Value)
		if err != nil {
			return err
		}
		in.vars.Set(s.Name, v)
		return nil

	case *ast.ActionStmt:
		return in.execAction(s)

	default:
		return fmt.Errorf("%s: unexpected statement %T", stmt.Pos(), stmt)
	}
}

// execAction evaluates the repeat count once, then performs the action.
// Only move and wait repeat; a count of zero or less performs nothing.
func (in *Interpreter) execAction(s *ast.ActionStmt) error {
	count := 1
	if s.Count != nil {
		n, err := in.evalExpr(s.Count)
		if err != nil {
			return err
		}
		count = n
	}

	var call func() error
	switch s.Action {
	case token.MOVE:
		call = in.robot.Move
	case token.WAIT:
		call = in.robot.IdleWait
	case token.TURN_L:
		call = in.robot.TurnLeft
	case token.TURN_R:
		call = in.robot.TurnRight
	case token.TURN_AROUND:
		call = in.robot.TurnAround
	case token.SHIELD_ON:
		call = func() error { return in.robot.SetShield(true) }
	case token.SHIELD_OFF:
		call = func() error { return in.robot.SetShield(false) }
	case token.TAKE_FUEL:
		call = in.robot.TakeFuel
	default:
		return fmt.Errorf("%s: unknown action %v", s.Pos(), s.Action)
	}

	if !s.Action.TakesCount() {
		count = 1
	}
	for i := 0; i < count; i++ {
		if err := call(); err != nil {
			return fault(s.Pos(), err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Conditions
// -----------------------------------------------------------------------------

func (in *Interpreter) evalCond(cond ast.Cond) (bool, error) {
	switch c := cond.(type) {
	case *ast.AndCond:
		left, err := in.evalCond(c.Left)
		if err != nil || !left {
			return false, err
		}
		return in.evalCond(c.Right)

	case *ast.OrCond:
		left, err := in.evalCond(c.Left)
		if err != nil || left {
			return left, err
		}
		return in.evalCond(c.Right)

	case *ast.NotCond:
		v, err := in.evalCond(c.Cond)
		return !v && err == nil, err

	case *ast.RelCond:
		left, right, err := in.evalPair(c.Left, c.Right)
		if err != nil {
			return false, err
		}
		switch c.Op {
		case token.LT:
			return left < right, nil
		case token.GT:
			return left > right, nil
		case token.EQ:
			return left == right, nil
		}
		return false, fmt.Errorf("%s: unknown relational operator %v", c.Pos(), c.Op)

	default:
		return false, fmt.Errorf("%s: unexpected condition %T", cond.Pos(), cond)
	}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (in *Interpreter) evalPair(l, r ast.Expr) (int, int, error) {
	left, err := in.evalExpr(l)
	if err != nil {
		return 0, 0, err
	}
	right, err := in.evalExpr(r)
	if err != nil {
		return 0, 0, err
	}
	return left, right, nil
}

func (in *Interpreter) evalExpr(expr ast.Expr) (int, error) {
	switch e := expr.(type) {
	case *ast.NumLit:
		return e.Value, nil

	case *ast.VarRef:
		return in.vars.Get(e.Name), nil

	case *ast.SensorExpr:
		return in.evalSensor(e)

	case *ast.MathExpr:
		left, right, err := in.evalPair(e.Left, e.Right)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case token.ADD:
			return left + right, nil
		case token.SUB:
			return left - right, nil
		case token.MUL:
			return left * right, nil
		case token.DIV:
			if right == 0 {
				return 0, fault(e.Pos(), ErrDivisionByZero)
			}
			return left / right, nil
		}
		return 0, fmt.Errorf("%s: unknown arithmetic operator %v", e.Pos(), e.Op)

	default:
		return 0, fmt.Errorf("%s: unexpected expression %T", expr.Pos(), expr)
	}
}

func (in *Interpreter) evalSensor(e *ast.SensorExpr) (int, error) {
	var (
		v   int
		err error
	)
	switch e.Sensor {
	case token.FUEL_LEFT:
		v, err = in.robot.Fuel()
	case token.OPP_LR:
		v, err = in.robot.OpponentLR()
	case token.OPP_FB:
		v, err = in.robot.OpponentFB()
	case token.NUM_BARRELS:
		v, err = in.robot.NumBarrels()
	case token.WALL_DIST:
		v, err = in.robot.DistanceToWall()
	case token.BARREL_LR, token.BARREL_FB:
		return in.evalBarrel(e)
	default:
		return 0, fmt.Errorf("%s: unknown sensor %v", e.Pos(), e.Sensor)
	}
	if err != nil {
		return 0, fault(e.Pos(), err)
	}
	return v, nil
}

// evalBarrel reads the closest barrel, or the barrel at Index when given.
func (in *Interpreter) evalBarrel(e *ast.SensorExpr) (int, error) {
	lr := e.Sensor == token.BARREL_LR

	var (
		v   int
		err error
	)
	if e.Index == nil {
		if lr {
			v, err = in.robot.ClosestBarrelLR()
		} else {
			v, err = in.robot.ClosestBarrelFB()
		}
	} else {
		n, ierr := in.evalExpr(e.Index)
		if ierr != nil {
			return 0, ierr
		}
		if lr {
			v, err = in.robot.BarrelLR(n)
		} else {
			v, err = in.robot.BarrelFB(n)
		}
	}
	if err != nil {
		return 0, fault(e.Pos(), err)
	}
	return v, nil
}
