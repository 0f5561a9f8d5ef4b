package sim

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

var (
	// ErrOutOfFuel is returned by a mutator called with no fuel left.
	ErrOutOfFuel = errors.New("out of fuel")

	// ErrStepLimit is returned by any call made after the scenario's
	// step limit has been used up.
	ErrStepLimit = errors.New("step limit reached")
)

// Heading is the direction the robot faces.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

var headingNames = [...]string{"north", "east", "south", "west"}

func (h Heading) String() string {
	return headingNames[h&3]
}

func parseHeading(s string) (Heading, bool) {
	for i, name := range headingNames {
		if s == name {
			return Heading(i), true
		}
	}
	return North, false
}

// forward returns the unit step for h.
func (h Heading) forward() (dx, dy int) {
	switch h {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	default:
		return -1, 0
	}
}

// Robot is a simulated robot. Every mutator costs one fuel, two while
// the shield is up. Sensors are free but count toward the step limit.
//
// A Robot is not safe for concurrent use.
type Robot struct {
	size     int
	pos      Point
	heading  Heading
	fuel     int
	refuel   int
	shield   bool
	opponent Point
	barrels  []Point
	limit    int
	steps    int

	calls []string
	trace io.Writer
}

// NewRobot creates a robot in the starting state of s. A nil scenario
// means DefaultScenario.
func NewRobot(s *Scenario) (*Robot, error) {
	if s == nil {
		s = DefaultScenario()
	}
	sc := *s
	sc.applyDefaults()
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	heading, _ := parseHeading(sc.Heading)
	return &Robot{
		size:     sc.Size,
		pos:      sc.Robot,
		heading:  heading,
		fuel:     sc.Fuel,
		refuel:   sc.Refuel,
		opponent: sc.Opponent,
		barrels:  append([]Point(nil), sc.Barrels...),
		limit:    sc.Steps,
	}, nil
}

// SetTrace sets a writer that receives one line per call.
func (r *Robot) SetTrace(w io.Writer) {
	r.trace = w
}

// SetStepLimit replaces the scenario's step limit. Zero removes it.
func (r *Robot) SetStepLimit(n int) {
	r.limit = n
}

// Calls returns the log of calls made so far.
func (r *Robot) Calls() []string {
	return r.calls
}

// Position returns the robot's cell.
func (r *Robot) Position() Point { return r.pos }

// Heading returns the direction the robot faces.
func (r *Robot) Heading() Heading { return r.heading }

// Shield reports whether the shield is up.
func (r *Robot) Shield() bool { return r.shield }

// Steps returns the number of calls counted toward the step limit.
func (r *Robot) Steps() int { return r.steps }

// Barrels returns the remaining barrels.
func (r *Robot) Barrels() []Point {
	return append([]Point(nil), r.barrels...)
}

// State describes the robot in one line.
func (r *Robot) State() string {
	shield := "off"
	if r.shield {
		shield = "on"
	}
	return fmt.Sprintf("pos=%v heading=%v fuel=%d shield=%s barrels=%d",
		r.pos, r.heading, r.fuel, shield, len(r.barrels))
}

// step counts one call against the limit and logs it.
func (r *Robot) step(name string) error {
	if r.limit > 0 && r.steps >= r.limit {
		return ErrStepLimit
	}
	r.steps++
	r.calls = append(r.calls, name)
	return nil
}

// mutate charges fuel for a mutator, then applies fn.
func (r *Robot) mutate(name string, fn func()) error {
	if err := r.step(name); err != nil {
		return err
	}
	if r.fuel <= 0 {
		return ErrOutOfFuel
	}
	r.fuel--
	if r.shield && r.fuel > 0 {
		r.fuel--
	}
	fn()
	if r.trace != nil {
		fmt.Fprintf(r.trace, "%-10s %s\n", name, r.State())
	}
	return nil
}

// sense logs a sensor read.
func (r *Robot) sense(name string, fn func() int) (int, error) {
	if err := r.step(name); err != nil {
		return 0, err
	}
	v := fn()
	if r.trace != nil {
		fmt.Fprintf(r.trace, "%-10s = %d\n", name, v)
	}
	return v, nil
}

// Move advances one cell. The robot stays put when the cell ahead is a
// wall or the opponent.
func (r *Robot) Move() error {
	return r.mutate("move", func() {
		dx, dy := r.heading.forward()
		next := Point{X: r.pos.X + dx, Y: r.pos.Y + dy}
		if next.X < 0 || next.Y < 0 || next.X >= r.size || next.Y >= r.size {
			return
		}
		if next == r.opponent {
			return
		}
		r.pos = next
	})
}

func (r *Robot) TurnLeft() error {
	return r.mutate("turnL", func() { r.heading = (r.heading + 3) % 4 })
}

func (r *Robot) TurnRight() error {
	return r.mutate("turnR", func() { r.heading = (r.heading + 1) % 4 })
}

func (r *Robot) TurnAround() error {
	return r.mutate("turnAround", func() { r.heading = (r.heading + 2) % 4 })
}

func (r *Robot) SetShield(on bool) error {
	name := "shieldOff"
	if on {
		name = "shieldOn"
	}
	return r.mutate(name, func() { r.shield = on })
}

// TakeFuel picks up the barrel on the robot's cell, if any.
func (r *Robot) TakeFuel() error {
	return r.mutate("takeFuel", func() {
		for i, b := range r.barrels {
			if b == r.pos {
				r.fuel += r.refuel
				r.barrels = append(r.barrels[:i], r.barrels[i+1:]...)
				return
			}
		}
	})
}

func (r *Robot) IdleWait() error {
	return r.mutate("wait", func() {})
}

func (r *Robot) Fuel() (int, error) {
	return r.sense("fuelLeft", func() int { return r.fuel })
}

// OpponentLR returns the opponent's offset to the right of the robot;
// negative values are to the left.
func (r *Robot) OpponentLR() (int, error) {
	return r.sense("oppLR", func() int {
		lr, _ := r.relative(r.opponent)
		return lr
	})
}

// OpponentFB returns the opponent's offset ahead of the robot; negative
// values are behind.
func (r *Robot) OpponentFB() (int, error) {
	return r.sense("oppFB", func() int {
		_, fb := r.relative(r.opponent)
		return fb
	})
}

func (r *Robot) NumBarrels() (int, error) {
	return r.sense("numBarrels", func() int { return len(r.barrels) })
}

func (r *Robot) ClosestBarrelLR() (int, error) {
	return r.BarrelLR(0)
}

func (r *Robot) ClosestBarrelFB() (int, error) {
	return r.BarrelFB(0)
}

// BarrelLR returns the sideways offset of the n-th closest barrel,
// counting from 0. A missing barrel reads as 0.
func (r *Robot) BarrelLR(n int) (int, error) {
	return r.sense(fmt.Sprintf("barrelLR(%d)", n), func() int {
		b, ok := r.nthBarrel(n)
		if !ok {
			return 0
		}
		lr, _ := r.relative(b)
		return lr
	})
}

// BarrelFB returns the forward offset of the n-th closest barrel,
// counting from 0. A missing barrel reads as 0.
func (r *Robot) BarrelFB(n int) (int, error) {
	return r.sense(fmt.Sprintf("barrelFB(%d)", n), func() int {
		b, ok := r.nthBarrel(n)
		if !ok {
			return 0
		}
		_, fb := r.relative(b)
		return fb
	})
}

// DistanceToWall returns the number of free cells between the robot and
// the wall it faces.
func (r *Robot) DistanceToWall() (int, error) {
	return r.sense("wallDist", func() int {
		switch r.heading {
		case North:
			return r.size - 1 - r.pos.Y
		case East:
			return r.size - 1 - r.pos.X
		case South:
			return r.pos.Y
		default:
			return r.pos.X
		}
	})
}

// relative converts an arena cell to (right, forward) offsets from the
// robot's point of view.
func (r *Robot) relative(p Point) (lr, fb int) {
	dx, dy := p.X-r.pos.X, p.Y-r.pos.Y
	switch r.heading {
	case North:
		return dx, dy
	case East:
		return -dy, dx
	case South:
		return -dx, -dy
	default:
		return dy, -dx
	}
}

// nthBarrel orders barrels by Manhattan distance, ties by scenario order.
func (r *Robot) nthBarrel(n int) (Point, bool) {
	if n < 0 || n >= len(r.barrels) {
		return Point{}, false
	}
	sorted := append([]Point(nil), r.barrels...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return r.distance(sorted[i]) < r.distance(sorted[j])
	})
	return sorted[n], true
}

func (r *Robot) distance(p Point) int {
	return abs(p.X-r.pos.X) + abs(p.Y-r.pos.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
