// Package robolang implements the robot control language: a small
// imperative language that drives a robot through an external
// capability interface.
//
// A program is a sequence of statements:
//
//	$steps = 0;
//	while (lt($steps, 4)) {
//	    if (gt(wallDist, 0)) { move; } else { turnR; }
//	    $steps = add($steps, 1);
//	}
//	loop { takeFuel; }
//
// # Quick Start
//
// For simple one-off execution against a [Robot]:
//
//	vars, err := robolang.Run("move(3); $f = fuelLeft;", robot, nil)
//
// With configuration:
//
//	vars, err := robolang.Run(src, robot, &robolang.Config{
//	    Variables: map[string]int{"$limit": 10},
//	    Stderr:    os.Stderr,
//	    Warnings:  true,
//	})
//
// # Compiled Programs
//
// A compiled [Program] can be run any number of times, against the same
// or different robots. Each run starts with a fresh variable store.
//
//	prog := robolang.MustCompile("loop { move; turnL; }")
//	_, err := prog.Run(robot, nil)
//
// A program containing `loop` only ends when the robot fails a call, so
// the Robot implementation decides when such a run stops.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [SyntaxError]: grammar violations, with position and the offending tokens
//   - [RuntimeError]: division by zero or a failing Robot call
//
// [RuntimeError] unwraps to its cause, so errors.Is works with
// [ErrDivisionByZero] and with errors returned by the Robot.
//
// # Thread Safety
//
// Compiled [Program] objects are safe for concurrent use.
// Each call to [Program.Run] creates an independent variable store.
// Robots are called from the goroutine that calls Run.
package robolang
