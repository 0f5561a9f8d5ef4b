package robolang

import (
	"io"

	"github.com/kolkov/robolang/internal/interp"
	"github.com/kolkov/robolang/internal/parser"
)

// Version is the robolang version string.
const Version = "0.1.0"

// Robot is the capability interface a program drives. Any call may
// fail; the first failure ends the run and is returned from Run inside
// a RuntimeError.
type Robot = interp.Robot

// Var is a variable and its final value.
type Var = interp.Var

// Run executes a program against robot.
// This is a convenience function for one-off execution.
// For repeated execution of the same program, use Compile followed by Program.Run.
//
// Example:
//
//	vars, err := robolang.Run("$x = add(2, 3); move($x);", robot, nil)
//	// vars: [{$x 5}]
func Run(source string, robot Robot, config *Config) ([]Var, error) {
	prog, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return prog.Run(robot, config)
}

// Compile parses a program. Empty input compiles to an empty program,
// which does nothing when run.
//
// Example:
//
//	prog, err := robolang.Compile("loop { move; turnL; }")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_, err = prog.Run(robot, nil)
func Compile(source string) (*Program, error) {
	tree, err := parser.Parse(source)
	if err != nil {
		return nil, convertSyntaxError(err)
	}
	return &Program{
		tree:   tree,
		source: source,
	}, nil
}

// Exec runs a program with diagnostics written to stderr and discards
// the final variables.
//
// Example:
//
//	err := robolang.Exec(src, robot, os.Stderr, nil)
func Exec(source string, robot Robot, stderr io.Writer, config *Config) error {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.Stderr = stderr

	_, err := Run(source, robot, &cfg)
	return err
}

// MustCompile is like Compile but panics if the program cannot be parsed.
// It simplifies initialization of global program variables.
//
// Example:
//
//	var patrol = robolang.MustCompile("loop { move(3); turnR; }")
func MustCompile(source string) *Program {
	prog, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return prog
}
