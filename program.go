package robolang

import (
	"fmt"
	"sort"

	"github.com/kolkov/robolang/internal/ast"
	"github.com/kolkov/robolang/internal/interp"
	"github.com/kolkov/robolang/internal/semantic"
)

// EmptyNotice is written to Config.Stderr when an empty program is run.
const EmptyNotice = "robolang: program is empty, nothing to run"

// Program represents a parsed program ready for execution.
// It is safe for concurrent use; each call to Run creates an
// independent variable store.
type Program struct {
	tree   *ast.Program
	source string // Original source for debugging
}

// Run executes the program against robot and returns the final
// variables sorted by name. On a runtime fault the variables hold the
// values at the moment of the fault.
//
// If config is nil, default configuration is used.
func (p *Program) Run(robot Robot, config *Config) ([]Var, error) {
	config = config.withDefaults()

	vars, err := config.variables()
	if err != nil {
		return nil, err
	}

	if p.IsEmpty() {
		fmt.Fprintln(config.Stderr, EmptyNotice)
		return nil, nil
	}

	if config.Warnings {
		for _, w := range p.warnings(vars) {
			fmt.Fprintln(config.Stderr, w.String())
		}
	}

	in := interp.New(p.tree, robot)
	for name, value := range vars {
		in.SetVar(name, value)
	}

	err = in.Run()
	snapshot := in.Vars().Snapshot()
	if err != nil {
		return snapshot, convertRuntimeError(err)
	}
	return snapshot, nil
}

// IsEmpty reports whether the program has no statements.
func (p *Program) IsEmpty() bool {
	return p.tree.IsEmpty()
}

// String returns the program in canonical form: one statement per line,
// blocks indented by four spaces.
func (p *Program) String() string {
	return ast.String(p.tree)
}

// Source returns the original source code.
func (p *Program) Source() string {
	return p.source
}

// Warning is a non-fatal issue found in a program.
type Warning struct {
	Line    int
	Column  int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%d:%d: warning: %s", w.Line, w.Column, w.Message)
}

// Warnings returns static warnings in source order. Names in preset are
// treated as variables assigned before the run.
func (p *Program) Warnings(preset ...string) []Warning {
	vars := make(map[string]int, len(preset))
	for _, name := range preset {
		vars[VarName(name)] = 0
	}
	return p.warnings(vars)
}

func (p *Program) warnings(preset map[string]int) []Warning {
	names := make([]string, 0, len(preset))
	for name := range preset {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Warning
	for _, w := range semantic.Analyze(p.tree, names...) {
		out = append(out, Warning{Line: w.Pos.Line, Column: w.Pos.Column, Message: w.Message})
	}
	return out
}
