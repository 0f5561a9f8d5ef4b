// robolang - robot control language interpreter
//
// Runs a robot program against a simulated arena robot.
// Uses manual argument parsing so flags may be glued to their argument
// (-sarena.yaml, -v$n=3, -steps100).
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/kolkov/robolang"
	"github.com/kolkov/robolang/internal/sim"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: robolang [-s scenario] [-v $var=value] [-steps N] [-w] [-t] [-f progfile | 'prog']"
	longUsage  = `Program arguments:
  -f progfile       load program source from progfile (multiple allowed)
  -v var=value      integer variable assignment (multiple allowed)

Robot arguments:
  -s scenario       load the arena from a .yaml/.yml or .toml file
  -steps N          stop the run after N robot calls (0 = no limit)
  -t                trace every robot call to stderr

Diagnostics:
  -w                print static warnings before running
  -d                print the program in canonical form to stderr and exit
  -dv               print final variables to stderr after the run

Other:
  -i                interactive mode (default when stdin is a terminal
                    and no program is given)
  -h, --help        show this help message
  -version          show robolang version and exit
`
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// options holds the parsed command line.
type options struct {
	progFiles   []string
	vars        []string
	scenario    string
	steps       int
	stepsSet    bool
	trace       bool
	warnings    bool
	debug       bool
	debugVars   bool
	interactive bool
	args        []string
}

func main() {
	opts := parseArgs(os.Args[1:])

	robot, err := newRobot(opts)
	if err != nil {
		errorExit(err)
	}

	variables, err := parseVars(opts.vars)
	if err != nil {
		errorExit(err)
	}

	program, ok := programSource(opts)
	if !ok {
		if err := repl(robot, variables, opts); err != nil {
			errorExit(err)
		}
		return
	}

	prog, err := robolang.Compile(program)
	if err != nil {
		errorExit(err)
	}

	if opts.debug {
		fmt.Fprint(os.Stderr, prog.String())
		os.Exit(0)
	}

	stderr := os.Stderr
	vars, err := prog.Run(robot, &robolang.Config{
		Variables: variables,
		Stderr:    &warningWriter{w: stderr},
		Warnings:  opts.warnings,
	})
	if opts.debugVars {
		dumpVars(stderr, vars)
	}
	if opts.trace {
		fmt.Fprintln(stderr, robot.State())
	}
	if err != nil {
		if robotStopped(err) {
			fmt.Fprintln(stderr, yellow("robolang: robot stopped: "+err.Error()))
			return
		}
		errorExit(err)
	}
}

//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func parseArgs(argv []string) *options {
	opts := &options{}

	var i int
	for i = 0; i < len(argv); i++ {
		// Stop on explicit end of args or first arg not prefixed with "-"
		arg := argv[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-f", "-v", "-s", "-steps":
			if i+1 >= len(argv) {
				errorExitf("flag needs an argument: %s", arg)
			}
			i++
			opts.setValue(arg, argv[i])
		case "-t":
			opts.trace = true
		case "-w":
			opts.warnings = true
		case "-d":
			opts.debug = true
		case "-dv":
			opts.debugVars = true
		case "-i":
			opts.interactive = true
		case "-h", "--help":
			fmt.Printf("robolang %s - robot control language\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("robolang version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			os.Exit(0)
		default:
			// Handle flags with no space: -ffile, -v$x=1, -sarena.yaml, -steps50
			switch {
			case strings.HasPrefix(arg, "-steps"):
				opts.setValue("-steps", arg[len("-steps"):])
			case strings.HasPrefix(arg, "-f"), strings.HasPrefix(arg, "-v"), strings.HasPrefix(arg, "-s"):
				opts.setValue(arg[:2], arg[2:])
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	opts.args = argv[i:]
	return opts
}

func (o *options) setValue(flag, value string) {
	switch flag {
	case "-f":
		o.progFiles = append(o.progFiles, value)
	case "-v":
		o.vars = append(o.vars, value)
	case "-s":
		o.scenario = value
	case "-steps":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			errorExitf("invalid step limit: %s", value)
		}
		o.steps = n
		o.stepsSet = true
	}
}

// programSource returns the program text, or false when the
// interactive mode should start instead.
func programSource(opts *options) (string, bool) {
	if opts.interactive {
		return "", false
	}
	if len(opts.args) > 1 {
		errorExitf("unexpected argument: %s", opts.args[1])
	}

	switch {
	case len(opts.progFiles) > 0:
		if len(opts.args) > 0 {
			errorExitf("unexpected argument: %s", opts.args[0])
		}
		var sb strings.Builder
		for _, f := range opts.progFiles {
			content, err := readProgram(f)
			if err != nil {
				errorExitf("cannot read program file %s: %v", f, err)
			}
			sb.Write(content)
			sb.WriteByte('\n')
		}
		return sb.String(), true
	case len(opts.args) > 0:
		return opts.args[0], true
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		return "", false
	default:
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			errorExitf("cannot read program from stdin: %v", err)
		}
		return string(content), true
	}
}

func readProgram(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// newRobot builds the robot for a run or a REPL reset, from the
// scenario file if one was given.
func newRobot(opts *options) (*sim.Robot, error) {
	var scenario *sim.Scenario
	if opts.scenario != "" {
		s, err := sim.LoadScenario(opts.scenario)
		if err != nil {
			return nil, err
		}
		scenario = s
	}

	robot, err := sim.NewRobot(scenario)
	if err != nil {
		return nil, err
	}
	if opts.stepsSet {
		robot.SetStepLimit(opts.steps)
	}
	if opts.trace {
		robot.SetTrace(os.Stderr)
	}
	return robot, nil
}

// parseVars parses var=value assignments. The '$' may be omitted.
func parseVars(assigns []string) (map[string]int, error) {
	if len(assigns) == 0 {
		return nil, nil
	}
	vars := make(map[string]int, len(assigns))
	for _, v := range assigns {
		name, value, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid variable assignment: %s (expected var=value)", v)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid variable value: %s (expected an integer)", v)
		}
		vars[robolang.VarName(strings.TrimSpace(name))] = n
	}
	return vars, nil
}

func dumpVars(w io.Writer, vars []robolang.Var) {
	for _, v := range vars {
		fmt.Fprintf(w, "%s = %d\n", v.Name, v.Value)
	}
}

// robotStopped reports whether err is the simulated robot refusing to
// continue, which is how programs built around loop normally end.
func robotStopped(err error) bool {
	return errors.Is(err, sim.ErrOutOfFuel) || errors.Is(err, sim.ErrStepLimit)
}

// warningWriter colours warning lines.
type warningWriter struct {
	w io.Writer
}

func (ww *warningWriter) Write(p []byte) (int, error) {
	s := string(p)
	if strings.Contains(s, "warning:") {
		s = yellow(strings.TrimSuffix(s, "\n")) + "\n"
	}
	if _, err := io.WriteString(ww.w, s); err != nil {
		return 0, err
	}
	return len(p), nil
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, red(fmt.Sprintf("robolang: "+format, args...)))
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintln(os.Stderr, red(fmt.Sprintf("robolang: %v", err)))
	os.Exit(1)
}
