package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/peterh/liner"

	"github.com/kolkov/robolang"
	"github.com/kolkov/robolang/internal/sim"
)

const (
	historyFile = ".robolang_history"
	promptMain  = "robo> "
	promptCont  = "....> "
	replHelp    = `Enter statements to run them against the robot. Variables are kept
between entries. An entry continues on the next line until it parses or
an empty line is entered.

Commands:
  :vars     show variables
  :state    show the robot
  :reset    restart the scenario and clear variables
  :quit     exit`
)

// session is the state kept between REPL entries.
type session struct {
	robot *sim.Robot
	vars  map[string]int
	opts  *options
	out   io.Writer
}

func repl(robot *sim.Robot, vars map[string]int, opts *options) error {
	fmt.Printf("robolang %s - type :help for commands\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if vars == nil {
		vars = make(map[string]int)
	}
	s := &session{robot: robot, vars: vars, opts: opts, out: os.Stdout}

	for {
		src, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		entry := strings.TrimSpace(src)
		if entry == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(entry, ":") {
			if s.command(entry) {
				return nil
			}
			continue
		}
		s.eval(src)
	}
}

// readEntry reads lines until they form a program or a syntax error
// that is not at end of input. It returns false on end of input.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src fails to parse only because it ended
// too early.
func incomplete(src string) bool {
	_, err := robolang.Compile(src)
	var se *robolang.SyntaxError
	return errors.As(err, &se) && len(se.Context) == 0
}

// eval runs one entry. The variables it leaves behind seed the next
// entry, also after a fault.
func (s *session) eval(src string) {
	prog, err := robolang.Compile(src)
	if err != nil {
		fmt.Fprintln(s.out, red(err.Error()))
		return
	}

	vars, err := prog.Run(s.robot, &robolang.Config{
		Variables: s.vars,
		Stderr:    &warningWriter{w: s.out},
		Warnings:  s.opts.warnings,
	})
	for _, v := range vars {
		s.vars[v.Name] = v.Value
	}
	switch {
	case err == nil:
	case robotStopped(err):
		fmt.Fprintln(s.out, yellow("robot stopped: "+err.Error()))
	default:
		fmt.Fprintln(s.out, red(err.Error()))
	}
	if s.opts.debugVars {
		dumpVars(s.out, vars)
	}
}

// command runs a REPL command and reports whether to quit.
func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		fmt.Fprintln(s.out, replHelp)
	case ":vars":
		vars := make([]robolang.Var, 0, len(s.vars))
		for name, value := range s.vars {
			vars = append(vars, robolang.Var{Name: name, Value: value})
		}
		slices.SortFunc(vars, func(a, b robolang.Var) int {
			return strings.Compare(a.Name, b.Name)
		})
		dumpVars(s.out, vars)
	case ":state":
		fmt.Fprintln(s.out, s.robot.State())
	case ":reset":
		robot, err := newRobot(s.opts)
		if err != nil {
			fmt.Fprintln(s.out, red(err.Error()))
			break
		}
		s.robot = robot
		s.vars = make(map[string]int)
		fmt.Fprintln(s.out, s.robot.State())
	default:
		fmt.Fprintln(s.out, "unknown command. Type :help for commands.")
	}
	return false
}
