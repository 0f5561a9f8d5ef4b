package robolang

import (
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/robolang/internal/lexer"
)

// Config holds configuration options for program execution.
type Config struct {
	// Variables contains pre-defined variables, set before the first
	// statement runs. The leading '$' may be omitted.
	// Example: map[string]int{"$limit": 10, "turns": 2}
	Variables map[string]int

	// Stderr receives the empty program notice and, when Warnings is
	// set, static warnings. If nil, diagnostics are discarded.
	Stderr io.Writer

	// Warnings enables static warnings before the run starts.
	Warnings bool
}

// withDefaults returns a copy of c with unset fields filled in. The
// caller's Config is never modified, so one may be shared between runs.
func (c *Config) withDefaults() *Config {
	var cfg Config
	if c != nil {
		cfg = *c
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}
	return &cfg
}

// variables returns Variables with canonical names.
func (c *Config) variables() (map[string]int, error) {
	vars := make(map[string]int, len(c.Variables))
	for name, value := range c.Variables {
		canon := VarName(name)
		if !lexer.IsVarName(canon) {
			return nil, fmt.Errorf("invalid variable name %q", name)
		}
		vars[canon] = value
	}
	return vars, nil
}

// VarName returns name with the leading '$' that variables carry in
// program text.
func VarName(name string) string {
	if strings.HasPrefix(name, "$") {
		return name
	}
	return "$" + name
}
