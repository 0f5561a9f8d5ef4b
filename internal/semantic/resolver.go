package semantic

import (
	"github.com/kolkov/robolang/internal/ast"
	"github.com/kolkov/robolang/internal/token"
)

// ResolveResult contains the variables of a program and the warnings
// found while collecting them.
type ResolveResult struct {
	Symbols  *SymbolTable
	Warnings WarningList
}

// Resolve collects every variable read and assignment in prog. Names in
// preset are treated as assigned before the run starts.
//
// Scope is flat and loops re-run earlier statements, so a read counts as
// satisfied by an assignment anywhere in the program.
func Resolve(prog *ast.Program, preset ...string) *ResolveResult {
	r := &ResolveResult{Symbols: NewSymbolTable()}

	for _, name := range preset {
		r.Symbols.define(name, token.NoPos).Preset = true
	}

	if prog != nil {
		ast.Walk(prog, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.AssignStmt:
				r.Symbols.define(n.Name, n.Pos()).Writes++
			case *ast.VarRef:
				sym := r.Symbols.define(n.Name, n.Pos())
				if sym.Reads == 0 {
					sym.FirstUse = n.Pos()
				}
				sym.Reads++
			}
			return true
		})
	}

	for _, name := range r.Symbols.Names() {
		sym := r.Symbols.Lookup(name)
		if sym.Reads > 0 && !sym.Assigned() {
			r.Warnings.Add(sym.FirstUse, warnNeverSet, name)
		}
	}
	return r
}
