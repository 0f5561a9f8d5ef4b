package semantic

import (
	"sort"

	"github.com/kolkov/robolang/internal/token"
)

// Symbol holds what the analyzer learned about one variable.
type Symbol struct {
	Name     string         // Variable name including '$'
	Pos      token.Position // First occurrence
	Reads    int            // Number of read sites
	Writes   int            // Number of assignment sites
	Preset   bool           // Seeded from outside the program
	FirstUse token.Position // First read site
}

// Assigned reports whether the variable gets a value before or during a run.
func (s *Symbol) Assigned() bool {
	return s.Writes > 0 || s.Preset
}

// SymbolTable is the single flat namespace of a program. There is no
// nesting: blocks do not introduce scopes.
type SymbolTable struct {
	symbols map[string]*Symbol
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// Lookup returns the symbol for name, or nil.
func (st *SymbolTable) Lookup(name string) *Symbol {
	return st.symbols[name]
}

// define returns the symbol for name, creating it at pos if new.
func (st *SymbolTable) define(name string, pos token.Position) *Symbol {
	if sym, ok := st.symbols[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name, Pos: pos}
	st.symbols[name] = sym
	return sym
}

// Len returns the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Names returns all symbol names in sorted order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.symbols))
	for name := range st.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
