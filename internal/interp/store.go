package interp

import "github.com/google/btree"

// Var is a named variable value.
type Var struct {
	Name  string
	Value int
}

// Store is the flat variable environment of one program run. There is
// no block scoping: every statement of the run sees the same store.
// Reading an unset variable creates it with value 0.
type Store struct {
	tree *btree.BTreeG[Var]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		tree: btree.NewG(8, func(a, b Var) bool { return a.Name < b.Name }),
	}
}

// Get returns the value of name, creating it with value 0 if unset.
func (s *Store) Get(name string) int {
	if v, ok := s.tree.Get(Var{Name: name}); ok {
		return v.Value
	}
	s.tree.ReplaceOrInsert(Var{Name: name})
	return 0
}

// Set stores value under name, overwriting any previous value.
func (s *Store) Set(name string, value int) {
	s.tree.ReplaceOrInsert(Var{Name: name, Value: value})
}

// Has reports whether name has been read or assigned.
func (s *Store) Has(name string) bool {
	return s.tree.Has(Var{Name: name})
}

// Len returns the number of variables in the store.
func (s *Store) Len() int {
	return s.tree.Len()
}

// Snapshot returns all variables sorted by name, or nil if the store
// is empty.
func (s *Store) Snapshot() []Var {
	if s.tree.Len() == 0 {
		return nil
	}
	vars := make([]Var, 0, s.tree.Len())
	s.tree.Ascend(func(v Var) bool {
		vars = append(vars, v)
		return true
	})
	return vars
}
