package sema

import "github.com/pangea-lang/pangea/loc"

// A Symbol is a named, typed binding: a declared variable, function,
// type name, or enum variant.
type Symbol struct {
	Name            string
	Type            *Type
	Mutable         bool
	Initialized     bool
	DeclaredModule  string // "" for a built-in
	Exported        bool
	DeclarationLoc  loc.Range
}

// A scope is a map from name to Symbol, chained to a parent. Function
// bodies, blocks, for loops, and class bodies each introduce a child
// scope; name lookup walks parents until a hit or the root.
type scope struct {
	vars   map[string]*Symbol
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: map[string]*Symbol{}, parent: parent}
}

// define adds sym to this scope and reports true, or reports false and
// leaves the scope unchanged if the name already exists directly in it
// (shadowing an outer scope's binding is fine and not checked here).
func (s *scope) define(sym *Symbol) bool {
	if _, exists := s.vars[sym.Name]; exists {
		return false
	}
	s.vars[sym.Name] = sym
	return true
}

// lookup walks the scope chain outward, returning the first match.
func (s *scope) lookup(name string) *Symbol {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.vars[name]; ok {
			return sym
		}
	}
	return nil
}

// local returns the symbol defined directly in s, ignoring parents.
func (s *scope) local(name string) (*Symbol, bool) {
	sym, ok := s.vars[name]
	return sym, ok
}
