// Package backend specifies the contract between the semantic
// analyzer's typed AST and a machine-code-emitting backend, per §4.6
// of the Pangea front-end specification. The backend itself — the
// actual IR emitter and linker invocation — is an external
// collaborator; this package only fixes the interface it is handed:
// type conversion, a scoped symbol table, an expression-value cache,
// and the cast/variadic lowering categorizations the backend must
// apply consistently with the analyzer's own compatibility rules.
package backend

import (
	"fmt"

	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/sema"
)

// A TypeConverter turns a sema.Type into a backend-specific type
// representation. The converted type is an empty interface because its
// shape (an LLVM type handle, a Go type string, whatever) is entirely
// the backend's business; this package only fixes that the conversion
// is a pure function of a sema.Type plus error reporting.
type TypeConverter interface {
	// BackendTypeOf converts t, returning an error if t has no
	// representable backend type (e.g. it is sema.ErrorType, or a
	// generic type the backend has no instantiation for).
	BackendTypeOf(t *sema.Type) (interface{}, error)
}

// StorageClass is how a backend binding is stored: as a local mutable
// cell, a module-level global, or a compile-time constant that needs
// no storage at all.
type StorageClass int

const (
	Local StorageClass = iota
	Global
	Constant
)

func (c StorageClass) String() string {
	switch c {
	case Local:
		return "local"
	case Global:
		return "global"
	case Constant:
		return "constant"
	default:
		return "unknown"
	}
}

// A Binding records how one symbol is realized in the backend: its
// storage class and an opaque backend-specific handle (a stack slot,
// a global symbol name, a constant pool index).
type Binding struct {
	Class  StorageClass
	Type   *sema.Type
	Handle interface{}
}

// A SymbolTable is the backend's scoped binding table: function-level
// and block-level scopes stacked the same way sema's own scope does,
// but mapping names to backend Bindings rather than sema Symbols. The
// backend pushes a new scope on function entry and each nested block,
// pops on exit, and looks a name up by walking outward — mirroring
// §4.5's "chained to a parent scope" model so the two components stay
// in lockstep as they walk the same AST.
type SymbolTable struct {
	parent *SymbolTable
	vars   map[string]*Binding
}

// NewSymbolTable returns a fresh top-level (module-global) scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{vars: map[string]*Binding{}}
}

// Push returns a child scope nested under t, for a function body or
// block.
func (t *SymbolTable) Push() *SymbolTable {
	return &SymbolTable{parent: t, vars: map[string]*Binding{}}
}

// Pop returns the parent scope t was Pushed from, or nil at the root —
// the backend's analogue of sema's "scope exit always returns the
// current scope pointer to the exact parent it had at matching entry"
// invariant.
func (t *SymbolTable) Pop() *SymbolTable { return t.parent }

// Define binds name to b in t's own scope, shadowing any outer
// binding of the same name. Returns false, leaving the existing binding
// in place, if name is already bound in this exact scope
// (redefinition); true otherwise.
func (t *SymbolTable) Define(name string, b *Binding) bool {
	if _, dup := t.vars[name]; dup {
		return false
	}
	t.vars[name] = b
	return true
}

// Lookup walks t and its parents outward, returning the nearest
// binding for name, or nil if unbound.
func (t *SymbolTable) Lookup(name string) *Binding {
	for s := t; s != nil; s = s.parent {
		if b, ok := s.vars[name]; ok {
			return b
		}
	}
	return nil
}

// A ValueCache memoizes a lowered backend value per AST expression
// identity, populated in visitation order as the backend walks the
// typed AST exactly once. Keyed by the ast.Expr itself (a pointer into
// the immutable-after-construction tree), not by a synthetic ID, per
// the Design Notes' "side tables keyed by node identity" convention.
type ValueCache struct {
	values map[ast.Expr]interface{}
}

// NewValueCache returns an empty cache.
func NewValueCache() *ValueCache {
	return &ValueCache{values: map[ast.Expr]interface{}{}}
}

// Set records the lowered value for e. Panics on a duplicate set for
// the same expression: the backend visits each node exactly once, so
// a second Set indicates a bug in the visitation order, not a
// legitimate overwrite.
func (c *ValueCache) Set(e ast.Expr, v interface{}) {
	if _, dup := c.values[e]; dup {
		panic(fmt.Sprintf("backend: value already cached for %T", e))
	}
	c.values[e] = v
}

// Get returns the cached value for e and whether one was found.
func (c *ValueCache) Get(e ast.Expr) (interface{}, bool) {
	v, ok := c.values[e]
	return v, ok
}
