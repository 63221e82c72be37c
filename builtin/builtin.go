// Package builtin holds the compiler's built-in function registry: an
// explicit value threaded into the analyzer and backend at
// construction, rather than process-global state.
//
// The registry describes built-in signatures with a small type-spec
// vocabulary of its own rather than importing package sema directly —
// sema is the one that converts a Registry into its own Symbol/Type
// values, keeping builtin a leaf package with no dependency on the
// component that consumes it.
package builtin

// A Kind tags the closed set of type shapes a built-in parameter or
// return value may have.
type Kind int

const (
	// KindPrimitive names one of the fixed primitive spellings (an
	// integer/float width, "bool", "string", or "void").
	KindPrimitive Kind = iota
	// KindPointer wraps Elem with a pointer kind (almost always Cptr
	// for a foreign built-in).
	KindPointer
)

// PointerKind mirrors the four pointer kinds without importing ast or
// sema; Default()'s only built-in needs Cptr, but the vocabulary is
// complete so future built-ins aren't blocked on it.
type PointerKind int

const (
	Cptr PointerKind = iota
	Unique
	Shared
	Weak
)

// A TypeSpec describes one parameter or return type of a built-in
// signature, independent of any AST or semantic type representation.
// Callers always construct a TypeSpec via Prim or PtrOf.
type TypeSpec struct {
	Kind Kind

	// set when Kind == KindPointer
	PtrKind PointerKind
	Elem    *TypeSpec

	// set when Kind == KindPrimitive
	Name string
}

// Prim builds a primitive TypeSpec, e.g. Prim("void"), Prim("u8").
func Prim(name string) TypeSpec { return TypeSpec{Kind: KindPrimitive, Name: name} }

// PtrOf builds a pointer TypeSpec of the given kind over elem.
func PtrOf(kind PointerKind, elem TypeSpec) TypeSpec {
	e := elem
	return TypeSpec{Kind: KindPointer, PtrKind: kind, Elem: &e}
}

// A Func is one built-in function's signature.
type Func struct {
	Name    string
	Params  []TypeSpec
	Ret     TypeSpec
	Mutable bool
}

// A Registry is the set of names available to every module without an
// import, and the set of names the analyzer and backend treat
// specially. DeclaredModule is left "" by the analyzer when it
// converts these into symbols, so visibility checking treats them as
// always visible (§4.5).
type Registry struct {
	Funcs map[string]Func
}

// Default returns the registry the compiler uses unless --no-builtins
// suppresses it: a single `print(msg: cptr u8) -> void` function,
// mirroring the `print` used throughout the end-to-end scenarios and
// grounded by stdlib/io.pang's own foreign declaration of it.
func Default() *Registry {
	return &Registry{
		Funcs: map[string]Func{
			"print": {
				Name:   "print",
				Params: []TypeSpec{PtrOf(Cptr, Prim("u8"))},
				Ret:    Prim("void"),
			},
		},
	}
}

// Empty returns a registry with no built-ins, used when --no-builtins
// is passed.
func Empty() *Registry { return &Registry{Funcs: map[string]Func{}} }
