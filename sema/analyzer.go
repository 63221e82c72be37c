// Package sema implements Pangea's semantic analyzer: scope
// management, symbol resolution, type synthesis, and cross-module
// visibility, run as the two-pass program analysis described for the
// module loader's output.
package sema

import (
	"path/filepath"

	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/builtin"
	"github.com/pangea-lang/pangea/loc"
)

// builtinTypeNames are the fixed primitive type spellings that resolve
// without any declaration or import: the integer/float family, bool,
// string, void, self, and the variadic marker raw_va_list.
var builtinTypeNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f32": true, "f64": true, "bool": true, "string": true,
	"void": true, "self": true, "raw_va_list": true,
}

// An Analyzer runs the two-pass semantic analysis over a Program and
// records the synthesized type of every expression in a side table
// keyed by node identity, per the spec's "no AST mutation" rule.
type Analyzer struct {
	Bag      *loc.Bag
	Builtins *builtin.Registry

	builtinValues *scope
	builtinTypes  *scope

	valueExports map[string]map[string]*Symbol
	typeExports  map[string]map[string]*Symbol

	moduleValueScope map[string]*scope
	moduleTypeScope  map[string]*scope

	exprTypes map[ast.Expr]*Type

	curModule  string
	curFuncRet *Type
	curSelf    *Type
}

// New returns an Analyzer. builtins may be builtin.Empty() if
// --no-builtins was passed.
func New(bag *loc.Bag, builtins *builtin.Registry) *Analyzer {
	a := &Analyzer{
		Bag:              bag,
		Builtins:         builtins,
		valueExports:     map[string]map[string]*Symbol{},
		typeExports:      map[string]map[string]*Symbol{},
		moduleValueScope: map[string]*scope{},
		moduleTypeScope:  map[string]*scope{},
		exprTypes:        map[ast.Expr]*Type{},
	}
	a.builtinValues = newScope(nil)
	for name, fn := range builtins.Funcs {
		params := make([]*Type, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = typeFromSpec(p)
		}
		fnType := Func(params, typeFromSpec(fn.Ret))
		a.builtinValues.define(&Symbol{Name: name, Type: fnType, Mutable: fn.Mutable, Initialized: true})
	}
	a.builtinTypes = newScope(nil)
	return a
}

// typeFromSpec converts a builtin.TypeSpec (builtin's own leaf-package
// type vocabulary) into a sema.Type.
func typeFromSpec(spec builtin.TypeSpec) *Type {
	switch spec.Kind {
	case builtin.KindPointer:
		return Ptr(convertBuiltinPointerKind(spec.PtrKind), typeFromSpec(*spec.Elem))
	default:
		if spec.Name == "void" {
			return VoidType
		}
		return Prim(spec.Name)
	}
}

func convertBuiltinPointerKind(k builtin.PointerKind) PointerKind {
	switch k {
	case builtin.Unique:
		return Unique
	case builtin.Shared:
		return Shared
	case builtin.Weak:
		return Weak
	default:
		return Cptr
	}
}

// TypeOf returns the semantic type synthesized for expression e, or
// nil if e was never checked.
func (a *Analyzer) TypeOf(e ast.Expr) *Type { return a.exprTypes[e] }

// ModuleSymbols returns the top-level value symbols (functions,
// variables, class constructors, enum variants) declared directly in
// modName, for callers that want to inspect the typed result after
// AnalyzeProgram — e.g. the backend handoff or a --dump-types flag.
// Imported and built-in symbols are excluded; only modName's own
// declarations are returned.
func (a *Analyzer) ModuleSymbols(modName string) map[string]*Symbol {
	vs, ok := a.moduleValueScope[modName]
	if !ok {
		return nil
	}
	out := map[string]*Symbol{}
	for name, sym := range vs.vars {
		if sym.DeclaredModule == modName {
			out[name] = sym
		}
	}
	return out
}

// AnalyzeProgram runs pass 1 (collect exports) then pass 2 (inject
// imports, fully check bodies) over every module in prog, dependencies
// before the main module.
func (a *Analyzer) AnalyzeProgram(prog *ast.Program) {
	modules := prog.AllModules()

	for _, mod := range modules {
		a.collectModule(mod)
	}
	for _, mod := range modules {
		a.analyzeModule(mod)
	}
}

// collectModule is pass 1: register shallow signatures for every
// top-level declaration (enough to know each symbol's type without
// checking bodies or cross-module references) and snapshot the
// exported subset.
func (a *Analyzer) collectModule(mod *ast.Module) {
	a.curModule = mod.Name
	vs := newScope(a.builtinValues)
	ts := newScope(a.builtinTypes)
	a.moduleValueScope[mod.Name] = vs
	a.moduleTypeScope[mod.Name] = ts

	for _, d := range mod.Decls {
		a.collectDecl(mod, d, vs, ts)
	}

	valExp := map[string]*Symbol{}
	for name, sym := range vs.vars {
		if sym.Exported {
			valExp[name] = sym
		}
	}
	a.valueExports[mod.Name] = valExp
	typeExp := map[string]*Symbol{}
	for name, sym := range ts.vars {
		if sym.Exported {
			typeExp[name] = sym
		}
	}
	a.typeExports[mod.Name] = typeExp
}

// analyzeModule is pass 2: inject this module's imports into its
// already-collected scopes, then fully check every declaration.
func (a *Analyzer) analyzeModule(mod *ast.Module) {
	a.curModule = mod.Name
	vs := a.moduleValueScope[mod.Name]
	ts := a.moduleTypeScope[mod.Name]

	for _, imp := range mod.Imports {
		a.injectImport(mod, imp, vs, ts)
	}
	for _, d := range mod.Decls {
		a.checkDecl(mod, d, vs, ts)
	}
}

func (a *Analyzer) injectImport(mod *ast.Module, imp *ast.ImportDecl, vs, ts *scope) {
	depName := filepath.Base(imp.Path)
	valExp, valOK := a.valueExports[depName]
	typeExp, typeOK := a.typeExports[depName]
	if !valOK && !typeOK {
		a.errorf(imp.Range, "cannot resolve import %q", imp.Path)
		return
	}
	if imp.Wildcard {
		for _, sym := range valExp {
			vs.define(sym)
		}
		for _, sym := range typeExp {
			ts.define(sym)
		}
		return
	}
	for _, name := range imp.Names {
		sym, ok := valExp[name]
		tsym, tok := typeExp[name]
		if !ok && !tok {
			a.errorf(imp.Range, "module %q does not export %q", imp.Path, name)
			continue
		}
		if ok {
			vs.define(sym)
		}
		if tok {
			ts.define(tsym)
		}
	}
}

func (a *Analyzer) errorf(r loc.Range, format string, args ...interface{}) {
	if a.Bag == nil {
		return
	}
	a.Bag.Report(loc.Error, r, format, args...)
}

func (a *Analyzer) warnf(r loc.Range, format string, args ...interface{}) {
	if a.Bag == nil {
		return
	}
	a.Bag.Report(loc.Warning, r, format, args...)
}

// resolveType converts an ast.Type into its semantic Type, resolving
// user type names against ts (and its imported/built-in parents) and
// handling `self` via curSelf.
func (a *Analyzer) resolveType(t ast.Type, ts *scope) *Type {
	if t == nil {
		return VoidType
	}
	switch t := t.(type) {
	case *ast.PrimitiveType:
		if t.Name == "self" {
			if a.curSelf == nil {
				a.errorf(t.Range, "'self' used outside a method or constructor")
				return ErrorType
			}
			return a.curSelf
		}
		if t.Name == "void" {
			return VoidType
		}
		if builtinTypeNames[t.Name] {
			return Prim(t.Name)
		}
		if sym := ts.lookup(t.Name); sym != nil {
			return sym.Type
		}
		a.errorf(t.Range, "undefined type: %s", t.Name)
		return ErrorType
	case *ast.ConstType:
		return Const(a.resolveType(t.Base, ts))
	case *ast.ArrayType:
		return Array(a.resolveType(t.Elem, ts), t.Size)
	case *ast.PointerType:
		return Ptr(a.convertPointerKind(t.Kind), a.resolveType(t.Pointee, ts))
	case *ast.GenericType:
		// Generics parse but are never instantiated (a Non-goal); a
		// GenericType resolves to its bare name, ignoring Args.
		if builtinTypeNames[t.Name] {
			return Prim(t.Name)
		}
		if sym := ts.lookup(t.Name); sym != nil {
			return sym.Type
		}
		a.errorf(t.Range, "undefined type: %s", t.Name)
		return ErrorType
	default:
		return ErrorType
	}
}

func (a *Analyzer) convertPointerKind(k ast.PointerKind) PointerKind {
	switch k {
	case ast.Unique:
		return Unique
	case ast.Shared:
		return Shared
	case ast.Weak:
		return Weak
	default:
		return Cptr
	}
}
