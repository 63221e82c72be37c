package sema

import "github.com/pangea-lang/pangea/ast"

// collectDecl is pass 1 for a single top-level declaration: register a
// shallow Symbol (full signature for Function/Class/Struct/Enum;
// declared-type-only or a pending placeholder for Variable) without
// checking any expression or statement body.
func (a *Analyzer) collectDecl(mod *ast.Module, d ast.Decl, vs, ts *scope) {
	switch d := d.(type) {
	case *ast.Function:
		a.collectFunction(mod, d, vs, ts)
	case *ast.Variable:
		a.collectVariable(mod, d, vs, ts)
	case *ast.Class:
		a.collectClass(mod, d, vs, ts)
	case *ast.Struct:
		a.collectStruct(mod, d, vs, ts)
	case *ast.Enum:
		a.collectEnum(mod, d, vs, ts)
	}
}

func (a *Analyzer) collectFunction(mod *ast.Module, f *ast.Function, vs, ts *scope) {
	params := make([]*Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = a.resolveType(p.Type, ts)
	}
	ret := a.resolveType(f.Ret, ts)
	sym := &Symbol{Name: f.Name, Type: Func(params, ret), DeclaredModule: mod.Name,
		Exported: f.Export, DeclarationLoc: f.Range, Initialized: true}
	if !vs.define(sym) {
		a.errorf(f.Range, "redefinition of %q", f.Name)
	}
}

// collectVariable registers a shallow Symbol. If a declared type is
// present its resolution is final; otherwise Type is left nil as a
// "pending inference" marker that checkDecl's pass 2 fills in once the
// initializer can be checked.
func (a *Analyzer) collectVariable(mod *ast.Module, v *ast.Variable, vs, ts *scope) {
	sym := &Symbol{Name: v.Name, Mutable: v.Mutable, DeclaredModule: mod.Name,
		Exported: v.Export, DeclarationLoc: v.Range, Initialized: v.Init != nil || v.Foreign}
	if v.Type != nil {
		sym.Type = a.resolveType(v.Type, ts)
	}
	if !vs.define(sym) {
		a.errorf(v.Range, "redefinition of %q", v.Name)
	}
}

func (a *Analyzer) collectClass(mod *ast.Module, c *ast.Class, vs, ts *scope) {
	classType := Prim(c.Name)
	if !ts.define(&Symbol{Name: c.Name, Type: classType, DeclaredModule: mod.Name, DeclarationLoc: c.Range}) {
		a.errorf(c.Range, "redefinition of type %q", c.Name)
		return
	}

	var ctor *ast.Method
	for _, m := range c.Members {
		if meth, ok := m.(*ast.Method); ok && meth.Name == c.Name {
			ctor = meth
			break
		}
	}
	var params []*Type
	if ctor != nil {
		params = make([]*Type, len(ctor.Params))
		for i, p := range ctor.Params {
			params[i] = a.resolveType(p.Type, ts)
		}
	}
	sym := &Symbol{Name: c.Name, Type: Func(params, classType), DeclaredModule: mod.Name,
		DeclarationLoc: c.Range, Initialized: true}
	if !vs.define(sym) {
		a.errorf(c.Range, "redefinition of %q", c.Name)
	}
}

func (a *Analyzer) collectStruct(mod *ast.Module, s *ast.Struct, vs, ts *scope) {
	if !ts.define(&Symbol{Name: s.Name, Type: Prim(s.Name), DeclaredModule: mod.Name, DeclarationLoc: s.Range}) {
		a.errorf(s.Range, "redefinition of type %q", s.Name)
	}
}

func (a *Analyzer) collectEnum(mod *ast.Module, e *ast.Enum, vs, ts *scope) {
	enumType := Prim(e.Name)
	if !ts.define(&Symbol{Name: e.Name, Type: enumType, DeclaredModule: mod.Name, DeclarationLoc: e.Range}) {
		a.errorf(e.Range, "redefinition of type %q", e.Name)
		return
	}
	for _, v := range e.Variants {
		sym := &Symbol{Name: v, Type: enumType, DeclaredModule: mod.Name, DeclarationLoc: e.Range, Initialized: true}
		if !vs.define(sym) {
			a.errorf(e.Range, "redefinition of %q", v)
		}
	}
}

// checkDecl is pass 2 for a single top-level declaration: the real,
// cross-module-aware check, using the Symbol collectDecl already
// registered.
func (a *Analyzer) checkDecl(mod *ast.Module, d ast.Decl, vs, ts *scope) {
	switch d := d.(type) {
	case *ast.Function:
		a.checkFunction(d, vs, ts)
	case *ast.Variable:
		a.checkTopVariable(d, vs, ts)
	case *ast.Class:
		a.checkClass(d, vs, ts)
	case *ast.Struct, *ast.Enum:
		// Fully typed during collection; no body to check.
	}
}

func (a *Analyzer) checkFunction(f *ast.Function, vs, ts *scope) {
	if f.Foreign {
		return
	}
	sym, _ := vs.local(f.Name)
	fnType := sym.Type
	body := newScope(vs)
	for i, p := range f.Params {
		body.define(&Symbol{Name: p.Name, Type: fnType.Params[i], Mutable: true, Initialized: true})
	}
	prevRet := a.curFuncRet
	a.curFuncRet = fnType.Ret
	a.checkBlock(f.Body, body, ts)
	a.curFuncRet = prevRet
}

func (a *Analyzer) checkTopVariable(v *ast.Variable, vs, ts *scope) {
	sym, _ := vs.local(v.Name)
	a.finishVariable(v, sym, vs, ts)
}

// finishVariable checks v's initializer (if any) against its declared
// or pending type, patching sym.Type when inference was deferred.
func (a *Analyzer) finishVariable(v *ast.Variable, sym *Symbol, vs, ts *scope) {
	if v.Init == nil {
		if sym.Type == nil {
			sym.Type = ErrorType
		}
		return
	}
	initType := a.checkExpr(v.Init, vs, ts)
	if sym.Type == nil {
		sym.Type = initType
		return
	}
	if !assignable(sym.Type, initType) {
		a.errorf(v.Range, "cannot initialize %q of type %s with value of type %s", v.Name, sym.Type, initType)
	}
}

func (a *Analyzer) checkClass(c *ast.Class, vs, ts *scope) {
	classSym, _ := ts.local(c.Name)
	classType := classSym.Type
	for _, m := range c.Members {
		switch m := m.(type) {
		case *ast.Field:
			a.resolveType(m.Type, ts) // diagnoses an undefined field type, if any
			if m.Init != nil {
				prevSelf := a.curSelf
				a.curSelf = classType
				a.checkExpr(m.Init, vs, ts)
				a.curSelf = prevSelf
			}
		case *ast.Method:
			a.checkMethod(m, c, classType, vs, ts)
		}
	}
}

func (a *Analyzer) checkMethod(m *ast.Method, c *ast.Class, classType *Type, vs, ts *scope) {
	isCtor := m.Name == c.Name
	paramTypes := make([]*Type, len(m.Params))
	for i, p := range m.Params {
		paramTypes[i] = a.resolveType(p.Type, ts)
	}
	ret := classType
	if !isCtor {
		ret = a.resolveType(m.Ret, ts)
	}

	body := newScope(vs)
	if !m.Static {
		hasSelf := false
		for _, p := range m.Params {
			if p.Name == "self" {
				hasSelf = true
			}
		}
		if !hasSelf {
			body.define(&Symbol{Name: "self", Type: classType, Mutable: true, Initialized: true})
		}
	}
	for i, p := range m.Params {
		body.define(&Symbol{Name: p.Name, Type: paramTypes[i], Mutable: true, Initialized: true})
	}

	prevRet, prevSelf := a.curFuncRet, a.curSelf
	a.curFuncRet, a.curSelf = ret, classType
	a.checkBlock(m.Body, body, ts)
	a.curFuncRet, a.curSelf = prevRet, prevSelf
}

// assignable reports whether a value of type src may initialize or be
// assigned into a binding of type dst: exact structural match for
// non-numeric types, or any numeric pair (the narrower target simply
// takes the promoted/truncated value, per the backend's widen/
// truncate lowering).
func assignable(dst, src *Type) bool {
	if dst.IsError() || src.IsError() {
		return false
	}
	if dst.IsNumeric() && src.IsNumeric() {
		return true
	}
	return Equal(dst, src)
}
