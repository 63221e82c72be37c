package sema

import "github.com/pangea-lang/pangea/ast"

// checkBlock checks b's statements in a fresh child scope of vs.
func (a *Analyzer) checkBlock(b *ast.Block, vs, ts *scope) {
	if b == nil {
		return
	}
	inner := newScope(vs)
	for _, stmt := range b.Stmts {
		a.checkStmt(stmt, inner, ts)
	}
}

func (a *Analyzer) checkStmt(s ast.Stmt, vs, ts *scope) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		a.checkExpr(s.X, vs, ts)
	case *ast.Block:
		a.checkBlock(s, vs, ts)
	case *ast.If:
		a.checkCondition(s.Cond, vs, ts)
		a.checkBlock(s.Then, vs, ts)
		switch els := s.Else.(type) {
		case nil:
		case *ast.If:
			a.checkStmt(els, vs, ts)
		case *ast.Block:
			a.checkBlock(els, vs, ts)
		}
	case *ast.While:
		a.checkCondition(s.Cond, vs, ts)
		a.checkBlock(s.Body, vs, ts)
	case *ast.ForIn:
		a.checkForIn(s, vs, ts)
	case *ast.Return:
		a.checkReturn(s, vs, ts)
	case *ast.DeclStmt:
		a.checkLocalDecl(s, vs, ts)
	}
}

func (a *Analyzer) checkCondition(e ast.Expr, vs, ts *scope) {
	t := a.checkExpr(e, vs, ts)
	if !t.IsError() && !t.IsBool() && !t.IsNumeric() {
		a.errorf(e.GetRange(), "condition must be boolean or numeric, got %s", t)
	}
}

// checkForIn binds the iterator name only within a scope covering
// Body, per the spec's boundary rule that it is not visible to
// sibling statements after the loop.
func (a *Analyzer) checkForIn(f *ast.ForIn, vs, ts *scope) {
	iterT := a.checkExpr(f.Iterable, vs, ts)
	elemT := ErrorType
	if iterT.Kind == ArrayT {
		elemT = iterT.Elem
	} else if !iterT.IsError() {
		a.errorf(f.Range, "cannot iterate over non-array type %s", iterT)
	}
	loopScope := newScope(vs)
	loopScope.define(&Symbol{Name: f.Name, Type: elemT, Mutable: false, Initialized: true})
	inner := newScope(loopScope)
	for _, stmt := range f.Body.Stmts {
		a.checkStmt(stmt, inner, ts)
	}
}

func (a *Analyzer) checkReturn(r *ast.Return, vs, ts *scope) {
	if r.Value == nil {
		if a.curFuncRet != nil && !a.curFuncRet.IsVoid() && !a.curFuncRet.IsError() {
			a.errorf(r.Range, "missing return value, expected %s", a.curFuncRet)
		}
		return
	}
	valType := a.checkExpr(r.Value, vs, ts)
	if a.curFuncRet == nil || valType.IsError() || a.curFuncRet.IsError() {
		return
	}
	if a.curFuncRet.IsVoid() {
		a.errorf(r.Range, "function returning void must not return a value")
		return
	}
	if !assignable(a.curFuncRet, valType) {
		a.errorf(r.Range, "cannot return %s, expected %s", valType, a.curFuncRet)
	}
}

func (a *Analyzer) checkLocalDecl(d *ast.DeclStmt, vs, ts *scope) {
	v, ok := d.Decl.(*ast.Variable)
	if !ok {
		return
	}
	sym := &Symbol{Name: v.Name, Mutable: v.Mutable, DeclarationLoc: v.Range, Initialized: v.Init != nil}
	if v.Type != nil {
		sym.Type = a.resolveType(v.Type, ts)
	}
	a.finishVariable(v, sym, vs, ts)
	if !vs.define(sym) {
		a.errorf(v.Range, "redefinition of %q", v.Name)
	}
}
