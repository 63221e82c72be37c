package sema

import "github.com/pangea-lang/pangea/ast"

// nullType is the synthesized type of the `null` literal: not
// numeric, not castable, compatible only with pointer types in an
// equality/inequality comparison.
var nullType = Prim("null")

// checkExpr synthesizes e's semantic type, recording it in the
// side-table keyed by e's identity, and returns it.
func (a *Analyzer) checkExpr(e ast.Expr, vs, ts *scope) *Type {
	t := a.synthExpr(e, vs, ts)
	a.exprTypes[e] = t
	return t
}

func (a *Analyzer) synthExpr(e ast.Expr, vs, ts *scope) *Type {
	switch e := e.(type) {
	case *ast.Literal:
		return a.checkLiteral(e)
	case *ast.Ident:
		return a.checkIdent(e, vs)
	case *ast.Binary:
		return a.checkBinary(e, vs, ts)
	case *ast.Unary:
		return a.checkUnary(e, vs, ts)
	case *ast.Postfix:
		return a.checkPostfix(e, vs, ts)
	case *ast.Call:
		return a.checkCall(e, vs, ts)
	case *ast.Member:
		// Member dispatch and field offset computation are an explicit
		// non-goal: type silently as Error without a diagnostic.
		a.checkExpr(e.X, vs, ts)
		return ErrorType
	case *ast.Index:
		return a.checkIndex(e, vs, ts)
	case *ast.Assign:
		return a.checkAssign(e, vs, ts)
	case *ast.CheckedCast:
		return a.checkCheckedCast(e, vs, ts)
	case *ast.UncheckedCast:
		return a.checkUncheckedCast(e, vs, ts)
	case *ast.AsCast:
		return a.checkAsCast(e, vs, ts)
	default:
		return ErrorType
	}
}

func (a *Analyzer) checkLiteral(l *ast.Literal) *Type {
	switch l.Kind {
	case ast.IntLiteral, ast.FloatLiteral:
		return Prim(l.Suffix)
	case ast.StringLiteral:
		return Prim("string")
	case ast.BoolLiteral:
		return Prim("bool")
	case ast.NullLiteral:
		return nullType
	default:
		return ErrorType
	}
}

func (a *Analyzer) checkIdent(id *ast.Ident, vs *scope) *Type {
	sym := vs.lookup(id.Name)
	if sym == nil {
		a.errorf(id.Range, "Undefined identifier: %s", id.Name)
		return ErrorType
	}
	return sym.Type
}

var arithOps = map[ast.BinOp]bool{ast.Add: true, ast.Sub: true, ast.Mul: true, ast.Div: true, ast.Mod: true}
var bitOps = map[ast.BinOp]bool{ast.BitAnd: true, ast.BitOr: true, ast.BitXor: true}
var shiftOps = map[ast.BinOp]bool{ast.Shl: true, ast.Shr: true}
var cmpOps = map[ast.BinOp]bool{
	ast.CmpEq: true, ast.CmpNe: true, ast.CmpLt: true, ast.CmpLe: true, ast.CmpGt: true, ast.CmpGe: true,
}

func (a *Analyzer) checkBinary(b *ast.Binary, vs, ts *scope) *Type {
	x := a.checkExpr(b.X, vs, ts)
	y := a.checkExpr(b.Y, vs, ts)

	switch {
	case b.Op == ast.Pow:
		// `**` parses at its own precedence level but is a deliberate
		// stub: the analyzer rejects it regardless of operand types,
		// and the backend has no lowering for it.
		if !x.IsError() && !y.IsError() {
			a.errorf(b.Range, "power operator not supported")
		}
		return ErrorType
	case arithOps[b.Op]:
		if x.IsNumeric() && y.IsNumeric() {
			return CommonNumeric(x, y)
		}
		if !x.IsError() && !y.IsError() {
			a.errorf(b.Range, "arithmetic requires numeric operands, got %s and %s", x, y)
		}
		return ErrorType
	case bitOps[b.Op], shiftOps[b.Op]:
		if x.IsNumeric() && !x.IsFloat() && y.IsNumeric() && !y.IsFloat() {
			return CommonNumeric(x, y)
		}
		if !x.IsError() && !y.IsError() {
			a.errorf(b.Range, "bitwise/shift operators require integer operands, got %s and %s", x, y)
		}
		return ErrorType
	case b.Op == ast.LogAnd, b.Op == ast.LogOr:
		if (x.IsBool() || x.IsNumeric()) && (y.IsBool() || y.IsNumeric()) {
			return Prim("bool")
		}
		if !x.IsError() && !y.IsError() {
			a.errorf(b.Range, "logical operators require boolean or numeric operands, got %s and %s", x, y)
		}
		return ErrorType
	case cmpOps[b.Op]:
		return a.checkComparison(b, x, y)
	default:
		return ErrorType
	}
}

func (a *Analyzer) checkComparison(b *ast.Binary, x, y *Type) *Type {
	boolT := Prim("bool")
	if x.IsNumeric() && y.IsNumeric() {
		return boolT
	}
	if (b.Op == ast.CmpEq || b.Op == ast.CmpNe) && isPointerNullPair(x, y) {
		return boolT
	}
	if Equal(x, y) {
		return boolT
	}
	if !x.IsError() && !y.IsError() {
		a.errorf(b.Range, "cannot compare %s and %s", x, y)
	}
	return ErrorType
}

func isPointerNullPair(x, y *Type) bool {
	return (x.Kind == PointerT && y == nullType) || (y.Kind == PointerT && x == nullType)
}

func (a *Analyzer) checkUnary(u *ast.Unary, vs, ts *scope) *Type {
	x := a.checkExpr(u.X, vs, ts)
	switch u.Op {
	case ast.Neg:
		if x.IsNumeric() {
			return x
		}
		if !x.IsError() {
			a.errorf(u.Range, "unary '-' requires a numeric operand, got %s", x)
		}
		return ErrorType
	case ast.Not:
		if x.IsBool() || x.IsNumeric() {
			return Prim("bool")
		}
		if !x.IsError() {
			a.errorf(u.Range, "'!' requires a boolean or numeric operand, got %s", x)
		}
		return ErrorType
	default:
		return ErrorType
	}
}

func (a *Analyzer) checkPostfix(p *ast.Postfix, vs, ts *scope) *Type {
	x := a.checkExpr(p.X, vs, ts)
	if !x.IsNumeric() {
		if !x.IsError() {
			a.errorf(p.Range, "'++'/'--' require a numeric operand, got %s", x)
		}
		return ErrorType
	}
	if id, ok := p.X.(*ast.Ident); ok {
		if sym := vs.lookup(id.Name); sym != nil && !sym.Mutable {
			a.errorf(p.Range, "Cannot assign to immutable variable: %s", id.Name)
		}
	}
	return x
}

func (a *Analyzer) checkIndex(ix *ast.Index, vs, ts *scope) *Type {
	obj := a.checkExpr(ix.X, vs, ts)
	idx := a.checkExpr(ix.Idx, vs, ts)
	if !idx.IsError() && (!idx.IsNumeric() || idx.IsFloat()) {
		a.errorf(ix.Range, "array index must be an integer, got %s", idx)
	}
	if obj.Kind != ArrayT {
		if !obj.IsError() {
			a.errorf(ix.Range, "cannot index into non-array type %s", obj)
		}
		return ErrorType
	}
	return obj.Elem
}

func (a *Analyzer) checkAssign(as *ast.Assign, vs, ts *scope) *Type {
	lhsType := a.checkExpr(as.Lhs, vs, ts)
	rhsType := a.checkExpr(as.Rhs, vs, ts)

	switch lhs := as.Lhs.(type) {
	case *ast.Ident:
		if sym := vs.lookup(lhs.Name); sym != nil && !sym.Mutable {
			a.errorf(as.Range, "Cannot assign to immutable variable: %s", lhs.Name)
			return ErrorType
		}
	case *ast.Member, *ast.Index:
		// Field/element mutability is not separately tracked; allowed.
	default:
		a.errorf(as.Range, "invalid assignment target")
		return ErrorType
	}

	if lhsType.IsError() || rhsType.IsError() {
		return ErrorType
	}
	if !assignable(lhsType, rhsType) {
		a.errorf(as.Range, "cannot assign %s to %s", rhsType, lhsType)
		return ErrorType
	}
	return lhsType
}

func (a *Analyzer) checkCheckedCast(c *ast.CheckedCast, vs, ts *scope) *Type {
	src := a.checkExpr(c.X, vs, ts)
	target := a.resolveType(c.Target, ts)
	if !src.IsError() && !target.IsError() && (!src.Castable() || !target.Castable()) {
		a.errorf(c.Range, "invalid cast from %s to %s", src, target)
	}
	return target
}

func (a *Analyzer) checkUncheckedCast(c *ast.UncheckedCast, vs, ts *scope) *Type {
	src := a.checkExpr(c.X, vs, ts)
	target := a.resolveType(c.Target, ts)
	if !src.IsError() && !target.IsError() && (!src.Castable() || !target.Castable()) {
		a.warnf(c.Range, "try_cast from %s to %s always fails statically", src, target)
		return src
	}
	return target
}

// checkCall checks a call expression. Only identifier callees are
// fully arity/type checked (per the spec's member-dispatch non-goal,
// a call through a Member or Index expression only evaluates its
// arguments for their own diagnostics and yields Error).
func (a *Analyzer) checkCall(c *ast.Call, vs, ts *scope) *Type {
	id, ok := c.Fn.(*ast.Ident)
	if !ok {
		a.checkExpr(c.Fn, vs, ts)
		for _, arg := range c.Args {
			a.checkExpr(arg, vs, ts)
		}
		return ErrorType
	}

	sym := vs.lookup(id.Name)
	if sym == nil {
		a.errorf(c.Range, "Undefined identifier: %s", id.Name)
		for _, arg := range c.Args {
			a.checkExpr(arg, vs, ts)
		}
		return ErrorType
	}
	a.exprTypes[id] = sym.Type
	fnType := sym.Type
	if fnType.Kind != FunctionT {
		a.errorf(c.Range, "%s is not callable", id.Name)
		for _, arg := range c.Args {
			a.checkExpr(arg, vs, ts)
		}
		return ErrorType
	}

	if isVariadicForeign(fnType) {
		a.checkVariadicArgs(c, fnType, vs, ts)
	} else {
		a.checkFixedArgs(c, fnType, vs, ts)
	}
	return fnType.Ret
}

// isVariadicForeign reports whether fnType's final declared parameter
// is the raw_va_list marker, identifying a foreign variadic function
// (e.g. a libc-style printf) whose trailing arguments accept any
// variadic-compatible type rather than a fixed signature.
func isVariadicForeign(fnType *Type) bool {
	n := len(fnType.Params)
	return n > 0 && fnType.Params[n-1].Kind == Primitive && fnType.Params[n-1].Name == "raw_va_list"
}

func (a *Analyzer) checkVariadicArgs(c *ast.Call, fnType *Type, vs, ts *scope) {
	fixed := fnType.Params[:len(fnType.Params)-1]
	for i, arg := range c.Args {
		argType := a.checkExpr(arg, vs, ts)
		if i < len(fixed) {
			a.checkArgCompatible(c, fixed[i], argType, arg)
			continue
		}
		if argType.IsError() {
			continue
		}
		if !argType.IsNumeric() && !argType.IsBool() && argType.Kind != PointerT && argType.Name != "string" {
			a.errorf(arg.GetRange(), "argument type %s is not variadic-compatible", argType)
		}
	}
}

func (a *Analyzer) checkFixedArgs(c *ast.Call, fnType *Type, vs, ts *scope) {
	if len(c.Args) != len(fnType.Params) {
		a.errorf(c.Range, "wrong number of arguments: expected %d, got %d", len(fnType.Params), len(c.Args))
	}
	for i, arg := range c.Args {
		argType := a.checkExpr(arg, vs, ts)
		if i < len(fnType.Params) {
			a.checkArgCompatible(c, fnType.Params[i], argType, arg)
		}
	}
}

// checkArgCompatible accepts the ordinary assignable() relation, plus
// the special case of a string literal argument passed to a `cptr u8`
// or `cptr void` parameter (the C-string calling convention foreign
// declarations rely on).
func (a *Analyzer) checkArgCompatible(c *ast.Call, paramType, argType *Type, arg ast.Expr) {
	if argType.IsError() {
		return
	}
	if _, isLit := arg.(*ast.Literal); isLit && argType.Name == "string" && paramType.Kind == PointerT {
		if paramType.Pointee.Name == "u8" || paramType.Pointee.IsVoid() {
			return
		}
	}
	if !assignable(paramType, argType) {
		a.errorf(arg.GetRange(), "cannot pass %s as argument of type %s", argType, paramType)
	}
}

func (a *Analyzer) checkAsCast(c *ast.AsCast, vs, ts *scope) *Type {
	src := a.checkExpr(c.X, vs, ts)
	target := a.resolveType(c.Target, ts)
	if src.IsError() || target.IsError() {
		return ErrorType
	}
	if !src.Castable() || !target.Castable() {
		a.errorf(c.Range, "'as' cannot convert %s to %s", src, target)
		return ErrorType
	}
	return target
}
