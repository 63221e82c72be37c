package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders n back to Pangea source text. It is used by the
// parse→print→re-parse round-trip property: printing then re-parsing
// must yield a structurally equal AST, ignoring source locations.
func Print(n Node) string {
	var s strings.Builder
	switch n := n.(type) {
	case *Module:
		printModule(n, &s)
	case Decl:
		printDecl(n, &s, 0)
	case Stmt:
		printStmt(n, &s, 0)
	case Expr:
		printExpr(n, &s)
	case Type:
		printType(n, &s)
	default:
		fmt.Fprintf(&s, "<%T>", n)
	}
	return s.String()
}

func printModule(m *Module, s *strings.Builder) {
	for _, imp := range m.Imports {
		printImport(imp, s)
		s.WriteByte('\n')
	}
	for i, d := range m.Decls {
		if i > 0 {
			s.WriteByte('\n')
		}
		printDecl(d, s, 0)
		s.WriteByte('\n')
	}
}

func printImport(imp *ImportDecl, s *strings.Builder) {
	fmt.Fprintf(s, "import %q", imp.Path)
	if imp.Wildcard {
		s.WriteString(" { * }")
		return
	}
	if len(imp.Names) > 0 {
		s.WriteString(" { ")
		s.WriteString(strings.Join(imp.Names, ", "))
		s.WriteString(" }")
	}
}

func printDecl(d Decl, s *strings.Builder, indent int) {
	switch d := d.(type) {
	case *Function:
		printFunction(d, s, indent)
	case *Variable:
		printVariable(d, s, indent)
	case *Class:
		printClass(d, s, indent)
	case *Struct:
		printStruct(d, s, indent)
	case *Enum:
		printEnum(d, s, indent)
	}
}

func printFunction(f *Function, s *strings.Builder, indent int) {
	pad(s, indent)
	if f.Export {
		s.WriteString("export ")
	}
	if f.Foreign {
		s.WriteString("foreign ")
	}
	s.WriteString("fn ")
	s.WriteString(f.Name)
	printParams(f.Params, s)
	if f.Ret != nil {
		s.WriteString(" -> ")
		printType(f.Ret, s)
	}
	if f.Body == nil {
		return
	}
	s.WriteByte(' ')
	printBlock(f.Body, s, indent)
}

func printParams(ps []*Param, s *strings.Builder) {
	s.WriteByte('(')
	for i, p := range ps {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(p.Name)
		s.WriteString(": ")
		printType(p.Type, s)
	}
	s.WriteByte(')')
}

func printVariable(v *Variable, s *strings.Builder, indent int) {
	pad(s, indent)
	if v.Export {
		s.WriteString("export ")
	}
	if v.Foreign {
		s.WriteString("foreign ")
	}
	if v.Mutable {
		s.WriteString("var ")
	} else {
		s.WriteString("let ")
	}
	s.WriteString(v.Name)
	if v.Type != nil {
		s.WriteString(": ")
		printType(v.Type, s)
	}
	if v.Init != nil {
		s.WriteString(" = ")
		printExpr(v.Init, s)
	}
	s.WriteByte(';')
}

func printClass(c *Class, s *strings.Builder, indent int) {
	pad(s, indent)
	s.WriteString("class ")
	s.WriteString(c.Name)
	if len(c.TypeParams) > 0 {
		s.WriteByte('<')
		s.WriteString(strings.Join(c.TypeParams, ", "))
		s.WriteByte('>')
	}
	if c.Base != "" {
		s.WriteString(": ")
		s.WriteString(c.Base)
	}
	s.WriteString(" {\n")
	for _, m := range c.Members {
		printClassMember(m, s, indent+1)
		s.WriteByte('\n')
	}
	pad(s, indent)
	s.WriteByte('}')
}

func printClassMember(m ClassMember, s *strings.Builder, indent int) {
	switch m := m.(type) {
	case *Field:
		pad(s, indent)
		if m.Visibility == Public {
			s.WriteString("pub ")
		}
		s.WriteString("let ")
		s.WriteString(m.Name)
		s.WriteString(": ")
		printType(m.Type, s)
		if m.Init != nil {
			s.WriteString(" = ")
			printExpr(m.Init, s)
		}
		s.WriteByte(';')
	case *Method:
		pad(s, indent)
		if m.Visibility == Public {
			s.WriteString("pub ")
		}
		if m.Static {
			s.WriteString("static ")
		}
		if m.Virtual {
			s.WriteString("virtual ")
		}
		if m.Override {
			s.WriteString("override ")
		}
		s.WriteString("fn ")
		s.WriteString(m.Name)
		printParams(m.Params, s)
		if m.Ret != nil {
			s.WriteString(" -> ")
			printType(m.Ret, s)
		}
		s.WriteByte(' ')
		printBlock(m.Body, s, indent)
	}
}

func printStruct(st *Struct, s *strings.Builder, indent int) {
	pad(s, indent)
	if st.Foreign {
		s.WriteString("foreign ")
	}
	s.WriteString("struct ")
	s.WriteString(st.Name)
	s.WriteString(" { ")
	for i, f := range st.Fields {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(f.Name)
		s.WriteString(": ")
		printType(f.Type, s)
	}
	s.WriteString(" }")
}

func printEnum(e *Enum, s *strings.Builder, indent int) {
	pad(s, indent)
	if e.Foreign {
		s.WriteString("foreign ")
	}
	s.WriteString("enum ")
	s.WriteString(e.Name)
	s.WriteString(" { ")
	s.WriteString(strings.Join(e.Variants, ", "))
	s.WriteString(" }")
}

func printBlock(b *Block, s *strings.Builder, indent int) {
	s.WriteString("{\n")
	for _, st := range b.Stmts {
		printStmt(st, s, indent+1)
		s.WriteByte('\n')
	}
	pad(s, indent)
	s.WriteByte('}')
}

func printStmt(st Stmt, s *strings.Builder, indent int) {
	switch st := st.(type) {
	case *ExprStmt:
		pad(s, indent)
		printExpr(st.X, s)
		s.WriteByte(';')
	case *Block:
		pad(s, indent)
		printBlock(st, s, indent)
	case *If:
		pad(s, indent)
		s.WriteString("if ")
		printExpr(st.Cond, s)
		s.WriteByte(' ')
		printBlock(st.Then, s, indent)
		if st.Else != nil {
			s.WriteString(" else ")
			switch e := st.Else.(type) {
			case *If:
				printStmt(e, s, 0)
			case *Block:
				printBlock(e, s, indent)
			}
		}
	case *While:
		pad(s, indent)
		s.WriteString("while ")
		printExpr(st.Cond, s)
		s.WriteByte(' ')
		printBlock(st.Body, s, indent)
	case *ForIn:
		pad(s, indent)
		s.WriteString("for ")
		s.WriteString(st.Name)
		s.WriteString(" in ")
		printExpr(st.Iterable, s)
		s.WriteByte(' ')
		printBlock(st.Body, s, indent)
	case *Return:
		pad(s, indent)
		s.WriteString("return")
		if st.Value != nil {
			s.WriteByte(' ')
			printExpr(st.Value, s)
		}
		s.WriteByte(';')
	case *DeclStmt:
		printDecl(st.Decl, s, indent)
	}
}

var binOpText = map[BinOp]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%", Pow: "**",
	BitAnd: "&", BitOr: "|", BitXor: "^", Shl: "<<", Shr: ">>",
	LogAnd: "&&", LogOr: "||",
	CmpEq: "==", CmpNe: "!=", CmpLt: "<", CmpLe: "<=", CmpGt: ">", CmpGe: ">=",
}

var assignOpText = map[AssignOp]string{
	AssignSet: "=", AssignAdd: "+=", AssignSub: "-=", AssignMul: "*=",
	AssignDiv: "/=", AssignMod: "%=",
}

func printExpr(e Expr, s *strings.Builder) {
	switch e := e.(type) {
	case *Literal:
		printLiteral(e, s)
	case *Ident:
		s.WriteString(e.Name)
	case *Binary:
		s.WriteByte('(')
		printExpr(e.X, s)
		s.WriteByte(' ')
		s.WriteString(binOpText[e.Op])
		s.WriteByte(' ')
		printExpr(e.Y, s)
		s.WriteByte(')')
	case *Unary:
		if e.Op == Neg {
			s.WriteByte('-')
			if x, ok := e.X.(*Unary); ok && x.Op == Neg {
				s.WriteByte(' ') // "--" would lex as a decrement
			}
		} else {
			s.WriteByte('!')
		}
		printExpr(e.X, s)
	case *Postfix:
		printExpr(e.X, s)
		if e.Op == Inc {
			s.WriteString("++")
		} else {
			s.WriteString("--")
		}
	case *Call:
		printExpr(e.Fn, s)
		s.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				s.WriteString(", ")
			}
			printExpr(a, s)
		}
		s.WriteByte(')')
	case *Member:
		printExpr(e.X, s)
		s.WriteByte('.')
		s.WriteString(e.Name)
	case *Index:
		printExpr(e.X, s)
		s.WriteByte('[')
		printExpr(e.Idx, s)
		s.WriteByte(']')
	case *Assign:
		printExpr(e.Lhs, s)
		s.WriteByte(' ')
		s.WriteString(assignOpText[e.Op])
		s.WriteByte(' ')
		printExpr(e.Rhs, s)
	case *CheckedCast:
		s.WriteString("cast<")
		printType(e.Target, s)
		s.WriteString(">(")
		printExpr(e.X, s)
		s.WriteByte(')')
	case *UncheckedCast:
		s.WriteString("try_cast<")
		printType(e.Target, s)
		s.WriteString(">(")
		printExpr(e.X, s)
		s.WriteByte(')')
	case *AsCast:
		// Parenthesized: `as` binds looser than every binary operator.
		s.WriteByte('(')
		printExpr(e.X, s)
		s.WriteString(" as ")
		printType(e.Target, s)
		s.WriteByte(')')
	}
}

func printLiteral(l *Literal, s *strings.Builder) {
	switch l.Kind {
	case IntLiteral:
		if l.Unsigned {
			s.WriteString(strconv.FormatUint(l.UintVal, 10))
		} else {
			s.WriteString(strconv.FormatInt(l.IntVal, 10))
		}
		// The suffix the lexer defaults these digits to is left off.
		fitsI32 := !l.Unsigned && l.IntVal >= -1<<31 && l.IntVal <= 1<<31-1
		if !(l.Suffix == "i32" && fitsI32) && !(l.Suffix == "i64" && !l.Unsigned && !fitsI32) {
			s.WriteString(l.Suffix)
		}
	case FloatLiteral:
		// The lexer reads no exponent and needs a '.' to see a float.
		txt := strconv.FormatFloat(l.FloatVal, 'f', -1, 64)
		if !strings.Contains(txt, ".") {
			txt += ".0"
		}
		s.WriteString(txt)
		if l.Suffix != "f64" {
			s.WriteString(l.Suffix)
		}
	case StringLiteral:
		s.WriteString(strconv.Quote(l.StringVal))
	case BoolLiteral:
		if l.BoolVal {
			s.WriteString("true")
		} else {
			s.WriteString("false")
		}
	case NullLiteral:
		s.WriteString("null")
	}
}

func printType(t Type, s *strings.Builder) {
	switch t := t.(type) {
	case *PrimitiveType:
		s.WriteString(t.Name)
	case *ConstType:
		s.WriteString("const ")
		printType(t.Base, s)
	case *ArrayType:
		printType(t.Elem, s)
		fmt.Fprintf(s, "[%d]", t.Size)
	case *PointerType:
		s.WriteString(t.Kind.String())
		s.WriteByte(' ')
		printType(t.Pointee, s)
	case *GenericType:
		s.WriteString(t.Name)
		if len(t.Args) > 0 {
			s.WriteByte('<')
			for i, a := range t.Args {
				if i > 0 {
					s.WriteString(", ")
				}
				printType(a, s)
			}
			s.WriteByte('>')
		}
	}
}

func pad(s *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		s.WriteString("  ")
	}
}
