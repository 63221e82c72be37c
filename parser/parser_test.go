package parser_test

import (
	"strings"
	"testing"

	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/lexer"
	"github.com/pangea-lang/pangea/loc"
	"github.com/pangea-lang/pangea/parser"
)

func parseModule(t *testing.T, src string) (*ast.Module, *loc.Bag) {
	t.Helper()
	files := &loc.Files{}
	r := files.Add("test.pang", src)
	bag := loc.NewBag(files)
	toks := lexer.New(src, r[0], bag).Lex()
	mod := parser.New(toks, bag).ParseModule("test", "test.pang")
	return mod, bag
}

func TestParseHelloWorld(t *testing.T) {
	src := `import "io"

fn main() {
  print("hello, world")
}
`
	mod, bag := parseModule(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	if len(mod.Imports) != 1 || mod.Imports[0].Path != "io" || !mod.Imports[0].Wildcard {
		t.Fatalf("import not parsed as wildcard: %+v", mod.Imports)
	}
	if len(mod.Decls) != 1 {
		t.Fatalf("want 1 decl, got %d", len(mod.Decls))
	}
	fn, ok := mod.Decls[0].(*ast.Function)
	if !ok {
		t.Fatalf("want *ast.Function, got %T", mod.Decls[0])
	}
	if fn.Name != "main" || fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestParseBoolAndNullLiterals(t *testing.T) {
	mod, bag := parseModule(t, `fn f() -> bool {
  let a = true;
  let b = false;
  let c = null;
  return a;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	fn := mod.Decls[0].(*ast.Function)
	if len(fn.Body.Stmts) != 4 {
		t.Fatalf("want 4 statements, got %d: %+v", len(fn.Body.Stmts), fn.Body.Stmts)
	}

	litOf := func(i int) *ast.Literal {
		ds, ok := fn.Body.Stmts[i].(*ast.DeclStmt)
		if !ok {
			t.Fatalf("statement %d is %T, want *ast.DeclStmt", i, fn.Body.Stmts[i])
		}
		v, ok := ds.Decl.(*ast.Variable)
		if !ok {
			t.Fatalf("statement %d decl is %T, want *ast.Variable", i, ds.Decl)
		}
		lit, ok := v.Init.(*ast.Literal)
		if !ok {
			t.Fatalf("statement %d initializer is %T, want *ast.Literal", i, v.Init)
		}
		return lit
	}

	litA := litOf(0)
	if litA.Kind != ast.BoolLiteral || litA.BoolVal != true {
		t.Fatalf("`true` parsed as %+v, want BoolLiteral{BoolVal: true}", litA)
	}
	litB := litOf(1)
	if litB.Kind != ast.BoolLiteral || litB.BoolVal != false {
		t.Fatalf("`false` parsed as %+v, want BoolLiteral{BoolVal: false}", litB)
	}
	litC := litOf(2)
	if litC.Kind != ast.NullLiteral {
		t.Fatalf("`null` parsed as %+v, want NullLiteral", litC)
	}
}

func TestParseExplicitImport(t *testing.T) {
	mod, bag := parseModule(t, `import "collections" { List, Map }
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	imp := mod.Imports[0]
	if imp.Wildcard {
		t.Fatal("expected a non-wildcard import")
	}
	if strings.Join(imp.Names, ",") != "List,Map" {
		t.Fatalf("unexpected names: %v", imp.Names)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	mod, bag := parseModule(t, `let x = 1 + 2 * 3 - 4 / 2;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	v := mod.Decls[0].(*ast.Variable)
	got := ast.Print(v.Init)
	want := "((1 + (2 * 3)) - (4 / 2))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParsePowerRightAssociative(t *testing.T) {
	mod, bag := parseModule(t, `let x = 2 ** 3 ** 2;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	v := mod.Decls[0].(*ast.Variable)
	got := ast.Print(v.Init)
	want := "(2 ** (3 ** 2))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	mod, bag := parseModule(t, `fn f() {
  var a: i32 = 0;
  var b: i32 = 0;
  a = b = 3;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	fn := mod.Decls[0].(*ast.Function)
	last := fn.Body.Stmts[2].(*ast.ExprStmt)
	assign, ok := last.X.(*ast.Assign)
	if !ok {
		t.Fatalf("want *ast.Assign, got %T", last.X)
	}
	if _, ok := assign.Rhs.(*ast.Assign); !ok {
		t.Fatalf("want rhs to be a nested assignment, got %T", assign.Rhs)
	}
}

func TestParseAsCastLeftAssociative(t *testing.T) {
	mod, bag := parseModule(t, `let x = y as i32 as f64;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	v := mod.Decls[0].(*ast.Variable)
	outer, ok := v.Init.(*ast.AsCast)
	if !ok {
		t.Fatalf("want outer *ast.AsCast, got %T", v.Init)
	}
	if _, ok := outer.X.(*ast.AsCast); !ok {
		t.Fatalf("want inner to be *ast.AsCast, got %T", outer.X)
	}
}

func TestParseCheckedAndUncheckedCast(t *testing.T) {
	mod, bag := parseModule(t, `let a = cast<i32>(x);
let b = try_cast<f64>(y);
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	if _, ok := mod.Decls[0].(*ast.Variable).Init.(*ast.CheckedCast); !ok {
		t.Fatalf("want *ast.CheckedCast, got %T", mod.Decls[0].(*ast.Variable).Init)
	}
	if _, ok := mod.Decls[1].(*ast.Variable).Init.(*ast.UncheckedCast); !ok {
		t.Fatalf("want *ast.UncheckedCast, got %T", mod.Decls[1].(*ast.Variable).Init)
	}
}

func TestParsePointerTypeNesting(t *testing.T) {
	mod, bag := parseModule(t, `foreign fn f(p: shared unique weak i32);
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	fn := mod.Decls[0].(*ast.Function)
	p0 := fn.Params[0].Type.(*ast.PointerType)
	if p0.Kind != ast.Shared {
		t.Fatalf("outer kind = %v, want Shared", p0.Kind)
	}
	p1 := p0.Pointee.(*ast.PointerType)
	if p1.Kind != ast.Unique {
		t.Fatalf("middle kind = %v, want Unique", p1.Kind)
	}
	p2 := p1.Pointee.(*ast.PointerType)
	if p2.Kind != ast.Weak {
		t.Fatalf("inner kind = %v, want Weak", p2.Kind)
	}
	if _, ok := p2.Pointee.(*ast.PrimitiveType); !ok {
		t.Fatalf("innermost pointee = %T, want *ast.PrimitiveType", p2.Pointee)
	}
}

func TestParseArrayAndConstType(t *testing.T) {
	mod, bag := parseModule(t, `foreign fn f(p: const i32[4]);
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	fn := mod.Decls[0].(*ast.Function)
	arr := fn.Params[0].Type.(*ast.ArrayType)
	if arr.Size != 4 {
		t.Fatalf("size = %d, want 4", arr.Size)
	}
	if _, ok := arr.Elem.(*ast.ConstType); !ok {
		t.Fatalf("elem = %T, want *ast.ConstType", arr.Elem)
	}
}

func TestParseClassWithGenericsAndBase(t *testing.T) {
	mod, bag := parseModule(t, `class Box<T>: Base {
  pub let value: T;
  fn Box() {
  }
  virtual fn get() -> T {
    return self.value;
  }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	c := mod.Decls[0].(*ast.Class)
	if c.Name != "Box" || c.Base != "Base" || strings.Join(c.TypeParams, ",") != "T" {
		t.Fatalf("unexpected class header: %+v", c)
	}
	if len(c.Members) != 3 {
		t.Fatalf("want 3 members, got %d", len(c.Members))
	}
	field := c.Members[0].(*ast.Field)
	if field.Visibility != ast.Public {
		t.Fatal("expected pub field")
	}
	ctor := c.Members[1].(*ast.Method)
	if ctor.Name != "Box" {
		t.Fatalf("expected constructor named Box, got %q", ctor.Name)
	}
	getter := c.Members[2].(*ast.Method)
	if !getter.Virtual {
		t.Fatal("expected virtual method")
	}
}

func TestParseStructAndEnum(t *testing.T) {
	mod, bag := parseModule(t, `foreign struct Point { x: f32, y: f32 }
enum Color { Red, Green, Blue }
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	st := mod.Decls[0].(*ast.Struct)
	if !st.Foreign || len(st.Fields) != 2 {
		t.Fatalf("unexpected struct: %+v", st)
	}
	en := mod.Decls[1].(*ast.Enum)
	if strings.Join(en.Variants, ",") != "Red,Green,Blue" {
		t.Fatalf("unexpected enum: %+v", en)
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	mod, bag := parseModule(t, `fn f() {
  if a {
  } else if b {
  } else {
  }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	fn := mod.Decls[0].(*ast.Function)
	top := fn.Body.Stmts[0].(*ast.If)
	mid, ok := top.Else.(*ast.If)
	if !ok {
		t.Fatalf("want else-if, got %T", top.Else)
	}
	if _, ok := mid.Else.(*ast.Block); !ok {
		t.Fatalf("want trailing else block, got %T", mid.Else)
	}
}

func TestParseForInAndWhile(t *testing.T) {
	mod, bag := parseModule(t, `fn f() {
  for x in xs {
    while x > 0 {
      x = x - 1;
    }
  }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	fn := mod.Decls[0].(*ast.Function)
	forIn := fn.Body.Stmts[0].(*ast.ForIn)
	if forIn.Name != "x" {
		t.Fatalf("unexpected loop var: %q", forIn.Name)
	}
	if _, ok := forIn.Body.Stmts[0].(*ast.While); !ok {
		t.Fatalf("want nested while, got %T", forIn.Body.Stmts[0])
	}
}

func TestParseMemberCallIndexChain(t *testing.T) {
	mod, bag := parseModule(t, `let x = a.b(1, 2)[0].c;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	v := mod.Decls[0].(*ast.Variable)
	outer := v.Init.(*ast.Member)
	if outer.Name != "c" {
		t.Fatalf("outer member name = %q", outer.Name)
	}
	idx := outer.X.(*ast.Index)
	call := idx.X.(*ast.Call)
	if len(call.Args) != 2 {
		t.Fatalf("want 2 call args, got %d", len(call.Args))
	}
	if _, ok := call.Fn.(*ast.Member); !ok {
		t.Fatalf("want call target to be a.b, got %T", call.Fn)
	}
}

func TestParseMissingTerminatorRecovers(t *testing.T) {
	// Two statements crammed onto one line with no ';' or newline
	// between them: the terminator check fails after `let a = 1`,
	// diagnoses it, and statement-level sync lands on the next `let`.
	mod, bag := parseModule(t, `fn f() {
  let a = 1 let b = 2;
}
`)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for the missing terminator")
	}
	fn := mod.Decls[0].(*ast.Function)
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("want 2 statements recovered, got %d", len(fn.Body.Stmts))
	}
}

func TestParseExtraSemicolonsDiagnosedAndConsumed(t *testing.T) {
	mod, bag := parseModule(t, `let a = 1;;;
`)
	if bag.ErrorCount() != 2 {
		t.Fatalf("want 2 diagnostics for the extra ';'s, got %d", bag.ErrorCount())
	}
	if len(mod.Decls) != 1 {
		t.Fatalf("want 1 decl, got %d", len(mod.Decls))
	}
}

func TestParseBadDeclarationSynchronizes(t *testing.T) {
	mod, bag := parseModule(t, `%%% garbage
fn ok() {
}
`)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for the garbage declaration")
	}
	if len(mod.Decls) != 1 {
		t.Fatalf("want the well-formed decl recovered, got %d decls", len(mod.Decls))
	}
	if mod.Decls[0].(*ast.Function).Name != "ok" {
		t.Fatalf("unexpected surviving decl: %+v", mod.Decls[0])
	}
}

func TestParseForeignConst(t *testing.T) {
	mod, bag := parseModule(t, `foreign const PI: f64;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Diagnostics())
	}
	v := mod.Decls[0].(*ast.Variable)
	if !v.Foreign || v.Init != nil || v.Name != "PI" {
		t.Fatalf("unexpected foreign const: %+v", v)
	}
}
