package backend

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/sema"
)

func TestSymbolTablePushPopScoping(t *testing.T) {
	root := NewSymbolTable()
	root.Define("x", &Binding{Class: Global, Type: sema.Prim("i32")})

	child := root.Push()
	child.Define("y", &Binding{Class: Local, Type: sema.Prim("bool")})

	if b := child.Lookup("x"); b == nil {
		t.Fatalf("child scope lost the outer binding for x")
	}
	if b := root.Lookup("y"); b != nil {
		t.Fatalf("outer scope sees inner binding for y: %+v", b)
	}
	if back := child.Pop(); back != root {
		t.Fatalf("Pop() did not return the exact parent scope")
	}
}

func TestSymbolTableDefineRejectsDuplicate(t *testing.T) {
	s := NewSymbolTable()
	if !s.Define("x", &Binding{Class: Local}) {
		t.Fatalf("first Define of x should succeed")
	}
	if s.Define("x", &Binding{Class: Local}) {
		t.Fatalf("second Define of x in the same scope should fail")
	}
}

func TestValueCacheSetGet(t *testing.T) {
	c := NewValueCache()
	e := &ast.Ident{Name: "x"}
	if _, ok := c.Get(e); ok {
		t.Fatalf("empty cache returned a value for unset expr")
	}
	c.Set(e, 42)
	v, ok := c.Get(e)
	if !ok || v != 42 {
		t.Fatalf("Get() = %v, %v, want 42, true", v, ok)
	}
}

func TestValueCacheSetPanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on duplicate Set")
		}
	}()
	c := NewValueCache()
	e := &ast.Ident{Name: "x"}
	c.Set(e, 1)
	c.Set(e, 2)
}

func TestTextDumperDumpModule(t *testing.T) {
	syms := map[string]*sema.Symbol{
		"count": {Name: "count", Type: sema.Prim("i32"), Mutable: false},
		"add":   {Name: "add", Type: sema.Func([]*sema.Type{sema.Prim("i32")}, sema.Prim("i32")), Mutable: true},
	}
	var buf bytes.Buffer
	d := &TextDumper{Types: StringTypes{}}
	if err := d.DumpModule(&buf, "m", syms); err != nil {
		t.Fatalf("DumpModule: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "; module m\n") {
		t.Errorf("missing module header: %q", out)
	}
	if !strings.Contains(out, "constant count") {
		t.Errorf("expected count to dump as constant: %q", out)
	}
	if !strings.Contains(out, "global add") {
		t.Errorf("expected add to dump as global: %q", out)
	}
}

func TestStringTypesRejectsErrorType(t *testing.T) {
	if _, err := (StringTypes{}).BackendTypeOf(sema.ErrorType); err == nil {
		t.Fatalf("expected an error converting sema.ErrorType")
	}
}
