package builtin

import "testing"

func TestDefaultRegistersPrint(t *testing.T) {
	reg := Default()
	fn, ok := reg.Funcs["print"]
	if !ok {
		t.Fatalf("Default() registry has no print function")
	}
	if len(fn.Params) != 1 {
		t.Fatalf("print has %d params, want 1", len(fn.Params))
	}
	p := fn.Params[0]
	if p.Kind != KindPointer || p.PtrKind != Cptr {
		t.Errorf("print param = %+v, want a Cptr pointer", p)
	}
	if p.Elem == nil || p.Elem.Name != "u8" {
		t.Errorf("print param elem = %+v, want u8", p.Elem)
	}
	if fn.Ret.Name != "void" {
		t.Errorf("print return = %+v, want void", fn.Ret)
	}
}

func TestEmptyRegistryHasNoFuncs(t *testing.T) {
	reg := Empty()
	if len(reg.Funcs) != 0 {
		t.Errorf("Empty() registry has %d funcs, want 0", len(reg.Funcs))
	}
}

func TestPtrOfNestedElem(t *testing.T) {
	spec := PtrOf(Unique, PtrOf(Shared, Prim("i32")))
	if spec.Kind != KindPointer || spec.PtrKind != Unique {
		t.Fatalf("outer spec = %+v, want a Unique pointer", spec)
	}
	inner := spec.Elem
	if inner == nil || inner.Kind != KindPointer || inner.PtrKind != Shared {
		t.Fatalf("inner spec = %+v, want a Shared pointer", inner)
	}
	if inner.Elem == nil || inner.Elem.Name != "i32" {
		t.Errorf("innermost spec = %+v, want i32", inner.Elem)
	}
}
