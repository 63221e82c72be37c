package sema

import "fmt"

// A TypeKind tags one of the closed set of semantic type variants.
type TypeKind int

const (
	Primitive TypeKind = iota
	ArrayT
	PointerT
	FunctionT
	VoidT
	ErrorT
)

// PointerKind mirrors ast.PointerKind without importing package ast,
// so sema stays the owner of its own closed type system.
type PointerKind int

const (
	Cptr PointerKind = iota
	Unique
	Shared
	Weak
)

// A Type is a synthesized semantic type: a closed variant (Primitive,
// Array, Pointer, Function, Void, Error) plus an is-const bit that
// rides on every variant uniformly.
type Type struct {
	Kind  TypeKind
	Const bool

	// Primitive
	Name string

	// Array
	Elem *Type
	Size int64

	// Pointer
	PtrKind PointerKind
	Pointee *Type

	// Function
	Params []*Type
	Ret    *Type
}

// ErrorType is the sentinel "something went wrong already" type: it is
// reported as incompatible with everything (including itself) so a
// single failure doesn't cascade into a flood of secondary ones, but
// callers should still treat an expression typed Error as "do not
// diagnose this expression further."
var ErrorType = &Type{Kind: ErrorT}

var VoidType = &Type{Kind: VoidT}

func Prim(name string) *Type { return &Type{Kind: Primitive, Name: name} }

func Ptr(kind PointerKind, pointee *Type) *Type {
	return &Type{Kind: PointerT, PtrKind: kind, Pointee: pointee}
}

func Array(elem *Type, size int64) *Type {
	return &Type{Kind: ArrayT, Elem: elem, Size: size}
}

func Func(params []*Type, ret *Type) *Type {
	return &Type{Kind: FunctionT, Params: params, Ret: ret}
}

func Const(t *Type) *Type {
	c := *t
	c.Const = true
	return &c
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	prefix := ""
	if t.Const {
		prefix = "const "
	}
	switch t.Kind {
	case Primitive:
		return prefix + t.Name
	case VoidT:
		return prefix + "void"
	case ErrorT:
		return "<error>"
	case ArrayT:
		return fmt.Sprintf("%s%s[%d]", prefix, t.Elem, t.Size)
	case PointerT:
		return fmt.Sprintf("%s%s %s", prefix, ptrKindName(t.PtrKind), t.Pointee)
	case FunctionT:
		return fmt.Sprintf("%sfn(%d params) -> %s", prefix, len(t.Params), t.Ret)
	default:
		return "<unknown type>"
	}
}

func ptrKindName(k PointerKind) string {
	switch k {
	case Cptr:
		return "cptr"
	case Unique:
		return "unique"
	case Shared:
		return "shared"
	case Weak:
		return "weak"
	default:
		return "cptr"
	}
}

// numericRank orders the numeric primitives for promotion purposes;
// wider wins, and any floating operand pulls the result into
// floating. Non-numeric names rank -1.
var numericRank = map[string]int{
	"i8": 0, "u8": 0,
	"i16": 1, "u16": 1,
	"i32": 2, "u32": 2,
	"i64": 3, "u64": 3,
	"f32": 4,
	"f64": 5,
}

// IsNumeric reports whether t is one of the fixed-width integer or
// floating-point primitives.
func (t *Type) IsNumeric() bool {
	if t == nil || t.Kind != Primitive {
		return false
	}
	_, ok := numericRank[t.Name]
	return ok
}

func (t *Type) IsFloat() bool {
	return t != nil && t.Kind == Primitive && (t.Name == "f32" || t.Name == "f64")
}

func (t *Type) IsBool() bool { return t != nil && t.Kind == Primitive && t.Name == "bool" }

// IsError reports whether t is the Error sentinel.
func (t *Type) IsError() bool { return t != nil && t.Kind == ErrorT }

func (t *Type) IsVoid() bool { return t != nil && t.Kind == VoidT }

// CommonNumeric returns the common numeric type of a and b per the
// rank ordering i8/u8 < i16/u16 < i32/u32 < i64/u64 < f32 < f64 — the
// wider wins, and any floating operand pulls the result into floating.
// Both a and b must already satisfy IsNumeric.
func CommonNumeric(a, b *Type) *Type {
	if numericRank[a.Name] >= numericRank[b.Name] {
		return a
	}
	return b
}

// Equal reports structural equality, ignoring constness — constness is
// compatibility metadata, not part of a type's identity for the
// purposes of matching parameter/return/array-element types.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Primitive:
		return a.Name == b.Name
	case ArrayT:
		return a.Size == b.Size && Equal(a.Elem, b.Elem)
	case PointerT:
		return a.PtrKind == b.PtrKind && Equal(a.Pointee, b.Pointee)
	case FunctionT:
		if len(a.Params) != len(b.Params) || !Equal(a.Ret, b.Ret) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	default:
		return true // VoidT, ErrorT: singleton-like, kind match is enough
	}
}

// castable is the set of primitive names cast<T>/try_cast<T>/as may
// convert between, per §4.5.
var castable = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f32": true, "f64": true, "bool": true, "string": true,
}

// Castable reports whether t is in the fixed castable-type set.
func (t *Type) Castable() bool {
	return t != nil && t.Kind == Primitive && castable[t.Name]
}
