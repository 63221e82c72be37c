package ast

import "github.com/pangea-lang/pangea/loc"

// A Type is a type expression: primitive, const-wrapped, array,
// pointer, or generic.
type Type interface {
	Node
	typeNode()
}

// A PrimitiveType names one of the fixed-width integer/float
// primitives, bool, string, void, self, raw_va_list, or a
// user-defined identifier — the grammar does not distinguish a
// built-in name from a user type name at parse time; that
// distinction is resolved during semantic analysis.
type PrimitiveType struct {
	Range loc.Range
	Name  string
}

func (n *PrimitiveType) GetRange() loc.Range { return n.Range }
func (*PrimitiveType) typeNode()             {}

// A ConstType wraps a base type to mark it const. It is a distinct
// node (not a bool flag on every Type) so constness composes with
// every other type constructor the same way pointer kinds do.
type ConstType struct {
	Range loc.Range
	Base  Type
}

func (n *ConstType) GetRange() loc.Range { return n.Range }
func (*ConstType) typeNode()             {}

// An ArrayType is `T[N]`: a compile-time-sized array of Elem.
type ArrayType struct {
	Range loc.Range
	Elem  Type
	Size  int64
}

func (n *ArrayType) GetRange() loc.Range { return n.Range }
func (*ArrayType) typeNode()             {}

// A PointerKind tags one of the four pointer flavors.
type PointerKind int

const (
	// Cptr is a raw, non-owning C-style pointer.
	Cptr PointerKind = iota
	// Unique is an exclusive-owner smart pointer.
	Unique
	// Shared is a reference-counted shared-owner smart pointer.
	Shared
	// Weak is a non-owning back-reference into a Shared-owned value.
	Weak
)

func (k PointerKind) String() string {
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
		return "unknown"
	}
}

// A PointerType is one of the four pointer kinds over a pointee type.
// Pointer-kind nesting is permitted (e.g. `shared unique weak T`,
// `cptr cptr T`) with left-to-right outer-to-inner ordering, so
// Pointee may itself be a *PointerType.
type PointerType struct {
	Range   loc.Range
	Kind    PointerKind
	Pointee Type
}

func (n *PointerType) GetRange() loc.Range { return n.Range }
func (*PointerType) typeNode()             {}

// A GenericType is a name applied to an ordered list of type
// arguments, e.g. `List<T>`. Generics parse but are never
// instantiated (a Non-goal); semantic analysis treats a GenericType
// as the named type, ignoring Args.
type GenericType struct {
	Range loc.Range
	Name  string
	Args  []Type
}

func (n *GenericType) GetRange() loc.Range { return n.Range }
func (*GenericType) typeNode()             {}
