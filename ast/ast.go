// Package ast defines the Pangea abstract syntax tree: a closed set of
// node variants rooted at Program, immutable once the parser has built
// them. Every node owns its children exclusively; there are no cycles.
//
// Expression-level annotations computed later in the pipeline (the
// synthesized semantic type, a backend value) are never stored on
// these nodes. They live in side tables keyed by node identity, owned
// by the component that computes them (see package sema).
package ast

import "github.com/pangea-lang/pangea/loc"

// A Node is any AST node with a source range.
type Node interface {
	GetRange() loc.Range
}

// A Program is the unit the semantic analyzer and backend consume: an
// unordered dependency Module set plus a distinguished main Module.
type Program struct {
	Main *Module
	Deps []*Module
}

// AllModules returns Deps, in the loader's topological load order,
// followed by Main. This is the iteration order of both semantic
// analyzer passes, so every dependency is handled before the modules
// that import it.
func (p *Program) AllModules() []*Module {
	mods := make([]*Module, 0, len(p.Deps)+1)
	mods = append(mods, p.Deps...)
	mods = append(mods, p.Main)
	return mods
}

func (n *Module) GetRange() loc.Range { return loc.Range{} }

// A Module is a single compilation unit: a module name unique within
// its Program, the file it was parsed from, its imports, and its
// top-level declarations in source order.
type Module struct {
	Name    string
	Path    string
	Imports []*ImportDecl
	Decls   []Decl
}

// An ImportDecl names a dependency module and which of its exports are
// visible. Wildcard imports (the bare `import "path"` form, or the
// explicit `import "path" { * }` form) copy every exported symbol;
// otherwise Names lists the imported item names and must be non-empty.
type ImportDecl struct {
	Range    loc.Range
	Path     string
	Wildcard bool
	Names    []string
}

func (n *ImportDecl) GetRange() loc.Range { return n.Range }

// A Decl is a top-level declaration: Function, Variable, Class,
// Struct, or Enum.
type Decl interface {
	Node
	declNode()
}

// A Param is a name/type pair used for function parameters and struct
// fields.
type Param struct {
	Range loc.Range
	Name  string
	Type  Type
}

func (n *Param) GetRange() loc.Range { return n.Range }

// A Function is `fn name(params) [-> type] { body }`, or a foreign
// declaration with no body.
type Function struct {
	Range   loc.Range
	Name    string
	Params  []*Param
	Ret     Type
	Body    *Block // nil iff Foreign
	Foreign bool
	Export  bool
}

func (n *Function) GetRange() loc.Range { return n.Range }
func (*Function) declNode()             {}

// A Variable is a top-level `let`/`var` declaration, or a `foreign
// const` declaration (Foreign true, Init always nil).
type Variable struct {
	Range   loc.Range
	Name    string
	Type    Type // nil if inferred from Init
	Init    Expr // nil if uninitialized or foreign
	Mutable bool
	Foreign bool
	Export  bool
}

func (n *Variable) GetRange() loc.Range { return n.Range }
func (*Variable) declNode()             {}

// A Class declares generic parameters, an optional single base class,
// and an ordered list of field/method members. Constructors are
// Methods whose Name equals the enclosing class's Name and whose
// Ret is the self-type.
type Class struct {
	Range      loc.Range
	Name       string
	TypeParams []string
	Base       string // "" if none
	Members    []ClassMember
}

func (n *Class) GetRange() loc.Range { return n.Range }
func (*Class) declNode()             {}

// Visibility is a class member's access level.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// A ClassMember is a Field or a Method.
type ClassMember interface {
	Node
	classMemberNode()
}

// A Field is `let name: T [= init]` inside a class body.
type Field struct {
	Range      loc.Range
	Name       string
	Type       Type
	Init       Expr // nil if none
	Visibility Visibility
}

func (n *Field) GetRange() loc.Range { return n.Range }
func (*Field) classMemberNode()      {}

// A Method is a class method, or a constructor when Name equals the
// enclosing class's name.
type Method struct {
	Range      loc.Range
	Name       string
	Params     []*Param
	Ret        Type
	Body       *Block
	Visibility Visibility
	Static     bool
	Virtual    bool
	Override   bool
}

func (n *Method) GetRange() loc.Range { return n.Range }
func (*Method) classMemberNode()      {}

// A Struct is a plain aggregate of named, typed fields.
type Struct struct {
	Range   loc.Range
	Name    string
	Fields  []*Param
	Foreign bool
}

func (n *Struct) GetRange() loc.Range { return n.Range }
func (*Struct) declNode()             {}

// An Enum is a fixed, ordered set of variant names. Variants never
// carry associated data (enum-variant payloads are a Non-goal).
type Enum struct {
	Range    loc.Range
	Name     string
	Variants []string
	Foreign  bool
}

func (n *Enum) GetRange() loc.Range { return n.Range }
func (*Enum) declNode()             {}
