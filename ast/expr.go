package ast

import "github.com/pangea-lang/pangea/loc"

// An Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// A BinOp tags a binary operator.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Pow // ** — parses, never type-checks or lowers; see spec Non-goals.
	BitAnd
	BitOr
	BitXor
	Shl
	Shr
	LogAnd
	LogOr
	CmpEq
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// A UnOp tags a prefix unary operator.
type UnOp int

const (
	Neg UnOp = iota
	Not
)

// A PostfixOp tags a postfix operator.
type PostfixOp int

const (
	Inc PostfixOp = iota
	Dec
)

// LiteralKind tags the kind of value a Literal expression carries.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
	NullLiteral
)

// A Literal is a literal expression. Exactly the field matching Kind
// is meaningful.
type Literal struct {
	Range     loc.Range
	Kind      LiteralKind
	IntVal    int64
	UintVal   uint64
	Unsigned  bool
	FloatVal  float64
	StringVal string
	BoolVal   bool
	// Suffix is the literal's explicit or defaulted width suffix
	// (e.g. "i32", "f64"), empty for non-numeric literals.
	Suffix string
}

func (n *Literal) GetRange() loc.Range { return n.Range }
func (*Literal) exprNode()             {}

// An Ident is a bare identifier reference.
type Ident struct {
	Range loc.Range
	Name  string
}

func (n *Ident) GetRange() loc.Range { return n.Range }
func (*Ident) exprNode()             {}

// A Binary is a binary operator expression.
type Binary struct {
	Range loc.Range
	Op    BinOp
	X, Y  Expr
}

func (n *Binary) GetRange() loc.Range { return n.Range }
func (*Binary) exprNode()             {}

// A Unary is a prefix unary operator expression.
type Unary struct {
	Range loc.Range
	Op    UnOp
	X     Expr
}

func (n *Unary) GetRange() loc.Range { return n.Range }
func (*Unary) exprNode()             {}

// A Postfix is `x++` or `x--`.
type Postfix struct {
	Range loc.Range
	Op    PostfixOp
	X     Expr
}

func (n *Postfix) GetRange() loc.Range { return n.Range }
func (*Postfix) exprNode()             {}

// A Call is a function (or method) call: f(args...).
type Call struct {
	Range loc.Range
	Fn    Expr
	Args  []Expr
}

func (n *Call) GetRange() loc.Range { return n.Range }
func (*Call) exprNode()             {}

// A Member is `x.name`, a field or method access.
type Member struct {
	Range loc.Range
	X     Expr
	Name  string
}

func (n *Member) GetRange() loc.Range { return n.Range }
func (*Member) exprNode()             {}

// An Index is `x[i]`.
type Index struct {
	Range loc.Range
	X     Expr
	Idx   Expr
}

func (n *Index) GetRange() loc.Range { return n.Range }
func (*Index) exprNode()             {}

// AssignOp tags a simple or compound assignment operator.
type AssignOp int

const (
	AssignSet AssignOp = iota // =
	AssignAdd                 // +=
	AssignSub                 // -=
	AssignMul                 // *=
	AssignDiv                 // /=
	AssignMod                 // %=
)

// An Assign is a simple or compound assignment. Lhs must be an
// lvalue-shaped expression (Ident, Member, or Index); the parser
// accepts any Expr there and the semantic analyzer rejects the rest.
type Assign struct {
	Range loc.Range
	Op    AssignOp
	Lhs   Expr
	Rhs   Expr
}

func (n *Assign) GetRange() loc.Range { return n.Range }
func (*Assign) exprNode()             {}

// A CheckedCast is `cast<T>(e)`: diagnoses an incompatible source/
// target pairing.
type CheckedCast struct {
	Range  loc.Range
	Target Type
	X      Expr
}

func (n *CheckedCast) GetRange() loc.Range { return n.Range }
func (*CheckedCast) exprNode()             {}

// An UncheckedCast is `try_cast<T>(e)`: returns the source value
// unchanged (and its original type) if the cast is invalid.
type UncheckedCast struct {
	Range  loc.Range
	Target Type
	X      Expr
}

func (n *UncheckedCast) GetRange() loc.Range { return n.Range }
func (*UncheckedCast) exprNode()             {}

// An AsCast is the infix `e as T` form.
type AsCast struct {
	Range  loc.Range
	X      Expr
	Target Type
}

func (n *AsCast) GetRange() loc.Range { return n.Range }
func (*AsCast) exprNode()             {}
