package parser

import (
	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/token"
)

// parseExpr parses a full expression at assignment precedence, the
// widest grammar rule. Precedence climbs, from loosest to tightest:
//
//	assignment (right)
//	as-cast (left)
//	logical-or
//	logical-and
//	equality
//	relational
//	shift
//	additive
//	multiplicative / modulo
//	power (right)
//	unary prefix (- !)
//	call / member / index / postfix
//	primary
func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Assign:    ast.AssignSet,
	token.PlusEq:    ast.AssignAdd,
	token.MinusEq:   ast.AssignSub,
	token.StarEq:    ast.AssignMul,
	token.SlashEq:   ast.AssignDiv,
	token.PercentEq: ast.AssignMod,
}

func (p *Parser) parseAssignment() ast.Expr {
	start := p.cur().Range
	lhs := p.parseAsCast()
	if op, ok := assignOps[p.curKind()]; ok {
		p.advance()
		p.skipNewlines()
		rhs := p.parseAssignment()
		return &ast.Assign{Range: p.spanFrom(start), Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseAsCast() ast.Expr {
	start := p.cur().Range
	x := p.parseLogicalOr()
	for p.match(token.As) {
		p.skipNewlines()
		target := p.parseType()
		x = &ast.AsCast{Range: p.spanFrom(start), X: x, Target: target}
	}
	return x
}

func (p *Parser) parseLogicalOr() ast.Expr {
	start := p.cur().Range
	x := p.parseLogicalAnd()
	for p.match(token.PipePipe) {
		p.skipNewlines()
		x = &ast.Binary{Range: p.spanFrom(start), Op: ast.LogOr, X: x, Y: p.parseLogicalAnd()}
	}
	return x
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	start := p.cur().Range
	x := p.parseEquality()
	for p.match(token.AmpAmp) {
		p.skipNewlines()
		x = &ast.Binary{Range: p.spanFrom(start), Op: ast.LogAnd, X: x, Y: p.parseEquality()}
	}
	return x
}

var equalityOps = map[token.Kind]ast.BinOp{token.Eq: ast.CmpEq, token.Ne: ast.CmpNe}

func (p *Parser) parseEquality() ast.Expr {
	start := p.cur().Range
	x := p.parseRelational()
	for {
		op, ok := equalityOps[p.curKind()]
		if !ok {
			return x
		}
		p.advance()
		p.skipNewlines()
		x = &ast.Binary{Range: p.spanFrom(start), Op: op, X: x, Y: p.parseRelational()}
	}
}

var relOps = map[token.Kind]ast.BinOp{
	token.Lt: ast.CmpLt, token.Le: ast.CmpLe, token.Gt: ast.CmpGt, token.Ge: ast.CmpGe,
}

func (p *Parser) parseRelational() ast.Expr {
	start := p.cur().Range
	x := p.parseShift()
	for {
		op, ok := relOps[p.curKind()]
		if !ok {
			return x
		}
		p.advance()
		p.skipNewlines()
		x = &ast.Binary{Range: p.spanFrom(start), Op: op, X: x, Y: p.parseShift()}
	}
}

var shiftOps = map[token.Kind]ast.BinOp{token.Shl: ast.Shl, token.Shr: ast.Shr}

func (p *Parser) parseShift() ast.Expr {
	start := p.cur().Range
	x := p.parseAdditive()
	for {
		op, ok := shiftOps[p.curKind()]
		if !ok {
			return x
		}
		p.advance()
		p.skipNewlines()
		x = &ast.Binary{Range: p.spanFrom(start), Op: op, X: x, Y: p.parseAdditive()}
	}
}

var addOps = map[token.Kind]ast.BinOp{token.Plus: ast.Add, token.Minus: ast.Sub}

func (p *Parser) parseAdditive() ast.Expr {
	start := p.cur().Range
	x := p.parseMultiplicative()
	for {
		op, ok := addOps[p.curKind()]
		if !ok {
			return x
		}
		p.advance()
		p.skipNewlines()
		x = &ast.Binary{Range: p.spanFrom(start), Op: op, X: x, Y: p.parseMultiplicative()}
	}
}

var mulOps = map[token.Kind]ast.BinOp{token.Star: ast.Mul, token.Slash: ast.Div, token.Percent: ast.Mod}

func (p *Parser) parseMultiplicative() ast.Expr {
	start := p.cur().Range
	x := p.parsePower()
	for {
		op, ok := mulOps[p.curKind()]
		if !ok {
			return x
		}
		p.advance()
		p.skipNewlines()
		x = &ast.Binary{Range: p.spanFrom(start), Op: op, X: x, Y: p.parsePower()}
	}
}

// parsePower handles '**', right-associative. The resulting Pow node
// parses but is never type-checked or lowered (see ast.Pow).
func (p *Parser) parsePower() ast.Expr {
	start := p.cur().Range
	x := p.parseUnary()
	if p.match(token.StarStar) {
		p.skipNewlines()
		y := p.parsePower()
		return &ast.Binary{Range: p.spanFrom(start), Op: ast.Pow, X: x, Y: y}
	}
	return x
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.cur().Range
	switch {
	case p.match(token.Minus):
		return &ast.Unary{Range: p.spanFrom(start), Op: ast.Neg, X: p.parseUnary()}
	case p.match(token.Bang):
		return &ast.Unary{Range: p.spanFrom(start), Op: ast.Not, X: p.parseUnary()}
	default:
		return p.parsePostfixChain()
	}
}

func (p *Parser) parsePostfixChain() ast.Expr {
	start := p.cur().Range
	x := p.parsePrimary()
	for {
		switch {
		case p.match(token.LParen):
			var args []ast.Expr
			p.skipNewlines()
			if !p.check(token.RParen) {
				for {
					args = append(args, p.parseExpr())
					if !p.match(token.Comma) {
						break
					}
					p.skipNewlines()
				}
			}
			p.skipNewlines()
			p.expect(token.RParen, "')'")
			x = &ast.Call{Range: p.spanFrom(start), Fn: x, Args: args}
		case p.match(token.Dot):
			name := p.expect(token.Ident, "a member name")
			x = &ast.Member{Range: p.spanFrom(start), X: x, Name: name.Lexeme}
		case p.match(token.LBracket):
			p.skipNewlines()
			idx := p.parseExpr()
			p.skipNewlines()
			p.expect(token.RBracket, "']'")
			x = &ast.Index{Range: p.spanFrom(start), X: x, Idx: idx}
		case p.match(token.PlusPlus):
			x = &ast.Postfix{Range: p.spanFrom(start), Op: ast.Inc, X: x}
		case p.match(token.MinusMinus):
			x = &ast.Postfix{Range: p.spanFrom(start), Op: ast.Dec, X: x}
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.cur().Range
	t := p.cur()
	switch t.Kind {
	case token.IntLit:
		p.advance()
		return &ast.Literal{Range: start, Kind: ast.IntLiteral, IntVal: t.Literal.Int,
			UintVal: t.Literal.Uint, Unsigned: !t.Literal.Signed, Suffix: t.Literal.Suffix}
	case token.FloatLit:
		p.advance()
		return &ast.Literal{Range: start, Kind: ast.FloatLiteral, FloatVal: t.Literal.Float, Suffix: t.Literal.Suffix}
	case token.StringLit:
		p.advance()
		return &ast.Literal{Range: start, Kind: ast.StringLiteral, StringVal: t.Literal.Str}
	case token.BoolLit:
		p.advance()
		return &ast.Literal{Range: start, Kind: ast.BoolLiteral, BoolVal: t.Literal.Bool}
	case token.NullLit:
		p.advance()
		return &ast.Literal{Range: start, Kind: ast.NullLiteral}
	case token.SelfKw:
		p.advance()
		return &ast.Ident{Range: start, Name: "self"}
	case token.Ident:
		p.advance()
		return &ast.Ident{Range: start, Name: t.Lexeme}
	case token.Cast, token.TryCast:
		return p.parseCastExpr()
	case token.LParen:
		p.advance()
		p.skipNewlines()
		x := p.parseExpr()
		p.skipNewlines()
		p.expect(token.RParen, "')'")
		return x
	default:
		p.errorf("expected an expression, found %s", describe(t))
		p.advance()
		return &ast.Ident{Range: start, Name: "<error>"}
	}
}

// parseCastExpr parses `cast<T>(e)` or `try_cast<T>(e)`.
func (p *Parser) parseCastExpr() ast.Expr {
	start := p.cur().Range
	checked := p.curKind() == token.Cast
	p.advance()
	p.expect(token.Lt, "'<'")
	target := p.parseType()
	p.expect(token.Gt, "'>'")
	p.expect(token.LParen, "'('")
	p.skipNewlines()
	x := p.parseExpr()
	p.skipNewlines()
	p.expect(token.RParen, "')'")
	if checked {
		return &ast.CheckedCast{Range: p.spanFrom(start), Target: target, X: x}
	}
	return &ast.UncheckedCast{Range: p.spanFrom(start), Target: target, X: x}
}
