package parser

import (
	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/loc"
	"github.com/pangea-lang/pangea/token"
)

// parseType parses a type expression: an optional leading `const`,
// optional left-to-right nested pointer-kind keywords, a base name
// (possibly generic), and a trailing `[N]` array suffix.
//
//	Type = [ "const" ] { PointerKind } BaseType [ "[" IntLit "]" ] .
//
// `const` is not a reserved keyword; it is recognized here only as an
// identifier spelled "const" in type position, matching the rest of
// the primitive type names (i32, bool, self, ...), which the parser
// also treats as plain identifiers.
//
// The array suffix applies to the whole type: `const i32[4]` is an
// array of four `const i32`, and `cptr u8[4]` an array of four `cptr u8`.
func (p *Parser) parseType() ast.Type {
	start := p.cur().Range
	return p.parseArraySuffix(p.parseUnsuffixedType(), start)
}

// parseUnsuffixedType parses a type up to, not including, its array
// suffix.
func (p *Parser) parseUnsuffixedType() ast.Type {
	start := p.cur().Range
	if p.check(token.Ident) && p.cur().Lexeme == "const" {
		p.advance()
		return &ast.ConstType{Range: p.spanFrom(start), Base: p.parseUnsuffixedType()}
	}
	if token.PointerKinds[p.curKind()] {
		kind := p.pointerKindOf(p.curKind())
		p.advance()
		pointee := p.parseUnsuffixedType()
		return &ast.PointerType{Range: p.spanFrom(start), Kind: kind, Pointee: pointee}
	}
	return p.parseBaseType(start)
}

func (p *Parser) pointerKindOf(k token.Kind) ast.PointerKind {
	switch k {
	case token.Cptr:
		return ast.Cptr
	case token.Unique:
		return ast.Unique
	case token.Shared:
		return ast.Shared
	case token.Weak:
		return ast.Weak
	default:
		return ast.Cptr
	}
}

func (p *Parser) parseBaseType(start loc.Range) ast.Type {
	name := p.expect(token.Ident, "a type name")
	if !p.match(token.Lt) {
		return &ast.PrimitiveType{Range: p.spanFrom(start), Name: name.Lexeme}
	}
	var args []ast.Type
	if !p.check(token.Gt) {
		for {
			args = append(args, p.parseType())
			if !p.match(token.Comma) {
				break
			}
			p.skipNewlines()
		}
	}
	p.expect(token.Gt, "'>'")
	return &ast.GenericType{Range: p.spanFrom(start), Name: name.Lexeme, Args: args}
}

func (p *Parser) parseArraySuffix(base ast.Type, start loc.Range) ast.Type {
	for p.match(token.LBracket) {
		sizeTok := p.expect(token.IntLit, "an array size")
		size := sizeTok.Literal.Int
		if !sizeTok.Literal.Signed {
			size = int64(sizeTok.Literal.Uint)
		}
		p.expect(token.RBracket, "']'")
		base = &ast.ArrayType{Range: p.spanFrom(start), Elem: base, Size: size}
	}
	return base
}
