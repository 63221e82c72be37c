package parser

import (
	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/loc"
	"github.com/pangea-lang/pangea/token"
)

// parseDecl parses one top-level declaration. On a malformed
// declaration it reports an error, synchronizes to the next
// declaration-starting keyword, and returns nil so the caller skips
// it.
func (p *Parser) parseDecl() ast.Decl {
	start := p.cur().Range
	export := p.match(token.Export)
	foreign := p.match(token.Foreign)
	if !foreign {
		foreign = p.matchForeignAfter(export)
	}

	if foreign && p.check(token.Ident) && p.cur().Lexeme == "const" {
		return p.parseVariableDecl(foreign, export)
	}

	switch p.curKind() {
	case token.Fn:
		return p.parseFunction(foreign, export, start)
	case token.Let, token.Var:
		return p.parseVariableDecl(foreign, export)
	case token.Class:
		if foreign || export {
			p.warnf("'class' does not support 'foreign' or 'export'")
		}
		return p.parseClass(start)
	case token.Struct:
		return p.parseStruct(foreign, start)
	case token.Enum:
		return p.parseEnum(foreign, start)
	default:
		p.errorf("expected a declaration, found %s", describe(p.cur()))
		p.syncDecl()
		return nil
	}
}

// matchForeignAfter allows `foreign` after `export` (export foreign fn
// ...) in addition to the more common foreign-first ordering already
// consumed by the caller.
func (p *Parser) matchForeignAfter(exportSeen bool) bool {
	if exportSeen && p.check(token.Foreign) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseFunction(foreign, export bool, start loc.Range) *ast.Function {
	p.advance() // 'fn'
	name := p.expect(token.Ident, "a function name")
	params := p.parseParamList()
	var ret ast.Type
	if p.match(token.Arrow) {
		ret = p.parseType()
	} else {
		p.warnf("missing return type for '%s', defaulting to void", name.Lexeme)
		ret = &ast.PrimitiveType{Range: p.cur().Range, Name: "void"}
	}
	fn := &ast.Function{Name: name.Lexeme, Params: params, Ret: ret, Foreign: foreign, Export: export}
	if foreign {
		p.consumeTerminator()
	} else {
		fn.Body = p.parseBlock()
	}
	fn.Range = p.spanFrom(start)
	return fn
}

func (p *Parser) parseParamList() []*ast.Param {
	p.expect(token.LParen, "'('")
	p.skipNewlines()
	var params []*ast.Param
	for !p.check(token.RParen) && !p.atEnd() {
		pstart := p.cur().Range
		name := p.expect(token.Ident, "a parameter name")
		p.expect(token.Colon, "':'")
		typ := p.parseType()
		params = append(params, &ast.Param{Range: p.spanFrom(pstart), Name: name.Lexeme, Type: typ})
		if !p.match(token.Comma) {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	p.expect(token.RParen, "')'")
	return params
}

// parseVariableDecl parses a top-level or block-local `let`/`var`
// binding, or a `foreign const` declaration (no initializer, no
// mutability keyword besides the foreign/const pairing itself).
func (p *Parser) parseVariableDecl(foreign, export bool) *ast.Variable {
	start := p.cur().Range
	mutable := p.curKind() == token.Var
	if foreign && p.check(token.Ident) && p.cur().Lexeme == "const" {
		p.advance()
		name := p.expect(token.Ident, "a constant name")
		p.expect(token.Colon, "':'")
		typ := p.parseType()
		v := &ast.Variable{Range: p.spanFrom(start), Name: name.Lexeme, Type: typ, Foreign: true, Export: export}
		p.consumeTerminator()
		return v
	}
	p.advance() // 'let' or 'var'
	name := p.expect(token.Ident, "a variable name")
	v := &ast.Variable{Name: name.Lexeme, Mutable: mutable, Foreign: foreign, Export: export}
	if p.match(token.Colon) {
		v.Type = p.parseType()
	}
	if p.match(token.Assign) {
		v.Init = p.parseExpr()
	}
	v.Range = p.spanFrom(start)
	p.consumeTerminator()
	return v
}

func (p *Parser) parseClass(start loc.Range) *ast.Class {
	p.advance() // 'class'
	name := p.expect(token.Ident, "a class name")
	c := &ast.Class{Name: name.Lexeme}
	if p.match(token.Lt) {
		for {
			tp := p.expect(token.Ident, "a type parameter name")
			c.TypeParams = append(c.TypeParams, tp.Lexeme)
			if !p.match(token.Comma) {
				break
			}
			p.skipNewlines()
		}
		p.expect(token.Gt, "'>'")
	}
	if p.match(token.Colon) {
		base := p.expect(token.Ident, "a base class name")
		c.Base = base.Lexeme
	}
	p.expect(token.LBrace, "'{'")
	p.skipNewlines()
	for !p.check(token.RBrace) && !p.atEnd() {
		c.Members = append(c.Members, p.parseClassMember())
		p.skipNewlines()
	}
	p.expect(token.RBrace, "'}'")
	c.Range = p.spanFrom(start)
	return c
}

func (p *Parser) parseClassMember() ast.ClassMember {
	start := p.cur().Range
	vis := ast.Private
	if p.match(token.Pub) {
		vis = ast.Public
	}
	static := p.match(token.Static)
	virtual := p.match(token.Virtual)
	override := p.match(token.Override)
	switch p.curKind() {
	case token.Fn:
		p.advance()
		name := p.expect(token.Ident, "a method name")
		params := p.parseParamList()
		var ret ast.Type
		if p.match(token.Arrow) {
			ret = p.parseType()
		}
		body := p.parseBlock()
		return &ast.Method{Range: p.spanFrom(start), Name: name.Lexeme, Params: params, Ret: ret,
			Body: body, Visibility: vis, Static: static, Virtual: virtual, Override: override}
	case token.Let:
		p.advance()
		name := p.expect(token.Ident, "a field name")
		p.expect(token.Colon, "':'")
		typ := p.parseType()
		f := &ast.Field{Name: name.Lexeme, Type: typ, Visibility: vis}
		if p.match(token.Assign) {
			f.Init = p.parseExpr()
		}
		f.Range = p.spanFrom(start)
		p.consumeTerminator()
		return f
	default:
		p.errorf("expected a field or method, found %s", describe(p.cur()))
		p.advance()
		return &ast.Field{Range: p.spanFrom(start), Name: "<error>", Type: &ast.PrimitiveType{Name: "void"}}
	}
}

func (p *Parser) parseStruct(foreign bool, start loc.Range) *ast.Struct {
	p.advance() // 'struct'
	name := p.expect(token.Ident, "a struct name")
	s := &ast.Struct{Name: name.Lexeme, Foreign: foreign}
	p.expect(token.LBrace, "'{'")
	p.skipNewlines()
	for !p.check(token.RBrace) && !p.atEnd() {
		fstart := p.cur().Range
		fname := p.expect(token.Ident, "a field name")
		p.expect(token.Colon, "':'")
		typ := p.parseType()
		s.Fields = append(s.Fields, &ast.Param{Range: p.spanFrom(fstart), Name: fname.Lexeme, Type: typ})
		if !p.match(token.Comma) {
			p.skipNewlines()
			break
		}
		p.skipNewlines()
	}
	p.expect(token.RBrace, "'}'")
	s.Range = p.spanFrom(start)
	return s
}

func (p *Parser) parseEnum(foreign bool, start loc.Range) *ast.Enum {
	p.advance() // 'enum'
	name := p.expect(token.Ident, "an enum name")
	e := &ast.Enum{Name: name.Lexeme, Foreign: foreign}
	p.expect(token.LBrace, "'{'")
	p.skipNewlines()
	for !p.check(token.RBrace) && !p.atEnd() {
		v := p.expect(token.Ident, "a variant name")
		e.Variants = append(e.Variants, v.Lexeme)
		if !p.match(token.Comma) {
			p.skipNewlines()
			break
		}
		p.skipNewlines()
	}
	p.expect(token.RBrace, "'}'")
	e.Range = p.spanFrom(start)
	return e
}
