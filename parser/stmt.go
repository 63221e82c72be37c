package parser

import (
	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/token"
)

// parseBlock parses a brace-delimited statement sequence.
func (p *Parser) parseBlock() *ast.Block {
	start := p.cur().Range
	p.expect(token.LBrace, "'{'")
	p.skipNewlines()
	var stmts []ast.Stmt
	for !p.check(token.RBrace) && !p.atEnd() {
		if st := p.parseStmt(); st != nil {
			stmts = append(stmts, st)
		}
		p.skipNewlines()
	}
	p.expect(token.RBrace, "'}'")
	return &ast.Block{Range: p.spanFrom(start), Stmts: stmts}
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curKind() {
	case token.LBrace:
		return p.parseBlock()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseForIn()
	case token.Return:
		return p.parseReturn()
	case token.Let, token.Var:
		start := p.cur().Range
		v := p.parseVariableDecl(false, false)
		return &ast.DeclStmt{Range: p.spanFrom(start), Decl: v}
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.cur().Range
	p.advance() // 'if'
	cond := p.parseExpr()
	then := p.parseBlock()
	n := &ast.If{Then: then, Cond: cond}
	if p.check(token.Else) {
		p.advance()
		if p.check(token.If) {
			n.Else = p.parseIf()
		} else {
			n.Else = p.parseBlock()
		}
	}
	n.Range = p.spanFrom(start)
	return n
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.cur().Range
	p.advance() // 'while'
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.While{Range: p.spanFrom(start), Cond: cond, Body: body}
}

func (p *Parser) parseForIn() ast.Stmt {
	start := p.cur().Range
	p.advance() // 'for'
	name := p.expect(token.Ident, "a loop variable name")
	p.expect(token.In, "'in'")
	iterable := p.parseExpr()
	body := p.parseBlock()
	return &ast.ForIn{Range: p.spanFrom(start), Name: name.Lexeme, Iterable: iterable, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.cur().Range
	p.advance() // 'return'
	n := &ast.Return{}
	if !p.atStmtEnd() {
		n.Value = p.parseExpr()
	}
	n.Range = p.spanFrom(start)
	p.consumeTerminator()
	return n
}

// atStmtEnd reports whether the current token can legally end a
// statement with no expression before it (used to distinguish `return`
// from `return value`).
func (p *Parser) atStmtEnd() bool {
	switch p.curKind() {
	case token.Semi, token.Newline, token.RBrace:
		return true
	default:
		return p.atEnd()
	}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.cur().Range
	x := p.parseExpr()
	n := &ast.ExprStmt{Range: p.spanFrom(start), X: x}
	p.consumeTerminator()
	return n
}
