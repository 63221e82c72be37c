// Package parser implements Pangea's recursive-descent, Pratt-style
// precedence-climbing expression parser with panic-mode error
// recovery.
package parser

import (
	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/loc"
	"github.com/pangea-lang/pangea/token"
)

// A Parser consumes a token stream produced by package lexer and
// builds an *ast.Module.
type Parser struct {
	toks []token.Token
	pos  int
	bag  *loc.Bag
}

// New returns a Parser over toks, which must end with an EOF token (as
// lexer.Lex always produces). Diagnostics are appended to bag.
func New(toks []token.Token, bag *loc.Bag) *Parser {
	return &Parser{toks: toks, bag: bag}
}

// ParseModule parses an entire file into a Module. name and path are
// supplied by the caller (the module loader), since they come from
// the import graph, not the source text.
func (p *Parser) ParseModule(name, path string) *ast.Module {
	mod := &ast.Module{Name: name, Path: path}
	p.skipNewlines()
	for p.check(token.Import) {
		mod.Imports = append(mod.Imports, p.parseImport())
		p.skipNewlines()
	}
	for !p.atEnd() {
		if d := p.parseDecl(); d != nil {
			mod.Decls = append(mod.Decls, d)
		}
		p.skipNewlines()
	}
	return mod
}

func (p *Parser) parseImport() *ast.ImportDecl {
	start := p.cur().Range
	p.advance() // 'import'
	pathTok := p.expect(token.StringLit, "a module path string")
	imp := &ast.ImportDecl{Path: pathTok.Literal.Str}
	if p.match(token.LBrace) {
		if p.match(token.Star) {
			imp.Wildcard = true
		} else {
			for {
				name := p.expect(token.Ident, "an imported name")
				imp.Names = append(imp.Names, name.Lexeme)
				if !p.match(token.Comma) {
					break
				}
				p.skipNewlines()
			}
		}
		p.expect(token.RBrace, "'}'")
	} else {
		imp.Wildcard = true
	}
	imp.Range = p.spanFrom(start)
	p.consumeTerminator()
	return imp
}

// --- token stream helpers ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) curKind() token.Kind { return p.cur().Kind }

func (p *Parser) atEnd() bool { return p.curKind() == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.curKind() == k }

func (p *Parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

// expect consumes the current token if it has kind k, diagnosing a
// "missing X" error and returning the current (unconsumed) token
// otherwise, so callers can keep building a best-effort tree.
func (p *Parser) expect(k token.Kind, what string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorf("expected %s, found %s", what, describe(p.cur()))
	return p.cur()
}

func describe(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of file"
	}
	if t.Lexeme != "" {
		return "'" + t.Lexeme + "'"
	}
	return t.Kind.String()
}

// skipNewlines advances past any run of Newline tokens. Used between
// top-level declarations and wherever an open paren/bracket/brace lets
// a construct span lines without ending a statement.
func (p *Parser) skipNewlines() {
	for p.check(token.Newline) {
		p.advance()
	}
}

// spanFrom returns a Range covering from start's beginning to the end
// of the token just consumed.
func (p *Parser) spanFrom(start loc.Range) loc.Range {
	end := start[1]
	if p.pos > 0 {
		end = p.toks[p.pos-1].Range[1]
	}
	return loc.Range{start[0], end}
}

// consumeTerminator enforces "a statement ends at ';', newline, '}',
// or EOF." Extra semicolons are diagnosed but consumed; a closing
// brace or EOF ends the enclosing construct without being consumed
// here.
func (p *Parser) consumeTerminator() {
	switch {
	case p.match(token.Semi):
		for p.check(token.Semi) {
			p.errorf("extra ';'")
			p.advance()
		}
	case p.match(token.Newline):
	case p.check(token.RBrace), p.atEnd():
	default:
		p.errorf("expected a statement terminator, found %s", describe(p.cur()))
		p.syncStmt()
	}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	if p.bag == nil {
		return
	}
	p.bag.ReportToken(loc.Error, p.cur().Range, p.cur().Lexeme, format, args...)
}

func (p *Parser) warnf(format string, args ...interface{}) {
	if p.bag == nil {
		return
	}
	p.bag.Report(loc.Warning, p.cur().Range, format, args...)
}

// declStarters are the keywords that begin a new top-level
// declaration; declaration-level synchronization skips to the next
// one of these (or EOF) after an unrecoverable parse error.
var declStarters = map[token.Kind]bool{
	token.Fn: true, token.Let: true, token.Var: true, token.Class: true,
	token.Struct: true, token.Enum: true, token.Foreign: true, token.Export: true,
	token.Import: true,
}

// stmtStarters are the keywords that begin a new statement; statement-
// level synchronization skips to the next one of these, or to ';',
// newline, '{', or EOF.
var stmtStarters = map[token.Kind]bool{
	token.If: true, token.While: true, token.For: true, token.Return: true,
	token.Let: true, token.Var: true,
}

// syncDecl implements declaration-level synchronization: skip tokens
// until the next declaration-starting keyword or EOF. Called at most
// once per recovered-from site.
func (p *Parser) syncDecl() {
	for !p.atEnd() && !declStarters[p.curKind()] {
		p.advance()
	}
}

// syncStmt implements statement-level synchronization: skip within a
// function body until the next ';', newline, '{', a statement-starter
// keyword, or EOF.
func (p *Parser) syncStmt() {
	for !p.atEnd() {
		switch p.curKind() {
		case token.Semi:
			p.advance()
			return
		case token.Newline, token.LBrace:
			return
		}
		if stmtStarters[p.curKind()] {
			return
		}
		p.advance()
	}
}
