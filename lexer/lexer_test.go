package lexer

import (
	"testing"

	"github.com/pangea-lang/pangea/loc"
	"github.com/pangea-lang/pangea/token"
)

func kinds(toks []token.Token) []token.Kind {
	var ks []token.Kind
	for _, t := range toks {
		ks = append(ks, t.Kind)
	}
	return ks
}

func TestLexHelloWorld(t *testing.T) {
	src := `fn main() -> i32 { print("hi"); return 0; }`
	toks := New(src, 0, nil).Lex()
	want := []token.Kind{
		token.Fn, token.Ident, token.LParen, token.RParen, token.Arrow, token.Ident,
		token.LBrace, token.Ident, token.LParen, token.StringLit, token.RParen, token.Semi,
		token.Return, token.IntLit, token.Semi, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexIntegerDefaultWidth(t *testing.T) {
	toks := New("42", 0, nil).Lex()
	lit := toks[0].Literal
	if lit.Suffix != "i32" {
		t.Errorf("Suffix = %q, want i32", lit.Suffix)
	}
	if lit.Int != 42 {
		t.Errorf("Int = %d, want 42", lit.Int)
	}
}

func TestLexIntegerOverflowsI32DefaultsToI64(t *testing.T) {
	toks := New("3000000000", 0, nil).Lex()
	lit := toks[0].Literal
	if lit.Suffix != "i64" {
		t.Errorf("Suffix = %q, want i64", lit.Suffix)
	}
}

func TestLexIntegerSuffix(t *testing.T) {
	toks := New("7u8", 0, nil).Lex()
	lit := toks[0].Literal
	if lit.Suffix != "u8" || lit.Uint != 7 {
		t.Errorf("lit = %+v", lit)
	}
}

func TestLexFloatDefaultWidth(t *testing.T) {
	toks := New("3.14", 0, nil).Lex()
	lit := toks[0].Literal
	if lit.Suffix != "f64" || lit.Float != 3.14 {
		t.Errorf("lit = %+v", lit)
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks := New(`"a\nb\tc\\d\"e"`, 0, nil).Lex()
	if toks[0].Literal.Str != "a\nb\tc\\d\"e" {
		t.Errorf("Str = %q", toks[0].Literal.Str)
	}
}

func TestLexStringUnknownEscapePassesThrough(t *testing.T) {
	var fs loc.Files
	fs.Add("t.pang", `"\q"`)
	bag := loc.NewBag(&fs)
	toks := New(`"\q"`, 0, bag).Lex()
	if toks[0].Literal.Str != "q" {
		t.Errorf("Str = %q, want %q", toks[0].Literal.Str, "q")
	}
	if bag.WarningCount()+bag.ErrorCount() == 0 {
		t.Error("expected a diagnostic for unknown escape")
	}
}

func TestLexUnterminatedString(t *testing.T) {
	var fs loc.Files
	fs.Add("t.pang", `"abc`)
	bag := loc.NewBag(&fs)
	toks := New(`"abc`, 0, bag).Lex()
	if toks[0].Literal.Str != "abc" {
		t.Errorf("Str = %q, want partial %q", toks[0].Literal.Str, "abc")
	}
	if !bag.HasErrors() {
		t.Error("expected an error for unterminated string")
	}
}

func TestLexNestedBlockComments(t *testing.T) {
	src := "/* outer /* inner */ still-comment */ 1"
	toks := New(src, 0, nil).Lex()
	if len(toks) != 2 || toks[0].Kind != token.IntLit {
		t.Fatalf("toks = %+v", toks)
	}
}

func TestLexUnterminatedNestedBlockComment(t *testing.T) {
	var fs loc.Files
	fs.Add("t.pang", "/* /* */ 1")
	bag := loc.NewBag(&fs)
	New("/* /* */ 1", 0, bag).Lex()
	if !bag.HasErrors() {
		t.Error("expected an error for unterminated nested block comment")
	}
}

func TestLexLineCommentDropped(t *testing.T) {
	toks := New("1 // a comment\n2", 0, nil).Lex()
	got := kinds(toks)
	want := []token.Kind{token.IntLit, token.Newline, token.IntLit, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
}

func TestLexLongestMatchOperators(t *testing.T) {
	toks := New("<<= >>== **", 0, nil).Lex()
	// Longest match makes "<<=" lex as "<<" then "=" (Shl before Le),
	// not "<" then "<=". Spot check the first token.
	if toks[0].Kind != token.Shl {
		t.Errorf("first token = %v, want Shl", toks[0].Kind)
	}
}

func TestLexUnknownCharacterRecovers(t *testing.T) {
	var fs loc.Files
	fs.Add("t.pang", "1 ` 2")
	bag := loc.NewBag(&fs)
	toks := New("1 ` 2", 0, bag).Lex()
	got := kinds(toks)
	want := []token.Kind{token.IntLit, token.Ident, token.IntLit, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if !bag.HasErrors() {
		t.Error("expected an error for the unknown character")
	}
}

func TestLiteralRoundTrip(t *testing.T) {
	cases := []string{"42", "42i64", "3000000000", "7u8", "3.14", "2.5f32", `"hello\n"`}
	for _, src := range cases {
		toks := New(src, 0, nil).Lex()
		toks2 := New(toks[0].Lexeme, 0, nil).Lex()
		if toks[0].Literal != toks2[0].Literal {
			t.Errorf("re-lexing %q: %+v != %+v", src, toks[0].Literal, toks2[0].Literal)
		}
	}
}
