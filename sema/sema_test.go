package sema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pangea-lang/pangea/builtin"
	"github.com/pangea-lang/pangea/loc"
	"github.com/pangea-lang/pangea/modload"
	"github.com/pangea-lang/pangea/sema"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// analyze loads and type-checks src as the sole main module (no
// stdlib auto-import) and returns the analyzer and its diagnostics bag.
func analyze(t *testing.T, src string) (*sema.Analyzer, *loc.Bag) {
	t.Helper()
	dir := t.TempDir()
	main := writeFile(t, dir, "main.pang", src)

	files := &loc.Files{}
	bag := loc.NewBag(files)
	ld := modload.NewLoader(dir, files, bag)
	ld.NoStdlib = true
	prog, err := ld.Load(main)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a := sema.New(bag, builtin.Empty())
	a.AnalyzeProgram(prog)
	return a, bag
}

func TestAnalyzeAcceptsValidFunction(t *testing.T) {
	_, bag := analyze(t, `fn add(a: i32, b: i32) -> i32 {
  return a + b;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
}

func TestAnalyzeReportsUndefinedIdentifier(t *testing.T) {
	_, bag := analyze(t, `fn main() -> i32 {
  return x;
}
`)
	if !bag.HasErrors() {
		t.Fatal("expected an undefined-identifier diagnostic")
	}
}

func TestAnalyzeReportsRedefinition(t *testing.T) {
	_, bag := analyze(t, `fn dup() -> i32 { return 0; }
fn dup() -> i32 { return 1; }
`)
	if !bag.HasErrors() {
		t.Fatal("expected a redefinition diagnostic")
	}
}

func TestAnalyzeReportsTypeMismatchOnInit(t *testing.T) {
	_, bag := analyze(t, `fn main() -> i32 {
  let s: string = true;
  return 0;
}
`)
	if !bag.HasErrors() {
		t.Fatal("expected a type-mismatch diagnostic initializing s")
	}
	diags := bag.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want exactly 1 (a type mismatch, not a parse error): %v", len(diags), diags)
	}
	if msg := diags[0].Message; !containsAll(msg, "cannot initialize", "string", "bool") {
		t.Fatalf("diagnostic %q does not describe a string/bool mismatch", msg)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// TestAnalyzeBoolLiteralsTypeCheck guards against the bool literal
// tokens being silently dropped by the parser: true and false must
// reach the analyzer as bool literals with zero diagnostics. The null
// literal is covered by TestAnalyzeNullLiteralComparesAgainstPointer.
func TestAnalyzeBoolLiteralsTypeCheck(t *testing.T) {
	_, bag := analyze(t, `fn main() -> i32 {
  let a = true;
  let b = false;
  let c: bool = a && !b;
  return 0;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for bool literals: %v", bag.Diagnostics())
	}
}

func TestAnalyzeNullLiteralComparesAgainstPointer(t *testing.T) {
	_, bag := analyze(t, `fn isNull(p: cptr u8) -> bool {
  return p == null;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for null literal: %v", bag.Diagnostics())
	}
}

func TestAnalyzeAllowsNumericPromotionOnInit(t *testing.T) {
	_, bag := analyze(t, `fn main() -> i32 {
  let x: i64 = 1;
  return 0;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for numeric promotion: %v", bag.Diagnostics())
	}
}

func TestAnalyzeInfersVariableTypeFromInitializer(t *testing.T) {
	a, bag := analyze(t, `fn main() -> i32 {
  let x = 1 + 2;
  return x;
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	syms := a.ModuleSymbols("main")
	if _, ok := syms["main"]; !ok {
		t.Fatalf("expected a top-level main symbol, got %+v", syms)
	}
}

func TestModuleSymbolsExcludesBuiltins(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.pang", `fn useIt() -> i32 { return 0; }
`)
	files := &loc.Files{}
	bag := loc.NewBag(files)
	ld := modload.NewLoader(dir, files, bag)
	ld.NoStdlib = true
	prog, err := ld.Load(main)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	a := sema.New(bag, builtin.Default())
	a.AnalyzeProgram(prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Diagnostics())
	}
	syms := a.ModuleSymbols("main")
	if _, ok := syms["print"]; ok {
		t.Fatalf("ModuleSymbols leaked the built-in print symbol: %+v", syms)
	}
	if _, ok := syms["useIt"]; !ok {
		t.Fatalf("ModuleSymbols missing useIt: %+v", syms)
	}
}
