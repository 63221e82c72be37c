// Command pangeac is the Pangea compiler driver: it wires the lexer,
// parser, module loader, and semantic analyzer into the pipeline
// described by §6 of the specification, then hands the typed result
// to a backend (§4.6) for final emission.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/eaburns/pretty"
	"golang.org/x/term"

	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/backend"
	"github.com/pangea-lang/pangea/builtin"
	"github.com/pangea-lang/pangea/lexer"
	"github.com/pangea-lang/pangea/loc"
	"github.com/pangea-lang/pangea/modload"
	"github.com/pangea-lang/pangea/sema"
)

func init() { pretty.Indent = "    " }

func main() { os.Exit(run(os.Args[1:])) }

func run(args []string) int {
	fs := flag.NewFlagSet("pangeac", flag.ContinueOnError)
	fs.Usage = func() { usage(fs) }

	output := fs.String("o", "a.exe", "output path")
	verbose := fs.Bool("v", false, "trace pipeline progress on standard output")
	fs.BoolVar(verbose, "verbose", false, "alias for -v")
	color := fs.String("color", "auto", "diagnostic color policy: always, auto, never")
	llvm := fs.Bool("llvm", false, "emit intermediate representation instead of linking")
	tokensOnly := fs.Bool("tokens", false, "print tokens from the main file; exit")
	astOnly := fs.Bool("ast", false, "print AST summary; exit")
	dumpTypes := fs.Bool("dump-types", false, "print the typed-AST symbol table after semantic analysis; exit")
	noStdlib := fs.Bool("no-stdlib", false, "suppress standard-library auto-import")
	noBuiltins := fs.Bool("no-builtins", false, "suppress built-in function registration")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}
	if fs.NArg() != 1 {
		usage(fs)
		return 1
	}
	colorMode, err := parseColorMode(*color)
	if err != nil {
		fmt.Fprintln(fs.Output(), err)
		return 1
	}
	loc.IsTerminalFunc = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}

	input := fs.Arg(0)
	trace := func(string, ...interface{}) {}
	if *verbose {
		trace = log.New(os.Stdout, "", log.LstdFlags).Printf
	}

	files := &loc.Files{}
	bag := loc.NewBag(files)

	if *tokensOnly {
		return printTokens(input, bag, files, colorMode)
	}

	trace("loading %s", input)
	ld := modload.NewLoader(filepath.Dir(input), files, bag)
	ld.NoStdlib = *noStdlib
	prog, loadErr := ld.Load(input)
	if loadErr != nil {
		bag.Report(loc.Fatal, loc.Range{}, "%v", loadErr)
	}
	if bag.HasErrors() || prog == nil {
		bag.RenderAll(os.Stderr, colorMode)
		return 1
	}

	if *astOnly {
		for _, mod := range prog.AllModules() {
			fmt.Printf("// module %s (%s)\n", mod.Name, mod.Path)
			fmt.Print(ast.Print(mod))
		}
		return 0
	}

	trace("running semantic analysis")
	registry := builtin.Default()
	if *noBuiltins {
		registry = builtin.Empty()
	}
	analyzer := sema.New(bag, registry)
	analyzer.AnalyzeProgram(prog)

	if *dumpTypes {
		for _, mod := range prog.AllModules() {
			pretty.Print(analyzer.ModuleSymbols(mod.Name))
		}
		bag.RenderAll(os.Stderr, colorMode)
		if bag.HasErrors() {
			return 1
		}
		return 0
	}

	if bag.HasErrors() {
		bag.RenderAll(os.Stderr, colorMode)
		return 1
	}

	trace("emitting to %s", *output)
	if err := emit(prog, analyzer, *output, *llvm); err != nil {
		bag.Report(loc.Fatal, loc.Range{}, "%v", err)
		bag.RenderAll(os.Stderr, colorMode)
		return 1
	}

	bag.RenderAll(os.Stderr, colorMode)
	return 0
}

// emit hands the typed program to the backend contract (§4.6). The
// real machine-code emitter and linker invocation are out of scope
// for this repository (§1); TextDumper stands in for them so the
// handoff itself — type conversion per top-level symbol — is
// exercised end to end.
func emit(prog *ast.Program, analyzer *sema.Analyzer, output string, llvmIR bool) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	dumper := &backend.TextDumper{Types: backend.StringTypes{}}
	if llvmIR {
		fmt.Fprintln(f, "; pangea intermediate representation")
	} else {
		fmt.Fprintln(f, "; pangea linker-ready object (placeholder: no external linker invoked)")
	}
	for _, mod := range prog.AllModules() {
		if err := dumper.DumpModule(f, mod.Name, analyzer.ModuleSymbols(mod.Name)); err != nil {
			return err
		}
	}
	return nil
}

func printTokens(path string, bag *loc.Bag, files *loc.Files, colorMode loc.ColorMode) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	r := files.Add(path, string(src))
	toks := lexer.New(string(src), r[0], bag).Lex()
	for _, t := range toks {
		fmt.Printf("%-10s %q\n", t.Kind, t.Lexeme)
	}
	if bag.HasErrors() {
		bag.RenderAll(os.Stderr, colorMode)
		return 1
	}
	return 0
}

func parseColorMode(s string) (loc.ColorMode, error) {
	switch s {
	case "always":
		return loc.ColorAlways, nil
	case "never":
		return loc.ColorNever, nil
	case "auto", "":
		return loc.ColorAuto, nil
	default:
		return loc.ColorAuto, fmt.Errorf("invalid --color value %q (want always, auto, or never)", s)
	}
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "usage: %s [options] <input>\n\n", fs.Name())
	fs.PrintDefaults()
}
