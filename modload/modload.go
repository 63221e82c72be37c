// Package modload resolves a module's transitive imports into an
// ordered dependency set, probing the filesystem the way the Pangea
// toolchain locates a module's source for a given import path.
package modload

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pangea-lang/pangea/ast"
	"github.com/pangea-lang/pangea/lexer"
	"github.com/pangea-lang/pangea/loc"
	"github.com/pangea-lang/pangea/parser"
)

// StdlibWildcardImport is auto-injected into the entry module unless
// the caller disables it, so the main file gets `print` and friends
// without writing an explicit import (spec: the auto-import applies to
// the main module only, not to every module it transitively imports).
const StdlibWildcardImport = "io"

//go:embed stdlib/*.pang
var embeddedStdlib embed.FS

// embeddedStdlibPath returns the embedded source path for import path,
// or "" if this compiler ships no built-in module under that path.
func embeddedStdlibPath(path string) string {
	p := "stdlib/" + path + ".pang"
	f, err := embeddedStdlib.Open(p)
	if err != nil {
		return ""
	}
	f.Close()
	return p
}

// Loader loads a module and its transitive dependencies from the
// filesystem, probing each import path as "path.pang", "path",
// "stdlib/path.pang", "stdlib/path" relative to Root.
type Loader struct {
	Root     string
	Files    *loc.Files
	Bag      *loc.Bag
	NoStdlib bool
}

// NewLoader returns a Loader rooted at root, sharing files and bag
// with the rest of the compilation pipeline.
func NewLoader(root string, files *loc.Files, bag *loc.Bag) *Loader {
	return &Loader{Root: root, Files: files, Bag: bag}
}

// Load parses the file at mainPath and every module it transitively
// imports, returning a Program with mainPath's module as Main and the
// rest, in topological load order (a dependency always precedes its
// dependents), as Deps. mainPath is a direct filesystem path, not an
// import path to be probed.
func (l *Loader) Load(mainPath string) (*ast.Program, error) {
	ld := &loader{Loader: l, loading: map[string]bool{}, loaded: map[string]*ast.Module{}}
	src, err := os.ReadFile(mainPath)
	if err != nil {
		return nil, err
	}
	main, err := ld.parseAndLoadImports(mainPath, "main", string(src), true)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Main: main, Deps: ld.order}, nil
}

type loader struct {
	*Loader
	loading map[string]bool // import paths currently on the load stack, for cycle detection
	loaded  map[string]*ast.Module
	order   []*ast.Module // dependencies in the order they finished loading
}

// load resolves and loads a dependency named by its import path (as
// opposed to parseAndLoadImports, which is handed source text
// directly for the program's entry file).
func (ld *loader) load(path string) (*ast.Module, error) {
	if m, ok := ld.loaded[path]; ok {
		return m, nil
	}
	if ld.loading[path] {
		return nil, fmt.Errorf("import cycle detected at %q", path)
	}
	ld.loading[path] = true
	defer delete(ld.loading, path)

	realPath, src, err := ld.readModuleSource(path)
	if err != nil {
		return nil, err
	}
	mod, err := ld.parseAndLoadImports(realPath, filepath.Base(path), src, false)
	if err != nil {
		return nil, err
	}
	ld.loaded[path] = mod
	ld.order = append(ld.order, mod)
	return mod, nil
}

// parseAndLoadImports parses src into a Module, auto-injects the
// stdlib wildcard import when isMain and NoStdlib isn't set, and
// recursively loads every import path it names.
func (ld *loader) parseAndLoadImports(realPath, name, src string, isMain bool) (*ast.Module, error) {
	r := ld.Files.Add(realPath, src)
	toks := lexer.New(src, r[0], ld.Bag).Lex()
	mod := parser.New(toks, ld.Bag).ParseModule(name, realPath)

	if isMain && !ld.NoStdlib {
		mod.Imports = append([]*ast.ImportDecl{{Path: StdlibWildcardImport, Wildcard: true}}, mod.Imports...)
	}
	for _, imp := range mod.Imports {
		if _, err := ld.load(imp.Path); err != nil {
			return nil, fmt.Errorf("%s: importing %q: %w", realPath, imp.Path, err)
		}
	}
	return mod, nil
}

// resolve probes candidate source file locations for path, in order:
// "<path>.pang", "<path>", "stdlib/<path>.pang", "stdlib/<path>",
// each relative to Root. The first candidate that exists wins.
func (ld *loader) resolve(path string) (string, error) {
	candidates := []string{
		filepath.Join(ld.Root, path+".pang"),
		filepath.Join(ld.Root, path),
		filepath.Join(ld.Root, "stdlib", path+".pang"),
		filepath.Join(ld.Root, "stdlib", path),
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("module %q not found (tried %v)", path, candidates)
}

// readModuleSource resolves path against the project tree first, so a
// project-local stdlib/<path>.pang always shadows the compiler's own;
// failing that, it falls back to the stdlib modules this compiler
// ships embedded in its binary, so a plain `import "io"` (or the
// default auto-import of it) resolves even in a project directory
// that carries no stdlib/ of its own.
func (ld *loader) readModuleSource(path string) (realPath string, src string, err error) {
	if realPath, err = ld.resolve(path); err == nil {
		data, readErr := os.ReadFile(realPath)
		if readErr != nil {
			return "", "", readErr
		}
		return realPath, string(data), nil
	}
	if embPath := embeddedStdlibPath(path); embPath != "" {
		data, embErr := embeddedStdlib.ReadFile(embPath)
		if embErr != nil {
			return "", "", embErr
		}
		return embPath, string(data), nil
	}
	return "", "", err
}
