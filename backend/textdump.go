package backend

import (
	"fmt"
	"io"
	"sort"

	"github.com/pangea-lang/pangea/sema"
)

// TextDumper is a minimal stand-in for the real machine-code backend:
// it walks a module's top-level symbols through the TypeConverter
// contract and writes a flat, line-oriented textual object format —
// one header line plus a body per definition — in the spirit of the
// grounding example's own simple object format (a length-prefixed
// header followed by a body per definition, written by its gengo
// package). It exists so cmd/pangeac has something runnable to hand
// typed-AST output to without depending on an actual LLVM/linker
// toolchain, which §1 places out of scope for this repository.
type TextDumper struct {
	Types TypeConverter
}

// DumpModule writes one line per top-level symbol of modName: its
// name, storage class, and backend type, sorted by name for
// reproducible output. It is not a real object file; --llvm and the
// default (non-IR) output path both use it as a placeholder for
// whatever a real backend would link into a final artifact.
func (d *TextDumper) DumpModule(w io.Writer, modName string, syms map[string]*sema.Symbol) error {
	names := make([]string, 0, len(syms))
	for name := range syms {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "; module %s\n", modName)
	for _, name := range names {
		sym := syms[name]
		class := Global
		if !sym.Mutable && sym.Type != nil && sym.Type.Kind != sema.FunctionT {
			class = Constant
		}
		bt, err := d.Types.BackendTypeOf(sym.Type)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", modName, name, err)
		}
		fmt.Fprintf(w, "%s %s : %v = %v\n", class, name, sym.Type, bt)
	}
	return nil
}

// StringTypes is the simplest possible TypeConverter: it renders a
// sema.Type to its String() form, used when cmd/pangeac has no other
// backend plugged in. A real backend replaces this with one that
// returns actual machine/IR type handles.
type StringTypes struct{}

// BackendTypeOf implements TypeConverter by returning t.String(), or
// an error for sema.ErrorType (which has no backend representation by
// construction — the analyzer already refused to synthesize anything
// useful for it).
func (StringTypes) BackendTypeOf(t *sema.Type) (interface{}, error) {
	if t == nil || t.IsError() {
		return nil, fmt.Errorf("no backend type for an error-typed symbol")
	}
	return t.String(), nil
}
