package backend

import "github.com/pangea-lang/pangea/sema"

// A CastKind categorizes a cast/try_cast/as conversion into the
// lowering strategy the backend must apply, per §4.6: "Lowering for
// casts following the same categorization as §4.5 (integer
// widen/truncate, int<->float, float widen/truncate, to-bool via
// non-zero comparison, from-bool via zero-extension)."
type CastKind int

const (
	// CastInvalid: source or target is outside the castable set
	// (§4.5); the analyzer has already diagnosed this, the backend
	// must not attempt to lower it.
	CastInvalid CastKind = iota
	// CastIdentity: source and target are the same primitive; no
	// instruction needed.
	CastIdentity
	// CastIntWiden: a narrower integer to a wider one; signedness is
	// not considered.
	CastIntWiden
	// CastIntTruncate: an integer to a different integer type of equal
	// or narrower width.
	CastIntTruncate
	// CastIntToFloat: an integer source to a floating-point target.
	CastIntToFloat
	// CastFloatToInt: a floating-point source to an integer target.
	CastFloatToInt
	// CastFloatWiden: f32 to f64.
	CastFloatWiden
	// CastFloatTruncate: f64 to f32.
	CastFloatTruncate
	// CastToBool: any numeric to bool, lowered as a non-zero
	// comparison.
	CastToBool
	// CastFromBool: bool to any numeric, lowered as a zero-extension.
	CastFromBool
	// CastStringIdentity: string to string (always identity: Pangea
	// has one string representation).
	CastStringIdentity
)

// intWidth maps an integer primitive name to its bit width, used to
// decide widen vs. truncate.
var intWidth = map[string]int{
	"i8": 8, "u8": 8,
	"i16": 16, "u16": 16,
	"i32": 32, "u32": 32,
	"i64": 64, "u64": 64,
}

func isInt(t *sema.Type) bool {
	if t == nil || t.Kind != sema.Primitive {
		return false
	}
	_, ok := intWidth[t.Name]
	return ok
}

func isFloat(t *sema.Type) bool { return t.IsFloat() }
func isBool(t *sema.Type) bool  { return t.IsBool() }
func isString(t *sema.Type) bool {
	return t != nil && t.Kind == sema.Primitive && t.Name == "string"
}

// ClassifyCast returns the lowering strategy for converting a value of
// type from to type to. Both types must already have passed the
// analyzer's castable-set check (§4.5); ClassifyCast returns
// CastInvalid if either is outside that set, so a backend can treat
// it as "the analyzer already diagnosed this, do nothing."
func ClassifyCast(from, to *sema.Type) CastKind {
	if !from.Castable() || !to.Castable() {
		return CastInvalid
	}
	switch {
	case isString(from) && isString(to):
		return CastStringIdentity
	case isString(from) != isString(to):
		// string<->numeric/bool has no cast lowering. The analyzer's
		// castable-set check accepts such a pairing without a
		// diagnostic, so an accepted program can reach this case; it
		// is categorized as CastInvalid.
		return CastInvalid
	case isBool(from) && isBool(to):
		return CastIdentity
	case isBool(to):
		return CastToBool
	case isBool(from):
		return CastFromBool
	case isInt(from) && isInt(to):
		if from.Name == to.Name {
			return CastIdentity
		}
		if intWidth[from.Name] < intWidth[to.Name] {
			return CastIntWiden
		}
		return CastIntTruncate
	case isInt(from) && isFloat(to):
		return CastIntToFloat
	case isFloat(from) && isInt(to):
		return CastFloatToInt
	case isFloat(from) && isFloat(to):
		if from.Name == to.Name {
			return CastIdentity
		}
		if from.Name == "f32" && to.Name == "f64" {
			return CastFloatWiden
		}
		return CastFloatTruncate
	default:
		return CastInvalid
	}
}

// LowerVariadicArg returns the type a variadic-compatible argument
// must be widened to before being passed to a foreign variadic
// (printf-family) function, per §4.6: floats widen to f64, and
// sub-32-bit integers widen to 32 bits, signed ones to i32 and
// unsigned ones to u32. Any other variadic-compatible type (bool,
// string, pointer, array-decay) passes through unchanged.
func LowerVariadicArg(t *sema.Type) *sema.Type {
	switch {
	case isFloat(t):
		return sema.Prim("f64")
	case isInt(t) && intWidth[t.Name] < 32:
		if t.Name[0] == 'u' {
			return sema.Prim("u32")
		}
		return sema.Prim("i32")
	default:
		return t
	}
}
