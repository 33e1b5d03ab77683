package gestaltwerk

import "fmt"

// Kind identifies which variant a Value currently holds.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Custom is the escape hatch for renderer- or application-defined values
// that the core engine carries opaquely through style variables and node
// properties without ever interpreting them. Two Custom values are never
// considered equal by Value.Equal, regardless of CloneValue's result --
// this mirrors the original implementation's CustomValue trait, which
// never derived PartialEq.
type Custom interface {
	CloneValue() Custom
}

// Value is the tagged dynamic value carried by node properties and style
// variables: a bool, a 32-bit integer, a 64-bit float, a string, or an
// opaque Custom payload.
type Value struct {
	kind   Kind
	b      bool
	i      int32
	f      float64
	s      string
	custom Custom
}

func Bool(b bool) Value              { return Value{kind: KindBool, b: b} }
func Int(i int32) Value              { return Value{kind: KindInt, i: i} }
func Float(f float64) Value          { return Value{kind: KindFloat, f: f} }
func String(s string) Value          { return Value{kind: KindString, s: s} }
func CustomValue(c Custom) Value     { return Value{kind: KindCustom, custom: c} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsInt() bool    { return v.kind == KindInt }
func (v Value) IsFloat() bool  { return v.kind == KindFloat }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsCustom() bool { return v.kind == KindCustom }

// AsBool, AsInt, AsFloat, AsString and AsCustom return the underlying payload along
// with whether the Value actually holds that variant. They never convert.
func (v Value) AsBool() (bool, bool)     { return v.b, v.kind == KindBool }
func (v Value) AsInt() (int32, bool)     { return v.i, v.kind == KindInt }
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }
func (v Value) AsCustom() (Custom, bool) { return v.custom, v.kind == KindCustom }

// Float64 widens a numeric Value to float64, following the same widening
// rule used throughout expression evaluation: int32 widens losslessly,
// float64 passes through unchanged. ok is false for non-numeric values.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Int32 narrows a numeric Value to int32. Floats truncate toward zero, per
// spec.md's preserved conversion rule; ok is false for non-numeric values.
func (v Value) Int32() (int32, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return int32(v.f), true
	default:
		return 0, false
	}
}

// Equal implements the spec's equality rule: values of different Kind are
// never equal, and two Custom values are never equal even if they wrap
// identical payloads -- a deliberately preserved original quirk.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindCustom:
		return false
	default:
		return false
	}
}

func (v Value) String_() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindCustom:
		return fmt.Sprintf("<custom %T>", v.custom)
	default:
		return "<invalid>"
	}
}

// Clone deep-copies a Value, delegating to CloneValue for the Custom
// variant so application-owned state isn't aliased across nodes.
func (v Value) Clone() Value {
	if v.kind == KindCustom && v.custom != nil {
		return Value{kind: KindCustom, custom: v.custom.CloneValue()}
	}
	return v
}

// PropertyValue is implemented by Go types that a style declaration can be
// converted into, mirroring the original's PropertyValue trait used by
// get_value's generic V parameter. ConvertFrom returns ok=false when the
// Value's variant doesn't map onto the target type, which the caller
// treats identically to a missing property (spec.md's "no value" rule).
type PropertyValue[T any] interface {
	ConvertFrom(Value) (T, bool)
}

// ConvertInt, ConvertFloat, ConvertBool and ConvertString are the stock
// conversions used by layout engines pulling typed style vars out of a
// RenderObject's resolved vars map.
func ConvertInt(v Value) (int32, bool)     { return v.Int32() }
func ConvertFloat(v Value) (float64, bool) { return v.Float64() }
func ConvertBool(v Value) (bool, bool)     { return v.AsBool() }
func ConvertString(v Value) (string, bool) { return v.AsString() }
