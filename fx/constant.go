package fx

import "math"

// ScalarSlots is the number of numeric slots in a constant.
const ScalarSlots = 16

// Constant is a compile-time constant value.
//
// The numeric payload is stored once as raw bits. Which interpretation is
// active is decided by the Type the constant belongs to, not by the
// constant itself; see Scalars.View.
type Constant struct {
	Value    Scalars
	String   string
	Elements []*Constant // element constants of an array constant
}

// Scalars holds the 16 numeric slots of a constant as raw 32-bit words.
// The float, int and uint interpretations share the same 64 bytes.
type Scalars [ScalarSlots]uint32

func (s *Scalars) Float(i int) float32 { return math.Float32frombits(s[i]) }
func (s *Scalars) Int(i int) int32     { return int32(s[i]) }
func (s *Scalars) Uint(i int) uint32   { return s[i] }

func (s *Scalars) SetFloat(i int, v float32) { s[i] = math.Float32bits(v) }
func (s *Scalars) SetInt(i int, v int32)     { s[i] = uint32(v) }
func (s *Scalars) SetUint(i int, v uint32)   { s[i] = v }

// Values is the typed view of a Scalars payload: one of FloatValues,
// IntValues or UintValues.
type Values interface {
	values()
}

// FloatValues is the float interpretation of a constant.
type FloatValues [ScalarSlots]float32

func (FloatValues) values() {}

// IntValues is the signed integer interpretation of a constant.
type IntValues [ScalarSlots]int32

func (IntValues) values() {}

// UintValues is the unsigned integer interpretation of a constant. Bool
// constants and non-numeric types use it as well.
type UintValues [ScalarSlots]uint32

func (UintValues) values() {}

// View returns the interpretation of s selected by the base kind of t.
// A nil type yields UintValues.
func (s *Scalars) View(t *Type) Values {
	base := TypeUint
	if t != nil {
		base = t.Base
	}
	switch base {
	case TypeMin16Float, TypeFloat:
		var out FloatValues
		for i, w := range s {
			out[i] = math.Float32frombits(w)
		}
		return out
	case TypeMin16Int, TypeInt:
		var out IntValues
		for i, w := range s {
			out[i] = int32(w)
		}
		return out
	default:
		return UintValues(*s)
	}
}

// ScalarsOf packs a typed view back into raw bits. It is the inverse of
// View: ScalarsOf(s.View(t)) == s for every t.
func ScalarsOf(v Values) Scalars {
	var s Scalars
	switch v := v.(type) {
	case FloatValues:
		for i, f := range v {
			s[i] = math.Float32bits(f)
		}
	case IntValues:
		for i, n := range v {
			s[i] = uint32(n)
		}
	case UintValues:
		s = Scalars(v)
	}
	return s
}

// IsArray reports whether c carries element constants.
func (c *Constant) IsArray() bool { return len(c.Elements) > 0 }
