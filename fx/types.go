package fx

import (
	"fmt"
	"strings"
)

// Type describes the type of a value, member, annotation or uniform.
type Type struct {
	Base       BaseType
	Rows       uint32 // vector size, or matrix rows
	Cols       uint32 // matrix columns
	Qualifiers Qualifier

	// ArrayLength is 0 for non-arrays, the element count for sized arrays
	// and UnboundedArray for arrays whose size is only known at runtime.
	ArrayLength int32

	// Definition is an opaque id of the struct, sampler, storage, texture
	// or function definition this type refers to.
	Definition uint32
}

// UnboundedArray is the ArrayLength of a runtime-sized array.
const UnboundedArray int32 = -1

// BaseType is the fundamental kind of a Type.
type BaseType uint8

const (
	TypeVoid BaseType = iota
	TypeBool
	TypeMin16Int
	TypeInt
	TypeMin16Uint
	TypeUint
	TypeMin16Float
	TypeFloat
	TypeString
	TypeStruct
	TypeSampler
	TypeStorage
	TypeTexture
	TypeFunction
)

var baseTypeNames = newEnumTable("base type", map[BaseType]string{
	TypeVoid:       "void",
	TypeBool:       "bool",
	TypeMin16Int:   "min16int",
	TypeInt:        "int",
	TypeMin16Uint:  "min16uint",
	TypeUint:       "uint",
	TypeMin16Float: "min16float",
	TypeFloat:      "float",
	TypeString:     "string",
	TypeStruct:     "struct",
	TypeSampler:    "sampler",
	TypeStorage:    "storage",
	TypeTexture:    "texture",
	TypeFunction:   "function",
})

func (b BaseType) String() string                { return baseTypeNames.name(b) }
func (b BaseType) MarshalText() ([]byte, error)  { return baseTypeNames.marshal(b) }
func (b *BaseType) UnmarshalText(p []byte) error { return unmarshalEnum(baseTypeNames, b, p) }

// Qualifier is a bit set of storage and interpolation qualifiers.
type Qualifier uint32

const (
	QualifierExtern          Qualifier = 1 << 0
	QualifierStatic          Qualifier = 1 << 1
	QualifierUniform         Qualifier = 1 << 2
	QualifierVolatile        Qualifier = 1 << 3
	QualifierPrecise         Qualifier = 1 << 4
	QualifierIn              Qualifier = 1 << 5
	QualifierOut             Qualifier = 1 << 6
	QualifierInOut                     = QualifierIn | QualifierOut
	QualifierConst           Qualifier = 1 << 8
	QualifierLinear          Qualifier = 1 << 10
	QualifierNoPerspective   Qualifier = 1 << 11
	QualifierCentroid        Qualifier = 1 << 12
	QualifierNoInterpolation Qualifier = 1 << 13
	QualifierGroupShared     Qualifier = 1 << 14
)

// qualifierOrder lists single-bit qualifiers in declaration order.
var qualifierOrder = []Qualifier{
	QualifierExtern, QualifierStatic, QualifierUniform, QualifierVolatile,
	QualifierPrecise, QualifierIn, QualifierOut, QualifierConst,
	QualifierLinear, QualifierNoPerspective, QualifierCentroid,
	QualifierNoInterpolation, QualifierGroupShared,
}

var qualifierNames = newEnumTable("qualifier", map[Qualifier]string{
	QualifierExtern:          "extern",
	QualifierStatic:          "static",
	QualifierUniform:         "uniform",
	QualifierVolatile:        "volatile",
	QualifierPrecise:         "precise",
	QualifierIn:              "in",
	QualifierOut:             "out",
	QualifierInOut:           "inout",
	QualifierConst:           "const",
	QualifierLinear:          "linear",
	QualifierNoPerspective:   "noperspective",
	QualifierCentroid:        "centroid",
	QualifierNoInterpolation: "nointerpolation",
	QualifierGroupShared:     "groupshared",
})

// Has reports whether every bit of q2 is set in q.
func (q Qualifier) Has(q2 Qualifier) bool { return q&q2 == q2 }

// String returns the set bits as a space separated list, e.g. "uniform const".
func (q Qualifier) String() string {
	if q == 0 {
		return ""
	}
	parts := make([]string, 0, 4)
	rest := q
	for _, bit := range qualifierOrder {
		if q&bit != 0 {
			parts = append(parts, qualifierNames.names[bit])
			rest &^= bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("qualifier(%#x)", uint32(rest)))
	}
	return strings.Join(parts, " ")
}

func (q Qualifier) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// UnmarshalText parses a space or '|' separated list of qualifier names.
func (q *Qualifier) UnmarshalText(p []byte) error {
	var out Qualifier
	for _, f := range strings.FieldsFunc(string(p), func(r rune) bool { return r == ' ' || r == '|' || r == ',' }) {
		bit, err := qualifierNames.parse(f)
		if err != nil {
			return err
		}
		out |= bit
	}
	*q = out
	return nil
}

// IsArray reports whether t is a sized or unbounded array.
func (t *Type) IsArray() bool { return t.ArrayLength != 0 }

// IsUnboundedArray reports whether t is a runtime-sized array.
func (t *Type) IsUnboundedArray() bool { return t.ArrayLength == UnboundedArray }

// IsNumeric reports whether t is built from bool, integer or float scalars.
func (t *Type) IsNumeric() bool { return t.Base >= TypeBool && t.Base <= TypeFloat }

func (t *Type) IsScalar() bool { return t.IsNumeric() && t.Rows == 1 && t.Cols == 1 }
func (t *Type) IsVector() bool { return t.IsNumeric() && t.Rows > 1 && t.Cols == 1 }
func (t *Type) IsMatrix() bool { return t.IsNumeric() && t.Rows >= 1 && t.Cols > 1 }

// Components returns the number of scalar components of one element of t.
func (t *Type) Components() uint32 { return t.Rows * t.Cols }

// IsIntegral reports whether the scalar kind of t is a signed or unsigned integer or bool.
func (t *Type) IsIntegral() bool {
	switch t.Base {
	case TypeBool, TypeMin16Int, TypeInt, TypeMin16Uint, TypeUint:
		return true
	}
	return false
}

// IsFloatingPoint reports whether the scalar kind of t is a float.
func (t *Type) IsFloatingPoint() bool { return t.Base == TypeMin16Float || t.Base == TypeFloat }

// IsSigned reports whether the scalar kind of t is signed.
func (t *Type) IsSigned() bool {
	return t.Base == TypeMin16Int || t.Base == TypeInt || t.IsFloatingPoint()
}

// String returns an HLSL-like spelling such as "float4x4[2]".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	if q := t.Qualifiers.String(); q != "" {
		b.WriteString(q)
		b.WriteByte(' ')
	}
	b.WriteString(t.Base.String())
	if t.IsNumeric() {
		switch {
		case t.Cols > 1:
			fmt.Fprintf(&b, "%dx%d", t.Rows, t.Cols)
		case t.Rows > 1:
			fmt.Fprintf(&b, "%d", t.Rows)
		}
	}
	switch {
	case t.ArrayLength == UnboundedArray:
		b.WriteString("[]")
	case t.ArrayLength > 0:
		fmt.Fprintf(&b, "[%d]", t.ArrayLength)
	}
	return b.String()
}

func unmarshalEnum[T enumValue](table *enumTable[T], dst *T, p []byte) error {
	v, err := table.parse(string(p))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
