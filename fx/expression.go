package fx

// OperationKind is the kind of one step of an access chain.
type OperationKind uint8

const (
	OpCast OperationKind = iota
	OpMember
	OpDynamicIndex
	OpConstantIndex
	OpSwizzle
)

var operationKindNames = newEnumTable("operation", map[OperationKind]string{
	OpCast:          "cast",
	OpMember:        "member",
	OpDynamicIndex:  "dynamic_index",
	OpConstantIndex: "constant_index",
	OpSwizzle:       "swizzle",
})

func (k OperationKind) String() string                { return operationKindNames.name(k) }
func (k OperationKind) MarshalText() ([]byte, error)  { return operationKindNames.marshal(k) }
func (k *OperationKind) UnmarshalText(p []byte) error { return unmarshalEnum(operationKindNames, k, p) }

// SwizzleUnused marks an unused lane of a swizzle selector.
const SwizzleUnused int8 = -1

// Operation is one step of an expression's access chain: a cast, a member
// access, an index or a swizzle, converting From into To.
type Operation struct {
	Kind  OperationKind
	From  *Type
	To    *Type
	Index uint32

	// Swizzle selects vector lanes 0-3 per output component; SwizzleUnused
	// marks components past the end of the selector.
	Swizzle [4]int8
}

// Expression is a reflected expression: a base id, its result type, an
// optional constant value and the chain of operations applied to the base.
type Expression struct {
	Base       uint32
	Type       *Type
	Constant   *Constant // present for compile-time constants
	IsLValue   bool
	IsConstant bool
	Chain      []*Operation
}
