package fx

// MaxRenderTargets is the number of render target slots of a pass.
const MaxRenderTargets = 8

// BlendOp is a blend equation.
type BlendOp uint8

const (
	BlendAdd BlendOp = iota + 1
	BlendSubtract
	BlendRevSubtract
	BlendMin
	BlendMax
)

var blendOpNames = newEnumTable("blend op", map[BlendOp]string{
	BlendAdd:         "add",
	BlendSubtract:    "subtract",
	BlendRevSubtract: "rev_subtract",
	BlendMin:         "min",
	BlendMax:         "max",
})

func (o BlendOp) String() string                { return blendOpNames.name(o) }
func (o BlendOp) MarshalText() ([]byte, error)  { return blendOpNames.marshal(o) }
func (o *BlendOp) UnmarshalText(p []byte) error { return unmarshalEnum(blendOpNames, o, p) }

// BlendFactor is a blend source or destination factor.
type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendSrcAlpha
	BlendInvSrcColor
	BlendInvSrcAlpha
	BlendDstColor
	BlendDstAlpha
	BlendInvDstColor
	BlendInvDstAlpha
)

var blendFactorNames = newEnumTable("blend factor", map[BlendFactor]string{
	BlendZero:        "zero",
	BlendOne:         "one",
	BlendSrcColor:    "src_color",
	BlendSrcAlpha:    "src_alpha",
	BlendInvSrcColor: "inv_src_color",
	BlendInvSrcAlpha: "inv_src_alpha",
	BlendDstColor:    "dst_color",
	BlendDstAlpha:    "dst_alpha",
	BlendInvDstColor: "inv_dst_color",
	BlendInvDstAlpha: "inv_dst_alpha",
})

func (f BlendFactor) String() string                { return blendFactorNames.name(f) }
func (f BlendFactor) MarshalText() ([]byte, error)  { return blendFactorNames.marshal(f) }
func (f *BlendFactor) UnmarshalText(p []byte) error { return unmarshalEnum(blendFactorNames, f, p) }

// StencilOp is the action applied to the stencil buffer.
type StencilOp uint8

const (
	StencilZero StencilOp = iota
	StencilKeep
	StencilInvert
	StencilReplace
	StencilIncr
	StencilIncrSat
	StencilDecr
	StencilDecrSat
)

var stencilOpNames = newEnumTable("stencil op", map[StencilOp]string{
	StencilZero:    "zero",
	StencilKeep:    "keep",
	StencilInvert:  "invert",
	StencilReplace: "replace",
	StencilIncr:    "incr",
	StencilIncrSat: "incr_sat",
	StencilDecr:    "decr",
	StencilDecrSat: "decr_sat",
})

func (o StencilOp) String() string                { return stencilOpNames.name(o) }
func (o StencilOp) MarshalText() ([]byte, error)  { return stencilOpNames.marshal(o) }
func (o *StencilOp) UnmarshalText(p []byte) error { return unmarshalEnum(stencilOpNames, o, p) }

// StencilFunc is the stencil comparison function.
type StencilFunc uint8

const (
	StencilNever StencilFunc = iota
	StencilEqual
	StencilNotEqual
	StencilLess
	StencilLessEqual
	StencilGreater
	StencilGreaterEqual
	StencilAlways
)

var stencilFuncNames = newEnumTable("stencil func", map[StencilFunc]string{
	StencilNever:        "never",
	StencilEqual:        "equal",
	StencilNotEqual:     "not_equal",
	StencilLess:         "less",
	StencilLessEqual:    "less_equal",
	StencilGreater:      "greater",
	StencilGreaterEqual: "greater_equal",
	StencilAlways:       "always",
})

func (f StencilFunc) String() string                { return stencilFuncNames.name(f) }
func (f StencilFunc) MarshalText() ([]byte, error)  { return stencilFuncNames.marshal(f) }
func (f *StencilFunc) UnmarshalText(p []byte) error { return unmarshalEnum(stencilFuncNames, f, p) }

// PrimitiveTopology is the primitive assembly mode of a draw pass.
type PrimitiveTopology uint8

const (
	TopologyPointList PrimitiveTopology = iota + 1
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
)

var topologyNames = newEnumTable("primitive topology", map[PrimitiveTopology]string{
	TopologyPointList:     "point_list",
	TopologyLineList:      "line_list",
	TopologyLineStrip:     "line_strip",
	TopologyTriangleList:  "triangle_list",
	TopologyTriangleStrip: "triangle_strip",
})

func (t PrimitiveTopology) String() string                { return topologyNames.name(t) }
func (t PrimitiveTopology) MarshalText() ([]byte, error)  { return topologyNames.marshal(t) }
func (t *PrimitiveTopology) UnmarshalText(p []byte) error { return unmarshalEnum(topologyNames, t, p) }

// Color write mask bits.
const (
	WriteRed   uint8 = 1 << 0
	WriteGreen uint8 = 1 << 1
	WriteBlue  uint8 = 1 << 2
	WriteAlpha uint8 = 1 << 3
	WriteAll         = WriteRed | WriteGreen | WriteBlue | WriteAlpha
)

// PassInfo is one draw or dispatch step of a technique.
//
// The per render target state is always MaxRenderTargets wide, whatever
// number of targets the pass actually writes. Unused slots hold an empty
// name and the zero state.
type PassInfo struct {
	Name              string
	RenderTargetNames [MaxRenderTargets]string
	VSEntryPoint      string
	PSEntryPoint      string
	CSEntryPoint      string

	GenerateMipmaps    bool
	ClearRenderTargets bool
	SRGBWriteEnable    bool

	BlendEnable    [MaxRenderTargets]bool
	ColorWriteMask [MaxRenderTargets]uint8
	BlendOp        [MaxRenderTargets]BlendOp
	BlendOpAlpha   [MaxRenderTargets]BlendOp
	SrcBlend       [MaxRenderTargets]BlendFactor
	DestBlend      [MaxRenderTargets]BlendFactor
	SrcBlendAlpha  [MaxRenderTargets]BlendFactor
	DestBlendAlpha [MaxRenderTargets]BlendFactor

	StencilEnable    bool
	StencilReadMask  uint8
	StencilWriteMask uint8
	StencilFunc      StencilFunc
	StencilRef       uint32
	StencilPass      StencilOp
	StencilFail      StencilOp
	StencilDepthFail StencilOp

	NumVertices       uint32
	Topology          PrimitiveTopology
	ViewportWidth     uint32
	ViewportHeight    uint32
	ViewportDispatchZ uint32

	Samplers []*SamplerInfo
	Storages []*StorageInfo
}

// IsCompute reports whether the pass dispatches a compute shader.
func (p *PassInfo) IsCompute() bool { return p.CSEntryPoint != "" }

// RenderTargetCount returns the number of leading non-empty render target names.
func (p *PassInfo) RenderTargetCount() int {
	for i, name := range p.RenderTargetNames {
		if name == "" {
			return i
		}
	}
	return MaxRenderTargets
}

// TechniqueInfo is a named, ordered group of passes.
type TechniqueInfo struct {
	Name        string
	Passes      []*PassInfo
	Annotations []*Annotation
}
