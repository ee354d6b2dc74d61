package clone

import (
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/fxclone/alloc"
	"github.com/gogpu/fxclone/fx"
)

// ---------------------------------------------------------------------------
// Source tree builders
// ---------------------------------------------------------------------------

func testType(base fx.BaseType, rows, cols uint32) *fx.Type {
	return &fx.Type{Base: base, Rows: rows, Cols: cols}
}

func floatConstant(vals ...float32) *fx.Constant {
	c := &fx.Constant{}
	for i, v := range vals {
		c.Value.SetFloat(i, v)
	}
	return c
}

func stringConstant(s string) *fx.Constant {
	return &fx.Constant{String: s}
}

func testAnnotation(name string, v float32) *fx.Annotation {
	return &fx.Annotation{
		Type:  testType(fx.TypeFloat, 1, 1),
		Name:  name,
		Value: floatConstant(v),
	}
}

func testTexture(name string, binding uint32, rt bool) *fx.TextureInfo {
	return &fx.TextureInfo{
		ID:           binding + 100,
		Binding:      binding,
		Name:         name,
		Semantic:     "",
		UniqueName:   "V::" + name,
		Annotations:  []*fx.Annotation{{Type: testType(fx.TypeString, 0, 0), Name: "source", Value: stringConstant(name + ".png")}},
		Width:        1920,
		Height:       1080,
		Levels:       1,
		Format:       fx.FormatRGBA8,
		RenderTarget: rt,
	}
}

func testSampler(name, texture string, binding uint32) *fx.SamplerInfo {
	return &fx.SamplerInfo{
		ID:             binding + 200,
		Binding:        binding,
		TextureBinding: binding,
		Name:           name,
		UniqueName:     "V::" + name,
		TextureName:    texture,
		Filter:         fx.FilterMinMagMipLinear,
		AddressU:       fx.AddressClamp,
		AddressV:       fx.AddressClamp,
		AddressW:       fx.AddressWrap,
		MinLOD:         -1000,
		MaxLOD:         1000,
		LODBias:        0.5,
		SRGB:           true,
	}
}

func testStorage(name, texture string, binding uint32) *fx.StorageInfo {
	return &fx.StorageInfo{
		ID:          binding + 300,
		Binding:     binding,
		Name:        name,
		UniqueName:  "V::" + name,
		TextureName: texture,
		Format:      fx.FormatR32F,
		Level:       0,
	}
}

func testPass(name string) *fx.PassInfo {
	p := &fx.PassInfo{
		Name:               name,
		VSEntryPoint:       "PostProcessVS",
		PSEntryPoint:       "PS_" + name,
		ClearRenderTargets: true,
		StencilEnable:      true,
		StencilReadMask:    0xff,
		StencilWriteMask:   0x0f,
		StencilFunc:        fx.StencilAlways,
		StencilRef:         7,
		StencilPass:        fx.StencilReplace,
		StencilFail:        fx.StencilKeep,
		StencilDepthFail:   fx.StencilKeep,
		NumVertices:        3,
		Topology:           fx.TopologyTriangleList,
		ViewportWidth:      1920,
		ViewportHeight:     1080,
	}
	p.RenderTargetNames[0] = "V::Color"
	for i := 0; i < fx.MaxRenderTargets; i++ {
		p.ColorWriteMask[i] = fx.WriteAll
		p.BlendOp[i] = fx.BlendAdd
		p.BlendOpAlpha[i] = fx.BlendAdd
		p.SrcBlend[i] = fx.BlendOne
		p.DestBlend[i] = fx.BlendZero
		p.SrcBlendAlpha[i] = fx.BlendOne
		p.DestBlendAlpha[i] = fx.BlendZero
	}
	p.BlendEnable[0] = true
	p.SrcBlend[0] = fx.BlendSrcAlpha
	p.DestBlend[0] = fx.BlendInvSrcAlpha
	return p
}

// testModule returns a module exercising every entity kind of the tree.
func testModule() *fx.Module {
	arrayInit := &fx.Constant{Elements: []*fx.Constant{floatConstant(1, 0, 0), floatConstant(0, 1, 0)}}

	blur := testPass("Blur")
	blur.Samplers = []*fx.SamplerInfo{testSampler("ColorSampler", "V::Color", 0)}

	compute := &fx.PassInfo{
		Name:              "Histogram",
		CSEntryPoint:      "CS_Histogram",
		ViewportWidth:     16,
		ViewportHeight:    16,
		ViewportDispatchZ: 1,
		Samplers:          []*fx.SamplerInfo{testSampler("ColorSampler", "V::Color", 0)},
		Storages:          []*fx.StorageInfo{testStorage("HistogramStorage", "V::Histogram", 0)},
	}

	return &fx.Module{
		Code: []byte("float4 PS_Blur(float4 pos : SV_Position) : SV_Target { return 0; }\n"),
		EntryPoints: []*fx.EntryPoint{
			{Name: "PostProcessVS", Stage: fx.StageVertex},
			{Name: "PS_Blur", Stage: fx.StagePixel},
			{Name: "CS_Histogram", Stage: fx.StageCompute},
		},
		Textures: []*fx.TextureInfo{
			testTexture("Color", 0, true),
			{ID: 7, Binding: 1, Name: "Histogram", UniqueName: "V::Histogram", Width: 256, Height: 1, Levels: 1, Format: fx.FormatR32F, StorageAccess: true},
		},
		Samplers: []*fx.SamplerInfo{testSampler("ColorSampler", "V::Color", 0)},
		Storages: []*fx.StorageInfo{testStorage("HistogramStorage", "V::Histogram", 0)},
		Uniforms: []*fx.UniformInfo{
			{
				Name:           "Strength",
				Type:           &fx.Type{Base: fx.TypeFloat, Rows: 1, Cols: 1, Qualifiers: fx.QualifierUniform},
				Size:           4,
				Offset:         0,
				Annotations:    []*fx.Annotation{testAnnotation("ui_min", 0), testAnnotation("ui_max", 2)},
				HasInitializer: true,
				Initializer:    floatConstant(1),
			},
			{
				Name:           "Palette",
				Type:           &fx.Type{Base: fx.TypeFloat, Rows: 3, Cols: 1, ArrayLength: 2, Qualifiers: fx.QualifierUniform},
				Size:           32,
				Offset:         16,
				HasInitializer: true,
				Initializer:    arrayInit,
			},
		},
		SpecConstants: []*fx.UniformInfo{
			{Name: "SAMPLES", Type: testType(fx.TypeInt, 1, 1), Size: 4, HasInitializer: true, Initializer: &fx.Constant{Value: fx.ScalarsOf(fx.IntValues{-3})}},
		},
		Techniques: []*fx.TechniqueInfo{
			{
				Name:        "Blur",
				Passes:      []*fx.PassInfo{blur, compute},
				Annotations: []*fx.Annotation{{Type: testType(fx.TypeBool, 1, 1), Name: "enabled", Value: &fx.Constant{Value: fx.Scalars{1}}}},
			},
		},
		TotalUniformSize:   48,
		NumTextureBindings: 2,
		NumSamplerBindings: 1,
		NumStorageBindings: 1,
	}
}

// scenarioModule is one technique with one pass using two samplers and one storage.
func scenarioModule() *fx.Module {
	pass := testPass("Main")
	pass.Samplers = []*fx.SamplerInfo{
		testSampler("BackBuffer", "V::Color", 0),
		testSampler("Depth", "V::Depth", 1),
	}
	pass.Storages = []*fx.StorageInfo{testStorage("Out", "V::Color", 0)}
	return &fx.Module{
		Code:       []byte{0x03, 0x02, 0x23, 0x07},
		Techniques: []*fx.TechniqueInfo{{Name: "Scenario", Passes: []*fx.PassInfo{pass}}},
	}
}

// ---------------------------------------------------------------------------
// Assertions
// ---------------------------------------------------------------------------

// equateEmpty treats the nil sequences of a source tree as equal to the
// empty sequences its clone always carries.
var equateEmpty = cmpopts.EquateEmpty()

// newCounting returns a Cloner backed by a fresh Counter.
func newCounting(parallel bool) (*Cloner, *alloc.Counter) {
	counter := alloc.NewCounter(0)
	return New(Options{Allocator: counter, Parallel: parallel}), counter
}

// failingAt returns a Cloner whose n-th allocation fails, and the counter
// behind it.
func failingAt(n int, parallel bool) (*Cloner, *alloc.Counter) {
	counter := alloc.NewCounter(0)
	return New(Options{Allocator: alloc.NewFailAt(counter, n), Parallel: parallel}), counter
}

func assertNoLiveAllocations(t *testing.T, counter *alloc.Counter) {
	t.Helper()
	if count, bytes := counter.Live(); count != 0 || bytes != 0 {
		t.Errorf("live allocations = (%d, %d bytes), want none", count, bytes)
	}
}

// assertSeparateString fails if a and b share backing storage.
func assertSeparateString(t *testing.T, what, a, b string) {
	t.Helper()
	if a == "" || b == "" {
		return
	}
	if unsafe.StringData(a) == unsafe.StringData(b) {
		t.Errorf("%s shares storage with the source", what)
	}
}
