package wgpumap

import (
	"errors"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/fxclone/fx"
)

func TestTextureFormat(t *testing.T) {
	tests := []struct {
		in   fx.TextureFormat
		srgb bool
		want wgpu.TextureFormat
		ok   bool
	}{
		{fx.FormatRGBA8, false, wgpu.TextureFormatRGBA8Unorm, true},
		{fx.FormatRGBA8, true, wgpu.TextureFormatRGBA8UnormSrgb, true},
		{fx.FormatRGBA16F, false, wgpu.TextureFormatRGBA16Float, true},
		{fx.FormatRGBA16F, true, wgpu.TextureFormatRGBA16Float, true},
		{fx.FormatR32F, false, wgpu.TextureFormatR32Float, true},
		{fx.FormatRGB10A2, false, wgpu.TextureFormatRGB10A2Unorm, true},
		{fx.FormatR16, false, 0, false},
		{fx.FormatRG16, false, 0, false},
		{fx.FormatRGBA16, false, 0, false},
		{fx.FormatUnknown, false, 0, false},
	}
	for _, tt := range tests {
		got, ok := TextureFormat(tt.in, tt.srgb)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("TextureFormat(%v, %v) = (%v, %v), want (%v, %v)", tt.in, tt.srgb, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilterModes(t *testing.T) {
	tests := []struct {
		in         fx.FilterMode
		minF, magF wgpu.FilterMode
		mip        wgpu.MipmapFilterMode
	}{
		{fx.FilterMinMagMipPoint, wgpu.FilterModeNearest, wgpu.FilterModeNearest, wgpu.MipmapFilterModeNearest},
		{fx.FilterMinMagMipLinear, wgpu.FilterModeLinear, wgpu.FilterModeLinear, wgpu.MipmapFilterModeLinear},
		{fx.FilterMinPointMagLinearMipPoint, wgpu.FilterModeNearest, wgpu.FilterModeLinear, wgpu.MipmapFilterModeNearest},
		{fx.FilterMinLinearMagPointMipLinear, wgpu.FilterModeLinear, wgpu.FilterModeNearest, wgpu.MipmapFilterModeLinear},
	}
	for _, tt := range tests {
		minF, magF, mip := FilterModes(tt.in)
		if minF != tt.minF || magF != tt.magF || mip != tt.mip {
			t.Errorf("FilterModes(%v) = (%v, %v, %v), want (%v, %v, %v)",
				tt.in, minF, magF, mip, tt.minF, tt.magF, tt.mip)
		}
	}
}

func TestEnumCoverage(t *testing.T) {
	for op := fx.BlendAdd; op <= fx.BlendMax; op++ {
		if _, ok := BlendOperation(op); !ok {
			t.Errorf("BlendOperation(%v) not mapped", op)
		}
	}
	for f := fx.BlendZero; f <= fx.BlendInvDstAlpha; f++ {
		if _, ok := BlendFactor(f); !ok {
			t.Errorf("BlendFactor(%v) not mapped", f)
		}
	}
	for op := fx.StencilZero; op <= fx.StencilDecrSat; op++ {
		if _, ok := StencilOperation(op); !ok {
			t.Errorf("StencilOperation(%v) not mapped", op)
		}
	}
	for f := fx.StencilNever; f <= fx.StencilAlways; f++ {
		if _, ok := CompareFunction(f); !ok {
			t.Errorf("CompareFunction(%v) not mapped", f)
		}
	}
	for topo := fx.TopologyPointList; topo <= fx.TopologyTriangleStrip; topo++ {
		if _, ok := PrimitiveTopology(topo); !ok {
			t.Errorf("PrimitiveTopology(%v) not mapped", topo)
		}
	}
	for _, a := range []fx.AddressMode{fx.AddressWrap, fx.AddressMirror, fx.AddressClamp} {
		if _, ok := AddressMode(a); !ok {
			t.Errorf("AddressMode(%v) not mapped", a)
		}
	}

	if _, ok := AddressMode(fx.AddressBorder); ok {
		t.Error("AddressMode(border) should not map")
	}
	if _, ok := BlendOperation(0); ok {
		t.Error("BlendOperation(0) should not map")
	}
	if _, ok := PrimitiveTopology(0); ok {
		t.Error("PrimitiveTopology(0) should not map")
	}
}

func TestStencilSaturation(t *testing.T) {
	got, _ := StencilOperation(fx.StencilIncrSat)
	if got != wgpu.StencilOperationIncrementClamp {
		t.Errorf("incr_sat = %v, want IncrementClamp", got)
	}
	got, _ = StencilOperation(fx.StencilDecr)
	if got != wgpu.StencilOperationDecrementWrap {
		t.Errorf("decr = %v, want DecrementWrap", got)
	}
}

func TestColorWriteMask(t *testing.T) {
	if got := ColorWriteMask(fx.WriteAll); got != wgpu.ColorWriteMaskAll {
		t.Errorf("ColorWriteMask(all) = %v, want All", got)
	}
	if got := ColorWriteMask(0); got != wgpu.ColorWriteMaskNone {
		t.Errorf("ColorWriteMask(0) = %v, want None", got)
	}
	want := wgpu.ColorWriteMaskRed | wgpu.ColorWriteMaskAlpha
	if got := ColorWriteMask(fx.WriteRed | fx.WriteAlpha); got != want {
		t.Errorf("ColorWriteMask(red|alpha) = %v, want %v", got, want)
	}
}

func TestSamplerDescriptor(t *testing.T) {
	s := &fx.SamplerInfo{
		Name:       "LinearWrap",
		UniqueName: "V::LinearWrap",
		Filter:     fx.FilterMinMagMipLinear,
		AddressU:   fx.AddressWrap,
		AddressV:   fx.AddressMirror,
		AddressW:   fx.AddressClamp,
		MinLOD:     1,
		MaxLOD:     4,
	}
	desc, err := SamplerDescriptor(s)
	if err != nil {
		t.Fatalf("SamplerDescriptor failed: %v", err)
	}
	if desc.Label != "V::LinearWrap" {
		t.Errorf("Label = %q", desc.Label)
	}
	if desc.AddressModeU != wgpu.AddressModeRepeat ||
		desc.AddressModeV != wgpu.AddressModeMirrorRepeat ||
		desc.AddressModeW != wgpu.AddressModeClampToEdge {
		t.Errorf("address modes = %v/%v/%v", desc.AddressModeU, desc.AddressModeV, desc.AddressModeW)
	}
	if desc.MinFilter != wgpu.FilterModeLinear || desc.MipmapFilter != wgpu.MipmapFilterModeLinear {
		t.Errorf("filters = %v/%v", desc.MinFilter, desc.MipmapFilter)
	}
	if desc.LodMinClamp != 1 || desc.LodMaxClamp != 4 {
		t.Errorf("lod clamp = [%v, %v], want [1, 4]", desc.LodMinClamp, desc.LodMaxClamp)
	}

	s.AddressV = fx.AddressBorder
	if _, err := SamplerDescriptor(s); !errors.Is(err, ErrUnmappable) {
		t.Errorf("border address: error = %v, want ErrUnmappable", err)
	}
}

func TestTextureDescriptor(t *testing.T) {
	tex := &fx.TextureInfo{
		Name: "BloomTex", UniqueName: "V::BloomTex",
		Width: 640, Height: 360, Levels: 5, Format: fx.FormatRGBA16F,
		RenderTarget: true,
	}
	desc, err := TextureDescriptor(tex)
	if err != nil {
		t.Fatalf("TextureDescriptor failed: %v", err)
	}
	if desc.Size.Width != 640 || desc.Size.Height != 360 || desc.Size.DepthOrArrayLayers != 1 {
		t.Errorf("Size = %+v", desc.Size)
	}
	if desc.MipLevelCount != 5 {
		t.Errorf("MipLevelCount = %d, want 5", desc.MipLevelCount)
	}
	if desc.Usage&wgpu.TextureUsageRenderAttachment == 0 {
		t.Error("render target texture lacks RenderAttachment usage")
	}
	if desc.Usage&wgpu.TextureUsageStorageBinding != 0 {
		t.Error("plain texture has StorageBinding usage")
	}

	tex.Format = fx.FormatRGBA16
	if _, err := TextureDescriptor(tex); !errors.Is(err, ErrUnmappable) {
		t.Errorf("rgba16: error = %v, want ErrUnmappable", err)
	}
}

func drawPass() *fx.PassInfo {
	p := &fx.PassInfo{
		Name:         "Combine",
		VSEntryPoint: "PostProcessVS",
		PSEntryPoint: "PS_Combine",
		Topology:     fx.TopologyTriangleList,
		StencilFunc:  fx.StencilAlways,
		StencilPass:  fx.StencilKeep,
		StencilFail:  fx.StencilKeep,
	}
	for i := range p.ColorWriteMask {
		p.ColorWriteMask[i] = fx.WriteAll
		p.BlendOp[i], p.BlendOpAlpha[i] = fx.BlendAdd, fx.BlendAdd
		p.SrcBlend[i], p.SrcBlendAlpha[i] = fx.BlendOne, fx.BlendOne
	}
	return p
}

func TestColorTargets(t *testing.T) {
	p := drawPass()
	p.RenderTargetNames[0] = "V::BloomTex"
	p.RenderTargetNames[1] = "V::LumaTex"
	p.BlendEnable[1] = true
	p.SrcBlend[1], p.DestBlend[1] = fx.BlendSrcAlpha, fx.BlendInvSrcAlpha
	p.ColorWriteMask[0] = fx.WriteRed

	formats := []wgpu.TextureFormat{wgpu.TextureFormatRGBA16Float, wgpu.TextureFormatR32Float}
	targets, err := ColorTargets(p, formats)
	if err != nil {
		t.Fatalf("ColorTargets failed: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("len(targets) = %d, want 2", len(targets))
	}
	if targets[0].Blend != nil {
		t.Error("target 0 should not blend")
	}
	if targets[0].WriteMask != wgpu.ColorWriteMaskRed {
		t.Errorf("target 0 WriteMask = %v, want Red", targets[0].WriteMask)
	}
	b := targets[1].Blend
	if b == nil {
		t.Fatal("target 1 should blend")
	}
	if b.Color.SrcFactor != wgpu.BlendFactorSrcAlpha || b.Color.DstFactor != wgpu.BlendFactorOneMinusSrcAlpha {
		t.Errorf("target 1 color blend = %+v", b.Color)
	}
	if targets[1].Format != wgpu.TextureFormatR32Float {
		t.Errorf("target 1 Format = %v", targets[1].Format)
	}

	if _, err := ColorTargets(p, formats[:1]); err == nil {
		t.Error("ColorTargets with too few formats should fail")
	}
}

func TestColorTargetsBackBuffer(t *testing.T) {
	targets, err := ColorTargets(drawPass(), []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm})
	if err != nil {
		t.Fatalf("ColorTargets failed: %v", err)
	}
	if len(targets) != 1 || targets[0].Format != wgpu.TextureFormatBGRA8Unorm {
		t.Errorf("targets = %+v, want one BGRA8 target", targets)
	}

	compute := &fx.PassInfo{Name: "Reduce", CSEntryPoint: "CS_Luma"}
	if targets, err := ColorTargets(compute, nil); err != nil || targets != nil {
		t.Errorf("compute pass: (%v, %v), want (nil, nil)", targets, err)
	}
}

func TestBlendStateRange(t *testing.T) {
	if _, err := BlendState(drawPass(), fx.MaxRenderTargets); err == nil {
		t.Error("BlendState out of range should fail")
	}
}

func TestDepthStencilState(t *testing.T) {
	p := drawPass()
	if ds, err := DepthStencilState(p, wgpu.TextureFormatDepth24PlusStencil8); err != nil || ds != nil {
		t.Errorf("stencil disabled: (%v, %v), want (nil, nil)", ds, err)
	}

	p.StencilEnable = true
	p.StencilFunc = fx.StencilEqual
	p.StencilPass = fx.StencilReplace
	p.StencilReadMask, p.StencilWriteMask = 0x0f, 0xf0
	ds, err := DepthStencilState(p, wgpu.TextureFormatDepth24PlusStencil8)
	if err != nil {
		t.Fatalf("DepthStencilState failed: %v", err)
	}
	if ds.StencilFront != ds.StencilBack {
		t.Error("front and back faces differ")
	}
	if ds.StencilFront.Compare != wgpu.CompareFunctionEqual || ds.StencilFront.PassOp != wgpu.StencilOperationReplace {
		t.Errorf("StencilFront = %+v", ds.StencilFront)
	}
	if ds.StencilReadMask != 0x0f || ds.StencilWriteMask != 0xf0 {
		t.Errorf("masks = %#x/%#x", ds.StencilReadMask, ds.StencilWriteMask)
	}

	p.StencilFail = 99
	if _, err := DepthStencilState(p, wgpu.TextureFormatDepth24PlusStencil8); !errors.Is(err, ErrUnmappable) {
		t.Errorf("bad stencil op: error = %v, want ErrUnmappable", err)
	}
}

func TestPrimitiveState(t *testing.T) {
	p := drawPass()
	p.Topology = fx.TopologyTriangleStrip
	ps, err := PrimitiveState(p)
	if err != nil {
		t.Fatalf("PrimitiveState failed: %v", err)
	}
	if ps.Topology != wgpu.PrimitiveTopologyTriangleStrip {
		t.Errorf("Topology = %v", ps.Topology)
	}
	p.Topology = 0
	if _, err := PrimitiveState(p); !errors.Is(err, ErrUnmappable) {
		t.Errorf("zero topology: error = %v, want ErrUnmappable", err)
	}
}

func TestCheck(t *testing.T) {
	m := &fx.Module{
		Textures: []*fx.TextureInfo{
			{Name: "A", UniqueName: "V::A", Width: 4, Height: 4, Levels: 1, Format: fx.FormatRGBA8, RenderTarget: true},
			{Name: "B", UniqueName: "V::B", Width: 4, Height: 4, Levels: 1, Format: fx.FormatR16},
		},
		Samplers: []*fx.SamplerInfo{
			{Name: "S", AddressU: fx.AddressBorder, AddressV: fx.AddressClamp, AddressW: fx.AddressClamp},
		},
	}
	p := drawPass()
	p.RenderTargetNames[0] = "V::A"
	m.Techniques = []*fx.TechniqueInfo{{Name: "T", Passes: []*fx.PassInfo{p}}}

	errs := Check(m)
	if len(errs) != 2 {
		t.Fatalf("Check returned %d errors, want 2: %v", len(errs), errs)
	}
	for _, err := range errs {
		if !errors.Is(err, ErrUnmappable) {
			t.Errorf("error %v does not wrap ErrUnmappable", err)
		}
	}
}

func TestCheckUnknownRenderTarget(t *testing.T) {
	m := &fx.Module{
		Textures: []*fx.TextureInfo{
			{Name: "A", UniqueName: "V::A", Width: 4, Height: 4, Levels: 1, Format: fx.FormatRGBA8, RenderTarget: true},
		},
	}
	p := drawPass()
	p.RenderTargetNames[0] = "V::A"
	p.RenderTargetNames[1] = "V::Missing"
	m.Techniques = []*fx.TechniqueInfo{{Name: "T", Passes: []*fx.PassInfo{p}}}

	errs := Check(m)
	if len(errs) != 1 {
		t.Fatalf("Check returned %d errors, want 1: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), `"V::Missing"`) {
		t.Errorf("error = %v, want it to name the missing texture", errs[0])
	}
}

func TestCheckNilEntries(t *testing.T) {
	p := drawPass()
	p.Samplers = []*fx.SamplerInfo{nil}
	m := &fx.Module{
		Textures: []*fx.TextureInfo{nil},
		Samplers: []*fx.SamplerInfo{nil},
		Techniques: []*fx.TechniqueInfo{
			nil,
			{Name: "T", Passes: []*fx.PassInfo{nil, p}},
		},
	}

	errs := Check(m)
	want := []string{
		"textures[0]: texture is nil",
		"samplers[0]: sampler is nil",
		"techniques[0]: technique is nil",
		"techniques[1].passes[0]: pass is nil",
		"techniques[1].passes[1].samplers[0]: sampler is nil",
	}
	if len(errs) != len(want) {
		t.Fatalf("Check returned %d errors, want %d: %v", len(errs), len(want), errs)
	}
	for i, err := range errs {
		if err.Error() != want[i] {
			t.Errorf("errs[%d] = %q, want %q", i, err, want[i])
		}
	}

	if errs := Check(nil); len(errs) != 1 {
		t.Errorf("Check(nil) = %v, want one error", errs)
	}
}
