package wgpumap

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/fxclone/fx"
)

// SamplerDescriptor builds the descriptor of a sampler.
func SamplerDescriptor(s *fx.SamplerInfo) (*wgpu.SamplerDescriptor, error) {
	if s == nil {
		return nil, fmt.Errorf("wgpumap: nil sampler")
	}
	desc := &wgpu.SamplerDescriptor{
		Label:         s.UniqueName,
		LodMinClamp:   s.MinLOD,
		LodMaxClamp:   s.MaxLOD,
		MaxAnisotropy: 1,
	}
	desc.MinFilter, desc.MagFilter, desc.MipmapFilter = FilterModes(s.Filter)

	modes := [3]struct {
		src fx.AddressMode
		dst *wgpu.AddressMode
	}{
		{s.AddressU, &desc.AddressModeU},
		{s.AddressV, &desc.AddressModeV},
		{s.AddressW, &desc.AddressModeW},
	}
	for _, m := range modes {
		mode, ok := AddressMode(m.src)
		if !ok {
			return nil, fmt.Errorf("sampler %q: %w", s.Name, unmappable("address mode", m.src))
		}
		*m.dst = mode
	}
	return desc, nil
}

// TextureDescriptor builds the descriptor of a 2D texture. Render target
// and storage textures get the matching usage bits.
func TextureDescriptor(t *fx.TextureInfo) (*wgpu.TextureDescriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("wgpumap: nil texture")
	}
	format, ok := TextureFormat(t.Format, false)
	if !ok {
		return nil, fmt.Errorf("texture %q: %w", t.Name, unmappable("format", t.Format))
	}
	usage := wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst
	if t.RenderTarget {
		usage |= wgpu.TextureUsageRenderAttachment
	}
	if t.StorageAccess {
		usage |= wgpu.TextureUsageStorageBinding
	}
	levels := uint32(t.Levels)
	if levels == 0 {
		levels = 1
	}
	return &wgpu.TextureDescriptor{
		Label:     t.UniqueName,
		Usage:     usage,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              t.Width,
			Height:             t.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        format,
		MipLevelCount: levels,
		SampleCount:   1,
	}, nil
}

// BlendState builds the blend state of render target slot i, or nil when
// blending is disabled for that slot.
func BlendState(p *fx.PassInfo, i int) (*wgpu.BlendState, error) {
	if i < 0 || i >= fx.MaxRenderTargets {
		return nil, fmt.Errorf("wgpumap: render target slot %d out of range", i)
	}
	if !p.BlendEnable[i] {
		return nil, nil
	}
	color, err := blendComponent(p.BlendOp[i], p.SrcBlend[i], p.DestBlend[i])
	if err != nil {
		return nil, fmt.Errorf("pass %q target %d color: %w", p.Name, i, err)
	}
	alpha, err := blendComponent(p.BlendOpAlpha[i], p.SrcBlendAlpha[i], p.DestBlendAlpha[i])
	if err != nil {
		return nil, fmt.Errorf("pass %q target %d alpha: %w", p.Name, i, err)
	}
	return &wgpu.BlendState{Color: color, Alpha: alpha}, nil
}

func blendComponent(op fx.BlendOp, src, dst fx.BlendFactor) (wgpu.BlendComponent, error) {
	var c wgpu.BlendComponent
	var ok bool
	if c.Operation, ok = BlendOperation(op); !ok {
		return c, unmappable("blend op", op)
	}
	if c.SrcFactor, ok = BlendFactor(src); !ok {
		return c, unmappable("blend factor", src)
	}
	if c.DstFactor, ok = BlendFactor(dst); !ok {
		return c, unmappable("blend factor", dst)
	}
	return c, nil
}

// ColorTargets builds one color target per render target the pass writes,
// taking the attachment formats from formats. A pass with no named target
// draws to the back buffer and takes a single target from formats[0].
func ColorTargets(p *fx.PassInfo, formats []wgpu.TextureFormat) ([]wgpu.ColorTargetState, error) {
	if p.IsCompute() {
		return nil, nil
	}
	n := p.RenderTargetCount()
	if n == 0 {
		n = 1
	}
	if len(formats) < n {
		return nil, fmt.Errorf("pass %q: %d render targets, %d formats", p.Name, n, len(formats))
	}
	targets := make([]wgpu.ColorTargetState, n)
	for i := range targets {
		blend, err := BlendState(p, i)
		if err != nil {
			return nil, err
		}
		targets[i] = wgpu.ColorTargetState{
			Format:    formats[i],
			Blend:     blend,
			WriteMask: ColorWriteMask(p.ColorWriteMask[i]),
		}
	}
	return targets, nil
}

// StencilFaceState builds the stencil state applied to both faces.
func StencilFaceState(p *fx.PassInfo) (wgpu.StencilFaceState, error) {
	var s wgpu.StencilFaceState
	var ok bool
	if s.Compare, ok = CompareFunction(p.StencilFunc); !ok {
		return s, fmt.Errorf("pass %q: %w", p.Name, unmappable("stencil func", p.StencilFunc))
	}
	ops := [3]struct {
		src fx.StencilOp
		dst *wgpu.StencilOperation
	}{
		{p.StencilPass, &s.PassOp},
		{p.StencilFail, &s.FailOp},
		{p.StencilDepthFail, &s.DepthFailOp},
	}
	for _, op := range ops {
		if *op.dst, ok = StencilOperation(op.src); !ok {
			return s, fmt.Errorf("pass %q: %w", p.Name, unmappable("stencil op", op.src))
		}
	}
	return s, nil
}

// DepthStencilState builds the depth stencil state of a pass with the given
// attachment format, or nil when the pass does not use the stencil buffer.
func DepthStencilState(p *fx.PassInfo, format wgpu.TextureFormat) (*wgpu.DepthStencilState, error) {
	if !p.StencilEnable {
		return nil, nil
	}
	face, err := StencilFaceState(p)
	if err != nil {
		return nil, err
	}
	return &wgpu.DepthStencilState{
		Format:           format,
		DepthCompare:     wgpu.CompareFunctionAlways,
		StencilFront:     face,
		StencilBack:      face,
		StencilReadMask:  uint32(p.StencilReadMask),
		StencilWriteMask: uint32(p.StencilWriteMask),
	}, nil
}

// PrimitiveState builds the primitive state of a draw pass.
func PrimitiveState(p *fx.PassInfo) (wgpu.PrimitiveState, error) {
	topology, ok := PrimitiveTopology(p.Topology)
	if !ok {
		return wgpu.PrimitiveState{}, fmt.Errorf("pass %q: %w", p.Name, unmappable("topology", p.Topology))
	}
	return wgpu.PrimitiveState{
		Topology:  topology,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeNone,
	}, nil
}

// Check maps every texture, sampler and pass of m and returns the errors of
// the values WebGPU cannot express. Render target formats are taken from
// the module's textures; the back buffer is assumed to be rgba8. Nil entries
// and render targets naming no texture are reported too.
func Check(m *fx.Module) []error {
	if m == nil {
		return []error{fmt.Errorf("wgpumap: nil module")}
	}
	var errs []error
	textures := make(map[string]bool, len(m.Textures))
	formats := make(map[string]wgpu.TextureFormat, len(m.Textures))
	for i, t := range m.Textures {
		if t == nil {
			errs = append(errs, fmt.Errorf("textures[%d]: texture is nil", i))
			continue
		}
		textures[t.UniqueName] = true
		desc, err := TextureDescriptor(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		formats[t.UniqueName] = desc.Format
	}
	checkSampler := func(path string, s *fx.SamplerInfo) {
		if s == nil {
			errs = append(errs, fmt.Errorf("%s: sampler is nil", path))
			return
		}
		if _, err := SamplerDescriptor(s); err != nil {
			errs = append(errs, err)
		}
	}
	for i, s := range m.Samplers {
		checkSampler(fmt.Sprintf("samplers[%d]", i), s)
	}

	for ti, tech := range m.Techniques {
		if tech == nil {
			errs = append(errs, fmt.Errorf("techniques[%d]: technique is nil", ti))
			continue
		}
		for pi, p := range tech.Passes {
			path := fmt.Sprintf("techniques[%d].passes[%d]", ti, pi)
			if p == nil {
				errs = append(errs, fmt.Errorf("%s: pass is nil", path))
				continue
			}
			for si, s := range p.Samplers {
				checkSampler(fmt.Sprintf("%s.samplers[%d]", path, si), s)
			}
			if p.IsCompute() {
				continue
			}
			targets := []wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm}
			if n := p.RenderTargetCount(); n > 0 {
				targets = make([]wgpu.TextureFormat, n)
				for i := range targets {
					name := p.RenderTargetNames[i]
					if !textures[name] {
						errs = append(errs, fmt.Errorf("%s: render target %d names unknown texture %q", path, i, name))
					}
					// Unmappable textures were reported above and map to the zero format here.
					targets[i] = formats[name]
				}
			}
			if _, err := ColorTargets(p, targets); err != nil {
				errs = append(errs, err)
			}
			if _, err := DepthStencilState(p, wgpu.TextureFormatDepth24PlusStencil8); err != nil {
				errs = append(errs, err)
			}
			if _, err := PrimitiveState(p); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}
