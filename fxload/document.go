package fxload

import (
	"fmt"
	"math"

	"github.com/gogpu/fxclone/fx"
)

// document is the on-disk fixture schema. Field names match in TOML and YAML.
type document struct {
	Code               string `toml:"code" yaml:"code"`
	TotalUniformSize   uint32 `toml:"total_uniform_size" yaml:"total_uniform_size"`
	NumTextureBindings uint32 `toml:"num_texture_bindings" yaml:"num_texture_bindings"`
	NumSamplerBindings uint32 `toml:"num_sampler_bindings" yaml:"num_sampler_bindings"`
	NumStorageBindings uint32 `toml:"num_storage_bindings" yaml:"num_storage_bindings"`

	EntryPoints   []entryPointDoc `toml:"entry_points" yaml:"entry_points"`
	Textures      []textureDoc    `toml:"textures" yaml:"textures"`
	Samplers      []samplerDoc    `toml:"samplers" yaml:"samplers"`
	Storages      []storageDoc    `toml:"storages" yaml:"storages"`
	Uniforms      []uniformDoc    `toml:"uniforms" yaml:"uniforms"`
	SpecConstants []uniformDoc    `toml:"spec_constants" yaml:"spec_constants"`
	Techniques    []techniqueDoc  `toml:"techniques" yaml:"techniques"`
}

type typeDoc struct {
	Base        fx.BaseType  `toml:"base" yaml:"base"`
	Rows        uint32       `toml:"rows" yaml:"rows"`
	Cols        uint32       `toml:"cols" yaml:"cols"`
	Qualifiers  fx.Qualifier `toml:"qualifiers" yaml:"qualifiers"`
	ArrayLength int32        `toml:"array_length" yaml:"array_length"`
	Definition  uint32       `toml:"definition" yaml:"definition"`
}

type constantDoc struct {
	Float    []float32     `toml:"float" yaml:"float"`
	Int      []int32       `toml:"int" yaml:"int"`
	Uint     []uint32      `toml:"uint" yaml:"uint"`
	Bool     []bool        `toml:"bool" yaml:"bool"`
	String   string        `toml:"string" yaml:"string"`
	Elements []constantDoc `toml:"elements" yaml:"elements"`
}

type annotationDoc struct {
	Name  string      `toml:"name" yaml:"name"`
	Type  typeDoc     `toml:"type" yaml:"type"`
	Value constantDoc `toml:"value" yaml:"value"`
}

type entryPointDoc struct {
	Name  string         `toml:"name" yaml:"name"`
	Stage fx.ShaderStage `toml:"stage" yaml:"stage"`
}

type textureDoc struct {
	ID            uint32           `toml:"id" yaml:"id"`
	Binding       uint32           `toml:"binding" yaml:"binding"`
	Name          string           `toml:"name" yaml:"name"`
	Semantic      string           `toml:"semantic" yaml:"semantic"`
	UniqueName    string           `toml:"unique_name" yaml:"unique_name"`
	Width         uint32           `toml:"width" yaml:"width"`
	Height        uint32           `toml:"height" yaml:"height"`
	Levels        uint16           `toml:"levels" yaml:"levels"`
	Format        fx.TextureFormat `toml:"format" yaml:"format"`
	RenderTarget  bool             `toml:"render_target" yaml:"render_target"`
	StorageAccess bool             `toml:"storage_access" yaml:"storage_access"`
	Annotations   []annotationDoc  `toml:"annotations" yaml:"annotations"`
}

type samplerDoc struct {
	ID             uint32          `toml:"id" yaml:"id"`
	Binding        uint32          `toml:"binding" yaml:"binding"`
	TextureBinding uint32          `toml:"texture_binding" yaml:"texture_binding"`
	Name           string          `toml:"name" yaml:"name"`
	UniqueName     string          `toml:"unique_name" yaml:"unique_name"`
	TextureName    string          `toml:"texture_name" yaml:"texture_name"`
	Filter         fx.FilterMode   `toml:"filter" yaml:"filter"`
	AddressU       *fx.AddressMode `toml:"address_u" yaml:"address_u"`
	AddressV       *fx.AddressMode `toml:"address_v" yaml:"address_v"`
	AddressW       *fx.AddressMode `toml:"address_w" yaml:"address_w"`
	MinLOD         float32         `toml:"min_lod" yaml:"min_lod"`
	MaxLOD         *float32        `toml:"max_lod" yaml:"max_lod"`
	LODBias        float32         `toml:"lod_bias" yaml:"lod_bias"`
	SRGB           bool            `toml:"srgb" yaml:"srgb"`
	Annotations    []annotationDoc `toml:"annotations" yaml:"annotations"`
}

type storageDoc struct {
	ID          uint32           `toml:"id" yaml:"id"`
	Binding     uint32           `toml:"binding" yaml:"binding"`
	Name        string           `toml:"name" yaml:"name"`
	UniqueName  string           `toml:"unique_name" yaml:"unique_name"`
	TextureName string           `toml:"texture_name" yaml:"texture_name"`
	Format      fx.TextureFormat `toml:"format" yaml:"format"`
	Level       uint16           `toml:"level" yaml:"level"`
}

type uniformDoc struct {
	Name        string          `toml:"name" yaml:"name"`
	Type        typeDoc         `toml:"type" yaml:"type"`
	Size        uint32          `toml:"size" yaml:"size"`
	Offset      uint32          `toml:"offset" yaml:"offset"`
	Initializer *constantDoc    `toml:"initializer" yaml:"initializer"`
	Annotations []annotationDoc `toml:"annotations" yaml:"annotations"`
}

type targetDoc struct {
	Slot           int             `toml:"slot" yaml:"slot"`
	RenderTarget   string          `toml:"render_target" yaml:"render_target"`
	BlendEnable    bool            `toml:"blend_enable" yaml:"blend_enable"`
	WriteMask      *uint8          `toml:"write_mask" yaml:"write_mask"`
	BlendOp        *fx.BlendOp     `toml:"blend_op" yaml:"blend_op"`
	BlendOpAlpha   *fx.BlendOp     `toml:"blend_op_alpha" yaml:"blend_op_alpha"`
	SrcBlend       *fx.BlendFactor `toml:"src_blend" yaml:"src_blend"`
	DestBlend      *fx.BlendFactor `toml:"dest_blend" yaml:"dest_blend"`
	SrcBlendAlpha  *fx.BlendFactor `toml:"src_blend_alpha" yaml:"src_blend_alpha"`
	DestBlendAlpha *fx.BlendFactor `toml:"dest_blend_alpha" yaml:"dest_blend_alpha"`
}

type stencilDoc struct {
	Enable    bool            `toml:"enable" yaml:"enable"`
	ReadMask  *uint8          `toml:"read_mask" yaml:"read_mask"`
	WriteMask *uint8          `toml:"write_mask" yaml:"write_mask"`
	Func      *fx.StencilFunc `toml:"func" yaml:"func"`
	Ref       uint32          `toml:"ref" yaml:"ref"`
	Pass      *fx.StencilOp   `toml:"pass" yaml:"pass"`
	Fail      *fx.StencilOp   `toml:"fail" yaml:"fail"`
	DepthFail *fx.StencilOp   `toml:"depth_fail" yaml:"depth_fail"`
}

type passDoc struct {
	Name               string                `toml:"name" yaml:"name"`
	VSEntryPoint       string                `toml:"vs_entry_point" yaml:"vs_entry_point"`
	PSEntryPoint       string                `toml:"ps_entry_point" yaml:"ps_entry_point"`
	CSEntryPoint       string                `toml:"cs_entry_point" yaml:"cs_entry_point"`
	GenerateMipmaps    *bool                 `toml:"generate_mipmaps" yaml:"generate_mipmaps"`
	ClearRenderTargets bool                  `toml:"clear_render_targets" yaml:"clear_render_targets"`
	SRGBWriteEnable    bool                  `toml:"srgb_write_enable" yaml:"srgb_write_enable"`
	Targets            []targetDoc           `toml:"targets" yaml:"targets"`
	Stencil            stencilDoc            `toml:"stencil" yaml:"stencil"`
	NumVertices        *uint32               `toml:"num_vertices" yaml:"num_vertices"`
	Topology           *fx.PrimitiveTopology `toml:"topology" yaml:"topology"`
	ViewportWidth      uint32                `toml:"viewport_width" yaml:"viewport_width"`
	ViewportHeight     uint32                `toml:"viewport_height" yaml:"viewport_height"`
	ViewportDispatchZ  uint32                `toml:"viewport_dispatch_z" yaml:"viewport_dispatch_z"`
	Samplers           []samplerDoc          `toml:"samplers" yaml:"samplers"`
	Storages           []storageDoc          `toml:"storages" yaml:"storages"`
}

type techniqueDoc struct {
	Name        string          `toml:"name" yaml:"name"`
	Passes      []passDoc       `toml:"passes" yaml:"passes"`
	Annotations []annotationDoc `toml:"annotations" yaml:"annotations"`
}

func (d *document) module() (*fx.Module, error) {
	m := &fx.Module{
		TotalUniformSize:   d.TotalUniformSize,
		NumTextureBindings: d.NumTextureBindings,
		NumSamplerBindings: d.NumSamplerBindings,
		NumStorageBindings: d.NumStorageBindings,
	}
	if d.Code != "" {
		m.Code = []byte(d.Code)
	}

	for _, ep := range d.EntryPoints {
		m.EntryPoints = append(m.EntryPoints, &fx.EntryPoint{Name: ep.Name, Stage: ep.Stage})
	}
	for i := range d.Textures {
		tex, err := d.Textures[i].texture()
		if err != nil {
			return nil, fmt.Errorf("fxload: textures[%d]: %w", i, err)
		}
		m.Textures = append(m.Textures, tex)
	}
	for i := range d.Samplers {
		s, err := d.Samplers[i].sampler()
		if err != nil {
			return nil, fmt.Errorf("fxload: samplers[%d]: %w", i, err)
		}
		m.Samplers = append(m.Samplers, s)
	}
	for i := range d.Storages {
		m.Storages = append(m.Storages, d.Storages[i].storage())
	}
	for i := range d.Uniforms {
		u, err := d.Uniforms[i].uniform()
		if err != nil {
			return nil, fmt.Errorf("fxload: uniforms[%d]: %w", i, err)
		}
		m.Uniforms = append(m.Uniforms, u)
	}
	for i := range d.SpecConstants {
		u, err := d.SpecConstants[i].uniform()
		if err != nil {
			return nil, fmt.Errorf("fxload: spec_constants[%d]: %w", i, err)
		}
		m.SpecConstants = append(m.SpecConstants, u)
	}
	for i := range d.Techniques {
		tech, err := d.Techniques[i].technique()
		if err != nil {
			return nil, fmt.Errorf("fxload: techniques[%d]: %w", i, err)
		}
		m.Techniques = append(m.Techniques, tech)
	}
	return m, nil
}

func (t typeDoc) typ() *fx.Type {
	return &fx.Type{
		Base:        t.Base,
		Rows:        t.Rows,
		Cols:        t.Cols,
		Qualifiers:  t.Qualifiers,
		ArrayLength: t.ArrayLength,
		Definition:  t.Definition,
	}
}

func (c *constantDoc) constant() (*fx.Constant, error) {
	k := &fx.Constant{String: c.String}
	set := 0
	if len(c.Float) > 0 {
		set++
	}
	if len(c.Int) > 0 {
		set++
	}
	if len(c.Uint) > 0 {
		set++
	}
	if len(c.Bool) > 0 {
		set++
	}
	if set > 1 {
		return nil, fmt.Errorf("constant sets more than one of float, int, uint and bool")
	}
	if n := max(len(c.Float), len(c.Int), len(c.Uint), len(c.Bool)); n > fx.ScalarSlots {
		return nil, fmt.Errorf("constant has %d values, at most %d fit", n, fx.ScalarSlots)
	}
	for i, v := range c.Float {
		k.Value.SetFloat(i, v)
	}
	for i, v := range c.Int {
		k.Value.SetInt(i, v)
	}
	for i, v := range c.Uint {
		k.Value.SetUint(i, v)
	}
	for i, v := range c.Bool {
		if v {
			k.Value.SetUint(i, 1)
		}
	}
	for i := range c.Elements {
		e, err := c.Elements[i].constant()
		if err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}
		k.Elements = append(k.Elements, e)
	}
	return k, nil
}

func annotations(docs []annotationDoc) ([]*fx.Annotation, error) {
	var out []*fx.Annotation
	for i := range docs {
		v, err := docs[i].Value.constant()
		if err != nil {
			return nil, fmt.Errorf("annotations[%d]: %w", i, err)
		}
		out = append(out, &fx.Annotation{Type: docs[i].Type.typ(), Name: docs[i].Name, Value: v})
	}
	return out, nil
}

func (t *textureDoc) texture() (*fx.TextureInfo, error) {
	anns, err := annotations(t.Annotations)
	if err != nil {
		return nil, err
	}
	levels := t.Levels
	if levels == 0 {
		levels = 1
	}
	return &fx.TextureInfo{
		ID:            t.ID,
		Binding:       t.Binding,
		Name:          t.Name,
		Semantic:      t.Semantic,
		UniqueName:    t.UniqueName,
		Annotations:   anns,
		Width:         t.Width,
		Height:        t.Height,
		Levels:        levels,
		Format:        t.Format,
		RenderTarget:  t.RenderTarget,
		StorageAccess: t.StorageAccess,
	}, nil
}

// sampler applies the compiler's defaults: clamp addressing and an
// unbounded maximum LOD.
func (s *samplerDoc) sampler() (*fx.SamplerInfo, error) {
	anns, err := annotations(s.Annotations)
	if err != nil {
		return nil, err
	}
	return &fx.SamplerInfo{
		ID:             s.ID,
		Binding:        s.Binding,
		TextureBinding: s.TextureBinding,
		Name:           s.Name,
		UniqueName:     s.UniqueName,
		TextureName:    s.TextureName,
		Annotations:    anns,
		Filter:         s.Filter,
		AddressU:       orDefault(s.AddressU, fx.AddressClamp),
		AddressV:       orDefault(s.AddressV, fx.AddressClamp),
		AddressW:       orDefault(s.AddressW, fx.AddressClamp),
		MinLOD:         s.MinLOD,
		MaxLOD:         orDefault(s.MaxLOD, float32(math.MaxFloat32)),
		LODBias:        s.LODBias,
		SRGB:           s.SRGB,
	}, nil
}

func (s *storageDoc) storage() *fx.StorageInfo {
	return &fx.StorageInfo{
		ID:          s.ID,
		Binding:     s.Binding,
		Name:        s.Name,
		UniqueName:  s.UniqueName,
		TextureName: s.TextureName,
		Format:      s.Format,
		Level:       s.Level,
	}
}

func (u *uniformDoc) uniform() (*fx.UniformInfo, error) {
	anns, err := annotations(u.Annotations)
	if err != nil {
		return nil, err
	}
	out := &fx.UniformInfo{
		Name:        u.Name,
		Type:        u.Type.typ(),
		Size:        u.Size,
		Offset:      u.Offset,
		Annotations: anns,
	}
	if u.Initializer != nil {
		k, err := u.Initializer.constant()
		if err != nil {
			return nil, fmt.Errorf("initializer: %w", err)
		}
		out.HasInitializer = true
		out.Initializer = k
	}
	return out, nil
}

func (t *techniqueDoc) technique() (*fx.TechniqueInfo, error) {
	anns, err := annotations(t.Annotations)
	if err != nil {
		return nil, err
	}
	out := &fx.TechniqueInfo{Name: t.Name, Annotations: anns}
	for i := range t.Passes {
		p, err := t.Passes[i].pass()
		if err != nil {
			return nil, fmt.Errorf("passes[%d]: %w", i, err)
		}
		out.Passes = append(out.Passes, p)
	}
	return out, nil
}

// pass applies the compiler's pass defaults before the document's values:
// full write masks, additive one/zero blending, a keep/always stencil with
// full masks, mipmap generation and a three vertex triangle list.
func (p *passDoc) pass() (*fx.PassInfo, error) {
	out := &fx.PassInfo{
		Name:               p.Name,
		VSEntryPoint:       p.VSEntryPoint,
		PSEntryPoint:       p.PSEntryPoint,
		CSEntryPoint:       p.CSEntryPoint,
		GenerateMipmaps:    orDefault(p.GenerateMipmaps, true),
		ClearRenderTargets: p.ClearRenderTargets,
		SRGBWriteEnable:    p.SRGBWriteEnable,
		StencilEnable:      p.Stencil.Enable,
		StencilReadMask:    orDefault(p.Stencil.ReadMask, 0xff),
		StencilWriteMask:   orDefault(p.Stencil.WriteMask, 0xff),
		StencilFunc:        orDefault(p.Stencil.Func, fx.StencilAlways),
		StencilRef:         p.Stencil.Ref,
		StencilPass:        orDefault(p.Stencil.Pass, fx.StencilKeep),
		StencilFail:        orDefault(p.Stencil.Fail, fx.StencilKeep),
		StencilDepthFail:   orDefault(p.Stencil.DepthFail, fx.StencilKeep),
		NumVertices:        orDefault(p.NumVertices, 3),
		Topology:           orDefault(p.Topology, fx.TopologyTriangleList),
		ViewportWidth:      p.ViewportWidth,
		ViewportHeight:     p.ViewportHeight,
		ViewportDispatchZ:  p.ViewportDispatchZ,
	}
	for i := 0; i < fx.MaxRenderTargets; i++ {
		out.ColorWriteMask[i] = fx.WriteAll
		out.BlendOp[i] = fx.BlendAdd
		out.BlendOpAlpha[i] = fx.BlendAdd
		out.SrcBlend[i] = fx.BlendOne
		out.DestBlend[i] = fx.BlendZero
		out.SrcBlendAlpha[i] = fx.BlendOne
		out.DestBlendAlpha[i] = fx.BlendZero
	}

	for _, t := range p.Targets {
		i := t.Slot
		if i < 0 || i >= fx.MaxRenderTargets {
			return nil, fmt.Errorf("render target slot %d out of range [0,%d)", i, fx.MaxRenderTargets)
		}
		out.RenderTargetNames[i] = t.RenderTarget
		out.BlendEnable[i] = t.BlendEnable
		out.ColorWriteMask[i] = orDefault(t.WriteMask, out.ColorWriteMask[i])
		out.BlendOp[i] = orDefault(t.BlendOp, out.BlendOp[i])
		out.BlendOpAlpha[i] = orDefault(t.BlendOpAlpha, out.BlendOpAlpha[i])
		out.SrcBlend[i] = orDefault(t.SrcBlend, out.SrcBlend[i])
		out.DestBlend[i] = orDefault(t.DestBlend, out.DestBlend[i])
		out.SrcBlendAlpha[i] = orDefault(t.SrcBlendAlpha, out.SrcBlendAlpha[i])
		out.DestBlendAlpha[i] = orDefault(t.DestBlendAlpha, out.DestBlendAlpha[i])
	}

	for i := range p.Samplers {
		s, err := p.Samplers[i].sampler()
		if err != nil {
			return nil, fmt.Errorf("samplers[%d]: %w", i, err)
		}
		out.Samplers = append(out.Samplers, s)
	}
	for i := range p.Storages {
		out.Storages = append(out.Storages, p.Storages[i].storage())
	}
	return out, nil
}

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
