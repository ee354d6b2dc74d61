package fx

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a deterministic, indented text description of m to w.
// Golden tests and the fxclone CLI rely on its exact layout.
func Dump(w io.Writer, m *Module) error {
	d := &dumper{}
	d.writeModule(m)
	_, err := io.WriteString(w, d.out.String())
	return err
}

// DumpString returns the Dump of m as a string.
func DumpString(m *Module) string {
	var b strings.Builder
	_ = Dump(&b, m)
	return b.String()
}

type dumper struct {
	out    strings.Builder
	indent int
}

func (d *dumper) writeLine(format string, args ...any) {
	for i := 0; i < d.indent; i++ {
		d.out.WriteString("  ")
	}
	fmt.Fprintf(&d.out, format, args...)
	d.out.WriteByte('\n')
}

func (d *dumper) nested(fn func()) {
	d.indent++
	fn()
	d.indent--
}

func (d *dumper) writeModule(m *Module) {
	if m == nil {
		d.writeLine("module <nil>")
		return
	}
	d.writeLine("module code=%d bytes uniforms=%d bytes bindings(texture=%d sampler=%d storage=%d)",
		len(m.Code), m.TotalUniformSize, m.NumTextureBindings, m.NumSamplerBindings, m.NumStorageBindings)
	d.nested(func() {
		for _, ep := range m.EntryPoints {
			if ep == nil {
				d.writeLine("entry_point <nil>")
				continue
			}
			d.writeLine("entry_point %q %s", ep.Name, ep.Stage)
		}
		for _, tex := range m.Textures {
			d.writeTexture(tex)
		}
		for _, s := range m.Samplers {
			d.writeSampler(s)
		}
		for _, s := range m.Storages {
			d.writeStorage(s)
		}
		for _, u := range m.Uniforms {
			d.writeUniform("uniform", u)
		}
		for _, u := range m.SpecConstants {
			d.writeUniform("spec_constant", u)
		}
		for _, tech := range m.Techniques {
			d.writeTechnique(tech)
		}
	})
}

func (d *dumper) writeTexture(tex *TextureInfo) {
	if tex == nil {
		d.writeLine("texture <nil>")
		return
	}
	d.writeLine("texture %q id=%d binding=%d semantic=%q unique=%q %dx%d levels=%d %s rt=%t storage=%t",
		tex.Name, tex.ID, tex.Binding, tex.Semantic, tex.UniqueName,
		tex.Width, tex.Height, tex.Levels, tex.Format, tex.RenderTarget, tex.StorageAccess)
	d.writeAnnotations(tex.Annotations)
}

func (d *dumper) writeSampler(s *SamplerInfo) {
	if s == nil {
		d.writeLine("sampler <nil>")
		return
	}
	d.writeLine("sampler %q id=%d binding=%d texture_binding=%d unique=%q texture=%q %s address=%s/%s/%s lod=[%g,%g] bias=%g srgb=%t",
		s.Name, s.ID, s.Binding, s.TextureBinding, s.UniqueName, s.TextureName,
		s.Filter, s.AddressU, s.AddressV, s.AddressW, s.MinLOD, s.MaxLOD, s.LODBias, s.SRGB)
	d.writeAnnotations(s.Annotations)
}

func (d *dumper) writeStorage(s *StorageInfo) {
	if s == nil {
		d.writeLine("storage <nil>")
		return
	}
	d.writeLine("storage %q id=%d binding=%d unique=%q texture=%q %s level=%d",
		s.Name, s.ID, s.Binding, s.UniqueName, s.TextureName, s.Format, s.Level)
}

func (d *dumper) writeUniform(kind string, u *UniformInfo) {
	if u == nil {
		d.writeLine("%s <nil>", kind)
		return
	}
	d.writeLine("%s %q %s size=%d offset=%d", kind, u.Name, u.Type, u.Size, u.Offset)
	d.nested(func() {
		if u.HasInitializer {
			d.writeConstant("initializer", u.Type, u.Initializer)
		}
	})
	d.writeAnnotations(u.Annotations)
}

func (d *dumper) writeAnnotations(annotations []*Annotation) {
	d.nested(func() {
		for _, a := range annotations {
			if a == nil {
				d.writeLine("annotation <nil>")
				continue
			}
			d.writeConstant(fmt.Sprintf("annotation %q %s", a.Name, a.Type), a.Type, a.Value)
		}
	})
}

func (d *dumper) writeConstant(label string, t *Type, c *Constant) {
	if c == nil {
		d.writeLine("%s = <nil>", label)
		return
	}
	n := ScalarSlots
	if t != nil && t.IsNumeric() {
		n = int(t.Components())
		if n < 1 || n > ScalarSlots {
			n = ScalarSlots
		}
	}
	var value string
	switch {
	case t != nil && t.Base == TypeString:
		value = fmt.Sprintf("%q", c.String)
	default:
		value = formatValues(c.Value.View(t), n)
	}
	d.writeLine("%s = %s", label, value)
	if len(c.Elements) > 0 {
		d.nested(func() {
			for i, e := range c.Elements {
				d.writeConstant(fmt.Sprintf("[%d]", i), t, e)
			}
		})
	}
}

func formatValues(v Values, n int) string {
	parts := make([]string, 0, n)
	switch v := v.(type) {
	case FloatValues:
		for _, f := range v[:n] {
			parts = append(parts, fmt.Sprintf("%g", f))
		}
	case IntValues:
		for _, i := range v[:n] {
			parts = append(parts, fmt.Sprintf("%d", i))
		}
	case UintValues:
		for _, u := range v[:n] {
			parts = append(parts, fmt.Sprintf("%d", u))
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (d *dumper) writeTechnique(tech *TechniqueInfo) {
	if tech == nil {
		d.writeLine("technique <nil>")
		return
	}
	d.writeLine("technique %q passes=%d", tech.Name, len(tech.Passes))
	d.writeAnnotations(tech.Annotations)
	d.nested(func() {
		for _, pass := range tech.Passes {
			d.writePass(pass)
		}
	})
}

func (d *dumper) writePass(p *PassInfo) {
	if p == nil {
		d.writeLine("pass <nil>")
		return
	}
	if p.IsCompute() {
		d.writeLine("pass %q cs=%q dispatch=%dx%dx%d", p.Name, p.CSEntryPoint,
			p.ViewportWidth, p.ViewportHeight, p.ViewportDispatchZ)
	} else {
		d.writeLine("pass %q vs=%q ps=%q %s vertices=%d viewport=%dx%d", p.Name, p.VSEntryPoint, p.PSEntryPoint,
			p.Topology, p.NumVertices, p.ViewportWidth, p.ViewportHeight)
	}
	d.nested(func() {
		d.writeLine("flags mipmaps=%t clear=%t srgb=%t", p.GenerateMipmaps, p.ClearRenderTargets, p.SRGBWriteEnable)
		for i := 0; i < MaxRenderTargets; i++ {
			if p.RenderTargetNames[i] == "" && !p.BlendEnable[i] {
				continue
			}
			d.writeLine("target[%d] %q blend=%t mask=%#x color=%s(%s,%s) alpha=%s(%s,%s)", i,
				p.RenderTargetNames[i], p.BlendEnable[i], p.ColorWriteMask[i],
				p.BlendOp[i], p.SrcBlend[i], p.DestBlend[i],
				p.BlendOpAlpha[i], p.SrcBlendAlpha[i], p.DestBlendAlpha[i])
		}
		if p.StencilEnable {
			d.writeLine("stencil %s ref=%d read=%#x write=%#x pass=%s fail=%s depth_fail=%s",
				p.StencilFunc, p.StencilRef, p.StencilReadMask, p.StencilWriteMask,
				p.StencilPass, p.StencilFail, p.StencilDepthFail)
		}
		for _, s := range p.Samplers {
			d.writeSampler(s)
		}
		for _, s := range p.Storages {
			d.writeStorage(s)
		}
	})
}
