package clone

import (
	"fmt"

	"github.com/gogpu/fxclone/fx"
)

// CloneEntryPoint copies an entry point.
func (c *Cloner) CloneEntryPoint(src *fx.EntryPoint) (_ *fx.EntryPoint, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.EntryPoint](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseEntryPoint(dst) })

	dst.Stage = src.Stage
	if err = c.cloneStrings(stringField{"name", &dst.Name, src.Name}); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseEntryPoint releases an entry point.
func (c *Cloner) ReleaseEntryPoint(ep *fx.EntryPoint) {
	if ep == nil {
		return
	}
	c.releaseStrings(&ep.Name)
	freeNode(c, ep)
}

// CloneFunction copies a function description, its parameters and the ids
// of the samplers and storages it references.
func (c *Cloner) CloneFunction(src *fx.FunctionInfo) (_ *fx.FunctionInfo, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.FunctionInfo](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseFunction(dst) })

	dst.Definition = src.Definition
	err = c.cloneStrings(
		stringField{"name", &dst.Name, src.Name},
		stringField{"unique_name", &dst.UniqueName, src.UniqueName},
		stringField{"return_semantic", &dst.ReturnSemantic, src.ReturnSemantic},
	)
	if err != nil {
		return nil, err
	}
	if dst.ReturnType, err = c.CloneType(src.ReturnType); err != nil {
		return nil, at(err, "return_type")
	}
	if dst.Parameters, err = cloneSeq(c, "parameters", src.Parameters, c.CloneStructMember, c.ReleaseStructMember); err != nil {
		return nil, err
	}
	if dst.ReferencedSamplers, err = c.cloneIDs("referenced_samplers", src.ReferencedSamplers); err != nil {
		return nil, err
	}
	if dst.ReferencedStorages, err = c.cloneIDs("referenced_storages", src.ReferencedStorages); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseFunction releases a function description.
func (c *Cloner) ReleaseFunction(f *fx.FunctionInfo) {
	if f == nil {
		return
	}
	c.releaseIDs(&f.ReferencedStorages)
	c.releaseIDs(&f.ReferencedSamplers)
	releaseSeq(c, f.Parameters, c.ReleaseStructMember)
	c.ReleaseType(f.ReturnType)
	c.releaseStrings(&f.Name, &f.UniqueName, &f.ReturnSemantic)
	freeNode(c, f)
}

// ClonePass copies a pass: its names, the full eight-wide render target
// state, the stencil and draw state, and its samplers and storages.
func (c *Cloner) ClonePass(src *fx.PassInfo) (_ *fx.PassInfo, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.PassInfo](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleasePass(dst) })

	dst.GenerateMipmaps = src.GenerateMipmaps
	dst.ClearRenderTargets = src.ClearRenderTargets
	dst.SRGBWriteEnable = src.SRGBWriteEnable
	dst.BlendEnable = src.BlendEnable
	dst.ColorWriteMask = src.ColorWriteMask
	dst.BlendOp = src.BlendOp
	dst.BlendOpAlpha = src.BlendOpAlpha
	dst.SrcBlend = src.SrcBlend
	dst.DestBlend = src.DestBlend
	dst.SrcBlendAlpha = src.SrcBlendAlpha
	dst.DestBlendAlpha = src.DestBlendAlpha
	dst.StencilEnable = src.StencilEnable
	dst.StencilReadMask = src.StencilReadMask
	dst.StencilWriteMask = src.StencilWriteMask
	dst.StencilFunc = src.StencilFunc
	dst.StencilRef = src.StencilRef
	dst.StencilPass = src.StencilPass
	dst.StencilFail = src.StencilFail
	dst.StencilDepthFail = src.StencilDepthFail
	dst.NumVertices = src.NumVertices
	dst.Topology = src.Topology
	dst.ViewportWidth = src.ViewportWidth
	dst.ViewportHeight = src.ViewportHeight
	dst.ViewportDispatchZ = src.ViewportDispatchZ

	fields := make([]stringField, 0, 4+fx.MaxRenderTargets)
	fields = append(fields, stringField{"name", &dst.Name, src.Name})
	for i := range src.RenderTargetNames {
		fields = append(fields, stringField{
			fmt.Sprintf("render_target_names[%d]", i), &dst.RenderTargetNames[i], src.RenderTargetNames[i],
		})
	}
	fields = append(fields,
		stringField{"vs_entry_point", &dst.VSEntryPoint, src.VSEntryPoint},
		stringField{"ps_entry_point", &dst.PSEntryPoint, src.PSEntryPoint},
		stringField{"cs_entry_point", &dst.CSEntryPoint, src.CSEntryPoint},
	)
	if err = c.cloneStrings(fields...); err != nil {
		return nil, err
	}

	if dst.Samplers, err = cloneSeq(c, "samplers", src.Samplers, c.CloneSampler, c.ReleaseSampler); err != nil {
		return nil, err
	}
	if dst.Storages, err = cloneSeq(c, "storages", src.Storages, c.CloneStorage, c.ReleaseStorage); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleasePass releases a pass.
func (c *Cloner) ReleasePass(p *fx.PassInfo) {
	if p == nil {
		return
	}
	releaseSeq(c, p.Storages, c.ReleaseStorage)
	releaseSeq(c, p.Samplers, c.ReleaseSampler)
	c.releaseStrings(&p.Name, &p.VSEntryPoint, &p.PSEntryPoint, &p.CSEntryPoint)
	for i := range p.RenderTargetNames {
		c.releaseStrings(&p.RenderTargetNames[i])
	}
	freeNode(c, p)
}

// CloneTechnique copies a technique with its passes and annotations.
func (c *Cloner) CloneTechnique(src *fx.TechniqueInfo) (_ *fx.TechniqueInfo, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.TechniqueInfo](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseTechnique(dst) })

	if err = c.cloneStrings(stringField{"name", &dst.Name, src.Name}); err != nil {
		return nil, err
	}
	if dst.Passes, err = cloneSeq(c, "passes", src.Passes, c.ClonePass, c.ReleasePass); err != nil {
		return nil, err
	}
	if dst.Annotations, err = cloneSeq(c, "annotations", src.Annotations, c.CloneAnnotation, c.ReleaseAnnotation); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseTechnique releases a technique.
func (c *Cloner) ReleaseTechnique(t *fx.TechniqueInfo) {
	if t == nil {
		return
	}
	releaseSeq(c, t.Annotations, c.ReleaseAnnotation)
	releaseSeq(c, t.Passes, c.ReleasePass)
	c.releaseStrings(&t.Name)
	freeNode(c, t)
}
