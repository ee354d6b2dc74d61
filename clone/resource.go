package clone

import (
	"github.com/gogpu/fxclone/fx"
)

// CloneStructMember copies a struct member or function parameter.
func (c *Cloner) CloneStructMember(src *fx.StructMember) (_ *fx.StructMember, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.StructMember](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseStructMember(dst) })

	dst.Definition = src.Definition
	if dst.Type, err = c.CloneType(src.Type); err != nil {
		return nil, at(err, "type")
	}
	err = c.cloneStrings(
		stringField{"name", &dst.Name, src.Name},
		stringField{"semantic", &dst.Semantic, src.Semantic},
	)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseStructMember releases a struct member.
func (c *Cloner) ReleaseStructMember(m *fx.StructMember) {
	if m == nil {
		return
	}
	c.ReleaseType(m.Type)
	c.releaseStrings(&m.Name, &m.Semantic)
	freeNode(c, m)
}

// CloneStruct copies a struct definition and its members.
func (c *Cloner) CloneStruct(src *fx.StructInfo) (_ *fx.StructInfo, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.StructInfo](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseStruct(dst) })

	dst.Definition = src.Definition
	err = c.cloneStrings(
		stringField{"name", &dst.Name, src.Name},
		stringField{"unique_name", &dst.UniqueName, src.UniqueName},
	)
	if err != nil {
		return nil, err
	}
	if dst.Members, err = cloneSeq(c, "members", src.Members, c.CloneStructMember, c.ReleaseStructMember); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseStruct releases a struct definition.
func (c *Cloner) ReleaseStruct(s *fx.StructInfo) {
	if s == nil {
		return
	}
	releaseSeq(c, s.Members, c.ReleaseStructMember)
	c.releaseStrings(&s.Name, &s.UniqueName)
	freeNode(c, s)
}

// CloneAnnotation copies an annotation with its type and value.
func (c *Cloner) CloneAnnotation(src *fx.Annotation) (_ *fx.Annotation, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.Annotation](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseAnnotation(dst) })

	if dst.Type, err = c.CloneType(src.Type); err != nil {
		return nil, at(err, "type")
	}
	if err = c.cloneStrings(stringField{"name", &dst.Name, src.Name}); err != nil {
		return nil, err
	}
	if dst.Value, err = c.CloneConstant(src.Value); err != nil {
		return nil, at(err, "value")
	}
	return dst, nil
}

// ReleaseAnnotation releases an annotation.
func (c *Cloner) ReleaseAnnotation(a *fx.Annotation) {
	if a == nil {
		return
	}
	c.ReleaseType(a.Type)
	c.releaseStrings(&a.Name)
	c.ReleaseConstant(a.Value)
	freeNode(c, a)
}

// CloneTexture copies a texture description and its annotations.
func (c *Cloner) CloneTexture(src *fx.TextureInfo) (_ *fx.TextureInfo, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.TextureInfo](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseTexture(dst) })

	dst.ID = src.ID
	dst.Binding = src.Binding
	dst.Width = src.Width
	dst.Height = src.Height
	dst.Levels = src.Levels
	dst.Format = src.Format
	dst.RenderTarget = src.RenderTarget
	dst.StorageAccess = src.StorageAccess
	err = c.cloneStrings(
		stringField{"name", &dst.Name, src.Name},
		stringField{"semantic", &dst.Semantic, src.Semantic},
		stringField{"unique_name", &dst.UniqueName, src.UniqueName},
	)
	if err != nil {
		return nil, err
	}
	if dst.Annotations, err = cloneSeq(c, "annotations", src.Annotations, c.CloneAnnotation, c.ReleaseAnnotation); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseTexture releases a texture description.
func (c *Cloner) ReleaseTexture(t *fx.TextureInfo) {
	if t == nil {
		return
	}
	releaseSeq(c, t.Annotations, c.ReleaseAnnotation)
	c.releaseStrings(&t.Name, &t.Semantic, &t.UniqueName)
	freeNode(c, t)
}

// CloneSampler copies a sampler description and its annotations.
func (c *Cloner) CloneSampler(src *fx.SamplerInfo) (_ *fx.SamplerInfo, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.SamplerInfo](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseSampler(dst) })

	dst.ID = src.ID
	dst.Binding = src.Binding
	dst.TextureBinding = src.TextureBinding
	dst.Filter = src.Filter
	dst.AddressU = src.AddressU
	dst.AddressV = src.AddressV
	dst.AddressW = src.AddressW
	dst.MinLOD = src.MinLOD
	dst.MaxLOD = src.MaxLOD
	dst.LODBias = src.LODBias
	dst.SRGB = src.SRGB
	err = c.cloneStrings(
		stringField{"name", &dst.Name, src.Name},
		stringField{"unique_name", &dst.UniqueName, src.UniqueName},
		stringField{"texture_name", &dst.TextureName, src.TextureName},
	)
	if err != nil {
		return nil, err
	}
	if dst.Annotations, err = cloneSeq(c, "annotations", src.Annotations, c.CloneAnnotation, c.ReleaseAnnotation); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseSampler releases a sampler description.
func (c *Cloner) ReleaseSampler(s *fx.SamplerInfo) {
	if s == nil {
		return
	}
	releaseSeq(c, s.Annotations, c.ReleaseAnnotation)
	c.releaseStrings(&s.Name, &s.UniqueName, &s.TextureName)
	freeNode(c, s)
}

// CloneStorage copies a storage description.
func (c *Cloner) CloneStorage(src *fx.StorageInfo) (_ *fx.StorageInfo, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.StorageInfo](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseStorage(dst) })

	dst.ID = src.ID
	dst.Binding = src.Binding
	dst.Format = src.Format
	dst.Level = src.Level
	err = c.cloneStrings(
		stringField{"name", &dst.Name, src.Name},
		stringField{"unique_name", &dst.UniqueName, src.UniqueName},
		stringField{"texture_name", &dst.TextureName, src.TextureName},
	)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// ReleaseStorage releases a storage description.
func (c *Cloner) ReleaseStorage(s *fx.StorageInfo) {
	if s == nil {
		return
	}
	c.releaseStrings(&s.Name, &s.UniqueName, &s.TextureName)
	freeNode(c, s)
}

// CloneUniform copies a uniform or specialization constant with its type,
// annotations and optional initializer.
func (c *Cloner) CloneUniform(src *fx.UniformInfo) (_ *fx.UniformInfo, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.UniformInfo](c)
	if err != nil {
		return nil, err
	}
	defer rollback(&err, func() { c.ReleaseUniform(dst) })

	dst.Size = src.Size
	dst.Offset = src.Offset
	dst.HasInitializer = src.HasInitializer
	if err = c.cloneStrings(stringField{"name", &dst.Name, src.Name}); err != nil {
		return nil, err
	}
	if dst.Type, err = c.CloneType(src.Type); err != nil {
		return nil, at(err, "type")
	}
	if dst.Annotations, err = cloneSeq(c, "annotations", src.Annotations, c.CloneAnnotation, c.ReleaseAnnotation); err != nil {
		return nil, err
	}
	if dst.Initializer, err = c.CloneConstant(src.Initializer); err != nil {
		return nil, at(err, "initializer")
	}
	return dst, nil
}

// ReleaseUniform releases a uniform.
func (c *Cloner) ReleaseUniform(u *fx.UniformInfo) {
	if u == nil {
		return
	}
	c.ReleaseConstant(u.Initializer)
	releaseSeq(c, u.Annotations, c.ReleaseAnnotation)
	c.ReleaseType(u.Type)
	c.releaseStrings(&u.Name)
	freeNode(c, u)
}
