package clone

import (
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/fxclone/alloc"
	"github.com/gogpu/fxclone/fx"
)

// CloneModule copies a whole module: the code buffer byte for byte, then
// entry points, textures, samplers, storages, uniforms, specialization
// constants and techniques, then the summary counters.
//
// The result is all or nothing. On failure nil is returned, every
// allocation made during the call has been released and the returned
// *Error names the failing site.
func (c *Cloner) CloneModule(src *fx.Module) (_ *fx.Module, err error) {
	if src == nil {
		return nil, nil
	}
	dst, err := newNode[fx.Module](c)
	if err != nil {
		c.logger.Debug("module clone failed", "err", err)
		return nil, err
	}
	defer rollback(&err, func() {
		c.ReleaseModule(dst)
		c.logger.Debug("module clone rolled back", "err", err)
	})

	dst.TotalUniformSize = src.TotalUniformSize
	dst.NumTextureBindings = src.NumTextureBindings
	dst.NumSamplerBindings = src.NumSamplerBindings
	dst.NumStorageBindings = src.NumStorageBindings

	if dst.Code, err = c.cloneCode(src.Code); err != nil {
		return nil, err
	}

	if c.parallel {
		err = c.cloneSequencesParallel(dst, src)
	} else {
		err = c.cloneSequences(dst, src)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Debug("module cloned",
		"code", len(dst.Code),
		"entry_points", len(dst.EntryPoints),
		"textures", len(dst.Textures),
		"samplers", len(dst.Samplers),
		"storages", len(dst.Storages),
		"uniforms", len(dst.Uniforms),
		"spec_constants", len(dst.SpecConstants),
		"techniques", len(dst.Techniques),
	)
	return dst, nil
}

// cloneCode copies the code buffer. An empty source yields a non-nil,
// zero-length buffer.
func (c *Cloner) cloneCode(src []byte) ([]byte, error) {
	if err := c.alloc.Allocate(alloc.KindBuffer, len(src)); err != nil {
		return nil, at(err, "code")
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst, nil
}

func (c *Cloner) cloneSequences(dst, src *fx.Module) (err error) {
	if dst.EntryPoints, err = cloneSeq(c, "entry_points", src.EntryPoints, c.CloneEntryPoint, c.ReleaseEntryPoint); err != nil {
		return err
	}
	if dst.Textures, err = cloneSeq(c, "textures", src.Textures, c.CloneTexture, c.ReleaseTexture); err != nil {
		return err
	}
	if dst.Samplers, err = cloneSeq(c, "samplers", src.Samplers, c.CloneSampler, c.ReleaseSampler); err != nil {
		return err
	}
	if dst.Storages, err = cloneSeq(c, "storages", src.Storages, c.CloneStorage, c.ReleaseStorage); err != nil {
		return err
	}
	if dst.Uniforms, err = cloneSeq(c, "uniforms", src.Uniforms, c.CloneUniform, c.ReleaseUniform); err != nil {
		return err
	}
	if dst.SpecConstants, err = cloneSeq(c, "spec_constants", src.SpecConstants, c.CloneUniform, c.ReleaseUniform); err != nil {
		return err
	}
	if dst.Techniques, err = cloneSeq(c, "techniques", src.Techniques, c.CloneTechnique, c.ReleaseTechnique); err != nil {
		return err
	}
	return nil
}

// cloneSequencesParallel clones each top-level sequence on its own
// goroutine. Results are attached to dst only after every goroutine has
// finished, successful ones included when another failed, so that the
// caller's rollback releases them.
func (c *Cloner) cloneSequencesParallel(dst, src *fx.Module) error {
	var (
		g             errgroup.Group
		entryPoints   []*fx.EntryPoint
		textures      []*fx.TextureInfo
		samplers      []*fx.SamplerInfo
		storages      []*fx.StorageInfo
		uniforms      []*fx.UniformInfo
		specConstants []*fx.UniformInfo
		techniques    []*fx.TechniqueInfo
	)

	g.Go(func() (err error) {
		entryPoints, err = cloneSeq(c, "entry_points", src.EntryPoints, c.CloneEntryPoint, c.ReleaseEntryPoint)
		return err
	})
	g.Go(func() (err error) {
		textures, err = cloneSeq(c, "textures", src.Textures, c.CloneTexture, c.ReleaseTexture)
		return err
	})
	g.Go(func() (err error) {
		samplers, err = cloneSeq(c, "samplers", src.Samplers, c.CloneSampler, c.ReleaseSampler)
		return err
	})
	g.Go(func() (err error) {
		storages, err = cloneSeq(c, "storages", src.Storages, c.CloneStorage, c.ReleaseStorage)
		return err
	})
	g.Go(func() (err error) {
		uniforms, err = cloneSeq(c, "uniforms", src.Uniforms, c.CloneUniform, c.ReleaseUniform)
		return err
	})
	g.Go(func() (err error) {
		specConstants, err = cloneSeq(c, "spec_constants", src.SpecConstants, c.CloneUniform, c.ReleaseUniform)
		return err
	})
	g.Go(func() (err error) {
		techniques, err = cloneSeq(c, "techniques", src.Techniques, c.CloneTechnique, c.ReleaseTechnique)
		return err
	})
	err := g.Wait()

	dst.EntryPoints = entryPoints
	dst.Textures = textures
	dst.Samplers = samplers
	dst.Storages = storages
	dst.Uniforms = uniforms
	dst.SpecConstants = specConstants
	dst.Techniques = techniques
	return err
}

// ReleaseModule releases a module and everything it owns.
func (c *Cloner) ReleaseModule(m *fx.Module) {
	if m == nil {
		return
	}
	releaseSeq(c, m.Techniques, c.ReleaseTechnique)
	releaseSeq(c, m.SpecConstants, c.ReleaseUniform)
	releaseSeq(c, m.Uniforms, c.ReleaseUniform)
	releaseSeq(c, m.Storages, c.ReleaseStorage)
	releaseSeq(c, m.Samplers, c.ReleaseSampler)
	releaseSeq(c, m.Textures, c.ReleaseTexture)
	releaseSeq(c, m.EntryPoints, c.ReleaseEntryPoint)
	if m.Code != nil {
		c.alloc.Free(alloc.KindBuffer, len(m.Code))
	}
	freeNode(c, m)
}
