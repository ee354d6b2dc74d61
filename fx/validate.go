package fx

import (
	"fmt"
)

// ValidationError is one problem found by Validate.
type ValidationError struct {
	// Path locates the offending node, e.g. "techniques[0].passes[1].samplers[0]".
	Path    string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Validator checks a module for consistency from a consumer's point of view.
//
// Validation is never part of cloning: cloning copies ids and names
// verbatim. Validate exists for hosts that want to reject a module before
// creating GPU resources from it.
type Validator struct {
	module *Module
	errors []ValidationError
}

// Validate checks the module for consistency.
// Returns validation errors if any, or nil if the module is valid.
func Validate(module *Module) ([]ValidationError, error) {
	if module == nil {
		return nil, fmt.Errorf("module is nil")
	}

	v := &Validator{
		module: module,
		errors: make([]ValidationError, 0),
	}

	v.ValidateModule()

	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

// ValidateExpression checks a single expression and its access chain.
func ValidateExpression(expr *Expression) []ValidationError {
	v := &Validator{}
	v.validateExpression("expression", expr)
	return v.errors
}

// ValidateModule validates the complete module.
func (v *Validator) ValidateModule() {
	m := v.module
	for i, ep := range m.EntryPoints {
		path := fmt.Sprintf("entry_points[%d]", i)
		if ep == nil {
			v.addError(path, "entry point is nil")
			continue
		}
		if ep.Name == "" {
			v.addError(path, "entry point has no name")
		}
		if _, err := ep.Stage.MarshalText(); err != nil {
			v.addError(path, err.Error())
		}
	}
	for i, tex := range m.Textures {
		v.validateTexture(fmt.Sprintf("textures[%d]", i), tex)
	}
	for i, s := range m.Samplers {
		v.validateSampler(fmt.Sprintf("samplers[%d]", i), s)
	}
	for i, s := range m.Storages {
		v.validateStorage(fmt.Sprintf("storages[%d]", i), s)
	}
	for i, u := range m.Uniforms {
		v.validateUniform(fmt.Sprintf("uniforms[%d]", i), u)
	}
	for i, u := range m.SpecConstants {
		v.validateUniform(fmt.Sprintf("spec_constants[%d]", i), u)
	}
	for i, tech := range m.Techniques {
		v.validateTechnique(fmt.Sprintf("techniques[%d]", i), tech)
	}
}

func (v *Validator) validateType(path string, t *Type) {
	if t == nil {
		v.addError(path, "type is nil")
		return
	}
	if _, err := t.Base.MarshalText(); err != nil {
		v.addError(path, err.Error())
	}
	if t.IsNumeric() {
		if t.Rows < 1 || t.Rows > 4 {
			v.addError(path, fmt.Sprintf("numeric type rows must be 1 to 4, got %d", t.Rows))
		}
		if t.Cols < 1 || t.Cols > 4 {
			v.addError(path, fmt.Sprintf("numeric type columns must be 1 to 4, got %d", t.Cols))
		}
	}
	if t.ArrayLength < UnboundedArray {
		v.addError(path, fmt.Sprintf("invalid array length %d", t.ArrayLength))
	}
}

func (v *Validator) validateAnnotations(path string, annotations []*Annotation) {
	for i, a := range annotations {
		p := fmt.Sprintf("%s.annotations[%d]", path, i)
		if a == nil {
			v.addError(p, "annotation is nil")
			continue
		}
		if a.Name == "" {
			v.addError(p, "annotation has no name")
		}
		v.validateType(p+".type", a.Type)
		if a.Value == nil {
			v.addError(p, "annotation has no value")
		}
	}
}

func (v *Validator) validateTexture(path string, tex *TextureInfo) {
	if tex == nil {
		v.addError(path, "texture is nil")
		return
	}
	if tex.Levels == 0 {
		v.addError(path, "texture must have at least one mip level")
	}
	if _, err := tex.Format.MarshalText(); err != nil {
		v.addError(path, err.Error())
	}
	v.validateAnnotations(path, tex.Annotations)
}

func (v *Validator) validateSampler(path string, s *SamplerInfo) {
	if s == nil {
		v.addError(path, "sampler is nil")
		return
	}
	if v.module.Texture(s.TextureName) == nil {
		v.addError(path, fmt.Sprintf("sampler %q refers to unknown texture %q", s.Name, s.TextureName))
	}
	if _, err := s.Filter.MarshalText(); err != nil {
		v.addError(path, err.Error())
	}
	for _, mode := range []AddressMode{s.AddressU, s.AddressV, s.AddressW} {
		if _, err := mode.MarshalText(); err != nil {
			v.addError(path, err.Error())
		}
	}
	if s.MinLOD > s.MaxLOD {
		v.addError(path, fmt.Sprintf("min LOD %g exceeds max LOD %g", s.MinLOD, s.MaxLOD))
	}
	v.validateAnnotations(path, s.Annotations)
}

func (v *Validator) validateStorage(path string, s *StorageInfo) {
	if s == nil {
		v.addError(path, "storage is nil")
		return
	}
	tex := v.module.Texture(s.TextureName)
	if tex == nil {
		v.addError(path, fmt.Sprintf("storage %q refers to unknown texture %q", s.Name, s.TextureName))
		return
	}
	if !tex.StorageAccess {
		v.addError(path, fmt.Sprintf("texture %q is not declared for storage access", tex.UniqueName))
	}
	if tex.Levels != 0 && s.Level >= tex.Levels {
		v.addError(path, fmt.Sprintf("storage level %d out of range for texture with %d levels", s.Level, tex.Levels))
	}
}

func (v *Validator) validateUniform(path string, u *UniformInfo) {
	if u == nil {
		v.addError(path, "uniform is nil")
		return
	}
	v.validateType(path+".type", u.Type)
	if u.HasInitializer && u.Initializer == nil {
		v.addError(path, fmt.Sprintf("uniform %q declares an initializer but has none", u.Name))
	}
	v.validateAnnotations(path, u.Annotations)
}

func (v *Validator) validateTechnique(path string, tech *TechniqueInfo) {
	if tech == nil {
		v.addError(path, "technique is nil")
		return
	}
	if len(tech.Passes) == 0 {
		v.addError(path, fmt.Sprintf("technique %q has no passes", tech.Name))
	}
	for i, pass := range tech.Passes {
		v.validatePass(fmt.Sprintf("%s.passes[%d]", path, i), pass)
	}
	v.validateAnnotations(path, tech.Annotations)
}

func (v *Validator) validatePass(path string, pass *PassInfo) {
	if pass == nil {
		v.addError(path, "pass is nil")
		return
	}

	if pass.IsCompute() {
		v.checkEntryPoint(path, pass.CSEntryPoint, StageCompute)
	} else {
		v.checkEntryPoint(path, pass.VSEntryPoint, StageVertex)
		v.checkEntryPoint(path, pass.PSEntryPoint, StagePixel)
		if _, err := pass.Topology.MarshalText(); err != nil {
			v.addError(path, err.Error())
		}
	}

	for i, name := range pass.RenderTargetNames {
		if name == "" {
			continue
		}
		tex := v.module.Texture(name)
		switch {
		case tex == nil:
			v.addError(path, fmt.Sprintf("render target %d refers to unknown texture %q", i, name))
		case !tex.RenderTarget:
			v.addError(path, fmt.Sprintf("texture %q is not a render target", name))
		}
	}

	for i, s := range pass.Samplers {
		v.validateSampler(fmt.Sprintf("%s.samplers[%d]", path, i), s)
	}
	for i, s := range pass.Storages {
		v.validateStorage(fmt.Sprintf("%s.storages[%d]", path, i), s)
	}
}

func (v *Validator) checkEntryPoint(path, name string, stage ShaderStage) {
	if name == "" {
		v.addError(path, fmt.Sprintf("missing %s entry point", stage))
		return
	}
	ep := v.module.EntryPoint(name)
	switch {
	case ep == nil:
		v.addError(path, fmt.Sprintf("unknown entry point %q", name))
	case ep.Stage != stage:
		v.addError(path, fmt.Sprintf("entry point %q is a %s shader, want %s", name, ep.Stage, stage))
	}
}

func (v *Validator) validateExpression(path string, expr *Expression) {
	if expr == nil {
		v.addError(path, "expression is nil")
		return
	}
	v.validateType(path+".type", expr.Type)
	if expr.IsConstant && expr.Constant == nil {
		v.addError(path, "constant expression has no constant value")
	}
	for i, op := range expr.Chain {
		p := fmt.Sprintf("%s.chain[%d]", path, i)
		if op == nil {
			v.addError(p, "operation is nil")
			continue
		}
		v.validateType(p+".from", op.From)
		v.validateType(p+".to", op.To)
		if op.Kind == OpSwizzle {
			v.validateSwizzle(p, op.Swizzle)
		}
	}
}

// validateSwizzle checks that lanes are in [-1, 3] and that no used lane
// follows an unused one.
func (v *Validator) validateSwizzle(path string, swizzle [4]int8) {
	unused := false
	for i, lane := range swizzle {
		if lane < SwizzleUnused || lane > 3 {
			v.addError(path, fmt.Sprintf("swizzle lane %d selects component %d, want -1 to 3", i, lane))
			continue
		}
		if lane == SwizzleUnused {
			unused = true
		} else if unused {
			v.addError(path, fmt.Sprintf("swizzle lane %d is used after an unused lane", i))
		}
	}
	if swizzle[0] == SwizzleUnused {
		v.addError(path, "swizzle selects no components")
	}
}

// addError adds a validation error.
func (v *Validator) addError(path, msg string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: msg})
}
