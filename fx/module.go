package fx

// ShaderStage is the pipeline stage of an entry point.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StagePixel
	StageCompute
)

var shaderStageNames = newEnumTable("shader stage", map[ShaderStage]string{
	StageVertex:  "vertex",
	StagePixel:   "pixel",
	StageCompute: "compute",
})

func (s ShaderStage) String() string                { return shaderStageNames.name(s) }
func (s ShaderStage) MarshalText() ([]byte, error)  { return shaderStageNames.marshal(s) }
func (s *ShaderStage) UnmarshalText(p []byte) error { return unmarshalEnum(shaderStageNames, s, p) }

// EntryPoint is a shader entry point in the module's code.
type EntryPoint struct {
	Name  string
	Stage ShaderStage
}

// FunctionInfo describes a function definition and the resources it uses.
type FunctionInfo struct {
	Definition         uint32
	Name               string
	UniqueName         string
	ReturnType         *Type
	ReturnSemantic     string
	Parameters         []*StructMember
	ReferencedSamplers []uint32
	ReferencedStorages []uint32
}

// Module is the root of the reflection tree.
type Module struct {
	// Code is the generated shader code. It is opaque to this package and
	// may be empty.
	Code []byte

	EntryPoints   []*EntryPoint
	Textures      []*TextureInfo
	Samplers      []*SamplerInfo
	Storages      []*StorageInfo
	Uniforms      []*UniformInfo
	SpecConstants []*UniformInfo
	Techniques    []*TechniqueInfo

	// Summary counters precomputed by the compiler.
	TotalUniformSize   uint32
	NumTextureBindings uint32
	NumSamplerBindings uint32
	NumStorageBindings uint32
}

// EntryPoint returns the entry point with the given name, or nil.
func (m *Module) EntryPoint(name string) *EntryPoint {
	for _, ep := range m.EntryPoints {
		if ep != nil && ep.Name == name {
			return ep
		}
	}
	return nil
}

// Texture returns the texture with the given unique name, or nil.
func (m *Module) Texture(uniqueName string) *TextureInfo {
	for _, tex := range m.Textures {
		if tex != nil && tex.UniqueName == uniqueName {
			return tex
		}
	}
	return nil
}

// Technique returns the technique with the given name, or nil.
func (m *Module) Technique(name string) *TechniqueInfo {
	for _, tech := range m.Techniques {
		if tech != nil && tech.Name == name {
			return tech
		}
	}
	return nil
}
