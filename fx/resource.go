package fx

// StructMember is a member of a struct or a function parameter.
type StructMember struct {
	Type       *Type
	Name       string
	Semantic   string
	Definition uint32
}

// StructInfo describes a struct definition.
type StructInfo struct {
	Name       string
	UniqueName string
	Members    []*StructMember
	Definition uint32
}

// Annotation is a named constant attached to a texture, sampler, uniform
// or technique.
type Annotation struct {
	Type  *Type
	Name  string
	Value *Constant
}

// TextureFormat is the storage format of a texture.
type TextureFormat uint8

const (
	FormatUnknown TextureFormat = iota
	FormatR8
	FormatR16
	FormatR16F
	FormatR32F
	FormatRG8
	FormatRG16
	FormatRG16F
	FormatRG32F
	FormatRGBA8
	FormatRGBA16
	FormatRGBA16F
	FormatRGBA32F
	FormatRGB10A2
)

var textureFormatNames = newEnumTable("texture format", map[TextureFormat]string{
	FormatUnknown: "unknown",
	FormatR8:      "r8",
	FormatR16:     "r16",
	FormatR16F:    "r16f",
	FormatR32F:    "r32f",
	FormatRG8:     "rg8",
	FormatRG16:    "rg16",
	FormatRG16F:   "rg16f",
	FormatRG32F:   "rg32f",
	FormatRGBA8:   "rgba8",
	FormatRGBA16:  "rgba16",
	FormatRGBA16F: "rgba16f",
	FormatRGBA32F: "rgba32f",
	FormatRGB10A2: "rgb10a2",
})

func (f TextureFormat) String() string                { return textureFormatNames.name(f) }
func (f TextureFormat) MarshalText() ([]byte, error)  { return textureFormatNames.marshal(f) }
func (f *TextureFormat) UnmarshalText(p []byte) error { return unmarshalEnum(textureFormatNames, f, p) }

// TextureInfo describes a texture resource.
type TextureInfo struct {
	ID            uint32
	Binding       uint32
	Name          string
	Semantic      string
	UniqueName    string
	Annotations   []*Annotation
	Width         uint32
	Height        uint32
	Levels        uint16
	Format        TextureFormat
	RenderTarget  bool
	StorageAccess bool
}

// FilterMode selects min/mag/mip filtering. The values are the bit
// patterns used by the compiler: bit 0 mip, bit 2 mag, bit 4 min linear.
type FilterMode uint8

const (
	FilterMinMagMipPoint             FilterMode = 0x00
	FilterMinMagPointMipLinear       FilterMode = 0x01
	FilterMinPointMagLinearMipPoint  FilterMode = 0x04
	FilterMinPointMagMipLinear       FilterMode = 0x05
	FilterMinLinearMagMipPoint       FilterMode = 0x10
	FilterMinLinearMagPointMipLinear FilterMode = 0x11
	FilterMinMagLinearMipPoint       FilterMode = 0x14
	FilterMinMagMipLinear            FilterMode = 0x15
)

var filterModeNames = newEnumTable("filter mode", map[FilterMode]string{
	FilterMinMagMipPoint:             "min_mag_mip_point",
	FilterMinMagPointMipLinear:       "min_mag_point_mip_linear",
	FilterMinPointMagLinearMipPoint:  "min_point_mag_linear_mip_point",
	FilterMinPointMagMipLinear:       "min_point_mag_mip_linear",
	FilterMinLinearMagMipPoint:       "min_linear_mag_mip_point",
	FilterMinLinearMagPointMipLinear: "min_linear_mag_point_mip_linear",
	FilterMinMagLinearMipPoint:       "min_mag_linear_mip_point",
	FilterMinMagMipLinear:            "min_mag_mip_linear",
})

func (f FilterMode) String() string                { return filterModeNames.name(f) }
func (f FilterMode) MarshalText() ([]byte, error)  { return filterModeNames.marshal(f) }
func (f *FilterMode) UnmarshalText(p []byte) error { return unmarshalEnum(filterModeNames, f, p) }

// MinLinear, MagLinear and MipLinear decode the filter bit pattern.
func (f FilterMode) MinLinear() bool { return f&0x10 != 0 }
func (f FilterMode) MagLinear() bool { return f&0x04 != 0 }
func (f FilterMode) MipLinear() bool { return f&0x01 != 0 }

// AddressMode is a texture coordinate addressing mode.
type AddressMode uint8

const (
	AddressWrap AddressMode = iota + 1
	AddressMirror
	AddressClamp
	AddressBorder
)

var addressModeNames = newEnumTable("address mode", map[AddressMode]string{
	AddressWrap:   "wrap",
	AddressMirror: "mirror",
	AddressClamp:  "clamp",
	AddressBorder: "border",
})

func (a AddressMode) String() string                { return addressModeNames.name(a) }
func (a AddressMode) MarshalText() ([]byte, error)  { return addressModeNames.marshal(a) }
func (a *AddressMode) UnmarshalText(p []byte) error { return unmarshalEnum(addressModeNames, a, p) }

// SamplerInfo describes a sampler bound to a texture.
type SamplerInfo struct {
	ID             uint32
	Binding        uint32
	TextureBinding uint32
	Name           string
	UniqueName     string
	TextureName    string
	Annotations    []*Annotation
	Filter         FilterMode
	AddressU       AddressMode
	AddressV       AddressMode
	AddressW       AddressMode
	MinLOD         float32
	MaxLOD         float32
	LODBias        float32
	SRGB           bool
}

// StorageInfo describes a storage (read-write) view of a texture level.
type StorageInfo struct {
	ID          uint32
	Binding     uint32
	Name        string
	UniqueName  string
	TextureName string
	Format      TextureFormat
	Level       uint16
}

// UniformInfo describes a uniform variable or a specialization constant.
type UniformInfo struct {
	Name           string
	Type           *Type
	Size           uint32 // in bytes
	Offset         uint32 // in bytes, within the uniform buffer
	Annotations    []*Annotation
	HasInitializer bool
	Initializer    *Constant
}
