// Package wgpumap translates cloned effect modules into WebGPU descriptors.
//
// The fx model carries the state of a D3D style effect compiler. A host
// that renders with WebGPU maps that state onto wgpu descriptors once per
// module; the functions here do the per-enum translation and build the
// sampler, texture, blend, stencil and primitive descriptors of a pass.
//
// Values with no WebGPU equivalent (16 bit unorm formats, border
// addressing) are reported with ok == false or an error wrapping
// ErrUnmappable.
package wgpumap

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/fxclone/fx"
)

// ErrUnmappable is wrapped by errors for values WebGPU cannot express.
var ErrUnmappable = errors.New("wgpumap: no WebGPU equivalent")

var textureFormats = map[fx.TextureFormat]wgpu.TextureFormat{
	fx.FormatR8:      wgpu.TextureFormatR8Unorm,
	fx.FormatR16F:    wgpu.TextureFormatR16Float,
	fx.FormatR32F:    wgpu.TextureFormatR32Float,
	fx.FormatRG8:     wgpu.TextureFormatRG8Unorm,
	fx.FormatRG16F:   wgpu.TextureFormatRG16Float,
	fx.FormatRG32F:   wgpu.TextureFormatRG32Float,
	fx.FormatRGBA8:   wgpu.TextureFormatRGBA8Unorm,
	fx.FormatRGBA16F: wgpu.TextureFormatRGBA16Float,
	fx.FormatRGBA32F: wgpu.TextureFormatRGBA32Float,
	fx.FormatRGB10A2: wgpu.TextureFormatRGB10A2Unorm,
}

// TextureFormat maps a texture format. With srgb set, rgba8 maps to its
// sRGB view format.
func TextureFormat(f fx.TextureFormat, srgb bool) (wgpu.TextureFormat, bool) {
	if srgb && f == fx.FormatRGBA8 {
		return wgpu.TextureFormatRGBA8UnormSrgb, true
	}
	out, ok := textureFormats[f]
	return out, ok
}

// FilterModes splits a filter bit pattern into its min, mag and mipmap modes.
func FilterModes(f fx.FilterMode) (minFilter, magFilter wgpu.FilterMode, mip wgpu.MipmapFilterMode) {
	minFilter, magFilter, mip = wgpu.FilterModeNearest, wgpu.FilterModeNearest, wgpu.MipmapFilterModeNearest
	if f.MinLinear() {
		minFilter = wgpu.FilterModeLinear
	}
	if f.MagLinear() {
		magFilter = wgpu.FilterModeLinear
	}
	if f.MipLinear() {
		mip = wgpu.MipmapFilterModeLinear
	}
	return minFilter, magFilter, mip
}

// AddressMode maps a texture addressing mode. Border has no equivalent.
func AddressMode(a fx.AddressMode) (wgpu.AddressMode, bool) {
	switch a {
	case fx.AddressWrap:
		return wgpu.AddressModeRepeat, true
	case fx.AddressMirror:
		return wgpu.AddressModeMirrorRepeat, true
	case fx.AddressClamp:
		return wgpu.AddressModeClampToEdge, true
	default:
		return wgpu.AddressModeClampToEdge, false
	}
}

// BlendOperation maps a blend equation.
func BlendOperation(op fx.BlendOp) (wgpu.BlendOperation, bool) {
	switch op {
	case fx.BlendAdd:
		return wgpu.BlendOperationAdd, true
	case fx.BlendSubtract:
		return wgpu.BlendOperationSubtract, true
	case fx.BlendRevSubtract:
		return wgpu.BlendOperationReverseSubtract, true
	case fx.BlendMin:
		return wgpu.BlendOperationMin, true
	case fx.BlendMax:
		return wgpu.BlendOperationMax, true
	default:
		return wgpu.BlendOperationAdd, false
	}
}

var blendFactors = map[fx.BlendFactor]wgpu.BlendFactor{
	fx.BlendZero:        wgpu.BlendFactorZero,
	fx.BlendOne:         wgpu.BlendFactorOne,
	fx.BlendSrcColor:    wgpu.BlendFactorSrc,
	fx.BlendSrcAlpha:    wgpu.BlendFactorSrcAlpha,
	fx.BlendInvSrcColor: wgpu.BlendFactorOneMinusSrc,
	fx.BlendInvSrcAlpha: wgpu.BlendFactorOneMinusSrcAlpha,
	fx.BlendDstColor:    wgpu.BlendFactorDst,
	fx.BlendDstAlpha:    wgpu.BlendFactorDstAlpha,
	fx.BlendInvDstColor: wgpu.BlendFactorOneMinusDst,
	fx.BlendInvDstAlpha: wgpu.BlendFactorOneMinusDstAlpha,
}

// BlendFactor maps a blend factor.
func BlendFactor(f fx.BlendFactor) (wgpu.BlendFactor, bool) {
	out, ok := blendFactors[f]
	return out, ok
}

var stencilOperations = map[fx.StencilOp]wgpu.StencilOperation{
	fx.StencilZero:    wgpu.StencilOperationZero,
	fx.StencilKeep:    wgpu.StencilOperationKeep,
	fx.StencilInvert:  wgpu.StencilOperationInvert,
	fx.StencilReplace: wgpu.StencilOperationReplace,
	fx.StencilIncr:    wgpu.StencilOperationIncrementWrap,
	fx.StencilIncrSat: wgpu.StencilOperationIncrementClamp,
	fx.StencilDecr:    wgpu.StencilOperationDecrementWrap,
	fx.StencilDecrSat: wgpu.StencilOperationDecrementClamp,
}

// StencilOperation maps a stencil action.
func StencilOperation(op fx.StencilOp) (wgpu.StencilOperation, bool) {
	out, ok := stencilOperations[op]
	return out, ok
}

var compareFunctions = map[fx.StencilFunc]wgpu.CompareFunction{
	fx.StencilNever:        wgpu.CompareFunctionNever,
	fx.StencilEqual:        wgpu.CompareFunctionEqual,
	fx.StencilNotEqual:     wgpu.CompareFunctionNotEqual,
	fx.StencilLess:         wgpu.CompareFunctionLess,
	fx.StencilLessEqual:    wgpu.CompareFunctionLessEqual,
	fx.StencilGreater:      wgpu.CompareFunctionGreater,
	fx.StencilGreaterEqual: wgpu.CompareFunctionGreaterEqual,
	fx.StencilAlways:       wgpu.CompareFunctionAlways,
}

// CompareFunction maps a stencil comparison.
func CompareFunction(f fx.StencilFunc) (wgpu.CompareFunction, bool) {
	out, ok := compareFunctions[f]
	return out, ok
}

// PrimitiveTopology maps a draw topology.
func PrimitiveTopology(t fx.PrimitiveTopology) (wgpu.PrimitiveTopology, bool) {
	switch t {
	case fx.TopologyPointList:
		return wgpu.PrimitiveTopologyPointList, true
	case fx.TopologyLineList:
		return wgpu.PrimitiveTopologyLineList, true
	case fx.TopologyLineStrip:
		return wgpu.PrimitiveTopologyLineStrip, true
	case fx.TopologyTriangleList:
		return wgpu.PrimitiveTopologyTriangleList, true
	case fx.TopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip, true
	default:
		return wgpu.PrimitiveTopologyTriangleList, false
	}
}

// ColorWriteMask maps a per target write mask.
func ColorWriteMask(mask uint8) wgpu.ColorWriteMask {
	out := wgpu.ColorWriteMaskNone
	if mask&fx.WriteRed != 0 {
		out |= wgpu.ColorWriteMaskRed
	}
	if mask&fx.WriteGreen != 0 {
		out |= wgpu.ColorWriteMaskGreen
	}
	if mask&fx.WriteBlue != 0 {
		out |= wgpu.ColorWriteMaskBlue
	}
	if mask&fx.WriteAlpha != 0 {
		out |= wgpu.ColorWriteMaskAlpha
	}
	return out
}

func unmappable(what string, v fmt.Stringer) error {
	return fmt.Errorf("%w: %s %s", ErrUnmappable, what, v)
}
