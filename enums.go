package softgl

import "fmt"

// Capability names a server-side feature toggled with Enable and Disable.
type Capability int

// Capabilities. The light capabilities are CapLight0 + i for i < MaxLights;
// see LightCap.
const (
	CapDepthTest Capability = iota + 1
	CapBlend
	CapCullFace
	CapLighting
	CapTexture2D
	CapColorMaterial
	CapNormalize
	CapFog
	CapScissorTest
	CapAlphaTest
	CapStencilTest
	CapPolygonStipple
	CapPolygonOffsetFill
	CapPolygonOffsetLine
	CapPolygonOffsetPoint

	capLast
)

// CapLight0 is the capability of the first light.
const CapLight0 Capability = 0x4000

// LightCap returns the capability toggling light i.
func LightCap(i int) Capability { return CapLight0 + Capability(i) }

var capabilityNames = [...]string{
	CapDepthTest:          "DepthTest",
	CapBlend:              "Blend",
	CapCullFace:           "CullFace",
	CapLighting:           "Lighting",
	CapTexture2D:          "Texture2D",
	CapColorMaterial:      "ColorMaterial",
	CapNormalize:          "Normalize",
	CapFog:                "Fog",
	CapScissorTest:        "ScissorTest",
	CapAlphaTest:          "AlphaTest",
	CapStencilTest:        "StencilTest",
	CapPolygonStipple:     "PolygonStipple",
	CapPolygonOffsetFill:  "PolygonOffsetFill",
	CapPolygonOffsetLine:  "PolygonOffsetLine",
	CapPolygonOffsetPoint: "PolygonOffsetPoint",
}

// String returns the capability name.
func (c Capability) String() string {
	if c >= CapLight0 && c < CapLight0+MaxLights {
		return fmt.Sprintf("Light%d", c-CapLight0)
	}
	if c > 0 && c < capLast {
		return capabilityNames[c]
	}
	return fmt.Sprintf("Capability(%d)", int(c))
}

// Capabilities returns every valid capability, lights included.
func Capabilities() []Capability {
	caps := make([]Capability, 0, int(capLast)-1+MaxLights)
	for c := CapDepthTest; c < capLast; c++ {
		caps = append(caps, c)
	}
	for i := range MaxLights {
		caps = append(caps, LightCap(i))
	}
	return caps
}

// MatrixMode selects the matrix stack that matrix commands operate on.
type MatrixMode int

// Matrix modes.
const (
	MatrixModelView MatrixMode = iota
	MatrixProjection
	MatrixTexture
)

// Primitive is the topology of a Begin/End block.
type Primitive int

// Primitive topologies.
const (
	Points Primitive = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
	Quads
	QuadStrip
	Polygon
)

var primitiveNames = [...]string{
	"Points", "Lines", "LineLoop", "LineStrip", "Triangles",
	"TriangleStrip", "TriangleFan", "Quads", "QuadStrip", "Polygon",
}

// String returns the primitive name.
func (p Primitive) String() string {
	if p >= 0 && int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("Primitive(%d)", int(p))
}

// Face selects front, back or both materials or polygon modes.
type Face int

// Faces.
const (
	FaceFront Face = iota + 1
	FaceBack
	FaceFrontAndBack
)

// PolygonMode is how a triangle is rasterized.
type PolygonMode int

// Polygon modes.
const (
	PolygonPoint PolygonMode = iota + 1
	PolygonLine
	PolygonFill
)

// ShadeModel selects flat or smooth colour across a primitive.
type ShadeModel int

// Shade models.
const (
	ShadeFlat ShadeModel = iota + 1
	ShadeSmooth
)

// FogMode is the fog factor equation.
type FogMode int

// Fog modes.
const (
	FogLinear FogMode = iota + 1
	FogExp
	FogExp2
)

// MaterialParam names a material property.
type MaterialParam int

// Material properties.
const (
	MaterialEmission MaterialParam = iota + 1
	MaterialAmbient
	MaterialDiffuse
	MaterialSpecular
	MaterialShininess
	MaterialAmbientAndDiffuse
)

// LightParam names a light property.
type LightParam int

// Light properties.
const (
	LightAmbient LightParam = iota + 1
	LightDiffuse
	LightSpecular
	LightPosition
	LightSpotDirection
	LightSpotExponent
	LightSpotCutoff
	LightConstantAttenuation
	LightLinearAttenuation
	LightQuadraticAttenuation
)

// ClearMask selects the planes cleared by Clear.
type ClearMask uint32

// Clear bits.
const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

// TexParam names a texture object parameter.
type TexParam int

// Texture parameters. Wrap parameters take gputypes.AddressMode values,
// filter parameters take gputypes.FilterMode values.
const (
	TexWrapS TexParam = iota + 1
	TexWrapT
	TexMinFilter
	TexMagFilter
)

// TexEnvMode is how texels combine with the fragment colour.
type TexEnvMode int

// Texture environment modes. Decal behaves like Replace since there is no
// texel alpha.
const (
	TexModulate TexEnvMode = iota + 1
	TexReplace
	TexDecal
)

// PixelFormat is the channel layout of client pixel data.
type PixelFormat int

// Pixel formats.
const (
	FormatRGB PixelFormat = iota + 1
	FormatBGR
	FormatBGRA
	FormatRGBA
	FormatDepthComponent
)

// PixelType is the component type of client pixel data.
type PixelType int

// Pixel types. Colour data is UnsignedByte; depth data is UnsignedShort
// (little-endian).
const (
	UnsignedByte PixelType = iota + 1
	UnsignedShort
)

// StringName selects the string returned by GetString.
type StringName int

// String names.
const (
	Vendor StringName = iota + 1
	Renderer
	Version
	Extensions
	License
)

// PixelMode is the framebuffer colour layout.
type PixelMode int

// Pixel modes.
const (
	// PixelARGB32 stores one opaque 0xAARRGGBB word per pixel.
	PixelARGB32 PixelMode = iota + 1
)
