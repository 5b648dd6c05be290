package softgl

import "fmt"

// Opcode identifies a command variant. It indexes the profiling table.
type Opcode int

// Opcodes, one per command variant.
const (
	OpBegin Opcode = iota
	OpEnd
	OpVertex
	OpColor
	OpNormal
	OpTexCoord
	OpEdgeFlag
	OpEnable
	OpDisable
	OpMatrixMode
	OpLoadIdentity
	OpLoadMatrix
	OpMultMatrix
	OpPushMatrix
	OpPopMatrix
	OpTranslate
	OpRotate
	OpScale
	OpFrustum
	OpOrtho
	OpViewport
	OpScissor
	OpDepthRange
	OpClear
	OpClearColor
	OpClearDepth
	OpDepthFunc
	OpDepthMask
	OpBlendFunc
	OpBlendEquation
	OpAlphaFunc
	OpStencilFunc
	OpPointSize
	OpLineWidth
	OpShadeModel
	OpCullFace
	OpFrontFace
	OpPolygonMode
	OpPolygonOffset
	OpFog
	OpMaterial
	OpColorMaterial
	OpLight
	OpLightModel
	OpSetSpecular
	OpGenTextures
	OpBindTexture
	OpDeleteTextures
	OpTexImage2D
	OpTexSubImage2D
	OpCopyTexImage2D
	OpCopyTexSubImage2D
	OpTexParameter
	OpTexEnv
	OpFlush

	opCount
)

var opcodeNames = [opCount]string{
	OpBegin:             "Begin",
	OpEnd:               "End",
	OpVertex:            "Vertex",
	OpColor:             "Color",
	OpNormal:            "Normal",
	OpTexCoord:          "TexCoord",
	OpEdgeFlag:          "EdgeFlag",
	OpEnable:            "Enable",
	OpDisable:           "Disable",
	OpMatrixMode:        "MatrixMode",
	OpLoadIdentity:      "LoadIdentity",
	OpLoadMatrix:        "LoadMatrix",
	OpMultMatrix:        "MultMatrix",
	OpPushMatrix:        "PushMatrix",
	OpPopMatrix:         "PopMatrix",
	OpTranslate:         "Translate",
	OpRotate:            "Rotate",
	OpScale:             "Scale",
	OpFrustum:           "Frustum",
	OpOrtho:             "Ortho",
	OpViewport:          "Viewport",
	OpScissor:           "Scissor",
	OpDepthRange:        "DepthRange",
	OpClear:             "Clear",
	OpClearColor:        "ClearColor",
	OpClearDepth:        "ClearDepth",
	OpDepthFunc:         "DepthFunc",
	OpDepthMask:         "DepthMask",
	OpBlendFunc:         "BlendFunc",
	OpBlendEquation:     "BlendEquation",
	OpAlphaFunc:         "AlphaFunc",
	OpStencilFunc:       "StencilFunc",
	OpPointSize:         "PointSize",
	OpLineWidth:         "LineWidth",
	OpShadeModel:        "ShadeModel",
	OpCullFace:          "CullFace",
	OpFrontFace:         "FrontFace",
	OpPolygonMode:       "PolygonMode",
	OpPolygonOffset:     "PolygonOffset",
	OpFog:               "Fog",
	OpMaterial:          "Material",
	OpColorMaterial:     "ColorMaterial",
	OpLight:             "Light",
	OpLightModel:        "LightModel",
	OpSetSpecular:       "SetSpecular",
	OpGenTextures:       "GenTextures",
	OpBindTexture:       "BindTexture",
	OpDeleteTextures:    "DeleteTextures",
	OpTexImage2D:        "TexImage2D",
	OpTexSubImage2D:     "TexSubImage2D",
	OpCopyTexImage2D:    "CopyTexImage2D",
	OpCopyTexSubImage2D: "CopyTexSubImage2D",
	OpTexParameter:      "TexParameter",
	OpTexEnv:            "TexEnv",
	OpFlush:             "Flush",
}

// String returns the command name.
func (op Opcode) String() string {
	if op >= 0 && op < opCount {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", int(op))
}

// Command is one encoded immediate-mode call. The set of commands is
// closed: only this package can implement it.
//
// Every public state-changing method of Context builds a Command and
// dispatches it immediately; nothing is queued.
type Command interface {
	Opcode() Opcode
	apply(c *Context)
}

// invalidCmd records an error for a call whose arguments cannot even be
// encoded, so that it is still profiled under its opcode.
type invalidCmd struct {
	op   Opcode
	code ErrorCode
}

func (cmd invalidCmd) Opcode() Opcode { return cmd.op }

func (cmd invalidCmd) apply(c *Context) { c.setError(cmd.code) }
