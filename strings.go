package softgl

import (
	"strconv"
	"strings"

	"github.com/gogpu/gpucontext"
)

const (
	vendorString   = "gogpu"
	rendererString = "softgl software rasterizer"
	licenseString  = "MIT"
)

var extensions = []string{
	"GL_EXT_bgra",
	"GL_EXT_polygon_offset",
	"GL_EXT_texture_object",
	"GL_EXT_blend_minmax",
	"GL_EXT_blend_subtract",
}

// GetString returns an identification string. Unknown names record
// InvalidEnum and return "".
func (c *Context) GetString(name StringName) string {
	switch name {
	case Vendor:
		return vendorString
	case Renderer:
		return rendererString
	case Version:
		return "1.1 softgl " + LibraryVersion
	case Extensions:
		return strings.Join(extensions, " ")
	case License:
		return licenseString
	default:
		c.setError(InvalidEnum)
		return ""
	}
}

// AdapterInfo describes the rasterizer as a gpucontext software adapter.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	workers := 1
	if c.pool != nil {
		workers = c.pool.Workers()
	}
	return gpucontext.AdapterInfo{
		Name: rendererString + " (" + strconv.Itoa(workers) + " workers)",
		Type: gpucontext.AdapterTypeSoftware,
	}
}
