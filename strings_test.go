package softgl

import (
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
)

func TestGetString(t *testing.T) {
	c := newTestContext(t, 8, 8)
	tests := []struct {
		name StringName
		want string
	}{
		{Vendor, "gogpu"},
		{Renderer, "softgl software rasterizer"},
		{Version, "1.1 softgl " + LibraryVersion},
		{License, "MIT"},
	}
	for _, tt := range tests {
		if got := c.GetString(tt.name); got != tt.want {
			t.Errorf("GetString(%d) = %q, want %q", tt.name, got, tt.want)
		}
	}
	if ext := c.GetString(Extensions); !strings.Contains(ext, "GL_EXT_polygon_offset") {
		t.Errorf("GetString(Extensions) = %q, missing polygon offset", ext)
	}
	expectError(t, c, NoError)

	if got := c.GetString(StringName(0)); got != "" {
		t.Errorf("GetString(0) = %q, want empty", got)
	}
	expectError(t, c, InvalidEnum)
}

func TestAdapterInfo(t *testing.T) {
	c := newTestContext(t, 8, 8, WithThreads(3))
	info := c.AdapterInfo()
	if info.Type != gpucontext.AdapterTypeSoftware {
		t.Errorf("Type = %v, want software", info.Type)
	}
	if !strings.Contains(info.Name, "3 workers") {
		t.Errorf("Name = %q, want worker count", info.Name)
	}

	serial := newTestContext(t, 8, 8, WithThreads(1))
	if name := serial.AdapterInfo().Name; !strings.Contains(name, "1 workers") {
		t.Errorf("Name = %q, want 1 worker", name)
	}
}
