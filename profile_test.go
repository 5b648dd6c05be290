package softgl

import (
	"bytes"
	"strings"
	"testing"
)

func TestProfile_Disabled(t *testing.T) {
	c := newTestContext(t, 8, 8)
	c.Flush()
	if p := c.Profile(); p != nil {
		t.Errorf("Profile() = %v, want nil", p)
	}
	var buf bytes.Buffer
	if err := c.WriteProfile(&buf); err != nil {
		t.Fatalf("WriteProfile() error = %v", err)
	}
	if !strings.Contains(buf.String(), "disabled") {
		t.Errorf("WriteProfile() = %q, want disabled notice", buf.String())
	}
}

func TestProfile_Counts(t *testing.T) {
	c := newTestContext(t, 16, 16, WithProfiling())
	setupOrtho(c)
	c.Begin(Triangles)
	for range 6 {
		c.Vertex2f(0, 0)
	}
	c.End()

	counts := map[Opcode]uint64{}
	for _, e := range c.Profile() {
		counts[e.Op] = e.Calls
	}
	want := map[Opcode]uint64{
		OpMatrixMode:   2,
		OpLoadIdentity: 2,
		OpOrtho:        1,
		OpBegin:        1,
		OpVertex:       6,
		OpEnd:          1,
	}
	for op, n := range want {
		if counts[op] != n {
			t.Errorf("calls[%v] = %d, want %d", op, counts[op], n)
		}
	}
	if len(counts) != len(want) {
		t.Errorf("profiled opcodes = %v, want %v", counts, want)
	}

	var buf bytes.Buffer
	if err := c.WriteProfile(&buf); err != nil {
		t.Fatalf("WriteProfile() error = %v", err)
	}
	out := buf.String()
	for _, s := range []string{"profiling results", OpVertex.String(), "Total time"} {
		if !strings.Contains(out, s) {
			t.Errorf("WriteProfile() missing %q:\n%s", s, out)
		}
	}

	c.ResetProfile()
	if p := c.Profile(); len(p) != 0 {
		t.Errorf("Profile() after reset = %v, want empty", p)
	}
}

func TestOpcode_String(t *testing.T) {
	if got := OpVertex.String(); got == "" || strings.HasPrefix(got, "Opcode(") {
		t.Errorf("OpVertex.String() = %q", got)
	}
	if got := Opcode(-1).String(); !strings.HasPrefix(got, "Opcode(") {
		t.Errorf("Opcode(-1).String() = %q", got)
	}
}
