package softgl

import (
	"math"
	"testing"
)

func TestVec3_Ops(t *testing.T) {
	a, b := V3(1, 2, 3), V3(4, 5, 6)
	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add() = %v, want (5,7,9)", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub() = %v, want (3,3,3)", got)
	}
	if got := a.Mul(2); got != V3(2, 4, 6) {
		t.Errorf("Mul() = %v, want (2,4,6)", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot() = %v, want 32", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("Cross() = %v, want (0,0,1)", got)
	}
	if got := V3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"axis", V3(0, 0, 7)},
		{"diagonal", V3(1, 1, 1)},
		{"small", V3(1e-3, 2e-3, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if l := tt.v.Normalize().Length(); math.Abs(l-1) > 1e-12 {
				t.Errorf("Normalize().Length() = %v, want 1", l)
			}
			if l := tt.v.FastNormalize().Length(); math.Abs(l-1) > 2e-3 {
				t.Errorf("FastNormalize().Length() = %v, want 1 within 0.2%%", l)
			}
		})
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
}

func TestFastInvSqrt(t *testing.T) {
	for _, x := range []float32{0.01, 0.5, 1, 2, 100, 12345} {
		want := 1 / math.Sqrt(float64(x))
		got := float64(FastInvSqrt(x))
		if rel := math.Abs(got-want) / want; rel > 2e-3 {
			t.Errorf("FastInvSqrt(%v) = %v, want %v (rel err %v)", x, got, want, rel)
		}
	}
}

func TestVec4_Clamp01(t *testing.T) {
	got := V4(-1, 0.5, 2, 1).Clamp01()
	if want := V4(0, 0.5, 1, 1); got != want {
		t.Errorf("Clamp01() = %v, want %v", got, want)
	}
}
