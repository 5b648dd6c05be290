package softgl

import (
	"math"
	"testing"
)

const eps = 1e-9

func matricesClose(a, b Matrix4, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func vecClose(a, b Vec4, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol && math.Abs(a.W-b.W) <= tol
}

func TestMatrix4_Transform(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix4
		in   Vec4
		want Vec4
	}{
		{"identity", Identity(), V4(1, 2, 3, 1), V4(1, 2, 3, 1)},
		{"translation", Translation(1, -2, 3), V4(1, 1, 1, 1), V4(2, -1, 4, 1)},
		{"translation ignores direction", Translation(1, -2, 3), V4(1, 1, 1, 0), V4(1, 1, 1, 0)},
		{"scaling", Scaling(2, 3, 4), V4(1, 1, 1, 1), V4(2, 3, 4, 1)},
		{"rotate z 90", Rotation(90, 0, 0, 1), V4(1, 0, 0, 1), V4(0, 1, 0, 1)},
		{"rotate x 90", Rotation(90, 1, 0, 0), V4(0, 1, 0, 1), V4(0, 0, 1, 1)},
		{"rotate zero axis", Rotation(45, 0, 0, 0), V4(1, 2, 3, 1), V4(1, 2, 3, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Transform(tt.in)
			if !vecClose(got, tt.want, eps) {
				t.Errorf("Transform(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrix4_MulOrder(t *testing.T) {
	// T*S scales first, then translates.
	m := Translation(10, 0, 0).Mul(Scaling(2, 2, 2))
	got := m.Transform(V4(1, 0, 0, 1))
	if want := V4(12, 0, 0, 1); !vecClose(got, want, eps) {
		t.Errorf("(T*S)(1,0,0) = %v, want %v", got, want)
	}
}

func TestMatrix4_Inverse(t *testing.T) {
	m := Translation(1, 2, 3).Mul(Rotation(30, 1, 1, 0)).Mul(Scaling(2, 0.5, 4))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("Inverse() ok = false for an invertible matrix")
	}
	if got := m.Mul(inv); !matricesClose(got, Identity(), 1e-9) {
		t.Errorf("m * Inverse(m) = %v, want identity", got)
	}

	if _, ok := Scaling(1, 0, 1).Inverse(); ok {
		t.Error("Inverse() ok = true for a singular matrix")
	}
}

func TestMatrix4_ColumnMajorRoundTrip(t *testing.T) {
	m := Translation(1, 2, 3)
	cm := m.ColumnMajor()
	// GL stores the translation in elements 12..14.
	if cm[12] != 1 || cm[13] != 2 || cm[14] != 3 {
		t.Errorf("ColumnMajor() translation = %v, want 1 2 3", cm[12:15])
	}
	if got := FromColumnMajor(cm); got != m {
		t.Errorf("FromColumnMajor(ColumnMajor(m)) = %v, want %v", got, m)
	}
}

func TestMatrix4_Projections(t *testing.T) {
	f := FrustumMatrix(-1, 1, -1, 1, 1, 10)
	near := f.Transform(V4(0, 0, -1, 1))
	far := f.Transform(V4(0, 0, -10, 1))
	if z := near.Z / near.W; math.Abs(z+1) > eps {
		t.Errorf("frustum near plane ndc z = %v, want -1", z)
	}
	if z := far.Z / far.W; math.Abs(z-1) > eps {
		t.Errorf("frustum far plane ndc z = %v, want 1", z)
	}
	if f.hasNoPerspective() {
		t.Error("frustum hasNoPerspective() = true")
	}

	o := OrthoMatrix(0, 64, 0, 32, -1, 1)
	if got := o.Transform(V4(64, 32, 0, 1)); !vecClose(got, V4(1, 1, 0, 1), eps) {
		t.Errorf("ortho corner = %v, want (1,1,0,1)", got)
	}
	if !o.hasNoPerspective() {
		t.Error("ortho hasNoPerspective() = false")
	}
}

func TestMatrix4_IsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if Translation(0, 0, 1).IsIdentity() {
		t.Error("Translation(0,0,1).IsIdentity() = true")
	}
}
