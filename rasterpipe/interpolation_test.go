package rasterpipe

import (
	"math"
	"testing"

	rmath "render-engine/math"
)

// TestBarycentricRangeAndSum covers property 1: barycentrics of an interior
// point lie in [0, 1] and sum to 1 within 1e-6.
func TestBarycentricRangeAndSum(t *testing.T) {
	v0 := ViewportPoint{X: 0, Y: 0, InvW: 1}
	v1 := ViewportPoint{X: 3, Y: 0, InvW: 1}
	v2 := ViewportPoint{X: 0, Y: 3, InvW: 1}

	samples := []rmath.Vec3{
		{X: 1, Y: 1},
		{X: 0.5, Y: 0.5},
		{X: 2, Y: 0.5},
		{X: 0.1, Y: 2.5},
	}

	for _, q := range samples {
		u, v, w, err := BarycentricAt(q, v0, v1, v2)
		if err != nil {
			t.Fatalf("BarycentricAt(%v): unexpected error: %v", q, err)
		}
		for name, val := range map[string]float64{"u": u, "v": v, "w": w} {
			if val < 0 || val > 1 {
				t.Errorf("BarycentricAt(%v): %s = %v out of [0,1]", q, name, val)
			}
		}
		if sum := u + v + w; math.Abs(sum-1) > 1e-6 {
			t.Errorf("BarycentricAt(%v): u+v+w = %v, want ~1", q, sum)
		}
	}
}

// TestInterpolationNearVertexMatchesVertexAttribute covers property 2: as a
// sample point approaches a triangle vertex, perspective-correct
// interpolation of any attribute approaches that vertex's value.
func TestInterpolationNearVertexMatchesVertexAttribute(t *testing.T) {
	v0 := ViewportPoint{X: 0, Y: 0, InvW: 1}
	v1 := ViewportPoint{X: 3, Y: 0, InvW: 1}
	v2 := ViewportPoint{X: 0, Y: 3, InvW: 1}

	// u = qx/3, v = qy/3 for this triangle (see BarycentricAt derivation);
	// 1e-6 keeps both comfortably above the 1e-7 rejection floor.
	qx, qy := float32(3e-6), float32(3e-6)
	u, v, w, err := BarycentricAt(rmath.Vec3{X: qx, Y: qy}, v0, v1, v2)
	if err != nil {
		t.Fatalf("BarycentricAt: %v", err)
	}

	attr := [3]float64{10, 20, 30}
	interpolated := attr[0]*w + attr[1]*u + attr[2]*v
	if math.Abs(interpolated-attr[0]) > 1e-4 {
		t.Errorf("near-vertex interpolation = %v, want ~%v", interpolated, attr[0])
	}
}

// TestPerspectiveCorrectInterpolationS4 is the literal S4 scenario: a
// triangle with inv_w = (1, 1, 2) and attribute values (0, 0, 1), sampled at
// its centroid, must resolve to 0.5 (a naive linear interpolator would give
// 1/3).
func TestPerspectiveCorrectInterpolationS4(t *testing.T) {
	v0 := ViewportPoint{X: 0, Y: 0, InvW: 1}
	v1 := ViewportPoint{X: 3, Y: 0, InvW: 1}
	v2 := ViewportPoint{X: 0, Y: 3, InvW: 2}

	points := []InterpolationPoint{{X: 1, Y: 1}}
	camPos := [3]rmath.Vec3{{X: 0}, {X: 0}, {X: 1}}
	interp := make([]rmath.Vec3, 1)

	req := InterpolationRequest{
		CameraPositions:   camPos,
		InterpCameraPos:   interp,
		InterpolateCamera: true,
	}

	pixels := InterpolateTriangle(points, v0, v1, v2, req)
	if len(pixels) != 1 {
		t.Fatalf("expected 1 pixel, got %d", len(pixels))
	}
	if pixels[0].Point.Z == sentinelDepth {
		t.Fatalf("centroid pixel unexpectedly rejected")
	}
	if math.Abs(pixels[0].Point.Z-0.75) > 1e-4 {
		t.Errorf("depth = %v, want 0.75", pixels[0].Point.Z)
	}
	if math.Abs(float64(interp[0].X)-0.5) > 1e-4 {
		t.Errorf("interpolated attribute = %v, want 0.5", interp[0].X)
	}
}
