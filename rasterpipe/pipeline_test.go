package rasterpipe

import (
	"math"
	"testing"

	rmath "render-engine/math"
	"render-engine/scene"
)

// TestViewportMappingCorners covers property 8: NDC (-1,-1,0) maps to
// (0,0,0) and (1,1,1) maps to (W,H,1).
func TestViewportMappingCorners(t *testing.T) {
	const w, h = float32(800), float32(600)
	vp := viewportMatrix(w, h)

	x, y, z, _ := vp.MulVec4(-1, -1, 0, 1)
	if math.Abs(float64(x)) > 1e-4 || math.Abs(float64(y)) > 1e-4 || math.Abs(float64(z)) > 1e-4 {
		t.Errorf("NDC(-1,-1,0) -> (%v,%v,%v), want (0,0,0)", x, y, z)
	}

	x, y, z, _ = vp.MulVec4(1, 1, 1, 1)
	if math.Abs(float64(x-w)) > 1e-4 || math.Abs(float64(y-h)) > 1e-4 || math.Abs(float64(z-1)) > 1e-4 {
		t.Errorf("NDC(1,1,1) -> (%v,%v,%v), want (%v,%v,1)", x, y, z, w, h)
	}
}

// TestClipRejectsOutOfFrustumPoint covers the S6 clip-out invariant: a point
// whose NDC falls outside the canonical view volume yields a nil viewport
// point, while a point inside it does not.
func TestClipRejectsOutOfFrustumPoint(t *testing.T) {
	p := NewPipeline(scene.NewScene())
	model := rmath.Mat4Identity()
	view := p.Camera.ViewMatrix()

	points := []rmath.Vec3{
		{X: 0, Y: 0, Z: 0}, // in front of the camera, on-axis: visible
		{X: 1000, Y: 0, Z: 0}, // far off-axis: projects outside [-1, 1]
	}
	vps := p.viewportPointsFor(points, model, view, 1.0, 800, 600)

	if vps[0] == nil {
		t.Error("on-axis point was unexpectedly clipped")
	}
	if vps[1] != nil {
		t.Error("far off-axis point should have been clipped, was not")
	}
}

// TestBackfaceCullingHalvesRotatingCube covers property 6: over a full 360
// degree rotation, on average exactly half a cube's polygons are
// back-facing. The cube is tilted 30 degrees about X before spinning about
// Y, so no face stays edge-on to the camera for the whole rotation.
func TestBackfaceCullingHalvesRotatingCube(t *testing.T) {
	s := scene.NewScene()
	scene.CreateCube(s, 2, 0)
	p := NewPipeline(s)
	p.Camera.SetViewFromZ()

	tilt := rmath.Mat4RotationX(radians(30))
	total := 0
	for deg := 0; deg < 360; deg++ {
		p.currModel = tilt.Mul(rmath.Mat4RotationY(radians(float32(deg))))
		culled := 0
		for _, poly := range s.Polygons {
			if p.polygonIsBackFacing(poly) {
				culled++
			}
		}
		total += culled
	}

	avg := float64(total) / 360.0
	want := float64(len(s.Polygons)) / 2.0
	if math.Abs(avg-want) > 1.0 {
		t.Errorf("average culled polygons = %v, want ~%v (+/-1)", avg, want)
	}
}
