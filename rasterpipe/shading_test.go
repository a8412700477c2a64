package rasterpipe

import (
	"testing"

	rmath "render-engine/math"
	"render-engine/scene"
)

func triangleShadeInput() (ShadeInput, []InterpolationPoint) {
	s := scene.NewScene()
	s.Vertices = []rmath.Vec3{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}
	s.VertexNormals = []rmath.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}
	s.VertexTextures = []rmath.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	poly := scene.Polygon{
		VertexIndices:  [3]int{0, 1, 2},
		NormalIndices:  [3]int{0, 1, 2},
		TextureIndices: [3]int{0, 1, 2},
		MaterialIndex:  0,
	}
	s.Polygons = []scene.Polygon{poly}

	v0 := ViewportPoint{X: 0, Y: 0, InvW: 1}
	v1 := ViewportPoint{X: 3, Y: 0, InvW: 1}
	v2 := ViewportPoint{X: 0, Y: 3, InvW: 1}

	in := ShadeInput{
		V0: v0, V1: v1, V2: v2,
		Polygon:       poly,
		Scene:         s,
		Material:      s.MaterialFor(poly),
		MaterialColor: s.MaterialFor(poly).Albedo,
		Lights:        nil,
		Model:         rmath.Mat4Identity(),
		View:          rmath.Mat4Identity(),
	}
	points := []InterpolationPoint{{X: 1, Y: 1}}
	return in, points
}

// TestPhongEmptyLightsProducesBlack covers property 7: Phong shading with no
// lights paints every covered pixel opaque black.
func TestPhongEmptyLightsProducesBlack(t *testing.T) {
	in, points := triangleShadeInput()
	pixels := PhongModel{}.Shade(in, points)

	if len(pixels) != 1 {
		t.Fatalf("expected 1 pixel, got %d", len(pixels))
	}
	if pixels[0].Point.Z == sentinelDepth {
		t.Fatalf("covered pixel was unexpectedly rejected")
	}
	if pixels[0].Color != blackSentinel {
		t.Errorf("color = %v, want opaque black %v", pixels[0].Color, blackSentinel)
	}
}

// TestLambertianEmptyLightsProducesBlack mirrors property 7 for the
// Lambertian model, which shares the same empty-light-set contract.
func TestLambertianEmptyLightsProducesBlack(t *testing.T) {
	in, points := triangleShadeInput()
	pixels := LambertianModel{}.Shade(in, points)

	if len(pixels) != 1 {
		t.Fatalf("expected 1 pixel, got %d", len(pixels))
	}
	if pixels[0].Color != blackSentinel {
		t.Errorf("color = %v, want opaque black %v", pixels[0].Color, blackSentinel)
	}
}

// TestNoShadingFillsMaterialColor confirms the flat fallback path uses the
// shading call's material_color parameter directly.
func TestNoShadingFillsMaterialColor(t *testing.T) {
	in, points := triangleShadeInput()
	pixels := NoShadingModel{}.Shade(in, points)

	want := [4]byte{in.MaterialColor.A, in.MaterialColor.R, in.MaterialColor.G, in.MaterialColor.B}
	if pixels[0].Color != want {
		t.Errorf("color = %v, want %v", pixels[0].Color, want)
	}
}
