package scene

import (
	"testing"

	"render-engine/core"
	"render-engine/math"
)

func TestSplitQuad(t *testing.T) {
	v := []int{10, 11, 12, 13}
	tris := SplitQuad(v, v, v, 2)

	kept := tris[1]
	if kept.VertexIndices != [3]int{10, 11, 12} {
		t.Errorf("kept triangle = %v, want [10 11 12]", kept.VertexIndices)
	}
	popped := tris[0]
	if popped.VertexIndices != [3]int{12, 13, 10} {
		t.Errorf("popped triangle = %v, want [12 13 10]", popped.VertexIndices)
	}
	if kept.MaterialIndex != 2 || popped.MaterialIndex != 2 {
		t.Error("both split triangles must keep the source material index")
	}
}

func TestSplitQuadPanicsOnWrongLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on mismatched index list length")
		}
	}()
	SplitQuad([]int{1, 2, 3}, []int{1, 2, 3}, []int{1, 2, 3}, 0)
}

func TestMaterialForFallsBackToFirst(t *testing.T) {
	s := NewScene()
	s.Materials = append(s.Materials, NewMaterial("red", core.ColorRed))

	p := Polygon{MaterialIndex: 1}
	if m := s.MaterialFor(p); m.Name != "red" {
		t.Errorf("MaterialFor(1) = %q, want %q", m.Name, "red")
	}

	outOfRange := Polygon{MaterialIndex: 99}
	if m := s.MaterialFor(outOfRange); m != s.Materials[0] {
		t.Error("MaterialFor with an out-of-range index should fall back to the scene's first material")
	}
}

func TestSceneValid(t *testing.T) {
	sc := NewScene()
	CreateTriangle(sc, math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 1}, math.Vec3{Y: 1}, 0)
	if !sc.Valid(sc.Polygons[0]) {
		t.Error("freshly created triangle polygon should be valid")
	}

	bad := Polygon{VertexIndices: [3]int{0, 1, 99}, TextureIndices: [3]int{-1, -1, -1}, NormalIndices: [3]int{-1, -1, -1}}
	if sc.Valid(bad) {
		t.Error("polygon referencing an out-of-range vertex should be invalid")
	}
}

func TestTextureSampleClampsAndReturnsComponents(t *testing.T) {
	tex := NewSolidTexture("solid", 10, 20, 30)
	for _, uv := range [][2]float32{{0, 0}, {0.5, 0.5}, {1, 1}, {-5, 5}} {
		px := tex.Sample(uv[0], uv[1])
		if len(px) != 3 || px[0] != 10 || px[1] != 20 || px[2] != 30 {
			t.Errorf("Sample(%v) = %v, want [10 20 30]", uv, px)
		}
	}
}

func TestCreateCubeProducesTwelveTriangles(t *testing.T) {
	s := NewScene()
	CreateCube(s, 1, 0)
	if len(s.Polygons) != 12 {
		t.Errorf("cube polygon count = %d, want 12", len(s.Polygons))
	}
	if len(s.Vertices) != 24 {
		t.Errorf("cube vertex count = %d, want 24 (no normal sharing across faces)", len(s.Vertices))
	}
}
