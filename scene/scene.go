package scene

import "render-engine/math"

// Polygon is a triangle face: three parallel index lists selecting into the
// Scene's vertex, texture-coordinate and normal tables, plus the index of
// the material it's shaded with. TextureIndices/NormalIndices entries are
// -1 when the source data had no UV/normal for that slot.
type Polygon struct {
	VertexIndices  [3]int
	TextureIndices [3]int
	NormalIndices  [3]int
	MaterialIndex  int
}

// Scene is an immutable-per-frame bundle of four parallel tables plus the
// material and texture pools referenced by polygon material indices. A
// rendering pipeline only ever reads a Scene during a frame; mutation
// happens only between frames, by the application driving the pipeline.
type Scene struct {
	Vertices       []math.Vec3
	VertexNormals  []math.Vec3
	VertexTextures []math.Vec3 // (u, v, w); w usually ignored
	Polygons       []Polygon
	Materials      []*Material
	Textures       []*Texture
}

// NewScene returns an empty scene with a single default material at index 0,
// so polygons appended without an explicit material index shade sensibly.
func NewScene() *Scene {
	return &Scene{Materials: []*Material{DefaultMaterial()}}
}

// MaterialFor returns the polygon's bound material, or the scene's first
// material if the index is out of range (malformed polygon, see §3 invariant).
func (s *Scene) MaterialFor(p Polygon) *Material {
	if p.MaterialIndex >= 0 && p.MaterialIndex < len(s.Materials) {
		return s.Materials[p.MaterialIndex]
	}
	if len(s.Materials) > 0 {
		return s.Materials[0]
	}
	return DefaultMaterial()
}

// SplitQuad splits a 4-vertex polygon into two triangles using the scene's
// quad-split rule: [v0, v1, v2, v3] -> {[v2, v3, v0], keep [v0, v1, v2]}.
// The same reordering is applied to the texture and normal index lists.
// Panics if vIdx, tIdx, nIdx do not each have length 4 — malformed input
// must be caught by the caller before splitting.
func SplitQuad(vIdx, tIdx, nIdx []int, materialIndex int) [2]Polygon {
	if len(vIdx) != 4 || len(tIdx) != 4 || len(nIdx) != 4 {
		panic("scene: SplitQuad requires exactly 4 indices per list")
	}
	kept := Polygon{
		VertexIndices:  [3]int{vIdx[0], vIdx[1], vIdx[2]},
		TextureIndices: [3]int{tIdx[0], tIdx[1], tIdx[2]},
		NormalIndices:  [3]int{nIdx[0], nIdx[1], nIdx[2]},
		MaterialIndex:  materialIndex,
	}
	popped := Polygon{
		VertexIndices:  [3]int{vIdx[2], vIdx[3], vIdx[0]},
		TextureIndices: [3]int{tIdx[2], tIdx[3], tIdx[0]},
		NormalIndices:  [3]int{nIdx[2], nIdx[3], nIdx[0]},
		MaterialIndex:  materialIndex,
	}
	return [2]Polygon{popped, kept}
}

// Valid reports whether every index in p falls within the scene's tables
// (the §3 polygon-malformation invariant). A -1 texture or normal index is
// always valid (it means "absent").
func (s *Scene) Valid(p Polygon) bool {
	for _, i := range p.VertexIndices {
		if i < 0 || i >= len(s.Vertices) {
			return false
		}
	}
	for _, i := range p.TextureIndices {
		if i >= len(s.VertexTextures) {
			return false
		}
	}
	for _, i := range p.NormalIndices {
		if i >= len(s.VertexNormals) {
			return false
		}
	}
	return true
}
