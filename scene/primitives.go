package scene

import (
	stdmath "math"

	"render-engine/math"
)

// addVertex appends a (position, normal, uv) triple to the scene's parallel
// tables and returns the shared index used by all three.
func addVertex(s *Scene, pos, normal math.Vec3, u, v float32) int {
	s.Vertices = append(s.Vertices, pos)
	s.VertexNormals = append(s.VertexNormals, normal)
	s.VertexTextures = append(s.VertexTextures, math.Vec3{X: u, Y: v})
	return len(s.Vertices) - 1
}

func addTriangle(s *Scene, materialIndex int, i0, i1, i2 int) {
	s.Polygons = append(s.Polygons, Polygon{
		VertexIndices:  [3]int{i0, i1, i2},
		TextureIndices: [3]int{i0, i1, i2},
		NormalIndices:  [3]int{i0, i1, i2},
		MaterialIndex:  materialIndex,
	})
}

// CreateCube appends an axis-aligned cube of the given half-extent, centered
// at the origin, to the scene. Each face gets its own four vertices (no
// normal sharing across faces) so flat shading reads correctly per face.
func CreateCube(s *Scene, halfExtent float32, materialIndex int) {
	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3{Z: 1}, [4]math.Vec3{{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}},
		{math.Vec3{Z: -1}, [4]math.Vec3{{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}}},
		{math.Vec3{X: 1}, [4]math.Vec3{{X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}}},
		{math.Vec3{X: -1}, [4]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}}},
		{math.Vec3{Y: 1}, [4]math.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}}},
		{math.Vec3{Y: -1}, [4]math.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, face := range faces {
		var idx [4]int
		for i, c := range face.corners {
			idx[i] = addVertex(s, c.Mul(halfExtent), face.normal, uvs[i][0], uvs[i][1])
		}
		addTriangle(s, materialIndex, idx[0], idx[1], idx[2])
		addTriangle(s, materialIndex, idx[0], idx[2], idx[3])
	}
}

// CreateSphere appends a UV-sphere of the given radius, tessellated into
// rings x segments quads (each split into two triangles).
func CreateSphere(s *Scene, radius float32, segments, rings int, materialIndex int) {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	base := len(s.Vertices)
	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi := float32(stdmath.Sin(phi))
		cosPhi := float32(stdmath.Cos(phi))
		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * stdmath.Pi / float64(segments)
			sinTheta := float32(stdmath.Sin(theta))
			cosTheta := float32(stdmath.Cos(theta))

			normal := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			addVertex(s, normal.Mul(radius), normal, float32(seg)/float32(segments), float32(ring)/float32(rings))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := base + ring*(segments+1) + seg
			next := current + segments + 1
			addTriangle(s, materialIndex, current, next, current+1)
			addTriangle(s, materialIndex, current+1, next, next+1)
		}
	}
}

// CreatePlane appends a flat, subdivided XZ-plane of the given width/depth,
// centered at the origin, facing +Y.
func CreatePlane(s *Scene, width, depth float32, subdivisions int, materialIndex int) {
	if subdivisions < 1 {
		subdivisions = 1
	}
	halfW := width / 2
	halfD := depth / 2

	base := len(s.Vertices)
	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			pos := math.Vec3{X: -halfW + u*width, Y: 0, Z: -halfD + v*depth}
			addVertex(s, pos, math.Vec3Up, u, v)
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := base + z*(subdivisions+1) + x
			topRight := topLeft + 1
			bottomLeft := topLeft + subdivisions + 1
			bottomRight := bottomLeft + 1
			addTriangle(s, materialIndex, topLeft, bottomLeft, topRight)
			addTriangle(s, materialIndex, topRight, bottomLeft, bottomRight)
		}
	}
}

// CreateTriangle appends a single triangle with an explicit flat normal
// (normalized cross product of its edges) — useful as a minimal test
// fixture for the rasterizer.
func CreateTriangle(s *Scene, p0, p1, p2 math.Vec3, materialIndex int) {
	normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	i0 := addVertex(s, p0, normal, 0, 0)
	i1 := addVertex(s, p1, normal, 1, 0)
	i2 := addVertex(s, p2, normal, 0, 1)
	addTriangle(s, materialIndex, i0, i1, i2)
}
