package scene

import "render-engine/math"

// ComputeTangents generates a per-vertex tangent for a scene from its
// texture coordinates. Neither the loaders nor the Phong shading model call
// it: Phong carries a sampled normal-map vector into camera space through
// the normal matrix directly, without a tangent frame. The scene must have
// texture coordinates; polygons with a degenerate UV area are skipped.
// Returns one tangent per vertex, parallel to s.Vertices.
func ComputeTangents(s *Scene) []math.Vec3 {
	tangents := make([]math.Vec3, len(s.Vertices))
	bitangents := make([]math.Vec3, len(s.Vertices))

	for _, poly := range s.Polygons {
		i0, i1, i2 := poly.VertexIndices[0], poly.VertexIndices[1], poly.VertexIndices[2]
		t0, t1, t2 := poly.TextureIndices[0], poly.TextureIndices[1], poly.TextureIndices[2]
		if t0 < 0 || t1 < 0 || t2 < 0 {
			continue
		}

		v0, v1, v2 := s.Vertices[i0], s.Vertices[i1], s.Vertices[i2]
		uv0, uv1, uv2 := s.VertexTextures[t0], s.VertexTextures[t1], s.VertexTextures[t2]

		e1 := v1.Sub(v0)
		e2 := v2.Sub(v0)
		du1, dv1 := uv1.X-uv0.X, uv1.Y-uv0.Y
		du2, dv2 := uv2.X-uv0.X, uv2.Y-uv0.Y

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			continue
		}
		r := 1.0 / denom

		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))

		for _, i := range poly.VertexIndices {
			tangents[i] = tangents[i].Add(t)
			bitangents[i] = bitangents[i].Add(b)
		}
	}

	for i := range tangents {
		n := s.VertexNormals[i]
		t := tangents[i]

		t = t.Sub(n.Mul(n.Dot(t)))
		if t.LengthSqr() < 1e-8 {
			if absf(n.X) < 0.9 {
				t = math.Vec3{X: 1}.Sub(n.Mul(n.X))
			} else {
				t = math.Vec3{Y: 1}.Sub(n.Mul(n.Y))
			}
		}
		tangents[i] = t.Normalize()
	}

	return tangents
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
