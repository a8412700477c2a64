package rasterpipe

import (
	"math"

	"render-engine/core"
	rmath "render-engine/math"
	"render-engine/scene"
)

// ShadeInput bundles everything a ShadingModel needs to paint one triangle's
// fill pixels: the triangle's three viewport points, its source polygon and
// scene (for normals/texcoords/material lookups), the model and view
// matrices in effect for this triangle, and the active light list.
type ShadeInput struct {
	V0, V1, V2    ViewportPoint
	Polygon       scene.Polygon
	Scene         *scene.Scene
	Material      *scene.Material
	MaterialColor core.Color
	Lights        []*LightSource
	Model, View   rmath.Mat4
}

// ShadingModel paints the fill pixels of a rasterized triangle. Each
// implementation declares, for the given input, which attribute channels
// the interpolator should fill before the colors are computed — mirroring
// the original's "shade_triangle" capability: this package's callers invoke
// Shade through the ShadingModel interface, implemented by exactly three
// concrete types below.
type ShadingModel interface {
	// Shade rasterizes the triangle's fill pixels (already enumerated by
	// the scanline pass into points) and returns one ShadedPixel per
	// input point, in the same order.
	Shade(in ShadeInput, points []InterpolationPoint) []ShadedPixel
}

func vertexNormals(s *scene.Scene, p scene.Polygon) [3]rmath.Vec3 {
	var n [3]rmath.Vec3
	for i, idx := range p.NormalIndices {
		if idx >= 0 && idx < len(s.VertexNormals) {
			n[i] = s.VertexNormals[idx]
		}
	}
	return n
}

func vertexTexCoords(s *scene.Scene, p scene.Polygon) [3]rmath.Vec3 {
	var t [3]rmath.Vec3
	for i, idx := range p.TextureIndices {
		if idx >= 0 && idx < len(s.VertexTextures) {
			t[i] = s.VertexTextures[idx]
		}
	}
	return t
}

func vertexPositions(s *scene.Scene, p scene.Polygon) [3]rmath.Vec3 {
	var v [3]rmath.Vec3
	for i, idx := range p.VertexIndices {
		v[i] = s.Vertices[idx]
	}
	return v
}

func upper3x3Transpose(m rmath.Mat4) rmath.Mat4 {
	return m.Upper3x3().Inverse().Transpose()
}

func clamp01f(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func byteClamp(f float64) byte {
	if f > 1 {
		f = 1
	}
	if f < 0 {
		f = 0
	}
	v := byte(f * 255)
	return v
}

// ===========================================================================
// NoShading
// ===========================================================================

// NoShadingModel requests no attribute channels; every fill pixel is the
// flat material color.
type NoShadingModel struct{}

func (NoShadingModel) Shade(in ShadeInput, points []InterpolationPoint) []ShadedPixel {
	pixels := InterpolateTriangle(points, in.V0, in.V1, in.V2, InterpolationRequest{})
	c := in.MaterialColor
	for i := range pixels {
		if pixels[i].Point.Z == sentinelDepth {
			continue
		}
		pixels[i].Color = [4]byte{c.A, c.R, c.G, c.B}
	}
	return pixels
}

// ===========================================================================
// Lambertian (flat, per-vertex averaged across lights and vertices)
// ===========================================================================

// LambertianModel computes one flat color per triangle: per light, the
// three vertex shades (average of material and light color scaled by
// max(0, L.N) in camera space) are averaged across the vertices, then
// averaged again across lights.
type LambertianModel struct{}

func (LambertianModel) Shade(in ShadeInput, points []InterpolationPoint) []ShadedPixel {
	pixels := InterpolateTriangle(points, in.V0, in.V1, in.V2, InterpolationRequest{})

	flat := lambertianFlatColor(in)
	for i := range pixels {
		if pixels[i].Point.Z == sentinelDepth {
			continue
		}
		pixels[i].Color = flat
	}
	return pixels
}

func lambertianFlatColor(in ShadeInput) [4]byte {
	if len(in.Lights) == 0 {
		return blackSentinel
	}

	verts := vertexPositions(in.Scene, in.Polygon)
	normals := vertexNormals(in.Scene, in.Polygon)

	modelView := in.Model.Mul(in.View)
	normalMat := upper3x3Transpose(modelView)

	var camVerts, camNormals [3]rmath.Vec3
	for i := 0; i < 3; i++ {
		camVerts[i] = modelView.MulVec3(verts[i])
		camNormals[i] = normalMat.MulDir(normals[i]).Normalize()
	}

	var rAcc, gAcc, bAcc uint64
	for _, light := range in.Lights {
		lightView := in.View.MulVec3(light.PositionWorld())

		var rSum, gSum, bSum uint64
		for i := 0; i < 3; i++ {
			lightDir := lightView.Sub(camVerts[i]).Normalize()
			ndotl := clamp01f(lightDir.Dot(camNormals[i]))
			avg := averageColor(in.MaterialColor, light.Color)
			rSum += uint64(byteClamp(float64(avg.R) / 255 * float64(ndotl)))
			gSum += uint64(byteClamp(float64(avg.G) / 255 * float64(ndotl)))
			bSum += uint64(byteClamp(float64(avg.B) / 255 * float64(ndotl)))
		}
		rAcc += rSum / 3
		gAcc += gSum / 3
		bAcc += bSum / 3
	}

	n := uint64(len(in.Lights))
	return [4]byte{0xFF, byte(rAcc / n), byte(gAcc / n), byte(bAcc / n)}
}

func averageColor(a, b core.Color) core.Color {
	return core.Color{
		A: 0xFF,
		R: byte((uint16(a.R) + uint16(b.R)) / 2),
		G: byte((uint16(a.G) + uint16(b.G)) / 2),
		B: byte((uint16(a.B) + uint16(b.B)) / 2),
	}
}

// ===========================================================================
// Phong (per-pixel, multi-light, optional texturing)
// ===========================================================================

// PhongModel shades every covered pixel individually using the interpolated
// normal and camera-space position, with optional diffuse/normal/specular
// texturing when the material has the matching textures bound.
type PhongModel struct{}

func (PhongModel) Shade(in ShadeInput, points []InterpolationPoint) []ShadedPixel {
	normals := vertexNormals(in.Scene, in.Polygon)
	camPos := vertexPositions(in.Scene, in.Polygon)
	texCoords := vertexTexCoords(in.Scene, in.Polygon)

	modelView := in.Model.Mul(in.View)
	for i := 0; i < 3; i++ {
		camPos[i] = modelView.MulVec3(camPos[i])
	}

	needsTexture := in.Material != nil &&
		(in.Material.DiffuseTexturingEnabled || in.Material.NormalTexturingEnabled || in.Material.SpecularTexturingEnabled)

	interpNormals := make([]rmath.Vec3, len(points))
	interpCam := make([]rmath.Vec3, len(points))
	var interpTex []rmath.Vec3
	if needsTexture {
		interpTex = make([]rmath.Vec3, len(points))
	}

	req := InterpolationRequest{
		Normals:            normals,
		InterpNormals:      interpNormals,
		InterpolateNormals: true,
		CameraPositions:    camPos,
		InterpCameraPos:    interpCam,
		InterpolateCamera:  true,
	}
	if needsTexture {
		req.TextureCoords = texCoords
		req.InterpTexCoords = interpTex
		req.InterpolateTexture = true
	}

	pixels := InterpolateTriangle(points, in.V0, in.V1, in.V2, req)

	if len(in.Lights) == 0 {
		for i := range pixels {
			if pixels[i].Point.Z != sentinelDepth {
				pixels[i].Color = blackSentinel
			}
		}
		return pixels
	}

	normalMat := upper3x3Transpose(modelView)

	for i := range pixels {
		if pixels[i].Point.Z == sentinelDepth {
			continue
		}

		normal := interpNormals[i]
		if needsTexture && in.Material.NormalTexturingEnabled && in.Material.NormalTexture != nil {
			if sampled := sampleNormal(in.Material.NormalTexture, interpTex[i]); sampled != nil {
				normal = *sampled
			}
		}
		normal = normalMat.MulDir(normal).Normalize()
		pixelPos := interpCam[i]
		viewDir := pixelPos.Normalize().Negate()

		var rAcc, gAcc, bAcc float64
		for _, light := range in.Lights {
			lightView := in.View.MulVec3(light.PositionWorld())
			lightDir := lightView.Sub(pixelPos).Normalize()

			ndotl := clamp01f(lightDir.Dot(normal))
			diffuse := float64(ndotl) * 0.35

			reflect := normal.Mul(2 * lightDir.Dot(normal)).Sub(lightDir).Normalize()
			rdotv := clamp01f(reflect.Dot(viewDir))
			specCoeff := 1.0
			if needsTexture && in.Material.SpecularTexturingEnabled && in.Material.SpecularTexture != nil {
				if s := sampleSpecular(in.Material.SpecularTexture, interpTex[i]); s >= 0 {
					specCoeff = s
				}
			}
			specular := math.Pow(float64(rdotv), float64(light.SpecularPower)) * specCoeff

			rAcc += float64(light.Color.R) / 255 * diffuse
			gAcc += float64(light.Color.G) / 255 * diffuse
			bAcc += float64(light.Color.B) / 255 * diffuse

			rAcc += float64(light.Color.R) / 255 * specular
			gAcc += float64(light.Color.G) / 255 * specular
			bAcc += float64(light.Color.B) / 255 * specular
		}

		if needsTexture && in.Material.DiffuseTexturingEnabled && in.Material.DiffuseTexture != nil {
			if rgb := sampleAmbientTexture(in.Material.DiffuseTexture, interpTex[i]); rgb != nil {
				rAcc += float64(rgb[0]) / 255 * 0.95
				gAcc += float64(rgb[1]) / 255 * 0.95
				bAcc += float64(rgb[2]) / 255 * 0.95
			}
		} else {
			rAcc += float64(in.MaterialColor.R) / 255 * 0.22
			gAcc += float64(in.MaterialColor.G) / 255 * 0.22
			bAcc += float64(in.MaterialColor.B) / 255 * 0.22
		}

		pixels[i].Color = [4]byte{0xFF, byteClamp(rAcc), byteClamp(gAcc), byteClamp(bAcc)}
	}

	return pixels
}

func sampleNormal(t *scene.Texture, uv rmath.Vec3) *rmath.Vec3 {
	px := t.Sample(uv.X, uv.Y)
	if len(px) < 3 {
		return nil
	}
	// red/blue swapped, per the source's texel normal decode.
	n := rmath.Vec3{X: float32(px[2]), Y: float32(px[1]), Z: float32(px[0])}
	return &n
}

func sampleSpecular(t *scene.Texture, uv rmath.Vec3) float64 {
	px := t.Sample(uv.X, uv.Y)
	if len(px) < 1 {
		return -1
	}
	return float64(px[0]) / 255.0
}

func sampleAmbientTexture(t *scene.Texture, uv rmath.Vec3) []byte {
	px := t.Sample(uv.X, uv.Y)
	if len(px) < 3 {
		return nil
	}
	// Texels are stored in R, G, B order, so the color is used as sampled.
	return []byte{px[0], px[1], px[2]}
}
