package rasterpipe

import (
	"fmt"
	"math"

	rmath "render-engine/math"
)

// ViewportPoint is a transformed vertex ready for rasterization: pixel
// coordinates (X, Y), NDC depth Z in [0, 1], and InvW = 1/clip.w.
type ViewportPoint struct {
	X, Y, Z float32
	InvW    float32
}

// InterpolationPoint is one rasterized pixel position with its
// perspective-correct interpolated depth.
type InterpolationPoint struct {
	X, Y int
	Z    float64
}

const relevantBarycentricCoord = 1e-7

// sentinelDepth marks a pixel the barycentric or depth test rejected; it
// paints opaque black and never passes a z-test.
var sentinelDepth = math.Inf(1)

// InterpolationRequest names which per-vertex attribute channels a shading
// model needs interpolated across a triangle fill, plus where to write the
// results. Channels left nil are skipped. This stands in for the source's
// mutable back-pointer plumbing: the request is a plain value, built fresh
// by each shading model, with no shared state across calls.
type InterpolationRequest struct {
	Normals         [3]rmath.Vec3
	InterpNormals   []rmath.Vec3 // len(points); filled if non-nil
	CameraPositions [3]rmath.Vec3
	InterpCameraPos []rmath.Vec3
	TextureCoords   [3]rmath.Vec3
	InterpTexCoords []rmath.Vec3

	InterpolateNormals bool
	InterpolateCamera  bool
	InterpolateTexture bool
}

// validate panics on the invariant violations the source throws on: a
// requested channel whose destination slice isn't sized to match points.
func (r InterpolationRequest) validate(pointCount int) {
	if r.InterpolateNormals && len(r.InterpNormals) != pointCount {
		panic("rasterpipe: normal interpolation invariant violated")
	}
	if r.InterpolateCamera && len(r.InterpCameraPos) != pointCount {
		panic("rasterpipe: camera-space interpolation invariant violated")
	}
	if r.InterpolateTexture && len(r.InterpTexCoords) != pointCount {
		panic("rasterpipe: texture-coordinate interpolation invariant violated")
	}
}

// ShadedPixel pairs a rasterized point with the color the active shading
// model painted it.
type ShadedPixel struct {
	Point InterpolationPoint
	Color [4]byte // A, R, G, B
}

var blackSentinel = [4]byte{0xFF, 0, 0, 0}

// InterpolateDepthOverLine fills points[i].Z with the inverse-w interpolated
// depth between two viewport endpoints, spacing u = step/N linearly over
// the point count. u keeps advancing past 1 (those tail points keep the
// last computed depth, matching the boundary-step behavior in §4.3).
func InterpolateDepthOverLine(points []InterpolationPoint, first, second ViewportPoint) {
	if len(points) == 0 {
		return
	}
	invW1 := float64(first.InvW)
	invW2 := float64(second.InvW)

	u := 0.0
	uStep := 1.0 / float64(len(points))
	var z float64
	for i := range points {
		if u <= 1.0 {
			invZ := invW1*(1-u) + invW2*u
			z = 1.0 / invZ
		}
		points[i].Z = z
		u += uStep
	}
}

// InterpolateTriangle computes perspective-correct barycentric weights for
// every point against triangle (v0, v1, v2) in viewport space, writes each
// point's interpolated depth, runs the InterpolationRequest's attribute
// channels, and returns one ShadedPixel per point pre-seeded with the
// opaque-black sentinel (the shading model overwrites Color afterward for
// every pixel that isn't rejected).
func InterpolateTriangle(points []InterpolationPoint, v0, v1, v2 ViewportPoint, req InterpolationRequest) []ShadedPixel {
	req.validate(len(points))

	out := make([]ShadedPixel, len(points))

	x0, y0 := float64(v0.X), float64(v0.Y)
	x1, y1 := float64(v1.X), float64(v1.Y)
	x2, y2 := float64(v2.X), float64(v2.Y)

	triangleArea := 0.5 * math.Abs((x2-x0)*(y1-y0)-(y2-y0)*(x1-x0))

	invW0 := float64(v0.InvW)
	invW1 := float64(v1.InvW)
	invW2 := float64(v2.InvW)

	for i := range points {
		qx, qy := float64(points[i].X), float64(points[i].Y)

		uArea := 0.5 * math.Abs((x2-x0)*(qy-y0)-(y2-y0)*(qx-x0))
		vArea := 0.5 * math.Abs((qx-x0)*(y1-y0)-(qy-y0)*(x1-x0))

		var u, v float64
		if triangleArea > 0 {
			u = uArea / triangleArea
			v = vArea / triangleArea
		}
		w := 1.0 - u - v

		if u < relevantBarycentricCoord || v < relevantBarycentricCoord || w < relevantBarycentricCoord {
			points[i].Z = sentinelDepth
			out[i] = ShadedPixel{Point: points[i], Color: blackSentinel}
			continue
		}

		invZ := invW0*w + invW1*u + invW2*v
		if invZ <= 0 {
			points[i].Z = sentinelDepth
			out[i] = ShadedPixel{Point: points[i], Color: blackSentinel}
			continue
		}

		depth := 1.0 / invZ
		points[i].Z = depth
		out[i] = ShadedPixel{Point: points[i], Color: blackSentinel}

		if req.InterpolateNormals {
			req.InterpNormals[i] = baryAttr(req.Normals, invW0, invW1, invW2, w, u, v, depth)
		}
		if req.InterpolateCamera {
			req.InterpCameraPos[i] = baryAttr(req.CameraPositions, invW0, invW1, invW2, w, u, v, depth)
		}
		if req.InterpolateTexture {
			req.InterpTexCoords[i] = baryAttr(req.TextureCoords, invW0, invW1, invW2, w, u, v, depth)
		}
	}

	return out
}

// baryAttr computes the perspective-correct interpolation of a single
// vec3-valued attribute with per-vertex weights (w, u, v) matching vertices
// (0, 1, 2) respectively, and the already-resolved pixel depth.
func baryAttr(a [3]rmath.Vec3, invW0, invW1, invW2, w, u, v, depth float64) rmath.Vec3 {
	weighted := a[0].Mul(float32(invW0 * w)).
		Add(a[1].Mul(float32(invW1 * u))).
		Add(a[2].Mul(float32(invW2 * v)))
	return weighted.Mul(float32(depth))
}

// BarycentricAt computes the raw (u, v, w) weights of point q against
// triangle (v0, v1, v2) without any rejection test — used by callers (such
// as property tests) that need the weights directly.
func BarycentricAt(q rmath.Vec3, v0, v1, v2 ViewportPoint) (u, v, w float64, err error) {
	x0, y0 := float64(v0.X), float64(v0.Y)
	x1, y1 := float64(v1.X), float64(v1.Y)
	x2, y2 := float64(v2.X), float64(v2.Y)
	area := 0.5 * math.Abs((x2-x0)*(y1-y0)-(y2-y0)*(x1-x0))
	if area == 0 {
		return 0, 0, 0, fmt.Errorf("rasterpipe: degenerate triangle")
	}
	qx, qy := float64(q.X), float64(q.Y)
	uArea := 0.5 * math.Abs((x2-x0)*(qy-y0)-(y2-y0)*(qx-x0))
	vArea := 0.5 * math.Abs((qx-x0)*(y1-y0)-(qy-y0)*(x1-x0))
	u = uArea / area
	v = vArea / area
	w = 1 - u - v
	return u, v, w, nil
}
