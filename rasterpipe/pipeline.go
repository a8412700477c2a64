package rasterpipe

import (
	stdmath "math"

	"render-engine/core"
	rmath "render-engine/math"
	"render-engine/scene"
)

// Flags selects which of the seven rendering-mode combinations DoRender
// performs this frame (see the dispatch switch in DoRender).
type Flags struct {
	DrawMesh               bool
	RasterizeFill          bool
	ZBufferEnabled         bool
	BackfaceCullingEnabled bool
	DrawWorldAxes          bool
}

// Pipeline orchestrates one frame: transform -> cull -> rasterize -> shade
// -> write. Scene, Camera, Lights and Flags are read-only during DoRender;
// the enclosing application mutates them only between frames.
type Pipeline struct {
	Scene  *scene.Scene
	Camera *Camera
	Lights []*LightSource

	Animation AnimationKind
	Shading   ShadingModel
	Flags     Flags

	PenColor   core.Color
	BrushColor core.Color

	FOVYDegrees float32
	Near, Far   float32
	ModelScale  float32

	animState AnimationState

	currModel rmath.Mat4
	currView  rmath.Mat4
}

// NewPipeline returns a pipeline over scene with the source's default
// configuration: no shading, no animation, a 30 degree field of view,
// near/far planes of 2/500, unit model scale, yellow pen and mid-gray brush.
func NewPipeline(s *scene.Scene) *Pipeline {
	return &Pipeline{
		Scene:       s,
		Camera:      NewCamera(10),
		Shading:     NoShadingModel{},
		PenColor:    core.Color{A: 0xFF, R: 0xFF, G: 0xFF, B: 0},
		BrushColor:  core.Color{A: 0xFF, R: 0x7F, G: 0x7F, B: 0x7F},
		FOVYDegrees: 30,
		Near:        2,
		Far:         500,
		ModelScale:  1,
	}
}

// SetAnimationType selects which pure (counter) -> matrix generator future
// frames use. Each kind keeps its own running angle in animState, so
// switching back to a kind later resumes it rather than resetting to zero.
func (p *Pipeline) SetAnimationType(kind AnimationKind) { p.Animation = kind }

// SetShadingModel selects the fill-pixel shader used by the z-buffered
// rasterized-polygon path.
func (p *Pipeline) SetShadingModel(m ShadingModel) { p.Shading = m }

func (p *Pipeline) SetXCameraView() { p.Camera.SetViewFromX() }
func (p *Pipeline) SetYCameraView() { p.Camera.SetViewFromY() }
func (p *Pipeline) SetZCameraView() { p.Camera.SetViewFromZ() }

// UpdateCameraPosition applies a normalized mouse-drag delta to the orbit
// camera: each axis is collapsed to its sign before scaling by the fixed
// 2 degree step, matching the source's per-event orbit granularity.
func (p *Pipeline) UpdateCameraPosition(deltaX, deltaY int) {
	if deltaX != 0 {
		deltaX /= absInt(deltaX)
	}
	if deltaY != 0 {
		deltaY /= absInt(deltaY)
	}
	const azimuthStep, inclinationStep float32 = 2.0, 2.0
	p.Camera.UpdateCameraPosition(-float32(deltaX)*azimuthStep, -float32(deltaY)*inclinationStep)
}

// DoRender produces one frame at (width, height) and returns the finished
// framebuffer. The caller copies its color plane out via Framebuffer.CopyTo,
// or calls Render below to do both steps at once.
func (p *Pipeline) DoRender(width, height int) *Framebuffer {
	fb := NewFramebuffer(width, height)
	if p.Flags.ZBufferEnabled {
		fb.EnableDepth()
	}

	if p.Scene != nil && len(p.Scene.Vertices) > 0 {
		model := p.currentModel()
		view := p.Camera.ViewMatrix()
		p.currModel, p.currView = model, view

		aspect := float32(width) / float32(height)
		vps := p.viewportPointsFor(p.Scene.Vertices, model, view, aspect, width, height)

		switch {
		case !p.Flags.DrawMesh && !p.Flags.RasterizeFill:
			p.renderVertexPoints(fb, vps)
		case p.Flags.ZBufferEnabled:
			if p.Flags.DrawMesh {
				p.zBufferRenderPolygonMesh(fb, vps)
			}
			if p.Flags.RasterizeFill {
				p.zBufferRenderRasterizedPolygons(fb, vps, model, view)
			}
		default:
			if p.Flags.RasterizeFill {
				p.renderRasterizedPolygons(fb, vps)
			}
			if p.Flags.DrawMesh {
				p.renderPolygonMesh(fb, vps)
			}
		}
	}

	if p.Flags.DrawWorldAxes {
		p.renderWorldAxes(fb, width, height)
	}

	return fb
}

// Render is the core entry point: it renders one frame and copies the
// color plane into out, which must be at least width*height*4 bytes.
func (p *Pipeline) Render(width, height int, out []byte) error {
	fb := p.DoRender(width, height)
	return fb.CopyTo(out)
}

func (p *Pipeline) currentModel() rmath.Mat4 {
	m := p.animState.ModelMatrix(p.Animation)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] *= p.ModelScale
		}
	}
	return m
}

func (p *Pipeline) projectionMatrix(aspect float32) rmath.Mat4 {
	g := 1 / float32(stdmath.Tan(float64(radians(p.FOVYDegrees))/2))
	k := p.Far / (p.Far - p.Near)
	return rmath.Mat4{
		{g / aspect, 0, 0, 0},
		{0, g, 0, 0},
		{0, 0, k, 1},
		{0, 0, -k * p.Near, 0},
	}
}

func viewportMatrix(w, h float32) rmath.Mat4 {
	return rmath.Mat4{
		{w / 2, 0, 0, 0},
		{0, h / 2, 0, 0},
		{0, 0, 1, 0},
		{w / 2, h / 2, 0, 1},
	}
}

// viewportPointsFor transforms each object-space point through model, view
// and the active projection/viewport matrices, producing a nil entry for
// any point whose clip w is near zero, whose NDC falls outside the
// canonical view volume, or whose pixel coordinates reach the framebuffer's
// far edge.
func (p *Pipeline) viewportPointsFor(points []rmath.Vec3, model, view rmath.Mat4, aspect float32, width, height int) []*ViewportPoint {
	combined := model.Mul(view).Mul(p.projectionMatrix(aspect))
	viewport := viewportMatrix(float32(width), float32(height))

	out := make([]*ViewportPoint, len(points))
	w, h := float32(width), float32(height)

	for i, pt := range points {
		cx, cy, cz, cw := combined.MulVec4(pt.X, pt.Y, pt.Z, 1)
		if absF32(cw) <= 1e-4 {
			continue
		}
		invW := 1 / cw
		ndcX, ndcY, ndcZ := cx*invW, cy*invW, cz*invW
		if ndcX < -1 || ndcX > 1 || ndcY < -1 || ndcY > 1 || ndcZ < 0 || ndcZ > 1 {
			continue
		}
		vx, vy, vz, _ := viewport.MulVec4(ndcX, ndcY, ndcZ, 1)
		if vx >= w || vy >= h {
			continue
		}
		out[i] = &ViewportPoint{X: vx, Y: vy, Z: vz, InvW: invW}
	}
	return out
}

func allVerticesVisible(vps []*ViewportPoint, idx [3]int) bool {
	for _, i := range idx {
		if vps[i] == nil {
			return false
		}
	}
	return true
}

// polygonIsBackFacing builds the world-space normal from the non-standard
// (p0-p1) x (p2-p1) winding and compares it against the camera's forward
// axis, preserving the source's exact (unusual) backface test.
func (p *Pipeline) polygonIsBackFacing(poly scene.Polygon) bool {
	v := p.Scene.Vertices
	p0 := p.currModel.MulVec3(v[poly.VertexIndices[0]])
	p1 := p.currModel.MulVec3(v[poly.VertexIndices[1]])
	p2 := p.currModel.MulVec3(v[poly.VertexIndices[2]])
	n := p0.Sub(p1).Cross(p2.Sub(p1))
	return n.Dot(p.Camera.ForwardAxis()) < 1e-4
}

func (p *Pipeline) renderVertexPoints(fb *Framebuffer, vps []*ViewportPoint) {
	pen := p.PenColor
	for _, vp := range vps {
		if vp == nil {
			continue
		}
		fb.DrawPixel(roundToInt(vp.X), roundToInt(vp.Y), pen.A, pen.R, pen.G, pen.B)
	}
}

var triangleEdgeOrder = [3][2]int{{0, 1}, {1, 2}, {2, 0}}

func (p *Pipeline) renderPolygonMesh(fb *Framebuffer, vps []*ViewportPoint) {
	pen := p.PenColor
	for _, poly := range p.Scene.Polygons {
		if p.Flags.BackfaceCullingEnabled && p.polygonIsBackFacing(poly) {
			continue
		}
		idx := poly.VertexIndices
		for _, e := range triangleEdgeOrder {
			a, b := vps[idx[e[0]]], vps[idx[e[1]]]
			if a == nil || b == nil {
				continue
			}
			fb.DrawLine(a.X, a.Y, b.X, b.Y, pen.A, pen.R, pen.G, pen.B)
		}
	}
}

const polygonMeshVisibilityZOffset = 0.01

func (p *Pipeline) zBufferRenderPolygonMesh(fb *Framebuffer, vps []*ViewportPoint) {
	pen := p.PenColor
	for _, poly := range p.Scene.Polygons {
		if p.Flags.BackfaceCullingEnabled && p.polygonIsBackFacing(poly) {
			continue
		}
		idx := poly.VertexIndices
		for _, e := range triangleEdgeOrder {
			a, b := vps[idx[e[0]]], vps[idx[e[1]]]
			if a == nil || b == nil {
				continue
			}
			pts := getLineInterpolationPoints(*a, *b)
			InterpolateDepthOverLine(pts, *a, *b)
			for _, ip := range pts {
				fb.ZDrawPixel(ip.X, ip.Y, ip.Z-polygonMeshVisibilityZOffset, pen.A, pen.R, pen.G, pen.B)
			}
		}
	}
}

// getLineInterpolationPoints walks a DDA line between two viewport points
// and returns one interpolation point per step, depth left unset (-1) for
// the caller to fill via InterpolateDepthOverLine.
func getLineInterpolationPoints(first, second ViewportPoint) []InterpolationPoint {
	dx := int(second.X) - int(first.X)
	dy := int(second.Y) - int(first.Y)

	steps := absInt(dx)
	if absInt(dy) > steps {
		steps = absInt(dy)
	}
	steps++

	x, y := first.X, first.Y
	xStep := float32(dx) / float32(steps)
	yStep := float32(dy) / float32(steps)

	points := make([]InterpolationPoint, 0, steps)
	for s := 1; s <= steps; s++ {
		x += xStep
		y += yStep
		points = append(points, InterpolationPoint{X: roundToInt(x), Y: roundToInt(y), Z: -1})
	}
	return points
}

func triangleMarginsY(v0, v1, v2 ViewportPoint) (minY, maxY float32) {
	minY, maxY = v0.Y, v0.Y
	for _, y := range [2]float32{v1.Y, v2.Y} {
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return
}

func triangleEdges(v0, v1, v2 ViewportPoint) [3]polygonEdge {
	return [3]polygonEdge{
		newPolygonEdge(v0.X, v0.Y, v1.X, v1.Y),
		newPolygonEdge(v1.X, v1.Y, v2.X, v2.Y),
		newPolygonEdge(v2.X, v2.Y, v0.X, v0.Y),
	}
}

// renderRasterizedPolygons draws flat triangle fills (no z-test) by drawing
// one DDA line per scanline span between paired edge intersections, using
// the current brush color.
func (p *Pipeline) renderRasterizedPolygons(fb *Framebuffer, vps []*ViewportPoint) {
	brush := p.BrushColor
	for _, poly := range p.Scene.Polygons {
		if p.Flags.BackfaceCullingEnabled && p.polygonIsBackFacing(poly) {
			continue
		}
		if !allVerticesVisible(vps, poly.VertexIndices) {
			continue
		}
		v0 := *vps[poly.VertexIndices[0]]
		v1 := *vps[poly.VertexIndices[1]]
		v2 := *vps[poly.VertexIndices[2]]

		minY, maxY := triangleMarginsY(v0, v1, v2)
		edges := triangleEdges(v0, v1, v2)

		y := minY
		for y < maxY {
			xs := scanlineIntersections(edges, y)
			if len(xs)%2 == 0 {
				for i := 0; i+1 < len(xs); i += 2 {
					fb.DrawLine(xs[i], y, xs[i+1], y, brush.A, brush.R, brush.G, brush.B)
				}
			}
			y += 1
			y = float32(stdmath.Floor(float64(y)))
		}
	}
}

// triangleFillPoints enumerates every covered pixel of a triangle by the
// same scanline/edge-intersection pass as renderRasterizedPolygons, but
// emitting one interpolation point per integer x from floor(left) to
// ceil(right) instead of drawing a span directly — the shared enumeration
// the shaded z-buffer fill path needs to hand to a ShadingModel.
func triangleFillPoints(v0, v1, v2 ViewportPoint) []InterpolationPoint {
	minY, maxY := triangleMarginsY(v0, v1, v2)
	edges := triangleEdges(v0, v1, v2)

	var points []InterpolationPoint
	y := minY
	for y < maxY {
		xs := scanlineIntersections(edges, y)
		if len(xs)%2 == 0 {
			for i := 0; i+1 < len(xs); i += 2 {
				minX := int(stdmath.Floor(float64(xs[i])))
				maxX := int(stdmath.Ceil(float64(xs[i+1])))
				for x := minX; x <= maxX; x++ {
					points = append(points, InterpolationPoint{X: x, Y: roundToInt(y)})
				}
			}
		}
		y += 1
		y = float32(stdmath.Floor(float64(y)))
	}
	return points
}

func (p *Pipeline) zBufferRenderRasterizedPolygons(fb *Framebuffer, vps []*ViewportPoint, model, view rmath.Mat4) {
	shading := p.Shading
	if shading == nil {
		shading = NoShadingModel{}
	}

	for _, poly := range p.Scene.Polygons {
		if p.Flags.BackfaceCullingEnabled && p.polygonIsBackFacing(poly) {
			continue
		}
		if !allVerticesVisible(vps, poly.VertexIndices) {
			continue
		}
		v0 := *vps[poly.VertexIndices[0]]
		v1 := *vps[poly.VertexIndices[1]]
		v2 := *vps[poly.VertexIndices[2]]

		points := triangleFillPoints(v0, v1, v2)
		in := ShadeInput{
			V0: v0, V1: v1, V2: v2,
			Polygon:       poly,
			Scene:         p.Scene,
			Material:      p.Scene.MaterialFor(poly),
			MaterialColor: p.BrushColor,
			Lights:        p.Lights,
			Model:         model,
			View:          view,
		}
		for _, sp := range shading.Shade(in, points) {
			fb.ZDrawPixel(sp.Point.X, sp.Point.Y, sp.Point.Z, sp.Color[0], sp.Color[1], sp.Color[2], sp.Color[3])
		}
	}
}

// renderWorldAxes draws three short orthogonal segments from the world
// origin at a fixed 0.65 scale with animation suspended, restoring both
// afterward — matching the source's save/render/restore sequence exactly.
func (p *Pipeline) renderWorldAxes(fb *Framebuffer, width, height int) {
	oldScale := p.ModelScale
	oldAnimation := p.Animation
	p.ModelScale = 0.65
	p.Animation = NoAnimation

	points := []rmath.Vec3{
		{X: 1}, {Y: 1}, {Z: 1}, {},
	}
	model := p.currentModel()
	view := p.Camera.ViewMatrix()
	aspect := float32(width) / float32(height)
	vps := p.viewportPointsFor(points, model, view, aspect, width, height)

	if origin := vps[3]; origin != nil {
		colors := [3]core.Color{core.ColorRed, core.ColorGreen, core.ColorBlue}
		for i := 0; i < 3; i++ {
			if axis := vps[i]; axis != nil {
				c := colors[i]
				fb.DrawLine(origin.X, origin.Y, axis.X, axis.Y, c.A, c.R, c.G, c.B)
			}
		}
	}

	p.ModelScale = oldScale
	p.Animation = oldAnimation
}
